package blog

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrSlugTaken    = errors.New("slug already taken")
	ErrAuthorInUse  = errors.New("author still has posts")
	ErrNotFound     = errors.New("not found")
	ErrNotSupported = errors.New("not supported by this backend")
	ErrUpstream     = errors.New("upstream blog api failed")
)

const (
	TablePosts   = "blog_posts"
	TableAuthors = "blog_authors"
)

const (
	CategoryMedical = "medical"
	CategorySuccess = "success"
	CategoryGuide   = "guide"
)

type Language string

const (
	LangZH Language = "zh"
	LangEN Language = "en"
)

// ParseLanguage maps anything but "en" to zh, the site's default language.
func ParseLanguage(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(LangEN)) {
		return LangEN
	}
	return LangZH
}

type Author struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	BioZH     string     `json:"bio_zh,omitempty"`
	BioEN     string     `json:"bio_en,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Post struct {
	ID            string     `json:"id"`
	TitleZH       string     `json:"title_zh"`
	TitleEN       string     `json:"title_en"`
	ContentZH     string     `json:"content_zh"`
	ContentEN     string     `json:"content_en"`
	ExcerptZH     string     `json:"excerpt_zh,omitempty"`
	ExcerptEN     string     `json:"excerpt_en,omitempty"`
	Slug          string     `json:"slug"`
	Category      string     `json:"category"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	ReadTime      int        `json:"read_time"`
	Published     bool       `json:"published"`
	AuthorID      string     `json:"author_id,omitempty"`
	Author        *Author    `json:"author,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Title returns the title in lang, falling back to the other language.
func (p *Post) Title(lang Language) string {
	if lang == LangEN && p.TitleEN != "" {
		return p.TitleEN
	}
	if p.TitleZH != "" {
		return p.TitleZH
	}
	return p.TitleEN
}

// PostInput is the create form.
type PostInput struct {
	TitleZH       string `json:"title_zh"`
	TitleEN       string `json:"title_en"`
	ContentZH     string `json:"content_zh"`
	ContentEN     string `json:"content_en"`
	ExcerptZH     string `json:"excerpt_zh"`
	ExcerptEN     string `json:"excerpt_en"`
	Category      string `json:"category"`
	FeaturedImage string `json:"featured_image"`
	// ReadTime left out of the form means DefaultReadTime; an explicit 0 is invalid.
	ReadTime  *int   `json:"read_time,omitempty"`
	Published bool   `json:"published"`
	AuthorID  string `json:"author_id"`
	// Slug overrides the one derived from the titles; it is slugified too.
	Slug string `json:"slug,omitempty"`
}

// PostPatch holds the fields of a partial update; nil fields are left as is.
type PostPatch struct {
	TitleZH       *string `json:"title_zh,omitempty"`
	TitleEN       *string `json:"title_en,omitempty"`
	ContentZH     *string `json:"content_zh,omitempty"`
	ContentEN     *string `json:"content_en,omitempty"`
	ExcerptZH     *string `json:"excerpt_zh,omitempty"`
	ExcerptEN     *string `json:"excerpt_en,omitempty"`
	Category      *string `json:"category,omitempty"`
	FeaturedImage *string `json:"featured_image,omitempty"`
	ReadTime      *int    `json:"read_time,omitempty"`
	Published     *bool   `json:"published,omitempty"`
	AuthorID      *string `json:"author_id,omitempty"`
}

func (p PostPatch) Empty() bool {
	return p == PostPatch{}
}

type AuthorInput struct {
	Name      string `json:"name"`
	BioZH     string `json:"bio_zh"`
	BioEN     string `json:"bio_en"`
	AvatarURL string `json:"avatar_url"`
}

// ListFilter narrows post listings.
type ListFilter struct {
	PublishedOnly bool
	Category      string
	Limit         int
}
