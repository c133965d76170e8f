package postapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/kgzivf/blogbackend/internal/blog"
)

const (
	StatusPublished = "Published"
	StatusDraft     = "Draft"
	StatusArchived  = "Archived"

	defaultReadTime   = 5
	defaultAuthorName = "系统管理员"
	defaultAuthorBioZ = "网站管理员"
	defaultAuthorBioE = "Site Administrator"
	unknownAuthorName = "Unknown Author"
)

// flexID accepts both numeric and string ids.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = flexID(n.String())
	return nil
}

type apiAuthor struct {
	ID        flexID `json:"id"`
	Name      string `json:"name"`
	BioZH     string `json:"bio_zh"`
	BioEN     string `json:"bio_en"`
	AvatarURL string `json:"avatar_url"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
}

type apiPost struct {
	ID            flexID     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Summary       string     `json:"summary"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	Status        string     `json:"status"`
	CreatedAt     string     `json:"created_at"`
	UpdatedAt     string     `json:"updated_at"`
	TitleZH       string     `json:"title_zh"`
	TitleEN       string     `json:"title_en"`
	ContentZH     string     `json:"content_zh"`
	ContentEN     string     `json:"content_en"`
	SummaryZH     string     `json:"summary_zh"`
	SummaryEN     string     `json:"summary_en"`
	ExcerptZH     string     `json:"excerpt_zh"`
	ExcerptEN     string     `json:"excerpt_en"`
	FeaturedImage string     `json:"featured_image"`
	Image         string     `json:"image"`
	ReadTime      int        `json:"read_time"`
	AuthorID      flexID     `json:"author_id"`
	Author        *apiAuthor `json:"author"`
	BlogAuthors   *apiAuthor `json:"blog_authors"`
}

func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func transformAuthor(a *apiAuthor) *blog.Author {
	if a == nil {
		return &blog.Author{
			Name:  defaultAuthorName,
			BioZH: defaultAuthorBioZ,
			BioEN: defaultAuthorBioE,
		}
	}
	return &blog.Author{
		ID:        string(a.ID),
		Name:      firstOf(a.Name, unknownAuthorName),
		BioZH:     a.BioZH,
		BioEN:     a.BioEN,
		AvatarURL: firstOf(a.AvatarURL, a.Avatar),
		CreatedAt: parseTime(a.CreatedAt),
	}
}

// transformPost maps the single-language API shape onto the bilingual blog
// post, filling each language from the shared field when it is missing.
func transformPost(p apiPost) blog.Post {
	readTime := p.ReadTime
	if readTime <= 0 {
		readTime = defaultReadTime
	}

	author := p.Author
	if author == nil {
		author = p.BlogAuthors
	}

	return blog.Post{
		ID:            string(p.ID),
		TitleZH:       firstOf(p.TitleZH, p.Title),
		TitleEN:       firstOf(p.TitleEN, p.Title),
		ContentZH:     firstOf(p.ContentZH, p.Content),
		ContentEN:     firstOf(p.ContentEN, p.Content),
		ExcerptZH:     firstOf(p.ExcerptZH, p.SummaryZH, p.Summary),
		ExcerptEN:     firstOf(p.ExcerptEN, p.SummaryEN, p.Summary),
		Slug:          p.Slug,
		Category:      p.Category,
		FeaturedImage: firstOf(p.FeaturedImage, p.Image),
		ReadTime:      readTime,
		Published:     p.Status == StatusPublished,
		AuthorID:      string(p.AuthorID),
		Author:        transformAuthor(author),
		Tags:          p.Tags,
		CreatedAt:     parseTime(p.CreatedAt),
		UpdatedAt:     parseTime(p.UpdatedAt),
	}
}

func transformPosts(raw []apiPost) []blog.Post {
	posts := make([]blog.Post, len(raw))
	for i, p := range raw {
		posts[i] = transformPost(p)
	}
	return posts
}

// PostList is one page of the posts listing.
type PostList struct {
	Posts []blog.Post `json:"posts"`
	Total int         `json:"total"`
}

// ListParams are the query parameters of GET /api/posts. Zero values take
// the API defaults: published posts, page 1, 20 per page.
type ListParams struct {
	Status   string
	Page     int
	Limit    int
	Category string
	Tags     string
	Search   string
}

// PostPayload is the body of create and update calls. The API stores one
// title/content/summary, so the Chinese fields double as those.
type PostPayload map[string]any

func createPayload(in blog.PostInput, slug string) PostPayload {
	status := StatusDraft
	if in.Published {
		status = StatusPublished
	}
	payload := PostPayload{
		"title":      in.TitleZH,
		"content":    in.ContentZH,
		"summary":    in.ExcerptZH,
		"title_zh":   in.TitleZH,
		"title_en":   in.TitleEN,
		"content_zh": in.ContentZH,
		"content_en": in.ContentEN,
		"excerpt_zh": in.ExcerptZH,
		"excerpt_en": in.ExcerptEN,
		"slug":       slug,
		"category":   in.Category,
		"status":     status,
		"type":       "Post",
		"author_id":  in.AuthorID,
	}
	if in.ReadTime != nil {
		payload["read_time"] = *in.ReadTime
	}
	if in.FeaturedImage != "" {
		payload["featured_image"] = in.FeaturedImage
	}
	return payload
}

func patchPayload(patch blog.PostPatch) PostPayload {
	payload := PostPayload{}
	set := func(v *string, keys ...string) {
		if v == nil {
			return
		}
		for _, k := range keys {
			payload[k] = *v
		}
	}
	set(patch.TitleZH, "title_zh", "title")
	set(patch.TitleEN, "title_en")
	set(patch.ContentZH, "content_zh", "content")
	set(patch.ContentEN, "content_en")
	set(patch.ExcerptZH, "excerpt_zh", "summary")
	set(patch.ExcerptEN, "excerpt_en")
	set(patch.Category, "category")
	set(patch.FeaturedImage, "featured_image")
	set(patch.AuthorID, "author_id")
	if patch.ReadTime != nil {
		payload["read_time"] = *patch.ReadTime
	}
	if patch.Published != nil {
		if *patch.Published {
			payload["status"] = StatusPublished
		} else {
			payload["status"] = StatusDraft
		}
	}
	return payload
}
