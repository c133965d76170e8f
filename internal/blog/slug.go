package blog

import (
	"regexp"
	"strings"
)

const maxSlugLen = 50

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\x{4e00}-\x{9fff}]+`)
	slugEdgeHyphens  = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives the public URL key from a title: lowercase, every run of
// characters other than a-z, 0-9 and CJK ideographs becomes one hyphen, no
// hyphen at either end, at most 50 characters.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugEdgeHyphens.ReplaceAllString(slug, "")

	runes := []rune(slug)
	if len(runes) > maxSlugLen {
		slug = slugEdgeHyphens.ReplaceAllString(string(runes[:maxSlugLen]), "")
	}
	return slug
}

// slugFor picks the slug of a new post: the explicit one when given,
// otherwise the English title, then the Chinese title.
func slugFor(in PostInput) string {
	for _, candidate := range []string{in.Slug, in.TitleEN, in.TitleZH} {
		if s := Slugify(candidate); s != "" {
			return s
		}
	}
	return ""
}
