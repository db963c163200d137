package export

import (
	"regexp"
	"strings"
)

var (
	invalidSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphens  = regexp.MustCompile(`-+`)
	leadingYear      = regexp.MustCompile(`^\d{4}`)
)

// GenerateSlug creates a URL-friendly slug from a title and an OMDb year
// string. Ranges such as "2011–2013" use the first year.
func GenerateSlug(title, year string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = invalidSlugChars.ReplaceAllString(slug, "")
	slug = repeatedHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if y := leadingYear.FindString(strings.TrimSpace(year)); y != "" {
		if slug == "" {
			return y
		}
		slug = slug + "-" + y
	}

	return slug
}
