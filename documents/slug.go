package documents

import "github.com/goliatone/go-slug"

// NormalizeSlug applies the shared normalization rules used for document
// slugs, whether supplied explicitly or derived from the title.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether value already satisfies the slug rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
