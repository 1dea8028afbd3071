package utils

import (
	"strings"
	"unicode"
)

// Slugify normalizes a display name into a URL-safe identifier: lowercase,
// alphanumeric runs joined by single hyphens, everything else stripped.
// "Hello World" -> "hello-world".
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// SlugToName is the reverse lookup used by the category-by-slug endpoint:
// hyphens become spaces and the result is matched case-insensitively
// against the category name, not the stored slug column.
func SlugToName(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}
