package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases name, strips accents and collapses everything else into hyphens.
func GenerateSlug(name string) string {
	t := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	s := nonAlnum.ReplaceAllString(strings.ToLower(b.String()), "-")
	return strings.Trim(s, "-")
}
