package util

import (
	"strings"
	"unicode"
)

// Slug lower-cases title and turns every whitespace rune into one hyphen.
// Punctuation is kept and runs are not collapsed, so "Hello   World!" becomes "hello---world!".
func Slug(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, strings.ToLower(title))
}
