package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// Escapes . * + ? ^ $ ( ) [ ] { } | \ so user input cannot inject
// backtracking patterns into document-store regex queries.
var reRegexSpecial = regexp.MustCompile(`[.*+?^$()[\]{}|\\]`)

func EscapeRegexMeta(s string) string {
	return reRegexSpecial.ReplaceAllStringFunc(s, func(match string) string {
		return "\\" + match
	})
}

// SanitizeSearchTerm prepares free-text search input for a case-insensitive
// substring query: whitespace is collapsed and regex metacharacters escaped.
func SanitizeSearchTerm(input string) string {
	p := Pipeline{
		TrimAndNormalize,
		EscapeRegexMeta,
	}
	return p.Apply(input)
}

func SanitizeEmail(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		strings.ToLower,
	}
	return p.Apply(input)
}

func SanitizeStatus(input string) string {
	return TrimAndNormalize(input)
}
