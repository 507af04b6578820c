package text

import (
	"regexp"
	"strings"
)

// The recognized transcript is compared against catalog answers after both
// sides go through the same canonicalization, so punctuation and casing
// coming back from the speech model never affect the match.
var (
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize lowercases the text, strips everything that is not a letter,
// digit, underscore or whitespace, and collapses whitespace runs to single
// spaces. It is pure and idempotent; empty input yields empty output.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWordPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
