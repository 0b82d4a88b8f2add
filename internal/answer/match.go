// Package answer compares free-form answers against the accepted phrasings of
// a question.
package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Delimiter separates alternative phrasings in stored answers.
const Delimiter = "|"

// Normalize lowercases s, strips diacritics and trims surrounding whitespace.
func Normalize(s string) string {
	// transform.Chain keeps internal state, so it is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		stripped = strings.ToLower(s)
	}
	return strings.TrimSpace(stripped)
}

// IsCorrect reports whether candidate matches any accepted phrasing.
// A blank candidate never matches.
func IsCorrect(candidate string, accepted []string) bool {
	normalized := Normalize(candidate)
	if normalized == "" {
		return false
	}
	for _, a := range accepted {
		if Normalize(a) == normalized {
			return true
		}
	}
	return false
}

// SplitAccepted expands a stored "a|b|c" answer into its phrasings. Blank
// alternatives are dropped and the remaining order is preserved, so the first
// element stays canonical.
func SplitAccepted(stored string) []string {
	parts := strings.Split(stored, Delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsBlank reports whether s is empty once normalized.
func IsBlank(s string) bool {
	return Normalize(s) == ""
}
