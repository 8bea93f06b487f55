// Package search filters and highlights expense records for the list view.
// Matching is substring based ("fuzzy" only in the loose token sense), with
// a Levenshtein helper for category typo suggestions.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Filter returns the items whose fields match query, preserving input
// order. An empty query returns the input unchanged. An item matches when
// any field either contains the whole query as a substring or contains
// every space-separated token of the query somewhere, case-insensitively.
// Empty field values never match.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" {
		return items
	}

	q := strings.ToLower(query)
	tokens := strings.Fields(q)

	var out []T
	for _, item := range items {
		if matchesAny(fields(item), q, tokens) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAny(values []string, query string, tokens []string) bool {
	for _, v := range values {
		if v == "" {
			continue
		}
		text := strings.ToLower(v)
		if strings.Contains(text, query) {
			return true
		}
		if containsAll(text, tokens) {
			return true
		}
	}
	return false
}

func containsAll(text string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

// Highlight wraps the first case-insensitive occurrence of query in text
// with <mark> tags. Text is returned unchanged when query is empty or not
// found. Only the first occurrence is marked.
func Highlight(text, query string) string {
	if query == "" || text == "" {
		return text
	}
	start, end := foldIndex(text, query)
	if start < 0 {
		return text
	}
	return text[:start] + "<mark>" + text[start:end] + "</mark>" + text[end:]
}

// foldIndex finds the first case-insensitive occurrence of query in text
// and returns its byte offsets into text, or (-1, -1) when absent. Offsets
// are tracked on text itself rather than on a lowered copy: case folds can
// change a rune's UTF-8 length, so indexes into a lowered string do not
// line up with the original.
func foldIndex(text, query string) (start, end int) {
	qrunes := []rune(query)
	for i := range text {
		if n, ok := foldMatch(text[i:], qrunes); ok {
			return i, i + n
		}
	}
	return -1, -1
}

// foldMatch reports whether s starts with query under simple case folding,
// returning the byte length of the matched prefix of s.
func foldMatch(s string, query []rune) (int, bool) {
	n := 0
	for _, q := range query {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(r) != unicode.ToLower(q) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// maxSuggestionDistance bounds how far a typo may be from a known category
// before the input is kept as-is.
const maxSuggestionDistance = 2

// SuggestCategory maps a possibly misspelled category to the closest known
// one. Exact case-insensitive matches win and adopt the known casing;
// otherwise the nearest category by edit distance is returned when it is
// within maxSuggestionDistance, else the input is returned unchanged.
func SuggestCategory(input string, known []string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return input
	}
	lower := strings.ToLower(trimmed)

	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, k := range known {
		kl := strings.ToLower(k)
		if kl == lower {
			return k
		}
		if d := levenshtein.ComputeDistance(lower, kl); d < bestDist {
			best, bestDist = k, d
		}
	}
	if best != "" {
		return best
	}
	return input
}
