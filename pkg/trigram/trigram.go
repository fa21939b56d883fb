// Package trigram implements trigram-based string similarity compatible
// with PostgreSQL's pg_trgm similarity(). Used by the in-memory store so
// event deduplication behaves the same with and without a database.
package trigram

import (
	"strings"
	"unicode"
)

// Similarity returns a score in [0, 1] measuring how alike two strings
// are, as the Jaccard ratio of their trigram sets. Comparison is
// case-insensitive; non-alphanumeric runes act as word boundaries.
func Similarity(a, b string) float64 {
	ta := Trigrams(a)
	tb := Trigrams(b)

	if len(ta) == 0 || len(tb) == 0 {
		if len(ta) == 0 && len(tb) == 0 {
			return 1
		}
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}

	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

// Trigrams returns the set of trigrams of s. Each word is padded with two
// leading blanks and one trailing blank, matching pg_trgm.
func Trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})

	for _, word := range words(s) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			set[string(runes[i:i+3])] = struct{}{}
		}
	}

	return set
}

// words splits s into lowercased alphanumeric words.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
