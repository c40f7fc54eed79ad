// Package search matches movie titles against a typed query.
//
// Matching is case- and accent-insensitive. Queries of four or more letters
// also tolerate small typos against individual title words.
package search

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jask/watchmania/internal/models"
)

var folder = cases.Fold()

// Fold lowercases s and strips diacritics, so "Amélie" folds to "amelie".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return folder.String(strings.TrimSpace(stripped))
}

// MatchTitle reports whether query matches title.
func MatchTitle(title, query string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	t := Fold(title)
	if strings.Contains(t, q) {
		return true
	}

	budget := typoBudget(q)
	if budget == 0 || strings.ContainsRune(q, ' ') {
		return false
	}
	for _, word := range strings.FieldsFunc(t, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if levenshtein.ComputeDistance(word, q) <= budget {
			return true
		}
		// prefix match for partially typed words
		if r := []rune(word); len(r) > len([]rune(q)) &&
			levenshtein.ComputeDistance(string(r[:len([]rune(q))]), q) <= budget {
			return true
		}
	}
	return false
}

func typoBudget(q string) int {
	switch n := len([]rune(q)); {
	case n >= 8:
		return 2
	case n >= 4:
		return 1
	default:
		return 0
	}
}

// Filter returns the movies whose title matches query, keeping their order.
func Filter(movies []models.Movie, query string) []models.Movie {
	if strings.TrimSpace(query) == "" {
		return movies
	}
	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if MatchTitle(m.Title, query) {
			out = append(out, m)
		}
	}
	return out
}
