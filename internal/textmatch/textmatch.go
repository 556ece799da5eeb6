// Package textmatch provides the string-similarity primitive shared by the
// column mapper, profile store, and categoriser.
package textmatch

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns a Ratcliff/Obershelp similarity score in [0,1] between two
// strings, computed over characters. Callers handle case folding.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// BestRatio returns the highest Ratio of target against each option.
func BestRatio(target string, options []string) float64 {
	best := 0.0
	for _, opt := range options {
		if r := Ratio(target, opt); r > best {
			best = r
		}
	}
	return best
}

// KeywordScore scores a learned keyword against a transaction description
// on a 0-100 scale. A keyword contained verbatim in the description is a
// full match; otherwise the whole-string ratio decides.
func KeywordScore(keyword, description string) float64 {
	k := strings.ToLower(keyword)
	d := strings.ToLower(description)
	if k != "" && strings.Contains(d, k) {
		return 100
	}
	return Ratio(k, d) * 100
}
