// Package search provides attribute search over slices with exact,
// substring, and fuzzy matching, plus small slice utilities.
package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Filter scores a candidate string against a query. A zero score excludes
// the candidate; higher scores rank earlier when sorting is enabled.
type Filter interface {
	Score(candidate string) float64
}

// Equals matches the exact string.
type Equals struct {
	Query       string
	Insensitive bool
}

// Score returns 1 on an exact match, 0 otherwise.
func (f Equals) Score(candidate string) float64 {
	if f.Insensitive {
		if strings.EqualFold(candidate, f.Query) {
			return 1
		}
		return 0
	}
	if candidate == f.Query {
		return 1
	}
	return 0
}

// Contains matches substrings.
type Contains struct {
	Query       string
	Insensitive bool
}

// Score returns 1 when the query occurs in the candidate, 0 otherwise.
func (f Contains) Score(candidate string) float64 {
	query := f.Query
	if f.Insensitive {
		candidate = strings.ToLower(candidate)
		query = strings.ToLower(query)
	}
	if strings.Contains(candidate, query) {
		return 1
	}
	return 0
}

const (
	defaultFuzzyCutoff = 0.6
	fuzzyContainsBonus = 0.5
)

// Fuzzy matches by levenshtein ratio with a substring bonus. A candidate
// passes when ratio + bonus reaches the cutoff (default 0.6).
type Fuzzy struct {
	Query       string
	Cutoff      float64
	Insensitive bool
}

// Score returns the fuzzy match score, or 0 below the cutoff.
func (f Fuzzy) Score(candidate string) float64 {
	query := f.Query
	if f.Insensitive {
		candidate = strings.ToLower(candidate)
		query = strings.ToLower(query)
	}

	score := ratio(query, candidate)
	if strings.Contains(candidate, query) {
		score += fuzzyContainsBonus
	}

	cutoff := f.Cutoff
	if cutoff <= 0 {
		cutoff = defaultFuzzyCutoff
	}
	if score < cutoff {
		return 0
	}
	return score
}

// ratio converts levenshtein distance into a 0..1 similarity.
func ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
