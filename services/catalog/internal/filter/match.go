// Package filter narrows and orders catalog listings.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

// Strategy decides whether value satisfies any of terms. Callers treat an
// empty terms list as "no constraint" and never call a strategy with one.
type Strategy func(value string, terms []string) bool

// ContainsFold matches when value contains any term, ignoring case.
// "rings" matches "Engagement Rings".
func ContainsFold(value string, terms []string) bool {
	v := fold(value)
	for _, t := range terms {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if strings.Contains(v, fold(t)) {
			return true
		}
	}
	return false
}

// ExactMember matches when value equals a term byte for byte.
func ExactMember(value string, terms []string) bool {
	for _, t := range terms {
		if value == t {
			return true
		}
	}
	return false
}

// Field strategies. Category is matched loosely and metal type strictly.
var (
	CategoryMatch Strategy = ContainsFold
	MetalMatch    Strategy = ExactMember
)

// fold returns the Unicode case fold of s. Casers are stateful, so one is
// built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func searchMatch(query string, fields ...string) bool {
	return strings.Contains(fold(strings.Join(fields, " ")), fold(query))
}
