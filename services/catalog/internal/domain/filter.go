package domain

import "strings"

// Filter narrows a catalog view. The zero value matches everything.
type Filter struct {
	Category    []string
	MetalType   []string
	PriceRange  *PriceRange
	InStock     bool
	SearchQuery string
}

// IsEmpty reports whether the filter constrains nothing.
func (f Filter) IsEmpty() bool {
	return len(f.Category) == 0 &&
		len(f.MetalType) == 0 &&
		f.PriceRange == nil &&
		!f.InStock &&
		strings.TrimSpace(f.SearchQuery) == ""
}

// SortOption selects the order of a listing.
type SortOption string

// Sort options. SortNone keeps input order.
const (
	SortNone      SortOption = ""
	SortName      SortOption = "name"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortNewest    SortOption = "newest"
)

// ValidSortOptions returns the non-empty sort options.
func ValidSortOptions() []SortOption {
	return []SortOption{SortName, SortPriceLow, SortPriceHigh, SortNewest}
}

// IsValidSortOption accepts the empty option and every value of ValidSortOptions.
func IsValidSortOption(s string) bool {
	if s == "" {
		return true
	}
	for _, o := range ValidSortOptions() {
		if string(o) == s {
			return true
		}
	}
	return false
}
