package filter

import (
	"strings"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// Records returns the records matching every constraint in f, in input
// order. An empty filter returns a copy of records.
func Records(records []domain.ProductRecord, f domain.Filter) []domain.ProductRecord {
	out := make([]domain.ProductRecord, 0, len(records))
	if f.IsEmpty() {
		return append(out, records...)
	}
	query := strings.TrimSpace(f.SearchQuery)
	for _, r := range records {
		if matchRecord(r, f, query) {
			out = append(out, r)
		}
	}
	return out
}

func matchRecord(r domain.ProductRecord, f domain.Filter, query string) bool {
	if len(f.Category) > 0 && !CategoryMatch(r.Category, f.Category) {
		return false
	}
	if len(f.MetalType) > 0 && !MetalMatch(string(r.MetalType), f.MetalType) {
		return false
	}
	if f.PriceRange != nil && !f.PriceRange.Contains(r.PriceINR) {
		return false
	}
	if f.InStock && !r.InStock() {
		return false
	}
	if query != "" && !searchMatch(query, r.Name, r.Category, r.Description) {
		return false
	}
	return true
}

// Groups returns the groups matching every constraint in f, in input order.
// Metal, price and stock constraints pass when any variant satisfies them.
func Groups(groups []domain.ProductGroup, f domain.Filter) []domain.ProductGroup {
	out := make([]domain.ProductGroup, 0, len(groups))
	if f.IsEmpty() {
		return append(out, groups...)
	}
	query := strings.TrimSpace(f.SearchQuery)
	for _, g := range groups {
		if matchGroup(g, f, query) {
			out = append(out, g)
		}
	}
	return out
}

func matchGroup(g domain.ProductGroup, f domain.Filter, query string) bool {
	if len(f.Category) > 0 && !CategoryMatch(g.Category, f.Category) {
		return false
	}
	if len(f.MetalType) > 0 && !anyVariant(g, func(v domain.ProductVariant) bool {
		return MetalMatch(string(v.MetalType), f.MetalType)
	}) {
		return false
	}
	if f.PriceRange != nil && !anyVariant(g, func(v domain.ProductVariant) bool {
		return f.PriceRange.Contains(v.PriceINR)
	}) {
		return false
	}
	if f.InStock && !g.InStock() {
		return false
	}
	if query != "" && !searchMatch(query, g.Name, g.Category, g.Description, string(g.BaseVariant.MetalType)) {
		return false
	}
	return true
}

func anyVariant(g domain.ProductGroup, pred func(domain.ProductVariant) bool) bool {
	for _, v := range g.Variants {
		if pred(v) {
			return true
		}
	}
	return false
}
