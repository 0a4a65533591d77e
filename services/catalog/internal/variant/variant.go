// Package variant collapses flat SKU records into product groups.
package variant

import (
	"sort"

	"github.com/utafrali/JewelryGo/pkg/slug"
	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// Group partitions records by ProductID. Groups appear in the order their
// first record appears; the first record of each product becomes its base
// variant. Variants are sorted by ascending price, ties keeping input order.
func Group(records []domain.ProductRecord) []domain.ProductGroup {
	index := make(map[string]int)
	groups := make([]domain.ProductGroup, 0)

	for _, rec := range records {
		i, ok := index[rec.ProductID]
		if !ok {
			i = len(groups)
			index[rec.ProductID] = i
			groups = append(groups, seed(rec))
		}
		add(&groups[i], rec)
	}

	for i := range groups {
		sortVariants(groups[i].Variants)
	}
	return groups
}

// Find groups only the records belonging to productID. It returns false when
// no record matches.
func Find(records []domain.ProductRecord, productID string) (*domain.ProductGroup, bool) {
	var g *domain.ProductGroup
	for _, rec := range records {
		if rec.ProductID != productID {
			continue
		}
		if g == nil {
			seeded := seed(rec)
			g = &seeded
		}
		add(g, rec)
	}
	if g == nil {
		return nil, false
	}
	sortVariants(g.Variants)
	return g, true
}

func seed(rec domain.ProductRecord) domain.ProductGroup {
	return domain.ProductGroup{
		ProductID:   rec.ProductID,
		Slug:        slug.WithSuffix(rec.Name, rec.ProductID),
		Name:        rec.Name,
		Category:    rec.Category,
		Description: rec.Description,
		BaseVariant: domain.NewVariant(rec),
		PriceRange:  domain.PriceRange{Min: rec.PriceINR, Max: rec.PriceINR},
	}
}

func add(g *domain.ProductGroup, rec domain.ProductRecord) {
	g.Variants = append(g.Variants, domain.NewVariant(rec))
	if !containsMetal(g.AvailableMetalTypes, rec.MetalType) {
		g.AvailableMetalTypes = append(g.AvailableMetalTypes, rec.MetalType)
	}
	if !containsString(g.AvailableSizes, rec.Size) {
		g.AvailableSizes = append(g.AvailableSizes, rec.Size)
	}
	g.PriceRange.Include(rec.PriceINR)
	g.Featured = g.Featured || rec.Featured
}

func sortVariants(vs []domain.ProductVariant) {
	sort.SliceStable(vs, func(i, j int) bool {
		return vs[i].PriceINR < vs[j].PriceINR
	})
}

func containsMetal(ms []domain.MetalType, m domain.MetalType) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
