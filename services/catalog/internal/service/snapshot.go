package service

import (
	"sort"
	"time"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
	"github.com/utafrali/JewelryGo/services/catalog/internal/pricing"
	"github.com/utafrali/JewelryGo/services/catalog/internal/variant"
)

// snapshot is an immutable view of one catalog load. It is replaced as a
// whole on reload and never mutated after construction.
type snapshot struct {
	records  []domain.ProductRecord
	groups   []domain.ProductGroup
	byRecord map[string]int
	bySlug   map[string]string
	calc     *pricing.Calculator
	facets   Facets
	summary  ReloadSummary
}

func newSnapshot(records []domain.ProductRecord, table domain.PurityTable, summary ReloadSummary) *snapshot {
	groups := variant.Group(records)

	s := &snapshot{
		records:  records,
		groups:   groups,
		byRecord: make(map[string]int, len(records)),
		bySlug:   make(map[string]string, len(groups)),
		calc:     pricing.NewCalculator(table),
	}
	for i, r := range records {
		s.byRecord[r.ID] = i
	}
	for _, g := range groups {
		s.bySlug[g.Slug] = g.ProductID
	}

	summary.Records = len(records)
	summary.Groups = len(groups)
	s.summary = summary
	s.facets = buildFacets(records, groups, table)
	return s
}

// FacetCount is the number of product groups carrying a value.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets summarises the catalog for building filter controls.
type Facets struct {
	Categories   []FacetCount      `json:"categories"`
	MetalTypes   []FacetCount      `json:"metal_types"`
	Sizes        []FacetCount      `json:"sizes"`
	PriceRange   domain.PriceRange `json:"price_range"`
	InStock      int               `json:"in_stock"`
	TotalGroups  int               `json:"total_groups"`
	TotalRecords int               `json:"total_records"`
	Karats       []int             `json:"karats"`
}

func buildFacets(records []domain.ProductRecord, groups []domain.ProductGroup, table domain.PurityTable) Facets {
	f := Facets{
		TotalGroups:  len(groups),
		TotalRecords: len(records),
		Karats:       table.Karats(),
	}

	categories := map[string]int{}
	metals := map[domain.MetalType]int{}
	sizes := map[string]int{}
	for i, g := range groups {
		categories[g.Category]++
		for _, m := range g.AvailableMetalTypes {
			metals[m]++
		}
		for _, s := range g.AvailableSizes {
			sizes[s]++
		}
		if g.InStock() {
			f.InStock++
		}
		if i == 0 {
			f.PriceRange = g.PriceRange
			continue
		}
		f.PriceRange.Include(g.PriceRange.Min)
		f.PriceRange.Include(g.PriceRange.Max)
	}

	f.Categories = countsByFrequency(categories)
	f.Sizes = countsByFrequency(sizes)
	f.MetalTypes = make([]FacetCount, 0, len(metals))
	for _, m := range domain.MetalTypes() {
		if n := metals[m]; n > 0 {
			f.MetalTypes = append(f.MetalTypes, FacetCount{Value: string(m), Count: n})
		}
	}
	return f
}

func countsByFrequency(counts map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, FacetCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// ReloadSummary describes the active snapshot.
type ReloadSummary struct {
	Version  uint64        `json:"version"`
	Source   string        `json:"source"`
	Records  int           `json:"records"`
	Groups   int           `json:"groups"`
	LoadedAt time.Time     `json:"loaded_at"`
	Duration time.Duration `json:"duration_ns"`
}
