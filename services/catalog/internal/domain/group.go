package domain

import "time"

// PriceRange is the inclusive span of variant prices within a group.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Include widens the range to cover price.
func (p *PriceRange) Include(price int64) {
	if price < p.Min {
		p.Min = price
	}
	if price > p.Max {
		p.Max = price
	}
}

// Contains reports whether price lies within [Min, Max].
func (p PriceRange) Contains(price int64) bool {
	return price >= p.Min && price <= p.Max
}

// ProductVariant is the display projection of a record inside a group.
type ProductVariant struct {
	ID            string    `json:"id"`
	VariantID     int       `json:"variant_id"`
	MetalType     MetalType `json:"metal_type"`
	MetalKarat    string    `json:"metal_karat,omitempty"`
	GoldPurity    string    `json:"gold_purity,omitempty"`
	Size          string    `json:"size"`
	PriceINR      int64     `json:"price_inr"`
	StockQuantity int       `json:"stock_quantity"`
	InStock       bool      `json:"in_stock"`
	GoldWeight    float64   `json:"gold_weight"`
	DiamondWeight float64   `json:"diamond_weight"`
	PrimaryImage  string    `json:"primary_image"`
	AllImages     []string  `json:"all_images"`
	AllVideos     []string  `json:"all_videos,omitempty"`
	ListedAt      time.Time `json:"listed_at,omitzero"`
}

// NewVariant projects a record into a variant. Image and video slices are
// copied and never nil.
func NewVariant(r ProductRecord) ProductVariant {
	return ProductVariant{
		ID:            r.ID,
		VariantID:     r.VariantID,
		MetalType:     r.MetalType,
		MetalKarat:    r.MetalKarat,
		GoldPurity:    r.GoldPurity,
		Size:          r.Size,
		PriceINR:      r.PriceINR,
		StockQuantity: r.StockQuantity,
		InStock:       r.InStock(),
		GoldWeight:    r.GoldWeight,
		DiamondWeight: r.DiamondWeight,
		PrimaryImage:  r.PrimaryImage,
		AllImages:     append(make([]string, 0, len(r.AllImages)), r.AllImages...),
		AllVideos:     append(make([]string, 0, len(r.AllVideos)), r.AllVideos...),
		ListedAt:      r.ListedAt,
	}
}

// ProductGroup is one logical product with all of its metal and size variants.
type ProductGroup struct {
	ProductID           string           `json:"product_id"`
	Slug                string           `json:"slug"`
	Name                string           `json:"name"`
	Category            string           `json:"category"`
	Description         string           `json:"description"`
	BaseVariant         ProductVariant   `json:"base_variant"`
	Variants            []ProductVariant `json:"variants"`
	AvailableMetalTypes []MetalType      `json:"available_metal_types"`
	AvailableSizes      []string         `json:"available_sizes"`
	PriceRange          PriceRange       `json:"price_range"`
	Featured            bool             `json:"featured"`
}

// InStock reports whether any variant has stock.
func (g ProductGroup) InStock() bool {
	for _, v := range g.Variants {
		if v.InStock {
			return true
		}
	}
	return false
}

// HasMetal reports whether any variant is cast in m.
func (g ProductGroup) HasMetal(m MetalType) bool {
	for _, v := range g.Variants {
		if v.MetalType == m {
			return true
		}
	}
	return false
}

// Variant returns the variant with the given record ID.
func (g ProductGroup) Variant(recordID string) (ProductVariant, bool) {
	for _, v := range g.Variants {
		if v.ID == recordID {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// Newest returns the latest ListedAt and the highest VariantID across variants.
func (g ProductGroup) Newest() (time.Time, int) {
	var (
		latest time.Time
		maxID  int
	)
	for i, v := range g.Variants {
		if v.ListedAt.After(latest) {
			latest = v.ListedAt
		}
		if i == 0 || v.VariantID > maxID {
			maxID = v.VariantID
		}
	}
	return latest, maxID
}
