package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/utafrali/JewelryGo/pkg/validator"
)

// StandardSize marks items that are not sold in sizes.
const StandardSize = "Standard"

// PathList is an ordered list of media paths. In CSV files it is a single
// "|"-separated column.
type PathList []string

// MarshalCSV implements gocsv.TypeMarshaller.
func (p PathList) MarshalCSV() (string, error) {
	return strings.Join(p, "|"), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (p *PathList) UnmarshalCSV(s string) error {
	*p = nil
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			*p = append(*p, part)
		}
	}
	return nil
}

// ProductRecord is one SKU-level variant as stored in the catalog.
type ProductRecord struct {
	ID            string    `json:"id" yaml:"id" validate:"required"`
	ProductID     string    `json:"product_id" yaml:"product_id" validate:"required"`
	VariantID     int       `json:"variant_id" yaml:"variant_id" validate:"gte=0"`
	Name          string    `json:"name" yaml:"name" validate:"required"`
	Category      string    `json:"category" yaml:"category" validate:"required"`
	Description   string    `json:"description" yaml:"description"`
	MetalType     MetalType `json:"metal_type" yaml:"metal_type" validate:"required,metaltype"`
	MetalKarat    string    `json:"metal_karat" yaml:"metal_karat"`
	GoldPurity    string    `json:"gold_purity" yaml:"gold_purity"`
	Size          string    `json:"size" yaml:"size"`
	PriceINR      int64     `json:"price_inr" yaml:"price_inr" validate:"gte=0"`
	StockQuantity int       `json:"stock_quantity" yaml:"stock_quantity" validate:"gte=0"`
	GoldWeight    float64   `json:"gold_weight" yaml:"gold_weight" validate:"gte=0"`
	DiamondWeight float64   `json:"diamond_weight" yaml:"diamond_weight" validate:"gte=0"`
	PrimaryImage  string    `json:"primary_image" yaml:"primary_image"`
	AllImages     PathList  `json:"all_images" yaml:"all_images"`
	AllVideos     PathList  `json:"all_videos,omitempty" yaml:"all_videos,omitempty"`
	Featured      bool      `json:"featured" yaml:"featured"`
	ListedAt      time.Time `json:"listed_at,omitzero" yaml:"listed_at,omitempty"`
}

// InStock reports whether at least one unit is available.
func (r ProductRecord) InStock() bool {
	return r.StockQuantity > 0
}

// PriceOnRequest reports whether the record has no list price.
func (r ProductRecord) PriceOnRequest() bool {
	return r.PriceINR == 0
}

// Normalize fills defaults that loaders may leave empty.
func (r *ProductRecord) Normalize() {
	r.Size = strings.TrimSpace(r.Size)
	if r.Size == "" {
		r.Size = StandardSize
	}
	if r.PrimaryImage == "" && len(r.AllImages) > 0 {
		r.PrimaryImage = r.AllImages[0]
	}
}

// ValidateRecords normalizes and validates records in place, rejecting the
// first malformed or duplicate record.
func ValidateRecords(records []ProductRecord) error {
	seen := make(map[string]int, len(records))
	for i := range records {
		rec := &records[i]
		rec.Normalize()
		if err := validator.Validate(rec); err != nil {
			return fmt.Errorf("record %d (%q): %w", i, rec.ID, err)
		}
		if prev, ok := seen[rec.ID]; ok {
			return fmt.Errorf("record %d: duplicate id %q (first seen at %d)", i, rec.ID, prev)
		}
		seen[rec.ID] = i
	}
	return nil
}
