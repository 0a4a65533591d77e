package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/pkg/validator"
)

func validRecord(id string) ProductRecord {
	return ProductRecord{
		ID:            id,
		ProductID:     "ETR-001",
		VariantID:     1,
		Name:          "Eterna Solitaire Ring",
		Category:      "Engagement Rings",
		MetalType:     MetalRoseGold,
		PriceINR:      125000,
		StockQuantity: 3,
		AllImages:     PathList{"/img/eterna-R1.jpg", "/img/eterna-R2.jpg"},
	}
}

// ============================================================================
// Metal types
// ============================================================================

func TestIsValidMetalType(t *testing.T) {
	for _, m := range MetalTypes() {
		assert.True(t, IsValidMetalType(string(m)), "expected %q to be valid", m)
	}
	assert.False(t, IsValidMetalType("rose gold"))
	assert.False(t, IsValidMetalType("Silver"))
	assert.False(t, IsValidMetalType(""))
}

func TestMetalType_ImageToken(t *testing.T) {
	assert.Equal(t, "R", MetalRoseGold.ImageToken())
	assert.Equal(t, "W", MetalWhiteGold.ImageToken())
	assert.Equal(t, "Y", MetalYellowGold.ImageToken())
	assert.Equal(t, "P", MetalPlatinum.ImageToken())
	assert.Empty(t, MetalType("Silver").ImageToken())
}

// ============================================================================
// Records
// ============================================================================

func TestPathList_CSVRoundTrip(t *testing.T) {
	var p PathList
	require.NoError(t, p.UnmarshalCSV(" a.jpg | b.jpg||c.mp4 "))
	assert.Equal(t, PathList{"a.jpg", "b.jpg", "c.mp4"}, p)

	s, err := p.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "a.jpg|b.jpg|c.mp4", s)

	require.NoError(t, p.UnmarshalCSV(""))
	assert.Nil(t, p)
}

func TestProductRecord_Normalize(t *testing.T) {
	rec := validRecord("r1")
	rec.Size = "  "
	rec.Normalize()
	assert.Equal(t, StandardSize, rec.Size)
	assert.Equal(t, "/img/eterna-R1.jpg", rec.PrimaryImage)

	rec.PrimaryImage = "/img/hero.jpg"
	rec.Normalize()
	assert.Equal(t, "/img/hero.jpg", rec.PrimaryImage)
}

func TestProductRecord_Flags(t *testing.T) {
	rec := validRecord("r1")
	assert.True(t, rec.InStock())
	assert.False(t, rec.PriceOnRequest())

	rec.StockQuantity = 0
	rec.PriceINR = 0
	assert.False(t, rec.InStock())
	assert.True(t, rec.PriceOnRequest())
}

func TestValidateRecords_Valid(t *testing.T) {
	records := []ProductRecord{validRecord("r1"), validRecord("r2")}
	require.NoError(t, ValidateRecords(records))
	assert.Equal(t, StandardSize, records[0].Size)
}

func TestValidateRecords_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductRecord)
		field  string
	}{
		{"missing id", func(r *ProductRecord) { r.ID = "" }, "ID"},
		{"missing product id", func(r *ProductRecord) { r.ProductID = "" }, "ProductID"},
		{"unknown metal", func(r *ProductRecord) { r.MetalType = "Silver" }, "MetalType"},
		{"negative price", func(r *ProductRecord) { r.PriceINR = -1 }, "PriceINR"},
		{"negative stock", func(r *ProductRecord) { r.StockQuantity = -2 }, "StockQuantity"},
		{"negative gold weight", func(r *ProductRecord) { r.GoldWeight = -0.5 }, "GoldWeight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord("r1")
			tt.mutate(&rec)
			err := ValidateRecords([]ProductRecord{rec})
			require.Error(t, err)

			var verr *validator.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields(), tt.field)
		})
	}
}

func TestValidateRecords_RejectsDuplicateIDs(t *testing.T) {
	err := ValidateRecords([]ProductRecord{validRecord("r1"), validRecord("r1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate id "r1"`)
}

// ============================================================================
// Groups
// ============================================================================

func TestPriceRange_IncludeAndContains(t *testing.T) {
	pr := PriceRange{Min: 500, Max: 500}
	pr.Include(200)
	pr.Include(900)
	assert.Equal(t, PriceRange{Min: 200, Max: 900}, pr)
	assert.True(t, pr.Contains(200))
	assert.True(t, pr.Contains(900))
	assert.False(t, pr.Contains(901))
}

func TestNewVariant_CopiesImages(t *testing.T) {
	rec := validRecord("r1")
	v := NewVariant(rec)
	v.AllImages[0] = "mutated"
	assert.Equal(t, "/img/eterna-R1.jpg", rec.AllImages[0])
	assert.True(t, v.InStock)
}

func TestNewVariant_EmptyMediaEncodeAsArrays(t *testing.T) {
	rec := validRecord("r1")
	rec.AllImages = nil
	rec.AllVideos = nil

	v := NewVariant(rec)
	assert.NotNil(t, v.AllImages)
	assert.NotNil(t, v.AllVideos)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"all_images":[]`)
}

func TestProductGroup_Helpers(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 6, 0)
	g := ProductGroup{Variants: []ProductVariant{
		{ID: "a", VariantID: 7, MetalType: MetalRoseGold, ListedAt: newer},
		{ID: "b", VariantID: 9, MetalType: MetalWhiteGold, InStock: true, ListedAt: older},
	}}

	assert.True(t, g.InStock())
	assert.True(t, g.HasMetal(MetalWhiteGold))
	assert.False(t, g.HasMetal(MetalPlatinum))

	v, ok := g.Variant("b")
	require.True(t, ok)
	assert.Equal(t, 9, v.VariantID)
	_, ok = g.Variant("zzz")
	assert.False(t, ok)

	latest, maxID := g.Newest()
	assert.Equal(t, newer, latest)
	assert.Equal(t, 9, maxID)
}

// ============================================================================
// Purity table
// ============================================================================

func TestDefaultPurityTable_IsValid(t *testing.T) {
	table := DefaultPurityTable()
	require.NoError(t, table.Validate())
	assert.Equal(t, []int{14, 18, 22, 24}, table.Karats())

	tier, err := table.Tier(18)
	require.NoError(t, err)
	assert.Equal(t, 75.0, tier.Purity)
	assert.Equal(t, 6000.0, tier.PricePerGram)
	assert.Equal(t, 12.0, tier.MakingChargesPercent)
}

func TestPurityTable_UnknownTier(t *testing.T) {
	_, err := DefaultPurityTable().Tier(9)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedPurity)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UNSUPPORTED_PURITY", appErr.Code)
}

func TestPurityTable_Validate(t *testing.T) {
	tests := []struct {
		name  string
		table PurityTable
	}{
		{"empty", PurityTable{}},
		{"bad key", PurityTable{Tiers: map[string]PurityTier{"gold": {Purity: 75}}}},
		{"zero karat", PurityTable{Tiers: map[string]PurityTier{"0kt": {Purity: 75}}}},
		{"purity above 100", PurityTable{Tiers: map[string]PurityTier{"18kt": {Purity: 101}}}},
		{"negative making", PurityTable{Tiers: map[string]PurityTier{"18kt": {Purity: 75, MakingChargesPercent: -1}}}},
		{"negative price", PurityTable{Tiers: map[string]PurityTier{"18kt": {Purity: 75, PricePerGram: -1}}}},
		{"negative diamond", PurityTable{Tiers: map[string]PurityTier{"18kt": {Purity: 75}}, DiamondPricePerCarat: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.table.Validate())
		})
	}
}

// ============================================================================
// Filter and sort options
// ============================================================================

func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.True(t, Filter{SearchQuery: "   "}.IsEmpty())
	assert.False(t, Filter{InStock: true}.IsEmpty())
	assert.False(t, Filter{PriceRange: &PriceRange{Max: 10}}.IsEmpty())
}

func TestIsValidSortOption(t *testing.T) {
	assert.True(t, IsValidSortOption(""))
	for _, o := range ValidSortOptions() {
		assert.True(t, IsValidSortOption(string(o)))
	}
	assert.False(t, IsValidSortOption("popular"))
}
