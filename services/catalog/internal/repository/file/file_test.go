package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// ============================================================================
// Formats
// ============================================================================

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"catalog.json":     FormatJSON,
		"catalog.YAML":     FormatYAML,
		"data/catalog.yml": FormatYAML,
		"catalog.csv":      FormatCSV,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("catalog.xlsx")
	assert.Error(t, err)
}

// ============================================================================
// Source
// ============================================================================

func TestSource_LoadJSON(t *testing.T) {
	src, err := NewSource(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)
	assert.Equal(t, "file:testdata/catalog.json", src.Name())

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "ETR-001-RG-6", first.ID)
	assert.Equal(t, domain.MetalRoseGold, first.MetalType)
	assert.Equal(t, domain.PathList{"/videos/eterna/eterna-R1.mp4"}, first.AllVideos)
	assert.True(t, first.ListedAt.Equal(time.Date(2025, 2, 14, 9, 30, 0, 0, time.UTC)))

	hoops := records[2]
	assert.Equal(t, domain.StandardSize, hoops.Size)
	assert.Equal(t, "/images/lumiere/lumiere-Details.jpg", hoops.PrimaryImage)
	assert.True(t, hoops.PriceOnRequest())
}

func TestSource_LoadCSV(t *testing.T) {
	src, err := NewSource(filepath.Join("testdata", "catalog.csv"))
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.PathList{"/images/aurora/aurora-P1.jpg", "/images/aurora/aurora-P2.jpg"}, records[0].AllImages)
	assert.Nil(t, records[0].AllVideos)
	assert.True(t, records[0].Featured)
	assert.Equal(t, "/images/aurora/aurora-P1.jpg", records[0].PrimaryImage)
	assert.True(t, records[0].ListedAt.Equal(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)))

	assert.False(t, records[1].Featured)
	assert.True(t, records[1].ListedAt.IsZero())
	assert.Equal(t, domain.PathList{"/videos/aurora/aurora-P1.mp4"}, records[1].AllVideos)
}

func TestSource_MissingFile(t *testing.T) {
	src, err := NewSource(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSource_CancelledContext(t *testing.T) {
	src, err := NewSource(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// ============================================================================
// Decode
// ============================================================================

func TestDecode_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		errMsg string
	}{
		{"unknown json field", FormatJSON, `[{"id":"a","sku":"x"}]`, "unknown field"},
		{"unknown yaml field", FormatYAML, "- id: a\n  sku: x\n", "sku"},
		{"bad metal", FormatCSV, "id,product_id,name,category,metal_type\na,p,Ring,Rings,Silver\n", "MetalType"},
		{"bad date", FormatCSV, "id,product_id,name,category,metal_type,listed_at\na,p,Ring,Rings,Platinum,yesterday\n", "listed_at"},
		{"duplicate ids", FormatCSV, "id,product_id,name,category,metal_type\na,p,Ring,Rings,Platinum\na,p,Ring,Rings,Platinum\n", "duplicate id"},
		{"negative price", FormatJSON, `[{"id":"a","product_id":"p","name":"n","category":"c","metal_type":"Platinum","price_inr":-5}]`, "PriceINR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDecode_EmptyYAMLIsEmptyCatalog(t *testing.T) {
	records, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestEncodeDecode_AllFormatsAgree(t *testing.T) {
	src, err := NewSource(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)
	want, err := src.Load(context.Background())
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatYAML, FormatCSV} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, want))

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("%s mismatch (-want +got):\n%s", format, diff)
			}
		})
	}
}

// ============================================================================
// Purity file
// ============================================================================

func TestPurityFile_Default(t *testing.T) {
	table, err := NewPurityFile("").LoadPurity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPurityTable(), table)
}

func TestPurityFile_Override(t *testing.T) {
	table, err := NewPurityFile(filepath.Join("testdata", "purity.yaml")).LoadPurity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{18, 22}, table.Karats())
	assert.Equal(t, 55000.0, table.DiamondPricePerCarat)

	tier, err := table.Tier(18)
	require.NoError(t, err)
	assert.Equal(t, 6200.0, tier.PricePerGram)

	_, err = table.Tier(14)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPurity)
}

func TestPurityFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "purity.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers:\n  18kt:\n    purity: 140\n"), 0o600))

	_, err := NewPurityFile(path).LoadPurity(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0,100]")
}
