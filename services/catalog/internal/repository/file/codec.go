package file

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// Format is a catalog file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
	}
}

// csvRow is the flat CSV layout. Media lists are "|"-separated and
// listed_at is RFC 3339 or a plain date.
type csvRow struct {
	ID            string          `csv:"id"`
	ProductID     string          `csv:"product_id"`
	VariantID     int             `csv:"variant_id"`
	Name          string          `csv:"name"`
	Category      string          `csv:"category"`
	Description   string          `csv:"description"`
	MetalType     string          `csv:"metal_type"`
	MetalKarat    string          `csv:"metal_karat"`
	GoldPurity    string          `csv:"gold_purity"`
	Size          string          `csv:"size"`
	PriceINR      int64           `csv:"price_inr"`
	StockQuantity int             `csv:"stock_quantity"`
	GoldWeight    float64         `csv:"gold_weight"`
	DiamondWeight float64         `csv:"diamond_weight"`
	PrimaryImage  string          `csv:"primary_image"`
	AllImages     domain.PathList `csv:"all_images"`
	AllVideos     domain.PathList `csv:"all_videos"`
	Featured      bool            `csv:"featured"`
	ListedAt      string          `csv:"listed_at"`
}

const dateLayout = "2006-01-02"

func (row csvRow) record() (domain.ProductRecord, error) {
	rec := domain.ProductRecord{
		ID:            row.ID,
		ProductID:     row.ProductID,
		VariantID:     row.VariantID,
		Name:          row.Name,
		Category:      row.Category,
		Description:   row.Description,
		MetalType:     domain.MetalType(row.MetalType),
		MetalKarat:    row.MetalKarat,
		GoldPurity:    row.GoldPurity,
		Size:          row.Size,
		PriceINR:      row.PriceINR,
		StockQuantity: row.StockQuantity,
		GoldWeight:    row.GoldWeight,
		DiamondWeight: row.DiamondWeight,
		PrimaryImage:  row.PrimaryImage,
		AllImages:     row.AllImages,
		AllVideos:     row.AllVideos,
		Featured:      row.Featured,
	}
	if s := strings.TrimSpace(row.ListedAt); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			if t, err = time.Parse(dateLayout, s); err != nil {
				return domain.ProductRecord{}, fmt.Errorf("record %q: listed_at %q is not RFC 3339 or YYYY-MM-DD", row.ID, s)
			}
		}
		rec.ListedAt = t.UTC()
	}
	return rec, nil
}

func rowFromRecord(rec domain.ProductRecord) csvRow {
	row := csvRow{
		ID:            rec.ID,
		ProductID:     rec.ProductID,
		VariantID:     rec.VariantID,
		Name:          rec.Name,
		Category:      rec.Category,
		Description:   rec.Description,
		MetalType:     string(rec.MetalType),
		MetalKarat:    rec.MetalKarat,
		GoldPurity:    rec.GoldPurity,
		Size:          rec.Size,
		PriceINR:      rec.PriceINR,
		StockQuantity: rec.StockQuantity,
		GoldWeight:    rec.GoldWeight,
		DiamondWeight: rec.DiamondWeight,
		PrimaryImage:  rec.PrimaryImage,
		AllImages:     rec.AllImages,
		AllVideos:     rec.AllVideos,
		Featured:      rec.Featured,
	}
	if !rec.ListedAt.IsZero() {
		row.ListedAt = rec.ListedAt.UTC().Format(time.RFC3339)
	}
	return row
}

// Decode reads records in format from r and validates them.
func Decode(r io.Reader, format Format) ([]domain.ProductRecord, error) {
	var records []domain.ProductRecord

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&records); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	case FormatCSV:
		var rows []csvRow
		if err := gocsv.Unmarshal(r, &rows); err != nil {
			return nil, fmt.Errorf("decode csv catalog: %w", err)
		}
		records = make([]domain.ProductRecord, 0, len(rows))
		for _, row := range rows {
			rec, err := row.record()
			if err != nil {
				return nil, fmt.Errorf("decode csv catalog: %w", err)
			}
			records = append(records, rec)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	if records == nil {
		records = []domain.ProductRecord{}
	}
	if err := domain.ValidateRecords(records); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return records, nil
}

// Encode writes records to w in format.
func Encode(w io.Writer, format Format, records []domain.ProductRecord) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode yaml catalog: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		rows := make([]csvRow, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rowFromRecord(rec))
		}
		if err := gocsv.Marshal(&rows, w); err != nil {
			return fmt.Errorf("encode csv catalog: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported catalog format %q", format)
	}
}
