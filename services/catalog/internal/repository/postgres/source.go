// Package postgres reads catalog records from PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/JewelryGo/pkg/database"
	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// Querier is the subset of *pgxpool.Pool the source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const loadRecordsQuery = `SELECT id, product_id, variant_id, name, category, description,
	metal_type, metal_karat, gold_purity, size, price_inr, stock_quantity,
	gold_weight, diamond_weight, primary_image, all_images, all_videos,
	featured, listed_at
FROM product_records
WHERE active
ORDER BY position, id`

// Source loads active rows of product_records in catalog order.
type Source struct {
	db     Querier
	tracer *database.QueryTracer
}

// NewSource creates a PostgreSQL catalog source.
func NewSource(db Querier, tracer *database.QueryTracer) *Source {
	return &Source{db: db, tracer: tracer}
}

// Name implements repository.CatalogSource.
func (s *Source) Name() string {
	return "postgres"
}

// Load implements repository.CatalogSource.
func (s *Source) Load(ctx context.Context) (records []domain.ProductRecord, err error) {
	ctx, end := s.tracer.Trace(ctx, "LoadRecords", loadRecordsQuery)
	defer func() { end(err) }()

	rows, err := s.db.Query(ctx, loadRecordsQuery)
	if err != nil {
		return nil, fmt.Errorf("query product records: %w", err)
	}
	defer rows.Close()

	records = make([]domain.ProductRecord, 0)
	for rows.Next() {
		var (
			rec      domain.ProductRecord
			metal    string
			images   []string
			videos   []string
			listedAt *time.Time
		)
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.VariantID, &rec.Name, &rec.Category, &rec.Description,
			&metal, &rec.MetalKarat, &rec.GoldPurity, &rec.Size, &rec.PriceINR, &rec.StockQuantity,
			&rec.GoldWeight, &rec.DiamondWeight, &rec.PrimaryImage, &images, &videos,
			&rec.Featured, &listedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product record: %w", err)
		}
		rec.MetalType = domain.MetalType(metal)
		if len(images) > 0 {
			rec.AllImages = images
		}
		if len(videos) > 0 {
			rec.AllVideos = videos
		}
		if listedAt != nil {
			rec.ListedAt = listedAt.UTC()
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product records: %w", err)
	}

	if err := domain.ValidateRecords(records); err != nil {
		return nil, fmt.Errorf("validate product records: %w", err)
	}
	return records, nil
}
