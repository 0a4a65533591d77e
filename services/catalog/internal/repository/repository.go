package repository

import (
	"context"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// CatalogSource loads the full set of catalog records. Implementations return
// records that have already passed domain.ValidateRecords.
type CatalogSource interface {
	Load(ctx context.Context) ([]domain.ProductRecord, error)
	Name() string
}

// PurityLoader loads the gold purity reference table.
type PurityLoader interface {
	LoadPurity(ctx context.Context) (domain.PurityTable, error)
}
