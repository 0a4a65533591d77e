package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/pkg/pagination"
	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
	"github.com/utafrali/JewelryGo/services/catalog/internal/event"
	"github.com/utafrali/JewelryGo/services/catalog/internal/filter"
	"github.com/utafrali/JewelryGo/services/catalog/internal/media"
	"github.com/utafrali/JewelryGo/services/catalog/internal/pricing"
	"github.com/utafrali/JewelryGo/services/catalog/internal/repository"
	"github.com/utafrali/JewelryGo/services/catalog/internal/variant"
)

// EventPublisher announces catalog reloads.
type EventPublisher interface {
	PublishCatalogReloaded(ctx context.Context, data event.CatalogReloadedData) error
}

// CatalogService serves grouped, filtered and priced catalog views from an
// in-memory snapshot. Reads never block on reloads.
type CatalogService struct {
	source   repository.CatalogSource
	purity   repository.PurityLoader
	producer EventPublisher
	logger   *slog.Logger
	now      func() time.Time

	current atomic.Pointer[snapshot]
	version atomic.Uint64
	reloads singleflight.Group
}

// NewCatalogService creates a catalog service. producer may be nil.
func NewCatalogService(source repository.CatalogSource, purity repository.PurityLoader, producer EventPublisher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		source:   source,
		purity:   purity,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// ListQuery selects one page of a filtered, sorted listing.
type ListQuery struct {
	Filter domain.Filter
	Sort   domain.SortOption
	Page   pagination.Params
}

// QuoteInput asks for a price. With RecordID set the record's own data is
// priced; otherwise GoldWeight and DiamondWeight are. Karat 0 means
// domain.DefaultKarat, and for a record it asks for the list price.
type QuoteInput struct {
	RecordID      string
	GoldWeight    float64
	DiamondWeight float64
	Karat         int
}

// Reload loads the catalog and purity table and swaps in a new snapshot.
// Concurrent calls share one load. On failure the previous snapshot stays
// active.
func (s *CatalogService) Reload(ctx context.Context) (ReloadSummary, error) {
	v, err, shared := s.reloads.Do("reload", func() (any, error) {
		return s.reload(ctx)
	})
	if err != nil {
		return ReloadSummary{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "catalog reload coalesced")
	}
	return v.(ReloadSummary), nil
}

func (s *CatalogService) reload(ctx context.Context) (ReloadSummary, error) {
	start := s.now()

	records, err := s.source.Load(ctx)
	if err != nil {
		catalogReloads.WithLabelValues("error").Inc()
		return ReloadSummary{}, fmt.Errorf("load catalog from %s: %w", s.source.Name(), err)
	}
	table, err := s.purity.LoadPurity(ctx)
	if err != nil {
		catalogReloads.WithLabelValues("error").Inc()
		return ReloadSummary{}, fmt.Errorf("load purity table: %w", err)
	}
	if err := table.Validate(); err != nil {
		catalogReloads.WithLabelValues("error").Inc()
		return ReloadSummary{}, fmt.Errorf("validate purity table: %w", err)
	}

	loadedAt := s.now()
	snap := newSnapshot(records, table, ReloadSummary{
		Version:  s.version.Add(1),
		Source:   s.source.Name(),
		LoadedAt: loadedAt.UTC(),
		Duration: loadedAt.Sub(start),
	})
	s.current.Store(snap)

	catalogReloads.WithLabelValues("success").Inc()
	catalogReloadDuration.Observe(snap.summary.Duration.Seconds())
	catalogRecords.Set(float64(snap.summary.Records))
	catalogGroups.Set(float64(snap.summary.Groups))
	catalogLastReload.Set(float64(loadedAt.Unix()))

	s.logger.InfoContext(ctx, "catalog reloaded",
		slog.Uint64("version", snap.summary.Version),
		slog.String("source", snap.summary.Source),
		slog.Int("records", snap.summary.Records),
		slog.Int("groups", snap.summary.Groups),
		slog.Duration("duration", snap.summary.Duration),
	)

	if s.producer != nil {
		if err := s.producer.PublishCatalogReloaded(ctx, event.CatalogReloadedData{
			Version:  snap.summary.Version,
			Source:   snap.summary.Source,
			Records:  snap.summary.Records,
			Groups:   snap.summary.Groups,
			LoadedAt: snap.summary.LoadedAt,
		}); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish catalog.reloaded event",
				slog.Uint64("version", snap.summary.Version),
				slog.String("error", err.Error()),
			)
		}
	}

	return snap.summary, nil
}

func (s *CatalogService) snapshot() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, apperrors.ServiceUnavailable("catalog has not been loaded")
	}
	return snap, nil
}

// Status returns the summary of the active snapshot.
func (s *CatalogService) Status() (ReloadSummary, bool) {
	snap := s.current.Load()
	if snap == nil {
		return ReloadSummary{}, false
	}
	return snap.summary, true
}

// Ready reports an error until the first successful reload.
func (s *CatalogService) Ready(_ context.Context) error {
	_, err := s.snapshot()
	return err
}

func normalizeQuery(q ListQuery) (ListQuery, error) {
	if !domain.IsValidSortOption(string(q.Sort)) {
		return q, apperrors.InvalidInput(fmt.Sprintf("unknown sort option %q", q.Sort))
	}
	if pr := q.Filter.PriceRange; pr != nil && (pr.Min < 0 || pr.Max < pr.Min) {
		return q, apperrors.InvalidInput("price range must satisfy 0 <= min <= max")
	}
	if q.Page.PerPage == 0 {
		q.Page = pagination.DefaultParams()
	}
	return q, nil
}

// ListGroups returns one page of product groups and the total match count.
func (s *CatalogService) ListGroups(ctx context.Context, q ListQuery) ([]domain.ProductGroup, int, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, 0, err
	}
	q, err = normalizeQuery(q)
	if err != nil {
		return nil, 0, err
	}

	matched := filter.SortGroups(filter.Groups(snap.groups, q.Filter), q.Sort)
	s.logger.DebugContext(ctx, "listed product groups",
		slog.Int("matched", len(matched)),
		slog.String("sort", string(q.Sort)),
	)
	return pagination.Slice(matched, q.Page), len(matched), nil
}

// GetGroup returns the group for a product ID or slug.
func (s *CatalogService) GetGroup(_ context.Context, idOrSlug string) (*domain.ProductGroup, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	productID := idOrSlug
	if id, ok := snap.bySlug[idOrSlug]; ok {
		productID = id
	}
	g, ok := variant.Find(snap.records, productID)
	if !ok {
		return nil, apperrors.NotFound("product", idOrSlug)
	}
	return g, nil
}

// ListRecords returns one page of SKU records and the total match count.
func (s *CatalogService) ListRecords(_ context.Context, q ListQuery) ([]domain.ProductRecord, int, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, 0, err
	}
	q, err = normalizeQuery(q)
	if err != nil {
		return nil, 0, err
	}

	matched := filter.SortRecords(filter.Records(snap.records, q.Filter), q.Sort)
	return pagination.Slice(matched, q.Page), len(matched), nil
}

// GetRecord returns a single SKU record.
func (s *CatalogService) GetRecord(_ context.Context, id string) (*domain.ProductRecord, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	i, ok := snap.byRecord[id]
	if !ok {
		return nil, apperrors.NotFound("record", id)
	}
	rec := snap.records[i]
	return &rec, nil
}

// Quote prices a record or a raw weight combination at a karat tier.
func (s *CatalogService) Quote(ctx context.Context, in QuoteInput) (*pricing.Breakdown, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	karat := in.Karat
	if karat == 0 {
		karat = domain.DefaultKarat
	}

	var b pricing.Breakdown
	if in.RecordID != "" {
		rec, err := s.GetRecord(ctx, in.RecordID)
		if err != nil {
			return nil, err
		}
		if rec.GoldWeight == 0 && rec.PriceOnRequest() {
			return nil, apperrors.PriceOnRequest(rec.ID)
		}
		if in.Karat == 0 {
			b, err = snap.calc.ListPrice(*rec, karat)
		} else {
			b, err = snap.calc.QuoteRecord(*rec, karat)
		}
		if err != nil {
			return nil, fmt.Errorf("quote record %s: %w", rec.ID, err)
		}
	} else {
		b, err = snap.calc.CalculateDynamicPrice(in.GoldWeight, in.DiamondWeight, karat)
		if err != nil {
			return nil, fmt.Errorf("quote weights: %w", err)
		}
	}
	return &b, nil
}

// Media returns the images and videos of a product shown in metal. An empty
// metal selects the base variant's metal.
func (s *CatalogService) Media(ctx context.Context, idOrSlug, metal string) (media.Selection, error) {
	if metal != "" && !domain.IsValidMetalType(metal) {
		return media.Selection{}, apperrors.InvalidInput(fmt.Sprintf("unknown metal type %q", metal))
	}
	g, err := s.GetGroup(ctx, idOrSlug)
	if err != nil {
		return media.Selection{}, err
	}
	return media.SelectGroup(*g, domain.MetalType(metal)), nil
}

// Facets returns counts for building filter controls.
func (s *CatalogService) Facets(_ context.Context) (Facets, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Facets{}, err
	}
	return snap.facets, nil
}

// PurityTiers returns the active purity table.
func (s *CatalogService) PurityTiers(_ context.Context) (domain.PurityTable, error) {
	snap, err := s.snapshot()
	if err != nil {
		return domain.PurityTable{}, err
	}
	return snap.calc.Table(), nil
}
