package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkgkafka "github.com/utafrali/JewelryGo/pkg/kafka"
	"github.com/utafrali/JewelryGo/pkg/logger"
)

// Catalog topics.
var (
	TopicCatalogReloaded = pkgkafka.Topic("catalog", "reloaded")
	TopicCatalogChanged  = pkgkafka.Topic("catalog", "changed")
)

// Event types carried in the envelope.
const (
	EventCatalogReloaded = "catalog.reloaded"
	EventCatalogChanged  = "catalog.changed"
)

const (
	aggregateTypeCatalog = "catalog"
	sourceCatalogService = "catalog-service"
)

// CatalogReloadedData is the payload of catalog.reloaded.
type CatalogReloadedData struct {
	Version  uint64    `json:"version"`
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	Groups   int       `json:"groups"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Producer publishes catalog events.
type Producer struct {
	publisher pkgkafka.Publisher
	logger    *slog.Logger
}

// NewProducer creates a catalog event producer.
func NewProducer(publisher pkgkafka.Publisher, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, logger: logger}
}

// PublishCatalogReloaded announces a new catalog snapshot.
func (p *Producer) PublishCatalogReloaded(ctx context.Context, data CatalogReloadedData) error {
	evt, err := pkgkafka.NewEvent(EventCatalogReloaded, fmt.Sprintf("v%d", data.Version), aggregateTypeCatalog, sourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create catalog.reloaded event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}
	if err := p.publisher.Publish(ctx, TopicCatalogReloaded, evt); err != nil {
		return fmt.Errorf("publish catalog.reloaded event: %w", err)
	}

	p.logger.DebugContext(ctx, "published catalog.reloaded",
		slog.Uint64("version", data.Version),
		slog.Int("records", data.Records),
	)
	return nil
}
