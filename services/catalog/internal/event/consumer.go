package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/utafrali/JewelryGo/pkg/kafka"
	"github.com/utafrali/JewelryGo/pkg/logger"
)

// CatalogChangedData is the payload of catalog.changed, published by whatever
// edits the underlying catalog store.
type CatalogChangedData struct {
	Reason     string   `json:"reason,omitempty"`
	ProductIDs []string `json:"product_ids,omitempty"`
}

// Reloader rebuilds the in-memory catalog.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloaderFunc adapts a function to Reloader.
type ReloaderFunc func(ctx context.Context) error

// Reload implements Reloader.
func (f ReloaderFunc) Reload(ctx context.Context) error { return f(ctx) }

// NewChangeHandler returns a consumer handler that reloads the catalog on
// catalog.changed and ignores every other event type.
func NewChangeHandler(reloader Reloader, log *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, evt *pkgkafka.Event) error {
		if evt.EventType != EventCatalogChanged {
			log.DebugContext(ctx, "ignoring event", slog.String("event_type", evt.EventType))
			return nil
		}

		var data CatalogChangedData
		if len(evt.Data) > 0 {
			if err := evt.UnmarshalData(&data); err != nil {
				return fmt.Errorf("decode catalog.changed payload: %w", err)
			}
		}
		if evt.CorrelationID != "" {
			ctx = logger.WithCorrelationID(ctx, evt.CorrelationID)
		}

		log.InfoContext(ctx, "catalog change received, reloading",
			slog.String("event_id", evt.EventID),
			slog.String("reason", data.Reason),
			slog.Int("products", len(data.ProductIDs)),
		)
		if err := reloader.Reload(ctx); err != nil {
			return fmt.Errorf("reload after catalog.changed: %w", err)
		}
		return nil
	}
}
