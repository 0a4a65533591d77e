package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/utafrali/JewelryGo/pkg/kafka"
	"github.com/utafrali/JewelryGo/pkg/logger"
	"github.com/utafrali/JewelryGo/services/cart/internal/domain"
)

// Cart and checkout topics.
var (
	TopicCartUpdated            = pkgkafka.Topic("cart", "updated")
	TopicCartCleared            = pkgkafka.Topic("cart", "cleared")
	TopicCheckoutSessionCreated = pkgkafka.Topic("checkout", "session_created")
)

// Event types carried in the envelope.
const (
	EventCartUpdated            = "cart.updated"
	EventCartCleared            = "cart.cleared"
	EventCheckoutSessionCreated = "checkout.session_created"
)

const (
	aggregateTypeCart = "cart"
	sourceCartService = "cart-service"
)

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID      string         `json:"cart_id"`
	SessionID   string         `json:"session_id"`
	Version     int            `json:"version"`
	Items       []CartItemData `json:"items"`
	ItemCount   int            `json:"item_count"`
	TotalAmount int64          `json:"total_amount"`
	Currency    string         `json:"currency"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	RecordID  string `json:"record_id"`
	ProductID string `json:"product_id"`
	MetalType string `json:"metal_type"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// CheckoutSessionCreatedData is the payload for a checkout.session_created event.
type CheckoutSessionCreatedData struct {
	CheckoutID  string `json:"checkout_id"`
	CartID      string `json:"cart_id"`
	CartVersion int    `json:"cart_version"`
	Provider    string `json:"provider"`
	AmountTotal int64  `json:"amount_total"`
	Currency    string `json:"currency"`
}

// Producer publishes cart domain events to Kafka.
type Producer struct {
	publisher pkgkafka.Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer for the cart service.
func NewProducer(publisher pkgkafka.Publisher, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, logger: logger}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			RecordID:  item.RecordID,
			ProductID: item.ProductID,
			MetalType: item.MetalType,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	data := CartUpdatedData{
		CartID:      cart.ID,
		SessionID:   cart.SessionID,
		Version:     cart.Version,
		Items:       items,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
		Currency:    cart.Currency,
	}
	if err := p.publish(ctx, TopicCartUpdated, EventCartUpdated, cart.ID, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("cart_id", cart.ID),
		slog.Int("item_count", data.ItemCount),
	)
	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, cartID, sessionID string) error {
	return p.publish(ctx, TopicCartCleared, EventCartCleared, cartID, CartClearedData{SessionID: sessionID})
}

// PublishCheckoutSessionCreated publishes a checkout.session_created event.
func (p *Producer) PublishCheckoutSessionCreated(ctx context.Context, session *domain.CheckoutSession) error {
	data := CheckoutSessionCreatedData{
		CheckoutID:  session.ID,
		CartID:      session.CartID,
		CartVersion: session.CartVersion,
		Provider:    session.Provider,
		AmountTotal: session.AmountTotal,
		Currency:    session.Currency,
	}
	return p.publish(ctx, TopicCheckoutSessionCreated, EventCheckoutSessionCreated, session.CartID, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID string, data any) error {
	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateTypeCart, sourceCartService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}
	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return nil
}
