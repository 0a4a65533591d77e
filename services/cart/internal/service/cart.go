package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/services/cart/internal/domain"
	"github.com/utafrali/JewelryGo/services/cart/internal/repository"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
	MaxQuantityPerItem = 10
	// MaxItemsPerCart is the maximum number of distinct lines allowed in a cart.
	MaxItemsPerCart = 25
)

// RecordLookup fetches catalog records by ID.
type RecordLookup interface {
	GetRecord(ctx context.Context, recordID string) (*domain.Record, error)
}

// CartEventPublisher announces cart changes. Implementations may be nil.
type CartEventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, cartID, sessionID string) error
}

// AddItemInput holds the parameters for adding a record to the cart.
type AddItemInput struct {
	RecordID string `json:"record_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1,lte=10"`
}

// UpdateQuantityInput holds the parameters for updating a line quantity.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=10"`
}

// CartService implements the business logic for cart operations.
type CartService struct {
	repo      repository.CartRepository
	catalog   RecordLookup
	publisher CartEventPublisher
	logger    *slog.Logger
	cartTTL   time.Duration
	now       func() time.Time
}

// NewCartService creates a new cart service. publisher may be nil.
func NewCartService(repo repository.CartRepository, catalog RecordLookup, publisher CartEventPublisher, logger *slog.Logger, cartTTL time.Duration) *CartService {
	return &CartService{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
		cartTTL:   cartTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetCart retrieves the cart of a session. If no cart exists, returns an empty cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return s.getOrCreateCart(ctx, sessionID)
}

// AddItem adds a catalog record to the cart, merging with an existing line for
// the same record. The record is looked up so that the line carries current
// price and stock; the merged quantity is capped at the available stock.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.RecordID == "" {
		return nil, apperrors.InvalidInput("record id is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	record, err := s.purchasable(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	expectedVersion := cart.Version

	quantity := input.Quantity
	idx := cart.FindItemIndex(record.ID)
	if idx >= 0 {
		quantity += cart.Items[idx].Quantity
		if quantity > MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
		}
	} else if len(cart.Items) >= MaxItemsPerCart {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
	}
	quantity = capToStock(quantity, record)

	line := record.Snapshot(quantity)
	if idx >= 0 {
		cart.Items[idx] = line
	} else {
		cart.Items = append(cart.Items, line)
	}

	if err := s.save(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("cart_id", cart.ID),
		slog.String("record_id", record.ID),
		slog.Int("quantity", quantity),
	)
	return cart, nil
}

// UpdateItemQuantity sets the quantity of a cart line. A quantity of 0 removes it.
func (s *CartService) UpdateItemQuantity(ctx context.Context, sessionID, recordID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if recordID == "" {
		return nil, apperrors.InvalidInput("record id is required")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, sessionID, recordID)
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart item", recordID)
		}
		return nil, fmt.Errorf("get cart for update: %w", err)
	}
	expectedVersion := cart.Version

	idx := cart.FindItemIndex(recordID)
	if idx < 0 {
		return nil, apperrors.NotFound("cart item", recordID)
	}

	record, err := s.purchasable(ctx, recordID)
	if err != nil {
		return nil, err
	}
	quantity = capToStock(quantity, record)
	cart.Items[idx] = record.Snapshot(quantity)

	if err := s.save(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("cart_id", cart.ID),
		slog.String("record_id", recordID),
		slog.Int("quantity", quantity),
	)
	return cart, nil
}

// RemoveItem removes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, recordID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if recordID == "" {
		return nil, apperrors.InvalidInput("record id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart item", recordID)
		}
		return nil, fmt.Errorf("get cart for remove: %w", err)
	}
	expectedVersion := cart.Version

	if !cart.RemoveItem(recordID) {
		return nil, apperrors.NotFound("cart item", recordID)
	}

	if err := s.save(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("cart_id", cart.ID),
		slog.String("record_id", recordID),
	)
	return cart, nil
}

// ClearCart removes the cart of a session. Clearing a missing cart is a no-op.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get cart for clear: %w", err)
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCartCleared(ctx, cart.ID, sessionID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
				slog.String("cart_id", cart.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("cart_id", cart.ID))
	return nil
}

// purchasable looks a record up and rejects records that cannot be bought.
func (s *CartService) purchasable(ctx context.Context, recordID string) (*domain.Record, error) {
	record, err := s.catalog.GetRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("look up record: %w", err)
	}
	if !record.InStock() {
		return nil, apperrors.OutOfStock(record.ID)
	}
	if record.PriceOnRequest() {
		return nil, apperrors.PriceOnRequest(record.ID)
	}
	return record, nil
}

// save stores cart with optimistic locking and announces the change.
func (s *CartService) save(ctx context.Context, cart *domain.Cart, expectedVersion int) error {
	cart.Touch(s.now(), s.cartTTL)

	ok, err := s.repo.SaveIfVersion(ctx, cart, expectedVersion)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if !ok {
		return apperrors.Conflict("cart was modified concurrently, please retry")
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCartUpdated(ctx, cart); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
				slog.String("cart_id", cart.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// getOrCreateCart retrieves the cart of a session, creating an empty one if it does not exist.
func (s *CartService) getOrCreateCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// newEmptyCart creates a new empty cart for the given session.
func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := s.now()
	return &domain.Cart{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		Currency:  domain.Currency,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}

func capToStock(quantity int, record *domain.Record) int {
	if quantity > record.StockQuantity {
		return record.StockQuantity
	}
	return quantity
}
