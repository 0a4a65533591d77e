package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/services/cart/internal/domain"
	"github.com/utafrali/JewelryGo/services/cart/internal/provider"
	"github.com/utafrali/JewelryGo/services/cart/internal/repository"
)

// recordLookupConcurrency bounds parallel catalog calls during checkout.
const recordLookupConcurrency = 4

// CheckoutEventPublisher announces created checkout sessions. Implementations may be nil.
type CheckoutEventPublisher interface {
	PublishCheckoutSessionCreated(ctx context.Context, session *domain.CheckoutSession) error
}

// CheckoutURLs are the pages the payment provider redirects back to.
type CheckoutURLs struct {
	SuccessURL string
	CancelURL  string
}

// CheckoutService turns a cart into a hosted payment session.
type CheckoutService struct {
	carts     repository.CartRepository
	catalog   RecordLookup
	provider  provider.Provider
	publisher CheckoutEventPublisher
	urls      CheckoutURLs
	logger    *slog.Logger
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service. publisher may be nil.
func NewCheckoutService(carts repository.CartRepository, catalog RecordLookup, p provider.Provider, publisher CheckoutEventPublisher, urls CheckoutURLs, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		catalog:   catalog,
		provider:  p,
		publisher: publisher,
		urls:      urls,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// IdempotencyKey identifies one version of a cart towards the payment
// provider, so retried checkouts of an unchanged cart reuse one session.
func IdempotencyKey(cart *domain.Cart) string {
	return cart.ID + ":" + strconv.Itoa(cart.Version)
}

// CreateSession re-verifies every cart line against the catalog and creates
// a checkout session with the configured provider.
func (s *CheckoutService) CreateSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	if err := s.verifyLines(ctx, cart); err != nil {
		return nil, err
	}

	input := &provider.SessionInput{
		CartID:         cart.ID,
		SessionID:      sessionID,
		Currency:       cart.Currency,
		Items:          make([]provider.LineItem, len(cart.Items)),
		SuccessURL:     s.urls.SuccessURL,
		CancelURL:      s.urls.CancelURL,
		IdempotencyKey: IdempotencyKey(cart),
	}
	for i, item := range cart.Items {
		input.Items[i] = provider.LineItem{
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	result, err := s.provider.CreateCheckoutSession(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	session := &domain.CheckoutSession{
		ID:             result.ProviderSessionID,
		CartID:         cart.ID,
		CartVersion:    cart.Version,
		Provider:       s.provider.Name(),
		URL:            result.URL,
		AmountTotal:    cart.TotalAmount(),
		Currency:       cart.Currency,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      s.now(),
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCheckoutSessionCreated(ctx, session); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish checkout.session_created event",
				slog.String("cart_id", cart.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("cart_id", cart.ID),
		slog.String("provider", session.Provider),
		slog.Int64("amount_total", session.AmountTotal),
	)
	return session, nil
}

// verifyLines checks that every line is still purchasable at the quantity and
// price stored in the cart.
func (s *CheckoutService) verifyLines(ctx context.Context, cart *domain.Cart) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recordLookupConcurrency)

	for _, item := range cart.Items {
		g.Go(func() error {
			record, err := s.catalog.GetRecord(gctx, item.RecordID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.Conflict(fmt.Sprintf("record %s is no longer available", item.RecordID))
				}
				return fmt.Errorf("look up record %s: %w", item.RecordID, err)
			}
			switch {
			case record.StockQuantity < item.Quantity:
				return apperrors.OutOfStock(record.ID)
			case record.PriceOnRequest():
				return apperrors.PriceOnRequest(record.ID)
			case record.PriceINR != item.UnitPrice:
				return apperrors.Conflict(fmt.Sprintf("price of %s has changed", record.ID))
			}
			return nil
		})
	}
	return g.Wait()
}
