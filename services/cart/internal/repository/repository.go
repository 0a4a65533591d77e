package repository

import (
	"context"

	"github.com/utafrali/JewelryGo/services/cart/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves the cart of a session. Missing carts yield ErrNotFound.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// SaveIfVersion stores cart only when the stored version still equals
	// expected (0 for a cart that does not exist yet). On success cart.Version
	// is advanced. It returns false when another writer got there first.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expected int) (bool, error)

	// Delete removes the cart of a session.
	Delete(ctx context.Context, sessionID string) error
}

// WishlistRepository stores the saved record IDs of each session.
type WishlistRepository interface {
	Add(ctx context.Context, sessionID, recordID string) error
	Remove(ctx context.Context, sessionID, recordID string) (bool, error)
	List(ctx context.Context, sessionID string) ([]string, error)
}
