package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const wishlistKeyPrefix = "wishlist:"

// WishlistRepository keeps each session's wishlist as a Redis set.
type WishlistRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWishlistRepository creates a new Redis-backed wishlist repository.
func NewWishlistRepository(client *redis.Client, ttl time.Duration) *WishlistRepository {
	return &WishlistRepository{client: client, ttl: ttl}
}

// Add saves recordID and refreshes the wishlist expiry.
func (r *WishlistRepository) Add(ctx context.Context, sessionID, recordID string) error {
	key := wishlistKeyPrefix + sessionID
	if _, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, recordID)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	}); err != nil {
		return fmt.Errorf("redis add wishlist item: %w", err)
	}
	return nil
}

// Remove drops recordID and reports whether it was present.
func (r *WishlistRepository) Remove(ctx context.Context, sessionID, recordID string) (bool, error) {
	n, err := r.client.SRem(ctx, wishlistKeyPrefix+sessionID, recordID).Result()
	if err != nil {
		return false, fmt.Errorf("redis remove wishlist item: %w", err)
	}
	return n > 0, nil
}

// List returns the saved record IDs in lexical order.
func (r *WishlistRepository) List(ctx context.Context, sessionID string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, wishlistKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list wishlist: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
