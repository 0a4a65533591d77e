package redis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/services/cart/internal/domain"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func sampleCart() *domain.Cart {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Cart{
		ID:        "cart-001",
		SessionID: "sess-001",
		Items: []domain.CartItem{
			{
				RecordID:  "ETR-001-RG-6",
				ProductID: "ETR-001",
				Name:      "Eterna Solitaire Ring",
				MetalType: "Rose Gold",
				Size:      "6",
				UnitPrice: 106400,
				Quantity:  1,
				ImageURL:  "/images/eterna/eterna-R1.jpg",
			},
		},
		Currency:  domain.Currency,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	cart := sampleCart()
	cart.Version = 3
	data, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:"+cart.SessionID, string(data)))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)
	assert.Equal(t, 3, got.Version)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "ETR-001-RG-6", got.Items[0].RecordID)
	assert.Equal(t, int64(106400), got.Items[0].UnitPrice)
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_CorruptData(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	require.NoError(t, mr.Set("cart:sess-x", "{not json"))

	_, err := repo.Get(context.Background(), "sess-x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal cart")
}

// ---------------------------------------------------------------------------
// SaveIfVersion
// ---------------------------------------------------------------------------

func TestCartRepository_SaveIfVersion_CreateAndUpdate(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)
	ctx := context.Background()

	cart := sampleCart()
	ok, err := repo.SaveIfVersion(ctx, cart, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, cart.Version)
	assert.Equal(t, 24*time.Hour, mr.TTL("cart:sess-001"))

	cart.Items[0].Quantity = 2
	ok, err = repo.SaveIfVersion(ctx, cart, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, cart.Version)

	got, err := repo.Get(ctx, "sess-001")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCartRepository_SaveIfVersion_StaleVersion(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	first := sampleCart()
	ok, err := repo.SaveIfVersion(ctx, first, 0)
	require.NoError(t, err)
	require.True(t, ok)

	stale := sampleCart()
	stale.Items = nil
	ok, err = repo.SaveIfVersion(ctx, stale, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, stale.Version)

	got, err := repo.Get(ctx, "sess-001")
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestCartRepository_SaveIfVersion_DeletedMeanwhile(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)

	cart := sampleCart()
	ok, err := repo.SaveIfVersion(context.Background(), cart, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartRepository_SaveIfVersion_ConcurrentWriters(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	base := sampleCart()
	ok, err := repo.SaveIfVersion(ctx, base, 0)
	require.NoError(t, err)
	require.True(t, ok)

	const writers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			c := sampleCart()
			c.Items[0].Quantity = q
			ok, err := repo.SaveIfVersion(ctx, c, 1)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i + 2)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	got, err := repo.Get(ctx, "sess-001")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	_, err := repo.SaveIfVersion(ctx, sampleCart(), 0)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "sess-001"))
	assert.False(t, mr.Exists("cart:sess-001"))

	// Deleting a missing cart is not an error.
	assert.NoError(t, repo.Delete(ctx, "sess-001"))
}

// ---------------------------------------------------------------------------
// Wishlist
// ---------------------------------------------------------------------------

func TestWishlistRepository(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewWishlistRepository(client, 72*time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "sess-1", "LUM-004-YG"))
	require.NoError(t, repo.Add(ctx, "sess-1", "AUR-010-PT-8"))
	require.NoError(t, repo.Add(ctx, "sess-1", "LUM-004-YG"))
	assert.Equal(t, 72*time.Hour, mr.TTL("wishlist:sess-1"))

	ids, err := repo.List(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"AUR-010-PT-8", "LUM-004-YG"}, ids)

	removed, err := repo.Remove(ctx, "sess-1", "AUR-010-PT-8")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "sess-1", "AUR-010-PT-8")
	require.NoError(t, err)
	assert.False(t, removed)

	ids, err = repo.List(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
