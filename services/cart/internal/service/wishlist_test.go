package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
)

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Add(ctx context.Context, sessionID, recordID string) error {
	return m.Called(ctx, sessionID, recordID).Error(0)
}

func (m *mockWishlistRepository) Remove(ctx context.Context, sessionID, recordID string) (bool, error) {
	args := m.Called(ctx, sessionID, recordID)
	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepository) List(ctx context.Context, sessionID string) ([]string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestWishlist_ListEmpty(t *testing.T) {
	repo := new(mockWishlistRepository)
	repo.On("List", mock.Anything, testSession).Return(nil, nil)

	w, err := NewWishlistService(repo, new(mockCatalog), newTestLogger()).List(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, testSession, w.SessionID)
	assert.NotNil(t, w.RecordIDs)
	assert.Empty(t, w.RecordIDs)
}

func TestWishlist_Add(t *testing.T) {
	repo := new(mockWishlistRepository)
	catalog := new(mockCatalog)

	repo.On("List", mock.Anything, testSession).Return([]string{}, nil).Once()
	catalog.On("GetRecord", mock.Anything, "ETR-001-RG-6").Return(ringRecord(), nil)
	repo.On("Add", mock.Anything, testSession, "ETR-001-RG-6").Return(nil)
	repo.On("List", mock.Anything, testSession).Return([]string{"ETR-001-RG-6"}, nil).Once()

	w, err := NewWishlistService(repo, catalog, newTestLogger()).Add(context.Background(), testSession, "ETR-001-RG-6")
	require.NoError(t, err)
	assert.Equal(t, []string{"ETR-001-RG-6"}, w.RecordIDs)
	repo.AssertExpectations(t)
}

func TestWishlist_AddTwiceIsNoop(t *testing.T) {
	repo := new(mockWishlistRepository)
	catalog := new(mockCatalog)
	repo.On("List", mock.Anything, testSession).Return([]string{"ETR-001-RG-6"}, nil)

	w, err := NewWishlistService(repo, catalog, newTestLogger()).Add(context.Background(), testSession, "ETR-001-RG-6")
	require.NoError(t, err)
	assert.Len(t, w.RecordIDs, 1)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "GetRecord", mock.Anything, mock.Anything)
}

func TestWishlist_AddUnknownRecord(t *testing.T) {
	repo := new(mockWishlistRepository)
	catalog := new(mockCatalog)
	repo.On("List", mock.Anything, testSession).Return([]string{}, nil)
	catalog.On("GetRecord", mock.Anything, "NOPE").Return(nil, apperrors.NotFound("record", "NOPE"))

	_, err := NewWishlistService(repo, catalog, newTestLogger()).Add(context.Background(), testSession, "NOPE")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestWishlist_AddLimit(t *testing.T) {
	ids := make([]string, MaxWishlistItems)
	for i := range ids {
		ids[i] = "R-" + string(rune('A'+i%26)) + string(rune('0'+i/26))
	}
	repo := new(mockWishlistRepository)
	repo.On("List", mock.Anything, testSession).Return(ids, nil)

	_, err := NewWishlistService(repo, new(mockCatalog), newTestLogger()).Add(context.Background(), testSession, "ETR-001-RG-6")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestWishlist_Remove(t *testing.T) {
	repo := new(mockWishlistRepository)
	repo.On("Remove", mock.Anything, testSession, "ETR-001-RG-6").Return(true, nil)
	repo.On("List", mock.Anything, testSession).Return([]string{}, nil)

	w, err := NewWishlistService(repo, new(mockCatalog), newTestLogger()).Remove(context.Background(), testSession, "ETR-001-RG-6")
	require.NoError(t, err)
	assert.Empty(t, w.RecordIDs)
}

func TestWishlist_RemoveMissing(t *testing.T) {
	repo := new(mockWishlistRepository)
	repo.On("Remove", mock.Anything, testSession, "ETR-001-RG-6").Return(false, nil)

	_, err := NewWishlistService(repo, new(mockCatalog), newTestLogger()).Remove(context.Background(), testSession, "ETR-001-RG-6")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWishlist_RepositoryError(t *testing.T) {
	repo := new(mockWishlistRepository)
	repo.On("List", mock.Anything, testSession).Return(nil, errors.New("redis down"))

	_, err := NewWishlistService(repo, new(mockCatalog), newTestLogger()).List(context.Background(), testSession)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list wishlist")
}

func TestWishlist_RequiresSession(t *testing.T) {
	svc := NewWishlistService(new(mockWishlistRepository), new(mockCatalog), newTestLogger())
	_, err := svc.Add(context.Background(), "", "ETR-001-RG-6")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = svc.Remove(context.Background(), testSession, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
