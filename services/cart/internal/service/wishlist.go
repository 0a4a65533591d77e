package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/services/cart/internal/domain"
	"github.com/utafrali/JewelryGo/services/cart/internal/repository"
)

// MaxWishlistItems bounds the number of records one session can save.
const MaxWishlistItems = 100

// WishlistService manages the saved records of a session.
type WishlistService struct {
	repo    repository.WishlistRepository
	catalog RecordLookup
	logger  *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, catalog RecordLookup, logger *slog.Logger) *WishlistService {
	return &WishlistService{repo: repo, catalog: catalog, logger: logger}
}

// List returns the wishlist of a session. Unknown sessions have an empty wishlist.
func (s *WishlistService) List(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	ids, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return &domain.Wishlist{SessionID: sessionID, RecordIDs: ids}, nil
}

// Add saves a record. Saving a record twice is a no-op.
func (s *WishlistService) Add(ctx context.Context, sessionID, recordID string) (*domain.Wishlist, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if recordID == "" {
		return nil, apperrors.InvalidInput("record id is required")
	}

	current, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Contains(recordID) {
		return current, nil
	}
	if len(current.RecordIDs) >= MaxWishlistItems {
		return nil, apperrors.InvalidInput(fmt.Sprintf("wishlist must not contain more than %d items", MaxWishlistItems))
	}

	if _, err := s.catalog.GetRecord(ctx, recordID); err != nil {
		return nil, fmt.Errorf("look up record: %w", err)
	}
	if err := s.repo.Add(ctx, sessionID, recordID); err != nil {
		return nil, fmt.Errorf("add to wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "record added to wishlist", slog.String("record_id", recordID))
	return s.List(ctx, sessionID)
}

// Remove drops a saved record.
func (s *WishlistService) Remove(ctx context.Context, sessionID, recordID string) (*domain.Wishlist, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if recordID == "" {
		return nil, apperrors.InvalidInput("record id is required")
	}

	removed, err := s.repo.Remove(ctx, sessionID, recordID)
	if err != nil {
		return nil, fmt.Errorf("remove from wishlist: %w", err)
	}
	if !removed {
		return nil, apperrors.NotFound("wishlist item", recordID)
	}

	s.logger.InfoContext(ctx, "record removed from wishlist", slog.String("record_id", recordID))
	return s.List(ctx, sessionID)
}
