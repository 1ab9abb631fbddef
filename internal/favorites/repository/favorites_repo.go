package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gbtraders/storefront-api/internal/favorites/domain"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

const vehicleIDsField = "vehicleIds"

type FavoritesRepository struct {
	store docstore.Store
	now   func() time.Time
}

func NewFavoritesRepository(store docstore.Store) *FavoritesRepository {
	return &FavoritesRepository{store: store, now: time.Now}
}

// GetFavorites returns an empty set for a user who never saved a favorite.
func (r *FavoritesRepository) GetFavorites(ctx context.Context, userID string) (*domain.Favorites, error) {
	var fav domain.Favorites
	err := r.store.Get(ctx, domain.Collection, userID, &fav)
	if errors.Is(err, docstore.ErrNotFound) {
		return &domain.Favorites{UserID: userID, VehicleIDs: []string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	if fav.VehicleIDs == nil {
		fav.VehicleIDs = []string{}
	}
	return &fav, nil
}

// AddToFavorites creates the document if needed and unions the vehicle id in.
func (r *FavoritesRepository) AddToFavorites(ctx context.Context, userID, vehicleID string) error {
	err := r.store.AddToSet(ctx, domain.Collection, userID, vehicleIDsField, vehicleID, map[string]any{
		"userId":    userID,
		"updatedAt": r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFromFavorites is a no-op when the user has no favorites document.
func (r *FavoritesRepository) RemoveFromFavorites(ctx context.Context, userID, vehicleID string) error {
	err := r.store.RemoveFromSet(ctx, domain.Collection, userID, vehicleIDsField, vehicleID, map[string]any{
		"updatedAt": r.now().UTC(),
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *FavoritesRepository) IsFavorite(ctx context.Context, userID, vehicleID string) (bool, error) {
	fav, err := r.GetFavorites(ctx, userID)
	if err != nil {
		return false, err
	}
	return slices.Contains(fav.VehicleIDs, vehicleID), nil
}
