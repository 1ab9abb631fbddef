package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gbtraders/storefront-api/internal/dealers/domain"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

type DealerRepository struct {
	store docstore.Store
	now   func() time.Time
}

func NewDealerRepository(store docstore.Store) *DealerRepository {
	return &DealerRepository{store: store, now: time.Now}
}

// GetDealerProfile returns ErrDealerProfileNotFound when the dealer has not saved a profile yet.
func (r *DealerRepository) GetDealerProfile(ctx context.Context, uid string) (*domain.DealerProfile, error) {
	var profile domain.DealerProfile
	err := r.store.Get(ctx, domain.Collection, uid, &profile)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrDealerProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dealer profile: %w", err)
	}
	return &profile, nil
}

// SaveDealerProfile upserts the whole profile, stamping updatedAt and keeping
// the original createdAt.
func (r *DealerRepository) SaveDealerProfile(ctx context.Context, profile *domain.DealerProfile) error {
	now := r.now().UTC()

	existing, err := r.GetDealerProfile(ctx, profile.UID)
	switch {
	case err == nil:
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, domain.ErrDealerProfileNotFound):
		profile.CreatedAt = now
	default:
		return err
	}
	profile.UpdatedAt = now

	if err := r.store.Set(ctx, domain.Collection, profile.UID, profile); err != nil {
		return fmt.Errorf("failed to save dealer profile: %w", err)
	}
	return nil
}

// UpdateDealerProfile merges the given fields into an existing profile.
func (r *DealerRepository) UpdateDealerProfile(ctx context.Context, uid string, fields map[string]any) error {
	if _, err := r.GetDealerProfile(ctx, uid); err != nil {
		return err
	}

	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = r.now().UTC()

	if err := r.store.Merge(ctx, domain.Collection, uid, merged); err != nil {
		return fmt.Errorf("failed to update dealer profile: %w", err)
	}
	return nil
}

// ValidateDealerProfile reports whether every required field is filled in.
// An absent profile is incomplete with every required field missing.
func (r *DealerRepository) ValidateDealerProfile(ctx context.Context, uid string) (*domain.ValidationResult, error) {
	profile, err := r.GetDealerProfile(ctx, uid)
	if errors.Is(err, domain.ErrDealerProfileNotFound) {
		return &domain.ValidationResult{
			MissingFields: append([]string(nil), domain.RequiredFields...),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	missing := profile.MissingFields()
	return &domain.ValidationResult{
		IsComplete:    len(missing) == 0,
		Profile:       profile,
		MissingFields: missing,
	}, nil
}
