package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gbtraders/storefront-api/internal/auth/domain"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

type UserRepository struct {
	store docstore.Store
	now   func() time.Time
}

func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store, now: time.Now}
}

// Get retrieves a user by their Firebase UID
func (r *UserRepository) Get(ctx context.Context, uid string) (*domain.User, error) {
	var user domain.User
	err := r.store.Get(ctx, domain.Collection, uid, &user)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create upserts the user document, preserving createdAt when the document already exists
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := r.now().UTC()

	existing, err := r.Get(ctx, user.UID)
	switch {
	case err == nil:
		user.CreatedAt = existing.CreatedAt
	case errors.Is(err, domain.ErrUserNotFound):
		user.CreatedAt = now
	default:
		return err
	}
	user.UpdatedAt = now

	if err := r.store.Set(ctx, domain.Collection, user.UID, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateProfile merges the editable profile fields into an existing user document
func (r *UserRepository) UpdateProfile(ctx context.Context, uid string, req *domain.UpdateProfileRequest) error {
	fields := map[string]any{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"country":   req.Country,
		"role":      req.Role,
		"updatedAt": r.now().UTC(),
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}

	return r.updateExisting(ctx, uid, "update profile", fields)
}

// SetRole updates the role of an existing user document
func (r *UserRepository) SetRole(ctx context.Context, uid, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	return r.updateExisting(ctx, uid, "set role", map[string]any{
		"role":      role,
		"updatedAt": r.now().UTC(),
	})
}

// updateExisting merges fields only if the document exists; it never creates one.
func (r *UserRepository) updateExisting(ctx context.Context, uid, op string, fields map[string]any) error {
	var current domain.User
	err := r.store.Update(ctx, domain.Collection, uid, &current, func() (map[string]any, error) {
		return fields, nil
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	if err := r.store.Delete(ctx, domain.Collection, uid); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Restore writes a previously loaded document back verbatim.
func (r *UserRepository) Restore(ctx context.Context, user *domain.User) error {
	if err := r.store.Set(ctx, domain.Collection, user.UID, user); err != nil {
		return fmt.Errorf("failed to restore user: %w", err)
	}
	return nil
}
