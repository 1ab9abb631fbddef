package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/auth/domain"
	"github.com/gbtraders/storefront-api/internal/auth/repository"
	"github.com/gbtraders/storefront-api/internal/observability"
)

type AuthService struct {
	userRepo *repository.UserRepository
	identity auth.Provider
}

func NewAuthService(userRepo *repository.UserRepository, identity auth.Provider) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		identity: identity,
	}
}

// GetUser retrieves a user document by Firebase UID
func (s *AuthService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	return s.userRepo.Get(ctx, uid)
}

// CreateUser writes the user document for a freshly signed-up Firebase user.
// It does not create a dealer profile, even for role=dealer.
func (s *AuthService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if !domain.ValidRole(req.Role) {
		return nil, domain.ErrInvalidRole
	}

	user := &domain.User{
		UID:       req.UID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Country:   req.Country,
		Role:      req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the profile of an existing user. A role change sets
// the role claim first, as SetRole does, so the claim and the document agree.
// The identity provider's display name follows the document; failing to sync
// it does not fail the update.
func (s *AuthService) UpdateProfile(ctx context.Context, uid string, req *domain.UpdateProfileRequest) error {
	if !domain.ValidRole(req.Role) {
		return domain.ErrInvalidRole
	}

	current, err := s.userRepo.Get(ctx, uid)
	if err != nil {
		return err
	}
	if current.Role != req.Role {
		if err := s.setRoleClaim(ctx, uid, req.Role); err != nil {
			return err
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, uid, req); err != nil {
		return err
	}

	displayName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	if err := s.identity.UpdateDisplayName(ctx, uid, displayName); err != nil {
		logger := observability.Op(ctx, "update_profile")
		logger.Warn().Err(err).Str("uid", uid).Msg("failed to sync display name")
	}
	return nil
}

// SetRole stores the role as a custom claim, so the next ID token the user
// refreshes carries it, then mirrors it into the user document. The document
// must exist before the claim is touched.
func (s *AuthService) SetRole(ctx context.Context, uid, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}

	if _, err := s.userRepo.Get(ctx, uid); err != nil {
		return err
	}
	if err := s.setRoleClaim(ctx, uid, role); err != nil {
		return err
	}

	return s.userRepo.SetRole(ctx, uid, role)
}

func (s *AuthService) setRoleClaim(ctx context.Context, uid, role string) error {
	if err := s.identity.SetCustomClaims(ctx, uid, map[string]any{"role": role}); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to set role claim: %w", err)
	}
	return nil
}

// DeleteUser removes the user document and then the identity record.
//
// The document goes first because it can be put back: if the identity
// deletion fails, the snapshot taken beforehand is restored. If the document
// deletion fails, the identity record has not been touched.
func (s *AuthService) DeleteUser(ctx context.Context, uid string) error {
	logger := observability.Op(ctx, "delete_user")

	snapshot, err := s.userRepo.Get(ctx, uid)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to load user before delete: %w", err)
	}

	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return err
	}

	err = s.identity.DeleteUser(ctx, uid)
	if err == nil || errors.Is(err, auth.ErrUserNotFound) {
		logger.Info().Str("uid", uid).Msg("user deleted")
		return nil
	}

	identityErr := fmt.Errorf("%w: %v", domain.ErrIdentityDelete, err)
	if snapshot == nil {
		return identityErr
	}

	if restoreErr := s.userRepo.Restore(ctx, snapshot); restoreErr != nil {
		logger.Error().Err(restoreErr).Str("uid", uid).
			Msg("user document lost: identity delete failed and restore failed")
		return errors.Join(identityErr, fmt.Errorf("%w: %v", domain.ErrCompensationFailed, restoreErr))
	}

	logger.Warn().Err(err).Str("uid", uid).Msg("identity delete failed, user document restored")
	return identityErr
}
