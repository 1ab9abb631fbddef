package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gbtraders/storefront-api/internal/plans/domain"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

type TokenRepository struct {
	store docstore.Store
	now   func() time.Time
}

func NewTokenRepository(store docstore.Store) *TokenRepository {
	return &TokenRepository{store: store, now: time.Now}
}

func (r *TokenRepository) Get(ctx context.Context, userID string) (*domain.TokenPlan, error) {
	var plan domain.TokenPlan
	err := r.store.Get(ctx, domain.Collection, userID, &plan)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token plan: %w", err)
	}
	return &plan, nil
}

// Save upserts the plan, stamping updatedAt and defaulting planStartedAt.
func (r *TokenRepository) Save(ctx context.Context, plan *domain.TokenPlan) error {
	if !domain.ValidPlan(plan.Plan) {
		return domain.ErrInvalidPlan
	}

	now := r.now().UTC()
	if plan.PlanStartedAt.IsZero() {
		plan.PlanStartedAt = now
	}
	if plan.Status == "" {
		plan.Status = domain.StatusActive
	}
	plan.UpdatedAt = now

	if err := r.store.Set(ctx, domain.Collection, plan.UserID, plan); err != nil {
		return fmt.Errorf("failed to save token plan: %w", err)
	}
	return nil
}

// ListActive returns every plan with status active.
func (r *TokenRepository) ListActive(ctx context.Context) ([]domain.TokenPlan, error) {
	docs, err := r.store.Find(ctx, domain.Collection, docstore.Where("status", domain.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	plans := make([]domain.TokenPlan, 0, len(docs))
	for _, d := range docs {
		var p domain.TokenPlan
		if err := d.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to decode token plan %s: %w", d.ID, err)
		}
		if p.UserID == "" {
			p.UserID = d.ID
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Expire moves the plan to expired and zeroes its tokens.
func (r *TokenRepository) Expire(ctx context.Context, userID string, at time.Time) error {
	if _, err := r.Get(ctx, userID); err != nil {
		return err
	}

	err := r.store.Merge(ctx, domain.Collection, userID, map[string]any{
		"status":    domain.StatusExpired,
		"tokens":    0,
		"updatedAt": at.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to expire token plan: %w", err)
	}
	return nil
}

// ConsumeTokens spends n tokens from an active plan and returns the new balance.
// The balance check and the decrement run in one store transaction, so
// concurrent spends can never take the balance below zero.
func (r *TokenRepository) ConsumeTokens(ctx context.Context, userID string, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("token count must be positive, got %d", n)
	}

	var plan domain.TokenPlan
	remaining := 0
	err := r.store.Update(ctx, domain.Collection, userID, &plan, func() (map[string]any, error) {
		remaining = plan.Tokens
		if plan.Status != domain.StatusActive {
			return nil, domain.ErrPlanNotActive
		}
		if plan.Tokens < n {
			return nil, domain.ErrInsufficientTokens
		}
		remaining = plan.Tokens - n
		return map[string]any{
			"tokens":    remaining,
			"updatedAt": r.now().UTC(),
		}, nil
	})
	switch {
	case err == nil:
		return remaining, nil
	case errors.Is(err, docstore.ErrNotFound):
		return 0, domain.ErrPlanNotFound
	case errors.Is(err, domain.ErrPlanNotActive), errors.Is(err, domain.ErrInsufficientTokens):
		return remaining, err
	}
	return remaining, fmt.Errorf("failed to consume tokens: %w", err)
}
