package service

import (
	"context"
	"time"

	"github.com/gbtraders/storefront-api/internal/observability"
	"github.com/gbtraders/storefront-api/internal/plans/domain"
	"github.com/gbtraders/storefront-api/internal/plans/repository"
)

type PlanService struct {
	repo *repository.TokenRepository
}

func NewPlanService(repo *repository.TokenRepository) *PlanService {
	return &PlanService{repo: repo}
}

func (s *PlanService) GetPlan(ctx context.Context, userID string) (*domain.TokenPlan, error) {
	return s.repo.Get(ctx, userID)
}

func (s *PlanService) ConsumeTokens(ctx context.Context, userID string, n int) (int, error) {
	return s.repo.ConsumeTokens(ctx, userID, n)
}

// ProcessExpiredPlans expires every active plan whose expiry is at or before now.
//
// Only active plans are selected and expiry is terminal, so running it twice
// for the same instant expires nothing the second time. A failure on one plan
// is counted and the sweep continues; only a failed listing aborts it.
func (s *PlanService) ProcessExpiredPlans(ctx context.Context, now time.Time) (domain.ProcessResult, error) {
	logger := observability.Op(ctx, "process_expired_plans")

	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	res := domain.ProcessResult{Checked: len(active)}
	for i := range active {
		plan := &active[i]
		if !plan.IsExpiredAt(now) {
			continue
		}
		if err := s.repo.Expire(ctx, plan.UserID, now); err != nil {
			res.Failed++
			logger.Warn().Err(err).Str("user_id", plan.UserID).Msg("failed to expire plan")
			continue
		}
		res.Expired++
		observability.PlansExpiredTotal.Inc()
	}

	logger.Info().
		Int("checked", res.Checked).
		Int("expired", res.Expired).
		Int("failed", res.Failed).
		Msg("expired plans processed")
	return res, nil
}
