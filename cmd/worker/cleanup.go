package main

import (
	"context"
	"time"

	"github.com/gbtraders/storefront-api/internal/observability"
	"github.com/gbtraders/storefront-api/internal/plans/cron"
)

func runCleanup(ctx context.Context, sweeper cron.Sweeper, now time.Time) error {
	logger := observability.ComponentLogger("worker")

	res, err := sweeper.ProcessExpiredPlans(ctx, now)
	if err != nil {
		observability.CleanupRunsTotal.WithLabelValues("cli", "error").Inc()
		return err
	}
	observability.CleanupRunsTotal.WithLabelValues("cli", "ok").Inc()

	logger.Info().
		Int("checked", res.Checked).
		Int("expired", res.Expired).
		Int("failed", res.Failed).
		Msg("cleanup finished")
	return nil
}
