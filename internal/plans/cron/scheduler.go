package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gbtraders/storefront-api/internal/observability"
	"github.com/gbtraders/storefront-api/internal/plans/domain"
)

// Sweeper is the job the scheduler runs; PlanService satisfies it.
type Sweeper interface {
	ProcessExpiredPlans(ctx context.Context, now time.Time) (domain.ProcessResult, error)
}

// Scheduler runs the daily expired-plan cleanup in-process.
type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
	timeout  time.Duration
}

func NewScheduler(sweeper Sweeper, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		sweeper:  sweeper,
		schedule: schedule,
		timeout:  10 * time.Minute,
	}
}

// Start registers the cleanup job and starts the cron loop.
func (s *Scheduler) Start() error {
	logger := observability.ComponentLogger("scheduler")

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}

	logger.Info().Str("schedule", s.schedule).Msg("cron scheduler started")
	s.cron.Start()
	return nil
}

// Stop stops scheduling and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) run() {
	logger := observability.ComponentLogger("scheduler")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.sweeper.ProcessExpiredPlans(ctx, time.Now().UTC())
	if err != nil {
		observability.CleanupRunsTotal.WithLabelValues("cron", "error").Inc()
		logger.Error().Err(err).Msg("daily cleanup failed")
		return
	}
	observability.CleanupRunsTotal.WithLabelValues("cron", "ok").Inc()
	logger.Info().Int("expired", res.Expired).Msg("daily cleanup completed")
}
