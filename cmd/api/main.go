package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"

	"github.com/gbtraders/storefront-api/config"
	"github.com/gbtraders/storefront-api/internal/bootstrap"
	plancron "github.com/gbtraders/storefront-api/internal/plans/cron"
	plansrepo "github.com/gbtraders/storefront-api/internal/plans/repository"
	plansservice "github.com/gbtraders/storefront-api/internal/plans/service"
	"github.com/gbtraders/storefront-api/internal/observability"
)

const serviceName = "gbtraders-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := observability.SetupLogger(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.ConfigureGin(cfg.App.Environment)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.App.Environment,
			Release:     cfg.App.Version,
		}); err != nil {
			logger.Warn().Err(err).Msg("sentry init failed, continuing without error reporting")
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()

	app, err := bootstrap.NewFirebaseApp(ctx, cfg.Firebase)
	if err != nil {
		logger.Fatal().Err(err).Msg("firebase init failed")
	}

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("redis init failed")
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	store, err := bootstrap.OpenDocStore(ctx, cfg, app, rdb)
	if err != nil {
		logger.Fatal().Err(err).Msg("docstore init failed")
	}
	defer func() { _ = store.Close() }()

	blobs, err := bootstrap.OpenBlobStore(ctx, cfg, app)
	if err != nil {
		logger.Fatal().Err(err).Msg("blobstore init failed")
	}

	identity, err := bootstrap.OpenIdentity(ctx, app)
	if err != nil {
		logger.Fatal().Err(err).Msg("identity init failed")
	}

	plans := plansservice.NewPlanService(plansrepo.NewTokenRepository(store))

	var scheduler *plancron.Scheduler
	if cfg.Cleanup.EnableScheduler {
		scheduler = plancron.NewScheduler(plans, cfg.Cleanup.Schedule)
		if err := scheduler.Start(); err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.Cleanup.Schedule).Msg("scheduler start failed")
		}
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Config:      cfg,
		Store:       store,
		Blobs:       blobs,
		Identity:    identity,
		Redis:       rdb,
		Plans:       plans,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
