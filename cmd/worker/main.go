package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gbtraders/storefront-api/config"
	articlesrepo "github.com/gbtraders/storefront-api/internal/articles/repository"
	"github.com/gbtraders/storefront-api/internal/bootstrap"
	"github.com/gbtraders/storefront-api/internal/cache"
	"github.com/gbtraders/storefront-api/internal/observability"
	plansrepo "github.com/gbtraders/storefront-api/internal/plans/repository"
	plansservice "github.com/gbtraders/storefront-api/internal/plans/service"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

const usage = `usage:
  worker cleanup                  expire plans past their expiry date
  worker seed-articles <file>     load news and blog articles from YAML`

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain returns the exit code so deferred closes run before the process exits.
func runMain(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return 1
	}
	logger := observability.SetupLogger(cfg.App.LogLevel, cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	switch args[0] {
	case "cleanup":
		store, rdb, err := openStores(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("store init failed")
			return 1
		}
		defer closeStores(store, rdb)
		err = runCleanup(ctx, plansservice.NewPlanService(plansrepo.NewTokenRepository(store)), time.Now().UTC())
		if err != nil {
			logger.Error().Err(err).Str("command", args[0]).Msg("command failed")
			return 1
		}
	case "seed-articles":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, usage)
			return 2
		}
		store, rdb, err := openStores(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("store init failed")
			return 1
		}
		defer closeStores(store, rdb)
		// same cache as the API so seeded slugs are not served stale
		repo := articlesrepo.NewArticleRepository(store, cache.New(rdb, articlesrepo.CachePrefix))
		if err := runSeedArticles(ctx, repo, args[1]); err != nil {
			logger.Error().Err(err).Str("command", args[0]).Msg("command failed")
			return 1
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n%s\n", args[0], usage)
		return 2
	}
	return 0
}

// openStores returns the document store and the Redis client, which is nil
// when REDIS_ADDR is unset.
func openStores(ctx context.Context, cfg *config.Config) (docstore.Store, *redis.Client, error) {
	app, err := bootstrap.NewFirebaseApp(ctx, cfg.Firebase)
	if err != nil {
		return nil, nil, err
	}
	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	store, err := bootstrap.OpenDocStore(ctx, cfg, app, rdb)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, nil, err
	}
	return store, rdb, nil
}

func closeStores(store docstore.Store, rdb *redis.Client) {
	_ = store.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
}
