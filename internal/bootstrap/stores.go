package bootstrap

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/gbtraders/storefront-api/config"
	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/storage/blobstore"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	PingTO   time.Duration
}

// OpenRedis returns nil, nil when no address is configured.
func OpenRedis(ctx context.Context, opt RedisOptions) (*redis.Client, error) {
	if opt.Addr == "" {
		return nil, nil
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// OpenDocStore returns the configured document store, instrumented.
func OpenDocStore(ctx context.Context, cfg *config.Config, app *firebase.App, rdb *redis.Client) (docstore.Store, error) {
	switch cfg.Storage.DocStoreBackend {
	case config.DocStoreRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis docstore selected but redis is not configured")
		}
		return docstore.Instrument(docstore.NewRedisStore(rdb)), nil
	default:
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore client: %w", err)
		}
		return docstore.Instrument(docstore.NewFirestoreStore(client)), nil
	}
}

func OpenBlobStore(ctx context.Context, cfg *config.Config, app *firebase.App) (blobstore.Store, error) {
	switch cfg.Storage.BlobStoreBackend {
	case config.BlobStoreS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		return blobstore.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Storage.S3Bucket), nil
	default:
		client, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage client: %w", err)
		}
		bucket, err := client.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("storage bucket: %w", err)
		}
		return blobstore.NewGCSStore(bucket), nil
	}
}

func OpenIdentity(ctx context.Context, app *firebase.App) (*auth.FirebaseProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return auth.NewFirebaseProvider(client), nil
}
