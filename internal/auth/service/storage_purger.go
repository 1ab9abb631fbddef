package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gbtraders/storefront-api/internal/observability"
	"github.com/gbtraders/storefront-api/internal/storage/blobstore"
)

// Asset types, one storage namespace each.
const (
	AssetDealer   = "dealer"
	AssetVehicles = "vehicles"
)

const purgeConcurrency = 8

type PurgeResult struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// StoragePurger deletes every object a user uploaded under one namespace.
type StoragePurger struct {
	blobs blobstore.Store
}

func NewStoragePurger(blobs blobstore.Store) *StoragePurger {
	return &StoragePurger{blobs: blobs}
}

// AssetPrefix returns the object prefix for a user's assets. The trailing
// slash keeps uid "u1" from matching "u10".
func AssetPrefix(assetType, uid string) (string, error) {
	switch assetType {
	case AssetDealer:
		return "dealers/" + uid + "/", nil
	case AssetVehicles:
		return "vehicles/" + uid + "/", nil
	default:
		return "", fmt.Errorf("unknown asset type %q", assetType)
	}
}

// PurgeUserAssets deletes concurrently. One failed delete does not cancel the
// others; failures are counted and logged, not retried.
func (p *StoragePurger) PurgeUserAssets(ctx context.Context, uid, assetType string) (PurgeResult, error) {
	logger := observability.Op(ctx, "purge_user_assets")

	prefix, err := AssetPrefix(assetType, uid)
	if err != nil {
		return PurgeResult{}, err
	}

	paths, err := p.blobs.List(ctx, prefix)
	if err != nil {
		return PurgeResult{}, err
	}

	var deleted, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(purgeConcurrency)

	for _, path := range paths {
		g.Go(func() error {
			if err := p.blobs.Delete(ctx, path); err != nil {
				failed.Add(1)
				observability.BlobDeletesTotal.WithLabelValues(assetType, "error").Inc()
				logger.Warn().Err(err).Str("path", path).Msg("object delete failed")
				return err
			}
			deleted.Add(1)
			observability.BlobDeletesTotal.WithLabelValues(assetType, "ok").Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn().Err(err).Str("uid", uid).Int64("failed", failed.Load()).Msg("storage purge incomplete")
	}

	res := PurgeResult{Deleted: int(deleted.Load()), Failed: int(failed.Load())}
	logger.Info().Str("uid", uid).Str("type", assetType).Int("deleted", res.Deleted).Msg("storage purge finished")
	return res, nil
}
