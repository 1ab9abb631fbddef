package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbtraders/storefront-api/internal/testutil"
)

func TestAssetPrefix(t *testing.T) {
	p, err := AssetPrefix(AssetDealer, "u1")
	require.NoError(t, err)
	assert.Equal(t, "dealers/u1/", p)

	p, err = AssetPrefix(AssetVehicles, "u1")
	require.NoError(t, err)
	assert.Equal(t, "vehicles/u1/", p)

	_, err = AssetPrefix("avatars", "u1")
	assert.Error(t, err)
}

func TestStoragePurger_PurgeUserAssets(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes only the user's namespace", func(t *testing.T) {
		blobs := testutil.NewBlobs(
			"vehicles/u1/a.jpg", "vehicles/u1/b.jpg", "vehicles/u10/c.jpg", "dealers/u1/logo.png",
		)
		res, err := NewStoragePurger(blobs).PurgeUserAssets(ctx, "u1", AssetVehicles)
		require.NoError(t, err)

		assert.Equal(t, PurgeResult{Deleted: 2}, res)
		assert.Equal(t, []string{"dealers/u1/logo.png", "vehicles/u10/c.jpg"}, blobs.Remaining())
	})

	t.Run("failures are counted and do not stop siblings", func(t *testing.T) {
		blobs := testutil.NewBlobs("dealers/u1/a", "dealers/u1/b", "dealers/u1/c")
		blobs.FailPaths["dealers/u1/b"] = true

		res, err := NewStoragePurger(blobs).PurgeUserAssets(ctx, "u1", AssetDealer)
		require.NoError(t, err)

		assert.Equal(t, PurgeResult{Deleted: 2, Failed: 1}, res)
		assert.Equal(t, []string{"dealers/u1/b"}, blobs.Remaining())
	})

	t.Run("list failure is returned", func(t *testing.T) {
		blobs := testutil.NewBlobs()
		blobs.ListErr = errors.New("bucket gone")
		_, err := NewStoragePurger(blobs).PurgeUserAssets(ctx, "u1", AssetDealer)
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewStoragePurger(testutil.NewBlobs()).PurgeUserAssets(ctx, "u1", "avatars")
		assert.Error(t, err)
	})
}
