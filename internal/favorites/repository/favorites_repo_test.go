package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbtraders/storefront-api/internal/storage/docstore"
	"github.com/gbtraders/storefront-api/internal/testutil"
)

func TestFavoritesRepository(t *testing.T) {
	store, _ := testutil.DocStore(t)
	repo := NewFavoritesRepository(store)
	ctx := context.Background()

	t.Run("absent user has empty set", func(t *testing.T) {
		fav, err := repo.GetFavorites(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", fav.UserID)
		assert.Empty(t, fav.VehicleIDs)
		assert.NotNil(t, fav.VehicleIDs)
	})

	t.Run("add is idempotent", func(t *testing.T) {
		require.NoError(t, repo.AddToFavorites(ctx, "u1", "v1"))
		require.NoError(t, repo.AddToFavorites(ctx, "u1", "v1"))
		require.NoError(t, repo.AddToFavorites(ctx, "u1", "v2"))

		fav, err := repo.GetFavorites(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v2"}, fav.VehicleIDs)
		assert.False(t, fav.UpdatedAt.IsZero())
	})

	t.Run("remove of absent id is a no-op", func(t *testing.T) {
		require.NoError(t, repo.RemoveFromFavorites(ctx, "u1", "v9"))

		fav, err := repo.GetFavorites(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v2"}, fav.VehicleIDs)
	})

	t.Run("remove without a document is a no-op", func(t *testing.T) {
		require.NoError(t, repo.RemoveFromFavorites(ctx, "nobody", "v1"))

		var doc map[string]any
		err := store.Get(ctx, "favorites", "nobody", &doc)
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("remove and is favorite", func(t *testing.T) {
		require.NoError(t, repo.RemoveFromFavorites(ctx, "u1", "v1"))

		ok, err := repo.IsFavorite(ctx, "u1", "v1")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.IsFavorite(ctx, "u1", "v2")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestFavoritesRepository_ConcurrentAdds(t *testing.T) {
	store, _ := testutil.DocStore(t)
	repo := NewFavoritesRepository(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "a", "b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.AddToFavorites(ctx, "u1", id))
		}()
	}
	wg.Wait()

	fav, err := repo.GetFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, fav.VehicleIDs)
}

func TestFavoritesRepository_Unavailable(t *testing.T) {
	store, mr := testutil.DocStore(t)
	repo := NewFavoritesRepository(store)
	mr.Close()

	_, err := repo.GetFavorites(context.Background(), "u1")
	assert.ErrorIs(t, err, docstore.ErrUnavailable)
}
