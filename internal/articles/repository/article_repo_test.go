package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbtraders/storefront-api/internal/articles/domain"
	"github.com/gbtraders/storefront-api/internal/cache"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
	"github.com/gbtraders/storefront-api/internal/testutil"
)

func newsItem(slug, category, date string, published bool) *domain.Article {
	rating := 4.5
	return &domain.Article{
		Title: "News " + slug, Slug: slug, Category: category, Date: date,
		Published: published, Rating: &rating, Author: "Desk",
	}
}

func blogPost(slug, category, date string, published bool) *domain.Article {
	return &domain.Article{
		Title: "Blog " + slug, Slug: slug, Category: category, Date: date,
		Published: published, ReadTime: "5 min read", Author: "Editor",
	}
}

func TestArticleRepository_GetBySlug(t *testing.T) {
	store, mr := testutil.DocStore(t)
	repo := NewArticleRepository(store, cache.New(testutil.RedisClient(t, mr), "articles:"))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.TypeNews, newsItem("ev-range", "electric", "2025-02-01", true)))
	require.NoError(t, repo.Save(ctx, domain.TypeBlog, blogPost("ev-range", "buying-guide", "2025-02-02", true)))
	require.NoError(t, repo.Save(ctx, domain.TypeBlog, blogPost("first-car", "buying-guide", "2025-01-10", true)))
	require.NoError(t, repo.Save(ctx, domain.TypeBlog, blogPost("draft", "finance", "2025-01-11", false)))

	t.Run("news wins over blogs", func(t *testing.T) {
		a, typ, err := repo.GetBySlug(ctx, "ev-range", true)
		require.NoError(t, err)
		assert.Equal(t, domain.TypeNews, typ)
		assert.Equal(t, "News ev-range", a.Title)
	})

	t.Run("blog only slug", func(t *testing.T) {
		a, typ, err := repo.GetBySlug(ctx, "first-car", true)
		require.NoError(t, err)
		assert.Equal(t, domain.TypeBlog, typ)
		assert.Equal(t, "5 min read", a.ReadTime)
	})

	t.Run("unpublished hidden unless asked", func(t *testing.T) {
		_, _, err := repo.GetBySlug(ctx, "draft", true)
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)

		_, typ, err := repo.GetBySlug(ctx, "draft", false)
		require.NoError(t, err)
		assert.Equal(t, domain.TypeBlog, typ)
	})

	t.Run("hits are cached and saves invalidate", func(t *testing.T) {
		assert.True(t, mr.Exists("articles:slug:first-car:true"))
		assert.False(t, mr.Exists("articles:slug:missing:true"))

		a, _, err := repo.GetBySlug(ctx, "first-car", true)
		require.NoError(t, err)
		a.Title = "Your first car"
		require.NoError(t, repo.Save(ctx, domain.TypeBlog, a))
		assert.False(t, mr.Exists("articles:slug:first-car:true"))

		a, _, err = repo.GetBySlug(ctx, "first-car", true)
		require.NoError(t, err)
		assert.Equal(t, "Your first car", a.Title)
	})
}

func TestArticleRepository_SaveRenamedSlugDropsOldCache(t *testing.T) {
	store, mr := testutil.DocStore(t)
	repo := NewArticleRepository(store, cache.New(testutil.RedisClient(t, mr), CachePrefix))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.TypeNews, newsItem("old", "electric", "2025-02-01", true)))
	a, _, err := repo.GetBySlug(ctx, "old", true)
	require.NoError(t, err)
	require.True(t, mr.Exists(CachePrefix+"slug:old:true"))
	created := a.CreatedAt

	a.Slug = "new"
	require.NoError(t, repo.Save(ctx, domain.TypeNews, a))
	assert.False(t, mr.Exists(CachePrefix+"slug:old:true"))

	_, _, err = repo.GetBySlug(ctx, "old", true)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)

	renamed, _, err := repo.GetBySlug(ctx, "new", true)
	require.NoError(t, err)
	assert.Equal(t, a.ID, renamed.ID)
	assert.True(t, created.Equal(renamed.CreatedAt))
}

func TestArticleRepository_GetBySlug_NoCache(t *testing.T) {
	store, _ := testutil.DocStore(t)
	repo := NewArticleRepository(store, nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.TypeBlog, blogPost("only-blog", "lifestyle", "2025-01-01", true)))
	_, typ, err := repo.GetBySlug(ctx, "only-blog", true)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeBlog, typ)
}

func TestArticleRepository_List(t *testing.T) {
	store, _ := testutil.DocStore(t)
	repo := NewArticleRepository(store, nil)
	ctx := context.Background()

	featured := newsItem("b", "reviews", "2025-03-02", true)
	featured.Featured = true
	for _, a := range []*domain.Article{
		newsItem("a", "reviews", "2025-03-01", true),
		featured,
		newsItem("c", "motorsport", "2025-03-03", true),
		newsItem("d", "reviews", "2025-03-04", false),
	} {
		require.NoError(t, repo.Save(ctx, domain.TypeNews, a))
	}

	got, err := repo.List(ctx, domain.TypeNews, domain.ListOptions{PublishedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, slugs(got))

	got, err = repo.List(ctx, domain.TypeNews, domain.ListOptions{Category: "reviews", PublishedOnly: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, slugs(got))

	got, err = repo.List(ctx, domain.TypeNews, domain.ListOptions{Featured: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, slugs(got))

	_, err = repo.List(ctx, "podcast", domain.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestArticleRepository_SaveValidates(t *testing.T) {
	store, _ := testutil.DocStore(t)
	repo := NewArticleRepository(store, nil)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Save(ctx, domain.TypeNews, newsItem("x", "finance", "2025-01-01", true)), domain.ErrInvalidCategory)
	assert.Error(t, repo.Save(ctx, domain.TypeNews, blogPost("x", "industry", "2025-01-01", true)))
	assert.Error(t, repo.Save(ctx, domain.TypeBlog, newsItem("x", "finance", "2025-01-01", true)))

	docs, err := store.Find(ctx, domain.NewsCollection, docstore.Query{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func slugs(articles []domain.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Slug
	}
	return out
}
