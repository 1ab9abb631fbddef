package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gbtraders/storefront-api/internal/articles/domain"
	"github.com/gbtraders/storefront-api/internal/cache"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

const slugCacheTTL = 5 * time.Minute

// CachePrefix namespaces slug lookups in Redis. Every writer must use the same
// prefix so saves invalidate what the API serves.
const CachePrefix = "articles:"

// slugTypes is the fixed search order for GetBySlug.
var slugTypes = []string{domain.TypeNews, domain.TypeBlog}

type ArticleRepository struct {
	store docstore.Store
	cache *cache.Cache
	now   func() time.Time
}

// NewArticleRepository accepts a nil cache.
func NewArticleRepository(store docstore.Store, c *cache.Cache) *ArticleRepository {
	return &ArticleRepository{store: store, cache: c, now: time.Now}
}

type slugHit struct {
	Article *domain.Article `json:"article"`
	Type    string          `json:"type"`
}

// GetBySlug returns the first article with the slug, searching news before
// blogs, and the type it was found under.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Article, string, error) {
	var hit slugHit
	err := r.cache.Aside(ctx, slugCacheKey(slug, publishedOnly), &hit, slugCacheTTL, func() error {
		for _, t := range slugTypes {
			a, err := r.findBySlug(ctx, t, slug, publishedOnly)
			if err != nil {
				return err
			}
			if a != nil {
				hit = slugHit{Article: a, Type: t}
				return nil
			}
		}
		return domain.ErrArticleNotFound
	})
	if err != nil {
		return nil, "", err
	}
	return hit.Article, hit.Type, nil
}

func (r *ArticleRepository) findBySlug(ctx context.Context, articleType, slug string, publishedOnly bool) (*domain.Article, error) {
	coll, err := domain.CollectionFor(articleType)
	if err != nil {
		return nil, err
	}

	q := docstore.Where("slug", slug)
	if publishedOnly {
		q = q.And("published", true)
	}
	docs, err := r.store.Find(ctx, coll, q.Take(1))
	if err != nil {
		return nil, fmt.Errorf("failed to find %s by slug: %w", articleType, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var a domain.Article
	if err := docs[0].DataTo(&a); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", articleType, docs[0].ID, err)
	}
	if a.ID == "" {
		a.ID = docs[0].ID
	}
	return &a, nil
}

// List returns articles of one type, newest date first.
func (r *ArticleRepository) List(ctx context.Context, articleType string, opts domain.ListOptions) ([]domain.Article, error) {
	coll, err := domain.CollectionFor(articleType)
	if err != nil {
		return nil, err
	}

	var q docstore.Query
	if opts.Category != "" {
		q = q.And("category", opts.Category)
	}
	if opts.Featured {
		q = q.And("featured", true)
	}
	if opts.PublishedOnly {
		q = q.And("published", true)
	}

	docs, err := r.store.Find(ctx, coll, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", articleType, err)
	}

	out := make([]domain.Article, 0, len(docs))
	for _, d := range docs {
		var a domain.Article
		if err := d.DataTo(&a); err != nil {
			return nil, fmt.Errorf("failed to decode %s %s: %w", articleType, d.ID, err)
		}
		if a.ID == "" {
			a.ID = d.ID
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Slug < out[j].Slug
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Save upserts an article into its type's collection and drops any cached
// lookup of its slug, and of its previous slug when it was renamed.
func (r *ArticleRepository) Save(ctx context.Context, articleType string, a *domain.Article) error {
	if err := a.Validate(articleType); err != nil {
		return err
	}
	coll, _ := domain.CollectionFor(articleType)

	var previous domain.Article
	hasPrevious := false
	if a.ID == "" {
		a.ID = uuid.NewString()
	} else {
		err := r.store.Get(ctx, coll, a.ID, &previous)
		switch {
		case err == nil:
			hasPrevious = true
		case errors.Is(err, docstore.ErrNotFound):
		default:
			return fmt.Errorf("failed to load %s %s: %w", articleType, a.ID, err)
		}
	}

	now := r.now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
		if hasPrevious {
			a.CreatedAt = previous.CreatedAt
		}
	}
	a.UpdatedAt = now
	if a.Tags == nil {
		a.Tags = []string{}
	}

	if err := r.store.Set(ctx, coll, a.ID, a); err != nil {
		return fmt.Errorf("failed to save %s: %w", articleType, err)
	}

	keys := []string{slugCacheKey(a.Slug, true), slugCacheKey(a.Slug, false)}
	if hasPrevious && previous.Slug != a.Slug {
		keys = append(keys, slugCacheKey(previous.Slug, true), slugCacheKey(previous.Slug, false))
	}
	_ = r.cache.Delete(ctx, keys...)
	return nil
}

func slugCacheKey(slug string, publishedOnly bool) string {
	return fmt.Sprintf("slug:%s:%t", slug, publishedOnly)
}
