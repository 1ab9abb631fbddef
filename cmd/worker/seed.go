package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gbtraders/storefront-api/internal/articles/domain"
	"github.com/gbtraders/storefront-api/internal/observability"
)

// seedFile is the YAML layout read by seed-articles.
type seedFile struct {
	News  []domain.Article `yaml:"news"`
	Blogs []domain.Article `yaml:"blogs"`
}

type articleSaver interface {
	Save(ctx context.Context, articleType string, a *domain.Article) error
}

func loadSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

func runSeedArticles(ctx context.Context, repo articleSaver, path string) error {
	logger := observability.ComponentLogger("worker")

	f, err := loadSeedFile(path)
	if err != nil {
		return err
	}

	saved := 0
	for _, batch := range []struct {
		typ      string
		articles []domain.Article
	}{
		{domain.TypeNews, f.News},
		{domain.TypeBlog, f.Blogs},
	} {
		for i := range batch.articles {
			a := &batch.articles[i]
			// slug doubles as the id so re-seeding overwrites instead of duplicating
			if a.ID == "" {
				a.ID = a.Slug
			}
			if err := repo.Save(ctx, batch.typ, a); err != nil {
				return fmt.Errorf("failed to seed %s %q: %w", batch.typ, a.Slug, err)
			}
			saved++
		}
	}

	logger.Info().Int("saved", saved).Str("file", path).Msg("articles seeded")
	return nil
}
