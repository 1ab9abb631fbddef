package domain

import (
	"errors"
	"time"
)

// Article types and the collections that hold them. Slug lookups search
// news first, then blogs.
const (
	TypeNews = "news"
	TypeBlog = "blog"

	NewsCollection = "news"
	BlogCollection = "blogs"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrInvalidType     = errors.New("invalid article type")
	ErrInvalidCategory = errors.New("invalid article category")
)

var categories = map[string][]string{
	TypeNews: {"industry", "reviews", "launches", "electric", "motorsport"},
	TypeBlog: {"buying-guide", "maintenance", "selling-tips", "finance", "lifestyle"},
}

// Article is a news item or a blog post. Rating is news only, ReadTime blog only.
type Article struct {
	ID        string    `json:"id" firestore:"id" yaml:"id"`
	Title     string    `json:"title" firestore:"title" yaml:"title"`
	Excerpt   string    `json:"excerpt" firestore:"excerpt" yaml:"excerpt"`
	Content   string    `json:"content" firestore:"content" yaml:"content"`
	Image     string    `json:"image" firestore:"image" yaml:"image"`
	Date      string    `json:"date" firestore:"date" yaml:"date"`
	Slug      string    `json:"slug" firestore:"slug" yaml:"slug"`
	Category  string    `json:"category" firestore:"category" yaml:"category"`
	Tags      []string  `json:"tags" firestore:"tags" yaml:"tags"`
	Author    string    `json:"author" firestore:"author" yaml:"author"`
	Published bool      `json:"published" firestore:"published" yaml:"published"`
	Featured  bool      `json:"featured,omitempty" firestore:"featured" yaml:"featured"`
	Rating    *float64  `json:"rating,omitempty" firestore:"rating,omitempty" yaml:"rating"`
	ReadTime  string    `json:"readTime,omitempty" firestore:"readTime,omitempty" yaml:"readTime"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt" yaml:"-"`
}

// ListOptions filters List. Zero values do not filter; Limit 0 means no limit.
type ListOptions struct {
	Category      string
	Featured      bool
	PublishedOnly bool
	Limit         int
}

// CollectionFor maps an article type to its collection.
func CollectionFor(articleType string) (string, error) {
	switch articleType {
	case TypeNews:
		return NewsCollection, nil
	case TypeBlog:
		return BlogCollection, nil
	}
	return "", ErrInvalidType
}

func ValidCategory(articleType, category string) bool {
	for _, c := range categories[articleType] {
		if c == category {
			return true
		}
	}
	return false
}

// Validate checks the type-specific fields.
func (a *Article) Validate(articleType string) error {
	if _, err := CollectionFor(articleType); err != nil {
		return err
	}
	if !ValidCategory(articleType, a.Category) {
		return ErrInvalidCategory
	}
	if a.Slug == "" || a.Title == "" {
		return errors.New("article needs a title and slug")
	}
	switch articleType {
	case TypeNews:
		if a.Rating != nil && (*a.Rating < 0 || *a.Rating > 5) {
			return errors.New("rating must be between 0 and 5")
		}
		if a.ReadTime != "" {
			return errors.New("news articles have no readTime")
		}
	case TypeBlog:
		if a.Rating != nil {
			return errors.New("blog posts have no rating")
		}
	}
	return nil
}
