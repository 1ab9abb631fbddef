package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/articles/domain"
)

// GetBySlug looks the slug up in news, then blogs. Only published articles
// are returned unless published=false is passed.
func (h *Handler) GetBySlug(c *gin.Context) {
	var q slugQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BadRequest(c, "invalid query", err)
		return
	}
	publishedOnly := q.Published == nil || *q.Published

	article, articleType, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"), publishedOnly)
	if errors.Is(err, domain.ErrArticleNotFound) {
		respond.NotFound(c, "article not found")
		return
	}
	if err != nil {
		respond.Failure(c, "get_article_by_slug", "failed to get article", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article, "type": articleType})
}

// List returns published articles of one type (news or blog).
func (h *Handler) List(c *gin.Context) {
	articleType := c.Param("type")
	if _, err := domain.CollectionFor(articleType); err != nil {
		respond.BadRequest(c, "type must be news or blog", nil)
		return
	}

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BadRequest(c, "invalid query", err)
		return
	}
	if q.Category != "" && !domain.ValidCategory(articleType, q.Category) {
		respond.BadRequest(c, "unknown category for "+articleType, nil)
		return
	}

	articles, err := h.repo.List(c.Request.Context(), articleType, domain.ListOptions{
		Category:      q.Category,
		Featured:      q.Featured,
		PublishedOnly: true,
		Limit:         q.Limit,
	})
	if err != nil {
		respond.Failure(c, "list_articles", "failed to list articles", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}
