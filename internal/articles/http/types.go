package http

import "github.com/gbtraders/storefront-api/internal/articles/repository"

type Handler struct {
	repo *repository.ArticleRepository
}

func New(repo *repository.ArticleRepository) *Handler {
	return &Handler{repo: repo}
}

type slugQuery struct {
	Published *bool `form:"published"`
}

type listQuery struct {
	Category string `form:"category"`
	Featured bool   `form:"featured"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
