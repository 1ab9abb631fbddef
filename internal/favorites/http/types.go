package http

import "github.com/gbtraders/storefront-api/internal/favorites/repository"

type Handler struct {
	repo *repository.FavoritesRepository
}

func New(repo *repository.FavoritesRepository) *Handler {
	return &Handler{repo: repo}
}
