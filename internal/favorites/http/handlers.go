package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/auth"
)

func (h *Handler) List(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}
	h.writeFavorites(c, uid)
}

func (h *Handler) Check(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	ok, err := h.repo.IsFavorite(c.Request.Context(), uid, c.Param("vehicleId"))
	if err != nil {
		respond.Failure(c, "is_favorite", "failed to check favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": ok})
}

func (h *Handler) Add(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}
	vehicleID := strings.TrimSpace(c.Param("vehicleId"))
	if vehicleID == "" {
		respond.BadRequest(c, "vehicleId is required", nil)
		return
	}

	if err := h.repo.AddToFavorites(c.Request.Context(), uid, vehicleID); err != nil {
		respond.Failure(c, "add_favorite", "failed to add favorite", err)
		return
	}
	h.writeFavorites(c, uid)
}

func (h *Handler) Remove(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	if err := h.repo.RemoveFromFavorites(c.Request.Context(), uid, c.Param("vehicleId")); err != nil {
		respond.Failure(c, "remove_favorite", "failed to remove favorite", err)
		return
	}
	h.writeFavorites(c, uid)
}

func (h *Handler) writeFavorites(c *gin.Context, uid string) {
	fav, err := h.repo.GetFavorites(c.Request.Context(), uid)
	if err != nil {
		respond.Failure(c, "get_favorites", "failed to get favorites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicleIds": fav.VehicleIDs})
}
