package http

import "github.com/gin-gonic/gin"

// Register mounts the notification routes. The group must carry
// FirebaseAuthMiddleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("/read-all", h.MarkAllRead)
	rg.POST("/offer-events", h.OfferEvent)
	rg.POST("/:id/read", h.MarkRead)
	rg.DELETE("/:id", h.Delete)
}
