package http

import (
	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/auth/middleware"
)

// RegisterCleanup mounts the daily cleanup entry point. Only POST runs the
// sweep and it requires the shared cron secret.
func (h *Handler) RegisterCleanup(rg *gin.RouterGroup, cronSecret string) {
	rg.GET("/daily", h.CleanupHealth)
	rg.POST("/daily", middleware.BearerSecretMiddleware(cronSecret), h.RunDailyCleanup)
}

// Register mounts the current user's plan routes. The group must carry
// FirebaseAuthMiddleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetMyPlan)
	rg.POST("/me/consume", h.ConsumeTokens)
}
