package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/observability"
)

// RunDailyCleanup expires due token plans.
func (h *Handler) RunDailyCleanup(c *gin.Context) {
	logger := observability.Op(c.Request.Context(), "daily_cleanup")
	now := h.now().UTC()

	res, err := h.plans.ProcessExpiredPlans(c.Request.Context(), now)
	if err != nil {
		observability.CleanupRunsTotal.WithLabelValues("http", "error").Inc()
		logger.Error().Err(err).Msg("daily cleanup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"message":   "daily cleanup failed",
			"code":      respond.CodeInternal,
			"error":     "daily cleanup failed",
			"timestamp": now.Format(time.RFC3339),
		})
		return
	}

	observability.CleanupRunsTotal.WithLabelValues("http", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "daily cleanup completed",
		"timestamp": now.Format(time.RFC3339),
		"result":    res,
	})
}

// CleanupHealth lets the scheduler platform check the endpoint is deployed.
func (h *Handler) CleanupHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"endpoint":  "daily-cleanup",
		"method":    http.MethodPost,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
