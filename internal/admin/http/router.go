package http

import "github.com/gin-gonic/gin"

// Register mounts the diagnostic routes. The group must carry FirebaseAuthMiddleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/test-admin", h.TestAdmin)
	rg.GET("/webhook-info", h.WebhookInfo)
}
