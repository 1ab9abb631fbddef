package http

import "github.com/gin-gonic/gin"

// Register mounts the dealer profile routes. The group must already carry
// FirebaseAuthMiddleware; every route is owner-only.
func (h *Handler) Register(rg *gin.RouterGroup) {
	dealer := rg.Group("/:uid", h.requireOwner)
	dealer.GET("", h.GetProfile)
	dealer.PUT("", h.SaveProfile)
	dealer.PATCH("", h.PatchProfile)
	dealer.GET("/validation", h.ValidateProfile)
}
