package http

import "github.com/gin-gonic/gin"

// Register mounts the favorites routes for the authenticated user.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:vehicleId", h.Check)
	rg.POST("/:vehicleId", h.Add)
	rg.DELETE("/:vehicleId", h.Remove)
}
