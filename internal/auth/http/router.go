package http

import "github.com/gin-gonic/gin"

// Register mounts the account bookkeeping routes, normally under /api/auth.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/create-user", h.CreateUser)
	rg.POST("/set-role", h.SetRole)
	rg.POST("/update-profile", h.UpdateProfile)
	rg.DELETE("/delete-user", h.DeleteUser)
	rg.DELETE("/delete-storage", h.DeleteStorage)
}
