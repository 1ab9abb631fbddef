package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/slug/:slug", h.GetBySlug)
	rg.GET("/:type", h.List)
}
