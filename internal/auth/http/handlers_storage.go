package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
)

// DeleteStorage purges every object under dealers/{uid}/ or vehicles/{uid}/.
// Individual delete failures are reported in the counts, not as an error status.
func (h *Handler) DeleteStorage(c *gin.Context) {
	var req deleteStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.purger.PurgeUserAssets(c.Request.Context(), req.UID, req.Type)
	if err != nil {
		respond.Failure(c, "delete_storage", "failed to delete storage", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "storage deleted",
		"deleted": res.Deleted,
		"failed":  res.Failed,
	})
}
