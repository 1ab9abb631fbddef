package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/plans/domain"
)

func (h *Handler) GetMyPlan(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	plan, err := h.plans.GetPlan(c.Request.Context(), uid)
	if errors.Is(err, domain.ErrPlanNotFound) {
		respond.NotFound(c, "no token plan")
		return
	}
	if err != nil {
		respond.Failure(c, "get_plan", "failed to get token plan", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// ConsumeTokens spends listing credits from the caller's plan.
func (h *Handler) ConsumeTokens(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	var req consumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	remaining, err := h.plans.ConsumeTokens(c.Request.Context(), uid, req.Tokens)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPlanNotFound):
		respond.NotFound(c, "no token plan")
		return
	case errors.Is(err, domain.ErrPlanNotActive), errors.Is(err, domain.ErrInsufficientTokens):
		c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
			"error":     err.Error(),
			"code":      respond.CodeInsufficientTokens,
			"remaining": remaining,
		})
		return
	default:
		respond.Failure(c, "consume_tokens", "failed to consume tokens", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "remaining": remaining})
}
