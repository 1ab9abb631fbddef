package http

import (
	"time"

	"github.com/gbtraders/storefront-api/internal/plans/service"
)

type Handler struct {
	plans *service.PlanService
	now   func() time.Time
}

func New(plans *service.PlanService) *Handler {
	return &Handler{plans: plans, now: time.Now}
}

type consumeRequest struct {
	Tokens int `json:"tokens" binding:"required,min=1,max=100"`
}
