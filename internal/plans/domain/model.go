package domain

import (
	"errors"
	"time"
)

// Collection holds one token plan per user, keyed by userId.
const Collection = "userTokens"

// Plans
const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanDealer  = "dealer"
)

// Plan statuses. Expired and cancelled are terminal.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

var (
	ErrPlanNotFound       = errors.New("token plan not found")
	ErrPlanNotActive      = errors.New("token plan is not active")
	ErrInsufficientTokens = errors.New("insufficient tokens")
	ErrInvalidPlan        = errors.New("invalid plan")
)

// TokenPlan tracks a user's listing credits. A zero PlanExpiresAt never expires.
type TokenPlan struct {
	UserID        string    `json:"userId" firestore:"userId"`
	Plan          string    `json:"plan" firestore:"plan"`
	Status        string    `json:"status" firestore:"status"`
	Tokens        int       `json:"tokens" firestore:"tokens"`
	PlanStartedAt time.Time `json:"planStartedAt" firestore:"planStartedAt"`
	PlanExpiresAt time.Time `json:"planExpiresAt" firestore:"planExpiresAt"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// IsExpiredAt reports whether an active plan is due to expire at now.
func (p *TokenPlan) IsExpiredAt(now time.Time) bool {
	return !p.PlanExpiresAt.IsZero() && !p.PlanExpiresAt.After(now)
}

func ValidPlan(plan string) bool {
	switch plan {
	case PlanFree, PlanBasic, PlanPremium, PlanDealer:
		return true
	}
	return false
}

// ProcessResult summarises one expired-plan sweep.
type ProcessResult struct {
	Checked int `json:"checked"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}
