package http

import (
	"context"
	"time"

	"github.com/gbtraders/storefront-api/config"
	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/auth/repository"
)

// Pinger reports document store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	identity auth.Provider
	users    *repository.UserRepository
	store    Pinger
	webhook  config.WebhookConfig
	env      string
	version  string
	now      func() time.Time
}

type Deps struct {
	Identity    auth.Provider
	Users       *repository.UserRepository
	Store       Pinger
	Webhook     config.WebhookConfig
	Environment string
	Version     string
}

func New(d Deps) *Handler {
	return &Handler{
		identity: d.Identity,
		users:    d.Users,
		store:    d.Store,
		webhook:  d.Webhook,
		env:      d.Environment,
		version:  d.Version,
		now:      time.Now,
	}
}

type checkResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type webhookInfo struct {
	URL              string   `json:"url"`
	Events           []string `json:"events"`
	SecretConfigured bool     `json:"secretConfigured"`
	Environment      string   `json:"environment"`
}
