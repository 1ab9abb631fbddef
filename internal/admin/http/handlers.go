package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/auth/domain"
	"github.com/gbtraders/storefront-api/internal/observability"
)

// TestAdmin checks that the admin credentials work end to end for the caller:
// identity lookup, user document read and store reachability. Check failures
// are reported in the body; only a missing caller is an error status.
func (h *Handler) TestAdmin(c *gin.Context) {
	caller := auth.CurrentIdentity(c)
	if caller == nil || caller.UID == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}
	uid := caller.UID
	ctx := c.Request.Context()

	checks := gin.H{}
	body := gin.H{
		"uid":         uid,
		// claims as minted into the caller's token; "claims" below is the live set
		"tokenClaims": caller.Claims,
		"environment": h.env,
		"version":     h.version,
		"timestamp":   h.now().UTC().Format(time.RFC3339),
	}

	identity, err := h.identity.GetUser(ctx, uid)
	checks["identity"] = check(ctx, "identity", err)
	if err == nil {
		body["email"] = identity.Email
		body["claims"] = identity.Claims
	}

	user, err := h.users.Get(ctx, uid)
	switch {
	case err == nil:
		checks["userDocument"] = checkResult{OK: true}
		body["role"] = user.Role
	case errors.Is(err, domain.ErrUserNotFound):
		checks["userDocument"] = checkResult{Error: "missing"}
	default:
		checks["userDocument"] = check(ctx, "userDocument", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	checks["store"] = check(ctx, "store", h.store.Ping(pingCtx))

	body["checks"] = checks
	c.JSON(http.StatusOK, body)
}

// WebhookInfo echoes the billing webhook configuration. The secret itself is
// never returned.
func (h *Handler) WebhookInfo(c *gin.Context) {
	if auth.UserFirebaseUID(c) == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	events := h.webhook.Events
	if events == nil {
		events = []string{}
	}
	c.JSON(http.StatusOK, webhookInfo{
		URL:              h.webhook.URL,
		Events:           events,
		SecretConfigured: h.webhook.Secret != "",
		Environment:      h.env,
	})
}

// check logs the cause and reports only a coarse outcome.
func check(ctx context.Context, name string, err error) checkResult {
	if err == nil {
		return checkResult{OK: true}
	}
	logger := observability.Op(ctx, "test_admin")
	logger.Warn().Err(err).Str("check", name).Msg("diagnostic check failed")

	if errors.Is(err, auth.ErrUserNotFound) {
		return checkResult{Error: "missing"}
	}
	return checkResult{Error: "unavailable"}
}
