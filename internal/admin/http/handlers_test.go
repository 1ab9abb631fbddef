package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbtraders/storefront-api/config"
	"github.com/gbtraders/storefront-api/internal/auth/domain"
	"github.com/gbtraders/storefront-api/internal/auth/middleware"
	"github.com/gbtraders/storefront-api/internal/auth/repository"
	"github.com/gbtraders/storefront-api/internal/testutil"
)

func TestAdminRoutes(t *testing.T) {
	store, _ := testutil.DocStore(t)
	users := repository.NewUserRepository(store)
	provider := testutil.NewProvider()
	token := provider.AddUser("admin1", "ops@gbtraders.example")
	provider.Users["admin1"].Claims["role"] = "dealer"

	require.NoError(t, users.Create(context.Background(), &domain.User{UID: "admin1", Role: domain.RoleDealer}))

	r := testutil.Router()
	New(Deps{
		Identity: provider,
		Users:    users,
		Store:    store,
		Webhook: config.WebhookConfig{
			URL:    "https://api.gbtraders.example/webhooks/stripe",
			Secret: "whsec_live_do_not_leak",
			Events: []string{"checkout.session.completed"},
		},
		Environment: "staging",
	}).Register(r.Group("/api", middleware.FirebaseAuthMiddleware(provider)))

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("unauthenticated", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("/api/test-admin", "").Code)
		assert.Equal(t, http.StatusUnauthorized, get("/api/webhook-info", "bogus").Code)
	})

	t.Run("test-admin", func(t *testing.T) {
		w := get("/api/test-admin", token)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "admin1", body["uid"])
		assert.Equal(t, "dealer", body["role"])
		assert.Equal(t, "dealer", body["tokenClaims"].(map[string]any)["role"])
		assert.Equal(t, "ops@gbtraders.example", body["email"])
		checks := body["checks"].(map[string]any)
		for _, name := range []string{"identity", "userDocument", "store"} {
			assert.Equal(t, true, checks[name].(map[string]any)["ok"], name)
		}
	})

	t.Run("webhook-info hides the secret", func(t *testing.T) {
		w := get("/api/webhook-info", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "whsec_live_do_not_leak")

		var info webhookInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
		assert.True(t, info.SecretConfigured)
		assert.Equal(t, []string{"checkout.session.completed"}, info.Events)
	})
}
