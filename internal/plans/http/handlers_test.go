package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbtraders/storefront-api/internal/auth/middleware"
	"github.com/gbtraders/storefront-api/internal/plans/domain"
	"github.com/gbtraders/storefront-api/internal/plans/repository"
	"github.com/gbtraders/storefront-api/internal/plans/service"
	"github.com/gbtraders/storefront-api/internal/testutil"
)

const cronSecret = "cron-s3cret"

type fixture struct {
	router http.Handler
	repo   *repository.TokenRepository
	token  string
	now    time.Time
}

func setup(t *testing.T) fixture {
	t.Helper()
	store, _ := testutil.DocStore(t)
	repo := repository.NewTokenRepository(store)
	provider := testutil.NewProvider()

	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	h := New(service.NewPlanService(repo))
	h.now = func() time.Time { return now }

	r := testutil.Router()
	h.RegisterCleanup(r.Group("/api/cleanup"), cronSecret)
	h.Register(r.Group("/api/plans", middleware.FirebaseAuthMiddleware(provider)))

	return fixture{router: r, repo: repo, token: provider.AddUser("u1", "u1@example.com"), now: now}
}

func (f fixture) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestDailyCleanup(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.repo.Save(ctx, &domain.TokenPlan{
		UserID: "u1", Plan: domain.PlanBasic, Tokens: 3, PlanExpiresAt: f.now.Add(-time.Minute),
	}))

	for _, token := range []string{"", "wrong", "token-u1"} {
		code, body := f.do(t, http.MethodPost, "/api/cleanup/daily", token, "")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "unauthorized", body["code"])
	}

	plan, err := f.repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, plan.Status, "rejected calls must not clean up")

	code, body := f.do(t, http.MethodPost, "/api/cleanup/daily", cronSecret, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "2025-03-10T03:00:00Z", body["timestamp"])
	assert.EqualValues(t, 1, body["result"].(map[string]any)["expired"])

	plan, err = f.repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, plan.Status)
}

func TestDailyCleanupHealth(t *testing.T) {
	f := setup(t)
	code, body := f.do(t, http.MethodGet, "/api/cleanup/daily", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestMyPlan(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	code, _ := f.do(t, http.MethodGet, "/api/plans/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = f.do(t, http.MethodGet, "/api/plans/me", f.token, "")
	assert.Equal(t, http.StatusNotFound, code)

	require.NoError(t, f.repo.Save(ctx, &domain.TokenPlan{UserID: "u1", Plan: domain.PlanPremium, Tokens: 2}))

	code, body := f.do(t, http.MethodGet, "/api/plans/me", f.token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "premium", body["plan"].(map[string]any)["plan"])

	code, body = f.do(t, http.MethodPost, "/api/plans/me/consume", f.token, `{"tokens":2}`)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["remaining"])

	code, body = f.do(t, http.MethodPost, "/api/plans/me/consume", f.token, `{"tokens":1}`)
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "insufficient_tokens", body["code"])

	code, _ = f.do(t, http.MethodPost, "/api/plans/me/consume", f.token, `{"tokens":0}`)
	assert.Equal(t, http.StatusBadRequest, code)
}
