package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbtraders/storefront-api/config"
	"github.com/gbtraders/storefront-api/internal/testutil"
)

func testRouterDeps(t *testing.T) (RouterDeps, *testutil.Provider) {
	t.Helper()
	testutil.Router()

	store, _ := testutil.DocStore(t)
	identity := testutil.NewProvider()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		App:    config.AppConfig{Environment: "test", Version: "0.0.1"},
		Cleanup: config.CleanupConfig{
			Secret: "cron-secret",
		},
		HTTP: config.HTTPConfig{
			AllowedOrigins: []string{"https://gbtraders.co.uk"},
			RateLimitRPS:   100,
			RateLimitBurst: 100,
		},
	}

	return RouterDeps{
		ServiceName: "gbtraders-api",
		Config:      cfg,
		Store:       store,
		Blobs:       testutil.NewBlobs(),
		Identity:    identity,
	}, identity
}

func TestBuildRouter_Routes(t *testing.T) {
	dep, identity := testRouterDeps(t)
	token := identity.AddUser("u1", "u1@example.com")
	r := BuildRouter(dep)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"public articles", http.MethodGet, "/api/articles/news", "", http.StatusOK},
		{"cleanup health", http.MethodGet, "/api/cleanup/daily", "", http.StatusOK},
		{"cleanup without secret", http.MethodPost, "/api/cleanup/daily", "", http.StatusUnauthorized},
		{"cleanup with secret", http.MethodPost, "/api/cleanup/daily", "cron-secret", http.StatusOK},
		{"favorites needs auth", http.MethodGet, "/api/favorites", "", http.StatusUnauthorized},
		{"favorites with token", http.MethodGet, "/api/favorites", token, http.StatusOK},
		{"notifications with token", http.MethodGet, "/api/notifications", token, http.StatusOK},
		{"webhook info", http.MethodGet, "/api/webhook-info", token, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", "Bearer "+tt.auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestBuildRouter_RequestIDAndCORS(t *testing.T) {
	dep, _ := testRouterDeps(t)
	r := BuildRouter(dep)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://gbtraders.co.uk")
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))
	assert.Equal(t, "https://gbtraders.co.uk", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBuildRouter_RejectsUnknownFields(t *testing.T) {
	dep, _ := testRouterDeps(t)
	r := BuildRouter(dep)

	body := `{"uid":"u1","email":"u1@example.com","role":"user","surprise":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/create-user", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildRouter_ForwardedForDoesNotBypassRateLimit(t *testing.T) {
	createUser := func(r http.Handler, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/create-user", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "192.0.2.1:4321"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("no trusted proxies", func(t *testing.T) {
		dep, _ := testRouterDeps(t)
		dep.Config.HTTP.RateLimitRPS = 0.001
		dep.Config.HTTP.RateLimitBurst = 1
		r := BuildRouter(dep)

		assert.NotEqual(t, http.StatusTooManyRequests, createUser(r, "203.0.113.10"))
		assert.Equal(t, http.StatusTooManyRequests, createUser(r, "203.0.113.11"))
	})

	t.Run("trusted proxy forwards client ip", func(t *testing.T) {
		dep, _ := testRouterDeps(t)
		dep.Config.HTTP.RateLimitRPS = 0.001
		dep.Config.HTTP.RateLimitBurst = 1
		dep.Config.HTTP.TrustedProxies = []string{"192.0.2.1"}
		r := BuildRouter(dep)

		assert.NotEqual(t, http.StatusTooManyRequests, createUser(r, "203.0.113.10"))
		assert.NotEqual(t, http.StatusTooManyRequests, createUser(r, "203.0.113.11"))
		assert.Equal(t, http.StatusTooManyRequests, createUser(r, "203.0.113.11"))
	})
}
