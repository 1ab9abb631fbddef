package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbtraders/storefront-api/internal/auth/middleware"
	"github.com/gbtraders/storefront-api/internal/dealers/domain"
	"github.com/gbtraders/storefront-api/internal/dealers/repository"
	"github.com/gbtraders/storefront-api/internal/testutil"
)

type fixture struct {
	router   http.Handler
	repo     *repository.DealerRepository
	token    string
	intruder string
}

func setup(t *testing.T) fixture {
	t.Helper()
	store, _ := testutil.DocStore(t)
	repo := repository.NewDealerRepository(store)
	provider := testutil.NewProvider()

	r := testutil.Router()
	New(repo).Register(r.Group("/api/dealers", middleware.FirebaseAuthMiddleware(provider)))

	return fixture{
		router:   r,
		repo:     repo,
		token:    provider.AddUser("d1", "d1@example.com"),
		intruder: provider.AddUser("u2", "u2@example.com"),
	}
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestDealerRoutes_Auth(t *testing.T) {
	f := setup(t)

	w := do(t, f.router, http.MethodGet, "/api/dealers/d1", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, f.router, http.MethodGet, "/api/dealers/d1", f.intruder, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"forbidden"`)
}

func TestDealerRoutes_SaveGetValidate(t *testing.T) {
	f := setup(t)

	w := do(t, f.router, http.MethodGet, "/api/dealers/d1", f.token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, f.router, http.MethodPut, "/api/dealers/d1", f.token,
		`{"businessName":"Northside Motors","email":"sales@northside.example","city":"Manchester"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, f.router, http.MethodGet, "/api/dealers/d1/validation", f.token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var res domain.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.IsComplete)
	assert.Equal(t, []string{"phone", "address", "country", "description", "logo"}, res.MissingFields)

	w = do(t, f.router, http.MethodPatch, "/api/dealers/d1", f.token,
		`{"phone":"0161 496 0000","address":"1 Mill Lane","country":"UK","description":"Used cars","logo":"dealers/d1/logo.png"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res2, err := f.repo.ValidateDealerProfile(context.Background(), "d1")
	require.NoError(t, err)
	assert.True(t, res2.IsComplete)
	assert.Equal(t, "Northside Motors", res2.Profile.BusinessName)
}

func TestDealerRoutes_RejectsBadInput(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"businessName":"X","isComplete":true}`},
		{"bad email", `{"email":"not-an-email"}`},
		{"bad website", `{"website":"northside"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, f.router, http.MethodPut, "/api/dealers/d1", f.token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	_, err := f.repo.GetDealerProfile(context.Background(), "d1")
	assert.ErrorIs(t, err, domain.ErrDealerProfileNotFound)
}

func TestDealerRoutes_PatchMissingProfile(t *testing.T) {
	f := setup(t)
	w := do(t, f.router, http.MethodPatch, "/api/dealers/d1", f.token, `{"city":"York"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
