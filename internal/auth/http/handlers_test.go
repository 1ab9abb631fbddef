package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbtraders/storefront-api/internal/auth/domain"
	"github.com/gbtraders/storefront-api/internal/auth/repository"
	"github.com/gbtraders/storefront-api/internal/auth/service"
	dealerdomain "github.com/gbtraders/storefront-api/internal/dealers/domain"
	dealerrepo "github.com/gbtraders/storefront-api/internal/dealers/repository"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
	"github.com/gbtraders/storefront-api/internal/testutil"
)

type fixture struct {
	router   http.Handler
	store    docstore.Store
	users    *repository.UserRepository
	provider *testutil.Provider
	blobs    *testutil.Blobs
}

func setup(t *testing.T) fixture {
	t.Helper()
	store, _ := testutil.DocStore(t)
	return setupWithStore(t, store)
}

func setupWithStore(t *testing.T, store docstore.Store) fixture {
	t.Helper()
	users := repository.NewUserRepository(store)
	provider := testutil.NewProvider()
	blobs := testutil.NewBlobs()

	r := testutil.Router()
	New(service.NewAuthService(users, provider), service.NewStoragePurger(blobs)).Register(r.Group("/api/auth"))

	return fixture{router: r, store: store, users: users, provider: provider, blobs: blobs}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const createDealerBody = `{"uid":"u1","firstName":"A","lastName":"B","email":"a@b.com","country":"UK","role":"dealer"}`

func TestCreateUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	w := do(t, f.router, http.MethodPost, "/api/auth/create-user", createDealerBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["success"])

	user, err := f.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDealer, user.Role)

	// No dealer profile until one is saved separately.
	_, err = dealerrepo.NewDealerRepository(f.store).GetDealerProfile(ctx, "u1")
	assert.ErrorIs(t, err, dealerdomain.ErrDealerProfileNotFound)
}

func TestCreateUser_RoleRoundTrip(t *testing.T) {
	for _, role := range []string{domain.RoleUser, domain.RoleDealer} {
		t.Run(role, func(t *testing.T) {
			f := setup(t)
			body := `{"uid":"rt","firstName":"A","lastName":"B","email":"a@b.com","country":"UK","role":"` + role + `"}`
			w := do(t, f.router, http.MethodPost, "/api/auth/create-user", body)
			require.Equal(t, http.StatusOK, w.Code)

			user, err := f.users.Get(context.Background(), "rt")
			require.NoError(t, err)
			assert.Equal(t, role, user.Role)
		})
	}
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing uid", `{"firstName":"A","lastName":"B","email":"a@b.com","country":"UK","role":"user"}`},
		{"invalid role", `{"uid":"u1","firstName":"A","lastName":"B","email":"a@b.com","country":"UK","role":"admin"}`},
		{"invalid email", `{"uid":"u1","firstName":"A","lastName":"B","email":"nope","country":"UK","role":"user"}`},
		{"unknown field", `{"uid":"u1","firstName":"A","lastName":"B","email":"a@b.com","country":"UK","role":"user","isAdmin":true}`},
		{"not json", `uid=u1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			w := do(t, f.router, http.MethodPost, "/api/auth/create-user", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "invalid_request", decode(t, w)["code"])

			_, err := f.users.Get(context.Background(), "u1")
			assert.ErrorIs(t, err, domain.ErrUserNotFound)
		})
	}
}

func TestSetRole(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.provider.AddUser("u1", "a@b.com")
	require.Equal(t, http.StatusOK, do(t, f.router, http.MethodPost, "/api/auth/create-user", createDealerBody).Code)

	t.Run("invalid role is rejected without mutation", func(t *testing.T) {
		w := do(t, f.router, http.MethodPost, "/api/auth/set-role", `{"uid":"u1","role":"owner"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		user, err := f.users.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleDealer, user.Role)
		id, _ := f.provider.GetUser(ctx, "u1")
		assert.NotContains(t, id.Claims, "role")
	})

	t.Run("sets role", func(t *testing.T) {
		w := do(t, f.router, http.MethodPost, "/api/auth/set-role", `{"uid":"u1","role":"user"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["success"])

		user, err := f.users.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		w := do(t, f.router, http.MethodPost, "/api/auth/set-role", `{"uid":"ghost","role":"user"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decode(t, w)["code"])
	})

	t.Run("identity without document is 404 and claim untouched", func(t *testing.T) {
		f.provider.AddUser("u9", "u9@b.com")

		w := do(t, f.router, http.MethodPost, "/api/auth/set-role", `{"uid":"u9","role":"dealer"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		id, err := f.provider.GetUser(ctx, "u9")
		require.NoError(t, err)
		assert.NotContains(t, id.Claims, "role")
	})

	t.Run("provider failure is 500 without details", func(t *testing.T) {
		f.provider.ClaimsErr = errors.New("backend exploded: secret=abc")
		defer func() { f.provider.ClaimsErr = nil }()

		w := do(t, f.router, http.MethodPost, "/api/auth/set-role", `{"uid":"u1","role":"dealer"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret=abc")
	})
}

func TestUpdateProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.provider.AddUser("u1", "a@b.com")
	require.Equal(t, http.StatusOK, do(t, f.router, http.MethodPost, "/api/auth/create-user", createDealerBody).Code)

	w := do(t, f.router, http.MethodPost, "/api/auth/update-profile",
		`{"uid":"u1","firstName":"Ann","lastName":"B","country":"IE","role":"dealer","location":"Dublin"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	user, err := f.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.FirstName)
	assert.Equal(t, "IE", user.Country)
	assert.Equal(t, "Dublin", user.Location)
	assert.Empty(t, user.Phone)

	w = do(t, f.router, http.MethodPost, "/api/auth/update-profile", `{"uid":"u1","firstName":"Ann"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	w := do(t, f.router, http.MethodPost, "/api/auth/update-profile",
		`{"uid":"nobody","firstName":"Ann","lastName":"B","country":"IE","role":"user"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode(t, w)["code"])

	_, err := f.users.Get(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile_RoleChangeUpdatesClaim(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.provider.AddUser("u1", "a@b.com")
	require.Equal(t, http.StatusOK, do(t, f.router, http.MethodPost, "/api/auth/create-user", createDealerBody).Code)

	w := do(t, f.router, http.MethodPost, "/api/auth/update-profile",
		`{"uid":"u1","firstName":"A","lastName":"B","country":"UK","role":"user"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	user, err := f.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	id, _ := f.provider.GetUser(ctx, "u1")
	assert.Equal(t, domain.RoleUser, id.Claims["role"])
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes both records", func(t *testing.T) {
		f := setup(t)
		f.provider.AddUser("u1", "a@b.com")
		require.Equal(t, http.StatusOK, do(t, f.router, http.MethodPost, "/api/auth/create-user", createDealerBody).Code)

		w := do(t, f.router, http.MethodDelete, "/api/auth/delete-user", `{"uid":"u1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		_, err := f.users.Get(ctx, "u1")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.False(t, f.provider.Has("u1"))
	})

	t.Run("missing uid", func(t *testing.T) {
		f := setup(t)
		w := do(t, f.router, http.MethodDelete, "/api/auth/delete-user", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("identity failure leaves document restored", func(t *testing.T) {
		f := setup(t)
		f.provider.AddUser("u1", "a@b.com")
		require.Equal(t, http.StatusOK, do(t, f.router, http.MethodPost, "/api/auth/create-user", createDealerBody).Code)
		f.provider.DeleteErr = errors.New("identity backend down")

		w := do(t, f.router, http.MethodDelete, "/api/auth/delete-user", `{"uid":"u1"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		_, err := f.users.Get(ctx, "u1")
		assert.NoError(t, err)
		assert.True(t, f.provider.Has("u1"))
	})

	t.Run("document failure leaves identity intact", func(t *testing.T) {
		store, _ := testutil.DocStore(t)
		f := setupWithStore(t, testutil.FailingDelete{Store: store})
		f.provider.AddUser("u1", "a@b.com")

		w := do(t, f.router, http.MethodDelete, "/api/auth/delete-user", `{"uid":"u1"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "store_unavailable", decode(t, w)["code"])
		assert.True(t, f.provider.Has("u1"))
	})
}

func TestDeleteStorage(t *testing.T) {
	f := setup(t)
	for _, p := range []string{"vehicles/u1/a.jpg", "vehicles/u1/b.jpg", "vehicles/u2/c.jpg"} {
		f.blobs.Objects[p] = true
	}
	f.blobs.FailPaths["vehicles/u1/b.jpg"] = true

	w := do(t, f.router, http.MethodDelete, "/api/auth/delete-storage", `{"uid":"u1","type":"vehicles"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["deleted"])
	assert.EqualValues(t, 1, body["failed"])
	assert.Equal(t, []string{"vehicles/u1/b.jpg", "vehicles/u2/c.jpg"}, f.blobs.Remaining())

	w = do(t, f.router, http.MethodDelete, "/api/auth/delete-storage", `{"uid":"u1","type":"avatars"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
