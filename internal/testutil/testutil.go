// Package testutil holds the fakes shared by handler, service and repository tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/redis/go-redis/v9"

	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

// DocStore returns a Redis-backed document store on a throwaway miniredis.
func DocStore(t *testing.T) (docstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := RedisClient(t, mr)
	return docstore.NewRedisStore(client), mr
}

func RedisClient(t *testing.T, mr *miniredis.Miniredis) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Router returns a gin engine in test mode with strict JSON decoding,
// matching the production engine configuration.
func Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true
	return gin.New()
}

// Provider is an in-memory identity provider. Tokens map to identities.
type Provider struct {
	mu         sync.Mutex
	Users      map[string]*auth.Identity
	Tokens     map[string]string
	DeleteErr  error
	ClaimsErr  error
	DeleteCall int
}

func NewProvider() *Provider {
	return &Provider{
		Users:  map[string]*auth.Identity{},
		Tokens: map[string]string{},
	}
}

// AddUser registers an identity and a bearer token "token-{uid}" for it.
func (p *Provider) AddUser(uid, email string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Users[uid] = &auth.Identity{UID: uid, Email: email, Claims: map[string]any{}}
	token := "token-" + uid
	p.Tokens[token] = uid
	return token
}

func (p *Provider) Has(uid string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.Users[uid]
	return ok
}

func (p *Provider) VerifyIDToken(_ context.Context, idToken string) (*auth.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	uid, ok := p.Tokens[idToken]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	id, ok := p.Users[uid]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	cp := *id
	return &cp, nil
}

func (p *Provider) GetUser(_ context.Context, uid string) (*auth.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.Users[uid]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *id
	return &cp, nil
}

func (p *Provider) DeleteUser(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DeleteCall++
	if p.DeleteErr != nil {
		return p.DeleteErr
	}
	if _, ok := p.Users[uid]; !ok {
		return auth.ErrUserNotFound
	}
	delete(p.Users, uid)
	return nil
}

func (p *Provider) SetCustomClaims(_ context.Context, uid string, claims map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ClaimsErr != nil {
		return p.ClaimsErr
	}
	id, ok := p.Users[uid]
	if !ok {
		return auth.ErrUserNotFound
	}
	id.Claims = claims
	return nil
}

func (p *Provider) UpdateDisplayName(_ context.Context, uid, displayName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.Users[uid]
	if !ok {
		return auth.ErrUserNotFound
	}
	id.DisplayName = displayName
	return nil
}

// Blobs is an in-memory blob store. Deleting a path in FailPaths errors.
type Blobs struct {
	mu        sync.Mutex
	Objects   map[string]bool
	FailPaths map[string]bool
	ListErr   error
}

func NewBlobs(paths ...string) *Blobs {
	b := &Blobs{Objects: map[string]bool{}, FailPaths: map[string]bool{}}
	for _, p := range paths {
		b.Objects[p] = true
	}
	return b
}

func (b *Blobs) List(_ context.Context, prefix string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ListErr != nil {
		return nil, b.ListErr
	}
	var out []string
	for p := range b.Objects {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (b *Blobs) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailPaths[path] {
		return errors.New("permission denied")
	}
	delete(b.Objects, path)
	return nil
}

func (b *Blobs) Remaining() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.Objects))
	for p := range b.Objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// FailingDelete wraps a store so Delete always fails with ErrUnavailable.
type FailingDelete struct {
	docstore.Store
}

func (f FailingDelete) Delete(context.Context, string, string) error {
	return docstore.ErrUnavailable
}
