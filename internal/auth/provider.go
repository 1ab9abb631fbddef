package auth

import (
	"context"
	"errors"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
)

var (
	// ErrUserNotFound is returned when the identity provider has no record for the uid.
	ErrUserNotFound = errors.New("identity user not found")
	// ErrInvalidToken is returned for expired, revoked or malformed ID tokens.
	ErrInvalidToken = errors.New("invalid id token")
)

// Identity is the provider-neutral view of an authenticated user.
type Identity struct {
	UID         string         `json:"uid"`
	Email       string         `json:"email,omitempty"`
	DisplayName string         `json:"displayName,omitempty"`
	Disabled    bool           `json:"disabled"`
	Claims      map[string]any `json:"claims,omitempty"`
}

// TokenVerifier verifies bearer ID tokens.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}

// Provider is the identity provider used by handlers and services.
type Provider interface {
	TokenVerifier
	GetUser(ctx context.Context, uid string) (*Identity, error)
	DeleteUser(ctx context.Context, uid string) error
	SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
}

// FirebaseProvider adapts the Firebase Admin auth client.
type FirebaseProvider struct {
	client *fbauth.Client
}

func NewFirebaseProvider(client *fbauth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

func (p *FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := &Identity{UID: token.UID, Claims: token.Claims}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.DisplayName = name
	}
	return id, nil
}

func (p *FirebaseProvider) GetUser(ctx context.Context, uid string) (*Identity, error) {
	rec, err := p.client.GetUser(ctx, uid)
	if err != nil {
		return nil, mapFirebaseErr("get user", uid, err)
	}
	return &Identity{
		UID:         rec.UID,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		Disabled:    rec.Disabled,
		Claims:      rec.CustomClaims,
	}, nil
}

func (p *FirebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		return mapFirebaseErr("delete user", uid, err)
	}
	return nil
}

func (p *FirebaseProvider) SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error {
	if err := p.client.SetCustomUserClaims(ctx, uid, claims); err != nil {
		return mapFirebaseErr("set custom claims", uid, err)
	}
	return nil
}

func (p *FirebaseProvider) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	params := (&fbauth.UserToUpdate{}).DisplayName(displayName)
	if _, err := p.client.UpdateUser(ctx, uid, params); err != nil {
		return mapFirebaseErr("update display name", uid, err)
	}
	return nil
}

func mapFirebaseErr(op, uid string, err error) error {
	if fbauth.IsUserNotFound(err) {
		return fmt.Errorf("%s %s: %w", op, uid, ErrUserNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, uid, err)
}
