package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
	// ErrIdentityDelete means the identity record survived; the document was restored.
	ErrIdentityDelete = errors.New("failed to delete identity record")
	// ErrCompensationFailed means the document could not be restored after ErrIdentityDelete.
	ErrCompensationFailed = errors.New("failed to restore user document")
)
