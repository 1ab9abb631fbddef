// Package blobstore lists and deletes user-uploaded objects by path prefix.
package blobstore

import "context"

// Store is implemented by GCSStore (Firebase Storage) and S3Store.
type Store interface {
	// List returns the full object paths under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// Delete removes one object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
