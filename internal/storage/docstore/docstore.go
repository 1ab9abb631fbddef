// Package docstore is the narrow document-store contract the repositories are
// written against: collection + id addressed documents, equality queries and
// store-native set-union/set-difference on array fields.
package docstore

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the addressed document does not exist.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrUnavailable means the store could not be reached or gave up; callers may retry.
	ErrUnavailable = errors.New("docstore: store unavailable")
	// ErrInvalidDocument means a stored document could not be decoded into the destination.
	ErrInvalidDocument = errors.New("docstore: invalid document")
)

// Store is implemented by FirestoreStore and RedisStore.
type Store interface {
	// Get decodes the document into dst.
	Get(ctx context.Context, collection, id string, dst any) error
	// Set overwrites the whole document, creating it if absent.
	Set(ctx context.Context, collection, id string, doc any) error
	// Merge writes the given top-level fields, creating the document if absent.
	Merge(ctx context.Context, collection, id string, fields map[string]any) error
	// AddToSet unions value into the array field and merges fields, creating the document if absent.
	AddToSet(ctx context.Context, collection, id, field string, value any, fields map[string]any) error
	// RemoveFromSet removes value from the array field and merges fields.
	// Returns ErrNotFound when the document is absent.
	RemoveFromSet(ctx context.Context, collection, id, field string, value any, fields map[string]any) error
	// Update reads the document into dst, calls fn and merges the fields it
	// returns, as one atomic step. An error from fn aborts without writing and
	// is returned unchanged. Returns ErrNotFound when the document is absent.
	Update(ctx context.Context, collection, id string, dst any, fn func() (map[string]any, error)) error
	// Delete removes the document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Find returns documents matching every equality filter.
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	Ping(ctx context.Context) error
	Close() error
}

// Filter is a field equality condition.
type Filter struct {
	Field string
	Value any
}

type Query struct {
	Filters []Filter
	// Limit caps the result size; zero means unbounded.
	Limit int
}

// Where starts a query with a single equality filter.
func Where(field string, value any) Query {
	return Query{Filters: []Filter{{Field: field, Value: value}}}
}

// And adds another equality filter.
func (q Query) And(field string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

// Take sets the result limit.
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// Document is a query result. DataTo decodes it the same way Get does.
type Document struct {
	ID     string
	decode func(dst any) error
}

func (d Document) DataTo(dst any) error {
	if d.decode == nil {
		return fmt.Errorf("%w: %s has no data", ErrInvalidDocument, d.ID)
	}
	return d.decode(dst)
}

func unavailable(op, collection, id string, err error) error {
	return fmt.Errorf("%w: %s %s/%s: %v", ErrUnavailable, op, collection, id, err)
}

func invalid(collection, id string, err error) error {
	return fmt.Errorf("%w: %s/%s: %v", ErrInvalidDocument, collection, id, err)
}
