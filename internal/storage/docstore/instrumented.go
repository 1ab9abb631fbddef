package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/gbtraders/storefront-api/internal/observability"
)

type instrumented struct {
	next Store
}

// Instrument records per-operation latency for every call made through s.
func Instrument(s Store) Store {
	return &instrumented{next: s}
}

func observe(op, collection string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrUnavailable):
		outcome = "unavailable"
	default:
		outcome = "error"
	}
	observability.DocStoreOperationDuration.
		WithLabelValues(op, collection, outcome).
		Observe(time.Since(start).Seconds())
}

func (i *instrumented) Get(ctx context.Context, collection, id string, dst any) (err error) {
	defer func(start time.Time) { observe("get", collection, start, err) }(time.Now())
	return i.next.Get(ctx, collection, id, dst)
}

func (i *instrumented) Set(ctx context.Context, collection, id string, doc any) (err error) {
	defer func(start time.Time) { observe("set", collection, start, err) }(time.Now())
	return i.next.Set(ctx, collection, id, doc)
}

func (i *instrumented) Merge(ctx context.Context, collection, id string, fields map[string]any) (err error) {
	defer func(start time.Time) { observe("merge", collection, start, err) }(time.Now())
	return i.next.Merge(ctx, collection, id, fields)
}

func (i *instrumented) AddToSet(ctx context.Context, collection, id, field string, value any, fields map[string]any) (err error) {
	defer func(start time.Time) { observe("add_to_set", collection, start, err) }(time.Now())
	return i.next.AddToSet(ctx, collection, id, field, value, fields)
}

func (i *instrumented) RemoveFromSet(ctx context.Context, collection, id, field string, value any, fields map[string]any) (err error) {
	defer func(start time.Time) { observe("remove_from_set", collection, start, err) }(time.Now())
	return i.next.RemoveFromSet(ctx, collection, id, field, value, fields)
}

func (i *instrumented) Update(ctx context.Context, collection, id string, dst any, fn func() (map[string]any, error)) (err error) {
	defer func(start time.Time) { observe("update", collection, start, err) }(time.Now())
	return i.next.Update(ctx, collection, id, dst, fn)
}

func (i *instrumented) Delete(ctx context.Context, collection, id string) (err error) {
	defer func(start time.Time) { observe("delete", collection, start, err) }(time.Now())
	return i.next.Delete(ctx, collection, id)
}

func (i *instrumented) Find(ctx context.Context, collection string, q Query) (docs []Document, err error) {
	defer func(start time.Time) { observe("find", collection, start, err) }(time.Now())
	return i.next.Find(ctx, collection, q)
}

func (i *instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}

func (i *instrumented) Close() error {
	return i.next.Close()
}
