package docstore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// healthCollection is read (never written) by Ping.
const healthCollection = "_health"

// FirestoreStore is the production Store backed by Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string, dst any) error {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return classifyFirestore("get", collection, id, err)
	}
	if err := snap.DataTo(dst); err != nil {
		return invalid(collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, doc any) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, doc); err != nil {
		return classifyFirestore("set", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, fields, firestore.MergeAll); err != nil {
		return classifyFirestore("merge", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) AddToSet(ctx context.Context, collection, id, field string, value any, fields map[string]any) error {
	data := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data[field] = firestore.ArrayUnion(value)

	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, data, firestore.MergeAll); err != nil {
		return classifyFirestore("add_to_set", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) RemoveFromSet(ctx context.Context, collection, id, field string, value any, fields map[string]any) error {
	updates := []firestore.Update{{Path: field, Value: firestore.ArrayRemove(value)}}
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}

	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return classifyFirestore("remove_from_set", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, dst any, fn func() (map[string]any, error)) error {
	ref := s.client.Collection(collection).Doc(id)
	var fnErr error

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		if err := snap.DataTo(dst); err != nil {
			return invalid(collection, id, err)
		}

		fields, err := fn()
		if err != nil {
			fnErr = err
			return err
		}
		return tx.Set(ref, fields, firestore.MergeAll)
	})
	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		return fnErr
	case errors.Is(err, ErrInvalidDocument):
		return err
	}
	return classifyFirestore("update", collection, id, err)
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return classifyFirestore("delete", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	query := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classifyFirestore("find", collection, "*", err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, decode: snap.DataTo})
	}
	return docs, nil
}

// Ping reads a document that is never written; NotFound proves the round trip.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	err := s.Get(ctx, healthCollection, "ping", &struct{}{})
	if err == nil || errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func classifyFirestore(op, collection, id string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return unavailable(op, collection, id, err)
	}
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted,
		codes.Aborted, codes.Canceled, codes.Internal:
		return unavailable(op, collection, id, err)
	default:
		return err
	}
}
