package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	docKeyPrefix   = "doc:"    // JSON document: doc:{collection}:{id}
	indexKeyPrefix = "docidx:" // Set of ids in a collection: docidx:{collection}
	maxTxRetries   = 5
)

// RedisStore keeps each document as a JSON string plus a per-collection id
// set used by Find. Read-modify-write operations run as WATCH transactions.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. The client stays owned by the caller.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, collection, id string, dst any) error {
	raw, err := s.client.Get(ctx, s.docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable("get", collection, id, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalid(collection, id, err)
	}
	return nil
}

func (s *RedisStore) Set(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(collection, id), raw, 0)
	pipe.SAdd(ctx, s.indexKey(collection), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("set", collection, id, err)
	}
	return nil
}

func (s *RedisStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	norm, err := normalizeFields(fields)
	if err != nil {
		return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
	}
	return s.update(ctx, "merge", collection, id, true, func(doc map[string]any) error {
		for k, v := range norm {
			doc[k] = v
		}
		return nil
	})
}

func (s *RedisStore) AddToSet(ctx context.Context, collection, id, field string, value any, fields map[string]any) error {
	member, err := normalize(value)
	if err != nil {
		return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
	}
	norm, err := normalizeFields(fields)
	if err != nil {
		return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
	}

	return s.update(ctx, "add_to_set", collection, id, true, func(doc map[string]any) error {
		for k, v := range norm {
			doc[k] = v
		}
		members, _ := doc[field].([]any)
		if !containsValue(members, member) {
			members = append(members, member)
		}
		doc[field] = members
		return nil
	})
}

func (s *RedisStore) RemoveFromSet(ctx context.Context, collection, id, field string, value any, fields map[string]any) error {
	member, err := normalize(value)
	if err != nil {
		return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
	}
	norm, err := normalizeFields(fields)
	if err != nil {
		return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
	}

	return s.update(ctx, "remove_from_set", collection, id, false, func(doc map[string]any) error {
		for k, v := range norm {
			doc[k] = v
		}
		members, _ := doc[field].([]any)
		kept := make([]any, 0, len(members))
		for _, m := range members {
			if !reflect.DeepEqual(m, member) {
				kept = append(kept, m)
			}
		}
		doc[field] = kept
		return nil
	})
}

func (s *RedisStore) Update(ctx context.Context, collection, id string, dst any, fn func() (map[string]any, error)) error {
	return s.update(ctx, "update", collection, id, false, func(doc map[string]any) error {
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return invalid(collection, id, err)
		}

		fields, err := fn()
		if err != nil {
			return err
		}
		norm, err := normalizeFields(fields)
		if err != nil {
			return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
		}
		for k, v := range norm {
			doc[k] = v
		}
		return nil
	})
}

func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.docKey(collection, id))
	pipe.SRem(ctx, s.indexKey(collection), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("delete", collection, id, err)
	}
	return nil
}

// Find scans the collection's id set. Results are ordered by id.
func (s *RedisStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey(collection)).Result()
	if err != nil {
		return nil, unavailable("find", collection, "*", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)

	filters := make([]Filter, 0, len(q.Filters))
	for _, f := range q.Filters {
		v, err := normalize(f.Value)
		if err != nil {
			return nil, fmt.Errorf("docstore: encode filter %s: %w", f.Field, err)
		}
		filters = append(filters, Filter{Field: f.Field, Value: v})
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(collection, id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable("find", collection, "*", err)
	}

	var docs []Document
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			// indexed but deleted between SMEMBERS and MGET
			continue
		}
		raw := []byte(str)

		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, invalid(collection, ids[i], err)
		}
		if !matches(fields, filters) {
			continue
		}

		docs = append(docs, Document{
			ID:     ids[i],
			decode: func(dst any) error { return json.Unmarshal(raw, dst) },
		})
		if q.Limit > 0 && len(docs) >= q.Limit {
			break
		}
	}
	return docs, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", "-", "-", err)
	}
	return nil
}

// Close is a no-op: the client is shared with the article cache and closed by main.
func (s *RedisStore) Close() error {
	return nil
}

// update runs mutate against the decoded document inside a WATCH transaction,
// retrying on optimistic-lock conflicts. An error from mutate aborts the
// transaction and is returned unchanged.
func (s *RedisStore) update(ctx context.Context, op, collection, id string, upsert bool, mutate func(doc map[string]any) error) error {
	key := s.docKey(collection, id)
	var mutateErr error

	txf := func(tx *redis.Tx) error {
		doc := map[string]any{}

		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if !upsert {
				return ErrNotFound
			}
		case err != nil:
			return unavailable(op, collection, id, err)
		default:
			if err := json.Unmarshal(raw, &doc); err != nil {
				return invalid(collection, id, err)
			}
		}

		if err := mutate(doc); err != nil {
			mutateErr = err
			return err
		}

		out, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			pipe.SAdd(ctx, s.indexKey(collection), id)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if mutateErr != nil {
			return mutateErr
		}
		if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrUnavailable) && !errors.Is(err, ErrInvalidDocument) {
			return unavailable(op, collection, id, err)
		}
		return err
	}
	return unavailable(op, collection, id, fmt.Errorf("transaction conflicted %d times", maxTxRetries))
}

func (s *RedisStore) docKey(collection, id string) string {
	return fmt.Sprintf("%s%s:%s", docKeyPrefix, collection, id)
}

func (s *RedisStore) indexKey(collection string) string {
	return fmt.Sprintf("%s%s", indexKeyPrefix, collection)
}

// normalize round-trips v through JSON so comparisons see the same
// representation as stored documents (numbers as float64, times as strings).
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeFields(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		nv, err := normalize(v)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func containsValue(values []any, v any) bool {
	for _, existing := range values {
		if reflect.DeepEqual(existing, v) {
			return true
		}
	}
	return false
}

func matches(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !reflect.DeepEqual(doc[f.Field], f.Value) {
			return false
		}
	}
	return true
}
