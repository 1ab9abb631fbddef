package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gbtraders/storefront-api/internal/notifications/domain"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

type NotificationRepository struct {
	store docstore.Store
	now   func() time.Time
}

func NewNotificationRepository(store docstore.Store) *NotificationRepository {
	return &NotificationRepository{store: store, now: time.Now}
}

// Create assigns the id and createdAt and stores the notification unread.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if !domain.ValidType(n.Type) {
		return fmt.Errorf("invalid notification type %q", n.Type)
	}
	n.ID = uuid.NewString()
	n.Read = false
	n.CreatedAt = r.now().UTC()

	if err := r.store.Set(ctx, domain.Collection, n.ID, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListForUser returns the user's notifications newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	out, err := r.find(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	out, err := r.find(ctx, userID, true)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

// MarkRead marks one of the user's notifications read. Another user's
// notification is reported as not found.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	if _, err := r.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := r.store.Merge(ctx, domain.Collection, id, map[string]any{"read": true}); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead returns how many notifications changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	unread, err := r.find(ctx, userID, true)
	if err != nil {
		return 0, err
	}
	for i, n := range unread {
		if err := r.store.Merge(ctx, domain.Collection, n.ID, map[string]any{"read": true}); err != nil {
			return i, fmt.Errorf("failed to mark notification read: %w", err)
		}
	}
	return len(unread), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID string) error {
	if _, err := r.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, domain.Collection, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) getOwned(ctx context.Context, id, userID string) (*domain.Notification, error) {
	var n domain.Notification
	err := r.store.Get(ctx, domain.Collection, id, &n)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if n.UserID != userID {
		return nil, domain.ErrNotificationNotFound
	}
	return &n, nil
}

func (r *NotificationRepository) find(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	q := docstore.Where("userId", userID)
	if unreadOnly {
		q = q.And("read", false)
	}
	docs, err := r.store.Find(ctx, domain.Collection, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	out := make([]domain.Notification, 0, len(docs))
	for _, d := range docs {
		var n domain.Notification
		if err := d.DataTo(&n); err != nil {
			return nil, fmt.Errorf("failed to decode notification %s: %w", d.ID, err)
		}
		out = append(out, n)
	}
	return out, nil
}
