package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tutorhub/tutorhub-api/internal/models"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

// NotificationRepositoryInterface defines the interface for notification data
// access operations.
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListForRecipient(ctx context.Context, recipientID string, recipientType models.RecipientType) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, recipientID string, recipientType models.RecipientType) (int, error)
	MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string, recipientType models.RecipientType) (int, error)
	Delete(ctx context.Context, id, recipientID string) error
}

// NotificationRepository handles notification access. Mutations are
// serialized so read-flag flips and deletes see a consistent document.
type NotificationRepository struct {
	ds NotificationDataSource
	mu sync.Mutex

	// last CreatedAt stamped per recipient; keeps emission order strict
	// even when the clock ties at coarse resolution
	lastStamp map[string]time.Time
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(ds NotificationDataSource) NotificationRepositoryInterface {
	return &NotificationRepository{ds: ds, lastStamp: map[string]time.Time{}}
}

// Create assigns an id and stores the delivery record
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	eventLabel := string(n.EventType)
	if eventLabel == "" {
		eventLabel = string(n.Type)
	}

	n.ID = "notif_" + uuid.NewString()[:8]
	now := time.Now().UTC()
	if last, ok := r.lastStamp[n.RecipientID]; ok && !now.After(last) {
		now = last.Add(time.Nanosecond)
	}
	n.CreatedAt = now
	n.UpdatedAt = now

	if err := r.ds.InsertNotification(ctx, n); err != nil {
		metrics.RecordNotificationEmitted(eventLabel, "error")
		return nil, err
	}

	r.lastStamp[n.RecipientID] = now
	metrics.RecordNotificationEmitted(eventLabel, "success")
	return n, nil
}

// ListForRecipient returns a recipient's notifications, newest first
func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID string, recipientType models.RecipientType) ([]*models.Notification, error) {
	all, err := r.ds.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}

	owned := []*models.Notification{}
	for _, n := range all {
		if n.RecipientID == recipientID && n.RecipientType == recipientType {
			owned = append(owned, n)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

// UnreadCount returns the number of unread notifications for a recipient
func (r *NotificationRepository) UnreadCount(ctx context.Context, recipientID string, recipientType models.RecipientType) (int, error) {
	all, err := r.ds.ListNotifications(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range all {
		if n.RecipientID == recipientID && n.RecipientType == recipientType && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkRead flips a notification's read flag. Notifications owned by other
// recipients are reported as not found.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.find(ctx, id, recipientID)
	if err != nil {
		return nil, err
	}

	if !n.IsRead {
		n.IsRead = true
		n.UpdatedAt = time.Now().UTC()
		if err := r.ds.UpdateNotification(ctx, n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// MarkAllRead flips every unread notification of a recipient and returns how
// many were changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string, recipientType models.RecipientType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.ds.ListNotifications(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	now := time.Now().UTC()
	for _, n := range all {
		if n.RecipientID != recipientID || n.RecipientType != recipientType || n.IsRead {
			continue
		}
		n.IsRead = true
		n.UpdatedAt = now
		if err := r.ds.UpdateNotification(ctx, n); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// Delete removes a notification. Only the recipient may delete it.
func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.find(ctx, id, recipientID); err != nil {
		return err
	}
	return r.ds.DeleteNotification(ctx, id)
}

// find locates a notification by id and verifies ownership
func (r *NotificationRepository) find(ctx context.Context, id, recipientID string) (*models.Notification, error) {
	all, err := r.ds.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range all {
		if n.ID == id {
			if n.RecipientID != recipientID {
				return nil, apperrors.NotFoundError("notification")
			}
			return n, nil
		}
	}
	return nil, apperrors.NotFoundError("notification")
}
