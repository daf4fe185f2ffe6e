package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

const notificationColumns = "id, recipient_id, recipient_type, sender_id, title, message, type, event_type, related_data, is_read, created_at, updated_at"

func scanNotification(row pgx.Row) (*models.Notification, error) {
	n := &models.Notification{}
	var related []byte
	err := row.Scan(&n.ID, &n.RecipientID, &n.RecipientType, &n.SenderID,
		&n.Title, &n.Message, &n.Type, &n.EventType, &related,
		&n.IsRead, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(related) > 0 {
		if err := json.Unmarshal(related, &n.RelatedData); err != nil {
			return nil, fmt.Errorf("failed to decode related_data: %w", err)
		}
	}
	return n, nil
}

// ListNotifications returns every notification record ordered by creation time.
func (c *Client) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	start := time.Now()
	operation := "listNotifications"

	rows, err := c.pool.Query(ctx,
		"SELECT "+notificationColumns+" FROM notifications ORDER BY created_at")
	if err != nil {
		recordMetrics("notifications", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			recordMetrics("notifications", operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		recordMetrics("notifications", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	recordMetrics("notifications", operation, "success", metrics.MeasureDuration(start))
	return notifications, nil
}

// InsertNotification stores one delivery record.
func (c *Client) InsertNotification(ctx context.Context, n *models.Notification) error {
	start := time.Now()
	operation := "insertNotification"

	related, err := json.Marshal(n.RelatedData)
	if err != nil {
		recordMetrics("notifications", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to encode related_data: %w", err)
	}

	_, err = c.pool.Exec(ctx,
		"INSERT INTO notifications ("+notificationColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		n.ID, n.RecipientID, n.RecipientType, n.SenderID,
		n.Title, n.Message, n.Type, n.EventType, related,
		n.IsRead, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		recordMetrics("notifications", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	recordMetrics("notifications", operation, "success", metrics.MeasureDuration(start))
	return nil
}

// UpdateNotification flips the read flag.
func (c *Client) UpdateNotification(ctx context.Context, n *models.Notification) error {
	start := time.Now()
	operation := "updateNotification"

	tag, err := c.pool.Exec(ctx,
		"UPDATE notifications SET is_read = $1, updated_at = $2 WHERE id = $3",
		n.IsRead, n.UpdatedAt, n.ID)
	if err != nil {
		recordMetrics("notifications", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to update notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics("notifications", operation, "not_found", metrics.MeasureDuration(start))
		return pgx.ErrNoRows
	}

	recordMetrics("notifications", operation, "success", metrics.MeasureDuration(start))
	return nil
}

// DeleteNotification removes a record permanently.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	start := time.Now()
	operation := "deleteNotification"

	tag, err := c.pool.Exec(ctx, "DELETE FROM notifications WHERE id = $1", id)
	if err != nil {
		recordMetrics("notifications", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics("notifications", operation, "not_found", metrics.MeasureDuration(start))
		return pgx.ErrNoRows
	}

	recordMetrics("notifications", operation, "success", metrics.MeasureDuration(start))
	return nil
}
