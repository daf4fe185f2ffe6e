package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

// GetTutorSlots returns a tutor's slots ordered by start time. The second
// return value reports whether the tutor has a schedule at all (a tutor with
// zero slots still has one once they created their first slot).
func (c *Client) GetTutorSlots(ctx context.Context, tutorID string) ([]*models.Slot, bool, error) {
	start := time.Now()
	operation := "getTutorSlots"

	var exists bool
	err := c.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM tutor_schedules WHERE tutor_id = $1)", tutorID).Scan(&exists)
	if err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return nil, false, fmt.Errorf("failed to check tutor schedule: %w", err)
	}
	if !exists {
		recordMetrics("slots", operation, "success", metrics.MeasureDuration(start))
		return nil, false, nil
	}

	rows, err := c.pool.Query(ctx,
		"SELECT id, start_at, end_at FROM slots WHERE tutor_id = $1 ORDER BY start_at", tutorID)
	if err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return nil, false, fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	slots := []*models.Slot{}
	for rows.Next() {
		slot := &models.Slot{TutorID: tutorID}
		if err := rows.Scan(&slot.ID, &slot.Start, &slot.End); err != nil {
			recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
			return nil, false, fmt.Errorf("failed to scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return nil, false, fmt.Errorf("error iterating slot rows: %w", err)
	}

	recordMetrics("slots", operation, "success", metrics.MeasureDuration(start))
	return slots, true, nil
}

// NextSlotID returns max(slot id)+1 across every tutor, floored at
// models.FirstSlotID.
func (c *Client) NextSlotID(ctx context.Context) (int, error) {
	start := time.Now()
	operation := "nextSlotID"

	var next int
	err := c.pool.QueryRow(ctx,
		"SELECT GREATEST(COALESCE(MAX(id), 0) + 1, $1) FROM slots", models.FirstSlotID).Scan(&next)
	if err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return 0, fmt.Errorf("failed to compute next slot id: %w", err)
	}

	recordMetrics("slots", operation, "success", metrics.MeasureDuration(start))
	return next, nil
}

// InsertSlot stores a new slot, creating the tutor's schedule row if absent.
func (c *Client) InsertSlot(ctx context.Context, slot *models.Slot) error {
	start := time.Now()
	operation := "insertSlot"

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		"INSERT INTO tutor_schedules (tutor_id) VALUES ($1) ON CONFLICT DO NOTHING", slot.TutorID); err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to ensure tutor schedule: %w", err)
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO slots (id, tutor_id, start_at, end_at) VALUES ($1, $2, $3, $4)",
		slot.ID, slot.TutorID, slot.Start, slot.End); err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to insert slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to commit slot insert: %w", err)
	}

	recordMetrics("slots", operation, "success", metrics.MeasureDuration(start))
	return nil
}

// UpdateSlot rewrites a slot's time range.
func (c *Client) UpdateSlot(ctx context.Context, slot *models.Slot) error {
	start := time.Now()
	operation := "updateSlot"

	tag, err := c.pool.Exec(ctx,
		"UPDATE slots SET start_at = $1, end_at = $2 WHERE id = $3 AND tutor_id = $4",
		slot.Start, slot.End, slot.ID, slot.TutorID)
	if err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to update slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics("slots", operation, "not_found", metrics.MeasureDuration(start))
		return pgx.ErrNoRows
	}

	recordMetrics("slots", operation, "success", metrics.MeasureDuration(start))
	return nil
}

// DeleteSlot removes a slot row.
func (c *Client) DeleteSlot(ctx context.Context, tutorID string, slotID int) error {
	start := time.Now()
	operation := "deleteSlot"

	tag, err := c.pool.Exec(ctx,
		"DELETE FROM slots WHERE id = $1 AND tutor_id = $2", slotID, tutorID)
	if err != nil {
		recordMetrics("slots", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics("slots", operation, "not_found", metrics.MeasureDuration(start))
		return pgx.ErrNoRows
	}

	recordMetrics("slots", operation, "success", metrics.MeasureDuration(start))
	return nil
}

// IsNoRows reports whether err is the driver's no-rows sentinel
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
