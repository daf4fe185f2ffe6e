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

const bookingColumns = "booking_id, student_id, tutor_id, slot_id, course_name, date_time, slot_end, status, created_at"

func scanBooking(row pgx.Row) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(&b.BookingID, &b.StudentID, &b.TutorID, &b.SlotID,
		&b.CourseName, &b.DateTime, &b.SlotEnd, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns the whole booking ledger ordered by creation time.
func (c *Client) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	start := time.Now()
	operation := "listBookings"

	rows, err := c.pool.Query(ctx,
		"SELECT "+bookingColumns+" FROM bookings ORDER BY created_at")
	if err != nil {
		recordMetrics("bookings", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			recordMetrics("bookings", operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		recordMetrics("bookings", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	recordMetrics("bookings", operation, "success", metrics.MeasureDuration(start))
	return bookings, nil
}

// GetBooking looks up one booking by id.
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	start := time.Now()
	operation := "getBooking"

	b, err := scanBooking(c.pool.QueryRow(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE booking_id = $1", bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("bookings", operation, "not_found", metrics.MeasureDuration(start))
			return nil, err
		}
		recordMetrics("bookings", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query booking: %w", err)
	}

	recordMetrics("bookings", operation, "success", metrics.MeasureDuration(start))
	return b, nil
}

// InsertBooking appends a new ledger entry.
func (c *Client) InsertBooking(ctx context.Context, b *models.Booking) error {
	start := time.Now()
	operation := "insertBooking"

	_, err := c.pool.Exec(ctx,
		"INSERT INTO bookings ("+bookingColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		b.BookingID, b.StudentID, b.TutorID, b.SlotID,
		b.CourseName, b.DateTime, b.SlotEnd, b.Status, b.CreatedAt)
	if err != nil {
		recordMetrics("bookings", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	recordMetrics("bookings", operation, "success", metrics.MeasureDuration(start))
	return nil
}

// UpdateBooking rewrites a booking's status.
func (c *Client) UpdateBooking(ctx context.Context, b *models.Booking) error {
	start := time.Now()
	operation := "updateBooking"

	tag, err := c.pool.Exec(ctx,
		"UPDATE bookings SET status = $1 WHERE booking_id = $2", b.Status, b.BookingID)
	if err != nil {
		recordMetrics("bookings", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics("bookings", operation, "not_found", metrics.MeasureDuration(start))
		return pgx.ErrNoRows
	}

	recordMetrics("bookings", operation, "success", metrics.MeasureDuration(start))
	return nil
}
