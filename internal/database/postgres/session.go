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

const sessionColumns = "session_id, tutor_id, course_name, date_time, status, student_count, duration_minutes"

func scanSession(row pgx.Row) (*models.TutorSession, error) {
	ts := &models.TutorSession{}
	err := row.Scan(&ts.SessionID, &ts.TutorID, &ts.CourseName, &ts.DateTime,
		&ts.Status, &ts.StudentCount, &ts.DurationMinutes)
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// ListSessions returns every tutoring session ordered by scheduled time.
func (c *Client) ListSessions(ctx context.Context) ([]*models.TutorSession, error) {
	start := time.Now()
	operation := "listSessions"

	rows, err := c.pool.Query(ctx,
		"SELECT "+sessionColumns+" FROM tutor_sessions ORDER BY date_time")
	if err != nil {
		recordMetrics("sessions", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.TutorSession{}
	for rows.Next() {
		ts, err := scanSession(rows)
		if err != nil {
			recordMetrics("sessions", operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, ts)
	}
	if err := rows.Err(); err != nil {
		recordMetrics("sessions", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	recordMetrics("sessions", operation, "success", metrics.MeasureDuration(start))
	return sessions, nil
}

// GetSession looks up one session by id.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.TutorSession, error) {
	start := time.Now()
	operation := "getSession"

	ts, err := scanSession(c.pool.QueryRow(ctx,
		"SELECT "+sessionColumns+" FROM tutor_sessions WHERE session_id = $1", sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("sessions", operation, "not_found", metrics.MeasureDuration(start))
			return nil, err
		}
		recordMetrics("sessions", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	recordMetrics("sessions", operation, "success", metrics.MeasureDuration(start))
	return ts, nil
}

// InsertSession stores a newly scheduled session.
func (c *Client) InsertSession(ctx context.Context, ts *models.TutorSession) error {
	start := time.Now()
	operation := "insertSession"

	_, err := c.pool.Exec(ctx,
		"INSERT INTO tutor_sessions ("+sessionColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7)",
		ts.SessionID, ts.TutorID, ts.CourseName, ts.DateTime,
		ts.Status, ts.StudentCount, ts.DurationMinutes)
	if err != nil {
		recordMetrics("sessions", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to insert session: %w", err)
	}

	recordMetrics("sessions", operation, "success", metrics.MeasureDuration(start))
	return nil
}

// UpdateSession rewrites a session's mutable fields.
func (c *Client) UpdateSession(ctx context.Context, ts *models.TutorSession) error {
	start := time.Now()
	operation := "updateSession"

	tag, err := c.pool.Exec(ctx,
		`UPDATE tutor_sessions
		 SET course_name = $1, date_time = $2, status = $3, student_count = $4, duration_minutes = $5
		 WHERE session_id = $6`,
		ts.CourseName, ts.DateTime, ts.Status, ts.StudentCount, ts.DurationMinutes, ts.SessionID)
	if err != nil {
		recordMetrics("sessions", operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics("sessions", operation, "not_found", metrics.MeasureDuration(start))
		return pgx.ErrNoRows
	}

	recordMetrics("sessions", operation, "success", metrics.MeasureDuration(start))
	return nil
}
