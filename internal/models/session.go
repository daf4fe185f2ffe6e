package models

import "time"

// SessionStatus is the lifecycle state of a scheduled tutoring session
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// TutorSession is a confirmed, scheduled tutoring meeting derived from an
// approved booking.
type TutorSession struct {
	SessionID       string        `json:"session_id"`
	TutorID         string        `json:"tutor_id"`
	CourseName      string        `json:"course_name"`
	DateTime        time.Time     `json:"date_time"`
	Status          SessionStatus `json:"status"`
	StudentCount    int           `json:"student_count"`
	DurationMinutes int           `json:"duration_minutes"`
}

// UpdateSessionRequest carries partial session fields for a tutor reschedule.
// Nil pointers leave the field unchanged.
type UpdateSessionRequest struct {
	CourseName      *string `json:"course_name"`
	DateTime        *string `json:"date_time"`
	Status          *string `json:"status"`
	StudentCount    *int    `json:"student_count"`
	DurationMinutes *int    `json:"duration_minutes"`
}
