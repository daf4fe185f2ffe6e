package models

import "time"

// BookingStatus is the lifecycle state of a booking request
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking records a student's request to occupy a tutor's slot.
// Slot start/end are denormalized so booking history survives slot deletion.
type Booking struct {
	BookingID  string        `json:"booking_id"`
	StudentID  string        `json:"student_id"`
	TutorID    string        `json:"tutor_id"`
	SlotID     int           `json:"slot_id"`
	CourseName string        `json:"course_name"`
	DateTime   time.Time     `json:"date_time"`
	SlotEnd    time.Time     `json:"slot_end"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// IsActive reports whether the booking still holds a claim on its slot.
// Rejected and cancelled bookings release the (student, slot) pair.
func (b *Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// CanCancel reports whether a student may still cancel this booking
func (b *Booking) CanCancel() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// BookSessionRequest is the student booking payload. The slot is referenced
// by its declared time range and resolved to a slot id server-side.
type BookSessionRequest struct {
	TutorID    string `json:"tutor_id" binding:"required"`
	CourseName string `json:"course_name" binding:"required"`
	SlotStart  string `json:"slot_start" binding:"required"`
	SlotEnd    string `json:"slot_end" binding:"required"`
}

// BookingView is a booking enriched with directory names for API responses
type BookingView struct {
	*Booking
	TutorName   string `json:"tutor_name,omitempty"`
	StudentName string `json:"student_name,omitempty"`
}
