package repository

import (
	"context"

	"github.com/tutorhub/tutorhub-api/internal/models"
)

// ScheduleDataSource defines the interface for schedule persistence.
// This allows switching between flat-file and PostgreSQL implementations.
type ScheduleDataSource interface {
	// GetTutorSlots fetches a tutor's slots. The bool reports whether the
	// tutor has a schedule record at all.
	GetTutorSlots(ctx context.Context, tutorID string) ([]*models.Slot, bool, error)

	// NextSlotID returns the next free slot id (never below models.FirstSlotID)
	NextSlotID(ctx context.Context) (int, error)

	// InsertSlot adds a slot, creating the tutor's schedule record if needed
	InsertSlot(ctx context.Context, slot *models.Slot) error

	// UpdateSlot replaces the time range of an existing slot
	UpdateSlot(ctx context.Context, slot *models.Slot) error

	// DeleteSlot removes a slot from a tutor's schedule
	DeleteSlot(ctx context.Context, tutorID string, slotID int) error
}

// BookingDataSource defines the interface for booking ledger persistence
type BookingDataSource interface {
	// ListBookings fetches the full ledger ordered by creation time
	ListBookings(ctx context.Context) ([]*models.Booking, error)

	// GetBooking fetches a single booking by id
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)

	// InsertBooking appends a booking to the ledger
	InsertBooking(ctx context.Context, b *models.Booking) error

	// UpdateBooking persists a booking's status change
	UpdateBooking(ctx context.Context, b *models.Booking) error
}

// SessionDataSource defines the interface for tutor session persistence
type SessionDataSource interface {
	// ListSessions fetches all sessions ordered by scheduled time
	ListSessions(ctx context.Context) ([]*models.TutorSession, error)

	// GetSession fetches a single session by id
	GetSession(ctx context.Context, sessionID string) (*models.TutorSession, error)

	// InsertSession stores a newly scheduled session
	InsertSession(ctx context.Context, ts *models.TutorSession) error

	// UpdateSession persists session field changes
	UpdateSession(ctx context.Context, ts *models.TutorSession) error
}

// NotificationDataSource defines the interface for notification persistence
type NotificationDataSource interface {
	// ListNotifications fetches every delivery record
	ListNotifications(ctx context.Context) ([]*models.Notification, error)

	// InsertNotification stores one delivery record
	InsertNotification(ctx context.Context, n *models.Notification) error

	// UpdateNotification persists a read-flag change
	UpdateNotification(ctx context.Context, n *models.Notification) error

	// DeleteNotification removes a record permanently
	DeleteNotification(ctx context.Context, id string) error
}

// DirectoryDataSource defines the interface for the user directory and the
// sign-on account store
type DirectoryDataSource interface {
	// ListProfiles fetches every user profile
	ListProfiles(ctx context.Context) ([]*models.Profile, error)

	// ListCredentials fetches every sign-on account
	ListCredentials(ctx context.Context) ([]*models.Credential, error)
}
