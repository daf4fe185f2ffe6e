package repository

import (
	"context"

	"github.com/tutorhub/tutorhub-api/internal/database/postgres"
	"github.com/tutorhub/tutorhub-api/internal/models"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

// PostgresScheduleDataSource implements ScheduleDataSource using PostgreSQL
type PostgresScheduleDataSource struct {
	client *postgres.Client
}

// NewPostgresScheduleDataSource creates a new PostgreSQL schedule data source
func NewPostgresScheduleDataSource(client *postgres.Client) *PostgresScheduleDataSource {
	return &PostgresScheduleDataSource{client: client}
}

// GetTutorSlots fetches a tutor's slots from PostgreSQL
func (ds *PostgresScheduleDataSource) GetTutorSlots(ctx context.Context, tutorID string) ([]*models.Slot, bool, error) {
	return ds.client.GetTutorSlots(ctx, tutorID)
}

// NextSlotID returns the next free slot id from PostgreSQL
func (ds *PostgresScheduleDataSource) NextSlotID(ctx context.Context) (int, error) {
	return ds.client.NextSlotID(ctx)
}

// InsertSlot adds a slot in PostgreSQL
func (ds *PostgresScheduleDataSource) InsertSlot(ctx context.Context, slot *models.Slot) error {
	return ds.client.InsertSlot(ctx, slot)
}

// UpdateSlot replaces a slot's time range in PostgreSQL
func (ds *PostgresScheduleDataSource) UpdateSlot(ctx context.Context, slot *models.Slot) error {
	if err := ds.client.UpdateSlot(ctx, slot); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFoundError("slot")
		}
		return err
	}
	return nil
}

// DeleteSlot removes a slot in PostgreSQL
func (ds *PostgresScheduleDataSource) DeleteSlot(ctx context.Context, tutorID string, slotID int) error {
	if err := ds.client.DeleteSlot(ctx, tutorID, slotID); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFoundError("slot")
		}
		return err
	}
	return nil
}

// Ensure PostgresScheduleDataSource implements ScheduleDataSource
var _ ScheduleDataSource = (*PostgresScheduleDataSource)(nil)

// PostgresBookingDataSource implements BookingDataSource using PostgreSQL
type PostgresBookingDataSource struct {
	client *postgres.Client
}

// NewPostgresBookingDataSource creates a new PostgreSQL booking data source
func NewPostgresBookingDataSource(client *postgres.Client) *PostgresBookingDataSource {
	return &PostgresBookingDataSource{client: client}
}

// ListBookings fetches the full ledger from PostgreSQL
func (ds *PostgresBookingDataSource) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return ds.client.ListBookings(ctx)
}

// GetBooking fetches a single booking by id from PostgreSQL
func (ds *PostgresBookingDataSource) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := ds.client.GetBooking(ctx, bookingID)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFoundError("booking")
		}
		return nil, err
	}
	return b, nil
}

// InsertBooking appends a booking to the ledger in PostgreSQL
func (ds *PostgresBookingDataSource) InsertBooking(ctx context.Context, b *models.Booking) error {
	return ds.client.InsertBooking(ctx, b)
}

// UpdateBooking persists a booking's status change in PostgreSQL
func (ds *PostgresBookingDataSource) UpdateBooking(ctx context.Context, b *models.Booking) error {
	if err := ds.client.UpdateBooking(ctx, b); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFoundError("booking")
		}
		return err
	}
	return nil
}

// Ensure PostgresBookingDataSource implements BookingDataSource
var _ BookingDataSource = (*PostgresBookingDataSource)(nil)

// PostgresSessionDataSource implements SessionDataSource using PostgreSQL
type PostgresSessionDataSource struct {
	client *postgres.Client
}

// NewPostgresSessionDataSource creates a new PostgreSQL session data source
func NewPostgresSessionDataSource(client *postgres.Client) *PostgresSessionDataSource {
	return &PostgresSessionDataSource{client: client}
}

// ListSessions fetches all sessions from PostgreSQL
func (ds *PostgresSessionDataSource) ListSessions(ctx context.Context) ([]*models.TutorSession, error) {
	return ds.client.ListSessions(ctx)
}

// GetSession fetches a single session by id from PostgreSQL
func (ds *PostgresSessionDataSource) GetSession(ctx context.Context, sessionID string) (*models.TutorSession, error) {
	ts, err := ds.client.GetSession(ctx, sessionID)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFoundError("session")
		}
		return nil, err
	}
	return ts, nil
}

// InsertSession stores a newly scheduled session in PostgreSQL
func (ds *PostgresSessionDataSource) InsertSession(ctx context.Context, ts *models.TutorSession) error {
	return ds.client.InsertSession(ctx, ts)
}

// UpdateSession persists session field changes in PostgreSQL
func (ds *PostgresSessionDataSource) UpdateSession(ctx context.Context, ts *models.TutorSession) error {
	if err := ds.client.UpdateSession(ctx, ts); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFoundError("session")
		}
		return err
	}
	return nil
}

// Ensure PostgresSessionDataSource implements SessionDataSource
var _ SessionDataSource = (*PostgresSessionDataSource)(nil)

// PostgresNotificationDataSource implements NotificationDataSource using PostgreSQL
type PostgresNotificationDataSource struct {
	client *postgres.Client
}

// NewPostgresNotificationDataSource creates a new PostgreSQL notification data source
func NewPostgresNotificationDataSource(client *postgres.Client) *PostgresNotificationDataSource {
	return &PostgresNotificationDataSource{client: client}
}

// ListNotifications fetches every delivery record from PostgreSQL
func (ds *PostgresNotificationDataSource) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	return ds.client.ListNotifications(ctx)
}

// InsertNotification stores one delivery record in PostgreSQL
func (ds *PostgresNotificationDataSource) InsertNotification(ctx context.Context, n *models.Notification) error {
	return ds.client.InsertNotification(ctx, n)
}

// UpdateNotification persists a read-flag change in PostgreSQL
func (ds *PostgresNotificationDataSource) UpdateNotification(ctx context.Context, n *models.Notification) error {
	if err := ds.client.UpdateNotification(ctx, n); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFoundError("notification")
		}
		return err
	}
	return nil
}

// DeleteNotification removes a record permanently from PostgreSQL
func (ds *PostgresNotificationDataSource) DeleteNotification(ctx context.Context, id string) error {
	if err := ds.client.DeleteNotification(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFoundError("notification")
		}
		return err
	}
	return nil
}

// Ensure PostgresNotificationDataSource implements NotificationDataSource
var _ NotificationDataSource = (*PostgresNotificationDataSource)(nil)

// PostgresDirectoryDataSource implements DirectoryDataSource using PostgreSQL
type PostgresDirectoryDataSource struct {
	client *postgres.Client
}

// NewPostgresDirectoryDataSource creates a new PostgreSQL directory data source
func NewPostgresDirectoryDataSource(client *postgres.Client) *PostgresDirectoryDataSource {
	return &PostgresDirectoryDataSource{client: client}
}

// ListProfiles fetches every user profile from PostgreSQL
func (ds *PostgresDirectoryDataSource) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return ds.client.ListProfiles(ctx)
}

// ListCredentials fetches every sign-on account from PostgreSQL
func (ds *PostgresDirectoryDataSource) ListCredentials(ctx context.Context) ([]*models.Credential, error) {
	return ds.client.ListCredentials(ctx)
}

// Ensure PostgresDirectoryDataSource implements DirectoryDataSource
var _ DirectoryDataSource = (*PostgresDirectoryDataSource)(nil)
