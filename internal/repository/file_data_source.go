package repository

import (
	"context"

	"github.com/tutorhub/tutorhub-api/internal/database/filestore"
	"github.com/tutorhub/tutorhub-api/internal/models"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

// FileScheduleDataSource implements ScheduleDataSource on the flat-file store.
// Every mutation rewrites the whole schedule document, so callers must
// serialize writes (the repositories hold the lock).
type FileScheduleDataSource struct {
	store *filestore.Store
}

// NewFileScheduleDataSource creates a new flat-file schedule data source
func NewFileScheduleDataSource(store *filestore.Store) *FileScheduleDataSource {
	return &FileScheduleDataSource{store: store}
}

// GetTutorSlots fetches a tutor's slots from the schedule document
func (ds *FileScheduleDataSource) GetTutorSlots(ctx context.Context, tutorID string) ([]*models.Slot, bool, error) {
	schedules, err := ds.store.ReadSchedules()
	if err != nil {
		return nil, false, err
	}

	schedule, ok := schedules[tutorID]
	if !ok {
		return nil, false, nil
	}
	return schedule.Slots, true, nil
}

// NextSlotID scans all schedules for the highest slot id
func (ds *FileScheduleDataSource) NextSlotID(ctx context.Context) (int, error) {
	schedules, err := ds.store.ReadSchedules()
	if err != nil {
		return 0, err
	}

	next := models.FirstSlotID
	for _, schedule := range schedules {
		for _, slot := range schedule.Slots {
			if slot.ID >= next {
				next = slot.ID + 1
			}
		}
	}
	return next, nil
}

// InsertSlot adds a slot, creating the tutor's schedule entry if needed
func (ds *FileScheduleDataSource) InsertSlot(ctx context.Context, slot *models.Slot) error {
	schedules, err := ds.store.ReadSchedules()
	if err != nil {
		return err
	}

	schedule, ok := schedules[slot.TutorID]
	if !ok {
		schedule = &models.TutorSchedule{TutorID: slot.TutorID, Slots: []*models.Slot{}}
		schedules[slot.TutorID] = schedule
	}
	schedule.Slots = append(schedule.Slots, slot)

	return ds.store.WriteSchedules(schedules)
}

// UpdateSlot replaces the time range of an existing slot
func (ds *FileScheduleDataSource) UpdateSlot(ctx context.Context, slot *models.Slot) error {
	schedules, err := ds.store.ReadSchedules()
	if err != nil {
		return err
	}

	schedule, ok := schedules[slot.TutorID]
	if !ok {
		return apperrors.NotFoundError("schedule")
	}
	for _, existing := range schedule.Slots {
		if existing.ID == slot.ID {
			existing.Start = slot.Start
			existing.End = slot.End
			return ds.store.WriteSchedules(schedules)
		}
	}
	return apperrors.NotFoundError("slot")
}

// DeleteSlot removes a slot from a tutor's schedule
func (ds *FileScheduleDataSource) DeleteSlot(ctx context.Context, tutorID string, slotID int) error {
	schedules, err := ds.store.ReadSchedules()
	if err != nil {
		return err
	}

	schedule, ok := schedules[tutorID]
	if !ok {
		return apperrors.NotFoundError("schedule")
	}
	for i, existing := range schedule.Slots {
		if existing.ID == slotID {
			schedule.Slots = append(schedule.Slots[:i], schedule.Slots[i+1:]...)
			return ds.store.WriteSchedules(schedules)
		}
	}
	return apperrors.NotFoundError("slot")
}

// Ensure FileScheduleDataSource implements ScheduleDataSource
var _ ScheduleDataSource = (*FileScheduleDataSource)(nil)

// FileBookingDataSource implements BookingDataSource on the flat-file store
type FileBookingDataSource struct {
	store *filestore.Store
}

// NewFileBookingDataSource creates a new flat-file booking data source
func NewFileBookingDataSource(store *filestore.Store) *FileBookingDataSource {
	return &FileBookingDataSource{store: store}
}

// ListBookings fetches the full ledger
func (ds *FileBookingDataSource) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return ds.store.ReadBookings()
}

// GetBooking fetches a single booking by id
func (ds *FileBookingDataSource) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	bookings, err := ds.store.ReadBookings()
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, apperrors.NotFoundError("booking")
}

// InsertBooking appends a booking to the ledger
func (ds *FileBookingDataSource) InsertBooking(ctx context.Context, b *models.Booking) error {
	bookings, err := ds.store.ReadBookings()
	if err != nil {
		return err
	}
	bookings = append(bookings, b)
	return ds.store.WriteBookings(bookings)
}

// UpdateBooking persists a booking's status change
func (ds *FileBookingDataSource) UpdateBooking(ctx context.Context, b *models.Booking) error {
	bookings, err := ds.store.ReadBookings()
	if err != nil {
		return err
	}
	for i, existing := range bookings {
		if existing.BookingID == b.BookingID {
			bookings[i] = b
			return ds.store.WriteBookings(bookings)
		}
	}
	return apperrors.NotFoundError("booking")
}

// Ensure FileBookingDataSource implements BookingDataSource
var _ BookingDataSource = (*FileBookingDataSource)(nil)

// FileSessionDataSource implements SessionDataSource on the flat-file store
type FileSessionDataSource struct {
	store *filestore.Store
}

// NewFileSessionDataSource creates a new flat-file session data source
func NewFileSessionDataSource(store *filestore.Store) *FileSessionDataSource {
	return &FileSessionDataSource{store: store}
}

// ListSessions fetches all sessions
func (ds *FileSessionDataSource) ListSessions(ctx context.Context) ([]*models.TutorSession, error) {
	return ds.store.ReadSessions()
}

// GetSession fetches a single session by id
func (ds *FileSessionDataSource) GetSession(ctx context.Context, sessionID string) (*models.TutorSession, error) {
	sessions, err := ds.store.ReadSessions()
	if err != nil {
		return nil, err
	}
	for _, ts := range sessions {
		if ts.SessionID == sessionID {
			return ts, nil
		}
	}
	return nil, apperrors.NotFoundError("session")
}

// InsertSession stores a newly scheduled session
func (ds *FileSessionDataSource) InsertSession(ctx context.Context, ts *models.TutorSession) error {
	sessions, err := ds.store.ReadSessions()
	if err != nil {
		return err
	}
	sessions = append(sessions, ts)
	return ds.store.WriteSessions(sessions)
}

// UpdateSession persists session field changes
func (ds *FileSessionDataSource) UpdateSession(ctx context.Context, ts *models.TutorSession) error {
	sessions, err := ds.store.ReadSessions()
	if err != nil {
		return err
	}
	for i, existing := range sessions {
		if existing.SessionID == ts.SessionID {
			sessions[i] = ts
			return ds.store.WriteSessions(sessions)
		}
	}
	return apperrors.NotFoundError("session")
}

// Ensure FileSessionDataSource implements SessionDataSource
var _ SessionDataSource = (*FileSessionDataSource)(nil)

// FileNotificationDataSource implements NotificationDataSource on the
// flat-file store
type FileNotificationDataSource struct {
	store *filestore.Store
}

// NewFileNotificationDataSource creates a new flat-file notification data source
func NewFileNotificationDataSource(store *filestore.Store) *FileNotificationDataSource {
	return &FileNotificationDataSource{store: store}
}

// ListNotifications fetches every delivery record
func (ds *FileNotificationDataSource) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	return ds.store.ReadNotifications()
}

// InsertNotification stores one delivery record
func (ds *FileNotificationDataSource) InsertNotification(ctx context.Context, n *models.Notification) error {
	notifications, err := ds.store.ReadNotifications()
	if err != nil {
		return err
	}
	notifications = append(notifications, n)
	return ds.store.WriteNotifications(notifications)
}

// UpdateNotification persists a read-flag change
func (ds *FileNotificationDataSource) UpdateNotification(ctx context.Context, n *models.Notification) error {
	notifications, err := ds.store.ReadNotifications()
	if err != nil {
		return err
	}
	for i, existing := range notifications {
		if existing.ID == n.ID {
			notifications[i] = n
			return ds.store.WriteNotifications(notifications)
		}
	}
	return apperrors.NotFoundError("notification")
}

// DeleteNotification removes a record permanently
func (ds *FileNotificationDataSource) DeleteNotification(ctx context.Context, id string) error {
	notifications, err := ds.store.ReadNotifications()
	if err != nil {
		return err
	}
	for i, existing := range notifications {
		if existing.ID == id {
			notifications = append(notifications[:i], notifications[i+1:]...)
			return ds.store.WriteNotifications(notifications)
		}
	}
	return apperrors.NotFoundError("notification")
}

// Ensure FileNotificationDataSource implements NotificationDataSource
var _ NotificationDataSource = (*FileNotificationDataSource)(nil)

// FileDirectoryDataSource implements DirectoryDataSource on the flat-file
// store. The directory documents are read-only seed data.
type FileDirectoryDataSource struct {
	store *filestore.Store
}

// NewFileDirectoryDataSource creates a new flat-file directory data source
func NewFileDirectoryDataSource(store *filestore.Store) *FileDirectoryDataSource {
	return &FileDirectoryDataSource{store: store}
}

// ListProfiles fetches every user profile
func (ds *FileDirectoryDataSource) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return ds.store.ReadProfiles()
}

// ListCredentials fetches every sign-on account
func (ds *FileDirectoryDataSource) ListCredentials(ctx context.Context) ([]*models.Credential, error) {
	return ds.store.ReadCredentials()
}

// Ensure FileDirectoryDataSource implements DirectoryDataSource
var _ DirectoryDataSource = (*FileDirectoryDataSource)(nil)
