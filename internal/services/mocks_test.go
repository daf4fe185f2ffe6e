package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/pkg/timerange"
)

// MockScheduleRepository is a mock implementation of ScheduleRepositoryInterface
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetSchedule(ctx context.Context, tutorID string) ([]*models.Slot, bool, error) {
	args := m.Called(ctx, tutorID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*models.Slot), args.Bool(1), args.Error(2)
}

func (m *MockScheduleRepository) CreateSlot(ctx context.Context, tutorID string, r timerange.Range) (*models.Slot, error) {
	args := m.Called(ctx, tutorID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

func (m *MockScheduleRepository) UpdateSlot(ctx context.Context, tutorID string, slotID int, r timerange.Range) (*models.Slot, error) {
	args := m.Called(ctx, tutorID, slotID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

func (m *MockScheduleRepository) DeleteSlot(ctx context.Context, tutorID string, slotID int) (*models.Slot, error) {
	args := m.Called(ctx, tutorID, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

func (m *MockScheduleRepository) QuerySlots(ctx context.Context, tutorID string, r timerange.Range) ([]*models.Slot, error) {
	args := m.Called(ctx, tutorID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Slot), args.Error(1)
}

func (m *MockScheduleRepository) FindSlotByRange(ctx context.Context, tutorID string, r timerange.Range) (*models.Slot, error) {
	args := m.Called(ctx, tutorID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

// MockBookingRepository is a mock implementation of BookingRepositoryInterface
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context) ([]*models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Transition(ctx context.Context, bookingID string, to models.BookingStatus, allowedFrom ...models.BookingStatus) (*models.Booking, error) {
	callArgs := make([]interface{}, 0, len(allowedFrom)+3)
	callArgs = append(callArgs, ctx, bookingID, to)
	for _, from := range allowedFrom {
		callArgs = append(callArgs, from)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepositoryInterface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) List(ctx context.Context) ([]*models.TutorSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TutorSession), args.Error(1)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, sessionID string) (*models.TutorSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TutorSession), args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, ts *models.TutorSession) (*models.TutorSession, error) {
	args := m.Called(ctx, ts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TutorSession), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, ts *models.TutorSession) error {
	args := m.Called(ctx, ts)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepositoryInterface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListForRecipient(ctx context.Context, recipientID string, recipientType models.RecipientType) ([]*models.Notification, error) {
	args := m.Called(ctx, recipientID, recipientType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) UnreadCount(ctx context.Context, recipientID string, recipientType models.RecipientType) (int, error) {
	args := m.Called(ctx, recipientID, recipientType)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, error) {
	args := m.Called(ctx, id, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID string, recipientType models.RecipientType) (int, error) {
	args := m.Called(ctx, recipientID, recipientType)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id, recipientID string) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

// MockDirectoryRepository is a mock implementation of DirectoryRepositoryInterface
type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) Profiles(ctx context.Context) ([]*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *MockDirectoryRepository) ProfilesByRole(ctx context.Context, role string) ([]*models.Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *MockDirectoryRepository) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockDirectoryRepository) GetCredentialByUsername(ctx context.Context, username string) (*models.Credential, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func (m *MockDirectoryRepository) InvalidateCache() {
	m.Called()
}

// MockNotifier is a mock implementation of NotificationNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyScheduleEvent(ctx context.Context, tutor *models.Profile, event models.EventType, slot *models.Slot) {
	m.Called(ctx, tutor, event, slot)
}

func (m *MockNotifier) NotifyCourseRequest(ctx context.Context, b *models.Booking, studentName string) {
	m.Called(ctx, b, studentName)
}

func (m *MockNotifier) NotifyBookingDecision(ctx context.Context, b *models.Booking, tutorName string, approved bool) {
	m.Called(ctx, b, tutorName, approved)
}

func (m *MockNotifier) NotifySessionChange(ctx context.Context, ts *models.TutorSession, tutorName string, studentIDs []string) {
	m.Called(ctx, ts, tutorName, studentIDs)
}
