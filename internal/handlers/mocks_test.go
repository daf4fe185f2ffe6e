package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// withSession injects an authenticated session the way SessionMiddleware does
func withSession(session *models.UserSession) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, session)
		c.Next()
	}
}

// MockScheduleService is a mock implementation of ScheduleServiceInterface
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetSchedule(ctx context.Context, tutorID, start, end string) ([]*models.Slot, error) {
	args := m.Called(ctx, tutorID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Slot), args.Error(1)
}

func (m *MockScheduleService) CreateSlot(ctx context.Context, tutorID, start, end string) (*models.Slot, error) {
	args := m.Called(ctx, tutorID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

func (m *MockScheduleService) UpdateSlot(ctx context.Context, tutorID string, slotID int, start, end string) (*models.Slot, error) {
	args := m.Called(ctx, tutorID, slotID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

func (m *MockScheduleService) DeleteSlot(ctx context.Context, tutorID string, slotID int) (*models.Slot, error) {
	args := m.Called(ctx, tutorID, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationServiceInterface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendManual(ctx context.Context, req *models.SendManualNotificationRequest) (*models.Notification, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID, role string, limit, skip int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, userID, role, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID, role string) (int, error) {
	args := m.Called(ctx, userID, role)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID, role string) (int, error) {
	args := m.Called(ctx, userID, role)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
