package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/services"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

func newNotificationService() (*services.NotificationService, *MockNotificationRepository, *MockDirectoryRepository) {
	mockNotificationRepo := new(MockNotificationRepository)
	mockDirectoryRepo := new(MockDirectoryRepository)
	service := services.NewNotificationService(mockNotificationRepo, mockDirectoryRepo)
	return service, mockNotificationRepo, mockDirectoryRepo
}

func TestNotificationService_SendManual(t *testing.T) {
	service, mockNotificationRepo, mockDirectoryRepo := newNotificationService()
	ctx := context.Background()

	mockDirectoryRepo.On("GetProfileByID", ctx, "tutor1").
		Return(&models.Profile{ID: "tutor1", Role: models.RoleTutor}, nil).Once()
	mockNotificationRepo.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == "tutor1" && n.SenderID == "student1" && n.Type == models.NotificationManual
	})).Return(&models.Notification{ID: "notif_ab12cd34", RecipientID: "tutor1"}, nil).Once()

	created, err := service.SendManual(ctx, &models.SendManualNotificationRequest{
		RecipientID:   "tutor1",
		RecipientType: "tutor",
		Title:         "Question about homework",
		Message:       "Could we go over problem 3?",
		SenderID:      "student1",
	})
	require.NoError(t, err)
	assert.Equal(t, "notif_ab12cd34", created.ID)

	mockNotificationRepo.AssertExpectations(t)
}

func TestNotificationService_SendManual_UnknownRecipient(t *testing.T) {
	service, mockNotificationRepo, mockDirectoryRepo := newNotificationService()
	ctx := context.Background()

	mockDirectoryRepo.On("GetProfileByID", ctx, "ghost").
		Return(nil, apperrors.NotFoundError("user")).Once()

	_, err := service.SendManual(ctx, &models.SendManualNotificationRequest{
		RecipientID:   "ghost",
		RecipientType: "tutor",
		Title:         "Hello",
		Message:       "Hi",
		SenderID:      "student1",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockNotificationRepo.AssertNotCalled(t, "Create")
}

func TestNotificationService_NotifyScheduleEvent(t *testing.T) {
	service, mockNotificationRepo, mockDirectoryRepo := newNotificationService()
	ctx := context.Background()

	tutor := &models.Profile{ID: "tutor1", Name: "Dr. Chen", Role: models.RoleTutor, Subjects: []string{"Calculus", "Linear Algebra"}}
	students := []*models.Profile{
		{ID: "student1", Role: models.RoleStudent, Courses: []string{"Calculus"}},
		{ID: "student2", Role: models.RoleStudent, Courses: []string{"Chemistry"}},
		{ID: "student3", Role: models.RoleStudent, Courses: []string{"Calculus", "Linear Algebra"}},
	}
	slot := &models.Slot{ID: 101, Start: time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)}

	mockDirectoryRepo.On("ProfilesByRole", ctx, models.RoleStudent).Return(students, nil).Once()
	// student3 matches two subjects but is delivered to once
	mockNotificationRepo.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == "student1" && n.Title == "Slot Removed" && n.EventType == models.EventScheduleDelete
	})).Return(&models.Notification{}, nil).Once()
	mockNotificationRepo.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == "student3"
	})).Return(&models.Notification{}, nil).Once()

	service.NotifyScheduleEvent(ctx, tutor, models.EventScheduleDelete, slot)

	mockNotificationRepo.AssertExpectations(t)
	mockNotificationRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestNotificationService_NotifyScheduleEvent_StoreFailureDoesNotPropagate(t *testing.T) {
	service, mockNotificationRepo, mockDirectoryRepo := newNotificationService()
	ctx := context.Background()

	tutor := &models.Profile{ID: "tutor1", Name: "Dr. Chen", Subjects: []string{"Calculus"}}
	students := []*models.Profile{
		{ID: "student1", Role: models.RoleStudent, Courses: []string{"Calculus"}},
	}

	mockDirectoryRepo.On("ProfilesByRole", ctx, models.RoleStudent).Return(students, nil).Once()
	mockNotificationRepo.On("Create", ctx, mock.Anything).
		Return(nil, apperrors.InternalError("store down")).Once()

	// fan-out is best effort, the call must not panic or propagate
	service.NotifyScheduleEvent(ctx, tutor, models.EventScheduleCreate,
		&models.Slot{ID: 101})

	mockNotificationRepo.AssertExpectations(t)
}

func TestNotificationService_NotifyBookingDecision(t *testing.T) {
	tests := []struct {
		name      string
		approved  bool
		wantTitle string
		wantEvent models.EventType
	}{
		{"approved", true, "Booking Approved", models.EventBookingApproved},
		{"rejected", false, "Booking Rejected", models.EventBookingRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockNotificationRepo, _ := newNotificationService()
			ctx := context.Background()

			booking := &models.Booking{BookingID: "BK001", StudentID: "student1", TutorID: "tutor1", CourseName: "Calculus"}
			mockNotificationRepo.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
				return n.RecipientID == "student1" && n.SenderID == "tutor1" &&
					n.Title == tt.wantTitle && n.EventType == tt.wantEvent
			})).Return(&models.Notification{}, nil).Once()

			service.NotifyBookingDecision(ctx, booking, "Dr. Chen", tt.approved)
			mockNotificationRepo.AssertExpectations(t)
		})
	}
}

func TestNotificationService_NotifySessionChange_DeduplicatesStudents(t *testing.T) {
	service, mockNotificationRepo, _ := newNotificationService()
	ctx := context.Background()

	session := &models.TutorSession{SessionID: "TS001", TutorID: "tutor1", CourseName: "Calculus"}
	mockNotificationRepo.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == "student1"
	})).Return(&models.Notification{}, nil).Once()
	mockNotificationRepo.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == "student2"
	})).Return(&models.Notification{}, nil).Once()

	service.NotifySessionChange(ctx, session, "Dr. Chen", []string{"student1", "student2", "student1"})

	mockNotificationRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestNotificationService_ListForUser_Pagination(t *testing.T) {
	service, mockNotificationRepo, _ := newNotificationService()
	ctx := context.Background()

	owned := []*models.Notification{
		{ID: "n1", IsRead: false},
		{ID: "n2", IsRead: true},
		{ID: "n3", IsRead: false},
		{ID: "n4", IsRead: true},
	}
	mockNotificationRepo.On("ListForRecipient", ctx, "student1", models.RecipientStudent).
		Return(owned, nil).Times(3)

	page, unread, err := service.ListForUser(ctx, "student1", "student", 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "n2", page[0].ID)
	assert.Equal(t, "n3", page[1].ID)
	// unread count covers the whole inbox, not the page
	assert.Equal(t, 2, unread)

	// skip beyond the end yields an empty page, not an error
	page, unread, err = service.ListForUser(ctx, "student1", "student", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, 2, unread)

	// limit 0 means no limit
	page, _, err = service.ListForUser(ctx, "student1", "student", 0, 0)
	require.NoError(t, err)
	assert.Len(t, page, 4)
}

func TestNotificationService_MarkRead(t *testing.T) {
	service, mockNotificationRepo, _ := newNotificationService()
	ctx := context.Background()

	mockNotificationRepo.On("MarkRead", ctx, "n1", "student1").
		Return(&models.Notification{ID: "n1", IsRead: true}, nil).Once()

	n, err := service.MarkRead(ctx, "n1", "student1")
	require.NoError(t, err)
	assert.True(t, n.IsRead)
}

func TestNotificationService_MarkRead_NotOwned(t *testing.T) {
	service, mockNotificationRepo, _ := newNotificationService()
	ctx := context.Background()

	mockNotificationRepo.On("MarkRead", ctx, "n1", "intruder").
		Return(nil, apperrors.NotFoundError("notification")).Once()

	_, err := service.MarkRead(ctx, "n1", "intruder")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	service, mockNotificationRepo, _ := newNotificationService()
	ctx := context.Background()

	mockNotificationRepo.On("MarkAllRead", ctx, "student1", models.RecipientStudent).
		Return(3, nil).Once()

	changed, err := service.MarkAllRead(ctx, "student1", "student")
	require.NoError(t, err)
	assert.Equal(t, 3, changed)
}
