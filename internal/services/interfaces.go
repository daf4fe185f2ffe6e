package services

import (
	"context"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/pkg/jwt"
)

// ScheduleServiceInterface defines the interface for schedule operations
type ScheduleServiceInterface interface {
	GetSchedule(ctx context.Context, tutorID, start, end string) ([]*models.Slot, error)
	CreateSlot(ctx context.Context, tutorID, start, end string) (*models.Slot, error)
	UpdateSlot(ctx context.Context, tutorID string, slotID int, start, end string) (*models.Slot, error)
	DeleteSlot(ctx context.Context, tutorID string, slotID int) (*models.Slot, error)
}

// BookingServiceInterface defines the interface for booking lifecycle operations
type BookingServiceInterface interface {
	Book(ctx context.Context, studentID string, req *models.BookSessionRequest) (*models.Booking, error)
	Cancel(ctx context.Context, studentID, bookingID string) (*models.Booking, error)
	Approve(ctx context.Context, tutorID, bookingID string) (*models.Booking, *models.TutorSession, error)
	Reject(ctx context.Context, tutorID, bookingID string) (*models.Booking, error)
	StudentBookings(ctx context.Context, studentID string) ([]*models.BookingView, error)
	TutorBookings(ctx context.Context, tutorID string) ([]*models.BookingView, error)
}

// SessionServiceInterface defines the interface for tutor session operations
type SessionServiceInterface interface {
	ListForTutor(ctx context.Context, tutorID string) ([]*models.TutorSession, error)
	Update(ctx context.Context, tutorID, sessionID string, req *models.UpdateSessionRequest) (*models.TutorSession, error)
}

// NotificationServiceInterface defines the interface for the notification inbox
type NotificationServiceInterface interface {
	SendManual(ctx context.Context, req *models.SendManualNotificationRequest) (*models.Notification, error)
	ListForUser(ctx context.Context, userID, role string, limit, skip int) ([]*models.Notification, int, error)
	UnreadCount(ctx context.Context, userID, role string) (int, error)
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID, role string) (int, error)
	Delete(ctx context.Context, id, userID string) error
}

// AuthServiceInterface defines the interface for session authentication
type AuthServiceInterface interface {
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.UserInfo, error)
	Me(ctx context.Context, session *models.UserSession) (*models.UserInfo, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// DirectoryServiceInterface defines the interface for tutor discovery
type DirectoryServiceInterface interface {
	SearchTutors(ctx context.Context, courseName string) ([]*models.TutorSummary, error)
	GetTutorDetails(ctx context.Context, tutorID string) (*models.TutorDetails, error)
	TutorsForStudentCourses(ctx context.Context, studentID string) ([]*models.TutorSummary, error)
	EnrolledStudents(ctx context.Context, tutorID string) ([]*models.Profile, error)
}

// Ensure services implement their interfaces
var _ ScheduleServiceInterface = (*ScheduleService)(nil)
var _ BookingServiceInterface = (*BookingService)(nil)
var _ SessionServiceInterface = (*SessionService)(nil)
var _ NotificationServiceInterface = (*NotificationService)(nil)
var _ NotificationNotifier = (*NotificationService)(nil)
var _ AuthServiceInterface = (*AuthService)(nil)
var _ DirectoryServiceInterface = (*DirectoryService)(nil)
