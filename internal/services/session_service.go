package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/repository"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
	"github.com/tutorhub/tutorhub-api/pkg/logger"
	"github.com/tutorhub/tutorhub-api/pkg/timerange"
)

// SessionService handles scheduled tutoring sessions
type SessionService struct {
	sessionRepo         repository.SessionRepositoryInterface
	bookingRepo         repository.BookingRepositoryInterface
	directoryRepo       repository.DirectoryRepositoryInterface
	notificationService NotificationNotifier
}

// NewSessionService creates a new session service instance
func NewSessionService(sessionRepo repository.SessionRepositoryInterface, bookingRepo repository.BookingRepositoryInterface, directoryRepo repository.DirectoryRepositoryInterface, notifier NotificationNotifier) *SessionService {
	return &SessionService{
		sessionRepo:         sessionRepo,
		bookingRepo:         bookingRepo,
		directoryRepo:       directoryRepo,
		notificationService: notifier,
	}
}

// ListForTutor returns a tutor's sessions
func (s *SessionService) ListForTutor(ctx context.Context, tutorID string) ([]*models.TutorSession, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	owned := []*models.TutorSession{}
	for _, ts := range sessions {
		if ts.TutorID == tutorID {
			owned = append(owned, ts)
		}
	}
	return owned, nil
}

// Update applies partial field changes to a tutor's own session and notifies
// the students whose confirmed bookings feed it.
func (s *SessionService) Update(ctx context.Context, tutorID, sessionID string, req *models.UpdateSessionRequest) (*models.TutorSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.TutorID != tutorID {
		return nil, apperrors.AccessDeniedError("session belongs to another tutor")
	}

	if req.CourseName != nil {
		session.CourseName = *req.CourseName
	}
	if req.DateTime != nil {
		dt, err := timerange.ParseInstant(*req.DateTime)
		if err != nil {
			return nil, apperrors.InvalidInputError("date_time", err.Error())
		}
		session.DateTime = dt
	}
	if req.Status != nil {
		status := models.SessionStatus(*req.Status)
		switch status {
		case models.SessionScheduled, models.SessionCompleted, models.SessionCancelled:
			session.Status = status
		default:
			return nil, apperrors.InvalidInputError("status", "unknown session status")
		}
	}
	if req.StudentCount != nil {
		session.StudentCount = *req.StudentCount
	}
	if req.DurationMinutes != nil {
		session.DurationMinutes = *req.DurationMinutes
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	logger.Info("Session updated",
		zap.String("session_id", sessionID),
		zap.String("tutor_id", tutorID))

	s.notifyBookedStudents(ctx, session)
	return session, nil
}

// notifyBookedStudents fans the change out to students holding a confirmed
// booking with this tutor for this course.
func (s *SessionService) notifyBookedStudents(ctx context.Context, session *models.TutorSession) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		logger.Error("Failed to resolve booked students for session change",
			zap.String("session_id", session.SessionID),
			zap.Error(err))
		return
	}

	studentIDs := []string{}
	for _, b := range bookings {
		if b.TutorID == session.TutorID && b.CourseName == session.CourseName && b.Status == models.BookingConfirmed {
			studentIDs = append(studentIDs, b.StudentID)
		}
	}
	if len(studentIDs) == 0 {
		return
	}

	tutorName := session.TutorID
	if tutor, err := s.directoryRepo.GetProfileByID(ctx, session.TutorID); err == nil {
		tutorName = tutor.Name
	}
	s.notificationService.NotifySessionChange(ctx, session, tutorName, studentIDs)
}
