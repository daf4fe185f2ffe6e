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

// BookingService handles the booking lifecycle: student requests, tutor
// approvals and rejections, and student cancellations. Approvals schedule a
// tutoring session; every committed transition notifies the other party.
type BookingService struct {
	bookingRepo         repository.BookingRepositoryInterface
	scheduleRepo        repository.ScheduleRepositoryInterface
	sessionRepo         repository.SessionRepositoryInterface
	directoryRepo       repository.DirectoryRepositoryInterface
	notificationService NotificationNotifier
}

// NewBookingService creates a new booking service instance
func NewBookingService(bookingRepo repository.BookingRepositoryInterface, scheduleRepo repository.ScheduleRepositoryInterface, sessionRepo repository.SessionRepositoryInterface, directoryRepo repository.DirectoryRepositoryInterface, notifier NotificationNotifier) *BookingService {
	return &BookingService{
		bookingRepo:         bookingRepo,
		scheduleRepo:        scheduleRepo,
		sessionRepo:         sessionRepo,
		directoryRepo:       directoryRepo,
		notificationService: notifier,
	}
}

// Book creates a pending booking for the slot matching the declared time
// range. The slot must exist in the tutor's schedule, and the student may not
// already hold an active booking for it.
func (s *BookingService) Book(ctx context.Context, studentID string, req *models.BookSessionRequest) (*models.Booking, error) {
	rng, err := timerange.Parse(req.SlotStart, req.SlotEnd)
	if err != nil {
		return nil, apperrors.InvalidInputError("slot_start/slot_end", err.Error())
	}

	slot, err := s.scheduleRepo.FindSlotByRange(ctx, req.TutorID, rng)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		StudentID:  studentID,
		TutorID:    req.TutorID,
		SlotID:     slot.ID,
		CourseName: req.CourseName,
		DateTime:   slot.Start,
		SlotEnd:    slot.End,
	}

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	logger.Info("Booking created",
		zap.String("booking_id", created.BookingID),
		zap.String("student_id", studentID),
		zap.String("tutor_id", req.TutorID),
		zap.Int("slot_id", slot.ID))

	studentName := studentID
	if student, err := s.directoryRepo.GetProfileByID(ctx, studentID); err == nil {
		studentName = student.Name
	}
	s.notificationService.NotifyCourseRequest(ctx, created, studentName)

	return created, nil
}

// Cancel moves a student's own pending or confirmed booking to cancelled
func (s *BookingService) Cancel(ctx context.Context, studentID, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.StudentID != studentID {
		return nil, apperrors.AccessDeniedError("booking belongs to another student")
	}

	cancelled, err := s.bookingRepo.Transition(ctx, bookingID, models.BookingCancelled,
		models.BookingPending, models.BookingConfirmed)
	if err != nil {
		return nil, err
	}

	logger.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("student_id", studentID))
	return cancelled, nil
}

// Approve confirms a pending booking, schedules the tutoring session, and
// notifies the student. The session is committed after the transition;
// notification failure does not undo either.
func (s *BookingService) Approve(ctx context.Context, tutorID, bookingID string) (*models.Booking, *models.TutorSession, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking.TutorID != tutorID {
		return nil, nil, apperrors.AccessDeniedError("booking belongs to another tutor")
	}

	confirmed, err := s.bookingRepo.Transition(ctx, bookingID, models.BookingConfirmed, models.BookingPending)
	if err != nil {
		return nil, nil, err
	}

	session := &models.TutorSession{
		TutorID:         tutorID,
		CourseName:      confirmed.CourseName,
		DateTime:        confirmed.DateTime,
		Status:          models.SessionScheduled,
		StudentCount:    1,
		DurationMinutes: int(confirmed.SlotEnd.Sub(confirmed.DateTime).Minutes()),
	}
	session, err = s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, nil, fmt.Errorf("booking approved but session creation failed: %w", err)
	}

	logger.Info("Booking approved",
		zap.String("booking_id", bookingID),
		zap.String("tutor_id", tutorID),
		zap.String("session_id", session.SessionID))

	s.notificationService.NotifyBookingDecision(ctx, confirmed, s.tutorName(ctx, tutorID), true)
	return confirmed, session, nil
}

// Reject declines a pending booking and notifies the student
func (s *BookingService) Reject(ctx context.Context, tutorID, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.TutorID != tutorID {
		return nil, apperrors.AccessDeniedError("booking belongs to another tutor")
	}

	rejected, err := s.bookingRepo.Transition(ctx, bookingID, models.BookingRejected, models.BookingPending)
	if err != nil {
		return nil, err
	}

	logger.Info("Booking rejected",
		zap.String("booking_id", bookingID),
		zap.String("tutor_id", tutorID))

	s.notificationService.NotifyBookingDecision(ctx, rejected, s.tutorName(ctx, tutorID), false)
	return rejected, nil
}

// StudentBookings returns a student's bookings enriched with tutor names
func (s *BookingService) StudentBookings(ctx context.Context, studentID string) ([]*models.BookingView, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	views := []*models.BookingView{}
	for _, b := range bookings {
		if b.StudentID != studentID {
			continue
		}
		views = append(views, &models.BookingView{
			Booking:   b,
			TutorName: s.tutorName(ctx, b.TutorID),
		})
	}
	return views, nil
}

// TutorBookings returns a tutor's incoming bookings enriched with student names
func (s *BookingService) TutorBookings(ctx context.Context, tutorID string) ([]*models.BookingView, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	views := []*models.BookingView{}
	for _, b := range bookings {
		if b.TutorID != tutorID {
			continue
		}
		view := &models.BookingView{Booking: b}
		if student, err := s.directoryRepo.GetProfileByID(ctx, b.StudentID); err == nil {
			view.StudentName = student.Name
		}
		views = append(views, view)
	}
	return views, nil
}

// tutorName resolves a display name, falling back to the id
func (s *BookingService) tutorName(ctx context.Context, tutorID string) string {
	if tutor, err := s.directoryRepo.GetProfileByID(ctx, tutorID); err == nil {
		return tutor.Name
	}
	return tutorID
}
