package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/repository"
	"github.com/tutorhub/tutorhub-api/pkg/logger"
)

// NotificationService handles manual sends, event fan-out, and the
// per-recipient notification inbox.
type NotificationService struct {
	notificationRepo repository.NotificationRepositoryInterface
	directoryRepo    repository.DirectoryRepositoryInterface
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo repository.NotificationRepositoryInterface, directoryRepo repository.DirectoryRepositoryInterface) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		directoryRepo:    directoryRepo,
	}
}

// SendManual delivers a direct user-to-user notification
func (s *NotificationService) SendManual(ctx context.Context, req *models.SendManualNotificationRequest) (*models.Notification, error) {
	// The recipient must exist in the directory
	if _, err := s.directoryRepo.GetProfileByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	n := &models.Notification{
		RecipientID:   req.RecipientID,
		RecipientType: models.RecipientType(req.RecipientType),
		SenderID:      req.SenderID,
		Title:         req.Title,
		Message:       req.Message,
		Type:          models.NotificationManual,
	}

	created, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		logger.Error("Failed to store manual notification",
			zap.String("recipient_id", req.RecipientID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	logger.Info("Manual notification sent",
		zap.String("notification_id", created.ID),
		zap.String("recipient_id", created.RecipientID))
	return created, nil
}

// NotifyScheduleEvent fans a schedule mutation out to every student enrolled
// in one of the tutor's subjects. Delivery is best effort: a failed store
// write is logged and never rolls back the schedule change.
func (s *NotificationService) NotifyScheduleEvent(ctx context.Context, tutor *models.Profile, event models.EventType, slot *models.Slot) {
	students, err := s.enrolledStudents(ctx, tutor)
	if err != nil {
		logger.Error("Failed to resolve enrolled students for fan-out",
			zap.String("tutor_id", tutor.ID),
			zap.String("event_type", string(event)),
			zap.Error(err))
		return
	}

	title, message := scheduleEventText(event, tutor.Name)
	related := map[string]any{
		"tutor_id": tutor.ID,
		"slot_id":  slot.ID,
		"start":    slot.Start,
		"end":      slot.End,
	}

	for _, student := range students {
		s.deliver(ctx, &models.Notification{
			RecipientID:   student.ID,
			RecipientType: models.RecipientStudent,
			SenderID:      tutor.ID,
			Title:         title,
			Message:       message,
			Type:          models.NotificationEvent,
			EventType:     event,
			RelatedData:   related,
		})
	}

	logger.Info("Schedule event fan-out completed",
		zap.String("tutor_id", tutor.ID),
		zap.String("event_type", string(event)),
		zap.Int("recipients", len(students)))
}

// NotifyCourseRequest tells a tutor a student asked to book one of their slots
func (s *NotificationService) NotifyCourseRequest(ctx context.Context, b *models.Booking, studentName string) {
	s.deliver(ctx, &models.Notification{
		RecipientID:   b.TutorID,
		RecipientType: models.RecipientTutor,
		SenderID:      b.StudentID,
		Title:         "New Course Request",
		Message:       fmt.Sprintf("%s requested a session for %s", studentName, b.CourseName),
		Type:          models.NotificationEvent,
		EventType:     models.EventCourseRequest,
		RelatedData: map[string]any{
			"booking_id":  b.BookingID,
			"course_name": b.CourseName,
			"date_time":   b.DateTime,
		},
	})
}

// NotifyBookingDecision tells a student their booking was approved or rejected
func (s *NotificationService) NotifyBookingDecision(ctx context.Context, b *models.Booking, tutorName string, approved bool) {
	event := models.EventBookingApproved
	title := "Booking Approved"
	message := fmt.Sprintf("%s approved your booking for %s", tutorName, b.CourseName)
	if !approved {
		event = models.EventBookingRejected
		title = "Booking Rejected"
		message = fmt.Sprintf("%s rejected your booking for %s", tutorName, b.CourseName)
	}

	s.deliver(ctx, &models.Notification{
		RecipientID:   b.StudentID,
		RecipientType: models.RecipientStudent,
		SenderID:      b.TutorID,
		Title:         title,
		Message:       message,
		Type:          models.NotificationEvent,
		EventType:     event,
		RelatedData: map[string]any{
			"booking_id":  b.BookingID,
			"course_name": b.CourseName,
			"date_time":   b.DateTime,
		},
	})
}

// NotifySessionChange tells every student holding a confirmed booking with
// this tutor and course that the session details changed.
func (s *NotificationService) NotifySessionChange(ctx context.Context, ts *models.TutorSession, tutorName string, studentIDs []string) {
	related := map[string]any{
		"session_id":  ts.SessionID,
		"course_name": ts.CourseName,
		"date_time":   ts.DateTime,
		"status":      string(ts.Status),
	}

	for _, studentID := range dedupe(studentIDs) {
		s.deliver(ctx, &models.Notification{
			RecipientID:   studentID,
			RecipientType: models.RecipientStudent,
			SenderID:      ts.TutorID,
			Title:         "Session Updated",
			Message:       fmt.Sprintf("%s updated the session for %s", tutorName, ts.CourseName),
			Type:          models.NotificationEvent,
			EventType:     models.EventScheduleUpdate,
			RelatedData:   related,
		})
	}
}

// ListForUser returns a page of the recipient's notifications plus the
// current unread count.
func (s *NotificationService) ListForUser(ctx context.Context, userID, role string, limit, skip int) ([]*models.Notification, int, error) {
	owned, err := s.notificationRepo.ListForRecipient(ctx, userID, models.RecipientType(role))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread := 0
	for _, n := range owned {
		if !n.IsRead {
			unread++
		}
	}

	if skip >= len(owned) {
		return []*models.Notification{}, unread, nil
	}
	owned = owned[skip:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, unread, nil
}

// UnreadCount returns how many notifications a recipient has not read
func (s *NotificationService) UnreadCount(ctx context.Context, userID, role string) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, userID, models.RecipientType(role))
}

// MarkRead flips a notification's read flag on behalf of its recipient
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead flips every unread notification of a recipient
func (s *NotificationService) MarkAllRead(ctx context.Context, userID, role string) (int, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID, models.RecipientType(role))
}

// Delete removes a notification on behalf of its recipient
func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	return s.notificationRepo.Delete(ctx, id, userID)
}

// deliver stores one record, logging instead of propagating failures
func (s *NotificationService) deliver(ctx context.Context, n *models.Notification) {
	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		logger.Error("Failed to deliver notification",
			zap.String("recipient_id", n.RecipientID),
			zap.String("event_type", string(n.EventType)),
			zap.Error(err))
	}
}

// enrolledStudents returns the deduplicated students with at least one
// enrolled course among the tutor's subjects.
func (s *NotificationService) enrolledStudents(ctx context.Context, tutor *models.Profile) ([]*models.Profile, error) {
	students, err := s.directoryRepo.ProfilesByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	subjects := map[string]bool{}
	for _, subject := range tutor.Subjects {
		subjects[subject] = true
	}

	enrolled := []*models.Profile{}
	for _, student := range students {
		for _, course := range student.Courses {
			if subjects[course] {
				enrolled = append(enrolled, student)
				break
			}
		}
	}
	return enrolled, nil
}

// scheduleEventText maps a schedule event to a human title and message
func scheduleEventText(event models.EventType, tutorName string) (string, string) {
	switch event {
	case models.EventScheduleCreate:
		return "New Slot Available", fmt.Sprintf("%s added a new slot to their schedule", tutorName)
	case models.EventScheduleUpdate:
		return "Schedule Changed", fmt.Sprintf("%s changed a slot in their schedule", tutorName)
	case models.EventScheduleDelete:
		return "Slot Removed", fmt.Sprintf("%s removed a slot from their schedule", tutorName)
	default:
		return "Schedule Notification", fmt.Sprintf("%s updated their schedule", tutorName)
	}
}

// dedupe removes duplicate ids while preserving order
func dedupe(ids []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
