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

// ScheduleService handles tutor slot management. Every committed mutation
// fans out to the tutor's enrolled students; fan-out failures never undo the
// mutation.
type ScheduleService struct {
	scheduleRepo        repository.ScheduleRepositoryInterface
	directoryRepo       repository.DirectoryRepositoryInterface
	notificationService NotificationNotifier
}

// NotificationNotifier is the slice of the notification service the mutation
// services need for fan-out.
type NotificationNotifier interface {
	NotifyScheduleEvent(ctx context.Context, tutor *models.Profile, event models.EventType, slot *models.Slot)
	NotifyCourseRequest(ctx context.Context, b *models.Booking, studentName string)
	NotifyBookingDecision(ctx context.Context, b *models.Booking, tutorName string, approved bool)
	NotifySessionChange(ctx context.Context, ts *models.TutorSession, tutorName string, studentIDs []string)
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(scheduleRepo repository.ScheduleRepositoryInterface, directoryRepo repository.DirectoryRepositoryInterface, notifier NotificationNotifier) *ScheduleService {
	return &ScheduleService{
		scheduleRepo:        scheduleRepo,
		directoryRepo:       directoryRepo,
		notificationService: notifier,
	}
}

// GetSchedule returns the slots of a tutor fully contained in [start, end],
// boundaries inclusive. An unknown tutor is reported as not found.
func (s *ScheduleService) GetSchedule(ctx context.Context, tutorID, start, end string) ([]*models.Slot, error) {
	rng, err := timerange.Parse(start, end)
	if err != nil {
		return nil, apperrors.InvalidInputError("start/end", err.Error())
	}

	if _, exists, err := s.scheduleRepo.GetSchedule(ctx, tutorID); err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	} else if !exists {
		return nil, apperrors.NotFoundError("schedule")
	}

	return s.scheduleRepo.QuerySlots(ctx, tutorID, rng)
}

// CreateSlot adds a new slot to a tutor's schedule and notifies enrolled
// students.
func (s *ScheduleService) CreateSlot(ctx context.Context, tutorID, start, end string) (*models.Slot, error) {
	rng, err := timerange.Parse(start, end)
	if err != nil {
		return nil, apperrors.InvalidInputError("start/end", err.Error())
	}

	slot, err := s.scheduleRepo.CreateSlot(ctx, tutorID, rng)
	if err != nil {
		return nil, err
	}

	logger.Info("Slot created",
		zap.String("tutor_id", tutorID),
		zap.Int("slot_id", slot.ID))

	s.fanOut(ctx, tutorID, models.EventScheduleCreate, slot)
	return slot, nil
}

// UpdateSlot replaces a slot's time range and notifies enrolled students
func (s *ScheduleService) UpdateSlot(ctx context.Context, tutorID string, slotID int, start, end string) (*models.Slot, error) {
	rng, err := timerange.Parse(start, end)
	if err != nil {
		return nil, apperrors.InvalidInputError("start/end", err.Error())
	}

	slot, err := s.scheduleRepo.UpdateSlot(ctx, tutorID, slotID, rng)
	if err != nil {
		return nil, err
	}

	logger.Info("Slot updated",
		zap.String("tutor_id", tutorID),
		zap.Int("slot_id", slot.ID))

	s.fanOut(ctx, tutorID, models.EventScheduleUpdate, slot)
	return slot, nil
}

// DeleteSlot removes a slot and notifies enrolled students
func (s *ScheduleService) DeleteSlot(ctx context.Context, tutorID string, slotID int) (*models.Slot, error) {
	slot, err := s.scheduleRepo.DeleteSlot(ctx, tutorID, slotID)
	if err != nil {
		return nil, err
	}

	logger.Info("Slot deleted",
		zap.String("tutor_id", tutorID),
		zap.Int("slot_id", slotID))

	s.fanOut(ctx, tutorID, models.EventScheduleDelete, slot)
	return slot, nil
}

// fanOut resolves the tutor's profile and delegates to the notifier. A tutor
// without a directory profile simply has nobody enrolled.
func (s *ScheduleService) fanOut(ctx context.Context, tutorID string, event models.EventType, slot *models.Slot) {
	tutor, err := s.directoryRepo.GetProfileByID(ctx, tutorID)
	if err != nil {
		logger.Warn("Skipping schedule fan-out, tutor has no profile",
			zap.String("tutor_id", tutorID),
			zap.Error(err))
		return
	}
	s.notificationService.NotifyScheduleEvent(ctx, tutor, event, slot)
}
