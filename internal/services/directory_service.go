package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/repository"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

// DirectoryService handles tutor discovery for students and roster lookups
// for tutors.
type DirectoryService struct {
	directoryRepo repository.DirectoryRepositoryInterface
	scheduleRepo  repository.ScheduleRepositoryInterface
	bookingRepo   repository.BookingRepositoryInterface
}

// NewDirectoryService creates a new directory service instance
func NewDirectoryService(directoryRepo repository.DirectoryRepositoryInterface, scheduleRepo repository.ScheduleRepositoryInterface, bookingRepo repository.BookingRepositoryInterface) *DirectoryService {
	return &DirectoryService{
		directoryRepo: directoryRepo,
		scheduleRepo:  scheduleRepo,
		bookingRepo:   bookingRepo,
	}
}

// SearchTutors returns tutors teaching a course matching the query,
// case-insensitive substring match.
func (s *DirectoryService) SearchTutors(ctx context.Context, courseName string) ([]*models.TutorSummary, error) {
	tutors, err := s.directoryRepo.ProfilesByRole(ctx, models.RoleTutor)
	if err != nil {
		return nil, fmt.Errorf("failed to load tutors: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(courseName))
	matched := []*models.TutorSummary{}
	for _, tutor := range tutors {
		if query != "" && !teachesCourse(tutor, query) {
			continue
		}
		matched = append(matched, summarize(tutor))
	}
	return matched, nil
}

// GetTutorDetails returns a tutor's profile plus their currently available
// slots. Slots held by an active booking are excluded.
func (s *DirectoryService) GetTutorDetails(ctx context.Context, tutorID string) (*models.TutorDetails, error) {
	tutor, err := s.directoryRepo.GetProfileByID(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if tutor.Role != models.RoleTutor {
		return nil, apperrors.NotFoundError("tutor")
	}

	slots, _, err := s.scheduleRepo.GetSchedule(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	available, err := s.filterBookedSlots(ctx, tutorID, slots)
	if err != nil {
		return nil, err
	}

	return &models.TutorDetails{
		TutorID:        tutor.ID,
		TutorName:      tutor.Name,
		ContactEmail:   tutor.Email,
		Specialization: tutor.Department,
		Courses:        tutor.Subjects,
		Rating:         tutor.Rating,
		Department:     tutor.Department,
		AvailableSlots: available,
	}, nil
}

// TutorsForStudentCourses returns the deduplicated tutors teaching any of the
// student's enrolled courses.
func (s *DirectoryService) TutorsForStudentCourses(ctx context.Context, studentID string) ([]*models.TutorSummary, error) {
	student, err := s.directoryRepo.GetProfileByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	tutors, err := s.directoryRepo.ProfilesByRole(ctx, models.RoleTutor)
	if err != nil {
		return nil, fmt.Errorf("failed to load tutors: %w", err)
	}

	enrolled := map[string]bool{}
	for _, course := range student.Courses {
		enrolled[strings.ToLower(course)] = true
	}

	matched := []*models.TutorSummary{}
	for _, tutor := range tutors {
		for _, subject := range tutor.Subjects {
			if enrolled[strings.ToLower(subject)] {
				matched = append(matched, summarize(tutor))
				break
			}
		}
	}
	return matched, nil
}

// EnrolledStudents returns the deduplicated students enrolled in any of the
// tutor's subjects.
func (s *DirectoryService) EnrolledStudents(ctx context.Context, tutorID string) ([]*models.Profile, error) {
	tutor, err := s.directoryRepo.GetProfileByID(ctx, tutorID)
	if err != nil {
		return nil, err
	}

	students, err := s.directoryRepo.ProfilesByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}

	subjects := map[string]bool{}
	for _, subject := range tutor.Subjects {
		subjects[strings.ToLower(subject)] = true
	}

	enrolled := []*models.Profile{}
	for _, student := range students {
		for _, course := range student.Courses {
			if subjects[strings.ToLower(course)] {
				enrolled = append(enrolled, student)
				break
			}
		}
	}
	return enrolled, nil
}

// filterBookedSlots drops slots claimed by a pending or confirmed booking
func (s *DirectoryService) filterBookedSlots(ctx context.Context, tutorID string, slots []*models.Slot) ([]*models.Slot, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	claimed := map[int]bool{}
	for _, b := range bookings {
		if b.TutorID == tutorID && b.IsActive() {
			claimed[b.SlotID] = true
		}
	}

	available := []*models.Slot{}
	for _, slot := range slots {
		if !claimed[slot.ID] {
			available = append(available, slot)
		}
	}
	return available, nil
}

// teachesCourse reports whether any of the tutor's subjects contains the
// lowercased query.
func teachesCourse(tutor *models.Profile, query string) bool {
	for _, subject := range tutor.Subjects {
		if strings.Contains(strings.ToLower(subject), query) {
			return true
		}
	}
	return false
}

// summarize converts a directory profile to the discovery-listing shape
func summarize(tutor *models.Profile) *models.TutorSummary {
	return &models.TutorSummary{
		TutorID:        tutor.ID,
		TutorName:      tutor.Name,
		Specialization: tutor.Department,
		Subjects:       tutor.Subjects,
		Rating:         tutor.Rating,
		Email:          tutor.Email,
	}
}
