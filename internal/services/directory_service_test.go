package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/services"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

func newDirectoryService() (*services.DirectoryService, *MockDirectoryRepository, *MockScheduleRepository, *MockBookingRepository) {
	mockDirectoryRepo := new(MockDirectoryRepository)
	mockScheduleRepo := new(MockScheduleRepository)
	mockBookingRepo := new(MockBookingRepository)
	service := services.NewDirectoryService(mockDirectoryRepo, mockScheduleRepo, mockBookingRepo)
	return service, mockDirectoryRepo, mockScheduleRepo, mockBookingRepo
}

func TestDirectoryService_SearchTutors(t *testing.T) {
	service, mockDirectoryRepo, _, _ := newDirectoryService()
	ctx := context.Background()

	tutors := []*models.Profile{
		{ID: "tutor1", Name: "Dr. Chen", Role: models.RoleTutor, Subjects: []string{"Calculus I", "Linear Algebra"}},
		{ID: "tutor2", Name: "Prof. Diaz", Role: models.RoleTutor, Subjects: []string{"Organic Chemistry"}},
	}
	mockDirectoryRepo.On("ProfilesByRole", ctx, models.RoleTutor).Return(tutors, nil)

	// case-insensitive substring match
	matched, err := service.SearchTutors(ctx, "calculus")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "tutor1", matched[0].TutorID)

	// empty query lists everyone
	matched, err = service.SearchTutors(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	// no match yields an empty list, not an error
	matched, err = service.SearchTutors(ctx, "astrophysics")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestDirectoryService_GetTutorDetails(t *testing.T) {
	service, mockDirectoryRepo, mockScheduleRepo, mockBookingRepo := newDirectoryService()
	ctx := context.Background()

	tutor := &models.Profile{
		ID:         "tutor1",
		Name:       "Dr. Chen",
		Email:      "chen@example.edu",
		Role:       models.RoleTutor,
		Department: "Mathematics",
		Subjects:   []string{"Calculus I"},
		Rating:     4.8,
	}
	start := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	slots := []*models.Slot{
		{ID: 101, Start: start, End: start.Add(time.Hour)},
		{ID: 102, Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour)},
	}
	bookings := []*models.Booking{
		{BookingID: "BK001", TutorID: "tutor1", SlotID: 101, Status: models.BookingConfirmed},
		{BookingID: "BK002", TutorID: "tutor1", SlotID: 102, Status: models.BookingCancelled},
	}

	mockDirectoryRepo.On("GetProfileByID", ctx, "tutor1").Return(tutor, nil).Once()
	mockScheduleRepo.On("GetSchedule", ctx, "tutor1").Return(slots, true, nil).Once()
	mockBookingRepo.On("List", ctx).Return(bookings, nil).Once()

	details, err := service.GetTutorDetails(ctx, "tutor1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Chen", details.TutorName)
	assert.Equal(t, "Mathematics", details.Specialization)
	// slot 101 is held by an active booking; the cancelled one releases 102
	require.Len(t, details.AvailableSlots, 1)
	assert.Equal(t, 102, details.AvailableSlots[0].ID)
}

func TestDirectoryService_GetTutorDetails_NotATutor(t *testing.T) {
	service, mockDirectoryRepo, _, _ := newDirectoryService()
	ctx := context.Background()

	mockDirectoryRepo.On("GetProfileByID", ctx, "student1").
		Return(&models.Profile{ID: "student1", Role: models.RoleStudent}, nil).Once()

	_, err := service.GetTutorDetails(ctx, "student1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDirectoryService_GetTutorDetails_UnknownUser(t *testing.T) {
	service, mockDirectoryRepo, _, _ := newDirectoryService()
	ctx := context.Background()

	mockDirectoryRepo.On("GetProfileByID", ctx, "ghost").
		Return(nil, apperrors.NotFoundError("user")).Once()

	_, err := service.GetTutorDetails(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDirectoryService_TutorsForStudentCourses(t *testing.T) {
	service, mockDirectoryRepo, _, _ := newDirectoryService()
	ctx := context.Background()

	student := &models.Profile{ID: "student1", Role: models.RoleStudent, Courses: []string{"Calculus I", "Physics II"}}
	tutors := []*models.Profile{
		{ID: "tutor1", Role: models.RoleTutor, Subjects: []string{"calculus i", "Physics II"}},
		{ID: "tutor2", Role: models.RoleTutor, Subjects: []string{"Organic Chemistry"}},
		{ID: "tutor3", Role: models.RoleTutor, Subjects: []string{"Physics II"}},
	}

	mockDirectoryRepo.On("GetProfileByID", ctx, "student1").Return(student, nil).Once()
	mockDirectoryRepo.On("ProfilesByRole", ctx, models.RoleTutor).Return(tutors, nil).Once()

	matched, err := service.TutorsForStudentCourses(ctx, "student1")
	require.NoError(t, err)
	// tutor1 teaches two of the student's courses but appears once
	require.Len(t, matched, 2)
	assert.Equal(t, "tutor1", matched[0].TutorID)
	assert.Equal(t, "tutor3", matched[1].TutorID)
}

func TestDirectoryService_EnrolledStudents(t *testing.T) {
	service, mockDirectoryRepo, _, _ := newDirectoryService()
	ctx := context.Background()

	tutor := &models.Profile{ID: "tutor1", Role: models.RoleTutor, Subjects: []string{"Calculus I"}}
	students := []*models.Profile{
		{ID: "student1", Role: models.RoleStudent, Courses: []string{"Calculus I"}},
		{ID: "student2", Role: models.RoleStudent, Courses: []string{"Biology"}},
	}

	mockDirectoryRepo.On("GetProfileByID", ctx, "tutor1").Return(tutor, nil).Once()
	mockDirectoryRepo.On("ProfilesByRole", ctx, models.RoleStudent).Return(students, nil).Once()

	enrolled, err := service.EnrolledStudents(ctx, "tutor1")
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, "student1", enrolled[0].ID)
}
