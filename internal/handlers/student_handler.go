package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/services"
)

// StudentHandler handles the student-facing surface: tutor discovery and
// booking requests.
type StudentHandler struct {
	directoryService services.DirectoryServiceInterface
	bookingService   services.BookingServiceInterface
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(directoryService services.DirectoryServiceInterface, bookingService services.BookingServiceInterface) *StudentHandler {
	return &StudentHandler{
		directoryService: directoryService,
		bookingService:   bookingService,
	}
}

// SearchTutors handles GET /api/student/tutors/search?course_name=
func (h *StudentHandler) SearchTutors(c *gin.Context) {
	tutors, err := h.directoryService.SearchTutors(c.Request.Context(), c.Query("course_name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tutors": tutors,
		"count":  len(tutors),
	})
}

// MyCourseTutors handles GET /api/student/tutors/my-courses
func (h *StudentHandler) MyCourseTutors(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	tutors, err := h.directoryService.TutorsForStudentCourses(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tutors": tutors,
		"count":  len(tutors),
	})
}

// GetTutorDetails handles GET /api/student/tutors/:tutor_id
func (h *StudentHandler) GetTutorDetails(c *gin.Context) {
	details, err := h.directoryService.GetTutorDetails(c.Request.Context(), c.Param("tutor_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// Book handles POST /api/student/sessions/book
func (h *StudentHandler) Book(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrors := ParseValidationErrors(err)
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", validationErrors, err)
		return
	}

	booking, err := h.bookingService.Book(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking request sent",
		"booking": booking,
	})
}

// Cancel handles POST /api/student/sessions/cancel/:booking_id
func (h *StudentHandler) Cancel(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), session.UserID, c.Param("booking_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled",
		"booking": booking,
	})
}

// MyBookings handles GET /api/student/sessions/my-bookings
func (h *StudentHandler) MyBookings(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	bookings, err := h.bookingService.StudentBookings(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}
