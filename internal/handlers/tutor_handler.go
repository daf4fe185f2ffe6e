package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/services"
)

// TutorHandler handles the tutor-facing surface: sessions, incoming bookings,
// and the enrolled-student roster.
type TutorHandler struct {
	sessionService   services.SessionServiceInterface
	bookingService   services.BookingServiceInterface
	directoryService services.DirectoryServiceInterface
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(sessionService services.SessionServiceInterface, bookingService services.BookingServiceInterface, directoryService services.DirectoryServiceInterface) *TutorHandler {
	return &TutorHandler{
		sessionService:   sessionService,
		bookingService:   bookingService,
		directoryService: directoryService,
	}
}

// Sessions handles GET /api/tutor/sessions
func (h *TutorHandler) Sessions(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	sessions, err := h.sessionService.ListForTutor(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// UpdateSession handles PUT /api/tutor/sessions/:session_id
func (h *TutorHandler) UpdateSession(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrors := ParseValidationErrors(err)
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", validationErrors, err)
		return
	}

	updated, err := h.sessionService.Update(c.Request.Context(), session.UserID, c.Param("session_id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session updated",
		"session": updated,
	})
}

// Bookings handles GET /api/tutor/bookings
func (h *TutorHandler) Bookings(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	bookings, err := h.bookingService.TutorBookings(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ApproveBooking handles POST /api/tutor/bookings/:booking_id/approve
func (h *TutorHandler) ApproveBooking(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	booking, tutorSession, err := h.bookingService.Approve(c.Request.Context(), session.UserID, c.Param("booking_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking approved",
		"booking": booking,
		"session": tutorSession,
	})
}

// RejectBooking handles POST /api/tutor/bookings/:booking_id/reject
func (h *TutorHandler) RejectBooking(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	booking, err := h.bookingService.Reject(c.Request.Context(), session.UserID, c.Param("booking_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking rejected",
		"booking": booking,
	})
}

// Students handles GET /api/tutor/students
func (h *TutorHandler) Students(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	students, err := h.directoryService.EnrolledStudents(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students": students,
		"count":    len(students),
	})
}
