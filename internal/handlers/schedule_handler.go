package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/services"
)

// ScheduleHandler handles tutor schedule HTTP requests
type ScheduleHandler struct {
	service services.ScheduleServiceInterface
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(service services.ScheduleServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// GetSchedule handles GET /api/schedule/:tutor_id?start=&end=
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	tutorID := c.Param("tutor_id")

	slots, err := h.service.GetSchedule(c.Request.Context(), tutorID, c.Query("start"), c.Query("end"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tutor_id": tutorID,
		"slots":    slots,
	})
}

// CreateSlot handles POST /api/schedule/:tutor_id/slot/new?start=&end=
func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	tutorID, ok := h.requireOwnSchedule(c)
	if !ok {
		return
	}

	slot, err := h.service.CreateSlot(c.Request.Context(), tutorID, c.Query("start"), c.Query("end"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// UpdateSlot handles PUT /api/schedule/:tutor_id/slot/:slot_id?start=&end=
func (h *ScheduleHandler) UpdateSlot(c *gin.Context) {
	tutorID, ok := h.requireOwnSchedule(c)
	if !ok {
		return
	}
	slotID, err := strconv.Atoi(c.Param("slot_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Slot id must be an integer", err)
		return
	}

	slot, err := h.service.UpdateSlot(c.Request.Context(), tutorID, slotID, c.Query("start"), c.Query("end"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// DeleteSlot handles DELETE /api/schedule/:tutor_id/slot/:slot_id
func (h *ScheduleHandler) DeleteSlot(c *gin.Context) {
	tutorID, ok := h.requireOwnSchedule(c)
	if !ok {
		return
	}
	slotID, err := strconv.Atoi(c.Param("slot_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Slot id must be an integer", err)
		return
	}

	slot, err := h.service.DeleteSlot(c.Request.Context(), tutorID, slotID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Slot deleted",
		"slot":    slot,
	})
}

// requireOwnSchedule checks the :tutor_id path parameter against the session.
// Tutors may only mutate their own schedule.
func (h *ScheduleHandler) requireOwnSchedule(c *gin.Context) (string, bool) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return "", false
	}
	tutorID := c.Param("tutor_id")
	if tutorID != session.UserID {
		respondError(c, http.StatusForbidden, "Cannot modify another tutor's schedule", nil)
		return "", false
	}
	return tutorID, true
}
