package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/tutorhub-api/internal/handlers"
	"github.com/tutorhub/tutorhub-api/internal/models"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

func scheduleRouter(service *MockScheduleService, session *models.UserSession) *gin.Engine {
	handler := handlers.NewScheduleHandler(service)
	router := gin.New()
	router.GET("/api/schedule/:tutor_id", handler.GetSchedule)
	router.POST("/api/schedule/:tutor_id/slot/new", withSession(session), handler.CreateSlot)
	router.PUT("/api/schedule/:tutor_id/slot/:slot_id", withSession(session), handler.UpdateSlot)
	router.DELETE("/api/schedule/:tutor_id/slot/:slot_id", withSession(session), handler.DeleteSlot)
	return router
}

func tutorSession() *models.UserSession {
	return &models.UserSession{
		UserID:   "tutor1",
		Username: "dr.chen",
		Name:     "Dr. Chen",
		Role:     models.RoleTutor,
	}
}

func TestScheduleHandler_GetSchedule(t *testing.T) {
	service := new(MockScheduleService)
	router := scheduleRouter(service, tutorSession())

	start := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	slots := []*models.Slot{{ID: 101, TutorID: "tutor1", Start: start, End: start.Add(time.Hour)}}
	service.On("GetSchedule", mock.Anything, "tutor1", "2025-12-01T00:00:00Z", "2025-12-02T00:00:00Z").
		Return(slots, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/schedule/tutor1?start=2025-12-01T00:00:00Z&end=2025-12-02T00:00:00Z", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TutorID string         `json:"tutor_id"`
		Slots   []*models.Slot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "tutor1", body.TutorID)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, 101, body.Slots[0].ID)
}

func TestScheduleHandler_GetSchedule_UnknownTutor(t *testing.T) {
	service := new(MockScheduleService)
	router := scheduleRouter(service, tutorSession())

	service.On("GetSchedule", mock.Anything, "ghost", "2025-12-01T00:00:00Z", "2025-12-02T00:00:00Z").
		Return(nil, apperrors.NotFoundError("schedule")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/schedule/ghost?start=2025-12-01T00:00:00Z&end=2025-12-02T00:00:00Z", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandler_CreateSlot(t *testing.T) {
	service := new(MockScheduleService)
	router := scheduleRouter(service, tutorSession())

	start := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	slot := &models.Slot{ID: 101, TutorID: "tutor1", Start: start, End: start.Add(time.Hour)}
	service.On("CreateSlot", mock.Anything, "tutor1", "2025-12-01T09:00:00Z", "2025-12-01T10:00:00Z").
		Return(slot, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/schedule/tutor1/slot/new?start=2025-12-01T09:00:00Z&end=2025-12-01T10:00:00Z", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Slot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 101, created.ID)
}

func TestScheduleHandler_CreateSlot_Overlap(t *testing.T) {
	service := new(MockScheduleService)
	router := scheduleRouter(service, tutorSession())

	service.On("CreateSlot", mock.Anything, "tutor1", "2025-12-01T09:30:00Z", "2025-12-01T10:30:00Z").
		Return(nil, &apperrors.OverlapError{ConflictingSlotID: 101}).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/schedule/tutor1/slot/new?start=2025-12-01T09:30:00Z&end=2025-12-01T10:30:00Z", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Error             string `json:"error"`
		OverlappingSlotID int    `json:"overlapping_slot_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Slot overlaps with an existing slot", body.Error)
	assert.Equal(t, 101, body.OverlappingSlotID)
}

func TestScheduleHandler_CreateSlot_InvalidRange(t *testing.T) {
	service := new(MockScheduleService)
	router := scheduleRouter(service, tutorSession())

	service.On("CreateSlot", mock.Anything, "tutor1", "tomorrow", "2025-12-01T10:00:00Z").
		Return(nil, apperrors.InvalidInputError("start/end", "invalid datetime format")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/schedule/tutor1/slot/new?start=tomorrow&end=2025-12-01T10:00:00Z", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler_MutationsRequireOwnSchedule(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		service string
	}{
		{"create", "POST", "/api/schedule/tutor2/slot/new?start=2025-12-01T09:00:00Z&end=2025-12-01T10:00:00Z", "CreateSlot"},
		{"update", "PUT", "/api/schedule/tutor2/slot/101?start=2025-12-01T09:00:00Z&end=2025-12-01T10:00:00Z", "UpdateSlot"},
		{"delete", "DELETE", "/api/schedule/tutor2/slot/101", "DeleteSlot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockScheduleService)
			router := scheduleRouter(service, tutorSession())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
			service.AssertNotCalled(t, tt.service)
		})
	}
}

func TestScheduleHandler_UpdateSlot_BadSlotID(t *testing.T) {
	service := new(MockScheduleService)
	router := scheduleRouter(service, tutorSession())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/schedule/tutor1/slot/abc?start=2025-12-01T09:00:00Z&end=2025-12-01T10:00:00Z", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "UpdateSlot")
}

func TestScheduleHandler_DeleteSlot(t *testing.T) {
	service := new(MockScheduleService)
	router := scheduleRouter(service, tutorSession())

	slot := &models.Slot{ID: 101, TutorID: "tutor1"}
	service.On("DeleteSlot", mock.Anything, "tutor1", 101).Return(slot, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/schedule/tutor1/slot/101", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string       `json:"message"`
		Slot    *models.Slot `json:"slot"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Slot deleted", body.Message)
	assert.Equal(t, 101, body.Slot.ID)
}
