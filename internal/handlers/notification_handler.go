package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/services"
)

// NotificationHandler handles the per-user notification inbox
type NotificationHandler struct {
	service services.NotificationServiceInterface
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service services.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// SendManual handles POST /api/notification/send-manual
func (h *NotificationHandler) SendManual(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.SendManualNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrors := ParseValidationErrors(err)
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", validationErrors, err)
		return
	}
	req.SenderID = session.UserID

	notification, err := h.service.SendManual(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Notification sent",
		"notification": notification,
	})
}

// ListForUser handles GET /api/notification/user/:user_id?limit=&skip=
func (h *NotificationHandler) ListForUser(c *gin.Context) {
	session, ok := h.requireOwnInbox(c)
	if !ok {
		return
	}

	limit := intQuery(c, "limit", 50)
	skip := intQuery(c, "skip", 0)

	notifications, unread, err := h.service.ListForUser(c.Request.Context(), session.UserID, session.Role, limit, skip)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"unread_count":  unread,
	})
}

// UnreadCount handles GET /api/notification/unread-count/:user_id
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	session, ok := h.requireOwnInbox(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), session.UserID, session.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkRead handles PUT /api/notification/:notification_id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	notification, err := h.service.MarkRead(c.Request.Context(), c.Param("notification_id"), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Notification marked as read",
		"notification": notification,
	})
}

// MarkAllRead handles PUT /api/notification/user/:user_id/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	session, ok := h.requireOwnInbox(c)
	if !ok {
		return
	}

	changed, err := h.service.MarkAllRead(c.Request.Context(), session.UserID, session.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "All notifications marked as read",
		"marked_count": changed,
	})
}

// Delete handles DELETE /api/notification/:notification_id
func (h *NotificationHandler) Delete(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("notification_id"), session.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// requireOwnInbox checks the :user_id path parameter against the session.
// Users may only read their own inbox.
func (h *NotificationHandler) requireOwnInbox(c *gin.Context) (*models.UserSession, bool) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return nil, false
	}
	if c.Param("user_id") != session.UserID {
		respondError(c, http.StatusForbidden, "Cannot access another user's notifications", nil)
		return nil, false
	}
	return session, true
}

// intQuery parses an integer query parameter with a fallback
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
