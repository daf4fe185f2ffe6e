package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/services"
)

// AuthHandler handles login, logout, and session introspection
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrors := ParseValidationErrors(err)
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", validationErrors, err)
		return
	}

	token, info, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token, h.service.GetSessionTTL(), h.service.GetCookieDomain(), h.service.GetCookieSecure())
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    info,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.service.GetCookieDomain(), h.service.GetCookieSecure())
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	info, err := h.service.Me(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
