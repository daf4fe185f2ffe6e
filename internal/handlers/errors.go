package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) { //nolint:unparam
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError maps the typed service errors onto HTTP statuses.
// Overlap conflicts additionally report the offending slot id.
func respondServiceError(c *gin.Context, err error) {
	var overlap *apperrors.OverlapError
	if apperrors.As(err, &overlap) {
		attachError(c, err)
		c.JSON(http.StatusConflict, gin.H{
			"error":               "Slot overlaps with an existing slot",
			"overlapping_slot_id": overlap.ConflictingSlotID,
		})
		return
	}

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error(), err)
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Invalid username or password", err)
	case apperrors.Is(err, apperrors.ErrAccessDenied):
		respondError(c, http.StatusForbidden, err.Error(), err)
	case apperrors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error(), err)
	case apperrors.Is(err, apperrors.ErrConflict), apperrors.Is(err, apperrors.ErrInvalidState):
		respondError(c, http.StatusConflict, err.Error(), err)
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
