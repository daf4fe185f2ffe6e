package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
)

func bodyLimitRouter(limit int64) *gin.Engine {
	router := gin.New()
	router.POST("/echo", middleware.BodySizeLimitMiddleware(limit), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestBodySizeLimit_RejectsOversizedDeclaredLength(t *testing.T) {
	router := bodyLimitRouter(16)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(strings.Repeat("x", 64)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBodySizeLimit_PassesSmallBodies(t *testing.T) {
	router := bodyLimitRouter(16)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/echo", strings.NewReader("ok"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
