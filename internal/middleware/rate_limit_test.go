package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionFor(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, &models.UserSession{UserID: userID, Role: models.RoleStudent})
		c.Next()
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 2)

	router := gin.New()
	router.GET("/ping", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", http.NoBody)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_KeysAuthenticatedCallersByAccount(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 1)

	router := gin.New()
	router.GET("/as/:user", func(c *gin.Context) {
		sessionFor(c.Param("user"))(c)
	}, rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Two accounts behind the same client IP each get their own bucket
	for _, user := range []string{"student1", "student2"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/as/"+user, http.NoBody)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "first request for %s", user)
	}

	// The exhausted bucket belongs to the account, not the IP
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/as/student1", http.NoBody)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
