package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps an in-memory token bucket per caller.
// Authenticated traffic is keyed by account so a shared campus NAT does
// not starve everyone behind it; anonymous traffic falls back to the
// client IP.
type RateLimiter struct {
	callers map[string]*rate.Limiter
	mu      sync.RWMutex
	r       rate.Limit // requests per second
	b       int        // burst size
}

// NewRateLimiter creates a new rate limiter
// r: requests per second (e.g., 10 means 10 requests per second)
// b: burst size (e.g., 20 means allow bursts of up to 20 requests)
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		callers: make(map[string]*rate.Limiter),
		r:       r,
		b:       b,
	}

	// Clean up idle entries every minute
	// TODO: Add stop channel/context to cleanupCallers goroutine to prevent leak on shutdown
	go rl.cleanupCallers()

	return rl
}

// getCaller returns the token bucket for a caller key
func (rl *RateLimiter) getCaller(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.callers[key]
	if !exists {
		limiter = rate.NewLimiter(rl.r, rl.b)
		rl.callers[key] = limiter
	}

	return limiter
}

// cleanupCallers removes idle callers from memory
func (rl *RateLimiter) cleanupCallers() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for key, limiter := range rl.callers {
			// A full bucket means no recent requests
			if limiter.Tokens() >= float64(rl.b) {
				delete(rl.callers, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns a Gin middleware function for rate limiting.
// Must be registered after SessionMiddleware on authenticated groups
// for per-account keying to take effect.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if session, err := GetUserSession(c); err == nil {
			key = "user:" + session.UserID
		}
		limiter := rl.getCaller(key)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
