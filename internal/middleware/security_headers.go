package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets hardening headers on every response. The
// API is JSON-only and consumed by the web client, so responses are never
// framed, sniffed, or cached.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// No legitimate embedding of schedule or inbox views exists
		c.Header("X-Frame-Options", "DENY")

		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// The client needs none of these browser capabilities
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")

		// Schedules, bookings and inboxes are per-user state; shared
		// caches must never serve them across sessions
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
		c.Header("Pragma", "no-cache")

		c.Next()
	}
}
