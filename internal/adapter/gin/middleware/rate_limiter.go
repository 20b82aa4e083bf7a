package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-service/internal/adapter/ratelimit"
)

// RateLimiter returns a Gin middleware that applies the token bucket per method, path and client IP.
// Limiter errors fail open.
func RateLimiter(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + ":" + c.FullPath() + ":" + c.ClientIP()

		allowed, _ := limiter.Allow(c.Request.Context(), key)
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": limiter.Message(),
			})
			return
		}

		c.Next()
	}
}
