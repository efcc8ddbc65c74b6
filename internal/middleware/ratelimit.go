package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cashtrackr/cashtrackr-api/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimit counts requests per client IP. When the store is unreachable the
// request is let through.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		reset := int(time.Until(res.ResetAt).Seconds() + 0.5)
		if reset < 0 {
			reset = 0
		}
		c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(reset))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(reset))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Has alcanzado el límite de peticiones"})
			return
		}
		c.Next()
	}
}
