package ratelimit

import (
	"math"
	"strconv"
	"time"

	apperrors "github.com/ZanzyTHEbar/calm-profile/internal/errors"
	"github.com/gin-gonic/gin"
)

// Middleware limits each client IP within scope and sets the standard
// X-RateLimit-* headers. Rejected requests get 429 with Retry-After.
func (rl *RateLimiter) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := rl.Allow(c.Request.Context(), scope, c.ClientIP())
		setHeaders(c, result)

		if !result.Allowed {
			if rl.metrics != nil {
				rl.metrics.IncrementRateLimitBlock()
			}

			retryAfter := retryAfterSeconds(result.RetryAfter)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			apperrors.Abort(c, apperrors.NewRateLimitError(strconv.Itoa(retryAfter)+"s"))
			return
		}

		c.Next()
	}
}

func setHeaders(c *gin.Context, result *Result) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// retryAfterSeconds rounds up so clients never retry too early
func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
