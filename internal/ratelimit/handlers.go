package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HandleStatus reports the caller's remaining budget in scope without
// consuming it.
func (rl *RateLimiter) HandleStatus(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := rl.Peek(c.Request.Context(), scope, c.ClientIP())
		setHeaders(c, result)

		c.JSON(http.StatusOK, gin.H{
			"scope":     scope,
			"limit":     result.Limit,
			"remaining": result.Remaining,
			"period":    "1 minute",
			"reset_at":  result.ResetAt.Unix(),
			"backend":   rl.backend(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

func (rl *RateLimiter) backend() string {
	if rl.redisLimiter != nil {
		return "redis"
	}
	return "memory"
}
