package ratelimit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryLimiter(t *testing.T, perMin int) (*RateLimiter, *monitoring.Metrics) {
	t.Helper()
	redisClient, err := NewRedisClient(context.Background(), RedisOptions{})
	require.NoError(t, err)
	require.False(t, redisClient.IsEnabled())

	metrics := monitoring.NewMetrics()
	return NewRateLimiter(redisClient, Config{LimitPerMin: perMin}, metrics), metrics
}

func TestAllowMemory(t *testing.T) {
	rl, metrics := newMemoryLimiter(t, 3)
	now := time.Now()
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := rl.Allow(ctx, "assess", "10.0.0.1")
		assert.True(t, res.Allowed, "request %d", i)
		assert.Equal(t, 2-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res := rl.Allow(ctx, "assess", "10.0.0.1")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.InDelta(t, 20*time.Second, res.RetryAfter, float64(time.Second))

	// separate client, separate bucket
	assert.True(t, rl.Allow(ctx, "assess", "10.0.0.2").Allowed)

	// refill after the per-token interval
	now = now.Add(21 * time.Second)
	assert.True(t, rl.Allow(ctx, "assess", "10.0.0.1").Allowed)

	assert.Equal(t, int64(6), metrics.RateLimitFallbackCount)
}

func TestPeekDoesNotConsume(t *testing.T) {
	rl, _ := newMemoryLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res := rl.Peek(ctx, "assess", "10.0.0.1")
		assert.True(t, res.Allowed)
		assert.Equal(t, 2, res.Remaining)
	}
}

func TestEvictIdle(t *testing.T) {
	rl, _ := newMemoryLimiter(t, 5)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.Allow(context.Background(), "assess", "a")
	now = now.Add(time.Hour)
	rl.Allow(context.Background(), "assess", "b")

	assert.Equal(t, 1, rl.evictIdle())
	assert.Equal(t, 1, rl.GetStats()["memory_buckets"])
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, metrics := newMemoryLimiter(t, 2)

	r := gin.New()
	r.POST("/api/assess", rl.Middleware("assess"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/api/rate-limit", rl.HandleStatus("assess"))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/assess", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/assess", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit", body["category"])
	assert.Equal(t, int64(1), metrics.RateLimitBlocks)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rate-limit", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "memory", body["backend"])
	assert.Equal(t, float64(0), body["remaining"])
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(300*time.Millisecond))
	assert.Equal(t, 3, retryAfterSeconds(2100*time.Millisecond))
}
