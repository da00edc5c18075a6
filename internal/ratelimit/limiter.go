package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/monitoring"
	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"
)

// Config holds rate limiter configuration
type Config struct {
	LimitPerMin int           // requests per minute per client and scope
	Burst       int           // bucket size; defaults to LimitPerMin
	IdleTTL     time.Duration // in-memory buckets unused this long are dropped
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() Config {
	return Config{
		LimitPerMin: 30,
		IdleTTL:     10 * time.Minute,
	}
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits per client through Redis when available and in-memory
// token buckets otherwise.
type RateLimiter struct {
	redisLimiter *redis_rate.Limiter
	redisClient  *RedisClient
	config       Config
	metrics      *monitoring.Metrics

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewRateLimiter creates a new rate limiter. redisClient may be nil.
func NewRateLimiter(redisClient *RedisClient, config Config, metrics *monitoring.Metrics) *RateLimiter {
	if config.LimitPerMin <= 0 {
		config.LimitPerMin = DefaultConfig().LimitPerMin
	}
	if config.Burst <= 0 {
		config.Burst = config.LimitPerMin
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = DefaultConfig().IdleTTL
	}

	rl := &RateLimiter{
		redisClient: redisClient,
		config:      config,
		metrics:     metrics,
		buckets:     make(map[string]*bucket),
		now:         time.Now,
	}

	if redisClient.IsEnabled() {
		rl.redisLimiter = redis_rate.NewLimiter(redisClient.GetClient())
		slog.Info("Redis rate limiter initialized", "limit_per_min", config.LimitPerMin)
	} else {
		slog.Info("Using in-memory rate limiting", "limit_per_min", config.LimitPerMin)
	}

	return rl
}

func key(scope, client string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, client)
}

// Allow consumes one request for client within scope
func (rl *RateLimiter) Allow(ctx context.Context, scope, client string) *Result {
	return rl.check(ctx, key(scope, client), 1)
}

// Peek reports the current budget for client without consuming it
func (rl *RateLimiter) Peek(ctx context.Context, scope, client string) *Result {
	return rl.check(ctx, key(scope, client), 0)
}

func (rl *RateLimiter) check(ctx context.Context, k string, n int) *Result {
	if rl.redisLimiter != nil {
		result, err := rl.allowRedis(ctx, k, n)
		if err == nil {
			return result
		}
		slog.Warn("Redis rate limit check failed, using fallback", "key", k, "error", err)
		if rl.metrics != nil {
			rl.metrics.IncrementRateLimitRedisError()
		}
	}

	if rl.metrics != nil {
		rl.metrics.IncrementRateLimitFallback()
	}
	return rl.allowMemory(k, n)
}

func (rl *RateLimiter) allowRedis(ctx context.Context, k string, n int) (*Result, error) {
	limit := redis_rate.Limit{
		Rate:   rl.config.LimitPerMin,
		Burst:  rl.config.Burst,
		Period: time.Minute,
	}

	res, err := rl.redisLimiter.AllowN(ctx, k, limit, n)
	if err != nil {
		return nil, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    n == 0 || res.Allowed > 0,
		Limit:      rl.config.LimitPerMin,
		Remaining:  res.Remaining,
		ResetAt:    rl.now().Add(res.ResetAfter),
		RetryAfter: max(res.RetryAfter, 0),
	}, nil
}

func (rl *RateLimiter) allowMemory(k string, n int) *Result {
	now := rl.now()
	perSec := rate.Every(time.Minute / time.Duration(rl.config.LimitPerMin))

	rl.mu.Lock()
	b, ok := rl.buckets[k]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(perSec, rl.config.Burst)}
		rl.buckets[k] = b
	}
	b.lastSeen = now
	rl.mu.Unlock()

	allowed := n == 0 || b.limiter.AllowN(now, n)
	tokens := b.limiter.TokensAt(now)

	result := &Result{
		Allowed:   allowed,
		Limit:     rl.config.LimitPerMin,
		Remaining: max(int(math.Floor(tokens)), 0),
	}

	// time until the bucket is full again
	missing := float64(rl.config.Burst) - tokens
	result.ResetAt = now.Add(time.Duration(missing / float64(perSec) * float64(time.Second)))

	if !allowed {
		result.RetryAfter = time.Duration((1 - tokens) / float64(perSec) * float64(time.Second))
	}

	return result
}

// StartCleanup drops idle in-memory buckets until ctx is done
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := rl.evictIdle(); n > 0 {
					slog.Debug("Evicted idle rate limit buckets", "count", n)
				}
			}
		}
	}()
}

func (rl *RateLimiter) evictIdle() int {
	cutoff := rl.now().Add(-rl.config.IdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	n := 0
	for k, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, k)
			n++
		}
	}
	return n
}

// Config returns the effective configuration
func (rl *RateLimiter) Config() Config {
	return rl.config
}

// GetStats returns rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	buckets := len(rl.buckets)
	rl.mu.Unlock()

	stats := map[string]interface{}{
		"redis_enabled":    rl.redisClient.IsEnabled(),
		"memory_buckets":   buckets,
		"limit_per_minute": rl.config.LimitPerMin,
	}

	if rl.redisClient.IsEnabled() {
		stats["redis_pool"] = rl.redisClient.GetPoolStats()
	}

	return stats
}
