package stats

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/cache"
)

// DistributionCache caches distributions per period
type DistributionCache struct {
	cache *cache.Cache
}

// NewDistributionCache creates a new distribution cache
func NewDistributionCache(ttl time.Duration) *DistributionCache {
	return &DistributionCache{
		cache: cache.NewCache(ttl),
	}
}

func (dc *DistributionCache) key(period string) string {
	return "distribution:" + period
}

// Get retrieves a cached distribution
func (dc *DistributionCache) Get(period string) (*Distribution, bool) {
	data, found := dc.cache.Get(dc.key(period))
	if !found {
		return nil, false
	}

	var dist Distribution
	if err := json.Unmarshal(data, &dist); err != nil {
		slog.Error("Failed to unmarshal cached distribution", "error", err, "period", period)
		return nil, false
	}

	return &dist, true
}

// Set caches a distribution
func (dc *DistributionCache) Set(period string, dist *Distribution) {
	data, err := json.Marshal(dist)
	if err != nil {
		slog.Error("Failed to marshal distribution for cache", "error", err, "period", period)
		return
	}
	dc.cache.Set(dc.key(period), data)
}

// InvalidateAll drops every cached distribution
func (dc *DistributionCache) InvalidateAll() {
	dc.cache.Clear()
}

// GetStats returns cache statistics
func (dc *DistributionCache) GetStats() map[string]interface{} {
	return dc.cache.Stats()
}
