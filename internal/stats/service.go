package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/ZanzyTHEbar/calm-profile/internal/database"
)

// ErrInvalidPeriod is returned for a period name Distribution does not know
var ErrInvalidPeriod = errors.New("invalid period")

// Periods accepted by Distribution
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all_time"
)

// DistributionSource aggregates stored assessments by primary archetype
type DistributionSource interface {
	ArchetypeDistribution(ctx context.Context, since time.Time) ([]database.ArchetypeCount, error)
}

// Entry is one archetype's share of stored assessments
type Entry struct {
	Archetype         string  `json:"archetype"`
	DisplayName       string  `json:"display_name"`
	Count             int64   `json:"count"`
	Share             float64 `json:"share"`
	AverageOverhead   float64 `json:"average_overhead"`
	AverageAnnualCost float64 `json:"average_annual_cost"`
}

// Distribution is the archetype breakdown for a period
type Distribution struct {
	Period      string    `json:"period"`
	PeriodStart time.Time `json:"period_start"`
	Total       int64     `json:"total"`
	Entries     []Entry   `json:"entries"`
}

// Service computes archetype distributions over stored assessments
type Service struct {
	source  DistributionSource
	content *assessment.ContentLibrary
	cache   *DistributionCache
	now     func() time.Time
}

// NewService creates a new stats service
func NewService(source DistributionSource, content *assessment.ContentLibrary, ttl time.Duration) *Service {
	if content == nil {
		content = assessment.NewContentLibrary()
	}
	return &Service{
		source:  source,
		content: content,
		cache:   NewDistributionCache(ttl),
		now:     time.Now,
	}
}

// PeriodStart returns the start of the period containing now
func PeriodStart(period string, now time.Time) (time.Time, error) {
	now = now.UTC()
	switch period {
	case PeriodDaily:
		return now.Truncate(24 * time.Hour), nil
	case PeriodWeekly:
		// weeks start on Monday
		days := (int(now.Weekday()) + 6) % 7
		return now.AddDate(0, 0, -days).Truncate(24 * time.Hour), nil
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case PeriodAllTime:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
}

// Distribution returns the archetype breakdown for period, from cache when fresh
func (s *Service) Distribution(ctx context.Context, period string) (*Distribution, error) {
	if period == "" {
		period = PeriodAllTime
	}

	start, err := PeriodStart(period, s.now())
	if err != nil {
		return nil, err
	}

	if cached, found := s.cache.Get(period); found {
		return cached, nil
	}

	counts, err := s.source.ArchetypeDistribution(ctx, start)
	if err != nil {
		return nil, err
	}

	dist := s.build(period, start, counts)
	s.cache.Set(period, dist)

	slog.Debug("Archetype distribution computed", "period", period, "total", dist.Total)
	return dist, nil
}

// Invalidate drops cached distributions after a new assessment is stored
func (s *Service) Invalidate() {
	s.cache.InvalidateAll()
}

// CacheStats returns statistics of the distribution cache
func (s *Service) CacheStats() map[string]interface{} {
	return s.cache.GetStats()
}

// build fills in every known archetype, zero counts included, ordered by
// count and then by declared archetype order.
func (s *Service) build(period string, start time.Time, counts []database.ArchetypeCount) *Distribution {
	byName := make(map[string]database.ArchetypeCount, len(counts))
	var total int64
	for _, c := range counts {
		byName[c.Archetype] = c
		total += c.Count
	}

	entries := make([]Entry, 0, len(assessment.Archetypes))
	for _, a := range assessment.Archetypes {
		c := byName[string(a)]
		entries = append(entries, s.entry(string(a), c, total))
		delete(byName, string(a))
	}
	// archetypes stored by an older model
	extra := make([]string, 0, len(byName))
	for name := range byName {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		entries = append(entries, s.entry(name, byName[name], total))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return &Distribution{
		Period:      period,
		PeriodStart: start,
		Total:       total,
		Entries:     entries,
	}
}

func (s *Service) entry(name string, c database.ArchetypeCount, total int64) Entry {
	share := 0.0
	if total > 0 {
		share = math.Round(float64(c.Count)/float64(total)*1000) / 10
	}
	return Entry{
		Archetype:         name,
		DisplayName:       s.content.DisplayName(assessment.Archetype(name)),
		Count:             c.Count,
		Share:             share,
		AverageOverhead:   math.Round(c.AverageOverhead*10) / 10,
		AverageAnnualCost: math.Round(c.AverageCost),
	}
}
