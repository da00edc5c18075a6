package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	counts []database.ArchetypeCount
	calls  int
	since  time.Time
	err    error
}

func (f *fakeSource) ArchetypeDistribution(_ context.Context, since time.Time) ([]database.ArchetypeCount, error) {
	f.calls++
	f.since = since
	return f.counts, f.err
}

func TestDistribution(t *testing.T) {
	src := &fakeSource{counts: []database.ArchetypeCount{
		{Archetype: "conductor", Count: 3, AverageOverhead: 61.25, AverageCost: 176800.4},
		{Archetype: "curator", Count: 1, AverageOverhead: 40, AverageCost: 22100},
	}}
	svc := NewService(src, nil, time.Minute)

	dist, err := svc.Distribution(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, PeriodAllTime, dist.Period)
	assert.Equal(t, int64(4), dist.Total)
	require.Len(t, dist.Entries, 4)

	assert.Equal(t, "conductor", dist.Entries[0].Archetype)
	assert.Equal(t, "Conductor", dist.Entries[0].DisplayName)
	assert.Equal(t, 75.0, dist.Entries[0].Share)
	assert.Equal(t, 61.3, dist.Entries[0].AverageOverhead)
	assert.Equal(t, 176800.0, dist.Entries[0].AverageAnnualCost)
	assert.Equal(t, "curator", dist.Entries[1].Archetype)

	// zero-count archetypes keep declared order
	assert.Equal(t, "architect", dist.Entries[2].Archetype)
	assert.Equal(t, "craftsperson", dist.Entries[3].Archetype)
	assert.Equal(t, 0.0, dist.Entries[3].Share)
}

func TestDistributionCaching(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, nil, time.Minute)
	ctx := context.Background()

	_, err := svc.Distribution(ctx, PeriodWeekly)
	require.NoError(t, err)
	_, err = svc.Distribution(ctx, PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	svc.Invalidate()
	_, err = svc.Distribution(ctx, PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestDistributionErrors(t *testing.T) {
	svc := NewService(&fakeSource{err: errors.New("db down")}, nil, time.Minute)

	_, err := svc.Distribution(context.Background(), "yearly")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.Distribution(context.Background(), PeriodDaily)
	assert.ErrorContains(t, err, "db down")
}

func TestPeriodStart(t *testing.T) {
	// a Thursday
	now := time.Date(2024, 5, 16, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period string
		want   time.Time
	}{
		{PeriodDaily, time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)},
		{PeriodWeekly, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{PeriodMonthly, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodAllTime, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got, err := PeriodStart(tt.period, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
