package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCost(t *testing.T) {
	cost := DefaultModel().Cost

	tests := []struct {
		name       string
		primary    Archetype
		ctx        Context
		overhead   float64
		hoursPPW   float64
		teamMult   float64
		annualCost float64
		resolved   ResolvedContext
		degraded   []string
	}{
		{
			name:       "example scenario",
			primary:    Conductor,
			ctx:        Context{TeamSize: "6-15", MeetingLoad: "moderate", HourlyRate: Rate(100), Platform: "google"},
			overhead:   0.68,
			hoursPPW:   3.4,
			teamMult:   10,
			annualCost: 176800,
			resolved:   ResolvedContext{TeamSize: TeamMedium, MeetingLoad: MeetingModerate, HourlyRate: 100, Platform: "google"},
		},
		{
			name:       "empty context takes defaults",
			primary:    Architect,
			ctx:        Context{},
			overhead:   0.54,
			hoursPPW:   2.7,
			teamMult:   1,
			annualCost: 2.7 * 52 * 85,
			resolved:   ResolvedContext{TeamSize: TeamSolo, MeetingLoad: MeetingLight, HourlyRate: 85, Platform: "google"},
		},
		{
			name:       "explicit zero rate is kept",
			primary:    Architect,
			ctx:        Context{HourlyRate: Rate(0)},
			overhead:   0.54,
			hoursPPW:   2.7,
			teamMult:   1,
			annualCost: 0,
			resolved:   ResolvedContext{TeamSize: TeamSolo, MeetingLoad: MeetingLight, HourlyRate: 0, Platform: "google"},
		},
		{
			name:       "unknown bands degrade",
			primary:    Curator,
			ctx:        Context{TeamSize: "a few", MeetingLoad: "constant", HourlyRate: Rate(-5), Platform: "zoom"},
			overhead:   0.88,
			hoursPPW:   4.4,
			teamMult:   1,
			annualCost: 4.4 * 52 * 85,
			resolved:   ResolvedContext{TeamSize: TeamSolo, MeetingLoad: MeetingModerate, HourlyRate: 85, Platform: "other"},
			degraded:   []string{DegradedTeamSize, DegradedMeetingLoad, DegradedHourlyRate, DegradedPlatform},
		},
		{
			name:       "unknown archetype uses neutral adjustment",
			primary:    Archetype("wizard"),
			ctx:        Context{TeamSize: "50+", MeetingLoad: "heavy", HourlyRate: Rate(120), Platform: "slack"},
			overhead:   1.0,
			hoursPPW:   5.0,
			teamMult:   55,
			annualCost: 5.0 * 52 * 120 * 55,
			resolved:   ResolvedContext{TeamSize: TeamXLarge, MeetingLoad: MeetingHeavy, HourlyRate: 120, Platform: "slack"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EstimateCost(tt.primary, tt.ctx, cost)
			assert.InDelta(t, tt.overhead, e.OverheadIndex, 1e-9)
			assert.InDelta(t, tt.hoursPPW, e.HoursLostPPW, 1e-9)
			assert.Equal(t, tt.teamMult, e.TeamMultiplier)
			assert.InDelta(t, tt.hoursPPW*tt.teamMult, e.HoursTeam, 1e-9)
			assert.InDelta(t, tt.annualCost, e.AnnualCost, 1e-6)
			assert.Equal(t, tt.resolved, e.Context)
			assert.Equal(t, tt.degraded, e.Degraded)
		})
	}
}

func TestEstimateCostMonotonic(t *testing.T) {
	cost := DefaultModel().Cost

	t.Run("hourly rate", func(t *testing.T) {
		prev := 0.0
		for _, rate := range []float64{10, 50, 85, 100, 250} {
			e := EstimateCost(Architect, Context{TeamSize: "2-5", MeetingLoad: "heavy", HourlyRate: Rate(rate)}, cost)
			assert.Greater(t, e.AnnualCost, prev, "rate %v", rate)
			prev = e.AnnualCost
		}
	})

	t.Run("team multiplier", func(t *testing.T) {
		prev := 0.0
		for _, ts := range TeamSizes {
			e := EstimateCost(Craftsperson, Context{TeamSize: string(ts), MeetingLoad: "light", HourlyRate: Rate(85)}, cost)
			assert.Greater(t, e.AnnualCost, prev, "team %s", ts)
			prev = e.AnnualCost
		}
	})
}
