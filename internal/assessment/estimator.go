package assessment

import "strings"

// Context defaults applied when a field is empty.
const (
	DefaultTeamSize    = TeamSolo
	DefaultMeetingLoad = MeetingLight
	DefaultPlatform    = PlatformGoogle
)

// Degraded field names reported when a default replaced an unusable input.
const (
	DegradedTeamSize    = "team_size"
	DegradedMeetingLoad = "meeting_load"
	DegradedHourlyRate  = "hourly_rate"
	DegradedPlatform    = "platform"
)

// ResolveContext applies defaults and band matching. Unrecognized values fall
// back to a safe default and are listed in the returned degraded slice.
func ResolveContext(ctx Context, cost CostModel) (ResolvedContext, []string) {
	var degraded []string
	rc := ResolvedContext{
		TeamSize:    DefaultTeamSize,
		MeetingLoad: DefaultMeetingLoad,
		HourlyRate:  cost.DefaultHourlyRate,
		Platform:    string(DefaultPlatform),
	}

	if strings.TrimSpace(ctx.TeamSize) != "" {
		if ts, ok := MatchTeamSize(ctx.TeamSize); ok {
			rc.TeamSize = ts
		} else {
			rc.TeamSize = TeamSolo
			degraded = append(degraded, DegradedTeamSize)
		}
	}

	if strings.TrimSpace(ctx.MeetingLoad) != "" {
		if ml, ok := MatchMeetingLoad(ctx.MeetingLoad); ok {
			rc.MeetingLoad = ml
		} else {
			rc.MeetingLoad = MeetingModerate
			degraded = append(degraded, DegradedMeetingLoad)
		}
	}

	if ctx.HourlyRate != nil {
		if *ctx.HourlyRate >= 0 {
			rc.HourlyRate = *ctx.HourlyRate
		} else {
			degraded = append(degraded, DegradedHourlyRate)
		}
	}

	if strings.TrimSpace(ctx.Platform) != "" {
		p, ok := ParsePlatform(ctx.Platform)
		rc.Platform = string(p)
		if !ok {
			degraded = append(degraded, DegradedPlatform)
		}
	}

	return rc, degraded
}

// EstimateCost derives the overhead and cost metrics for a classified profile.
// It never fails: every lookup has a default.
func EstimateCost(primary Archetype, ctx Context, cost CostModel) Estimate {
	rc, degraded := ResolveContext(ctx, cost)

	base, ok := cost.MeetingMultipliers[rc.MeetingLoad]
	if !ok {
		base = cost.MeetingMultipliers[MeetingModerate]
	}
	adjustment, ok := cost.ArchetypeAdjustments[primary]
	if !ok {
		adjustment = 1.0
	}
	teamMult, ok := cost.TeamMultipliers[rc.TeamSize]
	if !ok {
		teamMult = 1
	}

	overhead := base * adjustment
	hoursPPW := overhead * cost.HoursPerWeekFactor

	return Estimate{
		OverheadBase:   base,
		OverheadIndex:  overhead,
		HoursLostPPW:   hoursPPW,
		TeamMultiplier: teamMult,
		HoursTeam:      hoursPPW * teamMult,
		AnnualCost:     hoursPPW * cost.WeeksPerYear * rc.HourlyRate * teamMult,
		Context:        rc,
		Degraded:       degraded,
	}
}
