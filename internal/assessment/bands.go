package assessment

import (
	"fmt"
	"strings"
)

// TeamSize is an enumerated team-size band.
type TeamSize string

const (
	TeamSolo    TeamSize = "solo"
	TeamSmall   TeamSize = "2-5"
	TeamMedium  TeamSize = "6-15"
	TeamLarge   TeamSize = "16-50"
	TeamXLarge  TeamSize = "50+"
	TeamUnknown TeamSize = ""
)

// TeamSizes lists the bands in declared order.
var TeamSizes = []TeamSize{TeamSolo, TeamSmall, TeamMedium, TeamLarge, TeamXLarge}

// MeetingLoad is an enumerated meeting-load band.
type MeetingLoad string

const (
	MeetingLight    MeetingLoad = "light"
	MeetingModerate MeetingLoad = "moderate"
	MeetingHeavy    MeetingLoad = "heavy"
	MeetingUnknown  MeetingLoad = ""
)

// MeetingLoads lists the bands in declared order.
var MeetingLoads = []MeetingLoad{MeetingLight, MeetingModerate, MeetingHeavy}

// ParseTeamSize accepts an exact band name.
func ParseTeamSize(s string) (TeamSize, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, ts := range TeamSizes {
		if string(ts) == norm {
			return ts, nil
		}
	}
	return TeamUnknown, fmt.Errorf("unknown team size %q", s)
}

// ParseMeetingLoad accepts an exact band name.
func ParseMeetingLoad(s string) (MeetingLoad, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, ml := range MeetingLoads {
		if string(ml) == norm {
			return ml, nil
		}
	}
	return MeetingUnknown, fmt.Errorf("unknown meeting load %q", s)
}

// MatchTeamSize is the compatibility path for free-text team sizes such as
// "6-15 people". Exact names win; otherwise the first band (declared order)
// whose name appears as a substring is chosen.
func MatchTeamSize(s string) (TeamSize, bool) {
	if ts, err := ParseTeamSize(s); err == nil {
		return ts, true
	}
	norm := strings.ToLower(s)
	for _, ts := range TeamSizes {
		if strings.Contains(norm, string(ts)) {
			return ts, true
		}
	}
	return TeamUnknown, false
}

// MatchMeetingLoad is the free-text counterpart of ParseMeetingLoad.
func MatchMeetingLoad(s string) (MeetingLoad, bool) {
	if ml, err := ParseMeetingLoad(s); err == nil {
		return ml, true
	}
	norm := strings.ToLower(s)
	for _, ml := range MeetingLoads {
		if strings.Contains(norm, string(ml)) {
			return ml, true
		}
	}
	return MeetingUnknown, false
}
