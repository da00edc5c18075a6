package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBands(t *testing.T) {
	ts, err := ParseTeamSize(" 6-15 ")
	require.NoError(t, err)
	assert.Equal(t, TeamMedium, ts)

	_, err = ParseTeamSize("6-15 people")
	assert.Error(t, err)

	ml, err := ParseMeetingLoad("Heavy")
	require.NoError(t, err)
	assert.Equal(t, MeetingHeavy, ml)

	_, err = ParseMeetingLoad("lots")
	assert.Error(t, err)
}

func TestMatchTeamSize(t *testing.T) {
	tests := []struct {
		input    string
		expected TeamSize
		ok       bool
	}{
		{"solo", TeamSolo, true},
		{"Solo founder", TeamSolo, true},
		{"2-5 people", TeamSmall, true},
		{"team of 6-15", TeamMedium, true},
		{"16-50", TeamLarge, true},
		{"50+ engineers", TeamXLarge, true},
		{"huge", TeamUnknown, false},
		{"", TeamUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchTeamSize(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMatchMeetingLoad(t *testing.T) {
	tests := []struct {
		input    string
		expected MeetingLoad
		ok       bool
	}{
		{"light", MeetingLight, true},
		{"MODERATE", MeetingModerate, true},
		{"heavy (10+ hrs)", MeetingHeavy, true},
		// Declared order resolves ambiguous free text.
		{"light to heavy", MeetingLight, true},
		{"moderate-heavy", MeetingModerate, true},
		{"none", MeetingUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchMeetingLoad(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
