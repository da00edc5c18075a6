package assessment

import (
	"encoding/json"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allAnswers(letter string) map[string]any {
	raw := make(map[string]any, QuestionCount)
	for i := 0; i < QuestionCount; i++ {
		raw[strconv.Itoa(i)] = letter
	}
	return raw
}

func TestScorerExampleScenarioAllA(t *testing.T) {
	s := NewScorer(nil, nil)
	ctx := Context{TeamSize: "6-15", MeetingLoad: "moderate", HourlyRate: Rate(100), Platform: "google"}

	p, err := s.Score(allAnswers("A"), ctx)
	require.NoError(t, err)

	for _, axis := range Axes {
		assert.Equal(t, 100.0, p.Axes[axis], axis)
	}
	assert.Equal(t, Conductor, p.Classification.Primary)
	assert.Equal(t, ConfidenceHigh, p.Classification.Confidence)
	assert.InDelta(t, 0.68, p.Estimate.OverheadIndex, 1e-9)
	assert.InDelta(t, 3.4, p.Estimate.HoursLostPPW, 1e-9)
	assert.InDelta(t, 34.0, p.Estimate.HoursTeam, 1e-9)
	assert.Equal(t, 10.0, p.Estimate.TeamMultiplier)
	assert.InDelta(t, 176800.0, p.Estimate.AnnualCost, 1e-6)
	assert.Equal(t, []string{"Meet", "Calendar", "Groups", "Chat"}, p.Recommendations.ToolStack)
	assert.Equal(t, "orchestrators of collaborative excellence", p.Tagline)
	assert.Equal(t, DefaultModelVersion, p.ModelVersion)
	assert.Equal(t, 100, sumMix(p.Mix))
	assert.Empty(t, p.Estimate.Degraded)
	assert.Contains(t, p.Summary, "Conductor")
	assert.Contains(t, p.Summary, "$176,800")
}

func TestScorerExampleScenarioEmpty(t *testing.T) {
	s := NewScorer(nil, nil)

	p, err := s.Score(map[string]any{}, Context{})
	require.NoError(t, err)

	for _, axis := range Axes {
		assert.Equal(t, 0.0, p.Axes[axis], axis)
	}
	assert.Equal(t, Curator, p.Classification.Primary)
	assert.Equal(t, Architect, p.Classification.Secondary)
	assert.Equal(t, TeamSolo, p.Estimate.Context.TeamSize)
	assert.Equal(t, MeetingLight, p.Estimate.Context.MeetingLoad)
	assert.Equal(t, 85.0, p.Estimate.Context.HourlyRate)
	assert.Equal(t, "google", p.Estimate.Context.Platform)
}

func TestScorerRejectsInvalidResponses(t *testing.T) {
	_, err := NewScorer(nil, nil).Score(map[string]any{"3": "C"}, Context{})
	assert.ErrorIs(t, err, ErrInvalidResponseValue)
}

func TestScorerIsIdempotent(t *testing.T) {
	s := NewScorer(nil, nil)
	raw := map[string]any{"0": "A", "3": 1, "6": "b", "11": true, "17": "A"}
	ctx := Context{TeamSize: "2-5 people", MeetingLoad: "Heavy", HourlyRate: Rate(140), Platform: "slack"}

	first, err := s.Score(raw, ctx)
	require.NoError(t, err)
	second, err := s.Score(raw, ctx)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestScorerConcurrentUse(t *testing.T) {
	s := NewScorer(nil, nil)
	want, err := s.Score(allAnswers("B"), Context{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Profile, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.Score(allAnswers("B"), Context{})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestNewScorerFromStore(t *testing.T) {
	dir := t.TempDir()
	m := weightedModel()
	m.Version = "weighted-1"
	require.NoError(t, NewModelStore(dir).SaveModel("weighted", m))

	s, err := NewScorerFromStore(dir, "weighted")
	require.NoError(t, err)
	assert.Equal(t, MetricWeighted, s.Model().Metric)

	p, err := s.Score(allAnswers("A"), Context{})
	require.NoError(t, err)
	assert.Equal(t, "weighted-1", p.ModelVersion)
	assert.Equal(t, Conductor, p.Classification.Primary)
}

func TestSummarize(t *testing.T) {
	s := NewScorer(nil, nil)

	raw := map[string]any{}
	for i := 0; i < 5; i++ {
		raw[strconv.Itoa(i)] = "A"
		raw[strconv.Itoa(i+10)] = "A"
	}
	p, err := s.Score(raw, Context{})
	require.NoError(t, err)
	require.Equal(t, "craftsperson-architect", p.Classification.Hybrid)
	assert.Contains(t, p.Summary, "Craftsperson-Architect hybrid (low confidence)")
	assert.NotContains(t, p.Summary, "team")
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "0", formatDollars(0))
	assert.Equal(t, "999", formatDollars(999.4))
	assert.Equal(t, "1,000", formatDollars(999.5))
	assert.Equal(t, "176,800", formatDollars(176800))
	assert.Equal(t, "1,234,567", formatDollars(1234567))
	assert.Equal(t, "-12,000", formatDollars(-12000))
}
