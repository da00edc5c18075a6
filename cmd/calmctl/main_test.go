package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreHourlyRateFlag(t *testing.T) {
	answers := strings.Repeat("A", assessment.QuestionCount)

	out, err := execute(t, "score", "--answers", answers, "--hourly-rate", "0")
	require.NoError(t, err)
	var p assessment.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 0.0, p.Estimate.Context.HourlyRate)
	assert.Equal(t, 0.0, p.Estimate.AnnualCost)

	out, err = execute(t, "score", "--answers", answers)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 85.0, p.Estimate.Context.HourlyRate)
}

func TestScoreAnswers(t *testing.T) {
	out, err := execute(t, "score", "--answers", strings.Repeat("A", assessment.QuestionCount), "--team-size", "6-15")
	require.NoError(t, err)

	var p assessment.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, assessment.Archetype("conductor"), p.Classification.Primary)
	assert.Equal(t, assessment.TeamMedium, p.Estimate.Context.TeamSize)
}

func TestScoreFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "responses.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
responses:
  "0": B
  "1": B
context:
  teamSize: 2-5
  meetingLoad: heavy
  hourlyRate: 120
`), 0644))

	out, err := execute(t, "score", "--in", yamlPath)
	require.NoError(t, err)

	var p assessment.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, assessment.TeamSmall, p.Estimate.Context.TeamSize)
	assert.Equal(t, assessment.MeetingHeavy, p.Estimate.Context.MeetingLoad)
	assert.Equal(t, 120.0, p.Estimate.Context.HourlyRate)

	jsonPath := filepath.Join(dir, "responses.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"responses":{"0":1,"1":true},"context":{"platform":"slack"}}`), 0644))

	out, err = execute(t, "score", "--in", jsonPath, "--platform", "microsoft", "--summary")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
	assert.NotContains(t, out, "{")
}

func TestScoreErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"score"}, "at least one of the flags"},
		{"both inputs", []string{"score", "--in", "x.json", "--answers", "AB"}, "none of the others can be"},
		{"bad letter", []string{"score", "--answers", "ABC"}, "invalid response value"},
		{"missing file", []string{"score", "--in", "/nonexistent/responses.json"}, "failed to read responses file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestQuestions(t *testing.T) {
	out, err := execute(t, "questions")
	require.NoError(t, err)
	assert.Equal(t, assessment.QuestionCount+1, strings.Count(out, "\n"))

	out, err = execute(t, "questions", "--json")
	require.NoError(t, err)
	var qs []assessment.Question
	require.NoError(t, json.Unmarshal([]byte(out), &qs))
	assert.Len(t, qs, assessment.QuestionCount)
}

func TestModelInitValidateShow(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "model", "init", "--data-dir", dir, "--model", "custom")
	require.NoError(t, err)
	assert.Contains(t, out, "custom.yaml")

	out, err = execute(t, "model", "validate", filepath.Join(dir, "custom.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = execute(t, "model", "show", "--data-dir", dir, "--model", "custom")
	require.NoError(t, err)
	var m assessment.ScoringModel
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, assessment.DefaultModel().Version, m.Version)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: x\nmetric: manhattan\n"), 0644))
	_, err = execute(t, "model", "validate", bad)
	assert.ErrorIs(t, err, assessment.ErrInvalidModel)

	_, err = execute(t, "model", "init")
	assert.Error(t, err)
}
