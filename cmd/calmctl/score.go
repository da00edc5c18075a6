package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// scoreInput is the file accepted by "calmctl score --in"
type scoreInput struct {
	Responses map[string]any `json:"responses" yaml:"responses"`
	Context   struct {
		TeamSize    string   `json:"teamSize" yaml:"teamSize"`
		MeetingLoad string   `json:"meetingLoad" yaml:"meetingLoad"`
		HourlyRate  *float64 `json:"hourlyRate" yaml:"hourlyRate"`
		Platform    string   `json:"platform" yaml:"platform"`
	} `json:"context" yaml:"context"`
}

type scoreOptions struct {
	input       string
	answers     string
	teamSize    string
	meetingLoad string
	hourlyRate  float64
	platform    string
	summaryOnly bool
}

func newScoreCmd() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a questionnaire",
		Long: `Score a questionnaire and print the profile as JSON.

Responses come either from --in (a JSON or YAML file with "responses" and an
optional "context") or from --answers, a string of 20 A/B letters. Context
flags override the file.`,
		Example: `  calmctl score --answers ABABABABABABABABABAB --team-size 6-15
  calmctl score --in responses.yaml --summary`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "in", "i", "", "Path to a JSON or YAML responses file")
	cmd.Flags().StringVarP(&opts.answers, "answers", "a", "", "Answers as A/B letters in question order")
	cmd.Flags().StringVar(&opts.teamSize, "team-size", "", "Team size band (solo, 2-5, 6-15, 16-50, 50+)")
	cmd.Flags().StringVar(&opts.meetingLoad, "meeting-load", "", "Meeting load (light, moderate, heavy)")
	cmd.Flags().Float64Var(&opts.hourlyRate, "hourly-rate", 0, "Loaded hourly rate in dollars")
	cmd.Flags().StringVar(&opts.platform, "platform", "", "Workspace platform (google, microsoft, slack, other)")
	cmd.Flags().BoolVar(&opts.summaryOnly, "summary", false, "Print only the summary line")
	cmd.MarkFlagsMutuallyExclusive("in", "answers")
	cmd.MarkFlagsOneRequired("in", "answers")

	return cmd
}

func runScore(cmd *cobra.Command, opts *scoreOptions) error {
	scorer, err := scorerFromFlags(cmd)
	if err != nil {
		return err
	}

	var (
		raw map[string]any
		ctx assessment.Context
	)

	if opts.input != "" {
		in, err := readScoreInput(opts.input)
		if err != nil {
			return err
		}
		raw = in.Responses
		ctx = assessment.Context{
			TeamSize:    in.Context.TeamSize,
			MeetingLoad: in.Context.MeetingLoad,
			HourlyRate:  in.Context.HourlyRate,
			Platform:    in.Context.Platform,
		}
	} else {
		raw = lettersToResponses(opts.answers)
	}

	if opts.teamSize != "" {
		ctx.TeamSize = opts.teamSize
	}
	if opts.meetingLoad != "" {
		ctx.MeetingLoad = opts.meetingLoad
	}
	if cmd.Flags().Changed("hourly-rate") {
		ctx.HourlyRate = assessment.Rate(opts.hourlyRate)
	}
	if opts.platform != "" {
		ctx.Platform = opts.platform
	}

	profile, err := scorer.Score(raw, ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.summaryOnly {
		_, err := fmt.Fprintln(out, profile.Summary)
		return err
	}
	return writeJSON(out, profile)
}

func readScoreInput(path string) (*scoreInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses file: %w", err)
	}

	var in scoreInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &in)
	default:
		err = yaml.Unmarshal(data, &in)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return &in, nil
}

// lettersToResponses keeps every non-space character so stray letters are
// reported by the parser instead of being dropped.
func lettersToResponses(answers string) map[string]any {
	raw := make(map[string]any, assessment.QuestionCount)
	i := 0
	for _, r := range answers {
		if r == ' ' || r == ',' {
			continue
		}
		raw[fmt.Sprint(i)] = string(r)
		i++
	}
	return raw
}

func scorerFromFlags(cmd *cobra.Command) (*assessment.Scorer, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	name, _ := cmd.Flags().GetString("model")
	return assessment.NewScorerFromStore(dataDir, name)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
