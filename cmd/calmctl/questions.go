package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/spf13/cobra"
)

func newQuestionsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the question bank",
		RunE: func(cmd *cobra.Command, _ []string) error {
			questions := assessment.NewContentLibrary().Questions()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), questions)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tAXIS\tPROMPT\tA\tB")
			for _, q := range questions {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", q.Index, q.Axis, q.Prompt, q.OptionA, q.OptionB)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
