package main

import (
	"fmt"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/spf13/cobra"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect and validate scoring models",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate <file>",
			Short: "Validate a scoring model file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := assessment.LoadModelFile(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "model %s is valid (%s metric, %d archetypes)\n", m.Version, m.Metric, len(m.Centroids))
				return err
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the built-in model to --data-dir for editing",
			RunE: func(cmd *cobra.Command, _ []string) error {
				dataDir, _ := cmd.Flags().GetString("data-dir")
				name, _ := cmd.Flags().GetString("model")
				if dataDir == "" {
					return fmt.Errorf("--data-dir is required")
				}
				if err := assessment.NewModelStore(dataDir).SaveModel(name, assessment.DefaultModel()); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s/%s.yaml\n", dataDir, name)
				return err
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the model selected by --data-dir and --model",
			RunE: func(cmd *cobra.Command, _ []string) error {
				scorer, err := scorerFromFlags(cmd)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), scorer.Model())
			},
		},
	)

	return cmd
}
