// Command calmctl scores questionnaires offline and manages scoring models.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "calmctl",
		Short:         "calm.profile operator tool",
		Long:          "calmctl scores questionnaire responses without the HTTP service, prints the question bank and validates scoring model files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("data-dir", os.Getenv("DATA_DIR"), "Directory holding scoring model files")
	root.PersistentFlags().String("model", "scoring_model", "Scoring model name within --data-dir")

	root.AddCommand(newScoreCmd(), newQuestionsCmd(), newModelCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
