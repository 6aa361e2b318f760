package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckctl/internal/engine"
	"github.com/deckforge/deckctl/internal/plan"
)

// newGenerateCommand creates the "generate" subcommand that compiles an
// existing plan into a VBA script.
func newGenerateCommand(opts *Options) *cobra.Command {
	var planPath string
	var skipValidation bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a VBA script from a resolved plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			if planPath == "" {
				return fmt.Errorf("no plan given (use --plan)")
			}
			raw, err := os.ReadFile(planPath)
			if err != nil {
				return fmt.Errorf("read plan %q: %w", planPath, err)
			}
			p, err := plan.Decode(raw)
			if err != nil {
				return fmt.Errorf("decode plan %q: %w", planPath, err)
			}

			eng := engine.NewEngine(logger)
			script, err := eng.GenerateScript(p, engine.Options{SkipValidation: skipValidation})
			if err != nil {
				return err
			}

			outPath := cmd.Flag("output").Value.String()
			if outPath == "" {
				_, writeErr := os.Stdout.Write(script)
				return writeErr
			}
			if err := writeArtifact(outPath, script); err != nil {
				return err
			}

			logger.Info("wrote script", "path", outPath, "bytes", len(script))
			return nil
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Path to the plan JSON produced by the plan command")
	cmd.Flags().StringP("output", "o", "", "Output path for the VBA script (if empty, prints to stdout)")
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "Skip the post-generation script sanity check")

	return cmd
}
