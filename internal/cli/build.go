package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckctl/internal/engine"
)

// newBuildCommand creates the "build" subcommand that runs the full pipeline
// and writes both the plan and the script.
func newBuildCommand(opts *Options) *cobra.Command {
	var checkPlaceholders bool
	var skipValidation bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve the outline and generate the VBA script in one pass",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			outline, template, err := loadInputs(opts)
			if err != nil {
				return err
			}

			eng := engine.NewEngine(logger)
			result, err := eng.Build(outline, template, engine.Options{
				CheckPlaceholders: checkPlaceholders,
				SkipValidation:    skipValidation,
			})
			if err != nil {
				return err
			}

			toStdout, _ := cmd.Flags().GetBool("stdout")
			if toStdout {
				_, writeErr := os.Stdout.Write(result.Script)
				return writeErr
			}

			outputDir := opts.OutputDir
			if outputDir == "" {
				outputDir = "build"
			}

			planPath := filepath.Join(outputDir, "plan.json")
			if err := writeArtifact(planPath, result.PlanJSON); err != nil {
				return err
			}
			scriptPath := filepath.Join(outputDir, "script.vba")
			if err := writeArtifact(scriptPath, result.Script); err != nil {
				return err
			}

			logger.Info("build complete",
				"plan", planPath,
				"script", scriptPath,
				"slides", len(result.Plan.SlidePlan))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.OutlinePath, "outline", "", "Path to the slide outline (YAML or JSON)")
	cmd.Flags().StringVar(&opts.TemplatePath, "template", "", "Path to the template description JSON")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Directory for the plan and script artifacts (default \"build\")")
	cmd.Flags().Bool("stdout", false, "Print the script to stdout instead of writing files")
	cmd.Flags().BoolVar(&checkPlaceholders, "check-placeholders", false, "Warn when referenced placeholders are missing from the analyzed layouts")
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "Skip the post-generation script sanity check")

	return cmd
}
