package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckctl/internal/engine"
)

// newPlanCommand creates the "plan" subcommand that resolves an outline
// against a template description into a plan.
func newPlanCommand(opts *Options) *cobra.Command {
	var checkPlaceholders bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve an outline against a template description into a plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			outline, template, err := loadInputs(opts)
			if err != nil {
				return err
			}

			eng := engine.NewEngine(logger)
			p, err := eng.ResolvePlan(outline, template, engine.Options{CheckPlaceholders: checkPlaceholders})
			if err != nil {
				return err
			}

			planJSON, err := p.Encode()
			if err != nil {
				return err
			}

			outPath := cmd.Flag("output").Value.String()
			if outPath == "" {
				_, writeErr := os.Stdout.Write(planJSON)
				return writeErr
			}
			if err := writeArtifact(outPath, planJSON); err != nil {
				return err
			}

			logger.Info("wrote plan", "path", outPath, "slides", len(p.SlidePlan))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.OutlinePath, "outline", "", "Path to the slide outline (YAML or JSON)")
	cmd.Flags().StringVar(&opts.TemplatePath, "template", "", "Path to the template description JSON")
	cmd.Flags().StringP("output", "o", "", "Output path for the plan JSON (if empty, prints to stdout)")
	cmd.Flags().BoolVar(&checkPlaceholders, "check-placeholders", false, "Warn when referenced placeholders are missing from the analyzed layouts")

	return cmd
}
