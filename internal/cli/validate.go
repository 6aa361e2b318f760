package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckctl/internal/config"
	"github.com/deckforge/deckctl/internal/plan"
	"github.com/deckforge/deckctl/internal/validate"
)

// newValidateCommand creates the "validate" subcommand that checks pipeline
// artifacts without producing output.
func newValidateCommand(opts *Options) *cobra.Command {
	var planPath string
	var scriptPath string
	var checkPlaceholders bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate outlines, template descriptions, plans and scripts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			var report validate.Report
			checked := 0

			var outline *config.Outline
			var template *config.TemplateDescription

			if opts.OutlinePath != "" {
				var err error
				outline, err = config.LoadOutline(opts.OutlinePath)
				if err != nil {
					return err
				}
				r := validate.Outline(outline)
				r.Log(logger, "outline")
				report.Merge(r)
				checked++
			}

			if opts.TemplatePath != "" {
				var err error
				template, err = config.LoadTemplateDescription(opts.TemplatePath)
				if err != nil {
					return err
				}
				r := validate.TemplateDescription(template)
				r.Log(logger, "template")
				report.Merge(r)
				checked++
			}

			if checkPlaceholders && outline != nil && template != nil {
				r := validate.Placeholders(outline, template)
				r.Log(logger, "placeholders")
				report.Merge(r)
			}

			if planPath != "" {
				raw, err := os.ReadFile(planPath)
				if err != nil {
					return fmt.Errorf("read plan %q: %w", planPath, err)
				}
				p, err := plan.Decode(raw)
				if err != nil {
					return fmt.Errorf("decode plan %q: %w", planPath, err)
				}
				r := validate.Plan(p)
				r.Log(logger, "plan")
				report.Merge(r)
				checked++
			}

			if scriptPath != "" {
				raw, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script %q: %w", scriptPath, err)
				}
				r := validate.Script(raw)
				r.Log(logger, "script")
				report.Merge(r)
				checked++
			}

			if checked == 0 {
				return fmt.Errorf("nothing to validate (give --outline, --template, --plan or --script)")
			}
			if !report.Valid() {
				return fmt.Errorf("validation failed with %d error(s)", len(report.Errors))
			}

			logger.Info("validation passed", "artifacts", checked, "warnings", len(report.Warnings))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.OutlinePath, "outline", "", "Path to a slide outline to validate")
	cmd.Flags().StringVar(&opts.TemplatePath, "template", "", "Path to a template description to validate")
	cmd.Flags().StringVar(&planPath, "plan", "", "Path to a plan JSON to validate")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Path to a generated VBA script to validate")
	cmd.Flags().BoolVar(&checkPlaceholders, "check-placeholders", false, "Cross-check outline placeholders against the analyzed layouts")

	return cmd
}
