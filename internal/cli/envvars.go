package cli

import (
	envparse "github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// baseEnv defines root CLI defaults sourced from DECKCTL_* env vars.
type baseEnv struct {
	// Outline is the outline path from DECKCTL_OUTLINE.
	Outline string `env:"DECKCTL_OUTLINE"`
	// Template is the template description path from DECKCTL_TEMPLATE.
	Template string `env:"DECKCTL_TEMPLATE"`
	// OutputDir is the artifact directory from DECKCTL_OUTPUT_DIR.
	OutputDir string `env:"DECKCTL_OUTPUT_DIR"`
	// LogLevel is the logging level from DECKCTL_LOG_LEVEL.
	LogLevel string `env:"DECKCTL_LOG_LEVEL"`
}

// parseEnv fills target from DECKCTL_* env vars via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}

// applyRootEnvDefaults fills unset root options and flags from DECKCTL_* env
// vars. Explicit flags always win over the environment.
func applyRootEnvDefaults(cmd *cobra.Command, opts *Options) error {
	var envOpts baseEnv
	if err := parseEnv(&envOpts); err != nil {
		return err
	}

	if opts.OutlinePath == "" {
		opts.OutlinePath = envOpts.Outline
	}
	if opts.TemplatePath == "" {
		opts.TemplatePath = envOpts.Template
	}
	if opts.OutputDir == "" {
		opts.OutputDir = envOpts.OutputDir
	}
	if envOpts.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		if err := cmd.Flags().Set("log-level", envOpts.LogLevel); err != nil {
			return err
		}
	}
	return nil
}
