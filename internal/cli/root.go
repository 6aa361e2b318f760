// Package cli defines the command-line interface for deckctl.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckctl/internal/env"
	"github.com/deckforge/deckctl/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	OutlinePath  string
	TemplatePath string
	OutputDir    string
	LogLevel     logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		LogLevel: logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deckctl",
		Short: "deckctl compiles slide outlines into VBA slide-builder scripts",
		Long: "deckctl is a two-stage compiler: it resolves a declarative slide outline " +
			"against a template description into a plan, then generates a self-contained " +
			"VBA script that builds the slides inside the open presentation.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFiles(cmd); err != nil {
				return err
			}
			if err := applyRootEnvDefaults(cmd, opts); err != nil {
				return err
			}
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringSlice("env-file", nil, "Paths to .env files loaded before reading DECKCTL_* variables")

	cmd.AddCommand(
		newPlanCommand(opts),
		newGenerateCommand(opts),
		newBuildCommand(opts),
		newValidateCommand(opts),
	)

	return cmd
}

// loadEnvFiles loads --env-file files into the process environment so
// DECKCTL_* defaults can come from project .env files.
func loadEnvFiles(cmd *cobra.Command) error {
	files, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil || len(files) == 0 {
		return err
	}
	vars, err := env.LoadEnvFiles(".", files)
	if err != nil {
		return err
	}
	for key, value := range vars {
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
