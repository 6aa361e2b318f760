package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deckforge/deckctl/internal/config"
)

// loadInputs loads the outline and template description named by the shared
// options, after flags and DECKCTL_* defaults were applied.
func loadInputs(opts *Options) (*config.Outline, *config.TemplateDescription, error) {
	if opts.OutlinePath == "" {
		return nil, nil, fmt.Errorf("no outline given (use --outline or DECKCTL_OUTLINE)")
	}
	if opts.TemplatePath == "" {
		return nil, nil, fmt.Errorf("no template description given (use --template or DECKCTL_TEMPLATE)")
	}

	outline, err := config.LoadOutline(opts.OutlinePath)
	if err != nil {
		return nil, nil, err
	}
	template, err := config.LoadTemplateDescription(opts.TemplatePath)
	if err != nil {
		return nil, nil, err
	}
	return outline, template, nil
}

// writeArtifact writes data to path, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
