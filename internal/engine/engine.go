// Package engine contains the high-level orchestration logic for the compile
// pipeline: outline plus template description in, plan and script out.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/deckforge/deckctl/internal/config"
	"github.com/deckforge/deckctl/internal/logging"
	"github.com/deckforge/deckctl/internal/plan"
	"github.com/deckforge/deckctl/internal/validate"
	"github.com/deckforge/deckctl/internal/vba"
)

// Engine coordinates loading, resolving, generating and validating.
type Engine struct {
	logger *slog.Logger
}

// NewEngine constructs an Engine that reports progress through the logger.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Options controls a pipeline run.
type Options struct {
	// CheckPlaceholders enables the advisory build-time existence check of
	// referenced placeholders against the analyzed layouts. Warnings only;
	// generated output is unaffected.
	CheckPlaceholders bool
	// SkipValidation disables the post-generation script sanity check.
	SkipValidation bool
}

// Result carries the artifacts of one pipeline run.
type Result struct {
	// Plan is the resolved intermediate representation.
	Plan *plan.Plan
	// PlanJSON is the stable JSON serialization of Plan.
	PlanJSON []byte
	// Script is the generated VBA program.
	Script []byte
}

// ResolvePlan validates the inputs and resolves them into a plan.
func (e *Engine) ResolvePlan(outline *config.Outline, td *config.TemplateDescription, opts Options) (*plan.Plan, error) {
	outlineReport := validate.Outline(outline)
	outlineReport.Log(e.logger, "outline")
	if !outlineReport.Valid() {
		return nil, fmt.Errorf("outline failed validation: %s", outlineReport.Errors[0])
	}

	templateReport := validate.TemplateDescription(td)
	templateReport.Log(e.logger, "template")
	if !templateReport.Valid() {
		return nil, fmt.Errorf("template description failed validation: %s", templateReport.Errors[0])
	}

	// Surface the analyzer's free-text remarks alongside our own findings.
	if len(td.ValidationNotes) > 0 {
		fmt.Fprintln(logging.NewReportWriter(e.logger), strings.Join(td.ValidationNotes, "\n"))
	}

	if opts.CheckPlaceholders {
		validate.Placeholders(outline, td).Log(e.logger, "placeholders")
	}

	resolver := plan.NewResolver(outline, td)
	p, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}
	for _, warning := range resolver.Warnings() {
		e.logger.Warn("plan warning", "detail", warning)
	}

	e.logLayoutUsage(p)
	return p, nil
}

// GenerateScript compiles a plan into the final script and runs the script
// sanity check unless disabled.
func (e *Engine) GenerateScript(p *plan.Plan, opts Options) ([]byte, error) {
	script, err := vba.NewGenerator(p).Generate()
	if err != nil {
		return nil, err
	}

	if !opts.SkipValidation {
		report := validate.Script(script)
		report.Log(e.logger, "script")
		if !report.Valid() {
			return nil, fmt.Errorf("generated script failed validation: %s", report.Errors[0])
		}
	}

	e.logger.Info("generated script",
		"slides", len(p.SlidePlan),
		"layouts", len(p.LayoutIndices()),
		"bytes", len(script))
	return script, nil
}

// Build runs the full pipeline over already loaded inputs.
func (e *Engine) Build(outline *config.Outline, td *config.TemplateDescription, opts Options) (*Result, error) {
	p, err := e.ResolvePlan(outline, td, opts)
	if err != nil {
		return nil, err
	}

	planJSON, err := p.Encode()
	if err != nil {
		return nil, err
	}

	script, err := e.GenerateScript(p, opts)
	if err != nil {
		return nil, err
	}

	return &Result{Plan: p, PlanJSON: planJSON, Script: script}, nil
}

// logLayoutUsage reports how many slides use each layout.
func (e *Engine) logLayoutUsage(p *plan.Plan) {
	usage := make(map[int]int)
	names := make(map[int]string)
	for _, s := range p.SlidePlan {
		usage[s.Layout.Index]++
		names[s.Layout.Index] = s.Layout.Name
	}
	for _, index := range p.LayoutIndices() {
		e.logger.Debug("layout usage", "layout", names[index], "index", index, "slides", usage[index])
	}
}
