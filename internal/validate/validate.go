// Package validate provides structural sanity checks for every artifact in
// the pipeline: outline, template description, plan and generated script.
package validate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/deckforge/deckctl/internal/config"
	"github.com/deckforge/deckctl/internal/plan"
)

// Report aggregates findings from a validation pass.
type Report struct {
	// Errors are findings that make the artifact unusable.
	Errors []string
	// Warnings are suspicious findings that do not block use.
	Warnings []string
	// Info are neutral observations.
	Info []string
}

// Valid reports whether the pass found no errors.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Merge combines another report into this one.
func (r *Report) Merge(other Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
}

// Log writes the report through the given logger, one finding per entry.
func (r Report) Log(logger *slog.Logger, stage string) {
	for _, msg := range r.Errors {
		logger.Error("validation error", "stage", stage, "detail", msg)
	}
	for _, msg := range r.Warnings {
		logger.Warn("validation warning", "stage", stage, "detail", msg)
	}
	for _, msg := range r.Info {
		logger.Info("validation note", "stage", stage, "detail", msg)
	}
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) infof(format string, args ...any) {
	r.Info = append(r.Info, fmt.Sprintf(format, args...))
}

// Outline checks an outline's structure and per-placeholder content shapes.
func Outline(o *config.Outline) Report {
	var r Report
	if o == nil || o.Slides == nil {
		r.errorf("outline is missing the %q key", "slides")
		return r
	}
	if len(o.Slides) == 0 {
		r.errorf("no slides defined in outline")
	}
	for i, slide := range o.Slides {
		slideNo := i + 1
		if strings.TrimSpace(slide.Layout) == "" {
			r.errorf("slide %d: missing layout name", slideNo)
		}
		if len(slide.Placeholders) == 0 {
			r.warnf("slide %d: no placeholders", slideNo)
		}
		for _, entry := range slide.Placeholders {
			checkPlaceholderContent(&r, slideNo, entry)
		}
	}
	return r
}

// checkPlaceholderContent validates one placeholder key and its value.
func checkPlaceholderContent(r *Report, slideNo int, entry config.PlaceholderContent) {
	base, ordinal, err := plan.ParseKey(entry.Key)
	if err != nil {
		r.errorf("slide %d: placeholder %q: %v", slideNo, entry.Key, err)
	}
	if ordinal < 0 {
		r.errorf("slide %d: placeholder %q: negative ordinal", slideNo, entry.Key)
	}

	phType, known := plan.LookupPlaceholderType(base)
	if !known {
		r.warnf("slide %d: unknown placeholder type %q", slideNo, base)
		return
	}

	switch {
	case base == "chart":
		if entry.Value.Kind != config.KindObject {
			r.errorf("slide %d: chart content must be an object", slideNo)
			return
		}
		if _, ok := entry.Value.Lookup("type"); !ok {
			r.errorf("slide %d: chart content must have %q", slideNo, "type")
		}
		if _, ok := entry.Value.Lookup("data"); !ok {
			r.errorf("slide %d: chart content must have %q", slideNo, "data")
		}
	case base == "table":
		if entry.Value.Kind != config.KindObject {
			r.errorf("slide %d: table content must be an object", slideNo)
			return
		}
		if _, ok := entry.Value.Lookup("headers"); !ok {
			r.errorf("slide %d: table content must have %q", slideNo, "headers")
		}
		if _, ok := entry.Value.Lookup("rows"); !ok {
			r.errorf("slide %d: table content must have %q", slideNo, "rows")
		}
	case phType.Image():
		if _, ok := entry.Value.AsString(); !ok {
			r.errorf("slide %d: image placeholder %q must have a string path", slideNo, entry.Key)
		}
	default:
		if !entry.Value.Scalar() {
			r.errorf("slide %d: placeholder %q expects text content", slideNo, entry.Key)
		}
	}
}

// TemplateDescription checks the analyzer output's structure.
func TemplateDescription(td *config.TemplateDescription) Report {
	var r Report
	if td == nil || td.Layouts == nil {
		r.errorf("template description is missing the %q key", "layouts")
		return r
	}
	if td.TemplateInfo.Name == "" {
		r.warnf("template_info is missing %q", "name")
	}
	if len(td.Layouts) == 0 {
		r.errorf("template description has no layouts")
	}
	for i, layout := range td.Layouts {
		if layout.Index <= 0 {
			r.errorf("layout %d: missing or non-positive index", i)
		}
		if strings.TrimSpace(layout.Name) == "" {
			r.errorf("layout %d: missing name", i)
		}
		for j, ph := range layout.Placeholders {
			if ph.TypeID <= 0 {
				r.warnf("layout %d: placeholder %d missing type_id", i, j)
			}
			if ph.Geometry == (config.Geometry{}) {
				r.warnf("layout %d: placeholder %d missing geometry", i, j)
			}
		}
	}
	return r
}

// Plan checks a decoded plan's structure.
func Plan(p *plan.Plan) Report {
	var r Report
	if p == nil || p.SlidePlan == nil {
		r.errorf("plan is missing the %q key", "slide_plan")
		return r
	}
	for _, slide := range p.SlidePlan {
		if slide.SlideNumber <= 0 {
			r.errorf("plan slide has non-positive slide_number")
		}
		if slide.Layout.Index <= 0 {
			r.errorf("slide %d: layout index must be a positive integer", slide.SlideNumber)
		}
		for _, entry := range slide.ContentMap {
			if entry.TypeID <= 0 {
				r.errorf("slide %d: content entry missing type_id", slide.SlideNumber)
			}
			switch entry.ContentKind {
			case plan.ContentText, plan.ContentChart, plan.ContentTable:
			default:
				r.errorf("slide %d: unknown content_kind %q", slide.SlideNumber, entry.ContentKind)
			}
		}
	}
	return r
}

// requiredHelpers are runtime functions every generated script must carry.
var requiredHelpers = []string{
	"ResolveLayout",
	"FindPlaceholder",
	"SafeSetText",
	"LogIssue",
	"ReportRunLog",
}

// Script checks a generated script for the critical markers: the entry
// procedure, use of the active presentation only, and the runtime helpers.
func Script(src []byte) Report {
	var r Report
	text := string(src)

	if !strings.Contains(text, "Sub Main()") {
		r.errorf("missing %q entry procedure", "Sub Main()")
	}
	if !strings.Contains(text, "Application.ActivePresentation") {
		r.errorf("script does not use ActivePresentation")
	}
	if strings.Contains(text, "Presentations.Add") {
		r.errorf("script creates a new presentation instead of using the active one")
	}
	for _, helper := range requiredHelpers {
		if !strings.Contains(text, helper) {
			r.warnf("missing runtime helper %s", helper)
		}
	}
	if strings.Contains(text, "#If Mac Then") {
		r.infof("script includes macOS compatibility")
	}
	if strings.Contains(text, "On Error") {
		r.infof("script includes error handling")
	}
	return r
}

// Placeholders is the opt-in build-time existence check: it warns when an
// outline references a (type, ordinal) the analyzed layout does not have.
// Warnings only: the analysis may be stale, and the emitted runtime performs
// the authoritative check against the live presentation.
func Placeholders(o *config.Outline, td *config.TemplateDescription) Report {
	var r Report
	if o == nil || td == nil {
		return r
	}

	layouts := make(map[string]config.Layout, len(td.Layouts))
	for _, layout := range td.Layouts {
		layouts[strings.ToLower(strings.TrimSpace(layout.Name))] = layout
	}

	for i, slide := range o.Slides {
		slideNo := i + 1
		layout, ok := layouts[strings.ToLower(strings.TrimSpace(slide.Layout))]
		if !ok {
			continue
		}
		grouped := layout.PlaceholdersByType()
		for _, entry := range slide.Placeholders {
			base, ordinal, err := plan.ParseKey(entry.Key)
			if err != nil || ordinal < 0 {
				continue
			}
			phType, known := plan.LookupPlaceholderType(base)
			if !known || phType.Image() {
				continue
			}
			available := grouped[phType.ID]
			if ordinal >= len(available) {
				r.warnf("slide %d: placeholder %q (type_id=%d, ordinal=%d) not found in analyzed layout %q (available: %d of type %s)",
					slideNo, entry.Key, phType.ID, ordinal, layout.Name, len(available), phType.Name)
			}
		}
	}
	return r
}
