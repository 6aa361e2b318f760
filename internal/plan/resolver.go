package plan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/deckforge/deckctl/internal/config"
)

// ErrLayoutResolveFailed marks a layout name with no case-insensitive match
// in the template description. The emitted runtime performs its own check
// under the same code against the live presentation, which may differ from
// the analyzed file.
var ErrLayoutResolveFailed = errors.New("LayoutResolveFailed")

// Resolver fuses an outline with a template description into a Plan. It
// trusts the template description for layout selection only; placeholder
// existence is deliberately left to the emitted runtime, which checks against
// the live presentation rather than a possibly stale analysis.
type Resolver struct {
	outline  *config.Outline
	template *config.TemplateDescription
	layouts  map[string]config.Layout
	warnings []string
}

// NewResolver constructs a Resolver over the given inputs.
func NewResolver(outline *config.Outline, template *config.TemplateDescription) *Resolver {
	return &Resolver{outline: outline, template: template}
}

// Warnings returns non-fatal findings from the last Resolve call.
func (r *Resolver) Warnings() []string {
	return r.warnings
}

// Resolve validates the inputs and produces the Plan. Structural problems
// (missing top-level keys, unresolved layout names, malformed chart or table
// specs) are fatal; a malformed plan cannot safely be compiled.
func (r *Resolver) Resolve() (*Plan, error) {
	r.warnings = nil

	if r.outline == nil || r.outline.Slides == nil {
		return nil, fmt.Errorf("outline is missing required key %q", "slides")
	}
	if r.template == nil || r.template.Layouts == nil {
		return nil, fmt.Errorf("template description is missing required key %q", "layouts")
	}

	r.layouts = make(map[string]config.Layout, len(r.template.Layouts))
	for _, layout := range r.template.Layouts {
		r.layouts[normalizeName(layout.Name)] = layout
	}

	p := &Plan{
		TemplateInfo: TemplateInfo{
			TemplateName: r.template.TemplateInfo.Name,
			AnalysisDate: r.template.TemplateInfo.AnalysisDate,
			TotalLayouts: len(r.template.Layouts),
		},
	}

	for i, slide := range r.outline.Slides {
		slideNo := i + 1
		resolved, err := r.resolveSlide(slide, slideNo)
		if err != nil {
			return nil, err
		}
		p.SlidePlan = append(p.SlidePlan, resolved)
	}

	return p, nil
}

// resolveSlide maps one outline slide onto a layout and builds its content map.
func (r *Resolver) resolveSlide(slide config.OutlineSlide, slideNo int) (SlidePlan, error) {
	layout, ok := r.layouts[normalizeName(slide.Layout)]
	if !ok {
		return SlidePlan{}, fmt.Errorf("slide %d: layout %q not found in template description (available: %s): %w",
			slideNo, slide.Layout, r.availableLayouts(), ErrLayoutResolveFailed)
	}

	resolved := SlidePlan{
		SlideNumber: slideNo,
		Layout:      LayoutRef{Name: layout.Name, Index: layout.Index},
	}

	for _, entry := range slide.Placeholders {
		base, ordinal := r.parseKey(entry.Key, slideNo)

		phType, known := LookupPlaceholderType(base)
		if !known {
			r.warnings = append(r.warnings, fmt.Sprintf("slide %d: unknown placeholder type %q", slideNo, base))
			continue
		}
		if phType.Image() {
			// Image content is an intentional non-goal: dropped without
			// a diagnostic.
			continue
		}

		kind, data, err := r.classifyContent(base, entry.Value)
		if err != nil {
			return SlidePlan{}, fmt.Errorf("slide %d, placeholder %q: %w", slideNo, entry.Key, err)
		}

		resolved.ContentMap = append(resolved.ContentMap, ContentEntry{
			Type:        phType.Name,
			TypeID:      phType.ID,
			Ordinal:     ordinal,
			ContentKind: kind,
			ContentData: data,
		})
	}

	resolved.SlideTitle = r.slideTitle(slide, layout.Name, slideNo)
	return resolved, nil
}

// parseKey splits a placeholder key into its normalized type name and
// ordinal. "Body[1]" yields ("body", 1); bare "Body" yields ("body", 0). An
// unparsable ordinal is reported as a warning and defaults to 0.
func (r *Resolver) parseKey(key string, slideNo int) (string, int) {
	base, ordinal, err := ParseKey(key)
	if err != nil {
		r.warnings = append(r.warnings, fmt.Sprintf("slide %d: placeholder %q: %v, defaulting to 0", slideNo, key, err))
		return base, 0
	}
	return base, ordinal
}

// ParseKey splits a placeholder key into its normalized base name and
// ordinal. "Body[1]" yields ("body", 1, nil); bare "Body" yields ("body", 0,
// nil); an unparsable ordinal yields the base name, 0 and an error.
func ParseKey(key string) (string, int, error) {
	base, ordinalText, bracketed := splitKey(key)
	if !bracketed {
		return base, 0, nil
	}
	ordinal, err := strconv.Atoi(ordinalText)
	if err != nil {
		return base, 0, fmt.Errorf("invalid ordinal %q", ordinalText)
	}
	return base, ordinal, nil
}

// splitKey separates a placeholder key into its normalized base name and the
// raw ordinal text between brackets. The third result reports whether a
// bracket pair was present at all.
func splitKey(key string) (string, string, bool) {
	key = strings.TrimSpace(key)
	open := strings.Index(key, "[")
	if open < 0 || !strings.HasSuffix(key, "]") {
		return normalizeName(key), "", false
	}
	return normalizeName(key[:open]), key[open+1 : len(key)-1], true
}

// classifyContent determines the content kind for a placeholder value and
// returns the canonical payload.
func (r *Resolver) classifyContent(typeName string, value config.Value) (string, config.Value, error) {
	switch typeName {
	case "chart":
		data, err := canonicalChart(value)
		if err != nil {
			return "", config.Value{}, err
		}
		return ContentChart, data, nil
	case "table":
		if value.Kind != config.KindObject {
			return "", config.Value{}, fmt.Errorf("table content must be an object")
		}
		if _, ok := value.Lookup("headers"); !ok {
			return "", config.Value{}, fmt.Errorf("table content must have %q", "headers")
		}
		if _, ok := value.Lookup("rows"); !ok {
			return "", config.Value{}, fmt.Errorf("table content must have %q", "rows")
		}
		return ContentTable, value, nil
	default:
		if !value.Scalar() {
			return "", config.Value{}, fmt.Errorf("expected text content, got a structured value")
		}
		return ContentText, config.String(value.ScalarText()), nil
	}
}

// canonicalChart validates a chart spec and normalizes its alternate key
// spellings: data.x becomes data.categories and per-series values becomes
// data. Other members pass through untouched so the payload stays faithful.
func canonicalChart(value config.Value) (config.Value, error) {
	if value.Kind != config.KindObject {
		return config.Value{}, fmt.Errorf("chart content must be an object")
	}
	if _, ok := value.Lookup("type"); !ok {
		return config.Value{}, fmt.Errorf("chart content must have %q", "type")
	}
	data, ok := value.Lookup("data")
	if !ok {
		return config.Value{}, fmt.Errorf("chart content must have %q", "data")
	}

	data = renameMember(data, "x", "categories")
	if series, ok := data.Lookup("series"); ok && series.Kind == config.KindArray {
		items := series.Items()
		normalized := make([]config.Value, len(items))
		for i, item := range items {
			normalized[i] = renameMember(item, "values", "data")
		}
		data = replaceMember(data, "series", config.Array(normalized...))
	}
	return replaceMember(value, "data", data), nil
}

// renameMember renames an object member when present and no member with the
// new name already exists. Non-object values pass through unchanged.
func renameMember(v config.Value, from, to string) config.Value {
	if v.Kind != config.KindObject {
		return v
	}
	if _, exists := v.Lookup(to); exists {
		return v
	}
	members := v.Members()
	out := make([]config.Member, len(members))
	for i, m := range members {
		if m.Key == from {
			m.Key = to
		}
		out[i] = m
	}
	return config.Object(out...)
}

// replaceMember swaps the value of an existing object member in place.
func replaceMember(v config.Value, key string, value config.Value) config.Value {
	members := v.Members()
	out := make([]config.Member, len(members))
	for i, m := range members {
		if m.Key == key {
			m.Value = value
		}
		out[i] = m
	}
	return config.Object(out...)
}

// slideTitle extracts a readable title for the plan: an explicit Title
// placeholder first, the outline meta title for an opening title slide, then
// a positional fallback.
func (r *Resolver) slideTitle(slide config.OutlineSlide, layoutName string, slideNo int) string {
	for _, entry := range slide.Placeholders {
		base, _, _ := splitKey(entry.Key)
		if base != "title" {
			continue
		}
		if text, ok := entry.Value.AsString(); ok && strings.TrimSpace(text) != "" {
			return text
		}
	}
	if slideNo == 1 && strings.Contains(normalizeName(layoutName), "title") && r.outline.Meta.Title != "" {
		return r.outline.Meta.Title
	}
	return fmt.Sprintf("Slide %d", slideNo)
}

// availableLayouts lists up to ten layout names for error messages, in
// template order.
func (r *Resolver) availableLayouts() string {
	var names []string
	for _, layout := range r.template.Layouts {
		names = append(names, layout.Name)
		if len(names) == 10 {
			break
		}
	}
	return strings.Join(names, ", ")
}

// normalizeName lowercases and trims a name for case-insensitive matching.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
