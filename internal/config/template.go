package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RowTolerance is the distance in points within which two placeholder top
// coordinates count as the same row when deriving ordinals. The emitted
// runtime uses the same tolerance so plan-time and run-time ordinals agree.
const RowTolerance = 5.0

// TemplateDescription is the structural survey of a presentation template,
// produced by an external analyzer and consumed read-only.
type TemplateDescription struct {
	// TemplateInfo identifies the analyzed template.
	TemplateInfo TemplateInfo `yaml:"template_info"`
	// Layouts lists the template layouts in master order.
	Layouts []Layout `yaml:"layouts"`
	// Statistics carries analyzer counters, informational only.
	Statistics map[string]any `yaml:"statistics,omitempty"`
	// ValidationNotes carries analyzer remarks, informational only.
	ValidationNotes []string `yaml:"validation_notes,omitempty"`
}

// TemplateInfo identifies the analyzed template file.
type TemplateInfo struct {
	// Name is the template file name.
	Name string `yaml:"name"`
	// SlideMaster is the primary slide master name.
	SlideMaster string `yaml:"slide_master,omitempty"`
	// AnalysisDate is the analyzer's timestamp, carried through verbatim.
	AnalysisDate string `yaml:"analysis_date,omitempty"`
}

// Layout is one named, indexed slide layout within the template master(s).
type Layout struct {
	// Index is the 1-based position within the master's layout collection.
	Index int `yaml:"index"`
	// Name is the layout name, matched case-insensitively.
	Name string `yaml:"name"`
	// Category is a derived classification, informational only.
	Category string `yaml:"category,omitempty"`
	// Placeholders lists the typed content regions of the layout.
	Placeholders []LayoutPlaceholder `yaml:"placeholders"`
}

// LayoutPlaceholder is a typed content region on a layout.
type LayoutPlaceholder struct {
	// TypeID is the placeholder type enumeration value.
	TypeID int `yaml:"type_id"`
	// TypeName is the analyzer's name for the type.
	TypeName string `yaml:"type_name,omitempty"`
	// Geometry is the placeholder's position and size in points.
	Geometry Geometry `yaml:"geometry"`
}

// Geometry is a placeholder bounding box in points.
type Geometry struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlaceholdersByType groups the layout's placeholders by type id, each group
// sorted by position: top ascending with RowTolerance, then left ascending.
// The slice index of each placeholder within its group is its ordinal.
func (l Layout) PlaceholdersByType() map[int][]LayoutPlaceholder {
	grouped := make(map[int][]LayoutPlaceholder)
	for _, ph := range l.Placeholders {
		grouped[ph.TypeID] = append(grouped[ph.TypeID], ph)
	}
	for _, phs := range grouped {
		sort.SliceStable(phs, func(i, j int) bool {
			a, b := phs[i].Geometry, phs[j].Geometry
			if a.Top < b.Top-RowTolerance {
				return true
			}
			if b.Top < a.Top-RowTolerance {
				return false
			}
			return a.Left < b.Left
		})
	}
	return grouped
}

// LoadTemplateDescription reads and parses a template description from disk.
func LoadTemplateDescription(path string) (*TemplateDescription, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template description %q: %w", path, err)
	}
	td, err := ParseTemplateDescription(raw)
	if err != nil {
		return nil, fmt.Errorf("parse template description %q: %w", path, err)
	}
	return td, nil
}

// ParseTemplateDescription parses a template description from raw JSON or
// YAML bytes, requiring the "layouts" key.
func ParseTemplateDescription(raw []byte) (*TemplateDescription, error) {
	var td TemplateDescription
	if err := yaml.Unmarshal(raw, &td); err != nil {
		return nil, err
	}
	if td.Layouts == nil {
		return nil, fmt.Errorf("template description is missing required key %q", "layouts")
	}
	return &td, nil
}
