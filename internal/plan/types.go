// Package plan resolves outline content onto template layout coordinates and
// defines the intermediate representation consumed by the script generator.
package plan

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/deckforge/deckctl/internal/config"
)

// Content kinds carried by plan entries.
const (
	ContentText  = "text"
	ContentChart = "chart"
	ContentTable = "table"
)

// PlaceholderType pairs a placeholder type id with its canonical name.
type PlaceholderType struct {
	// ID is the host placeholder type enumeration value.
	ID int
	// Name is the canonical type name used in plan entries.
	Name string
}

// Image reports whether the type denotes image content, which is always
// dropped at plan time.
func (t PlaceholderType) Image() bool {
	return t.ID == typeIDSlideImage || t.ID == typeIDPicture
}

const (
	typeIDSlideImage = 13
	typeIDPicture    = 18
)

// placeholderTypes maps normalized (lowercase) outline key names to the host
// placeholder type enumeration.
var placeholderTypes = map[string]PlaceholderType{
	"title":       {1, "Title"},
	"body":        {2, "Body"},
	"centertitle": {3, "CenterTitle"},
	"subtitle":    {4, "Subtitle"},
	"object":      {7, "Object"},
	"chart":       {8, "Chart"},
	"table":       {9, "Table"},
	"slideimage":  {typeIDSlideImage, "SlideImage"},
	"picture":     {typeIDPicture, "Picture"},
	"content":     {19, "Content"},
}

// LookupPlaceholderType resolves a normalized placeholder type name.
func LookupPlaceholderType(name string) (PlaceholderType, bool) {
	t, ok := placeholderTypes[name]
	return t, ok
}

// Plan is the compiler's intermediate representation: one entry per outline
// slide with the resolved layout index and an ordered content map. It is a
// pure function of its two inputs and serializes byte-identically across runs.
type Plan struct {
	// TemplateInfo identifies the template description the plan was resolved
	// against.
	TemplateInfo TemplateInfo `json:"template_info"`
	// SlidePlan lists resolved slides in outline order.
	SlidePlan []SlidePlan `json:"slide_plan"`
}

// TemplateInfo summarizes the template description used for resolution.
type TemplateInfo struct {
	// TemplateName is the analyzed template's name.
	TemplateName string `json:"template_name"`
	// AnalysisDate is the analyzer timestamp, carried through verbatim.
	AnalysisDate string `json:"analysis_date,omitempty"`
	// TotalLayouts is the number of layouts in the template description.
	TotalLayouts int `json:"total_layouts"`
}

// SlidePlan is the resolved plan for a single slide.
type SlidePlan struct {
	// SlideNumber is the 1-based position of the slide.
	SlideNumber int `json:"slide_number"`
	// SlideTitle is a human-readable slide title for plan review.
	SlideTitle string `json:"slide_title"`
	// Layout is the resolved layout reference.
	Layout LayoutRef `json:"layout"`
	// ContentMap lists the slide's fills in outline entry order.
	ContentMap []ContentEntry `json:"content_map"`
}

// LayoutRef names a resolved layout and its index within the template master.
type LayoutRef struct {
	// Name is the layout name as it appears in the template description.
	Name string `json:"name"`
	// Index is the 1-based layout index within the master's collection.
	Index int `json:"index"`
}

// ContentEntry is one placeholder fill: where it goes and what goes in.
type ContentEntry struct {
	// Type is the canonical placeholder type name.
	Type string `json:"type"`
	// TypeID is the host placeholder type enumeration value.
	TypeID int `json:"type_id"`
	// Ordinal is the 0-based rank among same-type placeholders.
	Ordinal int `json:"ordinal"`
	// ContentKind is one of ContentText, ContentChart or ContentTable.
	ContentKind string `json:"content_kind"`
	// ContentData is the content payload: a string for text, a canonical
	// spec object for charts and tables.
	ContentData config.Value `json:"content_data"`
}

// Encode serializes the plan as stable, diffable JSON.
func (p *Plan) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return append(out, '\n'), nil
}

// Decode parses a plan previously produced by Encode.
func Decode(raw []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &p, nil
}

// LayoutIndices returns the distinct layout indices referenced by the plan,
// in ascending order.
func (p *Plan) LayoutIndices() []int {
	seen := make(map[int]bool)
	var out []int
	for _, s := range p.SlidePlan {
		if !seen[s.Layout.Index] {
			seen[s.Layout.Index] = true
			out = append(out, s.Layout.Index)
		}
	}
	sort.Ints(out)
	return out
}
