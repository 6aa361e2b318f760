package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateDescription(t *testing.T) {
	doc := `{
  "template_info": {"name": "corp.potx", "slide_master": "Corporate"},
  "layouts": [
    {"index": 1, "name": "Title Slide", "placeholders": [
      {"type_id": 3, "type_name": "CenterTitle", "geometry": {"left": 100, "top": 200, "width": 500, "height": 80}}
    ]}
  ]
}`
	td, err := ParseTemplateDescription([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "corp.potx", td.TemplateInfo.Name)
	require.Len(t, td.Layouts, 1)
	assert.Equal(t, 1, td.Layouts[0].Index)
	require.Len(t, td.Layouts[0].Placeholders, 1)
	assert.Equal(t, 3, td.Layouts[0].Placeholders[0].TypeID)
	assert.Equal(t, 200.0, td.Layouts[0].Placeholders[0].Geometry.Top)
}

func TestParseTemplateDescriptionMissingLayouts(t *testing.T) {
	_, err := ParseTemplateDescription([]byte(`{"template_info": {"name": "x"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"layouts"`)
}

func TestPlaceholdersByTypeOrdering(t *testing.T) {
	layout := Layout{
		Index: 5,
		Name:  "Two Content",
		Placeholders: []LayoutPlaceholder{
			{TypeID: 2, Geometry: Geometry{Left: 400, Top: 120}},
			{TypeID: 2, Geometry: Geometry{Left: 50, Top: 123}},
			{TypeID: 1, Geometry: Geometry{Left: 50, Top: 20}},
			{TypeID: 2, Geometry: Geometry{Left: 50, Top: 400}},
		},
	}

	grouped := layout.PlaceholdersByType()
	require.Len(t, grouped[1], 1)

	// Tops 120 and 123 fall within RowTolerance and count as one row, so the
	// leftmost placeholder gets ordinal 0.
	bodies := grouped[2]
	require.Len(t, bodies, 3)
	assert.Equal(t, 50.0, bodies[0].Geometry.Left)
	assert.Equal(t, 123.0, bodies[0].Geometry.Top)
	assert.Equal(t, 400.0, bodies[1].Geometry.Left)
	assert.Equal(t, 400.0, bodies[2].Geometry.Top)
}
