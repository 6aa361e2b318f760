package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckctl/internal/config"
	"github.com/deckforge/deckctl/internal/plan"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testInputs(t *testing.T) (*config.Outline, *config.TemplateDescription) {
	t.Helper()
	outline, err := config.ParseOutline([]byte(`
meta:
  title: Annual Report
slides:
  - layout: Title Slide
    placeholders:
      CenterTitle: Annual Report
      Subtitle: FY2024
  - layout: Chart Layout
    placeholders:
      Title: Revenue
      Chart:
        type: column
        data:
          x: [Q1, Q2]
          series:
            - name: Revenue
              values: [10, 20]
`))
	require.NoError(t, err)

	td, err := config.ParseTemplateDescription([]byte(`{
  "template_info": {"name": "corp.potx"},
  "layouts": [
    {"index": 58, "name": "Title Slide", "placeholders": [
      {"type_id": 3, "geometry": {"left": 100, "top": 200, "width": 500, "height": 80}},
      {"type_id": 4, "geometry": {"left": 100, "top": 300, "width": 500, "height": 40}}
    ]},
    {"index": 30, "name": "Chart Layout", "placeholders": [
      {"type_id": 1, "geometry": {"left": 50, "top": 20, "width": 600, "height": 60}},
      {"type_id": 8, "geometry": {"left": 50, "top": 120, "width": 600, "height": 320}}
    ]}
  ]
}`))
	require.NoError(t, err)
	return outline, td
}

func TestBuildPipeline(t *testing.T) {
	outline, td := testInputs(t)
	eng := NewEngine(testLogger())

	result, err := eng.Build(outline, td, Options{CheckPlaceholders: true})
	require.NoError(t, err)

	require.Len(t, result.Plan.SlidePlan, 2)
	assert.Contains(t, string(result.PlanJSON), `"template_name": "corp.potx"`)
	assert.Contains(t, string(result.Script), "Sub Main()")
	assert.Contains(t, string(result.Script), "For Each layoutIndex In Array(30, 58)")

	// Chart keys must reach the script in canonical form.
	assert.Contains(t, string(result.Script), `""categories"":[""Q1"",""Q2""]`)
}

func TestBuildDeterministic(t *testing.T) {
	outline, td := testInputs(t)
	eng := NewEngine(testLogger())

	first, err := eng.Build(outline, td, Options{})
	require.NoError(t, err)
	second, err := eng.Build(outline, td, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.PlanJSON, second.PlanJSON)
	assert.Equal(t, first.Script, second.Script)
}

func TestResolvePlanRejectsInvalidOutline(t *testing.T) {
	_, td := testInputs(t)
	eng := NewEngine(testLogger())

	outline := &config.Outline{Slides: []config.OutlineSlide{}}
	_, err := eng.ResolvePlan(outline, td, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outline failed validation")
}

func TestResolvePlanRejectsInvalidTemplate(t *testing.T) {
	outline, _ := testInputs(t)
	eng := NewEngine(testLogger())

	_, err := eng.ResolvePlan(outline, &config.TemplateDescription{Layouts: []config.Layout{}}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template description failed validation")
}

func TestGenerateScriptRoundTripsThroughPlanJSON(t *testing.T) {
	outline, td := testInputs(t)
	eng := NewEngine(testLogger())

	result, err := eng.Build(outline, td, Options{})
	require.NoError(t, err)

	decoded, err := plan.Decode(result.PlanJSON)
	require.NoError(t, err)
	script, err := eng.GenerateScript(decoded, Options{})
	require.NoError(t, err)

	assert.Equal(t, result.Script, script)
}
