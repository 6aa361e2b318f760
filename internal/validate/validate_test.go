package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckctl/internal/config"
	"github.com/deckforge/deckctl/internal/plan"
	"github.com/deckforge/deckctl/internal/vba"
)

func parseOutline(t *testing.T, doc string) *config.Outline {
	t.Helper()
	outline, err := config.ParseOutline([]byte(doc))
	require.NoError(t, err)
	return outline
}

func parseTemplate(t *testing.T, doc string) *config.TemplateDescription {
	t.Helper()
	td, err := config.ParseTemplateDescription([]byte(doc))
	require.NoError(t, err)
	return td
}

func TestOutlineValid(t *testing.T) {
	outline := parseOutline(t, `
slides:
  - layout: Title Slide
    placeholders:
      Title: Hello
      Chart:
        type: column
        data: {categories: [A], series: []}
      Table:
        headers: [H]
        rows: [[1]]
`)
	report := Outline(outline)
	assert.True(t, report.Valid())
	assert.Empty(t, report.Warnings)
}

func TestOutlineFindings(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		errText string
	}{
		{
			name:    "missing layout",
			doc:     "slides:\n  - placeholders:\n      Title: x\n",
			errText: "missing layout name",
		},
		{
			name:    "chart without data",
			doc:     "slides:\n  - layout: L\n    placeholders:\n      Chart: {type: column}\n",
			errText: `chart content must have "data"`,
		},
		{
			name:    "table without rows",
			doc:     "slides:\n  - layout: L\n    placeholders:\n      Table: {headers: [A]}\n",
			errText: `table content must have "rows"`,
		},
		{
			name:    "structured text",
			doc:     "slides:\n  - layout: L\n    placeholders:\n      Body: {nested: x}\n",
			errText: "expects text content",
		},
		{
			name:    "non-string image path",
			doc:     "slides:\n  - layout: L\n    placeholders:\n      Picture: {path: x}\n",
			errText: "string path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Outline(parseOutline(t, tt.doc))
			require.False(t, report.Valid())
			assert.Contains(t, report.Errors[0], tt.errText)
		})
	}
}

func TestOutlineNoSlides(t *testing.T) {
	report := Outline(&config.Outline{Slides: []config.OutlineSlide{}})
	require.False(t, report.Valid())
	assert.Contains(t, report.Errors[0], "no slides")

	report = Outline(nil)
	assert.False(t, report.Valid())
}

func TestOutlineUnknownTypeWarns(t *testing.T) {
	outline := parseOutline(t, "slides:\n  - layout: L\n    placeholders:\n      Hologram: x\n")
	report := Outline(outline)
	assert.True(t, report.Valid())
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "hologram")
}

func TestTemplateDescriptionFindings(t *testing.T) {
	td := parseTemplate(t, `{
  "template_info": {"name": "x"},
  "layouts": [
    {"index": 0, "name": "", "placeholders": [{"type_id": 0, "geometry": {}}]}
  ]
}`)
	report := TemplateDescription(td)
	require.False(t, report.Valid())
	assert.Len(t, report.Errors, 2)
	assert.Len(t, report.Warnings, 2)

	assert.False(t, TemplateDescription(nil).Valid())
}

func TestPlanFindings(t *testing.T) {
	p := &plan.Plan{SlidePlan: []plan.SlidePlan{
		{
			SlideNumber: 1,
			Layout:      plan.LayoutRef{Index: 5},
			ContentMap: []plan.ContentEntry{
				{TypeID: 2, ContentKind: plan.ContentText},
				{TypeID: 0, ContentKind: "blob"},
			},
		},
	}}

	report := Plan(p)
	require.False(t, report.Valid())
	assert.Len(t, report.Errors, 2)

	assert.False(t, Plan(nil).Valid())
}

func TestScriptOnGeneratedOutput(t *testing.T) {
	p := &plan.Plan{
		TemplateInfo: plan.TemplateInfo{TemplateName: "corp.potx"},
		SlidePlan: []plan.SlidePlan{
			{
				SlideNumber: 1,
				SlideTitle:  "Opening",
				Layout:      plan.LayoutRef{Name: "Title Slide", Index: 1},
				ContentMap: []plan.ContentEntry{
					{Type: "Title", TypeID: 1, Ordinal: 0, ContentKind: plan.ContentText, ContentData: config.String("Hi")},
				},
			},
		},
	}
	script, err := vba.NewGenerator(p).Generate()
	require.NoError(t, err)

	report := Script(script)
	assert.True(t, report.Valid())
	assert.Empty(t, report.Warnings)
	assert.NotEmpty(t, report.Info)
}

func TestScriptFindings(t *testing.T) {
	report := Script([]byte("Sub Other()\nEnd Sub\n"))
	require.False(t, report.Valid())
	assert.Contains(t, report.Errors[0], "Sub Main()")

	report = Script([]byte("Sub Main()\n    Application.Presentations.Add\nEnd Sub\n"))
	require.False(t, report.Valid())
}

func TestPlaceholdersAdvisory(t *testing.T) {
	outline := parseOutline(t, `
slides:
  - layout: Two Content
    placeholders:
      Body: ok
      Body[1]: ok
      Body[2]: one too many
  - layout: Unknown Layout
    placeholders:
      Body[9]: skipped, layout not analyzed
`)
	td := parseTemplate(t, `{
  "layouts": [
    {"index": 5, "name": "Two Content", "placeholders": [
      {"type_id": 2, "geometry": {"left": 50, "top": 100}},
      {"type_id": 2, "geometry": {"left": 370, "top": 100}}
    ]}
  ]
}`)

	report := Placeholders(outline, td)
	assert.True(t, report.Valid())
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "Body[2]")
	assert.Contains(t, report.Warnings[0], "ordinal=2")
}
