package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOutlineDoc = `
slides:
  - layout: Title Slide
    placeholders:
      CenterTitle: Hello
`

const testTemplateDoc = `{
  "template_info": {"name": "corp.potx"},
  "layouts": [
    {"index": 58, "name": "Title Slide", "placeholders": [
      {"type_id": 3, "geometry": {"left": 100, "top": 200, "width": 500, "height": 80}}
    ]}
  ]
}`

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	outlinePath := filepath.Join(dir, "outline.yaml")
	templatePath := filepath.Join(dir, "template.json")
	require.NoError(t, os.WriteFile(outlinePath, []byte(testOutlineDoc), 0o644))
	require.NoError(t, os.WriteFile(templatePath, []byte(testTemplateDoc), 0o644))
	return outlinePath, templatePath
}

func TestExecuteBuild(t *testing.T) {
	outlinePath, templatePath := writeInputs(t)
	outDir := filepath.Join(t.TempDir(), "out")

	err := Execute([]string{
		"build",
		"--outline", outlinePath,
		"--template", templatePath,
		"--output-dir", outDir,
	}, nil)
	require.NoError(t, err)

	planJSON, err := os.ReadFile(filepath.Join(outDir, "plan.json"))
	require.NoError(t, err)
	assert.Contains(t, string(planJSON), `"slide_plan"`)

	script, err := os.ReadFile(filepath.Join(outDir, "script.vba"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "Sub Main()")
}

func TestExecutePlanThenGenerate(t *testing.T) {
	outlinePath, templatePath := writeInputs(t)
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.json")
	scriptPath := filepath.Join(dir, "slides.bas")

	err := Execute([]string{
		"plan",
		"--outline", outlinePath,
		"--template", templatePath,
		"-o", planPath,
	}, nil)
	require.NoError(t, err)

	err = Execute([]string{
		"generate",
		"--plan", planPath,
		"-o", scriptPath,
	}, nil)
	require.NoError(t, err)

	script, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	assert.Contains(t, string(script), "corp.potx")
}

func TestExecuteValidate(t *testing.T) {
	outlinePath, templatePath := writeInputs(t)

	err := Execute([]string{
		"validate",
		"--outline", outlinePath,
		"--template", templatePath,
		"--check-placeholders",
	}, nil)
	require.NoError(t, err)
}

func TestExecuteValidateNothing(t *testing.T) {
	err := Execute([]string{"validate"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to validate")
}

func TestExecuteBuildMissingInputs(t *testing.T) {
	err := Execute([]string{"build"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--outline")
}
