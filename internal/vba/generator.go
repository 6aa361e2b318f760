// Package vba turns a resolved plan into a self-contained VBA script with an
// embedded runtime, runnable by pasting into the host's macro editor.
package vba

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/deckforge/deckctl/internal/plan"
)

// EntryProcedure is the name of the generated script's entry subroutine.
const EntryProcedure = "Main"

//go:embed templates/*.vba.tmpl
var builtinTemplates embed.FS

// Generator emits the target script for a plan. Generation is a pure string
// build: the same plan always yields byte-identical output.
type Generator struct {
	plan *plan.Plan
}

// NewGenerator constructs a Generator for the given plan.
func NewGenerator(p *plan.Plan) *Generator {
	return &Generator{plan: p}
}

// runtimeContext is the template context for the static runtime section.
type runtimeContext struct {
	// TemplateName is the analyzed template's name, shown in the header.
	TemplateName string
}

// Generate renders the complete script: header and constants, the static
// embedded runtime, the entry procedure, and a layout validation helper.
func (g *Generator) Generate() ([]byte, error) {
	if g.plan == nil {
		return nil, fmt.Errorf("generate script: plan is nil")
	}

	runtime, err := renderRuntime(runtimeContext{TemplateName: g.plan.TemplateInfo.TemplateName})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.Write(runtime)
	if err := g.writeMainSub(&b); err != nil {
		return nil, err
	}
	g.writeValidateSub(&b)
	return []byte(b.String()), nil
}

// renderRuntime renders the embedded runtime template.
func renderRuntime(ctx runtimeContext) ([]byte, error) {
	raw, err := builtinTemplates.ReadFile("templates/runtime.vba.tmpl")
	if err != nil {
		return nil, fmt.Errorf("load runtime template: %w", err)
	}
	tmpl, err := template.New("runtime").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse runtime template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("render runtime template: %w", err)
	}
	return buf.Bytes(), nil
}

// writeMainSub emits the entry procedure: environment check, layout cache
// warm-up, then sequential slide construction. Individual fill failures are
// logged into the run log and never abort the run.
func (g *Generator) writeMainSub(b *strings.Builder) error {
	b.WriteString("\n' ================================================================\n")
	b.WriteString("' ENTRY PROCEDURE\n")
	b.WriteString("' ================================================================\n\n")
	fmt.Fprintf(b, "Sub %s()\n", EntryProcedure)
	b.WriteString("    If Application.Presentations.Count = 0 Then\n")
	b.WriteString("        MsgBox \"ActivePresentationMissing: open the target presentation before running this script.\", vbExclamation, \"Slide Builder\"\n")
	b.WriteString("        Exit Sub\n")
	b.WriteString("    End If\n\n")
	b.WriteString("    Dim runLog As New Collection\n")
	b.WriteString("    Dim layoutCache As New Collection\n")
	b.WriteString("    Dim currentSlide As Slide\n")
	b.WriteString("    Dim shp As Shape\n")
	b.WriteString("    Dim cl As CustomLayout\n")
	b.WriteString("    Dim layoutIndex As Variant\n\n")

	b.WriteString("    ' Resolve every referenced layout up front; a missing layout is fatal\n")
	b.WriteString("    ' because no slide can be created from it.\n")
	fmt.Fprintf(b, "    For Each layoutIndex In Array(%s)\n", joinInts(g.plan.LayoutIndices()))
	b.WriteString("        If Not CacheHas(layoutCache, CLng(layoutIndex)) Then\n")
	b.WriteString("            Set cl = ResolveLayout(CLng(layoutIndex))\n")
	b.WriteString("            If cl Is Nothing Then\n")
	b.WriteString("                MsgBox \"LayoutResolveFailed: layout index \" & layoutIndex & \" not found in the open presentation. Check that the correct template is open.\", vbCritical, \"Slide Builder\"\n")
	b.WriteString("                Exit Sub\n")
	b.WriteString("            End If\n")
	b.WriteString("            CachePut layoutCache, CLng(layoutIndex), cl\n")
	b.WriteString("        End If\n")
	b.WriteString("    Next layoutIndex\n\n")

	for _, slide := range g.plan.SlidePlan {
		if err := writeSlide(b, slide); err != nil {
			return err
		}
	}

	fmt.Fprintf(b, "    ReportRunLog runLog, %d\n", len(g.plan.SlidePlan))
	b.WriteString("End Sub\n")
	return nil
}

// writeSlide emits creation and fills for one slide.
func writeSlide(b *strings.Builder, s plan.SlidePlan) error {
	fmt.Fprintf(b, "    ' ---- Slide %d: %s ----\n", s.SlideNumber, commentText(s.SlideTitle))
	fmt.Fprintf(b, "    Set currentSlide = AddSlideWithLayout(CacheGet(layoutCache, %d))\n\n", s.Layout.Index)

	for _, entry := range s.ContentMap {
		fmt.Fprintf(b, "    ' %s placeholder (ordinal %d)\n", entry.Type, entry.Ordinal)
		fmt.Fprintf(b, "    Set shp = FindPlaceholder(currentSlide, %d, %d)\n", entry.TypeID, entry.Ordinal)
		b.WriteString("    If shp Is Nothing Then\n")
		fmt.Fprintf(b, "        LogIssue runLog, \"MissingPlaceholder\", \"Slide %d: type %s (type_id=%d), ordinal %d\"\n",
			s.SlideNumber, entry.Type, entry.TypeID, entry.Ordinal)
		b.WriteString("    Else\n")

		switch entry.ContentKind {
		case plan.ContentText:
			text, ok := entry.ContentData.AsString()
			if !ok {
				return fmt.Errorf("slide %d: text entry for %s has a non-string payload", s.SlideNumber, entry.Type)
			}
			fmt.Fprintf(b, "        SafeSetText shp, \"%s\"\n", escapeVBA(text))
		case plan.ContentChart:
			payload, err := entry.ContentData.JSON()
			if err != nil {
				return fmt.Errorf("slide %d: encode chart payload: %w", s.SlideNumber, err)
			}
			fmt.Fprintf(b, "        BuildChart runLog, currentSlide, shp, %d, \"%s\"\n", s.SlideNumber, escapeVBA(payload))
		case plan.ContentTable:
			payload, err := entry.ContentData.JSON()
			if err != nil {
				return fmt.Errorf("slide %d: encode table payload: %w", s.SlideNumber, err)
			}
			fmt.Fprintf(b, "        BuildTable runLog, currentSlide, shp, %d, \"%s\"\n", s.SlideNumber, escapeVBA(payload))
		default:
			return fmt.Errorf("slide %d: unknown content kind %q", s.SlideNumber, entry.ContentKind)
		}

		b.WriteString("    End If\n\n")
	}
	return nil
}

// writeValidateSub emits an optional helper that reports whether every
// referenced layout index resolves in the open presentation.
func (g *Generator) writeValidateSub(b *strings.Builder) {
	b.WriteString("\n' ================================================================\n")
	b.WriteString("' TEMPLATE VALIDATION (optional)\n")
	b.WriteString("' ================================================================\n\n")
	b.WriteString("Sub ValidateTemplate()\n")
	b.WriteString("    On Error Resume Next\n")
	b.WriteString("    Dim pres As Presentation\n")
	b.WriteString("    Dim layout As CustomLayout\n")
	b.WriteString("    Dim layoutIndex As Variant\n")
	b.WriteString("    Dim msg As String\n\n")
	b.WriteString("    If Application.Presentations.Count = 0 Then\n")
	b.WriteString("        MsgBox \"ActivePresentationMissing: open the target presentation first.\", vbExclamation, \"Slide Builder\"\n")
	b.WriteString("        Exit Sub\n")
	b.WriteString("    End If\n")
	b.WriteString("    Set pres = Application.ActivePresentation\n\n")
	b.WriteString("    msg = \"Template validation:\" & vbCrLf\n")
	b.WriteString("    msg = msg & \"Presentation: \" & pres.Name & vbCrLf\n")
	b.WriteString("    msg = msg & \"Platform: \" & PLATFORM & vbCrLf & vbCrLf\n")
	fmt.Fprintf(b, "    For Each layoutIndex In Array(%s)\n", joinInts(g.plan.LayoutIndices()))
	b.WriteString("        Set layout = ResolveLayout(CLng(layoutIndex))\n")
	b.WriteString("        If layout Is Nothing Then\n")
	b.WriteString("            msg = msg & \"MISSING layout index \" & layoutIndex & vbCrLf\n")
	b.WriteString("        Else\n")
	b.WriteString("            msg = msg & \"found layout index \" & layoutIndex & \": \" & layout.Name & vbCrLf\n")
	b.WriteString("        End If\n")
	b.WriteString("    Next layoutIndex\n\n")
	b.WriteString("    MsgBox msg, vbInformation, \"Slide Builder\"\n")
	b.WriteString("    On Error GoTo 0\n")
	b.WriteString("End Sub\n")
}

// joinInts renders layout indices as a VBA argument list.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}

// commentText flattens a string onto one line for use inside a VBA comment.
func commentText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
