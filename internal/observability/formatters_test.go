package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

func TestPrintPresentation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPresentation(&types.ParsedPresentation{
		Slides: []types.SlideContent{
			{SlideNumber: 1, Texts: []types.TextRun{{Content: "Welcome"}}, Images: []types.ImageRef{{Name: "Logo"}}},
			{SlideNumber: 2},
		},
		Theme:    &types.Theme{Fonts: types.ThemeFonts{Major: "Georgia", Minor: "Calibri"}},
		Warnings: []error{errors.New("slide part ppt/slides/slide3.xml skipped")},
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED DECK")
	assert.Contains(t, output, "Slides: 2")
	assert.Contains(t, output, "Georgia / Calibri")
	assert.Contains(t, output, "#1  1 text runs, 1 images, 0 shapes")
	assert.Contains(t, output, `"Welcome"`)
	assert.Contains(t, output, "1 parts skipped")
}

func TestPrintPresentation_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintPresentation(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRules(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRules([]types.DesignRule{
		{ID: "rule-1", Description: "font size minimum is 36", Type: types.RuleFontSize},
		{ID: "rule-2", Description: "be concise", Type: types.RuleCustom},
	})
	output := buf.String()

	assert.Contains(t, output, "DESIGN RULES")
	assert.Contains(t, output, "Total rules: 2")
	assert.Contains(t, output, "rule-1  [font-size]")
	assert.Contains(t, output, "be concise")
}

func TestPrintRules_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRules(nil)
	assert.Empty(t, buf.String())
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rule := types.DesignRule{ID: "rule-1", Type: types.RuleText, Description: "text is required"}
	p.PrintReport(&types.Report{
		Deck:    "q3.pptx",
		Slides:  3,
		Rules:   []types.DesignRule{rule},
		Summary: types.Summary{Total: 1, Warnings: 1},
		Violations: []types.Violation{
			{Slide: 2, Rule: rule, Description: "Slide has no text content", Severity: types.SeverityWarning},
		},
		Warnings: []string{"a", "b", "c", "d", "e", "f"},
	})
	output := buf.String()

	assert.Contains(t, output, "DECK REVIEW")
	assert.Contains(t, output, "q3.pptx")
	assert.Contains(t, output, "Warnings:   1")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "DESIGN VIOLATIONS")
	assert.Contains(t, output, "⚠ slide 2  rule-1 (text)")
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations([]types.Violation{
		{
			Slide:       1,
			Rule:        types.DesignRule{ID: "rule-2", Type: types.RuleImage},
			Description: "Images are not allowed on this slide (found 2)",
			Elements:    []string{"Logo", "Hero"},
			Severity:    types.SeverityError,
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Found 1 violations")
	assert.Contains(t, output, "✖ slide 1  rule-2 (image)")
	assert.Contains(t, output, "- Logo")
	assert.Contains(t, output, "- Hero")
}

func TestPrintViolations_None(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations(nil)
	assert.Contains(t, buf.String(), "NO VIOLATIONS FOUND")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("ü", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
