// Package observability provides formatted console output for review results.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted console output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n > width {
		return string([]rune(s)[:width-3]) + "..."
	} else if n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintPresentation outputs a per-slide summary of an extracted deck.
func (p *Printer) PrintPresentation(presentation *types.ParsedPresentation) {
	if presentation == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Slides: %d\n", len(presentation.Slides)))
	if presentation.Theme != nil {
		sb.WriteString(fmt.Sprintf("Theme fonts: %s / %s\n", presentation.Theme.Fonts.Major, presentation.Theme.Fonts.Minor))
	}
	sb.WriteString("\n")

	for _, s := range presentation.Slides {
		sb.WriteString(fmt.Sprintf("#%d  %d text runs, %d images, %d shapes\n",
			s.SlideNumber, len(s.Texts), len(s.Images), len(s.Shapes)))
		if len(s.Texts) > 0 {
			sb.WriteString(fmt.Sprintf("    %q\n", s.Texts[0].Content))
		}
	}

	if len(presentation.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("\n%d parts skipped\n", len(presentation.Warnings)))
	}

	p.printBox("EXTRACTED DECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRules outputs the compiled design rules.
func (p *Printer) PrintRules(rules []types.DesignRule) {
	if len(rules) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total rules: %d\n\n", len(rules)))
	for _, r := range rules {
		sb.WriteString(fmt.Sprintf("%s  [%s]\n", r.ID, r.Type))
		sb.WriteString(fmt.Sprintf("    %s\n", r.Description))
	}

	p.printBox("DESIGN RULES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the summary of a review followed by its violations.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if report.Deck != "" {
		sb.WriteString(fmt.Sprintf("Deck:       %s\n", report.Deck))
	}
	sb.WriteString(fmt.Sprintf("Slides:     %d\n", report.Slides))
	sb.WriteString(fmt.Sprintf("Rules:      %d\n", len(report.Rules)))
	sb.WriteString(fmt.Sprintf("Errors:     %d\n", report.Summary.Errors))
	sb.WriteString(fmt.Sprintf("Warnings:   %d", report.Summary.Warnings))

	if len(report.Warnings) > 0 {
		sb.WriteString("\n\nSkipped parts:\n")
		count := min(len(report.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.Warnings[i]))
		}
		if len(report.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Warnings)-maxItemsToShow))
		}
	}

	p.printBox("DECK REVIEW", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintViolations(report.Violations)
}

// PrintViolations outputs any design rule violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations []types.Violation) {
	if len(violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO VIOLATIONS FOUND", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations)))

	for i, v := range violations {
		marker := "✖"
		if v.Severity == types.SeverityWarning {
			marker = "⚠"
		}
		sb.WriteString(fmt.Sprintf("%s slide %d  %s (%s)\n", marker, v.Slide, v.Rule.ID, v.Rule.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", v.Description))
		for _, e := range v.Elements {
			sb.WriteString(fmt.Sprintf("    - %s\n", e))
		}
		if i < len(violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DESIGN VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
