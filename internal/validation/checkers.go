package validation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

const (
	colorPreviewWidth = 50
	sizePreviewWidth  = 30
)

// allowListChecker requires a run attribute to match one of the allowed values.
// Matching is a case-insensitive substring test.
type allowListChecker struct {
	kind  types.RuleType
	label string
	attr  string
	width int
	value func(types.TextRun) string
}

func (c *allowListChecker) RuleType() types.RuleType { return c.kind }

func (c *allowListChecker) Check(slide *types.SlideContent, rule types.DesignRule) []types.Violation {
	allowed := normalizeAllowList(rule.Parameters.AllowedValues)
	if len(allowed) == 0 {
		return nil
	}

	var out []types.Violation
	for _, run := range slide.Texts {
		observed := c.value(run)
		if observed == "" || matchesAny(observed, allowed) {
			continue
		}
		out = append(out, types.Violation{
			Slide:       slide.SlideNumber,
			Rule:        rule,
			Description: fmt.Sprintf("%s %q is not in the allowed list: %s", c.label, observed, strings.Join(rule.Parameters.AllowedValues, ", ")),
			Elements:    []string{fmt.Sprintf("%q (%s: %s)", preview(run.Content, c.width), c.attr, observed)},
			Severity:    types.SeverityError,
		})
	}
	return out
}

// fontSizeChecker emits one violation per violated bound, minimum first.
type fontSizeChecker struct{}

func (fontSizeChecker) RuleType() types.RuleType { return types.RuleFontSize }

func (fontSizeChecker) Check(slide *types.SlideContent, rule types.DesignRule) []types.Violation {
	minValue, maxValue := rule.Parameters.MinValue, rule.Parameters.MaxValue
	if minValue == nil && maxValue == nil {
		return nil
	}

	var out []types.Violation
	for _, run := range slide.Texts {
		if run.FontSize == nil {
			continue
		}
		size := *run.FontSize
		element := fmt.Sprintf("%q (size: %spt)", preview(run.Content, sizePreviewWidth), formatPoints(size))

		if minValue != nil && size < *minValue {
			out = append(out, types.Violation{
				Slide:       slide.SlideNumber,
				Rule:        rule,
				Description: fmt.Sprintf("Font size %spt is below the minimum of %spt", formatPoints(size), formatPoints(*minValue)),
				Elements:    []string{element},
				Severity:    types.SeverityError,
			})
		}
		if maxValue != nil && size > *maxValue {
			out = append(out, types.Violation{
				Slide:       slide.SlideNumber,
				Rule:        rule,
				Description: fmt.Sprintf("Font size %spt exceeds the maximum of %spt", formatPoints(size), formatPoints(*maxValue)),
				Elements:    []string{element},
				Severity:    types.SeverityError,
			})
		}
	}
	return out
}

// imageChecker flags slides that carry pictures when a rule forbids them.
type imageChecker struct{}

func (imageChecker) RuleType() types.RuleType { return types.RuleImage }

func (imageChecker) Check(slide *types.SlideContent, rule types.DesignRule) []types.Violation {
	forbidden := rule.Parameters.Forbidden
	if !slices.Contains(forbidden, "all") && !slices.Contains(forbidden, "images") {
		return nil
	}
	if !inScope(slide, rule.Parameters.SlideTypes) || len(slide.Images) == 0 {
		return nil
	}

	names := make([]string, 0, len(slide.Images))
	for _, img := range slide.Images {
		names = append(names, img.Name)
	}
	return []types.Violation{{
		Slide:       slide.SlideNumber,
		Rule:        rule,
		Description: fmt.Sprintf("Images are not allowed on this slide (found %d)", len(names)),
		Elements:    names,
		Severity:    types.SeverityError,
	}}
}

// textPresenceChecker warns about slides without any text when the rule
// states that text is required.
type textPresenceChecker struct{}

func (textPresenceChecker) RuleType() types.RuleType { return types.RuleText }

func (textPresenceChecker) Check(slide *types.SlideContent, rule types.DesignRule) []types.Violation {
	if len(slide.Texts) > 0 || !strings.Contains(strings.ToLower(rule.Description), "required") {
		return nil
	}
	return []types.Violation{{
		Slide:       slide.SlideNumber,
		Rule:        rule,
		Description: "Slide has no text content",
		Elements:    []string{},
		Severity:    types.SeverityWarning,
	}}
}

// customChecker accepts every slide. Free-form rules are recorded in the
// report but have no machine-checkable semantics.
type customChecker struct{}

func (customChecker) RuleType() types.RuleType { return types.RuleCustom }

func (customChecker) Check(*types.SlideContent, types.DesignRule) []types.Violation { return nil }

// inScope reports whether a slide falls under a rule's slide-type scope.
// An empty scope covers every slide; slide 1 is the title slide.
func inScope(slide *types.SlideContent, scopes []string) bool {
	if len(scopes) == 0 || slices.Contains(scopes, types.ScopeAll) {
		return true
	}
	if slide.IsTitle() {
		return slices.Contains(scopes, types.ScopeTitle)
	}
	return slices.Contains(scopes, types.ScopeContent)
}

func normalizeAllowList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func matchesAny(observed string, allowed []string) bool {
	observed = strings.ToLower(observed)
	for _, a := range allowed {
		if strings.Contains(observed, a) {
			return true
		}
	}
	return false
}

// preview truncates s to at most n runes, marking the cut with "..."
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
