package validation

import (
	"cmp"
	"slices"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

var defaultRegistry = DefaultRegistry()

// Validate evaluates every rule against every slide using the built-in checkers.
// Output is rule-major, slide-minor: all violations of the first rule in
// ascending slide order, then the second rule, and so on.
func Validate(p *types.ParsedPresentation, rules []types.DesignRule) []types.Violation {
	return defaultRegistry.Validate(p, rules)
}

// Validate evaluates rules with the checkers in r. Rules whose kind has no
// registered checker contribute nothing.
func (r *Registry) Validate(p *types.ParsedPresentation, rules []types.DesignRule) []types.Violation {
	violations := []types.Violation{}
	if p == nil || len(rules) == 0 {
		return violations
	}

	slides := slices.Clone(p.Slides)
	slices.SortStableFunc(slides, func(a, b types.SlideContent) int {
		return cmp.Compare(a.SlideNumber, b.SlideNumber)
	})

	for _, rule := range rules {
		checker := r.Get(rule.Type)
		if checker == nil {
			continue
		}
		for i := range slides {
			violations = append(violations, checker.Check(&slides[i], rule)...)
		}
	}

	return violations
}
