// Package validation evaluates compiled design rules against an extracted presentation.
package validation

import "github.com/AndrewHeinke/deck-design-detective/internal/types"

// Checker evaluates one kind of design rule against a single slide.
// Implementations hold no mutable state.
type Checker interface {
	RuleType() types.RuleType
	Check(slide *types.SlideContent, rule types.DesignRule) []types.Violation
}

// Registry maps rule kinds to their checkers.
type Registry struct {
	checkers map[types.RuleType]Checker
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[types.RuleType]Checker)}
}

// Register adds a checker, replacing any previous checker for the same kind.
func (r *Registry) Register(c Checker) {
	r.checkers[c.RuleType()] = c
}

// Get returns the checker for a rule kind, or nil if none is registered.
func (r *Registry) Get(kind types.RuleType) Checker {
	return r.checkers[kind]
}

// DefaultRegistry returns a registry holding every built-in checker.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&allowListChecker{
		kind:  types.RuleColor,
		label: "Text color",
		attr:  "color",
		width: colorPreviewWidth,
		value: func(run types.TextRun) string { return run.Color },
	})
	r.Register(&allowListChecker{
		kind:  types.RuleFontFamily,
		label: "Font family",
		attr:  "font",
		width: colorPreviewWidth,
		value: func(run types.TextRun) string { return run.FontFamily },
	})
	r.Register(fontSizeChecker{})
	r.Register(imageChecker{})
	r.Register(textPresenceChecker{})
	r.Register(customChecker{})
	return r
}
