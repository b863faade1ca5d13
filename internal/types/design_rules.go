// Package types provides type definitions for structured data used throughout the deck-design-detective system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RuleType is the discriminated kind of a DesignRule
type RuleType string

// Rule kinds recognized by the rule compiler
const (
	RuleColor      RuleType = "color"
	RuleFontSize   RuleType = "font-size"
	RuleFontFamily RuleType = "font-family"
	RuleImage      RuleType = "image"
	RuleText       RuleType = "text"
	RuleCustom     RuleType = "custom"

	// RuleSlideType is reserved; the compiler never produces it.
	RuleSlideType RuleType = "slide-type"
)

// Slide scope tags used in RuleParameters.SlideTypes
const (
	ScopeTitle   = "title"
	ScopeContent = "content"
	ScopeAll     = "all"
)

// DesignRule is a rule compiled from free text. Type decides which
// Parameters fields are meaningful; the others are ignored.
type DesignRule struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Type        RuleType       `json:"type"`
	Parameters  RuleParameters `json:"parameters"`
}

// RuleParameters is the kind-dependent parameter bag of a DesignRule
type RuleParameters struct {
	AllowedValues []string `json:"allowed_values,omitempty"`
	MinValue      *float64 `json:"min_value,omitempty"` // points
	MaxValue      *float64 `json:"max_value,omitempty"` // points
	Forbidden     []string `json:"forbidden,omitempty"`
	SlideTypes    []string `json:"slide_types,omitempty"`
}
