// Package types provides type definitions for structured data used throughout the deck-design-detective system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Violation severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation represents a single design rule failure on a slide
type Violation struct {
	Slide       int        `json:"slide"`
	Rule        DesignRule `json:"rule"`
	Description string     `json:"description"`
	Elements    []string   `json:"elements"`
	Severity    string     `json:"severity"`
}

// Summary holds aggregate counts of violations
type Summary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Summarize counts violations by severity
func Summarize(violations []Violation) Summary {
	s := Summary{Total: len(violations)}
	for _, v := range violations {
		if v.Severity == SeverityWarning {
			s.Warnings++
		} else {
			s.Errors++
		}
	}
	return s
}

// Report is the artifact produced by a full review of one deck
type Report struct {
	ID          uuid.UUID    `json:"id"`
	Deck        string       `json:"deck,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
	Slides      int          `json:"slides"`
	Rules       []DesignRule `json:"rules"`
	Summary     Summary      `json:"summary"`
	Violations  []Violation  `json:"violations"`
	Warnings    []string     `json:"warnings,omitempty"`
}
