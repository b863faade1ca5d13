// Package rules compiles free-text design guidelines into typed design rules.
package rules

import "fmt"

// SourceError represents a rule document that could not be read or parsed
type SourceError struct {
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rule source error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rule source error: %s", e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}
