// Package pptx extracts a normalized slide model from a presentation package.
package pptx

import "fmt"

// Fatal PackageError messages
const (
	MsgInvalidContainer = "invalid container"
	MsgNoSlides         = "no slides"
)

// PackageError represents a package that cannot be read at all
type PackageError struct {
	Message string
	Cause   error
}

func (e *PackageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("package error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("package error: %s", e.Message)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}

// SlidePartError represents a slide part whose XML could not be parsed.
// The slide is skipped and extraction continues.
type SlidePartError struct {
	Part  string
	Cause error
}

func (e *SlidePartError) Error() string {
	return fmt.Sprintf("slide part %s skipped: %v", e.Part, e.Cause)
}

func (e *SlidePartError) Unwrap() error {
	return e.Cause
}

// ThemeParseError represents a theme part that could not be parsed.
// The theme is omitted from the result.
type ThemeParseError struct {
	Part  string
	Cause error
}

func (e *ThemeParseError) Error() string {
	return fmt.Sprintf("theme part %s ignored: %v", e.Part, e.Cause)
}

func (e *ThemeParseError) Unwrap() error {
	return e.Cause
}
