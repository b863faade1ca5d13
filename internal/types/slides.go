// Package types provides type definitions for structured data used throughout the deck-design-detective system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ParsedPresentation is the normalized model extracted from a slide-deck package
type ParsedPresentation struct {
	Slides []SlideContent `json:"slides"`
	Theme  *Theme         `json:"theme,omitempty"`

	// Recovered problems (unparsable slide or theme parts). Never fatal.
	Warnings []error `json:"-"`
}

// SlideContent holds everything extracted from a single slide part.
// SlideNumber is 1-based and dense in package order.
type SlideContent struct {
	SlideNumber int         `json:"slide_number"`
	Part        string      `json:"part"`
	Texts       []TextRun   `json:"texts"`
	Images      []ImageRef  `json:"images"`
	Shapes      []ShapeRef  `json:"shapes"`
	Background  *Background `json:"background,omitempty"`
}

// IsTitle reports whether the slide is treated as the title slide
func (s *SlideContent) IsTitle() bool {
	return s.SlideNumber == 1
}

// TextRun is one run of formatted text. Unset formatting stays unset:
// FontSize is nil and FontFamily/Color are empty when the run does not carry them.
type TextRun struct {
	Content    string   `json:"content"`
	FontSize   *float64 `json:"font_size,omitempty"` // points
	FontFamily string   `json:"font_family,omitempty"`
	Color      string   `json:"color,omitempty"`
	IsBold     bool     `json:"is_bold"`
	IsItalic   bool     `json:"is_italic"`
}

// ImageRef marks the presence of a picture on a slide
type ImageRef struct {
	Name   string `json:"name"`
	RelID  string `json:"rel_id,omitempty"`
	Target string `json:"target,omitempty"` // resolved from the slide relationships part
}

// ShapeRef is a coarse, shape-level view of text
type ShapeRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

// Background fill kinds
const (
	FillSolid    = "solid"
	FillGradient = "gradient"
	FillImage    = "image"
	FillPattern  = "pattern"
	FillRef      = "ref"
)

// Background describes a slide's own background, if it declares one
type Background struct {
	Fill  string `json:"fill"`
	Color string `json:"color,omitempty"`
}

// Theme holds the scheme colors and fonts of the package theme
type Theme struct {
	Colors []ThemeColor `json:"colors"`
	Fonts  ThemeFonts   `json:"fonts"`
}

// ThemeColor is one named scheme color (dk1, lt1, accent1, ...)
type ThemeColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ThemeFonts holds the major (headings) and minor (body) latin typefaces
type ThemeFonts struct {
	Major string `json:"major,omitempty"`
	Minor string `json:"minor,omitempty"`
}
