package pptx

import (
	"errors"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
	"github.com/AndrewHeinke/deck-design-detective/internal/xmltree"
)

var errNoSchemes = errors.New("theme has neither a color scheme nor a font scheme")

// parseTheme collects scheme colors (in declaration order) and major/minor fonts
func parseTheme(data []byte) (*types.Theme, error) {
	doc, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}

	clrScheme := xmltree.Find(doc, "clrScheme")
	fontScheme := xmltree.Find(doc, "fontScheme")
	if clrScheme == nil && fontScheme == nil {
		return nil, errNoSchemes
	}

	theme := &types.Theme{Colors: []types.ThemeColor{}}
	for _, c := range clrScheme.Children() {
		theme.Colors = append(theme.Colors, types.ThemeColor{
			Name:  c.Tag,
			Value: colorOf(c),
		})
	}

	theme.Fonts.Major, _ = fontScheme.Child("majorFont").Child("latin").Attr("typeface")
	theme.Fonts.Minor, _ = fontScheme.Child("minorFont").Child("latin").Attr("typeface")

	return theme, nil
}
