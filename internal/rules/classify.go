package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

const number = `(\d+(?:\.\d+)?)`

var (
	// allow-list phrasings, tried in order
	allowListPatterns = []*regexp.Regexp{
		regexp.MustCompile(`allowed:\s*(.+)$`),
		regexp.MustCompile(`only\s+(.+?)\s+(?:are\s+)?allowed`),
	}
	listSeparator = regexp.MustCompile(`,|&|\s+and\s+`)

	minPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bmin(?:imum)?\s*(?:is|:)?\s*` + number),
		regexp.MustCompile(`\bat least\s+` + number),
		regexp.MustCompile(number + `\s*(?:pt|px|points)\s+or\s+higher`),
	}
	maxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bmax(?:imum)?\s*(?:is|:)?\s*` + number),
		regexp.MustCompile(`\bno more than\s+` + number),
	}

	// ASCII markers need a following space so "**bold**" is not a bullet
	bulletMarker = regexp.MustCompile(`^(?:[•‣◦]\s*|[-*+](?:\s+|$)|\d+[.)]\s+)`)

	emphasisMarkers = strings.NewReplacer("*", "", "__", "", "`", "")
)

// classifier pairs a predicate with the parameter extractor for one rule kind
type classifier struct {
	kind    types.RuleType
	match   func(s string) bool
	extract func(s string) types.RuleParameters
}

// classifiers are evaluated in order; the first match wins. Font size is
// checked before the generic text rule so "title text size" is a size rule.
var classifiers = []classifier{
	{
		kind: types.RuleColor,
		match: func(s string) bool {
			return strings.Contains(s, "text color") && strings.Contains(s, "allowed")
		},
		extract: func(s string) types.RuleParameters {
			return types.RuleParameters{AllowedValues: extractAllowList(s)}
		},
	},
	{
		kind: types.RuleFontSize,
		match: func(s string) bool {
			return strings.Contains(s, "font size") || (strings.Contains(s, "title") && strings.Contains(s, "size"))
		},
		extract: func(s string) types.RuleParameters {
			return types.RuleParameters{
				MinValue: extractBound(s, minPatterns),
				MaxValue: extractBound(s, maxPatterns),
			}
		},
	},
	{
		kind: types.RuleImage,
		match: func(s string) bool {
			return containsAny(s, "image", "picture") && containsAny(s, "no ", "not allowed", "forbidden")
		},
		extract: func(s string) types.RuleParameters {
			return types.RuleParameters{
				Forbidden:  []string{"all"},
				SlideTypes: extractSlideTypes(s),
			}
		},
	},
	{
		kind: types.RuleFontFamily,
		match: func(s string) bool {
			return strings.Contains(s, "font") && containsAny(s, "family", "type")
		},
		extract: func(s string) types.RuleParameters {
			return types.RuleParameters{AllowedValues: extractAllowList(s)}
		},
	},
	{
		kind: types.RuleText,
		match: func(s string) bool {
			return strings.Contains(s, "text") && !strings.Contains(s, "color") && !strings.Contains(s, "size")
		},
		extract: func(string) types.RuleParameters {
			return types.RuleParameters{}
		},
	},
}

// Classify assigns a rule kind and parameters to a normalized (lower-cased,
// trimmed) statement. Unrecognized statements are custom rules.
func Classify(statement string) (types.RuleType, types.RuleParameters) {
	for _, c := range classifiers {
		if c.match(statement) {
			return c.kind, c.extract(statement)
		}
	}
	return types.RuleCustom, types.RuleParameters{}
}

// normalizeStatement lower-cases and trims a statement, strips a leading bullet
// marker and drops inline emphasis and code markup
func normalizeStatement(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = bulletMarker.ReplaceAllString(s, "")
	s = emphasisMarkers.Replace(s)
	return strings.TrimSpace(s)
}

func extractAllowList(s string) []string {
	for _, re := range allowListPatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		var values []string
		for _, item := range listSeparator.Split(m[1], -1) {
			item = strings.Trim(strings.TrimSpace(item), ".;!")
			item = strings.TrimSpace(item)
			if item != "" {
				values = append(values, item)
			}
		}
		return values
	}
	return nil
}

// extractBound returns the number captured by the first matching pattern.
// A non-integer capture leaves the bound unset.
func extractBound(s string, patterns []*regexp.Regexp) *float64 {
	for _, re := range patterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		v := float64(n)
		return &v
	}
	return nil
}

func extractSlideTypes(s string) []string {
	var scopes []string
	if strings.Contains(s, "title slide") {
		scopes = append(scopes, types.ScopeTitle)
	}
	if strings.Contains(s, "content slide") {
		scopes = append(scopes, types.ScopeContent)
	}
	if strings.Contains(s, "all slide") {
		scopes = append(scopes, types.ScopeAll)
	}
	return scopes
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
