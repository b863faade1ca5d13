package rules

import (
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

func ptr(v float64) *float64 { return &v }

func TestCompile_ColorAllowList(t *testing.T) {
	rules := Compile("Text colors allowed: black, red")
	require.Len(t, rules, 1)

	assert.Equal(t, "rule-1", rules[0].ID)
	assert.Equal(t, types.RuleColor, rules[0].Type)
	assert.Equal(t, "text colors allowed: black, red", rules[0].Description)
	assert.Equal(t, []string{"black", "red"}, rules[0].Parameters.AllowedValues)
}

func TestCompile_FontSizeMinimum(t *testing.T) {
	rules := Compile("Font size minimum is 36")
	require.Len(t, rules, 1)

	assert.Equal(t, types.RuleFontSize, rules[0].Type)
	assert.Equal(t, ptr(36), rules[0].Parameters.MinValue)
	assert.Nil(t, rules[0].Parameters.MaxValue)
}

func TestCompile_ImagesOnTitleSlides(t *testing.T) {
	rules := Compile("No images allowed on title slides")
	require.Len(t, rules, 1)

	assert.Equal(t, types.RuleImage, rules[0].Type)
	assert.Equal(t, []string{"all"}, rules[0].Parameters.Forbidden)
	assert.Equal(t, []string{"title"}, rules[0].Parameters.SlideTypes)
}

func TestCompile_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n", "  \r\n  "} {
		assert.Empty(t, Compile(input), "input %q", input)
	}
}

func TestCompile_MarkdownDocument(t *testing.T) {
	text := `# Brand guidelines

These rules apply to every deck.

- Text colors allowed: black, white & navy
- Font size minimum is 18
* Font family allowed: Arial, Helvetica

1. No pictures on content slides
2. Body text is required on every slide

` + "```\nnot a rule\n```\n" + `
Keep it simple.
Use the approved template.`

	rules := Compile(text)
	require.Len(t, rules, 8)

	want := []struct {
		kind types.RuleType
		desc string
	}{
		{types.RuleCustom, "these rules apply to every deck."},
		{types.RuleColor, "text colors allowed: black, white & navy"},
		{types.RuleFontSize, "font size minimum is 18"},
		{types.RuleFontFamily, "font family allowed: arial, helvetica"},
		{types.RuleImage, "no pictures on content slides"},
		{types.RuleText, "body text is required on every slide"},
		{types.RuleCustom, "keep it simple."},
		{types.RuleCustom, "use the approved template."},
	}
	for i, w := range want {
		assert.Equal(t, w.kind, rules[i].Type, "rule %d", i+1)
		assert.Equal(t, w.desc, rules[i].Description, "rule %d", i+1)
		assert.Equal(t, fmt.Sprintf("rule-%d", i+1), rules[i].ID)
	}

	assert.Equal(t, []string{"black", "white", "navy"}, rules[1].Parameters.AllowedValues)
	assert.Equal(t, []string{"arial", "helvetica"}, rules[3].Parameters.AllowedValues)
	assert.Equal(t, []string{"content"}, rules[4].Parameters.SlideTypes)
}

func TestCompile_Idempotent(t *testing.T) {
	text := "- Text colors allowed: black\n- Max font size: 60\n- whatever else"
	first := Compile(text)
	second := Compile(text)
	assert.Equal(t, first, second)
}

func TestCompile_EmphasizedStatement(t *testing.T) {
	rules := Compile("- **Text colors allowed**: black, red")
	require.Len(t, rules, 1)
	assert.Equal(t, types.RuleColor, rules[0].Type)
	assert.Equal(t, []string{"black", "red"}, rules[0].Parameters.AllowedValues)
}

func TestCompile_PlainLinesParsedAsOtherBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind types.RuleType
	}{
		{name: "indented line", text: "    Font size minimum is 36", kind: types.RuleFontSize},
		{name: "underlined line", text: "Text colors allowed: black, red\n---", kind: types.RuleColor},
		{name: "double underline", text: "No images on title slides\n===", kind: types.RuleImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := Compile(tt.text)
			require.Len(t, rules, 1)
			assert.Equal(t, tt.kind, rules[0].Type)
		})
	}
}

func TestCompile_UnicodeBulletStripped(t *testing.T) {
	rules := Compile("• No images on all slides")
	require.Len(t, rules, 1)
	assert.Equal(t, "no images on all slides", rules[0].Description)
	assert.Equal(t, []string{"all"}, rules[0].Parameters.SlideTypes)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		kind      types.RuleType
		params    types.RuleParameters
	}{
		{
			name:      "color only-are-allowed phrasing",
			statement: "only black and white text colors are allowed",
			kind:      types.RuleColor,
			params:    types.RuleParameters{AllowedValues: []string{"black", "white text colors"}},
		},
		{
			name:      "color without list",
			statement: "text color must be allowed by brand",
			kind:      types.RuleColor,
		},
		{
			name:      "title size uses font-size precedence",
			statement: "title size at least 40",
			kind:      types.RuleFontSize,
			params:    types.RuleParameters{MinValue: ptr(40)},
		},
		{
			name:      "min and max",
			statement: "font size minimum: 12, maximum: 60",
			kind:      types.RuleFontSize,
			params:    types.RuleParameters{MinValue: ptr(12), MaxValue: ptr(60)},
		},
		{
			name:      "or higher phrasing",
			statement: "font size should be 24pt or higher",
			kind:      types.RuleFontSize,
			params:    types.RuleParameters{MinValue: ptr(24)},
		},
		{
			name:      "no more than",
			statement: "font size no more than 54",
			kind:      types.RuleFontSize,
			params:    types.RuleParameters{MaxValue: ptr(54)},
		},
		{
			name:      "non-integer bound left unset",
			statement: "font size minimum is 10.5",
			kind:      types.RuleFontSize,
		},
		{
			name:      "image forbidden everywhere",
			statement: "pictures are forbidden",
			kind:      types.RuleImage,
			params:    types.RuleParameters{Forbidden: []string{"all"}},
		},
		{
			name:      "image without negation is not an image rule",
			statement: "use high resolution images",
			kind:      types.RuleCustom,
		},
		{
			name:      "font type",
			statement: "font type allowed: calibri and arial.",
			kind:      types.RuleFontFamily,
			params:    types.RuleParameters{AllowedValues: []string{"calibri", "arial"}},
		},
		{
			name:      "text presence",
			statement: "text is required",
			kind:      types.RuleText,
		},
		{
			name:      "text mentioning color falls through",
			statement: "text color should be dark",
			kind:      types.RuleCustom,
		},
		{
			name:      "unrecognized",
			statement: "be concise",
			kind:      types.RuleCustom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, params := Classify(tt.statement)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestNormalizeStatement(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  - Font Size Minimum Is 36  ", "font size minimum is 36"},
		{"* No images", "no images"},
		{"+ text", "text"},
		{"3) Keep it short", "keep it short"},
		{"12. Use brand colors", "use brand colors"},
		{"36pt minimum", "36pt minimum"},
		{"-", ""},
		{"**Text colors allowed**: black, red", "text colors allowed: black, red"},
		{"- __Font family__ allowed: `Arial`", "font family allowed: arial"},
		{"-5 is not a bullet", "-5 is not a bullet"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeStatement(tt.in), "input %q", tt.in)
	}
}

func TestCompileHTML(t *testing.T) {
	html := `<html><body>
<h1>Guidelines</h1>
<p>Text colors allowed: black, red</p>
<ul>
  <li>Font size minimum is 20
    <ul><li>No images on title slides</li></ul>
  </li>
  <li><p>Font family allowed: Arial</p></li>
</ul>
<script>var x = "text is required";</script>
</body></html>`

	rules, err := CompileHTML(strings.NewReader(html))
	require.NoError(t, err)
	require.Len(t, rules, 4)

	assert.Equal(t, types.RuleColor, rules[0].Type)
	assert.Equal(t, types.RuleFontSize, rules[1].Type)
	assert.Equal(t, types.RuleImage, rules[2].Type)
	assert.Equal(t, types.RuleFontFamily, rules[3].Type)
	assert.Equal(t, "rule-4", rules[3].ID)
}

func TestCompileHTML_ReadError(t *testing.T) {
	_, err := CompileHTML(iotest.ErrReader(assert.AnError))
	require.Error(t, err)

	var srcErr *SourceError
	assert.ErrorAs(t, err, &srcErr)
}
