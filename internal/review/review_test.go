package review

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewHeinke/deck-design-detective/internal/logging"
	"github.com/AndrewHeinke/deck-design-detective/internal/pptx"
	pt "github.com/AndrewHeinke/deck-design-detective/internal/pptx/pptxtest"
	"github.com/AndrewHeinke/deck-design-detective/internal/rules"
	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

func sampleDeck(t *testing.T) []byte {
	t.Helper()
	return pt.Deck(t,
		pt.Slide(
			pt.TextShape(2, "Title", pt.Runs(pt.Run("Welcome", &pt.RunProps{Size: 2400, Color: "FF0000"}))),
			pt.Picture(4, "Logo", "rId2"),
			pt.Picture(5, "Hero", "rId3"),
		),
		pt.Slide(),
	)
}

func TestRun_FullReview(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var stages []string

	report, err := Run(context.Background(), sampleDeck(t), `
- Font size minimum is 36
- No images allowed on title slides
- Body text is required
- Be bold`, Options{
		DeckName:   "sample.pptx",
		OnProgress: func(e ProgressEvent) { stages = append(stages, e.Stage) },
		now:        func() time.Time { return fixed },
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, "sample.pptx", report.Deck)
	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, 2, report.Slides)
	require.Len(t, report.Rules, 4)
	assert.Equal(t, []string{StageExtract, StageCompile, StageValidate}, stages)

	require.Len(t, report.Violations, 3)
	assert.Equal(t, "rule-1", report.Violations[0].Rule.ID)
	assert.Equal(t, 1, report.Violations[0].Slide)
	assert.Equal(t, "rule-2", report.Violations[1].Rule.ID)
	assert.Equal(t, []string{"Logo", "Hero"}, report.Violations[1].Elements)
	assert.Equal(t, "rule-3", report.Violations[2].Rule.ID)
	assert.Equal(t, 2, report.Violations[2].Slide)

	assert.Equal(t, types.Summary{Total: 3, Errors: 2, Warnings: 1}, report.Summary)
	assert.Empty(t, report.Warnings)
}

func TestRun_HTMLRules(t *testing.T) {
	report, err := Run(context.Background(), sampleDeck(t),
		"<ul><li>Text colors allowed: black</li></ul>",
		Options{RulesFormat: RulesHTML})
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, types.RuleColor, report.Violations[0].Rule.Type)
}

func TestRun_NoRules(t *testing.T) {
	for _, text := range []string{"", "  \n ", "# Only a heading"} {
		_, err := Run(context.Background(), sampleDeck(t), text, Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoRules), "text %q: %v", text, err)
	}
}

func TestRun_InvalidDeck(t *testing.T) {
	_, err := Run(context.Background(), []byte("not a zip"), "Font size minimum is 36", Options{})
	require.Error(t, err)

	var pkgErr *pptx.PackageError
	require.ErrorAs(t, err, &pkgErr)
	assert.Equal(t, pptx.MsgInvalidContainer, pkgErr.Message)
}

func TestRun_CorruptSlideBecomesWarning(t *testing.T) {
	data := pt.Build(t,
		pt.SlidePart(1, pt.Slide(pt.TextShape(2, "t", pt.Runs(pt.Run("ok", nil))))),
		pt.SlidePart(2, "<p:sld><unclosed>"),
	)

	report, err := Run(context.Background(), data, "Text is required", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Slides)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "slide2.xml")
}

func TestRun_UnsupportedFormat(t *testing.T) {
	_, err := Run(context.Background(), sampleDeck(t), "Text is required", Options{RulesFormat: "yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported rules format")

	var srcErr *rules.SourceError
	assert.False(t, errors.As(err, &srcErr))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, RulesHTML, FormatFor("guide.HTML"))
	assert.Equal(t, RulesHTML, FormatFor("guide.htm"))
	assert.Equal(t, RulesMarkdown, FormatFor("rules.md"))
	assert.Equal(t, RulesMarkdown, FormatFor("rules.txt"))
}

func TestRun_UsesLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := logging.IntoContext(context.Background(), logger)

	_, err := Run(ctx, sampleDeck(t), "Text is required", Options{DeckName: "ctx.pptx"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "extracted deck")
	assert.Contains(t, buf.String(), "deck=ctx.pptx")
	assert.Contains(t, buf.String(), "validated deck")
}
