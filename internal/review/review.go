package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AndrewHeinke/deck-design-detective/internal/logging"
	"github.com/AndrewHeinke/deck-design-detective/internal/pptx"
	"github.com/AndrewHeinke/deck-design-detective/internal/rules"
	"github.com/AndrewHeinke/deck-design-detective/internal/types"
	"github.com/AndrewHeinke/deck-design-detective/internal/validation"
)

// RulesFormat selects how rule text is split into statements
type RulesFormat string

// Supported rule text formats
const (
	RulesMarkdown RulesFormat = "markdown"
	RulesHTML     RulesFormat = "html"
)

// Review stages reported through ProgressCallback
const (
	StageExtract  = "extract"
	StageCompile  = "compile"
	StageValidate = "validate"
)

// ProgressEvent represents a progress update during a review
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when a review stage completes
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a review
type Options struct {
	DeckName    string
	RulesFormat RulesFormat
	Concurrency int
	// Logger defaults to the logger stored in ctx
	Logger      *slog.Logger
	OnProgress  ProgressCallback

	// now is overridden in tests
	now func() time.Time
}

func (o *Options) emit(stage, message string, content any) {
	if o.OnProgress != nil {
		o.OnProgress(ProgressEvent{Stage: stage, Message: message, Content: content})
	}
}

// Run reviews a deck against free-text rules. The package extractor and the
// rule compiler run concurrently; their outputs feed validation.
//
// Errors: a *pptx.PackageError when the deck cannot be read, a *rules.SourceError
// for unreadable HTML rules, and ErrNoRules when the rule text compiles to nothing.
func Run(ctx context.Context, deck []byte, ruleText string, opts Options) (*types.Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	now := opts.now
	if now == nil {
		now = time.Now
	}

	var (
		presentation *types.ParsedPresentation
		compiled     []types.DesignRule
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := pptx.Extract(gCtx, deck, pptx.Options{Concurrency: opts.Concurrency, Logger: logger})
		if err != nil {
			return fmt.Errorf("deck extraction failed: %w", err)
		}
		presentation = p
		return nil
	})
	g.Go(func() error {
		r, err := compileRules(ruleText, opts.RulesFormat)
		if err != nil {
			return fmt.Errorf("rule compilation failed: %w", err)
		}
		if len(r) == 0 {
			return fmt.Errorf("rule compilation failed: %w", ErrNoRules)
		}
		compiled = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("extracted deck",
		slog.String("deck", opts.DeckName),
		slog.Int("slides", len(presentation.Slides)),
		slog.Int("warnings", len(presentation.Warnings)))
	opts.emit(StageExtract, fmt.Sprintf("Extracted %d slides", len(presentation.Slides)), presentation)

	logger.Info("compiled rules", slog.Int("rules", len(compiled)))
	opts.emit(StageCompile, fmt.Sprintf("Compiled %d rules", len(compiled)), compiled)

	violations := validation.Validate(presentation, compiled)
	summary := types.Summarize(violations)
	logger.Info("validated deck",
		slog.Int("violations", summary.Total),
		slog.Int("errors", summary.Errors),
		slog.Int("warnings", summary.Warnings))
	opts.emit(StageValidate, fmt.Sprintf("Found %d violations", summary.Total), violations)

	report := &types.Report{
		ID:          uuid.New(),
		Deck:        opts.DeckName,
		GeneratedAt: now().UTC(),
		Slides:      len(presentation.Slides),
		Rules:       compiled,
		Summary:     summary,
		Violations:  violations,
	}
	for _, w := range presentation.Warnings {
		report.Warnings = append(report.Warnings, w.Error())
	}

	return report, nil
}

func compileRules(text string, format RulesFormat) ([]types.DesignRule, error) {
	switch format {
	case RulesHTML:
		return rules.CompileHTML(strings.NewReader(text))
	case RulesMarkdown, "":
		return rules.Compile(text), nil
	default:
		return nil, fmt.Errorf("unsupported rules format %q", format)
	}
}

// FormatFor guesses the rule format from a file name
func FormatFor(name string) RulesFormat {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return RulesHTML
	}
	return RulesMarkdown
}
