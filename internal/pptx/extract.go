package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/AndrewHeinke/deck-design-detective/internal/logging"
	"github.com/AndrewHeinke/deck-design-detective/internal/types"
	"github.com/AndrewHeinke/deck-design-detective/internal/xmltree"
)

// Options controls extraction
type Options struct {
	// Concurrency bounds parallel slide parsing; 0 or less means unbounded.
	Concurrency int
	// Logger receives warnings for skipped parts. Defaults to the logger in ctx.
	Logger *slog.Logger
}

type slideResult struct {
	slide types.SlideContent
	err   error
}

// ExtractFile reads a package from disk and extracts it
func ExtractFile(ctx context.Context, path string, opts Options) (*types.ParsedPresentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file %s: %w", path, err)
	}
	return Extract(ctx, data, opts)
}

// Extract unpacks a package and builds the normalized slide model.
//
// It fails with a *PackageError when the bytes are not a readable container or
// contain no slide parts. Slide parts that fail to parse are skipped and a theme
// that fails to parse is omitted; both are recorded in Warnings. Slides are
// parsed in parallel and numbered 1..N in package order.
func Extract(ctx context.Context, data []byte, opts Options) (*types.ParsedPresentation, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &PackageError{Message: MsgInvalidContainer, Cause: err}
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	slideParts := selectParts(zr.File, slidePartPattern)
	if len(slideParts) == 0 {
		return nil, &PackageError{Message: MsgNoSlides}
	}

	results := make([]slideResult, len(slideParts))

	g, gCtx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, p := range slideParts {
		i, p := i, p
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			slide, err := extractSlide(p, files)
			results[i] = slideResult{slide: slide, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	presentation := &types.ParsedPresentation{Slides: make([]types.SlideContent, 0, len(results))}
	for _, res := range results {
		if res.err != nil {
			logger.Warn("skipping unparsable slide", slog.Any("error", res.err))
			presentation.Warnings = append(presentation.Warnings, res.err)
			continue
		}
		res.slide.SlideNumber = len(presentation.Slides) + 1
		logger.Debug("parsed slide",
			slog.Int("slide", res.slide.SlideNumber),
			slog.String("part", res.slide.Part),
			slog.Int("texts", len(res.slide.Texts)),
			slog.Int("images", len(res.slide.Images)))
		presentation.Slides = append(presentation.Slides, res.slide)
	}

	if themeParts := selectParts(zr.File, themePartPattern); len(themeParts) > 0 {
		theme, err := extractTheme(themeParts[0])
		if err != nil {
			logger.Warn("ignoring unparsable theme", slog.Any("error", err))
			presentation.Warnings = append(presentation.Warnings, err)
		} else {
			presentation.Theme = theme
		}
	}

	return presentation, nil
}

func extractSlide(p part, files map[string]*zip.File) (types.SlideContent, error) {
	data, err := readPart(p.file)
	if err != nil {
		return types.SlideContent{}, &SlidePartError{Part: p.name, Cause: err}
	}
	doc, err := xmltree.Parse(data)
	if err != nil {
		return types.SlideContent{}, &SlidePartError{Part: p.name, Cause: err}
	}

	slide := parseSlide(doc, readRelationships(files, p.name))
	slide.Part = p.name
	return slide, nil
}

func extractTheme(p part) (*types.Theme, error) {
	data, err := readPart(p.file)
	if err != nil {
		return nil, &ThemeParseError{Part: p.name, Cause: err}
	}
	theme, err := parseTheme(data)
	if err != nil {
		return nil, &ThemeParseError{Part: p.name, Cause: err}
	}
	return theme, nil
}

// IsPackageError reports whether err is a fatal package error
func IsPackageError(err error) bool {
	var pkgErr *PackageError
	return errors.As(err, &pkgErr)
}
