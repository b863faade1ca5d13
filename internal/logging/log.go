// Package logging builds the slog loggers used by the CLI and carries them
// through a context to the review pipeline.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/muesli/termenv"

	charmlog "github.com/charmbracelet/log"
)

// Format names a log output encoding
type Format string

const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
	FormatText   Format = "text"
)

var (
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")

	// AllLevels lists the accepted level names, most to least severe.
	// config.Config validates log_level against the same set.
	AllLevels  = []string{"error", "warn", "info", "debug"}
	// AllFormats lists the accepted format names
	AllFormats = []string{string(FormatJSON), string(FormatLogfmt), string(FormatText)}

	levels = map[string]slog.Level{
		"error": slog.LevelError,
		"warn":  slog.LevelWarn,
		"info":  slog.LevelInfo,
		"debug": slog.LevelDebug,
	}
)

type loggerKey struct{}

// NewLogger builds a logger writing to w at the named level and format.
// Text output goes through charmbracelet/log with the terminal's colour profile.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	f, err := GetFormat(format)
	if err != nil {
		return nil, fmt.Errorf("log format %q: %w", format, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch f {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case FormatLogfmt:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return slog.New(newConsoleHandler(w, lvl)), nil
	}
}

// GetLevel maps a level name from AllLevels to its slog level
func GetLevel(level string) (slog.Level, error) {
	if lvl, ok := levels[level]; ok {
		return lvl, nil
	}
	return 0, ErrUnknownLogLevel
}

// GetFormat checks a format name against AllFormats
func GetFormat(format string) (Format, error) {
	if !slices.Contains(AllFormats, format) {
		return "", ErrUnknownLogFormat
	}
	return Format(format), nil
}

func newConsoleHandler(w io.Writer, level slog.Level) slog.Handler {
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	logger.SetColorProfile(termenv.ColorProfile())
	return logger
}

// IntoContext stores a logger in ctx
func IntoContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default()
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
