package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndrewHeinke/deck-design-detective/internal/config"
	"github.com/AndrewHeinke/deck-design-detective/internal/observability"
	"github.com/AndrewHeinke/deck-design-detective/internal/review"
	"github.com/AndrewHeinke/deck-design-detective/internal/schemas"
	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

// ErrViolationsFound is returned by check when the deck fails review
var ErrViolationsFound = errors.New("design violations found")

type checkOptions struct {
	deck          string
	rules         string
	out           string
	format        string
	concurrency   int
	verbose       bool
	failOnWarning bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a deck against design rules",
		Long: `Extracts the deck, compiles the rule text (markdown, or HTML for .html files) and writes a report of every violation.

Exits non-zero when error-severity violations are found, or warnings with --fail-on-warning.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.deck, "deck", "d", "", "Path to .pptx deck")
	cmd.Flags().StringVarP(&opts.rules, "rules", "r", "", "Path to design rule text")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to output report (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Report format (json, text)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Parallel slide parsers (0 = unbounded)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Also print the console report when writing JSON")
	cmd.Flags().BoolVar(&opts.failOnWarning, "fail-on-warning", false, "Fail when warning violations are found")

	return cmd
}

func runCheck(cmd *cobra.Command, root *rootOptions, opts *checkOptions) error {
	cfg, logger, err := root.resolve(cmd, func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("deck") {
			cfg.Deck = opts.deck
		}
		if flags.Changed("rules") {
			cfg.Rules = opts.rules
		}
		if flags.Changed("out") {
			cfg.Out = opts.out
		}
		if flags.Changed("format") {
			cfg.Format = opts.format
		}
		if flags.Changed("concurrency") {
			cfg.Concurrency = opts.concurrency
		}
		if flags.Changed("verbose") {
			cfg.Verbose = opts.verbose
		}
		if flags.Changed("fail-on-warning") {
			cfg.FailOnWarning = opts.failOnWarning
		}
	})
	if err != nil {
		return err
	}

	if cfg.Deck == "" {
		return fmt.Errorf("deck path is required (use --deck or config)")
	}
	if cfg.Rules == "" {
		return fmt.Errorf("rules path is required (use --rules or config)")
	}

	deck, err := os.ReadFile(cfg.Deck)
	if err != nil {
		return fmt.Errorf("failed to read deck file: %w", err)
	}
	ruleText, err := os.ReadFile(cfg.Rules)
	if err != nil {
		return fmt.Errorf("failed to read rules file: %w", err)
	}

	report, err := review.Run(cmd.Context(), deck, string(ruleText), review.Options{
		DeckName:    filepath.Base(cfg.Deck),
		RulesFormat: review.FormatFor(cfg.Rules),
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		if errors.Is(err, review.ErrNoRules) {
			return fmt.Errorf("%w (rules file: %s)", err, cfg.Rules)
		}
		return deckError(cfg.Deck, err)
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	// Validate output against schema (non-fatal)
	if err := schemas.ValidateReport(jsonBytes); err != nil {
		logger.Warn("generated report does not validate against schema", slog.Any("error", err))
	}

	var output []byte
	switch cfg.Format {
	case config.FormatText:
		var buf bytes.Buffer
		observability.NewPrinter(&buf).PrintReport(report)
		output = buf.Bytes()
	default:
		output = append(jsonBytes, '\n')
		if cfg.Verbose {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintReport(report)
		}
	}

	if err := writeOutput(cmd, cfg.Out, output); err != nil {
		return err
	}
	if cfg.Out != "" {
		logger.Info("wrote report", slog.String("path", cfg.Out))
	}

	return reviewOutcome(report.Summary, cfg.FailOnWarning)
}

// reviewOutcome maps a report summary to the command result
func reviewOutcome(s types.Summary, failOnWarning bool) error {
	if s.Errors > 0 || (failOnWarning && s.Warnings > 0) {
		return fmt.Errorf("%w: %d errors, %d warnings", ErrViolationsFound, s.Errors, s.Warnings)
	}
	return nil
}
