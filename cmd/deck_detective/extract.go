package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrewHeinke/deck-design-detective/internal/config"
	"github.com/AndrewHeinke/deck-design-detective/internal/observability"
	"github.com/AndrewHeinke/deck-design-detective/internal/pptx"
	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

type extractOptions struct {
	deck        string
	out         string
	concurrency int
	verbose     bool
}

// extractOutput is the JSON form of an extracted deck, with recovered
// part errors rendered as strings
type extractOutput struct {
	*types.ParsedPresentation
	Warnings []string `json:"warnings,omitempty"`
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the normalized slide model from a deck",
		Long:  "Unpacks a .pptx deck and writes its slides, text runs, images, shapes, backgrounds and theme as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtract(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.deck, "deck", "d", "", "Path to .pptx deck")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Parallel slide parsers (0 = unbounded)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print a slide summary to stderr")

	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions) error {
	cfg, _, err := root.resolve(cmd, func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("deck") {
			cfg.Deck = opts.deck
		}
		if flags.Changed("out") {
			cfg.Out = opts.out
		}
		if flags.Changed("concurrency") {
			cfg.Concurrency = opts.concurrency
		}
		if flags.Changed("verbose") {
			cfg.Verbose = opts.verbose
		}
	})
	if err != nil {
		return err
	}
	if cfg.Deck == "" {
		return fmt.Errorf("deck path is required (use --deck or config)")
	}

	presentation, err := pptx.ExtractFile(cmd.Context(), cfg.Deck, pptx.Options{Concurrency: cfg.Concurrency})
	if err != nil {
		return deckError(cfg.Deck, err)
	}

	out := extractOutput{ParsedPresentation: presentation}
	for _, w := range presentation.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal slides to JSON: %w", err)
	}

	if cfg.Verbose {
		var buf bytes.Buffer
		observability.NewPrinter(&buf).PrintPresentation(presentation)
		_, _ = cmd.ErrOrStderr().Write(buf.Bytes())
	}

	return writeOutput(cmd, cfg.Out, append(jsonBytes, '\n'))
}
