package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndrewHeinke/deck-design-detective/internal/config"
	"github.com/AndrewHeinke/deck-design-detective/internal/observability"
	"github.com/AndrewHeinke/deck-design-detective/internal/review"
	"github.com/AndrewHeinke/deck-design-detective/internal/rules"
	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

type compileRulesOptions struct {
	rules   string
	out     string
	verbose bool
}

func newCompileRulesCmd(root *rootOptions) *cobra.Command {
	opts := &compileRulesOptions{}

	cmd := &cobra.Command{
		Use:   "compile-rules",
		Short: "Compile design guideline text into typed rules",
		Long:  "Classifies every statement of a markdown or HTML guideline document and writes the resulting rules as JSON. Use --rules - to read from stdin.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompileRules(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.rules, "rules", "r", "", "Path to design rule text, or - for stdin")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the compiled rules to stderr")

	return cmd
}

func runCompileRules(cmd *cobra.Command, root *rootOptions, opts *compileRulesOptions) error {
	// stdin is not a file, so keep it away from config path validation
	fromStdin := opts.rules == "-"

	cfg, logger, err := root.resolve(cmd, func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("rules") && !fromStdin {
			cfg.Rules = opts.rules
		}
		if flags.Changed("out") {
			cfg.Out = opts.out
		}
		if flags.Changed("verbose") {
			cfg.Verbose = opts.verbose
		}
	})
	if err != nil {
		return err
	}

	var (
		text   []byte
		format = review.RulesMarkdown
	)
	switch {
	case fromStdin:
		text, err = io.ReadAll(cmd.InOrStdin())
	case cfg.Rules != "":
		text, err = os.ReadFile(cfg.Rules)
		format = review.FormatFor(cfg.Rules)
	default:
		return fmt.Errorf("rules path is required (use --rules or config)")
	}
	if err != nil {
		return fmt.Errorf("failed to read rules: %w", err)
	}

	var compiled []types.DesignRule
	if format == review.RulesHTML {
		compiled, err = rules.CompileHTML(bytes.NewReader(text))
		if err != nil {
			return err
		}
	} else {
		compiled = rules.Compile(string(text))
	}
	if len(compiled) == 0 {
		return review.ErrNoRules
	}
	logger.Info("compiled rules", slog.Int("rules", len(compiled)))

	jsonBytes, err := json.MarshalIndent(compiled, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules to JSON: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRules(compiled)
	}

	return writeOutput(cmd, cfg.Out, append(jsonBytes, '\n'))
}
