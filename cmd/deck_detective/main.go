// Package main provides the entry point for the deck_detective CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AndrewHeinke/deck-design-detective/internal/config"
	"github.com/AndrewHeinke/deck-design-detective/internal/logging"
	"github.com/AndrewHeinke/deck-design-detective/internal/pptx"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "deck_detective",
		Short: "Check slide decks against design guidelines",
		Long: `deck_detective extracts text, fonts, colors and images from a .pptx deck,
compiles free-text design guidelines into rules, and reports every violation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pf.StringVar(&opts.logLevel, "log-level", "", fmt.Sprintf("Log level (%s)", strings.Join(logging.AllLevels, ", ")))
	pf.StringVar(&opts.logFormat, "log-format", "", fmt.Sprintf("Log format (%s)", strings.Join(logging.AllFormats, ", ")))

	cmd.AddCommand(newCheckCmd(opts), newExtractCmd(opts), newCompileRulesCmd(opts))
	return cmd
}

// resolve builds the effective configuration and logger for a command.
// Precedence: flags, then the config file, then environment, then defaults.
func (o *rootOptions) resolve(cmd *cobra.Command, applyFlags func(*config.Config)) (config.Config, *slog.Logger, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return cfg, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	applyFlags(&cfg)

	env, err := config.FromEnv()
	if err != nil {
		return cfg, nil, err
	}
	cfg = cfg.MergeWithDefaults(*env)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger, err := logging.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if o.configPath != "" {
		logger.Debug("loaded config", slog.String("path", o.configPath))
	}
	cmd.SetContext(logging.IntoContext(cmd.Context(), logger))

	return cfg, logger, nil
}

// deckError adds the deck path to fatal package errors
func deckError(path string, err error) error {
	if pptx.IsPackageError(err) {
		return fmt.Errorf("%s is not a readable .pptx deck: %w", path, err)
	}
	return err
}

// writeOutput writes data to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
