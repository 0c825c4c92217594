package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/safescan/internal/analyzer"
	"github.com/nao1215/safescan/internal/classifier"
	"github.com/nao1215/safescan/internal/config"
	"github.com/nao1215/safescan/internal/history"
	"github.com/nao1215/safescan/internal/locale"
	seclog "github.com/nao1215/safescan/internal/log"
	"github.com/nao1215/safescan/internal/report"
	"github.com/nao1215/safescan/internal/urlcheck"
)

// lookupFlag finds a flag on the command or its persistent parents.
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.Root().PersistentFlags().Lookup(name)
}

// flagChanged reports whether the named flag was set on the command line.
func flagChanged(cmd *cobra.Command) func(string) bool {
	return func(name string) bool {
		f := lookupFlag(cmd, name)
		return f != nil && f.Changed
	}
}

// stringFlag returns the flag value, or "" when the command has no such flag.
func stringFlag(cmd *cobra.Command, name string) string {
	if f := lookupFlag(cmd, name); f != nil {
		return f.Value.String()
	}
	return ""
}

// boolFlag returns the flag value, or false when the command has no such flag.
func boolFlag(cmd *cobra.Command, name string) bool {
	if f := lookupFlag(cmd, name); f != nil {
		return f.Value.String() == "true"
	}
	return false
}

// loadConfig builds a Config from defaults, the config file, the environment
// and the command's flags, in increasing order of priority.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	cfg.Verbose = boolFlag(cmd, "verbose")
	cfg.LogJSON = boolFlag(cmd, "log-json")
	cfg.ConfigFilePath = stringFlag(cmd, "config")
	if lang := stringFlag(cmd, "lang"); lang != "" {
		cfg.Lang = lang
	}
	if path := stringFlag(cmd, "model"); path != "" {
		cfg.ModelPath = path
	}
	if dir := stringFlag(cmd, "history-dir"); dir != "" {
		cfg.HistoryDir = dir
	}

	// If the user named a config file it must exist; otherwise a missing
	// file just means defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file, flagChanged(cmd))
	case explicitConfigPath:
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := config.LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.ApplyEnv(os.Getenv, flagChanged(cmd))

	return cfg, nil
}

// setupLogger creates the secure structured logger and makes it the default.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := seclog.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
	slog.SetDefault(logger)
	return logger
}

// newAnalyzer loads the configured model and builds an Analyzer around it.
func newAnalyzer(cfg *config.Config) (*analyzer.Analyzer, error) {
	m, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	a, err := analyzer.New(m,
		analyzer.WithMaxChars(config.DefaultMaxAnalysisChars),
		analyzer.WithExtractor(urlcheck.NewExtractor(urlcheck.WithMaxURLs(config.DefaultMaxURLs))),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}
	return a, nil
}

// openHistory opens the history store. With create false a missing
// database returns history.ErrDatabaseNotFound.
func openHistory(cfg *config.Config, create bool) (*history.Store, error) {
	opts := history.DefaultOptions()
	opts.CreateIfNotExists = create
	opts.Capacity = cfg.HistoryCapacity
	return history.Open(cfg.HistoryDir, opts)
}

// openOutput returns the report destination and a function closing it.
// Report files are created with 0600 since they contain the analysed input.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newWriter picks the report writer for the configured format.
func newWriter(cfg *config.Config, output io.Writer, catalog *locale.Catalog) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, catalog, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output, catalog)
	default:
		// Files never get escape codes; color.NoColor covers NO_COLOR and non-terminals.
		useColor := cfg.Color && cfg.ReportFile == "" && !color.NoColor
		return report.NewSimpleWriter(output, catalog,
			report.WithColor(useColor),
			report.WithVerbose(cfg.Verbose),
		)
	}
}

// errUnsafeInput is returned by scan --fail-on-unsafe when any input is unsafe.
var errUnsafeInput = errors.New("unsafe input detected")
