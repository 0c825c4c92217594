package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nao1215/safescan/internal/config"
	"github.com/nao1215/safescan/internal/history"
	"github.com/nao1215/safescan/internal/locale"
	"github.com/nao1215/safescan/internal/model"
	"github.com/nao1215/safescan/internal/pipeline"
	"github.com/nao1215/safescan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [text-or-url...]",
		Short: "Check text, a URL or an email for phishing",
		Long: `Scan classifies the input as safe or unsafe.

A single URL is judged by static heuristics only. Any other input is scored
by the embedded text model and every URL found in it (up to 10) is checked
as well. The input is unsafe if any of these checks is unsafe.

Positional arguments are joined with spaces into one input. Use --stdin to
read one input from standard input (for example a saved email), or --list
to analyse a file with one input per line.

Examples:
  # Check a URL
  safescan scan login-update-bank.com

  # Check a message
  safescan scan "Click http://a.b.c.d.example.com/x to win"

  # Check an email saved to a file
  safescan scan --stdin < message.eml

  # Check many inputs, one per line, as JSON
  safescan scan --list inputs.txt --json

  # Arabic report written to a file
  safescan scan --lang ar -o report.md --markdown "..."`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Input flags
	cmd.Flags().StringP("list", "l", "",
		"File with one input per line")
	cmd.Flags().Bool("stdin", false,
		"Read the input from standard input")
	cmd.Flags().Bool("lines", false,
		"With --stdin, treat every line as a separate input")

	// Model flags
	cmd.Flags().StringP("model", "M", "",
		"External model file (.json or .msgpack) replacing the embedded model")

	// Batch flags
	cmd.Flags().IntP("batch-size", "b", config.DefaultBatchSize,
		"Number of inputs analysed concurrently")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the text report to stdout")
	cmd.Flags().Bool("no-color", false,
		"Disable colored output")
	cmd.Flags().Bool("fail-on-unsafe", false,
		"Exit with status 1 when any input is unsafe")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this scan in the history")
	cmd.Flags().String("history-dir", "",
		"Directory of the history database (default: XDG data directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScan(ctx, cmd, cfg, logger)
}

// buildScanConfig creates a Config from the scan command's flags.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("batch-size") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch-size"); err != nil {
			return nil, err
		}
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Color = false
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.HistoryEnabled = false
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.ListFile, err = cmd.Flags().GetString("list"); err != nil {
		return nil, err
	}
	if cfg.Stdin, err = cmd.Flags().GetBool("stdin"); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Inputs = []string{strings.Join(args, " ")}
	}
	if len(cfg.Inputs) > 0 && (cfg.ListFile != "" || cfg.Stdin) {
		return nil, config.ErrConflictingArgs
	}

	return cfg, nil
}

// runScan analyses the configured inputs and writes the report.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	a, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	lines, _ := cmd.Flags().GetBool("lines")
	inputs, batch, err := readInputs(cmd.InOrStdin(), cfg, lines)
	if err != nil {
		return err
	}

	logger.Debug("starting scan",
		"inputs", len(inputs),
		"batch", batch,
		"history", cfg.HistoryEnabled,
		"lang", cfg.Lang,
	)

	var store *history.Store
	if cfg.HistoryEnabled {
		store, err = openHistory(cfg, true)
		if err != nil {
			// A broken history never blocks the verdict.
			logger.Warn("history unavailable", "dir", cfg.HistoryDir, "error", err)
		} else {
			defer store.Close()
		}
	}

	var results []model.AnalysisResult
	if batch {
		results, err = runBatchScan(ctx, cfg, a, store, inputs, logger)
	} else {
		results, err = runSingleScan(ctx, a, store, inputs[0], logger)
	}
	if err != nil {
		return err
	}

	if err := outputReport(cmd, cfg, results, batch); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if tee, _ := cmd.Flags().GetBool("tee"); tee && cfg.ReportFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", cfg.ReportFile)
	}

	if failOnUnsafe, _ := cmd.Flags().GetBool("fail-on-unsafe"); failOnUnsafe {
		for i := range results {
			if results[i].Class.IsUnsafe() {
				return errUnsafeInput
			}
		}
	}

	return nil
}

// runSingleScan runs the default pipeline over one input.
func runSingleScan(ctx context.Context, a pipeline.Analyzer, store *history.Store, input string, logger *slog.Logger) ([]model.AnalysisResult, error) {
	var recorder pipeline.Recorder
	if store != nil {
		recorder = store
	}

	scan := pipeline.NewScan(input)
	if err := pipeline.Default(a, recorder, logger).Execute(ctx, scan); err != nil {
		return nil, err
	}
	if scan.Result == nil {
		return nil, fmt.Errorf("analysis did not run: %w", scan.Err)
	}
	return []model.AnalysisResult{*scan.Result}, nil
}

// runBatchScan analyses inputs concurrently, then records them in input
// order so the history reads the same as the input.
func runBatchScan(ctx context.Context, cfg *config.Config, a pipeline.Analyzer, store *history.Store, inputs []string, logger *slog.Logger) ([]model.AnalysisResult, error) {
	bp := pipeline.NewBatchProcessor(
		pipeline.Default(a, nil, logger),
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	scans, err := bp.ProcessBatch(ctx, inputs)
	if err != nil {
		return nil, err
	}

	var step *pipeline.HistoryStep
	if store != nil {
		step = pipeline.NewHistoryStep(store, pipeline.WithHistoryLogger(logger))
	}

	results := make([]model.AnalysisResult, 0, len(scans))
	for _, scan := range scans {
		if scan.Result == nil {
			continue
		}
		if step != nil {
			if err := step.Do(ctx, scan); err != nil {
				logger.Warn("failed to record history", "error", err)
			}
		}
		results = append(results, *scan.Result)
	}
	return results, nil
}

// readInputs collects the inputs to analyse. batch reports whether they
// came from a list (file or --stdin --lines) rather than a single input.
func readInputs(stdin io.Reader, cfg *config.Config, lines bool) ([]string, bool, error) {
	switch {
	case cfg.ListFile != "":
		f, err := os.Open(cfg.ListFile) //nolint:gosec // User-provided list path is intentional
		if err != nil {
			return nil, false, fmt.Errorf("failed to open list file: %w", err)
		}
		defer f.Close()

		inputs, err := readLines(f)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read list file: %w", err)
		}
		return inputs, true, nil

	case cfg.Stdin && lines:
		inputs, err := readLines(stdin)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return inputs, true, nil

	case cfg.Stdin:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []string{string(data)}, false, nil

	default:
		return cfg.Inputs, false, nil
	}
}

// errNoLines is returned when a list holds no non-blank line.
var errNoLines = errors.New("no inputs found (the list is empty)")

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var inputs []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errNoLines
	}
	return inputs, nil
}

// outputReport writes the results in the requested format.
func outputReport(cmd *cobra.Command, cfg *config.Config, results []model.AnalysisResult, batch bool) error {
	output, closeOutput, err := openOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // Close error after a successful write is not actionable

	catalog := locale.New(cfg.Lang)
	writer := newWriter(cfg, output, catalog)

	if tee, _ := cmd.Flags().GetBool("tee"); tee && cfg.ReportFile != "" {
		writer = report.NewMultiWriter(writer, report.NewSimpleWriter(cmd.OutOrStdout(), catalog,
			report.WithColor(cfg.Color && !color.NoColor),
			report.WithVerbose(cfg.Verbose),
		))
	}

	if batch {
		_, err = writer.WriteBatch(results)
		return err
	}
	_, err = writer.Write(&results[0])
	return err
}
