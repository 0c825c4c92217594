package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/safescan/internal/config"
	"github.com/nao1215/safescan/internal/history"
	"github.com/nao1215/safescan/internal/locale"
	"github.com/nao1215/safescan/internal/model"
)

// NewHistoryCmd creates the history command.
// It lists the scans stored in the local history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scans",
		Long: `History lists the most recent scans, oldest first.

Only the last 12 scans are kept (see history.capacity in the config file),
and each entry stores at most the first 180 characters of the input.

Examples:
  # List recent scans
  safescan history

  # List recent scans as JSON
  safescan history --json

  # Remove all entries
  safescan history clear`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.PersistentFlags().String("history-dir", "",
		"Directory of the history database (default: XDG data directory)")

	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output history in Markdown format")

	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

// newHistoryClearCmd creates the history clear command.
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all history entries",
		Args:  cobra.NoArgs,
		RunE:  runHistoryClearCmd,
	}
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cmd, cfg)

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return config.ErrConflictingReportFormats
	}

	entries, err := listHistory(cmd.Context(), cfg.HistoryDir, cfg.HistoryCapacity)
	if err != nil {
		return err
	}

	writer := newWriter(cfg, cmd.OutOrStdout(), locale.New(cfg.Lang))
	_, err = writer.WriteHistory(entries)
	return err
}

// listHistory returns the stored entries. A missing database is an empty history.
func listHistory(ctx context.Context, dir string, capacity int) ([]model.HistoryEntry, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := history.DefaultOptions()
	opts.CreateIfNotExists = false
	opts.Capacity = capacity

	store, err := history.Open(dir, opts)
	if errors.Is(err, history.ErrDatabaseNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	entries, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// runHistoryClearCmd executes the history clear command.
func runHistoryClearCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cmd, cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openHistory(cfg, false)
	if err != nil && !errors.Is(err, history.ErrDatabaseNotFound) {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if store != nil {
		defer store.Close()
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), locale.New(cfg.Lang).T(locale.KeyHistoryCleared))
	return nil
}
