package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for SafeScan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safescan",
		Short: "Offline phishing and scam detection for text and URLs",
		Long: `SafeScan checks a piece of text, a single URL, or an email-like message
for signs of phishing or scams.

Text is scored by an embedded linear model and every URL found in it is
checked with static heuristics. Nothing is sent over the network.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .safescan in current or home directory)")
	cmd.PersistentFlags().StringP("lang", "L", "",
		"Display language, e.g. en or ar (default: en, or SAFESCAN_LANG)")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewModelCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
