package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/safescan/internal/classifier"
)

// NewModelCmd creates the model command.
func NewModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect or export the text model",
		Long: `Model prints a summary of the text model: vocabulary size, normalisation,
lowercasing and intercept. Use --model (or SAFESCAN_MODEL) to inspect an
external model file instead of the embedded one.

Examples:
  # Show the embedded model
  safescan model

  # Validate and show an external model
  safescan model --model ./model.msgpack

  # Export the embedded model as msgpack
  safescan model export -o model.msgpack`,
		Args: cobra.NoArgs,
		RunE: runModelCmd,
	}

	cmd.PersistentFlags().StringP("model", "M", "",
		"External model file (.json or .msgpack) replacing the embedded model")

	cmd.AddCommand(newModelExportCmd())

	return cmd
}

// newModelExportCmd creates the model export command.
func newModelExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the model to a file",
		Long: `Export writes the loaded model to a file. The format follows the file
extension: .msgpack or .mpk for MessagePack, anything else for JSON.`,
		Args: cobra.NoArgs,
		RunE: runModelExportCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output file path (required)")
	_ = cmd.MarkFlagRequired("output") //nolint:errcheck // Flag is defined above

	return cmd
}

// loadModel loads and validates the configured model.
func loadModel(cmd *cobra.Command) (*classifier.Model, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	setupLogger(cmd, cfg)

	m, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid model: %w", err)
	}

	source := "embedded"
	if cfg.ModelPath != "" {
		source = cfg.ModelPath
	}
	return m, source, nil
}

// runModelCmd executes the model command.
func runModelCmd(cmd *cobra.Command, _ []string) error {
	m, source, err := loadModel(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source:     %s\n", source)
	fmt.Fprintf(out, "Vocabulary: %d terms\n", len(m.Vectorizer.Terms))
	fmt.Fprintf(out, "Norm:       %s\n", m.Vectorizer.NormOrNone())
	fmt.Fprintf(out, "Lowercase:  %t\n", m.Vectorizer.Lowercase)
	fmt.Fprintf(out, "Intercept:  %g\n", m.Classifier.Intercept)

	return nil
}

// runModelExportCmd executes the model export command.
func runModelExportCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	m, _, err := loadModel(cmd)
	if err != nil {
		return err
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}

	format := classifier.FormatFromPath(outputPath)
	if err := classifier.Encode(f, m, format); err != nil {
		_ = f.Close() //nolint:errcheck // Encode error takes precedence
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported model (%s) to %s\n", format, outputPath)
	return nil
}
