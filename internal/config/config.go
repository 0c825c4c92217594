package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "safescan"

	// DefaultMaxAnalysisChars is the number of input runes analysed.
	// Longer input is cut before trimming.
	DefaultMaxAnalysisChars = 8000

	// DefaultMaxURLs is the most URLs checked per input.
	DefaultMaxURLs = 10

	// DefaultHistoryCapacity is the number of scans kept in the history.
	DefaultHistoryCapacity = 12

	// DefaultSnippetChars is the number of input runes kept per history entry.
	DefaultSnippetChars = 180

	// DefaultBatchSize of 8 concurrent analyses keeps batch scans fast
	// without flooding the history writer.
	DefaultBatchSize = 8

	// DefaultLang is used when neither flags, env nor the config file set one.
	DefaultLang = "en"
)

// Environment variables read after the optional .env file is loaded.
const (
	// EnvModel overrides the model file path.
	EnvModel = "SAFESCAN_MODEL"

	// EnvLang overrides the display language.
	EnvLang = "SAFESCAN_LANG"
)

// Config holds all configuration options for SafeScan.
// This struct is populated from CLI flags, environment and the config file,
// and passed through the application rather than kept as global state.
//
// Design decision: We use a single flat struct instead of nested structs.
// The number of options is small and nesting would add ceremony without
// making any call site clearer.
type Config struct {
	// ModelPath is an external model file. Empty means the embedded model.
	ModelPath string

	// Lang is the display language tag or Accept-Language list.
	Lang string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON switches log output to the JSON handler.
	LogJSON bool

	// Color enables colored simple reports.
	Color bool

	// JSONReport enables JSON report output instead of the simple format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the simple format.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// HistoryEnabled records each scan in the history database.
	HistoryEnabled bool

	// HistoryCapacity is the number of entries kept in the history.
	HistoryCapacity int

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/safescan on Linux).
	HistoryDir string

	// BatchSize is the number of concurrent analyses for --list and --stdin.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string

	// Inputs are the texts or URLs given as positional arguments.
	Inputs []string

	// ListFile is a file with one input per line.
	ListFile string

	// Stdin reads inputs from standard input, one per line.
	Stdin bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Lang:            DefaultLang,
		Color:           true,
		HistoryEnabled:  true,
		HistoryCapacity: DefaultHistoryCapacity,
		HistoryDir:      XDGDataDir(),
		BatchSize:       DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for SafeScan.
// On Linux: ~/.local/share/safescan
// On macOS: ~/Library/Application Support/safescan
// On Windows: %LOCALAPPDATA%\safescan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for SafeScan.
// On Linux: ~/.config/safescan
// On macOS: ~/Library/Application Support/safescan
// On Windows: %APPDATA%\safescan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// HasInput reports whether any input source is configured.
func (c *Config) HasInput() bool {
	return len(c.Inputs) > 0 || c.ListFile != "" || c.Stdin
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast with a clear message before any work starts.
func (c *Config) Validate() error {
	if !c.HasInput() {
		return ErrNoInput
	}

	if c.ListFile != "" && c.Stdin {
		return ErrConflictingInputs
	}

	if len(c.Inputs) > 0 && (c.ListFile != "" || c.Stdin) {
		return ErrConflictingArgs
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.HistoryCapacity <= 0 {
		return ErrInvalidHistoryCapacity
	}

	return nil
}
