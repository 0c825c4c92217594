package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling.
var (
	// ErrNoInput is returned when no text, --list file or --stdin is given.
	ErrNoInput = errors.New("no input specified: provide text or a URL, or use --list or --stdin")

	// ErrConflictingInputs is returned when both --list and --stdin are given.
	ErrConflictingInputs = errors.New("conflicting inputs: --list and --stdin cannot be used together")

	// ErrConflictingArgs is returned when positional input is combined with
	// --list or --stdin.
	ErrConflictingArgs = errors.New("conflicting inputs: text arguments cannot be combined with --list or --stdin")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidHistoryCapacity is returned when the history capacity is not positive.
	ErrInvalidHistoryCapacity = errors.New("invalid history capacity: must be positive")
)
