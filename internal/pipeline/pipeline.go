package pipeline

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/nao1215/safescan/internal/model"
)

// Scan carries one input through the pipeline.
type Scan struct {
	// Input is the raw text as given by the user.
	Input string

	// Result is set by the analysis step. It is nil until then.
	Result *model.AnalysisResult

	// Entry is set by the history step when the result was recorded.
	Entry *model.HistoryEntry

	// Err is the last step error, if any.
	Err error

	// Performed lists the names of the steps that ran, in order.
	Performed []string
}

// NewScan creates a Scan for the given input.
func NewScan(input string) *Scan {
	return &Scan{Input: input}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the Scan
// as left by previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
type Step interface {
	// Do executes the pipeline step.
	Do(ctx context.Context, scan *Scan) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// A Pipeline holds no per-scan state and may run many Scans concurrently.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged and their errors
// are recorded in the Scan, but subsequent steps still execute.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It checks for cancellation before each step.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps complete (errors are recorded in the Scan).
func (p *Pipeline) Execute(ctx context.Context, scan *Scan) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			scan.Err = ctx.Err()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"input", scan.Input,
			"chars", utf8.RuneCountInString(scan.Input),
		)

		if err := step.Do(ctx, scan); err != nil {
			p.logger.Warn("step failed",
				"step", step.Name(),
				"error", err,
			)

			scan.Err = err

			if !p.continueOnError {
				return err
			}
			continue
		}

		scan.Performed = append(scan.Performed, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
