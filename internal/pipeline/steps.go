package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/safescan/internal/model"
)

// ErrNoResult is returned by steps that need a verdict when the
// analysis step has not run.
var ErrNoResult = errors.New("scan has no analysis result")

// Analyzer produces a verdict for raw input.
// *analyzer.Analyzer satisfies it.
type Analyzer interface {
	Analyze(raw string) model.AnalysisResult
}

// Recorder stores a verdict in the scan history.
// *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, input string, result *model.AnalysisResult) (model.HistoryEntry, error)
}

// AnalyzeStep runs the analyzer over the scan input.
type AnalyzeStep struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets the logger for the step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates an AnalyzeStep.
func NewAnalyzeStep(analyzer Analyzer, opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		analyzer: analyzer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do sets scan.Result. Analysis never fails.
func (s *AnalyzeStep) Do(_ context.Context, scan *Scan) error {
	result := s.analyzer.Analyze(scan.Input)
	scan.Result = &result

	s.logger.Debug("analysis complete",
		"kind", result.Kind,
		"class", result.Class,
		"urls", len(result.URLVerdicts),
		"unsafe_urls", result.UnsafeURLCount(),
	)
	return nil
}

// HistoryStep records the verdict in the scan history.
type HistoryStep struct {
	recorder Recorder
	logger   *slog.Logger
}

// HistoryStepOption configures a HistoryStep.
type HistoryStepOption func(*HistoryStep)

// WithHistoryLogger sets the logger for the step.
func WithHistoryLogger(logger *slog.Logger) HistoryStepOption {
	return func(s *HistoryStep) {
		s.logger = logger
	}
}

// NewHistoryStep creates a HistoryStep.
func NewHistoryStep(recorder Recorder, opts ...HistoryStepOption) *HistoryStep {
	s := &HistoryStep{
		recorder: recorder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *HistoryStep) Name() string {
	return "history"
}

// Do records scan.Result and sets scan.Entry. The entry keeps the analysed
// input, and nothing is recorded when that input is empty.
func (s *HistoryStep) Do(ctx context.Context, scan *Scan) error {
	if scan.Result == nil {
		return ErrNoResult
	}
	if scan.Result.Input == "" {
		s.logger.Debug("history skipped", "reason", "empty input")
		return nil
	}

	entry, err := s.recorder.Record(ctx, scan.Result.Input, scan.Result)
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	scan.Entry = &entry

	s.logger.Debug("history recorded", "id", entry.ID)
	return nil
}

// Default builds the standard pipeline: analysis, then history when
// recorder is not nil. History failures never stop the pipeline.
func Default(analyzer Analyzer, recorder Recorder, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	p := New(WithLogger(logger), WithContinueOnError(true))
	p.AddStep(NewAnalyzeStep(analyzer, WithAnalyzeLogger(logger)))
	if recorder != nil {
		p.AddStep(NewHistoryStep(recorder, WithHistoryLogger(logger)))
	}
	return p
}
