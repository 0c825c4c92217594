package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of inputs analysed at once when
// WithConcurrency is not given.
const DefaultConcurrency = 8

// BatchProcessor handles concurrent processing of many inputs.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-input execution
// 2. It provides cleaner separation of concerns
//
// The analyzer is immutable after construction, so one Pipeline is shared
// by every goroutine.
type BatchProcessor struct {
	// pipeline runs each input.
	pipeline *Pipeline

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor running p for every input.
func NewBatchProcessor(p *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipeline:    p,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Concurrency returns the configured concurrency limit.
func (bp *BatchProcessor) Concurrency() int {
	return bp.concurrency
}

// ProcessBatch analyses all inputs concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
//
// The returned slice has one Scan per input in input order. Step errors are
// recorded in the Scan; the error return is only set on cancellation, in
// which case Scans that never started have a nil Result.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, inputs []string) ([]*Scan, error) {
	bp.logger.Info("starting batch processing",
		"total_inputs", len(inputs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index, so no lock is needed.
	scans := make([]*Scan, len(inputs))
	for i, input := range inputs {
		scans[i] = NewScan(input)
	}

	err := bp.run(ctx, scans, nil)

	bp.logger.Info("batch processing complete",
		"total_inputs", len(inputs),
		"elapsed", time.Since(startTime),
	)

	return scans, err
}

// ProcessBatchWithCallback analyses all inputs and calls callback for each
// completed Scan with its index in inputs. This is useful for streaming
// results.
//
// The callback is called from the goroutine that completed the scan, so it
// should be thread-safe if it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	inputs []string,
	callback func(scan *Scan, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_inputs", len(inputs),
		"concurrency", bp.concurrency,
	)

	scans := make([]*Scan, len(inputs))
	for i, input := range inputs {
		scans[i] = NewScan(input)
	}

	return bp.run(ctx, scans, callback)
}

func (bp *BatchProcessor) run(ctx context.Context, scans []*Scan, callback func(*Scan, int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, scan := range scans {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			// Step errors are kept in the scan; only cancellation stops the batch.
			if err := bp.pipeline.Execute(ctx, scan); err != nil && ctx.Err() != nil {
				return err
			}

			if callback != nil {
				callback(scan, i)
			}
			return nil
		})
	}

	return g.Wait()
}
