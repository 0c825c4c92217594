package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/safescan/internal/analyzer"
	"github.com/nao1215/safescan/internal/classifier"
	"github.com/nao1215/safescan/internal/model"
)

// funcStep is a Step safe to share between goroutines.
type funcStep func(ctx context.Context, scan *Scan) error

func (f funcStep) Do(ctx context.Context, scan *Scan) error { return f(ctx, scan) }

func (f funcStep) Name() string { return "func" }

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("default concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(New())
		if bp.Concurrency() != DefaultConcurrency {
			t.Errorf("expected %d, got %d", DefaultConcurrency, bp.Concurrency())
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(New(), WithConcurrency(0))
		if bp.Concurrency() != DefaultConcurrency {
			t.Errorf("expected %d, got %d", DefaultConcurrency, bp.Concurrency())
		}
	})

	t.Run("applies concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(New(), WithConcurrency(3))
		if bp.Concurrency() != 3 {
			t.Errorf("expected 3, got %d", bp.Concurrency())
		}
	})
}

// TestBatchProcessorProcessBatch tests batch processing.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order", func(t *testing.T) {
		t.Parallel()

		inputs := make([]string, 50)
		unsafe := map[string]bool{}
		for i := range inputs {
			inputs[i] = fmt.Sprintf("input-%d", i)
			if i%3 == 0 {
				unsafe[inputs[i]] = true
			}
		}

		bp := NewBatchProcessor(Default(fakeAnalyzer{unsafe: unsafe}, nil, nil), WithConcurrency(4))
		scans, err := bp.ProcessBatch(context.Background(), inputs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(scans) != len(inputs) {
			t.Fatalf("expected %d scans, got %d", len(inputs), len(scans))
		}
		for i, scan := range scans {
			if scan.Input != inputs[i] || scan.Result == nil || scan.Result.Input != inputs[i] {
				t.Fatalf("scan %d out of order: %+v", i, scan)
			}
			if scan.Result.Class.IsUnsafe() != unsafe[inputs[i]] {
				t.Errorf("scan %d has wrong class %v", i, scan.Result.Class)
			}
		}
	})

	t.Run("limits concurrency", func(t *testing.T) {
		t.Parallel()

		var running, peak atomic.Int32
		slow := funcStep(func(context.Context, *Scan) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return nil
		})

		p := New()
		p.AddStep(slow)

		bp := NewBatchProcessor(p, WithConcurrency(2))
		if _, err := bp.ProcessBatch(context.Background(), make([]string, 10)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("expected at most 2 concurrent scans, saw %d", peak.Load())
		}
	})

	t.Run("step errors do not fail the batch", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(funcStep(func(context.Context, *Scan) error { return errors.New("boom") }))

		scans, err := NewBatchProcessor(p).ProcessBatch(context.Background(), []string{"a", "b"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, scan := range scans {
			if scan.Err == nil {
				t.Error("expected step error recorded in scan")
			}
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		scans, err := NewBatchProcessor(Default(fakeAnalyzer{}, nil, nil)).ProcessBatch(ctx, []string{"a", "b"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(scans) != 2 {
			t.Errorf("expected a scan per input, got %d", len(scans))
		}
	})

	t.Run("real analyzer", func(t *testing.T) {
		t.Parallel()

		m, err := classifier.Default()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a, err := analyzer.New(m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		inputs := []string{"login-update-bank.com", "example.com", ""}
		scans, err := NewBatchProcessor(Default(a, nil, nil)).ProcessBatch(context.Background(), inputs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if scans[0].Result.Class != model.ClassUnsafe || scans[0].Result.Kind != model.KindURL {
			t.Errorf("expected unsafe URL verdict, got %+v", scans[0].Result)
		}
		if scans[1].Result.Class != model.ClassSafe {
			t.Errorf("expected safe verdict, got %+v", scans[1].Result)
		}
		if scans[2].Result.Kind != model.KindText {
			t.Errorf("expected text kind for empty input, got %v", scans[2].Result.Kind)
		}
	})
}

// TestBatchProcessorProcessBatchWithCallback tests streaming results.
func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	inputs := []string{"a", "b", "c", "d"}

	var mu sync.Mutex
	seen := make(map[int]string)

	bp := NewBatchProcessor(Default(fakeAnalyzer{}, nil, nil), WithConcurrency(2))
	err := bp.ProcessBatchWithCallback(context.Background(), inputs, func(scan *Scan, index int) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = scan.Result.Input
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != len(inputs) {
		t.Fatalf("expected %d callbacks, got %d", len(inputs), len(seen))
	}
	for i, input := range inputs {
		if seen[i] != input {
			t.Errorf("callback %d got %q, want %q", i, seen[i], input)
		}
	}
}
