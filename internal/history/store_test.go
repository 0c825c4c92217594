package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/safescan/internal/model"
)

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T, capacity int) *Store {
	t.Helper()

	opts := DefaultOptions()
	opts.Capacity = capacity

	s, err := Open(t.TempDir(), opts)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testEntry(i int) model.HistoryEntry {
	return model.HistoryEntry{
		ID:         fmt.Sprintf("entry-%d", i),
		At:         time.Date(2026, 1, 2, 3, 4, i, 0, time.UTC),
		Kind:       model.KindText,
		Snippet:    fmt.Sprintf("input %d", i),
		Class:      model.ClassSafe,
		Confidence: model.Float(float64(50 + i)),
		Message:    model.TextMessage(model.ClassSafe),
	}
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "newdir", "subdir")
		s, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer s.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if s.Capacity() != DefaultCapacity {
			t.Errorf("Capacity() = %d, want %d", s.Capacity(), DefaultCapacity)
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{})
		if !errors.Is(err, ErrDatabaseNotFound) {
			t.Errorf("Open() error = %v, want %v", err, ErrDatabaseNotFound)
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Append(context.Background(), testEntry(1)); err != nil {
			t.Fatal(err)
		}
		_ = s.Close()

		s, err = Open(dir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		defer s.Close()

		n, err := s.Count(context.Background())
		if err != nil || n != 1 {
			t.Errorf("Count() = %d, %v, want 1", n, err)
		}
	})
}

// TestAppendTrimsToCapacity tests that only the newest entries survive.
func TestAppendTrimsToCapacity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t, 3)

	for i := 1; i <= 5; i++ {
		if err := s.Append(ctx, testEntry(i)); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(entries))
	}
	for i, want := range []string{"entry-3", "entry-4", "entry-5"} {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, want)
		}
	}
}

// TestListRoundTrip tests that stored fields come back unchanged.
func TestListRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t, DefaultCapacity)

	withSummary := testEntry(1)
	withSummary.Kind = model.KindEmail
	withSummary.Class = model.ClassUnsafe
	withSummary.Message = model.SummaryMessage(model.ClassSafe, 2, 1)

	noConfidence := testEntry(2)
	noConfidence.Confidence = nil

	for _, e := range []model.HistoryEntry{withSummary, noConfidence} {
		if err := s.Append(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(entries))
	}

	got := entries[0]
	if !got.At.Equal(withSummary.At) {
		t.Errorf("At = %v, want %v", got.At, withSummary.At)
	}
	if got.Kind != model.KindEmail || got.Class != model.ClassUnsafe || got.Snippet != "input 1" {
		t.Errorf("entry = %+v", got)
	}
	if got.Confidence == nil || *got.Confidence != 51 {
		t.Errorf("Confidence = %v, want 51", got.Confidence)
	}
	if got.Message.Summary == nil || *got.Message.Summary != *withSummary.Message.Summary {
		t.Errorf("Message = %+v, want %+v", got.Message, withSummary.Message)
	}

	if entries[1].Confidence != nil {
		t.Errorf("Confidence = %v, want nil", *entries[1].Confidence)
	}
}

// TestRecord tests building an entry from an analysis result.
func TestRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t, DefaultCapacity)
	s.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC) }

	input := strings.Repeat("ش", SnippetChars+20)
	result := &model.AnalysisResult{
		Kind:       model.KindText,
		Class:      model.ClassUnsafe,
		Confidence: model.Float(73.1),
		Message:    model.TextMessage(model.ClassUnsafe),
	}

	entry, err := s.Record(ctx, input, result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if entry.ID == "" {
		t.Error("Record() returned an entry without ID")
	}
	if got := len([]rune(entry.Snippet)); got != SnippetChars {
		t.Errorf("snippet length = %d, want %d", got, SnippetChars)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Fatalf("List() = %+v, want the recorded entry", entries)
	}
	if got := entries[0].At.Format(model.HistoryTimeFormat); got != "2026-03-04 05:06" {
		t.Errorf("At = %q, want %q", got, "2026-03-04 05:06")
	}
}

// TestClear tests removing every entry.
func TestClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t, DefaultCapacity)

	for i := range 3 {
		if err := s.Append(ctx, testEntry(i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil || n != 0 {
		t.Errorf("Count() = %d, %v, want 0", n, err)
	}
}

// TestParseTimestamp tests the accepted formats.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, s := range []string{"2026-01-02T03:04:05Z", "2026-01-02 03:04:05"} {
		if got := parseTimestamp(s); !got.Equal(want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
	if got := parseTimestamp("not a time"); !got.IsZero() {
		t.Errorf("parseTimestamp(invalid) = %v, want zero", got)
	}
}
