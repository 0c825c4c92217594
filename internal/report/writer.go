package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/safescan/internal/locale"
	"github.com/nao1215/safescan/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the same API.
type Writer interface {
	// Write outputs the report for a single analysis.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.AnalysisResult) (int, error)

	// WriteBatch outputs the reports for several analyses in input order.
	WriteBatch(results []model.AnalysisResult) (int, error)

	// WriteHistory outputs the stored scan history, oldest first.
	WriteHistory(entries []model.HistoryEntry) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is used to write a report file while still printing to the terminal.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because the writers may use different formats.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.AnalysisResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(result) })
}

// WriteBatch outputs the batch to all configured Writers.
func (m *MultiWriter) WriteBatch(results []model.AnalysisResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteBatch(results) })
}

// WriteHistory outputs the history to all configured Writers.
func (m *MultiWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteHistory(entries) })
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output  io.Writer
	catalog *locale.Catalog
}

// newBaseWriter creates a baseWriter. A nil catalog means English.
func newBaseWriter(output io.Writer, catalog *locale.Catalog) baseWriter {
	if catalog == nil {
		catalog = locale.English()
	}
	return baseWriter{output: output, catalog: catalog}
}

// snippetWidth is the number of input runes shown in reports.
const snippetWidth = 80

// displaySnippet flattens s to one line and cuts it to maxRunes runes,
// adding "..." when something was cut.
func displaySnippet(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	cut := model.TruncateRunes(s, maxRunes)
	if cut != s {
		return cut + "..."
	}
	return cut
}

// formatConfidence renders a confidence as "85.00%", or "-" when absent.
func formatConfidence(c *float64) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", *c)
}

// countUnsafe returns the number of unsafe results.
func countUnsafe(results []model.AnalysisResult) int {
	n := 0
	for i := range results {
		if results[i].Class.IsUnsafe() {
			n++
		}
	}
	return n
}
