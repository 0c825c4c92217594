package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/safescan/internal/locale"
	"github.com/nao1215/safescan/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// version is the SafeScan version written into every document.
	version string

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, catalog *locale.Catalog, version string, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output, catalog),
		version:    version,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONResult is an analysis result plus its rendered message.
//
// Design decision: We embed the result rather than copying its fields so the
// locale-neutral codes stay the source of truth and the rendered text is an
// addition that consumers may ignore.
type JSONResult struct {
	*model.AnalysisResult

	// MessageText is Message rendered in the report language.
	MessageText string `json:"messageText"`
}

// JSONReport is the document written for a single analysis.
type JSONReport struct {
	// Version is the SafeScan version that generated this report.
	Version string `json:"version"`

	// Lang is the language used for MessageText.
	Lang string `json:"lang"`

	Result JSONResult `json:"result"`
}

// JSONBatchReport is the document written for a batch of analyses.
type JSONBatchReport struct {
	Version string       `json:"version"`
	Lang    string       `json:"lang"`
	Total   int          `json:"total"`
	Unsafe  int          `json:"unsafe"`
	Results []JSONResult `json:"results"`
}

// JSONHistoryEntry is a history entry plus its display fields.
type JSONHistoryEntry struct {
	model.HistoryEntry

	// Time is At formatted for display in local time.
	Time string `json:"time"`

	MessageText string `json:"messageText"`
}

// JSONHistory is the document written for the scan history.
type JSONHistory struct {
	Version string             `json:"version"`
	Lang    string             `json:"lang"`
	Entries []JSONHistoryEntry `json:"entries"`
}

// Write outputs a single analysis in JSON format.
func (w *JSONWriter) Write(result *model.AnalysisResult) (int, error) {
	return w.writeJSON(&JSONReport{
		Version: w.version,
		Lang:    w.catalog.Lang(),
		Result:  w.jsonResult(result),
	})
}

// WriteBatch outputs all results in one JSON document.
func (w *JSONWriter) WriteBatch(results []model.AnalysisResult) (int, error) {
	out := make([]JSONResult, len(results))
	for i := range results {
		out[i] = w.jsonResult(&results[i])
	}

	return w.writeJSON(&JSONBatchReport{
		Version: w.version,
		Lang:    w.catalog.Lang(),
		Total:   len(results),
		Unsafe:  countUnsafe(results),
		Results: out,
	})
}

// WriteHistory outputs the history in JSON format.
func (w *JSONWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	out := make([]JSONHistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = JSONHistoryEntry{
			HistoryEntry: e,
			Time:         e.At.Local().Format(model.HistoryTimeFormat),
			MessageText:  w.catalog.Message(e.Message),
		}
	}

	return w.writeJSON(&JSONHistory{
		Version: w.version,
		Lang:    w.catalog.Lang(),
		Entries: out,
	})
}

func (w *JSONWriter) jsonResult(result *model.AnalysisResult) JSONResult {
	return JSONResult{
		AnalysisResult: result,
		MessageText:    w.catalog.Message(result.Message),
	}
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
