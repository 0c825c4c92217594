package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/nao1215/safescan/internal/locale"
	"github.com/nao1215/safescan/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: Color is opt-in per writer rather than taken from the
// global fatih/color setting, so a report written to a file never carries
// escape codes even when stdout is a terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds the raw model score to the text analysis section.
	verbose bool

	safe   *color.Color
	unsafe *color.Color
	dim    *color.Color
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithColor enables or disables ANSI colors.
func WithColor(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		for _, c := range []*color.Color{w.safe, w.unsafe, w.dim} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
// Colors are off unless WithColor(true) is given.
func NewSimpleWriter(output io.Writer, catalog *locale.Catalog, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output, catalog),
		safe:       color.New(color.FgGreen, color.Bold),
		unsafe:     color.New(color.FgRed, color.Bold),
		dim:        color.New(color.Faint),
	}
	WithColor(false)(w)

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs a single analysis in human-readable format.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, "SAFESCAN REPORT")
	w.writeOverview(&sb, result)
	w.writeTextVerdict(&sb, result.TextVerdict)
	w.writeURLVerdicts(&sb, result.URLVerdicts)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs one compact block per result and a total line.
func (w *SimpleWriter) WriteBatch(results []model.AnalysisResult) (int, error) {
	var sb strings.Builder
	c := w.catalog

	w.writeHeader(&sb, "SAFESCAN BATCH REPORT")

	for i := range results {
		r := &results[i]
		sb.WriteString(fmt.Sprintf("%3d. %s  %s  %s  %s\n",
			i+1,
			w.label(r.Class),
			formatConfidence(r.Confidence),
			c.Kind(r.Kind),
			displaySnippet(r.Input, snippetWidth-30),
		))
		sb.WriteString(fmt.Sprintf("     %s\n", c.Message(r.Message)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Total: %d  %s: %d\n\n", len(results), c.T(locale.KeyUnsafe), countUnsafe(results)))
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory outputs the history as one line per entry.
func (w *SimpleWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	var sb strings.Builder
	c := w.catalog

	w.writeSection(&sb, c.T(locale.KeyHistoryTitle))

	if len(entries) == 0 {
		sb.WriteString("  " + c.T(locale.KeyHistoryEmpty) + "\n")
		return w.output.Write([]byte(sb.String()))
	}

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %s  %s  %-8s %-6s %s\n",
			e.At.Local().Format(model.HistoryTimeFormat),
			w.label(e.Class),
			formatConfidence(e.Confidence),
			c.Kind(e.Kind),
			displaySnippet(e.Snippet, snippetWidth-40),
		))
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%*s\n", 35+len(title)/2, title))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeSection writes a section title between rules.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(strings.ToUpper(title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeOverview writes the merged verdict.
func (w *SimpleWriter) writeOverview(sb *strings.Builder, result *model.AnalysisResult) {
	c := w.catalog

	rows := [][2]string{
		{c.T(locale.KeyInput), displaySnippet(result.Input, snippetWidth)},
		{"Kind", c.Kind(result.Kind)},
		{c.T(locale.KeyResult), w.label(result.Class)},
		{c.T(locale.KeyConfidence), formatConfidence(result.Confidence)},
		{"Message", c.Message(result.Message)},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-12s %s\n", row[0]+":", row[1]))
	}
	sb.WriteString("\n")
}

// writeTextVerdict writes the model section. Nothing is written on the URL-only path.
func (w *SimpleWriter) writeTextVerdict(sb *strings.Builder, tv *model.TextVerdict) {
	if tv == nil {
		return
	}
	c := w.catalog

	w.writeSection(sb, c.T(locale.KeyTextAnalysis))
	sb.WriteString(fmt.Sprintf("  %s (%s)\n", w.label(tv.Class), formatConfidence(&tv.Confidence)))
	if w.verbose {
		sb.WriteString(w.dim.Sprintf("      score=%.4f\n", tv.RawScore))
	}
	sb.WriteString(fmt.Sprintf("      %s\n\n", c.Message(tv.Message)))
}

// writeURLVerdicts writes one entry per checked URL.
func (w *SimpleWriter) writeURLVerdicts(sb *strings.Builder, verdicts []model.URLVerdict) {
	c := w.catalog

	w.writeSection(sb, c.T(locale.KeyURLChecks))

	if len(verdicts) == 0 {
		sb.WriteString("  " + c.T(locale.KeyURLsNone) + "\n\n")
		return
	}

	for _, v := range verdicts {
		sb.WriteString(fmt.Sprintf("  %s %s\n", w.indicator(v.Class), v.URL))
		sb.WriteString(fmt.Sprintf("      %s (%.2f%%) %s\n", c.Class(v.Class), v.Confidence, c.Reason(v.Reason)))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(w.catalog.T(locale.KeyPrivacyNote))
	sb.WriteString("\n")
	sb.WriteString(w.catalog.T(locale.KeyFooter))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// indicator returns "[+]" for safe and "[!]" for unsafe, colored when enabled.
func (w *SimpleWriter) indicator(class model.Class) string {
	if class.IsUnsafe() {
		return w.unsafe.Sprint("[!]")
	}
	return w.safe.Sprint("[+]")
}

// label returns the indicator followed by the localized class name.
func (w *SimpleWriter) label(class model.Class) string {
	name := w.catalog.Class(class)
	if class.IsUnsafe() {
		return w.unsafe.Sprint("[!] " + name)
	}
	return w.safe.Sprint("[+] " + name)
}
