package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/safescan/internal/locale"
	"github.com/nao1215/safescan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, catalog *locale.Catalog) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output, catalog),
	}
}

// Write outputs a single analysis in Markdown format.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, "SafeScan Report")
	w.writeOverview(md, result)
	w.writeAlert(md, result)
	w.writeTextVerdict(md, result.TextVerdict)
	w.writeURLVerdicts(md, result.URLVerdicts)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs a summary table, a distribution chart and the URL
// checks of every unsafe result.
func (w *MarkdownWriter) WriteBatch(results []model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)
	c := w.catalog

	w.writeHeader(md, "SafeScan Batch Report")

	unsafe := countUnsafe(results)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Total", strconv.Itoa(len(results))},
			{c.T(locale.KeySafe), strconv.Itoa(len(results) - unsafe)},
			{c.T(locale.KeyUnsafe), strconv.Itoa(unsafe)},
		},
	})
	md.PlainText("")

	if len(results) > 0 {
		w.writePieChart(md, len(results)-unsafe, unsafe)
	}

	if unsafe > 0 {
		md.Cautionf("%d of %d input(s) look unsafe.", unsafe, len(results))
	} else {
		md.Tip("No unsafe input detected.")
	}
	md.PlainText("")

	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, len(results))
	for i := range results {
		r := &results[i]
		rows[i] = []string{
			strconv.Itoa(i + 1),
			classBadge(c, r.Class),
			formatConfidence(r.Confidence),
			c.Kind(r.Kind),
			escapeCell(displaySnippet(r.Input, 60)),
			escapeCell(c.Message(r.Message)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", c.T(locale.KeyResult), c.T(locale.KeyConfidence), "Kind", c.T(locale.KeyInput), "Message"},
		Rows:   rows,
	})
	md.PlainText("")

	for i := range results {
		r := &results[i]
		if !r.Class.IsUnsafe() || len(r.URLVerdicts) == 0 {
			continue
		}
		var lines []string
		for _, v := range r.URLVerdicts {
			lines = append(lines, fmt.Sprintf("%s %s: %s", v.URL, c.Class(v.Class), c.Reason(v.Reason)))
		}
		md.Details(fmt.Sprintf("#%d %s", i+1, c.T(locale.KeyURLChecks)), strings.Join(lines, "\n"))
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteHistory outputs the history as a table.
func (w *MarkdownWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	md := markdown.NewMarkdown(w.output)
	c := w.catalog

	md.H1(c.T(locale.KeyHistoryTitle))
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText(c.T(locale.KeyHistoryEmpty))
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.At.Local().Format(model.HistoryTimeFormat),
			classBadge(c, e.Class),
			formatConfidence(e.Confidence),
			c.Kind(e.Kind),
			escapeCell(displaySnippet(e.Snippet, 60)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{c.T(locale.KeyTime), c.T(locale.KeyResult), c.T(locale.KeyConfidence), "Kind", c.T(locale.KeyInput)},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// writeHeader writes the report title.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, title string) {
	md.H1(title)
	md.PlainText("")
}

// writeOverview writes the merged verdict table.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, result *model.AnalysisResult) {
	c := w.catalog

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{c.T(locale.KeyInput), "`" + escapeCell(displaySnippet(result.Input, snippetWidth)) + "`"},
			{"Kind", c.Kind(result.Kind)},
			{c.T(locale.KeyResult), classBadge(c, result.Class)},
			{c.T(locale.KeyConfidence), formatConfidence(result.Confidence)},
			{"Message", escapeCell(c.Message(result.Message))},
		},
	})
	md.PlainText("")
}

// writeAlert writes an alert matching the verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.AnalysisResult) {
	unsafeURLs := result.UnsafeURLCount()
	textUnsafe := result.TextVerdict != nil && result.TextVerdict.Class.IsUnsafe()

	switch {
	case textUnsafe && unsafeURLs > 0:
		md.Cautionf("The text reads like phishing and %d URL(s) look suspicious.", unsafeURLs)
	case unsafeURLs > 0:
		md.Warningf("%d URL(s) look suspicious.", unsafeURLs)
	case textUnsafe:
		md.Warningf("The text reads like phishing.")
	default:
		md.Tip("No sign of phishing detected.")
	}
	md.PlainText("")
}

// writeTextVerdict writes the model section. Nothing is written on the URL-only path.
func (w *MarkdownWriter) writeTextVerdict(md *markdown.Markdown, tv *model.TextVerdict) {
	if tv == nil {
		return
	}
	c := w.catalog

	md.H2(c.T(locale.KeyTextAnalysis))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{c.T(locale.KeyResult), c.T(locale.KeyConfidence), "Score", "Message"},
		Rows: [][]string{{
			classBadge(c, tv.Class),
			formatConfidence(&tv.Confidence),
			strconv.FormatFloat(tv.RawScore, 'f', 4, 64),
			escapeCell(c.Message(tv.Message)),
		}},
	})
	md.PlainText("")
}

// writeURLVerdicts writes one table row per checked URL.
func (w *MarkdownWriter) writeURLVerdicts(md *markdown.Markdown, verdicts []model.URLVerdict) {
	c := w.catalog

	md.H2(c.T(locale.KeyURLChecks))
	md.PlainText("")

	if len(verdicts) == 0 {
		md.PlainText(c.T(locale.KeyURLsNone))
		md.PlainText("")
		return
	}

	rows := make([][]string, len(verdicts))
	for i, v := range verdicts {
		rows[i] = []string{
			"`" + escapeCell(v.URL) + "`",
			classBadge(c, v.Class),
			formatConfidence(&v.Confidence),
			escapeCell(c.Reason(v.Reason)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{c.T(locale.KeyURL), c.T(locale.KeyResult), c.T(locale.KeyConfidence), c.T(locale.KeyReason)},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of safe against unsafe inputs.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, safe, unsafe int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Verdict Distribution"),
		piechart.WithShowData(true),
	)

	if n, err := safecast.Conv[uint64](safe); err == nil && n > 0 {
		chart.LabelAndIntValue(w.catalog.T(locale.KeySafe), n)
	}
	if n, err := safecast.Conv[uint64](unsafe); err == nil && n > 0 {
		chart.LabelAndIntValue(w.catalog.T(locale.KeyUnsafe), n)
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*%s %s*", w.catalog.T(locale.KeyFooter), w.catalog.T(locale.KeyPrivacyNote))
	md.PlainText("")
	md.PlainTextf("*Report generated by [SafeScan](https://github.com/nao1215/safescan)*")
}

// classBadge returns the localized class name with a status emoji.
func classBadge(c *locale.Catalog, class model.Class) string {
	if class.IsUnsafe() {
		return "❌ " + c.Class(class)
	}
	return "✅ " + c.Class(class)
}

// cellReplacer escapes characters that would break a table row.
var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// escapeCell makes s safe to place in a Markdown table cell.
func escapeCell(s string) string {
	return cellReplacer.Replace(s)
}
