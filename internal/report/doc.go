// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown for sharing
//
// Every writer renders single analysis results, batches of results and the
// scan history. Display strings come from a locale.Catalog; the JSON output
// carries both the locale-neutral codes and the rendered message.
//
// Design decision: We separate report writing from the analysis types
// (which are in the model package) so that new output formats can be added
// without touching the analyzer.
package report
