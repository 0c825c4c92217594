// Package history keeps a short log of recent scans in SQLite.
//
// The log is bounded: every Append trims the table so that only the newest
// Capacity entries survive. Entries hold a snippet of the input rather than
// the full text.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// history must survive between CLI invocations and the CGO-free driver keeps
// cross-compilation easy. A single connection is enough since the CLI is
// the only writer.
package history
