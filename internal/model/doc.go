// Package model defines the core data structures used throughout SafeScan.
//
// This package contains the following main types:
//   - Class, Kind, ReasonCode: locale-neutral enumerations
//   - URLVerdict and TextVerdict: per-signal judgements
//   - AnalysisResult: the merged verdict returned by the analyzer
//   - HistoryEntry: the record kept by the history store
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The analyzer, report, locale and history packages all need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage. Nothing in this package produces display strings; that
// is the job of the locale package.
package model
