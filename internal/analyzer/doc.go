// Package analyzer merges the text model and the URL rules into one verdict.
//
// Analyze picks one of two paths. When the trimmed input is a lone URL only
// the URL rules run and the result kind is "url". Otherwise the text model
// scores the whole input, every extracted URL is checked, and the overall
// class is unsafe when any part is unsafe.
//
// An Analyzer holds no mutable state and is safe for concurrent use.
package analyzer
