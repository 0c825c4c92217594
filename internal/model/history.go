package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one line of the scan history.
// It deliberately keeps only a short snippet of the analysed input.
type HistoryEntry struct {
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
	Kind       Kind      `json:"kind"`
	Snippet    string    `json:"input"`
	Class      Class     `json:"class"`
	Confidence *float64  `json:"confidence"`
	Message    Message   `json:"message"`
}

// HistoryTimeFormat is the display format for HistoryEntry.At.
const HistoryTimeFormat = "2006-01-02 15:04"

// NewHistoryEntry derives a history entry from an analysis result.
// The snippet is the raw input cut to snippetChars runes.
func NewHistoryEntry(input string, result *AnalysisResult, at time.Time, snippetChars int) HistoryEntry {
	return HistoryEntry{
		ID:         uuid.NewString(),
		At:         at,
		Kind:       result.Kind,
		Snippet:    TruncateRunes(input, snippetChars),
		Class:      result.Class,
		Confidence: result.Confidence,
		Message:    result.Message,
	}
}

// TruncateRunes returns s cut to at most n runes.
// A non-positive n returns s unchanged.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
