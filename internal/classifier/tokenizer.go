package classifier

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokenizer splits text into the word tokens the vectorizer counts.
type Tokenizer interface {
	Tokenize(text string, lowercase bool) []string
}

// tokenPattern is the toolkit's default token rule: runs of two or more
// letters, numbers or underscores. Single characters are dropped.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// WordTokenizer is the Tokenizer used by the embedded model.
type WordTokenizer struct{}

// Tokenize returns the tokens of text in order of appearance.
//
// Lowercasing uses full Unicode case mapping (final sigma, dotted capital I)
// rather than strings.ToLower so tokens match the ones the model was
// trained on. A Caser is not safe for concurrent use, so one is built per call.
func (WordTokenizer) Tokenize(text string, lowercase bool) []string {
	if lowercase {
		text = cases.Lower(language.Und).String(text)
	}
	return tokenPattern.FindAllString(text, -1)
}
