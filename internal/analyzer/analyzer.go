package analyzer

import (
	"strings"

	"github.com/nao1215/safescan/internal/classifier"
	"github.com/nao1215/safescan/internal/model"
	"github.com/nao1215/safescan/internal/urlcheck"
)

// MaxAnalysisChars is the number of runes of input that are analysed.
const MaxAnalysisChars = 8000

// Analyzer classifies free text, single URLs and email-like blobs.
type Analyzer struct {
	classifier *classifier.Classifier
	extractor  *urlcheck.Extractor
	maxChars   int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithExtractor replaces the default URL extractor.
func WithExtractor(e *urlcheck.Extractor) Option {
	return func(a *Analyzer) {
		if e != nil {
			a.extractor = e
		}
	}
}

// WithMaxChars changes the truncation limit.
func WithMaxChars(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxChars = n
		}
	}
}

// New builds an Analyzer around m. The model is validated here and an
// invalid model means no Analyzer.
func New(m *classifier.Model, opts ...Option) (*Analyzer, error) {
	clf, err := classifier.New(m)
	if err != nil {
		return nil, err
	}
	return NewWithClassifier(clf, opts...), nil
}

// NewWithClassifier builds an Analyzer around an existing Classifier.
func NewWithClassifier(clf *classifier.Classifier, opts ...Option) *Analyzer {
	a := &Analyzer{
		classifier: clf,
		extractor:  urlcheck.NewExtractor(),
		maxChars:   MaxAnalysisChars,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Prepare truncates raw to the analysis limit and trims surrounding
// whitespace, in that order.
func (a *Analyzer) Prepare(raw string) string {
	return strings.TrimFunc(model.TruncateRunes(raw, a.maxChars), urlcheck.IsSpace)
}

// Analyze returns the verdict for raw. It never fails.
func (a *Analyzer) Analyze(raw string) model.AnalysisResult {
	input := a.Prepare(raw)

	if isSingleURL(input) {
		return analyzeURL(input)
	}
	return a.analyzeText(input)
}

func isSingleURL(input string) bool {
	return !urlcheck.ContainsSpace(input) && urlcheck.LooksLikeSingleURL(input)
}

func analyzeURL(input string) model.AnalysisResult {
	verdict := urlcheck.Verdict(urlcheck.StripPunctuation(input))

	return model.AnalysisResult{
		Input:       input,
		Kind:        model.KindURL,
		Class:       verdict.Class,
		Confidence:  model.Float(verdict.Confidence),
		Message:     model.ReasonMessage(verdict.Reason),
		TextVerdict: nil,
		URLVerdicts: []model.URLVerdict{verdict},
	}
}

func (a *Analyzer) analyzeText(input string) model.AnalysisResult {
	text := a.classifier.Classify(input)

	urls := a.extractor.URLs(input)
	verdicts := make([]model.URLVerdict, 0, len(urls))
	for _, u := range urls {
		verdicts = append(verdicts, urlcheck.Verdict(u))
	}

	result := model.AnalysisResult{
		Input:       input,
		Kind:        kindOf(input, len(verdicts)),
		TextVerdict: &text,
		URLVerdicts: verdicts,
	}
	result.Class = overallClass(text, verdicts)
	result.Confidence = overallConfidence(result.Class, text, verdicts)

	if len(verdicts) > 0 {
		result.Message = model.SummaryMessage(text.Class, len(verdicts), result.UnsafeURLCount())
	} else {
		result.Message = text.Message
	}

	return result
}

func kindOf(input string, urls int) model.Kind {
	if urls > 0 || strings.ContainsAny(input, "\r\n") {
		return model.KindEmail
	}
	return model.KindText
}

func overallClass(text model.TextVerdict, urls []model.URLVerdict) model.Class {
	if text.Class.IsUnsafe() {
		return model.ClassUnsafe
	}
	for _, u := range urls {
		if u.Class.IsUnsafe() {
			return model.ClassUnsafe
		}
	}
	return model.ClassSafe
}

// overallConfidence is the worst case when unsafe and the weakest safe
// verdict when safe, taken over the parts that agree with class.
func overallConfidence(class model.Class, text model.TextVerdict, urls []model.URLVerdict) *float64 {
	var agreeing []float64
	if text.Class == class {
		agreeing = append(agreeing, text.Confidence)
	}
	for _, u := range urls {
		if u.Class == class {
			agreeing = append(agreeing, u.Confidence)
		}
	}
	if len(agreeing) == 0 {
		return nil
	}

	best := agreeing[0]
	for _, c := range agreeing[1:] {
		if class.IsUnsafe() {
			best = max(best, c)
		} else {
			best = min(best, c)
		}
	}
	return model.Float(classifier.Round2(best))
}
