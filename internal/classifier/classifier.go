package classifier

import "github.com/nao1215/safescan/internal/model"

// Classifier scores text with a validated model.
type Classifier struct {
	vectorizer *Vectorizer
	linear     *Linear
}

// Option configures a Classifier.
type Option func(*options)

type options struct {
	tokenizer Tokenizer
}

// WithTokenizer replaces the default WordTokenizer.
func WithTokenizer(t Tokenizer) Option {
	return func(o *options) {
		o.tokenizer = t
	}
}

// New validates m and builds a Classifier from it.
// An invalid model is a fatal configuration error for callers.
func New(m *Model, opts ...Option) (*Classifier, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	o := options{tokenizer: WordTokenizer{}}
	for _, opt := range opts {
		opt(&o)
	}

	return &Classifier{
		vectorizer: NewVectorizer(m.Vectorizer, o.tokenizer),
		linear:     NewLinear(m.Classifier),
	}, nil
}

// Dim returns the vocabulary size of the underlying model.
func (c *Classifier) Dim() int {
	return c.vectorizer.Dim()
}

// Vectorize exposes the feature vector for text.
func (c *Classifier) Vectorize(text string) []float64 {
	return c.vectorizer.Vectorize(text)
}

// Score returns the raw decision function value for text.
func (c *Classifier) Score(text string) float64 {
	return c.linear.Score(c.vectorizer.Vectorize(text))
}

// Classify returns the text verdict for text.
func (c *Classifier) Classify(text string) model.TextVerdict {
	score := c.Score(text)
	class := ClassOf(score)

	return model.TextVerdict{
		Class:      class,
		Confidence: Confidence(score),
		RawScore:   score,
		Message:    model.TextMessage(class),
	}
}
