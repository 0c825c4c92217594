package classifier

import (
	"bytes"
	_ "embed" // default model tables
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

//go:embed data/model.json
var defaultModelJSON []byte

// Norm is the vector normalisation applied by the vectorizer.
type Norm string

const (
	// NormL2 divides the weighted vector by its Euclidean norm.
	NormL2 Norm = "l2"

	// NormNone leaves the weighted vector as is.
	NormNone Norm = "none"
)

// Format is an on-disk encoding of a Model.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Model validation errors.
var (
	// ErrMissingVectorizer is returned when the vectorizer table is absent.
	ErrMissingVectorizer = errors.New("model: vectorizer table is missing")

	// ErrMissingClassifier is returned when the classifier table is absent.
	ErrMissingClassifier = errors.New("model: classifier table is missing")

	// ErrEmptyVocabulary is returned when the vectorizer has no terms.
	ErrEmptyVocabulary = errors.New("model: vocabulary is empty")

	// ErrLengthMismatch is returned when terms, idf and coef differ in length.
	ErrLengthMismatch = errors.New("model: table lengths do not match")

	// ErrDuplicateTerm is returned when a term appears twice in the vocabulary.
	ErrDuplicateTerm = errors.New("model: duplicate vocabulary term")

	// ErrInvalidNorm is returned for a norm other than "l2" or "none".
	ErrInvalidNorm = errors.New("model: invalid norm")

	// ErrNonFiniteWeight is returned when a weight is NaN or infinite.
	ErrNonFiniteWeight = errors.New("model: non-finite weight")

	// ErrUnknownFormat is returned for an unsupported model file format.
	ErrUnknownFormat = errors.New("model: unknown format")
)

// VectorizerTable holds the TF-IDF vocabulary and weights.
// Terms[i] is feature i; IDF[i] is its weight.
type VectorizerTable struct {
	Terms     []string  `json:"terms" msgpack:"terms"`
	IDF       []float64 `json:"idf" msgpack:"idf"`
	Lowercase bool      `json:"lowercase" msgpack:"lowercase"`
	Norm      Norm      `json:"norm" msgpack:"norm"`
}

// ClassifierTable holds the linear model weights. Coef is parallel to Terms.
type ClassifierTable struct {
	Coef      []float64 `json:"coef" msgpack:"coef"`
	Intercept float64   `json:"intercept" msgpack:"intercept"`
}

// Model is the pair of tables that make up the embedded text model.
type Model struct {
	Vectorizer VectorizerTable `json:"vectorizer" msgpack:"vectorizer"`
	Classifier ClassifierTable `json:"classifier" msgpack:"classifier"`
}

// wireModel is the decoding shape. Pointers let us tell an absent table from
// an empty one. Older exports name the classifier table "model".
type wireModel struct {
	Vectorizer *VectorizerTable `json:"vectorizer" msgpack:"vectorizer"`
	Classifier *ClassifierTable `json:"classifier" msgpack:"classifier"`
	Legacy     *ClassifierTable `json:"model" msgpack:"model"`
}

func (w *wireModel) toModel() (*Model, error) {
	if w.Vectorizer == nil {
		return nil, ErrMissingVectorizer
	}
	clf := w.Classifier
	if clf == nil {
		clf = w.Legacy
	}
	if clf == nil {
		return nil, ErrMissingClassifier
	}

	m := &Model{Vectorizer: *w.Vectorizer, Classifier: *clf}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the model tables. It is called by every decoder and by New,
// so a Model that reaches the scorer always has parallel, finite tables.
func (m *Model) Validate() error {
	vec := m.Vectorizer
	clf := m.Classifier

	if len(vec.Terms) == 0 {
		return ErrEmptyVocabulary
	}
	if len(vec.IDF) != len(vec.Terms) || len(clf.Coef) != len(vec.Terms) {
		return fmt.Errorf("%w: terms=%d idf=%d coef=%d",
			ErrLengthMismatch, len(vec.Terms), len(vec.IDF), len(clf.Coef))
	}

	switch vec.Norm {
	case NormL2, NormNone, "":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidNorm, vec.Norm)
	}

	seen := make(map[string]struct{}, len(vec.Terms))
	for _, term := range vec.Terms {
		if _, dup := seen[term]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateTerm, term)
		}
		seen[term] = struct{}{}
	}

	for i := range vec.Terms {
		if !isFinite(vec.IDF[i]) {
			return fmt.Errorf("%w: idf[%d]", ErrNonFiniteWeight, i)
		}
		if !isFinite(clf.Coef[i]) {
			return fmt.Errorf("%w: coef[%d]", ErrNonFiniteWeight, i)
		}
	}
	if !isFinite(clf.Intercept) {
		return fmt.Errorf("%w: intercept", ErrNonFiniteWeight)
	}

	return nil
}

// NormOrNone returns the configured norm, treating an empty value as NormNone.
func (t VectorizerTable) NormOrNone() Norm {
	if t.Norm == "" {
		return NormNone
	}
	return t.Norm
}

// Default returns the model embedded in the binary.
func Default() (*Model, error) {
	m, err := Decode(bytes.NewReader(defaultModelJSON), FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded model: %w", err)
	}
	return m, nil
}

// Decode reads and validates a model in the given format.
func Decode(r io.Reader, format Format) (*Model, error) {
	var w wireModel

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode model: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode model: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return w.toModel()
}

// Encode writes the model in the given format.
func Encode(w io.Writer, m *Model, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(m)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatFromPath picks a format from a file extension.
// ".msgpack" and ".mpk" select msgpack; anything else is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// LoadFile reads a model from disk, choosing the format by extension.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided model path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	return Decode(f, FormatFromPath(path))
}

// Load returns the model at path, or the embedded model when path is empty.
func Load(path string) (*Model, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
