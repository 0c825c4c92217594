package classifier

import (
	"math"

	"github.com/nao1215/safescan/internal/model"
)

// Linear is a binary linear classifier: score = intercept + coef·x.
type Linear struct {
	coef      []float64
	intercept float64
}

// NewLinear copies the weights of a validated table.
func NewLinear(table ClassifierTable) *Linear {
	coef := make([]float64, len(table.Coef))
	copy(coef, table.Coef)
	return &Linear{coef: coef, intercept: table.Intercept}
}

// Score returns the decision function value for vec.
// The dot product is summed first over non-zero features in index order and
// the intercept is added last, the same order the toolkit uses for sparse input.
func (l *Linear) Score(vec []float64) float64 {
	var dot float64
	for i, x := range vec {
		if x == 0 || i >= len(l.coef) {
			continue
		}
		dot += l.coef[i] * x
	}
	return dot + l.intercept
}

// ClassOf applies the decision boundary: unsafe only when score > 0.
func ClassOf(score float64) model.Class {
	if score > 0 {
		return model.ClassUnsafe
	}
	return model.ClassSafe
}

// Sigmoid is the logistic function, split on the sign of x so that
// math.Exp never overflows.
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	z := math.Exp(x)
	return z / (1 + z)
}

// Confidence is the probability of the predicted class as a percentage,
// rounded to two decimals. It is always within [50, 100].
func Confidence(score float64) float64 {
	if math.IsNaN(score) {
		return 50
	}
	p := Sigmoid(score)
	return Round2(math.Max(p, 1-p) * 100)
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
