package classifier

import "math"

// Vectorizer turns text into a TF-IDF feature vector over a fixed vocabulary.
type Vectorizer struct {
	index     map[string]int
	idf       []float64
	lowercase bool
	norm      Norm
	tokenizer Tokenizer
}

// NewVectorizer builds the term lookup for table once.
// The table must already be validated.
func NewVectorizer(table VectorizerTable, tokenizer Tokenizer) *Vectorizer {
	index := make(map[string]int, len(table.Terms))
	for i, term := range table.Terms {
		index[term] = i
	}

	idf := make([]float64, len(table.IDF))
	copy(idf, table.IDF)

	if tokenizer == nil {
		tokenizer = WordTokenizer{}
	}

	return &Vectorizer{
		index:     index,
		idf:       idf,
		lowercase: table.Lowercase,
		norm:      table.NormOrNone(),
		tokenizer: tokenizer,
	}
}

// Dim returns the vocabulary size, which is the length of every vector.
func (v *Vectorizer) Dim() int {
	return len(v.idf)
}

// Vectorize returns the weighted feature vector for text.
// The result always has length Dim(); unknown tokens are ignored and an
// all-zero vector is left unnormalised.
func (v *Vectorizer) Vectorize(text string) []float64 {
	vec := make([]float64, len(v.idf))

	for _, token := range v.tokenizer.Tokenize(text, v.lowercase) {
		if i, ok := v.index[token]; ok {
			vec[i]++
		}
	}

	for i, count := range vec {
		if count != 0 {
			vec[i] = count * v.idf[i]
		}
	}

	if v.norm == NormL2 {
		var sumSq float64
		for _, x := range vec {
			sumSq += x * x
		}
		if norm := math.Sqrt(sumSq); norm > 0 {
			for i := range vec {
				vec[i] /= norm
			}
		}
	}

	return vec
}
