// Package classifier implements the embedded text model of SafeScan.
//
// The model is a TF-IDF vectorizer followed by a binary logistic regression,
// exported from a scikit-learn style toolkit as plain tables:
//
//	{
//	  "vectorizer": {"terms": [...], "idf": [...], "lowercase": true, "norm": "l2"},
//	  "classifier": {"coef": [...], "intercept": -0.42}
//	}
//
// Scoring reproduces the toolkit's decision function: the class is unsafe
// only when intercept + coef·x is strictly greater than zero. The logistic
// probability is used for the reported confidence only.
//
// A Model is validated once when a Classifier is built and is never mutated
// afterwards, so a Classifier is safe for concurrent use.
package classifier
