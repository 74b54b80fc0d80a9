package models

import "errors"

var (
	// ErrUnknownTerm is returned when a term outside the vocabulary is requested.
	ErrUnknownTerm = errors.New("unknown term")
	// ErrEmptyDocument is returned when a document has no term occurrences, so TF is undefined.
	ErrEmptyDocument = errors.New("empty document")
	// ErrZeroVector is returned by cosine comparisons with a zero-norm operand.
	ErrZeroVector = errors.New("zero vector")
	// ErrEmptyCorpus marks a corpus with no documents or no sentences.
	ErrEmptyCorpus = errors.New("empty corpus")
)
