// Package analysis turns raw text into documents of analyzed sentences: NFKC
// normalization, sentence splitting, tokenization, stop-word removal and stemming.
package analysis

import (
	"fmt"
	"strings"

	bleveanalysis "github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/registry"
	"github.com/hyperjump/yoyaku/internal/models"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

type termAnalyzer interface {
	Analyze(input []byte) bleveanalysis.TokenStream
}

type sentenceTokenizer interface {
	Tokenize(text string) []*sentences.Sentence
}

// Analyzer is safe for concurrent use.
type Analyzer struct {
	terms     termAnalyzer
	sentences sentenceTokenizer
}

// New returns an English analyzer.
func New() (*Analyzer, error) {
	a, err := registry.NewCache().AnalyzerNamed(en.AnalyzerName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s analyzer: %w", en.AnalyzerName, err)
	}
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence tokenizer: %w", err)
	}
	return &Analyzer{terms: a, sentences: tok}, nil
}

// Normalize applies NFKC so compatibility forms (ligatures, full-width letters) analyze
// like their plain equivalents.
func Normalize(text string) string {
	return norm.NFKC.String(text)
}

// Sentences splits text into trimmed sentences with internal whitespace collapsed.
// Empty sentences are dropped.
func (a *Analyzer) Sentences(text string) []string {
	var out []string
	for _, s := range a.sentences.Tokenize(Normalize(text)) {
		t := strings.Join(strings.Fields(s.Text), " ")
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Terms returns the lower-cased, stemmed, non-stop-word terms of sentence in order.
func (a *Analyzer) Terms(sentence string) []string {
	stream := a.terms.Analyze([]byte(Normalize(sentence)))
	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		if len(tok.Term) == 0 {
			continue
		}
		out = append(out, string(tok.Term))
	}
	return out
}

// Document analyzes text into a document. Sentences without terms are kept: they
// still occupy a matrix row and may be selected.
func (a *Analyzer) Document(id, title, text string) models.Document {
	doc := models.Document{ID: id, Title: title}
	for _, s := range a.Sentences(text) {
		doc.Sentences = append(doc.Sentences, models.Sentence{Text: s, Terms: a.Terms(s)})
	}
	return doc
}
