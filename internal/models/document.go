// Package models defines core data structures for documents, sentences, and summaries.
package models

// Sentence is one analyzed sentence: its surface text and the terms that survived
// tokenization, stop-word removal and stemming.
type Sentence struct {
	Text  string   `json:"text"`
	Terms []string `json:"terms,omitempty"`
}

// Document is an ordered list of sentences from one source.
type Document struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Path      string     `json:"path,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// SentenceCount returns the number of sentences in the document.
func (d *Document) SentenceCount() int {
	return len(d.Sentences)
}

// DocumentInput is raw text submitted for summarization.
type DocumentInput struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}
