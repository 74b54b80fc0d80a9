// Package e2e provides end-to-end tests that run the full summarization stack over a
// themed multi-document corpus.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/yoyaku/internal/models"
)

// E2EDocument is a document entry in the E2E corpus.
type E2EDocument struct {
	ID        string
	Title     string
	Theme     string
	Sentences []string
}

// Content joins the sentences into document text.
func (d E2EDocument) Content() string {
	return strings.Join(d.Sentences, " ")
}

// SummaryCase is a parameter set the corpus is summarized with.
type SummaryCase struct {
	Name                string
	LengthBudget        int
	RedundancyThreshold float64
	CentroidIDF         string
	Matrix              string
}

// Corpus holds documents and the parameter sets for E2E tests.
type Corpus struct {
	Documents      []E2EDocument
	Cases          []SummaryCase
	TotalDocs      int
	TotalSentences int
}

// BuildCorpus returns a corpus of news-style reports on a few themes. Documents of the
// same theme share vocabulary so the centroid leans toward the dominant theme.
func BuildCorpus() *Corpus {
	docs := buildDocuments()
	total := 0
	for _, d := range docs {
		total += len(d.Sentences)
	}
	return &Corpus{
		Documents:      docs,
		Cases:          buildCases(),
		TotalDocs:      len(docs),
		TotalSentences: total,
	}
}

func buildDocuments() []E2EDocument {
	reports := []struct {
		theme     string
		title     string
		sentences []string
	}{
		{"flood", "River Warning", []string{
			"Heavy rain pushed the river above the flood warning level on Monday.",
			"Residents near the river were told to move cars to higher ground.",
			"The weather office expects more rain through the night.",
		}},
		{"flood", "Valley Evacuation", []string{
			"Flood water reached homes in the lower valley before dawn.",
			"Emergency crews evacuated families from three streets near the river.",
			"Shelters at the school and the library opened for residents.",
		}},
		{"flood", "Road Closures", []string{
			"Several roads closed after flood water covered the bridge approach.",
			"Drivers were warned not to cross flooded roads near the river.",
			"Bus routes through the valley were suspended until the water drops.",
		}},
		{"flood", "Rain Forecast", []string{
			"Forecasters said the rain should ease by Wednesday afternoon.",
			"River levels may stay high for two days after the rain stops.",
		}},
		{"budget", "Council Budget", []string{
			"The city council approved next year's budget after a long debate.",
			"Spending on road repairs will rise while library hours stay the same.",
			"Council members argued over the cost of the new bus depot.",
		}},
		{"budget", "Tax Proposal", []string{
			"A proposal to raise the local property tax was rejected by the council.",
			"The mayor said the budget can be balanced without new taxes.",
		}},
		{"sports", "Cup Final", []string{
			"The home team won the cup final with a late goal.",
			"Fans celebrated in the town square until midnight.",
			"The coach praised the defence for a calm second half.",
		}},
		{"sports", "Stadium Plans", []string{
			"Plans for a larger stadium were presented to the council.",
			"The club hopes to add five thousand seats within three years.",
		}},
	}

	out := make([]E2EDocument, 0, len(reports))
	for i, r := range reports {
		out = append(out, E2EDocument{
			ID:        fmt.Sprintf("e2e-doc-%02d", i+1),
			Title:     r.title,
			Theme:     r.theme,
			Sentences: r.sentences,
		})
	}
	return out
}

func buildCases() []SummaryCase {
	return []SummaryCase{
		{Name: "defaults", LengthBudget: 665, RedundancyThreshold: 0.539, CentroidIDF: "constant", Matrix: "dense"},
		{Name: "short budget", LengthBudget: 120, RedundancyThreshold: 0.539, CentroidIDF: "constant", Matrix: "dense"},
		{Name: "strict redundancy", LengthBudget: 665, RedundancyThreshold: 0.1, CentroidIDF: "constant", Matrix: "dense"},
		{Name: "corpus idf sparse", LengthBudget: 400, RedundancyThreshold: 0.539, CentroidIDF: "corpus", Matrix: "sparse"},
		{Name: "zero budget", LengthBudget: 1, RedundancyThreshold: 0.539, CentroidIDF: "constant", Matrix: "dense"},
	}
}

// ThemeCount returns how many documents belong to theme.
func (c *Corpus) ThemeCount(theme string) int {
	n := 0
	for _, d := range c.Documents {
		if d.Theme == theme {
			n++
		}
	}
	return n
}

// ContainsSentence reports whether text is one of the corpus sentences.
func (c *Corpus) ContainsSentence(text string) bool {
	for _, d := range c.Documents {
		for _, s := range d.Sentences {
			if s == text {
				return true
			}
		}
	}
	return false
}

// ToDocumentInputs converts the corpus documents to API inputs.
func (c *Corpus) ToDocumentInputs() []models.DocumentInput {
	out := make([]models.DocumentInput, len(c.Documents))
	for i, d := range c.Documents {
		out[i] = models.DocumentInput{
			ID:      d.ID,
			Title:   d.Title,
			Content: d.Content(),
		}
	}
	return out
}
