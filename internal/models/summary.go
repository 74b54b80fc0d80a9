package models

import "fmt"

// SummarizeRequest is the body of a summarize call. Zero values fall back to configured defaults.
type SummarizeRequest struct {
	Documents           []DocumentInput `json:"documents"`
	LengthBudget        int             `json:"length_budget,omitempty"`
	RedundancyThreshold *float64        `json:"redundancy_threshold,omitempty"`
	CentroidIDF         string          `json:"centroid_idf,omitempty"`
	Matrix              string          `json:"matrix,omitempty"`
}

// Validate checks the request shape. Empty document lists are allowed (empty summary).
func (r *SummarizeRequest) Validate() error {
	if r.LengthBudget < 0 {
		return fmt.Errorf("length_budget cannot be negative")
	}
	if r.RedundancyThreshold != nil && (*r.RedundancyThreshold < 0 || *r.RedundancyThreshold > 1) {
		return fmt.Errorf("redundancy_threshold must be within [0, 1]")
	}
	switch r.CentroidIDF {
	case "", "constant", "corpus":
	default:
		return fmt.Errorf("unknown centroid_idf %q", r.CentroidIDF)
	}
	switch r.Matrix {
	case "", "dense", "sparse":
	default:
		return fmt.Errorf("unknown matrix %q", r.Matrix)
	}
	return nil
}

// SummarySentence is one accepted sentence with its ranking metadata.
type SummarySentence struct {
	Index    int     `json:"index"`    // global sentence index
	Document int     `json:"document"` // containing document index
	Rank     int     `json:"rank"`     // position in the similarity ranking
	Score    float64 `json:"score"`    // similarity to the centroid
	Text     string  `json:"text"`
}

// Summary is the result of one summarization run.
type Summary struct {
	ID                  string            `json:"id"`
	Corpus              string            `json:"corpus,omitempty"`
	Sentences           []SummarySentence `json:"sentences"`
	Length              int               `json:"length"`
	LengthBudget        int               `json:"length_budget"`
	RedundancyThreshold float64           `json:"redundancy_threshold"`
	Documents           int               `json:"documents"`
	TotalSentences      int               `json:"total_sentences"`
	VocabularySize      int               `json:"vocabulary_size"`
	Cached              bool              `json:"cached"`
	ElapsedMs           int64             `json:"elapsed_ms"`
}

// Texts returns the accepted sentence texts in acceptance order.
func (s *Summary) Texts() []string {
	out := make([]string, len(s.Sentences))
	for i, sent := range s.Sentences {
		out[i] = sent.Text
	}
	return out
}
