// Package cli provides output helpers for the yoyaku command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hyperjump/yoyaku/internal/models"
	"github.com/hyperjump/yoyaku/pkg/utils"
)

// OutputFormat is the format for summary output.
type OutputFormat string

const (
	// OutputText is human-readable text with headings (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints only the selected sentences, one per line.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	metaColor    = color.New(color.FgYellow).SprintFunc()
	dimColor     = color.New(color.Faint).SprintFunc()
)

// ParseOutputFormat maps a flag value to an OutputFormat. Empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputText:
		return OutputText, nil
	case OutputCompact:
		return OutputCompact, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, compact or json)", s)
	}
}

// WriteSummary writes a summary to w in the given format.
func WriteSummary(w io.Writer, s *models.Summary, format OutputFormat) error {
	if s == nil {
		return fmt.Errorf("nil summary")
	}
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case OutputCompact:
		for _, text := range s.Texts() {
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeSummaryText(w, s)
	}
}

func writeSummaryText(w io.Writer, s *models.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", headingColor(fmt.Sprintf("Summary of %s", corpusLabel(s))))
	fmt.Fprintf(&b, "%s\n\n", dimColor(fmt.Sprintf("%d documents, %d sentences, %d terms",
		s.Documents, s.TotalSentences, s.VocabularySize)))
	if len(s.Sentences) == 0 {
		fmt.Fprintln(&b, "(no sentences selected)")
	}
	for _, sent := range s.Sentences {
		fmt.Fprintln(&b, metaColor(fmt.Sprintf("[rank %d | score %.4f | doc %d | sentence %d]",
			sent.Rank, sent.Score, sent.Document, sent.Index)))
		fmt.Fprintf(&b, "%s\n\n", sent.Text)
	}
	cached := ""
	if s.Cached {
		cached = ", cached weights"
	}
	fmt.Fprintln(&b, dimColor(fmt.Sprintf("length %d/%d, threshold %.3f%s, %dms",
		s.Length, s.LengthBudget, s.RedundancyThreshold, cached, s.ElapsedMs)))
	_, err := io.WriteString(w, b.String())
	return err
}

func corpusLabel(s *models.Summary) string {
	if s.Corpus == "" {
		return utils.Truncate(s.ID, 8)
	}
	return s.Corpus
}

// Preview returns the first maxWords words of each sentence of the summary,
// joined by spaces. Used by watch mode to log a one-line digest.
func Preview(s *models.Summary, maxWords int) string {
	if s == nil {
		return ""
	}
	return utils.TruncateWords(strings.Join(s.Texts(), " "), maxWords)
}
