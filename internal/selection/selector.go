// Package selection picks a non-redundant prefix of ranked sentences under a
// character budget.
package selection

import (
	"unicode/utf8"

	"github.com/hyperjump/yoyaku/internal/ranking"
	"github.com/hyperjump/yoyaku/internal/weighting"
)

const (
	// DefaultLengthBudget is the summary length cap in characters.
	DefaultLengthBudget = 665
	// DefaultRedundancyThreshold is the similarity at or above which a candidate is
	// redundant with the last accepted sentence. A threshold of 1 or more disables the
	// redundancy check.
	DefaultRedundancyThreshold = 0.539
)

// State is the selector's position in its two-state machine.
type State int

const (
	// StateSelecting means more candidates may be examined.
	StateSelecting State = iota
	// StateDone means the budget was met or the ranking is exhausted.
	StateDone
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Ranking is the ordered candidate list.
type Ranking interface {
	Len() int
	At(i int) ranking.Entry
}

// TextFunc returns the surface text of a global sentence index.
type TextFunc func(sentence int) string

// Config holds the selection limits.
type Config struct {
	LengthBudget        int
	RedundancyThreshold float64
}

// DefaultConfig returns the default budget and threshold.
func DefaultConfig() Config {
	return Config{
		LengthBudget:        DefaultLengthBudget,
		RedundancyThreshold: DefaultRedundancyThreshold,
	}
}

// Selected is one accepted sentence.
type Selected struct {
	Rank  int
	Index int
	Score float64
	Text  string
}

// Result is the accepted sentences in acceptance order and their total length.
type Result struct {
	Sentences []Selected
	Length    int
}

// Texts returns the accepted texts in acceptance order.
func (r Result) Texts() []string {
	out := make([]string, len(r.Sentences))
	for i, s := range r.Sentences {
		out[i] = s.Text
	}
	return out
}

// Selector walks the ranking once. Each candidate is compared only with the most
// recently accepted sentence, never with the whole summary.
type Selector struct {
	ranking     Ranking
	matrix      weighting.Matrix
	text        TextFunc
	cfg         Config
	state       State
	baseRank    int
	currentRank int
	length      int
	accepted    []Selected
}

// New returns a selector that has already accepted the top-ranked sentence.
// An empty ranking starts in StateDone.
func New(r Ranking, m weighting.Matrix, text TextFunc, cfg Config) *Selector {
	s := &Selector{
		ranking: r,
		matrix:  m,
		text:    text,
		cfg:     cfg,
		state:   StateDone,
	}
	if r.Len() == 0 {
		return s
	}
	s.accept(0)
	s.currentRank = 1
	s.state = StateSelecting
	if s.currentRank >= r.Len() {
		s.state = StateDone
	}
	return s
}

// State returns the current state.
func (s *Selector) State() State {
	return s.state
}

// Length returns the accepted length so far.
func (s *Selector) Length() int {
	return s.length
}

// Step performs one transition and returns the resulting state. The budget is checked
// before a candidate is examined, so an accepted sentence is never truncated and the
// summary may end above the budget.
func (s *Selector) Step() State {
	if s.state == StateDone {
		return s.state
	}
	if s.length >= s.cfg.LengthBudget {
		s.state = StateDone
		return s.state
	}
	if s.cfg.RedundancyThreshold >= 1 || s.distinct() {
		s.accept(s.currentRank)
	}
	s.currentRank++
	if s.currentRank >= s.ranking.Len() {
		s.state = StateDone
	}
	return s.state
}

// distinct reports whether the candidate is below the redundancy threshold against the
// last accepted sentence.
func (s *Selector) distinct() bool {
	candidate := s.ranking.At(s.currentRank).Index
	base := s.ranking.At(s.baseRank).Index
	return ranking.Similarity(s.matrix.Row(candidate), s.matrix.Row(base)) < s.cfg.RedundancyThreshold
}

// Run steps until StateDone and returns the result.
func (s *Selector) Run() Result {
	for s.Step() != StateDone {
	}
	return s.Result()
}

// Result returns the sentences accepted so far.
func (s *Selector) Result() Result {
	return Result{
		Sentences: append([]Selected(nil), s.accepted...),
		Length:    s.length,
	}
}

func (s *Selector) accept(rank int) {
	e := s.ranking.At(rank)
	text := s.text(e.Index)
	s.accepted = append(s.accepted, Selected{Rank: rank, Index: e.Index, Score: e.Score, Text: text})
	s.length += utf8.RuneCountInString(text)
	s.baseRank = rank
}

// Select runs a selector to completion.
func Select(r Ranking, m weighting.Matrix, text TextFunc, cfg Config) Result {
	return New(r, m, text, cfg).Run()
}
