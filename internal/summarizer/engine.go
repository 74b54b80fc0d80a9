package summarizer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/yoyaku/internal/cache"
	"github.com/hyperjump/yoyaku/internal/fingerprint"
	"github.com/hyperjump/yoyaku/internal/models"
	"github.com/hyperjump/yoyaku/internal/storage"
	"github.com/hyperjump/yoyaku/internal/weighting"
	"go.uber.org/zap"
)

// Source is a corpus with an identity and sentence-to-document mapping.
type Source interface {
	Corpus
	ID() string
	SentenceDocument(i int) int
}

// Engine summarizes corpora and reuses weights of unchanged corpora from an in-memory
// LRU and a persistent store, checked in that order.
type Engine struct {
	store  storage.WeightCache
	memory *cache.WeightCache
	logger *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithStore enables the persistent weight cache.
func WithStore(s storage.WeightCache) EngineOption {
	return func(e *Engine) { e.store = s }
}

// WithMemoryCache enables the in-memory weight cache.
func WithMemoryCache(c *cache.WeightCache) EngineOption {
	return func(e *Engine) { e.memory = c }
}

// NewEngine creates an engine. Without cache options every call recomputes weights.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Summarize builds a summary of c. name labels the corpus in the result and in the
// persistent cache; storing weights for a name drops older weights of that name.
func (e *Engine) Summarize(ctx context.Context, name string, c Source, opts Options) (*models.Summary, error) {
	start := time.Now()
	summary := &models.Summary{
		ID:                  uuid.NewString(),
		Corpus:              name,
		Sentences:           []models.SummarySentence{},
		LengthBudget:        opts.LengthBudget,
		RedundancyThreshold: opts.RedundancyThreshold,
		Documents:           c.DocumentCount(),
		TotalSentences:      c.TotalSentenceCount(),
		VocabularySize:      c.Vocabulary().Len(),
	}
	if isEmpty(c) {
		summary.ElapsedMs = time.Since(start).Milliseconds()
		e.logger.Info("nothing to summarize",
			zap.String("id", summary.ID),
			zap.String("corpus", name),
			zap.NamedError("reason", models.ErrEmptyCorpus))
		return summary, nil
	}

	w, cached, err := e.weights(ctx, name, c, opts)
	if err != nil {
		return nil, fmt.Errorf("weigh corpus: %w", err)
	}
	res, _, err := selectFrom(c, w, opts)
	if err != nil {
		return nil, fmt.Errorf("rank sentences: %w", err)
	}

	for _, s := range res.Sentences {
		summary.Sentences = append(summary.Sentences, models.SummarySentence{
			Index:    s.Index,
			Document: c.SentenceDocument(s.Index),
			Rank:     s.Rank,
			Score:    s.Score,
			Text:     s.Text,
		})
	}
	summary.Length = res.Length
	summary.Cached = cached
	summary.ElapsedMs = time.Since(start).Milliseconds()

	e.logger.Info("summary built",
		zap.String("id", summary.ID),
		zap.String("corpus", name),
		zap.Int("documents", summary.Documents),
		zap.Int("sentences", summary.TotalSentences),
		zap.Int("selected", len(summary.Sentences)),
		zap.Int("length", summary.Length),
		zap.Bool("cached", cached),
		zap.Duration("elapsed", time.Since(start)),
	)
	return summary, nil
}

// weights returns cached weights when the corpus, vocabulary and centroid policy are
// unchanged, otherwise builds and stores them. Cache failures are logged and fall
// through to a rebuild.
func (e *Engine) weights(ctx context.Context, name string, c Source, opts Options) (*weighting.Weights, bool, error) {
	policy := opts.CentroidIDF
	if policy == "" {
		policy = weighting.IDFConstant
	}
	key := fingerprint.Key(c.ID(), c.Vocabulary().Version(), string(policy))
	rows, cols := c.TotalSentenceCount(), c.Vocabulary().Len()

	if e.memory != nil {
		if w, ok := e.memory.Get(key); ok {
			e.logger.Debug("weights from memory", zap.String("key", key))
			return w, true, nil
		}
	}
	if e.store != nil {
		w, err := e.loadStored(ctx, key, rows, cols, opts.Storage)
		if err != nil {
			e.logger.Warn("weight cache read failed", zap.String("key", key), zap.Error(err))
		} else if w != nil {
			e.logger.Debug("weights from store", zap.String("key", key))
			if e.memory != nil {
				e.memory.Set(key, w)
			}
			return w, true, nil
		}
	}

	w, err := weighting.Build(c, opts.weighting())
	if err != nil {
		return nil, false, err
	}
	if e.memory != nil {
		e.memory.Set(key, w)
	}
	if e.store != nil {
		entry := &storage.Entry{
			Key:               key,
			Corpus:            name,
			CorpusID:          c.ID(),
			VocabularyVersion: c.Vocabulary().Version(),
			Policy:            string(policy),
			Rows:              rows,
			Cols:              cols,
			Matrix:            materialize(w.Matrix),
			Centroid:          w.Centroid,
		}
		if err := e.store.Put(ctx, entry); err != nil {
			e.logger.Warn("weight cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return w, false, nil
}

func (e *Engine) loadStored(ctx context.Context, key string, rows, cols int, s weighting.Storage) (*weighting.Weights, error) {
	entry, found, err := e.store.Get(ctx, key)
	if err != nil || !found {
		return nil, err
	}
	if entry.Rows != rows || entry.Cols != cols {
		return nil, fmt.Errorf("cached weights are %dx%d, corpus is %dx%d", entry.Rows, entry.Cols, rows, cols)
	}
	m, err := weighting.FromRows(s, entry.Matrix, entry.Cols)
	if err != nil {
		return nil, err
	}
	return &weighting.Weights{Matrix: m, Centroid: entry.Centroid}, nil
}

func materialize(m weighting.Matrix) [][]float64 {
	rows, _ := m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = append([]float64(nil), m.Row(i)...)
	}
	return out
}

// Invalidate drops cached weights for a corpus name from the persistent store and
// clears the in-memory tier.
func (e *Engine) Invalidate(ctx context.Context, name string) error {
	if e.memory != nil {
		e.memory.Purge()
	}
	if e.store == nil {
		return nil
	}
	return e.store.DeleteCorpus(ctx, name)
}
