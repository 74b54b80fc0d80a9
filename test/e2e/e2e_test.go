package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/hyperjump/yoyaku/internal/analysis"
	"github.com/hyperjump/yoyaku/internal/cache"
	"github.com/hyperjump/yoyaku/internal/config"
	"github.com/hyperjump/yoyaku/internal/corpus"
	"github.com/hyperjump/yoyaku/internal/extract"
	"github.com/hyperjump/yoyaku/internal/models"
	"github.com/hyperjump/yoyaku/internal/ranking"
	"github.com/hyperjump/yoyaku/internal/server"
	"github.com/hyperjump/yoyaku/internal/storage"
	"github.com/hyperjump/yoyaku/internal/summarizer"
	"github.com/hyperjump/yoyaku/internal/weighting"
	"go.uber.org/zap"
)

type stack struct {
	loader *corpus.Loader
	engine *summarizer.Engine
	store  *storage.SQLiteCache
}

func newStack(t *testing.T, dir string) *stack {
	t.Helper()
	an, err := analysis.New()
	if err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewSQLiteCache(filepath.Join(dir, "weights.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	memory, err := cache.NewWeightCache(cache.DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	return &stack{
		loader: corpus.NewLoader(extract.NewExtractor(), an),
		engine: summarizer.NewEngine(summarizer.WithStore(store), summarizer.WithMemoryCache(memory)),
		store:  store,
	}
}

func (s *stack) inline(c *Corpus) *corpus.Index {
	return corpus.New(s.loader.FromInputs(c.ToDocumentInputs()), s.loader.MinTermLength())
}

func caseOptions(t *testing.T, tc SummaryCase) summarizer.Options {
	t.Helper()
	policy, err := weighting.ParseIDFPolicy(tc.CentroidIDF)
	if err != nil {
		t.Fatal(err)
	}
	st, err := weighting.ParseStorage(tc.Matrix)
	if err != nil {
		t.Fatal(err)
	}
	return summarizer.Options{
		LengthBudget:        tc.LengthBudget,
		RedundancyThreshold: tc.RedundancyThreshold,
		CentroidIDF:         policy,
		Storage:             st,
	}
}

func TestE2E_SummaryInvariants(t *testing.T) {
	c := BuildCorpus()
	s := newStack(t, t.TempDir())
	idx := s.inline(c)
	ctx := context.Background()

	for _, tc := range c.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			opts := caseOptions(t, tc)
			summary, err := s.engine.Summarize(ctx, "e2e", idx, opts)
			if err != nil {
				t.Fatalf("summarize: %v", err)
			}
			if summary.Documents != c.TotalDocs || summary.TotalSentences != c.TotalSentences {
				t.Errorf("documents=%d sentences=%d, want %d and %d",
					summary.Documents, summary.TotalSentences, c.TotalDocs, c.TotalSentences)
			}
			if len(summary.Sentences) == 0 {
				t.Fatal("non-empty corpus must yield at least one sentence")
			}
			if summary.Sentences[0].Rank != 0 {
				t.Errorf("first selected rank = %d, want 0", summary.Sentences[0].Rank)
			}

			w, err := weighting.Build(idx, weighting.Options{Storage: opts.Storage, CentroidIDF: opts.CentroidIDF})
			if err != nil {
				t.Fatal(err)
			}
			length := 0
			for i, sent := range summary.Sentences {
				if !c.ContainsSentence(sent.Text) {
					t.Errorf("selected text %q is not a corpus sentence", sent.Text)
				}
				length += utf8.RuneCountInString(sent.Text)
				if i == 0 {
					continue
				}
				prev := summary.Sentences[i-1]
				if sent.Rank <= prev.Rank {
					t.Errorf("rank %d follows rank %d", sent.Rank, prev.Rank)
				}
				if sent.Score > prev.Score {
					t.Errorf("score %v follows lower score %v", sent.Score, prev.Score)
				}
				sim := ranking.Similarity(w.Matrix.Row(prev.Index), w.Matrix.Row(sent.Index))
				if sim >= tc.RedundancyThreshold {
					t.Errorf("sentences %d and %d accepted back to back with similarity %v >= %v",
						prev.Index, sent.Index, sim, tc.RedundancyThreshold)
				}
			}
			if summary.Length != length {
				t.Errorf("length = %d, want rune total %d", summary.Length, length)
			}
			if n := len(summary.Sentences); n > 1 {
				last := utf8.RuneCountInString(summary.Sentences[n-1].Text)
				if summary.Length-last >= tc.LengthBudget {
					t.Errorf("last sentence accepted after budget %d was reached (%d)", tc.LengthBudget, summary.Length-last)
				}
			}
			if tc.LengthBudget <= utf8.RuneCountInString(summary.Sentences[0].Text) && len(summary.Sentences) != 1 {
				t.Errorf("budget %d below first sentence should stop after it, got %d sentences",
					tc.LengthBudget, len(summary.Sentences))
			}
		})
	}
}

func TestE2E_CachedAndStorageAgree(t *testing.T) {
	c := BuildCorpus()
	s := newStack(t, t.TempDir())
	idx := s.inline(c)
	ctx := context.Background()
	opts := caseOptions(t, c.Cases[0])

	fresh, err := s.engine.Summarize(ctx, "e2e", idx, opts)
	if err != nil {
		t.Fatal(err)
	}
	again, err := s.engine.Summarize(ctx, "e2e", idx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Cached || !again.Cached {
		t.Errorf("cached flags = %v, %v; want false, true", fresh.Cached, again.Cached)
	}
	if !reflect.DeepEqual(fresh.Texts(), again.Texts()) {
		t.Errorf("cached summary %v differs from fresh %v", again.Texts(), fresh.Texts())
	}

	opts.Storage = weighting.StorageSparse
	sparse, err := s.engine.Summarize(ctx, "e2e-sparse", idx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fresh.Texts(), sparse.Texts()) {
		t.Errorf("sparse summary %v differs from dense %v", sparse.Texts(), fresh.Texts())
	}
}

func writeCorpusFiles(t *testing.T, c *Corpus, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for i, d := range c.Documents {
		ext := SupportedFileExtensions[i%len(SupportedFileExtensions)]
		data, err := WriteMinimalFile(ext, d.Content())
		if err != nil {
			t.Fatalf("write minimal file for %s: %v", d.ID, err)
		}
		if err := os.WriteFile(filepath.Join(dir, d.ID+ext), data, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// TestE2E_FileCorpus summarizes the same corpus written as files of every supported
// type. File names sort in document order, so the summary matches the inline one.
func TestE2E_FileCorpus(t *testing.T) {
	dir := t.TempDir()
	docDir := filepath.Join(dir, "docs")
	c := BuildCorpus()
	writeCorpusFiles(t, c, docDir)

	s := newStack(t, dir)
	ctx := context.Background()
	opts := caseOptions(t, c.Cases[0])

	idx, err := s.loader.LoadSource(ctx, corpus.Source{Directory: docDir, Extensions: SupportedFileExtensions})
	if err != nil {
		t.Fatalf("load source: %v", err)
	}
	if idx.DocumentCount() != c.TotalDocs {
		t.Fatalf("loaded %d documents, want %d", idx.DocumentCount(), c.TotalDocs)
	}
	fromFiles, err := s.engine.Summarize(ctx, docDir, idx, opts)
	if err != nil {
		t.Fatal(err)
	}
	inline, err := s.engine.Summarize(ctx, "inline", s.inline(c), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromFiles.Texts(), inline.Texts()) {
		t.Errorf("file summary %v differs from inline summary %v", fromFiles.Texts(), inline.Texts())
	}
}

func TestE2E_HTTP(t *testing.T) {
	dir := t.TempDir()
	docDir := filepath.Join(dir, "docs")
	c := BuildCorpus()
	writeCorpusFiles(t, c, docDir)

	s := newStack(t, dir)
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Corpus.Directory = docDir
	cfg.Corpus.Extensions = SupportedFileExtensions
	cfg.Storage.CachePath = filepath.Join(dir, "weights.db")

	ts := httptest.NewServer(server.NewServer(s.engine, s.loader, s.store, cfg, zap.NewNop()).Handler())
	defer ts.Close()

	want, err := s.engine.Summarize(context.Background(), "direct", s.inline(c), caseOptions(t, c.Cases[0]))
	if err != nil {
		t.Fatal(err)
	}

	body, err := json.Marshal(models.SummarizeRequest{Documents: c.ToDocumentInputs()})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(ts.URL+"/api/v1/summarize", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	posted := decodeSummary(t, resp)
	if !reflect.DeepEqual(posted.Texts(), want.Texts()) {
		t.Errorf("POST summary %v, want %v", posted.Texts(), want.Texts())
	}

	resp, err = http.Get(ts.URL + "/api/v1/summary")
	if err != nil {
		t.Fatal(err)
	}
	got := decodeSummary(t, resp)
	if !reflect.DeepEqual(got.Texts(), want.Texts()) {
		t.Errorf("GET summary %v, want %v", got.Texts(), want.Texts())
	}
	if got.Corpus != docDir {
		t.Errorf("corpus = %q, want %q", got.Corpus, docDir)
	}
}

func decodeSummary(t *testing.T, resp *http.Response) *models.Summary {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var s models.Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return &s
}
