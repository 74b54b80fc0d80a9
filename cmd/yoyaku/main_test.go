package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperjump/yoyaku/internal/config"
	"github.com/hyperjump/yoyaku/internal/models"
)

func testFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	registerSummarizeFlags(fs)
	fs.String("server", "", "")
	return fs
}

func TestReorderArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after files are moved first",
			args:     []string{"a.txt", "-budget", "300"},
			expected: []string{"-budget", "300", "a.txt"},
		},
		{
			name:     "flags first returns same order",
			args:     []string{"-budget", "300", "a.txt"},
			expected: []string{"-budget", "300", "a.txt"},
		},
		{
			name:     "files keep their order around flags",
			args:     []string{"b.txt", "-output", "json", "a.txt", "--recursive", "c.txt"},
			expected: []string{"-output", "json", "--recursive", "b.txt", "a.txt", "c.txt"},
		},
		{
			name:     "inline value takes no argument",
			args:     []string{"a.txt", "-threshold=0.4", "b.txt"},
			expected: []string{"-threshold=0.4", "a.txt", "b.txt"},
		},
		{
			name:     "double dash ends flags",
			args:     []string{"-budget", "10", "--", "-odd.txt"},
			expected: []string{"-budget", "10", "--", "-odd.txt"},
		},
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reorderArgs(testFlagSet(), tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("reorderArgs() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReorderArgs_parses(t *testing.T) {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	flags := registerSummarizeFlags(fs)
	if err := fs.Parse(reorderArgs(fs, []string{"a.txt", "--budget", "120", "b.txt", "--idf", "corpus"})); err != nil {
		t.Fatal(err)
	}
	if *flags.budget != 120 || *flags.idf != "corpus" {
		t.Errorf("budget=%d idf=%q", *flags.budget, *flags.idf)
	}
	if got := fs.Args(); !reflect.DeepEqual(got, []string{"a.txt", "b.txt"}) {
		t.Errorf("positional = %v", got)
	}
}

func TestSummarizeFlags_overrides(t *testing.T) {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	flags := registerSummarizeFlags(fs)
	if err := fs.Parse([]string{"-threshold", "0.25", "-matrix", "sparse"}); err != nil {
		t.Fatal(err)
	}
	o, err := flags.overrides()
	if err != nil {
		t.Fatal(err)
	}
	if o.RedundancyThreshold == nil || *o.RedundancyThreshold != 0.25 || o.Matrix != "sparse" {
		t.Errorf("overrides = %+v", o)
	}

	fs = flag.NewFlagSet("summarize", flag.ContinueOnError)
	flags = registerSummarizeFlags(fs)
	if err := fs.Parse([]string{"-threshold", "half"}); err != nil {
		t.Fatal(err)
	}
	if _, err := flags.overrides(); err == nil {
		t.Error("expected error for non-numeric threshold")
	}
}

func TestSummarizeFlags_source(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Corpus.Directory = "/srv/corpus"

	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	flags := registerSummarizeFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	src, name, err := flags.source(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if name != "/srv/corpus" || src.Directory != "/srv/corpus" || len(src.Documents) != 0 {
		t.Errorf("directory source = %+v name %q", src, name)
	}

	src, name, err = flags.source(cfg, []string{"/tmp/b.txt", "/tmp/a.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if name != cliCorpusName {
		t.Errorf("name = %q, want %q", name, cliCorpusName)
	}
	if !reflect.DeepEqual(src.Documents, []string{"/tmp/b.txt", "/tmp/a.txt"}) {
		t.Errorf("documents = %v", src.Documents)
	}
}

func TestSummarizeLocal(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
storage:
  cache_path: "./cache/weights.db"
corpus:
  directory: "./docs"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	docs := filepath.Join(dir, "docs")
	if err := os.MkdirAll(docs, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"a.txt": "Cats sleep on warm windows. Dogs chase cats around the yard.",
		"b.txt": "Dogs bark at the mail carrier. The mail carrier brings letters.",
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(docs, name), []byte(text), 0600); err != nil {
			t.Fatal(err)
		}
	}

	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	flags := registerSummarizeFlags(fs)
	if err := fs.Parse([]string{"-config", configPath}); err != nil {
		t.Fatal(err)
	}
	summary, err := summarizeLocal(flags, nil, config.SummaryOverrides{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Documents != 2 || summary.TotalSentences != 4 {
		t.Errorf("documents=%d sentences=%d, want 2 and 4", summary.Documents, summary.TotalSentences)
	}
	if len(summary.Sentences) == 0 {
		t.Fatal("expected at least one selected sentence")
	}
	if summary.Cached {
		t.Error("first run should build weights")
	}

	again, err := summarizeLocal(flags, nil, config.SummaryOverrides{})
	if err != nil {
		t.Fatal(err)
	}
	if !again.Cached {
		t.Error("second run should reuse stored weights")
	}
	if !reflect.DeepEqual(again.Texts(), summary.Texts()) {
		t.Errorf("cached summary %v differs from %v", again.Texts(), summary.Texts())
	}
}

func TestSummarizeRemote(t *testing.T) {
	var gotPath, gotQuery string
	var gotReq models.SummarizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&gotReq)
		}
		_ = json.NewEncoder(w).Encode(models.Summary{
			ID:        "remote",
			Sentences: []models.SummarySentence{{Text: "Remote sentence."}},
		})
	}))
	defer srv.Close()

	budget := 200
	s, err := summarizeRemote(srv.URL, nil, config.SummaryOverrides{LengthBudget: budget, Matrix: "sparse"})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/api/v1/summary" || !strings.Contains(gotQuery, "length_budget=200") || !strings.Contains(gotQuery, "matrix=sparse") {
		t.Errorf("GET path=%q query=%q", gotPath, gotQuery)
	}
	if s.ID != "remote" {
		t.Errorf("summary id = %q", s.ID)
	}

	file := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(file, []byte("Plain notes about cats."), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := summarizeRemote(srv.URL, []string{file}, config.SummaryOverrides{}); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/api/v1/summarize" {
		t.Errorf("POST path = %q", gotPath)
	}
	if len(gotReq.Documents) != 1 || gotReq.Documents[0].Title != "notes" || gotReq.Documents[0].Content != "Plain notes about cats." {
		t.Errorf("posted documents = %+v", gotReq.Documents)
	}
}

func TestSummarizeRemote_serverError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()
	_, err := summarizeRemote(srv.URL, nil, config.SummaryOverrides{})
	if err == nil || !strings.Contains(err.Error(), "422") {
		t.Errorf("expected 422 error, got %v", err)
	}
}

func TestWriteStatusText(t *testing.T) {
	disk := int64(4096)
	var buf bytes.Buffer
	writeStatusText(&buf, &statusResponse{
		CacheEntries:   3,
		DiskUsageBytes: &disk,
		Config:         map[string]interface{}{"matrix": "dense", "length_budget": 665},
	})
	out := buf.String()
	for _, want := range []string{"cache_entries:         3", "disk_usage_bytes:      4096", "matrix:", "dense", "length_budget:"} {
		if !strings.Contains(out, want) {
			t.Errorf("status text missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "length_budget") > strings.Index(out, "matrix") {
		t.Error("config keys should print in fixed order")
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
storage:
  cache_path: "./weights.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while configPath from t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s (canon %s), want %s (canon %s)", resolved, resolvedCanon, configPath, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_defaultsWithoutFile(t *testing.T) {
	if _, err := os.Stat(defaultConfigPath); err == nil {
		t.Skip("a system config exists at the default path")
	}
	dir := t.TempDir()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != "" {
		t.Errorf("resolved path = %q, want empty for built-in defaults", resolved)
	}
	if cfg.Summary.LengthBudget != 665 {
		t.Errorf("length_budget = %d, want 665", cfg.Summary.LengthBudget)
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  cache_path: "./weights.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}
