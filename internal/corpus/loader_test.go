package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperjump/yoyaku/internal/models"
)

type fileExtractor struct{}

func (fileExtractor) Extract(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

type failingExtractor struct{}

func (failingExtractor) Extract(string) (string, error) {
	return "", errors.New("boom")
}

// splitAnalyzer splits on periods and lower-cases whitespace-separated words.
type splitAnalyzer struct{}

func (splitAnalyzer) Document(id, title, text string) models.Document {
	doc := models.Document{ID: id, Title: title}
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		doc.Sentences = append(doc.Sentences, models.Sentence{Text: s, Terms: strings.Fields(strings.ToLower(s))})
	}
	return doc
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFiles_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":       "b",
		"a.md":        "a",
		"c.bin":       "c",
		".hidden.txt": "h",
		"sub/d.txt":   "d",
		".git/e.txt":  "e",
	})

	got, err := Files(dir, nil, []string{".txt", "md"}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("non-recursive = %v, want %v", got, want)
	}

	got, err = Files(dir, nil, []string{"txt"}, true)
	if err != nil {
		t.Fatal(err)
	}
	want = []string{filepath.Join(dir, "b.txt"), filepath.Join(dir, "sub", "d.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recursive = %v, want %v", got, want)
	}
}

func TestFiles_Names(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"one.txt": "1", "two.txt": "2"})

	got, err := Files(dir, []string{"two.txt", "one.txt"}, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "two.txt"), filepath.Join(dir, "one.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v (named order kept)", got, want)
	}

	if _, err := Files(dir, []string{"missing.txt"}, nil, false); err == nil {
		t.Error("expected error for missing named document")
	}
}

func TestFiles_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"f.txt": "x"})
	if _, err := Files(filepath.Join(dir, "f.txt"), nil, nil, false); err == nil {
		t.Error("expected error for file as corpus directory")
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"a.TXT", []string{".txt"}, true},
		{"a.md", []string{"txt"}, false},
		{"a", nil, true},
		{"a.pdf", []string{"md", "PDF"}, true},
	}
	for _, tt := range tests {
		if got := MatchExtension(tt.path, tt.exts); got != tt.want {
			t.Errorf("MatchExtension(%q, %v) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"cats.txt":  "Cats purr. Cats sleep.",
		"empty.txt": "a. b.",
		"dogs.txt":  "Dogs bark.",
	})
	paths := []string{
		filepath.Join(dir, "cats.txt"),
		filepath.Join(dir, "empty.txt"),
		filepath.Join(dir, "dogs.txt"),
	}

	l := NewLoader(fileExtractor{}, splitAnalyzer{})
	docs, err := l.Load(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents (empty skipped), got %d", len(docs))
	}
	if docs[0].Title != "cats" || docs[0].Path != paths[0] || docs[0].SentenceCount() != 2 {
		t.Errorf("first document = %+v", docs[0])
	}
	if !strings.HasPrefix(docs[0].ID, "file:") {
		t.Errorf("ID = %q, want file: prefix", docs[0].ID)
	}

	idx, err := l.Index(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}
	if idx.DocumentCount() != 2 || idx.TotalSentenceCount() != 3 {
		t.Errorf("index has %d docs, %d sentences", idx.DocumentCount(), idx.TotalSentenceCount())
	}
}

func TestLoader_LoadErrors(t *testing.T) {
	l := NewLoader(failingExtractor{}, splitAnalyzer{})
	if _, err := l.Load(context.Background(), []string{"x.txt"}); err == nil {
		t.Error("expected extraction error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(fileExtractor{}, splitAnalyzer{}).Load(ctx, []string{"x.txt"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoader_FromInputs(t *testing.T) {
	l := NewLoader(fileExtractor{}, splitAnalyzer{}, WithMinTermLength(3))
	if l.MinTermLength() != 3 {
		t.Errorf("MinTermLength = %d, want 3", l.MinTermLength())
	}
	docs := l.FromInputs([]models.DocumentInput{
		{Content: "First doc."},
		{ID: "named", Title: "Named", Content: "Second."},
		{Content: ""},
	})
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if docs[0].ID != "doc-1" || docs[0].Title != "doc-1" {
		t.Errorf("default id/title = %q/%q", docs[0].ID, docs[0].Title)
	}
	if docs[1].ID != "named" || docs[1].Title != "Named" {
		t.Errorf("explicit id/title = %q/%q", docs[1].ID, docs[1].Title)
	}
	if docs[2].SentenceCount() != 0 {
		t.Errorf("empty input should have no sentences")
	}
}

func TestLoader_LoadSource(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":     "Bees buzz.",
		"a.txt":     "Ants march. Ants dig.",
		"notes.bin": "ignored words here.",
	})
	l := NewLoader(fileExtractor{}, splitAnalyzer{})
	idx, err := l.LoadSource(context.Background(), Source{Directory: dir, Extensions: []string{".txt"}})
	if err != nil {
		t.Fatal(err)
	}
	if idx.DocumentCount() != 2 {
		t.Fatalf("DocumentCount = %d, want 2", idx.DocumentCount())
	}
	if idx.SentenceText(0) != "Ants march" || idx.SentenceText(2) != "Bees buzz" {
		t.Errorf("documents should load in path order, got %q, %q", idx.SentenceText(0), idx.SentenceText(2))
	}

	if _, err := l.LoadSource(context.Background(), Source{Directory: filepath.Join(dir, "missing")}); err == nil {
		t.Error("expected error for missing directory")
	}
}
