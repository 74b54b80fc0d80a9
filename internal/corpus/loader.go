package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hyperjump/yoyaku/internal/fingerprint"
	"github.com/hyperjump/yoyaku/internal/models"
	"go.uber.org/zap"
)

// TextExtractor reads the text of a document file.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// DocumentAnalyzer splits text into analyzed sentences.
type DocumentAnalyzer interface {
	Document(id, title, text string) models.Document
}

// Loader turns files and raw inputs into analyzed documents.
type Loader struct {
	extractor     TextExtractor
	analyzer      DocumentAnalyzer
	minTermLength int
	logger        *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a logger for skipped files and load progress.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// WithMinTermLength sets the term length used to decide whether a file is empty.
func WithMinTermLength(n int) LoaderOption {
	return func(ld *Loader) { ld.minTermLength = n }
}

// NewLoader returns a loader using extractor for files and analyzer for text.
func NewLoader(extractor TextExtractor, analyzer DocumentAnalyzer, opts ...LoaderOption) *Loader {
	l := &Loader{
		extractor:     extractor,
		analyzer:      analyzer,
		minTermLength: DefaultMinTermLength,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.minTermLength <= 0 {
		l.minTermLength = DefaultMinTermLength
	}
	return l
}

// Files resolves the corpus file list. When names is non-empty, each name is resolved
// against dir and returned in the given order. Otherwise dir is scanned for regular files
// whose extension is in exts (all files when exts is empty), sorted by path. Hidden
// files and directories are skipped; subdirectories only when recursive.
func Files(dir string, names, exts []string, recursive bool) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	if len(names) > 0 {
		out := make([]string, 0, len(names))
		for _, name := range names {
			p := name
			if !filepath.IsAbs(p) {
				p = filepath.Join(absDir, p)
			}
			info, err := os.Stat(p)
			if err != nil {
				return nil, fmt.Errorf("corpus document: %w", err)
			}
			if !info.Mode().IsRegular() {
				return nil, fmt.Errorf("corpus document is not a regular file: %s", p)
			}
			out = append(out, filepath.Clean(p))
		}
		return out, nil
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", absDir)
	}
	var out []string
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == absDir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || (d.IsDir() && !recursive) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !MatchExtension(path, exts) {
			return nil
		}
		finfo, statErr := os.Stat(path)
		if statErr != nil || !finfo.Mode().IsRegular() {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// MatchExtension reports whether path has one of exts. Comparison ignores case and the
// leading dot. An empty list matches everything.
func MatchExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, e := range exts {
		if strings.ToLower(strings.TrimPrefix(e, ".")) == ext {
			return true
		}
	}
	return false
}

// Load extracts and analyzes paths in order. Files without any vocabulary term are
// skipped with a warning; any extraction failure aborts the load.
func (l *Loader) Load(ctx context.Context, paths []string) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := l.extractor.Extract(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		doc := l.analyzer.Document(fingerprint.FileDocID(path), title, text)
		doc.Path = path
		if !l.hasTerms(doc) {
			l.logger.Warn("skipping document without terms", zap.String("path", path))
			continue
		}
		l.logger.Debug("document loaded", zap.String("path", path), zap.Int("sentences", doc.SentenceCount()))
		docs = append(docs, doc)
	}
	return docs, nil
}

// Index loads paths and indexes the result.
func (l *Loader) Index(ctx context.Context, paths []string) (*Index, error) {
	docs, err := l.Load(ctx, paths)
	if err != nil {
		return nil, err
	}
	return New(docs, l.minTermLength), nil
}

// Source is a corpus location: an explicit document list or a directory scan.
type Source struct {
	Directory  string
	Documents  []string
	Extensions []string
	Recursive  bool
}

// LoadSource resolves src with Files and indexes the documents.
func (l *Loader) LoadSource(ctx context.Context, src Source) (*Index, error) {
	paths, err := Files(src.Directory, src.Documents, src.Extensions, src.Recursive)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("loading corpus", zap.String("directory", src.Directory), zap.Int("files", len(paths)))
	return l.Index(ctx, paths)
}

// FromInputs analyzes submitted texts in order. Missing IDs become doc-1, doc-2, ...
// and missing titles reuse the ID. Inputs without terms are kept so the caller sees
// ErrEmptyDocument when weighting.
func (l *Loader) FromInputs(inputs []models.DocumentInput) []models.Document {
	docs := make([]models.Document, 0, len(inputs))
	for i, in := range inputs {
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("doc-%d", i+1)
		}
		title := in.Title
		if title == "" {
			title = id
		}
		docs = append(docs, l.analyzer.Document(id, title, in.Content))
	}
	return docs
}

// MinTermLength returns the configured minimum term length.
func (l *Loader) MinTermLength() int {
	return l.minTermLength
}

func (l *Loader) hasTerms(doc models.Document) bool {
	for _, s := range doc.Sentences {
		for _, t := range s.Terms {
			if KeepTerm(t, l.minTermLength) {
				return true
			}
		}
	}
	return false
}
