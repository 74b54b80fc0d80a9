// Package main is the yoyaku CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/yoyaku/internal/analysis"
	"github.com/hyperjump/yoyaku/internal/cache"
	"github.com/hyperjump/yoyaku/internal/cli"
	"github.com/hyperjump/yoyaku/internal/config"
	"github.com/hyperjump/yoyaku/internal/corpus"
	"github.com/hyperjump/yoyaku/internal/extract"
	"github.com/hyperjump/yoyaku/internal/models"
	"github.com/hyperjump/yoyaku/internal/server"
	"github.com/hyperjump/yoyaku/internal/storage"
	"github.com/hyperjump/yoyaku/internal/summarizer"
	"github.com/hyperjump/yoyaku/internal/watcher"
	"github.com/hyperjump/yoyaku/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/yoyaku/config.yaml"

// cliCorpusName labels corpora given as explicit file arguments in the weight cache.
const cliCorpusName = "cli"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// When neither file exists the built-in defaults are used, resolved against the
// current directory. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
			if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
				cfg, err := config.Default(cwd)
				if err != nil {
					return nil, "", err
				}
				return cfg, "", nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "summarize":
		runSummarize()
	case "server":
		runServer()
	case "watch":
		runWatch()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("yoyaku version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// reorderArgs moves flags (and their values) ahead of positional arguments so that
// flag.Parse sees them. Go's flag package stops at the first non-flag argument, so
// "yoyaku summarize a.txt -budget 300" would otherwise leave -budget unparsed.
// Positional arguments keep their relative order since it is the document order.
// Everything after "--" is positional and the terminator is kept.
func reorderArgs(fs *flag.FlagSet, args []string) []string {
	flags := make([]string, 0, len(args)+1)
	positional := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			flags = append(flags, "--")
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(a) < 2 || a[0] != '-' {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		name := a[1:]
		if name[0] == '-' {
			name = name[1:]
		}
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil || isBoolFlag(f) {
			continue
		}
		if i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	return append(flags, positional...)
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// summarizeFlags are the per-run overrides shared by summarize and watch.
type summarizeFlags struct {
	configPath *string
	directory  *string
	recursive  *bool
	budget     *int
	threshold  *string
	idf        *string
	matrix     *string
	output     *string
	debug      *bool
}

func registerSummarizeFlags(fs *flag.FlagSet) *summarizeFlags {
	return &summarizeFlags{
		configPath: fs.String("config", defaultConfigPath, "config file path"),
		directory:  fs.String("dir", "", "corpus directory (default from config)"),
		recursive:  fs.Bool("recursive", false, "scan corpus subdirectories"),
		budget:     fs.Int("budget", 0, "summary length budget in characters (0 = config)"),
		threshold:  fs.String("threshold", "", "redundancy threshold in [0, 1] (empty = config)"),
		idf:        fs.String("idf", "", "centroid idf policy: constant or corpus (empty = config)"),
		matrix:     fs.String("matrix", "", "matrix storage: dense or sparse (empty = config)"),
		output:     fs.String("output", "text", "output format: text, compact, or json"),
		debug:      fs.Bool("debug", false, "enable debug logging"),
	}
}

// overrides converts the flag values into summary overrides.
func (f *summarizeFlags) overrides() (config.SummaryOverrides, error) {
	o := config.SummaryOverrides{
		LengthBudget: *f.budget,
		CentroidIDF:  *f.idf,
		Matrix:       *f.matrix,
	}
	if *f.budget < 0 {
		return o, fmt.Errorf("budget cannot be negative")
	}
	if *f.threshold != "" {
		th, err := strconv.ParseFloat(*f.threshold, 64)
		if err != nil {
			return o, fmt.Errorf("invalid threshold %q: %w", *f.threshold, err)
		}
		o.RedundancyThreshold = &th
	}
	return o, nil
}

// source resolves the corpus to load: explicit files win over the directory scan.
func (f *summarizeFlags) source(cfg *config.Config, files []string) (corpus.Source, string, error) {
	src := cfg.Corpus.Source()
	if *f.directory != "" {
		abs, err := filepath.Abs(*f.directory)
		if err != nil {
			return corpus.Source{}, "", err
		}
		src.Directory = abs
		src.Documents = nil
	}
	if *f.recursive {
		src.Recursive = true
	}
	if len(files) > 0 {
		docs := make([]string, 0, len(files))
		for _, name := range files {
			abs, err := filepath.Abs(name)
			if err != nil {
				return corpus.Source{}, "", err
			}
			docs = append(docs, abs)
		}
		src.Documents = docs
		return src, cliCorpusName, nil
	}
	return src, src.Directory, nil
}

func printSummarizeUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: yoyaku summarize [flags] [file ...]\n\n")
	fmt.Fprintf(fs.Output(), "Files are summarized in the given order. Without files the configured corpus is used.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  yoyaku summarize
  yoyaku summarize --dir ./reports --budget 300
  yoyaku summarize a.txt b.pdf --output compact
  yoyaku summarize --server http://localhost:8080 notes.md
`)
}

func runSummarize() {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	flags := registerSummarizeFlags(fs)
	serverURL := fs.String("server", "", "server URL (empty = summarize locally)")
	fs.Usage = func() { printSummarizeUsage(fs) }
	_ = fs.Parse(reorderArgs(fs, os.Args[2:]))

	format, err := cli.ParseOutputFormat(*flags.output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	overrides, err := flags.overrides()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var summary *models.Summary
	if *serverURL != "" {
		summary, err = summarizeRemote(*serverURL, fs.Args(), overrides)
	} else {
		summary, err = summarizeLocal(flags, fs.Args(), overrides)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Summarize failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSummary(os.Stdout, summary, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func summarizeLocal(flags *summarizeFlags, files []string, overrides config.SummaryOverrides) (*models.Summary, error) {
	cfg, _, err := loadConfig(*flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewCLILogger(cfg.Debug || *flags.debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	opts, err := cfg.Summary.OptionsWith(overrides)
	if err != nil {
		return nil, err
	}
	src, name, err := flags.source(cfg, files)
	if err != nil {
		return nil, err
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()

	ctx := context.Background()
	idx, err := components.Loader.LoadSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return components.Engine.Summarize(ctx, name, idx, opts)
}

// summarizeRemote sends files to a running server, extracting their text locally, or
// asks the server for its configured corpus when no files are given.
func summarizeRemote(serverURL string, files []string, o config.SummaryOverrides) (*models.Summary, error) {
	if len(files) == 0 {
		q := url.Values{}
		if o.LengthBudget > 0 {
			q.Set("length_budget", strconv.Itoa(o.LengthBudget))
		}
		if o.RedundancyThreshold != nil {
			q.Set("redundancy_threshold", strconv.FormatFloat(*o.RedundancyThreshold, 'g', -1, 64))
		}
		if o.CentroidIDF != "" {
			q.Set("centroid_idf", o.CentroidIDF)
		}
		if o.Matrix != "" {
			q.Set("matrix", o.Matrix)
		}
		endpoint := serverURL + "/api/v1/summary"
		if len(q) > 0 {
			endpoint += "?" + q.Encode()
		}
		resp, err := http.Get(endpoint)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		return decodeSummary(resp)
	}

	req := models.SummarizeRequest{
		LengthBudget:        o.LengthBudget,
		RedundancyThreshold: o.RedundancyThreshold,
		CentroidIDF:         o.CentroidIDF,
		Matrix:              o.Matrix,
	}
	ex := extract.NewExtractor()
	for _, path := range files {
		text, err := ex.Extract(path)
		if err != nil {
			return nil, err
		}
		base := filepath.Base(path)
		req.Documents = append(req.Documents, models.DocumentInput{
			ID:      base,
			Title:   strings.TrimSuffix(base, filepath.Ext(base)),
			Content: text,
		})
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/summarize", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return decodeSummary(resp)
}

func decodeSummary(resp *http.Response) (*models.Summary, error) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(bytes.TrimSpace(b)))
	}
	var s models.Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (cache hits, corpus loads, etc.)")
	watch := fs.Bool("watch", false, "rebuild the corpus summary when corpus files change")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if *watch {
		opts, err := cfg.Summary.Options()
		if err != nil {
			logger.Fatal("Invalid summary config", zap.Error(err))
		}
		src := cfg.Corpus.Source()
		refresh := func(paths []string) {
			ctx := context.Background()
			if err := components.Engine.Invalidate(ctx, src.Directory); err != nil {
				logger.Warn("cache invalidation failed", zap.Error(err))
			}
			idx, err := components.Loader.LoadSource(ctx, src)
			if err != nil {
				logger.Warn("corpus reload failed", zap.Strings("changed", paths), zap.Error(err))
				return
			}
			summary, err := components.Engine.Summarize(ctx, src.Directory, idx, opts)
			if err != nil {
				logger.Warn("summary refresh failed", zap.Error(err))
				return
			}
			logger.Info("corpus summary refreshed",
				zap.Strings("changed", paths),
				zap.String("preview", cli.Preview(summary, 24)),
			)
		}
		watchSvc := newCorpusWatcher(cfg, refresh, logger)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(components.Engine, components.Loader, components.Store, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	waitForSignal()

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	flags := registerSummarizeFlags(fs)
	_ = fs.Parse(reorderArgs(fs, os.Args[2:]))

	format, err := cli.ParseOutputFormat(*flags.output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	overrides, err := flags.overrides()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, _, err := loadConfig(*flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewCLILogger(cfg.Debug || *flags.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts, err := cfg.Summary.OptionsWith(overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	src, name, err := flags.source(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Corpus.Directory = src.Directory
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	// Callbacks come from a single debounce timer, so prints never interleave.
	emit := func() {
		ctx := context.Background()
		idx, err := components.Loader.LoadSource(ctx, src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
			return
		}
		summary, err := components.Engine.Summarize(ctx, name, idx, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Summarize failed: %v\n", err)
			return
		}
		if err := cli.WriteSummary(os.Stdout, summary, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		}
	}
	emit()

	watchSvc := newCorpusWatcher(cfg, func(paths []string) {
		logger.Info("corpus changed", zap.Strings("paths", paths))
		emit()
	}, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := watchSvc.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start watcher: %v\n", err)
		os.Exit(1)
	}
	defer watchSvc.Stop()
	waitForSignal()
}

// newCorpusWatcher watches the configured corpus directory for document changes.
func newCorpusWatcher(cfg *config.Config, onChange func(paths []string), logger *zap.Logger) *watcher.Watcher {
	return watcher.NewWatcher(
		[]string{cfg.Corpus.Directory},
		cfg.Corpus.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		onChange,
		watcher.WithLogger(logger),
		watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond),
	)
}

func waitForSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	CacheEntries   int64                  `json:"cache_entries"`
	DiskUsageBytes *int64                 `json:"disk_usage_bytes,omitempty"`
	Config         map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = read the local cache)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status *statusResponse
	var err error
	if *serverURL != "" {
		status, err = statusViaHTTP(*serverURL)
	} else {
		status, err = localStatus(*configPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeStatusText(os.Stdout, status)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func localStatus(configPath string) (*statusResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := storage.NewSQLiteCache(cfg.Storage.CachePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	n, err := store.Count(context.Background())
	if err != nil {
		return nil, fmt.Errorf("count cache entries: %w", err)
	}
	status := &statusResponse{
		CacheEntries: n,
		Config: map[string]interface{}{
			"cache_path":           cfg.Storage.CachePath,
			"corpus_directory":     cfg.Corpus.Directory,
			"length_budget":        cfg.Summary.LengthBudget,
			"redundancy_threshold": cfg.Summary.RedundancyThresholdOrDefault(),
			"centroid_idf":         cfg.Summary.CentroidIDF,
			"matrix":               cfg.Summary.Matrix,
		},
	}
	if diskBytes, err := storage.DiskUsageBytes(cfg.Storage.CachePath); err == nil {
		status.DiskUsageBytes = &diskBytes
	}
	return status, nil
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func writeStatusText(w io.Writer, s *statusResponse) {
	fmt.Fprintf(w, "cache_entries:         %d   # stored weight matrices\n", s.CacheEntries)
	if s.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:      %d   # weight cache on disk\n", *s.DiskUsageBytes)
	}
	if len(s.Config) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# configuration")
	for _, key := range []string{"corpus_directory", "cache_path", "length_budget", "redundancy_threshold", "centroid_idf", "matrix"} {
		if v, ok := s.Config[key]; ok {
			fmt.Fprintf(w, "%-22s %v\n", key+":", v)
		}
	}
}

// Components holds initialized services.
type Components struct {
	Store  *storage.SQLiteCache
	Loader *corpus.Loader
	Engine *summarizer.Engine
}

// Close releases the weight cache.
func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteCache(cfg.Storage.CachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize weight cache: %w", err)
	}
	memory, err := cache.NewWeightCache(cfg.Storage.MemoryCacheSize)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize memory cache: %w", err)
	}
	analyzer, err := analysis.New()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize analyzer: %w", err)
	}
	loader := corpus.NewLoader(extract.NewExtractor(), analyzer,
		corpus.WithLogger(logger),
		corpus.WithMinTermLength(cfg.Corpus.MinTermLength),
	)
	engine := summarizer.NewEngine(
		summarizer.WithStore(store),
		summarizer.WithMemoryCache(memory),
		summarizer.WithLogger(logger),
	)
	return &Components{Store: store, Loader: loader, Engine: engine}, nil
}

func printUsage() {
	fmt.Println(`yoyaku - Centroid-based extractive multi-document summarizer

Usage:
  yoyaku summarize [flags] [file ...]   Summarize files or the configured corpus
  yoyaku server [flags]                 Start the HTTP server
  yoyaku watch [flags]                  Re-summarize the corpus whenever it changes
  yoyaku status [flags]                 Show weight cache status
  yoyaku version                        Show version
  yoyaku help                           Show this help

Summarize / Watch Flags:
  --config string     Config file path (default: /usr/local/etc/yoyaku/config.yaml)
  --dir string        Corpus directory (default from config)
  --recursive         Scan corpus subdirectories
  --budget int        Length budget in characters (default from config, or 665)
  --threshold float   Redundancy threshold in [0, 1] (default from config, or 0.539)
  --idf string        Centroid idf policy: constant or corpus
  --matrix string     Matrix storage: dense or sparse
  --output string     Output format: text, compact, or json (default: text)
  --server string     Summarize on a running server (summarize only)

Server Flags:
  --config string    Config file path
  --debug            Enable debug logging
  --watch            Refresh the corpus summary when corpus files change

Status Flags:
  --config string    Config file path (for local cache mode)
  --server string    Server URL. Empty reads the local cache.
  --output string    Output format: text or json (default: text)

Examples:
  yoyaku summarize --dir ./reports
  yoyaku summarize a.txt b.pdf c.docx --budget 300 --output compact
  yoyaku summarize --output json notes.md
  yoyaku server --watch
  yoyaku watch --dir ./notes
  yoyaku status --output json`)
}
