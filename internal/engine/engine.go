package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meshackyaro/Sanctifier/internal/analyzer"
	"github.com/meshackyaro/Sanctifier/internal/cache"
	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/plugins"
	"github.com/meshackyaro/Sanctifier/internal/util"
)

// cacheVersion invalidates cached reports when detector output changes shape.
const cacheVersion = "sanctifier-report-v1"

var ErrNotProject = errors.New("not a valid Soroban project")

type Engine struct {
	cfg      config.Config
	analyzer *analyzer.Analyzer
	registry *plugins.Registry
	log      *zap.Logger
	cacheDir string
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithCacheDir overrides the cache location used when a request enables caching.
func WithCacheDir(dir string) Option {
	return func(e *Engine) { e.cacheDir = dir }
}

func WithRegistry(r *plugins.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, log: zap.NewNop()}
	for _, o := range opts {
		o(e)
	}
	if e.registry == nil {
		e.registry = plugins.NewRegistry()
		e.registry.RegisterBuiltin()
	}
	e.analyzer = analyzer.New(cfg, analyzer.WithLogger(e.log))
	return e
}

func (e *Engine) Analyzer() *analyzer.Analyzer { return e.analyzer }

type fileResult struct {
	Report   model.Report    `json:"report"`
	Findings []model.Finding `json:"findings"`
	skipped  bool
}

func (e *Engine) Scan(ctx context.Context, req model.ScanRequest) (*model.ScanResult, error) {
	start := time.Now()
	root := req.Path
	if root == "" {
		root = "."
	}
	if err := checkProject(root); err != nil {
		return nil, err
	}
	files, err := discoverFiles(root, e.cfg)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}

	var store *cache.Store
	if req.UseCache {
		if store, err = cache.Open(e.cacheDir); err != nil {
			e.log.Warn("cache unavailable", zap.Error(err))
			store = nil
		}
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.analyzeFile(path, displayPath(root, path), store)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &model.ScanResult{RunID: uuid.NewString(), Root: root}
	for i, path := range files {
		if results[i].skipped {
			continue
		}
		rel := displayPath(root, path)
		res.Files = append(res.Files, rel)
		res.Report.Merge(rel, results[i].Report)
		res.Findings = append(res.Findings, results[i].Findings...)
	}
	res.Report.Normalize()

	findings := dedupeFindings(res.Findings)
	findings = filterBySeverity(findings, e.cfg)
	if req.BaselinePath != "" {
		b, err := loadBaseline(req.BaselinePath)
		if err != nil {
			return nil, fmt.Errorf("load baseline: %w", err)
		}
		findings = filterByBaseline(findings, b)
	}
	sortFindings(findings)
	res.Findings = findings
	res.Elapsed = time.Since(start)
	e.log.Debug("scan complete",
		zap.String("run_id", res.RunID),
		zap.Int("files", len(res.Files)),
		zap.Int("findings", len(res.Findings)),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// AnalyzeSource runs every enabled rule over one in-memory file.
func (e *Engine) AnalyzeSource(path, src string) (model.Report, []model.Finding) {
	u := &plugins.Unit{Path: path, Source: src, File: e.analyzer.Parse(src)}
	rep, findings := e.registry.Run(e.analyzer, u)
	return rep, applyIgnores(findings, e.cfg, util.Lines(src))
}

// analyzeFile reads path and reports it as rel, the slash-separated path relative to the
// scan root that findings, fingerprints and ignore rules use.
func (e *Engine) analyzeFile(path, rel string, store *cache.Store) fileResult {
	b, err := os.ReadFile(path)
	if err != nil {
		e.log.Warn("skipping unreadable file", zap.String("file", path), zap.Error(err))
		return fileResult{skipped: true}
	}
	var key string
	if store != nil {
		key = cache.Key(cacheVersion, e.configHash(), rel, contentHash(b))
		if data, ok := store.Load(key); ok {
			var fr fileResult
			if err := json.Unmarshal(data, &fr); err == nil {
				e.log.Debug("cache hit", zap.String("file", path))
				return fr
			}
		}
	}
	rep, findings := e.AnalyzeSource(rel, string(b))
	fr := fileResult{Report: rep, Findings: findings}
	if store != nil {
		if data, err := json.Marshal(fr); err == nil {
			if err := store.Store(key, data); err != nil {
				e.log.Debug("cache write failed", zap.String("file", path), zap.Error(err))
			}
		}
	}
	return fr
}

func (e *Engine) configHash() string {
	b, _ := json.Marshal(e.cfg)
	return contentHash(b)
}

func contentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// checkProject accepts a single .rs file or a directory holding a Cargo.toml.
func checkProject(root string) error {
	fi, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%s: %w", root, err)
	}
	if !fi.IsDir() {
		if filepath.Ext(root) == ".rs" {
			return nil
		}
		return fmt.Errorf("%s: %w (expected a .rs file or a crate directory)", root, ErrNotProject)
	}
	if _, err := os.Stat(filepath.Join(root, "Cargo.toml")); err != nil {
		return fmt.Errorf("%s: %w (missing Cargo.toml)", root, ErrNotProject)
	}
	return nil
}

// discoverFiles returns the .rs files under root in lexical order, skipping directories
// listed in ignore_paths.
func discoverFiles(root string, cfg config.Config) ([]string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{root}, nil
	}
	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && cfg.Ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) == ".rs" {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

func sortFindings(fs []model.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].File != fs[j].File {
			return fs[i].File < fs[j].File
		}
		if fs[i].StartLine != fs[j].StartLine {
			return fs[i].StartLine < fs[j].StartLine
		}
		return fs[i].RuleID < fs[j].RuleID
	})
}
