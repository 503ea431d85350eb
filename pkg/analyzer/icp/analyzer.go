// Package icp implements the ICP scanning engine: language-specific tree
// walks that turn syntactic constructs into weighted ICP instances, the
// internal/external coupling heuristic, and the per-class and per-method
// analysis builder.
package icp

import (
	"context"
	"fmt"
	"sort"

	"github.com/cddtools/icp/internal/fileproc"
	"github.com/cddtools/icp/pkg/config"
	"github.com/cddtools/icp/pkg/models"
	"github.com/cddtools/icp/pkg/parser"
)

// Analyzer scans source files and produces per-file analysis results. The
// configuration is shared read-only; per-file scans are independent and run
// on a bounded worker pool.
type Analyzer struct {
	cfg     *config.Config
	workers int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWorkers sets the worker pool size (0 = 2x NumCPU).
func WithWorkers(workers int) Option {
	return func(a *Analyzer) {
		a.workers = workers
	}
}

// New creates an analyzer for the given configuration. A nil configuration
// means the built-in defaults.
func New(cfg *config.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &Analyzer{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeFile analyzes a single file with a dedicated parser.
func (a *Analyzer) AnalyzeFile(path string) (*models.AnalysisResult, error) {
	psr := parser.New()
	defer psr.Close()
	return a.analyzeWith(psr, path)
}

// AnalyzeSource analyzes in-memory source, mainly for tests and tooling.
func (a *Analyzer) AnalyzeSource(source []byte, lang parser.Language, path string) (*models.AnalysisResult, error) {
	psr := parser.New()
	defer psr.Close()

	parsed, err := psr.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}
	result := buildFileResult(parser.Inspect(parsed), a.cfg)
	return &result, nil
}

func (a *Analyzer) analyzeWith(psr *parser.Parser, path string) (*models.AnalysisResult, error) {
	parsed, err := psr.ParseFile(path)
	if err != nil {
		return nil, err
	}
	result := buildFileResult(parser.Inspect(parsed), a.cfg)
	return &result, nil
}

// Analyze analyzes all files on the worker pool. A front-end failure is
// isolated: the file contributes an AnalysisResult with zero classes and a
// single ERROR, and the batch continues. Results are ordered by file path.
func (a *Analyzer) Analyze(ctx context.Context, files []string, onProgress fileproc.ProgressFunc) []models.AnalysisResult {
	results, _ := fileproc.MapFiles(ctx, files, a.workers, func(psr *parser.Parser, path string) (models.AnalysisResult, error) {
		result, err := a.analyzeWith(psr, path)
		if err != nil {
			return models.AnalysisResult{
				File: path,
				Errors: []models.AnalysisError{{
					File:     path,
					Message:  err.Error(),
					Severity: models.SeverityError,
				}},
			}, nil
		}
		return *result, nil
	}, onProgress)

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	return results
}

// CollectPackages extracts the distinct declared packages of all files, for
// seeding internal_coupling.packages when auto-detection is enabled. It
// runs before scanning so the configuration is complete once analysis
// starts.
func CollectPackages(ctx context.Context, files []string, workers int, onProgress fileproc.ProgressFunc) ([]string, error) {
	packages, errs := fileproc.MapFiles(ctx, files, workers, func(psr *parser.Parser, path string) (string, error) {
		parsed, err := psr.ParseFile(path)
		if err != nil {
			return "", err
		}
		return parser.Inspect(parsed).Package, nil
	}, onProgress)

	seen := make(map[string]bool, len(packages))
	var distinct []string
	for _, pkg := range packages {
		if pkg == "" || seen[pkg] {
			continue
		}
		seen[pkg] = true
		distinct = append(distinct, pkg)
	}
	sort.Strings(distinct)

	if errs != nil && errs.HasErrors() {
		return distinct, fmt.Errorf("package detection: %w", errs)
	}
	return distinct, nil
}
