// Package engine is the top-level orchestration layer: it wires the
// parse-tree provider, the L1 extractor, the call-graph builder, and the
// CFG/DFG/PDG builders behind the functional-options configuration idiom
// the teacher uses throughout analyzer/option.go.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/astgraph/codescope/callgraph"
	"github.com/astgraph/codescope/cfg"
	codecontext "github.com/astgraph/codescope/context"
	"github.com/astgraph/codescope/dfg"
	"github.com/astgraph/codescope/errs"
	"github.com/astgraph/codescope/inspector/typescript"
	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
	"github.com/astgraph/codescope/pdg"
	"github.com/astgraph/codescope/repository"
)

// Config holds engine-wide settings, mirroring inspector/info.Config's
// flat-struct-plus-functional-options shape.
type Config struct {
	Concurrency   int
	Project       string
	Languages     []string
	ExcludeDirs   []string
	MaxSliceDepth int
}

// DefaultConfig mirrors inspector/info.DefaultConfig's shape: sensible
// defaults a caller can selectively override before passing to New via
// WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Concurrency:   8,
		Languages:     []string{"ts", "tsx", "js", "jsx"},
		MaxSliceDepth: 0,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency bounds the call-graph builder's per-file worker pool.
func WithConcurrency(n int) Option {
	return func(e *Engine) { e.config.Concurrency = n }
}

// WithProjectName sets the project label attached to context.Build output.
func WithProjectName(name string) Option {
	return func(e *Engine) { e.config.Project = name }
}

// WithFilesystem overrides the afs.Service used for file enumeration and
// reads; defaults to afs.New().
func WithFilesystem(fs afs.Service) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithProvider overrides the parse-tree provider; defaults to a
// parsetree.NewTreeSitterProvider().
func WithProvider(p parsetree.Provider) Option {
	return func(e *Engine) { e.provider = p }
}

// WithConfig replaces the whole Config in one call, for callers that built
// one from DefaultConfig() and overrode select fields.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.config = cfg }
}

// WithExcludeDirs extends the directories Engine.AnalyzeProject skips
// beyond §6.2's baked-in list.
func WithExcludeDirs(dirs ...string) Option {
	return func(e *Engine) { e.config.ExcludeDirs = append(e.config.ExcludeDirs, dirs...) }
}

// WithMaxSliceDepth bounds BackwardSlice/ForwardSlice to at most n hops
// from the seed nodes; n <= 0 leaves slices unbounded.
func WithMaxSliceDepth(n int) Option {
	return func(e *Engine) { e.config.MaxSliceDepth = n }
}

// Engine is the entry point for all five layered analyses.
type Engine struct {
	config   Config
	provider parsetree.Provider
	fs       afs.Service
	detector *repository.Detector
}

// New constructs an Engine, applying opts over sensible defaults.
func New(opts ...Option) *Engine {
	e := &Engine{
		config:   *DefaultConfig(),
		provider: parsetree.NewTreeSitterProvider(),
		fs:       afs.New(),
		detector: repository.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnalyzeProject builds the ProjectCallGraph for projectRoot (component D).
func (e *Engine) AnalyzeProject(ctx context.Context, projectRoot string) (*model.ProjectCallGraph, []error) {
	builder := callgraph.NewBuilder(e.provider,
		callgraph.WithConcurrency(e.config.Concurrency),
		callgraph.WithFilesystem(e.fs),
		callgraph.WithExcludeDirs(e.config.ExcludeDirs...),
	)
	return builder.Build(ctx, projectRoot)
}

// languageAllowed reports whether filePath's extension is in the ambient
// Config's Languages allowlist; an empty allowlist permits everything
// typescript.DialectFor recognises.
func (e *Engine) languageAllowed(filePath string) bool {
	if len(e.config.Languages) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(filePath), ".")
	for _, lang := range e.config.Languages {
		if strings.EqualFold(lang, ext) {
			return true
		}
	}
	return false
}

// DetectProject locates the project root containing filePath.
func (e *Engine) DetectProject(filePath string) (*repository.Project, error) {
	return e.detector.DetectProject(filePath)
}

// FunctionAnalysis bundles the CFG/DFG/PDG for one function, the unit
// AnalyzeFunction operates over.
type FunctionAnalysis struct {
	CFG *model.CFGInfo
	DFG *model.DFGInfo
	PDG *model.PDGInfo
}

// AnalyzeFunction runs components E, F, and G over one named function (or
// "Class.method") found in filePath's source.
func (e *Engine) AnalyzeFunction(ctx context.Context, filePath, functionName string) (*FunctionAnalysis, error) {
	source, err := e.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	lang, ok := typescript.DialectFor(filePath)
	if !ok || !e.languageAllowed(filePath) {
		return nil, errs.New(errs.UnsupportedFile, filePath)
	}
	tree, err := e.provider.Parse(source, lang)
	if err != nil {
		return nil, err
	}
	body, paramsNode, declLine, found := typescript.FindFunction(tree.Root(), functionName)
	if !found {
		return nil, errs.New(errs.FunctionNotFound, functionName)
	}

	cfgInfo := cfg.Build(functionName, filePath, body)
	dfgInfo := dfg.Build(functionName, filePath, typescript.ParseParameters(paramsNode), declLine, body)
	pdgInfo := pdg.Build(cfgInfo, dfgInfo)

	return &FunctionAnalysis{CFG: cfgInfo, DFG: dfgInfo, PDG: pdgInfo}, nil
}

// BackwardSlice implements §4.7's backward slice over a built PDG, bounded
// by the ambient Config's MaxSliceDepth when set.
func (e *Engine) BackwardSlice(info *model.PDGInfo, line int, variable *string) ([]int, error) {
	if line < 0 {
		return nil, errs.New(errs.SliceCriterionOutOfRange, fmt.Sprintf("line %d", line))
	}
	return pdg.BackwardSliceDepth(pdg.NewGraph(info), line, variable, e.config.MaxSliceDepth), nil
}

// ForwardSlice implements §4.7's forward slice over a built PDG, bounded by
// the ambient Config's MaxSliceDepth when set.
func (e *Engine) ForwardSlice(info *model.PDGInfo, line int, variable *string) ([]int, error) {
	if line < 0 {
		return nil, errs.New(errs.SliceCriterionOutOfRange, fmt.Sprintf("line %d", line))
	}
	return pdg.ForwardSliceDepth(pdg.NewGraph(info), line, variable, e.config.MaxSliceDepth), nil
}

// ExportContext runs the supplemented LLM-context-pipeline export over one
// file's L1 Module.
func (e *Engine) ExportContext(ctx context.Context, filePath string) (codecontext.Documents, error) {
	source, err := e.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	extractor := typescript.NewExtractor(e.provider)
	mod, err := extractor.ExtractModule(source, filePath)
	if err != nil {
		return nil, err
	}
	return codecontext.Build(e.config.Project, mod), nil
}
