// Package callgraph implements component D: it enumerates project source
// files, runs the L1 extractor and call scan per file, registers function
// locations in a project-wide name index, resolves callees, and builds the
// forward/backward indices of a ProjectCallGraph.
package callgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"

	"github.com/astgraph/codescope/inspector/typescript"
	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

// Option configures a Builder, in the teacher's functional-options idiom
// (analyzer/option.go).
type Option func(*Builder)

// WithConcurrency bounds the number of files processed in parallel (§5's
// "bounded worker pool").
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithFilesystem overrides the afs.Service used to enumerate and read
// source files; defaults to afs.New().
func WithFilesystem(fs afs.Service) Option {
	return func(b *Builder) { b.fs = fs }
}

// WithExcludeDirs extends the §6.2 directory exclusion list with caller
// supplied names, threading the ambient Config's ExcludeDirs setting
// through to enumeration.
func WithExcludeDirs(dirs ...string) Option {
	return func(b *Builder) { b.excludeDirs = append(b.excludeDirs, dirs...) }
}

// Builder builds a ProjectCallGraph for one project root.
type Builder struct {
	provider    parsetree.Provider
	fs          afs.Service
	concurrency int
	excludeDirs []string
}

// NewBuilder constructs a Builder over provider, applying opts.
func NewBuilder(provider parsetree.Provider, opts ...Option) *Builder {
	b := &Builder{provider: provider, fs: afs.New(), concurrency: 8}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type fileResult struct {
	file   string
	module string
	mod    *model.Module
	calls  map[string][]typescript.CallRef
	err    error
}

// Build runs the full §4.4 procedure for projectRoot: enumerate, run B and C
// on each file, register FunctionLocations, resolve callees, and build the
// forward/backward indices. Each file is parsed twice: once inside
// ExtractModule for B, and once more for C's call scan. Per-file errors are collected and
// returned alongside the graph rather than aborting the build (§7's
// propagation policy).
func (b *Builder) Build(ctx context.Context, projectRoot string) (*model.ProjectCallGraph, []error) {
	files, err := enumerateFiles(ctx, b.fs, projectRoot, b.excludeDirs...)
	if err != nil {
		return nil, []error{err}
	}

	results := make([]*fileResult, len(files))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(b.concurrency)
	extractor := typescript.NewExtractor(b.provider)

	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			source, readErr := b.fs.DownloadWithURL(gctx, file)
			if readErr != nil {
				results[i] = &fileResult{file: file, err: readErr}
				return nil
			}
			mod, parseErr := extractor.ExtractModule(source, file)
			if parseErr != nil {
				results[i] = &fileResult{file: file, err: parseErr}
				return nil
			}
			dialect, ok := typescript.DialectFor(file)
			if !ok {
				dialect = model.LanguageJavaScript
			}
			tree, treeErr := b.provider.Parse(source, dialect)
			var calls map[string][]typescript.CallRef
			if treeErr == nil {
				calls = typescript.ScanCalls(tree.Root())
			}
			results[i] = &fileResult{
				file:   file,
				module: moduleName(projectRoot, file),
				mod:    mod,
				calls:  calls,
			}
			return nil
		})
	}
	// Cancellation is observed between files via gctx.Done() above; a
	// worker-pool error here is always nil (per-file errors are carried in
	// fileResult instead), so Wait only surfaces context cancellation.
	_ = group.Wait()

	graph := &model.ProjectCallGraph{
		ProjectRoot:   projectRoot,
		Functions:     map[string]model.FunctionLocation{},
		ForwardIndex:  map[string][]model.CallEdge{},
		BackwardIndex: map[string][]model.CallEdge{},
	}

	var errsOut []error
	var mu sync.Mutex
	nameIndex := map[string][]model.FunctionLocation{}
	fileIndex := map[string]map[string]model.FunctionLocation{}

	for _, r := range results {
		if r == nil {
			continue
		}
		if r.err != nil {
			errsOut = append(errsOut, fmt.Errorf("%s: %w", r.file, r.err))
			continue
		}
		graph.Files = append(graph.Files, r.file)
		local := map[string]model.FunctionLocation{}
		registerFunctions(r, graph, nameIndex, local, &mu)
		fileIndex[r.file] = local
	}
	sort.Strings(graph.Files)

	for _, r := range results {
		if r == nil || r.err != nil {
			continue
		}
		resolveCalls(r, graph, nameIndex, fileIndex[r.file])
	}

	graph.BuiltAt = time.Now()
	return graph, errsOut
}

// registerFunctions implements §4.4 steps 2–4: register a FunctionLocation
// for every top-level function and method, composing
// qualifiedName = moduleName + "." + (Class.method | name).
func registerFunctions(r *fileResult, graph *model.ProjectCallGraph, nameIndex map[string][]model.FunctionLocation, local map[string]model.FunctionLocation, mu *sync.Mutex) {
	add := func(shortName string, loc model.FunctionLocation) {
		mu.Lock()
		graph.Functions[loc.QualifiedName] = loc
		nameIndex[shortName] = append(nameIndex[shortName], loc)
		mu.Unlock()
		local[shortName] = loc
	}
	for _, fn := range r.mod.Functions {
		loc := model.FunctionLocation{
			File:          r.file,
			Name:          fn.Name,
			QualifiedName: r.module + "." + fn.Name,
			Line:          fn.Line,
			IsExported:    fn.IsExported,
		}
		add(fn.Name, loc)
	}
	for _, cls := range r.mod.Classes {
		for _, method := range cls.Methods {
			shortName := cls.Name + "." + method.Name
			loc := model.FunctionLocation{
				File:          r.file,
				Name:          method.Name,
				QualifiedName: r.module + "." + shortName,
				Line:          method.Line,
				IsExported:    cls.IsExported,
			}
			add(shortName, loc)
		}
	}
}

// resolveCalls implements §4.4 step 5–7: resolve each callee string to a
// FunctionLocation (preferring the local file index, then falling back to
// the project-wide name index only when it is unambiguous) and emits a
// CallEdge into the graph's edge list and both indices.
func resolveCalls(r *fileResult, graph *model.ProjectCallGraph, nameIndex map[string][]model.FunctionLocation, local map[string]model.FunctionLocation) {
	callers := make([]string, 0, len(r.calls))
	for caller := range r.calls {
		callers = append(callers, caller)
	}
	sort.Strings(callers)
	for _, caller := range callers {
		callees := r.calls[caller]
		callerLoc, ok := local[caller]
		if !ok {
			// module-level calls (no enclosing function) have no caller
			// FunctionLocation to attach an edge to; §4.3 allows a nullable
			// currentFunction, but §3's CallEdge requires a caller, so such
			// calls are not representable as edges and are skipped.
			continue
		}
		for _, ref := range callees {
			edge := buildEdge(callerLoc, ref, r.file, local, nameIndex)
			graph.Edges = append(graph.Edges, edge)
			graph.ForwardIndex[callerLoc.QualifiedName] = append(graph.ForwardIndex[callerLoc.QualifiedName], edge)
			if edge.CalleeLocation != nil {
				graph.BackwardIndex[edge.CalleeLocation.QualifiedName] = append(graph.BackwardIndex[edge.CalleeLocation.QualifiedName], edge)
			}
		}
	}
}

func buildEdge(caller model.FunctionLocation, ref typescript.CallRef, file string, local map[string]model.FunctionLocation, nameIndex map[string][]model.FunctionLocation) model.CallEdge {
	callee := ref.Callee
	edge := model.CallEdge{
		Caller: caller,
		Callee: callee,
		CallSite: model.CallSite{
			File:          file,
			Caller:        caller.QualifiedName,
			Line:          ref.Line,
			Column:        ref.Column,
			IsMethodCall:  strings.Contains(callee, "."),
			Receiver:      ref.Receiver,
			ArgumentCount: ref.ArgumentCount,
		},
	}
	if loc, ok := local[callee]; ok {
		edge.CalleeLocation = &loc
	} else if matches := nameIndex[callee]; len(matches) == 1 {
		loc := matches[0]
		edge.CalleeLocation = &loc
	} else {
		edge.IsDynamic = true
	}
	switch {
	case edge.CalleeLocation == nil:
		edge.CallType = model.CallDynamic
		edge.IsDynamic = true
	case strings.Contains(callee, "."):
		edge.CallType = model.CallMethod
	default:
		edge.CallType = model.CallDirect
	}
	return edge
}
