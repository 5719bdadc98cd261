package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astgraph/codescope/errs"
)

func writeSourceFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.ts")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeFunction_BuildsCFGAndDFGAndPDG(t *testing.T) {
	path := writeSourceFile(t, `function add(a: number, b: number): number {
  const sum = a + b;
  return sum;
}
`)
	e := New()
	analysis, err := e.AnalyzeFunction(context.Background(), path, "add")
	require.NoError(t, err)
	require.NotNil(t, analysis.CFG)
	require.NotNil(t, analysis.DFG)
	require.NotNil(t, analysis.PDG)
	assert.Equal(t, "add", analysis.CFG.FunctionName)
	assert.Equal(t, len(analysis.CFG.Blocks), len(analysis.PDG.Nodes))
}

func TestAnalyzeFunction_UnknownFunctionReturnsNotFound(t *testing.T) {
	path := writeSourceFile(t, `function add(a: number, b: number): number {
  return a + b;
}
`)
	e := New()
	_, err := e.AnalyzeFunction(context.Background(), path, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.New(errs.FunctionNotFound, "")))
}

func TestAnalyzeFunction_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	e := New()
	_, err := e.AnalyzeFunction(context.Background(), path, "add")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.New(errs.UnsupportedFile, "")))
}

func TestSlices_RejectNegativeLine(t *testing.T) {
	e := New()
	_, err := e.BackwardSlice(nil, -1, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.New(errs.SliceCriterionOutOfRange, "")))

	_, err = e.ForwardSlice(nil, -1, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.New(errs.SliceCriterionOutOfRange, "")))
}

func TestExportContext_ProducesDocuments(t *testing.T) {
	path := writeSourceFile(t, `export function greet(name: string): string {
  return 'hello ' + name;
}
`)
	e := New(WithProjectName("demo"))
	docs, err := e.ExportContext(context.Background(), path)
	require.NoError(t, err)
	assert.NotEmpty(t, docs)
}

func TestDetectProject_DelegatesToDetector(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/demo\n\ngo 1.21\n"), 0o644))

	e := New()
	project, err := e.DetectProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "go", project.Type)
}

func TestDefaultConfig_AllowsStandardExtensions(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Contains(t, cfg.Languages, "ts")
	assert.Contains(t, cfg.Languages, "tsx")
}

func TestWithConfig_LanguageAllowlistRejectsExcludedExtension(t *testing.T) {
	path := writeSourceFile(t, `function add(a: number, b: number): number {
  return a + b;
}
`)
	cfg := *DefaultConfig()
	cfg.Languages = []string{"jsx"}
	e := New(WithConfig(cfg))

	_, err := e.AnalyzeFunction(context.Background(), path, "add")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.New(errs.UnsupportedFile, "")))
}

func TestWithMaxSliceDepth_BoundedSliceNoLargerThanUnbounded(t *testing.T) {
	path := writeSourceFile(t, `function compute(x: number): number {
  const doubled = x * 2;
  const tripled = doubled + x;
  return tripled;
}
`)
	unbounded := New()
	bounded := New(WithMaxSliceDepth(1))

	analysis, err := unbounded.AnalyzeFunction(context.Background(), path, "compute")
	require.NoError(t, err)

	var returnLine int
	for _, n := range analysis.PDG.Nodes {
		if len(n.Uses) > 0 {
			returnLine = n.Line
		}
	}
	require.NotZero(t, returnLine)

	full, err := unbounded.BackwardSlice(analysis.PDG, returnLine, nil)
	require.NoError(t, err)
	limited, err := bounded.BackwardSlice(analysis.PDG, returnLine, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(limited), len(full))
}
