package dfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astgraph/codescope/dfg"
	"github.com/astgraph/codescope/inspector/typescript"
	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

func parseFunction(t *testing.T, source, name string) (body, params parsetree.Node, declLine int) {
	t.Helper()
	provider := parsetree.NewTreeSitterProvider()
	tree, err := provider.Parse([]byte(source), model.LanguageJavaScript)
	require.NoError(t, err)
	b, p, line, found := typescript.FindFunction(tree.Root(), name)
	require.True(t, found, "function %q not found", name)
	return b, p, line
}

func TestBuild_DefUseChainAcrossStatements(t *testing.T) {
	body, paramsNode, declLine := parseFunction(t, `function compute(x) {
  const doubled = x * 2;
  return doubled + 1;
}`, "compute")
	params := typescript.ParseParameters(paramsNode)

	info := dfg.Build("compute", "compute.js", params, declLine, body)
	assert.Contains(t, info.Variables, "doubled")
	assert.Contains(t, info.Parameters, "x")

	var sawXEdge, sawDoubledEdge bool
	for _, e := range info.Edges {
		if e.Variable == "x" {
			sawXEdge = true
			assert.True(t, e.IsMayReach)
		}
		if e.Variable == "doubled" {
			sawDoubledEdge = true
		}
	}
	assert.True(t, sawXEdge)
	assert.True(t, sawDoubledEdge)
}

func TestBuild_BuiltinsExcludedFromUses(t *testing.T) {
	body, paramsNode, declLine := parseFunction(t, `function log(msg) {
  console.log(msg);
}`, "log")
	params := typescript.ParseParameters(paramsNode)

	info := dfg.Build("log", "log.js", params, declLine, body)
	for _, ref := range info.Refs {
		assert.NotEqual(t, "console", ref.Name)
	}
}

func TestBuild_NestedFunctionCapturesOuterVariable(t *testing.T) {
	body, paramsNode, declLine := parseFunction(t, `function makeAdder(base) {
  const add = function(amount) {
    return base + amount;
  };
  return add;
}`, "makeAdder")
	params := typescript.ParseParameters(paramsNode)

	info := dfg.Build("makeAdder", "adder.js", params, declLine, body)
	var sawCapture bool
	for _, ref := range info.Refs {
		if ref.Type == model.RefCapture && ref.Name == "base" {
			sawCapture = true
		}
	}
	assert.True(t, sawCapture)
}

func TestWithBuiltinSet_ExtendsExclusions(t *testing.T) {
	body, paramsNode, declLine := parseFunction(t, `function run(x) {
  customGlobal.report(x);
}`, "run")
	params := typescript.ParseParameters(paramsNode)

	info := dfg.Build("run", "run.js", params, declLine, body, dfg.WithBuiltinSet(dfg.WithBuiltins("customGlobal")))
	for _, ref := range info.Refs {
		assert.NotEqual(t, "customGlobal", ref.Name)
	}
}
