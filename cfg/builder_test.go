package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astgraph/codescope/cfg"
	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
	"github.com/astgraph/codescope/inspector/typescript"
)

func parseFunctionBody(t *testing.T, source, name string) parsetree.Node {
	t.Helper()
	provider := parsetree.NewTreeSitterProvider()
	tree, err := provider.Parse([]byte(source), model.LanguageJavaScript)
	require.NoError(t, err)
	body, _, _, found := typescript.FindFunction(tree.Root(), name)
	require.True(t, found, "function %q not found", name)
	require.NotNil(t, body)
	return body
}

func TestBuild_StraightLineFunctionHasNoBranches(t *testing.T) {
	body := parseFunctionBody(t, `function add(a, b) {
  const sum = a + b;
  return sum;
}`, "add")

	info := cfg.Build("add", "math.js", body)
	assert.Equal(t, "add", info.FunctionName)
	assert.Equal(t, 1, info.CyclomaticComplexity)
	assert.Equal(t, 0, info.DecisionPoints)
	assert.NotEmpty(t, info.Blocks)
	assert.NotEmpty(t, info.ExitBlocks)
}

func TestBuild_IfElseIncreasesComplexity(t *testing.T) {
	body := parseFunctionBody(t, `function classify(x) {
  if (x > 0) {
    return 'positive';
  } else {
    return 'non-positive';
  }
}`, "classify")

	info := cfg.Build("classify", "classify.js", body)
	assert.Equal(t, 1, info.DecisionPoints)
	assert.GreaterOrEqual(t, info.CyclomaticComplexity, 2)

	var sawBranch bool
	for _, b := range info.Blocks {
		if b.Type == model.BlockBranch {
			sawBranch = true
		}
	}
	assert.True(t, sawBranch)

	var trueEdge, falseEdge bool
	for _, e := range info.Edges {
		if e.Type == model.EdgeTrue {
			trueEdge = true
		}
		if e.Type == model.EdgeFalse {
			falseEdge = true
		}
	}
	assert.True(t, trueEdge)
	assert.True(t, falseEdge)
}

func TestBuild_LoopProducesBackEdge(t *testing.T) {
	body := parseFunctionBody(t, `function sumTo(n) {
  let total = 0;
  for (let i = 0; i < n; i++) {
    total += i;
  }
  return total;
}`, "sumTo")

	info := cfg.Build("sumTo", "loop.js", body)
	var sawBackEdge bool
	for _, e := range info.Edges {
		if e.IsBackEdge {
			sawBackEdge = true
		}
	}
	assert.True(t, sawBackEdge)
}

func TestBuild_NestedFunctionGetsOwnCFG(t *testing.T) {
	body := parseFunctionBody(t, `function outer() {
  const inner = function() {
    return 1;
  };
  return inner();
}`, "outer")

	info := cfg.Build("outer", "nested.js", body)
	assert.NotEmpty(t, info.NestedFunctions)
}
