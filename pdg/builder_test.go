package pdg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astgraph/codescope/cfg"
	"github.com/astgraph/codescope/dfg"
	"github.com/astgraph/codescope/inspector/typescript"
	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
	"github.com/astgraph/codescope/pdg"
)

func buildAll(t *testing.T, source, name string) (*model.CFGInfo, *model.DFGInfo, *model.PDGInfo) {
	t.Helper()
	provider := parsetree.NewTreeSitterProvider()
	tree, err := provider.Parse([]byte(source), model.LanguageJavaScript)
	require.NoError(t, err)
	body, paramsNode, declLine, found := typescript.FindFunction(tree.Root(), name)
	require.True(t, found)
	params := typescript.ParseParameters(paramsNode)

	cfgInfo := cfg.Build(name, "f.js", body)
	dfgInfo := dfg.Build(name, "f.js", params, declLine, body)
	pdgInfo := pdg.Build(cfgInfo, dfgInfo)
	return cfgInfo, dfgInfo, pdgInfo
}

func TestBuild_NodeCountMatchesCFGBlocks(t *testing.T) {
	cfgInfo, _, pdgInfo := buildAll(t, `function classify(x) {
  if (x > 0) {
    return 'positive';
  }
  return 'non-positive';
}`, "classify")

	assert.Equal(t, len(cfgInfo.Blocks), len(pdgInfo.Nodes))
	assert.Greater(t, pdgInfo.ControlEdgeCount, 0)
}

func TestBuild_DataEdgesLinkDefAndUse(t *testing.T) {
	_, _, pdgInfo := buildAll(t, `function compute(x) {
  const doubled = x * 2;
  return doubled;
}`, "compute")

	var sawDataEdge bool
	for _, e := range pdgInfo.Edges {
		if e.Type == model.PDGData {
			sawDataEdge = true
			require.NotNil(t, e.Variable)
		}
	}
	assert.True(t, sawDataEdge)
}

func TestBuild_MergedBodyBlockKeepsPerLineDataEdges(t *testing.T) {
	_, _, pdgInfo := buildAll(t, `function f(a, b) {
  let x = a + 1;
  let y = b + 2;
  let z = x + y;
  return z;
}`, "f")

	xLine, yLine, zLine := lineDefining(pdgInfo, "x"), lineDefining(pdgInfo, "y"), lineDefining(pdgInfo, "z")
	require.NotZero(t, xLine)
	require.NotZero(t, yLine)
	require.NotZero(t, zLine)
	require.True(t, xLine != yLine && yLine != zLine, "merged declarations must keep distinct per-line node identity")

	returnLine := lineUsing(pdgInfo, "z")
	require.NotZero(t, returnLine)

	graph := pdg.NewGraph(pdgInfo)
	full := pdg.BackwardSlice(graph, returnLine, nil)
	assert.ElementsMatch(t, []int{xLine, yLine, zLine, returnLine}, full)
}

func lineDefining(info *model.PDGInfo, variable string) int {
	for _, n := range info.Nodes {
		for _, d := range n.Defines {
			if d == variable {
				return n.Line
			}
		}
	}
	return -1
}

func lineUsing(info *model.PDGInfo, variable string) int {
	for _, n := range info.Nodes {
		for _, u := range n.Uses {
			if u == variable {
				return n.Line
			}
		}
	}
	return -1
}

func TestSlices_BackwardAndForwardAgreeOnSeed(t *testing.T) {
	_, _, pdgInfo := buildAll(t, `function compute(x) {
  const doubled = x * 2;
  const tripled = doubled + x;
  return tripled;
}`, "compute")

	graph := pdg.NewGraph(pdgInfo)
	variable := "doubled"

	// seed line is the declaration of doubled (the assignment use of x).
	var doubledLine int
	for _, n := range pdgInfo.Nodes {
		for _, d := range n.Defines {
			if d == "doubled" {
				doubledLine = n.Line
			}
		}
	}
	require.NotZero(t, doubledLine)

	forward := pdg.ForwardSlice(graph, doubledLine, &variable)
	assert.Contains(t, forward, doubledLine)

	backward := pdg.BackwardSlice(graph, doubledLine, nil)
	assert.Contains(t, backward, doubledLine)
}
