package pdg

import "github.com/astgraph/codescope/model"

// PDGGraph wraps a built PDGInfo with the incoming/outgoing edge indices
// the slicer needs, keeping model.PDGInfo itself a plain serialisable
// record with no slicing behaviour attached.
type PDGGraph struct {
	info *model.PDGInfo
	in   map[int][]model.PDGEdge
	out  map[int][]model.PDGEdge
}

// NewGraph builds a PDGGraph over info, suitable for repeated slice queries.
func NewGraph(info *model.PDGInfo) *PDGGraph {
	g := &PDGGraph{info: info, in: map[int][]model.PDGEdge{}, out: map[int][]model.PDGEdge{}}
	for _, e := range info.Edges {
		g.in[e.To] = append(g.in[e.To], e)
		g.out[e.From] = append(g.out[e.From], e)
	}
	return g
}

func (g *PDGGraph) incomingIndex() map[int][]model.PDGEdge { return g.in }
func (g *PDGGraph) outgoingIndex() map[int][]model.PDGEdge { return g.out }

func (g *PDGGraph) nodeByID(id int) *model.PDGNode { return g.info.NodeByID(id) }

func (g *PDGGraph) seedNodes(line int, variable *string) []model.PDGNode {
	var out []model.PDGNode
	for _, n := range g.info.Nodes {
		if n.Line != line {
			continue
		}
		if variable == nil || contains(n.Uses, *variable) || contains(n.Defines, *variable) {
			out = append(out, n)
		}
	}
	return out
}

func (g *PDGGraph) traverseBackward(e model.PDGEdge, variable *string, target *model.PDGNode) bool {
	if e.Type == model.PDGControl {
		return true
	}
	if variable == nil {
		return true
	}
	if e.Variable != nil && *e.Variable == *variable {
		return true
	}
	src := g.nodeByID(e.From)
	if src == nil || target == nil {
		return false
	}
	for _, d := range src.Defines {
		if contains(target.Uses, d) {
			return true
		}
	}
	return false
}

func (g *PDGGraph) traverseForward(e model.PDGEdge, variable *string) bool {
	if e.Type == model.PDGControl {
		return true
	}
	if variable == nil {
		return true
	}
	return e.Variable != nil && *e.Variable == *variable
}
