// Package pdg implements component G: builds the program dependence graph
// for one function as the union of its control dependence (from the CFG)
// and data dependence (from the DFG), and the backward/forward slicer over
// that union.
package pdg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/astgraph/codescope/model"
)

// Build implements §4.7's node-creation, control-edge, and data-edge rules
// for one function's CFG/DFG pair.
func Build(cfgInfo *model.CFGInfo, dfgInfo *model.DFGInfo) *model.PDGInfo {
	exitSet := map[int]bool{}
	for _, id := range cfgInfo.ExitBlocks {
		exitSet[id] = true
	}

	var nodes []model.PDGNode
	blockEntry := map[int]int{}
	blockExit := map[int]int{}
	nextID := 0
	for _, block := range cfgInfo.Blocks {
		split := blockToNodes(block, exitSet, dfgInfo, &nextID)
		blockEntry[block.ID] = split[0].ID
		blockExit[block.ID] = split[len(split)-1].ID
		nodes = append(nodes, split...)
	}

	info := &model.PDGInfo{
		FunctionName: cfgInfo.FunctionName,
		FilePath:     cfgInfo.FilePath,
		Nodes:        nodes,
		EntryNode:    blockEntry[cfgInfo.EntryBlock],
		CFG:          cfgInfo,
		DFG:          dfgInfo,
	}
	for _, id := range cfgInfo.ExitBlocks {
		info.ExitNodes = append(info.ExitNodes, blockExit[id])
	}

	info.Edges = append(info.Edges, controlEdges(cfgInfo, blockEntry, blockExit)...)
	info.Edges = append(info.Edges, dataEdges(dfgInfo, info)...)
	for _, e := range info.Edges {
		switch e.Type {
		case model.PDGControl:
			info.ControlEdgeCount++
		case model.PDGData:
			info.DataEdgeCount++
		}
	}
	return info
}

// blockToNodes turns one CFG block into its PDG node(s). A block built from
// several consecutive statements (§4.5's "sequential statement: one body
// block" merge) collapses their individual source lines into one
// StartLine, but the DFG still records each statement's own def/use line —
// so here the block is split one PDG node per distinct statement line,
// rather than one node per block, letting data edges and slices resolve to
// the exact line a definition occurred on (§4.7, §8 scenario 6).
func blockToNodes(block model.CFGBlock, exitSet map[int]bool, dfgInfo *model.DFGInfo, nextID *int) []model.PDGNode {
	t := nodeType(block, exitSet)
	groups := lineGroups(block)
	if len(groups) < 2 {
		return []model.PDGNode{newNode(nextID, block.ID, block.StartLine, strings.Join(block.Statements, ";"), t, block.Defines, block.Uses)}
	}

	refsByLine := refsAtLines(dfgInfo)
	out := make([]model.PDGNode, 0, len(groups))
	for _, g := range groups {
		defines, uses := splitRefs(refsByLine[g.line])
		out = append(out, newNode(nextID, block.ID, g.line, strings.Join(g.texts, ";"), model.PDGStatement, defines, uses))
	}
	return out
}

type lineGroup struct {
	line  int
	texts []string
}

// lineGroups partitions a body block's statements by their original source
// line, preserving encounter order. Non-body blocks, and body blocks that
// never recorded per-statement lines, come back with no groups so they
// fall through to the unsplit single-node path.
func lineGroups(block model.CFGBlock) []lineGroup {
	if block.Type != model.BlockBody || len(block.StatementLines) == 0 {
		return nil
	}
	var groups []lineGroup
	index := map[int]int{}
	for i, line := range block.StatementLines {
		if gi, ok := index[line]; ok {
			groups[gi].texts = append(groups[gi].texts, block.Statements[i])
			continue
		}
		index[line] = len(groups)
		groups = append(groups, lineGroup{line: line, texts: []string{block.Statements[i]}})
	}
	return groups
}

func nodeType(block model.CFGBlock, exitSet map[int]bool) model.PDGNodeType {
	switch {
	case block.Type == model.BlockEntry:
		return model.PDGEntry
	case exitSet[block.ID]:
		return model.PDGExit
	case block.Type == model.BlockBranch || block.Type == model.BlockLoopHeader:
		return model.PDGPredicate
	default:
		return model.PDGStatement
	}
}

func newNode(nextID *int, blockID, line int, statement string, t model.PDGNodeType, defines, uses []string) model.PDGNode {
	id := *nextID
	*nextID++
	bid := blockID
	return model.PDGNode{ID: id, Line: line, Statement: statement, Type: t, Defines: defines, Uses: uses, CFGBlockID: &bid}
}

func refsAtLines(dfgInfo *model.DFGInfo) map[int][]model.VarRef {
	out := map[int][]model.VarRef{}
	if dfgInfo == nil {
		return out
	}
	for _, r := range dfgInfo.Refs {
		out[r.Line] = append(out[r.Line], r)
	}
	return out
}

func splitRefs(refs []model.VarRef) (defines, uses []string) {
	for _, r := range refs {
		switch r.Type {
		case model.RefDef, model.RefParam:
			defines = append(defines, r.Name)
		case model.RefUpdate:
			defines = append(defines, r.Name)
			uses = append(uses, r.Name)
		case model.RefUse, model.RefCapture:
			uses = append(uses, r.Name)
		}
	}
	return model.SortSet(defines), model.SortSet(uses)
}

// controlEdges implements §4.7's control-edge rule: a predicate block's
// outgoing CFG edges become distinct control edges to each target, labeled
// with the CFG edge's condition or, when absent, its type. blockEntry/
// blockExit resolve a CFG block ID to the PDG node that represents its
// first/last statement, since a merged body block now backs several nodes.
func controlEdges(cfgInfo *model.CFGInfo, blockEntry, blockExit map[int]int) []model.PDGEdge {
	isPredicate := map[int]bool{}
	for _, b := range cfgInfo.Blocks {
		if b.Type == model.BlockBranch || b.Type == model.BlockLoopHeader {
			isPredicate[b.ID] = true
		}
	}
	seen := map[[2]int]bool{}
	var edges []model.PDGEdge
	for _, e := range cfgInfo.Edges {
		if !isPredicate[e.From] {
			continue
		}
		from, to := blockExit[e.From], blockEntry[e.To]
		key := [2]int{from, to}
		if seen[key] {
			continue
		}
		seen[key] = true
		label := string(e.Type)
		if e.Condition != nil {
			label = *e.Condition
		}
		edges = append(edges, model.PDGEdge{From: from, To: to, Type: model.PDGControl, Label: label})
	}
	return edges
}

// dataEdges implements §4.7's data-edge rule.
func dataEdges(dfgInfo *model.DFGInfo, info *model.PDGInfo) []model.PDGEdge {
	if dfgInfo == nil {
		return nil
	}
	var edges []model.PDGEdge
	for _, e := range dfgInfo.Edges {
		src := findNode(info.Nodes, e.Def.Line, e.Variable, true)
		dst := findNode(info.Nodes, e.Use.Line, e.Variable, false)
		if src == nil || dst == nil || src.ID == dst.ID {
			continue
		}
		variable := e.Variable
		edges = append(edges, model.PDGEdge{
			From: src.ID, To: dst.ID, Type: model.PDGData,
			Variable: &variable,
			Label:    fmt.Sprintf("%s: %d→%d", variable, e.Def.Line, e.Use.Line),
		})
	}
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

func findNode(nodes []model.PDGNode, line int, variable string, defines bool) *model.PDGNode {
	for i := range nodes {
		if nodes[i].Line != line {
			continue
		}
		set := nodes[i].Uses
		if defines {
			set = nodes[i].Defines
		}
		if contains(set, variable) {
			return &nodes[i]
		}
	}
	return nil
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}
