package pdg

import "sort"

// BackwardSlice implements §4.7's backward slice: seed on nodes at
// criterion line touching variable (or every node on that line when
// variable is nil), then depth-first over incoming edges. Control edges
// always traverse; data edges traverse only when they carry the requested
// variable, except an edge whose source defines a variable the target
// currently uses, which always traverses to preserve chained dataflow.
func BackwardSlice(info *PDGGraph, line int, variable *string) []int {
	return BackwardSliceDepth(info, line, variable, 0)
}

// BackwardSliceDepth is BackwardSlice bounded to maxDepth hops from the
// seed nodes (the ambient Config's MaxSliceDepth setting); maxDepth <= 0
// means unbounded.
func BackwardSliceDepth(info *PDGGraph, line int, variable *string, maxDepth int) []int {
	incoming := info.incomingIndex()
	visited := map[int]bool{}
	type frame struct{ id, depth int }
	var stack []frame
	for _, n := range info.seedNodes(line, variable) {
		stack = append(stack, frame{n.ID, 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[f.id] {
			continue
		}
		visited[f.id] = true
		if maxDepth > 0 && f.depth >= maxDepth {
			continue
		}
		target := info.nodeByID(f.id)
		for _, e := range incoming[f.id] {
			if visited[e.From] {
				continue
			}
			if !info.traverseBackward(e, variable, target) {
				continue
			}
			stack = append(stack, frame{e.From, f.depth + 1})
		}
	}
	return info.sortedLines(visited)
}

// ForwardSlice implements §4.7's forward slice: symmetric over outgoing
// edges; when variable is specified, only data edges carrying it are
// followed (no chained-dataflow exception, per §4.7's "is symmetric" note
// limited to direction, not to the backward-only exception).
func ForwardSlice(info *PDGGraph, line int, variable *string) []int {
	return ForwardSliceDepth(info, line, variable, 0)
}

// ForwardSliceDepth is ForwardSlice bounded to maxDepth hops from the seed
// nodes; maxDepth <= 0 means unbounded.
func ForwardSliceDepth(info *PDGGraph, line int, variable *string, maxDepth int) []int {
	outgoing := info.outgoingIndex()
	visited := map[int]bool{}
	type frame struct{ id, depth int }
	var stack []frame
	for _, n := range info.seedNodes(line, variable) {
		stack = append(stack, frame{n.ID, 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[f.id] {
			continue
		}
		visited[f.id] = true
		if maxDepth > 0 && f.depth >= maxDepth {
			continue
		}
		for _, e := range outgoing[f.id] {
			if visited[e.To] {
				continue
			}
			if !info.traverseForward(e, variable) {
				continue
			}
			stack = append(stack, frame{e.To, f.depth + 1})
		}
	}
	return info.sortedLines(visited)
}

func (g *PDGGraph) sortedLines(visited map[int]bool) []int {
	lineSet := map[int]bool{}
	for id := range visited {
		if n := g.nodeByID(id); n != nil {
			lineSet[n.Line] = true
		}
	}
	lines := make([]int, 0, len(lineSet))
	for l := range lineSet {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}
