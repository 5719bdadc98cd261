package parsetree

// Walk performs a pre-order traversal over n and its descendants, calling
// visit on each node. If visit returns false, Walk does not descend into
// that node's children. It is a stack-based traversal used by cfg's
// collectRefs, dfg's nested-function parameter scan and the extractor's
// destructured-parameter flattening; the call scan, FindFunction, the dfg
// walker and cfg's nested-function collection use their own recursion.
func Walk(n Node, visit func(Node) bool) {
	if n == nil {
		return
	}
	stack := []Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(cur) {
			continue
		}
		children := cur.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// FindFirst returns the first descendant of n (including n) for which
// match returns true, in pre-order, or nil.
func FindFirst(n Node, match func(Node) bool) Node {
	var found Node
	Walk(n, func(cur Node) bool {
		if found != nil {
			return false
		}
		if match(cur) {
			found = cur
			return false
		}
		return true
	})
	return found
}

// Text returns n.Text() or "" for a nil Node, so callers can chain
// ChildByFieldName results without a nil check at every call site.
func Text(n Node) string {
	if n == nil {
		return ""
	}
	return n.Text()
}
