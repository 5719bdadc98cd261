package typescript

import "github.com/astgraph/codescope/parsetree"

// CallRef is one recorded call site: the resolved callee name plus enough
// of §3's CallSite fields to populate model.CallEdge without re-parsing.
type CallRef struct {
	Callee        string
	Line          int
	Column        int
	ArgumentCount int
	Receiver      string
}

// ScanCalls implements component C: a recursive walk over root carrying
// currentFunction/currentClass context, recording each distinct callee once
// under the enclosing function (repeat calls to the same callee are
// collapsed, keeping the first call site), per §4.3's rules.
func ScanCalls(root parsetree.Node) map[string][]CallRef {
	out := map[string][]CallRef{}
	seen := map[string]map[string]bool{}
	if root == nil {
		return out
	}
	scan(root, "", "", out, seen)
	return out
}

func scan(n parsetree.Node, currentClass, currentFunction string, out map[string][]CallRef, seen map[string]map[string]bool) {
	switch n.Kind() {
	case parsetree.KindClassDeclaration:
		name := currentClass
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			name = nameNode.Text()
		}
		for _, child := range n.Children() {
			scan(child, name, currentFunction, out, seen)
		}
		return
	case parsetree.KindFunctionDeclaration, parsetree.KindGeneratorFunctionDecl:
		name := ""
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			name = nameNode.Text()
		}
		for _, child := range n.Children() {
			scan(child, currentClass, name, out, seen)
		}
		return
	case parsetree.KindMethodDefinition:
		methodName := ""
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			methodName = nameNode.Text()
		}
		key := methodName
		if currentClass != "" {
			key = currentClass + "." + methodName
		}
		for _, child := range n.Children() {
			scan(child, currentClass, key, out, seen)
		}
		return
	case parsetree.KindVariableDeclarator:
		value := n.ChildByFieldName("value")
		if value != nil && (value.Kind() == parsetree.KindArrowFunction || value.Kind() == parsetree.KindFunctionExpression) {
			name := ""
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				name = nameNode.Text()
			}
			for _, child := range n.Children() {
				scan(child, currentClass, name, out, seen)
			}
			return
		}
	case parsetree.KindCallExpression:
		if callee := calleeName(n); callee != "" {
			recordCall(out, seen, currentFunction, callRefFor(n, callee))
		}
	}
	for _, child := range n.Children() {
		scan(child, currentClass, currentFunction, out, seen)
	}
}

// calleeName implements §4.3's callee-name rules, returning "" for the
// dynamic cases (index access, computed property, call of a call).
func calleeName(call parsetree.Node) string {
	callee := call.ChildByFieldName("function")
	if callee == nil {
		return ""
	}
	switch callee.Kind() {
	case parsetree.KindIdentifier:
		return callee.Text()
	case parsetree.KindMemberExpression:
		prop := callee.ChildByFieldName("property")
		if prop != nil && prop.Kind() == parsetree.KindPropertyIdentifier {
			return prop.Text()
		}
		return ""
	default:
		// subscript_expression (index/computed access) and call_expression
		// (call of a call) are both dynamic and unrecorded.
		return ""
	}
}

// callRefFor recovers §3's CallSite fields (line, column, argument count,
// and the receiver for a method call) from the call_expression node, since
// the line is otherwise lost once ScanCalls collapses everything down to a
// caller/callee name pair.
func callRefFor(call parsetree.Node, callee string) CallRef {
	sp := call.Span()
	ref := CallRef{Callee: callee, Line: sp.StartLine, Column: sp.StartColumn}
	if args := call.ChildByFieldName("arguments"); args != nil {
		ref.ArgumentCount = len(args.NamedChildren())
	}
	if fn := call.ChildByFieldName("function"); fn != nil && fn.Kind() == parsetree.KindMemberExpression {
		if obj := fn.ChildByFieldName("object"); obj != nil {
			ref.Receiver = obj.Text()
		}
	}
	return ref
}

func recordCall(out map[string][]CallRef, seen map[string]map[string]bool, caller string, ref CallRef) {
	if seen[caller] == nil {
		seen[caller] = map[string]bool{}
	}
	if seen[caller][ref.Callee] {
		return
	}
	seen[caller][ref.Callee] = true
	out[caller] = append(out[caller], ref)
}
