package cfg

import (
	"strings"

	"github.com/astgraph/codescope/parsetree"
)

// collectRefs implements §4.5's "variable extraction per block" rule:
// written identifiers (assignment left-hand sides, variable declarators)
// become defines, textual callee names become calls, and every other
// identifier occurrence becomes a use.
func collectRefs(stmt parsetree.Node) (defines, uses, calls []string) {
	defineSet := map[string]bool{}
	parsetree.Walk(stmt, func(n parsetree.Node) bool {
		switch n.Kind() {
		case parsetree.KindAssignmentExpression:
			if left := n.ChildByFieldName("left"); left != nil && left.Kind() == parsetree.KindIdentifier {
				defineSet[left.Text()] = true
			}
		case parsetree.KindVariableDeclarator:
			if name := n.ChildByFieldName("name"); name != nil && name.Kind() == parsetree.KindIdentifier {
				defineSet[name.Text()] = true
			}
		case parsetree.KindUpdateExpression:
			if operand := n.ChildByFieldName("argument"); operand != nil && operand.Kind() == parsetree.KindIdentifier {
				defineSet[operand.Text()] = true
			}
		}
		return true
	})
	callSet := map[string]bool{}
	parsetree.Walk(stmt, func(n parsetree.Node) bool {
		if n.Kind() == parsetree.KindCallExpression {
			if name := calleeName(n); name != "" {
				if !callSet[name] {
					callSet[name] = true
					calls = append(calls, name)
				}
			}
		}
		return true
	})
	useSet := map[string]bool{}
	parsetree.Walk(stmt, func(n parsetree.Node) bool {
		if n.Kind() == parsetree.KindIdentifier {
			name := n.Text()
			if !defineSet[name] && !useSet[name] {
				useSet[name] = true
				uses = append(uses, name)
			}
		}
		return true
	})
	for name := range defineSet {
		defines = append(defines, name)
	}
	return defines, uses, calls
}

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
	}
	return ""
}

func condText(n parsetree.Node) *string {
	if n == nil {
		return nil
	}
	s := strings.TrimSpace(n.Text())
	return &s
}
