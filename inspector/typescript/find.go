package typescript

import "github.com/astgraph/codescope/parsetree"

// FindFunction locates a function declaration, an arrow/function expression
// bound to a variable, or a method ("Class.method" or the bare method name)
// by name, returning the first match of a depth-first search at any nesting
// depth: its body and formal_parameters nodes and declaration line, for
// callers (the cfg/dfg/pdg builders) that need the raw parse tree rather
// than the model.Function summary ExtractModule produces. It walks the
// tree tracking the enclosing class name the same way ScanCalls tracks
// currentClass/currentFunction.
func FindFunction(root parsetree.Node, name string) (body, paramsNode parsetree.Node, declLine int, found bool) {
	var search func(n parsetree.Node, currentClass string) bool
	search = func(n parsetree.Node, currentClass string) bool {
		for _, c := range n.Children() {
			switch c.Kind() {
			case parsetree.KindClassDeclaration:
				className := ""
				if nameNode := c.ChildByFieldName("name"); nameNode != nil {
					className = nameNode.Text()
				}
				if body2 := c.ChildByFieldName("body"); body2 != nil && search(body2, className) {
					return true
				}
				continue
			case parsetree.KindFunctionDeclaration, parsetree.KindGeneratorFunctionDecl:
				if currentClass != "" {
					break
				}
				if nameNode := c.ChildByFieldName("name"); nameNode != nil && nameNode.Text() == name {
					body, paramsNode = c.ChildByFieldName("body"), c.ChildByFieldName("parameters")
					declLine, found = c.Span().StartLine, true
					return true
				}
			case parsetree.KindMethodDefinition:
				nameNode := c.ChildByFieldName("name")
				if nameNode == nil {
					break
				}
				qualified := nameNode.Text()
				if currentClass != "" {
					qualified = currentClass + "." + nameNode.Text()
				}
				if qualified == name || nameNode.Text() == name {
					body, paramsNode = c.ChildByFieldName("body"), c.ChildByFieldName("parameters")
					declLine, found = c.Span().StartLine, true
					return true
				}
			case parsetree.KindLexicalDeclaration, parsetree.KindVariableDeclaration:
				for _, d := range c.NamedChildren() {
					if d.Kind() != parsetree.KindVariableDeclarator {
						continue
					}
					declName := d.ChildByFieldName("name")
					value := d.ChildByFieldName("value")
					if declName == nil || value == nil || declName.Text() != name {
						continue
					}
					if value.Kind() != parsetree.KindArrowFunction && value.Kind() != parsetree.KindFunctionExpression {
						continue
					}
					body, paramsNode = value.ChildByFieldName("body"), value.ChildByFieldName("parameters")
					declLine, found = d.Span().StartLine, true
					return true
				}
			}
			if search(c, currentClass) {
				return true
			}
		}
		return false
	}
	search(root, "")
	return body, paramsNode, declLine, found
}
