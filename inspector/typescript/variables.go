package typescript

import (
	"strings"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

func variableKind(n parsetree.Node) model.VariableKind {
	for _, child := range n.Children() {
		switch child.Kind() {
		case "const":
			return model.VariableConst
		case "let":
			return model.VariableLet
		case "var":
			return model.VariableVar
		}
	}
	return model.VariableLet
}

// parseVariableDeclaration parses a lexical_declaration/variable_declaration
// node into its Variable entries, peeling off any declarator whose
// initializer is an arrow_function/function_expression into a Function
// instead — the unified "callable" concept from §9 — so CFG/DFG builders
// can analyse its body the same way as a function_declaration.
func parseVariableDeclaration(n parsetree.Node, isExported bool, exportType model.ExportType) (vars []model.Variable, fns []model.Function) {
	kind := variableKind(n)
	for _, child := range n.Children() {
		if child.Kind() != parsetree.KindVariableDeclarator {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			continue
		}
		value := child.ChildByFieldName("value")
		if value != nil && (value.Kind() == parsetree.KindArrowFunction || value.Kind() == parsetree.KindFunctionExpression) {
			fn := parseArrowOrFunctionExpr(value, name.Text())
			fn.Line = child.Span().StartLine
			fn.IsExported = isExported
			fn.ExportType = exportType
			fns = append(fns, fn)
			continue
		}
		v := model.Variable{
			Name:       name.Text(),
			Kind:       kind,
			IsExported: isExported,
			ExportType: exportType,
			Line:       child.Span().StartLine,
		}
		if typeAnn := child.ChildByFieldName("type"); typeAnn != nil {
			t := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(typeAnn.Text()), ":"))
			v.Type = &t
		}
		vars = append(vars, v)
	}
	return vars, fns
}
