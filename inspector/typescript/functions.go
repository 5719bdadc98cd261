package typescript

import (
	"strings"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

// parseFunctionLike builds a Function from a function_declaration,
// generator_function_declaration, method_definition, or (via
// parseArrowOrFunctionExpr) an arrow_function/function_expression node.
func parseFunctionLike(n parsetree.Node, isMethod bool) model.Function {
	fn := model.Function{
		Kind:       model.CallableDeclaration,
		IsMethod:   isMethod,
		ExportType: model.ExportNone,
		Visibility: model.VisibilityNone,
		Line:       n.Span().StartLine,
		Span:       n.Span(),
	}
	nameNode := n.ChildByFieldName("name")
	if nameNode != nil {
		fn.Name = nameNode.Text()
	}
	for _, child := range n.Children() {
		switch child.Kind() {
		case "async":
			fn.IsAsync = true
		case "static":
			fn.IsStatic = true
		case "*":
			fn.IsGenerator = true
		case parsetree.KindAccessibilityModifier:
			fn.Visibility = model.Visibility(child.Text())
		case parsetree.KindPrivatePropertyIdent:
			fn.Visibility = model.VisibilityPrivate
			if fn.Name == "" {
				fn.Name = child.Text()
			}
		case parsetree.KindDecorator:
			fn.Decorators = append(fn.Decorators, strings.TrimSpace(child.Text()))
		}
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Params = parseParameters(params)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		t := strings.TrimPrefix(strings.TrimSpace(ret.Text()), ":")
		t = strings.TrimSpace(t)
		fn.ReturnType = &t
	}
	fn.Docstring = precedingDocComment(n)
	return fn
}

// parseArrowOrFunctionExpr builds a Function from an arrow_function or
// function_expression assigned to a variable declarator, per §9's unified
// "callable" concept: the kind discriminator tells downstream layers this
// came from a value position rather than a declaration keyword.
func parseArrowOrFunctionExpr(n parsetree.Node, name string) model.Function {
	kind := model.CallableExpression
	if n.Kind() == parsetree.KindArrowFunction {
		kind = model.CallableArrow
	}
	fn := parseFunctionLike(n, false)
	fn.Name = name
	fn.Kind = kind
	return fn
}

// ParseParameters is the exported form of parseParameters, for callers
// outside this package (the cfg/dfg/pdg builders via engine) that located a
// formal_parameters node through FindFunction rather than through
// ExtractModule.
func ParseParameters(n parsetree.Node) []model.Parameter {
	if n == nil {
		return nil
	}
	return parseParameters(n)
}

func parseParameters(n parsetree.Node) []model.Parameter {
	var params []model.Parameter
	for _, child := range n.Children() {
		switch child.Kind() {
		case parsetree.KindRequiredParameter, parsetree.KindOptionalParameter, parsetree.KindRestParameter:
			params = append(params, parseOneParameter(child))
		case parsetree.KindIdentifier:
			// bare parameter in plain JS (no required_parameter wrapper)
			name := child.Text()
			params = append(params, model.Parameter{Name: name})
		case parsetree.KindObjectPattern, parsetree.KindArrayPattern:
			params = append(params, destructuredParameters(child)...)
		}
	}
	return params
}

func parseOneParameter(n parsetree.Node) model.Parameter {
	p := model.Parameter{IsRest: n.Kind() == parsetree.KindRestParameter, IsOptional: n.Kind() == parsetree.KindOptionalParameter}
	var nameAssigned bool
	for _, child := range n.Children() {
		switch child.Kind() {
		case parsetree.KindIdentifier:
			if !nameAssigned {
				p.Name = child.Text()
				nameAssigned = true
			}
		case parsetree.KindObjectPattern, parsetree.KindArrayPattern:
			// A destructured parameter wrapped in required/optional/rest
			// takes the first name bound by its pattern as its name; the
			// pattern's other bound names are not surfaced as parameters.
			sub := destructuredParameters(child)
			if len(sub) > 0 && !nameAssigned {
				p.Name = sub[0].Name
				nameAssigned = true
			}
		case parsetree.KindTypeAnnotation:
			t := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(child.Text()), ":"))
			p.Type = &t
		}
	}
	if value := n.ChildByFieldName("value"); value != nil {
		v := strings.TrimSpace(value.Text())
		p.DefaultValue = &v
	}
	return p
}

// destructuredParameters flattens `{a,b}` / `[a,b]` patterns into named
// parameters per §4.2's edge case requirement.
func destructuredParameters(n parsetree.Node) []model.Parameter {
	var out []model.Parameter
	parsetree.Walk(n, func(cur parsetree.Node) bool {
		switch cur.Kind() {
		case parsetree.KindShorthandPropertyIdent, parsetree.KindIdentifier:
			out = append(out, model.Parameter{Name: cur.Text()})
			return false
		case parsetree.KindPair:
			if value := cur.ChildByFieldName("value"); value != nil {
				out = append(out, model.Parameter{Name: value.Text()})
			}
			return false
		}
		return true
	})
	return out
}

func precedingDocComment(n parsetree.Node) *string {
	// Returns the first non-empty comment among n's own direct children.
	// Comments that precede n as siblings in its parent are not examined,
	// since the parse-tree adapter exposes siblings only through the parent.
	for _, child := range n.Children() {
		if child.Kind() == parsetree.KindComment {
			text := strings.TrimSpace(child.Text())
			if text != "" {
				return &text
			}
		}
	}
	return nil
}
