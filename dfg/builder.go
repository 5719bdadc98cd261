// Package dfg implements component F: for one function body, it emits
// variable references (def/use/update/param/capture) and line-order
// reaching-definition edges.
package dfg

import (
	"sort"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

// Option configures a Builder.
type Option func(*builder)

// WithBuiltinSet overrides the built-in identifier exclusion set (§6.3,
// §9's injected-set guidance).
func WithBuiltinSet(set map[string]bool) Option {
	return func(b *builder) { b.builtins = set }
}

type builder struct {
	scope      string
	builtins   map[string]bool
	refs       []model.VarRef
	defMap     map[string][]model.VarRef
	variables  map[string]bool
	outerNames map[string]bool
	returns    []string
}

// Build runs the §4.6 algorithm over a function's parameters and body,
// producing its DFGInfo. declLine is used as the line attributed to every
// parameter VarRef, since formal_parameters are not individually spanned in
// model.Parameter.
func Build(functionName, filePath string, params []model.Parameter, declLine int, body parsetree.Node, opts ...Option) *model.DFGInfo {
	b := &builder{
		scope:      functionName,
		builtins:   builtins,
		defMap:     map[string][]model.VarRef{},
		variables:  map[string]bool{},
		outerNames: map[string]bool{},
	}
	for _, opt := range opts {
		opt(b)
	}

	var paramNames []string
	for _, p := range params {
		if p.Name == "" {
			continue
		}
		ref := model.VarRef{Name: p.Name, Type: model.RefParam, Line: declLine, Scope: b.scope}
		b.refs = append(b.refs, ref)
		b.defMap[p.Name] = append(b.defMap[p.Name], ref)
		b.variables[p.Name] = true
		b.outerNames[p.Name] = true
		paramNames = append(paramNames, p.Name)
	}

	for _, stmt := range statementsOf(body) {
		b.walk(stmt)
	}

	edges := b.resolveEdges()

	return &model.DFGInfo{
		FunctionName: functionName,
		FilePath:     filePath,
		Refs:         b.refs,
		Edges:        edges,
		Variables:    model.SortSet(keysOf(b.variables)),
		Parameters:   paramNames,
		Returns:      model.SortSet(b.returns),
		ReachingDefs: b.defMap,
		LiveVars:     map[int][]string{},
	}
}

func statementsOf(body parsetree.Node) []parsetree.Node {
	if body == nil {
		return nil
	}
	if body.Kind() != parsetree.KindStatementBlock {
		return []parsetree.Node{body}
	}
	return body.NamedChildren()
}

func keysOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// walk implements §4.6 step 2's traversal, dispatching definition- and
// capture-introducing constructs and otherwise recursing generically.
func (b *builder) walk(n parsetree.Node) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case parsetree.KindLexicalDeclaration, parsetree.KindVariableDeclaration:
		for _, c := range n.NamedChildren() {
			if c.Kind() == parsetree.KindVariableDeclarator {
				b.walkDeclarator(c)
			}
		}
	case parsetree.KindAssignmentExpression:
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if left != nil && left.Kind() == parsetree.KindIdentifier {
			b.recordDef(left, model.RefDef)
		} else {
			b.walk(left)
		}
		b.walk(right)
	case parsetree.KindUpdateExpression:
		if operand := n.ChildByFieldName("argument"); operand != nil && operand.Kind() == parsetree.KindIdentifier {
			b.recordUpdate(operand)
		}
	case parsetree.KindReturnStatement:
		arg := firstNamedChild(n)
		if arg != nil {
			if arg.Kind() == parsetree.KindIdentifier {
				b.returns = append(b.returns, arg.Text())
			}
			b.walk(arg)
		}
	case parsetree.KindMemberExpression:
		b.walk(n.ChildByFieldName("object"))
	case parsetree.KindArrowFunction, parsetree.KindFunctionExpression:
		b.walkNestedFunction(n)
	case parsetree.KindIdentifier:
		b.recordUse(n)
	default:
		for _, c := range n.NamedChildren() {
			b.walk(c)
		}
	}
}

func firstNamedChild(n parsetree.Node) parsetree.Node {
	named := n.NamedChildren()
	if len(named) == 0 {
		return nil
	}
	return named[0]
}

func (b *builder) walkDeclarator(n parsetree.Node) {
	name := n.ChildByFieldName("name")
	if name != nil && name.Kind() == parsetree.KindIdentifier {
		b.recordDef(name, model.RefDef)
	}
	if value := n.ChildByFieldName("value"); value != nil {
		b.walk(value)
	}
}

func (b *builder) recordDef(node parsetree.Node, t model.VarRefType) {
	sp := node.Span()
	ref := model.VarRef{Name: node.Text(), Type: t, Line: sp.StartLine, Column: sp.StartColumn, Scope: b.scope}
	b.refs = append(b.refs, ref)
	b.defMap[ref.Name] = append(b.defMap[ref.Name], ref)
	b.variables[ref.Name] = true
	b.outerNames[ref.Name] = true
}

func (b *builder) recordUpdate(node parsetree.Node) {
	sp := node.Span()
	ref := model.VarRef{Name: node.Text(), Type: model.RefUpdate, Line: sp.StartLine, Column: sp.StartColumn, Scope: b.scope}
	b.refs = append(b.refs, ref)
	b.defMap[ref.Name] = append(b.defMap[ref.Name], ref)
	b.variables[ref.Name] = true
	b.outerNames[ref.Name] = true
}

func (b *builder) recordUse(node parsetree.Node) {
	name := node.Text()
	if b.builtins[name] {
		return
	}
	sp := node.Span()
	ref := model.VarRef{Name: name, Type: model.RefUse, Line: sp.StartLine, Column: sp.StartColumn, Scope: b.scope}
	b.refs = append(b.refs, ref)
	b.variables[name] = true
}

// walkNestedFunction implements §4.6 step 2's capture-site rule: compute
// identifiers used and locally defined inside the nested function without
// feeding them into the enclosing function's own def/use bookkeeping, and
// record a capture VarRef for every name used-but-not-locally-defined that
// is a variable of the enclosing scope.
func (b *builder) walkNestedFunction(n parsetree.Node) {
	localDefs := map[string]bool{}
	if params := n.ChildByFieldName("parameters"); params != nil {
		parsetree.Walk(params, func(cur parsetree.Node) bool {
			if cur.Kind() == parsetree.KindIdentifier {
				localDefs[cur.Text()] = true
			}
			return true
		})
	}
	used := map[string]bool{}
	var scan func(parsetree.Node)
	scan = func(m parsetree.Node) {
		if m == nil {
			return
		}
		switch m.Kind() {
		case parsetree.KindVariableDeclarator:
			if name := m.ChildByFieldName("name"); name != nil && name.Kind() == parsetree.KindIdentifier {
				localDefs[name.Text()] = true
			}
			if v := m.ChildByFieldName("value"); v != nil {
				scan(v)
			}
		case parsetree.KindAssignmentExpression:
			left := m.ChildByFieldName("left")
			if left != nil && left.Kind() == parsetree.KindIdentifier {
				localDefs[left.Text()] = true
			} else {
				scan(left)
			}
			scan(m.ChildByFieldName("right"))
		case parsetree.KindMemberExpression:
			scan(m.ChildByFieldName("object"))
		case parsetree.KindIdentifier:
			used[m.Text()] = true
		default:
			for _, c := range m.NamedChildren() {
				scan(c)
			}
		}
	}
	scan(n)

	sp := n.Span()
	names := keysOf(used)
	sort.Strings(names)
	for _, name := range names {
		if localDefs[name] || b.builtins[name] || !b.outerNames[name] {
			continue
		}
		b.refs = append(b.refs, model.VarRef{
			Name: name, Type: model.RefCapture, Line: sp.StartLine, Column: sp.StartColumn,
			Scope: b.scope, IsInClosure: true,
		})
	}
}

// resolveEdges implements §4.6 step 3. Per the REDESIGN soundness note,
// isMayReach is true for every candidate (the line-order heuristic cannot
// prove a definite reach along every path); hasInterveningDef flags a later
// same-variable definition strictly between def and use, a hint that the
// def may have been shadowed on the path actually taken.
func (b *builder) resolveEdges() []model.DefUseEdge {
	var edges []model.DefUseEdge
	for _, use := range b.refs {
		if use.Type != model.RefUse && use.Type != model.RefUpdate && use.Type != model.RefCapture {
			continue
		}
		defs := b.defMap[use.Name]
		for _, def := range defs {
			if def.Line > use.Line {
				continue
			}
			hasIntervening := false
			for _, other := range defs {
				if other.Line > def.Line && other.Line < use.Line {
					hasIntervening = true
					break
				}
			}
			edges = append(edges, model.DefUseEdge{
				Variable:          use.Name,
				Def:               def,
				Use:               use,
				IsMayReach:        true,
				HasInterveningDef: hasIntervening,
			})
		}
	}
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Def.Line != edges[j].Def.Line {
			return edges[i].Def.Line < edges[j].Def.Line
		}
		if edges[i].Use.Line != edges[j].Use.Line {
			return edges[i].Use.Line < edges[j].Use.Line
		}
		return edges[i].Variable < edges[j].Variable
	})
	return edges
}
