package typescript

import (
	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

// applyExport handles one export_statement per §4.2 step 5: wrapped
// declarations are promoted into the module's own lists with an export
// entry; `export default X` and `export { X }` / re-exports produce export
// entries without requiring a co-located declaration, per §4.2's edge
// cases.
func applyExport(n parsetree.Node, mod *model.Module) {
	line := n.Span().StartLine
	isDefault := false
	var source *string
	for _, child := range n.Children() {
		switch child.Kind() {
		case "default":
			isDefault = true
		case parsetree.KindString:
			s := unquote(child.Text())
			source = &s
		}
	}

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		applyWrappedDeclaration(decl, mod, isDefault, line)
		return
	}

	// No declaration field: either `export default <expr>`, `export { .. }`
	// (optionally with `from`), or `export * from '...'`.
	for _, child := range n.Children() {
		switch child.Kind() {
		case "export_clause":
			for _, spec := range child.Children() {
				if spec.Kind() != "export_specifier" {
					continue
				}
				mod.Exports = append(mod.Exports, parseExportSpecifier(spec, source, line))
			}
		case "namespace_export", "*":
			mod.Exports = append(mod.Exports, model.Export{Name: "*", IsReExport: source != nil, SourceModule: source, Line: line})
		default:
			if isDefault && isExpressionLike(child) {
				name := "default"
				if child.Kind() == parsetree.KindIdentifier {
					name = child.Text()
				}
				mod.Exports = append(mod.Exports, model.Export{Name: "default", LocalName: strPtr(name), IsDefault: true, Line: line})
			}
		}
	}
}

func isExpressionLike(n parsetree.Node) bool {
	switch n.Kind() {
	case "export", "default", ";", parsetree.KindComment:
		return false
	default:
		return true
	}
}

func strPtr(s string) *string { return &s }

func parseExportSpecifier(n parsetree.Node, source *string, line int) model.Export {
	identifiers := make([]parsetree.Node, 0, 2)
	isTypeOnly := false
	for _, child := range n.Children() {
		switch child.Kind() {
		case "type":
			isTypeOnly = true
		case parsetree.KindIdentifier:
			identifiers = append(identifiers, child)
		}
	}
	exp := model.Export{IsTypeOnly: isTypeOnly, IsReExport: source != nil, SourceModule: source, Line: line}
	if len(identifiers) > 0 {
		exp.Name = identifiers[0].Text()
	}
	if len(identifiers) > 1 {
		alias := identifiers[1].Text()
		exp.Name = alias
		local := identifiers[0].Text()
		exp.LocalName = &local
	}
	return exp
}

// applyWrappedDeclaration parses decl with the same handlers used for
// top-level declarations, then promotes the result into mod and records a
// corresponding export entry, per §4.2 step 5.
func applyWrappedDeclaration(decl parsetree.Node, mod *model.Module, isDefault bool, line int) {
	exportType := model.ExportNamed
	if isDefault {
		exportType = model.ExportDefault
	}
	switch decl.Kind() {
	case parsetree.KindFunctionDeclaration, parsetree.KindGeneratorFunctionDecl:
		fn := parseFunctionLike(decl, false)
		fn.IsExported = true
		fn.ExportType = exportType
		mod.Functions = append(mod.Functions, fn)
		mod.Exports = append(mod.Exports, model.Export{Name: exportName(fn.Name, isDefault), IsDefault: isDefault, Line: line})
	case parsetree.KindClassDeclaration:
		cls := parseClass(decl)
		cls.IsExported = true
		cls.ExportType = exportType
		mod.Classes = append(mod.Classes, cls)
		mod.Exports = append(mod.Exports, model.Export{Name: exportName(cls.Name, isDefault), IsDefault: isDefault, Line: line})
	case parsetree.KindInterfaceDeclaration:
		iface := parseInterface(decl)
		iface.IsExported = true
		iface.ExportType = exportType
		mod.Interfaces = append(mod.Interfaces, iface)
		mod.Exports = append(mod.Exports, model.Export{Name: exportName(iface.Name, isDefault), IsDefault: isDefault, Line: line})
	case parsetree.KindTypeAliasDeclaration:
		alias := parseTypeAlias(decl)
		alias.IsExported = true
		alias.ExportType = exportType
		mod.TypeAliases = append(mod.TypeAliases, alias)
		mod.Exports = append(mod.Exports, model.Export{Name: exportName(alias.Name, isDefault), IsDefault: isDefault, Line: line})
	case parsetree.KindLexicalDeclaration, parsetree.KindVariableDeclaration:
		vars, fns := parseVariableDeclaration(decl, true, exportType)
		for _, v := range vars {
			mod.Variables = append(mod.Variables, v)
			mod.Exports = append(mod.Exports, model.Export{Name: exportName(v.Name, isDefault), IsDefault: isDefault, Line: line})
		}
		for _, fn := range fns {
			mod.Functions = append(mod.Functions, fn)
			mod.Exports = append(mod.Exports, model.Export{Name: exportName(fn.Name, isDefault), IsDefault: isDefault, Line: line})
		}
	}
}

func exportName(name string, isDefault bool) string {
	if isDefault {
		return "default"
	}
	return name
}
