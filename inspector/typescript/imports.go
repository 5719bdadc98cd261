package typescript

import (
	"strings"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseImport parses one import_statement node per §4.2/§6.1.
func parseImport(n parsetree.Node) model.Import {
	imp := model.Import{Line: n.Span().StartLine}
	hasTypeKeyword := false
	for _, child := range n.Children() {
		switch child.Kind() {
		case "type":
			hasTypeKeyword = true
		case parsetree.KindString:
			imp.Module = unquote(child.Text())
		case parsetree.KindImportClause:
			imp.Names = append(imp.Names, parseImportClause(child)...)
		}
	}
	imp.IsTypeOnly = hasTypeKeyword
	return imp
}

func parseImportClause(n parsetree.Node) []model.ImportName {
	var names []model.ImportName
	for _, child := range n.Children() {
		switch child.Kind() {
		case parsetree.KindIdentifier:
			names = append(names, model.ImportName{Name: child.Text(), IsDefault: true})
		case parsetree.KindNamespaceImport:
			for _, nc := range child.Children() {
				if nc.Kind() == parsetree.KindIdentifier {
					names = append(names, model.ImportName{Name: nc.Text(), IsNamespace: true})
				}
			}
		case parsetree.KindNamedImports:
			for _, spec := range child.Children() {
				if spec.Kind() != parsetree.KindImportSpecifier {
					continue
				}
				names = append(names, parseImportSpecifier(spec))
			}
		}
	}
	return names
}

func parseImportSpecifier(n parsetree.Node) model.ImportName {
	name := model.ImportName{}
	identifiers := make([]parsetree.Node, 0, 2)
	for _, child := range n.Children() {
		switch child.Kind() {
		case "type":
			name.IsTypeOnly = true
		case parsetree.KindIdentifier:
			identifiers = append(identifiers, child)
		}
	}
	if len(identifiers) > 0 {
		name.Name = identifiers[0].Text()
	}
	if len(identifiers) > 1 {
		alias := identifiers[1].Text()
		name.Alias = &alias
	}
	return name
}
