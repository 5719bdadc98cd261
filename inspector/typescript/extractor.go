// Package typescript implements components B (L1 extractor) and C
// (per-file call scan) over the TypeScript/JavaScript parse-tree surface,
// rewritten from the teacher's string-scanning inspector/jsx/inspector.go
// into a real tree-sitter recursive-descent walk in the style of
// analyzer/node.go.
package typescript

import (
	"path/filepath"
	"strings"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

// Extractor runs the L1 extraction (component B) over one parsed source
// file using an injected parsetree.Provider.
type Extractor struct {
	provider parsetree.Provider
}

// NewExtractor builds an Extractor over provider.
func NewExtractor(provider parsetree.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// DialectFor maps a file extension to the parser dialect to request, the
// single source of truth §6.2 requires: extensions without a parser
// implementation never appear here.
func DialectFor(filePath string) (model.Language, bool) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return model.LanguageTypeScript, true
	case ".tsx":
		return model.LanguageTSX, true
	case ".js", ".mjs", ".cjs", ".jsx":
		return model.LanguageJavaScript, true
	default:
		return "", false
	}
}

// ExtractModule parses source and walks its root-level children per §4.2,
// producing the Module record for filePath.
func (e *Extractor) ExtractModule(source []byte, filePath string) (*model.Module, error) {
	dialect, ok := DialectFor(filePath)
	if !ok {
		dialect = model.LanguageJavaScript
	}
	tree, err := e.provider.Parse(source, dialect)
	if err != nil {
		return nil, err
	}
	root := tree.Root()

	language := model.LanguageTypeScript
	if dialect == model.LanguageJavaScript {
		language = model.LanguageJavaScript
	}

	mod := &model.Module{
		FilePath:    filePath,
		Language:    language,
		ContentHash: model.ContentHash(source),
	}
	if root == nil {
		return mod, nil
	}
	mod.Docstring = leadingModuleDoc(root, source)

	for _, child := range root.Children() {
		switch child.Kind() {
		case parsetree.KindImportStatement:
			mod.Imports = append(mod.Imports, parseImport(child))
		case parsetree.KindExportStatement:
			applyExport(child, mod)
		case parsetree.KindFunctionDeclaration, parsetree.KindGeneratorFunctionDecl:
			mod.Functions = append(mod.Functions, parseFunctionLike(child, false))
		case parsetree.KindClassDeclaration:
			mod.Classes = append(mod.Classes, parseClass(child))
		case parsetree.KindInterfaceDeclaration:
			mod.Interfaces = append(mod.Interfaces, parseInterface(child))
		case parsetree.KindTypeAliasDeclaration:
			mod.TypeAliases = append(mod.TypeAliases, parseTypeAlias(child))
		case parsetree.KindLexicalDeclaration, parsetree.KindVariableDeclaration:
			vars, fns := parseVariableDeclaration(child, false, model.ExportNone)
			mod.Variables = append(mod.Variables, vars...)
			mod.Functions = append(mod.Functions, fns...)
		}
	}
	return mod, nil
}

// leadingModuleDoc picks up a //- or /*-style comment immediately preceding
// the first declaration, treated as the module docstring.
func leadingModuleDoc(root parsetree.Node, source []byte) *string {
	children := root.Children()
	if len(children) == 0 {
		return nil
	}
	first := children[0]
	if first.Kind() != parsetree.KindComment {
		return nil
	}
	text := strings.TrimSpace(first.Text())
	if text == "" {
		return nil
	}
	return &text
}
