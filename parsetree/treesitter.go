package parsetree

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/astgraph/codescope/errs"
	"github.com/astgraph/codescope/model"
)

// languageLoad memoises one grammar's first load behind a sync.Once so
// concurrent first calls cannot race (§5).
type languageLoad struct {
	once sync.Once
	lang *sitter.Language
}

var (
	jsLoad  languageLoad
	tsLoad  languageLoad
	tsxLoad languageLoad
)

func grammarFor(language model.Language) (*sitter.Language, error) {
	switch language {
	case model.LanguageJavaScript:
		jsLoad.once.Do(func() { jsLoad.lang = javascript.GetLanguage() })
		return jsLoad.lang, nil
	case model.LanguageTypeScript:
		tsLoad.once.Do(func() { tsLoad.lang = typescript.GetLanguage() })
		return tsLoad.lang, nil
	case model.LanguageTSX:
		tsxLoad.once.Do(func() { tsxLoad.lang = tsx.GetLanguage() })
		return tsxLoad.lang, nil
	default:
		return nil, errs.New(errs.UnsupportedFile, fmt.Sprintf("no grammar for language %q", language))
	}
}

// TreeSitterProvider is the concrete Provider backed by go-tree-sitter and
// its javascript/typescript grammar bindings.
type TreeSitterProvider struct{}

// NewTreeSitterProvider constructs the default tree-sitter-backed Provider.
func NewTreeSitterProvider() *TreeSitterProvider {
	return &TreeSitterProvider{}
}

// Parse implements Provider. A grammar-load failure is a ParserLoadError;
// syntactically broken source still yields a tree (tree-sitter is an
// error-tolerant parser), matching §4.1's "partial parses are acceptable"
// contract — builders see ERROR-kind nodes and skip them.
func (p *TreeSitterProvider) Parse(source []byte, language model.Language) (Tree, error) {
	grammar, err := grammarFor(language)
	if err != nil {
		return nil, errs.Wrap(errs.ParserLoadError, "load grammar", err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, errs.Wrap(errs.ParseError, "parse source", err)
	}
	return &tsTree{tree: tree, src: source}, nil
}

type tsTree struct {
	tree *sitter.Tree
	src  []byte
}

func (t *tsTree) Root() Node {
	root := t.tree.RootNode()
	if root == nil {
		return nil
	}
	return &tsNode{n: root, src: t.src}
}

type tsNode struct {
	n   *sitter.Node
	src []byte
}

func (n *tsNode) Kind() string { return n.n.Type() }

func (n *tsNode) Text() string { return n.n.Content(n.src) }

func (n *tsNode) Span() model.Span {
	start := n.n.StartPoint()
	end := n.n.EndPoint()
	return model.Span{
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column),
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column),
	}
}

func (n *tsNode) StartByte() uint32 { return n.n.StartByte() }
func (n *tsNode) EndByte() uint32   { return n.n.EndByte() }
func (n *tsNode) IsNamed() bool     { return n.n.IsNamed() }

func (n *tsNode) Children() []Node {
	count := int(n.n.ChildCount())
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.n.Child(i)
		if c == nil {
			continue
		}
		out = append(out, &tsNode{n: c, src: n.src})
	}
	return out
}

func (n *tsNode) NamedChildren() []Node {
	count := int(n.n.NamedChildCount())
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.n.NamedChild(i)
		if c == nil {
			continue
		}
		out = append(out, &tsNode{n: c, src: n.src})
	}
	return out
}

func (n *tsNode) ChildByFieldName(name string) Node {
	c := n.n.ChildByFieldName(name)
	if c == nil {
		return nil
	}
	return &tsNode{n: c, src: n.src}
}
