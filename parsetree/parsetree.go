// Package parsetree is the component-A adapter over a concrete-syntax tree
// supplied by an external parser. Builders in inspector/typescript, cfg,
// dfg and pdg depend only on the Node/Tree/Provider interfaces here, never
// on a specific parser implementation — the tree-sitter-backed Provider in
// treesitter.go is one concrete instance of that contract.
package parsetree

import "github.com/astgraph/codescope/model"

// Node is one concrete-syntax-tree node: a kind string, the original source
// text it spans, its Span, and an ordered list of children. Used only in
// read mode.
type Node interface {
	Kind() string
	Text() string
	Span() model.Span
	StartByte() uint32
	EndByte() uint32
	Children() []Node
	NamedChildren() []Node
	ChildByFieldName(name string) Node
	IsNamed() bool
}

// Tree is a parsed concrete-syntax tree. A tree with a non-nil Root but a
// root whose Kind reports an error is how the adapter represents a partial
// parse — builders tolerate missing children by skipping rather than
// treating a non-nil Tree as a guarantee of a clean parse.
type Tree interface {
	Root() Node
}

// Provider parses source text for a language into a Tree. Implementations
// MAY carry language grammars as process-wide immutable state after
// first-use initialisation, guarded so concurrent first calls cannot race
// the load (§5).
type Provider interface {
	Parse(source []byte, language model.Language) (Tree, error)
}
