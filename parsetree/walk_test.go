package parsetree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

func TestTreeSitterProvider_Parse(t *testing.T) {
	provider := parsetree.NewTreeSitterProvider()
	tree, err := provider.Parse([]byte("function add(a, b) { return a + b; }"), model.LanguageJavaScript)
	require.NoError(t, err)
	require.NotNil(t, tree.Root())
	assert.NotEmpty(t, tree.Root().Kind())
}

func TestWalk_VisitsAllIdentifiers(t *testing.T) {
	provider := parsetree.NewTreeSitterProvider()
	tree, err := provider.Parse([]byte("const total = left + right;"), model.LanguageJavaScript)
	require.NoError(t, err)

	var idents []string
	parsetree.Walk(tree.Root(), func(n parsetree.Node) bool {
		if n.Kind() == "identifier" {
			idents = append(idents, n.Text())
		}
		return true
	})

	assert.Contains(t, idents, "total")
	assert.Contains(t, idents, "left")
	assert.Contains(t, idents, "right")
}

func TestWalk_StopsDescendingWhenVisitReturnsFalse(t *testing.T) {
	provider := parsetree.NewTreeSitterProvider()
	tree, err := provider.Parse([]byte("function outer() { function inner() { return 1; } }"), model.LanguageJavaScript)
	require.NoError(t, err)

	var visited int
	parsetree.Walk(tree.Root(), func(n parsetree.Node) bool {
		visited++
		return n.Kind() != "function_declaration"
	})

	// the outer function_declaration is visited, but its body is never
	// descended into, so the nested inner function_declaration is not seen.
	var sawInner bool
	parsetree.Walk(tree.Root(), func(n parsetree.Node) bool {
		if n.Kind() == "function_declaration" {
			return false
		}
		if n.Text() == "inner" {
			sawInner = true
		}
		return true
	})
	assert.False(t, sawInner)
	assert.Greater(t, visited, 0)
}

func TestFindFirst(t *testing.T) {
	provider := parsetree.NewTreeSitterProvider()
	tree, err := provider.Parse([]byte("let value = 42;"), model.LanguageJavaScript)
	require.NoError(t, err)

	found := parsetree.FindFirst(tree.Root(), func(n parsetree.Node) bool {
		return n.Kind() == "number"
	})
	require.NotNil(t, found)
	assert.Equal(t, "42", found.Text())

	notFound := parsetree.FindFirst(tree.Root(), func(n parsetree.Node) bool {
		return n.Kind() == "nonexistent_kind"
	})
	assert.Nil(t, notFound)
}

func TestText_NilSafe(t *testing.T) {
	assert.Equal(t, "", parsetree.Text(nil))
}
