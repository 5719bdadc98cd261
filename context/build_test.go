package context

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astgraph/codescope/model"
)

func TestBuild_ProducesModuleAndFunctionDocuments(t *testing.T) {
	mod := &model.Module{
		FilePath: "src/util.ts",
		Language: model.LanguageTypeScript,
		Imports:  []model.Import{{Module: "./other"}},
		Functions: []model.Function{
			{Name: "add", Kind: model.CallableDeclaration},
		},
		Classes: []model.Class{
			{Name: "Widget", Methods: []model.Function{{Name: "render", Kind: model.CallableDeclaration, IsMethod: true}}},
		},
	}

	docs := Build("demo", mod)

	var kinds []Kind
	for _, d := range docs {
		kinds = append(kinds, d.Kind)
	}
	assert.Contains(t, kinds, KindModule)
	assert.Contains(t, kinds, KindFunction)
	assert.Contains(t, kinds, KindClass)

	var names []string
	for _, d := range docs {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "Widget")
	assert.Contains(t, names, "Widget.render")
}
