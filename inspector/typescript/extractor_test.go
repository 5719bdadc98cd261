package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

func TestExtractModule(t *testing.T) {
	tests := []struct {
		description   string
		source        string
		path          string
		wantFunctions []string
		wantClasses   []string
		wantImports   int
	}{
		{
			description: "function declaration and named export",
			source: `import { helper } from './helper';

export function add(a: number, b: number): number {
  return a + b;
}
`,
			path:          "math.ts",
			wantFunctions: []string{"add"},
			wantImports:   1,
		},
		{
			description: "class with a method",
			source: `export class Widget {
  render(): void {
    console.log('rendering');
  }
}
`,
			path:        "widget.ts",
			wantClasses: []string{"Widget"},
		},
		{
			description: "arrow function assigned to a const",
			source: `const double = (x: number): number => x * 2;
`,
			path:          "double.ts",
			wantFunctions: []string{"double"},
		},
	}

	extractor := NewExtractor(parsetree.NewTreeSitterProvider())
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			mod, err := extractor.ExtractModule([]byte(tc.source), tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.path, mod.FilePath)
			assert.Equal(t, model.LanguageTypeScript, mod.Language)
			assert.NotEmpty(t, mod.ContentHash)

			var gotFunctions []string
			for _, fn := range mod.Functions {
				gotFunctions = append(gotFunctions, fn.Name)
			}
			for _, want := range tc.wantFunctions {
				assert.Contains(t, gotFunctions, want)
			}

			var gotClasses []string
			for _, cls := range mod.Classes {
				gotClasses = append(gotClasses, cls.Name)
			}
			for _, want := range tc.wantClasses {
				assert.Contains(t, gotClasses, want)
			}

			if tc.wantImports > 0 {
				assert.Len(t, mod.Imports, tc.wantImports)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		path     string
		expected model.Language
		ok       bool
	}{
		{path: "a.ts", expected: model.LanguageTypeScript, ok: true},
		{path: "a.tsx", expected: model.LanguageTSX, ok: true},
		{path: "a.js", expected: model.LanguageJavaScript, ok: true},
		{path: "a.jsx", expected: model.LanguageJavaScript, ok: true},
		{path: "a.py", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			lang, ok := DialectFor(tc.path)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, lang)
			}
		})
	}
}
