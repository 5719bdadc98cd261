package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

func TestScanCalls(t *testing.T) {
	tests := []struct {
		description string
		source      string
		caller      string
		wantCallees []string
	}{
		{
			description: "direct call inside a function",
			source: `function main() {
  helper();
  helper();
}`,
			caller:      "main",
			wantCallees: []string{"helper"},
		},
		{
			description: "method call inside a class method",
			source: `class Service {
  run() {
    this.process();
  }
}`,
			caller:      "Service.run",
			wantCallees: []string{"process"},
		},
		{
			description: "call inside an arrow function assigned to a const",
			source: `const task = () => {
  execute();
};`,
			caller:      "task",
			wantCallees: []string{"execute"},
		},
	}

	provider := parsetree.NewTreeSitterProvider()
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			tree, err := provider.Parse([]byte(tc.source), model.LanguageJavaScript)
			require.NoError(t, err)

			calls := ScanCalls(tree.Root())
			refs, ok := calls[tc.caller]
			require.True(t, ok, "no calls recorded for %q, got %v", tc.caller, calls)
			var names []string
			for _, ref := range refs {
				names = append(names, ref.Callee)
				assert.NotZero(t, ref.Line, "callee %q should carry its call-site line", ref.Callee)
			}
			for _, want := range tc.wantCallees {
				assert.Contains(t, names, want)
			}
		})
	}
}

func TestScanCalls_RecordsReceiverAndArgumentCount(t *testing.T) {
	provider := parsetree.NewTreeSitterProvider()
	tree, err := provider.Parse([]byte(`class Service {
  run() {
    this.process(1, 2);
  }
}`), model.LanguageJavaScript)
	require.NoError(t, err)

	calls := ScanCalls(tree.Root())
	refs, ok := calls["Service.run"]
	require.True(t, ok)
	require.Len(t, refs, 1)
	assert.Equal(t, "process", refs[0].Callee)
	assert.Equal(t, "this", refs[0].Receiver)
	assert.Equal(t, 2, refs[0].ArgumentCount)
}

func TestScanCalls_NilRootReturnsEmptyMap(t *testing.T) {
	calls := ScanCalls(nil)
	assert.Empty(t, calls)
}
