package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleName(t *testing.T) {
	tests := []struct {
		description string
		projectRoot string
		filePath    string
		expected    string
	}{
		{
			description: "relative nested path has extension stripped",
			projectRoot: "/project",
			filePath:    "/project/src/utils/math.ts",
			expected:    "src/utils/math",
		},
		{
			description: "top-level file",
			projectRoot: "/project",
			filePath:    "/project/index.ts",
			expected:    "index",
		},
		{
			description: "path outside projectRoot falls back to filePath itself",
			projectRoot: "/other",
			filePath:    "relative/widget.tsx",
			expected:    "relative/widget",
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, moduleName(tc.projectRoot, tc.filePath))
		})
	}
}
