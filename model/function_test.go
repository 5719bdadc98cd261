package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunction_Signature(t *testing.T) {
	numberType := "number"
	returnType := "number"

	tests := []struct {
		description string
		fn          Function
		expected    string
	}{
		{
			description: "plain function with typed params and return",
			fn: Function{
				Name:       "add",
				Params:     []Parameter{{Name: "a", Type: &numberType}, {Name: "b", Type: &numberType}},
				ReturnType: &returnType,
			},
			expected: "function add(a: number, b: number): number",
		},
		{
			description: "async generator with no params",
			fn: Function{
				Name:        "stream",
				IsAsync:     true,
				IsGenerator: true,
			},
			expected: "async function* stream()",
		},
		{
			description: "optional and rest parameters",
			fn: Function{
				Name: "log",
				Params: []Parameter{
					{Name: "level", IsOptional: true},
					{Name: "args", IsRest: true},
				},
			},
			expected: "function log(level?, ...args)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.fn.Signature())
		})
	}
}
