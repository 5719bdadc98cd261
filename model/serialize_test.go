package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestSortSet(t *testing.T) {
	tests := []struct {
		description string
		input       []string
		expected    []string
	}{
		{description: "dedups and sorts", input: []string{"b", "a", "b", "c"}, expected: []string{"a", "b", "c"}},
		{description: "nil input", input: nil, expected: nil},
		{description: "already sorted", input: []string{"x", "y"}, expected: []string{"x", "y"}},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, SortSet(tc.input))
		})
	}
}

func TestToJSON_MapKeysSorted(t *testing.T) {
	in := map[string]int{"zeta": 1, "alpha": 2}
	out, err := ToJSON(in)
	assert.NoError(t, err)
	assert.Less(t, indexOf(string(out), "alpha"), indexOf(string(out), "zeta"))

	var round map[string]int
	assert.NoError(t, json.Unmarshal(out, &round))
	assert.Equal(t, in, round)
}

func TestToYAML_RoundTrips(t *testing.T) {
	in := Span{StartLine: 1, StartColumn: 2, EndLine: 3, EndColumn: 4}
	out, err := ToYAML(in)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "startLine")

	var round Span
	assert.NoError(t, yaml.Unmarshal(out, &round))
	assert.Equal(t, in, round)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
