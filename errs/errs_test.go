package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		description string
		err         error
		target      error
		expected    bool
	}{
		{
			description: "same kind matches regardless of message",
			err:         New(ParseError, "unexpected token"),
			target:      New(ParseError, "different message"),
			expected:    true,
		},
		{
			description: "different kind does not match",
			err:         New(ParseError, "x"),
			target:      New(UnsupportedFile, "x"),
			expected:    false,
		},
		{
			description: "non-errs target does not match",
			err:         New(Internal, "x"),
			target:      errors.New("plain"),
			expected:    false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, errors.Is(tc.err, tc.target))
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap(ParserLoadError, "grammar failed", cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "grammar failed")
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestNew_ErrorString(t *testing.T) {
	err := New(FunctionNotFound, "doStuff")
	assert.Equal(t, fmt.Sprintf("%s: doStuff", FunctionNotFound), err.Error())
}
