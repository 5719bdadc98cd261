// Package errs defines the error-kind vocabulary the analysis core reports
// through. Errors are values, never used for control flow, and always carry
// a kind tag alongside a human-readable message.
package errs

import "fmt"

// Kind tags the category of failure so callers can branch on errors.Is
// without parsing messages.
type Kind string

const (
	// ParserLoadError means the parser provider could not initialise; fatal
	// to the session.
	ParserLoadError Kind = "parser_load_error"
	// UnsupportedFile means a file path does not map to a known language.
	UnsupportedFile Kind = "unsupported_file"
	// ParseError means source text produced no usable tree.
	ParseError Kind = "parse_error"
	// FunctionNotFound means a CFG/DFG/PDG request named a function that
	// cannot be located.
	FunctionNotFound Kind = "function_not_found"
	// SliceCriterionOutOfRange means a slice criterion line fell outside the
	// requested function's extent.
	SliceCriterionOutOfRange Kind = "slice_criterion_out_of_range"
	// Internal marks an invariant violation.
	Internal Kind = "internal"
)

// Error is the concrete error value produced by the engine. It wraps an
// optional cause so errors.Is/errors.As work through it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match on Kind alone, so callers can do
// errors.Is(err, errs.New(errs.ParseError, "")) without constructing a
// matching message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error that carries cause as its Unwrap target.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
