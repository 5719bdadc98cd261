// Package model holds the value records produced by the analysis core:
// the L1 module structure, the L2 call graph, and the per-function L3/L4/L5
// graphs. Every type here is built once by its owning builder package and
// is immutable thereafter.
package model

// Span locates a syntactic range in source text. Lines are 1-based,
// columns are 0-based.
type Span struct {
	StartLine   int `json:"startLine" yaml:"startLine"`
	StartColumn int `json:"startColumn" yaml:"startColumn"`
	EndLine     int `json:"endLine" yaml:"endLine"`
	EndColumn   int `json:"endColumn" yaml:"endColumn"`
}

// Position serialises a single end of a Span under the §6.4 {line,col} shape.
type Position struct {
	Line int `json:"line" yaml:"line"`
	Col  int `json:"col" yaml:"col"`
}

// SpanView is the stable {start,end} serialisation shape required by §6.4.
type SpanView struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// View projects Span into its serialisable form.
func (s Span) View() SpanView {
	return SpanView{
		Start: Position{Line: s.StartLine, Col: s.StartColumn},
		End:   Position{Line: s.EndLine, Col: s.EndColumn},
	}
}
