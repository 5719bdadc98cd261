package model

import "strings"

// Visibility is a class member's access modifier.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityNone      Visibility = "none"
)

// ExportType classifies how a declaration is exported from its module.
type ExportType string

const (
	ExportNamed  ExportType = "named"
	ExportDefault ExportType = "default"
	ExportNone   ExportType = "none"
)

// CallableKind discriminates the three syntactic shapes §9 asks to be
// unified under a single "callable" concept.
type CallableKind string

const (
	CallableDeclaration CallableKind = "declaration"
	CallableArrow       CallableKind = "arrow"
	CallableExpression  CallableKind = "expression"
)

// Parameter is one formal parameter of a Function.
type Parameter struct {
	Name         string  `json:"name" yaml:"name"`
	Type         *string `json:"type,omitempty" yaml:"type,omitempty"`
	DefaultValue *string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	IsRest       bool    `json:"isRest" yaml:"isRest"`
	IsOptional   bool    `json:"isOptional" yaml:"isOptional"`
}

func (p Parameter) text() string {
	var b strings.Builder
	if p.IsRest {
		b.WriteString("...")
	}
	b.WriteString(p.Name)
	if p.IsOptional {
		b.WriteString("?")
	}
	if p.Type != nil {
		b.WriteString(": ")
		b.WriteString(*p.Type)
	}
	if p.DefaultValue != nil {
		b.WriteString(" = ")
		b.WriteString(*p.DefaultValue)
	}
	return b.String()
}

// Function is one callable declaration: a function, method, or an
// arrow/function-expression bound to a variable (CallableKind discriminates).
type Function struct {
	Name         string       `json:"name" yaml:"name"`
	Kind         CallableKind `json:"kind" yaml:"kind"`
	Params       []Parameter  `json:"params" yaml:"params"`
	ReturnType   *string      `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	Docstring    *string      `json:"docstring,omitempty" yaml:"docstring,omitempty"`
	IsMethod     bool         `json:"isMethod" yaml:"isMethod"`
	IsAsync      bool         `json:"isAsync" yaml:"isAsync"`
	IsGenerator  bool         `json:"isGenerator" yaml:"isGenerator"`
	IsExported   bool         `json:"isExported" yaml:"isExported"`
	ExportType   ExportType   `json:"exportType" yaml:"exportType"`
	Decorators   []string     `json:"decorators" yaml:"decorators"`
	Line         int          `json:"line" yaml:"line"`
	Span         Span         `json:"span" yaml:"span"`
	Visibility   Visibility   `json:"visibility" yaml:"visibility"`
	IsStatic     bool         `json:"isStatic" yaml:"isStatic"`
}

// Signature renders the canonical textual signature used by testable
// property 1: async prefix iff IsAsync, generator marker iff IsGenerator,
// parameters joined by ", ", and a return-type suffix iff ReturnType is set.
func (f Function) Signature() string {
	var b strings.Builder
	if f.IsAsync {
		b.WriteString("async ")
	}
	b.WriteString("function")
	if f.IsGenerator {
		b.WriteString("*")
	}
	b.WriteString(" ")
	b.WriteString(f.Name)
	b.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.text())
	}
	b.WriteString(")")
	if f.ReturnType != nil {
		b.WriteString(": ")
		b.WriteString(*f.ReturnType)
	}
	return b.String()
}
