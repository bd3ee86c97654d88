// Package decl models algebraic data type declarations: the input boundary
// of the derivation engine. All data is immutable and request-scoped.
package decl

import (
	"fmt"

	"martianoff/derive/deriveerr"
	"martianoff/derive/internal/typeexpr"
)

// TypeDecl is the declaration of an algebraic data type parameterized over
// one type variable.
type TypeDecl struct {
	Name  string
	Var   string // the designated type variable, e.g. "a"
	Ctors []Constructor
}

// Constructor is one constructor of a declaration. Field order is
// semantically significant: it fixes effect-sequencing order under traverse.
type Constructor struct {
	Name   string
	Fields []Field
}

// Field is one constructor field: a position index plus its type expression.
type Field struct {
	Index int
	Type  typeexpr.Type
}

// Label identifies a field in error messages: "2 (Option[a])".
func (f Field) Label() string {
	return fmt.Sprintf("%d (%s)", f.Index+1, f.Type)
}

// Validate checks a declaration for structural well-formedness. It does not
// classify fields; that is the engine's job.
func (d TypeDecl) Validate() error {
	if d.Name == "" {
		return deriveerr.NewDeclarationError("", "declaration has no name")
	}
	if d.Var == "" {
		return deriveerr.NewDeclarationError(d.Name, "declaration has no type variable")
	}
	if len(d.Ctors) == 0 {
		return deriveerr.NewDeclarationError(d.Name, "declaration has no constructors")
	}
	seen := make(map[string]bool, len(d.Ctors))
	for _, c := range d.Ctors {
		if c.Name == "" {
			return deriveerr.NewDeclarationError(d.Name, "constructor has no name")
		}
		if seen[c.Name] {
			return deriveerr.NewDeclarationError(d.Name, fmt.Sprintf("duplicate constructor %q", c.Name))
		}
		seen[c.Name] = true
		for _, f := range c.Fields {
			if f.Type == nil {
				return deriveerr.NewDeclarationError(d.Name,
					fmt.Sprintf("constructor %q field %d has no type", c.Name, f.Index+1))
			}
		}
	}
	return nil
}

// Ctor returns the constructor with the given name, if declared.
func (d TypeDecl) Ctor(name string) (Constructor, bool) {
	for _, c := range d.Ctors {
		if c.Name == name {
			return c, true
		}
	}
	return Constructor{}, false
}

// New builds a TypeDecl from constructor field type strings, parsing each
// field with typeexpr.Parse. Convenient for tests and builtin declarations.
func New(name, typeVar string, ctors ...CtorSpec) TypeDecl {
	d := TypeDecl{Name: name, Var: typeVar}
	for _, c := range ctors {
		ctor := Constructor{Name: c.Name}
		for i, ft := range c.Fields {
			ctor.Fields = append(ctor.Fields, Field{Index: i, Type: typeexpr.Parse(ft)})
		}
		d.Ctors = append(d.Ctors, ctor)
	}
	return d
}

// CtorSpec is the textual form of a constructor used by New.
type CtorSpec struct {
	Name   string
	Fields []string
}
