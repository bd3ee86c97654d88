package engine

import (
	"fmt"

	"martianoff/derive/deriveerr"
	"martianoff/derive/internal/typeexpr"
)

// Kind is the four-way categorization of a constructor field relative to
// the designated type variable.
type Kind int

const (
	// Exact: the field is syntactically the designated variable.
	Exact Kind = iota
	// Absent: the variable does not occur anywhere inside the field type.
	Absent
	// Recursive: the head of the field type is the type being derived.
	Recursive
	// Nested: a type-constructor application with the variable confined to
	// the final argument position.
	Nested
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "Exact"
	case Absent:
		return "Absent"
	case Recursive:
		return "Recursive"
	case Nested:
		return "Nested"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Classification is the computed categorization of one field type. For
// Nested, Inner classifies the final argument; the chain always terminates
// because nesting depth strictly decreases.
type Classification struct {
	Kind  Kind
	Outer string          // Nested: capability name of the head type
	Inner *Classification // Nested: classification of the final argument
}

// site locates a field for error reporting.
type site struct {
	typeName string
	ctor     string
	field    string
}

// classify computes the classification of a field type. Exactly one case
// applies; Recursive and non-final variable positions are rejected here.
func classify(t typeexpr.Type, typeVar, selfName string, at site) (*Classification, error) {
	if b, ok := t.(typeexpr.Basic); ok && b.Name == typeVar {
		return &Classification{Kind: Exact}, nil
	}
	if !t.Occurs(typeVar) {
		return &Classification{Kind: Absent}, nil
	}
	if t.BaseName() == selfName {
		return nil, deriveerr.NewRecursionError(at.typeName, at.ctor, at.field)
	}

	switch tt := t.(type) {
	case typeexpr.Slice:
		inner, err := classify(tt.Elem, typeVar, selfName, at)
		if err != nil {
			return nil, err
		}
		return &Classification{Kind: Nested, Outer: "[]", Inner: inner}, nil

	case typeexpr.Generic:
		if tt.Base.Occurs(typeVar) {
			return nil, deriveerr.NewClassificationError(at.typeName, at.ctor, at.field,
				fmt.Sprintf("variable %q occurs in head position of %s: not a structurally-transformable position", typeVar, t))
		}
		for _, p := range tt.Params[:len(tt.Params)-1] {
			if p.Occurs(typeVar) {
				return nil, deriveerr.NewClassificationError(at.typeName, at.ctor, at.field,
					fmt.Sprintf("variable %q occurs in a non-final argument position of %s: not a structurally-transformable position", typeVar, t))
			}
		}
		inner, err := classify(tt.Params[len(tt.Params)-1], typeVar, selfName, at)
		if err != nil {
			return nil, err
		}
		return &Classification{Kind: Nested, Outer: tt.Base.BaseName(), Inner: inner}, nil
	}

	// The variable occurs but the expression is neither the variable, a
	// slice, nor an application; nothing structural can be done with it.
	return nil, deriveerr.NewClassificationError(at.typeName, at.ctor, at.field,
		fmt.Sprintf("variable %q occurs in %s in a non-transformable position", typeVar, t))
}
