// Package adt provides the runtime value model that synthesized operations
// close over. A value of a derived type is a constructor application tree
// whose leaves are either element payloads (positions of the designated
// type variable) or literal payloads (positions the variable never reaches).
package adt

import (
	"fmt"
	"reflect"
	"strings"
)

// Value is a runtime value of a derived algebraic data type.
type Value interface {
	String() string
	Equal(other Value) bool
}

// Con is a constructor application: Type is the declaring type name, Ctor
// the constructor name, Args the field values in declared order.
type Con struct {
	Type string
	Ctor string
	Args []Value
}

// NewCon builds a constructor application value.
func NewCon(typeName, ctor string, args ...Value) Con {
	return Con{Type: typeName, Ctor: ctor, Args: args}
}

func (c Con) String() string {
	if len(c.Args) == 0 {
		return c.Ctor + "()"
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Ctor, strings.Join(parts, ", "))
}

func (c Con) Equal(other Value) bool {
	o, ok := other.(Con)
	if !ok || c.Type != o.Type || c.Ctor != o.Ctor || len(c.Args) != len(o.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Elem is a payload sitting at a designated-variable position. Map and
// traverse leaf transforms apply exactly here.
type Elem struct {
	V any
}

func (e Elem) String() string { return fmt.Sprintf("%v", e.V) }

func (e Elem) Equal(other Value) bool {
	o, ok := other.(Elem)
	return ok && reflect.DeepEqual(e.V, o.V)
}

// Lit is a payload at a position the designated variable never reaches.
// Transforms pass it through untouched.
type Lit struct {
	V any
}

func (l Lit) String() string { return fmt.Sprintf("%v", l.V) }

func (l Lit) Equal(other Value) bool {
	o, ok := other.(Lit)
	return ok && reflect.DeepEqual(l.V, o.V)
}

// List is the builtin slice container value for []T fields.
type List struct {
	Items []Value
}

// NewList builds a slice container value.
func NewList(items ...Value) List {
	return List{Items: items}
}

func (l List) String() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l List) Equal(other Value) bool {
	o, ok := other.(List)
	if !ok || len(l.Items) != len(o.Items) {
		return false
	}
	for i := range l.Items {
		if !l.Items[i].Equal(o.Items[i]) {
			return false
		}
	}
	return true
}

var _ Value = Con{}
var _ Value = Elem{}
var _ Value = Lit{}
var _ Value = List{}
