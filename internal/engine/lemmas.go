package engine

import (
	"strings"

	"martianoff/derive/internal/decl"
)

// Term is a symbolic term used in unfolding equations. Two variants only:
// symbols and applications.
type Term interface {
	String() string
}

// Sym is a symbol: a binder, a function name, or a constructor name.
type Sym struct {
	Name string
}

func (s Sym) String() string { return s.Name }

// App is an application of a term to argument terms.
type App struct {
	Fn   Term
	Args []Term
}

func (a App) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return a.Fn.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Equation is a per-constructor unfolding equation: the operation applied
// to a constructor application equals the constructor applied to the field
// syntheses. It holds by direct reduction — it restates the synthesized
// definition — and is surfaced as an artifact for rendering and review.
type Equation struct {
	Op   string
	Ctor string
	LHS  Term
	RHS  Term
}

func (e Equation) String() string {
	return e.LHS.String() + " = " + e.RHS.String()
}

// mapOpName names the map operation of a type; the builtin slice container
// renders as mapSlice.
func mapOpName(typeName string) string {
	if typeName == "[]" {
		return "mapSlice"
	}
	return "map" + typeName
}

func travOpName(typeName string) string {
	if typeName == "[]" {
		return "traverseSlice"
	}
	return "traverse" + typeName
}

// mapFnTerm renders the composed transform pushed through a Nested chain in
// function position: f, mapOption(f), mapOption(mapSlice(f)), ...
func mapFnTerm(c *Classification, leaf Term) Term {
	if c.Kind == Exact {
		return leaf
	}
	return App{Fn: Sym{Name: mapOpName(c.Outer)}, Args: []Term{mapFnTerm(c.Inner, leaf)}}
}

func travFnTerm(c *Classification, leaf Term) Term {
	if c.Kind == Exact {
		return leaf
	}
	return App{Fn: Sym{Name: travOpName(c.Outer)}, Args: []Term{travFnTerm(c.Inner, leaf)}}
}

// mapEquation generates the unfolding equation of the map operation for one
// constructor, with fresh binders from the request's name generator.
func mapEquation(d decl.TypeDecl, s *ctorSynth, names *nameGen) Equation {
	f := Sym{Name: "f"}
	binders := make([]Term, len(s.ctor.Fields))
	for i := range s.ctor.Fields {
		binders[i] = Sym{Name: names.Next()}
	}

	rhsArgs := make([]Term, len(s.ctor.Fields))
	for i, c := range s.cls {
		switch c.Kind {
		case Exact:
			rhsArgs[i] = App{Fn: f, Args: []Term{binders[i]}}
		case Absent:
			rhsArgs[i] = binders[i]
		default:
			rhsArgs[i] = App{
				Fn:   Sym{Name: mapOpName(c.Outer)},
				Args: []Term{mapFnTerm(c.Inner, f), binders[i]},
			}
		}
	}

	op := mapOpName(d.Name)
	return Equation{
		Op:   op,
		Ctor: s.ctor.Name,
		LHS:  App{Fn: Sym{Name: op}, Args: []Term{f, App{Fn: Sym{Name: s.ctor.Name}, Args: binders}}},
		RHS:  App{Fn: Sym{Name: s.ctor.Name}, Args: rhsArgs},
	}
}

// travEquation generates the unfolding equation of the traverse operation
// for one constructor. The right-hand side spells out the applicative
// sequencing: the constructor lifted pure, effectful fields folded in with
// applyEffect (the first one via mapEffect), Absent fields applied directly
// with applyPure.
func travEquation(d decl.TypeDecl, s *ctorSynth, names *nameGen) Equation {
	f := Sym{Name: "f"}
	binders := make([]Term, len(s.ctor.Fields))
	for i := range s.ctor.Fields {
		binders[i] = Sym{Name: names.Next()}
	}

	var acc Term = App{Fn: Sym{Name: "pure"}, Args: []Term{Sym{Name: s.ctor.Name}}}
	bareCtor := true // acc is still exactly pure(ctor)
	for i, c := range s.cls {
		switch c.Kind {
		case Absent:
			acc = App{Fn: Sym{Name: "applyPure"}, Args: []Term{acc, binders[i]}}
			bareCtor = false
		default:
			var eff Term
			if c.Kind == Exact {
				eff = App{Fn: f, Args: []Term{binders[i]}}
			} else {
				eff = App{
					Fn:   Sym{Name: travOpName(c.Outer)},
					Args: []Term{travFnTerm(c.Inner, f), binders[i]},
				}
			}
			if bareCtor {
				acc = App{Fn: Sym{Name: "mapEffect"}, Args: []Term{Sym{Name: s.ctor.Name}, eff}}
				bareCtor = false
			} else {
				acc = App{Fn: Sym{Name: "applyEffect"}, Args: []Term{acc, eff}}
			}
		}
	}

	op := travOpName(d.Name)
	return Equation{
		Op:   op,
		Ctor: s.ctor.Name,
		LHS:  App{Fn: Sym{Name: op}, Args: []Term{f, App{Fn: Sym{Name: s.ctor.Name}, Args: binders}}},
		RHS:  acc,
	}
}
