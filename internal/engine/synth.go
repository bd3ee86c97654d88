package engine

import (
	"fmt"

	"martianoff/derive/adt"
	"martianoff/derive/effect"
	"martianoff/derive/internal/decl"
	"martianoff/derive/internal/registry"
)

// ctorSynth is the per-constructor synthesis result: the classification of
// every field plus the ready-to-close transform builders. Builders are nil
// for Absent fields, which pass values through (map) or are applied as pure
// values (traverse).
type ctorSynth struct {
	ctor  decl.Constructor
	cls   []*Classification
	mapB  []mapBuilder
	travB []travBuilder
}

// synthesizeCtor classifies every field of a constructor and builds its
// transforms. Any classification or capability failure aborts the request.
func (e *Engine) synthesizeCtor(d decl.TypeDecl, c decl.Constructor) (*ctorSynth, error) {
	s := &ctorSynth{
		ctor:  c,
		cls:   make([]*Classification, len(c.Fields)),
		mapB:  make([]mapBuilder, len(c.Fields)),
		travB: make([]travBuilder, len(c.Fields)),
	}
	for i, f := range c.Fields {
		at := site{typeName: d.Name, ctor: c.Name, field: f.Label()}
		cls, err := classify(f.Type, d.Var, d.Name, at)
		if err != nil {
			return nil, err
		}
		s.cls[i] = cls
		if cls.Kind == Absent {
			continue
		}
		if s.mapB[i], err = e.buildMapTransform(cls, at); err != nil {
			return nil, err
		}
		if s.travB[i], err = e.buildTravTransform(cls, at); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// applyMap rebuilds the constructor by plain application to the field
// syntheses, in declared order.
func (s *ctorSynth) applyMap(typeName string, t registry.MapFunc, v adt.Con) (adt.Value, error) {
	if len(v.Args) != len(s.ctor.Fields) {
		return nil, fmt.Errorf("internal: %s.%s applied to %d values, declared with %d fields",
			typeName, s.ctor.Name, len(v.Args), len(s.ctor.Fields))
	}
	args := make([]adt.Value, len(v.Args))
	for i, arg := range v.Args {
		switch s.cls[i].Kind {
		case Absent:
			args[i] = arg
		default:
			mapped, err := s.mapB[i](t)(arg)
			if err != nil {
				return nil, err
			}
			args[i] = mapped
		}
	}
	return adt.NewCon(typeName, s.ctor.Name, args...), nil
}

// applyTraverse rebuilds the constructor under the applicative: the curried
// constructor is lifted pure, then each field is folded in declared
// left-to-right order. Absent fields are applied directly to the
// accumulator instead of being embedded and sequenced.
func (s *ctorSynth) applyTraverse(typeName string, ap effect.Applicative, t registry.TravFunc, v adt.Con) (any, error) {
	if len(v.Args) != len(s.ctor.Fields) {
		return nil, fmt.Errorf("internal: %s.%s applied to %d values, declared with %d fields",
			typeName, s.ctor.Name, len(v.Args), len(s.ctor.Fields))
	}
	acc := ap.Pure(curryCon(typeName, s.ctor.Name, len(s.ctor.Fields)))
	for i, arg := range v.Args {
		switch s.cls[i].Kind {
		case Absent:
			pure := arg
			acc = ap.Map(func(k any) any {
				return k.(func(any) any)(adt.Value(pure))
			}, acc)
		default:
			eff, err := s.travB[i](ap, t)(arg)
			if err != nil {
				return nil, err
			}
			acc = ap.Ap(acc, eff)
		}
	}
	return acc, nil
}

// curryCon builds the curried form of a constructor: a chain of func(any)
// any values that collects n field values and finally yields the adt.Con.
// With n == 0 the constructor application itself is returned.
func curryCon(typeName, ctor string, n int) any {
	if n == 0 {
		return adt.NewCon(typeName, ctor)
	}
	var build func(args []adt.Value) any
	build = func(args []adt.Value) any {
		return func(x any) any {
			next := make([]adt.Value, 0, len(args)+1)
			next = append(next, args...)
			next = append(next, x.(adt.Value))
			if len(next) == n {
				return adt.NewCon(typeName, ctor, next...)
			}
			return build(next)
		}
	}
	return build(nil)
}
