package engine

import (
	"fmt"

	"martianoff/derive/adt"
	"martianoff/derive/deriveerr"
	"martianoff/derive/effect"
	"martianoff/derive/internal/decl"
	"martianoff/derive/internal/registry"
)

// MapOp is a synthesized map operation: apply a pure leaf transform at
// every designated-variable position of a value.
type MapOp func(t registry.MapFunc, v adt.Value) (adt.Value, error)

// TraverseOp is a synthesized traverse operation: thread an effectful leaf
// transform through a value under the given applicative, preserving
// declared field order.
type TraverseOp func(ap effect.Applicative, t registry.TravFunc, v adt.Value) (any, error)

// dispatch matches a value against the declaration's constructors in
// declaration order and returns that constructor's synthesis. The match is
// exhaustive over the declaration; anything else is an internal invariant
// violation, never silently handled.
func dispatch(d decl.TypeDecl, synths []*ctorSynth, v adt.Value) (*ctorSynth, adt.Con, error) {
	con, ok := v.(adt.Con)
	if !ok {
		return nil, adt.Con{}, fmt.Errorf("internal: %s operation applied to %T value", d.Name, v)
	}
	if con.Type != d.Name {
		return nil, adt.Con{}, fmt.Errorf("internal: %s operation applied to %s value", d.Name, con.Type)
	}
	for _, s := range synths {
		if s.ctor.Name == con.Ctor {
			return s, con, nil
		}
	}
	return nil, adt.Con{}, deriveerr.NewNonExhaustiveError(d.Name, con.Ctor)
}

// makeMapOp assembles the full map operation from per-constructor syntheses.
func makeMapOp(d decl.TypeDecl, synths []*ctorSynth) MapOp {
	return func(t registry.MapFunc, v adt.Value) (adt.Value, error) {
		s, con, err := dispatch(d, synths, v)
		if err != nil {
			return nil, err
		}
		return s.applyMap(d.Name, t, con)
	}
}

// makeTraverseOp assembles the full traverse operation.
func makeTraverseOp(d decl.TypeDecl, synths []*ctorSynth) TraverseOp {
	return func(ap effect.Applicative, t registry.TravFunc, v adt.Value) (any, error) {
		s, con, err := dispatch(d, synths, v)
		if err != nil {
			return nil, err
		}
		return s.applyTraverse(d.Name, ap, t, con)
	}
}
