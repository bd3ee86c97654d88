package engine

import (
	"martianoff/derive/adt"
	"martianoff/derive/deriveerr"
	"martianoff/derive/effect"
	"martianoff/derive/internal/registry"
)

// mapBuilder produces the field transform for map-mode once the caller's
// leaf transform is known.
type mapBuilder func(leaf registry.MapFunc) registry.MapFunc

// travBuilder produces the field transform for traverse-mode once the
// ambient applicative and the caller's effectful leaf are known.
type travBuilder func(ap effect.Applicative, leaf registry.TravFunc) registry.TravFunc

// buildMapTransform composes capability map operations through a Nested
// chain, innermost first. Terminates because each level strictly reduces
// nesting depth.
func (e *Engine) buildMapTransform(c *Classification, at site) (mapBuilder, error) {
	switch c.Kind {
	case Exact:
		return func(leaf registry.MapFunc) registry.MapFunc { return leaf }, nil

	case Nested:
		innerB, err := e.buildMapTransform(c.Inner, at)
		if err != nil {
			return nil, err
		}
		cap, ok := e.reg.LookupCapability(c.Outer)
		if !ok {
			return nil, deriveerr.NewMissingCapabilityError(at.typeName, at.ctor, at.field, c.Outer)
		}
		outerMap := cap.Map
		return func(leaf registry.MapFunc) registry.MapFunc {
			inner := innerB(leaf)
			return func(v adt.Value) (adt.Value, error) {
				return outerMap(inner, v)
			}
		}, nil
	}

	return nil, deriveerr.NewClassificationError(at.typeName, at.ctor, at.field,
		"internal: transform requested for "+c.Kind.String()+" classification")
}

// buildTravTransform is the traverse-mode counterpart of buildMapTransform.
// The applicative is supplied at application time; the capability lookup
// happens now so a missing capability aborts the derivation request.
func (e *Engine) buildTravTransform(c *Classification, at site) (travBuilder, error) {
	switch c.Kind {
	case Exact:
		return func(ap effect.Applicative, leaf registry.TravFunc) registry.TravFunc {
			return leaf
		}, nil

	case Nested:
		innerB, err := e.buildTravTransform(c.Inner, at)
		if err != nil {
			return nil, err
		}
		cap, ok := e.reg.LookupCapability(c.Outer)
		if !ok {
			return nil, deriveerr.NewMissingCapabilityError(at.typeName, at.ctor, at.field, c.Outer)
		}
		outerTrav := cap.Traverse
		return func(ap effect.Applicative, leaf registry.TravFunc) registry.TravFunc {
			inner := innerB(ap, leaf)
			return func(v adt.Value) (any, error) {
				return outerTrav(ap, inner, v)
			}
		}, nil
	}

	return nil, deriveerr.NewClassificationError(at.typeName, at.ctor, at.field,
		"internal: transform requested for "+c.Kind.String()+" classification")
}
