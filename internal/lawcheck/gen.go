package lawcheck

import (
	"fmt"
	"math/rand"

	"martianoff/derive/adt"
	"martianoff/derive/internal/registry"
	"martianoff/derive/internal/typeexpr"
)

// generator produces random runtime values of registered declarations.
// Element positions receive small random ints; Absent positions receive
// random literals. Termination follows from the engine's rejection of
// recursive fields: every registered declaration is structurally finite.
type generator struct {
	rng *rand.Rand
	reg *registry.Registry
}

func newSeededGenerator(seed int64, reg *registry.Registry) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed)), reg: reg}
}

// value generates a random value of the named declaration, using elem for
// designated-variable positions.
func (g *generator) value(typeName string, elem func() (adt.Value, error)) (adt.Value, error) {
	d, ok := g.reg.LookupDecl(typeName)
	if !ok {
		return nil, fmt.Errorf("lawcheck: cannot generate values for %q: declaration not registered", typeName)
	}
	ctor := d.Ctors[g.rng.Intn(len(d.Ctors))]
	args := make([]adt.Value, len(ctor.Fields))
	for i, f := range ctor.Fields {
		v, err := g.fieldValue(f.Type, d.Var, elem)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return adt.NewCon(d.Name, ctor.Name, args...), nil
}

func (g *generator) fieldValue(t typeexpr.Type, typeVar string, elem func() (adt.Value, error)) (adt.Value, error) {
	if b, ok := t.(typeexpr.Basic); ok && b.Name == typeVar {
		return elem()
	}
	if !t.Occurs(typeVar) {
		return adt.Lit{V: g.rng.Intn(100)}, nil
	}

	switch tt := t.(type) {
	case typeexpr.Slice:
		n := g.rng.Intn(4)
		items := make([]adt.Value, n)
		for i := range items {
			v, err := g.fieldValue(tt.Elem, typeVar, elem)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return adt.List{Items: items}, nil

	case typeexpr.Generic:
		last := tt.Params[len(tt.Params)-1]
		return g.value(tt.Base.BaseName(), func() (adt.Value, error) {
			return g.fieldValue(last, typeVar, elem)
		})
	}

	return nil, fmt.Errorf("lawcheck: cannot generate a value for field type %s", t)
}

// intElem returns an element generator producing small random ints.
func (g *generator) intElem() func() (adt.Value, error) {
	return func() (adt.Value, error) {
		return adt.Elem{V: g.rng.Intn(1000)}, nil
	}
}
