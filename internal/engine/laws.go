package engine

import (
	"fmt"

	"martianoff/derive/deriveerr"
	"martianoff/derive/internal/decl"
)

// Law names one of the properties a derived pair of operations must
// satisfy. Laws are not proved here; they are emitted as obligations and
// discharged by the property-based checker in internal/lawcheck.
type Law string

const (
	LawIdentity    Law = "identity"
	LawComposition Law = "composition"
	LawPurity      Law = "purity"
	LawNaturality  Law = "naturality"
	LawCoherence   Law = "coherence"
)

// Obligation is one quantified law instantiated for the derived type.
type Obligation struct {
	Law       Law
	TypeName  string
	Statement string
}

func (o Obligation) String() string {
	return fmt.Sprintf("%s: %s", o.Law, o.Statement)
}

// lawObligations emits the obligations for a derivation. Before emitting it
// checks, per nested capability used anywhere in the declaration, that the
// capability's own laws were established; a hole there blocks law
// derivation for this type.
func (e *Engine) lawObligations(d decl.TypeDecl, synths []*ctorSynth) ([]Obligation, error) {
	for _, s := range synths {
		for i, c := range s.cls {
			at := site{typeName: d.Name, ctor: s.ctor.Name, field: s.ctor.Fields[i].Label()}
			if err := e.checkCapabilityLaws(c, at); err != nil {
				return nil, err
			}
		}
	}

	m := mapOpName(d.Name)
	tr := travOpName(d.Name)
	return []Obligation{
		{Law: LawIdentity, TypeName: d.Name,
			Statement: fmt.Sprintf("%s(identity, x) = x", m)},
		{Law: LawComposition, TypeName: d.Name,
			Statement: fmt.Sprintf("%s(g . f, x) = %s(g, %s(f, x))", m, m, m)},
		{Law: LawPurity, TypeName: d.Name,
			Statement: fmt.Sprintf("%s(pure, x) = pure(x)", tr)},
		{Law: LawNaturality, TypeName: d.Name,
			Statement: fmt.Sprintf("%s(compose(f, g), x) = mapEffect(%s(g), %s(f, x)) under the composed applicative", tr, tr, tr)},
		{Law: LawCoherence, TypeName: d.Name,
			Statement: fmt.Sprintf("%s(f, x) under the identity effect = %s(f, x)", tr, m)},
	}, nil
}

// checkCapabilityLaws walks a Nested chain and requires every outer
// capability to have its laws established.
func (e *Engine) checkCapabilityLaws(c *Classification, at site) error {
	for c != nil && c.Kind == Nested {
		cap, ok := e.reg.LookupCapability(c.Outer)
		if !ok {
			return deriveerr.NewMissingCapabilityError(at.typeName, at.ctor, at.field, c.Outer)
		}
		if !cap.LawsChecked {
			return deriveerr.NewMissingCapabilityLawError(at.typeName, at.ctor, at.field, c.Outer)
		}
		c = c.Inner
	}
	return nil
}
