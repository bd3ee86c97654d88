// Package effect provides the applicative contexts that thread effects
// through a synthesized traverse while preserving declared field order.
//
// Effectful values are untyped (any); each Applicative implementation fixes
// their concrete shape. The function position of Ap always carries a
// func(any) any inside the effect.
package effect

// Applicative is the effect context abstraction: lift a pure value, map a
// pure function over an effectful value, and sequence two effectful
// computations left to right.
type Applicative interface {
	Name() string
	// Pure embeds a value with no effect attached.
	Pure(x any) any
	// Map applies a pure function inside the effect.
	Map(f func(any) any, fx any) any
	// Ap sequences ff's effect before fx's effect and applies the carried
	// function. Sequencing order is part of the contract: it is observable
	// whenever the effect is not commutative.
	Ap(ff any, fx any) any
}

// Identity is the no-op effect: values are carried as themselves. Traverse
// under Identity coincides with map.
type Identity struct{}

func (Identity) Name() string { return "Identity" }

func (Identity) Pure(x any) any { return x }

func (Identity) Map(f func(any) any, fx any) any { return f(fx) }

func (Identity) Ap(ff any, fx any) any {
	return ff.(func(any) any)(fx)
}

var _ Applicative = Identity{}
