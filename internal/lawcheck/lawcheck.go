// Package lawcheck discharges the law obligations of a derivation by
// property testing: it instantiates the quantified laws against randomly
// generated values of the derived type. A passing report stands in for the
// proof terms the engine does not produce.
package lawcheck

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"martianoff/derive/adt"
	"martianoff/derive/effect"
	"martianoff/derive/internal/engine"
	"martianoff/derive/internal/registry"
)

// Config controls a check run. The seed makes runs reproducible; a failure
// report quotes it.
type Config struct {
	Seed    int64
	Samples int
}

// DefaultSamples is used when Config.Samples is zero.
const DefaultSamples = 100

// Result is the verdict for one law.
type Result struct {
	Law engine.Law
	Err error
}

// Report aggregates the verdicts of one check run.
type Report struct {
	TypeName string
	Seed     int64
	Samples  int
	Results  []Result
}

// Passed reports whether every law held on every sample.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return false
		}
	}
	return true
}

// Err combines all law failures into one error, nil when the run passed.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Results {
		if res.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s law: %w", res.Law, res.Err))
		}
	}
	return err
}

// Checker runs law checks against a registry.
type Checker struct {
	reg     *registry.Registry
	seed    int64
	samples int
}

// New creates a Checker.
func New(reg *registry.Registry, cfg Config) *Checker {
	samples := cfg.Samples
	if samples <= 0 {
		samples = DefaultSamples
	}
	return &Checker{reg: reg, seed: cfg.Seed, samples: samples}
}

// Check runs every law obligation of the derivation against random values.
func (c *Checker) Check(d *engine.Derived) (*Report, error) {
	report := &Report{TypeName: d.Decl.Name, Seed: c.seed, Samples: c.samples}
	for _, o := range d.Laws {
		runner, err := c.runner(o.Law)
		if err != nil {
			return nil, err
		}
		// Each law gets its own deterministic stream so laws fail
		// independently of each other's sample consumption.
		g := newSeededGenerator(c.seed, c.reg)
		report.Results = append(report.Results, Result{Law: o.Law, Err: c.run(d, g, runner)})
	}
	return report, nil
}

// CheckAndMark runs Check and, on a pass, marks the type's capability laws
// as established so dependent derivations can use it as an outer type.
func (c *Checker) CheckAndMark(d *engine.Derived) (*Report, error) {
	report, err := c.Check(d)
	if err != nil {
		return nil, err
	}
	if report.Passed() {
		c.reg.MarkLawsChecked(d.Decl.Name)
	}
	return report, nil
}

type lawRunner func(d *engine.Derived, g *generator, x adt.Value) error

func (c *Checker) runner(law engine.Law) (lawRunner, error) {
	switch law {
	case engine.LawIdentity:
		return checkIdentity, nil
	case engine.LawComposition:
		return checkComposition, nil
	case engine.LawPurity:
		return checkPurity, nil
	case engine.LawNaturality:
		return checkNaturality, nil
	case engine.LawCoherence:
		return checkCoherence, nil
	}
	return nil, fmt.Errorf("lawcheck: unknown law %q", law)
}

func (c *Checker) run(d *engine.Derived, g *generator, runner lawRunner) error {
	for i := 0; i < c.samples; i++ {
		x, err := g.value(d.Decl.Name, g.intElem())
		if err != nil {
			return err
		}
		if err := runner(d, g, x); err != nil {
			return fmt.Errorf("sample %d (seed %d), x = %s: %w", i, c.seed, x, err)
		}
	}
	return nil
}

// pure leaf transforms over int elements, picked per sample.

func addElem(k int) registry.MapFunc {
	return func(v adt.Value) (adt.Value, error) {
		return adt.Elem{V: v.(adt.Elem).V.(int) + k}, nil
	}
}

func mulElem(k int) registry.MapFunc {
	return func(v adt.Value) (adt.Value, error) {
		return adt.Elem{V: v.(adt.Elem).V.(int) * k}, nil
	}
}

func checkIdentity(d *engine.Derived, _ *generator, x adt.Value) error {
	identity := func(v adt.Value) (adt.Value, error) { return v, nil }
	got, err := d.Map.MapFn(identity, x)
	if err != nil {
		return err
	}
	if !got.Equal(x) {
		return fmt.Errorf("map(identity, x) != x:\n%s", cmp.Diff(x.String(), got.String()))
	}
	return nil
}

func checkComposition(d *engine.Derived, g *generator, x adt.Value) error {
	f := addElem(g.rng.Intn(50) + 1)
	gg := mulElem(g.rng.Intn(5) + 2)
	composed := func(v adt.Value) (adt.Value, error) {
		fv, err := f(v)
		if err != nil {
			return nil, err
		}
		return gg(fv)
	}

	lhs, err := d.Map.MapFn(composed, x)
	if err != nil {
		return err
	}
	inner, err := d.Map.MapFn(f, x)
	if err != nil {
		return err
	}
	rhs, err := d.Map.MapFn(gg, inner)
	if err != nil {
		return err
	}
	if !lhs.Equal(rhs) {
		return fmt.Errorf("map(g.f, x) != map(g, map(f, x)):\n%s", cmp.Diff(rhs.String(), lhs.String()))
	}
	return nil
}

func checkPurity(d *engine.Derived, _ *generator, x adt.Value) error {
	ap := effect.Trace{}
	pureLeaf := func(v adt.Value) (any, error) { return ap.Pure(v), nil }

	out, err := d.Traverse.TraverseFn(ap, pureLeaf, x)
	if err != nil {
		return err
	}
	logged := out.(effect.Logged)
	if len(logged.Log) != 0 {
		return fmt.Errorf("traverse(pure, x) attached effects: %v", logged.Log)
	}
	got := logged.Val.(adt.Value)
	if !got.Equal(x) {
		return fmt.Errorf("traverse(pure, x) != pure(x):\n%s", cmp.Diff(x.String(), got.String()))
	}
	return nil
}

func checkCoherence(d *engine.Derived, g *generator, x adt.Value) error {
	f := addElem(g.rng.Intn(50) + 1)
	asEffect := func(v adt.Value) (any, error) {
		fv, err := f(v)
		if err != nil {
			return nil, err
		}
		return any(fv), nil
	}

	out, err := d.Traverse.TraverseFn(effect.Identity{}, asEffect, x)
	if err != nil {
		return err
	}
	got := out.(adt.Value)

	want, err := d.Map.MapFn(f, x)
	if err != nil {
		return err
	}
	if !got.Equal(want) {
		return fmt.Errorf("traverse under identity != map:\n%s", cmp.Diff(want.String(), got.String()))
	}
	return nil
}

// checkNaturality relates one traverse under the composed applicative to
// the composition of two traversals: traversing with Trace-then-Maybe at
// once must equal traversing with Trace, then traversing the carried value
// with Maybe.
func checkNaturality(d *engine.Derived, g *generator, x adt.Value) error {
	outer := effect.Trace{}
	inner := effect.Maybe{}
	composed := effect.Compose{Outer: outer, Inner: inner}

	f0 := addElem(g.rng.Intn(50) + 1)
	g0 := mulElem(g.rng.Intn(5) + 2)

	// f : a -> Trace b, logging each visit; g : b -> Maybe c.
	f := func(v adt.Value) (any, error) {
		fv, err := f0(v)
		if err != nil {
			return nil, err
		}
		return effect.Tell(v.String(), adt.Value(fv)), nil
	}
	gLeaf := func(v adt.Value) (any, error) {
		gv, err := g0(v)
		if err != nil {
			return nil, err
		}
		return effect.Just(adt.Value(gv)), nil
	}

	// composedLeaf : a -> Trace (Maybe c)
	var leafErr error
	composedLeaf := func(v adt.Value) (any, error) {
		fv, err := f(v)
		if err != nil {
			return nil, err
		}
		return outer.Map(func(b any) any {
			mv, err := gLeaf(b.(adt.Value))
			if err != nil {
				leafErr = err
				return effect.Nothing()
			}
			return mv
		}, fv), nil
	}

	lhsAny, err := d.Traverse.TraverseFn(composed, composedLeaf, x)
	if err != nil {
		return err
	}
	if leafErr != nil {
		return leafErr
	}
	lhs := lhsAny.(effect.Logged)

	firstAny, err := d.Traverse.TraverseFn(outer, f, x)
	if err != nil {
		return err
	}
	first := firstAny.(effect.Logged)

	var innerErr error
	rhsVal := outer.Map(func(tb any) any {
		out, err := d.Traverse.TraverseFn(inner, gLeaf, tb.(adt.Value))
		if err != nil {
			innerErr = err
			return effect.Nothing()
		}
		return out
	}, first).(effect.Logged)
	if innerErr != nil {
		return innerErr
	}

	if err := equalLogged(lhs, rhsVal); err != nil {
		return fmt.Errorf("composed traverse != traverse-then-traverse: %w", err)
	}
	return nil
}

func equalLogged(a, b effect.Logged) error {
	if diff := cmp.Diff(b.Log, a.Log); diff != "" {
		return fmt.Errorf("logs differ:\n%s", diff)
	}
	am, aok := a.Val.(effect.MaybeVal)
	bm, bok := b.Val.(effect.MaybeVal)
	if !aok || !bok {
		return fmt.Errorf("unexpected carried values %T, %T", a.Val, b.Val)
	}
	if am.Defined != bm.Defined {
		return fmt.Errorf("definedness differs: %v vs %v", am.Defined, bm.Defined)
	}
	if !am.Defined {
		return nil
	}
	av := am.Val.(adt.Value)
	bv := bm.Val.(adt.Value)
	if !av.Equal(bv) {
		return fmt.Errorf("values differ:\n%s", cmp.Diff(bv.String(), av.String()))
	}
	return nil
}
