package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martianoff/derive/adt"
	"martianoff/derive/deriveerr"
	"martianoff/derive/effect"
	"martianoff/derive/internal/decl"
	"martianoff/derive/internal/registry"
)

// newTestEngine returns an engine over a bootstrapped default registry with
// the given extra declarations registered.
func newTestEngine(t *testing.T, decls ...decl.TypeDecl) *Engine {
	t.Helper()
	reg := registry.Default()
	require.NoError(t, Bootstrap(reg))
	for _, d := range decls {
		require.NoError(t, reg.RegisterDecl(d))
	}
	return New(reg)
}

func double(v adt.Value) (adt.Value, error) {
	return adt.Elem{V: v.(adt.Elem).V.(int) * 2}, nil
}

// logDouble doubles an element inside the Trace effect, logging the input.
func logDouble(v adt.Value) (any, error) {
	e := v.(adt.Elem)
	return effect.Tell(fmt.Sprintf("f(%v)", e.V), adt.Value(adt.Elem{V: e.V.(int) * 2})), nil
}

func TestDeriveMapPair(t *testing.T) {
	e := newTestEngine(t, decl.New("Pair", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"a", "a"}}))

	d, err := e.Derive("Pair")
	require.NoError(t, err)

	got, err := d.Map.MapFn(double, adt.NewCon("Pair", "mk", adt.Elem{V: 1}, adt.Elem{V: 2}))
	require.NoError(t, err)
	assert.True(t, adt.NewCon("Pair", "mk", adt.Elem{V: 2}, adt.Elem{V: 4}).Equal(got))
}

func TestDeriveMapKeepsAbsentField(t *testing.T) {
	e := newTestEngine(t, decl.New("Box", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"a", "Nat"}}))

	d, err := e.Derive("Box")
	require.NoError(t, err)

	got, err := d.Map.MapFn(double, adt.NewCon("Box", "mk", adt.Elem{V: 3}, adt.Lit{V: 5}))
	require.NoError(t, err)
	assert.True(t, adt.NewCon("Box", "mk", adt.Elem{V: 6}, adt.Lit{V: 5}).Equal(got))
}

func TestDeriveTraversePairSequencesLeftToRight(t *testing.T) {
	e := newTestEngine(t, decl.New("Pair", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"a", "a"}}))

	d, err := e.Derive("Pair")
	require.NoError(t, err)

	out, err := d.Traverse.TraverseFn(effect.Trace{}, logDouble,
		adt.NewCon("Pair", "mk", adt.Elem{V: 1}, adt.Elem{V: 2}))
	require.NoError(t, err)

	logged := out.(effect.Logged)
	assert.Equal(t, []string{"f(1)", "f(2)"}, logged.Log)
	assert.True(t, adt.NewCon("Pair", "mk", adt.Elem{V: 2}, adt.Elem{V: 4}).Equal(logged.Val.(adt.Value)))
}

func TestDeriveTraverseSkipsAbsentFieldEffects(t *testing.T) {
	e := newTestEngine(t, decl.New("Box", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"a", "Nat"}}))

	d, err := e.Derive("Box")
	require.NoError(t, err)

	out, err := d.Traverse.TraverseFn(effect.Trace{}, logDouble,
		adt.NewCon("Box", "mk", adt.Elem{V: 3}, adt.Lit{V: 5}))
	require.NoError(t, err)

	logged := out.(effect.Logged)
	assert.Equal(t, []string{"f(3)"}, logged.Log, "only the element field's effect is sequenced")
	assert.True(t, adt.NewCon("Box", "mk", adt.Elem{V: 6}, adt.Lit{V: 5}).Equal(logged.Val.(adt.Value)))
}

func TestDeriveNestedField(t *testing.T) {
	e := newTestEngine(t, decl.New("Holder", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"Option[a]"}}))

	d, err := e.Derive("Holder")
	require.NoError(t, err)

	some := adt.NewCon("Option", "some", adt.Elem{V: 10})
	got, err := d.Map.MapFn(double, adt.NewCon("Holder", "mk", some))
	require.NoError(t, err)
	want := adt.NewCon("Holder", "mk", adt.NewCon("Option", "some", adt.Elem{V: 20}))
	assert.True(t, want.Equal(got))

	none := adt.NewCon("Option", "none")
	got, err = d.Map.MapFn(double, adt.NewCon("Holder", "mk", none))
	require.NoError(t, err)
	assert.True(t, adt.NewCon("Holder", "mk", none).Equal(got))
}

func TestDeriveDeeplyNestedField(t *testing.T) {
	e := newTestEngine(t, decl.New("Deep", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"Option[[]a]"}}))

	d, err := e.Derive("Deep")
	require.NoError(t, err)

	v := adt.NewCon("Deep", "mk",
		adt.NewCon("Option", "some", adt.NewList(adt.Elem{V: 1}, adt.Elem{V: 2})))
	got, err := d.Map.MapFn(double, v)
	require.NoError(t, err)

	want := adt.NewCon("Deep", "mk",
		adt.NewCon("Option", "some", adt.NewList(adt.Elem{V: 2}, adt.Elem{V: 4})))
	assert.True(t, want.Equal(got))
}

func TestDeriveNestedTraverseOrder(t *testing.T) {
	e := newTestEngine(t, decl.New("Wrap", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"[]a", "a"}}))

	d, err := e.Derive("Wrap")
	require.NoError(t, err)

	v := adt.NewCon("Wrap", "mk", adt.NewList(adt.Elem{V: 1}, adt.Elem{V: 2}), adt.Elem{V: 3})
	out, err := d.Traverse.TraverseFn(effect.Trace{}, logDouble, v)
	require.NoError(t, err)

	logged := out.(effect.Logged)
	assert.Equal(t, []string{"f(1)", "f(2)", "f(3)"}, logged.Log)
}

func TestDeriveDispatchesAllConstructors(t *testing.T) {
	e := newTestEngine(t, decl.New("Shape", "a",
		decl.CtorSpec{Name: "point"},
		decl.CtorSpec{Name: "circle", Fields: []string{"a"}},
		decl.CtorSpec{Name: "segment", Fields: []string{"a", "a"}}))

	d, err := e.Derive("Shape")
	require.NoError(t, err)

	point := adt.NewCon("Shape", "point")
	got, err := d.Map.MapFn(double, point)
	require.NoError(t, err)
	assert.True(t, point.Equal(got))

	got, err = d.Map.MapFn(double, adt.NewCon("Shape", "segment", adt.Elem{V: 1}, adt.Elem{V: 2}))
	require.NoError(t, err)
	assert.True(t, adt.NewCon("Shape", "segment", adt.Elem{V: 2}, adt.Elem{V: 4}).Equal(got))
}

func TestDeriveTraverseZeroFieldConstructor(t *testing.T) {
	e := newTestEngine(t, decl.New("Shape", "a",
		decl.CtorSpec{Name: "point"},
		decl.CtorSpec{Name: "circle", Fields: []string{"a"}}))

	d, err := e.Derive("Shape")
	require.NoError(t, err)

	out, err := d.Traverse.TraverseFn(effect.Trace{}, logDouble, adt.NewCon("Shape", "point"))
	require.NoError(t, err)

	logged := out.(effect.Logged)
	assert.Empty(t, logged.Log)
	assert.True(t, adt.NewCon("Shape", "point").Equal(logged.Val.(adt.Value)))
}

func TestDispatchUnknownConstructorIsNonExhaustive(t *testing.T) {
	e := newTestEngine(t, decl.New("Shape", "a",
		decl.CtorSpec{Name: "point"}))

	d, err := e.Derive("Shape")
	require.NoError(t, err)

	_, err = d.Map.MapFn(double, adt.NewCon("Shape", "pentagon"))
	require.Error(t, err)

	var nerr *deriveerr.NonExhaustiveError
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, err.Error(), "Shape.pentagon")
}

func TestDeriveRejectsNonFinalVariablePosition(t *testing.T) {
	e := newTestEngine(t, decl.New("Weird", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"Either[a, Nat]"}}))

	_, err := e.Derive("Weird")
	require.Error(t, err)

	var cerr *deriveerr.ClassificationError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "Weird.mk field 1 (Either[a, Nat])")
}

func TestDeriveRejectsRecursiveField(t *testing.T) {
	e := newTestEngine(t, decl.New("Tree", "a",
		decl.CtorSpec{Name: "leaf", Fields: []string{"a"}},
		decl.CtorSpec{Name: "node", Fields: []string{"Tree[a]", "Tree[a]"}}))

	_, err := e.Derive("Tree")
	require.Error(t, err)

	var rerr *deriveerr.RecursionError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, err.Error(), "Tree.node")
}

func TestDeriveMissingCapability(t *testing.T) {
	e := newTestEngine(t, decl.New("Holder", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"Fancy[a]"}}))

	_, err := e.Derive("Holder")
	require.Error(t, err)

	var merr *deriveerr.MissingCapabilityError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "Fancy", merr.Capability)
}

func TestDeriveMissingCapabilityLaw(t *testing.T) {
	reg := registry.Default()
	require.NoError(t, Bootstrap(reg))
	e := New(reg)

	// Derive and install Inner without marking its laws checked, then
	// derive a type nesting it.
	require.NoError(t, reg.RegisterDecl(decl.New("Inner", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"a"}})))
	inner, err := e.Derive("Inner")
	require.NoError(t, err)
	e.Install(inner)

	require.NoError(t, reg.RegisterDecl(decl.New("Outer", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"Inner[a]"}})))
	_, err = e.Derive("Outer")
	require.Error(t, err)

	var lerr *deriveerr.MissingCapabilityLawError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "Inner", lerr.Capability)

	// Once the laws are established the derivation goes through.
	reg.MarkLawsChecked("Inner")
	_, err = e.Derive("Outer")
	assert.NoError(t, err)
}

func TestDeriveUnknownDeclaration(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Derive("Ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestDeriveIsDeterministic(t *testing.T) {
	e := newTestEngine(t, decl.New("Pair", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"a", "a"}}))

	d1, err := e.Derive("Pair")
	require.NoError(t, err)
	d2, err := e.Derive("Pair")
	require.NoError(t, err)

	require.Len(t, d1.Map.Equations, 1)
	assert.Equal(t, d1.Map.Equations[0].String(), d2.Map.Equations[0].String())
	assert.NotEqual(t, d1.RequestID, d2.RequestID)
}

func TestInstallExposesCapability(t *testing.T) {
	reg := registry.Default()
	require.NoError(t, Bootstrap(reg))
	e := New(reg)

	require.NoError(t, reg.RegisterDecl(decl.New("Pair", "a",
		decl.CtorSpec{Name: "mk", Fields: []string{"a", "a"}})))
	d, err := e.Derive("Pair")
	require.NoError(t, err)
	e.Install(d)

	_, ok := reg.LookupInstance("Pair", registry.KindMap)
	assert.True(t, ok)
	_, ok = reg.LookupInstance("Pair", registry.KindTraverse)
	assert.True(t, ok)

	cap, ok := reg.LookupCapability("Pair")
	require.True(t, ok)
	assert.False(t, cap.LawsChecked)
}

func TestBootstrapDerivesPreludeContainers(t *testing.T) {
	reg := registry.Default()
	require.NoError(t, Bootstrap(reg))

	for _, name := range []string{"Option", "Either"} {
		cap, ok := reg.LookupCapability(name)
		require.True(t, ok, name)
		assert.True(t, cap.LawsChecked, name)
	}
}
