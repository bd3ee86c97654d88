package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martianoff/derive/deriveerr"
	"martianoff/derive/internal/typeexpr"
)

func mustClassify(t *testing.T, expr string) *Classification {
	t.Helper()
	c, err := classify(typeexpr.Parse(expr), "a", "Tree", site{typeName: "Tree", ctor: "mk", field: "1"})
	require.NoError(t, err)
	return c
}

func TestClassifyExact(t *testing.T) {
	c := mustClassify(t, "a")
	assert.Equal(t, Exact, c.Kind)
}

func TestClassifyAbsent(t *testing.T) {
	for _, expr := range []string{"Nat", "Option[Nat]", "pkg.Name", "[]Nat", "b"} {
		t.Run(expr, func(t *testing.T) {
			assert.Equal(t, Absent, mustClassify(t, expr).Kind)
		})
	}
}

func TestClassifyAbsentSelfReferenceWithoutVariable(t *testing.T) {
	// The occurs check runs before the self-reference check, so a
	// monomorphic self-reference classifies Absent.
	assert.Equal(t, Absent, mustClassify(t, "Tree").Kind)
}

func TestClassifyNested(t *testing.T) {
	c := mustClassify(t, "Option[a]")
	require.Equal(t, Nested, c.Kind)
	assert.Equal(t, "Option", c.Outer)
	assert.Equal(t, Exact, c.Inner.Kind)
}

func TestClassifyNestedChain(t *testing.T) {
	c := mustClassify(t, "Option[[]a]")
	require.Equal(t, Nested, c.Kind)
	assert.Equal(t, "Option", c.Outer)
	require.Equal(t, Nested, c.Inner.Kind)
	assert.Equal(t, "[]", c.Inner.Outer)
	assert.Equal(t, Exact, c.Inner.Inner.Kind)
}

func TestClassifyNestedFinalArgumentOnly(t *testing.T) {
	c := mustClassify(t, "Either[E, a]")
	require.Equal(t, Nested, c.Kind)
	assert.Equal(t, "Either", c.Outer)
	assert.Equal(t, Exact, c.Inner.Kind)
}

func TestClassifyRejectsNonFinalPosition(t *testing.T) {
	_, err := classify(typeexpr.Parse("Either[a, Nat]"), "a", "Tree", site{typeName: "Tree", ctor: "mk", field: "1 (Either[a, Nat])"})
	require.Error(t, err)

	var cerr *deriveerr.ClassificationError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "non-final argument position")
	assert.Contains(t, err.Error(), "1 (Either[a, Nat])")
}

func TestClassifyRejectsVariableInHeadPosition(t *testing.T) {
	_, err := classify(typeexpr.Parse("a[Nat]"), "a", "Tree", site{typeName: "Tree", ctor: "mk", field: "1"})
	require.Error(t, err)

	var cerr *deriveerr.ClassificationError
	assert.ErrorAs(t, err, &cerr)
}

func TestClassifyRejectsDirectRecursion(t *testing.T) {
	_, err := classify(typeexpr.Parse("Tree[a]"), "a", "Tree", site{typeName: "Tree", ctor: "node", field: "1"})
	require.Error(t, err)

	var rerr *deriveerr.RecursionError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, err.Error(), "recursive field not supported")
}

func TestClassifyRejectsIndirectRecursionThroughContainer(t *testing.T) {
	// Tree[a] nested inside a derivable container is rejected the same way
	// as a direct self-reference.
	_, err := classify(typeexpr.Parse("[]Tree[a]"), "a", "Tree", site{typeName: "Tree", ctor: "node", field: "1"})
	require.Error(t, err)

	var rerr *deriveerr.RecursionError
	assert.ErrorAs(t, err, &rerr)
}
