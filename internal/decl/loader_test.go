package decl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDecls = `
types:
  - name: Pair
    var: a
    constructors:
      - name: mk
        fields: [a, a]
  - name: Box
    var: a
    constructors:
      - name: mk
        fields: [a, Nat]
  - name: NestedHolder
    var: a
    constructors:
      - name: mk
        fields: ["Option[a]"]
`

func TestLoad(t *testing.T) {
	decls, err := Load(strings.NewReader(sampleDecls))
	require.NoError(t, err)
	require.Len(t, decls, 3)

	assert.Equal(t, "Pair", decls[0].Name)
	assert.Equal(t, "a", decls[0].Var)
	assert.Equal(t, "Nat", decls[1].Ctors[0].Fields[1].Type.String())
	assert.Equal(t, "Option[a]", decls[2].Ctors[0].Fields[0].Type.String())
}

func TestLoadRejectsInvalidDecl(t *testing.T) {
	_, err := Load(strings.NewReader(`
types:
  - name: Broken
    var: a
    constructors: []
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no constructors")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(strings.NewReader("types: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse declarations")
}
