package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martianoff/derive/internal/engine"
	"martianoff/derive/internal/lawcheck"
)

const declsYAML = `types:
  - name: Pair
    var: a
    constructors:
      - name: mk
        fields: [a, a]
  - name: Shape
    var: a
    constructors:
      - name: point
      - name: circle
        fields: [a]
      - name: holder
        fields: ["Option[a]"]
  - name: Wrap
    var: b
    constructors:
      - name: wrap
        fields: ["Pair[b]"]
`

func writeDecls(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDeriveFileProcessesInOrder(t *testing.T) {
	path := writeDecls(t, declsYAML)

	var names []string
	err := deriveFile(path, func(d *engine.Derived, r *lawcheck.Report) error {
		names = append(names, d.Decl.Name)
		assert.True(t, r.Passed(), "laws for %s: %v", d.Decl.Name, r.Err())
		return nil
	})
	require.NoError(t, err)

	// Wrap nests Pair, so file order matters and must be preserved.
	assert.Equal(t, []string{"Pair", "Shape", "Wrap"}, names)
}

func TestDeriveFileRejectsRecursiveDecl(t *testing.T) {
	path := writeDecls(t, `types:
  - name: Tree
    var: a
    constructors:
      - name: leaf
        fields: [a]
      - name: node
        fields: ["[]Tree[a]"]
`)

	err := deriveFile(path, func(*engine.Derived, *lawcheck.Report) error {
		t.Fatal("no result expected for a recursive declaration")
		return nil
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "recursive"))
}

func TestDeriveFileMissingFile(t *testing.T) {
	err := deriveFile(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}
