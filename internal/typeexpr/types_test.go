package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"a", Basic{Name: "a"}},
		{"Nat", Basic{Name: "Nat"}},
		{"Option[a]", Generic{Base: Basic{Name: "Option"}, Params: []Type{Basic{Name: "a"}}}},
		{"Either[E, a]", Generic{Base: Basic{Name: "Either"}, Params: []Type{Basic{Name: "E"}, Basic{Name: "a"}}}},
		{"Option[Option[a]]", Generic{
			Base:   Basic{Name: "Option"},
			Params: []Type{Generic{Base: Basic{Name: "Option"}, Params: []Type{Basic{Name: "a"}}}},
		}},
		{"[]a", Slice{Elem: Basic{Name: "a"}}},
		{"[]Option[a]", Slice{Elem: Generic{Base: Basic{Name: "Option"}, Params: []Type{Basic{Name: "a"}}}}},
		{"pkg.Name", Named{Package: "pkg", Name: "Name"}},
		{" Option[ a ] ", Generic{Base: Basic{Name: "Option"}, Params: []Type{Basic{Name: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestString(t *testing.T) {
	tests := []string{
		"a",
		"Option[a]",
		"Either[E, a]",
		"Option[Option[a]]",
		"[]a",
		"pkg.Name",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, s, Parse(s).String())
		})
	}
}

func TestOccurs(t *testing.T) {
	assert.True(t, Parse("a").Occurs("a"))
	assert.False(t, Parse("Nat").Occurs("a"))
	assert.True(t, Parse("Option[a]").Occurs("a"))
	assert.False(t, Parse("Option[Nat]").Occurs("a"))
	assert.True(t, Parse("Either[E, a]").Occurs("a"))
	assert.True(t, Parse("[]Option[a]").Occurs("a"))
	assert.False(t, Parse("pkg.Name").Occurs("a"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Option", Parse("Option[a]").BaseName())
	assert.Equal(t, "[]", Parse("[]a").BaseName())
	assert.Equal(t, "Tree", Parse("Tree[a]").BaseName())
}
