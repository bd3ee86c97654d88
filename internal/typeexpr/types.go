// Package typeexpr models the type expressions that appear in constructor
// fields: base type names, type-constructor applications, slices, and the
// designated type variable of the declaration under derivation.
package typeexpr

import (
	"strings"
)

// Type represents a structured field type expression.
type Type interface {
	String() string
	// BaseName returns the head name of the expression: the outermost type
	// constructor for applications, the element form for slices.
	BaseName() string
	// Occurs reports whether the named type variable occurs anywhere in the
	// expression.
	Occurs(name string) bool
}

// Basic represents an unapplied type name: a base type like "Nat" or the
// designated variable like "a".
type Basic struct {
	Name string
}

func (t Basic) String() string         { return t.Name }
func (t Basic) BaseName() string       { return t.Name }
func (t Basic) Occurs(name string) bool { return t.Name == name }

// Named represents a package-qualified type name.
type Named struct {
	Package string
	Name    string
}

func (t Named) String() string {
	if t.Package != "" {
		return t.Package + "." + t.Name
	}
	return t.Name
}
func (t Named) BaseName() string        { return t.String() }
func (t Named) Occurs(name string) bool { return false }

// Generic represents a type-constructor application like Option[a] or
// Either[E, a]. Params preserves argument order; the designated variable is
// only structurally transformable in the final position.
type Generic struct {
	Base   Type
	Params []Type
}

func (t Generic) String() string {
	var sb strings.Builder
	sb.WriteString(t.Base.String())
	sb.WriteByte('[')
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p != nil {
			sb.WriteString(p.String())
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
func (t Generic) BaseName() string { return t.Base.BaseName() }
func (t Generic) Occurs(name string) bool {
	if t.Base.Occurs(name) {
		return true
	}
	for _, p := range t.Params {
		if p.Occurs(name) {
			return true
		}
	}
	return false
}

// Slice represents a slice type []T. It behaves like an application of the
// builtin slice container to its element type.
type Slice struct {
	Elem Type
}

func (t Slice) String() string          { return "[]" + t.Elem.String() }
func (t Slice) BaseName() string        { return "[]" }
func (t Slice) Occurs(name string) bool { return t.Elem.Occurs(name) }

// Parse converts the textual form used in declaration files into a Type.
// The syntax is the Go-flavored one: "a", "Nat", "Option[a]",
// "Either[E, a]", "[]a", "pkg.Name".
func Parse(s string) Type {
	s = strings.TrimSpace(s)
	if s == "" {
		return Basic{}
	}
	if strings.HasPrefix(s, "[]") {
		return Slice{Elem: Parse(s[2:])}
	}
	if strings.Contains(s, "[") && strings.HasSuffix(s, "]") {
		idx := strings.Index(s, "[")
		base := Parse(s[:idx])
		paramsStr := s[idx+1 : len(s)-1]

		// Split by comma, respecting nested brackets
		var params []Type
		bracketCount := 0
		start := 0
		for i := 0; i < len(paramsStr); i++ {
			switch paramsStr[i] {
			case '[':
				bracketCount++
			case ']':
				bracketCount--
			case ',':
				if bracketCount == 0 {
					params = append(params, Parse(paramsStr[start:i]))
					start = i + 1
				}
			}
		}
		params = append(params, Parse(paramsStr[start:]))
		return Generic{Base: base, Params: params}
	}
	if idx := strings.LastIndex(s, "."); idx != -1 {
		return Named{Package: s[:idx], Name: s[idx+1:]}
	}
	return Basic{Name: s}
}
