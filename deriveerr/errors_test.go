package deriveerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationError(t *testing.T) {
	err := NewClassificationError("Weird", "mk", "x", "variable occurs in a non-final argument position")

	assert.Equal(t, TypeClassification, err.Type())
	assert.Contains(t, err.Error(), "[ClassificationError]")
	assert.Contains(t, err.Error(), "Weird.mk field x")
	assert.Contains(t, err.Error(), "non-final argument position")
}

func TestRecursionError(t *testing.T) {
	err := NewRecursionError("Tree", "node", "left")

	assert.Equal(t, TypeRecursion, err.Type())
	assert.Contains(t, err.Error(), "Tree.node field left")
	assert.Contains(t, err.Error(), "recursive field not supported")
}

func TestMissingCapabilityError(t *testing.T) {
	err := NewMissingCapabilityError("Holder", "mk", "v", "Fancy")

	assert.Equal(t, TypeMissingCapability, err.Type())
	assert.Equal(t, "Fancy", err.Capability)
	assert.Contains(t, err.Error(), `"Fancy"`)
}

func TestNonExhaustiveError(t *testing.T) {
	err := NewNonExhaustiveError("Shape", "Pentagon")

	assert.Equal(t, TypeNonExhaustive, err.Type())
	assert.Contains(t, err.Error(), "Shape.Pentagon")
}

func TestErrorWithoutLocation(t *testing.T) {
	err := NewDeclarationError("", "no constructors")

	assert.Equal(t, "[DeclarationError] no constructors", err.Error())
}

func TestDeriveErrorInterface(t *testing.T) {
	var _ DeriveError = NewClassificationError("T", "c", "f", "m")
	var _ DeriveError = NewRecursionError("T", "c", "f")
	var _ DeriveError = NewMissingCapabilityError("T", "c", "f", "F")
	var _ DeriveError = NewNonExhaustiveError("T", "c")
	var _ DeriveError = NewMissingCapabilityLawError("T", "c", "f", "F")
	var _ DeriveError = NewDeclarationError("T", "m")
}
