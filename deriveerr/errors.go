// Package deriveerr defines the error taxonomy for the derivation engine.
//
// Every error is fatal to the derivation request that raised it: the engine
// never emits a partial map/traverse. Errors carry the offending type,
// constructor and field so callers can point at the declaration site.
package deriveerr

import "fmt"

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeClassification       ErrorType = "ClassificationError"
	TypeRecursion            ErrorType = "RecursionError"
	TypeMissingCapability    ErrorType = "MissingCapabilityError"
	TypeNonExhaustive        ErrorType = "NonExhaustiveError"
	TypeMissingCapabilityLaw ErrorType = "MissingCapabilityLawError"
	TypeDeclaration          ErrorType = "DeclarationError"
)

// DeriveError is the interface for all derivation errors.
type DeriveError interface {
	error
	Type() ErrorType
}

// BaseError provides common fields for derivation errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType

	// Location of the offending declaration element; any of these may be
	// empty when the error is not tied to a specific site.
	TypeName string
	Ctor     string
	Field    string
}

func (e *BaseError) Error() string {
	if loc := e.location(); loc != "" {
		return fmt.Sprintf("[%s] %s: %s", e.ErrType, loc, e.Msg)
	}
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

func (e *BaseError) location() string {
	switch {
	case e.TypeName != "" && e.Ctor != "" && e.Field != "":
		return fmt.Sprintf("%s.%s field %s", e.TypeName, e.Ctor, e.Field)
	case e.TypeName != "" && e.Ctor != "":
		return fmt.Sprintf("%s.%s", e.TypeName, e.Ctor)
	case e.TypeName != "":
		return e.TypeName
	}
	return ""
}

// ClassificationError reports a designated variable occurring in a position
// that is not structurally transformable (anywhere other than the final
// argument of an application chain).
type ClassificationError struct {
	BaseError
}

// RecursionError reports a direct self-reference in field position. The
// engine does not attempt a termination argument for recursive fields.
type RecursionError struct {
	BaseError
}

// MissingCapabilityError reports a nested outer type that exposes no
// map/traverse capability.
type MissingCapabilityError struct {
	BaseError
	Capability string // the outer type name that was looked up
}

// NonExhaustiveError reports a value whose constructor is not part of the
// declaration being dispatched over. This is an internal invariant
// violation, never a user error.
type NonExhaustiveError struct {
	BaseError
}

// MissingCapabilityLawError reports law derivation blocked because a nested
// capability's own laws were never established.
type MissingCapabilityLawError struct {
	BaseError
	Capability string
}

// DeclarationError reports an ill-formed TypeDecl (empty name, duplicate
// constructor, unparsable field type).
type DeclarationError struct {
	BaseError
}

// NewClassificationError creates a ClassificationError for a field site.
func NewClassificationError(typeName, ctor, field, msg string) *ClassificationError {
	return &ClassificationError{
		BaseError: BaseError{
			Msg:      msg,
			ErrType:  TypeClassification,
			TypeName: typeName,
			Ctor:     ctor,
			Field:    field,
		},
	}
}

// NewRecursionError creates a RecursionError for a field site.
func NewRecursionError(typeName, ctor, field string) *RecursionError {
	return &RecursionError{
		BaseError: BaseError{
			Msg:      "recursive field not supported",
			ErrType:  TypeRecursion,
			TypeName: typeName,
			Ctor:     ctor,
			Field:    field,
		},
	}
}

// NewMissingCapabilityError creates a MissingCapabilityError for a field
// whose outer type has no registered capability.
func NewMissingCapabilityError(typeName, ctor, field, capability string) *MissingCapabilityError {
	return &MissingCapabilityError{
		BaseError: BaseError{
			Msg:      fmt.Sprintf("no map/traverse capability registered for %q", capability),
			ErrType:  TypeMissingCapability,
			TypeName: typeName,
			Ctor:     ctor,
			Field:    field,
		},
		Capability: capability,
	}
}

// NewNonExhaustiveError creates a NonExhaustiveError for an unexpected
// constructor tag.
func NewNonExhaustiveError(typeName, ctor string) *NonExhaustiveError {
	return &NonExhaustiveError{
		BaseError: BaseError{
			Msg:      "constructor dispatch is not exhaustive",
			ErrType:  TypeNonExhaustive,
			TypeName: typeName,
			Ctor:     ctor,
		},
	}
}

// NewMissingCapabilityLawError creates a MissingCapabilityLawError for a
// nested capability whose laws were never checked.
func NewMissingCapabilityLawError(typeName, ctor, field, capability string) *MissingCapabilityLawError {
	return &MissingCapabilityLawError{
		BaseError: BaseError{
			Msg:      fmt.Sprintf("laws of nested capability %q were never established", capability),
			ErrType:  TypeMissingCapabilityLaw,
			TypeName: typeName,
			Ctor:     ctor,
			Field:    field,
		},
		Capability: capability,
	}
}

// NewDeclarationError creates a DeclarationError.
func NewDeclarationError(typeName, msg string) *DeclarationError {
	return &DeclarationError{
		BaseError: BaseError{
			Msg:      msg,
			ErrType:  TypeDeclaration,
			TypeName: typeName,
		},
	}
}
