package modelc

import (
	"errors"
	"fmt"
	"strings"
)

// Group sentinels. Every DeclarationError matches ErrInvalidDeclaration and
// every RelationshipError matches ErrInvalidRelationship.
var (
	// ErrInvalidDeclaration is the group sentinel for per-entity and per-field
	// declaration errors.
	ErrInvalidDeclaration = errors.New("modelc: invalid declaration")

	// ErrInvalidRelationship is the group sentinel for per-edge errors.
	ErrInvalidRelationship = errors.New("modelc: invalid relationship")

	// ErrValidationFailed is matched by ValidationError.
	ErrValidationFailed = errors.New("modelc: validation failed")
)

// Declaration error kinds.
var (
	ErrDuplicateEntityName     = errors.New("duplicate entity name")
	ErrInvalidEntityName       = errors.New("invalid entity name")
	ErrDuplicateFieldName      = errors.New("duplicate field name")
	ErrInvalidFieldName        = errors.New("invalid field name")
	ErrUnknownScalarKind       = errors.New("unknown scalar kind")
	ErrEmptyEnumVariantSet     = errors.New("empty enum variant set")
	ErrEmptyCustomType         = errors.New("empty custom type")
	ErrInvalidDefaultValue     = errors.New("invalid default value")
	ErrUnknownRelationshipKind = errors.New("unknown relationship kind")
	ErrInvalidIdentifierField  = errors.New("invalid identifier field")
)

// Relationship error kinds.
var (
	ErrUnknownRelationshipTarget       = errors.New("unknown relationship target")
	ErrForeignKeyTypeConflict          = errors.New("foreign-key type conflict")
	ErrIncompatibleRelationshipPairing = errors.New("incompatible relationship pairing")
	ErrAmbiguousRelationshipName       = errors.New("ambiguous relationship name")
	ErrIdentifierArityMismatch         = errors.New("identifier arity mismatch")
	ErrManyToManyRelationNameMismatch  = errors.New("many-to-many relation name mismatch")
	ErrDuplicateManyToManyRelationName = errors.New("duplicate many-to-many relation name")
)

// DeclarationError reports a fatal problem with one entity or field
// declaration.
type DeclarationError struct {
	Kind    error  // one of the declaration error kinds
	Entity  string // offending entity
	Field   string // offending field, if any
	Message string
}

// NewDeclarationError returns a DeclarationError of the given kind.
func NewDeclarationError(kind error, entity, field, format string, args ...any) *DeclarationError {
	return &DeclarationError{
		Kind:    kind,
		Entity:  entity,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error returns the error string.
func (e *DeclarationError) Error() string {
	var b strings.Builder
	b.WriteString("modelc: ")
	b.WriteString(e.Kind.Error())
	if e.Entity != "" {
		fmt.Fprintf(&b, ": entity %q", e.Entity)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether target is the error kind or ErrInvalidDeclaration.
func (e *DeclarationError) Is(target error) bool {
	return target == ErrInvalidDeclaration || target == e.Kind
}

// IsDeclarationError returns true if the error is a DeclarationError.
func IsDeclarationError(err error) bool {
	if err == nil {
		return false
	}
	var e *DeclarationError
	return errors.As(err, &e)
}

// RelationshipError reports a fatal problem with one relationship edge.
type RelationshipError struct {
	Kind    error  // one of the relationship error kinds
	Entity  string // entity declaring the edge
	Edge    string // edge name
	Target  string // target entity name as declared
	Message string
}

// NewRelationshipError returns a RelationshipError of the given kind.
func NewRelationshipError(kind error, entity, edge, target, format string, args ...any) *RelationshipError {
	return &RelationshipError{
		Kind:    kind,
		Entity:  entity,
		Edge:    edge,
		Target:  target,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error returns the error string.
func (e *RelationshipError) Error() string {
	var b strings.Builder
	b.WriteString("modelc: ")
	b.WriteString(e.Kind.Error())
	if e.Entity != "" {
		fmt.Fprintf(&b, ": edge %s.%s", e.Entity, e.Edge)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " -> %s", e.Target)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether target is the error kind or ErrInvalidRelationship.
func (e *RelationshipError) Is(target error) bool {
	return target == ErrInvalidRelationship || target == e.Kind
}

// IsRelationshipError returns true if the error is a RelationshipError.
func IsRelationshipError(err error) bool {
	if err == nil {
		return false
	}
	var e *RelationshipError
	return errors.As(err, &e)
}

// Reason is a single violation found by the validator.
type Reason struct {
	Entity  string
	Field   string
	Edge    string
	Message string
}

// String returns the reason prefixed by its location.
func (r *Reason) String() string {
	var loc string
	switch {
	case r.Edge != "":
		loc = r.Entity + "." + r.Edge
	case r.Field != "":
		loc = r.Entity + "." + r.Field
	default:
		loc = r.Entity
	}
	if loc == "" {
		return r.Message
	}
	return loc + ": " + r.Message
}

// ValidationError aggregates every violation found in one validation pass.
type ValidationError struct {
	Reasons []*Reason
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "modelc: validation failed with %d error(s)", len(e.Reasons))
	for _, r := range e.Reasons {
		b.WriteString("\n  - ")
		b.WriteString(r.String())
	}
	return b.String()
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Add appends a reason.
func (e *ValidationError) Add(r *Reason) {
	e.Reasons = append(e.Reasons, r)
}

// Addf appends a reason built from a format string.
func (e *ValidationError) Addf(entity, field, edge, format string, args ...any) {
	e.Add(&Reason{Entity: entity, Field: field, Edge: edge, Message: fmt.Sprintf(format, args...)})
}

// Err returns e if any reason was recorded, nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Reasons) == 0 {
		return nil
	}
	return e
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}
