package schema

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/chartopts/internal/domain/validate"
)

// ValidationError is re-exported so callers of this package need a single import.
type ValidationError = validate.ValidationError

// UnresolvedUnionTypeError indicates a value matched none of a union field's variants.
type UnresolvedUnionTypeError struct {
	Field string
	Value any
	Union string
}

func (e *UnresolvedUnionTypeError) Error() string {
	return fmt.Sprintf("unresolved union type for %s: %#v does not match any %s variant", e.Field, e.Value, e.Union)
}

// NewUnresolvedUnionTypeError creates a new unresolved union error.
func NewUnresolvedUnionTypeError(field, union string, value any) *UnresolvedUnionTypeError {
	return &UnresolvedUnionTypeError{Field: field, Union: union, Value: value}
}

// UnsupportedDimensionalityError indicates a tuple length with no mapping for the point type.
type UnsupportedDimensionalityError struct {
	Type    string
	Length  int
	Allowed []int
}

func (e *UnsupportedDimensionalityError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("unsupported dimensionality %d for %s: tuples are not accepted", e.Length, e.Type)
	}
	allowed := make([]string, len(e.Allowed))
	for i, n := range e.Allowed {
		allowed[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("unsupported dimensionality %d for %s (accepts %s)", e.Length, e.Type, strings.Join(allowed, ", "))
}

// UncoercibleElementError indicates a collection element of a shape no point type accepts.
type UncoercibleElementError struct {
	Type  string
	Index int
	Value any
}

func (e *UncoercibleElementError) Error() string {
	return fmt.Sprintf("cannot coerce element %d (%T) to %s", e.Index, e.Value, e.Type)
}

// SchemaConflictError indicates two field declarations that cannot be merged.
type SchemaConflictError struct {
	Schema string
	Field  string
	Reason string
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("schema conflict in %s on field %s: %s", e.Schema, e.Field, e.Reason)
}

// NewSchemaConflictError creates a new schema conflict error.
func NewSchemaConflictError(schema, field, reason string) *SchemaConflictError {
	return &SchemaConflictError{Schema: schema, Field: field, Reason: reason}
}

// UnknownFieldError indicates keys that a schema does not declare.
type UnknownFieldError struct {
	Schema string
	Keys   []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field(s) for %s: %s", e.Schema, strings.Join(e.Keys, ", "))
}

// FieldError attributes a nested failure to the field being assigned.
type FieldError struct {
	Path  string
	Cause error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Cause)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}

func wrapField(name string, err error) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FieldError); ok {
		sep := "."
		if strings.HasPrefix(fe.Path, "[") {
			sep = ""
		}
		return &FieldError{Path: name + sep + fe.Path, Cause: fe.Cause}
	}
	return &FieldError{Path: name, Cause: err}
}

// AtIndex attributes err to element i of a collection.
func AtIndex(i int, err error) error {
	return wrapField(fmt.Sprintf("[%d]", i), err)
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, received any, reason string) *ValidationError {
	return validate.NewValidationError(field, received, reason)
}
