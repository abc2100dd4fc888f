// Package validate provides the scalar validators every option field is built on.
//
// Each validator turns an arbitrary external value into a typed value. The
// boolean result reports whether a value was produced: it is false only when the
// input was empty and allowEmpty was set. Validators never mutate their input.
package validate

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ValidationError indicates a value could not be coerced to a field's declared type.
type ValidationError struct {
	Field    string // Field being assigned, empty when validating a bare value
	Received any    // Value as it was received
	Reason   string // Why the value was rejected
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid value %#v: %s", e.Received, e.Reason)
	}
	return fmt.Sprintf("invalid value for %s: %#v: %s", e.Field, e.Received, e.Reason)
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, received any, reason string) *ValidationError {
	return &ValidationError{
		Field:    field,
		Received: received,
		Reason:   reason,
	}
}

// WithField returns a copy of the error attributed to field.
func (e *ValidationError) WithField(field string) *ValidationError {
	c := *e
	c.Field = field
	return &c
}

type bounds struct {
	min *float64
	max *float64
}

// Option constrains a numeric validator.
type Option func(*bounds)

// Minimum rejects values below minimum.
func Minimum(minimum float64) Option {
	return func(b *bounds) { b.min = &minimum }
}

// Maximum rejects values above maximum.
func Maximum(maximum float64) Option {
	return func(b *bounds) { b.max = &maximum }
}

// IsEmpty reports whether v is nil, an empty string, or an empty slice or map.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func empty(v any, allowEmpty bool) (bool, error) {
	if !IsEmpty(v) {
		return false, nil
	}
	if allowEmpty {
		return true, nil
	}
	return true, NewValidationError("", v, "value is required")
}

// Numeric validates a number. Numeric strings are accepted; booleans, NaN and
// infinities are not.
func Numeric(v any, allowEmpty bool, opts ...Option) (float64, bool, error) {
	if isEmpty, err := empty(v, allowEmpty); isEmpty {
		return 0, false, err
	}
	if _, ok := v.(bool); ok {
		return 0, false, NewValidationError("", v, "expected a number, got a boolean")
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false, NewValidationError("", v, "expected a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, NewValidationError("", v, "expected a finite number")
	}

	var b bounds
	for _, opt := range opts {
		opt(&b)
	}
	if b.min != nil && f < *b.min {
		return 0, false, NewValidationError("", v, fmt.Sprintf("must be at least %g", *b.min))
	}
	if b.max != nil && f > *b.max {
		return 0, false, NewValidationError("", v, fmt.Sprintf("must be at most %g", *b.max))
	}
	return f, true, nil
}

const (
	// intLimit is the smallest float64 above math.MaxInt.
	intLimit = -float64(math.MinInt)
	// maxTimestamp bounds JavaScript dates, in milliseconds either side of the epoch.
	maxTimestamp = 8.64e15
)

// Integer validates a whole number.
func Integer(v any, allowEmpty bool, opts ...Option) (int, bool, error) {
	f, ok, err := Numeric(v, allowEmpty, opts...)
	if err != nil || !ok {
		return 0, ok, err
	}
	if f != math.Trunc(f) {
		return 0, false, NewValidationError("", v, "expected an integer")
	}
	if f < math.MinInt || f >= intLimit {
		return 0, false, NewValidationError("", v, "integer out of range")
	}
	return int(f), true, nil
}

// String validates a string. Only strings, byte slices and fmt.Stringers are
// accepted; numbers are not silently formatted.
func String(v any, allowEmpty bool) (string, bool, error) {
	if isEmpty, err := empty(v, allowEmpty); isEmpty {
		return "", false, err
	}
	switch s := v.(type) {
	case string:
		return s, true, nil
	case []byte:
		return string(s), true, nil
	case fmt.Stringer:
		return s.String(), true, nil
	}
	return "", false, NewValidationError("", v, "expected a string")
}

// Bool validates a boolean. "true"/"false" strings and 0/1 are accepted.
func Bool(v any, allowEmpty bool) (bool, bool, error) {
	if v == nil || v == "" {
		if allowEmpty {
			return false, false, nil
		}
		return false, false, NewValidationError("", v, "value is required")
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false, NewValidationError("", v, "expected a boolean")
	}
	return b, true, nil
}

// Enum validates that v is one of allowed. Matching is case-sensitive.
func Enum(v any, allowed []string, allowEmpty bool) (string, bool, error) {
	s, ok, err := String(v, allowEmpty)
	if err != nil || !ok {
		return "", ok, err
	}
	if !slices.Contains(allowed, s) {
		return "", false, NewValidationError("", v, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
	}
	return s, true, nil
}

// Date validates a calendar date, truncated to midnight UTC.
func Date(v any, allowEmpty bool) (time.Time, bool, error) {
	t, ok, err := Datetime(v, allowEmpty)
	if err != nil || !ok {
		return time.Time{}, ok, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true, nil
}

// Datetime validates a point in time. Strings are parsed in any layout cast
// understands; numbers are JavaScript timestamps in milliseconds.
func Datetime(v any, allowEmpty bool) (time.Time, bool, error) {
	if isEmpty, err := empty(v, allowEmpty); isEmpty {
		return time.Time{}, false, err
	}
	switch t := v.(type) {
	case time.Time:
		return t, true, nil
	case *time.Time:
		return *t, true, nil
	case bool:
		return time.Time{}, false, NewValidationError("", v, "expected a date or time")
	case string:
		parsed, err := cast.ToTimeE(strings.TrimSpace(t))
		if err != nil {
			return time.Time{}, false, NewValidationError("", v, "expected a date or time")
		}
		return parsed, true, nil
	}
	ms, ok, err := Numeric(v, false, Minimum(-maxTimestamp), Maximum(maxTimestamp))
	if err != nil || !ok {
		return time.Time{}, false, NewValidationError("", v, "expected a date or time")
	}
	return time.UnixMilli(int64(ms)).UTC(), true, nil
}
