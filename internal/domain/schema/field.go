package schema

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/reglet-dev/chartopts/internal/domain/validate"
)

// Kind classifies how a field's value is shaped.
type Kind uint8

const (
	// KindScalar is a single validated scalar.
	KindScalar Kind = iota
	// KindEntity is an exclusively owned nested record.
	KindEntity
	// KindEntityList is an ordered list of nested records.
	KindEntityList
	// KindUnion is a tagged union resolved through a decoder chain.
	KindUnion
	// KindList is a homogeneous list of scalars or unions.
	KindList
)

// NullPolicy decides what a nil or empty assignment means for a field.
type NullPolicy uint8

const (
	// NullClears returns the field to unset.
	NullClears NullPolicy = iota
	// NullDisables records an explicit null, exported as null.
	NullDisables
	// NullRejects fails the assignment.
	NullRejects
)

type defaultMode uint8

const (
	modeNone defaultMode = iota
	modeLiteral
	modeForced
	modeAbsent
)

// Default is a field's initial state.
type Default struct {
	mode  defaultMode
	value any
}

// NoDefault leaves the field unset on construction.
func NoDefault() Default { return Default{} }

// Literal sets the field to v on construction. The value is validated when the
// schema is built.
func Literal(v any) Default { return Default{mode: modeLiteral, value: v} }

// Forced starts the field in the forced state; v is what gets emitted (nil emits null).
func Forced(v any) Default { return Default{mode: modeForced, value: v} }

// WhenAbsent substitutes v when an external document omits the key. Keyword
// construction leaves the field unset, so the external round trip of such a
// field is lossy: an unset field reads back set to v.
func WhenAbsent(v any) Default { return Default{mode: modeAbsent, value: v} }

// IsForced reports whether the default starts the field in the forced state.
func (d Default) IsForced() bool { return d.mode == modeForced }

// IsAbsent reports whether the default is substituted for absent external keys.
func (d Default) IsAbsent() bool { return d.mode == modeAbsent }

// Value returns the declared default value.
func (d Default) Value() any { return d.value }

// BindFunc coerces a deferred field. It runs after every other field of the
// record has been assigned, so it can read sibling fields.
type BindFunc func(r *Record, v any, opts ...DecodeOption) (any, error)

// Field declares one named attribute of a schema.
type Field struct {
	Name           string   // snake_case internal name
	External       string   // camelCase external name
	Kind           Kind     // value shape
	Type           string   // semantic type; must agree across composed schemas
	Default        Default  // initial state
	LibraryDefault any      // what the rendering library assumes when the key is absent
	Nulls          NullPolicy
	KeepEmpty      bool     // "" is a value rather than empty
	Since          string   // first library version supporting the field
	Enum           []string // allowed values for enum fields
	Minimum        *float64
	Maximum        *float64
	Nested         *Schema // entity and entity list fields
	Union          *Union  // union fields
	Elem           *Field  // list fields
	Bind           BindFunc
	Doc            string

	literal Value
}

// FieldOption customises a field declaration.
type FieldOption func(*Field)

// External overrides the derived camelCase name.
func External(name string) FieldOption {
	return func(f *Field) { f.External = name }
}

// WithDefault sets the field default.
func WithDefault(d Default) FieldOption {
	return func(f *Field) { f.Default = d }
}

// LibDefault documents the library's own default. It is emitted only when the
// field is forced.
func LibDefault(v any) FieldOption {
	return func(f *Field) { f.LibraryDefault = v }
}

// AbsentDefault documents v as the library default and substitutes it when an
// external document omits the key.
func AbsentDefault(v any) FieldOption {
	return func(f *Field) {
		f.LibraryDefault = v
		f.Default = WhenAbsent(v)
	}
}

// Nulls sets the null policy.
func Nulls(p NullPolicy) FieldOption {
	return func(f *Field) { f.Nulls = p }
}

// KeepEmpty treats the empty string as a concrete value.
func KeepEmpty() FieldOption {
	return func(f *Field) { f.KeepEmpty = true }
}

// Since records the first library version supporting the field.
func Since(version string) FieldOption {
	return func(f *Field) { f.Since = version }
}

// Min bounds a numeric field from below.
func Min(v float64) FieldOption {
	return func(f *Field) { f.Minimum = &v }
}

// Max bounds a numeric field from above.
func Max(v float64) FieldOption {
	return func(f *Field) { f.Maximum = &v }
}

// Doc attaches a description, surfaced in the generated JSON Schema.
func Doc(text string) FieldOption {
	return func(f *Field) { f.Doc = text }
}

func newField(name string, kind Kind, typ string, opts []FieldOption) *Field {
	f := &Field{Name: name, Kind: kind, Type: typ}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Number declares a numeric field.
func Number(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "number", opts)
}

// Integer declares a whole number field.
func Integer(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "integer", opts)
}

// String declares a string field.
func String(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "string", opts)
}

// Bool declares a boolean field.
func Bool(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "boolean", opts)
}

// Enum declares a string field restricted to allowed.
func Enum(name string, allowed []string, opts ...FieldOption) *Field {
	f := newField(name, KindScalar, "enum", opts)
	f.Enum = allowed
	return f
}

// Date declares a calendar date field.
func Date(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "date", opts)
}

// Datetime declares a timestamp field.
func Datetime(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "datetime", opts)
}

// XValue declares an axis position: a number, a timestamp or a category name.
func XValue(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "xvalue", opts)
}

// AxisRef declares a reference to an axis by id or by index.
func AxisRef(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "axisref", opts)
}

// Callback declares a JavaScript function, carried as its source text.
func Callback(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "callback", opts)
}

// Any declares an opaque JSON value passed through unchanged.
func Any(name string, opts ...FieldOption) *Field {
	return newField(name, KindScalar, "any", opts)
}

// Entity declares a nested record of schema s.
func Entity(name string, s *Schema, opts ...FieldOption) *Field {
	f := newField(name, KindEntity, "entity:"+s.Name(), opts)
	f.Nested = s
	return f
}

// EntityList declares an ordered list of records of schema s.
func EntityList(name string, s *Schema, opts ...FieldOption) *Field {
	f := newField(name, KindEntityList, "entities:"+s.Name(), opts)
	f.Nested = s
	return f
}

// Deferred declares a list of records of schema s whose coercion needs the
// rest of the record, such as series data reading the point start.
func Deferred(name string, s *Schema, bind BindFunc, opts ...FieldOption) *Field {
	f := EntityList(name, s, opts...)
	f.Bind = bind
	return f
}

// UnionOf declares a field accepting any variant of u.
func UnionOf(name string, u *Union, opts ...FieldOption) *Field {
	f := newField(name, KindUnion, "union:"+u.Name(), opts)
	f.Union = u
	return f
}

// ListOf declares a list whose elements are validated by elem.
func ListOf(name string, elem *Field, opts ...FieldOption) *Field {
	f := newField(name, KindList, "list<"+elem.Type+">", opts)
	f.Elem = elem
	return f
}

// IsDeferred reports whether the field is bound after its siblings.
func (f *Field) IsDeferred() bool { return f.Bind != nil }

// canForce reports whether the field has a default to emit when forced.
func (f *Field) canForce() bool {
	return f.Default.mode == modeForced || f.LibraryDefault != nil
}

// forcedValue is what a forced field emits.
func (f *Field) forcedValue() any {
	if f.Default.mode == modeForced {
		if f.Default.value == nil {
			return nil
		}
		return encodeValue(f, f.Default.value)
	}
	return f.LibraryDefault
}

func (f *Field) isEmpty(v any) bool {
	if f.KeepEmpty {
		if s, ok := v.(string); ok && s == "" {
			return false
		}
	}
	return validate.IsEmpty(v)
}

// coerce validates v for assignment to f on record r.
func (f *Field) coerce(r *Record, v any, d *decoder) (Value, error) {
	if s, ok := v.(Sentinel); ok {
		switch s {
		case Null:
			return null, nil
		case Unset:
			return unset, nil
		case ForceDefault:
			if !f.canForce() {
				return unset, validate.NewValidationError(f.Name, v, "field has no default to force")
			}
			return forced, nil
		}
	}

	if f.isEmpty(v) {
		switch f.Nulls {
		case NullDisables:
			return null, nil
		case NullRejects:
			return unset, validate.NewValidationError(f.Name, v, "value is required")
		default:
			return unset, nil
		}
	}

	var (
		out any
		err error
	)
	switch {
	case f.Bind != nil:
		out, err = f.Bind(r, v, d.options()...)
		err = wrapField(f.Name, err)
	case f.Kind == KindScalar:
		out, err = f.coerceScalar(v)
		err = attribute(f.Name, err)
	case f.Kind == KindEntity:
		out, err = adopt(f.Nested, v, d)
		err = wrapField(f.Name, err)
	case f.Kind == KindEntityList:
		out, err = f.coerceRecords(v, d)
	case f.Kind == KindUnion:
		out, err = f.Union.resolve(f.Name, v, d)
		err = attribute(f.Name, err)
	case f.Kind == KindList:
		out, err = f.coerceList(v, d)
	}
	if err != nil {
		return unset, err
	}
	return set(out), nil
}

// attribute names the field on errors raised directly by a scalar or union decoder.
func attribute(name string, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*validate.ValidationError); ok && ve.Field == "" {
		return ve.WithField(name)
	}
	if ue, ok := err.(*UnresolvedUnionTypeError); ok && ue.Field == "" {
		c := *ue
		c.Field = name
		return &c
	}
	return wrapField(name, err)
}

func (f *Field) coerceScalar(v any) (any, error) {
	var bounds []validate.Option
	if f.Minimum != nil {
		bounds = append(bounds, validate.Minimum(*f.Minimum))
	}
	if f.Maximum != nil {
		bounds = append(bounds, validate.Maximum(*f.Maximum))
	}

	switch f.Type {
	case "number":
		n, _, err := validate.Numeric(v, false, bounds...)
		return n, err
	case "integer":
		n, _, err := validate.Integer(v, false, bounds...)
		return n, err
	case "string", "callback":
		s, _, err := validate.String(v, f.KeepEmpty)
		return s, err
	case "boolean":
		b, _, err := validate.Bool(v, false)
		return b, err
	case "enum":
		s, _, err := validate.Enum(v, f.Enum, f.KeepEmpty)
		return s, err
	case "date":
		t, _, err := validate.Date(v, false)
		return t, err
	case "datetime":
		t, _, err := validate.Datetime(v, false)
		return t, err
	case "xvalue":
		return coerceXValue(v)
	case "axisref":
		return coerceAxisRef(v)
	case "any":
		return v, nil
	}
	return nil, fmt.Errorf("field %s has unsupported type %q", f.Name, f.Type)
}

// coerceXValue keeps timestamps, turns numbers into float64 and leaves any other
// string as a category name, unless it parses as an ISO 8601 timestamp.
func coerceXValue(v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case bool:
		return nil, validate.NewValidationError("", v, "expected a number, date or category")
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			if t, err := time.Parse(layout, x); err == nil {
				return t, nil
			}
		}
		return x, nil
	}
	n, _, err := validate.Numeric(v, false)
	if err != nil {
		return nil, validate.NewValidationError("", v, "expected a number, date or category")
	}
	return n, nil
}

// coerceAxisRef accepts an axis index or an axis id.
func coerceAxisRef(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	n, _, err := validate.Numeric(v, false, validate.Minimum(0))
	if err != nil || n != math.Trunc(n) {
		return nil, validate.NewValidationError("", v, "expected an axis id or index")
	}
	return int(n), nil
}

func (f *Field) coerceRecords(v any, d *decoder) ([]*Record, error) {
	items, ok := asSlice(v)
	if !ok {
		// A single object is accepted as a one element list.
		items = []any{v}
	}
	out := make([]*Record, 0, len(items))
	for i, item := range items {
		rec, err := adopt(f.Nested, item, d)
		if err != nil {
			return nil, wrapField(fmt.Sprintf("%s[%d]", f.Name, i), err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *Field) coerceList(v any, d *decoder) ([]any, error) {
	items, ok := asSlice(v)
	if !ok {
		return nil, validate.NewValidationError(f.Name, v, "expected a list")
	}
	out := make([]any, len(items))
	for i, item := range items {
		if item == nil {
			continue
		}
		val, err := f.Elem.coerce(nil, item, d)
		if err != nil {
			return nil, wrapField(fmt.Sprintf("%s[%d]", f.Name, i), err)
		}
		if val.State == StateSet {
			out[i] = val.V
		}
	}
	return out, nil
}

// asSlice converts any slice or array, other than a byte slice, to []any.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// looksLikeJSONObject reports whether s is plausibly a serialized object.
func looksLikeJSONObject(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}
