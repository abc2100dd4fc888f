// Package schema is the serialization and coercion engine behind every option
// entity: declarative field tables, multi-parent composition, records with a
// four-state field model, and conversion to and from the camelCase external form.
package schema

import (
	"fmt"
	"log/slog"

	"github.com/huandu/xstrings"
)

// Schema is an immutable, ordered table of fields.
type Schema struct {
	name     string
	fields   []*Field
	index    map[string]int
	external map[string]int
	parents  []*Schema
}

// New builds a schema from field declarations. Duplicate names and defaults
// that fail their own field's validation are reported as SchemaConflictError.
func New(name string, fields ...*Field) (*Schema, error) {
	s := &Schema{
		name:     name,
		index:    make(map[string]int, len(fields)),
		external: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if err := finalize(name, f); err != nil {
			return nil, err
		}
		if err := s.add(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNew is New for package level schema declarations.
func MustNew(name string, fields ...*Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func finalize(schemaName string, f *Field) error {
	if f.Name == "" {
		return NewSchemaConflictError(schemaName, "", "field has no name")
	}
	if f.External == "" {
		f.External = xstrings.ToCamelCase(f.Name)
	}
	if f.Kind == KindList && f.Elem == nil {
		return NewSchemaConflictError(schemaName, f.Name, "list field has no element type")
	}
	if f.Default.mode == modeNone || f.Default.value == nil {
		return nil
	}

	v, err := f.coerce(nil, f.Default.value, defaultDecoder())
	if err != nil {
		return NewSchemaConflictError(schemaName, f.Name, fmt.Sprintf("invalid default: %v", err))
	}
	if f.Default.mode == modeLiteral || f.Default.mode == modeAbsent {
		if v.State != StateSet {
			return NewSchemaConflictError(schemaName, f.Name, "literal default must be a value")
		}
		f.literal = v
	} else {
		f.Default.value = v.V
	}
	return nil
}

func (s *Schema) add(f *Field) error {
	if _, dup := s.index[f.Name]; dup {
		return NewSchemaConflictError(s.name, f.Name, "declared twice")
	}
	if i, dup := s.external[f.External]; dup {
		return NewSchemaConflictError(s.name, f.Name,
			fmt.Sprintf("external name %q already used by %s", f.External, s.fields[i].Name))
	}
	s.index[f.Name] = len(s.fields)
	s.external[f.External] = len(s.fields)
	s.fields = append(s.fields, f)
	return nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks a field up by internal name.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// FieldByExternal looks a field up by external name.
func (s *Schema) FieldByExternal(key string) (*Field, bool) {
	i, ok := s.external[key]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Parents returns the schemas s was composed from.
func (s *Schema) Parents() []*Schema { return s.parents }

// Extends reports whether s is other or was composed from it, directly or not.
func (s *Schema) Extends(other *Schema) bool {
	if s == other {
		return true
	}
	for _, p := range s.parents {
		if p.Extends(other) {
			return true
		}
	}
	return false
}

// Extend composes s with a layer of additional or overriding fields.
func (s *Schema) Extend(name string, fields ...*Field) (*Schema, error) {
	own, err := New(name, fields...)
	if err != nil {
		return nil, err
	}
	return Compose(name, s, own)
}

// MustExtend is Extend for package level declarations.
func (s *Schema) MustExtend(name string, fields ...*Field) *Schema {
	out, err := s.Extend(name, fields...)
	if err != nil {
		panic(err)
	}
	return out
}

// UnknownPolicy decides what happens to external keys a schema does not declare.
type UnknownPolicy uint8

const (
	// WarnUnknownKeys logs and drops unrecognized keys.
	WarnUnknownKeys UnknownPolicy = iota
	// RejectUnknownKeys fails decoding with UnknownFieldError.
	RejectUnknownKeys
)

type decoder struct {
	unknown  UnknownPolicy
	logger   *slog.Logger
	external bool
}

// DecodeOption configures FromExternal and the coercions beneath it.
type DecodeOption func(*decoder)

// RejectUnknown fails decoding when an external key is not declared.
func RejectUnknown() DecodeOption {
	return func(d *decoder) { d.unknown = RejectUnknownKeys }
}

// WarnUnknown logs and drops undeclared external keys. This is the default.
func WarnUnknown() DecodeOption {
	return func(d *decoder) { d.unknown = WarnUnknownKeys }
}

// Strict selects RejectUnknown when strict is true and WarnUnknown otherwise.
func Strict(strict bool) DecodeOption {
	if strict {
		return RejectUnknown()
	}
	return WarnUnknown()
}

// WithLogger sets the logger used to report dropped keys.
func WithLogger(logger *slog.Logger) DecodeOption {
	return func(d *decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func defaultDecoder() *decoder {
	return &decoder{logger: slog.Default()}
}

func newDecoder(opts []DecodeOption) *decoder {
	d := defaultDecoder()
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// options rebuilds the option list so deferred binders can pass it on.
func (d *decoder) options() []DecodeOption {
	if d == nil {
		return nil
	}
	return []DecodeOption{
		func(o *decoder) { o.unknown = d.unknown },
		WithLogger(d.logger),
	}
}
