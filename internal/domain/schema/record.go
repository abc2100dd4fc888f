package schema

import (
	"fmt"
	"reflect"
	"slices"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/reglet-dev/chartopts/internal/domain/validate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one entity: a schema plus the state of each of its fields.
//
// Records own their nested records exclusively. A record is safe for concurrent
// reads; mutation must be serialized by the caller.
type Record struct {
	schema  *Schema
	values  map[string]Value
	dropped []string
}

// NewRecord creates a record with the schema defaults applied.
func (s *Schema) NewRecord() *Record {
	r := &Record{schema: s, values: make(map[string]Value, len(s.fields))}
	for _, f := range s.fields {
		switch f.Default.mode {
		case modeLiteral:
			if f.literal.State == StateSet {
				r.values[f.Name] = Value{State: StateSet, V: cloneValue(f.literal.V)}
			}
		case modeForced:
			r.values[f.Name] = forced
		}
	}
	return r
}

// FromFields builds a record from snake_case keyword fields. Every key must be
// declared. Deferred fields are assigned after all others.
func (s *Schema) FromFields(fields map[string]any, opts ...DecodeOption) (*Record, error) {
	return s.fromFields(fields, newDecoder(opts))
}

func (s *Schema) fromFields(fields map[string]any, d *decoder) (*Record, error) {
	var unknown []string
	for k := range fields {
		if _, ok := s.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, &UnknownFieldError{Schema: s.name, Keys: unknown}
	}

	r := s.NewRecord()
	if err := r.assign(fields, d); err != nil {
		return nil, err
	}
	return r, nil
}

// assign sets every field present in values, deferred fields last.
func (r *Record) assign(values map[string]any, d *decoder) error {
	for _, deferred := range []bool{false, true} {
		for _, f := range r.schema.fields {
			if f.IsDeferred() != deferred {
				continue
			}
			v, ok := values[f.Name]
			if !ok {
				continue
			}
			val, err := f.coerce(r, v, d)
			if err != nil {
				return err
			}
			r.values[f.Name] = val
		}
	}
	return nil
}

// FromExternal builds a record from the camelCase external form. Absent keys
// keep the schema default, or take their WhenAbsent value, and an explicit null
// disables the field. Undeclared
// keys are dropped with a warning unless RejectUnknown is given.
func (s *Schema) FromExternal(doc map[string]any, opts ...DecodeOption) (*Record, error) {
	d := newDecoder(opts)
	d.external = true
	return s.fromExternal(doc, d)
}

func (s *Schema) fromExternal(doc map[string]any, d *decoder) (*Record, error) {
	fields := make(map[string]any, len(doc))
	var unknown []string

	for k, v := range doc {
		f, ok := s.FieldByExternal(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		if v == nil {
			v = Null
			// A null forced default reads back as the forced state.
			if f.Default.mode == modeForced && f.Default.value == nil {
				v = ForceDefault
			}
		}
		fields[f.Name] = v
	}

	slices.Sort(unknown)
	if len(unknown) > 0 {
		if d.unknown == RejectUnknownKeys {
			return nil, &UnknownFieldError{Schema: s.name, Keys: unknown}
		}
		d.logger.Warn("dropping unrecognized keys", "schema", s.name, "keys", unknown)
	}

	r := s.NewRecord()
	for _, f := range s.fields {
		if _, present := fields[f.Name]; !present && f.Default.mode == modeAbsent {
			r.values[f.Name] = Value{State: StateSet, V: cloneValue(f.literal.V)}
		}
	}
	if err := r.assign(fields, d); err != nil {
		return nil, err
	}
	r.dropped = unknown
	return r, nil
}

// Decode builds a record from a map in either form. Keys are matched against
// external names first and internal names second.
func (s *Schema) Decode(m map[string]any, opts ...DecodeOption) (*Record, error) {
	d := newDecoder(opts)
	d.external = true
	return s.decodeMap(m, d)
}

// decodeMap picks the form a nested map is written in. The form of the
// enclosing document is preferred when the keys fit both.
func (s *Schema) decodeMap(m map[string]any, d *decoder) (*Record, error) {
	allExternal, allInternal := true, true
	for k := range m {
		if _, ok := s.external[k]; !ok {
			allExternal = false
		}
		if _, ok := s.index[k]; !ok {
			allInternal = false
		}
	}

	switch {
	case d.external && allExternal, !d.external && !allInternal && allExternal:
		return s.fromExternal(m, d)
	case allInternal:
		return s.fromFields(m, d)
	case d.external:
		return s.fromExternal(m, d)
	default:
		return s.fromFields(m, d)
	}
}

// adopt turns v into a record of schema s. Records of s or of a schema composed
// from s are kept as they are; records of an ancestor of s are upcast.
func adopt(s *Schema, v any, d *decoder) (*Record, error) {
	switch x := v.(type) {
	case *Record:
		if x.schema.Extends(s) {
			return x, nil
		}
		if s.Extends(x.schema) {
			return s.fromFields(x.ToFields(), d)
		}
		return nil, validate.NewValidationError("", v,
			fmt.Sprintf("expected %s, got %s", s.name, x.schema.name))
	case map[string]any:
		return s.decodeMap(x, d)
	case string:
		if looksLikeJSONObject(x) {
			var m map[string]any
			if err := json.UnmarshalFromString(x, &m); err == nil {
				return s.decodeMap(m, d)
			}
		}
	}
	return nil, validate.NewValidationError("", v, fmt.Sprintf("expected a %s object", s.name))
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// Dropped lists the external keys ignored when the record was decoded.
func (r *Record) Dropped() []string { return r.dropped }

// DroppedPaths lists the keys ignored anywhere in the record graph, as external
// paths such as "series[0].colour".
func (r *Record) DroppedPaths() []string {
	var out []string
	r.collectDropped("", &out)
	return out
}

func (r *Record) collectDropped(prefix string, out *[]string) {
	for _, k := range r.dropped {
		*out = append(*out, prefix+k)
	}
	for _, f := range r.schema.fields {
		if v := r.values[f.Name]; v.State == StateSet {
			collectNested(v.V, prefix+f.External, out)
		}
	}
}

func collectNested(v any, path string, out *[]string) {
	switch x := v.(type) {
	case *Record:
		x.collectDropped(path+".", out)
	case []*Record:
		for i, rec := range x {
			rec.collectDropped(fmt.Sprintf("%s[%d].", path, i), out)
		}
	case Choice:
		if rec := x.Record(); rec != nil {
			rec.collectDropped(path+".", out)
		}
	case []any:
		for i, item := range x {
			collectNested(item, fmt.Sprintf("%s[%d]", path, i), out)
		}
	}
}

// Set validates v and assigns it to the named field. A failed assignment
// leaves the record unchanged.
func (r *Record) Set(name string, v any) error {
	f, ok := r.schema.Field(name)
	if !ok {
		return &UnknownFieldError{Schema: r.schema.name, Keys: []string{name}}
	}
	val, err := f.coerce(r, v, defaultDecoder())
	if err != nil {
		return err
	}
	r.values[name] = val
	return nil
}

// Clear returns a field to the unset state.
func (r *Record) Clear(name string) {
	delete(r.values, name)
}

// Value returns a field's state and value.
func (r *Record) Value(name string) Value {
	return r.values[name]
}

// State returns a field's state.
func (r *Record) State(name string) State {
	return r.values[name].State
}

// Get returns the field's value, or nil unless the field is set.
func (r *Record) Get(name string) any {
	v := r.values[name]
	if v.State != StateSet {
		return nil
	}
	return v.V
}

// Float returns a numeric field's value.
func (r *Record) Float(name string) (float64, bool) {
	switch n := r.Get(name).(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Str returns a string field's value.
func (r *Record) Str(name string) (string, bool) {
	s, ok := r.Get(name).(string)
	return s, ok
}

// Record returns a nested record, or nil.
func (r *Record) Record(name string) *Record {
	rec, _ := r.Get(name).(*Record)
	return rec
}

// Records returns a nested record list.
func (r *Record) Records(name string) []*Record {
	recs, _ := r.Get(name).([]*Record)
	return recs
}

// Choice returns the resolved variant of a union field.
func (r *Record) Choice(name string) (Choice, bool) {
	c, ok := r.Get(name).(Choice)
	return c, ok
}

// ToExternal exports the record in camelCase form, trimmed: a key is present
// only when its field is set, null or forced.
func (r *Record) ToExternal() map[string]any {
	out := make(map[string]any)
	for _, f := range r.schema.fields {
		v := r.values[f.Name]
		switch v.State {
		case StateNull:
			out[f.External] = nil
		case StateForced:
			out[f.External] = f.forcedValue()
		case StateSet:
			out[f.External] = encodeValue(f, v.V)
		}
	}
	return out
}

func encodeValue(f *Field, v any) any {
	switch x := v.(type) {
	case *Record:
		return x.ToExternal()
	case []*Record:
		out := make([]any, len(x))
		for i, rec := range x {
			out[i] = rec.ToExternal()
		}
		return out
	case Choice:
		return encodeValue(f, x.Value)
	case time.Time:
		if f != nil && f.Type == "date" {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339Nano)
	case []any:
		var elem *Field
		if f != nil {
			elem = f.Elem
		}
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = encodeValue(elem, item)
		}
		return out
	}
	return v
}

// ToFields exports the record as snake_case keyword fields that FromFields
// accepts back. Nested records are cloned, null fields map to Null, forced
// fields to ForceDefault, and cleared fields that carry a default to Unset.
func (r *Record) ToFields() map[string]any {
	out := make(map[string]any)
	for _, f := range r.schema.fields {
		v := r.values[f.Name]
		switch v.State {
		case StateUnset:
			if f.Default.mode == modeLiteral || f.Default.mode == modeForced {
				out[f.Name] = Unset
			}
		case StateNull:
			out[f.Name] = Null
		case StateForced:
			out[f.Name] = ForceDefault
		case StateSet:
			out[f.Name] = cloneValue(v.V)
		}
	}
	return out
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := &Record{
		schema:  r.schema,
		values:  make(map[string]Value, len(r.values)),
		dropped: slices.Clone(r.dropped),
	}
	for k, v := range r.values {
		c.values[k] = Value{State: v.State, V: cloneValue(v.V)}
	}
	return c
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case *Record:
		return x.Clone()
	case []*Record:
		out := make([]*Record, len(x))
		for i, rec := range x {
			out[i] = rec.Clone()
		}
		return out
	case Choice:
		return Choice{Variant: x.Variant, Value: cloneValue(x.Value)}
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = cloneValue(item)
		}
		return out
	}
	return v
}

// Equal reports whether both records share a schema and every field agrees in
// state and value.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.schema != o.schema {
		return false
	}
	for _, f := range r.schema.fields {
		a, b := r.values[f.Name], o.values[f.Name]
		if a.State != b.State {
			return false
		}
		if a.State == StateSet && !equalValue(a.V, b.V) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	switch x := a.(type) {
	case *Record:
		y, ok := b.(*Record)
		return ok && x.Equal(y)
	case []*Record:
		y, ok := b.([]*Record)
		return ok && slices.EqualFunc(x, y, (*Record).Equal)
	case Choice:
		y, ok := b.(Choice)
		return ok && x.Variant == y.Variant && equalValue(x.Value, y.Value)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case []any:
		y, ok := b.([]any)
		return ok && slices.EqualFunc(x, y, equalValue)
	}
	return reflect.DeepEqual(a, b)
}

// MarshalJSON encodes the trimmed external form.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToExternal())
}

func (r *Record) String() string {
	s, err := json.MarshalToString(r.ToExternal())
	if err != nil {
		return fmt.Sprintf("%s{%v}", r.schema.name, err)
	}
	return r.schema.name + s
}
