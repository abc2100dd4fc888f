package points

import (
	"maps"
	"reflect"
	"slices"
	"time"

	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

// Shape is the dimensionality table of a point type: which tuple lengths it
// accepts and which fields the tuple elements land in.
type Shape struct {
	Schema     *schema.Schema
	Tuples     map[int][]string // tuple length to field order
	Scalar     string           // field a bare scalar lands in, empty if none
	AutoX      bool             // assign x from the series sequence when absent
	Dimensions []string         // fields nulled in an empty point; derived when nil
}

// Lengths lists the accepted tuple lengths in ascending order.
func (s Shape) Lengths() []int {
	return slices.Sorted(maps.Keys(s.Tuples))
}

func (s Shape) dimensions() []string {
	if s.Dimensions != nil {
		return s.Dimensions
	}
	var dims []string
	for _, n := range s.Lengths() {
		for _, name := range s.Tuples[n] {
			if !slices.Contains(dims, name) {
				dims = append(dims, name)
			}
		}
	}
	if s.Scalar != "" && !slices.Contains(dims, s.Scalar) {
		dims = append(dims, s.Scalar)
	}
	return dims
}

// Sequence positions points that carry no x of their own.
type Sequence struct {
	Start    float64
	Interval float64
}

// DefaultSequence starts at 0 and steps by 1.
var DefaultSequence = Sequence{Start: 0, Interval: 1}

// Coerce builds one point per element of raw, preserving order. Each element
// may be a point record, an external map, nil, a tuple whose length the shape
// declares, or a bare scalar. Points built without an x are then placed at
// start + i*interval, i being the slot index. Records passed in are kept as
// they are and never repositioned.
func Coerce(raw any, shape Shape, seq Sequence, opts ...schema.DecodeOption) ([]*schema.Record, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := asSlice(raw)
	if !ok {
		// A single element is accepted as a one point series.
		items = []any{raw}
	}

	out := make([]*schema.Record, len(items))
	built := make([]bool, len(items))
	for i, item := range items {
		rec, fresh, err := coerceElement(i, item, shape, opts)
		if err != nil {
			return nil, err
		}
		out[i] = rec
		built[i] = fresh
	}

	if !shape.AutoX {
		return out, nil
	}
	if _, ok := shape.Schema.Field("x"); !ok {
		return out, nil
	}
	for i, rec := range out {
		if !built[i] || rec.State("x") != schema.StateUnset {
			continue
		}
		if err := rec.Set("x", seq.Start+float64(i)*seq.Interval); err != nil {
			return nil, schema.AtIndex(i, err)
		}
	}
	return out, nil
}

// coerceElement builds the point for one slot. fresh is false when the caller
// supplied the record.
func coerceElement(i int, item any, shape Shape, opts []schema.DecodeOption) (*schema.Record, bool, error) {
	typeName := shape.Schema.Name()

	switch x := item.(type) {
	case *schema.Record:
		if x.Schema().Extends(shape.Schema) {
			return x, false, nil
		}
		if shape.Schema.Extends(x.Schema()) {
			rec, err := shape.Schema.FromFields(x.ToFields(), opts...)
			return rec, false, schema.AtIndex(i, err)
		}
		return nil, false, &schema.UncoercibleElementError{Type: typeName, Index: i, Value: item}
	case nil, schema.Sentinel:
		return emptyPoint(shape), true, nil
	case map[string]any:
		rec, err := shape.Schema.FromExternal(x, opts...)
		if err != nil {
			return nil, false, schema.AtIndex(i, err)
		}
		return rec, true, nil
	case string, bool, time.Time:
		return scalarPoint(i, item, shape, opts)
	}

	if tuple, ok := asSlice(item); ok {
		names, ok := shape.Tuples[len(tuple)]
		if !ok {
			return nil, false, &schema.UnsupportedDimensionalityError{
				Type:    typeName,
				Length:  len(tuple),
				Allowed: shape.Lengths(),
			}
		}
		fields := make(map[string]any, len(names))
		for j, name := range names {
			v := tuple[j]
			if v == nil {
				v = schema.Null
			}
			fields[name] = v
		}
		rec, err := shape.Schema.FromFields(fields, opts...)
		if err != nil {
			return nil, false, schema.AtIndex(i, err)
		}
		return rec, true, nil
	}

	if isNumber(item) {
		return scalarPoint(i, item, shape, opts)
	}
	return nil, false, &schema.UncoercibleElementError{Type: typeName, Index: i, Value: item}
}

func scalarPoint(i int, item any, shape Shape, opts []schema.DecodeOption) (*schema.Record, bool, error) {
	if shape.Scalar == "" {
		return nil, false, &schema.UncoercibleElementError{Type: shape.Schema.Name(), Index: i, Value: item}
	}
	rec, err := shape.Schema.FromFields(map[string]any{shape.Scalar: item}, opts...)
	if err != nil {
		return nil, false, schema.AtIndex(i, err)
	}
	return rec, true, nil
}

// emptyPoint keeps a slot with every dimension explicitly null.
func emptyPoint(shape Shape) *schema.Record {
	rec := shape.Schema.NewRecord()
	for _, name := range shape.dimensions() {
		// Dimensions are declared by the shape's own schema, so Set cannot fail.
		_ = rec.Set(name, schema.Null)
	}
	return rec
}

func isNumber(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []byte, string, nil:
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
