package series

import (
	"fmt"
	"slices"

	"github.com/reglet-dev/chartopts/internal/domain/options"
	"github.com/reglet-dev/chartopts/internal/domain/points"
	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

var typeNames = []string{
	"bar",
	"column",
	"columnpyramid",
	"columnrange",
	"cylinder",
	"dependencywheel",
	"variwide",
	"waterfall",
	"windbarb",
	"xrange",
}

// Type is a registered series type.
type Type struct {
	Name   string
	Schema *schema.Schema
	Shape  points.Shape
}

// sequenceOf reads the point start and interval of a series record.
func sequenceOf(r *schema.Record) points.Sequence {
	seq := points.DefaultSequence
	if v, ok := r.Float("point_start"); ok {
		seq.Start = v
	}
	if v, ok := r.Float("point_interval"); ok {
		seq.Interval = v
	}
	return seq
}

// dataField declares the series data, coerced once the point start and
// interval of the same series are known.
func dataField(shape points.Shape) *schema.Field {
	return schema.Deferred("data", shape.Schema,
		func(r *schema.Record, v any, opts ...schema.DecodeOption) (any, error) {
			return points.Coerce(v, shape, sequenceOf(r), opts...)
		},
		schema.Doc("Points as objects, tuples or bare values."),
	)
}

// compose builds a series type: option sets in precedence order, then the
// instance fields, then the type's own data and type tag.
func compose(name string, shape points.Shape, layers []*schema.Schema, extra ...*schema.Field) *Type {
	own := append([]*schema.Field{
		schema.Enum("type", typeNames, schema.WithDefault(schema.Literal(name))),
		dataField(shape),
	}, extra...)

	parents := append(slices.Clone(layers), SeriesBase, schema.MustNew(name+"Own", own...))
	return &Type{
		Name:   name,
		Schema: schema.MustCompose(name, parents...),
		Shape:  shape,
	}
}

var barLayers = []*schema.Schema{SeriesOptions, BaseBarOptions, BarOptions}

// Series types.
var (
	BarSeries             = compose("bar", points.BarShape, barLayers)
	ColumnSeries          = compose("column", points.BarShape, barLayers)
	ColumnPyramidSeries   = compose("columnpyramid", points.BarShape, barLayers)
	ColumnRangeSeries     = compose("columnrange", points.RangeShape, barLayers)
	CylinderSeries        = compose("cylinder", points.BarShape, barLayers)
	VariwideSeries        = compose("variwide", points.Cartesian3DShape, barLayers)
	WaterfallSeries       = compose("waterfall", points.WaterfallShape, append(slices.Clone(barLayers), WaterfallOptions))
	WindBarbSeries        = compose("windbarb", points.WindBarbShape, []*schema.Schema{SeriesOptions, BaseBarOptions, WindBarbOptions})
	XRangeSeries          = compose("xrange", points.XRangeShape, []*schema.Schema{SeriesOptions, BaseBarOptions, XRangeOptions})
	DependencyWheelSeries = compose("dependencywheel", points.WeightedConnectionShape,
		[]*schema.Schema{SeriesOptions, DependencyWheelOptions},
		schema.EntityList("nodes", options.DependencyWheelNode))
)

var registry = map[string]*Type{}

func init() {
	for _, t := range []*Type{
		BarSeries, ColumnSeries, ColumnPyramidSeries, ColumnRangeSeries, CylinderSeries,
		VariwideSeries, WaterfallSeries, WindBarbSeries, XRangeSeries, DependencyWheelSeries,
	} {
		registry[t.Name] = t
	}
}

// UnknownTypeError indicates a series type that is not registered.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	if e.Type == "" {
		return "series type is missing"
	}
	return fmt.Sprintf("unknown series type %q", e.Type)
}

// Lookup returns a registered series type.
func Lookup(name string) (*Type, bool) {
	t, ok := registry[name]
	return t, ok
}

// Types lists the registered series type names.
func Types() []string {
	return slices.Clone(typeNames)
}

// FromExternal decodes one series. The type comes from the document's "type"
// key, or fallback when the key is absent.
func FromExternal(doc map[string]any, fallback string, opts ...schema.DecodeOption) (*schema.Record, error) {
	name := fallback
	if v, ok := doc["type"].(string); ok && v != "" {
		name = v
	}
	t, ok := Lookup(name)
	if !ok {
		return nil, &UnknownTypeError{Type: name}
	}
	return t.Schema.FromExternal(doc, opts...)
}

// FromFields builds one series of the named type from keyword fields.
func FromFields(name string, fields map[string]any, opts ...schema.DecodeOption) (*schema.Record, error) {
	t, ok := Lookup(name)
	if !ok {
		return nil, &UnknownTypeError{Type: name}
	}
	return t.Schema.FromFields(fields, opts...)
}

// TypeOf returns the registered type of a series record.
func TypeOf(r *schema.Record) (*Type, bool) {
	for _, name := range typeNames {
		if t := registry[name]; r.Schema() == t.Schema {
			return t, true
		}
	}
	return nil, false
}
