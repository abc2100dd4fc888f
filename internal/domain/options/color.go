// Package options declares the shared option entities nested inside series,
// points and charts: colors, gradients, patterns, accessibility and annotations.
package options

import (
	"github.com/reglet-dev/chartopts/internal/domain/schema"
	"github.com/reglet-dev/chartopts/internal/domain/validate"
)

// LinearGradient positions a linear gradient relative to the shape, from 0 to 1.
var LinearGradient = schema.MustNew("LinearGradient",
	schema.Number("x1"),
	schema.Number("y1"),
	schema.Number("x2"),
	schema.Number("y2"),
)

// RadialGradient positions a radial gradient relative to the shape.
var RadialGradient = schema.MustNew("RadialGradient",
	schema.Number("cx"),
	schema.Number("cy"),
	schema.Number("r"),
)

// Gradient is a linear or radial color gradient with its color stops.
var Gradient = schema.MustNew("Gradient",
	schema.Entity("linear_gradient", LinearGradient),
	schema.Entity("radial_gradient", RadialGradient),
	schema.ListOf("stops", schema.Any("stop"),
		schema.Doc("Color stops as [offset, color] pairs, offset between 0 and 1.")),
)

// PatternOptions describes an SVG pattern fill.
var PatternOptions = schema.MustNew("PatternOptions",
	schema.Number("aspect_ratio"),
	schema.String("background_color"),
	schema.String("color"),
	schema.Number("height"),
	schema.String("id"),
	schema.String("image"),
	schema.Number("opacity", schema.Min(0), schema.Max(1)),
	schema.Any("path"),
	schema.String("pattern_transform"),
	schema.Number("width"),
	schema.Number("x"),
	schema.Number("y"),
)

// Pattern is a pattern fill, either custom or one of the default patterns by index.
var Pattern = schema.MustNew("Pattern",
	schema.Any("animation"),
	schema.Entity("pattern_options", PatternOptions),
	schema.Integer("pattern_index", schema.Min(0)),
)

// Color is a plain color string, a gradient or a pattern.
var Color = schema.NewUnion("Color",
	schema.Variant{
		Name:         "gradient",
		Schema:       Gradient,
		InternalKeys: []string{"linear_gradient", "radial_gradient"},
		ExternalKeys: []string{"linearGradient", "radialGradient"},
	},
	schema.Variant{
		Name:         "pattern",
		Schema:       Pattern,
		InternalKeys: []string{"pattern_options", "pattern_index"},
		ExternalKeys: []string{"patternOptions", "patternIndex"},
	},
	schema.Variant{
		Name:   "string",
		Scalar: colorString,
	},
)

func colorString(v any) (any, error) {
	s, _, err := validate.String(v, false)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ColorField declares a field accepting any Color variant.
func ColorField(name string, opts ...schema.FieldOption) *schema.Field {
	return schema.UnionOf(name, Color, opts...)
}

// PartialFill is the partial fill of an x-range point.
var PartialFill = schema.MustNew("PartialFill",
	schema.Number("amount", schema.Min(0), schema.Max(1)),
	ColorField("fill"),
)
