// Package chart declares the top level options document that series, titles
// and accessibility settings hang off.
package chart

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/reglet-dev/chartopts/internal/domain/options"
	"github.com/reglet-dev/chartopts/internal/domain/schema"
	"github.com/reglet-dev/chartopts/internal/domain/series"
)

// Chart holds the general chart options.
var Chart = schema.MustNew("Chart",
	options.ColorField("background_color"),
	options.ColorField("border_color"),
	schema.Number("border_radius"),
	schema.Number("border_width"),
	schema.String("class_name"),
	schema.Any("height", schema.Doc("Pixel height or a percentage of the width.")),
	schema.Bool("inverted"),
	schema.Any("margin"),
	schema.Any("options3d"),
	options.ColorField("plot_background_color"),
	schema.Bool("polar"),
	schema.Any("style"),
	schema.String("type", schema.LibDefault("line"),
		schema.Doc("Default series type for series without their own type.")),
	schema.Any("width"),
	schema.Any("zooming", schema.Since("10.2.1")),
)

// Title is used for both the title and the subtitle.
var Title = schema.MustNew("Title",
	schema.Enum("align", []string{"left", "center", "right"}),
	schema.Bool("floating"),
	schema.Number("margin"),
	schema.Any("style"),
	schema.String("text", schema.Nulls(schema.NullDisables),
		schema.Doc("Null removes the title.")),
	schema.Bool("use_html", schema.External("useHTML")),
	schema.Enum("vertical_align", []string{"top", "middle", "bottom"}),
	schema.Number("x"),
	schema.Number("y"),
)

// Options is the document passed to the rendering library.
var Options = schema.MustNew("Options",
	schema.Entity("accessibility", options.Accessibility),
	schema.EntityList("annotations", options.Annotation),
	schema.Entity("chart", Chart),
	schema.ListOf("colors", options.ColorField("color")),
	schema.Any("credits"),
	schema.Any("exporting"),
	schema.Any("legend"),
	schema.Any("plot_options"),
	schema.Deferred("series", series.SeriesBase, bindSeries,
		schema.Doc("Series of any registered type, falling back to chart.type.")),
	schema.Entity("subtitle", Title),
	schema.Entity("title", Title),
	schema.Any("tooltip"),
	schema.Any("x_axis"),
	schema.Any("y_axis"),
)

// bindSeries decodes each series by its own type, or the chart's default type.
func bindSeries(r *schema.Record, v any, opts ...schema.DecodeOption) (any, error) {
	fallback := ""
	if c := r.Record("chart"); c != nil {
		fallback, _ = c.Str("type")
	}

	items, ok := v.([]any)
	if !ok {
		if recs, isRecs := v.([]*schema.Record); isRecs {
			items = make([]any, len(recs))
			for i, rec := range recs {
				items[i] = rec
			}
		} else {
			items = []any{v}
		}
	}

	out := make([]*schema.Record, 0, len(items))
	for i, item := range items {
		rec, err := decodeSeries(item, fallback, opts)
		if err != nil {
			return nil, schema.AtIndex(i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeSeries(item any, fallback string, opts []schema.DecodeOption) (*schema.Record, error) {
	switch x := item.(type) {
	case *schema.Record:
		if _, ok := series.TypeOf(x); !ok {
			return nil, fmt.Errorf("%s is not a series type", x.Schema().Name())
		}
		return x, nil
	case map[string]any:
		name := fallback
		if t, ok := x["type"].(string); ok && t != "" {
			name = t
		}
		typ, ok := series.Lookup(name)
		if !ok {
			return nil, &series.UnknownTypeError{Type: name}
		}
		return typ.Schema.Decode(x, opts...)
	}
	return nil, schema.NewValidationError("", item, "expected a series object")
}

// Decode builds an options document from its external form.
func Decode(doc map[string]any, opts ...schema.DecodeOption) (*schema.Record, error) {
	return Options.FromExternal(doc, opts...)
}

// Encode exports an options document, trimmed.
func Encode(r *schema.Record) map[string]any {
	return r.ToExternal()
}

// ApplyTheme layers theme underneath doc: keys present in doc win and keys only
// in the theme are filled in. Neither input is modified.
func ApplyTheme(doc, theme map[string]any) (map[string]any, error) {
	out := cloneDoc(doc)
	if err := mergo.Merge(&out, cloneDoc(theme)); err != nil {
		return nil, fmt.Errorf("failed to apply theme: %w", err)
	}
	return out, nil
}

func cloneDoc(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneDoc(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneAny(item)
		}
		return out
	}
	return v
}
