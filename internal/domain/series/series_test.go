package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

func Test_Registry(t *testing.T) {
	t.Parallel()

	for _, name := range Types() {
		typ, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, typ.Name)
		assert.Equal(t, name, typ.Schema.NewRecord().Get("type"), "type tag defaults to the series type")

		got, ok := TypeOf(typ.Schema.NewRecord())
		require.True(t, ok)
		assert.Same(t, typ, got)
	}

	_, ok := Lookup("line")
	assert.False(t, ok)
}

func Test_BarSeries_DataShapes(t *testing.T) {
	t.Parallel()

	s, err := FromFields("bar", map[string]any{
		"data":        []any{0, 5, 3, 5},
		"point_start": 10,
	})
	require.NoError(t, err)

	data := s.Records("data")
	require.Len(t, data, 4)
	for i, p := range data {
		assert.Equal(t, 10.0+float64(i), p.Get("x"), "point_start applies regardless of field order")
	}
}

func Test_BarSeries_PointInterval(t *testing.T) {
	t.Parallel()

	s, err := FromExternal(map[string]any{
		"type":          "column",
		"pointInterval": 2,
		"data":          []any{1, 2, 3},
	}, "")
	require.NoError(t, err)

	data := s.Records("data")
	assert.Equal(t, 4.0, data[2].Get("x"))
	assert.Same(t, ColumnSeries.Schema, s.Schema())
}

func Test_BarSeries_MergedExport(t *testing.T) {
	t.Parallel()

	s, err := BarSeries.Schema.FromExternal(map[string]any{
		"name":        "sales",
		"borderColor": "#000000",
		"depth":       30,
		"lineWidth":   2,
		"data":        []any{[]any{"A", 1}},
	})
	require.NoError(t, err)

	out := s.ToExternal()
	assert.Equal(t, map[string]any{
		"type":             "bar",
		"name":             "sales",
		"borderColor":      "#000000",
		"borderRadius":     0.0,
		"centerInCategory": false,
		"colorByPoint":     false,
		"grouping":         true,
		"groupPadding":     0.2,
		"minPointLength":   0.0,
		"pointPadding":     0.1,
		"depth":            30.0,
		"edgeWidth":        1.0,
		"groupZPadding":    1.0,
		"lineWidth":        2.0,
		"pointRange":       nil,
		"data":             []any{map[string]any{"x": "A", "y": 1.0}},
	}, out, "one key per field across every option set")
}

func Test_BarSeries_FromExternalFillsDefaults(t *testing.T) {
	t.Parallel()

	s, err := FromExternal(map[string]any{"type": "bar"}, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"type":             "bar",
		"borderColor":      "#ffffff",
		"borderRadius":     0.0,
		"centerInCategory": false,
		"colorByPoint":     false,
		"grouping":         true,
		"groupPadding":     0.2,
		"minPointLength":   0.0,
		"pointPadding":     0.1,
		"pointRange":       nil,
		"depth":            25.0,
		"edgeWidth":        1.0,
		"groupZPadding":    1.0,
	}, s.ToExternal())

	kw, err := FromFields("bar", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "bar", "pointRange": nil}, kw.ToExternal(),
		"keyword construction leaves the substituted defaults unset")

	x, err := FromExternal(map[string]any{"type": "xrange"}, "")
	require.NoError(t, err)
	assert.Equal(t, schema.StateUnset, x.State("border_radius"), "xrange keeps the library's own radius")
	assert.Equal(t, true, x.Get("grouping"))
}

func Test_BarSeries_ForceDefault(t *testing.T) {
	t.Parallel()

	s := BarSeries.Schema.NewRecord()
	require.NoError(t, s.Set("group_padding", schema.ForceDefault))
	require.NoError(t, s.Set("border_color", schema.ForceDefault))

	out := s.ToExternal()
	assert.Equal(t, 0.2, out["groupPadding"])
	assert.Equal(t, "#ffffff", out["borderColor"])
}

func Test_BarSeries_PointRangeRoundTrip(t *testing.T) {
	t.Parallel()

	s := BarSeries.Schema.NewRecord()
	assert.Equal(t, schema.StateForced, s.State("point_range"))

	back, err := BarSeries.Schema.FromExternal(s.ToExternal())
	require.NoError(t, err)
	assert.Equal(t, schema.StateForced, back.State("point_range"))
	assert.True(t, s.Equal(withoutSubstituted(s, back)))

	require.NoError(t, s.Set("point_range", 5))
	back, err = BarSeries.Schema.FromExternal(s.ToExternal())
	require.NoError(t, err)
	assert.Equal(t, 5.0, back.Get("point_range"))
}

func Test_WaterfallSeries_LineWidthPrecedence(t *testing.T) {
	t.Parallel()

	s := WaterfallSeries.Schema.NewRecord()
	assert.Equal(t, 1.0, s.Get("line_width"), "waterfall options win over the generic declaration")

	s, err := FromFields("waterfall", map[string]any{"line_width": 4, "data": []any{map[string]any{"y": 3, "isSum": true}}})
	require.NoError(t, err)
	assert.Equal(t, 4.0, s.Get("line_width"))
	assert.Equal(t, true, s.Records("data")[0].Get("is_sum"))
}

func Test_XRangeSeries_BorderRadiusOverride(t *testing.T) {
	t.Parallel()

	f, ok := XRangeSeries.Schema.Field("border_radius")
	require.True(t, ok)
	assert.Equal(t, 3, f.LibraryDefault)

	_, err := FromFields("xrange", map[string]any{"data": []any{[]any{1, 2}}})
	var unsupported *schema.UnsupportedDimensionalityError
	require.ErrorAs(t, err, &unsupported)

	var fe *schema.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "data", fe.Path)
}

func Test_DependencyWheelSeries(t *testing.T) {
	t.Parallel()

	s, err := FromExternal(map[string]any{
		"keys": []any{"from", "to", "weight"},
		"data": []any{
			map[string]any{"from": "Brazil", "to": "Portugal", "weight": 5},
		},
		"nodes": []any{map[string]any{"id": "Brazil", "color": "#00ff00"}},
	}, "dependencywheel")
	require.NoError(t, err)

	assert.Equal(t, "Portugal", s.Records("data")[0].Get("to"))
	assert.Equal(t, "Brazil", s.Records("nodes")[0].Get("id"))
	assert.Equal(t, "dependencywheel", s.ToExternal()["type"])
}

func Test_Series_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range Types() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			typ, _ := Lookup(name)

			fields := map[string]any{
				"name":    "s",
				"x_axis":  1,
				"color":   map[string]any{"linear_gradient": map[string]any{"x1": 0, "x2": 1}, "stops": []any{}},
				"visible": false,
			}
			if len(typ.Shape.Tuples) > 0 {
				n := typ.Shape.Lengths()[0]
				tuple := make([]any, n)
				for i := range tuple {
					tuple[i] = i + 1
				}
				fields["data"] = []any{tuple, nil}
			}

			s, err := typ.Schema.FromFields(fields)
			require.NoError(t, err)

			back, err := typ.Schema.FromExternal(s.ToExternal())
			require.NoError(t, err)
			assert.True(t, s.Equal(withoutSubstituted(s, back)), "external round trip")

			stable, err := typ.Schema.FromExternal(back.ToExternal())
			require.NoError(t, err)
			assert.True(t, back.Equal(stable), "stable after one external pass")

			again, err := typ.Schema.FromFields(s.ToFields())
			require.NoError(t, err)
			assert.True(t, s.Equal(again), "keyword round trip")
		})
	}
}

func Test_FromExternal_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := FromExternal(map[string]any{"type": "spline"}, "bar")
	var unknown *UnknownTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "spline", unknown.Type)

	_, err = FromExternal(map[string]any{}, "")
	require.ErrorAs(t, err, &unknown)
}

// withoutSubstituted clears the fields decoding filled in that were unset in orig.
func withoutSubstituted(orig, decoded *schema.Record) *schema.Record {
	out := decoded.Clone()
	for _, f := range orig.Schema().Fields() {
		if f.Default.IsAbsent() && orig.State(f.Name) == schema.StateUnset {
			out.Clear(f.Name)
		}
	}
	return out
}
