package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

func Test_Color_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("gradient", func(t *testing.T) {
		t.Parallel()
		got, err := Color.Resolve(map[string]any{
			"linearGradient": map[string]any{"x1": 0, "y1": 0, "x2": 0, "y2": 1},
			"stops":          []any{[]any{0, "#003399"}, []any{1, "#3366AA"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "gradient", got.Variant)

		g := got.Record()
		require.NotNil(t, g)
		assert.Equal(t, 1.0, g.Record("linear_gradient").Get("y2"))
		assert.Len(t, g.Get("stops"), 2)
	})

	t.Run("pattern", func(t *testing.T) {
		t.Parallel()
		got, err := Color.Resolve(map[string]any{"patternIndex": 2})
		require.NoError(t, err)
		assert.Equal(t, "pattern", got.Variant)
		assert.Equal(t, 2, got.Record().Get("pattern_index"))
	})

	t.Run("plain string", func(t *testing.T) {
		t.Parallel()
		got, err := Color.Resolve("#ffffff")
		require.NoError(t, err)
		assert.Equal(t, "string", got.Variant)
		assert.Equal(t, "#ffffff", got.Value)
	})

	t.Run("unrecognized dict", func(t *testing.T) {
		t.Parallel()
		_, err := Color.Resolve(map[string]any{"hue": 120})
		var unresolved *schema.UnresolvedUnionTypeError
		require.ErrorAs(t, err, &unresolved)
	})
}

func Test_ScreenReaderSection_Defaults(t *testing.T) {
	t.Parallel()

	out := ScreenReaderSection.NewRecord().ToExternal()
	assert.Equal(t, map[string]any{
		"afterChartFormat":    DefaultAfterChartFormat,
		"axisRangeDateFormat": DefaultAxisRangeDateFormat,
		"beforeChartFormat":   DefaultBeforeChartFormat,
	}, out)
}

func Test_ScreenReaderSection_EmptyAndNull(t *testing.T) {
	t.Parallel()

	r, err := ScreenReaderSection.FromFields(map[string]any{
		"after_chart_format":  "",
		"before_chart_format": nil,
	})
	require.NoError(t, err)

	out := r.ToExternal()
	assert.Equal(t, "", out["afterChartFormat"], "empty string removes the region")
	v, present := out["beforeChartFormat"]
	assert.True(t, present)
	assert.Nil(t, v, "nil disables explicitly")

	back, err := ScreenReaderSection.FromExternal(out)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func Test_AnnotationPoint_AxisRefs(t *testing.T) {
	t.Parallel()

	p, err := AnnotationPoint.FromExternal(map[string]any{
		"x": 3, "y": 5, "xAxis": 0, "yAxis": "secondary",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Get("x_axis"))
	assert.Equal(t, "secondary", p.Get("y_axis"))
	assert.Equal(t, 3.0, p.Get("x"))

	_, err = AnnotationPoint.FromExternal(map[string]any{"xAxis": 1.5})
	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "x_axis", ve.Field)
}

func Test_Annotation_NestedLabels(t *testing.T) {
	t.Parallel()

	a, err := Annotation.FromExternal(map[string]any{
		"draggable": "",
		"labels": []any{
			map[string]any{"text": "peak", "point": map[string]any{"x": 1, "y": 2, "xAxis": 0, "yAxis": 0}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "", a.Get("draggable"))
	labels := a.Records("labels")
	require.Len(t, labels, 1)
	assert.Equal(t, 2.0, labels[0].Record("point").Get("y"))

	out := a.ToExternal()
	assert.Equal(t, []any{map[string]any{
		"text":  "peak",
		"point": map[string]any{"x": 1.0, "y": 2.0, "xAxis": 0, "yAxis": 0},
	}}, out["labels"])
}

func Test_PartialFill_Color(t *testing.T) {
	t.Parallel()

	r, err := PartialFill.FromExternal(map[string]any{"amount": 0.4, "fill": "#fa0"})
	require.NoError(t, err)
	c, ok := r.Choice("fill")
	require.True(t, ok)
	assert.Equal(t, "string", c.Variant)

	_, err = PartialFill.FromExternal(map[string]any{"amount": 2})
	require.Error(t, err)
}
