package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

func xs(recs []*schema.Record) []any {
	out := make([]any, len(recs))
	for i, r := range recs {
		out[i] = r.Get("x")
	}
	return out
}

func ys(recs []*schema.Record) []any {
	out := make([]any, len(recs))
	for i, r := range recs {
		out[i] = r.Get("y")
	}
	return out
}

func Test_Coerce_OneDimensional(t *testing.T) {
	t.Parallel()

	got, err := Coerce([]any{0, 5, 3, 5}, BarShape, DefaultSequence)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, []any{0.0, 5.0, 3.0, 5.0}, ys(got))
	assert.Equal(t, []any{0.0, 1.0, 2.0, 3.0}, xs(got))
}

func Test_Coerce_TypedSlices(t *testing.T) {
	t.Parallel()

	got, err := Coerce([]float64{1.5, 2.5}, CartesianShape, DefaultSequence)
	require.NoError(t, err)
	assert.Equal(t, []any{1.5, 2.5}, ys(got))

	got, err = Coerce([][]int{{1, 2}, {3, 4}}, CartesianShape, DefaultSequence)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 3.0}, xs(got))
}

func Test_Coerce_TwoDimensionalCategories(t *testing.T) {
	t.Parallel()

	got, err := Coerce([]any{[]any{"A", 0}, []any{"B", 5}}, BarShape, DefaultSequence)
	require.NoError(t, err)

	assert.Equal(t, []any{"A", "B"}, xs(got))
	assert.Equal(t, []any{0.0, 5.0}, ys(got))
}

func Test_Coerce_SequenceAndStability(t *testing.T) {
	t.Parallel()

	raw := []any{10, map[string]any{"y": 4}, []any{100, 1}, 7}
	seq := Sequence{Start: 2000, Interval: 5}

	first, err := Coerce(raw, CartesianShape, seq)
	require.NoError(t, err)
	second, err := Coerce(raw, CartesianShape, seq)
	require.NoError(t, err)

	assert.Equal(t, []any{2000.0, 2005.0, 100.0, 2015.0}, xs(first), "explicit x kept, slot index used for the rest")
	assert.Equal(t, xs(first), xs(second), "coercion is deterministic")
}

func Test_Coerce_NullKeepsSlot(t *testing.T) {
	t.Parallel()

	got, err := Coerce([]any{1, nil, 3}, CartesianShape, DefaultSequence)
	require.NoError(t, err)
	require.Len(t, got, 3)

	empty := got[1]
	assert.Equal(t, schema.StateNull, empty.State("x"))
	assert.Equal(t, schema.StateNull, empty.State("y"))
	assert.Equal(t, map[string]any{"x": nil, "y": nil}, empty.ToExternal())
	assert.Equal(t, 2.0, got[2].Get("x"), "slot positions are significant")
}

func Test_Coerce_ThreeDimensional(t *testing.T) {
	t.Parallel()

	got, err := Coerce([]any{[]any{1, 2}, []any{9, 3, 4}}, Cartesian3DShape, DefaultSequence)
	require.NoError(t, err)

	assert.Equal(t, 0.0, got[0].Get("x"), "[y, z] takes its x from the sequence")
	assert.Equal(t, 1.0, got[0].Get("y"))
	assert.Equal(t, 2.0, got[0].Get("z"))
	assert.Equal(t, 9.0, got[1].Get("x"))
	assert.Equal(t, 4.0, got[1].Get("z"))
}

func Test_Coerce_WindBarb(t *testing.T) {
	t.Parallel()

	got, err := Coerce([]any{[]any{0, 10, 90}, []any{1, 12, 180, 5}}, WindBarbShape, DefaultSequence)
	require.NoError(t, err)

	assert.Equal(t, 90.0, got[0].Get("direction"))
	assert.Equal(t, schema.StateUnset, got[0].State("y"))
	assert.Equal(t, 12.0, got[1].Get("value"))
	assert.Equal(t, 5.0, got[1].Get("y"))

	_, err = Coerce([]any{7}, WindBarbShape, DefaultSequence)
	var uncoercible *schema.UncoercibleElementError
	require.ErrorAs(t, err, &uncoercible, "wind barbs take no bare scalar")
}

func Test_Coerce_UnsupportedDimensionality(t *testing.T) {
	t.Parallel()

	_, err := Coerce([]any{[]any{1, 2, 3}}, BarShape, DefaultSequence)
	var unsupported *schema.UnsupportedDimensionalityError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, 3, unsupported.Length)
	assert.Equal(t, []int{2}, unsupported.Allowed)

	_, err = Coerce([]any{[]any{1, 2}}, XRangeShape, DefaultSequence)
	require.ErrorAs(t, err, &unsupported)
}

func Test_Coerce_Uncoercible(t *testing.T) {
	t.Parallel()

	_, err := Coerce([]any{struct{}{}}, BarShape, DefaultSequence)
	var uncoercible *schema.UncoercibleElementError
	require.ErrorAs(t, err, &uncoercible)
	assert.Equal(t, 0, uncoercible.Index)
	assert.Equal(t, "BarData", uncoercible.Type)

	_, err = Coerce([]any{WindBarb.NewRecord()}, BarShape, DefaultSequence)
	require.ErrorAs(t, err, &uncoercible, "sibling point types are not compatible")
}

func Test_Coerce_Instances(t *testing.T) {
	t.Parallel()

	bar, err := Bar.FromFields(map[string]any{"y": 3})
	require.NoError(t, err)
	generic, err := Cartesian.FromFields(map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)

	got, err := Coerce([]any{bar, generic}, BarShape, DefaultSequence)
	require.NoError(t, err)

	assert.Same(t, bar, got[0], "instances are kept as-is")
	assert.Equal(t, schema.StateUnset, got[0].State("x"), "caller's record is not repositioned")
	assert.Same(t, Bar, got[1].Schema(), "compatible variant is upcast")
	assert.Equal(t, 2.0, got[1].Get("y"))
}

func Test_Coerce_ElementErrorsCarryIndex(t *testing.T) {
	t.Parallel()

	_, err := Coerce([]any{1, "tall"}, BarShape, DefaultSequence)
	var fe *schema.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "[1]", fe.Path)

	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "y", ve.Field)
}

func Test_Coerce_XRangeObjects(t *testing.T) {
	t.Parallel()

	got, err := Coerce([]any{
		map[string]any{"x": 1, "x2": 3, "y": 0, "partialFill": map[string]any{"amount": 0.5}},
		nil,
	}, XRangeShape, DefaultSequence)
	require.NoError(t, err)

	assert.Equal(t, 3.0, got[0].Get("x2"))
	assert.Equal(t, 0.5, got[0].Record("partial_fill").Get("amount"))
	assert.Equal(t, map[string]any{"x": nil, "x2": nil, "y": nil}, got[1].ToExternal())
}

func Test_Coerce_SingleElement(t *testing.T) {
	t.Parallel()

	got, err := Coerce(map[string]any{"from": "a", "to": "b", "weight": 2}, WeightedConnectionShape, DefaultSequence)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Get("to"))

	got, err = Coerce(nil, WeightedConnectionShape, DefaultSequence)
	require.NoError(t, err)
	assert.Empty(t, got)
}
