package validate

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Numeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		opts    []Option
		want    float64
		wantErr bool
	}{
		{name: "int", input: 5, want: 5},
		{name: "float", input: 0.25, want: 0.25},
		{name: "numeric string", input: " 12.5 ", want: 12.5},
		{name: "minimum ok", input: 0, opts: []Option{Minimum(0)}, want: 0},
		{name: "below minimum", input: -1, opts: []Option{Minimum(0)}, wantErr: true},
		{name: "above maximum", input: 11, opts: []Option{Maximum(10)}, wantErr: true},
		{name: "bool rejected", input: true, wantErr: true},
		{name: "NaN rejected", input: math.NaN(), wantErr: true},
		{name: "word rejected", input: "abc", wantErr: true},
		{name: "slice rejected", input: []any{1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok, err := Numeric(tt.input, false, tt.opts...)
			if tt.wantErr {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.input, ve.Received, "error carries the received value")
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Numeric_Empty(t *testing.T) {
	t.Parallel()

	_, ok, err := Numeric(nil, true)
	require.NoError(t, err)
	assert.False(t, ok, "empty input with allowEmpty is unset")

	_, _, err = Numeric(nil, false)
	require.Error(t, err)
	_, _, err = Numeric("", false)
	require.Error(t, err)
}

func Test_Integer(t *testing.T) {
	t.Parallel()

	got, ok, err := Integer(3.0, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	_, _, err = Integer(3.5, false)
	require.Error(t, err)

	got, _, err = Integer(-1<<40, false)
	require.NoError(t, err)
	assert.Equal(t, -1<<40, got)

	for _, v := range []any{1e19, "-1e300", math.MaxFloat64} {
		_, ok, err := Integer(v, false)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "%v", v)
		assert.Equal(t, "integer out of range", ve.Reason)
		assert.False(t, ok)
	}
}

func Test_String(t *testing.T) {
	t.Parallel()

	got, ok, err := String("abc", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	got, _, err = String([]byte("xyz"), false)
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	_, _, err = String(12, false)
	require.Error(t, err, "numbers are not strings")

	_, ok, err = String("", true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_Bool(t *testing.T) {
	t.Parallel()

	got, ok, err := Bool(false, false)
	require.NoError(t, err)
	assert.True(t, ok, "false is a value, not empty")
	assert.False(t, got)

	got, _, err = Bool("true", false)
	require.NoError(t, err)
	assert.True(t, got)

	_, _, err = Bool("maybe", false)
	require.Error(t, err)
}

func Test_Enum(t *testing.T) {
	t.Parallel()

	allowed := []string{"Chart", "Stock"}

	got, ok, err := Enum("Stock", allowed, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Stock", got)

	_, _, err = Enum("stock", allowed, false)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Reason, "Chart, Stock")
}

func Test_Date_Truncates(t *testing.T) {
	t.Parallel()

	got, ok, err := Date("2024-03-05T17:30:00Z", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
}

func Test_Datetime(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC)

	got, _, err := Datetime(want, false)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, _, err = Datetime("2024-03-05T17:30:00Z", false)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, _, err = Datetime(want.UnixMilli(), false)
	require.NoError(t, err)
	assert.True(t, want.Equal(got), "numbers are millisecond timestamps")

	_, _, err = Datetime(true, false)
	require.Error(t, err)
	_, _, err = Datetime("not a date", false)
	require.Error(t, err)

	got, _, err = Datetime(8.64e15, false)
	require.NoError(t, err)
	assert.Equal(t, 275760, got.Year(), "latest JavaScript date")

	_, _, err = Datetime(1e19, false)
	require.Error(t, err, "timestamps beyond the JavaScript date range")
	_, _, err = Datetime(-1e300, false)
	require.Error(t, err)
}

func Test_ValidationError_WithField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("", "x", "expected a number")
	named := err.WithField("border_width")

	assert.Empty(t, err.Field, "original is untouched")
	assert.Equal(t, "border_width", named.Field)
	assert.Contains(t, named.Error(), "border_width")
}

func Test_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty([]any{}))
	assert.True(t, IsEmpty(map[string]any{}))
	assert.False(t, IsEmpty(0))
	assert.False(t, IsEmpty(false))
	assert.False(t, IsEmpty([]any{nil}))
}
