package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Union_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		variant string
		wantErr bool
	}{
		{name: "external gradient", input: map[string]any{"linearGradient": map[string]any{"x1": 0}}, variant: "gradient"},
		{name: "keyword gradient", input: map[string]any{"linear_gradient": map[string]any{"x1": 0}}, variant: "gradient"},
		{name: "json string", input: `{"linearGradient": {"x1": 0}, "stops": []}`, variant: "gradient"},
		{name: "plain color", input: "#ffffff", variant: "string"},
		{name: "unrecognized dict", input: map[string]any{"shade": 1}, wantErr: true},
		{name: "number", input: 12, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := testColor.Resolve(tt.input)
			if tt.wantErr {
				var unresolved *UnresolvedUnionTypeError
				require.ErrorAs(t, err, &unresolved)
				assert.Equal(t, tt.input, unresolved.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.variant, got.Variant)
		})
	}
}

func Test_Union_ResolveKeepsInstances(t *testing.T) {
	t.Parallel()

	g := testGradient.NewRecord()
	got, err := testColor.Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, "gradient", got.Variant)
	assert.Same(t, g, got.Record())

	again, err := testColor.Resolve(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func Test_Union_InternalKeysBeatExternalKeys(t *testing.T) {
	t.Parallel()

	// Both spellings present: the keyword form is tried first and must accept
	// only keyword keys.
	_, err := testColor.Resolve(map[string]any{
		"linear_gradient": map[string]any{},
		"linearGradient":  map[string]any{},
	})
	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"linearGradient"}, unknown.Keys)
}

func Test_Union_FieldErrorNamesField(t *testing.T) {
	t.Parallel()

	_, err := testItem.FromExternal(map[string]any{"color": map[string]any{"shade": 1}})
	var unresolved *UnresolvedUnionTypeError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "color", unresolved.Field)
	assert.Equal(t, "Color", unresolved.Union)
}
