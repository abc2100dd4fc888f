package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_JSONSchema_Properties(t *testing.T) {
	t.Parallel()

	doc := testBorder.JSONSchema(true)

	assert.Equal(t, "Border", doc["title"])
	assert.Equal(t, false, doc["additionalProperties"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	width, ok := props["width"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"number", "null"}, width["type"])
	assert.Equal(t, 0.0, width["minimum"])
}

func Test_Validator_Violations(t *testing.T) {
	t.Parallel()

	v, err := testItem.Compile(true)
	require.NoError(t, err)

	violations, err := v.Violations(map[string]any{
		"name":      "ok",
		"lineWidth": nil,
		"dashStyle": "Solid",
	})
	require.NoError(t, err)
	assert.Empty(t, violations)

	violations, err = v.Violations(map[string]any{
		"lineWidth": "wide",
		"dashStyle": "Wavy",
		"bogus":     true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, violations)

	var locations []string
	for _, vi := range violations {
		locations = append(locations, vi.Location)
	}
	assert.Contains(t, locations, "/lineWidth")
	assert.Contains(t, locations, "/dashStyle")

	require.Error(t, v.ValidateDocument(map[string]any{"lineWidth": "wide"}))
}

func Test_Validator_LenientAllowsUnknownKeys(t *testing.T) {
	t.Parallel()

	v, err := testItem.Compile(false)
	require.NoError(t, err)
	require.NoError(t, v.ValidateDocument(map[string]any{"bogus": true}))
}
