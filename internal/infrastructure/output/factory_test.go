package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/chartopts/internal/application/ports"
)

func TestFormatterFactory_Create(t *testing.T) {
	t.Parallel()
	factory := NewFormatterFactory()

	for _, format := range factory.SupportedFormats() {
		var buf bytes.Buffer
		f, err := factory.Create(format, &buf, ports.FormatterOptions{Indent: true, NoColor: true, ToolVersion: "dev"})
		require.NoError(t, err, format)
		require.NoError(t, f.Format(createTestReport()), format)
		assert.NotEmpty(t, buf.String(), format)
	}

	table, err := factory.Create("table", &bytes.Buffer{}, ports.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.False(t, table.(*TableFormatter).EnableColor)

	_, err = factory.Create("html", &bytes.Buffer{}, ports.FormatterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: html")
}
