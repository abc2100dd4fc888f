package output

import (
	"bytes"
	"testing"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/chartopts/internal/domain/report"
)

func TestSARIFFormatter_Format(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, NewSARIFFormatter(&buf, "1.2.3").Format(createTestReport()))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "2.1.0", raw["version"])
	assert.Contains(t, raw, "$schema")

	runs := raw["runs"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)
	assert.Contains(t, run, "tool")
	assert.Contains(t, run, "results")
	assert.Contains(t, run, "invocations")
}

func TestSARIFFormatter_ValidatesAgainstSchema(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, NewSARIFFormatter(&buf, "1.2.3").Format(createTestReport()))

	rep, err := sarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, rep.Validate())
}

func TestSARIFFormatter_ToolAndRules(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, NewSARIFFormatter(&buf, "1.2.3").Format(createTestReport()))

	rep, err := sarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rep.Runs, 1)

	driver := rep.Runs[0].Tool.Driver
	require.NotNil(t, driver.Name)
	assert.Equal(t, "chartopts", *driver.Name)
	require.NotNil(t, driver.Version)
	assert.Equal(t, "1.2.3", *driver.Version)

	assert.Len(t, driver.Rules, 5, "one rule per rule reported")
}

func TestSARIFFormatter_Results(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, NewSARIFFormatter(&buf, "").Format(createTestReport()))

	rep, err := sarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	results := rep.Runs[0].Results
	require.Len(t, results, 5)

	first := results[0]
	assert.Equal(t, "warning", first.Level)
	assert.Equal(t, "fail", first.Kind)

	require.Len(t, first.Locations, 1)
	uri := first.Locations[0].PhysicalLocation.ArtifactLocation.URI
	require.NotNil(t, uri)
	assert.Equal(t, "testdata/chart.yaml", *uri)
}

func TestSARIFFormatter_InlineSourceHasNoLocation(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	rep := report.New("(inline)")
	rep.Pass(report.RuleSchema, "ok")
	rep.Finalize()
	require.NoError(t, NewSARIFFormatter(&buf, "").Format(rep))

	parsed, err := sarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	result := parsed.Runs[0].Results[0]
	assert.Empty(t, result.Locations)
	assert.Equal(t, "note", result.Level)
	assert.Equal(t, "pass", result.Kind)
}

func Test_statusToLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   report.Status
		severity report.Severity
		want     string
	}{
		{report.StatusPass, "", "note"},
		{report.StatusFail, report.SeverityHigh, "error"},
		{report.StatusFail, report.SeverityLow, "warning"},
		{report.StatusError, "", "error"},
		{report.StatusSkipped, "", "none"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusToLevel(tt.status, tt.severity), tt.status)
	}
}
