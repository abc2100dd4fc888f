package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/chartopts/internal/domain/report"
)

func createTestReport() *report.Report {
	rep := report.New("testdata/chart.yaml")
	rep.Target = "10.0.0"
	rep.StartTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rep.Pass(report.RuleSchema, "document matches the options schema")
	rep.Add(report.Finding{
		Rule:     report.RuleUnknownKey,
		Status:   report.StatusFail,
		Path:     "chart.colour",
		Message:  "unknown option dropped",
		Severity: report.SeverityLow,
	})
	rep.Add(report.Finding{
		Rule:     report.RuleCompatibility,
		Status:   report.StatusFail,
		Severity: report.SeverityMedium,
		Path:     "chart.zooming",
		Message:  "requires 10.2.1",
	})
	rep.Add(report.Finding{
		Rule:       report.RuleExpectation,
		Status:     report.StatusError,
		Severity:   report.SeverityHigh,
		Message:    "undefined: nope",
		Expression: "nope > 1",
	})
	rep.Skip(report.RuleDecode, "not requested")
	rep.Finalize()
	return rep
}

func TestTableFormatter_Format(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false
	require.NoError(t, formatter.Format(createTestReport()))

	out := buf.String()
	assert.Contains(t, out, "Document: testdata/chart.yaml")
	assert.Contains(t, out, "Target:   10.0.0")
	assert.Contains(t, out, "compatibility:")
	assert.Contains(t, out, "✗ chart.zooming: requires 10.2.1")
	assert.Contains(t, out, "⚠ undefined: nope")
	assert.Contains(t, out, "expect: nope > 1")
	assert.Contains(t, out, "✓ document matches the options schema")
	assert.Contains(t, out, "⊘ not requested")
	assert.Contains(t, out, "Failed:   2")
	assert.NotContains(t, out, "\033[", "color disabled")
}

func TestTableFormatter_Color(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, NewTableFormatter(&buf).Format(createTestReport()))
	assert.Contains(t, buf.String(), colorRed+"✗"+colorReset)
}

func TestTableFormatter_NoFindings(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	rep := report.New("(inline)")
	rep.Finalize()

	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false
	require.NoError(t, formatter.Format(rep))
	assert.Contains(t, buf.String(), "No findings.")
}

func TestJSONFormatter_Format(t *testing.T) {
	t.Parallel()

	for _, indent := range []bool{true, false} {
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(&buf, indent).Format(createTestReport()))

		var raw map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
		assert.Equal(t, "testdata/chart.yaml", raw["source"])
		assert.Equal(t, "10.0.0", raw["target_version"])

		findings := raw["findings"].([]any)
		require.Len(t, findings, 5)
		first := findings[0].(map[string]any)
		assert.Equal(t, "fail", first["status"], "failures sort first")
		assert.Equal(t, "compatibility", first["rule"], "most severe failure first")
		assert.NotContains(t, first, "Index")

		summary := raw["summary"].(map[string]any)
		assert.InDelta(t, 2, summary["failed"], 0)
		assert.Equal(t, indent, bytes.Contains(buf.Bytes(), []byte("\n  ")))
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, NewYAMLFormatter(&buf).Format(createTestReport()))

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "testdata/chart.yaml", raw["source"])
	assert.Len(t, raw["findings"], 5)
}
