package output

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJUnitFormatter_Format(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, NewJUnitFormatter(&buf).Format(createTestReport()))
	assert.True(t, strings.HasPrefix(buf.String(), xml.Header))

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))

	assert.Equal(t, 5, suites.Tests)
	assert.Equal(t, 2, suites.Failures)
	assert.Equal(t, 1, suites.Errors)
	require.Len(t, suites.TestSuites, 1)

	suite := suites.TestSuites[0]
	assert.Equal(t, "testdata/chart.yaml", suite.Name)
	assert.Equal(t, 1, suite.Skipped)
	require.Len(t, suite.TestCases, 5)

	byName := map[string]JUnitTestCase{}
	for _, c := range suite.TestCases {
		byName[c.Name] = c
	}

	zoom := byName["chart.zooming"]
	assert.Equal(t, "compatibility", zoom.ClassName)
	require.NotNil(t, zoom.Failure)
	assert.Equal(t, "requires 10.2.1", zoom.Failure.Message)
	assert.Contains(t, zoom.Failure.Content, "severity: medium")

	expect := byName["nope > 1"]
	require.NotNil(t, expect.Error)
	assert.Nil(t, expect.Failure)

	skipped := byName["decode"]
	require.NotNil(t, skipped.Skipped)
	assert.Equal(t, "not requested", skipped.Skipped.Message)

	pass := byName["schema"]
	assert.Nil(t, pass.Failure)
	assert.Nil(t, pass.Error)
	assert.Nil(t, pass.Skipped)
}
