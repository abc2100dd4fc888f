package report

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Status_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status     Status
		precedence int
	}{
		{StatusFail, 3},
		{StatusError, 2},
		{StatusSkipped, 1},
		{StatusPass, 0},
		{Status("unknown"), -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.precedence, tt.status.Precedence())
		})
	}
}

func Test_Status_Validate(t *testing.T) {
	t.Parallel()

	for _, s := range []Status{StatusPass, StatusFail, StatusError, StatusSkipped} {
		assert.NoError(t, s.Validate())
	}
	assert.Error(t, Status("maybe").Validate())
	assert.True(t, StatusError.IsFailure())
	assert.False(t, StatusSkipped.IsFailure())
}

func Test_ParseSeverity(t *testing.T) {
	t.Parallel()

	sev, err := ParseSeverity("")
	require.NoError(t, err)
	assert.Equal(t, SeverityLow, sev)

	sev, err = ParseSeverity("high")
	require.NoError(t, err)
	assert.True(t, sev.Level() > SeverityMedium.Level())

	_, err = ParseSeverity("urgent")
	assert.Error(t, err)
}

func Test_Report_Finalize(t *testing.T) {
	t.Parallel()

	r := New("chart.yaml")
	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)

	r.Pass(RuleSchema, "document conforms")
	r.Add(Finding{Rule: RuleUnknownKey, Status: StatusFail, Path: "chart.colour", Message: "dropped"})
	r.Add(Finding{Rule: RuleDecode, Status: StatusFail, Severity: SeverityHigh, Message: "bad"})
	r.Skip(RuleCompatibility, "no target version")
	r.Finalize()

	assert.Equal(t, Summary{Total: 4, Passed: 1, Failed: 2, Skipped: 1}, r.Summary)
	assert.Equal(t, RuleDecode, r.Findings[0].Rule, "most severe failure first")
	assert.Equal(t, SeverityLow, r.Findings[1].Severity, "failures default to low")
	assert.Equal(t, RuleCompatibility, r.Findings[2].Rule)
	assert.Equal(t, StatusFail, r.Status())
	assert.Len(t, r.Failures(), 2)
	assert.False(t, r.EndTime.Before(r.StartTime))
}

func Test_Report_StatusEmpty(t *testing.T) {
	t.Parallel()

	r := New("x.json")
	r.Finalize()
	assert.Equal(t, StatusPass, r.Status())
	assert.Empty(t, r.Failures())
}

func Test_Report_AddConcurrent(t *testing.T) {
	t.Parallel()

	r := New("x.json")
	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			r.Pass(RuleExpectation, "ok")
		})
	}
	wg.Wait()
	r.Finalize()

	assert.Equal(t, 50, r.Summary.Passed)
	rules, groups := r.ByRule()
	assert.Equal(t, []string{RuleExpectation}, rules)
	assert.Len(t, groups[RuleExpectation], 50)
}
