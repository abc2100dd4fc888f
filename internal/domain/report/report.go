// Package report provides the result model of checking an options document.
package report

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Rules reported by the check service.
const (
	RuleSchema        = "schema"
	RuleDecode        = "decode"
	RuleUnknownKey    = "unknown-key"
	RuleCompatibility = "compatibility"
	RuleExpectation   = "expectation"
	RuleSecret        = "secret"
)

// Report is the result of checking one document.
type Report struct {
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	ID        string        `json:"id" yaml:"id"`
	Source    string        `json:"source" yaml:"source"`
	Target    string        `json:"target_version,omitempty" yaml:"target_version,omitempty"`
	Findings  []Finding     `json:"findings" yaml:"findings"`
	Summary   Summary       `json:"summary" yaml:"summary"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	mu        sync.Mutex
}

// Finding is one observation about a document.
type Finding struct {
	Rule     string   `json:"rule" yaml:"rule"`
	Status   Status   `json:"status" yaml:"status"`
	Severity Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
	Path     string   `json:"path,omitempty" yaml:"path,omitempty"`
	Message  string   `json:"message" yaml:"message"`
	// Expression is set for expectation findings.
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`
	// Index preserves the order findings were added in.
	Index int `json:"-" yaml:"-"`
}

// Summary provides aggregate statistics about the findings.
type Summary struct {
	Total   int `json:"total" yaml:"total"`
	Passed  int `json:"passed" yaml:"passed"`
	Failed  int `json:"failed" yaml:"failed"`
	Errors  int `json:"errors" yaml:"errors"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// New creates an empty report for source.
func New(source string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Source:    source,
		StartTime: time.Now(),
		Findings:  make([]Finding, 0),
	}
}

// Add records a finding. Safe for concurrent use.
func (r *Report) Add(f Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.Index = len(r.Findings)
	if f.Severity == "" && f.Status.IsFailure() {
		f.Severity = SeverityLow
	}
	r.Findings = append(r.Findings, f)
}

// Pass records a passing finding for rule.
func (r *Report) Pass(rule, message string) {
	r.Add(Finding{Rule: rule, Status: StatusPass, Message: message})
}

// Skip records a skipped rule.
func (r *Report) Skip(rule, reason string) {
	r.Add(Finding{Rule: rule, Status: StatusSkipped, Message: reason})
}

// Finalize stamps the end time, orders findings and computes the summary.
// Failing findings come first, most severe first; ties keep insertion order.
func (r *Report) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Status.Precedence() != b.Status.Precedence() {
			return a.Status.Precedence() > b.Status.Precedence()
		}
		if a.Severity.Level() != b.Severity.Level() {
			return a.Severity.Level() > b.Severity.Level()
		}
		return a.Index < b.Index
	})

	r.Summary = Summary{Total: len(r.Findings)}
	for _, f := range r.Findings {
		switch f.Status {
		case StatusPass:
			r.Summary.Passed++
		case StatusFail:
			r.Summary.Failed++
		case StatusError:
			r.Summary.Errors++
		case StatusSkipped:
			r.Summary.Skipped++
		}
	}
}

// Status rolls the findings up into the status with the highest precedence.
// A report without findings passes.
func (r *Report) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := StatusPass
	for _, f := range r.Findings {
		if f.Status.Precedence() > out.Precedence() {
			out = f.Status
		}
	}
	return out
}

// Failures returns the failing and erroring findings.
func (r *Report) Failures() []Finding {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Finding
	for _, f := range r.Findings {
		if f.Status.IsFailure() {
			out = append(out, f)
		}
	}
	return out
}

// ByRule groups findings by rule, in rule order of first appearance.
func (r *Report) ByRule() ([]string, map[string][]Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rules []string
	groups := map[string][]Finding{}
	for _, f := range r.Findings {
		if _, ok := groups[f.Rule]; !ok {
			rules = append(rules, f.Rule)
		}
		groups[f.Rule] = append(groups[f.Rule], f)
	}
	return rules, groups
}
