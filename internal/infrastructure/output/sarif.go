// Package output provides formatters for check reports.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/reglet-dev/chartopts/internal/domain/report"
)

// ruleDescriptions document the rules of the check service.
var ruleDescriptions = map[string]string{
	report.RuleSchema:        "The document matches the JSON Schema of the options model.",
	report.RuleDecode:        "The document decodes into the typed options model.",
	report.RuleUnknownKey:    "Every key in the document is a recognized option.",
	report.RuleCompatibility: "Every option in use exists in the target library version.",
	report.RuleExpectation:   "User supplied expectations hold for the normalized document.",
	report.RuleSecret:        "The document embeds no credentials.",
}

// SARIFFormatter formats check reports as SARIF 2.1.0 JSON. Rules map to SARIF
// rules, findings to results located in the checked document.
type SARIFFormatter struct {
	writer  io.Writer
	version string
}

// NewSARIFFormatter creates a new SARIF formatter. version is recorded as the
// tool version.
func NewSARIFFormatter(writer io.Writer, version string) *SARIFFormatter {
	return &SARIFFormatter{
		writer:  writer,
		version: version,
	}
}

// Format writes the report as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(rep *report.Report) error {
	out := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("chartopts", "https://github.com/reglet-dev/chartopts")
	if f.version != "" {
		run.Tool.Driver.Version = &f.version
	}

	rules, _ := rep.ByRule()
	for _, name := range rules {
		run.Tool.Driver.AddRule(newRule(name))
	}

	uri := artifactURI(rep.Source)
	for _, finding := range rep.Findings {
		run.AddResult(newResult(finding, uri))
	}
	if uri != "" {
		run.AddArtifact(sarif.NewArtifact().WithLocation(sarif.NewArtifactLocation().WithURI(uri)))
	}

	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(rep.Summary.Errors == 0)
	startTime := rep.StartTime.UTC().Format("2006-01-02T15:04:05.000Z")
	endTime := rep.EndTime.UTC().Format("2006-01-02T15:04:05.000Z")
	invocation.StartTimeUtc = &startTime
	invocation.EndTimeUtc = &endTime
	props := sarif.NewPropertyBag()
	props.Add("reportId", rep.ID)
	if rep.Target != "" {
		props.Add("targetVersion", rep.Target)
	}
	invocation.WithProperties(props)
	run.AddInvocation(invocation)

	summary := sarif.NewPropertyBag()
	summary.Add("summary", rep.Summary)
	run.WithProperties(summary)

	out.AddRun(run)
	if err := out.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}
	_, err := f.writer.Write([]byte("\n"))
	return err
}

func newRule(name string) *sarif.ReportingDescriptor {
	desc, ok := ruleDescriptions[name]
	if !ok {
		desc = name
	}
	rule := sarif.NewReportingDescriptor().WithID(name)
	rule.WithName(name)
	rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &desc})
	rule.WithFullDescription(&sarif.MultiformatMessageString{Text: &desc})
	return rule
}

func newResult(finding report.Finding, uri string) *sarif.Result {
	result := sarif.NewRuleResult(finding.Rule)
	result.Level = statusToLevel(finding.Status, finding.Severity)
	result.Kind = statusToKind(finding.Status)

	msg := finding.Message
	if finding.Path != "" {
		msg = finding.Path + ": " + msg
	}
	result.Message = sarif.NewTextMessage(msg)

	if uri != "" {
		loc := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().WithArtifactLocation(sarif.NewArtifactLocation().WithURI(uri)))
		result.Locations = []*sarif.Location{loc}
	}

	props := sarif.NewPropertyBag()
	if finding.Path != "" {
		props.Add("path", finding.Path)
	}
	if finding.Severity != "" {
		props.Add("severity", string(finding.Severity))
	}
	if finding.Expression != "" {
		props.Add("expression", finding.Expression)
	}
	result.WithProperties(props)
	return result
}

func statusToLevel(status report.Status, severity report.Severity) string {
	switch status {
	case report.StatusPass:
		return "note"
	case report.StatusFail:
		if severity == report.SeverityHigh {
			return "error"
		}
		return "warning"
	case report.StatusError:
		return "error"
	case report.StatusSkipped:
		return "none"
	default:
		return "warning"
	}
}

func statusToKind(status report.Status) string {
	switch status {
	case report.StatusPass:
		return "pass"
	case report.StatusSkipped:
		return "notApplicable"
	default:
		return "fail"
	}
}

// artifactURI makes source relative to the working directory when possible.
// Inline documents have no artifact.
func artifactURI(source string) string {
	if source == "" || strings.HasPrefix(source, "(") {
		return ""
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return filepath.ToSlash(source)
	}
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return "file://" + filepath.ToSlash(abs)
}

func ptrBool(b bool) *bool {
	return &b
}
