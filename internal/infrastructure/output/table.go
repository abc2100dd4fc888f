package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reglet-dev/chartopts/internal/domain/report"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats check reports as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the report as a table, findings grouped by rule.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(rep *report.Report) error {
	rule := f.colorize(strings.Repeat("─", 80), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Document: %s\n", f.colorize(rep.Source, colorBold))
	if rep.Target != "" {
		fmt.Fprintf(f.writer, "Target:   %s\n", rep.Target)
	}
	fmt.Fprintf(f.writer, "Checked:  %s\n", rep.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", rep.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	if len(rep.Findings) == 0 {
		fmt.Fprintln(f.writer, "No findings.")
		return nil
	}

	rules, groups := rep.ByRule()
	for _, name := range rules {
		fmt.Fprintln(f.writer, f.colorize(name+":", colorBold))
		for _, finding := range groups[name] {
			f.formatFinding(finding)
		}
		fmt.Fprintln(f.writer)
	}

	fmt.Fprintln(f.writer, rule)
	f.formatSummary(rep.Summary)
	return nil
}

// formatFinding formats a single finding.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatFinding(finding report.Finding) {
	symbol, color := f.getStatusInfo(finding.Status)

	location := ""
	if finding.Path != "" {
		location = f.colorize(finding.Path, colorCyan) + ": "
	}
	fmt.Fprintf(f.writer, "  %s %s%s\n", f.colorize(symbol, color), location, finding.Message)

	if finding.Expression != "" {
		fmt.Fprintf(f.writer, "      expect: %s\n", finding.Expression)
	}
	if finding.Status.IsFailure() && finding.Severity != "" {
		fmt.Fprintf(f.writer, "      severity: %s\n", finding.Severity)
	}
}

// formatSummary formats the summary statistics.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(summary report.Summary) {
	fmt.Fprintf(f.writer, "Findings: %d total\n", summary.Total)
	fmt.Fprintf(f.writer, "  %s Passed:   %d\n", f.colorize("✓", colorGreen), summary.Passed)
	fmt.Fprintf(f.writer, "  %s Failed:   %d\n", f.colorize("✗", colorRed), summary.Failed)
	fmt.Fprintf(f.writer, "  %s Errors:   %d\n", f.colorize("⚠", colorYellow), summary.Errors)
	fmt.Fprintf(f.writer, "  %s Skipped:  %d\n", f.colorize("⊘", colorGray), summary.Skipped)
}

// getStatusInfo returns a symbol and color for the given status.
func (f *TableFormatter) getStatusInfo(status report.Status) (string, string) {
	switch status {
	case report.StatusPass:
		return "✓", colorGreen
	case report.StatusFail:
		return "✗", colorRed
	case report.StatusError:
		return "⚠", colorYellow
	case report.StatusSkipped:
		return "⊘", colorGray
	default:
		return "?", colorReset
	}
}
