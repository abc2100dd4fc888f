package report

import "fmt"

// Status is the outcome of one check step.
type Status string

const (
	// StatusPass indicates the step found nothing to report
	StatusPass Status = "pass"
	// StatusFail indicates the document breaks a rule
	StatusFail Status = "fail"
	// StatusError indicates the step could not run
	StatusError Status = "error"
	// StatusSkipped indicates the step was not requested or depends on a failed step
	StatusSkipped Status = "skipped"
)

// Precedence returns the numeric precedence of this status.
// Higher values win when findings are rolled up into a report status.
//
// Precedence: Fail (3) > Error (2) > Skipped (1) > Pass (0)
func (s Status) Precedence() int {
	switch s {
	case StatusFail:
		return 3
	case StatusError:
		return 2
	case StatusSkipped:
		return 1
	case StatusPass:
		return 0
	default:
		return -1
	}
}

// IsFailure returns true if this status represents a failure or error
func (s Status) IsFailure() bool {
	return s == StatusFail || s == StatusError
}

// Validate returns an error if the status value is invalid
func (s Status) Validate() error {
	switch s {
	case StatusPass, StatusFail, StatusError, StatusSkipped:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", s)
	}
}

// Severity ranks failing findings.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Level returns the numeric severity level (for ordering)
func (s Severity) Level() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseSeverity parses a severity name; the empty string is low.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case "":
		return SeverityLow, nil
	case SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s), nil
	}
	return "", fmt.Errorf("invalid severity: %s", s)
}
