package output

import (
	"encoding/xml"
	"io"

	"github.com/reglet-dev/chartopts/internal/domain/report"
)

// JUnitFormatter formats check reports as JUnit XML: one suite per document and
// one test case per finding.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitError struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Format writes the report as JUnit XML.
func (f *JUnitFormatter) Format(rep *report.Report) error {
	suite := JUnitTestSuite{
		Name:     rep.Source,
		Tests:    rep.Summary.Total,
		Failures: rep.Summary.Failed,
		Errors:   rep.Summary.Errors,
		Skipped:  rep.Summary.Skipped,
		Time:     rep.Duration.Seconds(),
	}

	for _, finding := range rep.Findings {
		c := JUnitTestCase{
			Name:      testCaseName(finding),
			ClassName: finding.Rule,
		}

		switch finding.Status {
		case report.StatusFail:
			c.Failure = &JUnitFailure{
				Message: finding.Message,
				Content: details(finding),
			}
		case report.StatusError:
			c.Error = &JUnitError{
				Message: finding.Message,
				Content: details(finding),
			}
		case report.StatusSkipped:
			c.Skipped = &JUnitSkipped{
				Message: finding.Message,
			}
		}

		suite.TestCases = append(suite.TestCases, c)
	}

	suites := JUnitTestSuites{
		Name:       "chartopts check",
		Tests:      rep.Summary.Total,
		Failures:   rep.Summary.Failed,
		Errors:     rep.Summary.Errors,
		Time:       rep.Duration.Seconds(),
		TestSuites: []JUnitTestSuite{suite},
	}

	_, err := f.writer.Write([]byte(xml.Header))
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}

func testCaseName(finding report.Finding) string {
	switch {
	case finding.Expression != "":
		return finding.Expression
	case finding.Path != "":
		return finding.Path
	}
	return finding.Rule
}

func details(finding report.Finding) string {
	out := "severity: " + string(finding.Severity)
	if finding.Path != "" {
		out += "\npath: " + finding.Path
	}
	return out
}
