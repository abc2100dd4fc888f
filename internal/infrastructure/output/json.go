package output

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/reglet-dev/chartopts/internal/domain/report"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFormatter formats check reports as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// Format writes the report as JSON.
func (f *JSONFormatter) Format(rep *report.Report) error {
	var data []byte
	var err error

	if f.indent {
		data, err = json.MarshalIndent(rep, "", "  ")
	} else {
		data, err = json.Marshal(rep)
	}

	if err != nil {
		return err
	}

	_, err = f.writer.Write(data)
	if err != nil {
		return err
	}

	// Add newline for better terminal output
	_, err = f.writer.Write([]byte("\n"))
	return err
}
