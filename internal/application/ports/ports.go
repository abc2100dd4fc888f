// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	"github.com/reglet-dev/chartopts/internal/domain/report"
)

// DocumentLoader reads an options document from a file.
type DocumentLoader interface {
	// LoadDocument returns the document with JSON value types.
	LoadDocument(path string) (map[string]any, error)
}

// Renderer turns an options document into an image or document.
type Renderer interface {
	Render(ctx context.Context, req dto.RenderRequest) ([]byte, error)
}

// ReportFormatter writes a check report in one output format.
type ReportFormatter interface {
	Format(rep *report.Report) error
}

// FormatterOptions tunes formatter output.
type FormatterOptions struct {
	// ToolVersion is recorded by formats that carry tool metadata.
	ToolVersion string
	Indent      bool
	NoColor     bool
}

// FormatterFactory creates report formatters by name.
type FormatterFactory interface {
	Create(format string, w io.Writer, options FormatterOptions) (ReportFormatter, error)
	SupportedFormats() []string
}

// Leak is a credential found in a document. It never carries the secret.
type Leak struct {
	// Path locates the value, e.g. "exporting.url" or "series[0].name".
	Path        string
	Description string
}

// SecretScanner finds credentials embedded in documents.
type SecretScanner interface {
	Scan(doc map[string]any) []Leak
}
