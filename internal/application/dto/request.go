// Package dto contains data transfer objects for application layer use cases.
package dto

// CheckRequest encapsulates all inputs needed to check a document.
type CheckRequest struct {
	// Document is checked as-is when set; otherwise Path is loaded.
	Document map[string]any
	Path     string
	// TargetVersion enables the compatibility step.
	TargetVersion string
	Expectations  []string
	Strict        bool
	Metadata      RequestMetadata
}

// ConvertRequest encapsulates the inputs of normalizing a document.
type ConvertRequest struct {
	Document map[string]any
	Path     string
	// Theme is layered underneath the document before decoding.
	Theme map[string]any
	// DefaultType fills chart.type when the document has none.
	DefaultType string
	Strict      bool
	Metadata    RequestMetadata
}

// ExportRequest encapsulates the inputs of rendering a document remotely.
type ExportRequest struct {
	Document map[string]any
	Path     string
	Theme    map[string]any
	Settings ExportSettings
	Strict   bool
	Metadata RequestMetadata
}

// ExportSettings are the render options sent alongside the chart.
type ExportSettings struct {
	Format         string
	Constructor    string
	Callback       string
	CustomCode     string
	Scale          float64
	Width          int
	UseBase64      bool
	NoDownload     bool
	AsyncRendering bool
}

// RenderRequest is what the application hands to a renderer: a decoded, trimmed
// options document and the render settings.
type RenderRequest struct {
	Options       map[string]any
	GlobalOptions map[string]any
	Settings      ExportSettings
	RequestID     string
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}
