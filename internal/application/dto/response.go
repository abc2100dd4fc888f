package dto

import (
	"time"

	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

// ConvertResponse contains the normalized document.
type ConvertResponse struct {
	// Record is the decoded options graph.
	Record *schema.Record

	// Output is the trimmed external form of Record.
	Output map[string]any

	// Dropped lists the paths of unrecognized keys that were ignored.
	Dropped []string

	Metadata ResponseMetadata
}

// ExportResponse contains the rendered chart.
type ExportResponse struct {
	Body []byte

	// Format echoes the requested output format.
	Format string

	Metadata ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// RequestID from the original request
	RequestID string

	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// Duration is how long the request took
	Duration time.Duration
}
