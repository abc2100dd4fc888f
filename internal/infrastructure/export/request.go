// Package export renders charts through a Highcharts export server.
package export

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

// Formats are the output types the export server renders.
var Formats = []string{"png", "jpeg", "pdf", "svg"}

// Constructors select the Highcharts constructor used to render.
var Constructors = []string{"Chart", "Stock"}

// Request is the payload posted to the export server.
var Request = schema.MustNew("ExportRequest",
	schema.Any("options", schema.External("infile"),
		schema.Doc("Trimmed chart options.")),
	schema.Enum("format", Formats, schema.External("type"),
		schema.WithDefault(schema.Literal("png"))),
	schema.Number("scale", schema.Min(0), schema.WithDefault(schema.Literal(1))),
	schema.Number("width", schema.Min(0)),
	schema.Callback("callback"),
	schema.Enum("constructor", Constructors, schema.External("constr"),
		schema.WithDefault(schema.Literal("Chart"))),
	schema.Bool("use_base64", schema.External("b64"), schema.WithDefault(schema.Literal(false))),
	schema.Bool("no_download", schema.WithDefault(schema.Literal(false))),
	schema.Bool("async_rendering", schema.WithDefault(schema.Literal(false))),
	schema.Any("global_options"),
	schema.Any("data_options"),
	schema.Callback("custom_code"),
)

// MissingSettingsError lists the settings an export cannot proceed without.
type MissingSettingsError struct {
	Missing []string
}

func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("unable to export a chart: missing %s", strings.Join(e.Missing, ", "))
}

// NewRequest builds an export request from render settings. A zero scale
// means 1 and a zero width leaves the width to the chart.
func NewRequest(req dto.RenderRequest) (*schema.Record, error) {
	s := req.Settings
	fields := map[string]any{
		"options":         req.Options,
		"use_base64":      s.UseBase64,
		"no_download":     s.NoDownload,
		"async_rendering": s.AsyncRendering,
	}
	if s.Format != "" {
		fields["format"] = strings.ToLower(s.Format)
	}
	if s.Constructor != "" {
		fields["constructor"] = s.Constructor
	}
	if s.Scale != 0 {
		fields["scale"] = s.Scale
	}
	if s.Width != 0 {
		fields["width"] = s.Width
	}
	if s.Callback != "" {
		fields["callback"] = s.Callback
	}
	if s.CustomCode != "" {
		fields["custom_code"] = s.CustomCode
	}
	if len(req.GlobalOptions) > 0 {
		fields["global_options"] = req.GlobalOptions
	}
	return Request.FromFields(fields)
}

// missing reports the required settings that are not set.
func missing(r *schema.Record) error {
	var out []string
	for _, name := range []string{"options", "format", "constructor"} {
		if r.State(name) != schema.StateSet {
			out = append(out, name)
		}
	}
	if len(out) > 0 {
		return &MissingSettingsError{Missing: out}
	}
	return nil
}
