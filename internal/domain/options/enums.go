package options

import "github.com/reglet-dev/chartopts/internal/domain/schema"

// DashStyles are the line dash styles the library understands.
var DashStyles = []string{
	"Dash",
	"DashDot",
	"Dot",
	"LongDash",
	"LongDashDot",
	"LongDashDotDot",
	"ShortDash",
	"ShortDashDot",
	"ShortDashDotDot",
	"ShortDot",
	"Solid",
}

// Cursors are the CSS cursors a series may show on hover.
var Cursors = []string{"alias", "all-scroll", "cell", "col-resize", "context-menu", "copy",
	"crosshair", "default", "e-resize", "ew-resize", "grab", "grabbing", "help", "move",
	"n-resize", "ne-resize", "nesw-resize", "no-drop", "none", "not-allowed", "ns-resize",
	"nw-resize", "nwse-resize", "pointer", "progress", "row-resize", "s-resize", "se-resize",
	"sw-resize", "text", "vertical-text", "w-resize", "wait", "zoom-in", "zoom-out"}

// Stackings are the stacking modes of stackable series.
var Stackings = []string{"normal", "overlap", "percent", "stream"}

// DashStyle declares a dash style field.
func DashStyle(name string, opts ...schema.FieldOption) *schema.Field {
	return schema.Enum(name, DashStyles, opts...)
}
