package options

import "github.com/reglet-dev/chartopts/internal/domain/schema"

// DependencyWheelNode configures one node of a dependency wheel, matched to the
// series links by id.
var DependencyWheelNode = schema.MustNew("DependencyWheelNode",
	ColorField("color"),
	schema.Integer("color_index", schema.Min(0)),
	schema.Integer("column"),
	schema.Any("data_labels"),
	schema.String("description"),
	schema.String("id"),
	schema.Integer("level"),
	schema.String("name"),
	schema.Any("offset", schema.Doc("Pixel offset as a number or a percentage string.")),
)
