// Package points declares the data point types of each series family and the
// dimensionality tables used to build them from raw series data.
package points

import (
	"github.com/reglet-dev/chartopts/internal/domain/options"
	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

// Base holds the fields every data point has.
var Base = schema.MustNew("DataBase",
	schema.Entity("accessibility", options.SeriesAccessibility),
	schema.String("class_name"),
	options.ColorField("color"),
	schema.Integer("color_index", schema.Min(0)),
	schema.Any("custom"),
	schema.String("description"),
	schema.Any("events"),
	schema.String("id"),
	schema.Integer("label_rank", schema.External("labelrank")),
	schema.String("name"),
	schema.Bool("selected"),
)

// Cartesian is a point on an x/y plane.
var Cartesian = Base.MustExtend("CartesianData",
	schema.Any("data_labels"),
	schema.Any("drag_drop"),
	schema.String("drilldown"),
	schema.Any("marker"),
	schema.XValue("x"),
	schema.Number("y"),
)

// Cartesian3D adds a z dimension, used for bubble-like and variable width points.
var Cartesian3D = Cartesian.MustExtend("Cartesian3DData",
	schema.Number("z"),
)

// Range is a point spanning low to high at one x position.
var Range = Cartesian.MustExtend("RangeData",
	schema.Number("low"),
	schema.Number("high"),
)

// Bar is a bar or column point with its own border styling.
var Bar = Cartesian.MustExtend("BarData",
	options.ColorField("border_color"),
	schema.Number("border_width", schema.Min(0)),
	options.DashStyle("dash_style"),
	schema.Number("point_width", schema.Min(0)),
)

// Waterfall is a waterfall point, optionally a running or intermediate sum.
var Waterfall = Cartesian.MustExtend("WaterfallData",
	schema.Bool("is_intermediate_sum"),
	schema.Bool("is_sum"),
)

// WindBarb carries wind speed and direction at a position.
var WindBarb = Cartesian.MustExtend("WindBarbData",
	schema.Number("direction", schema.Doc("Wind direction in degrees, 0 is north.")),
	schema.Number("value", schema.Doc("Wind speed in meters per second.")),
)

// XRange spans x to x2 on a category y.
var XRange = Cartesian.MustExtend("XRangeData",
	schema.Entity("partial_fill", options.PartialFill),
	schema.XValue("x2"),
)

// WeightedConnection links two nodes by id with a weight.
var WeightedConnection = Base.MustExtend("WeightedConnectionData",
	schema.String("from"),
	schema.String("to"),
	schema.Number("weight"),
	schema.Bool("outgoing"),
)
