// Package series declares the option sets that series types are composed from
// and the registry of composed series types.
package series

import (
	"github.com/reglet-dev/chartopts/internal/domain/options"
	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

// SeriesOptions are the plot options shared by every series type.
var SeriesOptions = schema.MustNew("SeriesOptions",
	schema.Entity("accessibility", options.SeriesAccessibility),
	schema.Bool("allow_point_select"),
	schema.Any("animation"),
	schema.Integer("animation_limit"),
	schema.String("boost_blending"),
	schema.Integer("boost_threshold"),
	schema.String("class_name"),
	schema.Bool("clip"),
	options.ColorField("color"),
	schema.AxisRef("color_axis"),
	schema.Integer("color_index", schema.Min(0)),
	schema.String("color_key"),
	schema.Bool("connect_ends"),
	schema.Bool("connect_nulls"),
	schema.Bool("crisp"),
	schema.Integer("crop_threshold"),
	schema.Enum("cursor", options.Cursors),
	schema.Any("custom"),
	options.DashStyle("dash_style"),
	schema.Any("data_labels"),
	schema.Any("data_sorting"),
	schema.String("description"),
	schema.Any("drag_drop"),
	schema.Bool("enable_mouse_tracking"),
	schema.Any("events"),
	schema.Enum("find_nearest_point_by", []string{"x", "xy"}),
	schema.Bool("get_extremes_for_all"),
	schema.Bool("include_in_data_export"),
	schema.ListOf("keys", schema.String("key")),
	schema.Any("label"),
	schema.String("linecap"),
	schema.Number("line_width", schema.Min(0)),
	schema.String("linked_to"),
	schema.Any("marker"),
	options.ColorField("negative_color"),
	schema.Any("on_point"),
	schema.Number("opacity", schema.Min(0), schema.Max(1)),
	schema.Any("point"),
	schema.Callback("point_description_formatter"),
	schema.Number("point_interval", schema.LibDefault(1)),
	schema.Enum("point_interval_unit", []string{"day", "month", "year"}),
	schema.Any("point_placement"),
	schema.Number("point_start", schema.LibDefault(0)),
	schema.Bool("relative_x_value"),
	schema.Bool("selected"),
	schema.Any("shadow"),
	schema.Bool("show_checkbox"),
	schema.Bool("show_in_legend"),
	schema.Bool("skip_keyboard_navigation"),
	schema.Bool("soft_threshold"),
	schema.Enum("stacking", options.Stackings),
	schema.Any("states"),
	schema.Any("step"),
	schema.Number("threshold", schema.Nulls(schema.NullDisables),
		schema.Doc("Null extends the series to the axis minimum.")),
	schema.Any("tooltip"),
	schema.Integer("turbo_threshold", schema.Min(0)),
	schema.Bool("visible"),
	schema.String("zone_axis"),
	schema.Any("zones"),
)

// SeriesBase holds the options that identify one series instance.
var SeriesBase = schema.MustNew("SeriesBase",
	schema.String("id"),
	schema.Integer("index", schema.Min(0)),
	schema.Integer("legend_index"),
	schema.String("name"),
	schema.Any("stack"),
	schema.Enum("type", typeNames),
	schema.AxisRef("x_axis"),
	schema.AxisRef("y_axis"),
	schema.Integer("z_index"),
)

// BaseBarOptions are shared by the bar and column family. Decoding an external
// document fills the absent bar defaults in; keyword construction leaves them unset.
var BaseBarOptions = schema.MustNew("BaseBarOptions",
	options.ColorField("border_color", schema.AbsentDefault("#ffffff")),
	schema.Number("border_radius", schema.AbsentDefault(0)),
	schema.Number("border_width", schema.Min(0)),
	schema.Bool("center_in_category", schema.AbsentDefault(false), schema.Since("8.0.1")),
	schema.Bool("color_by_point", schema.AbsentDefault(false)),
	schema.ListOf("colors", options.ColorField("color")),
	schema.Bool("grouping", schema.AbsentDefault(true)),
	schema.Number("group_padding", schema.AbsentDefault(0.2)),
	schema.Number("max_point_width", schema.Min(0)),
	schema.Number("min_point_length", schema.AbsentDefault(0)),
	schema.Number("point_padding", schema.AbsentDefault(0.1)),
	schema.Number("point_range", schema.WithDefault(schema.Forced(nil)),
		schema.Doc("Emitted as null unless set, so the range follows the closest point distance.")),
	schema.Number("point_width", schema.Min(0)),
)

// BarOptions add the 3-D options of bars and columns.
var BarOptions = schema.MustNew("BarOptions",
	schema.Number("depth", schema.AbsentDefault(25)),
	options.ColorField("edge_color"),
	schema.Number("edge_width", schema.AbsentDefault(1)),
	schema.Number("group_z_padding", schema.AbsentDefault(1)),
)

// WaterfallOptions style the connector lines and rising columns of a waterfall.
var WaterfallOptions = schema.MustNew("WaterfallOptions",
	options.ColorField("line_color", schema.LibDefault("#333333")),
	schema.Number("line_width", schema.Min(0), schema.WithDefault(schema.Literal(1))),
	options.ColorField("up_color"),
)

// WindBarbOptions place and size the barbs.
var WindBarbOptions = schema.MustNew("WindBarbOptions",
	schema.String("on_series"),
	schema.Number("vector_length", schema.LibDefault(20)),
	schema.Number("x_offset", schema.LibDefault(0)),
	schema.Number("y_offset", schema.LibDefault(-20)),
)

// XRangeOptions configure x-range bars.
var XRangeOptions = schema.MustNew("XRangeOptions",
	schema.Number("border_radius", schema.LibDefault(3)),
	schema.Entity("partial_fill", options.PartialFill),
)

// DependencyWheelOptions configure the wheel layout.
var DependencyWheelOptions = schema.MustNew("DependencyWheelOptions",
	options.ColorField("border_color"),
	schema.Number("border_width", schema.Min(0)),
	schema.ListOf("center", schema.Any("position")),
	schema.Bool("center_in_category", schema.Since("8.0.1")),
	schema.Bool("color_by_point"),
	schema.ListOf("colors", options.ColorField("color")),
	schema.Number("curve_factor", schema.LibDefault(0.6)),
	schema.Any("levels"),
	schema.Number("link_opacity", schema.Min(0), schema.Max(1), schema.LibDefault(0.5)),
	schema.Number("min_link_width", schema.LibDefault(0)),
	schema.Number("node_padding", schema.LibDefault(10)),
	schema.Number("node_width", schema.LibDefault(20)),
	schema.Number("start_angle", schema.LibDefault(0)),
)
