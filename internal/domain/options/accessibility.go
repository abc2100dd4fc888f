package options

import "github.com/reglet-dev/chartopts/internal/domain/schema"

const (
	// DefaultAfterChartFormat is the library's format for the region after the chart.
	DefaultAfterChartFormat = "{endOfChartMarker}"

	// DefaultAxisRangeDateFormat formats axis range dates read by screen readers.
	DefaultAxisRangeDateFormat = "%Y-%m-%d %H:%M:%S"

	// DefaultBeforeChartFormat is the library's format for the region before the chart.
	DefaultBeforeChartFormat = "<{headingTagName}>{chartTitle}</{headingTagName}>" +
		"<div>{typeDescription}</div><div>{chartSubtitle}</div>" +
		"<div>{chartLongdesc}</div><div>{playAsSoundButton}</div>" +
		"<div>{viewTableButton}</div><div>{xAxisDescription}</div>" +
		"<div>{yAxisDescription}</div><div>{annotationsTitle}{annotationsList}</div>"
)

// screenReaderFormat declares a region format. The empty string removes the
// region and nil disables the field explicitly.
func screenReaderFormat(name, def string) *schema.Field {
	return schema.String(name,
		schema.WithDefault(schema.Literal(def)),
		schema.KeepEmpty(),
		schema.Nulls(schema.NullDisables),
	)
}

// ScreenReaderSection configures the screen reader regions added before and
// after the chart.
var ScreenReaderSection = schema.MustNew("ScreenReaderSection",
	screenReaderFormat("after_chart_format", DefaultAfterChartFormat),
	schema.Callback("after_chart_formatter"),
	schema.String("axis_range_date_format",
		schema.WithDefault(schema.Literal(DefaultAxisRangeDateFormat))),
	screenReaderFormat("before_chart_format", DefaultBeforeChartFormat),
	schema.Callback("before_chart_formatter"),
	schema.Callback("on_play_as_sound_click"),
	schema.Callback("on_view_data_table_click"),
)

// Accessibility holds the chart level accessibility module options.
var Accessibility = schema.MustNew("Accessibility",
	schema.Bool("enabled", schema.LibDefault(true)),
	schema.String("description"),
	schema.String("type_description"),
	schema.Any("keyboard_navigation"),
	schema.Any("point"),
	schema.Bool("high_contrast_mode", schema.Since("11.4.0")),
	schema.Entity("screen_reader_section", ScreenReaderSection),
	schema.String("landmark_verbosity", schema.LibDefault("all")),
	schema.String("linked_description"),
)

// SeriesAccessibility holds the per series and per point accessibility options.
var SeriesAccessibility = schema.MustNew("SeriesAccessibility",
	schema.Bool("enabled"),
	schema.String("description"),
	schema.Bool("expose_as_group_only"),
	schema.Any("keyboard_navigation"),
	schema.Any("point"),
	schema.String("description_format", schema.Since("11.1.0")),
)
