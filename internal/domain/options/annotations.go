package options

import "github.com/reglet-dev/chartopts/internal/domain/schema"

// AnnotationPoint anchors an annotation. x and y are in axis units when the
// matching axis is given and in pixels otherwise.
var AnnotationPoint = schema.MustNew("AnnotationPoint",
	schema.XValue("x"),
	schema.AxisRef("x_axis", schema.Doc("Axis id or index. Omit to use pixel coordinates.")),
	schema.Number("y"),
	schema.AxisRef("y_axis", schema.Doc("Axis id or index. Omit to use pixel coordinates.")),
)

// AnnotationLabel is a text label placed at an annotation point.
var AnnotationLabel = schema.MustNew("AnnotationLabel",
	schema.Bool("allow_overlap"),
	ColorField("background_color"),
	ColorField("border_color"),
	schema.Number("border_width", schema.Min(0)),
	schema.String("format"),
	schema.Entity("point", AnnotationPoint),
	schema.String("shape"),
	schema.String("text"),
	schema.Number("x"),
	schema.Number("y"),
)

// Annotation is a set of labels attached to chart coordinates.
var Annotation = schema.MustNew("Annotation",
	schema.Enum("draggable", []string{"x", "y", "xy", ""}, schema.KeepEmpty()),
	schema.Any("events"),
	schema.String("id"),
	schema.EntityList("labels", AnnotationLabel),
	schema.Bool("visible"),
	schema.Integer("z_index"),
)
