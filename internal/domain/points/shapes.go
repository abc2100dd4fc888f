package points

// Dimensionality tables. A tuple length maps to exactly one field order.
var (
	// CartesianShape: [x, y] or a bare y.
	CartesianShape = Shape{
		Schema: Cartesian,
		Tuples: map[int][]string{2: {"x", "y"}},
		Scalar: "y",
		AutoX:  true,
	}

	// Cartesian3DShape: [y, z] or [x, y, z].
	Cartesian3DShape = Shape{
		Schema: Cartesian3D,
		Tuples: map[int][]string{2: {"y", "z"}, 3: {"x", "y", "z"}},
		AutoX:  true,
	}

	// RangeShape: [low, high] or [x, low, high].
	RangeShape = Shape{
		Schema: Range,
		Tuples: map[int][]string{2: {"low", "high"}, 3: {"x", "low", "high"}},
		AutoX:  true,
	}

	// BarShape: [x, y] or a bare y.
	BarShape = Shape{
		Schema: Bar,
		Tuples: map[int][]string{2: {"x", "y"}},
		Scalar: "y",
		AutoX:  true,
	}

	// WaterfallShape: [x, y] or a bare y.
	WaterfallShape = Shape{
		Schema: Waterfall,
		Tuples: map[int][]string{2: {"x", "y"}},
		Scalar: "y",
		AutoX:  true,
	}

	// WindBarbShape: [x, value, direction] or [x, value, direction, y].
	WindBarbShape = Shape{
		Schema: WindBarb,
		Tuples: map[int][]string{
			3: {"x", "value", "direction"},
			4: {"x", "value", "direction", "y"},
		},
		AutoX: true,
	}

	// XRangeShape accepts objects only.
	XRangeShape = Shape{
		Schema:     XRange,
		Dimensions: []string{"x", "x2", "y"},
	}

	// WeightedConnectionShape accepts objects only.
	WeightedConnectionShape = Shape{
		Schema:     WeightedConnection,
		Dimensions: []string{"from", "to", "weight"},
	}
)
