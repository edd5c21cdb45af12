package element

// Axis identifies the coordinate axis a guide or handle is aligned with.
type Axis int

const (
	// AxisX marks vertical lines at a fixed x coordinate.
	AxisX Axis = iota
	// AxisY marks horizontal lines at a fixed y coordinate.
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// HandleSpan is the half-extent of a line handle along its own axis.
// Handles are conceptually unbounded lines; solvers and hit testing operate
// on finite floats, so a large finite span stands in for infinity.
const HandleSpan = 1e7

// Guide is one axis-aligned alignment line derived from solved attributes,
// tagged with the attribute it tracks for snapping purposes.
type Guide struct {
	Axis      Axis    `json:"axis"`
	Value     float64 `json:"value"`
	Attribute string  `json:"attribute"`
}

// Handle is one draggable line handle, bound to the attribute it controls.
// Dragging a handle seeds a strong pin on Attribute before the next solve.
type Handle struct {
	Axis      Axis    `json:"axis"`
	Attribute string  `json:"attribute"`
	Position  float64 `json:"position"`
	SpanLo    float64 `json:"span_lo"`
	SpanHi    float64 `json:"span_hi"`
}

// lineGuide builds a guide tracking attr at the given solved value.
func lineGuide(axis Axis, attr string, value float64) Guide {
	return Guide{Axis: axis, Value: value, Attribute: attr}
}

// lineHandle builds a line handle for attr with the standard unbounded span.
func lineHandle(axis Axis, attr string, position float64) Handle {
	return Handle{
		Axis:      axis,
		Attribute: attr,
		Position:  position,
		SpanLo:    -HandleSpan,
		SpanHi:    HandleSpan,
	}
}
