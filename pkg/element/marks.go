package element

import (
	"github.com/MaxCodeXTC/charticulator/pkg/attrs"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// Catalog names of the built-in mark classes.
const (
	ClassAnchorMark = "mark/anchor"
	ClassRectMark   = "mark/rect"
	ClassSymbolMark = "mark/symbol"
)

// =============================================================================
// Anchor Mark - point mark coupling the glyph center
// =============================================================================

var anchorMarkSchema = attrs.MustNew(
	attrs.Spec{Name: "x", Role: attrs.Intrinsic},
	attrs.Spec{Name: "y", Role: attrs.Intrinsic},
)

// anchorMark is a point mark with no geometry of its own. As the first mark
// of a glyph it contributes the offset between the glyph's nominal center
// and its bounding-box midpoint.
type anchorMark struct{}

func (anchorMark) Name() string          { return ClassAnchorMark }
func (anchorMark) Schema() *attrs.Schema { return anchorMarkSchema }

func (anchorMark) InitializeState(inst *Instance) {
	// Schema defaults (0, 0) are already consistent; nothing to derive.
}

func (anchorMark) BuildIntrinsicConstraints(sess *solver.Session, vars VarSource, inst *Instance) {
	// A point has no geometry invariants.
}

func (anchorMark) AlignmentGuides(inst *Instance) []Guide {
	if !inst.Initialized() {
		return nil
	}
	a := inst.Attrs()
	return []Guide{
		lineGuide(AxisX, "x", a.MustGet("x")),
		lineGuide(AxisY, "y", a.MustGet("y")),
	}
}

func (anchorMark) Handles(inst *Instance) []Handle {
	if !inst.Initialized() {
		return nil
	}
	a := inst.Attrs()
	return []Handle{
		lineHandle(AxisX, "x", a.MustGet("x")),
		lineHandle(AxisY, "y", a.MustGet("y")),
	}
}

// =============================================================================
// Rect Mark - rectangle-shaped mark
// =============================================================================

// Default dimensions of a fresh rectangle mark.
const (
	defaultRectMarkWidth  = 40
	defaultRectMarkHeight = 20
)

var rectMarkSchema = attrs.MustNew(
	attrs.Spec{Name: "width", Role: attrs.Intrinsic, Default: defaultRectMarkWidth},
	attrs.Spec{Name: "height", Role: attrs.Intrinsic, Default: defaultRectMarkHeight},
	attrs.Spec{Name: "x1", Role: attrs.Positional},
	attrs.Spec{Name: "y1", Role: attrs.Positional},
	attrs.Spec{Name: "x2", Role: attrs.Positional},
	attrs.Spec{Name: "y2", Role: attrs.Positional},
	attrs.Spec{Name: "cx", Role: attrs.Positional},
	attrs.Spec{Name: "cy", Role: attrs.Positional},
)

// rectMark is a rectangle-shaped mark with edge and center coordinates.
type rectMark struct{}

func (rectMark) Name() string          { return ClassRectMark }
func (rectMark) Schema() *attrs.Schema { return rectMarkSchema }

func (rectMark) InitializeState(inst *Instance) {
	a := inst.Attrs()
	w, h := a.MustGet("width"), a.MustGet("height")
	a.MustSet("x1", -w/2)
	a.MustSet("x2", w/2)
	a.MustSet("y1", -h/2)
	a.MustSet("y2", h/2)
	a.MustSet("cx", 0)
	a.MustSet("cy", 0)
}

// BuildIntrinsicConstraints emits:
//
//	x2 - x1 = width     y2 - y1 = height
//	2cx = x1 + x2       2cy = y1 + y2
func (rectMark) BuildIntrinsicConstraints(sess *solver.Session, vars VarSource, inst *Instance) {
	v := func(name string) solver.Variable {
		h, _ := vars.Var(inst, name)
		return h
	}
	w, h := v("width"), v("height")
	x1, y1, x2, y2 := v("x1"), v("y1"), v("x2"), v("y2")
	cx, cy := v("cx"), v("cy")

	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: x2}, {Coeff: -1, Var: x1}},
		[]solver.Term{{Coeff: 1, Var: w}})
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: y2}, {Coeff: -1, Var: y1}},
		[]solver.Term{{Coeff: 1, Var: h}})
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 2, Var: cx}},
		[]solver.Term{{Coeff: 1, Var: x1}, {Coeff: 1, Var: x2}})
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 2, Var: cy}},
		[]solver.Term{{Coeff: 1, Var: y1}, {Coeff: 1, Var: y2}})
}

func (rectMark) AlignmentGuides(inst *Instance) []Guide {
	if !inst.Initialized() {
		return nil
	}
	a := inst.Attrs()
	return []Guide{
		lineGuide(AxisX, "x1", a.MustGet("x1")),
		lineGuide(AxisX, "x2", a.MustGet("x2")),
		lineGuide(AxisX, "cx", a.MustGet("cx")),
		lineGuide(AxisY, "y1", a.MustGet("y1")),
		lineGuide(AxisY, "y2", a.MustGet("y2")),
		lineGuide(AxisY, "cy", a.MustGet("cy")),
	}
}

func (rectMark) Handles(inst *Instance) []Handle {
	if !inst.Initialized() {
		return nil
	}
	a := inst.Attrs()
	return []Handle{
		lineHandle(AxisX, "x1", a.MustGet("x1")),
		lineHandle(AxisX, "x2", a.MustGet("x2")),
		lineHandle(AxisY, "y1", a.MustGet("y1")),
		lineHandle(AxisY, "y2", a.MustGet("y2")),
	}
}

// =============================================================================
// Symbol Mark - point symbol with a sized area
// =============================================================================

var symbolMarkSchema = attrs.MustNew(
	attrs.Spec{Name: "x", Role: attrs.Intrinsic},
	attrs.Spec{Name: "y", Role: attrs.Intrinsic},
	// Symbol area in square pixels. The range is advisory: violations
	// produce OUT_OF_RANGE hints after a solve but never block it.
	attrs.Spec{Name: "size", Role: attrs.Intrinsic, Default: 60, Min: 0, Max: 2500, HasRange: true},
)

// symbolMark is a point symbol (circle, square, ...) with an area attribute.
type symbolMark struct{}

func (symbolMark) Name() string          { return ClassSymbolMark }
func (symbolMark) Schema() *attrs.Schema { return symbolMarkSchema }

func (symbolMark) InitializeState(inst *Instance) {
	// Schema defaults are already consistent; nothing to derive.
}

func (symbolMark) BuildIntrinsicConstraints(sess *solver.Session, vars VarSource, inst *Instance) {
	// A symbol has no geometry invariants; its size is a free intrinsic.
}

func (symbolMark) AlignmentGuides(inst *Instance) []Guide {
	if !inst.Initialized() {
		return nil
	}
	a := inst.Attrs()
	return []Guide{
		lineGuide(AxisX, "x", a.MustGet("x")),
		lineGuide(AxisY, "y", a.MustGet("y")),
	}
}

func (symbolMark) Handles(inst *Instance) []Handle {
	if !inst.Initialized() {
		return nil
	}
	a := inst.Attrs()
	return []Handle{
		lineHandle(AxisX, "x", a.MustGet("x")),
		lineHandle(AxisY, "y", a.MustGet("y")),
	}
}

func init() {
	MustRegister(anchorMark{})
	MustRegister(rectMark{})
	MustRegister(symbolMark{})
}
