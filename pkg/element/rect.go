package element

import (
	"github.com/MaxCodeXTC/charticulator/pkg/attrs"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// ClassRectGlyph is the catalog name of the rectangle-shaped glyph.
const ClassRectGlyph = "glyph/rect"

// Default dimensions of a fresh rectangle glyph.
const (
	defaultRectWidth  = 60
	defaultRectHeight = 100
)

// rectGlyphSchema declares the rectangle glyph's attributes: a nominal
// center and size (intrinsic, anchored by strong stays), the bounding box
// corners, and the intrinsic frame - a copy of the bounding box centered at
// the origin, used for alignment guides and for laying out child marks.
var rectGlyphSchema = attrs.MustNew(
	attrs.Spec{Name: "x", Role: attrs.Intrinsic},
	attrs.Spec{Name: "y", Role: attrs.Intrinsic},
	attrs.Spec{Name: "width", Role: attrs.Intrinsic, Default: defaultRectWidth},
	attrs.Spec{Name: "height", Role: attrs.Intrinsic, Default: defaultRectHeight},
	attrs.Spec{Name: "x1", Role: attrs.Positional},
	attrs.Spec{Name: "y1", Role: attrs.Positional},
	attrs.Spec{Name: "x2", Role: attrs.Positional},
	attrs.Spec{Name: "y2", Role: attrs.Positional},
	attrs.Spec{Name: "ix1", Role: attrs.Positional},
	attrs.Spec{Name: "iy1", Role: attrs.Positional},
	attrs.Spec{Name: "ix2", Role: attrs.Positional},
	attrs.Spec{Name: "iy2", Role: attrs.Positional},
	attrs.Spec{Name: "icx", Role: attrs.Positional},
	attrs.Spec{Name: "icy", Role: attrs.Positional},
)

// rectGlyph implements Class for rectangle-shaped glyphs.
type rectGlyph struct{}

func (rectGlyph) Name() string          { return ClassRectGlyph }
func (rectGlyph) Schema() *attrs.Schema { return rectGlyphSchema }

// InitializeState derives every coordinate arithmetically from the nominal
// center and size, so the default state is already a fixed point of the
// class's intrinsic constraints.
func (rectGlyph) InitializeState(inst *Instance) {
	a := inst.Attrs()
	x, y := a.MustGet("x"), a.MustGet("y")
	w, h := a.MustGet("width"), a.MustGet("height")

	a.MustSet("x1", x-w/2)
	a.MustSet("x2", x+w/2)
	a.MustSet("y1", y-h/2)
	a.MustSet("y2", y+h/2)
	a.MustSet("ix1", -w/2)
	a.MustSet("ix2", w/2)
	a.MustSet("iy1", -h/2)
	a.MustSet("iy2", h/2)
	a.MustSet("icx", 0)
	a.MustSet("icy", 0)
}

// BuildIntrinsicConstraints emits the rectangle's geometry invariants:
//
//	x2 - x1 = width         y2 - y1 = height
//	ix2 - ix1 = width       iy2 - iy1 = height
//	ix1 + ix2 = 0           iy1 + iy2 = 0
//	icx = 0                 icy = 0
//	2x = x1 + x2 + 2*mx     2y = y1 + y2 + 2*my
//
// where (mx, my) is the position of the first child mark, coupling the
// glyph's nominal center to its bounding-box midpoint plus the mark's
// offset. Without a positioned first mark the offset term is omitted.
func (rectGlyph) BuildIntrinsicConstraints(sess *solver.Session, vars VarSource, inst *Instance) {
	v := func(name string) solver.Variable {
		h, _ := vars.Var(inst, name)
		return h
	}
	x, y := v("x"), v("y")
	w, h := v("width"), v("height")
	x1, y1, x2, y2 := v("x1"), v("y1"), v("x2"), v("y2")
	ix1, iy1, ix2, iy2 := v("ix1"), v("iy1"), v("ix2"), v("iy2")
	icx, icy := v("icx"), v("icy")

	// Bounding box and intrinsic frame extents.
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: x2}, {Coeff: -1, Var: x1}},
		[]solver.Term{{Coeff: 1, Var: w}})
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: y2}, {Coeff: -1, Var: y1}},
		[]solver.Term{{Coeff: 1, Var: h}})
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: ix2}, {Coeff: -1, Var: ix1}},
		[]solver.Term{{Coeff: 1, Var: w}})
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: iy2}, {Coeff: -1, Var: iy1}},
		[]solver.Term{{Coeff: 1, Var: h}})

	// Intrinsic frame centered at the origin.
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: ix1}, {Coeff: 1, Var: ix2}}, nil)
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: iy1}, {Coeff: 1, Var: iy2}}, nil)
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: icx}}, nil)
	sess.AddLinear(solver.Hard, 0,
		[]solver.Term{{Coeff: 1, Var: icy}}, nil)

	// Nominal center = bounding-box midpoint + first mark offset.
	centerRHSX := []solver.Term{{Coeff: 1, Var: x1}, {Coeff: 1, Var: x2}}
	centerRHSY := []solver.Term{{Coeff: 1, Var: y1}, {Coeff: 1, Var: y2}}
	if mark, ok := inst.FirstMark(); ok {
		if mx, ok := vars.Var(mark, "x"); ok {
			centerRHSX = append(centerRHSX, solver.Term{Coeff: 2, Var: mx})
		}
		if my, ok := vars.Var(mark, "y"); ok {
			centerRHSY = append(centerRHSY, solver.Term{Coeff: 2, Var: my})
		}
	}
	sess.AddLinear(solver.Hard, 0, []solver.Term{{Coeff: 2, Var: x}}, centerRHSX)
	sess.AddLinear(solver.Hard, 0, []solver.Term{{Coeff: 2, Var: y}}, centerRHSY)
}

// AlignmentGuides returns one guide per notable intrinsic-frame coordinate:
// left and right edges plus horizontal center, and the vertical analogues.
func (rectGlyph) AlignmentGuides(inst *Instance) []Guide {
	if !inst.Initialized() {
		return nil
	}
	a := inst.Attrs()
	return []Guide{
		lineGuide(AxisX, "ix1", a.MustGet("ix1")),
		lineGuide(AxisX, "ix2", a.MustGet("ix2")),
		lineGuide(AxisX, "icx", a.MustGet("icx")),
		lineGuide(AxisY, "iy1", a.MustGet("iy1")),
		lineGuide(AxisY, "iy2", a.MustGet("iy2")),
		lineGuide(AxisY, "icy", a.MustGet("icy")),
	}
}

// Handles returns one line handle per boundary edge.
func (rectGlyph) Handles(inst *Instance) []Handle {
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

func init() {
	MustRegister(rectGlyph{})
}
