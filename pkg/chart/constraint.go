package chart

import (
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// AttrRef addresses one attribute in the element tree by position.
// Mark is -1 when the reference targets the glyph itself. Positional
// addressing (rather than instance pointers) keeps user constraints valid
// across cloning and serialization.
type AttrRef struct {
	Glyph int    `json:"glyph"`
	Mark  int    `json:"mark"`
	Attr  string `json:"attr"`
}

// GlyphAttr builds a reference to a glyph attribute.
func GlyphAttr(glyph int, attr string) AttrRef {
	return AttrRef{Glyph: glyph, Mark: -1, Attr: attr}
}

// MarkAttr builds a reference to a mark attribute.
func MarkAttr(glyph, mark int, attr string) AttrRef {
	return AttrRef{Glyph: glyph, Mark: mark, Attr: attr}
}

// Term is one (coefficient, attribute) pair of a user constraint.
type Term struct {
	Coeff float64 `json:"coeff"`
	Ref   AttrRef `json:"ref"`
}

// Constraint is one user-authored linear relation
// sum(LHS) = sum(RHS) + Constant at the given strength.
type Constraint struct {
	Strength solver.Strength `json:"strength"`
	Constant float64         `json:"constant"`
	LHS      []Term          `json:"lhs"`
	RHS      []Term          `json:"rhs,omitempty"`
}

// Pin constrains a single attribute to a value. Drag interaction uses
// strong pins; numeric entry in a property panel typically uses Hard.
func Pin(ref AttrRef, value float64, strength solver.Strength) Constraint {
	return Constraint{
		Strength: strength,
		Constant: value,
		LHS:      []Term{{Coeff: 1, Ref: ref}},
	}
}

// Align constrains two attributes to be equal, e.g. the left edges of two
// glyphs for cross-element alignment.
func Align(a, b AttrRef, strength solver.Strength) Constraint {
	return Constraint{
		Strength: strength,
		LHS:      []Term{{Coeff: 1, Ref: a}},
		RHS:      []Term{{Coeff: 1, Ref: b}},
	}
}

// Offset constrains a = b + d, e.g. stacking glyphs at a fixed gap.
func Offset(a, b AttrRef, d float64, strength solver.Strength) Constraint {
	return Constraint{
		Strength: strength,
		Constant: d,
		LHS:      []Term{{Coeff: 1, Ref: a}},
		RHS:      []Term{{Coeff: 1, Ref: b}},
	}
}
