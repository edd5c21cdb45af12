package chart

import (
	"github.com/MaxCodeXTC/charticulator/pkg/element"
	"github.com/MaxCodeXTC/charticulator/pkg/errors"
)

// Chart is the root of the element tree: an ordered sequence of glyphs plus
// the user-authored constraints relating them.
//
// The zero value is usable as an empty chart.
type Chart struct {
	glyphs      []*element.Instance
	constraints []Constraint
}

// New creates an empty chart.
func New() *Chart {
	return &Chart{}
}

// AddGlyph appends a glyph to the chart. The instance must be of a glyph
// class; the chart takes ownership.
func (c *Chart) AddGlyph(g *element.Instance) error {
	if !element.IsGlyphClass(g.Class()) {
		return errors.New(errors.ErrCodeInvalidClass, "class %q is not a glyph", g.Class().Name())
	}
	c.glyphs = append(c.glyphs, g)
	return nil
}

// NewGlyph creates, initializes, and appends a glyph of the named class,
// with initialized marks of the given classes attached in order.
func (c *Chart) NewGlyph(className string, markClasses ...string) (*element.Instance, error) {
	cls, ok := element.Lookup(className)
	if !ok {
		return nil, errors.New(errors.ErrCodeClassNotFound, "no class %q in catalog", className)
	}
	g := element.NewInitialized(cls)
	for _, mc := range markClasses {
		mcls, ok := element.Lookup(mc)
		if !ok {
			return nil, errors.New(errors.ErrCodeClassNotFound, "no class %q in catalog", mc)
		}
		if err := g.AddMark(element.NewInitialized(mcls)); err != nil {
			return nil, err
		}
	}
	if err := c.AddGlyph(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Glyphs returns the chart's glyphs in order.
// The returned slice is shared - treat it as read-only.
func (c *Chart) Glyphs() []*element.Instance { return c.glyphs }

// Glyph returns the glyph at index i and true, or nil and false if the
// index is out of range.
func (c *Chart) Glyph(i int) (*element.Instance, bool) {
	if i < 0 || i >= len(c.glyphs) {
		return nil, false
	}
	return c.glyphs[i], true
}

// GlyphCount returns the number of glyphs.
func (c *Chart) GlyphCount() int { return len(c.glyphs) }

// AddConstraint appends a user-authored constraint. Constraints are
// validated against the tree when a solve resolves them.
func (c *Chart) AddConstraint(cons Constraint) {
	c.constraints = append(c.constraints, cons)
}

// Constraints returns the user-authored constraints in insertion order.
// The returned slice is shared - treat it as read-only.
func (c *Chart) Constraints() []Constraint { return c.constraints }

// ClearConstraints removes all user-authored constraints. Interactive
// editors use this between gestures to replace transient drag pins.
func (c *Chart) ClearConstraints() {
	c.constraints = c.constraints[:0]
}

// resolve returns the instance addressed by ref, or an error if the
// reference points outside the tree.
func (c *Chart) resolve(ref AttrRef) (*element.Instance, error) {
	g, ok := c.Glyph(ref.Glyph)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConstraint, "glyph index %d out of range", ref.Glyph)
	}
	if ref.Mark < 0 {
		return g, nil
	}
	m, ok := g.Mark(ref.Mark)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConstraint, "mark index %d out of range in glyph %d", ref.Mark, ref.Glyph)
	}
	return m, nil
}

// Guides returns the alignment guides of every initialized instance after a
// successful solve, keyed by tree position.
func (c *Chart) Guides() []ElementGuides {
	var out []ElementGuides
	for gi, g := range c.glyphs {
		if g.Initialized() {
			out = append(out, ElementGuides{Glyph: gi, Mark: -1, Guides: g.Class().AlignmentGuides(g)})
		}
		for mi, m := range g.Marks() {
			if m.Initialized() {
				out = append(out, ElementGuides{Glyph: gi, Mark: mi, Guides: m.Class().AlignmentGuides(m)})
			}
		}
	}
	return out
}

// Handles returns the drag handles of every initialized instance after a
// successful solve, keyed by tree position.
func (c *Chart) Handles() []ElementHandles {
	var out []ElementHandles
	for gi, g := range c.glyphs {
		if g.Initialized() {
			out = append(out, ElementHandles{Glyph: gi, Mark: -1, Handles: g.Class().Handles(g)})
		}
		for mi, m := range g.Marks() {
			if m.Initialized() {
				out = append(out, ElementHandles{Glyph: gi, Mark: mi, Handles: m.Class().Handles(m)})
			}
		}
	}
	return out
}

// ElementGuides pairs one element's tree position with its guides.
// Mark is -1 when the element is the glyph itself.
type ElementGuides struct {
	Glyph  int             `json:"glyph"`
	Mark   int             `json:"mark"`
	Guides []element.Guide `json:"guides"`
}

// ElementHandles pairs one element's tree position with its handles.
// Mark is -1 when the element is the glyph itself.
type ElementHandles struct {
	Glyph   int              `json:"glyph"`
	Mark    int              `json:"mark"`
	Handles []element.Handle `json:"handles"`
}
