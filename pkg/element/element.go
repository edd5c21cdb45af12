package element

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MaxCodeXTC/charticulator/pkg/attrs"
	"github.com/MaxCodeXTC/charticulator/pkg/errors"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// VarSource resolves an instance attribute to its solver variable for the
// current solve session. It is implemented by the solve orchestrator, which
// allocates one variable per numeric attribute per live instance.
type VarSource interface {
	// Var returns the variable bound to the named attribute of inst.
	// The second result is false if inst does not participate in the
	// session or the attribute is not numeric.
	Var(inst *Instance, attr string) (solver.Variable, bool)
}

// Class is one entry of the element catalog. Implementations are immutable
// singletons shared by all instances of that kind; dispatch is by class
// identity, never by copying class state into instances.
type Class interface {
	// Name returns the catalog identifier, e.g. "glyph/rect".
	Name() string

	// Schema returns the class's attribute declaration.
	Schema() *attrs.Schema

	// InitializeState assigns every declared attribute a concrete starting
	// value consistent with the class's intrinsic constraints. Called
	// exactly once per instance by [Instance.Initialize].
	InitializeState(inst *Instance)

	// BuildIntrinsicConstraints registers the hard equations defining the
	// class's geometry invariants into the live solve session. Called once
	// per solve by the orchestrator.
	BuildIntrinsicConstraints(sess *solver.Session, vars VarSource, inst *Instance)

	// AlignmentGuides returns axis-aligned guide lines derived from solved
	// attributes, one per notable coordinate, each tagged with the
	// attribute it tracks. Pure function of solved state.
	AlignmentGuides(inst *Instance) []Guide

	// Handles returns the draggable handles of the instance, each bound to
	// the attribute it controls. Pure function of solved state.
	Handles(inst *Instance) []Handle
}

// IsGlyphClass reports whether the class describes a glyph (a composite
// element that owns marks), as opposed to a mark.
func IsGlyphClass(c Class) bool { return strings.HasPrefix(c.Name(), "glyph/") }

// IsMarkClass reports whether the class describes a mark.
func IsMarkClass(c Class) bool { return strings.HasPrefix(c.Name(), "mark/") }

// Instance is one live element: an attribute map plus a back-reference to
// its class. Glyph instances own an ordered sequence of child marks.
//
// The zero value is not usable - use [New].
type Instance struct {
	id    string
	class Class
	attrs *attrs.Map  // nil while Uninitialized
	marks []*Instance // glyph instances only
}

// New creates an Uninitialized instance of the class with a fresh unique ID.
func New(class Class) *Instance {
	return &Instance{id: uuid.NewString(), class: class}
}

// NewInitialized creates an instance and immediately initializes it.
// This is the common path for programmatic chart construction.
func NewInitialized(class Class) *Instance {
	inst := New(class)
	_ = inst.Initialize() // cannot fail on a fresh instance
	return inst
}

// ID returns the instance's unique identifier.
func (inst *Instance) ID() string { return inst.id }

// SetID overrides the generated identifier. Used by document import to
// preserve IDs across round trips; IDs are identity only and never affect
// solving.
func (inst *Instance) SetID(id string) {
	if id != "" {
		inst.id = id
	}
}

// Class returns the instance's class.
func (inst *Instance) Class() Class { return inst.class }

// Initialized reports whether the instance holds a schema-complete
// attribute map.
func (inst *Instance) Initialized() bool { return inst.attrs != nil }

// Initialize transitions the instance from Uninitialized to Initialized by
// running the class's default-state initializer. The transition happens at
// most once; a second call fails.
func (inst *Instance) Initialize() error {
	if inst.attrs != nil {
		return errors.New(errors.ErrCodeInvalidInput, "instance %s already initialized", inst.id)
	}
	inst.attrs = attrs.NewMap(inst.class.Schema())
	inst.class.InitializeState(inst)
	return nil
}

// Attrs returns the instance's attribute map, or nil while Uninitialized.
func (inst *Instance) Attrs() *attrs.Map { return inst.attrs }

// AddMark appends a child mark. The receiving instance must be a glyph and
// the child a mark; the glyph takes exclusive ownership of the child.
func (inst *Instance) AddMark(m *Instance) error {
	if !IsGlyphClass(inst.class) {
		return errors.New(errors.ErrCodeInvalidClass, "class %q cannot own marks", inst.class.Name())
	}
	if !IsMarkClass(m.class) {
		return errors.New(errors.ErrCodeInvalidClass, "class %q is not a mark", m.class.Name())
	}
	inst.marks = append(inst.marks, m)
	return nil
}

// Marks returns the ordered child marks.
// The returned slice is shared - treat it as read-only.
func (inst *Instance) Marks() []*Instance { return inst.marks }

// Mark returns the child mark at index i and true, or nil and false if the
// index is out of range. Index-based lookup keeps cross-references between a
// glyph and its marks stable under cloning and serialization.
func (inst *Instance) Mark(i int) (*Instance, bool) {
	if i < 0 || i >= len(inst.marks) {
		return nil, false
	}
	return inst.marks[i], true
}

// FirstMark returns the first child mark, or nil and false if there is none.
func (inst *Instance) FirstMark() (*Instance, bool) {
	return inst.Mark(0)
}
