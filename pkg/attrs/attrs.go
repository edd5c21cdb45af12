// Package attrs provides attribute schemas and per-instance attribute maps.
//
// Every element class declares a Schema: an ordered, immutable list of
// attribute specifications (name, kind, role, stay strength, default value,
// optional soft range). Every element instance owns a Map laid out by its
// class's schema. The map rejects reads and writes of names outside the
// schema, so an instance can never drift from its class declaration.
package attrs

import (
	"fmt"

	"github.com/MaxCodeXTC/charticulator/pkg/errors"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// Role classifies how an attribute participates in solving.
type Role int

const (
	// Positional attributes are derived coordinates (corners, centers).
	// They are determined exactly by intrinsic constraints and carry no
	// stay constraint of their own.
	Positional Role = iota
	// Intrinsic attributes are semantically meaningful (width, height,
	// nominal position). They receive a stay constraint at the schema's
	// declared strength, anchoring them to their current value, and may
	// carry an advisory default range.
	Intrinsic
	// Computed attributes are filled in outside the solver (e.g. by a
	// scale mapping) and are read-only during a solve.
	Computed
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case Positional:
		return "positional"
	case Intrinsic:
		return "intrinsic"
	case Computed:
		return "computed"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Kind is the value type of an attribute. There is no implicit coercion
// between kinds: numeric accessors fail on text attributes and vice versa.
type Kind int

const (
	// Number is a scalar float64 attribute, the only kind visible to the solver.
	Number Kind = iota
	// Text is a string attribute (labels, symbol names). Never solved.
	Text
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Spec declares one attribute of a class schema.
type Spec struct {
	Name     string
	Kind     Kind
	Role     Role
	Strength solver.Strength // stay strength for Intrinsic attributes
	Default  float64         // default numeric value
	Text     string          // default text value for Text attributes

	// Optional advisory range for Intrinsic attributes. Violations produce
	// OUT_OF_RANGE hints after a solve but never block it.
	Min, Max float64
	HasRange bool
}

// Schema is an ordered, immutable set of attribute specs shared by all
// instances of a class. Build one with New at package init time and treat
// it as read-only afterwards.
type Schema struct {
	specs []Spec
	index map[string]int
}

// New builds a schema from the given specs.
// Attribute names must be valid (see errors.ValidateAttributeName) and
// unique within the schema. Intrinsic numeric attributes without an
// explicit stay strength default to solver.Strong.
func New(specs ...Spec) (*Schema, error) {
	s := &Schema{
		specs: make([]Spec, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for i, sp := range specs {
		if err := errors.ValidateAttributeName(sp.Name); err != nil {
			return nil, err
		}
		if _, dup := s.index[sp.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidAttribute, "duplicate attribute %q", sp.Name)
		}
		if sp.Role == Intrinsic && sp.Kind == Number && sp.Strength == 0 {
			sp.Strength = solver.Strong
		}
		s.specs[i] = sp
		s.index[sp.Name] = i
	}
	return s, nil
}

// MustNew is like New but panics on error. It is intended for package-level
// schema declarations of built-in classes, where a bad schema is a defect.
func MustNew(specs ...Spec) *Schema {
	s, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of declared attributes.
func (s *Schema) Len() int { return len(s.specs) }

// Specs returns the attribute declarations in schema order.
// The returned slice is shared - treat it as read-only.
func (s *Schema) Specs() []Spec { return s.specs }

// Spec returns the declaration of the named attribute and true,
// or a zero Spec and false if the name is not in the schema.
func (s *Schema) Spec(name string) (Spec, bool) {
	i, ok := s.index[name]
	if !ok {
		return Spec{}, false
	}
	return s.specs[i], true
}

// Index returns the schema position of the named attribute.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Map is the per-instance attribute storage, laid out by a schema.
// Values are stored by schema position; named access is validated against
// the schema so out-of-schema attributes cannot exist.
type Map struct {
	schema *Schema
	nums   []float64
	texts  []string
}

// NewMap creates a schema-complete map populated with the schema defaults.
func NewMap(schema *Schema) *Map {
	m := &Map{
		schema: schema,
		nums:   make([]float64, schema.Len()),
		texts:  make([]string, schema.Len()),
	}
	for i, sp := range schema.specs {
		m.nums[i] = sp.Default
		m.texts[i] = sp.Text
	}
	return m
}

// Schema returns the owning class's schema.
func (m *Map) Schema() *Schema { return m.schema }

// Get returns the numeric value of the named attribute.
// It fails with UNKNOWN_ATTRIBUTE for names outside the schema and with
// INVALID_ATTRIBUTE for non-numeric attributes (no implicit coercion).
func (m *Map) Get(name string) (float64, error) {
	i, ok := m.schema.index[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownAttribute, "no attribute %q in schema", name)
	}
	if m.schema.specs[i].Kind != Number {
		return 0, errors.New(errors.ErrCodeInvalidAttribute, "attribute %q is %s, not number", name, m.schema.specs[i].Kind)
	}
	return m.nums[i], nil
}

// Set writes the numeric value of the named attribute, with the same
// validation as Get.
func (m *Map) Set(name string, v float64) error {
	i, ok := m.schema.index[name]
	if !ok {
		return errors.New(errors.ErrCodeUnknownAttribute, "no attribute %q in schema", name)
	}
	if m.schema.specs[i].Kind != Number {
		return errors.New(errors.ErrCodeInvalidAttribute, "attribute %q is %s, not number", name, m.schema.specs[i].Kind)
	}
	m.nums[i] = v
	return nil
}

// GetText returns the text value of the named attribute.
func (m *Map) GetText(name string) (string, error) {
	i, ok := m.schema.index[name]
	if !ok {
		return "", errors.New(errors.ErrCodeUnknownAttribute, "no attribute %q in schema", name)
	}
	if m.schema.specs[i].Kind != Text {
		return "", errors.New(errors.ErrCodeInvalidAttribute, "attribute %q is %s, not text", name, m.schema.specs[i].Kind)
	}
	return m.texts[i], nil
}

// SetText writes the text value of the named attribute.
func (m *Map) SetText(name string, v string) error {
	i, ok := m.schema.index[name]
	if !ok {
		return errors.New(errors.ErrCodeUnknownAttribute, "no attribute %q in schema", name)
	}
	if m.schema.specs[i].Kind != Text {
		return errors.New(errors.ErrCodeInvalidAttribute, "attribute %q is %s, not text", name, m.schema.specs[i].Kind)
	}
	m.texts[i] = v
	return nil
}

// GetIndex returns the numeric value at schema position i.
// Used by the solve orchestrator, which iterates specs in schema order.
func (m *Map) GetIndex(i int) float64 { return m.nums[i] }

// SetIndex writes the numeric value at schema position i.
func (m *Map) SetIndex(i int, v float64) { m.nums[i] = v }

// MustGet is like Get but panics on error. It is intended for class code
// reading attributes the class itself declared, where a miss is a defect.
func (m *Map) MustGet(name string) float64 {
	v, err := m.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// MustSet is like Set but panics on error, for class initializers writing
// attributes the class itself declared.
func (m *Map) MustSet(name string, v float64) {
	if err := m.Set(name, v); err != nil {
		panic(err)
	}
}
