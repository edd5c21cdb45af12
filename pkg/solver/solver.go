package solver

import (
	"fmt"

	"github.com/MaxCodeXTC/charticulator/pkg/errors"
)

// Strength orders constraints by priority. Hard constraints must hold
// exactly; the soft tiers are relaxed by least squares when over-determined,
// stronger tiers before weaker ones.
type Strength int

const (
	// Weak is the lowest soft tier, typically used for stylistic preferences.
	Weak Strength = iota + 1
	// Medium sits between Weak and Strong.
	Medium
	// Strong is the highest soft tier, typically used for user-entered pins.
	Strong
	// Hard constraints are structural identities and must hold exactly.
	Hard
)

// String returns the lowercase tier name.
func (s Strength) String() string {
	switch s {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("strength(%d)", int(s))
	}
}

// Variable is a handle to one scalar unknown in a session.
// The zero value is not a valid handle - use [Session.NewVariable].
type Variable struct {
	id int // 1-based; 0 means unallocated
}

// Valid reports whether the handle was obtained from NewVariable.
func (v Variable) Valid() bool { return v.id > 0 }

// Term is one (coefficient, variable) pair of a linear expression.
type Term struct {
	Coeff float64
	Var   Variable
}

// constraint is one normalized linear relation: sum(coeffs) = rhs.
type constraint struct {
	strength Strength
	terms    []Term
	rhs      float64
}

// Session collects variables and constraints for one solve pass.
// Sessions are transient: build one per solve, read the results, discard it.
// A session is not safe for concurrent use.
type Session struct {
	seeds  []float64 // initial values, used as warm-start anchors
	values []float64 // solved values, valid once solved is true
	labels []string  // optional debug labels, parallel to seeds
	cons   []constraint
	solved bool
	err    error // first usage error, reported by Solve
}

// NewSession creates an empty solve session.
func NewSession() *Session {
	return &Session{}
}

// NewVariable allocates one scalar unknown seeded with a starting guess.
// The seed anchors the variable when no constraint determines it, and warm
// starts the solve so an unperturbed model re-solves to the same values.
func (s *Session) NewVariable(initial float64) Variable {
	s.seeds = append(s.seeds, initial)
	s.labels = append(s.labels, "")
	s.solved = false
	return Variable{id: len(s.seeds)}
}

// Label attaches a debug name to a variable. Labels appear in constraint
// graph dumps (see [Session.Snapshot]) and have no effect on solving.
func (s *Session) Label(v Variable, name string) {
	if v.id >= 1 && v.id <= len(s.labels) {
		s.labels[v.id-1] = name
	}
}

// AddLinear registers the constraint sum(lhs) = sum(rhs) + constant at the
// given strength.
//
// Usage errors (an invalid variable handle, an empty constraint, or an
// unknown strength) are sticky: the first one is remembered and returned by
// Solve. This keeps constraint-emission code free of per-call error checks
// while still surfacing defects before any value is produced.
func (s *Session) AddLinear(strength Strength, constant float64, lhs, rhs []Term) {
	if s.err != nil {
		return
	}
	if strength < Weak || strength > Hard {
		s.err = errors.New(errors.ErrCodeInvalidConstraint, "unknown strength %d", int(strength))
		return
	}
	if len(lhs) == 0 && len(rhs) == 0 {
		s.err = errors.New(errors.ErrCodeInvalidConstraint, "constraint has no terms")
		return
	}

	// Normalize to sum(terms) = rhs: lhs terms keep their sign, rhs terms
	// are negated, and the constant moves to the right-hand side.
	terms := make([]Term, 0, len(lhs)+len(rhs))
	for _, t := range lhs {
		if !s.owns(t.Var) {
			s.err = errors.New(errors.ErrCodeInvalidConstraint, "term references a variable not allocated by this session")
			return
		}
		terms = append(terms, t)
	}
	for _, t := range rhs {
		if !s.owns(t.Var) {
			s.err = errors.New(errors.ErrCodeInvalidConstraint, "term references a variable not allocated by this session")
			return
		}
		terms = append(terms, Term{Coeff: -t.Coeff, Var: t.Var})
	}

	s.cons = append(s.cons, constraint{strength: strength, terms: terms, rhs: constant})
	s.solved = false
}

// owns reports whether the variable handle belongs to this session.
func (s *Session) owns(v Variable) bool {
	return v.id >= 1 && v.id <= len(s.seeds)
}

// Value returns the solved value of v. Before a successful Solve it returns
// the seed value, so reading back an unsolved session reproduces the input.
func (s *Session) Value(v Variable) float64 {
	if !s.owns(v) {
		return 0
	}
	if s.solved {
		return s.values[v.id-1]
	}
	return s.seeds[v.id-1]
}

// VariableCount returns the number of allocated variables.
func (s *Session) VariableCount() int { return len(s.seeds) }

// ConstraintCount returns the number of registered constraints.
func (s *Session) ConstraintCount() int { return len(s.cons) }

// VariableInfo describes one variable for debugging and visualization.
type VariableInfo struct {
	Label string
	Seed  float64
	Value float64 // equals Seed before a successful solve
}

// ConstraintInfo describes one constraint for debugging and visualization.
// Terms are reported in normalized form: sum(Coeffs * variables) = RHS.
type ConstraintInfo struct {
	Strength Strength
	Vars     []int // variable indices, parallel to Coeffs
	Coeffs   []float64
	RHS      float64
}

// Snapshot returns a copy of the session's variables and constraints.
// It is intended for constraint-graph rendering and diagnostics; the
// returned slices do not alias session state.
func (s *Session) Snapshot() ([]VariableInfo, []ConstraintInfo) {
	vars := make([]VariableInfo, len(s.seeds))
	for i := range s.seeds {
		vars[i] = VariableInfo{Label: s.labels[i], Seed: s.seeds[i], Value: s.seeds[i]}
		if s.solved {
			vars[i].Value = s.values[i]
		}
	}

	cons := make([]ConstraintInfo, len(s.cons))
	for i, c := range s.cons {
		ci := ConstraintInfo{
			Strength: c.strength,
			Vars:     make([]int, len(c.terms)),
			Coeffs:   make([]float64, len(c.terms)),
			RHS:      c.rhs,
		}
		for j, t := range c.terms {
			ci.Vars[j] = t.Var.id - 1
			ci.Coeffs[j] = t.Coeff
		}
		cons[i] = ci
	}
	return vars, cons
}
