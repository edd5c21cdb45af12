package chart

import (
	"context"
	"fmt"
	"time"

	"github.com/MaxCodeXTC/charticulator/pkg/attrs"
	"github.com/MaxCodeXTC/charticulator/pkg/element"
	"github.com/MaxCodeXTC/charticulator/pkg/errors"
	"github.com/MaxCodeXTC/charticulator/pkg/observability"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// =============================================================================
// Result Types
// =============================================================================

// RangeHint reports one attribute whose solved value fell outside its
// schema-declared advisory range. Hints are diagnostics only; the solve that
// produced them succeeded.
type RangeHint struct {
	Glyph     int     `json:"glyph"`
	Mark      int     `json:"mark"` // -1 when the element is the glyph itself
	Class     string  `json:"class"`
	Attribute string  `json:"attribute"`
	Value     float64 `json:"value"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// Result summarizes one successful solve pass.
type Result struct {
	Variables   int           `json:"variables"`
	Constraints int           `json:"constraints"`
	Duration    time.Duration `json:"duration"`
	Hints       []RangeHint   `json:"hints,omitempty"`
}

// =============================================================================
// Variable Table
// =============================================================================

// varTable binds every numeric attribute of every live instance to its
// solver variable for one session. It implements element.VarSource for
// class constraint builders.
type varTable struct {
	vars map[*element.Instance][]solver.Variable // parallel to schema specs
}

func newVarTable() *varTable {
	return &varTable{vars: make(map[*element.Instance][]solver.Variable)}
}

// allocate creates one variable per numeric attribute of inst, seeded with
// the current attribute values, and labels them for constraint-graph dumps.
func (t *varTable) allocate(sess *solver.Session, inst *element.Instance, prefix string) {
	specs := inst.Class().Schema().Specs()
	vs := make([]solver.Variable, len(specs))
	for i, sp := range specs {
		if sp.Kind != attrs.Number {
			continue
		}
		vs[i] = sess.NewVariable(inst.Attrs().GetIndex(i))
		sess.Label(vs[i], prefix+"."+sp.Name)
	}
	t.vars[inst] = vs
}

// Var returns the variable bound to the named attribute of inst.
func (t *varTable) Var(inst *element.Instance, attr string) (solver.Variable, bool) {
	vs, ok := t.vars[inst]
	if !ok {
		return solver.Variable{}, false
	}
	i, ok := inst.Class().Schema().Index(attr)
	if !ok || !vs[i].Valid() {
		return solver.Variable{}, false
	}
	return vs[i], true
}

// =============================================================================
// Solve Orchestrator
// =============================================================================

// Solve runs one complete constraint pass over the chart.
//
// On success every numeric attribute of every instance is overwritten with
// its solved value and the chart's guides and handles reflect the new
// geometry. On failure (an INFEASIBLE hard system, an invalid constraint
// reference, an uninitialized instance) no attribute is mutated.
//
// The first call seals the element class catalog; registration after that
// point fails.
func Solve(ctx context.Context, c *Chart) (*Result, error) {
	element.Seal()

	sess, table, err := buildSession(c)
	if err != nil {
		return nil, err
	}

	hooks := observability.Solve()
	hooks.OnSolveStart(ctx, sess.VariableCount(), sess.ConstraintCount())
	start := time.Now()
	err = sess.Solve()
	elapsed := time.Since(start)
	hooks.OnSolveComplete(ctx, sess.VariableCount(), sess.ConstraintCount(), elapsed, err)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Variables:   sess.VariableCount(),
		Constraints: sess.ConstraintCount(),
		Duration:    elapsed,
	}
	apply(ctx, c, sess, table, res)
	return res, nil
}

// BuildSession assembles the solve session for the chart without running it.
// The debug tooling uses this to render the constraint graph; a nil error
// means the session is ready to Solve.
func BuildSession(c *Chart) (*solver.Session, error) {
	sess, _, err := buildSession(c)
	return sess, err
}

// buildSession allocates variables, emits stays and intrinsic constraints,
// and translates the chart's user constraints into the session.
func buildSession(c *Chart) (*solver.Session, *varTable, error) {
	sess := solver.NewSession()
	table := newVarTable()

	// Pass 1: variables. Allocation order is fixed (glyphs in chart order,
	// each glyph before its marks, attributes in schema order) so identical
	// charts build identical sessions.
	for gi, g := range c.glyphs {
		if !g.Initialized() {
			return nil, nil, errors.New(errors.ErrCodeUninitialized, "glyph %d is not initialized", gi)
		}
		table.allocate(sess, g, fmt.Sprintf("g%d", gi))
		for mi, m := range g.Marks() {
			if !m.Initialized() {
				return nil, nil, errors.New(errors.ErrCodeUninitialized, "mark %d of glyph %d is not initialized", mi, gi)
			}
			table.allocate(sess, m, fmt.Sprintf("g%d.m%d", gi, mi))
		}
	}

	// Pass 2: stays and intrinsic constraints. Intrinsic attributes are
	// anchored to their current value at the schema strength; Computed
	// attributes are pinned hard because the solver must not move values
	// owned by scale mappings. Positional attributes get neither - the
	// class's hard equations determine them.
	for _, g := range c.glyphs {
		emitInstance(sess, table, g)
		for _, m := range g.Marks() {
			emitInstance(sess, table, m)
		}
	}

	// Pass 3: user constraints.
	for _, cons := range c.constraints {
		if err := emitUser(sess, table, c, cons); err != nil {
			return nil, nil, err
		}
	}

	return sess, table, nil
}

// emitInstance adds stays for one instance and asks its class for the
// intrinsic hard constraints.
func emitInstance(sess *solver.Session, table *varTable, inst *element.Instance) {
	for i, sp := range inst.Class().Schema().Specs() {
		if sp.Kind != attrs.Number {
			continue
		}
		v, _ := table.Var(inst, sp.Name)
		switch sp.Role {
		case attrs.Intrinsic:
			sess.AddLinear(sp.Strength, inst.Attrs().GetIndex(i),
				[]solver.Term{{Coeff: 1, Var: v}}, nil)
		case attrs.Computed:
			sess.AddLinear(solver.Hard, inst.Attrs().GetIndex(i),
				[]solver.Term{{Coeff: 1, Var: v}}, nil)
		}
	}
	inst.Class().BuildIntrinsicConstraints(sess, table, inst)
}

// emitUser translates one user constraint into session terms, validating
// every attribute reference against the tree and the schemas.
func emitUser(sess *solver.Session, table *varTable, c *Chart, cons Constraint) error {
	lhs, err := resolveTerms(table, c, cons.LHS)
	if err != nil {
		return err
	}
	rhs, err := resolveTerms(table, c, cons.RHS)
	if err != nil {
		return err
	}
	sess.AddLinear(cons.Strength, cons.Constant, lhs, rhs)
	return nil
}

func resolveTerms(table *varTable, c *Chart, terms []Term) ([]solver.Term, error) {
	out := make([]solver.Term, 0, len(terms))
	for _, t := range terms {
		inst, err := c.resolve(t.Ref)
		if err != nil {
			return nil, err
		}
		sp, ok := inst.Class().Schema().Spec(t.Ref.Attr)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownAttribute, "class %q has no attribute %q", inst.Class().Name(), t.Ref.Attr)
		}
		if sp.Kind != attrs.Number {
			return nil, errors.New(errors.ErrCodeInvalidConstraint, "attribute %q is %s, not number", t.Ref.Attr, sp.Kind)
		}
		v, _ := table.Var(inst, t.Ref.Attr)
		out = append(out, solver.Term{Coeff: t.Coeff, Var: v})
	}
	return out, nil
}

// apply writes solved values back into every attribute map and collects
// advisory range hints.
func apply(ctx context.Context, c *Chart, sess *solver.Session, table *varTable, res *Result) {
	hooks := observability.Solve()
	writeBack := func(gi, mi int, inst *element.Instance) {
		for i, sp := range inst.Class().Schema().Specs() {
			if sp.Kind != attrs.Number {
				continue
			}
			v, _ := table.Var(inst, sp.Name)
			val := sess.Value(v)
			inst.Attrs().SetIndex(i, val)
			if sp.HasRange && (val < sp.Min || val > sp.Max) {
				res.Hints = append(res.Hints, RangeHint{
					Glyph:     gi,
					Mark:      mi,
					Class:     inst.Class().Name(),
					Attribute: sp.Name,
					Value:     val,
					Min:       sp.Min,
					Max:       sp.Max,
				})
				hooks.OnRangeHint(ctx, inst.Class().Name(), sp.Name, val)
			}
		}
	}
	for gi, g := range c.glyphs {
		writeBack(gi, -1, g)
		for mi, m := range g.Marks() {
			writeBack(gi, mi, m)
		}
	}
}
