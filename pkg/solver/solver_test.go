package solver

import (
	"math"
	"testing"

	"github.com/MaxCodeXTC/charticulator/pkg/errors"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestSolveHardExact(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(0)
	y := s.NewVariable(0)

	// x = 10, y - x = 5
	s.AddLinear(Hard, 10, []Term{{Coeff: 1, Var: x}}, nil)
	s.AddLinear(Hard, 5, []Term{{Coeff: 1, Var: y}, {Coeff: -1, Var: x}}, nil)

	if err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := s.Value(x); !almostEqual(got, 10) {
		t.Errorf("x = %v, want 10", got)
	}
	if got := s.Value(y); !almostEqual(got, 15) {
		t.Errorf("y = %v, want 15", got)
	}
}

func TestSolveInfeasible(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(3)

	s.AddLinear(Hard, 1, []Term{{Coeff: 1, Var: x}}, nil)
	s.AddLinear(Hard, 2, []Term{{Coeff: 1, Var: x}}, nil)

	err := s.Solve()
	if err == nil {
		t.Fatal("Solve succeeded, want INFEASIBLE")
	}
	if !errors.Is(err, errors.ErrCodeInfeasible) {
		t.Errorf("code = %v, want INFEASIBLE", errors.GetCode(err))
	}

	// No value is published on failure: the seed is still visible.
	if got := s.Value(x); !almostEqual(got, 3) {
		t.Errorf("x = %v, want seed 3", got)
	}
}

func TestSolveRedundantHard(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(0)

	// The same equation twice is redundant, not contradictory.
	s.AddLinear(Hard, 7, []Term{{Coeff: 1, Var: x}}, nil)
	s.AddLinear(Hard, 14, []Term{{Coeff: 2, Var: x}}, nil)

	if err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := s.Value(x); !almostEqual(got, 7) {
		t.Errorf("x = %v, want 7", got)
	}
}

func TestSolveTierPriority(t *testing.T) {
	tests := []struct {
		name   string
		winner Strength
		loser  Strength
	}{
		{"HardOverStrong", Hard, Strong},
		{"StrongOverMedium", Strong, Medium},
		{"MediumOverWeak", Medium, Weak},
		{"StrongOverWeak", Strong, Weak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			x := s.NewVariable(0)
			s.AddLinear(tt.winner, 10, []Term{{Coeff: 1, Var: x}}, nil)
			s.AddLinear(tt.loser, 99, []Term{{Coeff: 1, Var: x}}, nil)

			if err := s.Solve(); err != nil {
				t.Fatalf("Solve: %v", err)
			}
			// The stronger tier is folded in exactly; the weaker one
			// reduces to a redundant row and cannot move the value.
			if got := s.Value(x); !almostEqual(got, 10) {
				t.Errorf("x = %v, want 10", got)
			}
		})
	}
}

func TestSolveLeastSquaresCompromise(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(0)

	// Two contradictory strong pins split the difference.
	s.AddLinear(Strong, 0, []Term{{Coeff: 1, Var: x}}, nil)
	s.AddLinear(Strong, 10, []Term{{Coeff: 1, Var: x}}, nil)

	if err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := s.Value(x); !almostEqual(got, 5) {
		t.Errorf("x = %v, want 5", got)
	}
}

func TestSolveWeakerTierCannotDisturb(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(0)
	y := s.NewVariable(0)

	// x + y = 10 hard leaves one degree of freedom. The medium pin fixes
	// x, which determines y; the weak pin on y is then redundant.
	s.AddLinear(Hard, 10, []Term{{Coeff: 1, Var: x}, {Coeff: 1, Var: y}}, nil)
	s.AddLinear(Medium, 2, []Term{{Coeff: 1, Var: x}}, nil)
	s.AddLinear(Weak, 3, []Term{{Coeff: 1, Var: y}}, nil)

	if err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := s.Value(x); !almostEqual(got, 2) {
		t.Errorf("x = %v, want 2", got)
	}
	if got := s.Value(y); !almostEqual(got, 8) {
		t.Errorf("y = %v, want 8", got)
	}
}

func TestSolveSeedAnchor(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(42)
	y := s.NewVariable(-7)

	// No constraints touch y; x is only related to itself.
	s.AddLinear(Weak, 42, []Term{{Coeff: 1, Var: x}}, nil)

	if err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := s.Value(x); !almostEqual(got, 42) {
		t.Errorf("x = %v, want seed 42", got)
	}
	if got := s.Value(y); !almostEqual(got, -7) {
		t.Errorf("y = %v, want seed -7", got)
	}
}

func TestSolveCoupledAnchorsSplitEvenly(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(0)
	y := s.NewVariable(0)

	// x + y = 10 with both seeds at 0: the deviation is split evenly
	// rather than dumped on one variable.
	s.AddLinear(Hard, 10, []Term{{Coeff: 1, Var: x}, {Coeff: 1, Var: y}}, nil)

	if err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := s.Value(x); !almostEqual(got, 5) {
		t.Errorf("x = %v, want 5", got)
	}
	if got := s.Value(y); !almostEqual(got, 5) {
		t.Errorf("y = %v, want 5", got)
	}
}

func TestSolveIdempotent(t *testing.T) {
	build := func(seedX, seedY float64) *Session {
		s := NewSession()
		x := s.NewVariable(seedX)
		y := s.NewVariable(seedY)
		s.AddLinear(Hard, 10, []Term{{Coeff: 1, Var: y}, {Coeff: -1, Var: x}}, nil)
		s.AddLinear(Strong, 3, []Term{{Coeff: 1, Var: x}}, nil)
		return s
	}

	first := build(0, 0)
	if err := first.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	x1 := first.Value(Variable{id: 1})
	y1 := first.Value(Variable{id: 2})

	// Re-solving with the solved values as seeds is a fixed point.
	second := build(x1, y1)
	if err := second.Solve(); err != nil {
		t.Fatalf("re-solve: %v", err)
	}
	if got := second.Value(Variable{id: 1}); got != x1 {
		t.Errorf("x = %v, want %v", got, x1)
	}
	if got := second.Value(Variable{id: 2}); got != y1 {
		t.Errorf("y = %v, want %v", got, y1)
	}
}

func TestSolveDeterministic(t *testing.T) {
	run := func() []float64 {
		s := NewSession()
		a := s.NewVariable(1)
		b := s.NewVariable(2)
		c := s.NewVariable(3)
		s.AddLinear(Hard, 6, []Term{{Coeff: 1, Var: a}, {Coeff: 1, Var: b}, {Coeff: 1, Var: c}}, nil)
		s.AddLinear(Strong, 1, []Term{{Coeff: 1, Var: a}}, nil)
		s.AddLinear(Weak, 0, []Term{{Coeff: 1, Var: b}, {Coeff: -1, Var: c}}, nil)
		if err := s.Solve(); err != nil {
			t.Fatalf("Solve: %v", err)
		}
		return []float64{s.Value(a), s.Value(b), s.Value(c)}
	}

	first := run()
	for i := 0; i < 5; i++ {
		if got := run(); got[0] != first[0] || got[1] != first[1] || got[2] != first[2] {
			t.Fatalf("run %d = %v, want %v", i, got, first)
		}
	}
}

func TestValueBeforeSolve(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(17)
	if got := s.Value(x); got != 17 {
		t.Errorf("Value = %v, want seed 17", got)
	}
	if got := s.Value(Variable{}); got != 0 {
		t.Errorf("Value of invalid handle = %v, want 0", got)
	}
}

func TestAddLinearUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		add  func(s *Session, x Variable)
	}{
		{
			name: "ForeignVariable",
			add: func(s *Session, x Variable) {
				other := NewSession()
				y := other.NewVariable(0)
				y = Variable{id: y.id + 10} // definitely not owned
				s.AddLinear(Hard, 0, []Term{{Coeff: 1, Var: y}}, nil)
			},
		},
		{
			name: "EmptyConstraint",
			add: func(s *Session, x Variable) {
				s.AddLinear(Hard, 1, nil, nil)
			},
		},
		{
			name: "UnknownStrength",
			add: func(s *Session, x Variable) {
				s.AddLinear(Strength(99), 0, []Term{{Coeff: 1, Var: x}}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			x := s.NewVariable(0)
			tt.add(s, x)

			err := s.Solve()
			if err == nil {
				t.Fatal("Solve succeeded, want usage error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConstraint) {
				t.Errorf("code = %v, want INVALID_CONSTRAINT", errors.GetCode(err))
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	s := NewSession()
	x := s.NewVariable(1)
	y := s.NewVariable(2)
	s.Label(x, "g0.x")
	s.Label(y, "g0.y")

	// x = y + 3 normalizes to x - y = 3.
	s.AddLinear(Hard, 3, []Term{{Coeff: 1, Var: x}}, []Term{{Coeff: 1, Var: y}})

	vars, cons := s.Snapshot()
	if len(vars) != 2 {
		t.Fatalf("vars = %d, want 2", len(vars))
	}
	if vars[0].Label != "g0.x" || vars[1].Label != "g0.y" {
		t.Errorf("labels = %q, %q", vars[0].Label, vars[1].Label)
	}
	if vars[0].Seed != 1 || vars[0].Value != 1 {
		t.Errorf("unsolved snapshot value = %v, want seed 1", vars[0].Value)
	}

	if len(cons) != 1 {
		t.Fatalf("cons = %d, want 1", len(cons))
	}
	c := cons[0]
	if c.Strength != Hard || c.RHS != 3 {
		t.Errorf("constraint = %+v", c)
	}
	if len(c.Coeffs) != 2 || c.Coeffs[0] != 1 || c.Coeffs[1] != -1 {
		t.Errorf("coeffs = %v, want [1 -1]", c.Coeffs)
	}

	if err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	vars, _ = s.Snapshot()
	if !almostEqual(vars[0].Value-vars[1].Value, 3) {
		t.Errorf("solved x - y = %v, want 3", vars[0].Value-vars[1].Value)
	}
}

func TestStrengthString(t *testing.T) {
	tests := []struct {
		s    Strength
		want string
	}{
		{Weak, "weak"},
		{Medium, "medium"},
		{Strong, "strong"},
		{Hard, "hard"},
		{Strength(42), "strength(42)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
