// Package solver implements a deterministic linear constraint solver for
// chart layout.
//
// The solver resolves a set of scalar variables subject to linear equality
// constraints of varying strength. Hard constraints must hold exactly; soft
// constraints (Strong, Medium, Weak) are relaxed by least squares when the
// system is over-determined, with stronger tiers taking priority over weaker
// ones.
//
// # Usage
//
// Create a session, allocate variables, add constraints, and solve:
//
//	s := solver.NewSession()
//	x1 := s.NewVariable(-30)
//	x2 := s.NewVariable(30)
//	w := s.NewVariable(60)
//
//	// x2 - x1 = w
//	s.AddLinear(solver.Hard, 0,
//	    []solver.Term{{Coeff: 1, Var: x2}, {Coeff: -1, Var: x1}},
//	    []solver.Term{{Coeff: 1, Var: w}})
//
//	if err := s.Solve(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(s.Value(x2) - s.Value(x1)) // == s.Value(w)
//
// # Algorithm
//
// Solve proceeds in stages:
//
//  1. Hard constraints are folded into an exact linear system by Gaussian
//     elimination. A contradictory hard system aborts with an INFEASIBLE
//     error before any value is computed.
//  2. Each soft tier, strongest first, is solved as a weighted least-squares
//     problem over the variables still free in the exact system. The fitted
//     equations of a tier are then folded into the exact system so weaker
//     tiers cannot disturb them.
//  3. A final anchor stage pins every remaining free variable to its seed
//     value (the initial value passed to NewVariable), which makes the
//     solution unique and re-solves idempotent.
//
// # Determinism
//
// Given identical constraint sets and seeds, Solve produces identical
// results: variables are processed in allocation order and constraints in
// insertion order, and no stage iterates over map keys.
//
// The session is not safe for concurrent use.
package solver
