package solver

import (
	"math"

	"github.com/MaxCodeXTC/charticulator/pkg/errors"
)

// pivotEps is the relative threshold below which a coefficient is treated
// as zero during elimination. Chart coordinates are small (order 1e0-1e4),
// so an absolute threshold is sufficient in practice.
const pivotEps = 1e-10

// Solve computes values for all registered variables.
//
// Hard constraints are satisfied exactly or the solve fails with an
// INFEASIBLE error. Soft tiers are relaxed by staged least squares,
// strongest first, and every variable left free after all tiers is pinned
// to its seed value. On failure no value is published: Value keeps
// returning the seeds.
func (s *Session) Solve() error {
	if s.err != nil {
		return s.err
	}

	n := len(s.seeds)
	elim := newElimination(n)

	// Stage 1: hard constraints, solved exactly.
	for _, c := range s.cons {
		if c.strength != Hard {
			continue
		}
		if !elim.add(s.denseRow(c)) {
			return errors.New(errors.ErrCodeInfeasible, "hard constraints are mutually contradictory")
		}
	}

	// Stage 2: soft tiers, strongest first. Each tier is fitted by least
	// squares over the still-free variables, then its fitted equations are
	// folded into the exact system so weaker tiers cannot disturb them.
	for _, tier := range []Strength{Strong, Medium, Weak} {
		var rows [][]float64
		for _, c := range s.cons {
			if c.strength != tier {
				continue
			}
			row := s.denseRow(c)
			elim.reduce(row)
			if !zeroRow(row, n) {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		fit := leastSquares(rows, elim.free(), n)
		for _, row := range rows {
			// Replace the right-hand side with the fitted value so the
			// folded equation is consistent by construction.
			row[n] = dot(row, fit, n)
			elim.add(row)
		}
	}

	// Stage 3: anchor every variable to its seed. Free variables are pinned
	// directly; variables already determined reduce to redundant rows. The
	// anchors are fitted jointly so coupled free variables split deviations
	// evenly rather than in allocation order.
	var anchors [][]float64
	for i := 0; i < n; i++ {
		row := make([]float64, n+1)
		row[i] = 1
		row[n] = s.seeds[i]
		elim.reduce(row)
		if !zeroRow(row, n) {
			anchors = append(anchors, row)
		}
	}
	if len(anchors) > 0 {
		fit := leastSquares(anchors, elim.free(), n)
		for _, row := range anchors {
			row[n] = dot(row, fit, n)
			elim.add(row)
		}
	}

	// Back-substitute. After anchoring, every variable is determined by a
	// pivot row whose free coefficients are all zero.
	values := make([]float64, n)
	copy(values, s.seeds)
	for r, p := range elim.pivots {
		row := elim.rows[r]
		v := row[n]
		for j := 0; j < n; j++ {
			if j != p && row[j] != 0 {
				v -= row[j] * values[j]
			}
		}
		values[p] = v
	}

	s.values = values
	s.solved = true
	return nil
}

// denseRow expands a constraint into a dense row of n coefficients followed
// by the right-hand side at index n.
func (s *Session) denseRow(c constraint) []float64 {
	row := make([]float64, len(s.seeds)+1)
	for _, t := range c.terms {
		row[t.Var.id-1] += t.Coeff
	}
	row[len(s.seeds)] = c.rhs
	return row
}

// zeroRow reports whether all coefficients (not the RHS) vanish.
func zeroRow(row []float64, n int) bool {
	for j := 0; j < n; j++ {
		if math.Abs(row[j]) > pivotEps {
			return false
		}
	}
	return true
}

// dot returns the inner product of a row's coefficients with a value vector.
func dot(row, x []float64, n int) float64 {
	var v float64
	for j := 0; j < n; j++ {
		if row[j] != 0 {
			v += row[j] * x[j]
		}
	}
	return v
}

// =============================================================================
// Exact System - Gaussian Elimination
// =============================================================================

// elimination maintains a consistent linear system in reduced row echelon
// form. Each stored row has coefficient 1 at its pivot column and zeros at
// every other pivot column.
type elimination struct {
	n       int
	rows    [][]float64 // n coefficients + RHS at index n
	pivots  []int       // pivot column of rows[i]
	isPivot []bool      // per-column pivot flag
}

func newElimination(n int) *elimination {
	return &elimination{n: n, isPivot: make([]bool, n)}
}

// reduce eliminates all pivot columns from row in place.
func (e *elimination) reduce(row []float64) {
	for r, p := range e.pivots {
		f := row[p]
		if f == 0 {
			continue
		}
		pr := e.rows[r]
		for j := 0; j <= e.n; j++ {
			row[j] -= f * pr[j]
		}
		row[p] = 0 // clear exactly, avoiding roundoff residue
	}
}

// add reduces row against the current system and folds it in.
// It returns false if the row is contradictory (all coefficients vanish but
// the right-hand side does not). Redundant rows are dropped silently.
func (e *elimination) add(row []float64) bool {
	e.reduce(row)

	// Partial pivoting: choose the free column with the largest magnitude.
	pivot, max := -1, pivotEps
	for j := 0; j < e.n; j++ {
		if a := math.Abs(row[j]); a > max {
			pivot, max = j, a
		}
	}
	if pivot < 0 {
		return math.Abs(row[e.n]) <= pivotEps
	}

	f := row[pivot]
	for j := 0; j <= e.n; j++ {
		row[j] /= f
	}
	row[pivot] = 1

	// Clear the new pivot column from existing rows to keep RREF.
	for r := range e.rows {
		g := e.rows[r][pivot]
		if g == 0 {
			continue
		}
		pr := e.rows[r]
		for j := 0; j <= e.n; j++ {
			pr[j] -= g * row[j]
		}
		pr[pivot] = 0
	}

	e.rows = append(e.rows, row)
	e.pivots = append(e.pivots, pivot)
	e.isPivot[pivot] = true
	return true
}

// free returns the indices of columns without a pivot, in ascending order.
func (e *elimination) free() []int {
	var free []int
	for j := 0; j < e.n; j++ {
		if !e.isPivot[j] {
			free = append(free, j)
		}
	}
	return free
}

// =============================================================================
// Least Squares - Normal Equations
// =============================================================================

// leastSquares minimizes sum((row . x - rhs)^2) over the free columns and
// returns a full-width value vector with zeros at non-free columns. Rows
// must already be reduced, so only free columns carry coefficients.
//
// The normal equations are solved by Gaussian elimination with partial
// pivoting. Rank-deficient directions (free columns untouched by the rows)
// keep the value zero, which does not affect the fitted right-hand sides.
func leastSquares(rows [][]float64, free []int, n int) []float64 {
	k := len(free)
	m := make([][]float64, k) // normal matrix, k x (k+1) augmented
	for i := range m {
		m[i] = make([]float64, k+1)
	}
	for _, row := range rows {
		for i, fi := range free {
			a := row[fi]
			if a == 0 {
				continue
			}
			for j, fj := range free {
				m[i][j] += a * row[fj]
			}
			m[i][k] += a * row[n]
		}
	}

	y := solveSymmetric(m, k)

	x := make([]float64, n)
	for i, fi := range free {
		x[fi] = y[i]
	}
	return x
}

// solveSymmetric solves the augmented k x (k+1) system in place using
// Gaussian elimination with partial pivoting. Columns whose pivot falls
// below the threshold are fixed at zero; the normal equations are always
// consistent, so any such assignment still minimizes the residual.
func solveSymmetric(m [][]float64, k int) []float64 {
	order := make([]int, 0, k) // pivot row for each eliminated column
	cols := make([]int, 0, k)

	used := make([]bool, k)
	for c := 0; c < k; c++ {
		// Pick the unused row with the largest coefficient in column c.
		best, max := -1, pivotEps
		for r := 0; r < k; r++ {
			if used[r] {
				continue
			}
			if a := math.Abs(m[r][c]); a > max {
				best, max = r, a
			}
		}
		if best < 0 {
			continue // rank-deficient direction, value stays zero
		}
		used[best] = true
		order = append(order, best)
		cols = append(cols, c)

		pr := m[best]
		for r := 0; r < k; r++ {
			if r == best || m[r][c] == 0 {
				continue
			}
			f := m[r][c] / pr[c]
			for j := c; j <= k; j++ {
				m[r][j] -= f * pr[j]
			}
			m[r][c] = 0
		}
	}

	y := make([]float64, k)
	// Back-substitute in reverse elimination order.
	for i := len(order) - 1; i >= 0; i-- {
		r, c := order[i], cols[i]
		v := m[r][k]
		for j := 0; j < k; j++ {
			if j != c && m[r][j] != 0 {
				v -= m[r][j] * y[j]
			}
		}
		y[c] = v / m[r][c]
	}
	return y
}
