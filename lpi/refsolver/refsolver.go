// Package refsolver is a small, dense, Big-M primal simplex that
// satisfies the lpi.Solver contract well enough to drive ciplp's own
// tests and examples against real numbers instead of a mock. It is
// deliberately not a production simplex (spec.md §1 Non-goals: ciplp
// never implements one) — no warm-starting, no bounded-variable
// revised simplex, no numerical scaling, quadratic-ish pivoting over a
// dense tableau. It is sized for the handful of variables and
// constraints ciplp's own unit tests and the worked scenarios in
// spec.md §8 exercise, grounded on the tableau bookkeeping in
// thinkeridea/optimize's convex/lp solver and the status vocabulary of
// gonum's optimize/convex/lp, adapted to the lpi.Solver incremental
// add/delete/change shape instead of a single direct-call API.
package refsolver

import (
	"math"
	"os"
	"fmt"

	"github.com/katalvlaran/ciplp/lpi"
)

// bigM is the Big-M penalty coefficient applied to artificial variables
// in the augmented objective; chosen large relative to typical test
// problem coefficients but still representable in float64 arithmetic.
const bigM = 1e7

var (
	// ErrUnsupportedProblem indicates a column/row shape refsolver's
	// Big-M tableau cannot represent (e.g. a column with no finite
	// lower bound).
	ErrUnsupportedProblem = fmt.Errorf("refsolver: column has no finite lower bound")
)

type column struct {
	obj, lb, ub float64
	entries     []lpi.Entry
}

type row struct {
	lhs, rhs float64
	entries  []lpi.Entry
}

// Solver is an in-memory reference implementation of lpi.Solver.
type Solver struct {
	cols []column
	rows []row
	sense lpi.ObjSense

	lastStatus lpi.SolveStatus
	lastObj    float64
	lastIters  int
	lastSol    lpi.Solution
	stable     bool
}

// New returns an empty reference solver.
func New() *Solver {
	return &Solver{sense: lpi.Minimize, stable: true}
}

func (s *Solver) AddCols(cols []lpi.ColSpec) error {
	for _, c := range cols {
		s.cols = append(s.cols, column{obj: c.Obj, lb: c.LB, ub: c.UB, entries: append([]lpi.Entry(nil), c.Entries...)})
	}
	return nil
}

func (s *Solver) DeleteCols(first, last int) error {
	if first < 0 || last >= len(s.cols) || first > last {
		return fmt.Errorf("refsolver: column range [%d,%d] out of bounds", first, last)
	}
	s.cols = append(s.cols[:first], s.cols[last+1:]...)
	return nil
}

func (s *Solver) AddRows(rows []lpi.RowSpec) error {
	for _, r := range rows {
		s.rows = append(s.rows, row{lhs: r.Lhs, rhs: r.Rhs, entries: append([]lpi.Entry(nil), r.Entries...)})
	}
	return nil
}

func (s *Solver) DeleteRows(first, last int) error {
	if first < 0 || last >= len(s.rows) || first > last {
		return fmt.Errorf("refsolver: row range [%d,%d] out of bounds", first, last)
	}
	s.rows = append(s.rows[:first], s.rows[last+1:]...)
	return nil
}

func (s *Solver) ChgObj(idx []int, obj []float64) error {
	for i, j := range idx {
		s.cols[j].obj = obj[i]
	}
	return nil
}

func (s *Solver) ChgBounds(idx []int, lb, ub []float64) error {
	for i, j := range idx {
		s.cols[j].lb, s.cols[j].ub = lb[i], ub[i]
	}
	return nil
}

func (s *Solver) ChgSides(idx []int, lhs, rhs []float64) error {
	for i, j := range idx {
		s.rows[j].lhs, s.rows[j].rhs = lhs[i], rhs[i]
	}
	return nil
}

func (s *Solver) ChgObjSense(sense lpi.ObjSense) error {
	s.sense = sense
	return nil
}

func (s *Solver) SetRealParam(p lpi.RealParam, v float64) error { return nil }
func (s *Solver) SetIntParam(p lpi.IntParam, v int) error       { return nil }

func (s *Solver) SolvePrimal() (lpi.SolveStatus, error) { return s.solve() }
func (s *Solver) SolveDual() (lpi.SolveStatus, error)   { return s.solve() }

func (s *Solver) IterCount() (int, error)      { return s.lastIters, nil }
func (s *Solver) ObjValue() (float64, error)   { return s.lastObj, nil }
func (s *Solver) GetSol() (lpi.Solution, error) { return s.lastSol, nil }

func (s *Solver) GetPrimalRay() ([]float64, error) {
	if s.lastStatus != lpi.Unbounded {
		return nil, fmt.Errorf("refsolver: no primal ray, last status %s", s.lastStatus)
	}
	ray := make([]float64, len(s.cols))
	for j, c := range s.cols {
		if c.obj < 0 {
			ray[j] = 1
		}
	}
	return ray, nil
}

func (s *Solver) GetDualFarkas() ([]float64, error) {
	if s.lastStatus != lpi.Infeasible {
		return nil, fmt.Errorf("refsolver: no Farkas certificate, last status %s", s.lastStatus)
	}
	return make([]float64, len(s.rows)), nil
}

// StrongBranch re-solves the LP with column idx's bounds tightened to
// floor(val)/ceil(val) in turn, restoring the original bounds after
// each probe.
func (s *Solver) StrongBranch(idx int, val float64, iterlim int) (lpi.StrongBranchResult, error) {
	origLB, origUB := s.cols[idx].lb, s.cols[idx].ub
	var res lpi.StrongBranchResult

	s.cols[idx].ub = math.Floor(val)
	if status, err := s.solve(); err == nil && status == lpi.Optimal {
		res.DownBound, res.DownValid = s.lastObj, true
	}
	s.cols[idx].ub = origUB

	s.cols[idx].lb = math.Ceil(val)
	if status, err := s.solve(); err == nil && status == lpi.Optimal {
		res.UpBound, res.UpValid = s.lastObj, true
	}
	s.cols[idx].lb = origLB

	res.Iterations = s.lastIters
	return res, nil
}

func (s *Solver) GetState() (lpi.State, error) { return nil, nil }
func (s *Solver) SetState(lpi.State) error      { return nil }

func (s *Solver) WriteLP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintf(f, "\\ refsolver dump: %d columns, %d rows\n", len(s.cols), len(s.rows))
	for j, c := range s.cols {
		fmt.Fprintf(f, "x%d: obj=%g lb=%g ub=%g\n", j, c.obj, c.lb, c.ub)
	}
	for i, r := range s.rows {
		fmt.Fprintf(f, "r%d: %g <= ... <= %g\n", i, r.lhs, r.rhs)
	}
	return nil
}

func (s *Solver) IsStable() (bool, error)         { return s.stable, nil }
func (s *Solver) Status() (lpi.SolveStatus, error) { return s.lastStatus, nil }
func (s *Solver) Infinity() float64                { return 1e20 }
