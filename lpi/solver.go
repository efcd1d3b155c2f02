// Package lpi specifies the narrow contract ciplp consumes from an
// external LP solver (spec.md §6): a handle that knows how to add and
// remove columns and rows, apply bound/objective/side changes by index,
// run primal or dual simplex, and answer the handful of queries the LP-
// management core needs back (solution, Farkas certificate, primal ray,
// strong-branching bounds, basis state).
//
// ciplp never implements a general simplex method (spec.md §1 Non-goals);
// this package only describes the shape a real solver binding must have.
// Its vocabulary is grounded on the GLPK cgo bindings in the retrieval
// pool (lukpank/go-glpk, seandunn/go-glpk) and on gonum's convex/lp
// status taxonomy, adapted from a single direct-call API to the
// incremental add/delete/change contract ciplp's flush step drives.
package lpi

// RealParam enumerates the real-valued solver parameters the core sets
// before a solve (spec.md §6).
type RealParam int

const (
	ObjLim RealParam = iota
	FeasTol
	DualFeasTol
)

// IntParam enumerates the integer/boolean solver parameters the core
// sets before a solve (spec.md §6).
type IntParam int

const (
	FromScratch IntParam = iota
	FastMIP
	Scaling
	Pricing
	LPInfo
	LPIterLimit
)

// ObjSense is the direction of optimization.
type ObjSense int

const (
	Minimize ObjSense = iota
	Maximize
)

// SolveStatus is the decoded outcome of a simplex call (spec.md §4.6).
type SolveStatus int

const (
	NotSolved SolveStatus = iota
	Optimal
	Infeasible
	Unbounded
	ObjLimit
	IterLimit
	TimeLimit
	SolveError
)

func (s SolveStatus) String() string {
	switch s {
	case NotSolved:
		return "notsolved"
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case ObjLimit:
		return "objlimit"
	case IterLimit:
		return "iterlimit"
	case TimeLimit:
		return "timelimit"
	case SolveError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is one sparse (index, value) pair in a column or row addition,
// referencing the other dimension's index in the solver's own numbering.
type Entry struct {
	Index int
	Value float64
}

// ColSpec describes one column to add to the solver (spec.md §6): its
// objective coefficient, bounds, display name, and the sparse entries
// referencing rows already known to the solver.
type ColSpec struct {
	Obj, LB, UB float64
	Name        string
	Entries     []Entry
}

// RowSpec describes one row to add to the solver, symmetric to ColSpec.
type RowSpec struct {
	Lhs, Rhs float64
	Name     string
	Entries  []Entry
}

// Solution is the readback from a completed solve (spec.md §4.6):
// primal column values, dual row values, row activities and reduced
// costs, all indexed in the solver's own column/row numbering.
type Solution struct {
	ColPrimal []float64
	RowDual   []float64
	RowAct    []float64
	RedCost   []float64
}

// StrongBranchResult is the outcome of tentatively solving both
// branches of a candidate column fixing (spec.md §4.6, §9).
type StrongBranchResult struct {
	DownBound, UpBound float64
	DownValid, UpValid bool
	Iterations         int
}

// State is an opaque basis handle; the core never inspects it, only
// transfers it between GetState and SetState (spec.md §5).
type State interface{}

// Solver is the contract ciplp's flush/solve machinery drives. An
// implementation owns one live LP instance in the external solver and
// mirrors the index space the core's lpipos/lpicols/lpirows bookkeeping
// assumes: column/row indices are dense, 0-based, and stable until the
// next Delete call.
type Solver interface {
	// AddCols appends columns to the solver's LP, in order.
	AddCols(cols []ColSpec) error
	// DeleteCols removes columns in [first, last] (solver indices,
	// inclusive), compacting the remaining columns down.
	DeleteCols(first, last int) error
	// AddRows appends rows to the solver's LP, in order.
	AddRows(rows []RowSpec) error
	// DeleteRows removes rows in [first, last] (solver indices, inclusive).
	DeleteRows(first, last int) error

	// ChgObj overwrites the objective coefficient of the columns at idx.
	ChgObj(idx []int, obj []float64) error
	// ChgBounds overwrites (lb, ub) of the columns at idx.
	ChgBounds(idx []int, lb, ub []float64) error
	// ChgSides overwrites (lhs, rhs) of the rows at idx.
	ChgSides(idx []int, lhs, rhs []float64) error
	// ChgObjSense sets the optimization direction.
	ChgObjSense(sense ObjSense) error

	// SetRealParam / SetIntParam configure the solver ahead of a solve.
	SetRealParam(p RealParam, v float64) error
	SetIntParam(p IntParam, v int) error

	// SolvePrimal / SolveDual run one simplex variant to completion
	// (subject to the configured iteration/time limits) and return the
	// decoded status (spec.md §4.6).
	SolvePrimal() (SolveStatus, error)
	SolveDual() (SolveStatus, error)

	// IterCount returns the iteration count of the last solve call.
	IterCount() (int, error)

	// ObjValue returns the objective value of the last solve.
	ObjValue() (float64, error)

	// GetSol reads back the full solution of the last solve.
	GetSol() (Solution, error)
	// GetPrimalRay returns a direction of unbounded improvement,
	// valid only after a solve reporting Unbounded.
	GetPrimalRay() ([]float64, error)
	// GetDualFarkas returns a dual infeasibility certificate, valid
	// only after a solve reporting Infeasible.
	GetDualFarkas() ([]float64, error)

	// StrongBranch tentatively solves both branches of fixing the
	// column at idx (currently at value val) to floor/ceil(val), each
	// for at most iterlim simplex iterations.
	StrongBranch(idx int, val float64, iterlim int) (StrongBranchResult, error)

	// GetState / SetState transfer the opaque basis handle (spec.md §5).
	GetState() (State, error)
	SetState(s State) error

	// WriteLP persists the current LP to path; used only by the
	// stability ladder's final fallback (spec.md §4.6, a debug
	// side-channel, never on the critical path).
	WriteLP(path string) error

	// IsStable reports whether the last solve's basis is numerically
	// trustworthy.
	IsStable() (bool, error)
	// Status returns the decoded status of the last solve call.
	Status() (SolveStatus, error)
	// Infinity returns the solver's own representation of infinity,
	// substituted for set.Infinity() at this boundary (spec.md §4.5, §6).
	Infinity() float64
}
