// Package lp implements the LP-management core (spec.md §2 item 4-6):
// the container that owns the current column/row arrays and the
// solver-side mirror of them, the flush machinery that reconciles the
// two, and the simplex-driving solve with its numerical stability
// ladder. It is built directly on package sparse's Col/Row algebra and
// layers on the one decision sparse deliberately leaves out: the
// coefChanged frontier policy (spec.md §4.1), which needs both a
// Col/Row and the owning Lp's flush-frontier state to resolve.
//
// Grounded on the teacher corpus's tsp.bb engine-struct shape (a single
// mutable struct threading config, stats and search state through a
// family of methods) and core.Graph's validate-then-mutate method
// style, adapted from graph search/state bookkeeping to LP
// column/row/flush bookkeeping.
package lp

import (
	"github.com/katalvlaran/ciplp/lpi"
	"github.com/katalvlaran/ciplp/sparse"
	"github.com/katalvlaran/ciplp/stat"
	"github.com/katalvlaran/ciplp/tolerance"
)

// Lp is the LP-management container (spec.md §3). It holds the
// "current" column/row arrays the search coordinator mutates and the
// "solver" mirror (lpiCols/lpiRows) describing what the external
// solver was last told, plus the bookkeeping needed to reconcile them
// on Flush.
type Lp struct {
	set *tolerance.Settings
	st  *stat.Stat
	cfg *Config

	solver lpi.Solver

	cols []*sparse.Col
	rows []*sparse.Row

	chgcols []*sparse.Col
	chgrows []*sparse.Row

	lpiCols []*sparse.Col
	lpiRows []*sparse.Row

	lpiFirstChgCol int
	lpiFirstChgRow int

	firstNewCol int
	firstNewRow int

	flushed        bool
	solved         bool
	primalFeasible bool
	dualFeasible   bool

	lpObjVal  float64
	lpSolStat lpi.SolveStatus

	pseudoObjVal     float64
	pseudoObjValInf  int
	looseObjVal      float64
	looseObjValInf   int
	nLooseVars       int

	cutoffBound float64

	nRemoveableCols int
	nRemoveableRows int

	diving       bool
	divingObjChg bool
	divelpistate lpi.State

	stats Stats
}

// Stats is a read-only snapshot of solve-loop counters (SPEC_FULL.md
// §7 supplemented feature), exposed through Statistics without
// pulling in a metrics dependency.
type Stats struct {
	PrimalIterations int
	DualIterations   int
	StabilityRungHits [6]int
	Flushes          int
	Solves           int
}

// New creates an empty Lp bound to solver, using set for tolerance-
// aware comparisons and st for monotone index/validity-tag bookkeeping.
func New(solver lpi.Solver, set *tolerance.Settings, st *stat.Stat, opts ...Option) *Lp {
	return &Lp{
		set:         set,
		st:          st,
		cfg:         NewConfig(opts...),
		solver:      solver,
		lpiFirstChgCol: 0,
		lpiFirstChgRow: 0,
		cutoffBound: set.Infinity(),
		lpSolStat:   lpi.NotSolved,
	}
}

// Statistics returns a snapshot of the solve-loop counters.
func (lp *Lp) Statistics() Stats { return lp.stats }

// Flushed, Solved, PrimalFeasible, DualFeasible, ObjValue, SolStatus
// expose the LP's downstream-invalidated state (spec.md §3).
func (lp *Lp) Flushed() bool                { return lp.flushed }
func (lp *Lp) Solved() bool                 { return lp.solved }
func (lp *Lp) PrimalFeasible() bool         { return lp.primalFeasible }
func (lp *Lp) DualFeasible() bool           { return lp.dualFeasible }
func (lp *Lp) ObjValue() float64            { return lp.lpObjVal }
func (lp *Lp) SolStatus() lpi.SolveStatus   { return lp.lpSolStat }
func (lp *Lp) NCols() int                   { return len(lp.cols) }
func (lp *Lp) NRows() int                   { return len(lp.rows) }
func (lp *Lp) Col(i int) *sparse.Col        { return lp.cols[i] }
func (lp *Lp) Row(i int) *sparse.Row        { return lp.rows[i] }

// invalidate clears every flag/value a mutation downstream of a solve
// must discard (spec.md §4.1's coefChanged tail, reused by every
// mutating operation in this package).
func (lp *Lp) invalidate() {
	lp.flushed = false
	lp.solved = false
	lp.primalFeasible = false
	lp.dualFeasible = false
	lp.lpObjVal = 0
	lp.lpSolStat = lpi.NotSolved
}

// AddCol appends col to the current LP, setting its LPPos and bumping
// the removeable-column counter when flagged (spec.md §4.4). No-op on
// LPIPos: the column only reaches the solver on the next Flush.
func (lp *Lp) AddCol(col *sparse.Col) error {
	if lp.diving {
		return ErrDiving
	}
	col.LPPos = len(lp.cols)
	lp.cols = append(lp.cols, col)
	if col.Removeable {
		lp.nRemoveableCols++
	}
	lp.invalidate()
	return nil
}

// AddRow appends row to the current LP, capturing a reference
// (spec.md §4.4's "capture the row" is package sparse's NUses
// refcount) and initializing its age.
func (lp *Lp) AddRow(row *sparse.Row) error {
	if lp.diving {
		return ErrDiving
	}
	row.NUses++
	row.Age = 0
	row.LPPos = len(lp.rows)
	lp.rows = append(lp.rows, row)
	if row.Removeable {
		lp.nRemoveableRows++
	}
	lp.invalidate()
	return nil
}

// ShrinkCols truncates the current column array to length n, resetting
// the removed columns' LPPos to -1 and lowering the flush frontier if
// it crossed n (spec.md §4.4).
func (lp *Lp) ShrinkCols(n int) error {
	if lp.diving {
		return ErrDiving
	}
	for i := n; i < len(lp.cols); i++ {
		lp.cols[i].LPPos = -1
		if lp.cols[i].Removeable {
			lp.nRemoveableCols--
		}
	}
	lp.cols = lp.cols[:n]
	if lp.lpiFirstChgCol > n {
		lp.lpiFirstChgCol = n
	}
	lp.invalidate()
	return nil
}

// ShrinkRows truncates the current row array to length n, releasing
// each removed row (decrementing NUses) and resetting LPPos to -1.
func (lp *Lp) ShrinkRows(n int) error {
	if lp.diving {
		return ErrDiving
	}
	for i := n; i < len(lp.rows); i++ {
		lp.rows[i].LPPos = -1
		if lp.rows[i].Removeable {
			lp.nRemoveableRows--
		}
		lp.rows[i].NUses--
	}
	lp.rows = lp.rows[:n]
	if lp.lpiFirstChgRow > n {
		lp.lpiFirstChgRow = n
	}
	lp.invalidate()
	return nil
}

// Clear shrinks both column and row arrays to zero.
func (lp *Lp) Clear() error {
	if err := lp.ShrinkCols(0); err != nil {
		return err
	}
	return lp.ShrinkRows(0)
}

// MarkSize records the current column/row counts as the "new entity"
// watermark, so subsequent RemoveNewObsoletes/CleanupNew calls restrict
// themselves to entities added after this call (spec.md §4.4).
func (lp *Lp) MarkSize() {
	lp.firstNewCol = len(lp.cols)
	lp.firstNewRow = len(lp.rows)
}

// bestBound mirrors lpvar.Variable.BestBound, exposed here because the
// pseudo-objective needs it against a *sparse.Col rather than a raw
// *lpvar.Variable.
func bestBound(c *sparse.Col) float64 {
	if c.Obj >= 0 {
		return c.LB
	}
	return c.UB
}
