package lp

import (
	"github.com/katalvlaran/ciplp/lpi"
	"github.com/katalvlaran/ciplp/tolerance"
)

// Flush synchronizes the solver-side mirror (lpiCols/lpiRows) with the
// current column/row arrays in six narrow, idempotent phases (spec.md
// §4.5). A no-op if already flushed.
func (lp *Lp) Flush() error {
	if lp.flushed {
		return nil
	}

	if err := lp.flushDelCols(); err != nil {
		return err
	}
	if err := lp.flushDelRows(); err != nil {
		return err
	}
	if err := lp.flushChgCols(); err != nil {
		return err
	}
	if err := lp.flushChgRows(); err != nil {
		return err
	}
	if err := lp.flushAddCols(); err != nil {
		return err
	}
	if err := lp.flushAddRows(); err != nil {
		return err
	}

	lp.flushed = true
	lp.stats.Flushes++
	return nil
}

// flushDelCols advances lpiFirstChgCol past every column still
// identical to its solver mirror, then deletes everything beyond that
// frontier, resetting each deleted column's solver-side bookkeeping.
func (lp *Lp) flushDelCols() error {
	n := lp.lpiFirstChgCol
	for n < len(lp.lpiCols) && n < len(lp.cols) &&
		lp.cols[n] == lp.lpiCols[n] && !lp.cols[n].CoefChanged {
		n++
	}
	lp.lpiFirstChgCol = n

	if n >= len(lp.lpiCols) {
		return nil
	}
	last := len(lp.lpiCols) - 1
	if err := lp.solver.DeleteCols(n, last); err != nil {
		return err
	}
	for _, c := range lp.lpiCols[n:] {
		c.LPIPos = -1
		c.PrimSol = 0
		c.PrimSolTag.Invalidate()
		c.RedCost = 0
		c.RedCostTag.Invalidate()
		c.Farkas = 0
		c.FarkasTag.Invalidate()
		c.SBValidLP.Invalidate()
	}
	lp.lpiCols = lp.lpiCols[:n]
	return nil
}

// flushDelRows mirrors flushDelCols for rows.
func (lp *Lp) flushDelRows() error {
	n := lp.lpiFirstChgRow
	for n < len(lp.lpiRows) && n < len(lp.rows) &&
		lp.rows[n] == lp.lpiRows[n] && !lp.rows[n].CoefChanged {
		n++
	}
	lp.lpiFirstChgRow = n

	if n >= len(lp.lpiRows) {
		return nil
	}
	last := len(lp.lpiRows) - 1
	if err := lp.solver.DeleteRows(n, last); err != nil {
		return err
	}
	for _, r := range lp.lpiRows[n:] {
		r.LPIPos = -1
		r.DualSol = 0
		r.ActivityTag.Invalidate()
		r.DualFarkas = 0
	}
	lp.lpiRows = lp.lpiRows[:n]
	return nil
}

// flushChgCols walks chgcols and applies every pending objective/bound
// change to the solver in at most two batched calls.
func (lp *Lp) flushChgCols() error {
	if len(lp.chgcols) == 0 {
		return nil
	}
	inf := lp.solver.Infinity()

	var objIdx []int
	var objVal []float64
	var bndIdx []int
	var lbVal, ubVal []float64

	for _, c := range lp.chgcols {
		if c.LPIPos < 0 {
			continue
		}
		if c.ObjChanged {
			objIdx = append(objIdx, c.LPIPos)
			objVal = append(objVal, c.Obj)
			c.ObjChanged = false
		}
		if c.LBChanged || c.UBChanged {
			bndIdx = append(bndIdx, c.LPIPos)
			lbVal = append(lbVal, solverBound(c.LB, lp.set, inf))
			ubVal = append(ubVal, solverBound(c.UB, lp.set, inf))
			c.LBChanged = false
			c.UBChanged = false
		}
	}
	lp.chgcols = lp.chgcols[:0]

	if len(objIdx) > 0 {
		if err := lp.solver.ChgObj(objIdx, objVal); err != nil {
			return err
		}
	}
	if len(bndIdx) > 0 {
		if err := lp.solver.ChgBounds(bndIdx, lbVal, ubVal); err != nil {
			return err
		}
	}
	return nil
}

// flushChgRows walks chgrows and applies every pending side change,
// translating (lhs, rhs) into the solver's constant-free frame.
func (lp *Lp) flushChgRows() error {
	if len(lp.chgrows) == 0 {
		return nil
	}
	inf := lp.solver.Infinity()

	var idx []int
	var lhsVal, rhsVal []float64
	for _, r := range lp.chgrows {
		if r.LPIPos < 0 {
			continue
		}
		if !r.LhsChanged && !r.RhsChanged {
			continue
		}
		idx = append(idx, r.LPIPos)
		lhsVal = append(lhsVal, solverBound(r.Lhs-r.Constant, lp.set, inf))
		rhsVal = append(rhsVal, solverBound(r.Rhs-r.Constant, lp.set, inf))
		r.LhsChanged = false
		r.RhsChanged = false
	}
	lp.chgrows = lp.chgrows[:0]

	if len(idx) == 0 {
		return nil
	}
	return lp.solver.ChgSides(idx, lhsVal, rhsVal)
}

// flushAddCols appends every column beyond the solver's current count,
// linking it first so its entries reference the row side, then
// dropping any entry referencing a row not yet in the solver (step 6
// realizes those when the row itself is added).
func (lp *Lp) flushAddCols() error {
	start := len(lp.lpiCols)
	if start >= len(lp.cols) {
		return nil
	}
	inf := lp.solver.Infinity()

	specs := make([]lpi.ColSpec, 0, len(lp.cols)-start)
	for i := start; i < len(lp.cols); i++ {
		c := lp.cols[i]
		if err := c.Link(lp.set); err != nil {
			return err
		}
		spec := lpi.ColSpec{
			Obj: c.Obj,
			LB:  solverBound(c.LB, lp.set, inf),
			UB:  solverBound(c.UB, lp.set, inf),
		}
		for j, row := range c.Rows {
			if row.LPIPos >= 0 {
				spec.Entries = append(spec.Entries, lpi.Entry{Index: row.LPIPos, Value: c.Vals[j]})
			}
		}
		specs = append(specs, spec)
		c.LPIPos = i
	}

	if err := lp.solver.AddCols(specs); err != nil {
		return err
	}
	lp.lpiCols = append(lp.lpiCols[:0:0], lp.cols...)
	return nil
}

// flushAddRows mirrors flushAddCols for rows; rowLink's cascading
// colAddCoeff calls may add entries to already-flushed columns without
// marking them CoefChanged, since the solver receives those
// coefficients through the new row's own entries.
func (lp *Lp) flushAddRows() error {
	start := len(lp.lpiRows)
	if start >= len(lp.rows) {
		return nil
	}
	inf := lp.solver.Infinity()

	specs := make([]lpi.RowSpec, 0, len(lp.rows)-start)
	for i := start; i < len(lp.rows); i++ {
		r := lp.rows[i]
		if err := r.Link(lp.set); err != nil {
			return err
		}
		spec := lpi.RowSpec{
			Lhs: solverBound(r.Lhs-r.Constant, lp.set, inf),
			Rhs: solverBound(r.Rhs-r.Constant, lp.set, inf),
		}
		for j, col := range r.Cols {
			if col.LPIPos >= 0 {
				spec.Entries = append(spec.Entries, lpi.Entry{Index: col.LPIPos, Value: r.Vals[j]})
			}
		}
		specs = append(specs, spec)
		r.LPIPos = i
	}

	if err := lp.solver.AddRows(specs); err != nil {
		return err
	}
	lp.lpiRows = append(lp.lpiRows[:0:0], lp.rows...)
	return nil
}

// solverBound substitutes the solver's own infinity representation for
// a bound sitting at or beyond set's infinity threshold (spec.md §4.5, §6).
func solverBound(v float64, set *tolerance.Settings, inf float64) float64 {
	if v >= set.Infinity() {
		return inf
	}
	if v <= -set.Infinity() {
		return -inf
	}
	return v
}
