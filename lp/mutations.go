package lp

import (
	"github.com/katalvlaran/ciplp/sparse"
)

// ChgObj changes col's objective coefficient, enqueuing col on chgcols
// (at most once, guarded by ObjChanged) and invalidating solve state.
func (lp *Lp) ChgObj(col *sparse.Col, obj float64) error {
	if lp.set.IsEQ(col.Obj, obj) {
		return nil
	}
	col.Obj = obj
	if !col.ObjChanged && !col.LBChanged && !col.UBChanged {
		lp.chgcols = append(lp.chgcols, col)
	}
	col.ObjChanged = true
	lp.invalidate()
	return nil
}

// ChgBounds changes col's (lb, ub), enqueuing col on chgcols at most
// once (spec.md §4.4, §4.5 step 3).
func (lp *Lp) ChgBounds(col *sparse.Col, lb, ub float64) error {
	if lp.set.IsEQ(col.LB, lb) && lp.set.IsEQ(col.UB, ub) {
		return nil
	}
	col.LB, col.UB = lb, ub
	if !col.ObjChanged && !col.LBChanged && !col.UBChanged {
		lp.chgcols = append(lp.chgcols, col)
	}
	col.LBChanged, col.UBChanged = true, true
	lp.invalidate()
	return nil
}

// ChgSides changes row's (lhs, rhs) via sparse.Row.ChgLhs/ChgRhs,
// enqueuing row on chgrows at most once.
func (lp *Lp) ChgSides(row *sparse.Row, lhs, rhs float64) error {
	wasChanged := row.LhsChanged || row.RhsChanged
	if err := row.ChgLhs(lhs, lp.set); err != nil {
		return err
	}
	if err := row.ChgRhs(rhs, lp.set); err != nil {
		return err
	}
	if !wasChanged && (row.LhsChanged || row.RhsChanged) {
		lp.chgrows = append(lp.chgrows, row)
	}
	if row.LhsChanged || row.RhsChanged {
		lp.invalidate()
	}
	return nil
}

// ChgConstant changes row's constant via sparse.Row.ChgConstant,
// enqueuing row on chgrows at most once.
func (lp *Lp) ChgConstant(row *sparse.Row, c float64) error {
	wasChanged := row.LhsChanged || row.RhsChanged
	if err := row.ChgConstant(c, lp.st.BoundChgCount(), lp.set); err != nil {
		return err
	}
	if !wasChanged && (row.LhsChanged || row.RhsChanged) {
		lp.chgrows = append(lp.chgrows, row)
	}
	lp.invalidate()
	return nil
}

// AddCoeff adds val at (row, col) via sparse.Col.AddCoeff, links it
// immediately, and applies CoefChanged.
func (lp *Lp) AddCoeff(row *sparse.Row, col *sparse.Col, val float64) error {
	if err := col.AddCoeff(row, val, -1, lp.set); err != nil {
		return err
	}
	if err := col.Link(lp.set); err != nil {
		return err
	}
	lp.CoefChanged(row, col)
	return nil
}

// ChgCoeff changes the coefficient at (row, col) if an entry exists,
// otherwise adds it. Both sides of the cross-linked entry are updated
// directly (rather than through sparse.Col/Row's ChgCoeffPos alone) so
// the invariant in sparse/doc.go keeps holding across the two
// independently-compacted slices.
func (lp *Lp) ChgCoeff(row *sparse.Row, col *sparse.Col, val float64) error {
	colPos := col.PosOf(row)
	if colPos == -1 {
		return lp.AddCoeff(row, col, val)
	}

	if lp.set.IsZero(val) {
		rowPos := row.PosOf(col)
		if err := col.DelCoeffPos(colPos); err != nil {
			return err
		}
		if rowPos != -1 {
			if err := row.DelCoeffPos(rowPos, lp.set); err != nil {
				return err
			}
		}
		lp.CoefChanged(row, col)
		return nil
	}

	if lp.set.IsEQ(col.Vals[colPos], val) {
		return nil
	}
	col.Vals[colPos] = val
	if rowPos := row.PosOf(col); rowPos != -1 {
		row.DelNorms(rowPos, lp.set)
		row.Vals[rowPos] = val
		row.AddNorms(rowPos, val, lp.set)
	}
	lp.CoefChanged(row, col)

	return nil
}
