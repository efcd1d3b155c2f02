package lp

import "github.com/katalvlaran/ciplp/sparse"

// CoefChanged is the policy sparse.Col/sparse.Row deliberately do not
// implement themselves (see sparse/doc.go): when a coefficient shared
// by row and col changes while both are already known to the solver
// (LPIPos >= 0 on both), the change must be remembered on exactly one
// side, because re-reading the other side back from the solver will
// already carry the updated value (spec.md §4.1).
//
// Call this after any sparse.Col/Row AddCoeff/DelCoeffPos/ChgCoeffPos
// touching a column and row that are both already part of this Lp.
func (lp *Lp) CoefChanged(row *sparse.Row, col *sparse.Col) {
	switch {
	case row.LPIPos >= 0 && row.LPIPos >= lp.lpiFirstChgRow:
		row.CoefChanged = true
	case col.LPIPos >= 0 && col.LPIPos >= lp.lpiFirstChgCol:
		col.CoefChanged = true
	case row.LPIPos >= 0 && col.LPIPos >= 0:
		// Neither side is past its own frontier yet: tag whichever
		// frontier is closer, widening the eventual change region as
		// little as possible, and advance that frontier to include it.
		rowDist := lp.lpiFirstChgRow - row.LPIPos
		colDist := lp.lpiFirstChgCol - col.LPIPos
		if rowDist <= colDist {
			row.CoefChanged = true
			lp.lpiFirstChgRow = row.LPIPos
		} else {
			col.CoefChanged = true
			lp.lpiFirstChgCol = col.LPIPos
		}
	case row.LPIPos >= 0:
		row.CoefChanged = true
	case col.LPIPos >= 0:
		col.CoefChanged = true
	}

	lp.invalidate()
	row.PseudoActivityTag.Invalidate()
	row.MinActivityTag.Invalidate()
	row.MaxActivityTag.Invalidate()
}
