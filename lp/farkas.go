package lp

import (
	"github.com/katalvlaran/ciplp/lpi"
	"github.com/katalvlaran/ciplp/sparse"
)

// colCalcFarkas computes one column's contribution to the Farkas
// infeasibility proof total: the column's Farkas coefficient
// (Sum_i row.DualFarkas[i] * a_ij) times whichever bound the proof
// pushes the column to (its lower bound if the coefficient is
// positive, its upper bound otherwise), stamped onto the column's
// Farkas/FarkasTag cache.
//
// Guards the `±infinity * 0` pattern spec.md §9's open question flags
// (SPEC_FULL.md §11.2): when the coefficient is zero within tolerance,
// the contribution is defined as exactly 0 regardless of whether the
// paired bound is infinite, rather than letting an infinite bound
// multiplied by a near-zero coefficient propagate as NaN.
func (lp *Lp) colCalcFarkas(c *sparse.Col) float64 {
	var coef float64
	for i, row := range c.Rows {
		coef += row.DualFarkas * c.Vals[i]
	}
	c.Farkas = coef
	c.FarkasTag.Set(lp.st.LPCount())

	if lp.set.IsZero(coef) {
		return 0
	}
	if coef > 0 {
		if lp.set.IsInfinity(-c.LB) {
			return -lp.set.Infinity()
		}
		return coef * c.LB
	}
	if lp.set.IsInfinity(c.UB) {
		return -lp.set.Infinity()
	}
	return coef * c.UB
}

// FarkasValue sums every column's colCalcFarkas contribution, the
// aggregate bound-infeasibility proof value for the last infeasible
// solve. ok is false if the LP has not been solved or the last solve was
// not certified infeasible (no Farkas multipliers to derive column values
// from).
func (lp *Lp) FarkasValue() (value float64, ok bool) {
	if !lp.solved || lp.lpSolStat != lpi.Infeasible {
		return 0, false
	}
	for _, c := range lp.cols {
		value += lp.colCalcFarkas(c)
	}
	return value, true
}
