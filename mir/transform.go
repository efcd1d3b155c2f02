package mir

import (
	"github.com/katalvlaran/ciplp/lpvar"
	"github.com/katalvlaran/ciplp/tolerance"
)

// boundSwitch is the threshold spec.md §4.7 step 2 uses to pick the
// "closer" bound to shift to zero when both are finite: the lower
// bound is preferred unless the variable's best bound sits past this
// fraction of the [lb,ub] range.
const boundSwitch = 0.9999

// shift records how one variable was moved into non-negative space:
// y = sign * (x - bound).
type shift struct {
	bound float64
	sign  float64 // +1 if shifted to lb, -1 if shifted to ub
}

// TransformToStandardForm implements spec.md §4.7 step 2: for every
// variable touched by sum, pick the bound to shift to zero (the closer
// of lb/ub when both finite, per boundSwitch; the finite one when only
// one is; the variable's best bound when its status is not
// StatusColumn), rewrite sum's coefficient and rhs in the shifted
// space, and record the shift so Round can re-apply signs afterward.
// A free variable (no finite bound) with a non-negligible coefficient
// aborts with ErrFreeVariable — no MIR cut is possible.
func TransformToStandardForm(sum *Sum, vars []*lpvar.Variable, set *tolerance.Settings) (map[int]shift, error) {
	shifts := make(map[int]shift, len(sum.Coef))

	for probIndex, coef := range sum.Coef {
		v := vars[probIndex]
		lb, ub := v.LB(), v.UB()
		lbFinite := !set.IsInfinity(lb)
		ubFinite := !set.IsInfinity(ub)

		var useUB bool
		switch {
		case v.Status() != lpvar.StatusColumn:
			useUB = v.BestBound() != lb
		case lbFinite && ubFinite:
			useUB = (v.BestBound() - lb) > boundSwitch*(ub-lb)
		case lbFinite:
			useUB = false
		case ubFinite:
			useUB = true
		default:
			if !set.IsZero(coef) {
				return nil, ErrFreeVariable
			}
			continue
		}

		if useUB {
			sum.Rhs -= coef * ub
			sum.Coef[probIndex] = -coef
			shifts[probIndex] = shift{bound: ub, sign: -1}
		} else {
			sum.Rhs -= coef * lb
			shifts[probIndex] = shift{bound: lb, sign: 1}
		}
	}

	return shifts, nil
}
