package mir

import (
	"math"

	"github.com/katalvlaran/ciplp/lpvar"
	"github.com/katalvlaran/ciplp/tolerance"
)

// Round implements spec.md §4.7 step 3: compute f0 = rhs - floor(rhs),
// abort with ErrFractionalityTooSmall if f0 < minfrac, then round each
// shifted coefficient (floor(aj) when its fractional part fj <= f0,
// otherwise floor(aj) + (fj-f0)/(1-f0) for integer variables; 0 or
// aj/(1-f0) for continuous ones depending on aj's sign), and finally
// undoes the shift recorded by TransformToStandardForm so the result
// is back in original x-space: x = bound + sign*y, so a coefficient cy
// on y becomes cy*sign on x, and the bound's contribution folds back
// into rhs.
func Round(sum *Sum, shifts map[int]shift, vars []*lpvar.Variable, minfrac float64, set *tolerance.Settings) (map[int]float64, float64, error) {
	f0 := sum.Rhs - math.Floor(sum.Rhs)
	if f0 < minfrac {
		return nil, 0, ErrFractionalityTooSmall
	}
	rhs := math.Floor(sum.Rhs)

	cut := make(map[int]float64, len(sum.Coef))
	for probIndex, aj := range sum.Coef {
		v := vars[probIndex]
		var cy float64
		if v.IsIntegral() {
			fj := aj - math.Floor(aj)
			if fj <= f0 {
				cy = math.Floor(aj)
			} else {
				cy = math.Floor(aj) + (fj-f0)/(1-f0)
			}
		} else {
			if aj >= 0 {
				cy = 0
			} else {
				cy = aj / (1 - f0)
			}
		}
		if set.IsZero(cy) {
			continue
		}

		s := shifts[probIndex]
		cut[probIndex] = cy * s.sign
		rhs += cy * s.sign * s.bound
	}

	return cut, rhs, nil
}

// SubstituteSlacks implements spec.md §4.7 step 4: for every row whose
// weighted slack entered the sum with a negative sign (the lhs side
// was picked), subtract w[r]/(1-f0) times that row's original
// coefficients and lhs contribution from the cut, eliminating the
// continuous slack term the rounding step would otherwise have left
// behind.
func (sum *Sum) SubstituteSlacks(cut map[int]float64, rhs float64, f0 float64) float64 {
	for _, u := range sum.uses {
		if u.slackSign >= 0 {
			continue
		}
		factor := u.weight / (1 - f0)
		for i, col := range u.row.Cols {
			p := col.Owner.ProbIndex()
			cut[p] -= factor * u.row.Vals[i]
		}
		rhs -= factor * (u.row.Lhs - u.row.Constant)
	}
	return rhs
}

// Cut is the final MIR cut: mircoef . x <= rhs in original-space
// variables, indexed by probIndex (spec.md §4.7).
type Cut struct {
	Coef map[int]float64
	Rhs  float64
}

