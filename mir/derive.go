package mir

import (
	"math"

	"github.com/katalvlaran/ciplp/lpvar"
	"github.com/katalvlaran/ciplp/sparse"
	"github.com/katalvlaran/ciplp/tolerance"
)

// DeriveMIRCut runs all four phases of spec.md §4.7 over rows weighted
// by w, against the global variable array vars (indexed by
// probIndex), producing a cut valid for every feasible integer
// solution. success is false (with a nil Cut) whenever a phase aborts
// for a structural reason (a free variable with nonzero coefficient,
// or a rounded right-hand side below minfrac) rather than returning an
// error — spec.md §4.7 frames both as "no MIR cut" outcomes, not
// failures of the derivation itself.
func DeriveMIRCut(rows []*sparse.Row, w []float64, vars []*lpvar.Variable, minfrac float64, set *tolerance.Settings) (cut *Cut, success bool, err error) {
	sum, err := SumMIRRow(rows, w, set)
	if err != nil {
		return nil, false, err
	}

	shifts, err := TransformToStandardForm(sum, vars, set)
	if err != nil {
		if err == ErrFreeVariable {
			return nil, false, nil
		}
		return nil, false, err
	}

	f0 := sum.Rhs - math.Floor(sum.Rhs)

	coef, rhs, err := Round(sum, shifts, vars, minfrac, set)
	if err != nil {
		if err == ErrFractionalityTooSmall {
			return nil, false, nil
		}
		return nil, false, err
	}

	rhs = sum.SubstituteSlacks(coef, rhs, f0)

	return &Cut{Coef: coef, Rhs: rhs}, true, nil
}
