// Package mir derives Mixed-Integer Rounding cuts from a weighted
// combination of LP rows (spec.md §4.7), the representative derived
// computation this module's spec singles out. It builds directly on
// package sparse's Row/Col algebra and package lpvar's variable model,
// grounded on the teacher corpus's DTW/TSP numerical-accumulation
// style (accumulate into a running scalar/map, never mutate the
// source rows) rather than any matrix-algebra package in the pool,
// since MIR's state is a sparse coefficient map, not a dense matrix.
package mir

import (
	"github.com/katalvlaran/ciplp/sparse"
	"github.com/katalvlaran/ciplp/tolerance"
)

// rowUse records one row's contribution to a weighted sum: which side
// was picked and the sign that choice gives its slack, needed again in
// the substitute-slacks phase (spec.md §4.7 step 4).
type rowUse struct {
	row       *sparse.Row
	weight    float64
	slackSign float64 // -1 if lhs was picked, +1 if rhs was picked
}

// Sum is the intermediate result of weighting a set of rows together:
// a sparse coefficient map keyed by probIndex, the accumulated
// right-hand side, and the per-row bookkeeping SubstituteSlacks needs.
type Sum struct {
	Coef map[int]float64
	Rhs  float64

	uses []rowUse
}

// SumMIRRow implements spec.md §4.7 step 1: for every non-modifiable
// row with a non-negligible weight, pick the side (lhs or rhs) whose
// slack sign aligns with reducing the row's current violation — lhs
// (slack sign -1) if the row's activity sits in the lower half of its
// range, rhs (slack sign +1) otherwise — and accumulate that row's
// contribution into mircoef/mirrhs. Rows with |w[r]| <= epsilon are
// skipped entirely ("zero weights remove rows").
func SumMIRRow(rows []*sparse.Row, w []float64, set *tolerance.Settings) (*Sum, error) {
	if len(w) != len(rows) {
		return nil, ErrWeightLengthMismatch
	}

	sum := &Sum{Coef: make(map[int]float64)}
	for r, row := range rows {
		if row.Modifiable {
			continue
		}
		wr := w[r]
		if set.IsZero(wr) {
			continue
		}

		mid := (row.Lhs + row.Rhs) / 2
		var side, slackSign float64
		if row.Activity < mid {
			side, slackSign = row.Lhs, -1
		} else {
			side, slackSign = row.Rhs, 1
		}

		sum.Rhs += wr * (side - row.Constant)
		for i, col := range row.Cols {
			sum.Coef[col.Owner.ProbIndex()] += wr * row.Vals[i]
		}
		sum.uses = append(sum.uses, rowUse{row: row, weight: wr, slackSign: slackSign})
	}

	return sum, nil
}

// WeightedSides is the unrounded weighted sum with both sides exposed,
// SumMIRRow's weaker sibling (spec.md §4.7's SCIPlpSumRows). Unlike an
// earlier implementation this module's design notes flag as a bug
// (spec.md §9, decision 1 in DESIGN.md), an infinite contribution on
// one side only marks that side infinite — it never resets the
// opposite side's already-accumulated finite value.
type WeightedSides struct {
	Coef                     map[int]float64
	SumLhs, SumRhs           float64
	LhsInfinite, RhsInfinite bool
}

// SumRows computes WeightedSides for the given rows and weights,
// handling +/-infinite sides via lhsinfinite/rhsinfinite flags rather
// than folding an infinity into the running sum (spec.md §4.7, §9).
func SumRows(rows []*sparse.Row, w []float64, set *tolerance.Settings) (*WeightedSides, error) {
	if len(w) != len(rows) {
		return nil, ErrWeightLengthMismatch
	}

	ws := &WeightedSides{Coef: make(map[int]float64)}
	for r, row := range rows {
		wr := w[r]
		if set.IsZero(wr) {
			continue
		}

		for i, col := range row.Cols {
			ws.Coef[col.Owner.ProbIndex()] += wr * row.Vals[i]
		}

		if set.IsInfinity(row.Lhs) {
			ws.LhsInfinite = true
		} else if !ws.LhsInfinite {
			ws.SumLhs += wr * (row.Lhs - row.Constant)
		}

		if set.IsInfinity(row.Rhs) {
			ws.RhsInfinite = true
		} else if !ws.RhsInfinite {
			ws.SumRhs += wr * (row.Rhs - row.Constant)
		}
	}

	return ws, nil
}
