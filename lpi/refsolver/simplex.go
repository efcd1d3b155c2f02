package refsolver

import (
	"math"

	"github.com/katalvlaran/ciplp/lpi"
)

type facetSense int

const (
	le facetSense = iota
	ge
	eq
)

type facet struct {
	coeffs     map[int]float64 // structural column -> coefficient
	sense      facetSense
	rhs        float64
	rowIdx     int // originating row, or -1 for a bound facet
}

const unbounded = math.MaxFloat64

// solve builds the Big-M tableau for the solver's current columns and
// rows, runs it to completion, and caches the decoded result.
func (s *Solver) solve() (lpi.SolveStatus, error) {
	n := len(s.cols)
	for _, c := range s.cols {
		if isNegInf(c.lb) {
			return lpi.SolveError, ErrUnsupportedProblem
		}
	}

	facets := s.buildFacets()

	// column layout: [0,n) structural, then one slack/surplus per facet,
	// then one artificial per ge/eq facet.
	slackCol := make([]int, len(facets))
	artCol := make([]int, len(facets))
	next := n
	for i, f := range facets {
		switch f.sense {
		case le:
			slackCol[i] = next
			next++
			artCol[i] = -1
		case ge:
			slackCol[i] = next
			next++
			artCol[i] = next
			next++
		case eq:
			slackCol[i] = -1
			artCol[i] = next
			next++
		}
	}
	totalCols := next
	nRows := len(facets)

	tab := make([][]float64, nRows+1)
	for i := range tab {
		tab[i] = make([]float64, totalCols+1)
	}
	basis := make([]int, nRows)

	for i, f := range facets {
		row := tab[i]
		for j, v := range f.coeffs {
			row[j] = v
		}
		switch f.sense {
		case le:
			row[slackCol[i]] = 1
			basis[i] = slackCol[i]
		case ge:
			row[slackCol[i]] = -1
			row[artCol[i]] = 1
			basis[i] = artCol[i]
		case eq:
			row[artCol[i]] = 1
			basis[i] = artCol[i]
		}
		row[totalCols] = f.rhs
	}

	sign := 1.0
	if s.sense == lpi.Maximize {
		sign = -1.0
	}
	obj := tab[nRows]
	for j, c := range s.cols {
		obj[j] = sign * c.obj
	}
	for i := range facets {
		if artCol[i] != -1 {
			obj[artCol[i]] = bigM
		}
	}
	// Price out the basic artificial/slack columns from the objective row.
	for i := range facets {
		if obj[basis[i]] != 0 {
			factor := obj[basis[i]]
			for j := 0; j <= totalCols; j++ {
				obj[j] -= factor * tab[i][j]
			}
		}
	}

	iters := 0
	const maxIters = 2000
	for iters < maxIters {
		// Bland's rule: first column with negative reduced cost enters.
		enter := -1
		for j := 0; j < totalCols; j++ {
			if obj[j] < -1e-9 {
				enter = j
				break
			}
		}
		if enter == -1 {
			break
		}

		leave := -1
		best := unbounded
		for i := 0; i < nRows; i++ {
			if tab[i][enter] > 1e-9 {
				ratio := tab[i][totalCols] / tab[i][enter]
				if ratio < best-1e-12 || (ratio < best+1e-12 && (leave == -1 || basis[i] < basis[leave])) {
					best, leave = ratio, i
				}
			}
		}
		if leave == -1 {
			s.lastStatus = lpi.Unbounded
			s.lastIters = iters
			return s.lastStatus, nil
		}

		pivot := tab[leave][enter]
		for j := 0; j <= totalCols; j++ {
			tab[leave][j] /= pivot
		}
		for i := 0; i <= nRows; i++ {
			if i == leave {
				continue
			}
			factor := tab[i][enter]
			if factor == 0 {
				continue
			}
			for j := 0; j <= totalCols; j++ {
				tab[i][j] -= factor * tab[leave][j]
			}
		}
		basis[leave] = enter
		iters++
	}

	s.lastIters = iters

	for i := range facets {
		if artCol[i] != -1 {
			for r := 0; r < nRows; r++ {
				if basis[r] == artCol[i] && tab[r][totalCols] > 1e-7 {
					s.lastStatus = lpi.Infeasible
					return s.lastStatus, nil
				}
			}
		}
	}

	y := make([]float64, n)
	for r, b := range basis {
		if b < n {
			y[b] = tab[r][totalCols]
		}
	}

	sol := lpi.Solution{
		ColPrimal: make([]float64, n),
		RowDual:   make([]float64, len(s.rows)),
		RowAct:    make([]float64, len(s.rows)),
		RedCost:   make([]float64, n),
	}
	for j, c := range s.cols {
		sol.ColPrimal[j] = y[j] + c.lb
		sol.RedCost[j] = sign * tab[nRows][j]
	}
	for i, r := range s.rows {
		act := 0.0
		for _, e := range r.entries {
			act += e.Value * sol.ColPrimal[e.Index]
		}
		sol.RowAct[i] = act
	}
	// Shadow price per original row: pull from the last facet that
	// referenced it (reference-quality approximation, not a dual simplex).
	for i, f := range facets {
		if f.rowIdx < 0 {
			continue
		}
		price := -sign * tab[nRows][slackColOrZero(slackCol, i)]
		if f.sense == ge {
			price = -price
		}
		sol.RowDual[f.rowIdx] = price
	}

	s.lastSol = sol
	s.lastObj = 0
	for j, c := range s.cols {
		s.lastObj += c.obj * sol.ColPrimal[j]
	}
	s.lastStatus = lpi.Optimal
	s.stable = true

	return s.lastStatus, nil
}

// infThreshold mirrors Solver.Infinity(): any magnitude at or beyond it
// is treated as unbounded, the same sentinel convention tolerance.Settings
// uses at the ciplp/lpi boundary (spec.md §4.5, §6).
const infThreshold = 1e20

func isPosInf(v float64) bool { return v >= infThreshold }
func isNegInf(v float64) bool { return v <= -infThreshold }

func slackColOrZero(slackCol []int, i int) int {
	if slackCol[i] < 0 {
		return 0
	}
	return slackCol[i]
}

// buildFacets lowers columns/rows into a list of single-direction linear
// facets over the shifted (y = x - lb) variable space, one per finite
// bound plus one or two per row side.
func (s *Solver) buildFacets() []facet {
	var facets []facet

	for j, c := range s.cols {
		if !isPosInf(c.ub) {
			facets = append(facets, facet{
				coeffs: map[int]float64{j: 1},
				sense:  le,
				rhs:    c.ub - c.lb,
				rowIdx: -1,
			})
		}
	}

	for i, r := range s.rows {
		shift := 0.0
		coeffs := make(map[int]float64, len(r.entries))
		for _, e := range r.entries {
			coeffs[e.Index] += e.Value
			shift += e.Value * s.cols[e.Index].lb
		}
		if !isNegInf(r.lhs) && !isPosInf(r.rhs) && r.lhs == r.rhs {
			facets = append(facets, facet{coeffs: coeffs, sense: eq, rhs: r.rhs - shift, rowIdx: i})
			continue
		}
		if !isNegInf(r.lhs) {
			facets = append(facets, facet{coeffs: coeffs, sense: ge, rhs: r.lhs - shift, rowIdx: i})
		}
		if !isPosInf(r.rhs) {
			facets = append(facets, facet{coeffs: coeffs, sense: le, rhs: r.rhs - shift, rowIdx: i})
		}
	}

	for i := range facets {
		if facets[i].rhs < 0 {
			for j := range facets[i].coeffs {
				facets[i].coeffs[j] = -facets[i].coeffs[j]
			}
			facets[i].rhs = -facets[i].rhs
			if facets[i].sense == le {
				facets[i].sense = ge
			} else if facets[i].sense == ge {
				facets[i].sense = le
			}
		}
	}

	return facets
}
