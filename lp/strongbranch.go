package lp

import (
	"github.com/katalvlaran/ciplp/sparse"
)

// StrongBranch tentatively solves both branches of rounding col's
// current LP value down and up, for at most iterlim simplex
// iterations, and returns the resulting bound estimates (spec.md §9).
//
// The result is cached on col keyed by the current LP count and the
// requested iteration limit: a cached value is reused only if it was
// produced at the LP's current solve count and under an iteration
// limit at least as generous as the one now requested (spec.md §9's
// "valid until either the LP is re-solved... or a larger L is
// requested"); otherwise strong branching is redone and the cache
// (including the producing node) refreshed.
func (lp *Lp) StrongBranch(col *sparse.Col, currentNode int, iterlim int) (down, up float64, downValid, upValid bool, err error) {
	if iterlim <= 0 {
		iterlim = lp.cfg.strongBranchIterLimit
	}

	if col.SBValidLP.Fresh(lp.st.LPCount()) && col.SBIterLim >= iterlim {
		return col.SBDown, col.SBUp, true, true, nil
	}

	res, err := lp.solver.StrongBranch(col.LPIPos, col.PrimSol, iterlim)
	if err != nil {
		return 0, 0, false, false, err
	}

	col.SBDown = res.DownBound
	col.SBUp = res.UpBound
	col.SBSolVal = col.PrimSol
	col.SBIterLim = iterlim
	col.SBNode = currentNode
	col.SBValidLP.Set(lp.st.LPCount())

	return res.DownBound, res.UpBound, res.DownValid, res.UpValid, nil
}
