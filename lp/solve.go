package lp

import (
	"fmt"

	"github.com/katalvlaran/ciplp/lpi"
)

// Solve flushes the LP if needed, runs the simplex choice SCIPlpSolve
// describes (spec.md §4.6), climbs the numerical-stability ladder if
// the solver reports an untrustworthy basis, decodes the resulting
// status, and on success commits the solution back into the column/
// row cache. cutoffBound/looseObjVal bound the objective limit the
// solver is given.
func (lp *Lp) Solve() error {
	if err := lp.Flush(); err != nil {
		return err
	}

	if err := lp.applySolveParams(); err != nil {
		return err
	}

	status, err := lp.runSimplex()
	if err != nil {
		return err
	}

	status, err = lp.stabilize(status)
	if err != nil {
		return err
	}

	status = lp.decodeStatus(status)
	lp.lpSolStat = status
	lp.st.BumpLPCount()
	lp.stats.Solves++

	switch status {
	case lpi.Optimal, lpi.ObjLimit:
		return lp.evaluateAndCommit()
	case lpi.Infeasible:
		return lp.extractFarkas()
	case lpi.Unbounded:
		return lp.extractUnboundedRay()
	default:
		lp.solved = true
		lp.primalFeasible = false
		lp.dualFeasible = false
		return nil
	}
}

// applySolveParams pushes the upper objective limit and the current
// feasibility tolerances to the solver ahead of a solve call.
func (lp *Lp) applySolveParams() error {
	uobjlim := lp.cutoffBound - lp.looseObjVal
	if err := lp.solver.SetRealParam(lpi.ObjLim, uobjlim); err != nil {
		return err
	}
	if err := lp.solver.SetRealParam(lpi.FeasTol, lp.set.FeasTol()); err != nil {
		return err
	}
	return lp.solver.SetRealParam(lpi.DualFeasTol, lp.set.DualFeasTol())
}

// runSimplex chooses primal or dual simplex based on the LP's current
// feasibility knowledge: dual is preferred whenever the last basis was
// dually feasible or the LP is known primally infeasible, since a dual
// simplex warm-starts cheaply off such a basis; primal otherwise.
func (lp *Lp) runSimplex() (lpi.SolveStatus, error) {
	preferDual := lp.dualFeasible || (lp.solved && !lp.primalFeasible)

	var status lpi.SolveStatus
	var err error
	if preferDual {
		status, err = lp.solver.SolveDual()
	} else {
		status, err = lp.solver.SolvePrimal()
	}
	if err != nil {
		return status, err
	}

	iters, ierr := lp.solver.IterCount()
	if ierr == nil {
		if preferDual {
			lp.stats.DualIterations += iters
		} else {
			lp.stats.PrimalIterations += iters
		}
	}
	return status, nil
}

// stabilize implements the six-rung recovery ladder (spec.md §4.6). It
// re-solves after each rung until the solver reports a stable basis or
// every rung is exhausted, in which case the LP is persisted to a file
// for postmortem and ErrUnstable is returned.
func (lp *Lp) stabilize(status lpi.SolveStatus) (lpi.SolveStatus, error) {
	stable, err := lp.solver.IsStable()
	if err != nil {
		return status, err
	}
	if stable {
		return status, nil
	}

	rungs := []func() error{
		func() error { return lp.solver.SetIntParam(lpi.FastMIP, 0) },
		func() error { return lp.solver.SetIntParam(lpi.FromScratch, 1) },
		func() error {
			return lp.solver.SetRealParam(lpi.FeasTol, lp.set.FeasTol()*lp.cfg.feasTolTighten)
		},
		func() error { return lp.solver.SetIntParam(lpi.Pricing, 1) },
		func() error { return lp.solver.SetIntParam(lpi.Scaling, 1) },
		func() error {
			if err := lp.solver.SetIntParam(lpi.Pricing, 1); err != nil {
				return err
			}
			return lp.solver.SetIntParam(lpi.Scaling, 1)
		},
	}

	for rung, apply := range rungs {
		if err := apply(); err != nil {
			return status, err
		}
		status, err = lp.runSimplex()
		if err != nil {
			return status, err
		}
		stable, err = lp.solver.IsStable()
		if err != nil {
			return status, err
		}
		if rung < len(lp.stats.StabilityRungHits) {
			lp.stats.StabilityRungHits[rung]++
		}
		if stable {
			return status, nil
		}
	}

	_ = lp.solver.WriteLP("ciplp-unstable.lp")
	return status, ErrUnstable
}

// decodeStatus maps the solver's raw status through spec.md §4.6's
// special cases: an optimal solve whose objective cleared the upper
// limit downgrades to objlimit (with lpobjval forced to +infinity by
// the caller's evaluateAndCommit path), and an unbounded solve is left
// to extractUnboundedRay to set lpobjval to -infinity.
func (lp *Lp) decodeStatus(status lpi.SolveStatus) lpi.SolveStatus {
	if status != lpi.Optimal {
		return status
	}
	obj, err := lp.solver.ObjValue()
	if err != nil {
		return status
	}
	uobjlim := lp.cutoffBound - lp.looseObjVal
	if obj >= uobjlim {
		return lpi.ObjLimit
	}
	return status
}

// evaluateAndCommit reads back the full solution and copies primal/
// dual/activity values into the column/row cache, tagging each with
// the current LP count (spec.md §4.6). On objlimit the objective is
// recorded as +infinity rather than the (meaningless, cut-off) solver
// value.
func (lp *Lp) evaluateAndCommit() error {
	lp.solved = true

	if lp.lpSolStat == lpi.ObjLimit {
		lp.lpObjVal = lp.set.Infinity()
	} else {
		obj, err := lp.solver.ObjValue()
		if err != nil {
			return err
		}
		lp.lpObjVal = obj
	}

	sol, err := lp.solver.GetSol()
	if err != nil {
		return err
	}

	tag := lp.st.LPCount()
	for _, c := range lp.cols {
		if c.LPIPos < 0 || c.LPIPos >= len(sol.ColPrimal) {
			continue
		}
		c.PrimSol = sol.ColPrimal[c.LPIPos]
		c.PrimSolTag.Set(tag)
		if c.LPIPos < len(sol.RedCost) {
			c.RedCost = sol.RedCost[c.LPIPos]
			c.RedCostTag.Set(tag)
		}
	}
	for _, r := range lp.rows {
		if r.LPIPos < 0 {
			continue
		}
		if r.LPIPos < len(sol.RowDual) {
			r.DualSol = sol.RowDual[r.LPIPos]
		}
		if r.LPIPos < len(sol.RowAct) {
			r.Activity = sol.RowAct[r.LPIPos]
			r.ActivityTag.Set(tag)
		}
	}

	lp.primalFeasible = true
	lp.dualFeasible = true
	return nil
}

// extractFarkas pulls the dual infeasibility certificate after an
// infeasible solve (spec.md §4.6) and stamps it onto every row in the
// solver.
func (lp *Lp) extractFarkas() error {
	lp.solved = true
	lp.primalFeasible = false

	farkas, err := lp.solver.GetDualFarkas()
	if err != nil {
		return fmt.Errorf("lp: extracting Farkas certificate: %w", err)
	}
	for _, r := range lp.rows {
		if r.LPIPos >= 0 && r.LPIPos < len(farkas) {
			r.DualFarkas = farkas[r.LPIPos]
		}
	}
	return nil
}

// extractUnboundedRay retrieves a primal ray and builds a point of
// effectively-infinite objective value, x' = x + alpha*ray with
// alpha = -2*infinity/rayobj, per spec.md §4.6.
func (lp *Lp) extractUnboundedRay() error {
	lp.solved = true
	lp.primalFeasible = true
	lp.lpObjVal = -lp.set.Infinity()

	ray, err := lp.solver.GetPrimalRay()
	if err != nil {
		return fmt.Errorf("lp: extracting primal ray: %w", err)
	}
	sol, err := lp.solver.GetSol()
	if err != nil {
		return err
	}

	rayObj := 0.0
	for _, c := range lp.cols {
		if c.LPIPos >= 0 && c.LPIPos < len(ray) {
			rayObj += c.Obj * ray[c.LPIPos]
		}
	}
	if lp.set.IsZero(rayObj) {
		return nil
	}
	alpha := -2 * lp.set.Infinity() / rayObj

	tag := lp.st.LPCount()
	for _, c := range lp.cols {
		if c.LPIPos < 0 || c.LPIPos >= len(sol.ColPrimal) || c.LPIPos >= len(ray) {
			continue
		}
		c.PrimSol = sol.ColPrimal[c.LPIPos] + alpha*ray[c.LPIPos]
		c.PrimSolTag.Set(tag)
	}
	return nil
}
