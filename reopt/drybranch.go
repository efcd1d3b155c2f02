package reopt

import "github.com/katalvlaran/ciplp/tolerance"

// BoundSource supplies the live variable bounds DryBranch checks
// recorded bound changes against. The reoptimization tree owns only
// bound-change deltas, never the variables themselves (the search
// coordinator does); BoundSource is the narrow read-only seam between
// them, the same role lpvar.Columner plays for package sparse.
type BoundSource interface {
	LB(probIndex int) float64
	UB(probIndex int) float64
}

// DryBranch implements spec.md §4.8's dryBranch(id): before
// reoptimization applies id's children, each child's recorded bound
// changes are checked against bounds. A change that contradicts the
// variable's current bounds marks the child Cutoff; a redundant change
// (the variable is already at least that tight) is discarded; a child
// left with no bound changes and no local constraints is collapsed
// into its parent, its own children adopted in its place. Runs to
// fixpoint (a collapse can make its former parent newly eligible for
// the same treatment).
func DryBranch(t *Tree, id int, bounds BoundSource, set *tolerance.Settings) error {
	node, ok := t.nodes[id]
	if !ok {
		return ErrUnknownNode
	}

	for {
		changed := false
		for _, childID := range append([]int(nil), node.Children...) {
			child, ok := t.nodes[childID]
			if !ok {
				continue
			}
			if dryBranchChild(t, node, child, bounds, set) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return nil
}

// dryBranchChild applies one round of filtering/collapsing to child,
// reporting whether it mutated the tree (so DryBranch's fixpoint loop
// keeps going).
func dryBranchChild(t *Tree, parent, child *Node, bounds BoundSource, set *tolerance.Settings) bool {
	if child.Cutoff {
		return false
	}

	mutated := false
	kept := child.Changes[:0:0]
	for _, bc := range child.Changes {
		lb, ub := bounds.LB(bc.ProbIndex), bounds.UB(bc.ProbIndex)
		switch classifyBoundChange(bc, lb, ub, set) {
		case bcContradicts:
			child.Cutoff = true
			mutated = true
		case bcRedundant:
			mutated = true
		case bcKeep:
			kept = append(kept, bc)
		}
	}
	child.Changes = kept

	if child.Cutoff {
		return mutated
	}

	if len(child.Changes) == 0 && !child.HasLocalConstraints() {
		collapseIntoParent(t, parent, child)
		return true
	}

	return mutated
}

type bcVerdict int

const (
	bcKeep bcVerdict = iota
	bcRedundant
	bcContradicts
)

// classifyBoundChange decides whether bc still matters against the
// variable's current [lb,ub]: a lower-bound tightening past ub (or an
// upper-bound tightening below lb) contradicts; one that does not move
// the bound at all is redundant; otherwise it is kept.
func classifyBoundChange(bc BoundChange, lb, ub float64, set *tolerance.Settings) bcVerdict {
	if bc.Lower {
		if !set.IsLE(bc.NewBound, ub) {
			return bcContradicts
		}
		if set.IsLE(bc.NewBound, lb) {
			return bcRedundant
		}
		return bcKeep
	}
	if !set.IsGE(bc.NewBound, lb) {
		return bcContradicts
	}
	if set.IsGE(bc.NewBound, ub) {
		return bcRedundant
	}
	return bcKeep
}

// collapseIntoParent folds child into parent: child's own children
// become parent's children (reparented to parent, child's now-empty
// change list means nothing needs prepending), and child's id is
// recycled.
func collapseIntoParent(t *Tree, parent, child *Node) {
	for _, grandchildID := range child.Children {
		if grandchild, ok := t.nodes[grandchildID]; ok {
			grandchild.ParentID = parent.ID
		}
		parent.Children = append(parent.Children, grandchildID)
	}
	parent.Children = removeID(parent.Children, child.ID)
	t.recycle(child.ID)
}
