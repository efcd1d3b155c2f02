package reopt

// ReoptType classifies how a node is handled when AddNode records it
// (spec.md §4.8).
type ReoptType int

const (
	// Transit is an ordinary internal node: no pruning decision of its
	// own, just a waypoint on the path from the root.
	Transit ReoptType = iota

	// LogicorNode carries a logicor-style disjunctive constraint
	// (typically from a strong-branching cutoff) rather than a simple
	// bound change.
	LogicorNode

	// Leaf is a node with no further children explored below it.
	Leaf

	// InfSubtree is a node whose entire subtree was proven infeasible.
	InfSubtree

	// StrBranched is a node whose children were fixed by strong
	// branching rather than ordinary branching.
	StrBranched

	// Feasible is a node at which a feasible solution was found.
	Feasible

	// Pruned is a node whose subtree was cut off by bound, not by
	// infeasibility.
	Pruned
)

// String renders a ReoptType for diagnostics and log lines.
func (t ReoptType) String() string {
	switch t {
	case Transit:
		return "transit"
	case LogicorNode:
		return "logicornode"
	case Leaf:
		return "leaf"
	case InfSubtree:
		return "infsubtree"
	case StrBranched:
		return "strbranched"
	case Feasible:
		return "feasible"
	case Pruned:
		return "pruned"
	default:
		return "unknown"
	}
}

// BoundChange is one variable bound tightening recorded against a
// node, in original-problem-space (already transformed out of any
// local aggregation/negation by the time it reaches AddNode).
type BoundChange struct {
	ProbIndex int
	NewBound  float64
	Lower     bool // true: tightens the lower bound; false: the upper bound
	AfterDual bool // true: this change was only valid after the node's dual bound was known
}

// DualBoundConstraint is the logicor-style disjunction spec.md §4.8
// describes: "at least one of these bound choices must differ",
// derived from a strong-branching cutoff inside a node. Lits holds one
// entry per candidate bound choice that was ruled out; applying the
// constraint on re-solve either fixes a child to the dual values
// (Lits[i]) or adds the disjunction over the remaining literals on a
// sibling.
type DualBoundConstraint struct {
	Lits []BoundChange
}

// Node is one record in the reoptimization tree: the bound changes
// that separate it from its parent, any dual-bound-change constraints
// it carries, and the bookkeeping AddNode/shrinkNode/DryBranch need.
//
// Node never holds a live solver handle or column/row pointer — by the
// time a record is saved the search that produced it is long gone; a
// Node is plain data the way sparse.Row/Col are plain data to package
// mir, consumed without owning a solver.
type Node struct {
	ID       int
	ParentID int
	HasParent bool
	Depth    int

	Type ReoptType

	// Changes are the bound changes that separate this node from its
	// stored parent (after any path-shrinking collapse, these may span
	// more than one level of the original search tree).
	Changes []BoundChange

	// AfterDualChanges are bound changes appended only once the node's
	// dual bound became known (spec.md §4.8: "append after-dual bound
	// changes if requested").
	AfterDualChanges []BoundChange

	// Current and Next are the two dual-bound-change-constraint slots
	// spec.md §4.8 describes. Current applies this reoptimization
	// iteration; Next graduates to Current after the node splits.
	Current *DualBoundConstraint
	Next    *DualBoundConstraint

	Children []int

	// Pruned marks a node whose subtree was pruned at save time
	// (spec.md §4.8: feasible/pruned nodes "optionally prune subtree").
	Pruned bool

	// DualFixed marks a node saved via the infsubtree/strbranched
	// branches (spec.md §4.8: "save as dual-fixed").
	DualFixed bool

	// Cutoff is set by DryBranch when a bound change on this node
	// contradicts the variable's current bounds.
	Cutoff bool
}

// HasLocalConstraints reports whether this node carries any
// dual-bound-change constraint, the condition shrinkNode consults
// before considering a merge into its ancestor (spec.md §4.8: "the
// node has no local constraints").
func (n *Node) HasLocalConstraints() bool {
	return n.Current != nil || n.Next != nil
}
