package reopt

import (
	"math"

	"github.com/katalvlaran/ciplp/stat"
)

// SearchNode is the narrow description AddNode consumes: plain data
// describing one point in the live search tree, the way package mir
// consumes *sparse.Row/*sparse.Col without owning a solver. The
// reoptimization tree never reaches back into a live search; it only
// ever sees what the caller hands it here.
//
// ParentID is the id of the nearest ANCESTOR ALREADY STORED in this
// tree (spec.md §4.8: "attach to the nearest stored ancestor"); the
// search coordinator is expected to thread this down as it recurses,
// since only this tree knows which of its own ancestors survived a
// prior shrinkNode collapse.
type SearchNode struct {
	ID          int
	HasID       bool
	ParentID    int
	HasParent   bool
	Depth       int
	NewChanges  []BoundChange
}

// Tree is the reoptimization tree (spec.md §4.8): a map of node
// records keyed by id, a free-id recycling queue, and the restart/
// similarity bookkeeping a reoptimizing solver consults between runs.
//
// Grounded on tsp.bbEngine's shape: config, stats/counters, and
// current-state fields grouped together, one mutable struct threading
// through a family of methods rather than a package of free functions.
type Tree struct {
	params   *Params
	st       *stat.Stat
	nbinvars int

	nodes   map[int]*Node
	freeIDs []int
	root    *Node

	lastObjective   []float64
	repeatedOptimum int
	restartForced   bool
}

// New returns an empty Tree. nbinvars is the number of binary-typed
// variables in the problem, used by the dynamic path-shrinking
// threshold (spec.md §4.8).
func New(st *stat.Stat, params *Params, nbinvars int) *Tree {
	return &Tree{
		params:   params,
		st:       st,
		nbinvars: nbinvars,
		nodes:    make(map[int]*Node),
	}
}

// Node returns the stored record for id, or nil if none exists.
func (t *Tree) Node(id int) *Node { return t.nodes[id] }

// Root returns the tree's root record, or nil before the first
// AddNode call at depth 0.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of nodes currently stored.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) allocID() int {
	if n := len(t.freeIDs); n > 0 {
		id := t.freeIDs[n-1]
		t.freeIDs = t.freeIDs[:n-1]
		return id
	}
	return t.st.NextNodeID()
}

func (t *Tree) recycle(id int) {
	delete(t.nodes, id)
	t.freeIDs = append(t.freeIDs, id)
}

// AddNode implements spec.md §4.8's addNode: if in already has an id,
// the stored record is updated in place and branched on rtype; if not
// and in.Depth > 0, a fresh record is allocated and attached to the
// stored ancestor named by in.ParentID. A depth-0 node with no id is
// the root. On the update-in-place path, saveAfterDuals requests that
// in's bound changes be appended to the node's after-dual list rather
// than its ordinary one; a freshly allocated node always stores them in
// its ordinary list.
func (t *Tree) AddNode(in SearchNode, rtype ReoptType, saveAfterDuals bool) (int, error) {
	if in.HasID {
		node, ok := t.nodes[in.ID]
		if !ok {
			return 0, ErrUnknownNode
		}
		if saveAfterDuals {
			node.AfterDualChanges = append(node.AfterDualChanges, in.NewChanges...)
		} else {
			node.Changes = append(node.Changes, in.NewChanges...)
		}
		node.Type = rtype
		t.applyType(node, rtype)
		return node.ID, nil
	}

	if in.Depth <= 0 {
		id := t.allocID()
		node := &Node{ID: id, Type: rtype, Changes: append([]BoundChange(nil), in.NewChanges...)}
		t.nodes[id] = node
		t.root = node
		return id, nil
	}

	if !in.HasParent {
		return 0, ErrRootHasNoParent
	}
	parent, ok := t.nodes[in.ParentID]
	if !ok {
		return 0, ErrUnknownNode
	}

	id := t.allocID()
	node := &Node{
		ID:        id,
		ParentID:  parent.ID,
		HasParent: true,
		Depth:     in.Depth,
		Type:      rtype,
		Changes:   append([]BoundChange(nil), in.NewChanges...),
	}
	t.nodes[id] = node
	parent.Children = append(parent.Children, id)
	return id, nil
}

// applyType performs the per-reopttype branch spec.md §4.8 describes.
// It runs only on the update-in-place path of AddNode (a node already
// has an id, typically because the search coordinator is finalizing it
// on backtrack): a freshly allocated node has no children yet, so
// shrinkNode/subtree operations would have nothing meaningful to act
// on until a later call revisits it with its id.
func (t *Tree) applyType(node *Node, rtype ReoptType) {
	switch rtype {
	case Transit, LogicorNode, Leaf:
		if t.params.ShrinkTransit && !node.HasLocalConstraints() {
			t.shrinkNode(node)
		}
	case InfSubtree:
		t.deleteSubtreeBelow(node)
		node.DualFixed = true
	case StrBranched:
		t.markSubtreePruned(node)
		node.DualFixed = true
	case Feasible, Pruned:
		node.Pruned = true
		if t.params.ReduceToFrontier {
			t.markSubtreePruned(node)
		}
	}
}

// shrinkNode implements spec.md §4.8's path-shrinking: when node has
// no local constraints and the number of bound changes between it and
// its stored parent is small (static maxdiffofnodes, or the dynamic
// ceil(log2(nbinvars-depth)) threshold), node's children are rewritten
// to be the parent's children directly, node's own changes are
// prepended onto each child's (they happened between parent and
// child), and node's id is recycled.
func (t *Tree) shrinkNode(node *Node) {
	if !node.HasParent {
		return // root: nothing to merge into
	}
	parent, ok := t.nodes[node.ParentID]
	if !ok {
		return
	}

	threshold := t.params.MaxDiffOfNodes
	if t.params.DynamicDiffOfNodes {
		threshold = dynamicDiffThreshold(t.nbinvars, node.Depth)
	}
	if len(node.Changes) > threshold {
		return
	}

	for _, childID := range node.Children {
		child, ok := t.nodes[childID]
		if !ok {
			continue
		}
		child.ParentID = parent.ID
		child.Changes = append(append([]BoundChange(nil), node.Changes...), child.Changes...)
		parent.Children = append(parent.Children, childID)
	}

	parent.Children = removeID(parent.Children, node.ID)
	t.recycle(node.ID)
}

// dynamicDiffThreshold computes ceil(log2(nbinvars - pathlen)), the
// dynamic path-shrinking threshold spec.md §4.8 names as the
// alternative to a static maxdiffofnodes. Guarded against a
// non-positive argument (at or past the deepest possible binary
// branching depth), where the static threshold's floor of 0 applies.
func dynamicDiffThreshold(nbinvars, pathlen int) int {
	remaining := nbinvars - pathlen
	if remaining <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(remaining))))
}

func removeID(ids []int, target int) []int {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func (t *Tree) deleteSubtreeBelow(node *Node) {
	for _, childID := range node.Children {
		t.deleteRecursive(childID)
	}
	node.Children = nil
}

func (t *Tree) deleteRecursive(id int) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	for _, childID := range n.Children {
		t.deleteRecursive(childID)
	}
	t.recycle(id)
}

func (t *Tree) markSubtreePruned(node *Node) {
	node.Pruned = true
	for _, childID := range node.Children {
		if child, ok := t.nodes[childID]; ok {
			t.markSubtreePruned(child)
		}
	}
}
