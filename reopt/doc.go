// Package reopt implements the reoptimization tree (spec.md §4.8): a
// persistent, compressed record of a prior solve's search tree, kept
// so a later solve (typically against a modified objective) can reuse
// enforced subtrees, skip subspaces already proven infeasible, and
// avoid re-finding solutions it has already seen.
//
// Grounded on the teacher corpus's tsp.bbEngine (a single mutable
// struct threading config, stats and search state through a family of
// methods) adapted from branch-and-bound search state to reoptimization
// bookkeeping: Tree plays bbEngine's role, Node plays the role of a
// single search-tree record, and SolTree is the companion structure
// bbEngine's incumbent tracking does not need (one best tour) but a
// reoptimizing solver does (many previously found feasible points).
package reopt

import "errors"

// Sentinel errors for reoptimization-tree operations.
var (
	// ErrUnknownNode indicates an operation referenced a node id the
	// tree has no record of.
	ErrUnknownNode = errors.New("reopt: unknown node id")

	// ErrRootHasNoParent indicates AddNode was given a new node with
	// Depth > 0 but no parent id to attach it to.
	ErrRootHasNoParent = errors.New("reopt: root node has no parent")
)
