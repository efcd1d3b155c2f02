// Package ciplp is the LP-management core of a constraint integer
// programming branch-and-cut engine: the column/row algebra, the LP
// container and its flush/solve orchestration, Mixed-Integer Rounding
// cut derivation, and the reoptimization tree that lets a later solve
// reuse a prior search's proven subtrees.
//
// The module carries no executable surface of its own — it is a
// library a search coordinator and constraint handlers sit on top of,
// the same way the teacher corpus's core package is a graph library
// other packages build traversals and algorithms on. Start from the
// package doc comments in dependency order:
//
//	tolerance/ — numerics: infinity sentinel, epsilons, tolerance-aware comparisons
//	lpvar/     — the external variable model (bounds, integrality, status)
//	sparse/    — Col/Row cross-linked sparse algebra
//	lpi/       — the external LP-solver contract, plus a reference adapter for tests
//	lp/        — the LP container: mutations, flush, solve, strong branching
//	mir/       — Mixed-Integer Rounding cut derivation
//	reopt/     — the reoptimization tree and solution trie
//	status/    — a shared error taxonomy (Code, Error); the packages above return their own sentinels
//
// See DESIGN.md for how each package is grounded against its source
// material and SPEC_FULL.md for the full requirements this module
// implements.
package ciplp
