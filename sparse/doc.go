// Package sparse implements the Column/Row sparse-vector algebra at
// the center of ciplp's LP-management core: Col and Row hold sparse
// entries as parallel index/value/link-position slices (indices into
// arrays, never cross-owning pointers in a cycle — spec.md §9), kept
// reciprocally cross-linked so that for every linked column entry
// col.Rows[j] the mirror entry row.Cols[col.Linkpos[j]] points back at
// col with the same value, within 1e-6.
//
// This package owns only Col/Row-local bookkeeping: appending,
// removing and changing sparse entries, linking/unlinking, sorting,
// norm caches, row sides/constant/rational-scaling, and the four
// activity concepts (lp, pseudo, bound, and against-an-arbitrary-
// solution). It deliberately does not know about the LP container or
// the external solver — package lp builds on top of it to implement
// the flush/coefChanged frontier policy that needs both a Col/Row and
// the owning Lp to decide.
//
// Grounded on the teacher corpus's matrix package (matrix/types.go's
// Option-configured construction, matrix/impl_incidence.go's sign-aware
// sparse-entry construction, matrix/impl_linear_algebra.go's validate-
// then-compute kernel shape) and core/adjacency_list.go's index-based
// adjacency bookkeeping, adapted from dense/graph-shaped data to the
// column/row sparse-matrix shape an LP relaxation actually needs.
package sparse
