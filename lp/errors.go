package lp

import "errors"

// Sentinel errors for LP-container operations, wrapped into
// status.Error by callers that need the taxonomy's Code (spec.md §7).
var (
	// ErrDiving indicates a structural modification was attempted while
	// the LP is in diving mode (spec.md §5: diving forbids most
	// structural modifications).
	ErrDiving = errors.New("lp: structural modification attempted during diving")

	// ErrNotFlushed indicates a query that requires a flushed LP was
	// made before flushing.
	ErrNotFlushed = errors.New("lp: LP is not flushed")

	// ErrNotSolved indicates a query that requires a solved LP
	// (GetSol, activities, strong branching) was made before solving.
	ErrNotSolved = errors.New("lp: LP has not been solved")

	// ErrUnstable indicates the stability ladder exhausted every rung
	// without producing a numerically trustworthy basis.
	ErrUnstable = errors.New("lp: simplex unstable after full recovery ladder")

	// ErrNoFarkas indicates GetDualFarkas/primal-ray extraction was
	// requested but the last solve status does not support it.
	ErrNoFarkas = errors.New("lp: no Farkas certificate available for last solve status")
)
