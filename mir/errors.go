package mir

import "errors"

// Sentinel errors for MIR cut derivation.
var (
	// ErrFractionalityTooSmall indicates the rounded right-hand side's
	// fractional part fell below the caller's requested minfrac,
	// aborting the round phase (spec.md §4.7).
	ErrFractionalityTooSmall = errors.New("mir: rhs fractionality below minfrac")

	// ErrWeightLengthMismatch indicates w does not have one entry per
	// row passed to SumMIRRow/SumRows.
	ErrWeightLengthMismatch = errors.New("mir: weight vector length does not match row count")

	// ErrFreeVariable indicates a free (unbounded both ways) variable
	// with a nonzero coefficient was encountered where standard-form
	// transformation requires a finite bound to shift to zero.
	ErrFreeVariable = errors.New("mir: free variable has nonzero coefficient")
)
