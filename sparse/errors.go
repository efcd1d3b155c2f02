package sparse

import "errors"

// Sentinel errors for column/row sparse-vector operations.
var (
	// ErrZeroCoefficient indicates an attempt to add a coefficient
	// whose magnitude is within tolerance of zero, where spec.md §4.1
	// requires a nonzero value.
	ErrZeroCoefficient = errors.New("sparse: coefficient is zero within tolerance")

	// ErrPosOutOfRange indicates a sparse-entry position outside [0,len).
	ErrPosOutOfRange = errors.New("sparse: position out of range")

	// ErrRowLocked indicates a mutation was attempted on a row with
	// NLocks > 0 (spec.md §5: a locked row refuses coefficient/side
	// modifications).
	ErrRowLocked = errors.New("sparse: row is locked")

	// ErrModifiableLocked indicates an attempt to lock a modifiable
	// row (spec.md §5: modifiable rows cannot be locked).
	ErrModifiableLocked = errors.New("sparse: modifiable rows cannot be locked")

	// ErrNotUnlinked indicates ForceSort was called on a row that
	// still has linked entries; the merge step requires the row be
	// fully unlinked first (spec.md §4.1).
	ErrNotUnlinked = errors.New("sparse: row must be fully unlinked before force-sort")
)
