// Package status defines the shared error taxonomy used across ciplp:
// a small, closed set of status codes every operation can fail with,
// plus sentinel errors so callers can errors.Is a specific condition
// without parsing strings.
//
// Code mirrors the return-code convention of the engine this module's
// core is modeled on. The other ciplp packages do not import this one:
// their operations return their own package sentinels (sparse.ErrRowLocked,
// lp.ErrNotSolved, ...) and never a *Error, so a caller that wants a
// Code wraps those errors itself. The
// first non-nil error unwinds the caller; callers must not assume
// intermediate state is consistent, but may assume the module's
// structural invariants (cross-links, validity tags) remain intact,
// because every operation validates preconditions before mutating
// anything they could otherwise leave half-done.
package status

import (
	"errors"
	"fmt"
)

// Code is a coarse classification of a failure, independent of which
// package raised it.
type Code int

const (
	// OK indicates success. Operations that return nil errors are
	// implicitly OK; Code is only inspected on a non-nil *Error.
	OK Code = iota

	// InvalidData indicates the caller violated a data contract: a
	// locked row was mutated, an unknown column/row was referenced, a
	// zero coefficient was added where a nonzero one was required.
	InvalidData

	// InvalidCall indicates the receiver was in the wrong state for
	// the requested operation, e.g. reading a solution before solving.
	InvalidCall

	// LPError indicates the external solver failed irrecoverably after
	// exhausting the numerical stability ladder.
	LPError

	// NoMemory indicates an allocation failed.
	NoMemory

	// Err is the programming-error fallback for statuses that do not
	// fit any of the above.
	Err
)

// String renders a Code for diagnostics and log lines.
func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case InvalidData:
		return "InvalidData"
	case InvalidCall:
		return "InvalidCall"
	case LPError:
		return "LPError"
	case NoMemory:
		return "NoMemory"
	case Err:
		return "Err"
	default:
		return "Unknown"
	}
}

// Sentinel errors, one per Code, so callers can errors.Is(err,
// status.ErrInvalidData) without caring which package raised it.
var (
	ErrInvalidData = errors.New("status: invalid data")
	ErrInvalidCall = errors.New("status: invalid call")
	ErrLPError     = errors.New("status: lp error")
	ErrNoMemory    = errors.New("status: no memory")
	ErrUnknown     = errors.New("status: unknown error")
)

// sentinelFor returns the canonical sentinel for a Code.
func sentinelFor(c Code) error {
	switch c {
	case InvalidData:
		return ErrInvalidData
	case InvalidCall:
		return ErrInvalidCall
	case LPError:
		return ErrLPError
	case NoMemory:
		return ErrNoMemory
	default:
		return ErrUnknown
	}
}

// Error wraps a Code with the operation that raised it and, optionally,
// a more specific underlying error obtained from a collaborator (the
// LP solver, an allocator, ...).
type Error struct {
	Code Code
	Op   string
	Err  error
}

// New constructs an *Error for the given code and operation name. If
// the code is OK, New returns nil: callers can write
// `return status.New(status.OK, "colAddCoeff", nil)` in a switch
// without an extra branch.
func New(code Code, op string, err error) error {
	if code == OK {
		return nil
	}
	if err == nil {
		err = sentinelFor(code)
	}
	return &Error{Code: code, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

// Unwrap exposes the wrapped sentinel/underlying error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether err carries the given Code, looking through any
// wrapping.
func Is(err error, code Code) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
