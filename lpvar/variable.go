// Package lpvar is the external collaborator the LP-management core
// consumes but does not own: one problem variable per Variable value,
// carrying the objective coefficient, local/global bounds, integrality
// type, and status the core reads when a variable enters the LP as a
// column (spec.md §2 item 2).
//
// In the full solver this type is owned by the constraint-handling and
// branching layers this module does not implement; lpvar supplies only
// the narrow surface the LP-management core (package lp) and the
// reoptimization tree (package reopt) actually read.
package lpvar

import "errors"

// Sentinel errors for variable-model operations.
var (
	// ErrBoundsInverted indicates a lower bound exceeding the upper bound.
	ErrBoundsInverted = errors.New("lpvar: lower bound exceeds upper bound")

	// ErrUnknownType indicates an integrality type outside the enum.
	ErrUnknownType = errors.New("lpvar: unknown integrality type")

	// ErrUnknownStatus indicates a status outside the enum.
	ErrUnknownStatus = errors.New("lpvar: unknown status")
)

// Type is the variable's integrality classification.
type Type int

const (
	Continuous Type = iota
	Integer
	ImplicitInteger
	Binary
)

func (t Type) String() string {
	switch t {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case ImplicitInteger:
		return "implicit-integer"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Status is the variable's current role in the problem.
type Status int

const (
	// StatusColumn means the variable owns a live column in the LP;
	// ColumnRef identifies it.
	StatusColumn Status = iota
	StatusLoose
	StatusFixed
	StatusAggregated
	StatusMultiAggregated
	StatusNegated
)

func (s Status) String() string {
	switch s {
	case StatusColumn:
		return "column"
	case StatusLoose:
		return "loose"
	case StatusFixed:
		return "fixed"
	case StatusAggregated:
		return "aggregated"
	case StatusMultiAggregated:
		return "multi-aggregated"
	case StatusNegated:
		return "negated"
	default:
		return "unknown"
	}
}

// Columner is satisfied by whatever column representation a Variable
// owns when its Status is StatusColumn. Package sparse's *Col
// implements it; lpvar depends only on the method set so it never
// imports the column/row algebra package (avoids an import cycle, since
// sparse.Col in turn points back at its owning Variable).
type Columner interface {
	Index() int
}

// Variable is one problem variable: objective coefficient, bounds,
// integrality, a unique ProbIndex, current Status, and (iff Status is
// StatusColumn) a back-pointer to the owned column.
//
// The core consumes Variable but never allocates or frees it; that is
// the search coordinator's job. ProbIndex is assigned once at creation
// and never reused.
type Variable struct {
	probIndex int
	obj       float64
	lb, ub    float64
	globalLB  float64
	globalUB  float64
	vtype     Type
	status    Status
	column    Columner
}

// New constructs a Variable with the given probIndex, objective
// coefficient, and bounds (local bounds start equal to the global
// bounds). Status starts as StatusLoose; call SetColumn once the
// variable transitions into the LP.
func New(probIndex int, obj, lb, ub float64, vtype Type) (*Variable, error) {
	if lb > ub {
		return nil, ErrBoundsInverted
	}
	return &Variable{
		probIndex: probIndex,
		obj:       obj,
		lb:        lb,
		ub:        ub,
		globalLB:  lb,
		globalUB:  ub,
		vtype:     vtype,
		status:    StatusLoose,
	}, nil
}

// ProbIndex returns the variable's unique, immutable index.
func (v *Variable) ProbIndex() int { return v.probIndex }

// Obj returns the objective coefficient.
func (v *Variable) Obj() float64 { return v.obj }

// SetObj updates the objective coefficient. Callers in package lp are
// expected to follow this with a column objective-change notification;
// lpvar itself does not know about columns.
func (v *Variable) SetObj(obj float64) { v.obj = obj }

// LB and UB return the current local bounds.
func (v *Variable) LB() float64 { return v.lb }
func (v *Variable) UB() float64 { return v.ub }

// GlobalLB and GlobalUB return the bounds that hold at the root of the
// search tree, used by pseudo-objective and dry-branching checks.
func (v *Variable) GlobalLB() float64 { return v.globalLB }
func (v *Variable) GlobalUB() float64 { return v.globalUB }

// SetLB and SetUB update the local bounds. Neither validates lb<=ub
// against the other (the caller, typically a branching decision, is
// expected to set both together when tightening past the other side).
func (v *Variable) SetLB(lb float64) { v.lb = lb }
func (v *Variable) SetUB(ub float64) { v.ub = ub }

// SetGlobalBounds updates the bounds that hold at the root.
func (v *Variable) SetGlobalBounds(lb, ub float64) {
	v.globalLB, v.globalUB = lb, ub
}

// Type returns the integrality classification.
func (v *Variable) Type() Type { return v.vtype }

// IsIntegral reports whether the variable's type requires integral
// values in a feasible solution (Integer, ImplicitInteger, or Binary).
func (v *Variable) IsIntegral() bool {
	return v.vtype == Integer || v.vtype == ImplicitInteger || v.vtype == Binary
}

// Status returns the variable's current role.
func (v *Variable) Status() Status { return v.status }

// SetColumn transitions the variable to StatusColumn and records the
// owned column back-pointer. Passing a nil col instead moves the
// variable out of column status, clearing the back-pointer.
func (v *Variable) SetColumn(col Columner) {
	if col == nil {
		if v.status == StatusColumn {
			v.status = StatusLoose
		}
		v.column = nil
		return
	}
	v.status = StatusColumn
	v.column = col
}

// SetStatus sets a non-column status directly (fixed, aggregated,
// multi-aggregated, negated). Use SetColumn to move into/out of
// StatusColumn so the back-pointer stays consistent.
func (v *Variable) SetStatus(s Status) error {
	switch s {
	case StatusLoose, StatusFixed, StatusAggregated, StatusMultiAggregated, StatusNegated:
		v.status = s
		v.column = nil
		return nil
	case StatusColumn:
		return ErrUnknownStatus // use SetColumn instead, so the back-pointer is set
	default:
		return ErrUnknownStatus
	}
}

// Column returns the owned column back-pointer, or nil if Status is
// not StatusColumn.
func (v *Variable) Column() Columner {
	if v.status != StatusColumn {
		return nil
	}
	return v.column
}

// BestBound returns the bound a nonbasic variable rests at in an
// optimal solution to the unconstrained (pseudo-objective) relaxation:
// the lower bound when the objective coefficient is nonnegative,
// otherwise the upper bound (spec.md §4.3's bestBound).
func (v *Variable) BestBound() float64 {
	if v.obj >= 0 {
		return v.lb
	}
	return v.ub
}
