// Package tolerance provides the numerics leaf of ciplp: a Settings
// bundle carrying infinity and the family of epsilons the rest of the
// module compares floats against, plus the tolerance-aware comparison
// predicates every other package calls instead of using `==` or `<`
// directly on floats.
//
// Settings is built with functional options over sensible defaults,
// the same shape as builder.BuilderOption / tsp.Options in the wider
// module family: a Settings zero value is not meaningful, NewSettings
// is the blessed constructor, and later options override earlier ones.
package tolerance

// Default knobs. Names and magnitudes follow the constraint-integer-
// programming literature this module's spec is drawn from: feastol is
// looser than epsilon because primal feasibility of an LP relaxation
// is judged against the solver's own numerical noise floor, not exact
// zero.
const (
	DefaultInfinity    = 1e20
	DefaultEpsilon     = 1e-9
	DefaultFeasTol     = 1e-6
	DefaultDualFeasTol = 1e-7
	DefaultSumEpsilon  = 1e-6
)

// Settings bundles the tolerances every comparison predicate in this
// module is parameterized on. Construct with NewSettings; the zero
// value (all-zero tolerances) is deliberately not useful, matching
// matrix.MatrixOptions/tsp.Options which document the same contract.
type Settings struct {
	infinity    float64
	epsilon     float64
	feastol     float64
	dualfeastol float64
	sumepsilon  float64
}

// Option configures a Settings instance.
type Option func(*Settings)

// WithInfinity overrides the value treated as +/-infinity at the
// boundary with the external solver and in bound comparisons.
func WithInfinity(v float64) Option {
	return func(s *Settings) { s.infinity = v }
}

// WithEpsilon overrides the general-purpose zero tolerance.
func WithEpsilon(v float64) Option {
	return func(s *Settings) { s.epsilon = v }
}

// WithFeasTol overrides the primal feasibility tolerance.
func WithFeasTol(v float64) Option {
	return func(s *Settings) { s.feastol = v }
}

// WithDualFeasTol overrides the dual feasibility tolerance.
func WithDualFeasTol(v float64) Option {
	return func(s *Settings) { s.dualfeastol = v }
}

// WithSumEpsilon overrides the tolerance used when comparing
// accumulated sums (MIR aggregation, row activities) where rounding
// error compounds across many terms.
func WithSumEpsilon(v float64) Option {
	return func(s *Settings) { s.sumepsilon = v }
}

// NewSettings returns a Settings initialized with the package defaults,
// then applies opts in order.
func NewSettings(opts ...Option) *Settings {
	s := &Settings{
		infinity:    DefaultInfinity,
		epsilon:     DefaultEpsilon,
		feastol:     DefaultFeasTol,
		dualfeastol: DefaultDualFeasTol,
		sumepsilon:  DefaultSumEpsilon,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Infinity returns the value treated as +infinity (negate for -infinity).
func (s *Settings) Infinity() float64 { return s.infinity }

// Epsilon returns the general-purpose zero tolerance.
func (s *Settings) Epsilon() float64 { return s.epsilon }

// FeasTol returns the primal feasibility tolerance.
func (s *Settings) FeasTol() float64 { return s.feastol }

// DualFeasTol returns the dual feasibility tolerance.
func (s *Settings) DualFeasTol() float64 { return s.dualfeastol }

// SumEpsilon returns the accumulated-sum comparison tolerance.
func (s *Settings) SumEpsilon() float64 { return s.sumepsilon }

// IsInfinity reports whether v should be treated as +/-infinity.
func (s *Settings) IsInfinity(v float64) bool {
	return v >= s.infinity || v <= -s.infinity
}

// IsZero reports whether v is within Epsilon of zero.
func (s *Settings) IsZero(v float64) bool {
	return v > -s.epsilon && v < s.epsilon
}

// IsEQ reports whether a and b are within Epsilon of each other.
func (s *Settings) IsEQ(a, b float64) bool {
	return s.IsZero(a - b)
}

// IsLE reports whether a <= b within Epsilon.
func (s *Settings) IsLE(a, b float64) bool {
	return a-b <= s.epsilon
}

// IsGE reports whether a >= b within Epsilon.
func (s *Settings) IsGE(a, b float64) bool {
	return s.IsLE(b, a)
}

// IsFeasEQ reports whether a and b are within FeasTol of each other,
// the looser comparison used for solver-reported values.
func (s *Settings) IsFeasEQ(a, b float64) bool {
	d := a - b
	return d > -s.feastol && d < s.feastol
}

// IsSumLE reports whether a <= b within SumEpsilon, used by
// accumulation-heavy comparisons (MIR aggregation, row sums).
func (s *Settings) IsSumLE(a, b float64) bool {
	return a-b <= s.sumepsilon
}

// IsIntegral reports whether v is within Epsilon of an integer.
func (s *Settings) IsIntegral(v float64) bool {
	return s.IsZero(v - Round(v))
}

// Floor returns the tolerance-aware floor of v: if v is already
// integral within Epsilon, Floor returns the rounded integer rather
// than letting floating point noise push it one below.
func (s *Settings) Floor(v float64) float64 {
	f := Round(v)
	if s.IsZero(v - f) {
		return f
	}
	return floorRaw(v)
}

// Ceil is the tolerance-aware ceiling, the mirror of Floor.
func (s *Settings) Ceil(v float64) float64 {
	c := Round(v)
	if s.IsZero(v - c) {
		return c
	}
	return ceilRaw(v)
}
