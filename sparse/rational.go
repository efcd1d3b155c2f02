package sparse

import (
	"math"

	"github.com/katalvlaran/ciplp/tolerance"
)

// divisibilityTol is the tighter tolerance used while checking whether a
// scaled coefficient lands on an integer (spec.md §4.2). It is deliberately
// stricter than set.Epsilon() so scaling does not accept a value that is
// merely epsilon-close by coincidence.
const divisibilityTol = 1e-6

// MakeRational attempts to integralize the row's coefficients in place,
// trying three strategies in order (spec.md §4.2):
//  1. scale = (1/minAbsVal) * 2^k for increasing k, while scale <= maxscale.
//  2. scale = 2^k directly, with a tighter divisibility tolerance.
//  3. per-coefficient rational approximation p/q with q <= maxdnom,
//     scale = lcm(q) / gcd(p) across the row, if scale <= maxscale.
//
// On success it rescales the row (Rescale) and returns true. If no strategy
// succeeds, the row is left untouched and MakeRational returns false.
func (r *Row) MakeRational(maxdnom int, maxscale float64, set *tolerance.Settings) bool {
	if len(r.Vals) == 0 {
		return false
	}

	if scale, ok := r.findPowerOfTwoScale(r.minAbsScale(), maxscale, divisibilityTol); ok {
		r.Rescale(scale, set)
		return true
	}
	if scale, ok := r.findPowerOfTwoScale(1.0, maxscale, divisibilityTol/64); ok {
		r.Rescale(scale, set)
		return true
	}
	if scale, ok := r.rationalScale(maxdnom, maxscale); ok {
		r.Rescale(scale, set)
		return true
	}

	return false
}

// minAbsScale returns 1/minAbsVal across the row's entries, or 1 if empty.
func (r *Row) minAbsScale() float64 {
	min := math.Inf(1)
	for _, v := range r.Vals {
		if av := math.Abs(v); av < min {
			min = av
		}
	}
	if math.IsInf(min, 1) || min == 0 {
		return 1
	}
	return 1 / min
}

// findPowerOfTwoScale searches scale, 2*scale, 4*scale, ... up to maxscale
// for the first power-of-two multiple under which every coefficient lands
// within tol of an integer.
func (r *Row) findPowerOfTwoScale(scale, maxscale, tol float64) (float64, bool) {
	for s := scale; s <= maxscale; s *= 2 {
		if r.allIntegralUnder(s, tol) {
			return s, true
		}
	}
	return 0, false
}

func (r *Row) allIntegralUnder(scale, tol float64) bool {
	for _, v := range r.Vals {
		scaled := v * scale
		if math.Abs(scaled-math.Round(scaled)) > tol {
			return false
		}
	}
	return true
}

// rationalScale approximates every coefficient as p/q with q <= maxdnom,
// then scales by lcm(all q) / gcd(all p). Returns false if any coefficient
// has no such approximation or the resulting scale exceeds maxscale.
func (r *Row) rationalScale(maxdnom int, maxscale float64) (float64, bool) {
	lcmQ := int64(1)
	gcdP := int64(0)

	for _, v := range r.Vals {
		p, q, ok := rationalApprox(v, maxdnom, divisibilityTol)
		if !ok {
			return 0, false
		}
		gcdP = gcdInt64(gcdP, p)
		lcmQ = lcmInt64(lcmQ, q)
	}
	if gcdP == 0 {
		return 0, false
	}

	scale := float64(lcmQ) / float64(gcdP)
	if scale > maxscale {
		return 0, false
	}

	return scale, true
}

// Rescale multiplies every coefficient by scale (rounding near-integer
// results), folds the constant into the sides by scaling them identically,
// and zeroes the constant (spec.md §4.2). For a row with a zero constant,
// rowScale(row, 1, tol) is a no-op: scale == 1 leaves the coefficients and
// sides numerically as they were (up to the rounding snap).
func (r *Row) Rescale(scale float64, set *tolerance.Settings) {
	for i, v := range r.Vals {
		scaled := v * scale
		if rounded := math.Round(scaled); math.Abs(scaled-rounded) <= divisibilityTol {
			scaled = rounded
		}
		r.Vals[i] = scaled
	}
	r.CalcNorms(set)

	if !set.IsInfinity(r.Lhs) && !set.IsInfinity(-r.Lhs) {
		r.Lhs = scale * (r.Lhs - r.Constant)
	}
	if !set.IsInfinity(r.Rhs) && !set.IsInfinity(-r.Rhs) {
		r.Rhs = scale * (r.Rhs - r.Constant)
	}
	r.Constant = 0

	if r.allColumnsIntegral() {
		if !set.IsInfinity(-r.Lhs) {
			r.Lhs = math.Ceil(r.Lhs)
		}
		if !set.IsInfinity(r.Rhs) {
			r.Rhs = math.Floor(r.Rhs)
		}
	}

	r.LhsChanged = true
	r.RhsChanged = true
}

func (r *Row) allColumnsIntegral() bool {
	for _, c := range r.Cols {
		if !c.Owner.IsIntegral() {
			return false
		}
	}
	return true
}

// rationalApprox finds integers p, q with q in [1, maxdnom] such that
// p/q approximates v within tol, via the standard continued-fraction
// convergent search.
func rationalApprox(v float64, maxdnom int, tol float64) (p, q int64, ok bool) {
	if v == 0 {
		return 0, 1, true
	}
	sign := int64(1)
	av := v
	if av < 0 {
		sign, av = -1, -av
	}

	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	x := av
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(x))
		h2 := a*h1 + h0
		k2 := a*k1 + k0
		if k2 > int64(maxdnom) {
			break
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2
		if math.Abs(av-float64(h1)/float64(k1)) <= tol {
			return sign * h1, k1, true
		}
		frac := x - float64(a)
		if frac < 1e-12 {
			break
		}
		x = 1 / frac
	}

	if math.Abs(av-float64(h1)/float64(k1)) <= tol {
		return sign * h1, k1, true
	}
	return 0, 0, false
}

func gcdInt64(a, b int64) int64 {
	a, b = absInt64(a), absInt64(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcmInt64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return absInt64(a/gcdInt64(a, b)*b)
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
