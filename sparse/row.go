package sparse

import (
	"math"
	"sort"

	"github.com/katalvlaran/ciplp/stat"
	"github.com/katalvlaran/ciplp/tolerance"
)

// Row represents one linear constraint active in the LP (spec.md §3).
// Entries (Cols[j], Vals[j], Linkpos[j]) form the sparse column list,
// symmetric to Col's row list.
type Row struct {
	Name     string
	Lhs, Rhs float64
	Constant float64

	idx int

	Cols          []*Col
	ColsProbIndex []int
	Vals          []float64
	Linkpos       []int

	SqrNorm        float64
	MaxVal         float64
	MinVal         float64
	NumMaxVal      int
	NumMinVal      int
	MinIdx, MaxIdx int
	ValidMinMaxIdx bool

	DualSol      float64
	Activity     float64
	DualFarkas   float64
	ActivityTag  stat.Tag

	PseudoActivity    float64
	PseudoActivityTag stat.Tag
	MinActivity       float64
	MinActivityTag    stat.Tag
	MaxActivity       float64
	MaxActivityTag    stat.Tag

	NUses int
	NLocks int

	Sorted      bool
	DelaySort   bool
	LhsChanged  bool
	RhsChanged  bool
	CoefChanged bool
	Local       bool
	Modifiable  bool
	Removeable  bool

	LPPos  int
	LPIPos int

	Age          int
	ObsoleteNode int
	NUnlinked    int
}

// NewRow allocates a Row with the given name and sides, minting a
// fresh index from st. lhs must be <= rhs.
func NewRow(name string, lhs, rhs float64, st *stat.Stat) *Row {
	return &Row{
		Name:   name,
		Lhs:    lhs,
		Rhs:    rhs,
		idx:    st.NextRowIndex(),
		Sorted: true,
		LPPos:  -1,
		LPIPos: -1,
		NUses:  1,
	}
}

// Index returns the row's unique, monotone index.
func (r *Row) Index() int { return r.idx }

// Len returns the number of sparse entries.
func (r *Row) Len() int { return len(r.Cols) }

// AddCoeff appends (col, val) to the row's sparse entry list, mirroring
// Col.AddCoeff. It also updates the row's norm cache via AddNorms.
func (r *Row) AddCoeff(col *Col, val float64, linkpos int, set *tolerance.Settings) error {
	if set.IsZero(val) {
		return ErrZeroCoefficient
	}

	stillSorted := true
	if n := len(r.Cols); n > 0 && r.Sorted && !r.DelaySort {
		stillSorted = col.Index() > r.Cols[n-1].Index()
	}

	pos := len(r.Cols)
	r.Cols = append(r.Cols, col)
	r.ColsProbIndex = append(r.ColsProbIndex, col.Owner.ProbIndex())
	r.Vals = append(r.Vals, val)
	r.Linkpos = append(r.Linkpos, linkpos)
	if !r.DelaySort {
		r.Sorted = r.Sorted && stillSorted
	}
	if linkpos == -1 {
		r.NUnlinked++
	}

	r.AddNorms(pos, val, set)

	return nil
}

// DelCoeffPos removes the entry at pos by swapping the last entry into
// pos, fixing up the mirror column's Linkpos if the moved entry was
// linked, and retiring its contribution from the norm cache.
func (r *Row) DelCoeffPos(pos int, set *tolerance.Settings) error {
	n := len(r.Cols)
	if pos < 0 || pos >= n {
		return ErrPosOutOfRange
	}

	r.DelNorms(pos, set)

	if r.Linkpos[pos] == -1 {
		r.NUnlinked--
	}

	last := n - 1
	if pos != last {
		r.Cols[pos] = r.Cols[last]
		r.ColsProbIndex[pos] = r.ColsProbIndex[last]
		r.Vals[pos] = r.Vals[last]
		r.Linkpos[pos] = r.Linkpos[last]
		if lp := r.Linkpos[pos]; lp != -1 {
			r.Cols[pos].Linkpos[lp] = pos
		}
		r.Sorted = false
	}

	r.Cols = r.Cols[:last]
	r.ColsProbIndex = r.ColsProbIndex[:last]
	r.Vals = r.Vals[:last]
	r.Linkpos = r.Linkpos[:last]

	return nil
}

// ChgCoeffPos updates the value at pos: zero deletes the entry,
// unchanged is a no-op, otherwise the norm cache is retired and
// re-added around the update. Reports whether anything changed.
func (r *Row) ChgCoeffPos(pos int, val float64, set *tolerance.Settings) (changed bool, err error) {
	if pos < 0 || pos >= len(r.Cols) {
		return false, ErrPosOutOfRange
	}
	if set.IsZero(val) {
		if err := r.DelCoeffPos(pos, set); err != nil {
			return false, err
		}
		return true, nil
	}
	if set.IsEQ(r.Vals[pos], val) {
		return false, nil
	}

	r.DelNorms(pos, set)
	r.Vals[pos] = val
	r.AddNorms(pos, val, set)

	return true, nil
}

func (r *Row) findEntryByCol(c *Col) int {
	for i, col := range r.Cols {
		if col == c {
			return i
		}
	}
	return -1
}

func (c *Col) findEntryByRow(r *Row) int {
	for i, row := range c.Rows {
		if row == r {
			return i
		}
	}
	return -1
}

// Link ensures every row entry is linked, mirroring Col.Link.
func (r *Row) Link(set *tolerance.Settings) error {
	for {
		pos := -1
		for i, lp := range r.Linkpos {
			if lp == -1 {
				pos = i
				break
			}
		}
		if pos == -1 {
			break
		}
		col := r.Cols[pos]
		val := r.Vals[pos]

		mirror := col.findEntryByRow(r)
		if mirror == -1 {
			if err := col.AddCoeff(r, val, pos, set); err != nil {
				return err
			}
			mirror = len(col.Rows) - 1
		} else {
			col.Linkpos[mirror] = pos
		}
		r.Linkpos[pos] = mirror
		r.NUnlinked--
	}

	return nil
}

// Unlink is the row-side mirror of Col.Unlink.
func (r *Row) Unlink() {
	for i, col := range r.Cols {
		if lp := r.Linkpos[i]; lp != -1 {
			col.Linkpos[lp] = -1
			col.NUnlinked++
			r.Linkpos[i] = -1
			r.NUnlinked++
		}
	}
}

// --- norms -----------------------------------------------------------------

// AddNorms folds the entry at pos into the row's cached aggregates:
// SqrNorm += v^2, and widens (MaxVal,NumMaxVal)/(MinVal,NumMinVal) with
// multiplicity semantics (spec.md §4.1).
func (r *Row) AddNorms(pos int, val float64, set *tolerance.Settings) {
	av := math.Abs(val)
	r.SqrNorm += val * val

	switch {
	case r.NumMaxVal == 0:
		r.MaxVal, r.NumMaxVal, r.MaxIdx = av, 1, pos
	case set.IsEQ(av, r.MaxVal):
		r.NumMaxVal++
	case av > r.MaxVal:
		r.MaxVal, r.NumMaxVal, r.MaxIdx = av, 1, pos
	}
	switch {
	case r.NumMinVal == 0:
		r.MinVal, r.NumMinVal, r.MinIdx = av, 1, pos
	case set.IsEQ(av, r.MinVal):
		r.NumMinVal++
	case av < r.MinVal:
		r.MinVal, r.NumMinVal, r.MinIdx = av, 1, pos
	}
	r.ValidMinMaxIdx = true
}

// DelNorms retires the entry at pos from the cached aggregates. If a
// multiplicity drops to zero, NumMinVal/NumMaxVal signal that a full
// recompute is needed on next query (spec.md §4.1); this method sets
// ValidMinMaxIdx false in that case rather than eagerly rescanning.
func (r *Row) DelNorms(pos int, set *tolerance.Settings) {
	val := r.Vals[pos]
	r.SqrNorm -= val * val
	if r.SqrNorm < 0 {
		r.SqrNorm = 0
	}

	av := math.Abs(val)
	if r.NumMaxVal > 0 && set.IsEQ(av, r.MaxVal) {
		r.NumMaxVal--
		if r.NumMaxVal == 0 {
			r.ValidMinMaxIdx = false
		}
	}
	if r.NumMinVal > 0 && set.IsEQ(av, r.MinVal) {
		r.NumMinVal--
		if r.NumMinVal == 0 {
			r.ValidMinMaxIdx = false
		}
	}
}

// CalcNorms recomputes SqrNorm, MaxVal/NumMaxVal, MinVal/NumMinVal from
// scratch in a single pass, and checks sortedness as a side effect
// (spec.md §4.1).
func (r *Row) CalcNorms(set *tolerance.Settings) {
	r.SqrNorm = 0
	r.NumMaxVal = 0
	r.NumMinVal = 0
	r.MaxVal = 0
	r.MinVal = 0
	r.ValidMinMaxIdx = len(r.Cols) > 0

	sorted := true
	for i, v := range r.Vals {
		r.SqrNorm += v * v
		av := math.Abs(v)
		switch {
		case r.NumMaxVal == 0 || av > r.MaxVal:
			r.MaxVal = av
			r.NumMaxVal = 1
			r.MaxIdx = i
		case set.IsEQ(av, r.MaxVal):
			r.NumMaxVal++
		}
		switch {
		case r.NumMinVal == 0 || av < r.MinVal:
			r.MinVal = av
			r.NumMinVal = 1
			r.MinIdx = i
		case set.IsEQ(av, r.MinVal):
			r.NumMinVal++
		}
		if i > 0 && r.Cols[i].Index() < r.Cols[i-1].Index() {
			sorted = false
		}
	}
	r.Sorted = sorted
}

// --- sorting -----------------------------------------------------------------

type rowSortable struct{ r *Row }

func (s rowSortable) Len() int { return len(s.r.Cols) }
func (s rowSortable) Less(i, j int) bool {
	return s.r.Cols[i].Index() < s.r.Cols[j].Index()
}
func (s rowSortable) Swap(i, j int) {
	r := s.r
	r.Cols[i], r.Cols[j] = r.Cols[j], r.Cols[i]
	r.ColsProbIndex[i], r.ColsProbIndex[j] = r.ColsProbIndex[j], r.ColsProbIndex[i]
	r.Vals[i], r.Vals[j] = r.Vals[j], r.Vals[i]
	r.Linkpos[i], r.Linkpos[j] = r.Linkpos[j], r.Linkpos[i]
	if lp := r.Linkpos[i]; lp != -1 {
		r.Cols[i].Linkpos[lp] = i
	}
	if lp := r.Linkpos[j]; lp != -1 {
		r.Cols[j].Linkpos[lp] = j
	}
}

// Sort orders entries by column index, fixing up mirror back-pointers.
// No-op if already sorted or DelaySort is set.
func (r *Row) Sort() {
	if r.Sorted || r.DelaySort {
		return
	}
	sort.Sort(rowSortable{r})
	r.Sorted = true
}

// ForceSort sorts (ignoring DelaySort), merges adjacent entries
// referencing the same column (summing their values), and drops
// zero-valued entries, per spec.md §4.1. The row must be fully
// unlinked (NUnlinked == Len()) before calling; relinking afterward is
// the caller's responsibility.
func (r *Row) ForceSort(set *tolerance.Settings) error {
	if r.NUnlinked != len(r.Cols) {
		return ErrNotUnlinked
	}

	sort.Sort(rowSortable{r})
	r.Sorted = true

	out := 0
	for i := 0; i < len(r.Cols); {
		j := i + 1
		sum := r.Vals[i]
		for j < len(r.Cols) && r.Cols[j].Index() == r.Cols[i].Index() {
			sum += r.Vals[j]
			j++
		}
		if !set.IsZero(sum) {
			r.Cols[out] = r.Cols[i]
			r.ColsProbIndex[out] = r.ColsProbIndex[i]
			r.Vals[out] = sum
			r.Linkpos[out] = -1
			out++
		}
		i = j
	}
	r.Cols = r.Cols[:out]
	r.ColsProbIndex = r.ColsProbIndex[:out]
	r.Vals = r.Vals[:out]
	r.Linkpos = r.Linkpos[:out]
	r.NUnlinked = out

	r.CalcNorms(set)

	return nil
}

// findColPos mirrors Col.findRowPos.
func (r *Row) findColPos(c *Col) int {
	if r.Sorted {
		idx := c.Index()
		lo, hi := 0, len(r.Cols)
		for lo < hi {
			mid := (lo + hi) / 2
			if r.Cols[mid].Index() < idx {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo < len(r.Cols) && r.Cols[lo] == c {
			return lo
		}
		return -1
	}
	if r.DelaySort {
		return -1 // spec.md §4.1: lookup during delayed sort returns "not found"
	}
	for i, col := range r.Cols {
		if col == c {
			return i
		}
	}
	return -1
}

// PosOf returns the position of col in this row's entries, or -1 if
// absent. Exported for the same cross-side lookup reason as Col.PosOf.
func (r *Row) PosOf(col *Col) int { return r.findColPos(col) }

// CoeffOf returns the row's value for col and whether an entry exists.
func (r *Row) CoeffOf(c *Col) (float64, bool) {
	pos := r.findColPos(c)
	if pos == -1 {
		return 0, false
	}
	return r.Vals[pos], true
}

// --- locks -------------------------------------------------------------------

// Lock increments NLocks, refusing if the row is Modifiable (spec.md
// §5: modifiable rows cannot be locked).
func (r *Row) Lock() error {
	if r.Modifiable {
		return ErrModifiableLocked
	}
	r.NLocks++
	return nil
}

// Unlock decrements NLocks (floored at zero).
func (r *Row) Unlock() {
	if r.NLocks > 0 {
		r.NLocks--
	}
}

// checkMutable returns ErrRowLocked if the row currently refuses
// coefficient/side mutation.
func (r *Row) checkMutable() error {
	if r.NLocks > 0 {
		return ErrRowLocked
	}
	return nil
}

// --- sides & constant ---------------------------------------------------------

// ChgLhs updates Lhs. A tolerance-equal new value is a no-op; otherwise
// Lhs is updated and LhsChanged set (idempotently) so the owning LP can
// enqueue this row on chgrows at most once.
func (r *Row) ChgLhs(lhs float64, set *tolerance.Settings) error {
	if err := r.checkMutable(); err != nil {
		return err
	}
	if set.IsEQ(r.Lhs, lhs) {
		return nil
	}
	r.Lhs = lhs
	r.LhsChanged = true
	return nil
}

// ChgRhs is the ChgLhs mirror for Rhs.
func (r *Row) ChgRhs(rhs float64, set *tolerance.Settings) error {
	if err := r.checkMutable(); err != nil {
		return err
	}
	if set.IsEQ(r.Rhs, rhs) {
		return nil
	}
	r.Rhs = rhs
	r.RhsChanged = true
	return nil
}

// ChgConstant adjusts Constant by delta := c - r.Constant. If the
// cached pseudo/bound activities are still valid for the current
// bound-change epoch, they are bumped in place by delta rather than
// invalidated (spec.md §4.2). Both sides are marked changed.
func (r *Row) ChgConstant(c float64, boundChgCount uint64, set *tolerance.Settings) error {
	if err := r.checkMutable(); err != nil {
		return err
	}
	if set.IsEQ(r.Constant, c) {
		return nil
	}
	delta := c - r.Constant
	r.Constant = c

	if r.PseudoActivityTag.Fresh(boundChgCount) {
		r.PseudoActivity += delta
	}
	if r.MinActivityTag.Fresh(boundChgCount) {
		r.MinActivity += delta
	}
	if r.MaxActivityTag.Fresh(boundChgCount) {
		r.MaxActivity += delta
	}

	r.LhsChanged = true
	r.RhsChanged = true

	return nil
}

// --- activities ----------------------------------------------------------------

// LPActivity returns Constant + sum(Vals[i]*Cols[i].PrimSol), valid
// only when tagged fresh for lpCount by the caller (package lp keeps
// the tag current after a successful solve).
func (r *Row) LPActivity() float64 {
	act := r.Constant
	for i, c := range r.Cols {
		act += r.Vals[i] * c.PrimSol
	}
	return act
}

// ComputePseudoActivity returns Constant + sum(Vals[i]*bestBound(Cols[i])).
func (r *Row) ComputePseudoActivity() float64 {
	act := r.Constant
	for i, c := range r.Cols {
		act += r.Vals[i] * c.Owner.BestBound()
	}
	return act
}

// ComputeMinMaxActivity returns the sign-aware min/max activity: for
// each entry, a positive coefficient contributes [lb,ub] and a
// negative one contributes [ub,lb] (scaled by the coefficient); any
// infinite contribution on a side makes that side infinite.
func (r *Row) ComputeMinMaxActivity(set *tolerance.Settings) (min, max float64) {
	min, max = r.Constant, r.Constant
	minInf, maxInf := false, false

	for i, c := range r.Cols {
		v := r.Vals[i]
		lb, ub := c.Owner.LB(), c.Owner.UB()
		var lo, hi float64
		var loInf, hiInf bool
		if v >= 0 {
			lo, loInf = v*lb, set.IsInfinity(-lb)
			hi, hiInf = v*ub, set.IsInfinity(ub)
		} else {
			lo, loInf = v*ub, set.IsInfinity(ub)
			hi, hiInf = v*lb, set.IsInfinity(-lb)
		}
		if loInf {
			minInf = true
		} else if !minInf {
			min += lo
		}
		if hiInf {
			maxInf = true
		} else if !maxInf {
			max += hi
		}
	}

	if minInf {
		min = -set.Infinity()
	}
	if maxInf {
		max = set.Infinity()
	}

	return min, max
}

// SolActivity evaluates the row against an arbitrary primal solution,
// given as a function from probindex to value. Unsafe infinities in
// the result are clamped to +/-Infinity() (spec.md §4.3).
func (r *Row) SolActivity(solVal func(probIndex int) float64, set *tolerance.Settings) float64 {
	act := r.Constant
	for i, c := range r.Cols {
		act += r.Vals[i] * solVal(c.Owner.ProbIndex())
	}
	if act > set.Infinity() {
		act = set.Infinity()
	} else if act < -set.Infinity() {
		act = -set.Infinity()
	}
	return act
}

// Clone returns a shallow structural copy of the row: same name/sides/
// constant and norm cache, independent Cols/Vals/Linkpos slices with
// every Linkpos cleared to -1, so the clone can be modified without
// mutating the source row or its columns' back-pointers.
func (r *Row) Clone() *Row {
	clone := &Row{
		Name:           r.Name,
		Lhs:            r.Lhs,
		Rhs:            r.Rhs,
		Constant:       r.Constant,
		idx:            r.idx,
		SqrNorm:        r.SqrNorm,
		MaxVal:         r.MaxVal,
		MinVal:         r.MinVal,
		NumMaxVal:      r.NumMaxVal,
		NumMinVal:      r.NumMinVal,
		MinIdx:         r.MinIdx,
		MaxIdx:         r.MaxIdx,
		ValidMinMaxIdx: r.ValidMinMaxIdx,
		Sorted:         r.Sorted,
		LPPos:          -1,
		LPIPos:         -1,
		NUses:          1,
	}
	clone.Cols = append([]*Col(nil), r.Cols...)
	clone.ColsProbIndex = append([]int(nil), r.ColsProbIndex...)
	clone.Vals = append([]float64(nil), r.Vals...)
	clone.Linkpos = make([]int, len(r.Linkpos))
	for i := range clone.Linkpos {
		clone.Linkpos[i] = -1
	}
	clone.NUnlinked = len(clone.Linkpos)

	return clone
}

// Feasibility returns min(Rhs-activity, activity-Lhs); negative means
// infeasible, magnitude measures the violation (spec.md §4.3).
func (r *Row) Feasibility(activity float64) float64 {
	fromRhs := r.Rhs - activity
	fromLhs := activity - r.Lhs
	if fromRhs < fromLhs {
		return fromRhs
	}
	return fromLhs
}
