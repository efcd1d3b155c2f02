package sparse

import (
	"sort"

	"github.com/katalvlaran/ciplp/lpvar"
	"github.com/katalvlaran/ciplp/stat"
	"github.com/katalvlaran/ciplp/tolerance"
)

// Col represents one variable's participation in the LP (spec.md §3).
// Entries (Rows[j], Vals[j], Linkpos[j]) form the sparse row list; an
// entry with Linkpos[j] == -1 is unlinked (the mirror entry on the row
// side does not exist yet).
type Col struct {
	Owner *lpvar.Variable

	// Cached copies of the owning variable's values at entry time.
	Obj, LB, UB float64

	idx int // unique, monotone; assigned once, never reused

	Rows    []*Row
	Vals    []float64
	Linkpos []int

	Sorted       bool
	ObjChanged   bool
	LBChanged    bool
	UBChanged    bool
	CoefChanged  bool
	Removeable   bool

	LPPos  int // position in current LP, -1 if absent
	LPIPos int // position in solver LP, -1 if not flushed

	PrimSol    float64
	PrimSolTag stat.Tag
	RedCost    float64
	RedCostTag stat.Tag
	Farkas     float64
	FarkasTag  stat.Tag

	// Strong-branching cache.
	SBDown, SBUp, SBSolVal float64
	SBIterLim              int
	SBNode                 int
	SBValidLP              stat.Tag

	Age          int
	ObsoleteNode int
	NUnlinked    int
}

// NewCol allocates a Col for owner, caching its current obj/lb/ub and
// minting a fresh index from st. The column starts outside any LP
// (LPPos == LPIPos == -1).
func NewCol(owner *lpvar.Variable, st *stat.Stat) *Col {
	return &Col{
		Owner:  owner,
		Obj:    owner.Obj(),
		LB:     owner.LB(),
		UB:     owner.UB(),
		idx:    st.NextColIndex(),
		Sorted: true,
		LPPos:  -1,
		LPIPos: -1,
	}
}

// Index returns the column's unique, monotone index. Satisfies
// lpvar.Columner so a Variable's back-pointer can refer to a Col
// without lpvar importing this package.
func (c *Col) Index() int { return c.idx }

// Len returns the number of sparse entries.
func (c *Col) Len() int { return len(c.Rows) }

// AddCoeff appends (row, val) to the column's sparse entry list with
// the given link position (-1 for an entry whose mirror does not yet
// exist on the row side). val must be nonzero within set.Epsilon().
//
// Sortedness is preserved only if row.Index() exceeds the previous
// last entry's row index (or the column was empty); otherwise Sorted
// is cleared. This method is Col-local: it does not touch the row side
// (the caller links separately, see Link) and does not know about the
// LP container's coefChanged policy (package lp layers that on top).
func (c *Col) AddCoeff(row *Row, val float64, linkpos int, set *tolerance.Settings) error {
	if set.IsZero(val) {
		return ErrZeroCoefficient
	}

	stillSorted := true
	if n := len(c.Rows); n > 0 && c.Sorted {
		stillSorted = row.Index() > c.Rows[n-1].Index()
	}

	c.Rows = append(c.Rows, row)
	c.Vals = append(c.Vals, val)
	c.Linkpos = append(c.Linkpos, linkpos)
	c.Sorted = c.Sorted && stillSorted
	if linkpos == -1 {
		c.NUnlinked++
	}

	return nil
}

// DelCoeffPos removes the entry at pos by swapping the last entry into
// pos (spec.md §4.1). If the moved entry was linked, the mirror row's
// back-pointer (Linkpos) is updated so the cross-link invariant holds.
// Sorted is cleared unless pos was already the tail.
func (c *Col) DelCoeffPos(pos int) error {
	n := len(c.Rows)
	if pos < 0 || pos >= n {
		return ErrPosOutOfRange
	}

	if c.Linkpos[pos] == -1 {
		c.NUnlinked--
	}

	last := n - 1
	if pos != last {
		c.Rows[pos] = c.Rows[last]
		c.Vals[pos] = c.Vals[last]
		c.Linkpos[pos] = c.Linkpos[last]
		if lp := c.Linkpos[pos]; lp != -1 {
			c.Rows[pos].Linkpos[lp] = pos
		}
		c.Sorted = false
	}

	c.Rows = c.Rows[:last]
	c.Vals = c.Vals[:last]
	c.Linkpos = c.Linkpos[:last]

	return nil
}

// ChgCoeffPos updates the value at pos: zero deletes the entry,
// an unchanged value is a no-op, otherwise the value is overwritten.
// Reports whether the column's stored value actually changed.
func (c *Col) ChgCoeffPos(pos int, val float64, set *tolerance.Settings) (changed bool, err error) {
	if pos < 0 || pos >= len(c.Rows) {
		return false, ErrPosOutOfRange
	}
	if set.IsZero(val) {
		if err := c.DelCoeffPos(pos); err != nil {
			return false, err
		}
		return true, nil
	}
	if set.IsEQ(c.Vals[pos], val) {
		return false, nil
	}
	c.Vals[pos] = val

	return true, nil
}

// findUnlinked returns the position of the first unlinked entry, or -1.
func (c *Col) findUnlinked() int {
	for i, lp := range c.Linkpos {
		if lp == -1 {
			return i
		}
	}
	return -1
}

// Link ensures every entry is linked: for each unlinked (Linkpos==-1)
// entry, it appends the mirror entry on the row side (if not already
// present) and records Linkpos on both sides. On completion NUnlinked
// == 0. Must be called before flushing an added column (spec.md
// §4.1, §4.5 step 5).
func (c *Col) Link(set *tolerance.Settings) error {
	for {
		pos := c.findUnlinked()
		if pos == -1 {
			break
		}
		row := c.Rows[pos]
		val := c.Vals[pos]

		mirror := row.findEntryByCol(c)
		if mirror == -1 {
			if err := row.AddCoeff(c, val, pos, set); err != nil {
				return err
			}
			mirror = len(row.Cols) - 1
		} else {
			row.Linkpos[mirror] = pos
		}
		c.Linkpos[pos] = mirror
		c.NUnlinked--
	}

	return nil
}

// Unlink removes this column's back-pointer knowledge from every row
// it references, turning every entry unlinked again, without removing
// the entries themselves. Used before freeing a column or removing it
// from the LP.
func (c *Col) Unlink() {
	for i, row := range c.Rows {
		if lp := c.Linkpos[i]; lp != -1 {
			row.Linkpos[lp] = -1
			row.NUnlinked++
			c.Linkpos[i] = -1
			c.NUnlinked++
		}
	}
}

// colSortable adapts Col to sort.Interface, ordering entries by the
// referenced row's Index.
type colSortable struct{ c *Col }

func (s colSortable) Len() int { return len(s.c.Rows) }
func (s colSortable) Less(i, j int) bool {
	return s.c.Rows[i].Index() < s.c.Rows[j].Index()
}
func (s colSortable) Swap(i, j int) {
	c := s.c
	c.Rows[i], c.Rows[j] = c.Rows[j], c.Rows[i]
	c.Vals[i], c.Vals[j] = c.Vals[j], c.Vals[i]
	c.Linkpos[i], c.Linkpos[j] = c.Linkpos[j], c.Linkpos[i]
	// fix up back-pointers on both sides that just moved.
	if lp := c.Linkpos[i]; lp != -1 {
		c.Rows[i].Linkpos[lp] = i
	}
	if lp := c.Linkpos[j]; lp != -1 {
		c.Rows[j].Linkpos[lp] = j
	}
}

// Sort orders entries by row index, fixing up every affected mirror
// back-pointer, and marks the column sorted. No-op if already sorted.
func (c *Col) Sort() {
	if c.Sorted {
		return
	}
	sort.Sort(colSortable{c})
	c.Sorted = true
}

// findRowPos returns the position of row in this column's entries, -1
// if absent. Sorting first makes this O(log n); unsorted it is O(n).
func (c *Col) findRowPos(row *Row) int {
	if c.Sorted {
		idx := row.Index()
		lo, hi := 0, len(c.Rows)
		for lo < hi {
			mid := (lo + hi) / 2
			if c.Rows[mid].Index() < idx {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo < len(c.Rows) && c.Rows[lo] == row {
			return lo
		}
		return -1
	}
	for i, r := range c.Rows {
		if r == row {
			return i
		}
	}
	return -1
}

// PosOf returns the position of row in this column's entries, or -1 if
// absent. Exported for package lp, which must locate both sides of a
// cross-linked entry to keep the invariant intact while changing a
// coefficient shared by a column and row it does not otherwise touch.
func (c *Col) PosOf(row *Row) int { return c.findRowPos(row) }

// CoeffOf returns the column's value for row and whether an entry
// exists. Binary search is used when the column is sorted.
func (c *Col) CoeffOf(row *Row) (float64, bool) {
	pos := c.findRowPos(row)
	if pos == -1 {
		return 0, false
	}
	return c.Vals[pos], true
}

// RedCostValue computes obj - sum(vals[i] * row.DualSol) across the
// column's entries (spec.md §4.3).
func (c *Col) RedCostValue() float64 {
	rc := c.Obj
	for i, row := range c.Rows {
		rc -= c.Vals[i] * row.DualSol
	}
	return rc
}

// DualRowFeasibility returns the signed feasibility of the dual
// constraint this column indexes (spec.md §4.3, standard bounded-
// variable duality): a fixed column (LB == UB) is always feasible, its
// dual constraint carries no sign restriction. A boxed column with two
// distinct finite bounds is likewise always feasible: the primal
// variable can rest at whichever bound matches the reduced cost's
// sign, so no redcost value is ever infeasible. Only a column with at
// most one finite bound is actually constrained: redcost >= 0 is
// required when only the lower bound is finite, redcost <= 0 when only
// the upper bound is finite, and a fully free column (no finite bound
// at all) is feasible only at redcost == 0, since it has no bound to
// rest at.
func (c *Col) DualRowFeasibility(set *tolerance.Settings) float64 {
	rc := c.RedCostValue()
	lbFinite := !set.IsInfinity(c.LB) && !set.IsInfinity(-c.LB)
	ubFinite := !set.IsInfinity(c.UB) && !set.IsInfinity(-c.UB)

	switch {
	case set.IsEQ(c.LB, c.UB):
		return set.Infinity() // fixed: dual constraint is free
	case lbFinite && ubFinite:
		return set.Infinity() // boxed, not fixed: redcost can rest at either bound
	case lbFinite:
		return rc // only lb finite: need redcost >= 0
	case ubFinite:
		return -rc // only ub finite: need redcost <= 0
	default:
		return -absF(rc) // fully free: feasibility is redcost == 0
	}
}

// Clone returns a shallow structural copy of the column: same Owner
// pointer and obj/bound cache, independent Rows/Vals/Linkpos slices, and
// Linkpos entries cleared to -1 (a clone is never itself linked into the
// rows it references, so the clone can be modified without disturbing
// the source column or its rows).
func (c *Col) Clone() *Col {
	clone := &Col{
		Owner:  c.Owner,
		Obj:    c.Obj,
		LB:     c.LB,
		UB:     c.UB,
		idx:    c.idx,
		Sorted: c.Sorted,
		LPPos:  -1,
		LPIPos: -1,
	}
	clone.Rows = append([]*Row(nil), c.Rows...)
	clone.Vals = append([]float64(nil), c.Vals...)
	clone.Linkpos = make([]int, len(c.Linkpos))
	for i := range clone.Linkpos {
		clone.Linkpos[i] = -1
	}
	clone.NUnlinked = len(clone.Linkpos)

	return clone
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
