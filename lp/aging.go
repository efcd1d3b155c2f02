package lp

import "github.com/katalvlaran/ciplp/sparse"

// UpdateAges increments the age of every column whose PrimSol is zero
// (basic-at-bound, a candidate for later removal) and every row whose
// activity sits strictly inside (Lhs, Rhs); every other entity's age
// resets to zero (spec.md §4.4).
func (lp *Lp) UpdateAges() {
	for _, c := range lp.cols {
		if lp.set.IsZero(c.PrimSol) {
			c.Age++
		} else {
			c.Age = 0
		}
	}
	for _, r := range lp.rows {
		if lp.set.IsGE(r.Activity, r.Lhs) && lp.set.IsLE(r.Activity, r.Rhs) &&
			!lp.set.IsEQ(r.Activity, r.Lhs) && !lp.set.IsEQ(r.Activity, r.Rhs) {
			r.Age++
		} else {
			r.Age = 0
		}
	}
}

// obsoleteCol reports whether column c at the given currentNode is a
// removal candidate: its best bound is zero (a nonzero best bound
// means it would be priced straight back in) and it was not already
// marked obsolete at this node (cycle avoidance). When ageFiltered,
// it must additionally have aged past the configured limit.
func (lp *Lp) obsoleteCol(c *sparse.Col, currentNode int, ageFiltered bool) bool {
	if !lp.set.IsZero(bestBound(c)) {
		return false
	}
	if c.ObsoleteNode == currentNode {
		return false
	}
	if ageFiltered && c.Age <= lp.cfg.colAgeLimit {
		return false
	}
	return true
}

func (lp *Lp) obsoleteRow(r *sparse.Row, currentNode int, ageFiltered bool) bool {
	if r.ObsoleteNode == currentNode {
		return false
	}
	if ageFiltered && r.Age <= lp.cfg.rowAgeLimit {
		return false
	}
	return true
}

// removeObsoleteCols marks and compacts every column in [from, to)
// meeting obsoleteCol's criteria.
func (lp *Lp) removeObsoleteCols(from, to, currentNode int, ageFiltered bool) {
	if to > len(lp.cols) {
		to = len(lp.cols)
	}
	del := make([]bool, len(lp.cols))
	for i := from; i < to; i++ {
		if lp.obsoleteCol(lp.cols[i], currentNode, ageFiltered) {
			del[i] = true
		}
	}
	lp.lpDelColset(del)
}

func (lp *Lp) removeObsoleteRows(from, to, currentNode int, ageFiltered bool) {
	if to > len(lp.rows) {
		to = len(lp.rows)
	}
	del := make([]bool, len(lp.rows))
	for i := from; i < to; i++ {
		if lp.obsoleteRow(lp.rows[i], currentNode, ageFiltered) {
			del[i] = true
		}
	}
	lp.lpDelRowset(del)
}

// RemoveNewObsoletes removes obsolete entities added since the last
// MarkSize call (spec.md §4.4).
func (lp *Lp) RemoveNewObsoletes(currentNode int) {
	lp.removeObsoleteCols(lp.firstNewCol, len(lp.cols), currentNode, true)
	lp.removeObsoleteRows(lp.firstNewRow, len(lp.rows), currentNode, true)
}

// RemoveAllObsoletes removes obsolete entities across the whole LP.
func (lp *Lp) RemoveAllObsoletes(currentNode int) {
	lp.removeObsoleteCols(0, len(lp.cols), currentNode, true)
	lp.removeObsoleteRows(0, len(lp.rows), currentNode, true)
}

// CleanupNew is RemoveNewObsoletes's stricter sibling: the same
// obsoleteness criteria, minus the age filter (spec.md §4.4).
func (lp *Lp) CleanupNew(currentNode int) {
	lp.removeObsoleteCols(lp.firstNewCol, len(lp.cols), currentNode, false)
	lp.removeObsoleteRows(lp.firstNewRow, len(lp.rows), currentNode, false)
}

// CleanupAll is RemoveAllObsoletes's stricter sibling.
func (lp *Lp) CleanupAll(currentNode int) {
	lp.removeObsoleteCols(0, len(lp.cols), currentNode, false)
	lp.removeObsoleteRows(0, len(lp.rows), currentNode, false)
}

// lpDelColset compacts the column array in place given a delete-status
// vector (spec.md §4.4): kept columns are rewritten to their new
// positions, deleted ones have LPPos reset to -1.
func (lp *Lp) lpDelColset(del []bool) {
	write := 0
	for i, c := range lp.cols {
		if del[i] {
			c.LPPos = -1
			if c.Removeable {
				lp.nRemoveableCols--
			}
			continue
		}
		lp.cols[write] = c
		c.LPPos = write
		write++
	}
	if write == len(lp.cols) {
		return
	}
	lp.cols = lp.cols[:write]
	if lp.lpiFirstChgCol > write {
		lp.lpiFirstChgCol = write
	}
	lp.invalidate()
}

// lpDelRowset mirrors lpDelColset for rows, releasing each deleted
// row's reference count.
func (lp *Lp) lpDelRowset(del []bool) {
	write := 0
	for i, r := range lp.rows {
		if del[i] {
			r.LPPos = -1
			if r.Removeable {
				lp.nRemoveableRows--
			}
			r.NUses--
			continue
		}
		lp.rows[write] = r
		r.LPPos = write
		write++
	}
	if write == len(lp.rows) {
		return
	}
	lp.rows = lp.rows[:write]
	if lp.lpiFirstChgRow > write {
		lp.lpiFirstChgRow = write
	}
	lp.invalidate()
}
