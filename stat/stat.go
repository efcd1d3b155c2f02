// Package stat holds the only process-wide state this module has: a
// handful of monotone counters used to stamp validity tags and mint
// unique column/row indices (spec.md §9: "the only process-wide state
// is the monotone ncolidx/nrowidx counters... these are not globals
// but fields, and must remain monotone for index-based sorting and
// linking").
//
// A Stat value is owned by one search coordinator, the same way the
// teacher corpus's builder.builderConfig is owned by one constructor
// call; it is never read or written from more than one goroutine at a
// time (spec.md §5).
package stat

// Stat tracks the counters package sparse, lp, and reopt key their
// validity tags and unique indices off of.
type Stat struct {
	lpCount        uint64
	boundChgCount  uint64
	nextColIdx     int
	nextRowIdx     int
	nodeCount      int
}

// New returns a Stat with all counters at their initial value.
func New() *Stat {
	return &Stat{}
}

// LPCount returns the number of completed LP solves so far. Every
// per-LP cache (primsol, redcost, activity, ...) is tagged with the
// LPCount at which it was produced; a reader compares its tag against
// the current LPCount to decide whether to recompute.
func (s *Stat) LPCount() uint64 { return s.lpCount }

// BumpLPCount is called once per completed solve (successful or not:
// even a failed solve invalidates previously cached per-LP values).
func (s *Stat) BumpLPCount() { s.lpCount++ }

// BoundChgCount returns the number of global bound changes so far.
// Pseudo/bound activities are tagged against this counter rather than
// LPCount because they depend only on variable bounds, not on having
// solved the LP.
func (s *Stat) BoundChgCount() uint64 { return s.boundChgCount }

// BumpBoundChgCount is called once per global bound change.
func (s *Stat) BumpBoundChgCount() { s.boundChgCount++ }

// NextColIndex mints the next unique, monotone column index.
func (s *Stat) NextColIndex() int {
	idx := s.nextColIdx
	s.nextColIdx++
	return idx
}

// NextRowIndex mints the next unique, monotone row index.
func (s *Stat) NextRowIndex() int {
	idx := s.nextRowIdx
	s.nextRowIdx++
	return idx
}

// NextNodeID mints the next unique reoptimization-tree node id when
// the tree's free-id queue is empty (package reopt falls back to this
// once recycled ids run out).
func (s *Stat) NextNodeID() int {
	id := s.nodeCount
	s.nodeCount++
	return id
}

// Tag is a validity tag: a cached value is fresh iff its Stamp equals
// the counter it was keyed against at read time.
type Tag struct {
	Stamp uint64
	Valid bool
}

// Fresh reports whether the tag matches the given current counter
// value and has been set at least once.
func (t Tag) Fresh(current uint64) bool {
	return t.Valid && t.Stamp == current
}

// Set stamps the tag with the given counter value and marks it valid.
func (t *Tag) Set(current uint64) {
	t.Stamp = current
	t.Valid = true
}

// Invalidate clears the tag so the next Fresh check fails regardless
// of counter value.
func (t *Tag) Invalidate() {
	t.Valid = false
}
