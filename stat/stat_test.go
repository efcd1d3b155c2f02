package stat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/ciplp/stat"
)

func TestCountersMonotone(t *testing.T) {
	s := stat.New()
	assert.Equal(t, uint64(0), s.LPCount())

	s.BumpLPCount()
	s.BumpLPCount()
	assert.Equal(t, uint64(2), s.LPCount())

	assert.Equal(t, uint64(0), s.BoundChgCount())
	s.BumpBoundChgCount()
	assert.Equal(t, uint64(1), s.BoundChgCount())
}

func TestIndexMinting(t *testing.T) {
	s := stat.New()
	assert.Equal(t, 0, s.NextColIndex())
	assert.Equal(t, 1, s.NextColIndex())
	assert.Equal(t, 0, s.NextRowIndex())
	assert.Equal(t, 2, s.NextColIndex())
}

func TestTagFreshness(t *testing.T) {
	s := stat.New()
	var tag stat.Tag

	assert.False(t, tag.Fresh(s.LPCount()))

	tag.Set(s.LPCount())
	assert.True(t, tag.Fresh(s.LPCount()))

	s.BumpLPCount()
	assert.False(t, tag.Fresh(s.LPCount()))

	tag.Set(s.LPCount())
	assert.True(t, tag.Fresh(s.LPCount()))

	tag.Invalidate()
	assert.False(t, tag.Fresh(s.LPCount()))
}
