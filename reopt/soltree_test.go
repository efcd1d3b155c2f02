package reopt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ciplp/lpvar"
	"github.com/katalvlaran/ciplp/reopt"
	"github.com/katalvlaran/ciplp/tolerance"
)

func TestSolTree_InsertNewPathReturnsTrue(t *testing.T) {
	st := reopt.NewSolTree(0)
	inserted := st.Insert([]int{0, 1, 1}, []float64{0, 1, 1})
	assert.True(t, inserted)
	assert.Equal(t, 1, st.Len())
	assert.True(t, st.Contains([]int{0, 1, 1}))
}

func TestSolTree_InsertDuplicatePathReturnsFalse(t *testing.T) {
	st := reopt.NewSolTree(0)
	require.True(t, st.Insert([]int{1, 0}, []float64{1, 0}))
	assert.False(t, st.Insert([]int{1, 0}, []float64{1, 0}))
	assert.Equal(t, 1, st.Len())
}

func TestSolTree_BoundedRejectsBeyondCapacity(t *testing.T) {
	st := reopt.NewSolTree(1)
	require.True(t, st.Insert([]int{0}, []float64{0}))
	assert.False(t, st.Insert([]int{1}, []float64{1}))
	assert.Equal(t, 1, st.Len())
}

func TestSolTree_SolutionsReturnsInsertionOrder(t *testing.T) {
	st := reopt.NewSolTree(0)
	st.Insert([]int{0}, []float64{10})
	st.Insert([]int{1}, []float64{20})

	sols := st.Solutions()
	require.Len(t, sols, 2)
	assert.InDelta(t, 10, sols[0][0], 1e-9)
	assert.InDelta(t, 20, sols[1][0], 1e-9)
}

func TestBitsFromSolution_FiltersToBinaryInIndexOrder(t *testing.T) {
	set := tolerance.NewSettings()

	vInt, err := lpvar.New(0, 0, 0, 5, lpvar.Integer)
	require.NoError(t, err)
	vBinB, err := lpvar.New(2, 0, 0, 1, lpvar.Binary)
	require.NoError(t, err)
	vBinA, err := lpvar.New(1, 0, 0, 1, lpvar.Binary)
	require.NoError(t, err)

	values := map[int]float64{0: 3, 1: 1, 2: 0}
	bits := reopt.BitsFromSolution([]*lpvar.Variable{vInt, vBinB, vBinA}, values, set)

	require.Len(t, bits, 2)
	assert.Equal(t, 1, bits[0]) // probIndex 1 -> value 1
	assert.Equal(t, 0, bits[1]) // probIndex 2 -> value 0
}
