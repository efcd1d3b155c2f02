package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ciplp/lpvar"
	"github.com/katalvlaran/ciplp/sparse"
	"github.com/katalvlaran/ciplp/stat"
	"github.com/katalvlaran/ciplp/tolerance"
)

func newColVar(t *testing.T, st *stat.Stat, obj, lb, ub float64) *sparse.Col {
	t.Helper()
	v, err := lpvar.New(st.NextColIndex(), obj, lb, ub, lpvar.Continuous)
	require.NoError(t, err)
	col := sparse.NewCol(v, st)
	v.SetColumn(col)
	return col
}

func TestAddCoeff_RejectsZero(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	col := newColVar(t, st, 1, 0, 1)
	row := sparse.NewRow("r", 0, 1, st)

	err := col.AddCoeff(row, 1e-15, -1, set)
	require.ErrorIs(t, err, sparse.ErrZeroCoefficient)
}

func TestLink_EstablishesCrossLinkInvariant(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()

	col := newColVar(t, st, 1, 0, 1)
	row := sparse.NewRow("r", 0, 1, st)

	require.NoError(t, col.AddCoeff(row, 2.0, -1, set))
	require.NoError(t, col.Link(set))

	assert.Equal(t, 0, col.NUnlinked)
	assert.Equal(t, 0, row.NUnlinked)

	// cross-link invariant: col.Rows[j].Cols[col.Linkpos[j]] == col
	j := 0
	lp := col.Linkpos[j]
	require.NotEqual(t, -1, lp)
	assert.Same(t, col, row.Cols[lp])
	assert.InDelta(t, col.Vals[j], row.Vals[lp], 1e-9)
}

func TestDelCoeffPos_FixesMirrorBackPointer(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()

	col := newColVar(t, st, 1, 0, 1)
	r1 := sparse.NewRow("r1", 0, 1, st)
	r2 := sparse.NewRow("r2", 0, 1, st)

	require.NoError(t, col.AddCoeff(r1, 1.0, -1, set))
	require.NoError(t, col.AddCoeff(r2, 2.0, -1, set))
	require.NoError(t, col.Link(set))

	// delete the first entry (r1); the last entry (r2) swaps into position 0.
	require.NoError(t, col.DelCoeffPos(0))
	require.Equal(t, 1, col.Len())
	assert.Same(t, r2, col.Rows[0])

	lp := col.Linkpos[0]
	require.NotEqual(t, -1, lp)
	assert.Same(t, col, r2.Cols[lp])
}

func TestColUnlinkLink_RoundTrip(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()

	col := newColVar(t, st, 1, 0, 1)
	row := sparse.NewRow("r", 0, 1, st)
	require.NoError(t, col.AddCoeff(row, 3.0, -1, set))
	require.NoError(t, col.Link(set))

	col.Unlink()
	assert.Equal(t, 1, col.NUnlinked)
	assert.Equal(t, 1, row.NUnlinked)

	require.NoError(t, col.Link(set))
	assert.Equal(t, 0, col.NUnlinked)
	assert.Equal(t, 0, row.NUnlinked)
	// multiset of (col,row,val) preserved.
	assert.Same(t, row, col.Rows[0])
	assert.InDelta(t, 3.0, col.Vals[0], 1e-9)
}

func TestRowForceSort_MergesAndDropsZero(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()

	c1 := newColVar(t, st, 1, 0, 1)
	c2 := newColVar(t, st, 1, 0, 1)
	row := sparse.NewRow("r", 0, 1, st)

	// entries out of order, with a duplicate column that should merge,
	// and a pair that should cancel to zero.
	require.NoError(t, row.AddCoeff(c2, 5.0, -1, set))
	require.NoError(t, row.AddCoeff(c1, 2.0, -1, set))
	require.NoError(t, row.AddCoeff(c1, -2.0, -1, set))

	require.NoError(t, row.ForceSort(set))

	require.Equal(t, 1, row.Len())
	assert.Same(t, c2, row.Cols[0])
	assert.InDelta(t, 5.0, row.Vals[0], 1e-9)

	// strictly increasing column index, no zero values.
	for i := 1; i < row.Len(); i++ {
		assert.Less(t, row.Cols[i-1].Index(), row.Cols[i].Index())
	}
}

func TestRowNorms_MultiplicityTracking(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	row := sparse.NewRow("r", 0, 10, st)

	c1 := newColVar(t, st, 1, 0, 1)
	c2 := newColVar(t, st, 1, 0, 1)
	c3 := newColVar(t, st, 1, 0, 1)

	require.NoError(t, row.AddCoeff(c1, 3.0, -1, set))
	require.NoError(t, row.AddCoeff(c2, 3.0, -1, set)) // ties the max
	require.NoError(t, row.AddCoeff(c3, 1.0, -1, set))

	assert.InDelta(t, 3.0, row.MaxVal, 1e-9)
	assert.Equal(t, 2, row.NumMaxVal)
	assert.InDelta(t, 1.0, row.MinVal, 1e-9)
	assert.Equal(t, 1, row.NumMinVal)
	assert.InDelta(t, 9.0+9.0+1.0, row.SqrNorm, 1e-9)

	require.NoError(t, row.DelCoeffPos(0, set)) // remove one of the two max-tied entries
	assert.Equal(t, 1, row.NumMaxVal)
}

func TestRowChgConstant_NoOpAtSameValue(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	row := sparse.NewRow("r", 0, 10, st)
	row.Constant = 5.0

	require.NoError(t, row.ChgConstant(5.0, 0, set))
	assert.False(t, row.LhsChanged)
	assert.False(t, row.RhsChanged)
}

func TestRowChgConstant_BumpsValidActivities(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	row := sparse.NewRow("r", 0, 10, st)
	row.PseudoActivity = 1.0
	row.PseudoActivityTag.Set(0)

	require.NoError(t, row.ChgConstant(3.0, 0, set))
	assert.InDelta(t, 4.0, row.PseudoActivity, 1e-9)
}

func TestRowLock_BlocksMutation(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	row := sparse.NewRow("r", 0, 10, st)
	require.NoError(t, row.Lock())

	err := row.ChgLhs(1.0, set)
	require.ErrorIs(t, err, sparse.ErrRowLocked)
}

func TestRowLock_RefusesModifiable(t *testing.T) {
	st := stat.New()
	row := sparse.NewRow("r", 0, 10, st)
	row.Modifiable = true

	err := row.Lock()
	require.ErrorIs(t, err, sparse.ErrModifiableLocked)
}

func TestActivities_EmptyRow(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	row := sparse.NewRow("r", 0, 0, st)
	row.Constant = 7.0

	assert.Equal(t, 7.0, row.LPActivity())
	min, max := row.ComputeMinMaxActivity(set)
	assert.Equal(t, 7.0, min)
	assert.Equal(t, 7.0, max)
}

func TestFeasibility_SignAndMagnitude(t *testing.T) {
	row := sparse.NewRow("r", 0, 10, stat.New())
	assert.InDelta(t, 5.0, row.Feasibility(5), 1e-9)  // interior
	assert.InDelta(t, 0.0, row.Feasibility(10), 1e-9) // at rhs
	assert.InDelta(t, -1.0, row.Feasibility(11), 1e-9) // violates rhs
	assert.InDelta(t, -1.0, row.Feasibility(-1), 1e-9) // violates lhs
}

func TestDualRowFeasibility_FixedColumnIsFree(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	col := newColVar(t, st, 1, 2, 2) // lb == ub
	assert.Equal(t, set.Infinity(), col.DualRowFeasibility(set))
}

func TestDualRowFeasibility_BoxedColumnIsAlwaysFeasible(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	col := newColVar(t, st, 1, 5, 10) // distinct finite bounds, nonzero redcost
	assert.Equal(t, set.Infinity(), col.DualRowFeasibility(set))
}

func TestDualRowFeasibility_FreeColumnRequiresZeroRedCost(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()

	zero := newColVar(t, st, 0, -set.Infinity(), set.Infinity())
	assert.Equal(t, 0.0, zero.DualRowFeasibility(set))

	nonzero := newColVar(t, st, 3, -set.Infinity(), set.Infinity())
	assert.Equal(t, -3.0, nonzero.DualRowFeasibility(set))
}

func TestRescale_IdentityIsNoOp(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	c := newColVar(t, st, 1, 0, 1)
	row := sparse.NewRow("r", 0, 5, st)
	require.NoError(t, row.AddCoeff(c, 2.5, -1, set))

	row.Rescale(1, set)

	assert.InDelta(t, 2.5, row.Vals[0], 1e-9)
	assert.InDelta(t, 0, row.Lhs, 1e-9)
	assert.InDelta(t, 5, row.Rhs, 1e-9)
}

func TestMakeRational_HalfIntegerCoefficients(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	c1 := newColVar(t, st, 1, 0, 1)
	c2 := newColVar(t, st, 1, 0, 1)
	row := sparse.NewRow("r", 0, 1, st)
	require.NoError(t, row.AddCoeff(c1, 0.5, -1, set))
	require.NoError(t, row.AddCoeff(c2, 1.5, -1, set))

	ok := row.MakeRational(100, 1000, set)
	require.True(t, ok)

	for _, v := range row.Vals {
		assert.InDelta(t, v, float64(int64(v+0.5)), 1e-6)
	}
}

func TestColClone_IndependentSlicesSharedOwner(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	col := newColVar(t, st, 1, 0, 1)
	row := sparse.NewRow("r", 0, 1, st)
	require.NoError(t, col.AddCoeff(row, 2.0, -1, set))
	require.NoError(t, col.Link(set))

	clone := col.Clone()
	assert.Same(t, col.Owner, clone.Owner)
	assert.Equal(t, col.Len(), clone.Len())
	assert.Equal(t, clone.NUnlinked, clone.Len())

	require.NoError(t, col.AddCoeff(row, 1.0, -1, set))
	assert.NotEqual(t, col.Len(), clone.Len())
}

func TestRowClone_IndependentSlices(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	c := newColVar(t, st, 1, 0, 1)
	row := sparse.NewRow("r", 0, 1, st)
	require.NoError(t, row.AddCoeff(c, 2.0, -1, set))

	clone := row.Clone()
	require.NoError(t, row.AddCoeff(newColVar(t, st, 1, 0, 1), 3.0, -1, set))

	assert.Equal(t, 1, clone.Len())
	assert.Equal(t, 2, row.Len())
}

func TestComplementarySlackness_TwoVarExample(t *testing.T) {
	// spec.md §8 scenario 1: x + y >= 1, obj x+y, solved at x=1,y=0.
	st := stat.New()
	set := tolerance.NewSettings()
	x := newColVar(t, st, 1, 0, set.Infinity())
	y := newColVar(t, st, 1, 0, set.Infinity())
	row := sparse.NewRow("c1", 1, set.Infinity(), st)

	require.NoError(t, row.AddCoeff(x, 1.0, -1, set))
	require.NoError(t, row.AddCoeff(y, 1.0, -1, set))
	require.NoError(t, row.Link(set))

	x.PrimSol, y.PrimSol = 1.0, 0.0
	row.DualSol = 1.0

	assert.InDelta(t, 0.0, x.RedCostValue()+y.RedCostValue()-row.DualSol, 1e-9)
}
