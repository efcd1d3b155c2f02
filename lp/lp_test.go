package lp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ciplp/lp"
	"github.com/katalvlaran/ciplp/lpi/refsolver"
	"github.com/katalvlaran/ciplp/lpvar"
	"github.com/katalvlaran/ciplp/sparse"
	"github.com/katalvlaran/ciplp/stat"
	"github.com/katalvlaran/ciplp/tolerance"
)

func newLp(t *testing.T) (*lp.Lp, *tolerance.Settings, *stat.Stat) {
	t.Helper()
	set := tolerance.NewSettings()
	st := stat.New()
	l := lp.New(refsolver.New(), set, st)
	return l, set, st
}

func newVarCol(t *testing.T, st *stat.Stat, obj, lb, ub float64) *sparse.Col {
	t.Helper()
	v, err := lpvar.New(0, obj, lb, ub, lpvar.Continuous)
	require.NoError(t, err)
	c := sparse.NewCol(v, st)
	v.SetColumn(c)
	return c
}

// minimize x + y subject to x + y >= 1, x,y in [0,1].
func TestSolve_TwoVariableCoverIsOptimal(t *testing.T) {
	l, set, st := newLp(t)

	cx := newVarCol(t, st, 1, 0, 1)
	cy := newVarCol(t, st, 1, 0, 1)
	require.NoError(t, l.AddCol(cx))
	require.NoError(t, l.AddCol(cy))

	row := sparse.NewRow("cover", 1, set.Infinity(), st)
	require.NoError(t, l.AddRow(row))
	require.NoError(t, l.AddCoeff(row, cx, 1))
	require.NoError(t, l.AddCoeff(row, cy, 1))

	require.NoError(t, l.Solve())

	assert.True(t, l.Solved())
	assert.True(t, l.PrimalFeasible())
	assert.InDelta(t, 1.0, l.ObjValue(), 1e-6)
}

// an infeasible row (requires activity >= 5 over a [0,1]x[0,1] box) must
// report Infeasible without panicking on Farkas extraction.
func TestSolve_InfeasibleBoxReportsStatus(t *testing.T) {
	l, set, st := newLp(t)

	cx := newVarCol(t, st, 1, 0, 1)
	require.NoError(t, l.AddCol(cx))

	row := sparse.NewRow("toohigh", 5, set.Infinity(), st)
	require.NoError(t, l.AddRow(row))
	require.NoError(t, l.AddCoeff(row, cx, 1))

	require.NoError(t, l.Solve())

	assert.True(t, l.Solved())
	assert.False(t, l.PrimalFeasible())
}

func TestFarkasValue_InfeasibleBoxReturnsValueWithoutNaN(t *testing.T) {
	l, set, st := newLp(t)

	cx := newVarCol(t, st, 1, 0, 1)
	require.NoError(t, l.AddCol(cx))

	row := sparse.NewRow("toohigh", 5, set.Infinity(), st)
	require.NoError(t, l.AddRow(row))
	require.NoError(t, l.AddCoeff(row, cx, 1))

	require.NoError(t, l.Solve())
	require.False(t, l.PrimalFeasible())

	value, ok := l.FarkasValue()
	require.True(t, ok)
	assert.False(t, value != value) // not NaN
}

func TestFarkasValue_BeforeSolveNotOK(t *testing.T) {
	l, _, _ := newLp(t)
	_, ok := l.FarkasValue()
	assert.False(t, ok)
}

func TestChgCoeff_UpdatesBothSidesOfCrossLink(t *testing.T) {
	l, _, st := newLp(t)

	cx := newVarCol(t, st, 1, 0, 1)
	require.NoError(t, l.AddCol(cx))

	row := sparse.NewRow("r", 0, 10, st)
	require.NoError(t, l.AddRow(row))
	require.NoError(t, l.AddCoeff(row, cx, 2))

	require.NoError(t, l.ChgCoeff(row, cx, 5))

	colVal, ok := cx.CoeffOf(row)
	require.True(t, ok)
	assert.Equal(t, 5.0, colVal)

	rowVal, ok := row.CoeffOf(cx)
	require.True(t, ok)
	assert.Equal(t, 5.0, rowVal)
}

func TestChgCoeff_ZeroDeletesBothSides(t *testing.T) {
	l, _, st := newLp(t)

	cx := newVarCol(t, st, 1, 0, 1)
	require.NoError(t, l.AddCol(cx))

	row := sparse.NewRow("r", 0, 10, st)
	require.NoError(t, l.AddRow(row))
	require.NoError(t, l.AddCoeff(row, cx, 2))

	require.NoError(t, l.ChgCoeff(row, cx, 0))

	_, ok := cx.CoeffOf(row)
	assert.False(t, ok)
	_, ok = row.CoeffOf(cx)
	assert.False(t, ok)
}

func TestUpdateAges_ZeroPrimSolAges(t *testing.T) {
	l, _, st := newLp(t)
	cx := newVarCol(t, st, 1, 0, 1)
	require.NoError(t, l.AddCol(cx))

	cx.PrimSol = 0
	l.UpdateAges()
	assert.Equal(t, 1, cx.Age)

	cx.PrimSol = 0.5
	l.UpdateAges()
	assert.Equal(t, 0, cx.Age)
}

// a column with best bound zero that ages past the limit is compacted
// out of lp.cols by RemoveAllObsoletes (spec.md §8 "aging & cleanup").
func TestRemoveAllObsoletes_AgedZeroColumnIsCompactedOut(t *testing.T) {
	st := stat.New()
	set := tolerance.NewSettings()
	l := lp.New(refsolver.New(), set, st, lp.WithColAgeLimit(0))

	cx := newVarCol(t, st, 1, 0, 1) // obj>=0 => bestBound == LB == 0
	require.NoError(t, l.AddCol(cx))
	cy := newVarCol(t, st, 1, 2, 3) // bestBound == LB == 2, never obsolete
	require.NoError(t, l.AddCol(cy))

	cx.PrimSol = 0
	l.UpdateAges() // cx.Age becomes 1, past the limit of 0

	l.RemoveAllObsoletes(1)

	require.Equal(t, 1, l.NCols())
	assert.Same(t, cy, l.Col(0))
	assert.Equal(t, 0, cy.LPPos)
	assert.Equal(t, -1, cx.LPPos)
}

// CleanupAll drops an interior-activity row regardless of age, the
// unfiltered sibling of RemoveAllObsoletes.
func TestCleanupAll_InteriorRowIsCompactedOut(t *testing.T) {
	l, _, st := newLp(t)

	cx := newVarCol(t, st, 1, 0, 1)
	require.NoError(t, l.AddCol(cx))

	row := sparse.NewRow("interior", 0, 10, st)
	require.NoError(t, l.AddRow(row))
	require.NoError(t, l.AddCoeff(row, cx, 1))
	row.Activity = 5 // strictly inside (0, 10)

	l.CleanupAll(1)

	require.Equal(t, 0, l.NRows())
	assert.Equal(t, -1, row.LPPos)
}

func TestStrongBranch_CachesWithinSameLPCount(t *testing.T) {
	l, set, st := newLp(t)

	cx := newVarCol(t, st, -1, 0, 3)
	require.NoError(t, l.AddCol(cx))

	row := sparse.NewRow("cap", -set.Infinity(), 1.5, st)
	require.NoError(t, l.AddRow(row))
	require.NoError(t, l.AddCoeff(row, cx, 1))

	require.NoError(t, l.Solve())
	cx.PrimSol = 1.5

	down1, up1, _, _, err := l.StrongBranch(cx, 0, 50)
	require.NoError(t, err)

	down2, up2, _, _, err := l.StrongBranch(cx, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, down1, down2)
	assert.Equal(t, up1, up2)
}
