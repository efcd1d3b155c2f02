package reopt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ciplp/reopt"
	"github.com/katalvlaran/ciplp/stat"
	"github.com/katalvlaran/ciplp/tolerance"
)

type fixedBounds map[int][2]float64

func (b fixedBounds) LB(probIndex int) float64 { return b[probIndex][0] }
func (b fixedBounds) UB(probIndex int) float64 { return b[probIndex][1] }

func TestDryBranch_ContradictoryChangeMarksCutoff(t *testing.T) {
	set := tolerance.NewSettings()
	tr := reopt.New(stat.New(), reopt.NewParams(reopt.WithShrinkTransit(false)), 10)

	rootID, err := tr.AddNode(reopt.SearchNode{Depth: 0}, reopt.Transit, false)
	require.NoError(t, err)

	// Variable 0 currently fixed to [0,0]; a child demanding lb>=1
	// contradicts that.
	childID, err := tr.AddNode(reopt.SearchNode{
		Depth: 1, HasParent: true, ParentID: rootID,
		NewChanges: []reopt.BoundChange{{ProbIndex: 0, NewBound: 1, Lower: true}},
	}, reopt.Transit, false)
	require.NoError(t, err)

	bounds := fixedBounds{0: {0, 0}}
	require.NoError(t, reopt.DryBranch(tr, rootID, bounds, set))

	child := tr.Node(childID)
	require.NotNil(t, child)
	assert.True(t, child.Cutoff)
}

func TestDryBranch_RedundantChangeDiscarded(t *testing.T) {
	set := tolerance.NewSettings()
	tr := reopt.New(stat.New(), reopt.NewParams(reopt.WithShrinkTransit(false)), 10)

	rootID, err := tr.AddNode(reopt.SearchNode{Depth: 0}, reopt.Transit, false)
	require.NoError(t, err)

	childID, err := tr.AddNode(reopt.SearchNode{
		Depth: 1, HasParent: true, ParentID: rootID,
		NewChanges: []reopt.BoundChange{
			{ProbIndex: 0, NewBound: 0, Lower: true},  // redundant: lb already 0
			{ProbIndex: 1, NewBound: 2, Lower: true},  // genuinely tightens, kept
		},
	}, reopt.Transit, false)
	require.NoError(t, err)

	// lb(0)>=0 is already implied by variable 0's current bounds [0,1].
	bounds := fixedBounds{0: {0, 1}, 1: {0, 5}}
	require.NoError(t, reopt.DryBranch(tr, rootID, bounds, set))

	child := tr.Node(childID)
	require.NotNil(t, child)
	assert.False(t, child.Cutoff)
	require.Len(t, child.Changes, 1)
	assert.Equal(t, 1, child.Changes[0].ProbIndex)
}

func TestDryBranch_EmptyChildCollapsesIntoParent(t *testing.T) {
	set := tolerance.NewSettings()
	tr := reopt.New(stat.New(), reopt.NewParams(reopt.WithShrinkTransit(false)), 10)

	rootID, err := tr.AddNode(reopt.SearchNode{Depth: 0}, reopt.Transit, false)
	require.NoError(t, err)

	childID, err := tr.AddNode(reopt.SearchNode{
		Depth: 1, HasParent: true, ParentID: rootID,
		NewChanges: []reopt.BoundChange{{ProbIndex: 0, NewBound: 0, Lower: true}},
	}, reopt.Transit, false)
	require.NoError(t, err)

	grandchildID, err := tr.AddNode(reopt.SearchNode{
		Depth: 2, HasParent: true, ParentID: childID,
		NewChanges: []reopt.BoundChange{{ProbIndex: 1, NewBound: 1, Lower: false}},
	}, reopt.Transit, false)
	require.NoError(t, err)

	bounds := fixedBounds{0: {0, 1}, 1: {0, 5}}
	require.NoError(t, reopt.DryBranch(tr, rootID, bounds, set))

	assert.Nil(t, tr.Node(childID))
	grandchild := tr.Node(grandchildID)
	require.NotNil(t, grandchild)
	assert.Equal(t, rootID, grandchild.ParentID)
	assert.Contains(t, tr.Node(rootID).Children, grandchildID)
}

func TestDryBranch_UnknownNodeErrors(t *testing.T) {
	set := tolerance.NewSettings()
	tr := reopt.New(stat.New(), reopt.NewParams(), 10)
	assert.ErrorIs(t, reopt.DryBranch(tr, 999, fixedBounds{}, set), reopt.ErrUnknownNode)
}
