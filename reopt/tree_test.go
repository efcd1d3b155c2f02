package reopt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ciplp/reopt"
	"github.com/katalvlaran/ciplp/stat"
)

func newTree(nbinvars int, opts ...reopt.Option) *reopt.Tree {
	st := stat.New()
	params := reopt.NewParams(opts...)
	return reopt.New(st, params, nbinvars)
}

func TestAddNode_RootThenChild(t *testing.T) {
	tr := newTree(10)

	rootID, err := tr.AddNode(reopt.SearchNode{Depth: 0}, reopt.Transit, false)
	require.NoError(t, err)
	assert.Equal(t, tr.Root().ID, rootID)

	childID, err := tr.AddNode(reopt.SearchNode{
		Depth:      1,
		HasParent:  true,
		ParentID:   rootID,
		NewChanges: []reopt.BoundChange{{ProbIndex: 0, NewBound: 1, Lower: true}},
	}, reopt.Transit, false)
	require.NoError(t, err)

	child := tr.Node(childID)
	require.NotNil(t, child)
	assert.Equal(t, rootID, child.ParentID)
	assert.Len(t, child.Changes, 1)
	assert.Contains(t, tr.Node(rootID).Children, childID)
}

func TestAddNode_UnknownParentErrors(t *testing.T) {
	tr := newTree(10)
	_, err := tr.AddNode(reopt.SearchNode{Depth: 1, HasParent: true, ParentID: 999}, reopt.Transit, false)
	assert.ErrorIs(t, err, reopt.ErrUnknownNode)
}

func TestAddNode_UpdateInPlaceAppendsChanges(t *testing.T) {
	tr := newTree(10)
	id, err := tr.AddNode(reopt.SearchNode{
		Depth:      0,
		NewChanges: []reopt.BoundChange{{ProbIndex: 0, NewBound: 0, Lower: true}},
	}, reopt.Transit, false)
	require.NoError(t, err)

	_, err = tr.AddNode(reopt.SearchNode{
		ID:         id,
		HasID:      true,
		NewChanges: []reopt.BoundChange{{ProbIndex: 1, NewBound: 2, Lower: false}},
	}, reopt.Leaf, false)
	require.NoError(t, err)

	node := tr.Node(id)
	require.NotNil(t, node)
	assert.Len(t, node.Changes, 2)
	assert.Equal(t, reopt.Leaf, node.Type)
}

func TestAddNode_InfSubtreeDeletesChildrenKeepsNode(t *testing.T) {
	tr := newTree(10)
	rootID, err := tr.AddNode(reopt.SearchNode{Depth: 0}, reopt.Transit, false)
	require.NoError(t, err)

	childID, err := tr.AddNode(reopt.SearchNode{
		Depth: 1, HasParent: true, ParentID: rootID,
		NewChanges: []reopt.BoundChange{{ProbIndex: 0, NewBound: 1, Lower: true}},
	}, reopt.Transit, false)
	require.NoError(t, err)

	_, err = tr.AddNode(reopt.SearchNode{ID: rootID, HasID: true}, reopt.InfSubtree, false)
	require.NoError(t, err)

	assert.Nil(t, tr.Node(childID))
	root := tr.Node(rootID)
	require.NotNil(t, root)
	assert.True(t, root.DualFixed)
	assert.Empty(t, root.Children)
}

func TestAddNode_ShrinkNodeCollapsesChildlessConstraintFreeHop(t *testing.T) {
	// MaxDiffOfNodes large enough that a 1-change hop always shrinks;
	// dynamic threshold disabled so the static one is exercised.
	tr := newTree(10, reopt.WithDynamicDiffOfNodes(false), reopt.WithMaxDiffOfNodes(5), reopt.WithShrinkTransit(true))

	rootID, err := tr.AddNode(reopt.SearchNode{Depth: 0}, reopt.Transit, false)
	require.NoError(t, err)

	midID, err := tr.AddNode(reopt.SearchNode{
		Depth: 1, HasParent: true, ParentID: rootID,
		NewChanges: []reopt.BoundChange{{ProbIndex: 0, NewBound: 1, Lower: true}},
	}, reopt.Transit, false)
	require.NoError(t, err)

	leafID, err := tr.AddNode(reopt.SearchNode{
		Depth: 2, HasParent: true, ParentID: midID,
		NewChanges: []reopt.BoundChange{{ProbIndex: 1, NewBound: 0, Lower: false}},
	}, reopt.Transit, false)
	require.NoError(t, err)

	// Finalizing mid (its id already exists) is what triggers shrink
	// consideration: it has no local constraints and its 1-change hop
	// is within threshold, so it collapses into root.
	_, err = tr.AddNode(reopt.SearchNode{ID: midID, HasID: true}, reopt.Transit, false)
	require.NoError(t, err)

	assert.Nil(t, tr.Node(midID))
	leaf := tr.Node(leafID)
	require.NotNil(t, leaf)
	assert.Equal(t, rootID, leaf.ParentID)
	assert.Len(t, leaf.Changes, 2) // mid's change prepended onto leaf's own
	assert.Contains(t, tr.Node(rootID).Children, leafID)
}
