package nodetree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeListNewNodeAndLookup(t *testing.T) {

	list := NewNodeList()

	node, err := list.NewNode(5, nil)
	require.NoError(t, err)

	assert.Equal(t, INode(node), list.Node(5))
	assert.Nil(t, list.Node(999))
	assert.Nil(t, node.Parent())

	// The counter skips past IDs picked by the caller.
	assert.Equal(t, ID(6), list.NextID())

	_, err = list.NewNode(5, nil)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, list.Count())

}

func TestNodeListNextIDIsMonotonic(t *testing.T) {

	var list NodeList

	prev := list.NextID()
	assert.Equal(t, firstID, prev)

	for i := 0; i < 50; i++ {
		id := list.NextID()
		assert.Greater(t, id, prev)
		prev = id
	}

}

func TestNodeListParentMustBeOwner(t *testing.T) {

	owner := NewNode("owner")
	stranger := NewNode("stranger")

	_, err := owner.Children().NewNode(1, stranger)
	assert.ErrorIs(t, err, ErrParentMismatch)

	child, err := owner.Children().NewNode(1, owner)
	require.NoError(t, err)
	assert.Equal(t, owner, child.Parent())

	_, err = owner.Children().NewNodeOfType(NodeTypeNode, stranger)
	assert.ErrorIs(t, err, ErrParentMismatch)

	assert.ErrorIs(t, owner.Children().AddNode(NewNode("x"), stranger), ErrParentMismatch)

}

func TestNodeListNewNodeOfType(t *testing.T) {

	parent := NewNode("parent")
	list := parent.Children()

	node, err := list.NewNodeOfType(NodeTypeNode, parent)
	require.NoError(t, err)
	assert.IsType(t, &Node{}, node)
	assert.Equal(t, NodeTypeNode, node.Type())

	model, err := list.NewNodeOfType(NodeTypeModel, nil)
	require.NoError(t, err)
	require.IsType(t, &Model{}, model)
	assert.Equal(t, NodeTypeModel, model.Type())
	assert.Nil(t, model.(*Model).Mesh)
	assert.Equal(t, parent, model.Base().Parent())

	assert.NotEqual(t, node.ID(), model.ID())

	// A Model found through the list is still a Model.
	assert.Equal(t, model, list.Node(model.ID()))

	unknown, err := list.NewNodeOfType(NodeType("NodeLight"), nil)
	assert.Nil(t, unknown)
	assert.ErrorIs(t, err, ErrUnknownNodeType)
	assert.Equal(t, 2, list.Count())

}

func TestNodeListAddNode(t *testing.T) {

	parent := NewNode("parent")
	list := parent.Children()

	assert.ErrorIs(t, list.AddNode(nil, nil), ErrNilNode)

	a := NewNode("a")
	require.NoError(t, list.AddNode(a, parent))
	assert.Equal(t, ID(1), a.ID())
	assert.Equal(t, parent, a.Parent())
	assert.True(t, a.TransformDirty())

	assert.ErrorIs(t, list.AddNode(a, nil), ErrAlreadyOwned)

	b := NewNode("b")
	b.id = 1
	assert.ErrorIs(t, list.AddNode(b, nil), ErrDuplicateID)

	b.id = 40
	require.NoError(t, list.AddNode(b, nil))
	assert.Equal(t, ID(41), list.NextID())

	// A node can't be added under its own subtree.
	assert.ErrorIs(t, a.Children().AddNode(parent, nil), ErrCycle)

	model := NewModel("m", NewCube())
	require.NoError(t, list.AddNode(model, nil))
	assert.Equal(t, parent, model.Parent())

	assert.Equal(t, 3, list.Count())
	assert.Equal(t, []INode{a, b, model}, list.Nodes())

}

func TestNodeListIndex(t *testing.T) {

	parent := NewNode("parent")
	a := parent.NewChild()
	b := parent.NewChild()
	model := NewModel("m", nil)
	require.NoError(t, parent.Children().AddNode(model, nil))

	list := parent.Children()
	assert.Equal(t, 0, list.Index(a))
	assert.Equal(t, 1, list.Index(b))
	assert.Equal(t, 2, list.Index(model))
	assert.Equal(t, 2, list.Index(model.Node), "the embedded Node refers to the same entry")
	assert.Equal(t, -1, list.Index(NewNode("other")))
	assert.Equal(t, -1, list.Index(nil))

	require.NoError(t, a.Reparent(nil))
	assert.Equal(t, 0, list.Index(b))
	assert.Equal(t, 0, b.Index())

}

func TestNodeListRejectsMaxID(t *testing.T) {

	root := NewNode("root")
	a := root.NewChild()

	_, err := root.NewChildWithID(math.MaxUint64)
	assert.ErrorIs(t, err, ErrIDOutOfRange)

	b := root.NewChild()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, ID(2), b.ID())

	loose := NewNode("loose")
	loose.id = math.MaxUint64
	assert.ErrorIs(t, root.Children().AddNode(loose, root), ErrIDOutOfRange)
	assert.Nil(t, loose.Parent())
	assert.Equal(t, 2, root.Children().Count())

}

func TestNodeListNextIDNeverWraps(t *testing.T) {

	list := NewNodeList()

	_, err := list.NewNode(math.MaxUint64-1, nil)
	require.NoError(t, err)

	assert.Panics(t, func() { list.NextID() })
	assert.Panics(t, func() { list.NextID() }, "the counter stays exhausted")

	// Lower IDs picked by the caller are still available.
	_, err = list.NewNode(7, nil)
	assert.NoError(t, err)

}

func TestNodeListRemoveClearsTail(t *testing.T) {

	root := NewNode("root")
	a := root.NewChild()
	b := root.NewChild()
	c := root.NewChild()

	require.NoError(t, a.Reparent(nil))

	list := root.Children()
	require.Equal(t, []INode{b, c}, list.Nodes())
	assert.Nil(t, list.nodes[:3][2], "the vacated slot holds no reference")

	require.NoError(t, c.Reparent(nil))
	assert.Equal(t, []INode{b}, list.Nodes())
	assert.Nil(t, list.nodes[:2][1])

}
