package nodetree

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrParentMismatch is returned when a NodeList is asked to register a node under a parent other than the Node that
// owns the list. A node's parent is always the owner of the list holding it.
var ErrParentMismatch = errors.New("nodetree: parent does not own this node list")

const (
	firstID ID = 1
	maxID   ID = ^ID(0)
)

// NodeList owns an ordered set of nodes and issues their IDs. Insertion order is the order nodes are updated and
// drawn in. Every Node embeds one for its children, and a Scene keeps one for its top-level nodes.
//
// IDs come from a per-list counter that starts at 1 and only ever increases, so no ID is handed out twice by the
// same list, even after the node holding it moves elsewhere. The zero value is an empty list, ready to use.
type NodeList struct {
	nodes  []INode
	nextID ID
	owner  *Node
}

// NewNodeList returns a new, empty NodeList with no owning Node, such as the top level of a tree.
func NewNodeList() *NodeList {
	return &NodeList{nextID: firstID}
}

// Owner returns the Node whose children this list holds, or nil for a top-level list.
func (list *NodeList) Owner() *Node {
	return list.owner
}

// NextID returns the next ID from the list's counter and advances it. The counter never wraps; NextID panics once
// every ID below the reserved maximum has been handed out.
func (list *NodeList) NextID() ID {
	if list.nextID < firstID {
		list.nextID = firstID
	}
	if list.nextID == maxID {
		panic("nodetree: node list has run out of ids")
	}
	id := list.nextID
	list.nextID++
	return id
}

// claim keeps the counter ahead of IDs the caller picked, so NextID never returns one already taken.
func (list *NodeList) claim(id ID) {
	if id >= list.nextID && id < maxID {
		list.nextID = id + 1
	}
}

// checkID rejects an ID the caller picked if another node in the list holds it, or if it is the reserved maximum.
func (list *NodeList) checkID(id ID) error {
	if id == maxID {
		logger.Debug("rejected out of range node id", zap.Uint64("id", uint64(id)))
		return errors.Wrapf(ErrIDOutOfRange, "id %d", id)
	}
	if list.Node(id) != nil {
		logger.Debug("rejected duplicate node id", zap.Uint64("id", uint64(id)))
		return errors.Wrapf(ErrDuplicateID, "id %d", id)
	}
	return nil
}

// NewNode creates a plain Node with the ID given and adds it to the list. parent may be nil or the list's owner;
// anything else returns ErrParentMismatch. An ID already held by the list returns ErrDuplicateID, and the largest
// possible ID, which the list keeps back for its counter, returns ErrIDOutOfRange.
func (list *NodeList) NewNode(id ID, parent *Node) (*Node, error) {

	if err := list.checkParent(parent); err != nil {
		return nil, err
	}

	if err := list.checkID(id); err != nil {
		return nil, err
	}

	node := NewNode("")
	node.id = id
	list.insert(node)
	return node, nil

}

// NewNodeOfType creates a node of the NodeType given with the list's next ID, adds it to the list and returns it.
// NodeTypeNode creates a *Node and NodeTypeModel creates a *Model with no Mesh. Other types return
// ErrUnknownNodeType. parent follows the same rule as in NewNode.
func (list *NodeList) NewNodeOfType(nodeType NodeType, parent *Node) (INode, error) {

	if err := list.checkParent(parent); err != nil {
		return nil, err
	}

	var node INode

	switch nodeType {
	case NodeTypeNode:
		node = NewNode("")
	case NodeTypeModel:
		node = NewModel("", nil)
	default:
		return nil, errors.Wrapf(ErrUnknownNodeType, "%q", nodeType)
	}

	node.Base().id = list.NextID()
	list.insert(node)
	return node, nil

}

// AddNode takes ownership of a node that isn't held by any list yet (such as one returned by NewNode or NewModel).
// Nodes with ID 0 get the list's next ID; others keep theirs unless another node in the list holds it
// (ErrDuplicateID) or it is the largest possible ID (ErrIDOutOfRange). A node already held by a list returns ErrAlreadyOwned; move it with Node.Reparent or Node.MoveTo
// instead. parent follows the same rule as in NewNode.
func (list *NodeList) AddNode(node INode, parent *Node) error {

	if node == nil || node.Base() == nil {
		return ErrNilNode
	}

	if err := list.checkParent(parent); err != nil {
		return err
	}

	base := node.Base()

	if base.owner != nil {
		return errors.Wrapf(ErrAlreadyOwned, "node %d", base.id)
	}

	if base.IsAncestorOf(list.owner) {
		return errors.Wrapf(ErrCycle, "adding node %d", base.id)
	}

	if base.id == 0 {
		base.id = list.NextID()
	} else if err := list.checkID(base.id); err != nil {
		return err
	}

	list.insert(node)
	return nil

}

func (list *NodeList) checkParent(parent *Node) error {
	if parent != nil && parent != list.owner {
		return ErrParentMismatch
	}
	return nil
}

func (list *NodeList) insert(node INode) {
	base := node.Base()
	list.claim(base.id)
	base.owner = list
	base.parent = list.owner
	base.transformDirty = true
	list.nodes = append(list.nodes, node)
}

func (list *NodeList) remove(node *Node) {
	if i := list.Index(node); i >= 0 {
		last := len(list.nodes) - 1
		copy(list.nodes[i:], list.nodes[i+1:])
		list.nodes[last] = nil
		list.nodes = list.nodes[:last]
	}
}

// Node returns the node in the list with the ID given, or nil if there isn't one.
func (list *NodeList) Node(id ID) INode {
	for _, node := range list.nodes {
		if node.ID() == id {
			return node
		}
	}
	return nil
}

// Index returns the position of the node given in the list, or -1 if the list doesn't hold it.
func (list *NodeList) Index(node INode) int {
	if node == nil {
		return -1
	}
	base := node.Base()
	for i, n := range list.nodes {
		if n.Base() == base {
			return i
		}
	}
	return -1
}

// Count returns the number of nodes in the list.
func (list *NodeList) Count() int {
	return len(list.nodes)
}

// Nodes returns the list's backing slice in insertion order. It is meant for traversal; modify the list through its
// methods or Node.Reparent, never through this slice.
func (list *NodeList) Nodes() []INode {
	return list.nodes
}
