package nodetree

// TreeWatcher is a utility struct used to watch a tree for hierarchy changes underneath a specific node. This is
// useful when, for example, game logic needs to hook up objects as they are added into a scene.
type TreeWatcher struct {
	rootNode     *Node
	prevElements map[*Node]INode
	prevOrder    []INode
	// WatchFilter is used to filter down which nodes to watch, and is called for each node in the tree.
	// If it returns true, the node is watched. A nil WatchFilter watches every node.
	WatchFilter func(node INode) bool
	// OnChange is called for every watched node that was added to, or removed from, the tree since the previous Update.
	OnChange func(node INode)
}

// NewTreeWatcher creates a new TreeWatcher, a utility that watches the tree underneath the rootNode for changes.
// The rootNode itself is not watched.
func NewTreeWatcher(rootNode *Node, onChange func(node INode)) *TreeWatcher {
	return &TreeWatcher{
		rootNode:     rootNode,
		prevElements: map[*Node]INode{},
		OnChange:     onChange,
	}
}

// Update compares the tree with the previous Update, and should be run once every game frame. Added nodes are
// reported in tree order first, then removed nodes in the order they were last seen.
func (watch *TreeWatcher) Update() {

	elements := map[*Node]INode{}
	order := []INode{}

	if watch.rootNode != nil {
		for _, node := range watch.rootNode.ChildrenRecursive() {
			if watch.WatchFilter == nil || watch.WatchFilter(node) {
				elements[node.Base()] = node
				order = append(order, node)
			}
		}
	}

	if watch.OnChange != nil {

		for _, node := range order {
			if _, existed := watch.prevElements[node.Base()]; !existed {
				watch.OnChange(node)
			}
		}

		for _, node := range watch.prevOrder {
			if _, exists := elements[node.Base()]; !exists {
				watch.OnChange(node)
			}
		}

	}

	watch.prevElements = elements
	watch.prevOrder = order

}

// SetRoot sets the root Node to be watched for the TreeWatcher.
func (watch *TreeWatcher) SetRoot(rootNode *Node) {
	watch.rootNode = rootNode
}
