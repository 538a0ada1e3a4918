package nodetree

// Scene is a named tree: an ordered list of top-level nodes. It owns them the same way a Node owns its children,
// except that the top-level nodes have no parent.
type Scene struct {
	Name  string
	roots *NodeList
}

// NewScene returns a new, empty Scene.
func NewScene(name string) *Scene {
	return &Scene{
		Name:  name,
		roots: NewNodeList(),
	}
}

// Roots returns the NodeList of the Scene's top-level nodes.
func (scene *Scene) Roots() *NodeList {
	return scene.roots
}

// NewRoot creates a new top-level Node in the Scene.
func (scene *Scene) NewRoot(name string) *Node {
	node := NewNode(name)
	node.id = scene.roots.NextID()
	scene.roots.insert(node)
	return node
}

// Add moves each node given to the top level of the Scene. Nodes held elsewhere are taken out of their current list
// first, as Node.MoveTo does.
func (scene *Scene) Add(nodes ...INode) error {
	for _, n := range nodes {
		if n == nil {
			return ErrNilNode
		}
		if err := n.Base().MoveTo(scene.roots); err != nil {
			return err
		}
	}
	return nil
}

// Update calls Update(force) on each top-level node in order and returns true if any of them recomputed.
func (scene *Scene) Update(force bool) bool {
	updated := false
	for _, n := range scene.roots.nodes {
		if n.Base().Update(force) {
			updated = true
		}
	}
	return updated
}

// Draw draws each top-level node's subtree in order.
func (scene *Scene) Draw(target DrawTarget) {
	for _, n := range scene.roots.nodes {
		n.Base().Draw(target)
	}
}

// AppendTriangles appends the world-space triangles of the whole Scene to dst.
func (scene *Scene) AppendTriangles(dst []Triangle) []Triangle {
	for _, n := range scene.roots.nodes {
		dst = n.Base().AppendTriangles(dst)
	}
	return dst
}

// Walk walks every node in the Scene depth-first, stopping if fn returns false.
func (scene *Scene) Walk(fn func(node INode) bool) bool {
	for _, n := range scene.roots.nodes {
		if !n.Base().Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node anywhere in the Scene with the name given, or nil.
func (scene *Scene) Find(name string) INode {
	var found INode
	scene.Walk(func(n INode) bool {
		if n.Name() == name {
			found = n
		}
		return found == nil
	})
	return found
}

// HierarchyAsString returns the hierarchy of every top-level node, one after another.
func (scene *Scene) HierarchyAsString() string {
	out := ""
	for _, n := range scene.roots.nodes {
		out += n.Base().HierarchyAsString()
	}
	return out
}
