package nodetree

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ID identifies a Node within the NodeList that holds it.
type ID uint64

// NodeType represents a Node's type. Node types are categorized, and can be said to extend or "be of" more general types:
// a Model has a type of NodeTypeModel, which is also NodeTypeNode, but a plain Node is not a NodeTypeModel.
type NodeType string

const (
	NodeTypeNode  NodeType = "Node"      // NodeTypeNode represents any generic node
	NodeTypeModel NodeType = "NodeModel" // NodeTypeModel represents specifically a Model
)

// Is returns true if a NodeType satisfies another NodeType category.
func (nt NodeType) Is(other NodeType) bool {
	if nt == other {
		return true
	}
	return strings.Contains(string(nt), string(other))
}

// INode is implemented by every kind of node in a tree: *Node itself, and the variants that embed it (see NodeType).
type INode interface {
	// ID returns the node's identifier within the NodeList holding it.
	ID() ID
	// Name returns the node's name.
	Name() string
	// Type returns the NodeType for this node.
	Type() NodeType
	// Base returns the Node at the core of this node, which carries its transform, children and renderables.
	Base() *Node
}

// Node is an element of a scene tree. It owns its child nodes through an embedded NodeList and owns its Renderables;
// the only non-owning relation is the back-reference to its parent.
//
// A Node's world transform is a lazy cache. Setting the local position, rotation, or scale marks the Node dirty,
// and the cache is rebuilt on the next Update call on that Node. Changing a parent afterwards does not mark its
// children dirty.
type Node struct {
	id     ID
	name   string
	parent *Node
	owner  *NodeList
	self   INode

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	transform      Transform
	transformDirty bool

	children    NodeList
	renderables []Renderable
	props       *Properties
}

// NewNode returns a new free-standing root Node. Its ID is 0, meaning unassigned: handing it to NodeList.AddNode
// gives it the list's next ID.
func NewNode(name string) *Node {
	node := &Node{
		name:           name,
		rotation:       mgl32.QuatIdent(),
		scale:          mgl32.Vec3{1, 1, 1},
		transform:      NewTransform(),
		transformDirty: true,
		props:          NewProperties(),
	}
	node.self = node
	node.children.owner = node
	return node
}

// ID returns the Node's identifier.
func (node *Node) ID() ID {
	return node.id
}

// Name returns the Node's name.
func (node *Node) Name() string {
	return node.name
}

// SetName sets the Node's name.
func (node *Node) SetName(name string) {
	node.name = name
}

// Type returns the NodeType for this object.
func (node *Node) Type() NodeType {
	return NodeTypeNode
}

// Base returns the Node itself.
func (node *Node) Base() *Node {
	return node
}

// Self returns the outermost INode wrapping this Node (a *Model, for example), or the Node itself for plain Nodes.
func (node *Node) Self() INode {
	return node.self
}

// Properties returns this Node's Properties.
func (node *Node) Properties() *Properties {
	return node.props
}

// ResetLocalTransform resets the local position to the origin, the rotation to identity and the scale to 1 on
// each axis, and marks the transform dirty. Children and renderables are not affected.
func (node *Node) ResetLocalTransform() {
	node.position = mgl32.Vec3{}
	node.rotation = mgl32.QuatIdent()
	node.scale = mgl32.Vec3{1, 1, 1}
	node.transformDirty = true
}

// Update recomputes the Node's world transform if it is dirty, or if force is true, composing its local transform
// with its parent's cached world transform (identity for roots). It returns true if a recomputation happened.
//
// When force is true, Update(true) is then called on every child, refreshing the whole subtree against the newly
// computed transforms. When force is false, children are not visited at all. A dirty child under a clean parent
// stays stale until the child is updated directly or a forced update reaches it.
func (node *Node) Update(force bool) bool {

	updated := false

	if node.transformDirty || force {
		parentWorld := mgl32.Ident4()
		if node.parent != nil {
			parentWorld = node.parent.transform.World()
		}
		node.transform.SetLocal(node.position, node.rotation, node.scale)
		node.transform.Recompute(parentWorld)
		node.transformDirty = false
		updated = true
	}

	if force {
		for _, child := range node.children.nodes {
			child.Base().Update(true)
		}
	}

	return updated

}

// Draw draws every Renderable this Node owns, in the order they were attached, using the cached world transform,
// then draws each child in insertion order. Transforms are not recomputed; call Update first.
func (node *Node) Draw(target DrawTarget) {
	world := node.transform.World()
	for _, r := range node.renderables {
		r.Draw(target, world)
	}
	for _, child := range node.children.nodes {
		child.Base().Draw(target)
	}
}

// AppendTriangles appends the world-space triangles of every Renderable in this Node's subtree to dst and returns
// the extended slice. The order is this Node's renderables in attachment order followed by each child's subtree
// in insertion order. Cached transforms are used as-is.
func (node *Node) AppendTriangles(dst []Triangle) []Triangle {
	world := node.transform.World()
	for _, r := range node.renderables {
		dst = r.AppendTriangles(dst, world)
	}
	for _, child := range node.children.nodes {
		dst = child.Base().AppendTriangles(dst)
	}
	return dst
}

// TransformDirty returns true if the local transform has changed since the world transform was last computed.
func (node *Node) TransformDirty() bool {
	return node.transformDirty
}

// LocalPosition returns the Node's position relative to its parent.
func (node *Node) LocalPosition() mgl32.Vec3 {
	return node.position
}

// SetLocalPosition sets the Node's position relative to its parent and marks it dirty.
func (node *Node) SetLocalPosition(x, y, z float32) {
	node.position = mgl32.Vec3{x, y, z}
	node.transformDirty = true
}

// SetLocalPositionVec sets the Node's position relative to its parent and marks it dirty.
func (node *Node) SetLocalPositionVec(position mgl32.Vec3) {
	node.SetLocalPosition(position.X(), position.Y(), position.Z())
}

// LocalRotation returns the Node's orientation relative to its parent.
func (node *Node) LocalRotation() mgl32.Quat {
	return node.rotation
}

// SetLocalRotation sets the Node's orientation relative to its parent from Euler angles in radians, applied in X, Y, Z
// order, and marks it dirty.
func (node *Node) SetLocalRotation(x, y, z float32) {
	node.SetLocalRotationQuat(mgl32.AnglesToQuat(x, y, z, mgl32.XYZ))
}

// SetLocalRotationQuat sets the Node's orientation relative to its parent and marks it dirty.
func (node *Node) SetLocalRotationQuat(rotation mgl32.Quat) {
	node.rotation = rotation
	node.transformDirty = true
}

// LocalScale returns the Node's scale relative to its parent.
func (node *Node) LocalScale() mgl32.Vec3 {
	return node.scale
}

// SetLocalScale sets the Node's scale relative to its parent and marks it dirty.
func (node *Node) SetLocalScale(x, y, z float32) {
	node.scale = mgl32.Vec3{x, y, z}
	node.transformDirty = true
}

// SetLocalScaleVec sets the Node's scale relative to its parent and marks it dirty.
func (node *Node) SetLocalScaleVec(scale mgl32.Vec3) {
	node.SetLocalScale(scale.X(), scale.Y(), scale.Z())
}

// SetLocalScaleUniform sets the Node's scale on all three axes to the factor given and marks it dirty.
func (node *Node) SetLocalScaleUniform(scale float32) {
	node.SetLocalScale(scale, scale, scale)
}

// WorldPosition returns the translation of the cached world transform. It does not recompute anything, so it is
// stale while the Node is dirty.
func (node *Node) WorldPosition() mgl32.Vec4 {
	world := node.transform.World()
	return world.Col(3)
}

// WorldPositionOf transforms a position in this Node's local space into world space using the cached world
// transform.
func (node *Node) WorldPositionOf(local mgl32.Vec4) mgl32.Vec4 {
	world := node.transform.World()
	return world.Mul4x1(local)
}

// Transform returns the Node's Transform.
func (node *Node) Transform() *Transform {
	return &node.transform
}

// Children returns the NodeList holding the Node's children.
func (node *Node) Children() *NodeList {
	return &node.children
}

// NewChild creates a new child Node with the next ID from this Node's children list.
func (node *Node) NewChild() *Node {
	child := NewNode("")
	child.id = node.children.NextID()
	node.children.insert(child)
	return child
}

// NewChildWithID creates a new child Node with the ID given, which must not already be in use among this Node's
// children (ErrDuplicateID).
func (node *Node) NewChildWithID(id ID) (*Node, error) {
	return node.children.NewNode(id, node)
}

// NewChildAt creates a new child Node placed at the local position given.
func (node *Node) NewChildAt(x, y, z float32) *Node {
	child := node.NewChild()
	child.SetLocalPosition(x, y, z)
	return child
}

// NewChildAtVec creates a new child Node placed at the local position given.
func (node *Node) NewChildAtVec(position mgl32.Vec3) *Node {
	return node.NewChildAt(position.X(), position.Y(), position.Z())
}

// NewRenderable attaches a new, empty Mesh to the Node and returns it. The Node keeps ownership of it.
func (node *Node) NewRenderable() *Mesh {
	mesh := NewMesh("")
	node.renderables = append(node.renderables, mesh)
	return mesh
}

// AddRenderable attaches the Renderable given to the Node, which takes ownership of it. Attaching nil or a Renderable
// with an ID already attached here returns ErrDuplicateRenderable.
//
// A Renderable belongs to one Node at a time, since Destroy disposes everything attached. Attaching the same one to
// two Nodes isn't detected; to draw one Mesh's geometry from several Nodes, attach a Mesh.Clone to each of them.
func (node *Node) AddRenderable(r Renderable) error {
	if r == nil || node.Renderable(r.ID()) != nil {
		return ErrDuplicateRenderable
	}
	node.renderables = append(node.renderables, r)
	return nil
}

// RemoveRenderable detaches the Renderable with the ID given, returning it; ownership passes back to the caller.
// If no such Renderable is attached, RemoveRenderable returns nil.
func (node *Node) RemoveRenderable(id RenderableID) Renderable {
	for i, r := range node.renderables {
		if r.ID() == id {
			last := len(node.renderables) - 1
			copy(node.renderables[i:], node.renderables[i+1:])
			node.renderables[last] = nil
			node.renderables = node.renderables[:last]
			return r
		}
	}
	return nil
}

// Renderable returns the attached Renderable with the ID given, or nil if there isn't one.
func (node *Node) Renderable(id RenderableID) Renderable {
	for _, r := range node.renderables {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

// Renderables returns the Node's attached Renderables in attachment order.
func (node *Node) Renderables() []Renderable {
	return append(make([]Renderable, 0, len(node.renderables)), node.renderables...)
}

// Parent returns the Node's parent. If the Node has no parent, this will return nil.
func (node *Node) Parent() *Node {
	return node.parent
}

// Reparent moves the Node, along with its subtree, underneath newParent. It is taken out of its current owner's
// list, appended to newParent's children with the next ID from that list, and marked dirty, all in one step.
// Passing nil detaches the Node, leaving it as a free-standing root that keeps its ID.
// Parenting a Node to itself or one of its descendants returns ErrCycle and changes nothing.
func (node *Node) Reparent(newParent *Node) error {
	if newParent == nil {
		node.detach()
		node.transformDirty = true
		return nil
	}
	return node.MoveTo(&newParent.children)
}

// MoveTo moves the Node, along with its subtree, into the NodeList given. This is how a node becomes a top-level node
// of a Scene, for example. See Reparent.
func (node *Node) MoveTo(list *NodeList) error {

	if list == nil {
		return ErrNilNode
	}

	if node.IsAncestorOf(list.owner) {
		logger.Debug("rejected move into own subtree", zap.Uint64("node", uint64(node.id)), zap.String("name", node.name))
		return errors.Wrapf(ErrCycle, "moving node %d", node.id)
	}

	if node.owner == list {
		return nil
	}

	node.detach()
	node.id = list.NextID()
	list.insert(node.self)
	return nil

}

// IsAncestorOf returns true if other is this Node or lies anywhere underneath it.
func (node *Node) IsAncestorOf(other *Node) bool {
	for n := other; n != nil; n = n.parent {
		if n == node {
			return true
		}
	}
	return false
}

func (node *Node) detach() {
	if node.owner != nil {
		node.owner.remove(node)
	}
	node.parent = nil
	node.owner = nil
}

// Destroy releases the Node's subtree depth-first: each child is destroyed, then each Renderable implementing
// Disposer is disposed and all are dropped, and finally the Node leaves the list that owns it.
func (node *Node) Destroy() {

	children := node.children.nodes
	node.children.nodes = nil

	for _, child := range children {
		base := child.Base()
		base.owner = nil
		base.parent = nil
		base.Destroy()
	}

	for _, r := range node.renderables {
		if d, ok := r.(Disposer); ok {
			d.Dispose()
		}
	}
	node.renderables = nil

	node.detach()

}

// Index returns the index of the Node in the list that owns it, or -1 if it is free-standing.
func (node *Node) Index() int {
	if node.owner == nil {
		return -1
	}
	return node.owner.Index(node)
}

// Root returns the topmost Node above this one, or the Node itself if it has no parent.
func (node *Node) Root() *Node {
	root := node
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Walk calls fn for this Node and every Node beneath it, depth-first, in the same order Draw visits them.
// If fn returns false, the walk stops. Walk returns false if it was stopped early.
func (node *Node) Walk(fn func(node INode) bool) bool {
	if !fn(node.self) {
		return false
	}
	for _, child := range node.children.nodes {
		if !child.Base().Walk(fn) {
			return false
		}
	}
	return true
}

// ChildrenRecursive returns the Node's recursive children (i.e. children, grandchildren, etc), depth-first.
func (node *Node) ChildrenRecursive() []INode {
	out := []INode{}
	for _, child := range node.children.nodes {
		child.Base().Walk(func(n INode) bool {
			out = append(out, n)
			return true
		})
	}
	return out
}

// Find returns the first Node beneath this one (depth-first) with the name given, or nil.
func (node *Node) Find(name string) INode {
	var found INode
	for _, child := range node.children.nodes {
		child.Base().Walk(func(n INode) bool {
			if n.Name() == name {
				found = n
			}
			return found == nil
		})
		if found != nil {
			break
		}
	}
	return found
}

// Get searches a node's hierarchy for a path of node names separated by forward slashes ('/'), relative to the node
// Get is called on. As an example, a cup parented to a desk parented to a room would be found at "Room/Desk/Cup" from
// the room's parent. ".." goes up one level. Empty path segments are ignored and names are compared exactly, so keep
// slashes out of Node names.
func (node *Node) Get(path string) INode {

	current := node

	for _, part := range strings.Split(path, "/") {

		part = strings.TrimSpace(part)

		if part == "" {
			continue
		}

		if part == ".." {
			current = current.parent
		} else {
			var next *Node
			for _, child := range current.children.nodes {
				if child.Name() == part {
					next = child.Base()
					break
				}
			}
			current = next
		}

		if current == nil {
			return nil
		}

	}

	return current.self

}

// Path returns the names from the topmost parent's children down to this Node, separated by slashes. Passing it to
// Get on Root() returns this Node. A root's path is empty.
func (node *Node) Path() string {
	if node.parent == nil {
		return ""
	}
	names := []string{}
	for n := node; n.parent != nil; n = n.parent {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// HierarchyAsString returns a string displaying the hierarchy of this Node and all recursive children, with each
// Node's type, ID, name and cached world position truncated to 2 decimals. This is useful when debugging a tree's layout.
func (node *Node) HierarchyAsString() string {

	builder := strings.Builder{}

	var printNode func(n *Node, level int)

	printNode = func(n *Node, level int) {

		prefix := "NODE"
		if level == 0 {
			prefix = "ROOT"
		} else if n.self.Type().Is(NodeTypeModel) {
			prefix = "MODEL"
		}

		for i := 0; i < level; i++ {
			builder.WriteString("    |")
		}
		if level > 0 {
			builder.WriteString("-")
		}

		wp := n.WorldPosition()
		builder.WriteString(" [" + prefix + "] #" + strconv.FormatUint(uint64(n.id), 10) + " " + n.name + " : [" +
			strconv.FormatFloat(float64(wp.X()), 'f', 2, 32) + ", " +
			strconv.FormatFloat(float64(wp.Y()), 'f', 2, 32) + ", " +
			strconv.FormatFloat(float64(wp.Z()), 'f', 2, 32) + "]\n")

		for _, child := range n.children.nodes {
			printNode(child.Base(), level+1)
		}

	}

	printNode(node, 0)

	return builder.String()

}
