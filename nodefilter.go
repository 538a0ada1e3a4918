package nodetree

import (
	"regexp"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	nfSortModeNone = iota
	nfSortModeAxisX
	nfSortModeAxisY
	nfSortModeAxisZ
	nfSortModeDistance
)

// NodeFilter represents a chain of node filters, executed in sequence to collect the desired nodes out of a Node's
// hierarchy. The filters run lazily, when one of the finishing functions (First, ForEach, INodes, Models, and so on)
// is called. The starting Node itself is never included.
type NodeFilter struct {
	Filters        []func(INode) bool // The slice of filters that are currently active on the NodeFilter.
	Start          *Node              // The start (root) of the filter.
	MaxDepth       int                // How deep the filter searches underneath Start; less than zero means the entire tree.
	stopOnFiltered bool               // If a node failing the filters hides its children as well
	sortMode       int
	reverseSort    bool
	sortTo         mgl32.Vec3
}

// SearchTree returns a NodeFilter to search through and filter the Node's recursive children.
func (node *Node) SearchTree() NodeFilter {
	return NodeFilter{Start: node, MaxDepth: -1}
}

func (nf NodeFilter) passes(node INode) bool {
	for _, filter := range nf.Filters {
		if !filter(node) {
			return false
		}
	}
	return true
}

// walk calls fn on each filtered node underneath Start in tree order, stopping when fn returns false.
func (nf NodeFilter) walk(node *Node, depth int, fn func(INode) bool) bool {

	if nf.MaxDepth >= 0 && depth > nf.MaxDepth {
		return true
	}

	for _, child := range node.children.nodes {

		passed := nf.passes(child)

		if passed && !fn(child) {
			return false
		}

		if passed || !nf.stopOnFiltered {
			if !nf.walk(child.Base(), depth+1, fn) {
				return false
			}
		}

	}

	return true

}

func (nf NodeFilter) execute() []INode {

	out := []INode{}

	if nf.Start == nil {
		return out
	}

	nf.walk(nf.Start, 0, func(node INode) bool {
		out = append(out, node)
		return true
	})

	var key func(node INode) float32

	switch nf.sortMode {
	case nfSortModeAxisX:
		key = func(node INode) float32 { return node.Base().WorldPosition().X() }
	case nfSortModeAxisY:
		key = func(node INode) float32 { return node.Base().WorldPosition().Y() }
	case nfSortModeAxisZ:
		key = func(node INode) float32 { return node.Base().WorldPosition().Z() }
	case nfSortModeDistance:
		key = func(node INode) float32 {
			diff := node.Base().WorldPosition().Vec3().Sub(nf.sortTo)
			return diff.Dot(diff)
		}
	}

	if key != nil {
		sort.SliceStable(out, func(i, j int) bool {
			if nf.reverseSort {
				return key(out[i]) > key(out[j])
			}
			return key(out[i]) < key(out[j])
		})
	}

	return out

}

// First returns the first Node in the NodeFilter; if the NodeFilter is empty, this function returns nil.
func (nf NodeFilter) First() INode {
	if nf.sortMode != nfSortModeNone {
		return nf.Get(0)
	}
	var result INode
	nf.ForEach(func(node INode) bool { result = node; return false })
	return result
}

// Last returns the last Node in the NodeFilter; if the NodeFilter is empty, this function returns nil.
func (nf NodeFilter) Last() INode {
	out := nf.execute()
	if len(out) == 0 {
		return nil
	}
	return out[len(out)-1]
}

// Get returns the Node at the given index in the NodeFilter; if index is invalid (<0 or >= len(nodes)), this function returns nil.
func (nf NodeFilter) Get(index int) INode {
	out := nf.execute()
	if index < 0 || index >= len(out) {
		return nil
	}
	return out[index]
}

// ByFunc allows you to filter a given selection of nodes by the provided filter function (which takes a Node
// and returns a boolean, indicating whether or not to add that Node to the resulting NodeFilter).
func (nf NodeFilter) ByFunc(filterFunc func(node INode) bool) NodeFilter {
	nf.Filters = append(nf.Filters[:len(nf.Filters):len(nf.Filters)], filterFunc)
	return nf
}

// ByName keeps nodes whose names are wholly equal to the name given.
func (nf NodeFilter) ByName(name string) NodeFilter {
	return nf.ByFunc(func(node INode) bool { return node.Name() == name })
}

// ByRegex keeps nodes whose names match the regular expression given. An invalid expression matches nothing.
func (nf NodeFilter) ByRegex(regexString string) NodeFilter {
	re, err := regexp.Compile(regexString)
	return nf.ByFunc(func(node INode) bool {
		return err == nil && re.MatchString(node.Name())
	})
}

// ByType keeps nodes of the NodeType given (see NodeType.Is).
func (nf NodeFilter) ByType(nodeType NodeType) NodeFilter {
	return nf.ByFunc(func(node INode) bool { return node.Type().Is(nodeType) })
}

// ByProps keeps nodes that have a property under each name given.
func (nf NodeFilter) ByProps(propNames ...string) NodeFilter {
	return nf.ByFunc(func(node INode) bool { return node.Base().Properties().Has(propNames...) })
}

// ByProp keeps nodes that have a property with the name and value given.
func (nf NodeFilter) ByProp(propName string, propValue any) NodeFilter {
	return nf.ByFunc(func(node INode) bool {
		props := node.Base().Properties()
		return props.Has(propName) && props.Get(propName).Value == propValue
	})
}

// Not filters out the nodes given.
func (nf NodeFilter) Not(others ...INode) NodeFilter {
	return nf.ByFunc(func(node INode) bool {
		for _, other := range others {
			if node.Base() == other.Base() {
				return false
			}
		}
		return true
	})
}

// StopOnFiltered makes a node that doesn't pass the filters hide its children as well.
func (nf NodeFilter) StopOnFiltered() NodeFilter {
	nf.stopOnFiltered = true
	return nf
}

// SetMaxDepth sets the maximum search depth of the NodeFilter. 0 searches only Start's direct children.
func (nf NodeFilter) SetMaxDepth(depth int) NodeFilter {
	nf.MaxDepth = depth
	return nf
}

// ForEach executes the provided function on each filtered Node in tree order, without allocating a slice for them.
// The function returns false to stop. Sorting does not apply to ForEach.
func (nf NodeFilter) ForEach(callback func(node INode) bool) {
	if nf.Start == nil {
		return
	}
	if nf.sortMode != nfSortModeNone {
		logger.Warn("NodeFilter.ForEach ignores sorting; use INodes instead")
	}
	nf.walk(nf.Start, 0, callback)
}

// Count returns the number of Nodes that fit the filter set.
func (nf NodeFilter) Count() int {
	count := 0
	if nf.Start != nil {
		nf.walk(nf.Start, 0, func(INode) bool {
			count++
			return true
		})
	}
	return count
}

// Contains returns if the provided Node is contained in the NodeFilter.
func (nf NodeFilter) Contains(node INode) bool {
	return nf.Index(node) >= 0
}

// Index returns the index of the given INode in the NodeFilter's results. If it isn't in them, Index returns -1.
func (nf NodeFilter) Index(node INode) int {
	if node == nil {
		return -1
	}
	for index, n := range nf.execute() {
		if n.Base() == node.Base() {
			return index
		}
	}
	return -1
}

// IsEmpty returns true if the NodeFilter contains no Nodes.
func (nf NodeFilter) IsEmpty() bool {
	return nf.First() == nil
}

// INodes returns the NodeFilter's results as a slice of INodes.
func (nf NodeFilter) INodes() []INode {
	return nf.execute()
}

// Models returns a slice of the Models contained within the NodeFilter.
func (nf NodeFilter) Models() []*Model {
	out := nf.execute()
	models := make([]*Model, 0, len(out))
	for _, n := range out {
		if m, ok := n.(*Model); ok {
			models = append(models, m)
		}
	}
	return models
}

// SortByX sorts the results by world X position. Sorts do not combine.
func (nf NodeFilter) SortByX() NodeFilter {
	nf.sortMode = nfSortModeAxisX
	return nf
}

// SortByY sorts the results by world Y position. Sorts do not combine.
func (nf NodeFilter) SortByY() NodeFilter {
	nf.sortMode = nfSortModeAxisY
	return nf
}

// SortByZ sorts the results by world Z position. Sorts do not combine.
func (nf NodeFilter) SortByZ() NodeFilter {
	nf.sortMode = nfSortModeAxisZ
	return nf
}

// SortByDistance sorts the results by their world distance to the point given, nearest first. Sorts do not combine.
func (nf NodeFilter) SortByDistance(to mgl32.Vec3) NodeFilter {
	nf.sortMode = nfSortModeDistance
	nf.sortTo = to
	return nf
}

// SortReverse reverses any sorting performed on the NodeFilter.
func (nf NodeFilter) SortReverse() NodeFilter {
	nf.reverseSort = true
	return nf
}
