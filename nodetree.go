// Package nodetree is a small scene graph: a tree of spatial transforms that own child nodes and
// drawable attachments (Renderables).
//
// A frame usually looks like this: call Update on the root (or Scene) to recompute any dirty world
// transforms, then Draw to walk the tree depth-first and hand every Renderable to a DrawTarget.
// AppendTriangles walks the same order to gather triangle data from a whole subtree.
//
// Trees are not safe for concurrent use. Every operation runs to completion on the calling
// goroutine, and altering a subtree's structure while it is being updated, drawn, or walked is
// not supported.
package nodetree

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateID is returned when a node would be registered under an ID already held by the same NodeList.
	ErrDuplicateID = errors.New("nodetree: node id already in use in this list")
	// ErrIDOutOfRange is returned when a node would be registered under the largest possible ID, which a NodeList
	// keeps back so its counter never wraps.
	ErrIDOutOfRange = errors.New("nodetree: node id out of range")
	// ErrCycle is returned when reparenting a node underneath itself or one of its descendants.
	ErrCycle = errors.New("nodetree: node cannot be parented to itself or its descendants")
	// ErrAlreadyOwned is returned by NodeList.AddNode for a node another NodeList already holds; use Node.Reparent instead.
	ErrAlreadyOwned = errors.New("nodetree: node is already owned by a node list")
	// ErrNilNode is returned when a nil node is handed to a NodeList.
	ErrNilNode = errors.New("nodetree: nil node")
	// ErrUnknownNodeType is returned by NodeList.NewNodeOfType for a NodeType it cannot construct.
	ErrUnknownNodeType = errors.New("nodetree: unknown node type")
	// ErrDuplicateRenderable is returned when a Renderable is attached twice, or a nil Renderable is attached.
	ErrDuplicateRenderable = errors.New("nodetree: renderable is nil or already attached")
)

var logger = zap.NewNop()

// SetLogger sets the logger nodetree reports warnings and rejected operations to. Passing nil restores the default,
// which discards everything.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the logger currently in use by nodetree.
func Logger() *zap.Logger {
	return logger
}
