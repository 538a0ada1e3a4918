package nodetree

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// RenderableID identifies a Renderable attached to a Node.
type RenderableID = uuid.UUID

// Renderable is a drawable attachment owned by a Node. The Node passes its cached world transform in on each call,
// so a Renderable does not need to know where in the tree it sits. A Renderable is attached to at most one Node.
type Renderable interface {
	// ID returns the Renderable's identifier; it must stay the same for the Renderable's lifetime.
	ID() RenderableID
	// Draw submits the Renderable to the target, placed by the world transform given.
	Draw(target DrawTarget, world mgl32.Mat4)
	// AppendTriangles appends the Renderable's triangles, transformed by world, to dst and returns the extended slice.
	AppendTriangles(dst []Triangle, world mgl32.Mat4) []Triangle
}

// Disposer is implemented by Renderables that hold resources which should be released when their Node is destroyed.
type Disposer interface {
	Dispose()
}

// DrawTarget receives the triangles of every visible Renderable during Node.Draw. Backends (a GPU renderer, a
// software rasterizer, or a recorder in tests) implement it.
type DrawTarget interface {
	DrawTriangles(world mgl32.Mat4, triangles []Triangle, color Color)
}
