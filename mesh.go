package nodetree

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// A Triangle is the smallest unit of geometry a Mesh is made of.
type Triangle struct {
	Vertices [3]mgl32.Vec3
}

// NewTriangle returns a Triangle made of the three given vertices.
func NewTriangle(a, b, c mgl32.Vec3) Triangle {
	return Triangle{Vertices: [3]mgl32.Vec3{a, b, c}}
}

// Center returns the average of the Triangle's vertices.
func (tri Triangle) Center() mgl32.Vec3 {
	return tri.Vertices[0].Add(tri.Vertices[1]).Add(tri.Vertices[2]).Mul(1.0 / 3.0)
}

// Normal returns the unit normal of the Triangle, assuming counter-clockwise winding. Degenerate
// triangles return a zero vector.
func (tri Triangle) Normal() mgl32.Vec3 {
	n := tri.Vertices[1].Sub(tri.Vertices[0]).Cross(tri.Vertices[2].Sub(tri.Vertices[0]))
	if n.Len() == 0 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// Transformed returns a copy of the Triangle with each vertex multiplied by the matrix given.
func (tri Triangle) Transformed(mat mgl32.Mat4) Triangle {
	for i, v := range tri.Vertices {
		tri.Vertices[i] = mgl32.TransformCoordinate(v, mat)
	}
	return tri
}

// Dimensions represents the minimum and maximum corners of a Mesh's bounding box.
type Dimensions [2]mgl32.Vec3

// Width returns the size of the Dimensions on the X axis.
func (dim Dimensions) Width() float32 {
	return dim[1].X() - dim[0].X()
}

// Height returns the size of the Dimensions on the Y axis.
func (dim Dimensions) Height() float32 {
	return dim[1].Y() - dim[0].Y()
}

// Depth returns the size of the Dimensions on the Z axis.
func (dim Dimensions) Depth() float32 {
	return dim[1].Z() - dim[0].Z()
}

// Center returns the center point inbetween the two corners of the dimension set.
func (dim Dimensions) Center() mgl32.Vec3 {
	return dim[0].Add(dim[1]).Mul(0.5)
}

// MaxSpan returns the maximum span out of width, height, and depth.
func (dim Dimensions) MaxSpan() float32 {
	return max(dim.Width(), dim.Height(), dim.Depth())
}

// Mesh is the default Renderable: a named set of triangles in local space, drawn with a single flat Color.
type Mesh struct {
	id        RenderableID
	Name      string
	Triangles []Triangle
	Color     Color
	Visible   bool
}

// NewMesh returns a new Mesh built from the vertices given, three per triangle. The number of vertices must be divisible
// by 3, or NewMesh will panic.
func NewMesh(name string, vertices ...mgl32.Vec3) *Mesh {
	mesh := &Mesh{
		id:      uuid.New(),
		Name:    name,
		Color:   White,
		Visible: true,
	}
	mesh.AddTriangles(vertices...)
	return mesh
}

// Clone returns a copy of the Mesh with its own triangle slice and a new ID, so it can be attached to another Node.
func (mesh *Mesh) Clone() *Mesh {
	newMesh := NewMesh(mesh.Name)
	newMesh.Triangles = append(make([]Triangle, 0, len(mesh.Triangles)), mesh.Triangles...)
	newMesh.Color = mesh.Color
	newMesh.Visible = mesh.Visible
	return newMesh
}

// ID returns the Mesh's unique identifier.
func (mesh *Mesh) ID() RenderableID {
	return mesh.id
}

// AddTriangles appends triangles built from the vertices given, three per triangle. The number of vertices must be
// divisible by 3, or AddTriangles will panic.
func (mesh *Mesh) AddTriangles(vertices ...mgl32.Vec3) {
	if len(vertices)%3 != 0 {
		panic(fmt.Sprintf("nodetree: Mesh.AddTriangles() given %d vertices, which is not divisible by 3", len(vertices)))
	}
	for i := 0; i < len(vertices); i += 3 {
		mesh.Triangles = append(mesh.Triangles, NewTriangle(vertices[i], vertices[i+1], vertices[i+2]))
	}
}

// Dimensions returns the local-space bounding box of the Mesh. An empty Mesh has zero Dimensions.
func (mesh *Mesh) Dimensions() Dimensions {
	if len(mesh.Triangles) == 0 {
		return Dimensions{}
	}
	first := mesh.Triangles[0].Vertices[0]
	dim := Dimensions{first, first}
	for _, tri := range mesh.Triangles {
		for _, v := range tri.Vertices {
			for axis := 0; axis < 3; axis++ {
				dim[0][axis] = min(dim[0][axis], v[axis])
				dim[1][axis] = max(dim[1][axis], v[axis])
			}
		}
	}
	return dim
}

// Draw hands the Mesh's triangles to the target. Invisible or empty meshes draw nothing.
func (mesh *Mesh) Draw(target DrawTarget, world mgl32.Mat4) {
	if !mesh.Visible || len(mesh.Triangles) == 0 {
		return
	}
	target.DrawTriangles(world, mesh.Triangles, mesh.Color)
}

// AppendTriangles appends the Mesh's triangles, transformed into world space, to dst. Visibility does not factor in.
func (mesh *Mesh) AppendTriangles(dst []Triangle, world mgl32.Mat4) []Triangle {
	for _, tri := range mesh.Triangles {
		dst = append(dst, tri.Transformed(world))
	}
	return dst
}

// Dispose drops the Mesh's geometry.
func (mesh *Mesh) Dispose() {
	mesh.Triangles = nil
}

func (mesh *Mesh) String() string {
	return fmt.Sprintf("Mesh{%s, %d triangles}", mesh.Name, len(mesh.Triangles))
}

// NewCube returns a new Mesh of a cube spanning from -1 to 1 on each axis, wound counter-clockwise when seen from outside.
func NewCube() *Mesh {
	v := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }
	return NewMesh("Cube",
		// Top (+Y)
		v(-1, 1, -1), v(-1, 1, 1), v(1, 1, 1),
		v(-1, 1, -1), v(1, 1, 1), v(1, 1, -1),
		// Bottom (-Y)
		v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1),
		v(-1, -1, -1), v(1, -1, 1), v(-1, -1, 1),
		// Front (+Z)
		v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1),
		v(-1, -1, 1), v(1, 1, 1), v(-1, 1, 1),
		// Back (-Z)
		v(1, -1, -1), v(-1, -1, -1), v(-1, 1, -1),
		v(1, -1, -1), v(-1, 1, -1), v(1, 1, -1),
		// Right (+X)
		v(1, -1, 1), v(1, -1, -1), v(1, 1, -1),
		v(1, -1, 1), v(1, 1, -1), v(1, 1, 1),
		// Left (-X)
		v(-1, -1, -1), v(-1, -1, 1), v(-1, 1, 1),
		v(-1, -1, -1), v(-1, 1, 1), v(-1, 1, -1),
	)
}
