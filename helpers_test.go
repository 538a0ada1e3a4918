package nodetree

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// stub is a Renderable that records what happens to it in a shared log.
type stub struct {
	id   RenderableID
	name string
	log  *[]string
	tris []Triangle
}

func newStub(name string, log *[]string, triangleCount int) *stub {
	p := &stub{id: uuid.New(), name: name, log: log}
	for i := 0; i < triangleCount; i++ {
		x := float32(i)
		p.tris = append(p.tris, NewTriangle(mgl32.Vec3{x, 0, 0}, mgl32.Vec3{x + 1, 0, 0}, mgl32.Vec3{x, 1, 0}))
	}
	return p
}

func (p *stub) ID() RenderableID { return p.id }

func (p *stub) Draw(target DrawTarget, world mgl32.Mat4) {
	*p.log = append(*p.log, p.name)
	target.DrawTriangles(world, p.tris, White)
}

func (p *stub) AppendTriangles(dst []Triangle, world mgl32.Mat4) []Triangle {
	for _, tri := range p.tris {
		dst = append(dst, tri.Transformed(world))
	}
	return dst
}

func (p *stub) Dispose() {
	*p.log = append(*p.log, "dispose:"+p.name)
}

type drawCall struct {
	world     mgl32.Mat4
	triangles int
	color     Color
}

// recorder is a DrawTarget keeping every call made to it.
type recorder struct {
	calls []drawCall
}

func (r *recorder) DrawTriangles(world mgl32.Mat4, triangles []Triangle, color Color) {
	r.calls = append(r.calls, drawCall{world: world, triangles: len(triangles), color: color})
}

func vec3Near(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}

func vec4Near(a, b mgl32.Vec4) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}
