package nodetree

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshPanicsOnPartialTriangle(t *testing.T) {
	assert.Panics(t, func() {
		NewMesh("broken", mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	})
	assert.Panics(t, func() {
		NewMesh("ok").AddTriangles(mgl32.Vec3{})
	})
}

func TestTriangle(t *testing.T) {

	tri := NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{3, 0, 0}, mgl32.Vec3{0, 3, 0})

	assert.True(t, vec3Near(mgl32.Vec3{1, 1, 0}, tri.Center()))
	assert.True(t, vec3Near(mgl32.Vec3{0, 0, 1}, tri.Normal()))

	degenerate := NewTriangle(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0})
	assert.Equal(t, mgl32.Vec3{}, degenerate.Normal())

	moved := tri.Transformed(mgl32.Translate3D(0, 0, 5))
	assert.True(t, vec3Near(mgl32.Vec3{3, 0, 5}, moved.Vertices[1]))
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, tri.Vertices[1], "the original is left alone")

}

func TestMeshDimensions(t *testing.T) {

	assert.Equal(t, Dimensions{}, NewMesh("empty").Dimensions())

	dim := NewCube().Dimensions()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, dim[0])
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, dim[1])
	assert.Equal(t, float32(2), dim.Width())
	assert.Equal(t, float32(2), dim.Height())
	assert.Equal(t, float32(2), dim.Depth())
	assert.Equal(t, mgl32.Vec3{}, dim.Center())
	assert.Equal(t, float32(2), dim.MaxSpan())

}

func TestCubeFacesOutward(t *testing.T) {

	cube := NewCube()
	require.Len(t, cube.Triangles, 12)

	for i, tri := range cube.Triangles {
		assert.Greater(t, tri.Normal().Dot(tri.Center()), float32(0), "triangle %d faces inward", i)
	}

}

func TestMeshCloneIsIndependent(t *testing.T) {

	cube := NewCube()
	cube.Color = NewColor(1, 0, 0, 1)

	clone := cube.Clone()
	assert.NotEqual(t, cube.ID(), clone.ID())
	assert.Equal(t, cube.Triangles, clone.Triangles)
	assert.Equal(t, cube.Color, clone.Color)

	clone.Triangles[0].Vertices[0] = mgl32.Vec3{9, 9, 9}
	assert.NotEqual(t, clone.Triangles[0], cube.Triangles[0])

}

func TestMeshDrawSkipsInvisibleAndEmpty(t *testing.T) {

	target := &recorder{}

	NewMesh("empty").Draw(target, mgl32.Ident4())
	assert.Empty(t, target.calls)

	cube := NewCube()
	cube.Visible = false
	cube.Draw(target, mgl32.Ident4())
	assert.Empty(t, target.calls)

	// Hidden meshes still count for triangle gathering.
	assert.Len(t, cube.AppendTriangles(nil, mgl32.Ident4()), 12)

	cube.Visible = true
	cube.Draw(target, mgl32.Translate3D(1, 0, 0))
	require.Len(t, target.calls, 1)
	assert.Equal(t, 12, target.calls[0].triangles)
	assert.Equal(t, White, target.calls[0].color)

	cube.Dispose()
	assert.Empty(t, cube.Triangles)

}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := NewColor(-1, 0.5, 2, 1).RGBA()
	assert.Equal(t, []uint8{0, 127, 255, 255}, []uint8{r, g, b, a})
}

func TestColorScaled(t *testing.T) {
	assert.Equal(t, NewColor(0.5, 0.25, 0, 0.8), NewColor(1, 0.5, 0, 0.8).Scaled(0.5))
}
