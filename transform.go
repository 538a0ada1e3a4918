package nodetree

import "github.com/go-gl/mathgl/mgl32"

// Transform holds a Node's local position, rotation, and scale along with the world matrix last derived from them.
// The world matrix is only rebuilt when Recompute is called; Node.Update decides when that happens.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
	world    mgl32.Mat4
}

// NewTransform returns an identity Transform (no translation, no rotation, a scale of 1 on each axis).
func NewTransform() Transform {
	return Transform{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
		world:    mgl32.Ident4(),
	}
}

// SetLocal sets the local parameters used by the next Recompute call. The world matrix is left untouched.
func (t *Transform) SetLocal(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	t.position = position
	t.rotation = rotation
	t.scale = scale
}

// Local returns the local matrix, composed as T * R * S.
func (t *Transform) Local() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return translate.Mul4(t.rotation.Normalize().Mat4()).Mul4(scale)
}

// Recompute rebuilds the world matrix as parentWorld * Local(). Roots pass mgl32.Ident4().
func (t *Transform) Recompute(parentWorld mgl32.Mat4) {
	t.world = parentWorld.Mul4(t.Local())
}

// World returns the world matrix as of the last Recompute.
func (t *Transform) World() mgl32.Mat4 {
	return t.world
}
