// Package transform provides per-object position, rotation and scale state
// with lazily derived world matrices and orientation vectors.
package transform

import (
	"github.com/Faultbox/meshdemo/pkg/math"
)

// Transform holds position, pitch/yaw/roll rotation (radians) and scale.
//
// Derived values are cached. Mutators only mark them dirty; getters rebuild
// them before returning, so a stale matrix or basis vector is never observed.
type Transform struct {
	position math.Vec3
	rotation math.Vec3 // pitch, yaw, roll
	scale    math.Vec3

	up      math.Vec3
	right   math.Vec3
	forward math.Vec3

	world                 math.Mat4
	worldInverseTranspose math.Mat4

	matricesDirty bool
	vectorsDirty  bool
}

// New returns an identity transform.
func New() *Transform {
	return &Transform{
		scale:                 math.Vec3One,
		up:                    math.Vec3Up,
		right:                 math.Vec3Right,
		forward:               math.Vec3Forward,
		world:                 math.Identity(),
		worldInverseTranspose: math.Identity(),
	}
}

// MoveAbsolute offsets the position along the world axes.
func (t *Transform) MoveAbsolute(x, y, z float32) {
	t.MoveAbsoluteVec(math.Vec3{X: x, Y: y, Z: z})
}

// MoveAbsoluteVec offsets the position along the world axes.
func (t *Transform) MoveAbsoluteVec(offset math.Vec3) {
	t.position = t.position.Add(offset)
	t.matricesDirty = true
}

// MoveRelative offsets the position along the transform's own axes.
func (t *Transform) MoveRelative(x, y, z float32) {
	t.MoveRelativeVec(math.Vec3{X: x, Y: y, Z: z})
}

// MoveRelativeVec offsets the position along the transform's own axes.
func (t *Transform) MoveRelativeVec(offset math.Vec3) {
	t.position = t.position.Add(t.orientation().Rotate(offset))
	t.matricesDirty = true
}

// Rotate adds to the current pitch, yaw and roll. Angles are not wrapped or
// clamped.
func (t *Transform) Rotate(pitch, yaw, roll float32) {
	t.RotateVec(math.Vec3{X: pitch, Y: yaw, Z: roll})
}

// RotateVec adds to the current pitch, yaw and roll.
func (t *Transform) RotateVec(pitchYawRoll math.Vec3) {
	t.rotation = t.rotation.Add(pitchYawRoll)
	t.markRotated()
}

// Scale multiplies the current scale component-wise.
func (t *Transform) Scale(x, y, z float32) {
	t.ScaleVec(math.Vec3{X: x, Y: y, Z: z})
}

// ScaleUniform multiplies every scale component by s.
func (t *Transform) ScaleUniform(s float32) {
	t.Scale(s, s, s)
}

// ScaleVec multiplies the current scale component-wise.
func (t *Transform) ScaleVec(s math.Vec3) {
	t.scale = t.scale.Mul(s)
	t.matricesDirty = true
}

// SetPosition replaces the position.
func (t *Transform) SetPosition(x, y, z float32) {
	t.SetPositionVec(math.Vec3{X: x, Y: y, Z: z})
}

// SetPositionVec replaces the position.
func (t *Transform) SetPositionVec(p math.Vec3) {
	t.position = p
	t.matricesDirty = true
}

// SetRotation replaces pitch, yaw and roll.
func (t *Transform) SetRotation(pitch, yaw, roll float32) {
	t.SetRotationVec(math.Vec3{X: pitch, Y: yaw, Z: roll})
}

// SetRotationVec replaces pitch, yaw and roll.
func (t *Transform) SetRotationVec(pitchYawRoll math.Vec3) {
	t.rotation = pitchYawRoll
	t.markRotated()
}

// SetScale replaces the scale.
func (t *Transform) SetScale(x, y, z float32) {
	t.SetScaleVec(math.Vec3{X: x, Y: y, Z: z})
}

// SetScaleUniform sets every scale component to s.
func (t *Transform) SetScaleUniform(s float32) {
	t.SetScale(s, s, s)
}

// SetScaleVec replaces the scale.
func (t *Transform) SetScaleVec(s math.Vec3) {
	t.scale = s
	t.matricesDirty = true
}

// SetFromMatrix replaces position, rotation and scale with the components of
// an affine world matrix built as Scale * Rotation * Translation.
func (t *Transform) SetFromMatrix(world math.Mat4) {
	scale, rot, pos := world.Decompose()
	t.position = pos
	t.scale = scale
	t.rotation = rot.PitchYawRoll()
	t.markRotated()
}

// Position returns the world-space position.
func (t *Transform) Position() math.Vec3 { return t.position }

// PitchYawRoll returns the rotation angles in radians.
func (t *Transform) PitchYawRoll() math.Vec3 { return t.rotation }

// ScaleFactors returns the per-axis scale.
func (t *Transform) ScaleFactors() math.Vec3 { return t.scale }

// Up returns the local +Y axis in world space.
func (t *Transform) Up() math.Vec3 {
	t.updateVectors()
	return t.up
}

// Right returns the local +X axis in world space.
func (t *Transform) Right() math.Vec3 {
	t.updateVectors()
	return t.right
}

// Forward returns the local +Z axis in world space.
func (t *Transform) Forward() math.Vec3 {
	t.updateVectors()
	return t.forward
}

// WorldMatrix returns Scale * Rotation * Translation: local vertices are
// scaled, then rotated, then moved into place.
func (t *Transform) WorldMatrix() math.Mat4 {
	t.updateMatrices()
	return t.world
}

// WorldInverseTransposeMatrix returns the inverse-transpose of the world
// matrix, used to transform normals under non-uniform scale.
func (t *Transform) WorldInverseTransposeMatrix() math.Mat4 {
	t.updateMatrices()
	return t.worldInverseTranspose
}

func (t *Transform) orientation() math.Quat {
	return math.QuatFromPitchYawRoll(t.rotation.X, t.rotation.Y, t.rotation.Z)
}

func (t *Transform) markRotated() {
	t.matricesDirty = true
	t.vectorsDirty = true
}

func (t *Transform) updateVectors() {
	if !t.vectorsDirty {
		return
	}
	q := t.orientation()
	t.up = q.Rotate(math.Vec3Up)
	t.right = q.Rotate(math.Vec3Right)
	t.forward = q.Rotate(math.Vec3Forward)
	t.vectorsDirty = false
}

func (t *Transform) updateMatrices() {
	if !t.matricesDirty {
		return
	}
	s := math.Scale(t.scale.X, t.scale.Y, t.scale.Z)
	r := math.RotatePitchYawRoll(t.rotation.X, t.rotation.Y, t.rotation.Z)
	p := math.Translate(t.position.X, t.position.Y, t.position.Z)

	t.world = s.Mul(r).Mul(p)
	t.worldInverseTranspose = t.world.Inverse().Transpose()
	t.matricesDirty = false
}
