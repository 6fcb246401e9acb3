// Package camera provides a fly camera with perspective and orthographic
// projections.
package camera

import (
	"github.com/Faultbox/meshdemo/internal/engine/input"
	"github.com/Faultbox/meshdemo/internal/engine/transform"
	"github.com/Faultbox/meshdemo/pkg/math"
)

// Default clip planes and orthographic width.
const (
	DefaultNearClip          = 0.01
	DefaultFarClip           = 100.0
	DefaultOrthographicWidth = 10.0
)

// Speed multipliers applied while the modifier keys are held.
const (
	FastMultiplier    = 5.0
	PreciseMultiplier = 0.1
)

// ProjectionType selects how the camera projects eye space into clip space.
type ProjectionType int

const (
	Perspective ProjectionType = iota
	Orthographic
)

func (p ProjectionType) String() string {
	switch p {
	case Perspective:
		return "Perspective"
	case Orthographic:
		return "Orthographic"
	default:
		return "Unknown"
	}
}

// Bindings maps camera actions to input.
type Bindings struct {
	Forward input.Key
	Back    input.Key
	Left    input.Key
	Right   input.Key
	Up      input.Key
	Down    input.Key
	Fast    input.Key
	Precise input.Key
	Look    input.Button
}

// DefaultBindings returns WASD movement, Space/X for vertical movement,
// Shift/Control as speed modifiers and left-drag to look.
func DefaultBindings() Bindings {
	return Bindings{
		Forward: input.KeyW,
		Back:    input.KeyS,
		Left:    input.KeyA,
		Right:   input.KeyD,
		Up:      input.KeySpace,
		Down:    input.KeyX,
		Fast:    input.KeyShift,
		Precise: input.KeyControl,
		Look:    input.ButtonLeft,
	}
}

// Option configures a Camera at construction.
type Option func(*Camera)

// WithClipPlanes sets the near and far clip distances.
func WithClipPlanes(near, far float32) Option {
	return func(c *Camera) {
		c.nearClip = near
		c.farClip = far
	}
}

// WithProjection sets the projection type.
func WithProjection(p ProjectionType) Option {
	return func(c *Camera) {
		c.projectionType = p
	}
}

// WithOrthographicWidth sets the width of the orthographic view volume.
func WithOrthographicWidth(w float32) Option {
	return func(c *Camera) {
		c.orthographicWidth = w
	}
}

// WithName sets the display name.
func WithName(name string) Option {
	return func(c *Camera) {
		c.name = name
	}
}

// WithBindings replaces the default input bindings.
func WithBindings(b Bindings) Option {
	return func(c *Camera) {
		c.bindings = b
	}
}

// Camera owns a Transform and derives view and projection matrices from it.
//
// Unlike Transform, matrices are computed eagerly: the view on every Update
// and the projection on every projection setter.
type Camera struct {
	name      string
	transform *transform.Transform
	bindings  Bindings

	fieldOfView       float32
	aspectRatio       float32
	nearClip          float32
	farClip           float32
	orthographicWidth float32
	projectionType    ProjectionType

	moveSpeed float32
	lookSpeed float32

	view       math.Mat4
	projection math.Mat4
}

// New creates a camera at position. fov is the vertical field of view in
// radians and aspect is width/height. Clip planes must satisfy 0 < near < far
// and aspect must be non-zero; these are not checked.
func New(position math.Vec3, moveSpeed, lookSpeed, fov, aspect float32, opts ...Option) *Camera {
	c := &Camera{
		name:              "Camera",
		transform:         transform.New(),
		bindings:          DefaultBindings(),
		fieldOfView:       fov,
		nearClip:          DefaultNearClip,
		farClip:           DefaultFarClip,
		orthographicWidth: DefaultOrthographicWidth,
		projectionType:    Perspective,
		moveSpeed:         moveSpeed,
		lookSpeed:         lookSpeed,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.transform.SetPositionVec(position)
	c.UpdateViewMatrix()
	c.UpdateProjectionMatrix(aspect)
	return c
}

// Update applies one frame of movement and mouse-look, then rebuilds the
// view matrix.
func (c *Camera) Update(dt float32, in input.Source) {
	b := c.bindings

	speed := dt * c.moveSpeed
	if in.KeyDown(b.Fast) {
		speed *= FastMultiplier
	}
	if in.KeyDown(b.Precise) {
		speed *= PreciseMultiplier
	}

	if in.KeyDown(b.Forward) {
		c.transform.MoveRelative(0, 0, speed)
	}
	if in.KeyDown(b.Back) {
		c.transform.MoveRelative(0, 0, -speed)
	}
	if in.KeyDown(b.Left) {
		c.transform.MoveRelative(-speed, 0, 0)
	}
	if in.KeyDown(b.Right) {
		c.transform.MoveRelative(speed, 0, 0)
	}
	if in.KeyDown(b.Up) {
		c.transform.MoveAbsolute(0, speed, 0)
	}
	if in.KeyDown(b.Down) {
		c.transform.MoveAbsolute(0, -speed, 0)
	}

	if in.MouseButtonDown(b.Look) {
		d := in.MouseDelta()
		c.transform.Rotate(d.Y*c.lookSpeed, d.X*c.lookSpeed, 0)

		rot := c.transform.PitchYawRoll()
		if rot.X > math.HalfPi {
			rot.X = math.HalfPi
		} else if rot.X < -math.HalfPi {
			rot.X = -math.HalfPi
		}
		c.transform.SetRotationVec(rot)
	}

	c.UpdateViewMatrix()
}

// UpdateViewMatrix rebuilds the view from the transform's position and
// forward vector with world up.
func (c *Camera) UpdateViewMatrix() {
	forward := c.transform.Forward()
	up := math.Vec3Up
	// Looking straight up or down leaves world up parallel to forward.
	if d := forward.Dot(up); d > 0.9999 || d < -0.9999 {
		up = c.transform.Up()
	}
	c.view = math.LookToLH(c.transform.Position(), forward, up)
}

// UpdateProjectionMatrix stores aspect and rebuilds the projection.
func (c *Camera) UpdateProjectionMatrix(aspect float32) {
	c.aspectRatio = aspect
	switch c.projectionType {
	case Orthographic:
		c.projection = math.OrthographicLH(c.orthographicWidth, c.orthographicWidth/aspect, c.nearClip, c.farClip)
	default:
		c.projection = math.PerspectiveFovLH(c.fieldOfView, aspect, c.nearClip, c.farClip)
	}
}

// View returns the view matrix as of the last Update or UpdateViewMatrix.
func (c *Camera) View() math.Mat4 { return c.view }

// Projection returns the current projection matrix.
func (c *Camera) Projection() math.Mat4 { return c.projection }

// Transform returns the camera's transform. Call UpdateViewMatrix after
// editing it outside of Update.
func (c *Camera) Transform() *transform.Transform { return c.transform }

// Name returns the display name of the camera.
func (c *Camera) Name() string { return c.name }

// Bindings returns the keys and mouse button that drive the camera.
func (c *Camera) Bindings() Bindings { return c.bindings }

// FieldOfView returns the vertical field of view in radians.
func (c *Camera) FieldOfView() float32 { return c.fieldOfView }

// AspectRatio returns the width/height ratio of the last projection update.
func (c *Camera) AspectRatio() float32 { return c.aspectRatio }

// NearClip returns the near clip distance.
func (c *Camera) NearClip() float32 { return c.nearClip }

// FarClip returns the far clip distance.
func (c *Camera) FarClip() float32 { return c.farClip }

// OrthographicWidth returns the width of the orthographic view volume.
func (c *Camera) OrthographicWidth() float32 { return c.orthographicWidth }

// ProjectionType returns whether the camera is perspective or orthographic.
func (c *Camera) ProjectionType() ProjectionType { return c.projectionType }

// MoveSpeed returns the movement speed in units per second.
func (c *Camera) MoveSpeed() float32 { return c.moveSpeed }

// LookSpeed returns the mouse-look sensitivity in radians per pixel.
func (c *Camera) LookSpeed() float32 { return c.lookSpeed }

// SetFieldOfView sets the vertical field of view in radians.
func (c *Camera) SetFieldOfView(fov float32) {
	c.fieldOfView = fov
	c.UpdateProjectionMatrix(c.aspectRatio)
}

// SetOrthographicWidth sets the width of the orthographic view volume.
func (c *Camera) SetOrthographicWidth(w float32) {
	c.orthographicWidth = w
	c.UpdateProjectionMatrix(c.aspectRatio)
}

// SetNearClip sets the near clip distance.
func (c *Camera) SetNearClip(near float32) {
	c.nearClip = near
	c.UpdateProjectionMatrix(c.aspectRatio)
}

// SetFarClip sets the far clip distance.
func (c *Camera) SetFarClip(far float32) {
	c.farClip = far
	c.UpdateProjectionMatrix(c.aspectRatio)
}

// SetProjectionType switches between perspective and orthographic.
func (c *Camera) SetProjectionType(p ProjectionType) {
	c.projectionType = p
	c.UpdateProjectionMatrix(c.aspectRatio)
}

// SetMoveSpeed sets the movement speed in units per second.
func (c *Camera) SetMoveSpeed(speed float32) { c.moveSpeed = speed }

// SetLookSpeed sets the mouse-look sensitivity in radians per pixel.
func (c *Camera) SetLookSpeed(speed float32) { c.lookSpeed = speed }
