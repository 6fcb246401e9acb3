package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/meshdemo/internal/engine/input"
	"github.com/Faultbox/meshdemo/pkg/math"
)

const eps = 1e-4

func newTestCamera(opts ...Option) *Camera {
	return New(math.Vec3{Z: -5}, 5, 0.01, math.HalfPi, 16.0/9.0, opts...)
}

func TestNewDefaults(t *testing.T) {
	c := newTestCamera()

	if c.NearClip() != DefaultNearClip || c.FarClip() != DefaultFarClip {
		t.Errorf("clip: got %f/%f", c.NearClip(), c.FarClip())
	}
	if c.OrthographicWidth() != DefaultOrthographicWidth {
		t.Errorf("ortho width: got %f", c.OrthographicWidth())
	}
	if c.ProjectionType() != Perspective {
		t.Errorf("projection type: got %v", c.ProjectionType())
	}
	if c.Bindings() != DefaultBindings() {
		t.Error("bindings should default")
	}
	if want := math.PerspectiveFovLH(math.HalfPi, 16.0/9.0, DefaultNearClip, DefaultFarClip); c.Projection() != want {
		t.Errorf("projection: got %v, want %v", c.Projection(), want)
	}
}

func TestOptions(t *testing.T) {
	bindings := DefaultBindings()
	bindings.Look = input.ButtonRight

	c := newTestCamera(
		WithClipPlanes(0.5, 50),
		WithProjection(Orthographic),
		WithOrthographicWidth(4),
		WithName("Side"),
		WithBindings(bindings),
	)

	if c.Name() != "Side" {
		t.Errorf("name: got %q", c.Name())
	}
	if c.Bindings().Look != input.ButtonRight {
		t.Error("bindings option ignored")
	}
	want := math.OrthographicLH(4, 4/(16.0/9.0), 0.5, 50)
	if !matNear(c.Projection(), want) {
		t.Errorf("projection: got %v, want %v", c.Projection(), want)
	}
}

func TestViewLooksDownPositiveZ(t *testing.T) {
	c := newTestCamera()

	// The origin is 5 units in front of a camera at z=-5.
	got := c.View().TransformVec3(math.Vec3{})
	if !vecNear(got, math.Vec3{Z: 5}) {
		t.Errorf("origin in view space: got %v, want (0, 0, 5)", got)
	}
}

func TestPitchClamped(t *testing.T) {
	tests := []struct {
		name string
		dy   float32
		want float32
	}{
		{"down", 1000, math.HalfPi},
		{"up", -1000, -math.HalfPi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCamera()
			in := &fakeInput{buttons: map[input.Button]bool{input.ButtonLeft: true}, delta: math.Vec2{X: 3, Y: tt.dy}}

			for i := 0; i < 50; i++ {
				c.Update(0.016, in)
				pitch := c.Transform().PitchYawRoll().X
				if pitch > math.HalfPi || pitch < -math.HalfPi {
					t.Fatalf("update %d: pitch %f out of range", i, pitch)
				}
			}
			if got := c.Transform().PitchYawRoll().X; abs(got-tt.want) > eps {
				t.Errorf("pitch: got %f, want %f", got, tt.want)
			}
			for _, v := range c.View() {
				if gomath.IsNaN(float64(v)) {
					t.Fatal("view matrix contains NaN at the pitch limit")
				}
			}
		})
	}
}

func TestLookRequiresButton(t *testing.T) {
	c := newTestCamera()
	c.Update(0.016, &fakeInput{delta: math.Vec2{X: 100, Y: 100}})

	if c.Transform().PitchYawRoll() != (math.Vec3{}) {
		t.Errorf("rotation changed without the look button: %v", c.Transform().PitchYawRoll())
	}
}

func TestLookYaw(t *testing.T) {
	c := newTestCamera()
	in := &fakeInput{buttons: map[input.Button]bool{input.ButtonLeft: true}, delta: math.Vec2{X: 50}}
	c.Update(0.016, in)

	if got := c.Transform().PitchYawRoll().Y; abs(got-0.5) > eps {
		t.Errorf("yaw: got %f, want 0.5", got)
	}
}

func TestMovement(t *testing.T) {
	tests := []struct {
		name string
		keys []input.Key
		want math.Vec3
	}{
		{"forward", []input.Key{input.KeyW}, math.Vec3{Z: -4}},
		{"back", []input.Key{input.KeyS}, math.Vec3{Z: -6}},
		{"left", []input.Key{input.KeyA}, math.Vec3{X: -1, Z: -5}},
		{"right", []input.Key{input.KeyD}, math.Vec3{X: 1, Z: -5}},
		{"up", []input.Key{input.KeySpace}, math.Vec3{Y: 1, Z: -5}},
		{"down", []input.Key{input.KeyX}, math.Vec3{Y: -1, Z: -5}},
		{"fast", []input.Key{input.KeyW, input.KeyShift}, math.Vec3{Z: 0}},
		{"precise", []input.Key{input.KeyW, input.KeyControl}, math.Vec3{Z: -4.9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCamera()
			in := &fakeInput{keys: map[input.Key]bool{}}
			for _, k := range tt.keys {
				in.keys[k] = true
			}

			// dt * moveSpeed = 0.2 * 5 = 1 unit.
			c.Update(0.2, in)
			if !vecNear(c.Transform().Position(), tt.want) {
				t.Errorf("position: got %v, want %v", c.Transform().Position(), tt.want)
			}
		})
	}
}

func TestVerticalMovementIgnoresPitch(t *testing.T) {
	c := newTestCamera()
	c.Transform().SetRotation(0.8, 0.3, 0)
	c.Update(0.2, &fakeInput{keys: map[input.Key]bool{input.KeySpace: true}})

	if !vecNear(c.Transform().Position(), math.Vec3{Y: 1, Z: -5}) {
		t.Errorf("position: got %v", c.Transform().Position())
	}
}

func TestUpdateRecomputesView(t *testing.T) {
	c := newTestCamera()
	before := c.View()

	c.Transform().MoveAbsolute(3, 0, 0)
	if c.View() != before {
		t.Fatal("view should only change on update")
	}

	c.Update(0, &fakeInput{})
	if c.View() == before {
		t.Error("view should be recomputed by Update")
	}
}

func TestSetFieldOfViewImmediate(t *testing.T) {
	c := newTestCamera()
	before := c.Projection()

	c.SetFieldOfView(0.5)

	if c.Projection() == before {
		t.Fatal("projection unchanged after SetFieldOfView")
	}
	if want := math.PerspectiveFovLH(0.5, 16.0/9.0, DefaultNearClip, DefaultFarClip); !matNear(c.Projection(), want) {
		t.Errorf("projection: got %v, want %v", c.Projection(), want)
	}
}

func TestProjectionSettersImmediate(t *testing.T) {
	tests := []struct {
		name string
		set  func(c *Camera)
	}{
		{"near", func(c *Camera) { c.SetNearClip(1) }},
		{"far", func(c *Camera) { c.SetFarClip(10) }},
		{"type", func(c *Camera) { c.SetProjectionType(Orthographic) }},
		{"aspect", func(c *Camera) { c.UpdateProjectionMatrix(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCamera()
			before := c.Projection()
			tt.set(c)
			if c.Projection() == before {
				t.Error("projection unchanged")
			}
		})
	}
}

func TestSetOrthographicWidth(t *testing.T) {
	c := newTestCamera(WithProjection(Orthographic))
	c.UpdateProjectionMatrix(2)
	c.SetOrthographicWidth(20)

	p := c.Projection()
	if abs(p[0]-0.1) > eps || abs(p[5]-0.2) > eps {
		t.Errorf("ortho scale: got %f, %f, want 0.1, 0.2", p[0], p[5])
	}
}

func TestTwoCamerasSameProjectionDifferentView(t *testing.T) {
	a := New(math.Vec3{Z: -5}, 5, 0.01, math.HalfPi, 1.5)
	b := New(math.Vec3{X: 2, Y: 1, Z: -3}, 5, 0.01, math.HalfPi, 1.5)

	if a.Projection() != b.Projection() {
		t.Error("identical parameters should give identical projections")
	}
	if a.View() == b.View() {
		t.Error("different positions should give different views")
	}
}

func TestSpeedSetters(t *testing.T) {
	c := newTestCamera()
	c.SetMoveSpeed(10)
	c.SetLookSpeed(0.5)

	if c.MoveSpeed() != 10 || c.LookSpeed() != 0.5 {
		t.Errorf("speeds: got %f, %f", c.MoveSpeed(), c.LookSpeed())
	}
}

func TestProjectionTypeString(t *testing.T) {
	if Perspective.String() != "Perspective" || Orthographic.String() != "Orthographic" {
		t.Error("unexpected names")
	}
	if ProjectionType(7).String() != "Unknown" {
		t.Error("out of range type should be Unknown")
	}
}

type fakeInput struct {
	keys    map[input.Key]bool
	pressed map[input.Key]bool
	buttons map[input.Button]bool
	delta   math.Vec2
}

func (f *fakeInput) KeyDown(k input.Key) bool            { return f.keys[k] }
func (f *fakeInput) KeyPressed(k input.Key) bool         { return f.pressed[k] }
func (f *fakeInput) MouseDelta() math.Vec2               { return f.delta }
func (f *fakeInput) MouseButtonDown(b input.Button) bool { return f.buttons[b] }

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func vecNear(a, b math.Vec3) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}

func matNear(a, b math.Mat4) bool {
	for i := range a {
		if abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
