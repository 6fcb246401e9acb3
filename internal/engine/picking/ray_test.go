package picking

import (
	"testing"

	"github.com/Faultbox/meshdemo/pkg/math"
)

const eps = 1e-3

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func vecNear(a, b math.Vec3) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}

// Camera at (0,0,-5) looking down +Z.
func testCamera() (view, projection math.Mat4) {
	view = math.LookToLH(math.Vec3{Z: -5}, math.Vec3{Z: 1}, math.Vec3{Y: 1})
	projection = math.PerspectiveFovLH(math.HalfPi, 1, 0.1, 100)
	return view, projection
}

func TestScreenToRayCenter(t *testing.T) {
	view, proj := testCamera()
	r := ScreenToRay(50, 50, 100, 100, view, proj)

	if !vecNear(r.Origin, math.Vec3{Z: -4.9}) {
		t.Errorf("origin = %v, want (0,0,-4.9)", r.Origin)
	}
	if !vecNear(r.Direction, math.Vec3{Z: 1}) {
		t.Errorf("direction = %v, want +Z", r.Direction)
	}
}

func TestScreenToRayCorners(t *testing.T) {
	view, proj := testCamera()

	tests := []struct {
		name  string
		x, y  float32
		signX float32
		signY float32
	}{
		{"top left", 0, 0, -1, 1},
		{"top right", 100, 0, 1, 1},
		{"bottom left", 0, 100, -1, -1},
		{"bottom right", 100, 100, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ScreenToRay(tt.x, tt.y, 100, 100, view, proj).Direction
			if d.X*tt.signX <= 0 || d.Y*tt.signY <= 0 || d.Z <= 0 {
				t.Errorf("direction = %v", d)
			}
			// 90 degree fov with a square viewport puts corners at 45 degrees on both axes.
			if abs(abs(d.X)-abs(d.Z)) > eps || abs(abs(d.Y)-abs(d.Z)) > eps {
				t.Errorf("direction = %v, want equal components", d)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: 1}}, true, 4},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"parallel outside", Ray{Origin: math.Vec3{Y: 2, Z: -5}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: -5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && abs(got-tt.wantT) > eps {
				t.Errorf("t = %f, want %f", got, tt.wantT)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math.Vec3{X: -0.5, Y: -0.5}, math.Vec3{X: 0.5, Y: 0.5})

	moved := box.Transform(math.Scale(2, 2, 2).Mul(math.Translate(1, 0, 3)))
	if !vecNear(moved.Min, math.Vec3{X: 0, Y: -1, Z: 3}) || !vecNear(moved.Max, math.Vec3{X: 2, Y: 1, Z: 3}) {
		t.Errorf("moved = %+v", moved)
	}

	// A quarter turn about Z swaps the X and Y extents.
	tall := NewAABB(math.Vec3{X: -1, Y: -0.25}, math.Vec3{X: 1, Y: 0.25})
	rotated := tall.Transform(math.RotateZ(math.HalfPi))
	if !vecNear(rotated.Min, math.Vec3{X: -0.25, Y: -1}) || !vecNear(rotated.Max, math.Vec3{X: 0.25, Y: 1}) {
		t.Errorf("rotated = %+v", rotated)
	}
}

func TestNearest(t *testing.T) {
	r := Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: 1}}
	unit := NewAABB(math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	boxes := []AABB{
		unit.Transform(math.Translate(0, 0, 3)),
		unit.Transform(math.Translate(5, 0, 0)),
		unit,
	}
	i, ok := Nearest(r, boxes)
	if !ok || i != 2 {
		t.Errorf("Nearest = %d, %v, want 2", i, ok)
	}

	if _, ok := Nearest(r, boxes[1:2]); ok {
		t.Error("expected no hit")
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1}, Direction: math.Vec3{Y: 1}}
	if got := r.At(2); got != (math.Vec3{X: 1, Y: 2}) {
		t.Errorf("At(2) = %v", got)
	}
}
