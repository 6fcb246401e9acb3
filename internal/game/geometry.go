package game

import (
	"github.com/Faultbox/meshdemo/internal/engine/mesh"
	"github.com/Faultbox/meshdemo/pkg/math"
)

var (
	red   = math.Vec4{1, 0, 0, 1}
	green = math.Vec4{0, 1, 0, 1}
	blue  = math.Vec4{0, 0, 1, 1}
	black = math.Vec4{0, 0, 0, 1}
	grey  = math.Vec4{0.5, 0.5, 0.5, 1}
)

// Mesh names registered by NewScene.
const (
	TriangleMesh = "Triangle"
	QuadMesh     = "Quad"
	ShapeMesh    = "Shape"
)

type geometry struct {
	name     string
	vertices []mesh.Vertex
	indices  []uint32
}

func v(x, y float32, c math.Vec4) mesh.Vertex {
	return mesh.Vertex{Position: math.Vec3{X: x, Y: y}, Color: c}
}

// demoGeometry returns the scene's meshes in registration order. Winding is
// clockwise as seen from the default camera.
func demoGeometry() []geometry {
	return []geometry{
		{
			name: TriangleMesh,
			vertices: []mesh.Vertex{
				v(0, 0.5, red),
				v(0.5, -0.5, blue),
				v(-0.5, -0.5, green),
			},
			indices: []uint32{0, 1, 2},
		},
		{
			name: QuadMesh,
			vertices: []mesh.Vertex{
				v(-0.8, 0.3, blue),
				v(-0.8, 0.1, black),
				v(-0.4, 0.2, blue),
				v(-0.4, 0.3, black),
			},
			indices: []uint32{0, 3, 2, 0, 2, 1},
		},
		{
			name: ShapeMesh,
			vertices: []mesh.Vertex{
				v(0.5, 0.5, blue),
				v(0.6, 0.6, blue),
				v(0.6, 0.4, red),
				v(0.7, 0.7, red),
				v(0.8, 0.6, red),
				v(0.9, 0.5, red),
				v(0.8, 0.4, blue),
				v(0.7, 0.3, grey),
			},
			indices: []uint32{
				0, 1, 2,
				1, 3, 4,
				4, 5, 6,
				6, 7, 2,
				2, 4, 6,
			},
		},
	}
}
