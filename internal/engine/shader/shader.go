// Package shader defines the demo shader program: its embedded GLSL sources,
// vertex attribute locations and the per-draw uniform block layout.
package shader

import (
	_ "embed"
	"encoding/binary"
	gomath "math"

	"github.com/Faultbox/meshdemo/pkg/math"
)

// VertexSource is the GLSL vertex shader.
//
//go:embed shaders/demo.vert
var VertexSource string

// FragmentSource is the GLSL fragment shader.
//
//go:embed shaders/demo.frag
var FragmentSource string

// Vertex attribute locations.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

// Uniform block name and binding point of VertexData.
const (
	BlockName    = "VertexData"
	BlockBinding = 0
)

// Size is the std140 size of VertexData in bytes.
const Size = 4*4 + 3*16*4

// VertexData is the per-draw uniform payload.
type VertexData struct {
	ColorTint  math.Vec4
	World      math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

// Bytes encodes d as Size little-endian bytes: the tint followed by each
// matrix row after row.
func (d *VertexData) Bytes() []byte {
	return d.AppendBytes(make([]byte, 0, Size))
}

// AppendBytes appends the encoding of d to b.
func (d *VertexData) AppendBytes(b []byte) []byte {
	b = appendFloats(b, d.ColorTint[:])
	b = appendFloats(b, d.World[:])
	b = appendFloats(b, d.View[:])
	b = appendFloats(b, d.Projection[:])
	return b
}

func appendFloats(b []byte, fs []float32) []byte {
	for _, f := range fs {
		b = binary.LittleEndian.AppendUint32(b, gomath.Float32bits(f))
	}
	return b
}
