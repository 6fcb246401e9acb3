package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/engine/mesh"
	"github.com/Faultbox/meshdemo/internal/engine/shader"
)

var errForeignBuffer = errors.New("buffer was not created by this device")

// Device creates immutable GL buffers for meshes. Each vertex buffer carries
// its own vertex array object with the demo attribute layout.
type Device struct {
	log *zap.Logger
}

type vertexBuffer struct {
	vao, vbo uint32
}

func (b *vertexBuffer) Release() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	b.vao, b.vbo = 0, 0
}

type indexBuffer struct {
	ibo uint32
}

func (b *indexBuffer) Release() {
	gl.DeleteBuffers(1, &b.ibo)
	b.ibo = 0
}

// CreateVertexBuffer uploads vertices into a static buffer.
func (d *Device) CreateVertexBuffer(vertices []mesh.Vertex) (mesh.Buffer, error) {
	b := &vertexBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*mesh.VertexStride, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(shader.PositionLocation, 3, gl.FLOAT, false, mesh.VertexStride, 0)
	gl.EnableVertexAttribArray(shader.PositionLocation)
	gl.VertexAttribPointerWithOffset(shader.ColorLocation, 4, gl.FLOAT, false, mesh.VertexStride, 3*4)
	gl.EnableVertexAttribArray(shader.ColorLocation)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := glError("vertex buffer"); err != nil {
		b.Release()
		return nil, err
	}
	d.log.Debug("vertex buffer created", zap.Uint32("vao", b.vao), zap.Uint32("vbo", b.vbo))
	return b, nil
}

// CreateIndexBuffer uploads 32-bit indices into a static buffer.
func (d *Device) CreateIndexBuffer(indices []uint32) (mesh.Buffer, error) {
	b := &indexBuffer{}
	gl.GenBuffers(1, &b.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if err := glError("index buffer"); err != nil {
		b.Release()
		return nil, err
	}
	d.log.Debug("index buffer created", zap.Uint32("ibo", b.ibo))
	return b, nil
}

// BindBuffers binds a vertex and index buffer pair for DrawIndexed.
func (d *Device) BindBuffers(vertices, indices mesh.Buffer) {
	vb, ok := vertices.(*vertexBuffer)
	ib, ok2 := indices.(*indexBuffer)
	if !ok || !ok2 {
		d.log.Error("bind buffers", zap.Error(errForeignBuffer))
		return
	}
	gl.BindVertexArray(vb.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ibo)
}

// DrawIndexed draws indexCount indices as triangles.
func (d *Device) DrawIndexed(indexCount, startIndex, baseVertex int) {
	gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT,
		gl.PtrOffset(startIndex*4), int32(baseVertex))
}

func glError(what string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", what, code)
	}
	return nil
}
