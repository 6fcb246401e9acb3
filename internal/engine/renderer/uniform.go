package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// UniformBuffer is a fixed-size uniform buffer attached to one binding point.
// Each Upload replaces the whole contents.
type UniformBuffer struct {
	ubo     uint32
	size    int
	binding uint32
}

// NewUniformBuffer allocates a dynamic uniform buffer of size bytes.
func NewUniformBuffer(size int, binding uint32) *UniformBuffer {
	u := &UniformBuffer{size: size, binding: binding}
	gl.GenBuffers(1, &u.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	u.Bind()
	return u
}

// Bind attaches the buffer to its binding point.
func (u *UniformBuffer) Bind() {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, u.binding, u.ubo)
}

// Upload replaces the buffer contents. GL orders the write before any draw
// issued afterwards.
func (u *UniformBuffer) Upload(data []byte) error {
	if len(data) != u.size {
		return fmt.Errorf("uniform upload: got %d bytes, want %d", len(data), u.size)
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return glError("uniform upload")
}

// Release deletes the buffer.
func (u *UniformBuffer) Release() {
	gl.DeleteBuffers(1, &u.ubo)
	u.ubo = 0
}
