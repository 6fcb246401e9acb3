// Package mesh provides immutable indexed triangle geometry backed by GPU
// buffers, shared between entities through reference counting.
package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/logger"
	"github.com/Faultbox/meshdemo/pkg/math"
)

// Validation errors returned by New.
var (
	ErrNilDevice       = errors.New("mesh: nil device")
	ErrEmptyGeometry   = errors.New("mesh: no vertices or indices")
	ErrNotTriangleList = errors.New("mesh: index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("mesh: index out of range")
)

// Vertex is a single vertex as laid out in the vertex buffer.
type Vertex struct {
	Position math.Vec3
	Color    math.Vec4
}

// VertexStride is the size of one Vertex in the vertex buffer, in bytes.
const VertexStride = (3 + 4) * 4

// Buffer is a GPU buffer handle.
type Buffer interface {
	Release()
}

// Device creates and draws immutable GPU buffers.
type Device interface {
	CreateVertexBuffer(vertices []Vertex) (Buffer, error)
	CreateIndexBuffer(indices []uint32) (Buffer, error)
	BindBuffers(vertices, indices Buffer)
	// DrawIndexed draws a triangle list from the bound buffers.
	DrawIndexed(indexCount, startIndex, baseVertex int)
}

// Mesh is immutable vertex and index data uploaded once at construction.
//
// A new Mesh holds one reference owned by its creator. Each additional owner
// calls Retain and every owner calls Release exactly once; the GPU buffers are
// freed when the count reaches zero.
type Mesh struct {
	name        string
	device      Device
	vertices    Buffer
	indices     Buffer
	vertexCount int
	indexCount  int
	refs        int

	boundsMin math.Vec3
	boundsMax math.Vec3
}

// New validates the geometry and uploads it into immutable buffers.
func New(dev Device, name string, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrEmptyGeometry)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%q has %d indices: %w", name, len(indices), ErrNotTriangleList)
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%q index %d is %d, only %d vertices: %w",
				name, i, idx, len(vertices), ErrIndexOutOfRange)
		}
	}

	vb, err := dev.CreateVertexBuffer(vertices)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer for %q: %w", name, err)
	}
	ib, err := dev.CreateIndexBuffer(indices)
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("failed to create index buffer for %q: %w", name, err)
	}

	logger.L().Debug("mesh created",
		zap.String("name", name),
		zap.Int("vertices", len(vertices)),
		zap.Int("indices", len(indices)))

	m := &Mesh{
		name:        name,
		device:      dev,
		vertices:    vb,
		indices:     ib,
		vertexCount: len(vertices),
		indexCount:  len(indices),
		refs:        1,
	}
	m.boundsMin, m.boundsMax = bounds(vertices)
	return m, nil
}

func bounds(vertices []Vertex) (lo, hi math.Vec3) {
	lo, hi = vertices[0].Position, vertices[0].Position
	for _, v := range vertices[1:] {
		p := v.Position
		lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}

// Draw binds the mesh buffers and draws every index as a triangle list.
// Drawing a released mesh does nothing.
func (m *Mesh) Draw() {
	if m.refs <= 0 {
		return
	}
	m.device.BindBuffers(m.vertices, m.indices)
	m.device.DrawIndexed(m.indexCount, 0, 0)
}

func (m *Mesh) Name() string       { return m.name }
func (m *Mesh) VertexCount() int   { return m.vertexCount }
func (m *Mesh) IndexCount() int    { return m.indexCount }
func (m *Mesh) TriangleCount() int { return m.indexCount / 3 }

// Bounds returns the local-space axis-aligned bounds of the vertices.
func (m *Mesh) Bounds() (lo, hi math.Vec3) { return m.boundsMin, m.boundsMax }

// RefCount returns the number of live references.
func (m *Mesh) RefCount() int { return m.refs }

// Retain adds a reference and returns m. A released mesh stays released.
func (m *Mesh) Retain() *Mesh {
	if m.refs <= 0 {
		return m
	}
	m.refs++
	return m
}

// Release drops a reference, freeing the GPU buffers when none remain.
// Extra releases are ignored.
func (m *Mesh) Release() {
	if m.refs <= 0 {
		return
	}
	m.refs--
	if m.refs > 0 {
		return
	}

	m.vertices.Release()
	m.indices.Release()
	logger.L().Debug("mesh freed", zap.String("name", m.name))
}
