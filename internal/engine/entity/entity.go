// Package entity implements renderable scene entities: a shared mesh drawn
// with an exclusively owned transform and a colour tint.
package entity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/meshdemo/internal/engine/mesh"
	"github.com/Faultbox/meshdemo/internal/engine/picking"
	"github.com/Faultbox/meshdemo/internal/engine/shader"
	"github.com/Faultbox/meshdemo/internal/engine/transform"
	"github.com/Faultbox/meshdemo/pkg/math"
)

// DefaultColorTint is the tint of a new entity.
var DefaultColorTint = math.Vec4{1, 0.5, 0.5, 1}

// UniformTarget receives the per-draw uniform payload. The data must be
// visible to the next draw call issued after Upload returns.
type UniformTarget interface {
	Upload(data []byte) error
}

// Viewer supplies the camera matrices for a draw.
type Viewer interface {
	View() math.Mat4
	Projection() math.Mat4
}

// Entity draws a shared mesh at its own transform.
type Entity struct {
	id        uuid.UUID
	mesh      *mesh.Mesh
	transform *transform.Transform
	colorTint math.Vec4

	payload []byte
}

// New creates an entity at the identity transform and retains m.
func New(m *mesh.Mesh) *Entity {
	if m != nil {
		m.Retain()
	}
	return &Entity{
		id:        uuid.New(),
		mesh:      m,
		transform: transform.New(),
		colorTint: DefaultColorTint,
		payload:   make([]byte, 0, shader.Size),
	}
}

// ID returns a stable identifier, unique per entity.
func (e *Entity) ID() uuid.UUID { return e.id }

// Mesh returns the current mesh, nil after Destroy.
func (e *Entity) Mesh() *mesh.Mesh { return e.mesh }

// SetMesh retains m and releases the previous mesh.
func (e *Entity) SetMesh(m *mesh.Mesh) {
	if m == e.mesh {
		return
	}
	if m != nil {
		m.Retain()
	}
	if e.mesh != nil {
		e.mesh.Release()
	}
	e.mesh = m
}

// Transform returns the entity's transform.
func (e *Entity) Transform() *transform.Transform { return e.transform }

func (e *Entity) ColorTint() math.Vec4     { return e.colorTint }
func (e *Entity) SetColorTint(c math.Vec4) { e.colorTint = c }

// Bounds returns the world-space box around the mesh. It reports false when
// the entity has no mesh.
func (e *Entity) Bounds() (picking.AABB, bool) {
	if e.mesh == nil {
		return picking.AABB{}, false
	}
	return picking.NewAABB(e.mesh.Bounds()).Transform(e.transform.WorldMatrix()), true
}

// Draw uploads the entity's uniforms to target and draws its mesh. The
// target is shared, so the upload must be consumed before the next entity
// draws.
func (e *Entity) Draw(target UniformTarget, cam Viewer) error {
	if e.mesh == nil {
		return nil
	}

	data := shader.VertexData{
		ColorTint:  e.colorTint,
		World:      e.transform.WorldMatrix(),
		View:       cam.View(),
		Projection: cam.Projection(),
	}
	e.payload = data.AppendBytes(e.payload[:0])

	if err := target.Upload(e.payload); err != nil {
		return fmt.Errorf("upload uniforms for %s: %w", e.mesh.Name(), err)
	}
	e.mesh.Draw()
	return nil
}

// Destroy releases the mesh reference. Calling it again does nothing.
func (e *Entity) Destroy() {
	if e.mesh != nil {
		e.mesh.Release()
		e.mesh = nil
	}
}
