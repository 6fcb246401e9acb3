// Package renderer provides the OpenGL backend: immutable mesh buffers, the
// shared per-draw uniform buffer and frame setup.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/engine/entity"
	"github.com/Faultbox/meshdemo/internal/engine/mesh"
	"github.com/Faultbox/meshdemo/internal/engine/shader"
	"github.com/Faultbox/meshdemo/internal/logger"
	"github.com/Faultbox/meshdemo/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor math.Vec4
	// Wireframe draws triangle edges only.
	Wireframe bool
}

// Renderer owns the demo shader program and the uniform buffer every entity
// draws through.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program uint32
	uniform *UniformBuffer
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	var err error
	r.program, err = CompileProgram(shader.VertexSource, shader.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	if err := BindUniformBlock(r.program, shader.BlockName, shader.BlockBinding); err != nil {
		gl.DeleteProgram(r.program)
		return nil, err
	}

	r.uniform = NewUniformBuffer(shader.Size, shader.BlockBinding)

	r.log.Debug("shader program created", zap.Uint32("program", r.program))
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// applyState restores the pipeline state the demo draws with. The ImGui
// renderer changes blend, scissor and cull state between frames.
func (r *Renderer) applyState() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Geometry is wound clockwise; back faces are culled.
	gl.FrontFace(gl.CW)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)

	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	mode := uint32(gl.FILL)
	if r.config.Wireframe {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
}

// Uniforms returns the shared per-draw uniform buffer.
func (r *Renderer) Uniforms() *UniformBuffer { return r.uniform }

// Device returns the mesh buffer factory backed by this renderer.
func (r *Renderer) Device() *Device { return &Device{log: r.log} }

// SetClearColor sets the background colour from the next frame on.
func (r *Renderer) SetClearColor(c math.Vec4) { r.config.ClearColor = c }

// ClearColor returns the background colour.
func (r *Renderer) ClearColor() math.Vec4 { return r.config.ClearColor }

// SetWireframe toggles line rasterization from the next frame on.
func (r *Renderer) SetWireframe(on bool) { r.config.Wireframe = on }

// Wireframe reports whether line rasterization is on.
func (r *Renderer) Wireframe() bool { return r.config.Wireframe }

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.uniform != nil {
		r.uniform.Release()
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize sets the viewport of the default framebuffer.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) { return r.config.Width, r.config.Height }

// Begin clears the bound framebuffer and binds the demo program and uniform
// buffer.
func (r *Renderer) Begin() {
	r.applyState()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
	r.uniform.Bind()
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

var (
	_ mesh.Device          = (*Device)(nil)
	_ entity.UniformTarget = (*UniformBuffer)(nil)
)
