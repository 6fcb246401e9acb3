package game

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/config"
	"github.com/Faultbox/meshdemo/internal/engine/camera"
	"github.com/Faultbox/meshdemo/internal/engine/entity"
	"github.com/Faultbox/meshdemo/internal/engine/input"
	"github.com/Faultbox/meshdemo/internal/engine/mesh"
	"github.com/Faultbox/meshdemo/internal/logger"
	"github.com/Faultbox/meshdemo/pkg/math"
)

// nudge is the distance IJKL moves the controllable entity per key press.
const nudge = 0.1

// Entity slots driven by Update.
const (
	pulsingEntity      = 0
	swayingEntity      = 1
	controllableEntity = 2
)

// Scene owns the demo meshes, entities and cameras.
type Scene struct {
	log      *zap.Logger
	meshes   *mesh.Registry
	entities []*entity.Entity
	cameras  []*camera.Camera
	active   int
	tint     math.Vec4
}

// NewScene builds the demo meshes, entities and cameras on dev.
func NewScene(dev mesh.Device, cfg *config.Config) (*Scene, error) {
	s := &Scene{
		log:    logger.Named("scene"),
		meshes: mesh.NewRegistry(),
	}

	for _, g := range demoGeometry() {
		if _, err := s.meshes.Create(dev, g.name, g.vertices, g.indices); err != nil {
			s.meshes.Close()
			return nil, fmt.Errorf("create mesh %s: %w", g.name, err)
		}
	}

	tri, _ := s.meshes.Get(TriangleMesh)
	quad, _ := s.meshes.Get(QuadMesh)
	shape, _ := s.meshes.Get(ShapeMesh)

	s.entities = []*entity.Entity{
		entity.New(tri),
		entity.New(tri),
		entity.New(quad),
		entity.New(shape),
		entity.New(shape),
	}
	s.entities[0].Transform().Rotate(0, 0, 0.1)
	s.entities[1].Transform().MoveAbsolute(-1.2, -0.3, 0)
	s.entities[3].Transform().MoveAbsolute(-0.5, 0.1, 0)
	s.entities[4].Transform().MoveAbsolute(0.1, -1, 0)

	cc := cfg.Camera
	aspect := aspectRatio(cfg.Graphics.Width, cfg.Graphics.Height)
	start := math.Vec3{Z: -5}
	clip := camera.WithClipPlanes(cc.Near, cc.Far)
	s.cameras = []*camera.Camera{
		camera.New(start, cc.MoveSpeed, cc.LookSpeed, math.Radians(cc.FOVDegrees), aspect,
			camera.WithName("Main"), clip),
		camera.New(start, cc.MoveSpeed, cc.LookSpeed, math.Radians(cc.FOVDegrees), aspect,
			camera.WithName("Orthographic"), clip,
			camera.WithProjection(camera.Orthographic),
			camera.WithOrthographicWidth(cc.OrthoWidth)),
	}

	s.tint = math.Vec4(cfg.Scene.ColorTint)
	for _, e := range s.entities {
		e.SetColorTint(s.tint)
	}

	s.log.Info("scene created",
		zap.Int("meshes", s.meshes.Len()),
		zap.Int("entities", len(s.entities)),
		zap.Int("cameras", len(s.cameras)),
	)
	return s, nil
}

func aspectRatio(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Update advances the scene by dt seconds; total is the time since start.
func (s *Scene) Update(dt, total float32, in input.Source) {
	c := s.entities[controllableEntity].Transform()
	if in.KeyPressed(input.KeyK) {
		c.MoveRelative(0, -nudge, 0)
	}
	if in.KeyPressed(input.KeyI) {
		c.MoveRelative(0, nudge, 0)
	}
	if in.KeyPressed(input.KeyJ) {
		c.MoveRelative(-nudge, 0, 0)
	}
	if in.KeyPressed(input.KeyL) {
		c.MoveRelative(nudge, 0, 0)
	}

	pulse := s.entities[pulsingEntity].Transform()
	pulse.SetScaleUniform(float32(gomath.Sin(float64(total)*5))*0.5 + 1)
	pulse.Rotate(0, 0, dt)

	s.entities[swayingEntity].Transform().SetPosition(float32(gomath.Sin(float64(total))), 0, 0)

	if in.KeyPressed(input.KeyTab) {
		s.SetActiveCamera((s.active + 1) % len(s.cameras))
	}
	s.cameras[s.active].Update(dt, in)
}

// Draw draws every entity with the active camera, stopping at the first
// failed upload.
func (s *Scene) Draw(target entity.UniformTarget) error {
	cam := s.cameras[s.active]
	for i, e := range s.entities {
		if err := e.Draw(target, cam); err != nil {
			return fmt.Errorf("draw entity %d: %w", i, err)
		}
	}
	return nil
}

// Resize updates every camera's projection for a width x height surface.
// A zero height (minimised window) is ignored.
func (s *Scene) Resize(width, height int) {
	if height <= 0 {
		return
	}
	aspect := aspectRatio(width, height)
	for _, c := range s.cameras {
		c.UpdateProjectionMatrix(aspect)
	}
}

// ApplyConfig applies reloadable camera and scene settings. The configured
// tint replaces only tints that still hold the previous configured value,
// so per-entity edits survive a reload.
func (s *Scene) ApplyConfig(cfg *config.Config) {
	cc := cfg.Camera
	for _, c := range s.cameras {
		c.SetMoveSpeed(cc.MoveSpeed)
		c.SetLookSpeed(cc.LookSpeed)
		c.SetFieldOfView(math.Radians(cc.FOVDegrees))
		c.SetNearClip(cc.Near)
		c.SetFarClip(cc.Far)
		c.SetOrthographicWidth(cc.OrthoWidth)
	}
	tint := math.Vec4(cfg.Scene.ColorTint)
	for _, e := range s.entities {
		if e.ColorTint() == s.tint {
			e.SetColorTint(tint)
		}
	}
	s.tint = tint
	s.log.Debug("config applied", zap.Float32("fov_degrees", cc.FOVDegrees))
}

// CaptureConfig writes the live camera and scene settings into cfg. Camera
// values come from the active camera.
func (s *Scene) CaptureConfig(cfg *config.Config) {
	c := s.cameras[s.active]
	cfg.Camera.MoveSpeed = c.MoveSpeed()
	cfg.Camera.LookSpeed = c.LookSpeed()
	cfg.Camera.FOVDegrees = math.Degrees(c.FieldOfView())
	cfg.Camera.Near = c.NearClip()
	cfg.Camera.Far = c.FarClip()
	cfg.Camera.OrthoWidth = c.OrthographicWidth()
	cfg.Scene.ColorTint = [4]float32(s.tint)
}

// Entities returns the scene entities in draw order.
func (s *Scene) Entities() []*entity.Entity { return s.entities }

// Cameras returns the scene cameras.
func (s *Scene) Cameras() []*camera.Camera { return s.cameras }

// Meshes returns the registry that owns the demo meshes.
func (s *Scene) Meshes() *mesh.Registry { return s.meshes }

// ActiveCamera returns the index of the camera used for Update and Draw.
func (s *Scene) ActiveCamera() int { return s.active }

// SetActiveCamera selects the camera at index i. Out-of-range indices are
// ignored.
func (s *Scene) SetActiveCamera(i int) {
	if i < 0 || i >= len(s.cameras) || i == s.active {
		return
	}
	s.active = i
	s.log.Debug("active camera changed", zap.String("camera", s.cameras[i].Name()))
}

// Close destroys the entities and releases the meshes.
func (s *Scene) Close() {
	for _, e := range s.entities {
		e.Destroy()
	}
	s.entities = nil
	s.meshes.Close()
}
