package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/config"
	"github.com/Faultbox/meshdemo/internal/engine/camera"
	"github.com/Faultbox/meshdemo/internal/engine/debug"
	"github.com/Faultbox/meshdemo/internal/engine/entity"
	"github.com/Faultbox/meshdemo/internal/engine/framebuffer"
	"github.com/Faultbox/meshdemo/internal/engine/input"
	"github.com/Faultbox/meshdemo/internal/engine/mesh"
	"github.com/Faultbox/meshdemo/internal/engine/picking"
	"github.com/Faultbox/meshdemo/internal/engine/renderer"
	"github.com/Faultbox/meshdemo/internal/logger"
	"github.com/Faultbox/meshdemo/pkg/math"
)

// Scene is the scene surface the inspector drives and edits.
type Scene interface {
	Update(dt, total float32, in input.Source)
	Draw(target entity.UniformTarget) error
	Resize(width, height int)
	ApplyConfig(cfg *config.Config)
	CaptureConfig(cfg *config.Config)

	Entities() []*entity.Entity
	Cameras() []*camera.Camera
	Meshes() *mesh.Registry
	ActiveCamera() int
	SetActiveCamera(i int)
}

const panelWidth = 340

// Inspector renders the scene into an offscreen viewport and shows editing
// panels beside it. All scene edits go through Transform and Camera setters.
type Inspector struct {
	log      *zap.Logger
	backend  *Backend
	renderer *renderer.Renderer
	scene    Scene
	viewport *framebuffer.Framebuffer
	input    *Input
	shots    *debug.Screenshots
	cfg      *config.Config
	reloads  chan *config.Config

	total      float32
	clearColor math.Vec4
	wireframe  bool
	showDemo   bool
	selected   int
	status     string
	err        error
}

// NewInspector creates the viewport framebuffer and inspector state. cfg is
// the config the Save button writes back.
func NewInspector(b *Backend, r *renderer.Renderer, s Scene, cfg *config.Config, shots *debug.Screenshots) (*Inspector, error) {
	w, h := r.Size()
	fb, err := framebuffer.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("create viewport: %w", err)
	}
	s.Resize(fb.Size())

	return &Inspector{
		log:        logger.Named("inspector"),
		backend:    b,
		renderer:   r,
		scene:      s,
		viewport:   fb,
		input:      &Input{},
		shots:      shots,
		cfg:        cfg,
		reloads:    make(chan *config.Config, 1),
		clearColor: r.ClearColor(),
		wireframe:  r.Wireframe(),
		selected:   -1,
	}, nil
}

// QueueConfig schedules cfg to be applied at the start of the next frame.
// It is safe to call from any goroutine; only the newest config is kept.
func (in *Inspector) QueueConfig(cfg *config.Config) {
	select {
	case <-in.reloads:
	default:
	}
	in.reloads <- cfg
}

// Err returns the draw error that stopped the loop, if any.
func (in *Inspector) Err() error { return in.err }

// Frame updates the scene and draws every inspector window. It is the
// backend's per-frame callback.
func (in *Inspector) Frame() {
	select {
	case cfg := <-in.reloads:
		in.applyConfig(cfg)
	default:
	}

	dt := imgui.CurrentIO().DeltaTime()
	in.total += dt

	if in.input.KeyPressed(input.KeyEscape) {
		in.backend.Quit()
	}
	if in.input.KeyPressed(input.KeyF1) {
		in.wireframe = !in.wireframe
		in.renderer.SetWireframe(in.wireframe)
	}

	in.scene.Update(dt, in.total, in.input)

	in.drawViewport()
	in.drawInspector()

	if in.showDemo {
		imgui.ShowDemoWindowV(&in.showDemo)
	}
}

func (in *Inspector) applyConfig(cfg *config.Config) {
	in.cfg = cfg
	in.scene.ApplyConfig(cfg)
	in.setClearColor(math.Vec4(cfg.Graphics.ClearColor))
	in.wireframe = cfg.Graphics.Wireframe
	in.renderer.SetWireframe(in.wireframe)
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		in.log.Warn("invalid log level in config", zap.Error(err))
	}
}

func (in *Inspector) setClearColor(c math.Vec4) {
	in.clearColor = c
	in.renderer.SetClearColor(c)
	in.backend.SetBackground(c)
}

func (in *Inspector) drawViewport() {
	work := imgui.MainViewport().WorkPos()
	size := imgui.MainViewport().WorkSize()
	imgui.SetNextWindowPos(imgui.NewVec2(work.X+panelWidth, work.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X-panelWidth, size.Y))

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse
	if imgui.BeginV("Viewport", nil, flags) {
		avail := imgui.ContentRegionAvail()
		if in.viewport.Resize(int(avail.X), int(avail.Y)) {
			in.scene.Resize(in.viewport.Size())
		}

		if in.err == nil {
			restore := in.viewport.Bind()
			in.renderer.Begin()
			if err := in.scene.Draw(in.renderer.Uniforms()); err != nil {
				in.err = err
				in.log.Error("scene draw failed", zap.Error(err))
				in.backend.Quit()
			}
			in.renderer.End()
			restore()
		}

		// GL textures are stored bottom-up.
		tex := imgui.NewTextureRefTextureID(imgui.TextureID(in.viewport.ColorTexture()))
		imgui.ImageWithBgV(*tex, avail, imgui.NewVec2(0, 1), imgui.NewVec2(1, 0),
			imgui.NewVec4(0, 0, 0, 0), imgui.NewVec4(1, 1, 1, 1))
		in.input.SetViewportHovered(imgui.IsItemHovered())
		if imgui.IsItemClicked() {
			mouse, origin := imgui.MousePos(), imgui.ItemRectMin()
			in.pick(mouse.X-origin.X, mouse.Y-origin.Y)
		}
	} else {
		in.input.SetViewportHovered(false)
	}
	imgui.End()
}

// pick selects the entity under viewport pixel (x, y), or clears the
// selection.
func (in *Inspector) pick(x, y float32) {
	w, h := in.viewport.Size()
	cam := in.scene.Cameras()[in.scene.ActiveCamera()]
	ray := picking.ScreenToRay(x, y, float32(w), float32(h), cam.View(), cam.Projection())

	var boxes []picking.AABB
	var owners []int
	for i, e := range in.scene.Entities() {
		if box, ok := e.Bounds(); ok {
			boxes = append(boxes, box)
			owners = append(owners, i)
		}
	}

	in.selected = -1
	if j, ok := picking.Nearest(ray, boxes); ok {
		in.selected = owners[j]
		in.log.Debug("entity picked", zap.Int("entity", in.selected))
	}
}

func (in *Inspector) drawInspector() {
	work := imgui.MainViewport().WorkPos()
	size := imgui.MainViewport().WorkSize()
	imgui.SetNextWindowPos(work)
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, size.Y))

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Inspector", nil, flags) {
		in.drawStats()
		in.drawMeshes()
		in.drawEntities()
		in.drawCameras()
	}
	imgui.End()
}

func (in *Inspector) drawStats() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("App Details", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	io := imgui.CurrentIO()
	w, h := in.backend.WindowSize()
	vw, vh := in.viewport.Size()
	imgui.Text(fmt.Sprintf("Framerate: %.1f fps", io.Framerate()))
	imgui.Text(fmt.Sprintf("Window: %dx%d", w, h))
	imgui.Text(fmt.Sprintf("Viewport: %dx%d", vw, vh))

	c := [4]float32(in.clearColor)
	if imgui.ColorEdit4("Background", &c) {
		in.setClearColor(math.Vec4(c))
	}
	if imgui.Checkbox("Wireframe (F1)", &in.wireframe) {
		in.renderer.SetWireframe(in.wireframe)
	}
	imgui.Checkbox("ImGui demo window", &in.showDemo)
	if in.selected >= 0 {
		imgui.Text(fmt.Sprintf("Selected: Entity %d", in.selected))
	} else {
		imgui.TextDisabled("Click the viewport to select an entity")
	}

	if imgui.Button("Screenshot") {
		in.screenshot()
	}
	imgui.SameLine()
	if imgui.Button("Save config") {
		in.saveConfig()
	}
	if in.status != "" {
		imgui.TextDisabled(in.status)
	}
}

func (in *Inspector) screenshot() {
	w, h := in.viewport.Size()
	path, err := in.shots.SaveBottomUp(in.viewport.ReadPixels(), w, h)
	if err != nil {
		in.log.Error("screenshot failed", zap.Error(err))
		in.status = "screenshot failed"
		return
	}
	in.log.Info("screenshot saved", zap.String("path", path))
	in.status = path
}

// saveConfig folds the live settings into the config and writes it back to
// its file. The watcher then reloads the same values.
func (in *Inspector) saveConfig() {
	in.scene.CaptureConfig(in.cfg)
	in.cfg.Graphics.ClearColor = [4]float32(in.clearColor)
	in.cfg.Graphics.Wireframe = in.wireframe

	path, err := in.cfg.Save()
	if err != nil {
		in.log.Error("config save failed", zap.Error(err))
		in.status = "config save failed"
		return
	}
	in.log.Info("config saved", zap.String("path", path))
	in.status = path
}

func (in *Inspector) drawMeshes() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Meshes", imgui.TreeNodeFlagsNone) {
		return
	}
	reg := in.scene.Meshes()
	for _, name := range reg.Names() {
		m, ok := reg.Get(name)
		if !ok {
			continue
		}
		if imgui.TreeNodeExStrV(name, imgui.TreeNodeFlagsNone) {
			imgui.Text(fmt.Sprintf("Vertices: %d", m.VertexCount()))
			imgui.Text(fmt.Sprintf("Indices: %d", m.IndexCount()))
			imgui.Text(fmt.Sprintf("Triangles: %d", m.TriangleCount()))
			imgui.Text(fmt.Sprintf("References: %d", m.RefCount()))
			imgui.TreePop()
		}
	}
}

func (in *Inspector) drawEntities() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Entities", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	for i, e := range in.scene.Entities() {
		imgui.PushIDStr(e.ID().String())
		label := fmt.Sprintf("Entity %d", i)
		if m := e.Mesh(); m != nil {
			label += " (" + m.Name() + ")"
		}
		flags := imgui.TreeNodeFlagsNone
		if i == in.selected {
			flags |= imgui.TreeNodeFlagsSelected
		}
		if imgui.TreeNodeExStrV(label, flags) {
			drawTransform(e)
			c := [4]float32(e.ColorTint())
			if imgui.ColorEdit4("Tint", &c) {
				e.SetColorTint(math.Vec4(c))
			}
			imgui.TreePop()
		}
		imgui.PopID()
	}
}

func drawTransform(e *entity.Entity) {
	t := e.Transform()

	pos := t.Position().Array()
	if imgui.DragFloat3V("Position", &pos, 0.01, 0, 0, "%.3f", imgui.SliderFlagsNone) {
		t.SetPositionVec(math.Vec3FromArray(pos))
	}
	rot := t.PitchYawRoll().Array()
	if imgui.DragFloat3V("Rotation", &rot, 0.01, 0, 0, "%.3f", imgui.SliderFlagsNone) {
		t.SetRotationVec(math.Vec3FromArray(rot))
	}
	scale := t.ScaleFactors().Array()
	if imgui.DragFloat3V("Scale", &scale, 0.01, 0, 0, "%.3f", imgui.SliderFlagsNone) {
		t.SetScaleVec(math.Vec3FromArray(scale))
	}
}

func (in *Inspector) drawCameras() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Cameras", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	active := in.scene.ActiveCamera()
	for i, c := range in.scene.Cameras() {
		if imgui.RadioButtonBool(c.Name(), i == active) {
			in.scene.SetActiveCamera(i)
		}
		if i+1 < len(in.scene.Cameras()) {
			imgui.SameLine()
		}
	}
	imgui.TextDisabled("Tab cycles cameras")
	imgui.Separator()

	c := in.scene.Cameras()[in.scene.ActiveCamera()]
	imgui.PushIDStr(c.Name())
	defer imgui.PopID()

	p := c.Transform().Position()
	imgui.Text(fmt.Sprintf("Position: %.2f, %.2f, %.2f", p.X, p.Y, p.Z))
	r := c.Transform().PitchYawRoll()
	imgui.Text(fmt.Sprintf("Pitch/Yaw: %.2f, %.2f", r.X, r.Y))

	if imgui.RadioButtonBool("Perspective", c.ProjectionType() == camera.Perspective) {
		c.SetProjectionType(camera.Perspective)
	}
	imgui.SameLine()
	if imgui.RadioButtonBool("Orthographic", c.ProjectionType() == camera.Orthographic) {
		c.SetProjectionType(camera.Orthographic)
	}

	if c.ProjectionType() == camera.Perspective {
		fov := math.Degrees(c.FieldOfView())
		if imgui.SliderFloatV("FOV", &fov, 10, 170, "%.0f deg", imgui.SliderFlagsNone) {
			c.SetFieldOfView(math.Radians(fov))
		}
	} else {
		width := c.OrthographicWidth()
		if imgui.SliderFloatV("Width", &width, 0.5, 50, "%.1f", imgui.SliderFlagsNone) {
			c.SetOrthographicWidth(width)
		}
	}

	near := c.NearClip()
	if imgui.SliderFloatV("Near", &near, 0.001, c.FarClip()-0.001, "%.3f", imgui.SliderFlagsLogarithmic) {
		c.SetNearClip(near)
	}
	far := c.FarClip()
	if imgui.SliderFloatV("Far", &far, c.NearClip()+0.001, 1000, "%.1f", imgui.SliderFlagsLogarithmic) {
		c.SetFarClip(far)
	}

	move := c.MoveSpeed()
	if imgui.SliderFloatV("Move speed", &move, 0.1, 20, "%.1f", imgui.SliderFlagsNone) {
		c.SetMoveSpeed(move)
	}
	look := c.LookSpeed()
	if imgui.SliderFloatV("Look speed", &look, 0.0005, 0.02, "%.4f", imgui.SliderFlagsLogarithmic) {
		c.SetLookSpeed(look)
	}
}

// Close releases the viewport framebuffer.
func (in *Inspector) Close() {
	in.viewport.Destroy()
}
