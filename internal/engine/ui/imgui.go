// Package ui provides the ImGui backend, an ImGui-driven input source and the
// debug inspector.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/logger"
	"github.com/Faultbox/meshdemo/pkg/math"
)

// Backend wraps the ImGui SDL backend, which owns the window, the GL context
// and the frame loop.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
}

// BackendConfig configures NewBackend.
type BackendConfig struct {
	Title      string
	Width      int
	Height     int
	Background math.Vec4
	// FontPath optionally names a TTF file loaded as the default font.
	FontPath string
	FontSize float32
}

// NewBackend creates the window and GL context and initializes OpenGL.
func NewBackend(cfg BackendConfig) (*Backend, error) {
	b := &Backend{log: logger.Named("ui")}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		b.loadFont(cfg.FontPath, cfg.FontSize)
	})

	bg := cfg.Background
	b.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], bg[3]))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	b.log.Info("imgui backend created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return b, nil
}

func (b *Backend) loadFont(path string, size float32) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		b.log.Warn("font not found, using the default", zap.String("path", path), zap.Error(err))
		return
	}
	if size <= 0 {
		size = 16
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()
	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, size, fontCfg, nil)
}

// Run starts the frame loop. frame is called once per frame between ImGui's
// NewFrame and Render.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// Quit ends Run after the current frame.
func (b *Backend) Quit() {
	b.backend.SetShouldClose(true)
}

// SetBackground sets the colour behind the ImGui windows.
func (b *Backend) SetBackground(c math.Vec4) {
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], c[3]))
}

// WindowSize returns the window size.
func (b *Backend) WindowSize() (int, int) {
	w, h := b.backend.DisplaySize()
	return int(w), int(h)
}
