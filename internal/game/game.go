// Package game implements the demo scene and its SDL frame loop.
package game

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/config"
	"github.com/Faultbox/meshdemo/internal/engine/input"
	"github.com/Faultbox/meshdemo/internal/engine/renderer"
	"github.com/Faultbox/meshdemo/internal/engine/window"
	"github.com/Faultbox/meshdemo/internal/logger"
	"github.com/Faultbox/meshdemo/pkg/math"
)

// Game is the SDL-driven demo instance.
type Game struct {
	config   *config.Config
	title    string
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	scene    *Scene
	input    *input.State
	reloads  chan *config.Config
}

// New creates the window, renderer and scene.
func New(title string, cfg *config.Config) (*Game, error) {
	g := &Game{
		config:  cfg,
		title:   title,
		log:     logger.Named("game"),
		input:   &input.State{},
		reloads: make(chan *config.Config, 1),
	}

	g.log.Info("initializing demo",
		zap.String("title", title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.Size()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: math.Vec4(cfg.Graphics.ClearColor),
		Wireframe:  cfg.Graphics.Wireframe,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.scene, err = NewScene(g.renderer.Device(), cfg)
	if err != nil {
		g.renderer.Close()
		g.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	g.scene.Resize(width, height)

	g.log.Info("demo initialized successfully")
	return g, nil
}

// Run starts the main loop and returns when the window closes, Escape is
// pressed or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	if g.config.Debug.WatchConfig && g.config.Path() != "" {
		err := config.Watch(ctx, g.config.Path(), func(cfg *config.Config) {
			// Keep only the newest pending reload.
			select {
			case <-g.reloads:
			default:
			}
			g.reloads <- cfg
		})
		if err != nil {
			g.log.Warn("config watch disabled", zap.Error(err))
		}
	}

	g.running = true

	// Timing
	start := window.Ticks()
	last := start
	frameCount := 0
	fpsTimer := start

	g.log.Info("starting main loop")

	for g.running {
		select {
		case <-ctx.Done():
			return nil
		case cfg := <-g.reloads:
			g.applyConfig(cfg)
		default:
		}

		now := window.Ticks()
		dt := float32(now - last)
		last = now

		// 1. Process input
		for _, event := range g.window.PollEvents(g.input) {
			switch event.Type {
			case window.EventQuit:
				g.running = false
			case window.EventResize:
				g.renderer.Resize(event.Width, event.Height)
				g.scene.Resize(event.Width, event.Height)
			}
		}
		if g.input.KeyPressed(input.KeyEscape) {
			g.running = false
		}
		if !g.running {
			break
		}
		if g.input.KeyPressed(input.KeyF1) {
			g.renderer.SetWireframe(!g.renderer.Wireframe())
		}

		// 2. Update scene
		g.scene.Update(dt, float32(now-start), g.input)

		// 3. Render
		g.renderer.Begin()
		if err := g.scene.Draw(g.renderer.Uniforms()); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		g.renderer.End()

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if now-fpsTimer >= 1 {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			g.window.SetTitle(fmt.Sprintf("%s - %d fps", g.title, frameCount))
			frameCount = 0
			fpsTimer = now
		}
	}

	return nil
}

func (g *Game) applyConfig(cfg *config.Config) {
	g.config = cfg
	g.scene.ApplyConfig(cfg)
	g.renderer.SetClearColor(math.Vec4(cfg.Graphics.ClearColor))
	g.renderer.SetWireframe(cfg.Graphics.Wireframe)
	g.window.SetVSync(cfg.Graphics.VSync)
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		g.log.Warn("invalid log level in config", zap.Error(err))
	}
}

// Close cleans up demo resources.
func (g *Game) Close() {
	g.log.Info("closing demo")

	if g.scene != nil {
		g.scene.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
