// Inspector runs the mesh demo inside an ImGui debug interface.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/config"
	"github.com/Faultbox/meshdemo/internal/engine/debug"
	"github.com/Faultbox/meshdemo/internal/engine/renderer"
	"github.com/Faultbox/meshdemo/internal/engine/ui"
	"github.com/Faultbox/meshdemo/internal/game"
	"github.com/Faultbox/meshdemo/internal/logger"
	"github.com/Faultbox/meshdemo/pkg/math"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Debug("config loaded", zap.String("path", cfg.Path()))

	if err := run(cfg); err != nil {
		logger.Fatal("inspector error", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	bg := math.Vec4(cfg.Graphics.ClearColor)

	b, err := ui.NewBackend(ui.BackendConfig{
		Title:      "Mesh Demo Inspector",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Background: bg,
		FontPath:   cfg.Debug.FontPath,
	})
	if err != nil {
		return err
	}

	r, err := renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		ClearColor: bg,
		Wireframe:  cfg.Graphics.Wireframe,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Close()

	scene, err := game.NewScene(r.Device(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	defer scene.Close()

	insp, err := ui.NewInspector(b, r, scene, cfg, debug.NewScreenshots(cfg.Debug.ScreenshotDir, "meshdemo"))
	if err != nil {
		return err
	}
	defer insp.Close()

	if cfg.Debug.WatchConfig && cfg.Path() != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := config.Watch(ctx, cfg.Path(), insp.QueueConfig); err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		}
	}

	b.Run(insp.Frame)
	return insp.Err()
}
