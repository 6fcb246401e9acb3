// Package main is the entry point for the mesh demo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/Faultbox/meshdemo/internal/config"
	"github.com/Faultbox/meshdemo/internal/game"
	"github.com/Faultbox/meshdemo/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Mesh Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Fatal("demo error", zap.Error(err))
	}

	logger.Info("demo closed normally")
}

func run(cfg *config.Config) error {
	if cfg.Debug.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Debug.ProfileDir), profile.NoShutdownHook).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create and run demo
	g, err := game.New("Mesh Demo", cfg)
	if err != nil {
		return fmt.Errorf("failed to create demo: %w", err)
	}
	defer g.Close()

	return g.Run(ctx)
}
