package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.ClearColor != [4]float32{0.4, 0.6, 0.75, 1} {
		t.Errorf("unexpected clear colour %v", cfg.Graphics.ClearColor)
	}

	// Test camera defaults
	if cfg.Camera.FOVDegrees != 90 {
		t.Errorf("expected fov 90, got %f", cfg.Camera.FOVDegrees)
	}
	if cfg.Camera.Near != 0.01 || cfg.Camera.Far != 100 {
		t.Errorf("expected clip planes 0.01..100, got %f..%f", cfg.Camera.Near, cfg.Camera.Far)
	}
	if cfg.Camera.MoveSpeed <= 0 || cfg.Camera.LookSpeed <= 0 {
		t.Error("expected positive camera speeds")
	}

	// Test scene defaults
	if cfg.Scene.ColorTint != [4]float32{1, 0.5, 0.5, 1} {
		t.Errorf("unexpected colour tint %v", cfg.Scene.ColorTint)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if cfg.Debug.Profile {
		t.Error("expected profiling to be off by default")
	}
	if cfg.Path() != "" {
		t.Errorf("expected empty path, got %s", cfg.Path())
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  wireframe: true
  clear_color: [0, 0, 0, 1]

camera:
  move_speed: 10
  look_speed: 0.01
  fov_degrees: 60
  near: 0.1
  far: 500
  ortho_width: 20

scene:
  color_tint: [1, 1, 1, 1]

logging:
  level: "debug"
  log_file: "demo.log"

debug:
  profile: true
  profile_dir: "/tmp/prof"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if !cfg.Graphics.Wireframe {
		t.Error("expected wireframe to be true")
	}
	if cfg.Graphics.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("unexpected clear colour %v", cfg.Graphics.ClearColor)
	}

	if cfg.Camera.MoveSpeed != 10 {
		t.Errorf("expected move speed 10, got %f", cfg.Camera.MoveSpeed)
	}
	if cfg.Camera.FOVDegrees != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FOVDegrees)
	}
	if cfg.Camera.Far != 500 {
		t.Errorf("expected far 500, got %f", cfg.Camera.Far)
	}
	if cfg.Camera.OrthoWidth != 20 {
		t.Errorf("expected ortho width 20, got %f", cfg.Camera.OrthoWidth)
	}

	if cfg.Scene.ColorTint != [4]float32{1, 1, 1, 1} {
		t.Errorf("unexpected colour tint %v", cfg.Scene.ColorTint)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "demo.log" {
		t.Errorf("expected log file 'demo.log', got %s", cfg.Logging.LogFile)
	}

	if !cfg.Debug.Profile || cfg.Debug.ProfileDir != "/tmp/prof" {
		t.Errorf("unexpected debug section %+v", cfg.Debug)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("camera:\n  fov_degrees: 45\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera.FOVDegrees != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOVDegrees)
	}
	// Untouched keys keep their defaults
	if cfg.Camera.Far != 100 {
		t.Errorf("expected default far 100, got %f", cfg.Camera.Far)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280, got %d", cfg.Graphics.Width)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config) error
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) error {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				return nil
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "fov flag",
			setup: func() {
				*flagFOV = 75
			},
			verify: func(cfg *Config) error {
				if cfg.Camera.FOVDegrees != 75 {
					t.Errorf("expected fov 75, got %f", cfg.Camera.FOVDegrees)
				}
				return nil
			},
			teardown: func() {
				*flagFOV = 0
			},
		},
		{
			name: "profile flag",
			setup: func() {
				*flagProfile = true
			},
			verify: func(cfg *Config) error {
				if !cfg.Debug.Profile {
					t.Error("expected profiling enabled with profile flag")
				}
				return nil
			},
			teardown: func() {
				*flagProfile = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) error {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
				return nil
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) error {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
				return nil
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) error {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
				return nil
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}

	if cfg.Path() != configPath {
		t.Errorf("expected path %s, got %s", configPath, cfg.Path())
	}
}

func TestReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("camera:\n  move_speed: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagFOV = 30
	defer func() { *flagFOV = 0 }()

	cfg, err := Reload(configPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Camera.MoveSpeed != 7 {
		t.Errorf("expected move speed 7, got %f", cfg.Camera.MoveSpeed)
	}
	if cfg.Camera.FOVDegrees != 30 {
		t.Errorf("expected fov 30 from flag, got %f", cfg.Camera.FOVDegrees)
	}

	if _, err := Reload(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error reloading a missing file")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Camera.FOVDegrees = 55
	cfg.Graphics.Wireframe = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Camera.FOVDegrees != 55 || !loaded.Graphics.Wireframe {
		t.Errorf("saved values not restored: %+v", loaded)
	}
}

func TestSaveToLoadedPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  fov_degrees: 60\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Reload(configPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	cfg.Camera.FOVDegrees = 75

	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != configPath {
		t.Errorf("expected save to %s, got %s", configPath, path)
	}

	loaded, err := Reload(configPath)
	if err != nil {
		t.Fatalf("reload after save: %v", err)
	}
	if loaded.Camera.FOVDegrees != 75 {
		t.Errorf("expected fov 75 after save, got %f", loaded.Camera.FOVDegrees)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only config.yaml in %s, got %d entries", tmpDir, len(entries))
	}
}

func TestSaveWithoutPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("APPDATA", filepath.Join(home, "appdata"))

	cfg := Default()
	cfg.Graphics.Wireframe = true

	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	want := filepath.Join(ConfigDir(), "config.yaml")
	if path != want {
		t.Errorf("expected save to %s, got %s", want, path)
	}
	if cfg.Path() != want {
		t.Errorf("expected config path %s after save, got %s", want, cfg.Path())
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Graphics.Wireframe {
		t.Error("saved wireframe not restored")
	}
}

func TestWatch(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("camera:\n  fov_degrees: 60\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 8)
	if err := Watch(ctx, configPath, func(cfg *Config) { reloaded <- cfg }); err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(tmpDir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write other file: %v", err)
	}
	if err := os.WriteFile(configPath, []byte("camera:\n  fov_degrees: 40\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite test config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Camera.FOVDegrees == 40 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent/dir/config.yaml", func(*Config) {})
	if err == nil {
		t.Error("expected error watching a missing directory")
	}
}
