// Package config handles demo configuration loading and management.
package config

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`

	path string
}

// Path returns the file the config was loaded from, or "" for defaults only.
func (c *Config) Path() string { return c.path }

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Wireframe  bool       `yaml:"wireframe"`
	ClearColor [4]float32 `yaml:"clear_color"`
}

// CameraConfig holds the parameters shared by the scene cameras.
type CameraConfig struct {
	MoveSpeed  float32 `yaml:"move_speed"`
	LookSpeed  float32 `yaml:"look_speed"`
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	OrthoWidth float32 `yaml:"ortho_width"`
}

// SceneConfig holds scene content settings.
type SceneConfig struct {
	ColorTint [4]float32 `yaml:"color_tint"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	Profile       bool   `yaml:"profile"`
	ProfileDir    string `yaml:"profile_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	WatchConfig   bool   `yaml:"watch_config"`
	// FontPath optionally replaces the inspector's default font with a TTF file.
	FontPath string `yaml:"font_path"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [4]float32{0.4, 0.6, 0.75, 1},
		},
		Camera: CameraConfig{
			MoveSpeed:  3,
			LookSpeed:  0.002,
			FOVDegrees: 90,
			Near:       0.01,
			Far:        100,
			OrthoWidth: 10,
		},
		Scene: SceneConfig{
			ColorTint: [4]float32{1, 0.5, 0.5, 1},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ProfileDir:    ".",
			ScreenshotDir: "screenshots",
			WatchConfig:   true,
		},
	}
}
