// Package config handles configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/oceanview/internal/ocean"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all application settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Scene       SceneConfig      `yaml:"scene"`
	Render      RenderConfig     `yaml:"render"`
	Shaders     ShaderConfig     `yaml:"shaders"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Panel      bool    `yaml:"panel"`       // Show the parameter panel (ImGui host)
	PanelWidth float32 `yaml:"panel_width"` // Logical pixels
}

// SceneConfig holds the ocean surface settings.
type SceneConfig struct {
	GridSize    int          `yaml:"grid_size"` // Vertices per side
	GridSpacing float32      `yaml:"grid_spacing"`
	Mode        string       `yaml:"mode"`
	Camera      CameraConfig `yaml:"camera"`
	Params      ocean.Params `yaml:"params"`
}

// CameraConfig holds the fixed view. FOV is in degrees.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	Up     [3]float32 `yaml:"up"`
	FOV    float32    `yaml:"fov"`
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
}

// ShaderConfig holds shader source paths. Empty means the embedded source.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Ocean",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Panel:      true,
			PanelWidth: 300,
		},
		Scene: SceneConfig{
			GridSize:    120,
			GridSpacing: 0.16,
			Mode:        "wireframe",
			Camera: CameraConfig{
				Eye:  [3]float32{0, 6, 12},
				Up:   [3]float32{0, 1, 0},
				FOV:  60,
				Near: 0.1,
				Far:  100,
			},
			Params: ocean.DefaultParams(),
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0, 0, 0, 1},
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values a scene or window cannot be built from.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Scene.GridSize < 2 {
		errs = append(errs, fmt.Errorf("scene.grid_size %d: need at least 2", c.Scene.GridSize))
	}
	if !(c.Scene.GridSpacing > 0) {
		errs = append(errs, fmt.Errorf("scene.grid_spacing %g: must be positive", c.Scene.GridSpacing))
	}
	if _, err := ocean.ParseMode(c.Scene.Mode); err != nil {
		errs = append(errs, fmt.Errorf("scene.mode: %w", err))
	}
	cam := c.Scene.Camera
	if !(cam.FOV > 0 && cam.FOV < 180) {
		errs = append(errs, fmt.Errorf("scene.camera.fov %g: must be in (0, 180)", cam.FOV))
	}
	if !(cam.Near > 0 && cam.Far > cam.Near) {
		errs = append(errs, fmt.Errorf("scene.camera near %g far %g: need 0 < near < far", cam.Near, cam.Far))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
