package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/oceanview/internal/ocean"
)

// parseFlags returns overrides parsed from args on a fresh flag set.
func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := newFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags %v: %v", args, err)
	}
	return f
}

// isolate points every config lookup at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("APPDATA", filepath.Join(dir, "appdata"))
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}
	if !cfg.Window.Panel {
		t.Error("expected panel to be shown by default")
	}

	if cfg.Scene.GridSize != 120 {
		t.Errorf("expected grid size 120, got %d", cfg.Scene.GridSize)
	}
	if cfg.Scene.Params != ocean.DefaultParams() {
		t.Errorf("expected default params, got %+v", cfg.Scene.Params)
	}
	if m, err := ocean.ParseMode(cfg.Scene.Mode); err != nil || m != ocean.ModeWireframe {
		t.Errorf("expected wireframe mode, got %q (%v)", cfg.Scene.Mode, err)
	}

	if cfg.Render.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("expected opaque black clear color, got %v", cfg.Render.ClearColor)
	}
	if cfg.Shaders.Vertex != "" || cfg.Shaders.Fragment != "" {
		t.Error("expected embedded shaders by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "oceanview.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  panel: false

scene:
  grid_size: 64
  grid_spacing: 0.5
  mode: heatmap
  camera:
    eye: [1, 2, 3]
  params:
    wave_height: 1.5
    fbm_octaves: 6

render:
  clear_color: [0.1, 0.2, 0.3, 1]

shaders:
  vertex: custom.vert

logging:
  level: "debug"
  log_file: "ocean.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.Panel {
		t.Error("expected panel to be false")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync default to survive a partial file")
	}

	if cfg.Scene.GridSize != 64 || cfg.Scene.GridSpacing != 0.5 {
		t.Errorf("unexpected grid %d/%g", cfg.Scene.GridSize, cfg.Scene.GridSpacing)
	}
	if cfg.Scene.Mode != "heatmap" {
		t.Errorf("expected mode heatmap, got %s", cfg.Scene.Mode)
	}
	if cfg.Scene.Camera.Eye != [3]float32{1, 2, 3} {
		t.Errorf("unexpected eye %v", cfg.Scene.Camera.Eye)
	}
	if cfg.Scene.Camera.Up != [3]float32{0, 1, 0} {
		t.Errorf("expected default up to survive, got %v", cfg.Scene.Camera.Up)
	}
	if cfg.Scene.Params.WaveHeight != 1.5 || cfg.Scene.Params.FBMOctaves != 6 {
		t.Errorf("unexpected params %+v", cfg.Scene.Params)
	}
	if cfg.Scene.Params.WaveScale != ocean.DefaultParams().WaveScale {
		t.Errorf("expected default wave scale, got %g", cfg.Scene.Params.WaveScale)
	}

	if cfg.Render.ClearColor != [4]float32{0.1, 0.2, 0.3, 1} {
		t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
	}
	if cfg.Shaders.Vertex != "custom.vert" || cfg.Shaders.Fragment != "" {
		t.Errorf("unexpected shaders %+v", cfg.Shaders)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "ocean.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/oceanview.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"grid too small", func(c *Config) { c.Scene.GridSize = 1 }},
		{"zero spacing", func(c *Config) { c.Scene.GridSpacing = 0 }},
		{"unknown mode", func(c *Config) { c.Scene.Mode = "sepia" }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov out of range", func(c *Config) { c.Scene.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Scene.Camera.Far = 0.05 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateUnknownModeWrapsSceneError(t *testing.T) {
	cfg := Default()
	cfg.Scene.Mode = "sepia"

	if err := cfg.Validate(); !errors.Is(err, ocean.ErrUnknownMode) {
		t.Errorf("expected ocean.ErrUnknownMode in chain, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := isolate(t)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, fileName)
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", fileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "mode flag",
			args: []string{"-mode", "normals"},
			verify: func(t *testing.T, cfg *Config) {
				if m, _ := ocean.ParseMode(cfg.Scene.Mode); m != ocean.ModeNormals {
					t.Errorf("expected normals, got %s", cfg.Scene.Mode)
				}
			},
		},
		{
			name: "size flags",
			args: []string{"-width", "1024", "-height", "768"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
					t.Errorf("expected 1024x768, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
		},
		{
			name: "fullscreen flag",
			args: []string{"-fullscreen"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen")
				}
			},
		},
		{
			name: "no panel flag",
			args: []string{"-no-panel"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Panel {
					t.Error("expected panel hidden")
				}
			},
		},
		{
			name: "shader flags",
			args: []string{"-vertex", "a.vert", "-fragment", "b.frag"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shaders.Vertex != "a.vert" || cfg.Shaders.Fragment != "b.frag" {
					t.Errorf("unexpected shaders %+v", cfg.Shaders)
				}
			},
		},
		{
			name: "no flags keeps defaults",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1280 {
					t.Errorf("expected default width, got %d", cfg.Window.Width)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := parseFlags(t, tt.args...).apply(cfg); err != nil {
				t.Fatalf("apply: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsUnknownMode(t *testing.T) {
	cfg := Default()
	err := parseFlags(t, "-mode", "sepia").apply(cfg)
	if !errors.Is(err, ocean.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := isolate(t)

	configPath := filepath.Join(tmpDir, "custom.yaml")
	content := "window:\n  width: 1600\n  height: 900\nscene:\n  mode: normals\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := load(parseFlags(t, "-config", configPath, "-width", "800"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Flag beats file, file beats default
	if cfg.Window.Width != 800 {
		t.Errorf("expected flag width 800, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected file height 900, got %d", cfg.Window.Height)
	}
	if cfg.Scene.Mode != "normals" {
		t.Errorf("expected file mode, got %s", cfg.Scene.Mode)
	}
	if cfg.Scene.GridSize != 120 {
		t.Errorf("expected default grid size, got %d", cfg.Scene.GridSize)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tmpDir := isolate(t)

	configPath := filepath.Join(tmpDir, fileName)
	if err := os.WriteFile(configPath, []byte("scene:\n  grid_size: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := load(parseFlags(t))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", fileName)

	cfg := Default()
	cfg.Window.Width = 999
	cfg.Scene.Params.WaveChop = 0.75
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Window.Width != 999 {
		t.Errorf("expected width 999, got %d", loaded.Window.Width)
	}
	if loaded.Scene.Params.WaveChop != 0.75 {
		t.Errorf("expected wave chop 0.75, got %g", loaded.Scene.Params.WaveChop)
	}
}
