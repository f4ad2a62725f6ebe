package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/oceanview/internal/ocean"
)

// Flags holds command-line overrides.
type Flags struct {
	ConfigPath string
	Debug      bool
	Mode       string
	Width      int
	Height     int
	Windowed   bool
	Fullscreen bool
	Panel      bool
	NoPanel    bool
	Vertex     string
	Fragment   string
}

var cli = newFlags(flag.CommandLine)

// newFlags registers every override on fs.
func newFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Mode, "mode", "", "Initial visualization mode (base-color, normals, wireframe, heatmap)")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.BoolVar(&f.Panel, "panel", false, "Show the parameter panel")
	fs.BoolVar(&f.NoPanel, "no-panel", false, "Hide the parameter panel")
	fs.StringVar(&f.Vertex, "vertex", "", "Vertex shader file (default: embedded)")
	fs.StringVar(&f.Fragment, "fragment", "", "Fragment shader file (default: embedded)")
	return f
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return cli.ConfigPath
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Mode != "" {
		m, err := ocean.ParseMode(f.Mode)
		if err != nil {
			return fmt.Errorf("-mode: %w", err)
		}
		cfg.Scene.Mode = m.String()
	}
	if f.Windowed {
		cfg.Window.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Window.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Panel {
		cfg.Window.Panel = true
	}
	if f.NoPanel {
		cfg.Window.Panel = false
	}
	if f.Vertex != "" {
		cfg.Shaders.Vertex = f.Vertex
	}
	if f.Fragment != "" {
		cfg.Shaders.Fragment = f.Fragment
	}
	return nil
}
