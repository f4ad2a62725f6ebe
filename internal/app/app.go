// Package app wires the scene, renderer and host window together.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/oceanview/internal/config"
	"github.com/Faultbox/oceanview/internal/controls"
	"github.com/Faultbox/oceanview/internal/engine/debug"
	"github.com/Faultbox/oceanview/internal/engine/frame"
	"github.com/Faultbox/oceanview/internal/engine/gpu/opengl"
	"github.com/Faultbox/oceanview/internal/engine/renderer"
	"github.com/Faultbox/oceanview/internal/engine/shader"
	"github.com/Faultbox/oceanview/internal/engine/ui"
	"github.com/Faultbox/oceanview/internal/engine/window"
	"github.com/Faultbox/oceanview/internal/logger"
	"github.com/Faultbox/oceanview/internal/ocean"
)

// Version is the application release.
const Version = "1.0.3"

// Host is a window that presents renderer frames and forwards key presses.
type Host interface {
	renderer.Host
	Run(ctx context.Context) error
	OnKey(fn func(name string))
	RequestClose()
	Close()
}

// App is the running ocean viewer.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	scene    *ocean.Scene
	ctrl     *controls.Controller
	host     Host
	panel    *ui.Panel
	renderer *renderer.Renderer
	shots    *debug.ScreenshotCapture
}

// New builds the scene, opens the window and initializes the renderer.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		log:   logger.Named("app"),
		shots: debug.NewScreenshotCapture(cfg.Screenshots.Dir, "ocean"),
	}

	a.log.Info("initializing",
		zap.String("version", Version),
		zap.String("shaderVersion", shader.Version),
		zap.Bool("panel", cfg.Window.Panel),
	)

	settings, err := cfg.Scene.Settings()
	if err != nil {
		return nil, err
	}
	settings.Logger = logger.Named("scene")

	a.scene, err = ocean.New(settings)
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}

	src, err := shader.Load(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		return nil, err
	}

	mesh, err := a.scene.RenderMesh()
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}

	a.ctrl = controls.New(a.scene, logger.Named("controls"))
	a.ctrl.OnScreenshot(a.shots.Request)

	// The window must exist before the renderer: it owns the GL context.
	if err := a.openHost(); err != nil {
		return nil, err
	}
	a.ctrl.OnQuit(a.host.RequestClose)
	a.host.OnKey(func(name string) {
		a.ctrl.HandleKey(name)
	})

	a.renderer = renderer.New(opengl.New(), a.host, renderer.Options{
		ClearColor: cfg.Render.ClearColor,
		Logger:     logger.Named("renderer"),
	})
	if err := a.renderer.Initialize(src, mesh); err != nil {
		a.host.Close()
		return nil, fmt.Errorf("initialize renderer: %w", err)
	}
	a.renderer.SetAfterDraw(a.afterDraw)

	a.log.Info("initialized successfully")
	return a, nil
}

func (a *App) openHost() error {
	title := Title(a.cfg)

	if a.cfg.Window.Panel {
		b, err := ui.NewBackend(ui.Config{
			Title:      title,
			Width:      a.cfg.Window.Width,
			Height:     a.cfg.Window.Height,
			PanelWidth: a.cfg.Window.PanelWidth,
			ClearColor: a.cfg.Render.ClearColor,
		}, logger.Named("ui"))
		if err != nil {
			return fmt.Errorf("failed to create panel window: %w", err)
		}
		a.panel = ui.NewPanel(a.ctrl, "Ocean "+Version)
		b.SetPanel(a.panel)
		a.host = b
		return nil
	}

	w, err := window.New(window.Config{
		Title:      title,
		Width:      a.cfg.Window.Width,
		Height:     a.cfg.Window.Height,
		Fullscreen: a.cfg.Window.Fullscreen,
		VSync:      a.cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	a.host = w
	return nil
}

// Run starts the render loop and blocks until the window closes or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.renderer.Start(a.scene); err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}
	defer a.renderer.Stop()

	a.log.Info("running", zap.Stringer("mode", a.scene.Mode()))
	return a.host.Run(ctx)
}

// afterDraw saves a screenshot of the frame just drawn when one was requested.
func (a *App) afterDraw(frame.Context) {
	if !a.shots.TakeRequest() {
		return
	}

	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, width, height, a.scene.Mode().String())
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		a.setMessage("Screenshot failed: " + err.Error())
		return
	}

	a.log.Info("screenshot saved", zap.String("path", path))
	a.setMessage("Saved " + path)
}

func (a *App) setMessage(msg string) {
	if a.panel != nil {
		a.panel.SetMessage(msg)
	}
}

// Title is the window title including the release.
func Title(cfg *config.Config) string {
	return fmt.Sprintf("%s v%s", cfg.Window.Title, Version)
}

// Close releases the renderer and the window, in that order.
func (a *App) Close() {
	a.log.Info("closing")
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.host != nil {
		a.host.Close()
	}
}
