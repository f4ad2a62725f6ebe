// Package ui hosts the ocean view inside an ImGui window next to a
// parameter panel.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/oceanview/internal/engine/framebuffer"
)

// Config holds panel window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	PanelWidth float32
	ClearColor [4]float32
}

// Backend wraps the ImGui SDL backend. It implements renderer.Host by
// drawing queued frames into an offscreen framebuffer which is then shown
// as an image beside the panel.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	config  Config
	log     *zap.Logger
	fb      *framebuffer.Framebuffer

	start   time.Time
	pending []func(float64)
	viewW   int
	viewH   int
	panel   *Panel
	onKey   func(name string)
	ctx     context.Context
}

// NewBackend creates the window, the ImGui context and the OpenGL bindings.
func NewBackend(cfg Config, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PanelWidth <= 0 {
		cfg.PanelWidth = 300
	}

	b := &Backend{
		config: cfg,
		log:    log,
		viewW:  max(cfg.Width-int(cfg.PanelWidth), 1),
		viewH:  max(cfg.Height, 1),
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	c := cfg.ClearColor
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], c[3]))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	b.fb, err = framebuffer.New(int32(b.viewW), int32(b.viewH))
	if err != nil {
		return nil, err
	}

	b.log.Info("panel window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Float32("panelWidth", cfg.PanelWidth),
	)
	return b, nil
}

// SetPanel installs the parameter panel drawn each frame.
func (b *Backend) SetPanel(p *Panel) {
	b.panel = p
}

// OnKey registers a handler for shortcut key presses.
func (b *Backend) OnKey(fn func(name string)) {
	b.onKey = fn
}

// RequestFrame schedules fn for the next UI frame.
func (b *Backend) RequestFrame(fn func(timestampMs float64)) {
	b.pending = append(b.pending, fn)
}

// DisplaySize returns the ocean view area in logical units.
func (b *Backend) DisplaySize() (int, int) {
	return b.viewW, b.viewH
}

// PixelRatio returns the framebuffer scale reported by ImGui.
func (b *Backend) PixelRatio() float64 {
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	if scale.X <= 0 {
		return 1
	}
	return float64(scale.X)
}

// RequestClose asks the backend loop to exit after the current frame.
func (b *Backend) RequestClose() {
	b.backend.SetShouldClose(true)
}

// Run drives the UI loop until the window closes or ctx is cancelled.
func (b *Backend) Run(ctx context.Context) error {
	b.ctx = ctx
	b.start = time.Now()
	b.backend.Run(b.render)
	return nil
}

func (b *Backend) render() {
	if b.ctx != nil && b.ctx.Err() != nil {
		b.log.Info("shutdown requested", zap.Error(b.ctx.Err()))
		b.backend.SetShouldClose(true)
		return
	}

	if b.onKey != nil && !imgui.IsAnyItemActive() {
		for _, name := range pressedShortcuts() {
			b.onKey(name)
		}
	}

	b.drawOcean()

	viewport := imgui.MainViewport()
	pos := viewport.WorkPos()
	size := viewport.WorkSize()
	viewWidth := size.X - b.config.PanelWidth

	b.showOcean(pos, imgui.NewVec2(viewWidth, size.Y))
	if b.panel != nil {
		b.panel.Draw(imgui.NewVec2(pos.X+viewWidth, pos.Y), imgui.NewVec2(b.config.PanelWidth, size.Y))
	}
}

// drawOcean runs the queued frame callbacks with the offscreen target bound.
func (b *Backend) drawOcean() {
	if len(b.pending) == 0 {
		return
	}

	ratio := b.PixelRatio()
	b.fb.Resize(int32(float64(b.viewW)*ratio), int32(float64(b.viewH)*ratio))

	callbacks := b.pending
	b.pending = nil

	end := b.fb.Begin()
	ts := float64(time.Since(b.start).Microseconds()) / 1000
	for _, fn := range callbacks {
		fn(ts)
	}
	end()
}

// showOcean displays the offscreen texture and records the area it fills,
// which becomes the display size for the next frame.
func (b *Backend) showOcean(pos, size imgui.Vec2) {
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoBringToFrontOnFocus

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)
	if imgui.BeginV("Ocean", nil, flags) {
		avail := imgui.ContentRegionAvail()
		b.viewW = max(int(avail.X), 1)
		b.viewH = max(int(avail.Y), 1)

		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(b.fb.ColorTexture()))
		c := b.config.ClearColor
		imgui.ImageWithBgV(
			*texRef,
			avail,
			imgui.NewVec2(0, 1), // UV flipped
			imgui.NewVec2(1, 0),
			imgui.NewVec4(c[0], c[1], c[2], c[3]),
			imgui.NewVec4(1, 1, 1, 1),
		)
	}
	imgui.End()
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Close releases the offscreen target.
func (b *Backend) Close() {
	b.log.Info("closing panel window")
	if b.fb != nil {
		b.fb.Destroy()
	}
}
