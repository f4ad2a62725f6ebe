// Package window handles SDL2 window and OpenGL context creation and drives
// the per-frame loop for the plain (panel-less) view.
package window

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/oceanview/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// fpsInterval is how often the measured frame rate is logged.
const fpsInterval = 5 * time.Second

// idleDelay throttles the loop while no frame is requested.
const idleDelay = 16 * time.Millisecond

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and its OpenGL context. It implements
// renderer.Host: frame callbacks queued with RequestFrame run once per
// loop iteration, right before the buffers are swapped.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	input     *input.Input
	log       *zap.Logger

	start   time.Time
	pending []func(float64)
	onKey   func(name string)
	closing bool

	frames   int
	fpsStart time.Time
}

// New creates a new window with OpenGL context.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Window{
		config: cfg,
		input:  input.New(),
		log:    log,
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// RequestFrame schedules fn for the next presented frame.
func (w *Window) RequestFrame(fn func(timestampMs float64)) {
	w.pending = append(w.pending, fn)
}

// DisplaySize returns the window size in logical units.
func (w *Window) DisplaySize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// PixelRatio returns drawable pixels per logical unit.
func (w *Window) PixelRatio() float64 {
	width, _ := w.sdlWindow.GetSize()
	drawable, _ := w.sdlWindow.GLGetDrawableSize()
	if width <= 0 || drawable <= 0 {
		return 1
	}
	return float64(drawable) / float64(width)
}

// OnKey registers a handler for fresh key presses.
func (w *Window) OnKey(fn func(name string)) {
	w.onKey = fn
}

// RequestClose makes Run return after the current frame.
func (w *Window) RequestClose() {
	w.closing = true
}

// Run pumps events and frame callbacks until the window is closed or ctx
// is cancelled. It must be called from the main thread.
func (w *Window) Run(ctx context.Context) error {
	w.start = time.Now()
	w.fpsStart = w.start

	for !w.closing {
		select {
		case <-ctx.Done():
			w.log.Info("shutdown requested", zap.Error(ctx.Err()))
			return nil
		default:
		}

		if w.input.Update() {
			w.log.Info("window closed")
			return nil
		}
		if w.onKey != nil {
			for _, name := range w.input.KeyPresses() {
				w.onKey(name)
			}
		}

		if !w.presentFrame() {
			sdl.Delay(uint32(idleDelay / time.Millisecond))
		}
	}

	return nil
}

// presentFrame runs queued frame callbacks and swaps buffers. It reports
// false when nothing was drawn.
func (w *Window) presentFrame() bool {
	if len(w.pending) == 0 {
		return false
	}

	callbacks := w.pending
	w.pending = nil

	ts := float64(time.Since(w.start).Microseconds()) / 1000
	for _, fn := range callbacks {
		fn(ts)
	}

	w.sdlWindow.GLSwap()
	w.countFrame()
	return true
}

func (w *Window) countFrame() {
	w.frames++
	elapsed := time.Since(w.fpsStart)
	if elapsed < fpsInterval {
		return
	}
	w.log.Debug("frame rate",
		zap.Float64("fps", float64(w.frames)/elapsed.Seconds()),
		zap.Int("frames", w.frames),
	)
	w.frames = 0
	w.fpsStart = time.Now()
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
