// Package controls maps user input onto scene operations: keyboard
// shortcuts select visualization modes and slider edits update parameters.
package controls

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/oceanview/internal/ocean"
)

// ErrUnknownParam is returned by SetParam for names with no slider.
var ErrUnknownParam = errors.New("unknown parameter")

// Fixed shortcuts outside the mode bindings.
const (
	KeyScreenshot = "F12"
	KeyQuit       = "Escape"
)

// Action is what a key press resulted in.
type Action uint8

const (
	ActionNone Action = iota
	ActionModeChanged
	ActionScreenshot
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionModeChanged:
		return "mode"
	case ActionScreenshot:
		return "screenshot"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Scene is the part of ocean.Scene the controller drives.
type Scene interface {
	Mode() ocean.Mode
	SetMode(m ocean.Mode) error
	Params() ocean.Params
	SetParams(u ocean.Update)
}

// Slider is a parameter together with its current value.
type Slider struct {
	ocean.ParamSpec
	Value float32
}

// Controller routes input to a Scene.
type Controller struct {
	scene Scene
	log   *zap.Logger

	onScreenshot func()
	onQuit       func()
}

// New creates a controller for scene.
func New(scene Scene, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{scene: scene, log: log}
}

// OnScreenshot sets the callback run when the screenshot key is pressed.
func (c *Controller) OnScreenshot(fn func()) {
	c.onScreenshot = fn
}

// OnQuit sets the callback run when the quit key is pressed.
func (c *Controller) OnQuit(fn func()) {
	c.onQuit = fn
}

// HandleKey acts on a key press. Key names are matched case-insensitively;
// unbound keys are ignored.
func (c *Controller) HandleKey(name string) Action {
	switch {
	case strings.EqualFold(name, KeyScreenshot):
		if c.onScreenshot != nil {
			c.onScreenshot()
		}
		return ActionScreenshot
	case strings.EqualFold(name, KeyQuit):
		if c.onQuit != nil {
			c.onQuit()
		}
		return ActionQuit
	}

	m, ok := ocean.ModeByKey(name)
	if !ok {
		return ActionNone
	}
	if err := c.SelectMode(m); err != nil {
		return ActionNone
	}
	return ActionModeChanged
}

// Mode returns the scene's current mode.
func (c *Controller) Mode() ocean.Mode {
	return c.scene.Mode()
}

// SelectMode switches the scene to m.
func (c *Controller) SelectMode(m ocean.Mode) error {
	if m == c.scene.Mode() {
		return nil
	}
	if err := c.scene.SetMode(m); err != nil {
		c.log.Warn("mode change rejected", zap.Int32("mode", int32(m)), zap.Error(err))
		return err
	}
	c.log.Info("visualization mode changed", zap.Stringer("mode", m))
	return nil
}

// Sliders returns one slider per parameter, in display order.
func (c *Controller) Sliders() []Slider {
	params := c.scene.Params()
	specs := ocean.ParamSpecs()

	sliders := make([]Slider, len(specs))
	for i, spec := range specs {
		sliders[i] = Slider{ParamSpec: spec, Value: spec.Get(params)}
	}
	return sliders
}

// SetParam writes one parameter by name.
func (c *Controller) SetParam(name string, v float32) error {
	for _, spec := range ocean.ParamSpecs() {
		if spec.Name != name {
			continue
		}
		c.scene.SetParams(spec.Set(v))
		c.log.Debug("parameter changed", zap.String("name", name), zap.Float32("value", v))
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// ResetParams restores every parameter to its default.
func (c *Controller) ResetParams() {
	d := ocean.DefaultParams()
	c.scene.SetParams(ocean.Update{
		WaveHeight:    &d.WaveHeight,
		WaveScale:     &d.WaveScale,
		WaveSpeed:     &d.WaveSpeed,
		WaveChop:      &d.WaveChop,
		FBMStrength:   &d.FBMStrength,
		FBMOctaves:    &d.FBMOctaves,
		FBMLacunarity: &d.FBMLacunarity,
		FBMGain:       &d.FBMGain,
	})
	c.log.Info("parameters reset")
}
