package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/oceanview/internal/ocean"
)

func newScene(t *testing.T) *ocean.Scene {
	t.Helper()
	s := ocean.DefaultSettings()
	s.Rows, s.Cols = 4, 4
	s.Mode = ocean.ModeBaseColor
	scene, err := ocean.New(s)
	require.NoError(t, err)
	return scene
}

func TestHandleKeyModes(t *testing.T) {
	tests := []struct {
		key  string
		want ocean.Mode
	}{
		{"2", ocean.ModeNormals},
		{"N", ocean.ModeNormals},
		{"3", ocean.ModeWireframe},
		{"w", ocean.ModeWireframe},
		{"H", ocean.ModeHeatmap},
		{"1", ocean.ModeBaseColor},
	}

	scene := newScene(t)
	c := New(scene, nil)
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c.HandleKey(tt.key)
			assert.Equal(t, tt.want, scene.Mode())
		})
	}
}

func TestHandleKeyUnbound(t *testing.T) {
	scene := newScene(t)
	c := New(scene, nil)

	assert.Equal(t, ActionNone, c.HandleKey("Q"))
	assert.Equal(t, ActionNone, c.HandleKey(""))
	assert.Equal(t, ocean.ModeBaseColor, scene.Mode())
}

func TestHandleKeyActions(t *testing.T) {
	c := New(newScene(t), nil)

	var shots, quits int
	c.OnScreenshot(func() { shots++ })
	c.OnQuit(func() { quits++ })

	assert.Equal(t, ActionScreenshot, c.HandleKey("F12"))
	assert.Equal(t, ActionQuit, c.HandleKey("escape"))
	assert.Equal(t, ActionModeChanged, c.HandleKey("4"))
	assert.Equal(t, 1, shots)
	assert.Equal(t, 1, quits)
}

func TestHandleKeyWithoutCallbacks(t *testing.T) {
	c := New(newScene(t), nil)
	assert.Equal(t, ActionScreenshot, c.HandleKey(KeyScreenshot))
	assert.Equal(t, ActionQuit, c.HandleKey(KeyQuit))
}

func TestSelectModeRejectsUnknown(t *testing.T) {
	scene := newScene(t)
	c := New(scene, nil)

	err := c.SelectMode(ocean.Mode(42))
	assert.ErrorIs(t, err, ocean.ErrUnknownMode)
	assert.Equal(t, ocean.ModeBaseColor, c.Mode())
}

func TestSliders(t *testing.T) {
	c := New(newScene(t), nil)

	sliders := c.Sliders()
	require.Len(t, sliders, len(ocean.ParamSpecs()))
	assert.Equal(t, "waveHeight", sliders[0].Name)
	assert.InDelta(t, ocean.DefaultParams().WaveHeight, sliders[0].Value, 1e-6)
}

func TestSetParam(t *testing.T) {
	scene := newScene(t)
	c := New(scene, nil)

	require.NoError(t, c.SetParam("waveHeight", 1.25))
	require.NoError(t, c.SetParam("fbmOctaves", 6.9))

	p := scene.Params()
	assert.InDelta(t, 1.25, p.WaveHeight, 1e-6)
	assert.Equal(t, int32(6), p.FBMOctaves)
	assert.InDelta(t, ocean.DefaultParams().WaveScale, p.WaveScale, 1e-6)

	err := c.SetParam("nope", 1)
	assert.ErrorIs(t, err, ErrUnknownParam)
}

func TestResetParams(t *testing.T) {
	scene := newScene(t)
	c := New(scene, nil)

	require.NoError(t, c.SetParam("waveSpeed", 3))
	c.ResetParams()
	assert.Equal(t, ocean.DefaultParams(), scene.Params())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "screenshot", ActionScreenshot.String())
	assert.Equal(t, "none", Action(77).String())
}
