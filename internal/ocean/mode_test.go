package ocean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModes(t *testing.T) {
	list := Modes()
	require.Len(t, list, 4)
	for i, info := range list {
		assert.Equal(t, Mode(i), info.Mode)
		assert.Equal(t, info.Name, info.Mode.String())
	}

	// Callers get a copy.
	list[0].Name = "changed"
	assert.Equal(t, "Base Color", Modes()[0].Name)
}

func TestModeByKey(t *testing.T) {
	tests := []struct {
		key  string
		want Mode
	}{
		{"1", ModeBaseColor},
		{"b", ModeBaseColor},
		{"N", ModeNormals},
		{"3", ModeWireframe},
		{"w", ModeWireframe},
		{"h", ModeHeatmap},
	}
	for _, tt := range tests {
		got, ok := ModeByKey(tt.key)
		assert.True(t, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}

	_, ok := ModeByKey("x")
	assert.False(t, ok)
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"Base Color", "basecolor", "base_color", "0"} {
		m, err := ParseMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, ModeBaseColor, m)
	}

	m, err := ParseMode("wireframe")
	require.NoError(t, err)
	assert.Equal(t, ModeWireframe, m)

	_, err = ParseMode("plasma")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Heatmap", ModeHeatmap.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
	assert.False(t, Mode(7).Valid())
}

func TestParamSpecs(t *testing.T) {
	p := DefaultParams()
	specs := ParamSpecs()
	require.Len(t, specs, 8)

	for _, s := range specs {
		assert.LessOrEqual(t, s.Min, s.Max, s.Name)
		v := s.Get(p)
		assert.GreaterOrEqual(t, v, s.Min, "%s default below range", s.Name)
		assert.LessOrEqual(t, v, s.Max, "%s default above range", s.Name)

		q := p
		s.Set(s.Max).apply(&q)
		assert.Equal(t, s.Max, s.Get(q), s.Name)
	}
}
