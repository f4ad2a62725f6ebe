// Package ocean holds the CPU-side state of the ocean demo and turns it into
// a frame descriptor every tick. It never talks to the graphics API.
package ocean

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/oceanview/internal/engine/camera"
	"github.com/Faultbox/oceanview/internal/engine/frame"
	"github.com/Faultbox/oceanview/internal/engine/grid"
	"github.com/Faultbox/oceanview/pkg/math"
)

// Uniform and attribute names shared with the shader sources.
const (
	AttribPosition = "position"

	UniformProjection    = "projection"
	UniformView          = "view"
	UniformTime          = "time"
	UniformWaveHeight    = "waveHeight"
	UniformWaveScale     = "waveScale"
	UniformWaveSpeed     = "waveSpeed"
	UniformWaveChop      = "waveChop"
	UniformFBMStrength   = "fbmStrength"
	UniformFBMOctaves    = "fbmOctaves"
	UniformFBMLacunarity = "fbmLacunarity"
	UniformFBMGain       = "fbmGain"
	UniformMode          = "mode"
)

// Settings configure a Scene.
type Settings struct {
	Rows    int
	Cols    int
	Spacing float32
	Mode    Mode
	Params  Params
	Camera  camera.Camera
	Logger  *zap.Logger
}

// DefaultSettings returns a 120x120 grid viewed from (0, 6, 12).
func DefaultSettings() Settings {
	return Settings{
		Rows:    120,
		Cols:    120,
		Spacing: 0.16,
		Mode:    ModeWireframe,
		Params:  DefaultParams(),
		Camera:  camera.New(math.Vec3{Y: 6, Z: 12}, math.Vec3{}, math.Vec3{Y: 1}),
	}
}

// Scene is the ocean surface's simulation and view state.
type Scene struct {
	rows    int
	cols    int
	spacing float32

	mode   Mode
	params Params
	camera camera.Camera
	log    *zap.Logger

	mesh *grid.Grid
}

// New validates the settings and creates a scene. The grid is built on the
// first Mesh call.
func New(s Settings) (*Scene, error) {
	if !s.Mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int32(s.Mode))
	}
	if s.Rows < 2 || s.Cols < 2 || !(s.Spacing > 0) {
		return nil, fmt.Errorf("%w: rows=%d cols=%d spacing=%g", grid.ErrInvalidDimensions, s.Rows, s.Cols, s.Spacing)
	}
	if !s.Camera.Valid() {
		return nil, fmt.Errorf("camera: eye %v cannot look at %v with up %v", s.Camera.Eye, s.Camera.Target, s.Camera.Up)
	}

	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Scene{
		rows:    s.Rows,
		cols:    s.Cols,
		spacing: s.Spacing,
		mode:    s.Mode,
		params:  s.Params,
		camera:  s.Camera,
		log:     log,
	}, nil
}

// Mesh returns the scene's grid, building it on first use. Every call
// returns the same instance.
func (s *Scene) Mesh() (*grid.Grid, error) {
	if s.mesh != nil {
		return s.mesh, nil
	}

	g, err := grid.Build(s.rows, s.cols, s.spacing)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	s.mesh = g

	minX, maxX, minZ, maxZ := g.Bounds()
	s.log.Debug("grid built",
		zap.Int("rows", g.Rows),
		zap.Int("cols", g.Cols),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("triIndices", len(g.TriIndices)),
		zap.Int("lineIndices", len(g.LineIndices)),
		zap.Float32s("boundsXZ", []float32{minX, maxX, minZ, maxZ}),
	)
	return g, nil
}

// RenderMesh returns the grid in the form the renderer uploads.
func (s *Scene) RenderMesh() (frame.Mesh, error) {
	g, err := s.Mesh()
	if err != nil {
		return frame.Mesh{}, err
	}
	return frame.Mesh{
		Attributes: []frame.Attribute{
			{Name: AttribPosition, Size: 3, Data: g.Vertices},
		},
		Triangles: g.TriIndices,
		Lines:     g.LineIndices,
	}, nil
}

// Mode returns the current visualization mode.
func (s *Scene) Mode() Mode {
	return s.mode
}

// SetMode switches the visualization mode. Unknown modes are rejected and
// leave the current mode in place.
func (s *Scene) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int32(m))
	}
	if m != s.mode {
		s.log.Debug("mode changed", zap.Stringer("from", s.mode), zap.Stringer("to", m))
	}
	s.mode = m
	return nil
}

// Params returns a copy of the current parameters.
func (s *Scene) Params() Params {
	return s.params
}

// SetParams merges a sparse update into the current parameters.
func (s *Scene) SetParams(u Update) {
	u.apply(&s.params)
}

// SetParamValues merges loosely typed values keyed by uniform name, e.g.
// {"waveHeight": 0.3}. Unknown keys and non-numeric values are ignored so
// that callers may always pass partial or mixed updates.
func (s *Scene) SetParamValues(values map[string]any) {
	for name, raw := range values {
		spec, ok := paramSpec(name)
		if !ok {
			continue
		}
		v, ok := numeric(raw)
		if !ok {
			continue
		}
		spec.Set(v).apply(&s.params)
	}
}

// Camera returns the scene camera.
func (s *Scene) Camera() camera.Camera {
	return s.camera
}

// ComputeFrame implements frame.Producer. Projection and view are rebuilt
// on every call since the aspect ratio changes on resize.
func (s *Scene) ComputeFrame(ctx frame.Context) frame.Descriptor {
	prim := frame.Triangles
	if s.mode == ModeWireframe {
		prim = frame.Lines
	}

	p := s.params
	return frame.Descriptor{
		Primitive: prim,
		Uniforms: map[string]frame.Uniform{
			UniformProjection:    frame.Mat4(s.camera.ProjectionMatrix(ctx.Aspect)),
			UniformView:          frame.Mat4(s.camera.ViewMatrix()),
			UniformTime:          frame.Float(ctx.Time),
			UniformWaveHeight:    frame.Float(p.WaveHeight),
			UniformWaveScale:     frame.Float(p.WaveScale),
			UniformWaveSpeed:     frame.Float(p.WaveSpeed),
			UniformWaveChop:      frame.Float(p.WaveChop),
			UniformFBMStrength:   frame.Float(p.FBMStrength),
			UniformFBMOctaves:    frame.Int(p.FBMOctaves),
			UniformFBMLacunarity: frame.Float(p.FBMLacunarity),
			UniformFBMGain:       frame.Float(p.FBMGain),
			UniformMode:          frame.Int(int32(s.mode)),
		},
	}
}
