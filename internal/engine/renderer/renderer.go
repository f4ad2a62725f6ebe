// Package renderer owns the shader program, the uploaded mesh and the frame
// loop. Each tick it asks a frame.Producer what to draw, uploads the
// uniforms and issues one draw call.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/oceanview/internal/engine/frame"
	"github.com/Faultbox/oceanview/internal/engine/gpu"
	"github.com/Faultbox/oceanview/internal/engine/shader"
)

// maxUint16Vertices is the largest vertex count addressable with 16-bit indices.
const maxUint16Vertices = 1 << 16

// Host presents frames. It calls back once per display refresh with a
// monotonic timestamp in milliseconds.
type Host interface {
	RequestFrame(fn func(timestampMs float64))
	// DisplaySize returns the drawable area in logical (unscaled) units.
	DisplaySize() (width, height int)
	// PixelRatio is the number of framebuffer pixels per logical unit.
	PixelRatio() float64
}

// Options holds renderer configuration.
type Options struct {
	ClearColor [4]float32
	Logger     *zap.Logger
}

// indexBuffer is an uploaded index list.
type indexBuffer struct {
	buf   gpu.Buffer
	count int32
	typ   gpu.IndexType
}

// Renderer handles all draw calls for a single program and mesh.
type Renderer struct {
	dev  gpu.Device
	host Host
	opts Options
	log  *zap.Logger

	state State

	program     gpu.Program
	vao         gpu.VAO
	attribs     []gpu.Buffer
	triangles   *indexBuffer
	lines       *indexBuffer
	vertexCount int32
	uniformLocs map[string]int32

	width  int
	height int

	producer  frame.Producer
	afterDraw func(frame.Context)
	gen       uint64 // Bumped on every Start; stale ticks compare against it
}

// New creates a renderer bound to a device and host. Nothing touches the
// device until Initialize.
func New(dev gpu.Device, host Host, opts Options) *Renderer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		dev:         dev,
		host:        host,
		opts:        opts,
		log:         log,
		uniformLocs: make(map[string]int32),
	}
}

// State returns the current lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// Initialize compiles the program and uploads the mesh. Any failure is
// final: the renderer moves to StateError and will refuse to start.
func (r *Renderer) Initialize(src shader.Sources, mesh frame.Mesh) error {
	if r.state != StateUninitialized {
		return fmt.Errorf("%w: initialize from %s", ErrInvalidState, r.state)
	}
	r.state = StateInitializing

	if err := r.initialize(src, mesh); err != nil {
		r.state = StateError
		r.release()
		return err
	}

	r.state = StateReady
	return nil
}

func (r *Renderer) initialize(src shader.Sources, mesh frame.Mesh) error {
	if r.dev == nil || r.host == nil {
		return ErrContextUnavailable
	}
	if err := r.dev.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrContextUnavailable, err)
	}

	version, name := r.dev.Info()
	r.log.Info("graphics context ready",
		zap.String("version", version),
		zap.String("renderer", name),
	)

	program, err := r.createProgram(src)
	if err != nil {
		return err
	}
	r.program = program
	r.dev.UseProgram(program)

	if err := r.uploadMesh(mesh); err != nil {
		return err
	}

	r.dev.EnableDepthTest()
	c := r.opts.ClearColor
	r.dev.ClearColor(c[0], c[1], c[2], c[3])

	return nil
}

// createProgram compiles both stages and links them.
func (r *Renderer) createProgram(src shader.Sources) (gpu.Program, error) {
	vert, log, ok := r.dev.CompileShader(gpu.StageVertex, src.Vertex)
	if !ok {
		return 0, &ShaderCompileError{Stage: gpu.StageVertex, Log: log}
	}
	defer r.dev.DeleteShader(vert)

	frag, log, ok := r.dev.CompileShader(gpu.StageFragment, src.Fragment)
	if !ok {
		return 0, &ShaderCompileError{Stage: gpu.StageFragment, Log: log}
	}
	defer r.dev.DeleteShader(frag)

	program, log, ok := r.dev.LinkProgram(vert, frag)
	if !ok {
		return 0, &ProgramLinkError{Log: log}
	}

	r.log.Debug("shader program linked", zap.Uint32("program", uint32(program)))
	return program, nil
}

// uploadMesh uploads every attribute and both index lists once.
func (r *Renderer) uploadMesh(mesh frame.Mesh) error {
	vertexCount := mesh.VertexCount()

	typ, err := r.indexType(vertexCount)
	if err != nil {
		return err
	}

	r.vao = r.dev.CreateVertexArray()
	r.dev.BindVertexArray(r.vao)

	for _, attr := range mesh.Attributes {
		buf := r.dev.VertexBuffer(attr.Data)
		r.attribs = append(r.attribs, buf)

		loc := r.dev.AttribLocation(r.program, attr.Name)
		if loc < 0 {
			r.log.Debug("attribute not active in program", zap.String("name", attr.Name))
			continue
		}
		r.dev.VertexAttribPointer(loc, int32(attr.Size))
	}
	r.vertexCount = int32(vertexCount)

	if len(mesh.Triangles) > 0 {
		r.triangles = &indexBuffer{
			buf:   r.dev.IndexBuffer(mesh.Triangles, typ),
			count: int32(len(mesh.Triangles)),
			typ:   typ,
		}
	}
	if len(mesh.Lines) > 0 {
		r.lines = &indexBuffer{
			buf:   r.dev.IndexBuffer(mesh.Lines, typ),
			count: int32(len(mesh.Lines)),
			typ:   typ,
		}
	}

	r.log.Info("mesh uploaded",
		zap.Int("vertices", vertexCount),
		zap.Int("triIndices", len(mesh.Triangles)),
		zap.Int("lineIndices", len(mesh.Lines)),
		zap.Int("indexBytes", typ.Size()),
	)
	return nil
}

// indexType picks 16-bit indices when they can address every vertex and
// falls back to 32-bit indices only if the device supports them.
func (r *Renderer) indexType(vertexCount int) (gpu.IndexType, error) {
	if vertexCount <= maxUint16Vertices {
		return gpu.Uint16, nil
	}
	if !r.dev.HasCapability(gpu.CapUint32Indices) {
		return 0, &MissingCapabilityError{
			Capability: gpu.CapUint32Indices,
			Reason:     fmt.Sprintf("mesh has %d vertices", vertexCount),
		}
	}
	return gpu.Uint32, nil
}

// Start begins the frame loop, pulling one descriptor per presented frame
// from p. It may be called on a Ready or Stopped renderer.
func (r *Renderer) Start(p frame.Producer) error {
	switch {
	case r.state == StateRunning:
		return ErrAlreadyRunning
	case !r.state.canStart():
		return fmt.Errorf("%w: state %s", ErrNotReady, r.state)
	case p == nil:
		return fmt.Errorf("%w: nil frame producer", ErrNotReady)
	}

	r.producer = p
	r.state = StateRunning
	r.gen++
	r.schedule(r.gen)

	r.log.Info("render loop started")
	return nil
}

// Stop halts scheduling. A frame already being drawn completes.
func (r *Renderer) Stop() {
	if r.state != StateRunning {
		return
	}
	r.state = StateStopped
	r.log.Info("render loop stopped")
}

// SetAfterDraw installs a hook that runs after each draw call, before the
// host presents the frame.
func (r *Renderer) SetAfterDraw(fn func(frame.Context)) {
	r.afterDraw = fn
}

func (r *Renderer) schedule(gen uint64) {
	r.host.RequestFrame(func(timestampMs float64) {
		r.tick(gen, timestampMs)
	})
}

// tick draws one frame and requests the next.
func (r *Renderer) tick(gen uint64, timestampMs float64) {
	if r.state != StateRunning || gen != r.gen {
		return
	}

	r.resizeSurface()
	r.dev.Clear()

	ctx := frame.Context{
		Time:   float32(timestampMs * 0.001),
		Width:  r.width,
		Height: r.height,
		Aspect: aspect(r.width, r.height),
	}

	// Hosts that draw their own UI between frames may leave other state bound.
	r.dev.UseProgram(r.program)
	r.dev.BindVertexArray(r.vao)

	desc := r.producer.ComputeFrame(ctx)
	r.applyUniforms(desc.Uniforms)
	r.draw(desc.Primitive)

	if r.afterDraw != nil {
		r.afterDraw(ctx)
	}

	r.schedule(gen)
}

// resizeSurface matches the viewport to the display size scaled by the
// pixel ratio, touching the device only when the size changed.
func (r *Renderer) resizeSurface() {
	w, h := r.host.DisplaySize()
	ratio := r.host.PixelRatio()
	if !(ratio > 0) {
		ratio = 1
	}

	width := int(float64(w) * ratio)
	height := int(float64(h) * ratio)
	if width == r.width && height == r.height {
		return
	}

	r.width = width
	r.height = height
	r.dev.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("surface resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("pixelRatio", ratio),
	)
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// applyUniforms uploads every uniform the program uses. Names the program
// does not declare are skipped.
func (r *Renderer) applyUniforms(uniforms map[string]frame.Uniform) {
	for name, u := range uniforms {
		loc := r.uniformLocation(name)
		if loc < 0 {
			continue
		}

		switch u.Resolve() {
		case frame.KindFloat:
			r.dev.Uniform1f(loc, u.Scalar())
		case frame.KindVec2:
			v := u.Components(2)
			r.dev.Uniform2f(loc, v[0], v[1])
		case frame.KindVec3:
			v := u.Components(3)
			r.dev.Uniform3f(loc, v[0], v[1], v[2])
		case frame.KindVec4:
			v := u.Components(4)
			r.dev.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case frame.KindMat4:
			r.dev.UniformMatrix4fv(loc, u.Components(16))
		case frame.KindInt:
			r.dev.Uniform1i(loc, u.Int)
		}
	}
}

// uniformLocation caches lookups, including misses.
func (r *Renderer) uniformLocation(name string) int32 {
	if loc, ok := r.uniformLocs[name]; ok {
		return loc
	}
	loc := r.dev.UniformLocation(r.program, name)
	r.uniformLocs[name] = loc
	if loc < 0 {
		r.log.Debug("uniform not active in program", zap.String("name", name))
	}
	return loc
}

// draw issues one draw call. Lines fall back to triangles when no line
// indices were uploaded, and a mesh without indices is drawn as a triangle list.
func (r *Renderer) draw(prim frame.Primitive) {
	if prim == frame.Lines && r.lines != nil {
		r.dev.BindIndexBuffer(r.lines.buf)
		r.dev.DrawElements(gpu.Lines, r.lines.count, r.lines.typ)
		return
	}

	if r.triangles != nil {
		r.dev.BindIndexBuffer(r.triangles.buf)
		r.dev.DrawElements(gpu.Triangles, r.triangles.count, r.triangles.typ)
		return
	}

	r.dev.DrawArrays(gpu.Triangles, r.vertexCount)
}

// SurfaceSize returns the drawing surface size in pixels as of the last frame.
func (r *Renderer) SurfaceSize() (int, int) {
	return r.width, r.height
}

// ReadPixels returns the RGBA contents of the surface, bottom row first.
// Call it from the after-draw hook to capture the frame just drawn.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	if r.state != StateRunning && r.state != StateStopped {
		return nil, 0, 0
	}
	return r.dev.ReadPixels(int32(r.width), int32(r.height)), r.width, r.height
}

// Close releases GPU resources. The renderer cannot be restarted afterwards.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.Stop()
	r.release()
	r.state = StateError
}

func (r *Renderer) release() {
	if r.dev == nil {
		return
	}
	for _, ib := range []*indexBuffer{r.triangles, r.lines} {
		if ib != nil {
			r.dev.DeleteBuffer(ib.buf)
		}
	}
	r.triangles, r.lines = nil, nil

	for _, buf := range r.attribs {
		r.dev.DeleteBuffer(buf)
	}
	r.attribs = nil

	if r.vao != 0 {
		r.dev.DeleteVertexArray(r.vao)
		r.vao = 0
	}
	if r.program != 0 {
		r.dev.DeleteProgram(r.program)
		r.program = 0
	}
}
