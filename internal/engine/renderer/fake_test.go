package renderer

import (
	"fmt"

	"github.com/Faultbox/oceanview/internal/engine/gpu"
)

// fakeDevice records the calls the renderer makes.
type fakeDevice struct {
	initErr      error
	failStage    map[gpu.Stage]string
	linkLog      string
	caps         map[gpu.Capability]bool
	uniforms     map[string]int32
	attribs      map[string]int32
	nextHandle   uint32
	deleted      int
	viewports    [][4]int32
	clears       int
	indexTypes   []gpu.IndexType
	draws        []drawCall
	uniformCalls []uniformCall
	locLookups   map[string]int
}

type drawCall struct {
	prim    gpu.Primitive
	count   int32
	typ     gpu.IndexType
	indexed bool
}

type uniformCall struct {
	fn     string
	loc    int32
	values []float32
	i      int32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		failStage:  make(map[gpu.Stage]string),
		caps:       make(map[gpu.Capability]bool),
		uniforms:   make(map[string]int32),
		attribs:    map[string]int32{"position": 0},
		locLookups: make(map[string]int),
	}
}

func (d *fakeDevice) handle() uint32 {
	d.nextHandle++
	return d.nextHandle
}

func (d *fakeDevice) Init() error { return d.initErr }
func (d *fakeDevice) Info() (string, string) { return "4.1 fake", "fake" }
func (d *fakeDevice) HasCapability(c gpu.Capability) bool { return d.caps[c] }

func (d *fakeDevice) CompileShader(stage gpu.Stage, _ string) (gpu.Shader, string, bool) {
	if log, ok := d.failStage[stage]; ok {
		return 0, log, false
	}
	return gpu.Shader(d.handle()), "", true
}

func (d *fakeDevice) DeleteShader(gpu.Shader) { d.deleted++ }

func (d *fakeDevice) LinkProgram(_, _ gpu.Shader) (gpu.Program, string, bool) {
	if d.linkLog != "" {
		return 0, d.linkLog, false
	}
	return gpu.Program(d.handle()), "", true
}

func (d *fakeDevice) UseProgram(gpu.Program)    {}
func (d *fakeDevice) DeleteProgram(gpu.Program) { d.deleted++ }

func (d *fakeDevice) AttribLocation(_ gpu.Program, name string) int32 {
	if loc, ok := d.attribs[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) UniformLocation(_ gpu.Program, name string) int32 {
	d.locLookups[name]++
	if loc, ok := d.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) CreateVertexArray() gpu.VAO { return gpu.VAO(d.handle()) }
func (d *fakeDevice) BindVertexArray(gpu.VAO)    {}
func (d *fakeDevice) DeleteVertexArray(gpu.VAO) { d.deleted++ }

func (d *fakeDevice) VertexBuffer([]float32) gpu.Buffer { return gpu.Buffer(d.handle()) }

func (d *fakeDevice) IndexBuffer(_ []uint32, typ gpu.IndexType) gpu.Buffer {
	d.indexTypes = append(d.indexTypes, typ)
	return gpu.Buffer(d.handle())
}

func (d *fakeDevice) BindIndexBuffer(gpu.Buffer)        {}
func (d *fakeDevice) DeleteBuffer(gpu.Buffer) { d.deleted++ }
func (d *fakeDevice) VertexAttribPointer(int32, int32) {}

func (d *fakeDevice) Uniform1f(loc int32, v float32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{fn: "1f", loc: loc, values: []float32{v}})
}

func (d *fakeDevice) Uniform2f(loc int32, x, y float32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{fn: "2f", loc: loc, values: []float32{x, y}})
}

func (d *fakeDevice) Uniform3f(loc int32, x, y, z float32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{fn: "3f", loc: loc, values: []float32{x, y, z}})
}

func (d *fakeDevice) Uniform4f(loc int32, x, y, z, w float32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{fn: "4f", loc: loc, values: []float32{x, y, z, w}})
}

func (d *fakeDevice) Uniform1i(loc int32, v int32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{fn: "1i", loc: loc, i: v})
}

func (d *fakeDevice) UniformMatrix4fv(loc int32, m []float32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{fn: "mat4", loc: loc, values: append([]float32(nil), m...)})
}

func (d *fakeDevice) EnableDepthTest()                  {}
func (d *fakeDevice) ClearColor(_, _, _, _ float32)     {}
func (d *fakeDevice) Clear() { d.clears++ }
func (d *fakeDevice) Viewport(x, y, w, h int32) { d.viewports = append(d.viewports, [4]int32{x, y, w, h}) }

func (d *fakeDevice) DrawElements(prim gpu.Primitive, count int32, typ gpu.IndexType) {
	d.draws = append(d.draws, drawCall{prim: prim, count: count, typ: typ, indexed: true})
}

func (d *fakeDevice) DrawArrays(prim gpu.Primitive, count int32) {
	d.draws = append(d.draws, drawCall{prim: prim, count: count})
}

func (d *fakeDevice) ReadPixels(w, h int32) []byte {
	return make([]byte, int(w)*int(h)*4)
}

// callFor returns the upload recorded for a uniform location.
func (d *fakeDevice) callFor(loc int32) (uniformCall, error) {
	for i := len(d.uniformCalls) - 1; i >= 0; i-- {
		if d.uniformCalls[i].loc == loc {
			return d.uniformCalls[i], nil
		}
	}
	return uniformCall{}, fmt.Errorf("no upload for location %d", loc)
}

var _ gpu.Device = (*fakeDevice)(nil)

// manualHost queues frame callbacks until the test fires them.
type manualHost struct {
	width, height int
	ratio         float64
	pending       []func(float64)
}

func (h *manualHost) RequestFrame(fn func(float64)) {
	h.pending = append(h.pending, fn)
}

func (h *manualHost) DisplaySize() (int, int) { return h.width, h.height }
func (h *manualHost) PixelRatio() float64 { return h.ratio }

// fire runs the callbacks queued so far, passing ts.
func (h *manualHost) fire(ts float64) {
	pending := h.pending
	h.pending = nil
	for _, fn := range pending {
		fn(ts)
	}
}
