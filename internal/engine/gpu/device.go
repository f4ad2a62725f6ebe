// Package gpu is the thin graphics-API layer the renderer drives. Device
// mirrors the handful of OpenGL entry points the renderer needs so that the
// renderer can be exercised without a live context.
package gpu

// Stage identifies a shader stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

// String returns the stage name used in diagnostics.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Primitive is the assembly mode for a draw call.
type Primitive uint8

const (
	Triangles Primitive = iota
	Lines
)

// IndexType is the element width of an index buffer.
type IndexType uint8

const (
	Uint16 IndexType = iota
	Uint32
)

// Size returns the element size in bytes.
func (t IndexType) Size() int {
	if t == Uint32 {
		return 4
	}
	return 2
}

// Capability names an optional device feature.
type Capability string

// CapUint32Indices allows index buffers with 32-bit elements.
const CapUint32Indices Capability = "OES_element_index_uint"

// Handles are opaque object names; zero is never a valid object.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
	VAO     uint32
)

// Device is the graphics API as seen by the renderer. All methods must be
// called from the thread that owns the context.
type Device interface {
	// Init loads the API entry points for the current context.
	Init() error
	// Info returns the API version and renderer strings.
	Info() (version, renderer string)
	HasCapability(c Capability) bool

	// CompileShader returns the compiler log and ok=false on failure; the
	// shader object is already released in that case.
	CompileShader(stage Stage, source string) (s Shader, log string, ok bool)
	DeleteShader(s Shader)
	// LinkProgram returns the linker log and ok=false on failure.
	LinkProgram(vertex, fragment Shader) (p Program, log string, ok bool)
	UseProgram(p Program)
	DeleteProgram(p Program)
	AttribLocation(p Program, name string) int32
	UniformLocation(p Program, name string) int32

	CreateVertexArray() VAO
	BindVertexArray(v VAO)
	DeleteVertexArray(v VAO)
	// VertexBuffer uploads static vertex data and leaves it bound.
	VertexBuffer(data []float32) Buffer
	// IndexBuffer uploads static index data (already narrowed to typ) and leaves it bound.
	IndexBuffer(data []uint32, typ IndexType) Buffer
	BindIndexBuffer(b Buffer)
	DeleteBuffer(b Buffer)
	VertexAttribPointer(loc int32, size int32)

	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, x, y float32)
	Uniform3f(loc int32, x, y, z float32)
	Uniform4f(loc int32, x, y, z, w float32)
	Uniform1i(loc int32, v int32)
	UniformMatrix4fv(loc int32, m []float32)

	EnableDepthTest()
	ClearColor(r, g, b, a float32)
	Viewport(x, y, width, height int32)
	Clear()
	DrawElements(prim Primitive, count int32, typ IndexType)
	DrawArrays(prim Primitive, count int32)
	// ReadPixels returns the RGBA contents of the default framebuffer,
	// bottom row first.
	ReadPixels(width, height int32) []byte
}
