// Package opengl implements gpu.Device on OpenGL 4.1 core profile.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/oceanview/internal/engine/gpu"
)

// Device implements gpu.Device with go-gl.
type Device struct{}

// New returns an OpenGL device. Init must be called once a context is current.
func New() *Device {
	return &Device{}
}

// Init loads OpenGL function pointers.
func (*Device) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init: %w", err)
	}
	return nil
}

// Info returns GL_VERSION and GL_RENDERER.
func (*Device) Info() (string, string) {
	return gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER))
}

// HasCapability reports optional features. 32-bit indices are core in
// desktop OpenGL.
func (*Device) HasCapability(c gpu.Capability) bool {
	switch c {
	case gpu.CapUint32Indices:
		return true
	default:
		return false
	}
}

// CompileShader compiles a single shader of the given stage.
func (*Device) CompileShader(stage gpu.Stage, source string) (gpu.Shader, string, bool) {
	typ := uint32(gl.VERTEX_SHADER)
	if stage == gpu.StageFragment {
		typ = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(typ)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, log, false
	}

	return gpu.Shader(shader), "", true
}

// DeleteShader releases a shader object.
func (*Device) DeleteShader(s gpu.Shader) {
	gl.DeleteShader(uint32(s))
}

// LinkProgram links a vertex and fragment shader into a program.
func (*Device) LinkProgram(vertex, fragment gpu.Shader) (gpu.Program, string, bool) {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, log, false
	}

	return gpu.Program(program), "", true
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

// UseProgram binds p for subsequent uniform and draw calls.
func (*Device) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

// DeleteProgram releases a program object.
func (*Device) DeleteProgram(p gpu.Program) {
	gl.DeleteProgram(uint32(p))
}

// AttribLocation returns -1 for inactive or unknown attributes.
func (*Device) AttribLocation(p gpu.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

// UniformLocation returns -1 for inactive or unknown uniforms.
func (*Device) UniformLocation(p gpu.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// CreateVertexArray creates and binds a vertex array object.
func (*Device) CreateVertexArray() gpu.VAO {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	return gpu.VAO(vao)
}

// BindVertexArray binds v.
func (*Device) BindVertexArray(v gpu.VAO) {
	gl.BindVertexArray(uint32(v))
}

// DeleteVertexArray releases v.
func (*Device) DeleteVertexArray(v gpu.VAO) {
	vao := uint32(v)
	gl.DeleteVertexArrays(1, &vao)
}

// VertexBuffer uploads vertex data with STATIC_DRAW.
func (*Device) VertexBuffer(data []float32) gpu.Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}
	return gpu.Buffer(vbo)
}

// IndexBuffer uploads index data with STATIC_DRAW, narrowing to 16 bits when asked.
func (*Device) IndexBuffer(data []uint32, typ gpu.IndexType) gpu.Buffer {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	if len(data) == 0 {
		return gpu.Buffer(ebo)
	}

	if typ == gpu.Uint16 {
		narrow := make([]uint16, len(data))
		for i, v := range data {
			narrow[i] = uint16(v)
		}
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(narrow)*2, unsafe.Pointer(&narrow[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}
	return gpu.Buffer(ebo)
}

// BindIndexBuffer binds b as the element array buffer.
func (*Device) BindIndexBuffer(b gpu.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
}

// DeleteBuffer releases b.
func (*Device) DeleteBuffer(b gpu.Buffer) {
	buf := uint32(b)
	gl.DeleteBuffers(1, &buf)
}

// VertexAttribPointer describes the bound vertex buffer as tightly packed floats.
func (*Device) VertexAttribPointer(loc int32, size int32) {
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, false, 0, 0)
}

func (*Device) Uniform1f(loc int32, v float32)          { gl.Uniform1f(loc, v) }
func (*Device) Uniform2f(loc int32, x, y float32)       { gl.Uniform2f(loc, x, y) }
func (*Device) Uniform3f(loc int32, x, y, z float32)    { gl.Uniform3f(loc, x, y, z) }
func (*Device) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }
func (*Device) Uniform1i(loc int32, v int32)            { gl.Uniform1i(loc, v) }

// UniformMatrix4fv uploads a column-major matrix.
func (*Device) UniformMatrix4fv(loc int32, m []float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// EnableDepthTest turns on LESS depth testing.
func (*Device) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

func (*Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (*Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

// Clear clears colour and depth.
func (*Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawElements draws from the bound index buffer.
func (*Device) DrawElements(prim gpu.Primitive, count int32, typ gpu.IndexType) {
	gl.DrawElementsWithOffset(glPrimitive(prim), count, glIndexType(typ), 0)
}

// DrawArrays draws count vertices in order.
func (*Device) DrawArrays(prim gpu.Primitive, count int32) {
	gl.DrawArrays(glPrimitive(prim), 0, count)
}

// ReadPixels reads the back buffer as RGBA.
func (*Device) ReadPixels(width, height int32) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}

func glPrimitive(p gpu.Primitive) uint32 {
	if p == gpu.Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

func glIndexType(t gpu.IndexType) uint32 {
	if t == gpu.Uint32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}

var _ gpu.Device = (*Device)(nil)
