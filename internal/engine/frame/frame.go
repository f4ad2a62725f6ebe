// Package frame defines the contract between a scene and the renderer: the
// per-frame descriptor a scene produces and the mesh it hands over once.
package frame

// Primitive selects how the index buffer is assembled at draw time.
type Primitive uint8

const (
	Triangles Primitive = iota
	Lines
)

// String returns the primitive name.
func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	default:
		return "unknown"
	}
}

// Context is what the renderer knows about the frame being drawn.
type Context struct {
	Time   float32 // Seconds since the host started presenting
	Width  int     // Drawing surface size in pixels
	Height int
	Aspect float32 // Width / Height
}

// Descriptor is one frame's draw request. The renderer does not retain it
// past the frame it was produced for.
type Descriptor struct {
	Primitive Primitive
	Uniforms  map[string]Uniform
}

// Producer creates a Descriptor for each presented frame.
type Producer interface {
	ComputeFrame(ctx Context) Descriptor
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(ctx Context) Descriptor

// ComputeFrame calls f(ctx).
func (f ProducerFunc) ComputeFrame(ctx Context) Descriptor {
	return f(ctx)
}

// Attribute is one named per-vertex attribute stream.
type Attribute struct {
	Name string
	Size int // Components per vertex
	Data []float32
}

// Mesh is the geometry a renderer uploads once at initialization.
type Mesh struct {
	Attributes []Attribute
	Triangles  []uint32
	Lines      []uint32
}

// VertexCount derives the vertex count from the first attribute.
func (m Mesh) VertexCount() int {
	if len(m.Attributes) == 0 || m.Attributes[0].Size <= 0 {
		return 0
	}
	return len(m.Attributes[0].Data) / m.Attributes[0].Size
}
