package frame

import "github.com/Faultbox/oceanview/pkg/math"

// Kind is the upload shape of a uniform value.
type Kind uint8

const (
	// KindInfer picks the shape from the number of values; see Resolve.
	KindInfer Kind = iota
	KindFloat
	KindVec2
	KindVec3
	KindVec4
	KindMat4
	KindInt
)

var kindNames = [...]string{
	KindInfer: "infer",
	KindFloat: "float",
	KindVec2:  "vec2",
	KindVec3:  "vec3",
	KindVec4:  "vec4",
	KindMat4:  "mat4",
	KindInt:   "int",
}

// String returns the GLSL-style name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Uniform is a tagged uniform value. Build it with the constructors below.
type Uniform struct {
	Kind   Kind
	Floats []float32
	Int    int32
}

// Float returns a scalar float uniform.
func Float(v float32) Uniform {
	return Uniform{Kind: KindFloat, Floats: []float32{v}}
}

// Int returns an integer uniform.
func Int(v int32) Uniform {
	return Uniform{Kind: KindInt, Int: v}
}

// Vec2 returns a two-component uniform.
func Vec2(v math.Vec2) Uniform {
	return Uniform{Kind: KindVec2, Floats: v.Slice()}
}

// Vec3 returns a three-component uniform.
func Vec3(v math.Vec3) Uniform {
	return Uniform{Kind: KindVec3, Floats: v.Slice()}
}

// Vec4 returns a four-component uniform.
func Vec4(v math.Vec4) Uniform {
	return Uniform{Kind: KindVec4, Floats: v.Slice()}
}

// Mat4 returns a column-major 4x4 matrix uniform.
func Mat4(m math.Mat4) Uniform {
	return Uniform{Kind: KindMat4, Floats: m.Slice()}
}

// Infer returns an untyped uniform whose shape is decided by Resolve.
// Prefer the typed constructors; this exists for producers that only have
// a flat list of numbers.
func Infer(values ...float32) Uniform {
	return Uniform{Kind: KindInfer, Floats: values}
}

// Resolve returns the upload shape. Explicit kinds are returned unchanged.
// Untyped values map by length: 16 is a matrix, 4/3/2 a vector, anything
// else a scalar.
func (u Uniform) Resolve() Kind {
	if u.Kind != KindInfer {
		return u.Kind
	}
	switch len(u.Floats) {
	case 16:
		return KindMat4
	case 4:
		return KindVec4
	case 3:
		return KindVec3
	case 2:
		return KindVec2
	default:
		return KindFloat
	}
}

// Scalar returns the first float component, or 0 when there is none.
func (u Uniform) Scalar() float32 {
	if len(u.Floats) == 0 {
		return 0
	}
	return u.Floats[0]
}

// Components returns exactly n float components, zero-padded.
func (u Uniform) Components(n int) []float32 {
	if len(u.Floats) >= n {
		return u.Floats[:n]
	}
	out := make([]float32, n)
	copy(out, u.Floats)
	return out
}
