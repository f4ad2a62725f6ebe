// Package camera provides the fixed look-at camera the ocean scene is viewed through.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/oceanview/pkg/math"
)

// Projection defaults.
const (
	DefaultFovY = 60.0 // Degrees, vertical
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// Camera looks from Eye at Target. It has no controls; the scene builds it
// once and derives matrices from it every frame.
type Camera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	FovY float32 // Radians
	Near float32
	Far  float32
}

// New creates a camera with the default perspective settings.
func New(eye, target, up math.Vec3) Camera {
	return Camera{
		Eye:    eye,
		Target: target,
		Up:     up,
		FovY:   math.Radians(DefaultFovY),
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection for the given aspect.
// Non-positive or NaN aspects fall back to 1.
func (c Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	if !(aspect > 0) || math32.IsInf(aspect, 1) {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Valid reports whether the camera can produce a finite view matrix: the eye
// and target differ and the up vector is not parallel to the view direction.
func (c Camera) Valid() bool {
	f := c.Target.Sub(c.Eye)
	if f.Length() == 0 {
		return false
	}
	return f.Cross(c.Up).Length() > 1e-6
}
