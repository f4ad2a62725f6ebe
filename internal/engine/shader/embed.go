package shader

import _ "embed"

// OceanVertexShader is the vertex stage of the ocean program.
//
//go:embed shaders/ocean.vert
var OceanVertexShader string

// OceanFragmentShader is the fragment stage of the ocean program.
//
//go:embed shaders/ocean.frag
var OceanFragmentShader string
