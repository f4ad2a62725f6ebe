// Package shader supplies the GLSL sources the renderer compiles: the
// embedded defaults, or files named in the configuration.
package shader

import (
	"errors"
	"fmt"
	"os"
)

// Version identifies the embedded shader sources.
const Version = "1.0.3"

var errEmptySource = errors.New("empty shader source")

// Sources is a vertex and fragment stage pair.
type Sources struct {
	Vertex   string
	Fragment string
}

// AssetLoadError reports a shader file that could not be read.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("loading shader %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// Default returns the embedded ocean shaders.
func Default() Sources {
	return Sources{
		Vertex:   OceanVertexShader,
		Fragment: OceanFragmentShader,
	}
}

// Load reads the vertex and fragment stages. An empty path selects the
// embedded source for that stage.
func Load(vertexPath, fragmentPath string) (Sources, error) {
	src := Default()

	if vertexPath != "" {
		data, err := readSource(vertexPath)
		if err != nil {
			return Sources{}, err
		}
		src.Vertex = data
	}

	if fragmentPath != "" {
		data, err := readSource(fragmentPath)
		if err != nil {
			return Sources{}, err
		}
		src.Fragment = data
	}

	return src, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &AssetLoadError{Path: path, Err: err}
	}
	if len(data) == 0 {
		return "", &AssetLoadError{Path: path, Err: errEmptySource}
	}
	return string(data), nil
}
