// Package grid builds the tessellated planar grid the ocean surface is drawn on.
package grid

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidDimensions is returned when rows/cols are below 2 or spacing is not positive.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// Grid holds grid geometry ready for GPU upload. It is never mutated after Build.
type Grid struct {
	Rows    int
	Cols    int
	Spacing float32

	Vertices    []float32 // Flat array: x,y,z per vertex, row-major
	TriIndices  []uint32  // Two triangles per cell
	LineIndices []uint32  // Every horizontal and vertical edge once
}

// Build lays out rows x cols vertices on an XZ lattice centered on the origin.
//
// Rows advance along +Z and columns along +X. Each cell is split along the
// (x+1,z)-(x,z+1) diagonal; triangles wind counter-clockwise seen from +Y.
func Build(rows, cols int, spacing float32) (*Grid, error) {
	if rows < 2 || cols < 2 || !(spacing > 0) || math32.IsInf(spacing, 1) {
		return nil, fmt.Errorf("%w: rows=%d cols=%d spacing=%g", ErrInvalidDimensions, rows, cols, spacing)
	}

	g := &Grid{
		Rows:        rows,
		Cols:        cols,
		Spacing:     spacing,
		Vertices:    make([]float32, 0, rows*cols*3),
		TriIndices:  make([]uint32, 0, TriIndexCount(rows, cols)),
		LineIndices: make([]uint32, 0, LineIndexCount(rows, cols)),
	}

	xOffset := float32(cols-1) * spacing / 2
	zOffset := float32(rows-1) * spacing / 2

	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			g.Vertices = append(g.Vertices,
				float32(x)*spacing-xOffset,
				0,
				float32(z)*spacing-zOffset,
			)
		}
	}

	index := func(x, z int) uint32 {
		return uint32(z*cols + x)
	}

	// Horizontal edges, row by row
	for z := 0; z < rows; z++ {
		for x := 0; x < cols-1; x++ {
			g.LineIndices = append(g.LineIndices, index(x, z), index(x+1, z))
		}
	}

	// Vertical edges, column by column
	for x := 0; x < cols; x++ {
		for z := 0; z < rows-1; z++ {
			g.LineIndices = append(g.LineIndices, index(x, z), index(x, z+1))
		}
	}

	for z := 0; z < rows-1; z++ {
		for x := 0; x < cols-1; x++ {
			i0 := index(x, z)
			i1 := index(x+1, z)
			i2 := index(x, z+1)
			i3 := index(x+1, z+1)
			g.TriIndices = append(g.TriIndices,
				i0, i2, i1,
				i1, i2, i3,
			)
		}
	}

	return g, nil
}

// TriIndexCount returns the triangle index count for a rows x cols grid.
func TriIndexCount(rows, cols int) int {
	return 6 * (rows - 1) * (cols - 1)
}

// LineIndexCount returns the wireframe index count for a rows x cols grid.
func LineIndexCount(rows, cols int) int {
	return 2 * (rows*(cols-1) + cols*(rows-1))
}

// VertexCount returns the number of vertices.
func (g *Grid) VertexCount() int {
	return len(g.Vertices) / 3
}

// Vertex returns the position of vertex i.
func (g *Grid) Vertex(i int) [3]float32 {
	return [3]float32{g.Vertices[i*3], g.Vertices[i*3+1], g.Vertices[i*3+2]}
}

// Bounds returns the XZ extent of the grid.
func (g *Grid) Bounds() (minX, maxX, minZ, maxZ float32) {
	halfW := float32(g.Cols-1) * g.Spacing / 2
	halfD := float32(g.Rows-1) * g.Spacing / 2
	return -halfW, halfW, -halfD, halfD
}
