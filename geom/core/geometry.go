package core

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMalformedGeometry is returned when vertex, normal or index buffers are inconsistent.
var ErrMalformedGeometry = errors.New("core: malformed geometry")

// Geometry is an immutable triangle list. It is safe to share between entities.
type Geometry struct {
	positions []float32
	normals   []float32
	indices   []uint32

	vertices []mgl32.Vec3
}

// NewGeometry validates and copies the flat buffers. positions holds 3 floats per vertex;
// without indices every 3 consecutive vertices form a triangle. normals, when given,
// must match positions in length.
func NewGeometry(positions, normals []float32, indices []uint32) (*Geometry, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d position floats is not a multiple of 3", ErrMalformedGeometry, len(positions))
	}
	if len(normals) != 0 && len(normals) != len(positions) {
		return nil, fmt.Errorf("%w: %d normal floats for %d position floats", ErrMalformedGeometry, len(normals), len(positions))
	}
	vertexCount := len(positions) / 3
	if len(indices) == 0 {
		if vertexCount%3 != 0 {
			return nil, fmt.Errorf("%w: %d vertices do not form whole triangles", ErrMalformedGeometry, vertexCount)
		}
	} else {
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("%w: %d indices do not form whole triangles", ErrMalformedGeometry, len(indices))
		}
		for i, idx := range indices {
			if int(idx) >= vertexCount {
				return nil, fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrMalformedGeometry, idx, i, vertexCount)
			}
		}
	}

	g := &Geometry{
		positions: append([]float32(nil), positions...),
		normals:   append([]float32(nil), normals...),
		indices:   append([]uint32(nil), indices...),
		vertices:  make([]mgl32.Vec3, vertexCount),
	}
	for i := range g.vertices {
		g.vertices[i] = mgl32.Vec3{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}
	return g, nil
}

// TriangleCount returns the number of triangles; zero means no surface.
func (g *Geometry) TriangleCount() int {
	if g == nil {
		return 0
	}
	if len(g.indices) > 0 {
		return len(g.indices) / 3
	}
	return len(g.vertices) / 3
}

func (g *Geometry) Empty() bool {
	return g.TriangleCount() == 0
}

// Triangle returns the model-space corners of triangle i.
func (g *Geometry) Triangle(i int) [3]mgl32.Vec3 {
	if len(g.indices) > 0 {
		return [3]mgl32.Vec3{
			g.vertices[g.indices[i*3]],
			g.vertices[g.indices[i*3+1]],
			g.vertices[g.indices[i*3+2]],
		}
	}
	return [3]mgl32.Vec3{g.vertices[i*3], g.vertices[i*3+1], g.vertices[i*3+2]}
}

// Vertices returns the model-space vertex positions. Callers must not modify the slice.
func (g *Geometry) Vertices() []mgl32.Vec3 {
	if g == nil {
		return nil
	}
	return g.vertices
}

// Positions returns the flat position buffer. Callers must not modify the slice.
func (g *Geometry) Positions() []float32 { return g.positions }

// Normals returns the flat normal buffer, possibly empty.
func (g *Geometry) Normals() []float32 { return g.normals }

// Indices returns the index buffer, possibly empty.
func (g *Geometry) Indices() []uint32 { return g.indices }

// NewBox returns a non-indexed axis-aligned box centered at the origin.
func NewBox(halfExtents mgl32.Vec3) *Geometry {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()
	c := [8]mgl32.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	faces := [12][3]int{
		{4, 5, 6}, {4, 6, 7}, // +Z
		{1, 0, 3}, {1, 3, 2}, // -Z
		{5, 1, 2}, {5, 2, 6}, // +X
		{0, 4, 7}, {0, 7, 3}, // -X
		{7, 6, 2}, {7, 2, 3}, // +Y
		{0, 1, 5}, {0, 5, 4}, // -Y
	}
	positions := make([]float32, 0, len(faces)*9)
	for _, f := range faces {
		for _, idx := range f {
			positions = append(positions, c[idx].X(), c[idx].Y(), c[idx].Z())
		}
	}
	g, err := NewGeometry(positions, nil, nil)
	if err != nil {
		panic(err)
	}
	return g
}

// NewCube returns a unit cube (edge length 1) centered at the origin.
func NewCube() *Geometry {
	return NewBox(mgl32.Vec3{0.5, 0.5, 0.5})
}
