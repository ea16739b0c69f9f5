package geometry

import (
	"errors"
	"fmt"
)

// Mesh is a static vertex position array with an optional index list.
// Positions are tightly packed, Components floats per vertex.
type Mesh struct {
	Name       string
	Positions  []float32
	Components int
	Indices    []uint32
}

var ErrInvalidMesh = errors.New("invalid mesh")

// Quad is two triangles sharing the 0-2 diagonal, drawn through an index buffer.
func Quad() *Mesh {
	return &Mesh{
		Name: "quad",
		Positions: []float32{
			-0.5, -0.5, // 0
			0.5, -0.5, // 1
			0.5, 0.5, // 2
			-0.5, 0.5, // 3
		},
		Components: 2,
		Indices: []uint32{
			0, 1, 2,
			2, 3, 0,
		},
	}
}

// Triangle is drawn straight from the vertex buffer.
func Triangle() *Mesh {
	return &Mesh{
		Name: "triangle",
		Positions: []float32{
			-0.5, -0.5,
			0.0, 0.5,
			0.5, -0.5,
		},
		Components: 2,
	}
}

// ByName returns one of the built-in shapes, or loads meshPath when name is "gltf".
func ByName(name, meshPath string) (*Mesh, error) {
	switch name {
	case "", "quad":
		return Quad(), nil
	case "triangle":
		return Triangle(), nil
	case "gltf":
		if meshPath == "" {
			return nil, fmt.Errorf("shape gltf requires a mesh path")
		}
		return LoadGLTF(meshPath)
	default:
		return nil, fmt.Errorf("unknown shape: %s", name)
	}
}

func (m *Mesh) VertexCount() int {
	if m.Components == 0 {
		return 0
	}
	return len(m.Positions) / m.Components
}

func (m *Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// DrawCount is the element count passed to the draw call.
func (m *Mesh) DrawCount() int {
	if m.Indexed() {
		return len(m.Indices)
	}
	return m.VertexCount()
}

// Validate checks that the mesh can be uploaded and drawn as a triangle list.
func (m *Mesh) Validate() error {
	if m.Components != 2 && m.Components != 3 {
		return fmt.Errorf("%w: %d components per vertex", ErrInvalidMesh, m.Components)
	}
	if len(m.Positions) == 0 {
		return fmt.Errorf("%w: no vertices", ErrInvalidMesh)
	}
	if len(m.Positions)%m.Components != 0 {
		return fmt.Errorf("%w: %d floats is not a multiple of %d", ErrInvalidMesh, len(m.Positions), m.Components)
	}
	if m.DrawCount()%3 != 0 {
		return fmt.Errorf("%w: %d elements do not form whole triangles", ErrInvalidMesh, m.DrawCount())
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}
