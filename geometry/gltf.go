package geometry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads the first primitive of the first mesh in a .gltf or .glb file.
// Only triangle lists are accepted; the result has 3 components per vertex.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gltf %s: %w", path, err)
	}
	m, err := meshFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

func meshFromDocument(doc *gltf.Document) (*Mesh, error) {
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("%w: document has no mesh primitives", ErrInvalidMesh)
	}
	gm := doc.Meshes[0]
	prim := gm.Primitives[0]
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("%w: primitive mode %v is not a triangle list", ErrInvalidMesh, prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("%w: primitive has no POSITION attribute", ErrInvalidMesh)
	}
	posAcc, err := accessor(doc, posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, posAcc, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	m := &Mesh{
		Name:       gm.Name,
		Positions:  make([]float32, 0, len(positions)*3),
		Components: 3,
	}
	for _, p := range positions {
		m.Positions = append(m.Positions, p[0], p[1], p[2])
	}

	if prim.Indices != nil {
		idxAcc, err := accessor(doc, *prim.Indices)
		if err != nil {
			return nil, err
		}
		m.Indices, err = modeler.ReadIndices(doc, idxAcc, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d out of range (%d accessors)", ErrInvalidMesh, idx, len(doc.Accessors))
	}
	return doc.Accessors[idx], nil
}
