package geometry

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestBuiltinShapes(t *testing.T) {
	tests := []struct {
		mesh      *Mesh
		vertices  int
		drawCount int
		indexed   bool
	}{
		{Quad(), 4, 6, true},
		{Triangle(), 3, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.mesh.Name, func(t *testing.T) {
			if err := tt.mesh.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if got := tt.mesh.VertexCount(); got != tt.vertices {
				t.Errorf("VertexCount = %d, want %d", got, tt.vertices)
			}
			if got := tt.mesh.DrawCount(); got != tt.drawCount {
				t.Errorf("DrawCount = %d, want %d", got, tt.drawCount)
			}
			if got := tt.mesh.Indexed(); got != tt.indexed {
				t.Errorf("Indexed = %v, want %v", got, tt.indexed)
			}
		})
	}
}

func TestQuadIndices(t *testing.T) {
	want := []uint32{0, 1, 2, 2, 3, 0}
	got := Quad().Indices
	if len(got) != len(want) {
		t.Fatalf("indices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("indices = %v, want %v", got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
	}{
		{"no components", Mesh{Positions: []float32{0, 0, 0}}},
		{"four components", Mesh{Positions: []float32{0, 0, 0, 0}, Components: 4}},
		{"empty", Mesh{Components: 2}},
		{"ragged", Mesh{Positions: []float32{0, 0, 0}, Components: 2}},
		{"partial triangle", Mesh{Positions: []float32{0, 0, 1, 1}, Components: 2}},
		{"index out of range", Mesh{Positions: []float32{0, 0, 1, 0, 1, 1}, Components: 2, Indices: []uint32{0, 1, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mesh.Validate(); !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Validate = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "quad", "triangle"} {
		if _, err := ByName(name, ""); err != nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("hexagon", ""); err == nil {
		t.Error("ByName(hexagon) succeeded")
	}
	if _, err := ByName("gltf", ""); err == nil {
		t.Error("ByName(gltf) without a path succeeded")
	}
}

func TestLoadGLTF(t *testing.T) {
	m, err := ByName("gltf", filepath.Join("testdata", "triangle.gltf"))
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}
	if m.Name != "tri" {
		t.Errorf("Name = %q, want tri", m.Name)
	}
	if m.Components != 3 {
		t.Errorf("Components = %d, want 3", m.Components)
	}
	wantPos := []float32{-0.5, -0.5, 0, 0.5, -0.5, 0, 0, 0.5, 0}
	if len(m.Positions) != len(wantPos) {
		t.Fatalf("Positions = %v, want %v", m.Positions, wantPos)
	}
	for i := range wantPos {
		if m.Positions[i] != wantPos[i] {
			t.Fatalf("Positions = %v, want %v", m.Positions, wantPos)
		}
	}
	if len(m.Indices) != 3 || m.Indices[2] != 2 {
		t.Errorf("Indices = %v, want [0 1 2]", m.Indices)
	}
}

func TestLoadGLTFRejectsLines(t *testing.T) {
	_, err := LoadGLTF(filepath.Join("testdata", "lines.gltf"))
	if !errors.Is(err, ErrInvalidMesh) {
		t.Fatalf("err = %v, want ErrInvalidMesh", err)
	}
}

func TestLoadGLTFAccessorOutOfRange(t *testing.T) {
	for _, name := range []string{"bad_position.gltf", "bad_indices.gltf"} {
		_, err := LoadGLTF(filepath.Join("testdata", name))
		if !errors.Is(err, ErrInvalidMesh) {
			t.Errorf("%s: err = %v, want ErrInvalidMesh", name, err)
		}
	}
}

func TestLoadGLTFMissing(t *testing.T) {
	if _, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.gltf")); err == nil {
		t.Fatal("LoadGLTF on a missing file succeeded")
	}
}
