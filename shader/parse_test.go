package shader

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const wantVertex = `#version 330 core
layout(location = 0) in vec4 position;
void main() { gl_Position = position; }
`

const wantFragment = `#version 330 core
out vec4 color;
void main() { color = vec4(1.0, 0.0, 0.0, 1.0); }
`

func TestParseShaderFile(t *testing.T) {
	src, err := ParseShaderFile(filepath.Join("testdata", "basic.shader"))
	if err != nil {
		t.Fatalf("ParseShaderFile: %v", err)
	}
	if src.Vertex != wantVertex {
		t.Errorf("vertex source = %q, want %q", src.Vertex, wantVertex)
	}
	if src.Fragment != wantFragment {
		t.Errorf("fragment source = %q, want %q", src.Fragment, wantFragment)
	}
}

func TestParseShaderSectionOrder(t *testing.T) {
	a, err := ParseShaderFile(filepath.Join("testdata", "basic.shader"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseShaderFile(filepath.Join("testdata", "swapped.shader"))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("swapped sections produced different sources:\n%+v\n%+v", a, b)
	}
}

func TestParseShaderFileMissing(t *testing.T) {
	_, err := ParseShaderFile(filepath.Join(t.TempDir(), "nope.shader"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestParseShaderOrphanLine(t *testing.T) {
	_, err := ParseShaderFile(filepath.Join("testdata", "orphan.shader"))
	if !errors.Is(err, ErrOrphanLine) {
		t.Fatalf("err = %v, want ErrOrphanLine", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %T, want *ParseError", err)
	}
	if perr.Line != 1 {
		t.Errorf("line = %d, want 1", perr.Line)
	}
}

func TestParseShaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrNoMarker},
		{"blank lines only", "\n\n  \n", ErrNoMarker},
		{"no markers", "void main() {}\n", ErrOrphanLine},
		{"unknown keyword", "#shader geometry\nvoid main() {}\n", ErrUnknownStage},
		{"bare marker", "#shader\nvoid main() {}\n", ErrUnknownStage},
		{"unknown after valid", "#shader vertex\na\n#shader tess\nb\n", ErrUnknownStage},
		{"fragment missing", "#shader vertex\nvoid main() {}\n", ErrMissingStage},
		{"vertex missing", "#shader fragment\nvoid main() {}\n", ErrMissingStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseShader(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if src != (ProgramSource{}) {
				t.Errorf("got non-empty source on error: %+v", src)
			}
		})
	}
}

func TestParseShaderDetails(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vertex   string
		fragment string
	}{
		{
			name:     "crlf line endings",
			input:    "#shader vertex\r\nv1\r\n#shader fragment\r\nf1\r\n",
			vertex:   "v1\n",
			fragment: "f1\n",
		},
		{
			name:     "leading blank lines",
			input:    "\n\n#shader vertex\nv1\n#shader fragment\nf1\n",
			vertex:   "v1\n",
			fragment: "f1\n",
		},
		{
			name:     "reopened stage appends",
			input:    "#shader vertex\nv1\n#shader fragment\nf1\n#shader vertex\nv2\n",
			vertex:   "v1\nv2\n",
			fragment: "f1\n",
		},
		{
			name:     "indented marker",
			input:    "  #shader vertex\nv1\n\t#shader   fragment\nf1",
			vertex:   "v1\n",
			fragment: "f1\n",
		},
		{
			name:     "blank lines inside a section kept",
			input:    "#shader vertex\n\nv1\n\n#shader fragment\nf1\n",
			vertex:   "\nv1\n\n",
			fragment: "f1\n",
		},
		{
			name:     "empty sections",
			input:    "#shader vertex\n#shader fragment\n",
			vertex:   "",
			fragment: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseShader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseShader: %v", err)
			}
			if src.Vertex != tt.vertex {
				t.Errorf("vertex = %q, want %q", src.Vertex, tt.vertex)
			}
			if src.Fragment != tt.fragment {
				t.Errorf("fragment = %q, want %q", src.Fragment, tt.fragment)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	gl := Builtin()
	if !strings.Contains(gl.Fragment, "uniform vec4 u_Color;") {
		t.Errorf("builtin fragment stage lacks u_Color:\n%s", gl.Fragment)
	}
	if strings.Contains(gl.Vertex, "u_Color") {
		t.Errorf("fragment text leaked into vertex stage:\n%s", gl.Vertex)
	}
	if gl.IsES() {
		t.Error("desktop builtin reported as ESSL")
	}
	if !BuiltinES().IsES() {
		t.Error("ES builtin not reported as ESSL")
	}
}

func TestStageString(t *testing.T) {
	if StageVertex.String() != "vertex" || StageFragment.String() != "fragment" {
		t.Errorf("unexpected stage names %q %q", StageVertex, StageFragment)
	}
	if Stage(7).String() != "unknown" {
		t.Errorf("Stage(7) = %q", Stage(7))
	}
}
