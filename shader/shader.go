package shader

import (
	_ "embed"
	"strings"
)

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// ProgramSource holds the two stage sources split out of a shader file.
type ProgramSource struct {
	Vertex   string
	Fragment string
}

// Source returns the text for the given stage.
func (p ProgramSource) Source(s Stage) string {
	if s == StageFragment {
		return p.Fragment
	}
	return p.Vertex
}

// IsES reports whether both stages declare an ESSL version.
func (p ProgramSource) IsES() bool {
	return isESSL(p.Vertex) && isESSL(p.Fragment)
}

func isESSL(src string) bool {
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "#version" {
			return len(fields) >= 3 && fields[2] == "es"
		}
	}
	return false
}

// ────────────────────────────────── Built-ins ──────────────────────────────────

//go:embed basic.shader
var basicShaderGL string

//go:embed basic_es.shader
var basicShaderES string

// Builtin returns the default desktop GL pair: a pass-through vertex stage and a
// fragment stage that writes the u_Color uniform.
func Builtin() ProgramSource {
	src, err := ParseShader(strings.NewReader(basicShaderGL))
	if err != nil {
		panic("shader: embedded basic.shader is malformed: " + err.Error())
	}
	return src
}

// BuiltinES is the ESSL 300 variant of Builtin, fed to the translator.
func BuiltinES() ProgramSource {
	src, err := ParseShader(strings.NewReader(basicShaderES))
	if err != nil {
		panic("shader: embedded basic_es.shader is malformed: " + err.Error())
	}
	return src
}
