package renderer

import (
	"errors"
	"fmt"
	"log"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	shader "github.com/richinsley/hellogl/shader"
)

var (
	ErrCompile  = errors.New("shader compilation failed")
	ErrLink     = errors.New("program link failed")
	ErrValidate = errors.New("program validation failed")
)

// CompileError carries the driver's info log for a failed compile or link.
type CompileError struct {
	Stage string // "vertex", "fragment" or "program"
	Log   string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Stage, e.Err, e.Log)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Program is a linked vertex+fragment program.
type Program struct {
	ID uint32
	// names maps source-level uniform names to the names the driver sees,
	// when the sources went through the translator.
	names map[string]string
}

func glStage(s shader.Stage) uint32 {
	if s == shader.StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// CompileShader compiles a single stage. On failure the shader object is
// deleted and the returned error is a *CompileError.
func CompileShader(stage shader.Stage, source string) (uint32, error) {
	id := gl.CreateShader(glStage(stage))
	if id == 0 {
		return 0, fmt.Errorf("failed to create %s shader object", stage)
	}
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(logText))
		gl.DeleteShader(id)
		return 0, &CompileError{Stage: stage.String(), Log: cleanLog(logText), Err: ErrCompile}
	}
	return id, nil
}

// NewProgram compiles both stages, links and validates them. The first
// failure aborts; no GL object created here outlives an error return.
func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vs, err := CompileShader(shader.StageVertex, vertexSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)

	fs, err := CompileShader(shader.StageFragment, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	if program == 0 {
		return nil, errors.New("failed to create program object")
	}
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	if status, logText := programStatus(program, gl.LINK_STATUS); status == gl.FALSE {
		gl.DeleteProgram(program)
		return nil, &CompileError{Stage: "program", Log: logText, Err: ErrLink}
	}

	gl.ValidateProgram(program)
	if status, logText := programStatus(program, gl.VALIDATE_STATUS); status == gl.FALSE {
		gl.DeleteProgram(program)
		return nil, &CompileError{Stage: "program", Log: logText, Err: ErrValidate}
	}

	// units are no longer needed once linked; the deferred deletes free them
	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)

	return &Program{ID: program}, nil
}

// NewProgramFromSource builds a program from a parsed shader file.
func NewProgramFromSource(src shader.ProgramSource) (*Program, error) {
	return NewProgram(src.Vertex, src.Fragment)
}

func programStatus(program, pname uint32) (int32, string) {
	var status int32
	gl.GetProgramiv(program, pname, &status)
	if status != gl.FALSE {
		return status, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return status, cleanLog(logText)
}

func cleanLog(s string) string {
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	if s == "" {
		return "(driver returned no info log)"
	}
	return s
}

// Use binds the program for subsequent draws.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// UniformLocation looks up a uniform by its source name. It returns -1 when the
// uniform is not active in the linked program.
func (p *Program) UniformLocation(name string) int32 {
	if mapped, ok := p.names[name]; ok {
		name = mapped
	}
	return gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
}

// SetColor sets a vec4 uniform. The program must be in use.
func (p *Program) SetColor(name string, c [4]float32) bool {
	loc := p.UniformLocation(name)
	if loc == -1 {
		log.Printf("Warning: uniform %s is not active in program %d", name, p.ID)
		return false
	}
	gl.Uniform4f(loc, c[0], c[1], c[2], c[3])
	return true
}

// Delete releases the program object. Safe to call more than once.
func (p *Program) Delete() {
	if p == nil || p.ID == 0 {
		return
	}
	gl.DeleteProgram(p.ID)
	p.ID = 0
}
