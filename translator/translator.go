package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
	shader "github.com/richinsley/hellogl/shader"
)

var (
	translator *gst.ShaderTranslator
	initOnce   sync.Once
	initErr    error
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Program is a translated vertex+fragment pair.
type Program struct {
	Source shader.ProgramSource
	// Uniforms maps a uniform's source name to the name in the translated code.
	Uniforms map[string]string
}

// TranslateProgram rewrites WebGL2 (ESSL 300) sources as desktop GLSL 330.
func TranslateProgram(src shader.ProgramSource) (*Program, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}

	p := &Program{Uniforms: make(map[string]string)}
	for _, stage := range []shader.Stage{shader.StageVertex, shader.StageFragment} {
		out, err := t.TranslateShader(src.Source(stage), stage.String(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
		if err != nil {
			return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
		}
		if stage == shader.StageVertex {
			p.Source.Vertex = out.Code
		} else {
			p.Source.Fragment = out.Code
		}
		for name, v := range out.Variables {
			p.Uniforms[name] = v.MappedName
		}
	}
	return p, nil
}
