package translator

import (
	"strings"
	"testing"

	shader "github.com/richinsley/hellogl/shader"
)

func TestTranslateProgram(t *testing.T) {
	p, err := TranslateProgram(shader.BuiltinES())
	if err != nil {
		t.Fatalf("TranslateProgram: %v", err)
	}
	if strings.TrimSpace(p.Source.Vertex) == "" || strings.TrimSpace(p.Source.Fragment) == "" {
		t.Fatalf("empty translation: %+v", p.Source)
	}
	if strings.Contains(p.Source.Fragment, "300 es") {
		t.Errorf("fragment still declares ESSL:\n%s", p.Source.Fragment)
	}
	if _, ok := p.Uniforms["u_Color"]; !ok {
		t.Errorf("u_Color missing from uniform map %v", p.Uniforms)
	}
}

func TestTranslateProgramRejectsBadSource(t *testing.T) {
	src := shader.BuiltinES()
	src.Fragment = "#version 300 es\nvoid main() { undefined_call(); }\n"
	if _, err := TranslateProgram(src); err == nil {
		t.Fatal("TranslateProgram accepted an invalid fragment stage")
	}
}
