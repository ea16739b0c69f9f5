package glfwcontext

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

func TestHandleKey(t *testing.T) {
	closed := 0
	c := &Context{keyCallbacks: make(map[glfw.Key]func())}
	c.registerDefaultKeys(func() { closed++ })

	spaces := 0
	c.RegisterKeyCallback(glfw.KeySpace, func() { spaces++ })

	c.handleKey(glfw.KeyEscape, glfw.Release)
	if closed != 0 {
		t.Fatal("Escape release closed the window")
	}
	c.handleKey(glfw.KeyEscape, glfw.Press)
	if closed != 1 {
		t.Errorf("Escape press: close called %d times, want 1", closed)
	}
	c.handleKey(glfw.KeySpace, glfw.Press)
	c.handleKey(glfw.KeyA, glfw.Press)
	if spaces != 1 || closed != 1 {
		t.Errorf("spaces = %d, closed = %d, want 1 and 1", spaces, closed)
	}
}

func TestOnResize(t *testing.T) {
	c := &Context{}
	var got [2]int
	c.OnResize(func(w, h int) { got = [2]int{w, h} })
	c.glfwFramebufferSizeCallback(nil, 800, 600)
	if got != [2]int{800, 600} {
		t.Errorf("resize callback got %v, want [800 600]", got)
	}
}
