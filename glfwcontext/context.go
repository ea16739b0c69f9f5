package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	options "github.com/richinsley/hellogl/options"
)

// Context wraps a GLFW window and the callbacks registered against it.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks    map[glfw.Key]func()
	resizeCallbacks []func(width, height int)
}

// New creates a window with a 3.3 core context for the given scene.
func New(scene *options.Scene, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if !visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	if visible && scene.Window.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(scene.Window.Width, scene.Window.Height, scene.Window.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	c.registerDefaultKeys(func() { win.SetShouldClose(true) })

	win.MakeContextCurrent()
	glfw.SwapInterval(scene.Window.SwapInterval)

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	return c, nil
}

// registerDefaultKeys binds Escape to closeWindow.
func (c *Context) registerDefaultKeys(closeWindow func()) {
	c.RegisterKeyCallback(glfw.KeyEscape, closeWindow)
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// OnResize implements graphics.Context.
func (c *Context) OnResize(f func(width, height int)) {
	c.resizeCallbacks = append(c.resizeCallbacks, f)
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	c.handleKey(key, action)
}

func (c *Context) handleKey(key glfw.Key, action glfw.Action) {
	if action != glfw.Press {
		return
	}
	if callback, ok := c.keyCallbacks[key]; ok {
		callback()
	}
}

// glfwFramebufferSizeCallback fires on the main thread from inside PollEvents,
// so the GL context is current while callbacks run.
func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	log.Printf("Framebuffer resized to %dx%d", width, height)
	for _, f := range c.resizeCallbacks {
		f(width, height)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
