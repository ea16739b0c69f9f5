package renderer

import (
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	geometry "github.com/richinsley/hellogl/geometry"
	graphics "github.com/richinsley/hellogl/graphics"
	options "github.com/richinsley/hellogl/options"
	shader "github.com/richinsley/hellogl/shader"
	xlate "github.com/richinsley/hellogl/translator"
)

// ensures gl.Init() is called only once per process
var glInitOnce sync.Once
var glInitErr error

// colorUniform is the fragment uniform the scene color is written to.
const colorUniform = "u_Color"

// InitGL loads the OpenGL function pointers. A context must be current.
func InitGL() error {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	return glInitErr
}

// Renderer draws one mesh with one program into a graphics.Context.
type Renderer struct {
	context graphics.Context
	scene   *options.Scene
	mesh    *MeshBuffers
	program *Program
	width   int
	height  int
}

func NewRenderer(ctx graphics.Context, scene *options.Scene) (*Renderer, error) {
	r := &Renderer{
		context: ctx,
		scene:   scene,
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	if err := InitGL(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r.width, r.height = ctx.GetFramebufferSize()
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	ctx.OnResize(r.resize)

	return r, nil
}

// resize keeps the viewport matching the framebuffer. Sizes on HiDPI
// displays are larger than the window size.
func (r *Renderer) resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Init uploads the geometry and builds the shader program. On error anything
// created so far is released.
func (r *Renderer) Init(mesh *geometry.Mesh, src shader.ProgramSource) (err error) {
	defer func() {
		if err != nil {
			r.release()
		}
	}()

	if r.scene.Debug {
		ClearErrors()
	}

	r.mesh, err = UploadMesh(mesh)
	if err != nil {
		return err
	}
	// validation checks the program against the bound vertex array
	r.mesh.Bind()

	var uniformNames map[string]string
	if r.scene.Translate && !src.IsES() {
		log.Println("Warning: shader is not ESSL, compiling it without translation")
	} else if r.scene.Translate {
		translated, err := xlate.TranslateProgram(src)
		if err != nil {
			return err
		}
		src = translated.Source
		uniformNames = translated.Uniforms
	}

	r.program, err = NewProgramFromSource(src)
	if err != nil {
		return fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program.names = uniformNames

	r.program.Use()
	r.program.SetColor(colorUniform, r.scene.Color)

	if r.scene.Debug {
		if err := CheckErrors("init"); err != nil {
			return err
		}
	}
	log.Printf("Scene ready: %s, %d elements", mesh.Name, r.mesh.count)
	return nil
}

// RenderFrame clears the bound framebuffer and draws the mesh once.
func (r *Renderer) RenderFrame() error {
	c := r.scene.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.program.Use()
	r.mesh.Draw()

	if r.scene.Debug {
		return CheckErrors("draw")
	}
	return nil
}

// Run draws and presents frames until the context is asked to close.
func (r *Renderer) Run() error {
	var frameCount int64
	start := r.context.Time()
	for !r.context.ShouldClose() {
		if err := r.RenderFrame(); err != nil {
			return fmt.Errorf("frame %d: %w", frameCount, err)
		}
		r.context.EndFrame()
		frameCount++
	}
	if elapsed := r.context.Time() - start; elapsed > 0 {
		log.Printf("Render loop finished after %d frames (%.1f fps)", frameCount, float64(frameCount)/elapsed)
	} else {
		log.Printf("Render loop finished after %d frames", frameCount)
	}
	return nil
}

func (r *Renderer) release() {
	r.program.Delete()
	r.program = nil
	r.mesh.Delete()
	r.mesh = nil
}

// Shutdown releases GL resources. The context itself is shut down by its owner.
func (r *Renderer) Shutdown() {
	r.context.MakeCurrent()
	r.release()
}
