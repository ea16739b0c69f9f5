package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"runtime"

	geometry "github.com/richinsley/hellogl/geometry"
	"github.com/richinsley/hellogl/glfwcontext"
	graphics "github.com/richinsley/hellogl/graphics"
	headless "github.com/richinsley/hellogl/headless"
	options "github.com/richinsley/hellogl/options"
	renderer "github.com/richinsley/hellogl/renderer"
	shader "github.com/richinsley/hellogl/shader"
)

func init() {
	runtime.LockOSThread()
}

// loadShader parses the scene's shader file, falling back to the built-in
// pair when the default path does not exist.
func loadShader(scene *options.Scene) (shader.ProgramSource, error) {
	src, err := shader.ParseShaderFile(scene.Shader)
	if err == nil {
		return src, nil
	}
	if errors.Is(err, fs.ErrNotExist) && scene.Shader == options.DefaultShaderPath {
		log.Printf("No shader at %s, using the built-in shader", scene.Shader)
		if scene.Translate {
			return shader.BuiltinES(), nil
		}
		return shader.Builtin(), nil
	}
	return shader.ProgramSource{}, err
}

func newContext(scene *options.Scene, opts *options.Options) (graphics.Context, func(), error) {
	record := *opts.Mode == "record"
	if record && *opts.Headless {
		ctx, err := headless.NewHeadless(scene.Window.Width, scene.Window.Height)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create headless context: %w", err)
		}
		return ctx, ctx.Shutdown, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	// If recording, the window is hidden
	ctx, err := glfwcontext.New(scene, !record)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}
	return ctx, func() {
		ctx.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

func run(scene *options.Scene, opts *options.Options) error {
	mesh, err := geometry.ByName(scene.Shape, scene.Mesh)
	if err != nil {
		return err
	}
	src, err := loadShader(scene)
	if err != nil {
		return err
	}

	ctx, closeContext, err := newContext(scene, opts)
	if err != nil {
		return err
	}
	defer closeContext()

	r, err := renderer.NewRenderer(ctx, scene)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if err := r.Init(mesh, src); err != nil {
		return fmt.Errorf("failed to initialize scene: %w", err)
	}

	if *opts.Mode == "record" {
		log.Println("Starting offscreen render loop...")
		err := r.Record(renderer.RecordOptions{
			Duration:   *opts.Duration,
			FPS:        *opts.FPS,
			OutputFile: *opts.OutputFile,
			FFMPEGPath: *opts.FFMPEGPath,
		})
		if err != nil {
			return fmt.Errorf("offscreen rendering failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}

	log.Println("Starting interactive render loop...")
	return r.Run()
}

func main() {
	opts := &options.Options{
		ConfigFile: flag.String("config", "", "YAML scene file"),
		ShaderFile: flag.String("shader", options.DefaultShaderPath, "Shader source file with #shader vertex/fragment sections"),
		Shape:      flag.String("shape", "quad", "Shape to draw: quad, triangle or gltf"),
		MeshFile:   flag.String("mesh", "", "glTF file to draw when -shape=gltf"),
		Width:      flag.Int("width", 640, "Window width"),
		Height:     flag.Int("height", 480, "Window height"),
		Help:       flag.Bool("help", false, "Show help message"),
		Mode:       flag.String("mode", "window", "Mode: window or record"),
		Duration:   flag.Float64("duration", 5.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Headless:   flag.Bool("headless", false, "Record through an EGL pbuffer instead of a hidden window (linux)"),
		Translate:  flag.Bool("translate", false, "Translate ESSL 300 shader sources to desktop GLSL before compiling"),
		GLDebug:    flag.Bool("gldebug", false, "Check glGetError after setup and every frame"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("hellogl: draw a shape with a shader")
		flag.PrintDefaults()
		return
	}

	if *opts.Mode != "window" && *opts.Mode != "record" {
		log.Fatalf("Unknown mode: %s", *opts.Mode)
	}

	scene := options.DefaultScene()
	if *opts.ConfigFile != "" {
		var err error
		scene, err = options.LoadScene(*opts.ConfigFile)
		if err != nil {
			log.Fatalf("Error loading scene: %v", err)
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	opts.Apply(scene, set)
	if err := scene.Validate(); err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}

	if err := run(scene, opts); err != nil {
		log.Fatalf("%v", err)
	}
}
