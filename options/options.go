package options

// Options mirrors the command line. Pointers are filled in by flag.
type Options struct {
	ConfigFile *string
	ShaderFile *string
	Shape      *string
	MeshFile   *string
	Width      *int
	Height     *int
	Help       *bool
	Mode       *string // "window" or "record"
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Headless   *bool
	Translate  *bool
	GLDebug    *bool
}

// Apply copies the flags named in set onto scene. set holds the names of
// flags given explicitly on the command line, so scene-file values win over
// flag defaults but lose to anything the user typed.
func (o *Options) Apply(scene *Scene, set map[string]bool) {
	if set["shader"] {
		scene.Shader = *o.ShaderFile
	}
	if set["shape"] {
		scene.Shape = *o.Shape
	}
	if set["mesh"] {
		scene.Mesh = *o.MeshFile
	}
	if set["width"] {
		scene.Window.Width = *o.Width
	}
	if set["height"] {
		scene.Window.Height = *o.Height
	}
	if set["translate"] {
		scene.Translate = *o.Translate
	}
	if set["gldebug"] {
		scene.Debug = *o.GLDebug
	}
}
