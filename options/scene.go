package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Title        string `yaml:"title"`
	SwapInterval int    `yaml:"swap_interval"`
	Resizable    bool   `yaml:"resizable"`
}

// Scene describes what gets drawn and how the window is set up.
type Scene struct {
	Window     Window     `yaml:"window"`
	Shape      string     `yaml:"shape"`
	Mesh       string     `yaml:"mesh,omitempty"`
	Shader     string     `yaml:"shader"`
	ClearColor [4]float32 `yaml:"clear_color,flow"`
	Color      [4]float32 `yaml:"color,flow"`
	Translate  bool       `yaml:"translate"`
	Debug      bool       `yaml:"debug"`
}

const DefaultShaderPath = "res/shaders/Basic.shader"

// DefaultScene is a 640x480 window drawing a blue quad on a teal background.
func DefaultScene() *Scene {
	return &Scene{
		Window: Window{
			Width:        640,
			Height:       480,
			Title:        "Hello World",
			SwapInterval: 1,
			Resizable:    true,
		},
		Shape:      "quad",
		Shader:     DefaultShaderPath,
		ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		Color:      [4]float32{0.2, 0.3, 0.8, 1.0},
	}
}

// LoadScene reads a YAML scene file on top of DefaultScene. Keys absent from
// the file keep their default values.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes a YAML scene on top of DefaultScene. The result is not
// validated; command-line overrides are applied first and Validate runs last.
func ParseScene(data []byte) (*Scene, error) {
	s := DefaultScene()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return s, nil
}

func (s *Scene) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Window.SwapInterval < 0 {
		return fmt.Errorf("invalid swap interval %d", s.Window.SwapInterval)
	}
	switch s.Shape {
	case "quad", "triangle":
	case "gltf":
		if s.Mesh == "" {
			return errors.New("shape gltf requires mesh")
		}
	default:
		return fmt.Errorf("unknown shape %q", s.Shape)
	}
	return nil
}
