package loaders

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Defaults applied to sampling fields a scene file leaves out
const (
	DefaultWidth           = 400
	DefaultHeight          = 225
	DefaultSamplesPerPixel = 100
	DefaultMaxDepth        = 50
)

// Vector is a point or direction written as a three element list
type Vector core.Vec3

// UnmarshalYAML decodes [x, y, z]
func (v *Vector) UnmarshalYAML(node *yaml.Node) error {
	var xs []float64
	if err := node.Decode(&xs); err != nil {
		return fmt.Errorf("line %d: expected [x, y, z]: %w", node.Line, err)
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: expected 3 components, got %d", node.Line, len(xs))
	}
	*v = Vector{X: xs[0], Y: xs[1], Z: xs[2]}
	return nil
}

// Color is a linear RGB color written either as a three element list or as an
// SVG color name such as "gold"
type Color core.Vec3

// UnmarshalYAML decodes [r, g, b] or a named color
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		rgba, ok := colornames.Map[strings.ToLower(node.Value)]
		if !ok {
			return fmt.Errorf("line %d: unknown color name %q", node.Line, node.Value)
		}
		*c = Color{X: float64(rgba.R) / 255, Y: float64(rgba.G) / 255, Z: float64(rgba.B) / 255}
		return nil
	}

	var v Vector
	if err := v.UnmarshalYAML(node); err != nil {
		return err
	}
	*c = Color(v)
	return nil
}

// File is the on-disk layout of a scene description
type File struct {
	Camera     CameraSpec      `yaml:"camera"`
	Background *BackgroundSpec `yaml:"background"`
	Sampling   SamplingSpec    `yaml:"sampling"`
	Objects    []ObjectSpec    `yaml:"objects"`
}

// CameraSpec describes the camera. Omitted fields take the camera defaults.
type CameraSpec struct {
	LookFrom      *Vector `yaml:"lookFrom"`
	LookAt        *Vector `yaml:"lookAt"`
	ViewUp        *Vector `yaml:"viewUp"`
	VFov          float64 `yaml:"vfov"`
	AspectRatio   float64 `yaml:"aspectRatio"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focusDistance"`
}

// BackgroundSpec describes the sky gradient. Omitted ends keep the default
// white horizon and sky blue zenith.
type BackgroundSpec struct {
	Horizon *Color `yaml:"horizon"`
	Zenith  *Color `yaml:"zenith"`
}

// SamplingSpec describes the image size and sampling budget
type SamplingSpec struct {
	Width           *int `yaml:"width"`
	Height          *int `yaml:"height"`
	SamplesPerPixel *int `yaml:"samplesPerPixel"`
	MaxDepth        *int `yaml:"maxDepth"`
}

// ObjectSpec describes one sphere
type ObjectSpec struct {
	Center   Vector       `yaml:"center"`
	Radius   float64      `yaml:"radius"`
	Material MaterialSpec `yaml:"material"`
}

// MaterialSpec describes a material; only the fields for its type are read
type MaterialSpec struct {
	Type            string   `yaml:"type"`
	Albedo          *Color   `yaml:"albedo"`
	Fuzz            float64  `yaml:"fuzz"`
	RefractiveIndex *float64 `yaml:"refractiveIndex"`
}

// LoadScene reads a YAML scene description from path
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("while reading scene file: %w", err)
	}
	s, err := ParseScene(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("while loading %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a YAML scene description. Unknown keys are rejected.
// The returned scene still needs Preprocess before rendering.
func ParseScene(r io.Reader) (*scene.Scene, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("scene file is empty")
		}
		return nil, fmt.Errorf("while decoding scene: %w", err)
	}

	return file.ToScene()
}

// ToScene converts the decoded description into a scene
func (f *File) ToScene() (*scene.Scene, error) {
	s := &scene.Scene{
		Background:     scene.DefaultBackground,
		CameraConfig:   f.Camera.toConfig(),
		SamplingConfig: f.Sampling.toConfig(),
	}
	if f.Background != nil {
		if f.Background.Horizon != nil {
			s.Background.Horizon = core.Vec3(*f.Background.Horizon)
		}
		if f.Background.Zenith != nil {
			s.Background.Zenith = core.Vec3(*f.Background.Zenith)
		}
	}

	for i, object := range f.Objects {
		m, err := object.Material.toMaterial()
		if err != nil {
			return nil, fmt.Errorf("while loading object %d: %w", i, err)
		}
		s.AddSphere(core.Vec3(object.Center), object.Radius, m)
	}

	return s, nil
}

func (c CameraSpec) toConfig() geometry.CameraConfig {
	config := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		VFov:          c.VFov,
		AspectRatio:   c.AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}
	if c.LookFrom != nil {
		config.Center = core.Vec3(*c.LookFrom)
	}
	if c.LookAt != nil {
		config.LookAt = core.Vec3(*c.LookAt)
	}
	if c.ViewUp != nil {
		config.Up = core.Vec3(*c.ViewUp)
	}
	return config
}

func (s SamplingSpec) toConfig() scene.SamplingConfig {
	orDefault := func(v *int, def int) int {
		if v == nil {
			return def
		}
		return *v
	}
	return scene.SamplingConfig{
		Width:           orDefault(s.Width, DefaultWidth),
		Height:          orDefault(s.Height, DefaultHeight),
		SamplesPerPixel: orDefault(s.SamplesPerPixel, DefaultSamplesPerPixel),
		MaxDepth:        orDefault(s.MaxDepth, DefaultMaxDepth),
	}
}

func (m MaterialSpec) toMaterial() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		if m.Albedo == nil {
			return material.Material{}, fmt.Errorf("lambertian material needs an albedo")
		}
		return material.NewLambertian(core.Vec3(*m.Albedo)), nil
	case "metal":
		if m.Albedo == nil {
			return material.Material{}, fmt.Errorf("metal material needs an albedo")
		}
		if m.Fuzz < 0 || m.Fuzz > 1 {
			return material.Material{}, fmt.Errorf("metal fuzz %v outside [0, 1]", m.Fuzz)
		}
		return material.NewMetal(core.Vec3(*m.Albedo), m.Fuzz), nil
	case "dielectric":
		if m.RefractiveIndex == nil {
			return material.Material{}, fmt.Errorf("dielectric material needs a refractiveIndex")
		}
		return material.NewDielectric(*m.RefractiveIndex), nil
	case "":
		return material.Material{}, fmt.Errorf("material type is missing")
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", m.Type)
	}
}
