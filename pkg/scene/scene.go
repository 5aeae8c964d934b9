package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// ErrInvalidSampling is returned when the sampling configuration cannot produce an image
var ErrInvalidSampling = errors.New("invalid sampling configuration")

// Object pairs a sphere with the material it is made of
type Object struct {
	Sphere   geometry.Sphere
	Material material.Material
}

// Background is the sky gradient seen by rays that escape the scene
type Background struct {
	Horizon core.Vec3 // Color looking straight down
	Zenith  core.Vec3 // Color looking straight up
}

// DefaultBackground is white at the horizon fading to sky blue overhead
var DefaultBackground = Background{Horizon: core.White, Zenith: core.SkyBlue}

// Scene contains all the elements needed for rendering.
// It is read-only once Preprocess has succeeded.
type Scene struct {
	Camera         *geometry.Camera
	Objects        []Object // Tested in order; the first of equally near hits wins
	Background     Background
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Validate checks that an image can be rendered with this configuration
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidSampling, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d must be positive", ErrInvalidSampling, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidSampling, c.MaxDepth)
	}
	return nil
}

// AddSphere appends a sphere made of the given material
func (s *Scene) AddSphere(center core.Vec3, radius float64, m material.Material) {
	s.Objects = append(s.Objects, Object{
		Sphere:   geometry.NewSphere(center, radius),
		Material: m,
	})
}

// Preprocess validates the scene and builds the camera. It must be called
// before the scene is rendered.
func (s *Scene) Preprocess() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return err
	}

	for i, object := range s.Objects {
		if err := object.Sphere.Validate(); err != nil {
			return fmt.Errorf("while validating object %d: %w", i, err)
		}
		if err := object.Material.Validate(); err != nil {
			return fmt.Errorf("while validating object %d: %w", i, err)
		}
	}

	if s.Background == (Background{}) {
		s.Background = DefaultBackground
	}

	cameraConfig := s.CameraConfig
	if cameraConfig.AspectRatio == 0 {
		cameraConfig.AspectRatio = float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
	}
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return fmt.Errorf("while building camera: %w", err)
	}
	s.Camera = camera

	return nil
}

// Hit finds the nearest object along the ray. Every object is tested.
func (s *Scene) Hit(ray core.Ray) (geometry.HitRecord, material.Material, bool) {
	hit, index, ok := s.HitIndex(ray)
	if !ok {
		return geometry.HitRecord{}, material.Material{}, false
	}
	return hit, s.Objects[index].Material, true
}

// HitIndex is like Hit but reports the position of the hit object in Objects
func (s *Scene) HitIndex(ray core.Ray) (geometry.HitRecord, int, bool) {
	var closest geometry.HitRecord
	closestIndex := -1
	tMax := math.Inf(1)

	for i, object := range s.Objects {
		hit, ok := object.Sphere.Hit(ray, geometry.HitEpsilon, tMax)
		// Strict comparison keeps the earlier object when two hits coincide
		if ok && (closestIndex < 0 || hit.T < closest.T) {
			closest = hit
			closestIndex = i
			tMax = hit.T
		}
	}

	return closest, closestIndex, closestIndex >= 0
}

// BackgroundColor returns the sky radiance for a ray that escapes the scene
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	if s.Background == (Background{}) {
		return ray.Background()
	}
	return core.SkyGradient(ray, s.Background.Horizon, s.Background.Zenith)
}
