package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// RandomSceneSeed fixes the layout of the random scene so every run sees the same spheres
const RandomSceneSeed = 1

// NewRandomScene creates a large ground sphere covered by a grid of small
// randomly coloured spheres, with three large feature spheres in the middle.
func NewRandomScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Background: DefaultBackground,
		SamplingConfig: SamplingConfig{
			Width:           600,
			Height:          400,
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
		CameraConfig: cameraConfig,
	}

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	sampler := core.NewSeededSampler(RandomSceneSeed)
	keepClear := core.NewVec3(4, 0.2, 0)

	// Grid of small spheres, each jittered within its cell
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			var m material.Material
			switch {
			case chooseMaterial < 0.8:
				albedo := core.RandomVec3(sampler, 0, 1).MultiplyVec(core.RandomVec3(sampler, 0, 1))
				m = material.NewLambertian(albedo)
			case chooseMaterial < 0.95:
				albedo := core.RandomVec3(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				m = material.NewMetal(albedo, fuzz)
			default:
				m = material.NewDielectric(1.5)
			}
			s.AddSphere(center, 0.2, m)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}
