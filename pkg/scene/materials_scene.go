package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewMaterialsScene creates a row of three spheres showing each material: a
// hollow glass shell, a diffuse sphere and a fuzzy gold metal sphere.
func NewMaterialsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Background: DefaultBackground,
		SamplingConfig: SamplingConfig{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
		CameraConfig: cameraConfig,
	}
	addMaterialSpheres(s)
	return s
}

// NewDefocusScene shows the materials scene from above and to the side with a
// wide aperture focused on the centre sphere.
func NewDefocusScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)
	defaultCameraConfig := geometry.CameraConfig{
		Center:        lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      2.0,
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Background: DefaultBackground,
		SamplingConfig: SamplingConfig{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
		CameraConfig: cameraConfig,
	}
	addMaterialSpheres(s)
	return s
}

func addMaterialSpheres(s *Scene) {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)
	// A negative inner radius turns the pair into a thin glass bubble
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.4, glass)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, gold)
}
