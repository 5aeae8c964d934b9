package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestScene_HitNearest(t *testing.T) {
	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	blue := material.NewLambertian(core.NewVec3(0, 0, 1))

	s := &Scene{}
	s.AddSphere(core.NewVec3(0, 0, -5), 0.5, red)
	s.AddSphere(core.NewVec3(0, 0, -2), 0.5, blue)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, m, ok := s.Hit(ray)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if m != blue {
		t.Errorf("Expected nearer blue sphere, got %v", m)
	}
	if math.Abs(hit.T-1.5) > 1e-12 {
		t.Errorf("Expected t=1.5, got %f", hit.T)
	}
}

func TestScene_HitTieKeepsFirst(t *testing.T) {
	first := material.NewLambertian(core.NewVec3(1, 0, 0))
	second := material.NewMetal(core.NewVec3(0, 1, 0), 0)

	s := &Scene{}
	s.AddSphere(core.NewVec3(0, 0, -2), 0.5, first)
	s.AddSphere(core.NewVec3(0, 0, -2), 0.5, second)

	_, m, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if m != first {
		t.Errorf("Expected first object to win the tie, got %v", m.Kind)
	}
}

func TestScene_HitMiss(t *testing.T) {
	s := NewDefaultScene()
	if _, _, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))); ok {
		t.Error("Expected ray pointing up to miss")
	}

	empty := &Scene{}
	if _, _, ok := empty.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected empty scene to miss")
	}
}

func TestScene_HitInsideHollowShell(t *testing.T) {
	s := NewMaterialsScene()
	// From the centre of the bubble the inner (negative radius) wall is nearest
	ray := core.NewRay(core.NewVec3(-1, 0, -1), core.NewVec3(0, 0, 1))
	hit, m, ok := s.Hit(ray)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if m.Kind != material.KindDielectric {
		t.Errorf("Expected glass, got %v", m.Kind)
	}
	if math.Abs(hit.T-0.4) > 1e-12 {
		t.Errorf("Expected inner wall at t=0.4, got %f", hit.T)
	}
	if !hit.FrontFace {
		t.Error("Inverted inner wall should be front-facing from inside")
	}
}

func TestScene_Preprocess(t *testing.T) {
	s := NewDefaultScene()
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	if s.Camera == nil {
		t.Fatal("Expected camera after Preprocess")
	}
	if math.Abs(s.Camera.AspectRatio()-16.0/9.0) > 1e-12 {
		t.Errorf("Expected aspect ratio from image size, got %f", s.Camera.AspectRatio())
	}
}

func TestScene_PreprocessErrors(t *testing.T) {
	lambertian := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	tests := []struct {
		name   string
		modify func(s *Scene)
		target error
	}{
		{"zero spp", func(s *Scene) { s.SamplingConfig.SamplesPerPixel = 0 }, ErrInvalidSampling},
		{"zero width", func(s *Scene) { s.SamplingConfig.Width = 0 }, ErrInvalidSampling},
		{"negative depth", func(s *Scene) { s.SamplingConfig.MaxDepth = -1 }, ErrInvalidSampling},
		{"zero radius", func(s *Scene) { s.AddSphere(core.NewVec3(0, 0, 0), 0, lambertian) }, geometry.ErrZeroRadius},
		{"degenerate camera", func(s *Scene) { s.CameraConfig.LookAt = s.CameraConfig.Center }, geometry.ErrDegenerateCamera},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefaultScene()
			tt.modify(s)
			err := s.Preprocess()
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}

	s := NewDefaultScene()
	s.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewDielectric(-1))
	if err := s.Preprocess(); err == nil {
		t.Error("Expected error for negative refractive index")
	}
}

func TestScene_BackgroundColor(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)
	up := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))

	s := &Scene{}
	if diff := cmp.Diff(core.SkyBlue, s.BackgroundColor(up), approx); diff != "" {
		t.Errorf("Default background mismatch (-want +got):\n%s", diff)
	}

	s.Background = Background{Horizon: core.Black, Zenith: core.NewVec3(1, 0, 0)}
	if diff := cmp.Diff(core.NewVec3(1, 0, 0), s.BackgroundColor(up), approx); diff != "" {
		t.Errorf("Custom background mismatch (-want +got):\n%s", diff)
	}
}

func TestRandomScene_Deterministic(t *testing.T) {
	a := NewRandomScene()
	b := NewRandomScene()
	if diff := cmp.Diff(a.Objects, b.Objects); diff != "" {
		t.Errorf("Random scene layout differs between builds (-a +b):\n%s", diff)
	}
	if len(a.Objects) < 4 {
		t.Errorf("Expected ground, feature spheres and small spheres, got %d objects", len(a.Objects))
	}
}

func TestCameraOverrides(t *testing.T) {
	s := NewDefocusScene(geometry.CameraConfig{Aperture: 0.5})
	if s.CameraConfig.Aperture != 0.5 {
		t.Errorf("Expected aperture override 0.5, got %f", s.CameraConfig.Aperture)
	}
	if s.CameraConfig.Center != core.NewVec3(3, 3, 2) {
		t.Errorf("Expected default center to survive, got %v", s.CameraConfig.Center)
	}
}

func TestScene_HitIndex(t *testing.T) {
	s := NewDefaultScene()

	_, index, ok := s.HitIndex(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	if !ok || index != 0 {
		t.Errorf("Expected small sphere (index 0), got %d (hit %t)", index, ok)
	}

	_, index, ok = s.HitIndex(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)))
	if !ok || index != 1 {
		t.Errorf("Expected ground sphere (index 1), got %d (hit %t)", index, ok)
	}

	if _, index, ok = s.HitIndex(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); ok || index != -1 {
		t.Errorf("Expected miss with index -1, got %d", index)
	}
}
