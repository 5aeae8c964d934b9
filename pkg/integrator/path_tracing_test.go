package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// createTestScene creates a scene with a single sphere in front of the origin
func createTestScene(m material.Material) *scene.Scene {
	s := &scene.Scene{Background: scene.DefaultBackground}
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, m)
	return s
}

var approx = cmpopts.EquateApprox(0, 1e-12)

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	sc := createTestScene(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	sampler := core.NewSeededSampler(42)

	// Ray pointing at the sphere
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Test with depth 0 (should return black)
	integrator := NewPathTracingIntegrator(0)
	if color := integrator.RayColor(ray, sc, sampler); color != core.Black {
		t.Errorf("Expected black color for depth 0, got %v", color)
	}

	// Depth 1 hits the sphere and runs out of bounces before reaching the sky
	integrator = NewPathTracingIntegrator(1)
	if color := integrator.RayColor(ray, sc, sampler); color != core.Black {
		t.Errorf("Expected black color for depth 1 hit, got %v", color)
	}

	// Test with positive depth (should return some color)
	integrator = NewPathTracingIntegrator(3)
	if color := integrator.RayColor(ray, sc, sampler); color == core.Black {
		t.Error("Expected non-black color for positive depth")
	}
}

func TestPathTracingMissReturnsBackground(t *testing.T) {
	sc := createTestScene(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	integrator := NewPathTracingIntegrator(1)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	color := integrator.RayColor(ray, sc, core.NewSequenceSampler())
	if diff := cmp.Diff(core.SkyBlue, color, approx); diff != "" {
		t.Errorf("Background mismatch (-want +got):\n%s", diff)
	}
}

func TestPathTracingSingleDiffuseBounce(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.3, 0.3)
	sc := createTestScene(material.NewLambertian(albedo))
	integrator := NewPathTracingIntegrator(2)

	// The unit vector (0,0,1) sends the bounce straight back along the normal,
	// which sees the sky exactly at the horizon line
	sampler := core.NewSequenceSampler(0.5, 0.5, 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	color := integrator.RayColor(ray, sc, sampler)
	expected := albedo.MultiplyVec(core.NewVec3(0.75, 0.85, 1.0))
	if diff := cmp.Diff(expected, color, approx); diff != "" {
		t.Errorf("Single bounce mismatch (-want +got):\n%s", diff)
	}
}

func TestPathTracingAbsorption(t *testing.T) {
	sc := createTestScene(material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 1.0))
	integrator := NewPathTracingIntegrator(5)

	// Fuzz offset (0,0,-1) cancels the mirror direction, so the metal absorbs
	sampler := core.NewSequenceSampler(0.5, 0.5, 0.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if color := integrator.RayColor(ray, sc, sampler); color != core.Black {
		t.Errorf("Expected black for absorbed ray, got %v", color)
	}
}

func TestPathTracingGlassDoesNotTint(t *testing.T) {
	sc := createTestScene(material.NewDielectric(1.5))
	integrator := NewPathTracingIntegrator(50)
	sampler := core.NewSeededSampler(3)

	for i := 0; i < 200; i++ {
		dir := core.NewVec3(core.RandomInRange(sampler, -0.3, 0.3), core.RandomInRange(sampler, -0.3, 0.3), -1)
		color := integrator.RayColor(core.NewRay(core.Vec3{}, dir), sc, sampler)
		// Both sky colors have a full blue channel
		if math.Abs(color.Z-1) > 1e-9 {
			t.Fatalf("Expected untinted sky through glass, got %v", color)
		}
	}
}

func TestPathTracingRadianceBounded(t *testing.T) {
	sc := scene.NewMaterialsScene()
	integrator := NewPathTracingIntegrator(50)
	sampler := core.NewSeededSampler(11)

	for i := 0; i < 500; i++ {
		ray := core.NewRay(core.Vec3{}, core.RandomUnitVector(sampler))
		color := integrator.RayColor(ray, sc, sampler)
		for _, c := range []float64{color.X, color.Y, color.Z} {
			if c < 0 || c > 1+1e-12 || math.IsNaN(c) {
				t.Fatalf("Radiance %v outside [0,1]", color)
			}
		}
	}
}

func TestPathTracingDeterministic(t *testing.T) {
	sc := scene.NewDefaultScene()
	integrator := NewPathTracingIntegrator(10)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.1, -0.2, -1))

	a := integrator.RayColor(ray, sc, core.NewSeededSampler(99))
	b := integrator.RayColor(ray, sc, core.NewSeededSampler(99))
	if a != b {
		t.Errorf("Expected identical colors for identical seeds, got %v and %v", a, b)
	}
}
