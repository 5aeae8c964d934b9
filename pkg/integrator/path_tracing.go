package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing with a fixed
// bounce limit and no Russian roulette.
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// MaxDepth returns the number of bounces a path may take
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, s, sampler, pt.maxDepth)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Black
	}

	hit, m, isHit := s.Hit(ray)
	if !isHit {
		return s.BackgroundColor(ray)
	}

	scatter, didScatter := m.Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Black
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, s, sampler, depth-1))
}
