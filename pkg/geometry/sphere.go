package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// HitEpsilon is the smallest ray parameter accepted as a hit. It keeps
// scattered rays from re-intersecting the surface they start on.
const HitEpsilon = 1e-4

// ErrZeroRadius is returned when validating a sphere with zero radius
var ErrZeroRadius = errors.New("sphere radius must be non-zero")

// Sphere represents a sphere shape.
// A negative radius flips the outward normal inward, which models the inner
// wall of a hollow shell.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Validate reports whether the sphere is usable as scene geometry
func (s Sphere) Validate() error {
	if s.Radius == 0 {
		return ErrZeroRadius
	}
	if math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) || !s.Center.IsFinite() {
		return fmt.Errorf("sphere at %v with radius %v is not finite", s.Center, s.Radius)
	}
	return nil
}

// Hit tests if a ray intersects with the sphere within [tMin, tMax]
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	// Vector from ray origin to sphere center
	co := s.Center.Subtract(ray.Origin)

	// Quadratic t²|D|² - 2t(D·co) + |co|² - r² = 0, solved with the half-b form
	a := ray.Direction.LengthSquared()
	halfB := ray.Direction.Dot(co)
	c := co.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (halfB - sqrtD) / a
	if root < tMin || root > tMax {
		// Try the farther intersection point
		root = (halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return HitRecord{}, false
		}
	}

	hit := HitRecord{
		T:     root,
		Point: ray.At(root),
	}

	// Dividing by the signed radius keeps inverted spheres consistent
	outwardNormal := hit.Point.Subtract(s.Center).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}
