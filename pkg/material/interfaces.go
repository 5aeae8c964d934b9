package material

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Kind selects which scattering behavior a Material has
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material is a closed set of surface responses selected by Kind.
// Only the fields relevant to the kind are meaningful.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal
	Fuzz            float64   // Metal: 0 is a perfect mirror, 1 is very fuzzy
	RefractiveIndex float64   // Dielectric
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// Scatter computes the outgoing ray for rayIn hitting a surface with this
// material. It returns false when the material absorbs the ray.
func (m Material) Scatter(rayIn core.Ray, hit geometry.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return scatterLambertian(m, hit, sampler)
	case KindMetal:
		return scatterMetal(m, rayIn, hit, sampler)
	case KindDielectric:
		return scatterDielectric(m, rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// Validate reports whether the material parameters are physically usable
func (m Material) Validate() error {
	switch m.Kind {
	case KindLambertian, KindMetal:
		if !m.Albedo.IsFinite() || m.Albedo.X < 0 || m.Albedo.Y < 0 || m.Albedo.Z < 0 {
			return fmt.Errorf("%v albedo %v must be finite and non-negative", m.Kind, m.Albedo)
		}
		if m.Kind == KindMetal && (m.Fuzz < 0 || m.Fuzz > 1) {
			return fmt.Errorf("metal fuzz %v outside [0, 1]", m.Fuzz)
		}
	case KindDielectric:
		if !(m.RefractiveIndex > 0) {
			return fmt.Errorf("dielectric refractive index %v must be positive", m.RefractiveIndex)
		}
	default:
		return fmt.Errorf("unknown material kind %v", m.Kind)
	}
	return nil
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
