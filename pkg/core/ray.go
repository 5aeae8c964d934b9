package core

// Ray represents a ray with an origin and direction.
// The direction is not required to be normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Background returns the sky radiance seen along the ray when nothing is hit
func (r Ray) Background() Vec3 {
	return SkyGradient(r, White, SkyBlue)
}

// SkyGradient blends from the horizon color (straight down) to the zenith
// color (straight up) by the vertical component of the normalized direction.
func SkyGradient(r Ray, horizon, zenith Vec3) Vec3 {
	t := 0.5 * (r.Direction.Y/r.Direction.Length() + 1.0)
	return horizon.Lerp(zenith, t)
}
