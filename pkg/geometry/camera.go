package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ErrDegenerateCamera is returned when a camera configuration cannot produce a viewing basis
var ErrDegenerateCamera = errors.New("degenerate camera configuration")

// CameraConfig describes a camera before its viewing basis is derived
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up direction, defaults to +Y
	VFov          float64   // Vertical field of view in degrees, defaults to 90
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the plane in focus, 0 to auto-calculate
}

// Camera generates rays for rendering. It is immutable once constructed and
// safe to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// withDefaults fills in the optional fields of a camera configuration
func (config CameraConfig) withDefaults() CameraConfig {
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.VFov == 0 {
		config.VFov = 90
	}
	if config.FocusDistance == 0 {
		if config.Aperture > 0 {
			config.FocusDistance = config.Center.Subtract(config.LookAt).Length()
		} else {
			config.FocusDistance = 1
		}
	}
	return config
}

// NewCamera derives the viewing basis from the configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	config = config.withDefaults()

	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("%w: vertical field of view %v outside (0, 180)", ErrDegenerateCamera, config.VFov)
	}
	if config.AspectRatio <= 0 || math.IsInf(config.AspectRatio, 0) || math.IsNaN(config.AspectRatio) {
		return nil, fmt.Errorf("%w: aspect ratio %v must be positive", ErrDegenerateCamera, config.AspectRatio)
	}
	if config.Aperture < 0 {
		return nil, fmt.Errorf("%w: negative aperture %v", ErrDegenerateCamera, config.Aperture)
	}
	if config.FocusDistance < 0 {
		return nil, fmt.Errorf("%w: negative focus distance %v", ErrDegenerateCamera, config.FocusDistance)
	}

	view := config.Center.Subtract(config.LookAt)
	if view.LengthSquared() == 0 {
		return nil, fmt.Errorf("%w: camera center and look-at point coincide at %v", ErrDegenerateCamera, config.Center)
	}
	w := view.Normalize()
	right := config.Up.Cross(w)
	if right.NearZero() {
		return nil, fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrDegenerateCamera, config.Up)
	}
	u := right.Normalize()
	v := w.Cross(u)

	// Viewport dimensions on the focus plane
	halfHeight := math.Tan(config.VFov * math.Pi / 180 / 2)
	viewportHeight := 2.0 * halfHeight
	viewportWidth := viewportHeight * config.AspectRatio

	horizontal := u.Multiply(viewportWidth * config.FocusDistance)
	vertical := v.Multiply(viewportHeight * config.FocusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1 and
// (0, 0) is the bottom-left corner. With a non-zero aperture the origin is
// jittered across the lens and the direction adjusted so the ray still passes
// through the same point on the focus plane.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// AspectRatio returns the width/height ratio of the viewport
func (c *Camera) AspectRatio() float64 {
	return c.horizontal.Length() / c.vertical.Length()
}

// LensRadius returns the radius of the lens disk, 0 for a pinhole camera
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
