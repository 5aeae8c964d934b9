package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_ClosestApproachOutsideRadius(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 0.5)
	// Passes 0.6 units from the center
	ray := core.NewRay(core.NewVec3(0.6, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1)); isHit {
		t.Error("Expected miss for ray passing outside the radius")
	}
}

func TestSphere_Hit_AxisDistance(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		radius    float64
		direction core.Vec3
	}{
		{"unit direction", 5, 1, core.NewVec3(0, 0, -1)},
		{"small sphere", 2, 0.25, core.NewVec3(0, 0, -1)},
		{"long direction", 10, 3, core.NewVec3(0, 0, -4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, -tt.distance), tt.radius)
			ray := core.NewRay(core.Vec3{}, tt.direction)

			hit, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expectedT := (tt.distance - tt.radius) / tt.direction.Length()
			if math.Abs(hit.T-expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
			}

			expectedNormal := core.NewVec3(0, 0, 1)
			if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
			}
			if !hit.FrontFace {
				t.Error("Expected front face hit")
			}
		})
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_NegativeRadius(t *testing.T) {
	// An inverted sphere seen from outside reports its surface as a back face
	sphere := NewSphere(core.NewVec3(0, 0, 0), -1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Expected inverted sphere to report a back face")
	}
	if want := core.NewVec3(0, 0, 1); hit.Normal.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", want, hit.Normal)
	}
}

func TestSphere_Hit_SelfIntersectionEpsilon(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	// Ray starting on the surface heading inward: near root is ~0, far root is 2
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1))
	if !isHit {
		t.Fatal("Expected far-side hit, but got miss")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected far root t=2, got t=%f", hit.T)
	}

	// Ray starting on the surface heading outward: both roots are <= 0
	ray = core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	if hit, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1)); isHit {
		t.Errorf("Expected miss for ray leaving the surface, got t=%f", hit.T)
	}

	// Sphere entirely behind the ray
	ray = core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))
	if _, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1)); isHit {
		t.Error("Expected miss for sphere behind the ray")
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1))
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
	if !hit.FrontFace {
		t.Error("Expected a grazing hit to count as a front face")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, HitEpsilon, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_NormalOpposesRay(t *testing.T) {
	sampler := core.NewSeededSampler(11)
	spheres := []Sphere{
		NewSphere(core.NewVec3(0, 0, 0), 1),
		NewSphere(core.NewVec3(0.3, -0.2, 0.1), -0.8),
	}

	for i := 0; i < 2000; i++ {
		origin := core.RandomVec3(sampler, -2, 2)
		direction := core.RandomUnitVector(sampler)
		ray := core.NewRay(origin, direction)

		for _, sphere := range spheres {
			hit, isHit := sphere.Hit(ray, HitEpsilon, math.Inf(1))
			if !isHit {
				continue
			}
			if d := ray.Direction.Dot(hit.Normal); d > 0 {
				t.Fatalf("Normal %v does not oppose ray direction %v (dot=%f)", hit.Normal, ray.Direction, d)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Fatalf("Expected unit normal, got length %f", hit.Normal.Length())
			}
			if hit.T < HitEpsilon {
				t.Fatalf("Hit t=%g below epsilon", hit.T)
			}
		}
	}
}

func TestSphere_Validate(t *testing.T) {
	if err := NewSphere(core.NewVec3(0, 0, 0), 1).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := NewSphere(core.NewVec3(0, 0, 0), -0.5).Validate(); err != nil {
		t.Errorf("Negative radius should be valid, got %v", err)
	}
	if err := NewSphere(core.NewVec3(0, 0, 0), 0).Validate(); !errors.Is(err, ErrZeroRadius) {
		t.Errorf("Expected ErrZeroRadius, got %v", err)
	}
	if err := NewSphere(core.NewVec3(math.NaN(), 0, 0), 1).Validate(); err == nil {
		t.Error("Expected error for NaN center")
	}
	if err := NewSphere(core.NewVec3(0, 0, 0), math.Inf(1)).Validate(); err == nil {
		t.Error("Expected error for infinite radius")
	}
}
