package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// RayIntersectDepth tests if a ray intersects with the sphere
func (s *Sphere) RayIntersectDepth(ray core.Ray, tMax float64) (float64, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return 0, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first, then the far one (origin inside)
	root := (-halfB - sqrtD) / a
	if root <= 0 || root > tMax {
		root = (-halfB + sqrtD) / a
		if root <= 0 || root > tMax {
			return 0, false
		}
	}

	return root, true
}

// NormalAt returns the outward normal at a point on the sphere
func (s *Sphere) NormalAt(point core.Vec3) (core.Vec3, error) {
	offset := point.Subtract(s.Center)
	distance := offset.Length()
	if s.Radius <= 0 || math.Abs(distance-s.Radius) > tolerance(s.Radius) {
		return core.Vec3{}, fmt.Errorf("sphere at %v radius %g, point %v: %w",
			s.Center, s.Radius, point, ErrPointNotOnSurface)
	}
	return offset.Multiply(1 / distance), nil
}

// ContainsPoint reports whether the point is inside or on the sphere
func (s *Sphere) ContainsPoint(point core.Vec3) bool {
	return point.Subtract(s.Center).Length() <= s.Radius+tolerance(s.Radius)
}

func (s *Sphere) Kind() Kind { return KindSphere }

func (s *Sphere) isGeometry() {}
