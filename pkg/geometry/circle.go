package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Circle represents a flat circular disc in 3D space
type Circle struct {
	Center core.Vec3 // Center of the disc
	Normal core.Vec3 // Unit normal ("up" from the disc)
	Radius float64
}

// NewCircle creates a new circle
func NewCircle(center, normal core.Vec3, radius float64) *Circle {
	return &Circle{
		Center: center,
		Normal: normal.Normalize(),
		Radius: radius,
	}
}

// RayIntersectDepth tests if a ray intersects the disc
func (c *Circle) RayIntersectDepth(ray core.Ray, tMax float64) (float64, bool) {
	denom := c.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-12 {
		return 0, false // Ray is parallel to disc
	}

	t := c.Normal.Dot(c.Center.Subtract(ray.Origin)) / denom
	if t <= 0 || t > tMax {
		return 0, false
	}

	if ray.At(t).Subtract(c.Center).LengthSquared() > c.Radius*c.Radius {
		return 0, false // Outside disc
	}

	return t, true
}

// NormalAt returns the disc normal if the point lies on the disc
func (c *Circle) NormalAt(point core.Vec3) (core.Vec3, error) {
	if c.Normal.IsZero() || c.Radius <= 0 {
		return core.Vec3{}, fmt.Errorf("circle normal %v radius %g: %w", c.Normal, c.Radius, ErrDegenerate)
	}
	if !c.ContainsPoint(point) {
		return core.Vec3{}, fmt.Errorf("circle at %v radius %g, point %v: %w",
			c.Center, c.Radius, point, ErrPointNotOnSurface)
	}
	return c.Normal, nil
}

// ContainsPoint reports whether the point lies on the disc
func (c *Circle) ContainsPoint(point core.Vec3) bool {
	offset := point.Subtract(c.Center)
	tol := tolerance(c.Radius)
	if math.Abs(offset.Dot(c.Normal)) > tol {
		return false
	}
	return offset.Length() <= c.Radius+tol
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) isGeometry() {}
