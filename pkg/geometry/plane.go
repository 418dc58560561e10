package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal vector
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(), // Ensure normal is normalized
	}
}

// RayIntersectDepth tests if a ray intersects with the plane
func (p *Plane) RayIntersectDepth(ray core.Ray, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane (or the plane is degenerate)
	if math.Abs(denominator) < 1e-12 {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= 0 || t > tMax {
		return 0, false
	}

	return t, true
}

// NormalAt returns the plane normal if the point lies on the plane
func (p *Plane) NormalAt(point core.Vec3) (core.Vec3, error) {
	if p.Normal.IsZero() {
		return core.Vec3{}, fmt.Errorf("plane normal is zero: %w", ErrDegenerate)
	}
	if !p.ContainsPoint(point) {
		return core.Vec3{}, fmt.Errorf("plane through %v normal %v, point %v: %w",
			p.Point, p.Normal, point, ErrPointNotOnSurface)
	}
	return p.Normal, nil
}

// ContainsPoint reports whether the point lies on the plane
func (p *Plane) ContainsPoint(point core.Vec3) bool {
	offset := point.Subtract(p.Point)
	return math.Abs(offset.Dot(p.Normal)) <= tolerance(offset.Length())
}

func (p *Plane) Kind() Kind { return KindPlane }

func (p *Plane) isGeometry() {}
