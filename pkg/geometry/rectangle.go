package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Rectangle represents a planar parallelogram defined by a corner and two edges.
// Cameras and boxes use it with orthogonal edges.
type Rectangle struct {
	Corner core.Vec3 // One corner of the rectangle
	U      Edge      // First edge, starting at Corner
	V      Edge      // Second edge, starting at Corner
	Normal core.Vec3 // Unit normal (U × V)
	d      float64   // Plane equation constant: normal · x = d
	w      core.Vec3 // Cached n / (n · (u × v)) for planar coordinates
}

// NewRectangle creates a new rectangle from a corner point and two edge vectors
func NewRectangle(corner, u, v core.Vec3) *Rectangle {
	cross := u.Cross(v)
	normal := cross.Normalize()

	var w core.Vec3
	if denom := normal.Dot(cross); denom != 0 {
		w = normal.Multiply(1.0 / denom)
	}

	return &Rectangle{
		Corner: corner,
		U:      NewEdge(corner, u),
		V:      NewEdge(corner, v),
		Normal: normal,
		d:      normal.Dot(corner),
		w:      w,
	}
}

// Width returns the length of the U edge
func (r *Rectangle) Width() float64 { return r.U.Length }

// Height returns the length of the V edge
func (r *Rectangle) Height() float64 { return r.V.Length }

// Center returns the centre point of the rectangle
func (r *Rectangle) Center() core.Vec3 {
	return r.PointAt(0.5, 0.5)
}

// PointAt returns Corner + s·U + t·V
func (r *Rectangle) PointAt(s, t float64) core.Vec3 {
	return r.Corner.Add(r.U.Vector().Multiply(s)).Add(r.V.Vector().Multiply(t))
}

// planarCoordinates returns the (alpha, beta) coordinates of a point in the U/V basis
func (r *Rectangle) planarCoordinates(point core.Vec3) (float64, float64) {
	hitVector := point.Subtract(r.Corner)
	u, v := r.U.Vector(), r.V.Vector()
	return r.w.Dot(hitVector.Cross(v)), r.w.Dot(u.Cross(hitVector))
}

// RayIntersectDepth tests if a ray intersects with the rectangle
func (r *Rectangle) RayIntersectDepth(ray core.Ray, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(r.Normal)

	// Parallel ray or degenerate rectangle
	if math.Abs(denominator) < 1e-12 {
		return 0, false
	}

	t := (r.d - ray.Origin.Dot(r.Normal)) / denominator
	if t <= 0 || t > tMax {
		return 0, false
	}

	alpha, beta := r.planarCoordinates(ray.At(t))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, false
	}

	return t, true
}

// NormalAt returns the rectangle normal if the point lies on it
func (r *Rectangle) NormalAt(point core.Vec3) (core.Vec3, error) {
	if r.Normal.IsZero() {
		return core.Vec3{}, fmt.Errorf("rectangle edges are parallel: %w", ErrDegenerate)
	}
	if !r.ContainsPoint(point) {
		return core.Vec3{}, fmt.Errorf("rectangle at %v, point %v: %w", r.Corner, point, ErrPointNotOnSurface)
	}
	return r.Normal, nil
}

// ContainsPoint reports whether the point lies on the rectangle
func (r *Rectangle) ContainsPoint(point core.Vec3) bool {
	if r.Normal.IsZero() {
		return false
	}
	scale := max(r.U.Length, r.V.Length)
	if math.Abs(point.Subtract(r.Corner).Dot(r.Normal)) > tolerance(scale) {
		return false
	}
	eps := SurfaceTolerance
	alpha, beta := r.planarCoordinates(point)
	return alpha >= -eps && alpha <= 1+eps && beta >= -eps && beta <= 1+eps
}

func (r *Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) isGeometry() {}
