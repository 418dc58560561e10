package geometry

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrPointNotOnSurface is returned when a normal is requested away from the surface
	ErrPointNotOnSurface = errors.New("geometry: point is not on the surface")
	// ErrDegenerate is returned for geometry or camera parameters that cannot define a surface
	ErrDegenerate = errors.New("geometry: degenerate parameters")
)

// SurfaceTolerance is the distance within which a point counts as lying on a surface
const SurfaceTolerance = 1e-6

// Kind identifies one of the closed set of geometry variants
type Kind int

const (
	KindUnknown Kind = iota
	KindBox
	KindCircle
	KindPlane
	KindRectangle
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCircle:
		return "circle"
	case KindPlane:
		return "plane"
	case KindRectangle:
		return "rectangle"
	case KindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Geometry is the closed sum type over *Box, *Circle, *Plane, *Rectangle and *Sphere.
// The unexported method keeps other packages from adding variants, so a type switch
// over the five is exhaustive.
type Geometry interface {
	// RayIntersectDepth returns the nearest intersection distance in (0, tMax]
	RayIntersectDepth(ray core.Ray, tMax float64) (float64, bool)
	// NormalAt returns the outward unit normal, or ErrPointNotOnSurface
	NormalAt(point core.Vec3) (core.Vec3, error)
	// ContainsPoint reports whether the point lies on the surface (flat shapes)
	// or inside/on the boundary (solids)
	ContainsPoint(point core.Vec3) bool
	Kind() Kind

	isGeometry()
}

// tolerance scales SurfaceTolerance with the magnitude of the shape
func tolerance(scale float64) float64 {
	return SurfaceTolerance * max(1, scale)
}
