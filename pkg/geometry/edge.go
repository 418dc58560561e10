package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Edge is a line segment: an origin, a unit direction and a length
type Edge struct {
	Origin    core.Vec3
	Direction core.Vec3
	Length    float64
}

// NewEdge creates an edge from an origin and a (non-normalized) vector
func NewEdge(origin, vector core.Vec3) Edge {
	return Edge{
		Origin:    origin,
		Direction: vector.Normalize(),
		Length:    vector.Length(),
	}
}

// Vector returns direction scaled by length
func (e Edge) Vector() core.Vec3 {
	return e.Direction.Multiply(e.Length)
}

// End returns the far end point of the edge
func (e Edge) End() core.Vec3 {
	return e.Origin.Add(e.Vector())
}

// PointAt returns the point at fraction s of the edge (0 = origin, 1 = end)
func (e Edge) PointAt(s float64) core.Vec3 {
	return e.Origin.Add(e.Direction.Multiply(s * e.Length))
}
