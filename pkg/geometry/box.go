package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Box represents a rectangular box made up of 6 rectangles with optional rotation
type Box struct {
	Center   core.Vec3     // Center point of the box
	Size     core.Vec3     // Half-extents along each local axis
	Rotation core.Vec3     // Rotation angles in radians (X, Y, Z)
	faces    [6]*Rectangle // The 6 faces, normals pointing outward
}

// NewBox creates a new box with the given center, size, and rotation
// Size represents half-extents (so a size of (1,1,1) creates a 2x2x2 box)
// Rotation is in radians around X, Y, Z axes (applied in that order)
func NewBox(center, size, rotation core.Vec3) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a new axis-aligned box (no rotation)
func NewAxisAlignedBox(center, size core.Vec3) *Box {
	return NewBox(center, size, core.Vec3{})
}

// generateFaces creates the 6 faces of the box
func (b *Box) generateFaces() {
	// The 8 corners of a unit box centered at origin
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	for i := range corners {
		corners[i] = corners[i].MultiplyVec(b.Size).Rotate(b.Rotation).Add(b.Center)
	}

	// Each face: corner plus two edges whose cross product points outward
	faceCorners := [6][3]int{
		{4, 5, 7}, // front (Z+)
		{1, 0, 2}, // back (Z-)
		{5, 1, 6}, // right (X+)
		{0, 4, 3}, // left (X-)
		{3, 7, 2}, // top (Y+)
		{4, 0, 5}, // bottom (Y-)
	}
	for i, fc := range faceCorners {
		origin := corners[fc[0]]
		b.faces[i] = NewRectangle(origin, corners[fc[1]].Subtract(origin), corners[fc[2]].Subtract(origin))
	}
}

// Faces returns the six faces of the box
func (b *Box) Faces() [6]*Rectangle {
	return b.faces
}

// RayIntersectDepth returns the nearest intersection over all six faces
func (b *Box) RayIntersectDepth(ray core.Ray, tMax float64) (float64, bool) {
	closestT := tMax
	hit := false

	for _, face := range b.faces {
		if t, ok := face.RayIntersectDepth(ray, closestT); ok && t <= closestT {
			closestT = t
			hit = true
		}
	}

	return closestT, hit
}

// NormalAt returns the outward normal of the face the point lies on.
// On an edge or corner the face closest to the point wins.
func (b *Box) NormalAt(point core.Vec3) (core.Vec3, error) {
	bestDistance := math.Inf(1)
	var normal core.Vec3

	for _, face := range b.faces {
		if !face.ContainsPoint(point) {
			continue
		}
		distance := math.Abs(point.Subtract(face.Corner).Dot(face.Normal))
		if distance < bestDistance {
			bestDistance = distance
			normal = face.Normal
		}
	}

	if math.IsInf(bestDistance, 1) {
		return core.Vec3{}, fmt.Errorf("box at %v size %v, point %v: %w", b.Center, b.Size, point, ErrPointNotOnSurface)
	}
	return normal, nil
}

// ContainsPoint reports whether the point is inside or on the box
func (b *Box) ContainsPoint(point core.Vec3) bool {
	// Undo the rotation in reverse order to get box-local coordinates
	local := point.Subtract(b.Center).
		Rotate(core.NewVec3(0, 0, -b.Rotation.Z)).
		Rotate(core.NewVec3(0, -b.Rotation.Y, 0)).
		Rotate(core.NewVec3(-b.Rotation.X, 0, 0))

	tol := tolerance(max(b.Size.X, b.Size.Y, b.Size.Z))
	return math.Abs(local.X) <= b.Size.X+tol &&
		math.Abs(local.Y) <= b.Size.Y+tol &&
		math.Abs(local.Z) <= b.Size.Z+tol
}

func (b *Box) Kind() Kind { return KindBox }

func (b *Box) isGeometry() {}
