package integrator

import (
	"math"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// FindNearestHit returns the closest intersection in front of the ray origin among
// the candidate shapes. A nil candidates slice means every shape. Shapes without
// geometry are skipped, and on equal distances the earlier candidate wins.
func FindNearestHit(ray core.Ray, shapes []*scene.Shape, candidates []int) (Hit, bool) {
	return FindNearestHitEpsilon(ray, shapes, candidates, DefaultConfig().HitEpsilon)
}

// FindNearestHitEpsilon is FindNearestHit with an explicit minimum distance
func FindNearestHitEpsilon(ray core.Ray, shapes []*scene.Shape, candidates []int, epsilon float64) (Hit, bool) {
	nearest := NoHit
	found := false

	forEachCandidate(shapes, candidates, func(index int, shape *scene.Shape) {
		t, ok := shape.Geometry().RayIntersectDepth(ray, math.Inf(1))
		if !ok || !(t > epsilon) {
			return
		}
		if t < nearest.T {
			nearest = Hit{T: t, ShapeIndex: index}
			found = true
		}
	})

	return nearest, found
}

// FindAllHits returns every intersection in front of the ray origin among the
// candidate shapes, sorted nearest first. Equal distances keep candidate order.
func FindAllHits(ray core.Ray, shapes []*scene.Shape, candidates []int) []Hit {
	return FindAllHitsEpsilon(ray, shapes, candidates, DefaultConfig().HitEpsilon)
}

// FindAllHitsEpsilon is FindAllHits with an explicit minimum distance
func FindAllHitsEpsilon(ray core.Ray, shapes []*scene.Shape, candidates []int, epsilon float64) []Hit {
	var hits []Hit

	forEachCandidate(shapes, candidates, func(index int, shape *scene.Shape) {
		t, ok := shape.Geometry().RayIntersectDepth(ray, math.Inf(1))
		if ok && t > epsilon {
			hits = append(hits, Hit{T: t, ShapeIndex: index})
		}
	})

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].T < hits[j].T
	})

	return hits
}

// AllExcept returns the indices 0..n-1 without skip, for secondary rays that
// must not see the surface they leave from
func AllExcept(n, skip int) []int {
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != skip {
			indices = append(indices, i)
		}
	}
	return indices
}

// forEachCandidate calls fn for every candidate shape that has geometry.
// Out-of-range candidate indices are ignored.
func forEachCandidate(shapes []*scene.Shape, candidates []int, fn func(index int, shape *scene.Shape)) {
	count := len(candidates)
	if candidates == nil {
		count = len(shapes)
	}

	for i := 0; i < count; i++ {
		index := i
		if candidates != nil {
			index = candidates[i]
		}
		if index < 0 || index >= len(shapes) {
			continue
		}
		shape := shapes[index]
		if shape == nil || !shape.HasGeometry() {
			continue
		}
		fn(index, shape)
	}
}
