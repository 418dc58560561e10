package integrator

import (
	"reflect"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func sphereShape(center core.Vec3, radius float64, m *material.Material) *scene.Shape {
	return scene.NewShape(geometry.NewSphere(center, radius), m)
}

func TestFindNearestHit(t *testing.T) {
	shapes := []*scene.Shape{
		sphereShape(core.NewVec3(0, 0, -5), 1, nil),  // Hit at 4
		sphereShape(core.NewVec3(0, 0, -10), 1, nil), // Hit at 9
		sphereShape(core.NewVec3(0, 0, 5), 1, nil),   // Behind the ray
		scene.NewShape(nil, material.New()),          // No geometry
		sphereShape(core.NewVec3(5, 0, -5), 1, nil),  // Off the ray
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name       string
		candidates []int
		wantHit    bool
		wantT      float64
		wantIndex  int
	}{
		{"all shapes", nil, true, 4, 0},
		{"excluding nearest", AllExcept(len(shapes), 0), true, 9, 1},
		{"farther listed first", []int{1, 0}, true, 4, 0},
		{"only behind", []int{2}, false, 0, 0},
		{"only missing geometry", []int{3}, false, 0, 0},
		{"only off ray", []int{4}, false, 0, 0},
		{"out of range ignored", []int{-1, 17, 1}, true, 9, 1},
		{"empty candidates", []int{}, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := FindNearestHit(ray, shapes, tt.candidates)
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}
			if hit.ShapeIndex != tt.wantIndex {
				t.Errorf("Expected shape %d, got %d", tt.wantIndex, hit.ShapeIndex)
			}
			if diff := hit.T - tt.wantT; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.wantT, hit.T)
			}
		})
	}
}

func TestFindNearestHit_OriginInside(t *testing.T) {
	shapes := []*scene.Shape{sphereShape(core.NewVec3(0, 0, 0), 2, nil)}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	hit, ok := FindNearestHit(ray, shapes, nil)
	if !ok {
		t.Fatal("Expected hit from inside the sphere")
	}
	if diff := hit.T - 2; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected exit distance 2, got %v", hit.T)
	}
}

func TestFindNearestHit_TieKeepsFirst(t *testing.T) {
	shapes := []*scene.Shape{
		sphereShape(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.Red)),
		sphereShape(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.Blue)),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, ok := FindNearestHit(ray, shapes, nil)
	if !ok || hit.ShapeIndex != 0 {
		t.Errorf("Expected first shape to win the tie, got %v (hit=%v)", hit, ok)
	}

	hit, ok = FindNearestHit(ray, shapes, []int{1, 0})
	if !ok || hit.ShapeIndex != 1 {
		t.Errorf("Expected first candidate to win the tie, got %v (hit=%v)", hit, ok)
	}
}

func TestFindNearestHit_Epsilon(t *testing.T) {
	// Plane through the ray origin: distance 0 is never accepted
	shapes := []*scene.Shape{
		scene.NewShape(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), nil),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if hit, ok := FindNearestHit(ray, shapes, nil); ok {
		t.Errorf("Expected no hit at the ray origin, got %v", hit)
	}
}

func TestFindAllHits(t *testing.T) {
	shapes := []*scene.Shape{
		sphereShape(core.NewVec3(0, 0, -10), 1, nil), // 9
		sphereShape(core.NewVec3(0, 0, 5), 1, nil),   // Behind
		sphereShape(core.NewVec3(0, 0, -3), 1, nil),  // 2
		sphereShape(core.NewVec3(0, 0, -6), 1, nil),  // 5
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hits := FindAllHits(ray, shapes, nil)
	var indices []int
	for _, h := range hits {
		indices = append(indices, h.ShapeIndex)
	}

	expected := []int{2, 3, 0}
	if !reflect.DeepEqual(indices, expected) {
		t.Errorf("Expected order %v, got %v", expected, indices)
	}

	if hits := FindAllHits(ray, shapes, []int{1}); len(hits) != 0 {
		t.Errorf("Expected no hits, got %v", hits)
	}
}

func TestAllExcept(t *testing.T) {
	tests := []struct {
		n, skip  int
		expected []int
	}{
		{4, 1, []int{0, 2, 3}},
		{3, -1, []int{0, 1, 2}},
		{1, 0, []int{}},
		{0, 0, []int{}},
	}

	for _, tt := range tests {
		result := AllExcept(tt.n, tt.skip)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("AllExcept(%d, %d): expected %v, got %v", tt.n, tt.skip, tt.expected, result)
		}
	}
}
