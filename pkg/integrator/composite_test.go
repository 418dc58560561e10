package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// pane returns a 4x4 rectangle facing +z at the given depth
func pane(z float64, albedo core.Color) *scene.Shape {
	return scene.NewShape(
		geometry.NewRectangle(core.NewVec3(-2, -2, z), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0)),
		material.NewDiffuse(albedo),
	)
}

func TestCompositeHits_OpaqueFirst(t *testing.T) {
	lights := []scene.Light{headLight()}
	shapes := []*scene.Shape{
		sphereShape(core.Vec3{}, 1, material.NewDiffuse(core.Red)),
		pane(-2, core.NewColorAlpha(0, 1, 0, 0.5)),
		pane(-3, core.Blue),
	}
	cfg := DefaultConfig()

	lit, err := ShadeHit(frontHit(), cameraRay, shapes, lights, cfg)
	if err != nil {
		t.Fatalf("ShadeHit failed: %v", err)
	}
	expected := lit.Clamp().WithAlpha(1)

	hits := FindAllHits(cameraRay, shapes, nil)
	if len(hits) != 3 {
		t.Fatalf("Expected 3 hits, got %d", len(hits))
	}

	for n := 1; n <= len(hits); n++ {
		color, err := CompositeHits(hits[:n], cameraRay, shapes, lights, cfg)
		if err != nil {
			t.Fatalf("CompositeHits failed: %v", err)
		}
		if !color.ApproxEqual(expected, 1e-12) {
			t.Errorf("%d hits: expected %v, got %v", n, expected, color)
		}
	}

	// Hits behind an opaque surface are never shaded
	bogus := append([]Hit{hits[0]}, Hit{T: 10, ShapeIndex: 99})
	if _, err := CompositeHits(bogus, cameraRay, shapes, lights, cfg); err != nil {
		t.Errorf("Expected hits after an opaque surface to be skipped, got %v", err)
	}
}

func TestCompositeHits_TranslucentAlpha(t *testing.T) {
	lights := []scene.Light{headLight()}

	tests := []struct {
		a1, a2 float64
	}{
		{0.3, 0.6},
		{0.5, 0.5},
		{0.1, 0.9},
		{0, 0.4},
		{0, 0},
	}

	for _, tt := range tests {
		shapes := []*scene.Shape{
			pane(0, core.NewColorAlpha(1, 0, 0, tt.a1)),
			pane(-1, core.NewColorAlpha(0, 0, 1, tt.a2)),
		}
		hits := FindAllHits(cameraRay, shapes, nil)

		color, err := CompositeHits(hits, cameraRay, shapes, lights, DefaultConfig())
		if err != nil {
			t.Fatalf("CompositeHits failed: %v", err)
		}

		expected := 1 - (1-tt.a1)*(1-tt.a2)
		if math.Abs(color.A-expected) > 1e-12 {
			t.Errorf("alphas %v, %v: expected final alpha %v, got %v", tt.a1, tt.a2, expected, color.A)
		}
	}
}

func TestCompositeHits_TransparentSurfaceRevealsSphere(t *testing.T) {
	lights := []scene.Light{headLight()}
	sphere := sphereShape(core.Vec3{}, 1, material.NewDiffuse(core.Red))
	clear := scene.NewShape(
		geometry.NewPlane(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1)),
		material.NewDiffuse(core.NewColorAlpha(1, 1, 1, 0)),
	)

	alone, err := CompositeHits([]Hit{frontHit()}, cameraRay, []*scene.Shape{sphere}, lights, DefaultConfig())
	if err != nil {
		t.Fatalf("CompositeHits failed: %v", err)
	}

	shapes := []*scene.Shape{clear, sphere}
	hits := FindAllHits(cameraRay, shapes, nil)
	if len(hits) != 2 || hits[0].ShapeIndex != 0 {
		t.Fatalf("Expected the clear plane in front of the sphere, got %v", hits)
	}

	behind, err := CompositeHits(hits, cameraRay, shapes, lights, DefaultConfig())
	if err != nil {
		t.Fatalf("CompositeHits failed: %v", err)
	}
	if !behind.ApproxEqual(alone, 1e-12) {
		t.Errorf("Expected %v through the clear plane, got %v", alone, behind)
	}
}

func TestCompositeHits_Empty(t *testing.T) {
	color, err := CompositeHits(nil, cameraRay, nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("CompositeHits failed: %v", err)
	}
	if color != (core.Color{}) {
		t.Errorf("Expected fully transparent black, got %v", color)
	}
}
