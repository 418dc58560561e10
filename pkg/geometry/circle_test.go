package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCircle_RayIntersectDepth(t *testing.T) {
	circle := NewCircle(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 1.0)

	tests := []struct {
		name      string
		origin    core.Vec3
		expectHit bool
	}{
		{"centre", core.NewVec3(0, 2, 0), true},
		{"inside radius", core.NewVec3(0.7, 2, 0), true},
		{"outside radius", core.NewVec3(1.2, 2, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth, ok := circle.RayIntersectDepth(core.NewRay(tt.origin, core.NewVec3(0, -1, 0)), math.Inf(1))
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if ok && math.Abs(depth-2) > 1e-9 {
				t.Errorf("Expected t=2, got %f", depth)
			}
		})
	}
}

func TestCircle_NormalAtAndContains(t *testing.T) {
	circle := NewCircle(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 3), 2.0)

	normal, err := circle.NormalAt(core.NewVec3(1, 1, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !normal.ApproxEqual(core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected normal (0,0,1), got %v", normal)
	}

	if circle.ContainsPoint(core.NewVec3(2, 2, 0)) {
		t.Error("Expected point beyond radius not to be contained")
	}
	if _, err := circle.NormalAt(core.NewVec3(2, 2, 0)); !errors.Is(err, ErrPointNotOnSurface) {
		t.Errorf("Expected ErrPointNotOnSurface, got %v", err)
	}
}
