package core

import "testing"

func TestSeededSampler_Reproducible(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)

	for i := 0; i < 100; i++ {
		x, y := a.Get1D(), b.Get1D()
		if x != y {
			t.Fatalf("Sample %d differs: %f vs %f", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("Sample %d out of [0,1): %f", i, x)
		}
	}
}

func TestCenterSampler(t *testing.T) {
	var s CenterSampler
	u, v := s.Get2D()
	if s.Get1D() != 0.5 || u != 0.5 || v != 0.5 {
		t.Errorf("Expected pixel centre samples of 0.5, got %f, %f, %f", s.Get1D(), u, v)
	}
}
