package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestRefractedDirection_NormalIncidence(t *testing.T) {
	m := New()
	_ = m.SetRefractiveIndex(1.5)

	// Straight through at normal incidence, whichever way the normal faces
	incident := core.NewVec3(0, 0, -1)
	for _, normal := range []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)} {
		refracted := m.RefractedDirection(incident, normal)
		if !refracted.ApproxEqual(incident, 1e-9) {
			t.Errorf("Normal %v: expected %v, got %v", normal, incident, refracted)
		}
	}
}

func TestRefractedDirection_SnellsLaw(t *testing.T) {
	m := New()
	_ = m.SetRefractiveIndex(1.5)

	// 45° incidence entering glass from air
	incident := core.NewVec3(1, -1, 0).Normalize()
	normal := core.NewVec3(0, 1, 0)
	refracted := m.RefractedDirection(incident, normal)

	sinIn := math.Sin(math.Pi / 4)
	sinOut := math.Abs(refracted.X)
	if math.Abs(sinIn/sinOut-1.5) > 1e-9 {
		t.Errorf("Expected sin ratio 1.5, got %f", sinIn/sinOut)
	}
	if refracted.Y >= 0 {
		t.Errorf("Expected refracted ray to continue downward, got %v", refracted)
	}
	if math.Abs(refracted.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", refracted.Length())
	}
}

func TestRefractedDirection_Exiting(t *testing.T) {
	m := New()
	_ = m.SetRefractiveIndex(1.5)

	// Leaving glass at 30° bends away from the outward normal
	incident := core.NewVec3(math.Sqrt(3)/2, 0, 0.5)
	normal := core.NewVec3(1, 0, 0)
	refracted := m.RefractedDirection(incident, normal)

	expected := core.NewVec3(math.Sqrt(1-0.75*0.75), 0, 0.75)
	if !refracted.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, refracted)
	}
}

func TestRefractedDirection_TotalInternalReflection(t *testing.T) {
	m := New()
	_ = m.SetRefractiveIndex(1.5)

	// Exiting glass at 60° exceeds the critical angle (~41.8°)
	incident := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	normal := core.NewVec3(0, 1, 0) // outward normal, same side as the ray travels
	refracted := m.RefractedDirection(incident, normal)

	expected := core.NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)
	if !refracted.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected total internal reflection %v, got %v", expected, refracted)
	}
}

func TestRefractedDirection_IndexOnePassesStraight(t *testing.T) {
	m := New()
	incident := core.NewVec3(1, -2, 0.5).Normalize()

	refracted := m.RefractedDirection(incident, core.NewVec3(0, 1, 0))
	if !refracted.ApproxEqual(incident, 1e-9) {
		t.Errorf("Expected unchanged direction for index 1, got %v", refracted)
	}
}

func TestReflectedDirection(t *testing.T) {
	reflected := ReflectedDirection(core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0))
	expected := core.NewVec3(1, 1, 0).Normalize()
	if !reflected.ApproxEqual(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}
