package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrNoGeometry is returned when a geometric query is made on a shape without geometry
var ErrNoGeometry = errors.New("scene: shape has no geometry")

// Shape pairs an optional geometry with an optional material.
// Either may be absent; absence is a valid state with defined fallbacks.
type Shape struct {
	geometry geometry.Geometry
	material *material.Material
}

// NewShape creates a shape; either argument may be nil
func NewShape(g geometry.Geometry, m *material.Material) *Shape {
	return &Shape{geometry: g, material: m}
}

// Geometry returns the geometry, or nil when absent
func (s *Shape) Geometry() geometry.Geometry { return s.geometry }

// Material returns the material, or nil when absent
func (s *Shape) Material() *material.Material { return s.material }

func (s *Shape) SetGeometry(g geometry.Geometry)  { s.geometry = g }
func (s *Shape) ClearGeometry()                   { s.geometry = nil }
func (s *Shape) SetMaterial(m *material.Material) { s.material = m }
func (s *Shape) ClearMaterial()                   { s.material = nil }

func (s *Shape) HasGeometry() bool { return s.geometry != nil }
func (s *Shape) HasMaterial() bool { return s.material != nil }

// IsComplete reports whether both geometry and material are present
func (s *Shape) IsComplete() bool {
	return s.HasGeometry() && s.HasMaterial()
}

// Kind returns the geometry kind, KindUnknown without geometry
func (s *Shape) Kind() geometry.Kind {
	if s.geometry == nil {
		return geometry.KindUnknown
	}
	return s.geometry.Kind()
}

// Normal returns the outward surface normal at point
func (s *Shape) Normal(point core.Vec3) (core.Vec3, error) {
	if s.geometry == nil {
		return core.Vec3{}, ErrNoGeometry
	}
	n, err := s.geometry.NormalAt(point)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("%s normal: %w", s.geometry.Kind(), err)
	}
	return n, nil
}

// Alpha returns the material albedo alpha; shapes without material or albedo are opaque
func (s *Shape) Alpha() float64 {
	return s.material.Alpha()
}
