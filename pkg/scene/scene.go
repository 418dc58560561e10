package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrIndexOutOfRange is returned when removing a shape or light that does not exist
var ErrIndexOutOfRange = errors.New("scene: index out of range")

// Scene (the world) contains everything needed for rendering. It is built and
// mutated between renders and read concurrently, never written, during one.
type Scene struct {
	Camera         *geometry.Camera
	Shapes         []*Shape // Ordered; a hit's ShapeIndex points into this slice
	Lights         []Light
	SamplingConfig SamplingConfig
}

// SamplingConfig holds the recommended render settings for a scene
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Anti-aliasing samples, a multiple of 4
	MaxDepth        int // Reflection/refraction recursion budget
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 4,
		MaxDepth:        6,
	}
}

// New creates an empty scene around a camera
func New(camera *geometry.Camera) *Scene {
	return &Scene{
		Camera:         camera,
		Shapes:         make([]*Shape, 0),
		Lights:         make([]Light, 0),
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// AddShape appends a shape and returns its index
func (s *Scene) AddShape(shape *Shape) int {
	s.Shapes = append(s.Shapes, shape)
	return len(s.Shapes) - 1
}

// Add is shorthand for AddShape(NewShape(g, m))
func (s *Scene) Add(g geometry.Geometry, m *material.Material) int {
	return s.AddShape(NewShape(g, m))
}

// RemoveShape removes the shape at index; later shapes shift down by one
func (s *Scene) RemoveShape(index int) error {
	if index < 0 || index >= len(s.Shapes) {
		return fmt.Errorf("shape %d of %d: %w", index, len(s.Shapes), ErrIndexOutOfRange)
	}
	s.Shapes = append(s.Shapes[:index], s.Shapes[index+1:]...)
	return nil
}

// AddLight adds a point light
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}

// AddPointLight is shorthand for AddLight(NewLight(...))
func (s *Scene) AddPointLight(position core.Vec3, color core.Color, intensity float64) {
	s.AddLight(NewLight(position, color, intensity))
}

// RemoveLight removes the light at index
func (s *Scene) RemoveLight(index int) error {
	if index < 0 || index >= len(s.Lights) {
		return fmt.Errorf("light %d of %d: %w", index, len(s.Lights), ErrIndexOutOfRange)
	}
	s.Lights = append(s.Lights[:index], s.Lights[index+1:]...)
	return nil
}

// GetPrimitiveCount returns the number of shapes that carry geometry
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		if shape.HasGeometry() {
			count++
		}
	}
	return count
}
