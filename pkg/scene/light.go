package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Light is a point light. Intensity is kept in [0, 1].
type Light struct {
	Position  core.Vec3
	Color     core.Color
	intensity float64
}

// NewLight creates a point light, clamping intensity to [0, 1]
func NewLight(position core.Vec3, color core.Color, intensity float64) Light {
	l := Light{Position: position, Color: color}
	l.SetIntensity(intensity)
	return l
}

// Intensity returns the light intensity in [0, 1]
func (l Light) Intensity() float64 { return l.intensity }

// SetIntensity clamps intensity to [0, 1]; NaN becomes 0
func (l *Light) SetIntensity(intensity float64) {
	if math.IsNaN(intensity) {
		intensity = 0
	}
	l.intensity = max(0, min(1, intensity))
}
