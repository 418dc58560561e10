package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidProperty is returned by setters for NaN, infinite or out-of-range values
var ErrInvalidProperty = errors.New("material: invalid property value")

// Defaults for the scalar properties
const (
	DefaultRoughness         = 0.5
	DefaultMetalness         = 0.0
	DefaultAbsorption        = 0.0
	DefaultTransmission      = 0.0
	DefaultRefractiveIndex   = 1.0
	DefaultEmissiveIntensity = 1.0

	// metallicThreshold is the metalness above which a surface mirrors
	metallicThreshold = 0.5
)

// Material is a bag of surface properties. The three colors are optional:
// an absent albedo is different from a black one and lets the renderer fall
// back to a per-shape default color.
type Material struct {
	albedo      core.Color
	hasAlbedo   bool
	specular    core.Color
	hasSpecular bool
	emissive    core.Color
	hasEmissive bool

	roughness         float64
	metalness         float64
	absorption        float64
	transmission      float64
	refractiveIndex   float64
	emissiveIntensity float64
}

// New creates a material with no colors and default scalar properties
func New() *Material {
	return &Material{
		roughness:         DefaultRoughness,
		metalness:         DefaultMetalness,
		absorption:        DefaultAbsorption,
		transmission:      DefaultTransmission,
		refractiveIndex:   DefaultRefractiveIndex,
		emissiveIntensity: DefaultEmissiveIntensity,
	}
}

// NewDiffuse creates a material with only an albedo color
func NewDiffuse(albedo core.Color) *Material {
	m := New()
	m.SetAlbedo(albedo)
	return m
}

// Albedo returns the base color and whether one is set
func (m *Material) Albedo() (core.Color, bool) { return m.albedo, m.hasAlbedo }

// SetAlbedo sets the base color
func (m *Material) SetAlbedo(c core.Color) { m.albedo, m.hasAlbedo = c, true }

// ClearAlbedo removes the base color
func (m *Material) ClearAlbedo() { m.albedo, m.hasAlbedo = core.Color{}, false }

// Specular returns the specular color and whether one is set
func (m *Material) Specular() (core.Color, bool) { return m.specular, m.hasSpecular }

// SetSpecular sets the specular color
func (m *Material) SetSpecular(c core.Color) { m.specular, m.hasSpecular = c, true }

// ClearSpecular removes the specular color
func (m *Material) ClearSpecular() { m.specular, m.hasSpecular = core.Color{}, false }

// Emissive returns the emitted color and whether one is set
func (m *Material) Emissive() (core.Color, bool) { return m.emissive, m.hasEmissive }

// SetEmissive sets the emitted color
func (m *Material) SetEmissive(c core.Color) { m.emissive, m.hasEmissive = c, true }

// ClearEmissive removes the emitted color
func (m *Material) ClearEmissive() { m.emissive, m.hasEmissive = core.Color{}, false }

func (m *Material) Roughness() float64         { return m.roughness }
func (m *Material) Metalness() float64         { return m.metalness }
func (m *Material) Absorption() float64        { return m.absorption }
func (m *Material) Transmission() float64      { return m.transmission }
func (m *Material) RefractiveIndex() float64   { return m.refractiveIndex }
func (m *Material) EmissiveIntensity() float64 { return m.emissiveIntensity }

// SetRoughness sets roughness in [0, 1]
func (m *Material) SetRoughness(v float64) error {
	if err := checkRange("roughness", v, 0, 1); err != nil {
		return err
	}
	m.roughness = v
	return nil
}

// SetMetalness sets metalness in [0, 1]
func (m *Material) SetMetalness(v float64) error {
	if err := checkRange("metalness", v, 0, 1); err != nil {
		return err
	}
	m.metalness = v
	return nil
}

// SetAbsorption sets absorption in [0, 1]
func (m *Material) SetAbsorption(v float64) error {
	if err := checkRange("absorption", v, 0, 1); err != nil {
		return err
	}
	m.absorption = v
	return nil
}

// SetTransmission sets transmission in [0, 1]
func (m *Material) SetTransmission(v float64) error {
	if err := checkRange("transmission", v, 0, 1); err != nil {
		return err
	}
	m.transmission = v
	return nil
}

// SetRefractiveIndex sets the index of refraction, at least 1
func (m *Material) SetRefractiveIndex(v float64) error {
	if err := checkRange("refractive index", v, 1, math.MaxFloat64); err != nil {
		return err
	}
	m.refractiveIndex = v
	return nil
}

// SetEmissiveIntensity sets the emission multiplier, at least 0
func (m *Material) SetEmissiveIntensity(v float64) error {
	if err := checkRange("emissive intensity", v, 0, math.MaxFloat64); err != nil {
		return err
	}
	m.emissiveIntensity = v
	return nil
}

func checkRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %v is not finite: %w", name, v, ErrInvalidProperty)
	}
	if v < lo || v > hi {
		return fmt.Errorf("%s %v outside [%v, %v]: %w", name, v, lo, hi, ErrInvalidProperty)
	}
	return nil
}

// Alpha returns the albedo alpha, or 1 (opaque) when no albedo is set
func (m *Material) Alpha() float64 {
	if m == nil || !m.hasAlbedo {
		return 1
	}
	return m.albedo.A
}

// IsReflective reports whether the surface mirrors: a specular color or high metalness
func (m *Material) IsReflective() bool {
	return m.hasSpecular || m.metalness > metallicThreshold
}

// IsTransparent reports whether light passes through the surface
func (m *Material) IsTransparent() bool {
	return m.transmission > 0 || (m.hasAlbedo && m.albedo.A < 1)
}

// IsMetallic reports whether metalness dominates
func (m *Material) IsMetallic() bool {
	return m.metalness > metallicThreshold
}

// IsEmissive reports whether the surface adds light of its own
func (m *Material) IsEmissive() bool {
	return m.hasEmissive && !m.emissive.IsBlack() && m.emissiveIntensity > 0
}

// TransmissionWeight returns transmission, or 1 - albedo alpha when transmission is zero
func (m *Material) TransmissionWeight() float64 {
	if m.transmission > 0 {
		return m.transmission
	}
	return 1 - m.Alpha()
}
