package integrator

import (
	"errors"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidHit is returned when a hit does not refer to a shape with geometry
var ErrInvalidHit = errors.New("integrator: hit does not refer to a shape with geometry")

// Hit is a candidate ray-surface intersection: distance along the ray and
// the index of the shape in the collection that was searched
type Hit struct {
	T          float64
	ShapeIndex int
}

// NoHit is the sentinel hit at infinite distance
var NoHit = Hit{T: math.Inf(1), ShapeIndex: -1}

// Config holds the numeric tolerances and tone constants of the shading core
type Config struct {
	HitEpsilon       float64    // Minimum accepted intersection distance
	ShadowBias       float64    // Offset of secondary ray origins off the surface
	OpaqueThreshold  float64    // Alpha within this of 1 blocks a shadow ray outright
	CompositeCutoff  float64    // Compositing stops once remaining light drops to this
	Attenuation      float64    // k in 1/(1 + k·d²)
	RoughnessDamping float64    // Reflection weight is metalness·(1 - roughness·damping)
	MissColor        core.Color // Secondary ray escaped the scene
	NoHitColor       core.Color // Advanced shading asked to shade a hit at infinity
}

// DefaultConfig returns the reference tolerances and tone constants
func DefaultConfig() Config {
	return Config{
		HitEpsilon:       1e-9,
		ShadowBias:       1e-4,
		OpaqueThreshold:  1e-12,
		CompositeCutoff:  1e-6,
		Attenuation:      0.03,
		RoughnessDamping: 0.8,
		MissColor:        core.Magenta,
		NoHitColor:       core.Magenta,
	}
}

// Integrator computes the color seen along one camera ray
type Integrator interface {
	RayColor(ray core.Ray, shapes []*scene.Shape, lights []scene.Light) (core.Color, error)
}

// FlatColorIntegrator shows the unlit surface color of the nearest hit
type FlatColorIntegrator struct {
	Config Config
}

func (fi *FlatColorIntegrator) RayColor(ray core.Ray, shapes []*scene.Shape, _ []scene.Light) (core.Color, error) {
	hit, ok := FindNearestHitEpsilon(ray, shapes, nil, fi.Config.HitEpsilon)
	if !ok {
		return core.OpaqueBlack, nil
	}
	return SurfaceColor(shapes[hit.ShapeIndex]).WithAlpha(1), nil
}

// DirectLightIntegrator shades the nearest hit with direct lighting only
type DirectLightIntegrator struct {
	Config Config
}

func (di *DirectLightIntegrator) RayColor(ray core.Ray, shapes []*scene.Shape, lights []scene.Light) (core.Color, error) {
	hit, ok := FindNearestHitEpsilon(ray, shapes, nil, di.Config.HitEpsilon)
	if !ok {
		return core.OpaqueBlack, nil
	}
	color, err := ShadeHit(hit, ray, shapes, lights, di.Config)
	if err != nil {
		return core.Color{}, err
	}
	return color.Clamp().Over(core.OpaqueBlack), nil
}

// AdvancedIntegrator adds recursive reflection and refraction to direct lighting
type AdvancedIntegrator struct {
	Config   Config
	MaxDepth int
}

func (ai *AdvancedIntegrator) RayColor(ray core.Ray, shapes []*scene.Shape, lights []scene.Light) (core.Color, error) {
	hit, ok := FindNearestHitEpsilon(ray, shapes, nil, ai.Config.HitEpsilon)
	if !ok {
		return core.OpaqueBlack, nil
	}
	return ShadeHitAdvanced(hit, ray, shapes, lights, ai.MaxDepth, ai.Config)
}

// CompositeIntegrator blends every surface along the ray front to back over opaque black
type CompositeIntegrator struct {
	Config Config
}

func (ci *CompositeIntegrator) RayColor(ray core.Ray, shapes []*scene.Shape, lights []scene.Light) (core.Color, error) {
	hits := FindAllHitsEpsilon(ray, shapes, nil, ci.Config.HitEpsilon)
	if len(hits) == 0 {
		return core.OpaqueBlack, nil
	}
	color, err := CompositeHits(hits, ray, shapes, lights, ci.Config)
	if err != nil {
		return core.Color{}, err
	}
	return premultipliedOver(color, core.OpaqueBlack), nil
}

// premultipliedOver composites a premultiplied color over an opaque background
func premultipliedOver(c, background core.Color) core.Color {
	rest := 1 - c.A
	return core.Color{
		R: c.R + background.R*rest,
		G: c.G + background.G*rest,
		B: c.B + background.B*rest,
		A: c.A + background.A*rest,
	}
}
