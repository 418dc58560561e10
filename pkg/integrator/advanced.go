package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// traceStats records how deep a recursive shade went
type traceStats struct {
	calls    int
	maxLevel int
}

func (ts *traceStats) enter(level int) {
	if ts == nil {
		return
	}
	ts.calls++
	ts.maxLevel = max(ts.maxLevel, level)
}

// ShadeHitAdvanced shades a hit with direct light plus recursively traced mirror
// reflection and refraction, bounded by depth. depth <= 0 returns opaque black;
// a hit at infinite distance returns cfg.NoHitColor. The result is opaque and
// clamped to [0, 1].
func ShadeHitAdvanced(hit Hit, ray core.Ray, shapes []*scene.Shape, lights []scene.Light, depth int, cfg Config) (core.Color, error) {
	return shadeAdvanced(hit, ray, shapes, lights, depth, cfg, nil, 1)
}

func shadeAdvanced(hit Hit, ray core.Ray, shapes []*scene.Shape, lights []scene.Light, depth int, cfg Config, stats *traceStats, level int) (core.Color, error) {
	if depth <= 0 {
		return core.OpaqueBlack, nil
	}
	if math.IsInf(hit.T, 1) {
		return cfg.NoHitColor, nil
	}
	stats.enter(level)

	si, err := resolveHit(hit, ray, shapes)
	if err != nil {
		return core.Color{}, err
	}
	result := shadeDirect(si, hit.ShapeIndex, shapes, lights, cfg).WithAlpha(1)

	m := si.shape.Material()
	if m == nil {
		return result.Clamp(), nil
	}

	// Reflection
	if m.IsReflective() {
		direction := material.ReflectedDirection(ray.Direction, si.normal)
		reflected, err := traceSecondary(si.point, direction, hit.ShapeIndex, shapes, lights, depth, cfg, stats, level)
		if err != nil {
			return core.Color{}, err
		}
		result = result.Lerp(reflected, m.Metalness()*(1-m.Roughness()*cfg.RoughnessDamping))
	}

	// Refraction
	if m.IsTransparent() {
		direction := m.RefractedDirection(ray.Direction, si.normal)
		transmitted, err := traceSecondary(si.point, direction, hit.ShapeIndex, shapes, lights, depth, cfg, stats, level)
		if err != nil {
			return core.Color{}, err
		}
		result = result.Lerp(transmitted, m.TransmissionWeight()*(1-m.Metalness()))
	}

	// Emission adds on top
	if emissive, ok := m.Emissive(); ok {
		result = result.WithRGB(result.RGB().Add(emissive.RGB().Multiply(m.EmissiveIntensity())))
	}

	return result.Clamp(), nil
}

// traceSecondary follows a reflected or refracted ray leaving the shape at index
// self and shades whatever it reaches with one less level of depth
func traceSecondary(origin, direction core.Vec3, self int, shapes []*scene.Shape, lights []scene.Light, depth int, cfg Config, stats *traceStats, level int) (core.Color, error) {
	ray := core.NewRay(origin.Add(direction.Multiply(cfg.ShadowBias)), direction)

	hit, ok := FindNearestHitEpsilon(ray, shapes, AllExcept(len(shapes), self), cfg.HitEpsilon)
	if !ok {
		return cfg.MissColor, nil
	}
	return shadeAdvanced(hit, ray, shapes, lights, depth-1, cfg, stats, level+1)
}
