package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// interaction is the local surface information at a hit
type interaction struct {
	shape  *scene.Shape
	point  core.Vec3
	normal core.Vec3 // Outward surface normal, whichever side the ray came from
}

// resolveHit computes the hit point and outward normal for a hit
func resolveHit(hit Hit, ray core.Ray, shapes []*scene.Shape) (interaction, error) {
	if hit.ShapeIndex < 0 || hit.ShapeIndex >= len(shapes) || shapes[hit.ShapeIndex] == nil {
		return interaction{}, fmt.Errorf("shape index %d of %d: %w", hit.ShapeIndex, len(shapes), ErrInvalidHit)
	}
	shape := shapes[hit.ShapeIndex]
	if math.IsInf(hit.T, 0) || math.IsNaN(hit.T) {
		return interaction{}, fmt.Errorf("distance %v: %w", hit.T, ErrInvalidHit)
	}

	point := ray.At(hit.T)
	normal, err := shape.Normal(point)
	if err != nil {
		return interaction{}, fmt.Errorf("shape %d: %w", hit.ShapeIndex, err)
	}

	return interaction{shape: shape, point: point, normal: normal}, nil
}

// ShadeHit returns the direct-lit color of a hit: the surface color times the sum
// of unoccluded, attenuated Lambert contributions of every light. The Lambert term
// uses the outward normal, so a light behind a flat shape adds nothing. There is
// no ambient term. Alpha is the surface alpha.
func ShadeHit(hit Hit, ray core.Ray, shapes []*scene.Shape, lights []scene.Light, cfg Config) (core.Color, error) {
	si, err := resolveHit(hit, ray, shapes)
	if err != nil {
		return core.Color{}, err
	}
	return shadeDirect(si, hit.ShapeIndex, shapes, lights, cfg), nil
}

func shadeDirect(si interaction, shapeIndex int, shapes []*scene.Shape, lights []scene.Light, cfg Config) core.Color {
	lightSum := core.Vec3{}

	for _, light := range lights {
		toLight := light.Position.Subtract(si.point)
		distanceToLight := toLight.Length()
		if distanceToLight == 0 {
			continue
		}
		lightDir := toLight.Multiply(1 / distanceToLight)

		if lightTransmission(si.point, lightDir, distanceToLight, shapeIndex, shapes, cfg) <= cfg.OpaqueThreshold {
			continue
		}

		cosine := math.Max(0, si.normal.Dot(lightDir))
		attenuation := 1 / (1 + cfg.Attenuation*distanceToLight*distanceToLight)
		lightSum = lightSum.Add(light.Color.RGB().Multiply(light.Intensity() * cosine * attenuation))
	}

	base := SurfaceColor(si.shape)
	return core.NewColorAlpha(base.R*lightSum.X, base.G*lightSum.Y, base.B*lightSum.Z, si.shape.Alpha())
}

// lightTransmission returns the fraction of light reaching point from a light at
// distance along lightDir. Every shape other than self is scanned in order; each
// occluder multiplies the transmission by 1 - alpha, and an opaque one ends the scan.
func lightTransmission(point, lightDir core.Vec3, distance float64, self int, shapes []*scene.Shape, cfg Config) float64 {
	shadowRay := core.NewRay(point.Add(lightDir.Multiply(cfg.ShadowBias)), lightDir)
	transmission := 1.0

	for i, shape := range shapes {
		if i == self || shape == nil || !shape.HasGeometry() {
			continue
		}
		t, ok := shape.Geometry().RayIntersectDepth(shadowRay, distance)
		if !ok || !(t > cfg.HitEpsilon) || t >= distance {
			continue
		}

		alpha := shape.Alpha()
		if math.Abs(alpha-1) <= cfg.OpaqueThreshold {
			return 0
		}
		transmission *= 1 - alpha
	}

	return transmission
}

// SurfaceColor returns the material albedo when it is present and not black,
// otherwise the default color of the shape's geometry
func SurfaceColor(shape *scene.Shape) core.Color {
	if m := shape.Material(); m != nil {
		if albedo, ok := m.Albedo(); ok && !albedo.IsBlack() {
			return albedo
		}
	}
	return DefaultColor(shape.Geometry())
}

// DefaultColor is the debug color of an unshaded geometry: box red, circle green,
// plane gray, rectangle blue, sphere white, anything else magenta
func DefaultColor(g geometry.Geometry) core.Color {
	switch g.(type) {
	case *geometry.Box:
		return core.Red
	case *geometry.Circle:
		return core.Green
	case *geometry.Plane:
		return core.Gray
	case *geometry.Rectangle:
		return core.Blue
	case *geometry.Sphere:
		return core.White
	default:
		return core.Magenta
	}
}
