package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// CompositeHits blends the lit colors of hits, which must be sorted nearest
// first, with the front-to-back "over" operator. Each surface contributes its
// direct-lit color weighted by its alpha and by the light not yet absorbed by
// nearer surfaces. The result is premultiplied: RGB is the clamped accumulation
// and A is the total coverage.
func CompositeHits(hits []Hit, ray core.Ray, shapes []*scene.Shape, lights []scene.Light, cfg Config) (core.Color, error) {
	acc := core.Vec3{}
	remaining := 1.0

	for _, hit := range hits {
		if remaining <= cfg.CompositeCutoff {
			break
		}

		lit, err := ShadeHit(hit, ray, shapes, lights, cfg)
		if err != nil {
			return core.Color{}, err
		}

		alpha := lit.A
		acc = acc.Add(lit.RGB().Multiply(alpha * remaining))
		remaining *= 1 - alpha
	}

	acc = acc.Clamp(0, 1)
	return core.NewColorAlpha(acc.X, acc.Y, acc.Z, 1-remaining), nil
}
