package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Tonemap applied when box-filtering a supersampled buffer
const (
	ssaaGamma    = 2.2
	ssaaExposure = 0.5
)

// renderSupersampled renders at factor times the linear resolution with one
// centered sample per pixel and downsamples the result
func (r *Renderer) renderSupersampled(ctx context.Context, width, height, factor int, shader integrator.Integrator, shapes []*scene.Shape, lights []scene.Light) (*canvas.Image, RenderStats, error) {
	const name = "3D light SSAA"
	if err := r.validate(width, height, perspective); err != nil {
		return nil, RenderStats{}, fmt.Errorf("%s: %w", name, err)
	}

	start := time.Now()
	r.logger.Printf("Rendering %s %dx%d at %dx (using %d workers)...\n", name, width, height, factor, r.workerPool.GetNumWorkers())

	hires, stats, err := r.renderPixels(ctx, newFrame(name, width*factor, height*factor, perspective, shader, shapes, lights))
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("%s: %w", name, err)
	}

	img, err := Downsample(hires, factor)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("%s: %w", name, err)
	}

	r.finish(name, img, &stats, start)
	return img, stats, nil
}

// Downsample box-filters factor×factor blocks of src into one opaque pixel each.
// Each block is linearised with pow(c, 2.2), averaged, exposed with
// 1 - exp(-avg·0.5) and re-encoded with pow(x, 1/2.2).
func Downsample(src *canvas.Image, factor int) (*canvas.Image, error) {
	if factor <= 0 || src.Width()%factor != 0 || src.Height()%factor != 0 {
		return nil, fmt.Errorf("%dx%d by %d: %w", src.Width(), src.Height(), factor, ErrInvalidDimensions)
	}

	dst, err := canvas.NewImage(src.Width()/factor, src.Height()/factor)
	if err != nil {
		return nil, err
	}

	weight := 1.0 / float64(factor*factor)
	for y := 0; y < dst.Height(); y++ {
		out := dst.Row(y)
		for x := range out {
			sum := core.Vec3{}
			for sy := 0; sy < factor; sy++ {
				row := src.Row(y*factor + sy)
				for sx := 0; sx < factor; sx++ {
					sum = sum.Add(linearize(row[x*factor+sx]))
				}
			}
			avg := sum.Multiply(weight)
			out[x] = core.NewColor(tonemap(avg.X), tonemap(avg.Y), tonemap(avg.Z))
		}
	}

	return dst, nil
}

func linearize(c core.Color) core.Vec3 {
	return core.NewVec3(
		math.Pow(math.Max(0, c.R), ssaaGamma),
		math.Pow(math.Max(0, c.G), ssaaGamma),
		math.Pow(math.Max(0, c.B), ssaaGamma),
	)
}

func tonemap(linear float64) float64 {
	return math.Pow(1-math.Exp(-linear*ssaaExposure), 1/ssaaGamma)
}
