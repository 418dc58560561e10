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

// Gray levels of the nearest and farthest hit in a depth render
const (
	nearGray = 1.0
	farGray  = 0.2
)

// renderDepth traces one centered ray per pixel and maps hit distances linearly
// from nearGray (nearest in the frame) to farGray (farthest). Misses stay black.
func (r *Renderer) renderDepth(ctx context.Context, name string, width, height int, proj projection, shapes []*scene.Shape) (*canvas.Image, RenderStats, error) {
	if err := r.validate(width, height, proj); err != nil {
		return nil, RenderStats{}, fmt.Errorf("%s: %w", name, err)
	}

	start := time.Now()
	r.logger.Printf("Rendering %s %dx%d (using %d workers)...\n", name, width, height, r.workerPool.GetNumWorkers())

	depths := make([]float64, width*height)
	epsilon := r.config.Shading.HitEpsilon

	err := r.workerPool.Run(ctx, NewTileGrid(width, height, r.config.TileSize), func(ctx context.Context, tile *Tile) error {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				u := (float64(x) + 0.5) / float64(width)
				v := (float64(y) + 0.5) / float64(height)

				depth := math.Inf(1)
				if hit, ok := integrator.FindNearestHitEpsilon(proj.ray(r.camera, u, v), shapes, nil, epsilon); ok {
					depth = hit.T
				}
				depths[y*width+x] = depth
			}
		}
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("%s: %w", name, err)
	}

	img, err := canvas.NewImage(width, height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	near, far := depthRange(depths)
	for y := 0; y < height; y++ {
		row := img.Row(y)
		for x := range row {
			if depth := depths[y*width+x]; !math.IsInf(depth, 1) {
				row[x] = depthGray(depth, near, far)
			}
		}
	}

	stats := RenderStats{TotalSamples: width * height}
	r.finish(name, img, &stats, start)
	return img, stats, nil
}

// depthRange returns the smallest and largest finite depth, or +Inf, -Inf when there is none
func depthRange(depths []float64) (near, far float64) {
	near, far = math.Inf(1), math.Inf(-1)
	for _, d := range depths {
		if math.IsInf(d, 1) {
			continue
		}
		near = math.Min(near, d)
		far = math.Max(far, d)
	}
	return near, far
}

// depthGray maps depth in [near, far] to an opaque gray level
func depthGray(depth, near, far float64) core.Color {
	level := nearGray
	if far > near {
		level = nearGray - (nearGray-farGray)*(depth-near)/(far-near)
	}
	return core.NewColor(level, level, level)
}
