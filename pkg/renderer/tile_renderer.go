package renderer

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// projection selects how a viewport point becomes a camera ray
type projection int

const (
	orthographic projection = iota // From the viewport along the viewing direction
	perspective                    // From the FOV apex through the viewport
)

func (p projection) ray(camera *geometry.Camera, u, v float64) core.Ray {
	if p == orthographic {
		return camera.OrthographicRay(u, v)
	}
	return camera.PerspectiveRay(u, v)
}

// frame describes one render request
type frame struct {
	name          string
	width, height int
	projection    projection
	integrator    integrator.Integrator
	shapes        []*scene.Shape
	lights        []scene.Light
	samples       int // Jittered samples per pixel; 0 or 1 means one sample at the pixel center
}

func newFrame(name string, width, height int, proj projection, shader integrator.Integrator, shapes []*scene.Shape, lights []scene.Light) frame {
	return frame{
		name:       name,
		width:      width,
		height:     height,
		projection: proj,
		integrator: shader,
		shapes:     shapes,
		lights:     lights,
	}
}

func (f frame) withSamples(samples int) frame {
	f.samples = samples
	return f
}

// render validates the frame, then shades every pixel tile by tile in parallel
func (r *Renderer) render(ctx context.Context, f frame) (*canvas.Image, RenderStats, error) {
	if err := r.validate(f.width, f.height, f.projection); err != nil {
		return nil, RenderStats{}, fmt.Errorf("%s: %w", f.name, err)
	}

	start := time.Now()
	r.logger.Printf("Rendering %s %dx%d (using %d workers)...\n", f.name, f.width, f.height, r.workerPool.GetNumWorkers())

	img, stats, err := r.renderPixels(ctx, f)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("%s: %w", f.name, err)
	}

	r.finish(f.name, img, &stats, start)
	return img, stats, nil
}

// renderPixels shades every pixel of an already validated frame
func (r *Renderer) renderPixels(ctx context.Context, f frame) (*canvas.Image, RenderStats, error) {
	img, err := canvas.NewImage(f.width, f.height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	tr := &TileRenderer{
		camera:     r.camera,
		projection: f.projection,
		integrator: f.integrator,
		shapes:     f.shapes,
		lights:     f.lights,
		samples:    max(1, f.samples),
	}

	var mu sync.Mutex
	var stats RenderStats
	tiles := NewTileGrid(f.width, f.height, r.config.TileSize)

	err = r.workerPool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		tileStats, err := tr.RenderTileBounds(ctx, tile.Bounds, img, tile.Sampler(r.config.Seed))
		if err != nil {
			return err
		}
		mu.Lock()
		stats.merge(tileStats)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	return img, stats, nil
}

// TileRenderer shades the pixels of one tile with an integrator
type TileRenderer struct {
	camera     *geometry.Camera
	projection projection
	integrator integrator.Integrator
	shapes     []*scene.Shape
	lights     []scene.Light
	samples    int
}

// RenderTileBounds renders pixels within the specified bounds into img.
// Only pixels inside bounds are written.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, img *canvas.Image, sampler core.Sampler) (RenderStats, error) {
	var stats RenderStats
	width, height := float64(img.Width()), float64(img.Height())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		row := img.Row(y)

		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var ps PixelStats
			for s := 0; s < tr.samples; s++ {
				dx, dy := 0.5, 0.5
				if tr.samples > 1 {
					dx, dy = sampler.Get2D()
				}

				u := (float64(x) + dx) / width
				v := (float64(y) + dy) / height
				color, err := tr.integrator.RayColor(tr.projection.ray(tr.camera, u, v), tr.shapes, tr.lights)
				if err != nil {
					return stats, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				ps.AddSample(color)
			}

			row[x] = ps.GetColor()
			stats.TotalSamples += ps.SampleCount
		}
	}

	return stats, nil
}
