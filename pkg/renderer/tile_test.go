package renderer

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		width, height, tileSize int
		expectedTiles           int
	}{
		{64, 64, 32, 4},
		{100, 50, 32, 8},
		{10, 10, 32, 1},
		{33, 1, 32, 2},
	}

	for _, tt := range tests {
		tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
		if len(tiles) != tt.expectedTiles {
			t.Errorf("%dx%d/%d: expected %d tiles, got %d", tt.width, tt.height, tt.tileSize, tt.expectedTiles, len(tiles))
		}

		// Every pixel is covered exactly once
		covered := make([]int, tt.width*tt.height)
		for i, tile := range tiles {
			if tile.ID != i {
				t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
			}
			if !tile.Bounds.In(image.Rect(0, 0, tt.width, tt.height)) {
				t.Errorf("Tile %v exceeds the image", tile.Bounds)
			}
			for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
				for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
					covered[y*tt.width+x]++
				}
			}
		}
		for i, n := range covered {
			if n != 1 {
				t.Fatalf("%dx%d: pixel %d covered %d times", tt.width, tt.height, i, n)
			}
		}
	}
}

func TestTile_SamplerReproducible(t *testing.T) {
	tile := NewTile(3, image.Rect(0, 0, 4, 4))
	a, b := tile.Sampler(7), tile.Sampler(7)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Expected identical sequences for the same tile and seed")
		}
	}
}

func TestPixelStats_AveragesAllChannels(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != core.OpaqueBlack {
		t.Errorf("Expected opaque black without samples, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewColorAlpha(1, 0, 0, 1))
	ps.AddSample(core.NewColorAlpha(0, 0, 1, 0))

	expected := core.NewColorAlpha(0.5, 0, 0.5, 0.5)
	if got := ps.GetColor(); !got.ApproxEqual(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
	if NewWorkerPool(0).GetNumWorkers() < 1 {
		t.Error("Expected at least one worker by default")
	}

	tiles := NewTileGrid(40, 40, 8)
	var count atomic.Int32
	err := pool.Run(context.Background(), tiles, func(ctx context.Context, tile *Tile) error {
		count.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if int(count.Load()) != len(tiles) {
		t.Errorf("Expected %d tiles rendered, got %d", len(tiles), count.Load())
	}

	boom := errors.New("boom")
	err = pool.Run(context.Background(), tiles, func(ctx context.Context, tile *Tile) error {
		if tile.ID == 5 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected the tile error, got %v", err)
	}
}

func TestTileRenderer_BoundsClipping(t *testing.T) {
	camera, err := geometry.NewCamera(geometry.DefaultCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	img, err := canvas.NewImage(8, 8)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	// A plane fills the whole view
	tr := &TileRenderer{
		camera:     camera,
		projection: orthographic,
		integrator: &integrator.FlatColorIntegrator{Config: integrator.DefaultConfig()},
		shapes:     []*scene.Shape{scene.NewShape(geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 0, 1)), nil)},
		samples:    1,
	}

	bounds := image.Rect(2, 2, 5, 4)
	stats, err := tr.RenderTileBounds(context.Background(), bounds, img, core.CenterSampler{})
	if err != nil {
		t.Fatalf("RenderTileBounds failed: %v", err)
	}
	if stats.TotalSamples != 6 {
		t.Errorf("Expected 6 samples, got %d", stats.TotalSamples)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c, _ := img.GetPixel(x, y)
			expected := core.OpaqueBlack
			if image.Pt(x, y).In(bounds) {
				expected = core.Gray
			}
			if c != expected {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y, expected, c)
			}
		}
	}
}
