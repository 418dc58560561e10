package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about one render call
type RenderStats struct {
	TotalPixels      int           // Pixels in the returned image
	TotalSamples     int           // Camera rays traced
	LitPixels        int           // Returned pixels that are not black
	Workers          int           // Parallel workers used
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean luminance of the returned image
}

// merge adds the counters of a tile into the frame totals
func (rs *RenderStats) merge(tile RenderStats) {
	rs.TotalSamples += tile.TotalSamples
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // RGBA accumulator, alpha included
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the average of all four channels over the samples taken
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.OpaqueBlack
	}
	return ps.ColorAccum.Scale(1.0 / float64(ps.SampleCount))
}
