package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrOutOfBounds is returned for pixel coordinates outside the image
	ErrOutOfBounds = errors.New("canvas: pixel out of bounds")
	// ErrInvalidSize is returned for non-positive image dimensions
	ErrInvalidSize = errors.New("canvas: invalid image size")
)

// Image is a row-major grid of RGBA colors. Every pixel starts opaque black.
type Image struct {
	width, height int
	pixels        []core.Color
}

// NewImage creates a width×height image filled with opaque black
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}

	pixels := make([]core.Color, width*height)
	for i := range pixels {
		pixels[i] = core.OpaqueBlack
	}

	return &Image{width: width, height: height, pixels: pixels}, nil
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// Bounds returns the image rectangle
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

func (img *Image) inBounds(x, y int) bool {
	return x >= 0 && x < img.width && y >= 0 && y < img.height
}

// SetPixel stores the color at (x, y)
func (img *Image) SetPixel(x, y int, c core.Color) error {
	if !img.inBounds(x, y) {
		return fmt.Errorf("(%d, %d) in %dx%d: %w", x, y, img.width, img.height, ErrOutOfBounds)
	}
	img.pixels[y*img.width+x] = c
	return nil
}

// GetPixel returns the color at (x, y)
func (img *Image) GetPixel(x, y int) (core.Color, error) {
	if !img.inBounds(x, y) {
		return core.Color{}, fmt.Errorf("(%d, %d) in %dx%d: %w", x, y, img.width, img.height, ErrOutOfBounds)
	}
	return img.pixels[y*img.width+x], nil
}

// Row returns the pixels of row y; the slice aliases the image
func (img *Image) Row(y int) []core.Color {
	return img.pixels[y*img.width : (y+1)*img.width]
}

// ToNRGBA converts the image to 8-bit non-premultiplied RGBA, clamping every channel to [0, 1]
func (img *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	for y := 0; y < img.height; y++ {
		for x, c := range img.Row(y) {
			out.SetNRGBA(x, y, toNRGBA(c))
		}
	}
	return out
}

func toNRGBA(c core.Color) color.NRGBA {
	c = c.Clamp()
	return color.NRGBA{
		R: to8Bit(c.R),
		G: to8Bit(c.G),
		B: to8Bit(c.B),
		A: to8Bit(c.A),
	}
}

func to8Bit(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(v * 255))
}

// AverageLuminance returns the mean perceptual luminance over all pixels
func (img *Image) AverageLuminance() float64 {
	total := 0.0
	for _, c := range img.pixels {
		total += c.Luminance()
	}
	return total / float64(len(img.pixels))
}
