package canvas

import (
	"errors"
	"image/color"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewImage(t *testing.T) {
	img, err := NewImage(3, 2)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if img.Width() != 3 || img.Height() != 2 {
		t.Errorf("Expected 3x2, got %dx%d", img.Width(), img.Height())
	}

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c, err := img.GetPixel(x, y)
			if err != nil {
				t.Fatalf("GetPixel(%d, %d) failed: %v", x, y, err)
			}
			if c != core.OpaqueBlack {
				t.Errorf("Expected opaque black at (%d, %d), got %v", x, y, c)
			}
		}
	}

	for _, size := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		if _, err := NewImage(size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewImage(%d, %d): expected ErrInvalidSize, got %v", size[0], size[1], err)
		}
	}
}

func TestImage_SetGetPixel(t *testing.T) {
	img, _ := NewImage(4, 3)
	c := core.NewColorAlpha(0.1, 0.2, 0.3, 0.4)

	if err := img.SetPixel(3, 2, c); err != nil {
		t.Fatalf("SetPixel failed: %v", err)
	}
	got, err := img.GetPixel(3, 2)
	if err != nil {
		t.Fatalf("GetPixel failed: %v", err)
	}
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if img.Row(2)[3] != c {
		t.Errorf("Expected row view to see %v, got %v", c, img.Row(2)[3])
	}

	outside := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}}
	for _, p := range outside {
		if err := img.SetPixel(p[0], p[1], c); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SetPixel(%d, %d): expected ErrOutOfBounds, got %v", p[0], p[1], err)
		}
		if _, err := img.GetPixel(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GetPixel(%d, %d): expected ErrOutOfBounds, got %v", p[0], p[1], err)
		}
	}
}

func TestImage_ToNRGBA(t *testing.T) {
	img, _ := NewImage(2, 2)
	_ = img.SetPixel(0, 0, core.NewColor(1, 0.5, 0))
	_ = img.SetPixel(1, 0, core.NewColorAlpha(2, -1, 0.2, 0.5))
	_ = img.SetPixel(0, 1, core.Color{R: 1, G: 1, B: 1, A: 0})

	out := img.ToNRGBA()

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{R: 255, G: 128, B: 0, A: 255}},
		{1, 0, color.NRGBA{R: 255, G: 0, B: 51, A: 128}},
		{0, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 0}},
		{1, 1, color.NRGBA{R: 0, G: 0, B: 0, A: 255}},
	}

	for _, tt := range tests {
		if got := out.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d, %d): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestImage_AverageLuminance(t *testing.T) {
	img, _ := NewImage(2, 1)
	_ = img.SetPixel(0, 0, core.White)

	if got := img.AverageLuminance(); got < 0.5-1e-12 || got > 0.5+1e-12 {
		t.Errorf("Expected average luminance 0.5, got %v", got)
	}
}
