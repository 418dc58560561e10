package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{"bmp", FormatBMP, false},
		{"tif", FormatTIFF, false},
		{"TIFF", FormatTIFF, false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, format)
			}
		})
	}
}

func TestEncode_Lossless(t *testing.T) {
	img, _ := NewImage(5, 3)
	_ = img.SetPixel(4, 2, core.Red)

	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		FormatBMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		FormatTIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := decode(&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.Bounds().Dx() != 5 || decoded.Bounds().Dy() != 3 {
				t.Errorf("Expected 5x3, got %v", decoded.Bounds())
			}

			r, g, b, a := decoded.At(4, 2).RGBA()
			if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
				t.Errorf("Expected red pixel, got %d %d %d %d", r, g, b, a)
			}
			r, g, b, _ = decoded.At(0, 0).RGBA()
			if r != 0 || g != 0 || b != 0 {
				t.Errorf("Expected black pixel, got %d %d %d", r, g, b)
			}
		})
	}
}

func TestEncode_Unsupported(t *testing.T) {
	img, _ := NewImage(1, 1)
	var buf bytes.Buffer
	if err := Encode(&buf, img, Format("gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSave(t *testing.T) {
	img, _ := NewImage(2, 2)
	dir := t.TempDir()

	path := filepath.Join(dir, "render.jpg")
	if err := Save(path, img); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty file")
	}

	if err := Save(filepath.Join(dir, "render.webp"), img); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}
