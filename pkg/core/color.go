package core

import "math"

// Color is a linear RGBA color with float64 channels, nominally in [0, 1].
// RGB is straight (not premultiplied) unless a function says otherwise.
type Color struct {
	R, G, B, A float64
}

// Named colors. The magenta and black values double as debug sentinels:
// magenta marks "no intersection / unexpected surface", black marks "no light".
var (
	OpaqueBlack = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	Magenta     = Color{1, 0, 1, 1}
)

// NewColor creates an opaque color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NewColorAlpha creates a color with an explicit alpha
func NewColorAlpha(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB returns the color channels as a vector
func (c Color) RGB() Vec3 {
	return Vec3{c.R, c.G, c.B}
}

// WithRGB replaces the color channels, keeping alpha
func (c Color) WithRGB(rgb Vec3) Color {
	return Color{rgb.X, rgb.Y, rgb.Z, c.A}
}

// WithAlpha replaces alpha
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Add returns the channel-wise sum of all four channels
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Scale multiplies all four channels by s
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Lerp blends RGB toward other by weight w; alpha is kept
func (c Color) Lerp(other Color, w float64) Color {
	return Color{
		R: c.R*(1-w) + other.R*w,
		G: c.G*(1-w) + other.G*w,
		B: c.B*(1-w) + other.B*w,
		A: c.A,
	}
}

// IsBlack reports whether all color channels are zero, ignoring alpha
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// IsFinite reports whether no channel is NaN or infinite
func (c Color) IsFinite() bool {
	for _, ch := range [4]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(ch) || math.IsInf(ch, 0) {
			return false
		}
	}
	return true
}

// Clamp clamps every channel to [0, 1]
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// Over composites c (straight alpha) over an opaque background
func (c Color) Over(background Color) Color {
	return Color{
		R: c.R*c.A + background.R*(1-c.A),
		G: c.G*c.A + background.G*(1-c.A),
		B: c.B*c.A + background.B*(1-c.A),
		A: c.A + background.A*(1-c.A),
	}
}

// ApproxEqual reports whether every channel differs by at most tolerance
func (c Color) ApproxEqual(other Color, tolerance float64) bool {
	return math.Abs(c.R-other.R) <= tolerance &&
		math.Abs(c.G-other.G) <= tolerance &&
		math.Abs(c.B-other.B) <= tolerance &&
		math.Abs(c.A-other.A) <= tolerance
}

// Luminance returns the perceptual luminance of the color channels
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
