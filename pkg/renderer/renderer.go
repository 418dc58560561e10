package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Configuration errors. A render that returns one of these has not traced any ray.
var (
	ErrAspectRatioMismatch = errors.New("renderer: image aspect ratio does not match the camera viewport")
	ErrInvalidSampleCount  = errors.New("renderer: samples per pixel must be a positive multiple of 4")
	ErrInvalidDimensions   = errors.New("renderer: image dimensions must be positive")
	ErrNotImplemented      = errors.New("renderer: not implemented")
	ErrUnknownMode         = errors.New("renderer: unknown render mode")
	ErrNoCamera            = errors.New("renderer: no camera")
)

// AspectRatioTolerance bounds |width/height - viewport aspect| for perspective renders
const AspectRatioTolerance = 1e-6

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// AntiAliasing selects how multiple samples per pixel are taken and combined
type AntiAliasing int

const (
	AANone AntiAliasing = iota // One sample at the pixel center
	MSAA                       // N jittered samples averaged
	SSAA                       // Render at N/2 times the resolution, tonemapped box downsample
	FXAA                       // Post-process edge smoothing, not implemented
)

func (aa AntiAliasing) String() string {
	switch aa {
	case AANone:
		return "none"
	case MSAA:
		return "msaa"
	case SSAA:
		return "ssaa"
	case FXAA:
		return "fxaa"
	default:
		return fmt.Sprintf("AntiAliasing(%d)", int(aa))
	}
}

// ParseAntiAliasing parses a method name as printed by String
func ParseAntiAliasing(name string) (AntiAliasing, error) {
	for _, aa := range []AntiAliasing{AANone, MSAA, SSAA, FXAA} {
		if strings.EqualFold(name, aa.String()) {
			return aa, nil
		}
	}
	return AANone, fmt.Errorf("anti-aliasing %q: %w", name, ErrUnknownMode)
}

// Config contains configuration for the frame driver
type Config struct {
	TileSize int               // Size of each square tile in pixels
	Workers  int               // Number of parallel workers (0 = use CPU count)
	Seed     int64             // Base seed for anti-aliasing jitter
	Shading  integrator.Config // Tolerances and tone constants of the shading core
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize: 32,
		Workers:  0, // Auto-detect CPU count
		Seed:     42,
		Shading:  integrator.DefaultConfig(),
	}
}

// Renderer turns shapes and lights into images through one camera
type Renderer struct {
	camera     *geometry.Camera
	config     Config
	workerPool *WorkerPool
	logger     core.Logger
}

// NewRenderer creates a renderer; a nil logger discards output
func NewRenderer(camera *geometry.Camera, config Config, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		camera:     camera,
		config:     config,
		workerPool: NewWorkerPool(config.Workers),
		logger:     logger,
	}
}

// Camera returns the camera rays are generated from
func (r *Renderer) Camera() *geometry.Camera { return r.camera }

// Render2DColor renders the flat surface colors seen along the viewing direction
func (r *Renderer) Render2DColor(ctx context.Context, width, height int, shapes []*scene.Shape) (*canvas.Image, error) {
	shader := &integrator.FlatColorIntegrator{Config: r.config.Shading}
	img, _, err := r.render(ctx, newFrame("2D color", width, height, orthographic, shader, shapes, nil))
	return img, err
}

// Render3DColor renders the flat surface colors in perspective
func (r *Renderer) Render3DColor(ctx context.Context, width, height int, shapes []*scene.Shape) (*canvas.Image, error) {
	shader := &integrator.FlatColorIntegrator{Config: r.config.Shading}
	img, _, err := r.render(ctx, newFrame("3D color", width, height, perspective, shader, shapes, nil))
	return img, err
}

// Render2DDepth renders nearest-hit distances along the viewing direction as gray levels
func (r *Renderer) Render2DDepth(ctx context.Context, width, height int, shapes []*scene.Shape) (*canvas.Image, error) {
	img, _, err := r.renderDepth(ctx, "2D depth", width, height, orthographic, shapes)
	return img, err
}

// Render3DDepth renders nearest-hit distances in perspective as gray levels
func (r *Renderer) Render3DDepth(ctx context.Context, width, height int, shapes []*scene.Shape) (*canvas.Image, error) {
	img, _, err := r.renderDepth(ctx, "3D depth", width, height, perspective, shapes)
	return img, err
}

// Render2DLight renders direct lighting along the viewing direction
func (r *Renderer) Render2DLight(ctx context.Context, width, height int, shapes []*scene.Shape, lights []scene.Light) (*canvas.Image, error) {
	shader := &integrator.DirectLightIntegrator{Config: r.config.Shading}
	img, _, err := r.render(ctx, newFrame("2D light", width, height, orthographic, shader, shapes, lights))
	return img, err
}

// Render3DLight renders direct lighting in perspective, one sample per pixel
func (r *Renderer) Render3DLight(ctx context.Context, width, height int, shapes []*scene.Shape, lights []scene.Light) (*canvas.Image, error) {
	shader := &integrator.DirectLightIntegrator{Config: r.config.Shading}
	img, _, err := r.render(ctx, newFrame("3D light", width, height, perspective, shader, shapes, lights))
	return img, err
}

// Render3DLightAA renders direct lighting in perspective with anti-aliasing.
// MSAA and SSAA need samplesPerPixel to be a positive multiple of 4; FXAA
// returns ErrNotImplemented.
func (r *Renderer) Render3DLightAA(ctx context.Context, width, height int, shapes []*scene.Shape, lights []scene.Light, samplesPerPixel int, method AntiAliasing) (*canvas.Image, error) {
	img, _, err := r.renderLightAA(ctx, width, height, shapes, lights, samplesPerPixel, method)
	return img, err
}

// Render3DAdvanced renders direct lighting plus recursive reflection and
// refraction, at most depth levels deep
func (r *Renderer) Render3DAdvanced(ctx context.Context, width, height int, shapes []*scene.Shape, lights []scene.Light, depth int) (*canvas.Image, error) {
	shader := &integrator.AdvancedIntegrator{Config: r.config.Shading, MaxDepth: depth}
	img, _, err := r.render(ctx, newFrame("3D advanced", width, height, perspective, shader, shapes, lights))
	return img, err
}

// Render3DComposite renders every surface along each ray blended front to back
func (r *Renderer) Render3DComposite(ctx context.Context, width, height int, shapes []*scene.Shape, lights []scene.Light) (*canvas.Image, error) {
	shader := &integrator.CompositeIntegrator{Config: r.config.Shading}
	img, _, err := r.render(ctx, newFrame("3D composite", width, height, perspective, shader, shapes, lights))
	return img, err
}

func (r *Renderer) renderLightAA(ctx context.Context, width, height int, shapes []*scene.Shape, lights []scene.Light, samplesPerPixel int, method AntiAliasing) (*canvas.Image, RenderStats, error) {
	direct := &integrator.DirectLightIntegrator{Config: r.config.Shading}

	switch method {
	case AANone:
		return r.render(ctx, newFrame("3D light", width, height, perspective, direct, shapes, lights))
	case MSAA:
		if err := validateSamples(samplesPerPixel); err != nil {
			return nil, RenderStats{}, err
		}
		return r.render(ctx, newFrame("3D light MSAA", width, height, perspective, direct, shapes, lights).withSamples(samplesPerPixel))
	case SSAA:
		if err := validateSamples(samplesPerPixel); err != nil {
			return nil, RenderStats{}, err
		}
		return r.renderSupersampled(ctx, width, height, samplesPerPixel/2, direct, shapes, lights)
	case FXAA:
		return nil, RenderStats{}, fmt.Errorf("anti-aliasing %s: %w", method, ErrNotImplemented)
	default:
		return nil, RenderStats{}, fmt.Errorf("anti-aliasing %s: %w", method, ErrUnknownMode)
	}
}

func validateSamples(samplesPerPixel int) error {
	if samplesPerPixel <= 0 || samplesPerPixel%4 != 0 {
		return fmt.Errorf("got %d: %w", samplesPerPixel, ErrInvalidSampleCount)
	}
	return nil
}

// validate checks a frame request before any work is done
func (r *Renderer) validate(width, height int, proj projection) error {
	if r.camera == nil {
		return ErrNoCamera
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if proj == perspective {
		aspect := float64(width) / float64(height)
		if math.Abs(aspect-r.camera.AspectRatio()) > AspectRatioTolerance {
			return fmt.Errorf("image %dx%d (%.6f) vs viewport %.6f: %w",
				width, height, aspect, r.camera.AspectRatio(), ErrAspectRatioMismatch)
		}
	}
	return nil
}

// logStats reports a finished render
func (r *Renderer) logStats(name string, stats RenderStats) {
	r.logger.Printf("%s render completed in %v: %d pixels, %d samples, %d lit, average luminance %.3f\n",
		name, stats.Duration, stats.TotalPixels, stats.TotalSamples, stats.LitPixels, stats.AverageLuminance)
}

// finish fills the whole-image statistics and logs them
func (r *Renderer) finish(name string, img *canvas.Image, stats *RenderStats, start time.Time) {
	stats.Duration = time.Since(start)
	stats.Workers = r.workerPool.GetNumWorkers()
	stats.TotalPixels = img.Width() * img.Height()
	stats.LitPixels = 0
	for y := 0; y < img.Height(); y++ {
		for _, c := range img.Row(y) {
			if !c.IsBlack() {
				stats.LitPixels++
			}
		}
	}
	stats.AverageLuminance = img.AverageLuminance()
	r.logStats(name, *stats)
}
