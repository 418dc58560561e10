package renderer

import (
	"context"
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Mode selects the ray model and shading of a render
type Mode int

const (
	ModeColor2D Mode = iota
	ModeColor3D
	ModeDepth2D
	ModeDepth3D
	ModeLight2D
	ModeLight3D
	ModeAdvanced
	ModeComposite
)

var modeNames = map[Mode]string{
	ModeColor2D:   "color2d",
	ModeColor3D:   "color3d",
	ModeDepth2D:   "depth2d",
	ModeDepth3D:   "depth3d",
	ModeLight2D:   "light2d",
	ModeLight3D:   "light3d",
	ModeAdvanced:  "advanced",
	ModeComposite: "composite",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Modes returns every render mode in declaration order
func Modes() []Mode {
	return []Mode{ModeColor2D, ModeColor3D, ModeDepth2D, ModeDepth3D, ModeLight2D, ModeLight3D, ModeAdvanced, ModeComposite}
}

// ParseMode parses a mode name as printed by String
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mode %q: %w", name, ErrUnknownMode)
}

// SceneDefault in an Options field takes the value from the scene's SamplingConfig
const SceneDefault = -1

// Options selects what RenderScene produces. Fields set to SceneDefault fall back
// to the scene's SamplingConfig; every other value is used as given, so zero
// samples or depth reach validation and the depth limit.
type Options struct {
	Mode            Mode
	AntiAliasing    AntiAliasing // Only ModeLight3D supports anything but AANone
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
}

// NewOptions returns options for mode that take every size, sample count and
// depth from the scene
func NewOptions(mode Mode) Options {
	return Options{
		Mode:            mode,
		Width:           SceneDefault,
		Height:          SceneDefault,
		SamplesPerPixel: SceneDefault,
		MaxDepth:        SceneDefault,
	}
}

// resolve replaces SceneDefault fields with the scene's values
func (o Options) resolve(config scene.SamplingConfig) Options {
	if o.Width == SceneDefault {
		o.Width = config.Width
	}
	if o.Height == SceneDefault {
		o.Height = config.Height
	}
	if o.SamplesPerPixel == SceneDefault {
		o.SamplesPerPixel = config.SamplesPerPixel
	}
	if o.MaxDepth == SceneDefault {
		o.MaxDepth = config.MaxDepth
	}
	return o
}

// RenderScene renders a scene through its own camera in the selected mode
func RenderScene(ctx context.Context, s *scene.Scene, opts Options, config Config, logger core.Logger) (*canvas.Image, RenderStats, error) {
	if s.Camera == nil {
		return nil, RenderStats{}, ErrNoCamera
	}
	opts = opts.resolve(s.SamplingConfig)

	if opts.AntiAliasing != AANone && opts.Mode != ModeLight3D {
		return nil, RenderStats{}, fmt.Errorf("anti-aliasing %s in mode %s: %w", opts.AntiAliasing, opts.Mode, ErrNotImplemented)
	}

	r := NewRenderer(s.Camera, config, logger)
	w, h := opts.Width, opts.Height
	shading := r.config.Shading

	switch opts.Mode {
	case ModeColor2D, ModeColor3D:
		shader := &integrator.FlatColorIntegrator{Config: shading}
		return r.render(ctx, newFrame(opts.Mode.String(), w, h, projectionOf(opts.Mode), shader, s.Shapes, nil))
	case ModeDepth2D, ModeDepth3D:
		return r.renderDepth(ctx, opts.Mode.String(), w, h, projectionOf(opts.Mode), s.Shapes)
	case ModeLight2D:
		shader := &integrator.DirectLightIntegrator{Config: shading}
		return r.render(ctx, newFrame(opts.Mode.String(), w, h, orthographic, shader, s.Shapes, s.Lights))
	case ModeLight3D:
		return r.renderLightAA(ctx, w, h, s.Shapes, s.Lights, opts.SamplesPerPixel, opts.AntiAliasing)
	case ModeAdvanced:
		shader := &integrator.AdvancedIntegrator{Config: shading, MaxDepth: opts.MaxDepth}
		return r.render(ctx, newFrame(opts.Mode.String(), w, h, perspective, shader, s.Shapes, s.Lights))
	case ModeComposite:
		shader := &integrator.CompositeIntegrator{Config: shading}
		return r.render(ctx, newFrame(opts.Mode.String(), w, h, perspective, shader, s.Shapes, s.Lights))
	default:
		return nil, RenderStats{}, fmt.Errorf("%s: %w", opts.Mode, ErrUnknownMode)
	}
}

func projectionOf(m Mode) projection {
	switch m {
	case ModeColor2D, ModeDepth2D, ModeLight2D:
		return orthographic
	default:
		return perspective
	}
}

// Orthographic reports whether the mode traces parallel rays from the viewport
// rather than rays from the field-of-view apex
func (m Mode) Orthographic() bool {
	return projectionOf(m) == orthographic
}
