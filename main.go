package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the command line settings of one render
type Config struct {
	SceneType    string
	Mode         renderer.Mode
	AntiAliasing renderer.AntiAliasing
	Format       canvas.Format
	Options      renderer.Options
	Renderer     renderer.Config
}

func main() {
	config, help, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}
	if help {
		showHelp()
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	filename, err := run(ctx, config)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

// flags holds the raw command line values
type flags struct {
	scene, mode, aa, format string
	samples, depth          int
	width, height, workers  int
	seed                    int64
	help                    bool
}

func newFlagSet() (*flag.FlagSet, *flags) {
	f := &flags{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&f.scene, "scene", "default", "Scene type (see -help for the list)")
	fs.StringVar(&f.mode, "mode", renderer.ModeLight3D.String(), "Render mode: color2d, color3d, depth2d, depth3d, light2d, light3d, advanced, composite")
	fs.StringVar(&f.aa, "aa", "none", "Anti-aliasing for light3d: none, msaa, ssaa, fxaa")
	fs.IntVar(&f.samples, "samples", renderer.SceneDefault, "Samples per pixel for msaa/ssaa, a multiple of 4 (-1 = scene default)")
	fs.IntVar(&f.depth, "depth", renderer.SceneDefault, "Reflection/refraction depth for advanced, 0 renders black (-1 = scene default)")
	fs.IntVar(&f.width, "width", renderer.SceneDefault, "Image width (-1 = scene default)")
	fs.IntVar(&f.height, "height", renderer.SceneDefault, "Image height (-1 = scene default)")
	fs.IntVar(&f.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Int64Var(&f.seed, "seed", renderer.DefaultConfig().Seed, "Seed for anti-aliasing jitter")
	fs.StringVar(&f.format, "format", "png", "Output format: png, jpeg, bmp, tiff")
	fs.BoolVar(&f.help, "help", false, "Show help information")
	return fs, f
}

// parseFlags turns command line arguments into a render configuration
func parseFlags(args []string) (Config, bool, error) {
	fs, f := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, false, err
	}
	if f.help {
		return Config{}, true, nil
	}

	config := Config{SceneType: f.scene, Renderer: renderer.DefaultConfig()}
	var err error
	if config.Mode, err = renderer.ParseMode(f.mode); err != nil {
		return Config{}, false, err
	}
	if config.AntiAliasing, err = renderer.ParseAntiAliasing(f.aa); err != nil {
		return Config{}, false, err
	}
	if config.Format, err = canvas.ParseFormat(f.format); err != nil {
		return Config{}, false, err
	}

	config.Options = renderer.Options{
		Mode:            config.Mode,
		AntiAliasing:    config.AntiAliasing,
		Width:           f.width,
		Height:          f.height,
		SamplesPerPixel: f.samples,
		MaxDepth:        f.depth,
	}
	config.Renderer.Workers = f.workers
	config.Renderer.Seed = f.seed

	return config, false, nil
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs, _ := newFlagSet()
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-13s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene_type>/<mode>_<timestamp>.<format>")
}

// run renders the configured scene and saves it, returning the file written
func run(ctx context.Context, config Config) (string, error) {
	s, err := createScene(config.SceneType)
	if err != nil {
		return "", err
	}

	outputDir := createOutputDir(config.SceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	img, stats, err := renderer.RenderScene(ctx, s, config.Options, config.Renderer, renderer.NewDefaultLogger())
	if err != nil {
		return "", err
	}
	fmt.Printf("Render completed in %v (%d workers, %d of %d pixels lit)\n",
		stats.Duration, stats.Workers, stats.LitPixels, stats.TotalPixels)

	filename := outputFilename(outputDir, config.Mode, config.Format, time.Now())
	if err := canvas.Save(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// createScene builds a built-in scene by ID
func createScene(sceneType string) (*scene.Scene, error) {
	return scene.NewByID(sceneType)
}

// createOutputDir returns the directory renders of a scene are written to
func createOutputDir(sceneType string) string {
	return filepath.Join("output", filepath.Base(sceneType))
}

// outputFilename names a render by mode and timestamp
func outputFilename(dir string, mode renderer.Mode, format canvas.Format, t time.Time) string {
	timestamp := t.Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", mode, timestamp, format))
}
