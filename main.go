package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// stdoutPath selects streaming PPM output on stdout
const stdoutPath = "-"

type options struct {
	sceneName string
	output    string
	scenesDir string
	width     int
	samples   int
	depth     int
	workers   int
	seed      int64
	list      bool
	help      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.StringVar(&opts.output, "o", "", "Output file (.ppm, .png or .bmp), '-' streams PPM to stdout (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.scenesDir, "scenes-dir", "scenes", "Directory searched for .json scenes by -list")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounces (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", 1, "Random seed for sampling and generated scenes")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	err := fs.Parse(args)
	return opts, fs, err
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	logger := core.NewWriterLogger(stderr)

	if opts.help {
		printHelp(stderr, fs)
		return nil
	}
	if opts.list {
		return listScenes(stdout, opts.scenesDir)
	}

	selectedScene, err := createScene(opts.sceneName, opts.seed)
	if err != nil {
		return err
	}

	camera, err := selectedScene.Camera(renderer.CameraConfig{
		Width:           opts.width,
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
	})
	if err != nil {
		return err
	}

	logger.Printf("Using %s scene...\n", selectedScene.Name)
	raytracer := renderer.NewRaytracer(camera, selectedScene.World(), renderer.RenderConfig{
		Seed:       opts.seed,
		NumWorkers: opts.workers,
	}, logger)

	if opts.output == stdoutPath {
		sink := output.NewPPMSink(stdout)
		stats, err := raytracer.Render(sink)
		if err != nil {
			return err
		}
		if err := sink.Close(); err != nil {
			return fmt.Errorf("failed to flush PPM output: %w", err)
		}
		logRenderStats(logger, stats)
		return nil
	}

	filename := opts.output
	if filename == "" {
		outputDir := createOutputDir(opts.sceneName)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	} else if _, err := output.FormatFromPath(filename); err != nil {
		return err
	}

	img, stats, err := raytracer.RenderImage()
	if err != nil {
		return err
	}
	logRenderStats(logger, stats)

	if err := output.WriteFile(filename, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a built-in scene name or a .json scene file path
func createScene(sceneName string, seed int64) (*scene.Scene, error) {
	if sceneName == "" {
		return nil, fmt.Errorf("no scene given (available: %s)", strings.Join(scene.Names(), ", "))
	}
	return scene.Load(sceneName, seed)
}

// createOutputDir returns output/<scene>, using the file name for scene files
func createOutputDir(sceneName string) string {
	base := sceneName
	if strings.EqualFold(filepath.Ext(sceneName), ".json") {
		base = strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	}
	return filepath.Join("output", base)
}

func logRenderStats(logger core.Logger, stats renderer.RenderStats) {
	logger.Printf("Render completed in %v\n", stats.Duration)
	logger.Printf("Pixels: %d, samples: %d (%d per pixel, max depth %d)\n",
		stats.TotalPixels, stats.TotalSamples, stats.SamplesPerPixel, stats.MaxDepth)
}

func listScenes(w io.Writer, scenesDir string) error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-24s %s", info.ID, info.Name)
		if info.Description != "" {
			fmt.Fprintf(w, " - %s", info.Description)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Weekend Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, name := range scene.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w, "  <file>.json - scene description file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output is saved to output/<scene>/render_<timestamp>.png unless -o is given")
}
