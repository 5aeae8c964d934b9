// sphere-tracer renders a scene of spheres with a Monte-Carlo path tracer and
// writes the result as a PPM or PNG image.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"golang.org/x/term"

	"github.com/df07/go-sphere-tracer/pkg/loaders"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

var (
	sceneName  = flag.String("scene", "default", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	sceneFile  = flag.String("scene-file", "", "YAML scene description; overrides -scene")
	width      = flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height     = flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	spp        = flag.Int("spp", 0, "Samples per pixel (0 = scene default)")
	depth      = flag.Int("depth", 0, "Maximum bounces per path (0 = scene default)")
	seed       = flag.Int64("seed", 1, "Random seed; row r uses seed+r")
	workers    = flag.Int("workers", 0, "Parallel row workers (0 = number of CPUs)")
	outPath    = flag.String("out", "", "Output file, or - for stdout (default output/<scene>/render_<timestamp>.png)")
	formatName = flag.String("format", "", "Output format: ppm, p6 or png (default from -out extension)")
)

// glogLogger implements core.Logger on top of glog
type glogLogger struct{}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.Infof(strings.TrimSuffix(format, "\n"), args...)
}

func main() {
	flag.Parse()
	defer glog.Flush()

	glog.Infof("flags:")
	glog.Infof("scene: %q", *sceneName)
	glog.Infof("scene-file: %q", *sceneFile)
	glog.Infof("size: %dx%d spp: %d depth: %d", *width, *height, *spp, *depth)
	glog.Infof("seed: %d workers: %d", *seed, *workers)
	glog.Infof("out: %q format: %q", *outPath, *formatName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		glog.Exitf("Render failed: %v", err)
	}
}

func run(ctx context.Context) error {
	s, err := createScene(*sceneName, *sceneFile)
	if err != nil {
		return err
	}
	applyOverrides(s, *width, *height, *spp, *depth)

	label := *sceneName
	if *sceneFile != "" {
		label = strings.TrimSuffix(filepath.Base(*sceneFile), filepath.Ext(*sceneFile))
	}
	path, format, err := resolveOutput(*outPath, *formatName, label, time.Now())
	if err != nil {
		return err
	}

	if path == "-" && format.IsBinary() && term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("refusing to write %v image data to a terminal; redirect stdout or use -format ppm", format)
	}

	rt, err := renderer.NewRaytracer(s, renderer.RenderConfig{NumWorkers: *workers, Seed: *seed}, glogLogger{})
	if err != nil {
		return err
	}

	frame, _, err := rt.Render(ctx)
	if err != nil {
		return fmt.Errorf("while rendering: %w", err)
	}

	if path == "-" {
		return output.Encode(os.Stdout, frame, format)
	}
	if err := writeFile(path, func(w io.Writer) error { return output.Encode(w, frame, format) }); err != nil {
		return err
	}
	glog.Infof("Render saved as %s", path)
	return nil
}

// createScene loads the scene file if one is given, otherwise the named built-in scene
func createScene(name, file string) (*scene.Scene, error) {
	if file != "" {
		return loaders.LoadScene(file)
	}
	return scene.ByName(name)
}

// applyOverrides replaces scene sampling settings with any non-zero flag values.
// When only one image dimension is given the other follows the scene's aspect ratio.
func applyOverrides(s *scene.Scene, width, height, spp, depth int) {
	cfg := &s.SamplingConfig
	switch {
	case width > 0 && height > 0:
		cfg.Width, cfg.Height = width, height
	case width > 0 && cfg.Width > 0:
		cfg.Height = max(1, width*cfg.Height/cfg.Width)
		cfg.Width = width
	case height > 0 && cfg.Height > 0:
		cfg.Width = max(1, height*cfg.Width/cfg.Height)
		cfg.Height = height
	}
	if spp > 0 {
		cfg.SamplesPerPixel = spp
	}
	if depth > 0 {
		cfg.MaxDepth = depth
	}
}

// resolveOutput decides where the image goes and how it is encoded
func resolveOutput(path, formatName, label string, now time.Time) (string, output.Format, error) {
	if path == "" {
		path = filepath.Join("output", label, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
	}

	var format output.Format
	var err error
	if formatName != "" {
		format, err = output.ParseFormat(formatName)
	} else {
		format, err = output.FormatForPath(path)
	}
	if err != nil {
		return "", 0, err
	}
	return path, format, nil
}

func writeFile(path string, encode func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("while creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating output file: %w", err)
	}

	if err := encode(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("while closing output file: %w", err)
	}
	return nil
}
