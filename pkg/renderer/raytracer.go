package renderer

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// RenderConfig controls how a frame is scheduled
type RenderConfig struct {
	NumWorkers int   // Number of parallel row workers (0 = use CPU count)
	Seed       int64 // Row r is sampled with a generator seeded Seed+r
}

// Raytracer renders a preprocessed scene into a frame of 8-bit pixels
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
	spp        int
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer validates the scene, builds its camera and prepares a raytracer.
// A nil logger discards progress output.
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("while preparing scene: %w", err)
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Raytracer{
		scene:      s,
		integrator: integrator.NewPathTracingIntegrator(s.SamplingConfig.MaxDepth),
		width:      s.SamplingConfig.Width,
		height:     s.SamplingConfig.Height,
		spp:        s.SamplingConfig.SamplesPerPixel,
		config:     config,
		logger:     logger,
	}, nil
}

// SamplePixel averages SamplesPerPixel jittered paths through pixel (i, row),
// where row 0 is the top of the image. The result is linear, not gamma corrected.
func (rt *Raytracer) SamplePixel(i, row int, sampler core.Sampler) core.Vec3 {
	// Camera coordinates run bottom-up
	j := rt.height - 1 - row

	var stats PixelStats
	for sample := 0; sample < rt.spp; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		s := (float64(i) + sampler.Get1D()) / float64(rt.width)
		t := (float64(j) + sampler.Get1D()) / float64(rt.height)

		ray := rt.scene.Camera.GetRay(s, t, sampler)
		stats.AddSample(rt.integrator.RayColor(ray, rt.scene, sampler))
	}
	return stats.GetColor()
}

// RenderRow renders one full row of the frame with its own deterministic sampler
func (rt *Raytracer) RenderRow(row int, pix []Pixel) {
	sampler := core.NewSeededSampler(rt.config.Seed + int64(row))
	for i := 0; i < rt.width; i++ {
		pix[i] = ToPixel(rt.SamplePixel(i, row, sampler))
	}
}

// Render traces every pixel of the frame. The frame is identical for a given
// seed regardless of the number of workers. Render returns ctx.Err() if the
// context is cancelled before every row is complete.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	tracer := otel.Tracer("go-sphere-tracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Raytracer.Render")
	defer span.End()

	span.SetAttributes(
		attribute.Int("width", rt.width),
		attribute.Int("height", rt.height),
		attribute.Int("spp", rt.spp),
		attribute.Int("depth", rt.scene.SamplingConfig.MaxDepth),
	)

	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d, %d workers\n",
		rt.width, rt.height, rt.spp, rt.scene.SamplingConfig.MaxDepth, rt.config.NumWorkers)

	start := time.Now()
	frame := NewFrame(rt.width, rt.height)
	progress := newRowProgress(rt.height, rt.logger)

	err := renderRows(ctx, rt.height, rt.config.NumWorkers, func(row int) {
		rt.RenderRow(row, frame.Row(row))
		progress.rowDone()
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels:      rt.width * rt.height,
		TotalSamples:     rt.width * rt.height * rt.spp,
		Rows:             rt.height,
		Workers:          rt.config.NumWorkers,
		Elapsed:          time.Since(start),
		AverageLuminance: CalculateAverageLuminance(frame.ToRGBA()),
	}
	rt.logger.Printf("Render complete in %v: %d pixels, %d samples\n",
		stats.Elapsed.Round(time.Millisecond), stats.TotalPixels, stats.TotalSamples)

	return frame, stats, nil
}

// ToPixel gamma corrects a linear color (gamma 2) and maps each channel to
// 0..255. Channels are clamped to [0, 1] first; NaN maps to 0.
func ToPixel(c core.Vec3) Pixel {
	return Pixel{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
	}
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	v = math.Sqrt(v)
	if v >= 1 {
		return 255
	}
	return uint8(v * 255.999)
}
