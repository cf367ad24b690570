package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// shadowAcneEpsilon is the minimum hit distance, keeping bounced rays off their own surface
const shadowAcneEpsilon = 0.001

// World is the read-only content a render traces rays against
type World struct {
	Objects geometry.Shape // Usually a *geometry.ShapeList
	Sky     SkyGradient
}

// RenderConfig controls how a render is scheduled
type RenderConfig struct {
	Seed       int64 // Base seed, each scanline derives its own generator from it
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
}

// Raytracer renders a world through a camera
type Raytracer struct {
	camera *Camera
	world  World
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards progress output.
func NewRaytracer(camera *Camera, world World, config RenderConfig, logger core.Logger) *Raytracer {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		camera: camera,
		world:  world,
		config: config,
		logger: logger,
	}
}

// Camera returns the camera used by the raytracer
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// RayColor estimates the light arriving along r, following at most depth bounces.
// The bounce chain runs as a loop carrying the accumulated attenuation.
func RayColor(r core.Ray, depth int, world World, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.hit(r)
		if !isHit {
			return throughput.MultiplyVec(world.Sky.Color(r.Direction))
		}

		scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
		if !didScatter {
			return core.Vec3{} // Material absorbed the ray
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
	}

	// Bounce limit reached, no more light is gathered
	return core.Vec3{}
}

func (w World) hit(r core.Ray) (*material.HitRecord, bool) {
	if w.Objects == nil {
		return nil, false
	}
	return w.Objects.Hit(r, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
}

// SamplePixel averages the camera's samples for pixel (i, j)
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for s := 0; s < rt.camera.SamplesPerPixel(); s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		ps.AddSample(RayColor(ray, rt.camera.MaxDepth(), rt.world, sampler))
	}
	return ps.GetColor()
}

// RenderRow renders scanline j into encoded pixels.
// The row's generator depends only on the seed and j, so rows are reproducible
// whichever worker renders them.
func (rt *Raytracer) RenderRow(j int) []color.RGBA {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(rowSeed(rt.config.Seed, j))))
	pixels := make([]color.RGBA, rt.camera.Width())

	for i := range pixels {
		pixels[i] = core.ToRGBA(rt.SamplePixel(i, j, sampler))
	}

	return pixels
}

func rowSeed(seed int64, row int) int64 {
	return seed*1_000_003 + int64(row)
}

// Render renders the full image and streams pixels to sink in raster order.
// A sink error stops the render and is returned.
func (rt *Raytracer) Render(sink PixelSink) (RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	stats := RenderStats{MaxDepth: rt.camera.MaxDepth(), SamplesPerPixel: rt.camera.SamplesPerPixel()}

	if err := sink.Begin(width, height); err != nil {
		return stats, fmt.Errorf("starting pixel output: %w", err)
	}

	rt.logger.Printf("Rendering %dx%d with %d samples per pixel, max depth %d (using %d workers)...\n",
		width, height, rt.camera.SamplesPerPixel(), rt.camera.MaxDepth(), rt.config.NumWorkers)

	pool := NewWorkerPool(rt, height, rt.config.NumWorkers)
	pool.Start()
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j})
	}

	// Rows finish out of order, hold them until every earlier row is written
	pending := make(map[int][]color.RGBA)
	next := 0
	for next < height {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		pending[result.Row] = result.Pixels

		for pixels, ready := pending[next]; ready; pixels, ready = pending[next] {
			delete(pending, next)
			for i, c := range pixels {
				if err := sink.WritePixel(c); err != nil {
					pool.Abort()
					pool.Stop()
					stats.Duration = time.Since(startTime)
					return stats, fmt.Errorf("writing pixel (%d, %d): %w", i, next, err)
				}
			}
			stats.TotalPixels += len(pixels)
			stats.TotalSamples += len(pixels) * rt.camera.SamplesPerPixel()
			next++
			rt.logger.Printf("\rScanlines remaining: %d ", height-next)
		}
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	rt.logger.Printf("\rDone.                 \n")

	return stats, nil
}

// RenderImage renders the full image into memory
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats, error) {
	sink := NewImageSink()
	stats, err := rt.Render(sink)
	if err != nil {
		return nil, stats, err
	}
	return sink.Image, stats, nil
}
