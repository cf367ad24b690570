package renderer

import (
	"reflect"
	"testing"
)

func TestWorkerPool_RendersEveryRow(t *testing.T) {
	raytracer := singleSphereRaytracer(t, 7, 0, nil)
	height := raytracer.camera.Height()

	pool := NewWorkerPool(raytracer, height, 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}

	pool.Start()
	for row := 0; row < height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}
	pool.Stop()

	seen := make(map[int]bool)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if seen[result.Row] {
			t.Errorf("Row %d rendered twice", result.Row)
		}
		seen[result.Row] = true

		if want := raytracer.RenderRow(result.Row); !reflect.DeepEqual(result.Pixels, want) {
			t.Errorf("Row %d differs from a direct render", result.Row)
		}
	}
	if len(seen) != height {
		t.Errorf("Expected %d rows, got %d", height, len(seen))
	}
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	pool := NewWorkerPool(singleSphereRaytracer(t, 1, 0, nil), 1, 0)
	if pool.GetNumWorkers() <= 0 {
		t.Errorf("Expected a positive worker count, got %d", pool.GetNumWorkers())
	}
}

func TestWorkerPool_AbortSkipsPendingRows(t *testing.T) {
	raytracer := singleSphereRaytracer(t, 1, 0, nil)
	height := raytracer.camera.Height()

	pool := NewWorkerPool(raytracer, height, 2)
	for row := 0; row < height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}
	pool.Abort()
	pool.Abort() // Safe to call twice
	pool.Start()
	pool.Stop()

	if result, ok := pool.GetResult(); ok {
		t.Errorf("Expected no results after abort, got row %d", result.Row)
	}
}
