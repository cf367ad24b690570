package renderer

import (
	"image/color"
	"runtime"
	"sync"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Row int
}

// RowResult contains the encoded pixels of a finished scanline
type RowResult struct {
	Row    int
	Pixels []color.RGBA
}

// WorkerPool manages parallel scanline rendering.
// Workers only read the raytracer's camera and world; each row is owned by the
// single worker that renders it.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
	stopChan    chan struct{}
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// The queues are sized for numRows so submitting and reporting never block.
func NewWorkerPool(raytracer *Raytracer, numRows, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numRows),
		resultQueue: make(chan RowResult, numRows),
		numWorkers:  numWorkers,
		stopChan:    make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			stopChan:    wp.stopChan,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to drain and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// Abort makes workers skip every task they have not started yet
func (wp *WorkerPool) Abort() {
	wp.stopOnce.Do(func() { close(wp.stopChan) })
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		select {
		case <-w.stopChan:
			continue
		default:
		}

		w.resultQueue <- RowResult{
			Row:    task.Row,
			Pixels: w.raytracer.RenderRow(task.Row),
		}
	}
}
