package depthraster

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/depthraster/internal/parallel"
)

// Renderer renders shape sets onto a fixed-size canvas.
//
// Render runs two fork-join phases separated by a full barrier. Phase one
// rasterizes every non-empty depth bucket into its own layer, one task per
// bucket. Phase two composites the layers back to front, with the canvas
// split into output-disjoint tiles so that no two workers write the same
// pixel. Neither phase takes a lock, and the result does not depend on
// scheduling or on the worker count.
//
// Thread safety: a Renderer may be used from several goroutines; each
// Render call owns its layers and output.
type Renderer struct {
	width    int
	height   int
	workers  int
	pool     *parallel.WorkerPool
	grid     *parallel.TileGrid
	buffers  *BufferPool
	observer PhaseObserver
	closed   atomic.Bool
}

// NewRenderer creates a renderer for a width x height canvas.
func NewRenderer(width, height int, opts ...Option) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.buffers == nil {
		o.buffers = NewBufferPool()
	}

	return &Renderer{
		width:    width,
		height:   height,
		workers:  o.workers,
		pool:     parallel.NewWorkerPool(o.workers),
		grid:     parallel.NewTileGrid(width, height),
		buffers:  o.buffers,
		observer: o.observer,
	}, nil
}

// Width returns the canvas width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the canvas height in pixels.
func (r *Renderer) Height() int { return r.height }

// Workers returns the number of goroutines used by each parallel phase.
func (r *Renderer) Workers() int { return r.workers }

// Render partitions shapes over [0, maxDepth], rasterizes the buckets in
// parallel and composites them into a new buffer.
//
// Invalid input is rejected before any rasterization starts; the error is
// a *ShapeError for a bad shape. No partial image is returned on error.
func (r *Renderer) Render(shapes []Shape, maxDepth int) (*PixelBuffer, error) {
	if r.closed.Load() {
		return nil, ErrRendererClosed
	}
	log := Logger()
	begin := time.Now()

	start := begin
	buckets, err := Partition(shapes, maxDepth)
	r.observe(PhasePartition, start)
	if err != nil {
		log.Warn("render rejected", "shapes", len(shapes), "maxDepth", maxDepth, "err", err)
		return nil, err
	}

	start = time.Now()
	layers, err := r.rasterizeAll(buckets)
	r.observe(PhaseRasterize, start)
	if err != nil {
		log.Warn("rasterization failed", "err", err)
		return nil, err
	}
	defer r.release(layers)

	start = time.Now()
	final := NewPixelBuffer(r.width, r.height)
	r.compositeAll(final, layers)
	r.observe(PhaseComposite, start)

	log.Debug("render complete",
		"shapes", len(shapes),
		"maxDepth", maxDepth,
		"workers", r.workers,
		"elapsed", time.Since(begin))
	return final, nil
}

// RenderSequential renders shapes with PaintSequential, the single-threaded
// painter's algorithm, reporting it to the observer as PhasePaint.
func (r *Renderer) RenderSequential(shapes []Shape, maxDepth int) (*PixelBuffer, error) {
	if r.closed.Load() {
		return nil, ErrRendererClosed
	}

	start := time.Now()
	buf, err := PaintSequential(shapes, maxDepth, r.width, r.height)
	r.observe(PhasePaint, start)
	if err != nil {
		Logger().Warn("render rejected", "shapes", len(shapes), "maxDepth", maxDepth, "err", err)
		return nil, err
	}

	Logger().Debug("sequential render complete", "shapes", len(shapes), "elapsed", time.Since(start))
	return buf, nil
}

// rasterizeAll runs one task per non-empty bucket and waits for all of
// them. Each task writes only its own layer slot.
func (r *Renderer) rasterizeAll(buckets []Bucket) (DepthIndex, error) {
	layers := make(DepthIndex, len(buckets))

	var g errgroup.Group
	g.SetLimit(r.workers)

	tasks := 0
	for _, b := range buckets {
		if len(b.Shapes) == 0 {
			continue
		}
		tasks++
		g.Go(func() error {
			buf := r.buffers.Get(r.width, r.height)
			if err := rasterizeInto(buf, b); err != nil {
				r.buffers.Put(buf)
				return fmt.Errorf("depth %d: %w", b.Depth, err)
			}
			layers[b.Depth] = buf
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.release(layers)
		return nil, err
	}

	Logger().Debug("rasterized depth buckets", "buckets", len(buckets), "tasks", tasks)
	return layers, nil
}

// compositeAll merges layers into dst, one work item per tile.
func (r *Renderer) compositeAll(dst *PixelBuffer, layers DepthIndex) {
	parallel.ForEachTile(r.pool, r.grid.Tiles(), func(t parallel.Tile) {
		x, y, w, h := t.Bounds()
		compositeRegion(dst, layers, x, y, w, h)
	})
}

// release returns layer buffers to the pool.
func (r *Renderer) release(layers DepthIndex) {
	for d, buf := range layers {
		if buf != nil {
			r.buffers.Put(buf)
			layers[d] = nil
		}
	}
}

// observe reports a finished phase to the observer, if any.
func (r *Renderer) observe(p Phase, start time.Time) {
	if r.observer != nil {
		r.observer.ObservePhase(p, start, time.Now())
	}
}

// Close stops the worker pool. Render and RenderSequential return
// ErrRendererClosed afterwards. Close is safe to call multiple times.
func (r *Renderer) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	r.pool.Close()
}
