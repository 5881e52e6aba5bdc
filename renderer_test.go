package depthraster

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"
)

func newTestRenderer(t *testing.T, width, height int, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(width, height, opts...)
	if err != nil {
		t.Fatalf("NewRenderer(%d, %d) error = %v", width, height, err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestNewRenderer(t *testing.T) {
	r := newTestRenderer(t, 320, 200, WithWorkers(3))
	if r.Width() != 320 || r.Height() != 200 {
		t.Errorf("size = %dx%d, want 320x200", r.Width(), r.Height())
	}
	if r.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", r.Workers())
	}

	if def := newTestRenderer(t, 10, 10); def.Workers() < 1 {
		t.Errorf("default Workers() = %d, want >= 1", def.Workers())
	}

	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := NewRenderer(size[0], size[1]); !errors.Is(err, ErrInvalidCanvas) {
			t.Errorf("NewRenderer(%d, %d) error = %v, want ErrInvalidCanvas", size[0], size[1], err)
		}
	}
}

func TestRenderer_EmptyScene(t *testing.T) {
	r := newTestRenderer(t, 70, 130)

	buf, err := r.Render(nil, 0)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.Width() != 70 || buf.Height() != 130 {
		t.Errorf("output size = %dx%d", buf.Width(), buf.Height())
	}
	if buf.SentinelCount() != 70*130 {
		t.Error("empty scene painted pixels")
	}
}

// TestRenderer_MatchesComposite checks the parallel pipeline against the
// single-goroutine Rasterize + Composite path on a canvas that does not
// divide evenly into tiles.
func TestRenderer_MatchesComposite(t *testing.T) {
	const w, h, maxDepth = 150, 97, 12
	rng := rand.New(rand.NewPCG(21, 22))
	shapes := randomShapes(t, rng, 300, w, h, maxDepth, 1)

	buckets, err := Partition(shapes, maxDepth)
	if err != nil {
		t.Fatal(err)
	}
	idx := make(DepthIndex, len(buckets))
	for _, b := range buckets {
		if len(b.Shapes) == 0 {
			continue
		}
		if idx[b.Depth], err = Rasterize(b, w, h); err != nil {
			t.Fatal(err)
		}
	}
	want, err := Composite(idx, w, h)
	if err != nil {
		t.Fatal(err)
	}

	got, err := newTestRenderer(t, w, h, WithWorkers(4)).Render(shapes, maxDepth)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Render() differs from Composite by up to %d", maxBufferDiff(t, got, want))
	}
}

func TestRenderer_DeterministicAcrossWorkers(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	shapes := randomShapes(t, rng, 400, 200, 140, 30, 1)

	var first *PixelBuffer
	for _, workers := range []int{1, 2, 8} {
		for run := range 2 {
			buf, err := newTestRenderer(t, 200, 140, WithWorkers(workers)).Render(shapes, 30)
			if err != nil {
				t.Fatalf("workers=%d: Render() error = %v", workers, err)
			}
			if first == nil {
				first = buf
				continue
			}
			if !buf.Equal(first) {
				t.Errorf("workers=%d run=%d: output differs from the first render", workers, run)
			}
		}
	}
}

func TestRenderer_Rejects(t *testing.T) {
	r := newTestRenderer(t, 16, 16)
	good := mustShape(t, 4, 4, 2, Red, 1)

	buf, err := r.Render([]Shape{good, mustShape(t, 4, 4, 2, Red, 6)}, 5)
	if buf != nil {
		t.Error("Render() returned an image for invalid input")
	}
	var se *ShapeError
	if !errors.As(err, &se) || se.Index != 1 || !errors.Is(err, ErrInvalidDepth) {
		t.Errorf("Render() error = %v, want ShapeError{Index: 1} wrapping ErrInvalidDepth", err)
	}

	if _, err := r.Render(nil, -1); !errors.Is(err, ErrInvalidDepth) {
		t.Errorf("Render(maxDepth=-1) error = %v, want ErrInvalidDepth", err)
	}
}

func TestRenderer_Close(t *testing.T) {
	r, err := NewRenderer(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
	r.Close()

	if _, err := r.Render(nil, 0); !errors.Is(err, ErrRendererClosed) {
		t.Errorf("Render() after Close error = %v, want ErrRendererClosed", err)
	}
	if _, err := r.RenderSequential(nil, 0); !errors.Is(err, ErrRendererClosed) {
		t.Errorf("RenderSequential() after Close error = %v, want ErrRendererClosed", err)
	}
}

func TestRenderer_Observer(t *testing.T) {
	var (
		phases []Phase
		spans  []time.Duration
	)
	obs := PhaseObserverFunc(func(p Phase, start, end time.Time) {
		phases = append(phases, p)
		spans = append(spans, end.Sub(start))
	})

	r := newTestRenderer(t, 64, 64, WithObserver(obs))
	shapes := []Shape{mustShape(t, 30, 30, 10, Blue, 2), mustShape(t, 20, 20, 8, Red, 0)}

	if _, err := r.Render(shapes, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := r.RenderSequential(shapes, 2); err != nil {
		t.Fatal(err)
	}

	want := []Phase{PhasePartition, PhaseRasterize, PhaseComposite, PhasePaint}
	if len(phases) != len(want) {
		t.Fatalf("observed %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %v, want %v", i, phases[i], want[i])
		}
		if spans[i] < 0 {
			t.Errorf("phase %v has negative duration %v", phases[i], spans[i])
		}
	}
}

func TestRenderer_ObserverOnRejectedRender(t *testing.T) {
	var phases []Phase
	r := newTestRenderer(t, 8, 8, WithObserver(PhaseObserverFunc(func(p Phase, _, _ time.Time) {
		phases = append(phases, p)
	})))

	if _, err := r.Render([]Shape{{}}, 0); err == nil {
		t.Fatal("Render() accepted the zero Shape")
	}
	if len(phases) != 1 || phases[0] != PhasePartition {
		t.Errorf("observed %v, want only partition", phases)
	}
}

func TestRenderer_SharedBufferPool(t *testing.T) {
	pool := NewBufferPool()
	a := newTestRenderer(t, 40, 30, WithBufferPool(pool), WithWorkers(2))
	b := newTestRenderer(t, 40, 30, WithBufferPool(pool), WithWorkers(2))

	shapes := []Shape{mustShape(t, 10, 10, 6, Red, 1), mustShape(t, 15, 12, 6, Pixel{G: 255, A: 90}, 0)}
	first, err := a.Render(shapes, 1)
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		got, err := b.Render(shapes, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(first) {
			t.Fatal("render with recycled layers differs")
		}
	}
}

func TestRenderer_ConcurrentRender(t *testing.T) {
	r := newTestRenderer(t, 96, 96, WithWorkers(4))
	rng := rand.New(rand.NewPCG(9, 10))
	shapes := randomShapes(t, rng, 150, 96, 96, 10, 1)

	want, err := r.Render(shapes, 10)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			got, err := r.Render(shapes, 10)
			if err != nil {
				t.Errorf("Render() error = %v", err)
				return
			}
			if !got.Equal(want) {
				t.Error("concurrent Render() produced a different image")
			}
		})
	}
	wg.Wait()
}
