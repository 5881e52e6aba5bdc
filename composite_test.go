package depthraster

import (
	"errors"
	"testing"
)

func layerOf(t *testing.T, width, height int, shapes ...Shape) *PixelBuffer {
	t.Helper()
	if len(shapes) == 0 {
		return nil
	}
	buf, err := Rasterize(Bucket{Depth: shapes[0].Depth(), Shapes: shapes}, width, height)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	return buf
}

func TestComposite_NearOccludesFar(t *testing.T) {
	far := mustShape(t, 6, 10, 5, Red, 5)
	near := mustShape(t, 14, 10, 5, Green, 0)

	idx := make(DepthIndex, 6)
	idx[5] = layerOf(t, 20, 20, far)
	idx[0] = layerOf(t, 20, 20, near)

	out, err := Composite(idx, 20, 20)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	// (10, 10) is covered by both circles.
	if !far.Covers(10, 10) || !near.Covers(10, 10) {
		t.Fatal("test setup: circles do not overlap at (10, 10)")
	}
	if got := out.Pixel(10, 10); got != Green {
		t.Errorf("overlap = %v, want near color %v", got, Green)
	}
	if got := out.Pixel(2, 10); got != Red {
		t.Errorf("far-only pixel = %v, want %v", got, Red)
	}
	if got := out.Pixel(18, 10); got != Green {
		t.Errorf("near-only pixel = %v, want %v", got, Green)
	}
}

func TestComposite_HalfAlphaLayers(t *testing.T) {
	idx := DepthIndex{
		layerOf(t, 3, 3, mustShape(t, 1, 1, 0.5, Pixel{G: 255, A: 128}, 0)),
		layerOf(t, 3, 3, mustShape(t, 1, 1, 0.5, Pixel{R: 255, A: 128}, 1)),
	}

	out, err := Composite(idx, 3, 3)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	got := out.Pixel(1, 1)
	if got.R != 85 || got.G != 170 || got.B != 0 {
		t.Errorf("blend rgb = (%d, %d, %d), want (85, 170, 0)", got.R, got.G, got.B)
	}
	if d := int(got.A) - 191; d < -1 || d > 1 {
		t.Errorf("blend alpha = %d, want 191±1", got.A)
	}
}

func TestComposite_SentinelPreserved(t *testing.T) {
	s := mustShape(t, 3, 3, 2, Pixel{R: 1, G: 1, B: 1, A: 1}, 2)
	idx := DepthIndex{nil, nil, layerOf(t, 16, 16, s)}

	out, err := Composite(idx, 16, 16)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	for y := range 16 {
		for x := range 16 {
			got := out.Pixel(x, y)
			if s.Covers(x, y) {
				if got.IsSentinel() {
					t.Errorf("covered pixel (%d, %d) is the sentinel", x, y)
				}
				continue
			}
			if !got.IsSentinel() {
				t.Errorf("uncovered pixel (%d, %d) = %v, want sentinel", x, y, got)
			}
		}
	}
}

func TestComposite_EmptyIndex(t *testing.T) {
	for _, idx := range []DepthIndex{nil, make(DepthIndex, 4)} {
		out, err := Composite(idx, 5, 5)
		if err != nil {
			t.Fatalf("Composite() error = %v", err)
		}
		if out.SentinelCount() != 25 {
			t.Errorf("Composite(%d nil layers) painted pixels", len(idx))
		}
	}
	if got := make(DepthIndex, 4).MaxDepth(); got != 3 {
		t.Errorf("MaxDepth() = %d, want 3", got)
	}
}

func TestComposite_Errors(t *testing.T) {
	if _, err := Composite(nil, 5, -1); !errors.Is(err, ErrInvalidCanvas) {
		t.Errorf("Composite(5x-1) error = %v, want ErrInvalidCanvas", err)
	}

	idx := DepthIndex{NewPixelBuffer(5, 5), NewPixelBuffer(5, 4)}
	out, err := Composite(idx, 5, 5)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Composite() error = %v, want ErrDimensionMismatch", err)
	}
	if out != nil {
		t.Error("Composite() returned a buffer on error")
	}
}

// TestCompositeRegion_Disjoint checks that compositing a region leaves the
// rest of the output untouched.
func TestCompositeRegion_Disjoint(t *testing.T) {
	idx := DepthIndex{layerOf(t, 10, 10, mustShape(t, 5, 5, 20, Blue, 0))}
	dst := NewPixelBuffer(10, 10)

	compositeRegion(dst, idx, 2, 3, 4, 5)

	for y := range 10 {
		for x := range 10 {
			inside := x >= 2 && x < 6 && y >= 3 && y < 8
			if got := dst.Pixel(x, y); (got == Blue) != inside {
				t.Errorf("pixel (%d, %d) = %v, inside region = %v", x, y, got, inside)
			}
		}
	}
}
