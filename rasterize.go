package depthraster

import (
	"fmt"
	"math"

	"github.com/gogpu/depthraster/internal/blend"
)

// Rasterize paints one depth bucket into a fresh width x height buffer.
//
// Shapes are painted in bucket order. A covered pixel that is still the
// sentinel takes the shape's color; otherwise the shape is blended over
// the color accumulated so far with Over. Rasterize touches no state
// outside its result, so buckets may be rasterized concurrently.
//
// A shape whose depth differs from the bucket's is reported as a
// *ShapeError wrapping ErrInvalidDepth, with the index inside the bucket.
func Rasterize(b Bucket, width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, width, height)
	}
	buf := NewPixelBuffer(width, height)
	if err := rasterizeInto(buf, b); err != nil {
		return nil, err
	}
	return buf, nil
}

// rasterizeInto paints b into buf, which must hold only sentinels.
func rasterizeInto(buf *PixelBuffer, b Bucket) error {
	for i, s := range b.Shapes {
		if s.depth != b.Depth {
			return &ShapeError{
				Index: i,
				Err:   fmt.Errorf("%w: shape depth %d in bucket %d", ErrInvalidDepth, s.depth, b.Depth),
			}
		}
	}
	for _, s := range b.Shapes {
		paintShape(buf, s)
	}
	return nil
}

// paintShape composites one circle onto buf.
func paintShape(buf *PixelBuffer, s Shape) {
	x0, y0, x1, y1, ok := pixelSpan(s, buf.width, buf.height)
	if !ok {
		return
	}

	fill := s.fill
	stride := buf.Stride()
	for y := y0; y <= y1; y++ {
		row := buf.data[y*stride : (y+1)*stride]
		for x := x0; x <= x1; x++ {
			if !s.Covers(x, y) {
				continue
			}
			px := row[x*4 : x*4+4 : x*4+4]
			if px[0]|px[1]|px[2]|px[3] == 0 {
				px[0], px[1], px[2], px[3] = fill.R, fill.G, fill.B, fill.A
				continue
			}
			blend.OverSlice(px, fill.R, fill.G, fill.B, fill.A)
		}
	}
}

// pixelSpan clips the shape's bounds to the canvas and returns the
// inclusive integer pixel range to test. ok is false if nothing remains.
func pixelSpan(s Shape, width, height int) (x0, y0, x1, y1 int, ok bool) {
	bb := s.Bounds()

	fx0 := math.Max(math.Ceil(bb.LLx), 0)
	fy0 := math.Max(math.Ceil(bb.LLy), 0)
	fx1 := math.Min(math.Floor(bb.URx), float64(width-1))
	fy1 := math.Min(math.Floor(bb.URy), float64(height-1))
	if fx0 > fx1 || fy0 > fy1 {
		return 0, 0, 0, 0, false
	}
	return int(fx0), int(fy0), int(fx1), int(fy1), true
}
