package depthraster

import (
	"fmt"

	"github.com/gogpu/depthraster/internal/blend"
)

// DepthIndex maps a depth value to its rasterized layer: index d holds the
// layer for depth d. A nil entry is an empty bucket.
type DepthIndex []*PixelBuffer

// MaxDepth returns the largest depth the index can hold.
func (idx DepthIndex) MaxDepth() int {
	return len(idx) - 1
}

// check verifies that every layer has the canvas dimensions.
func (idx DepthIndex) check(width, height int) error {
	for d, layer := range idx {
		if layer == nil {
			continue
		}
		if err := layer.checkSize(width, height); err != nil {
			return fmt.Errorf("layer %d: %w", d, err)
		}
	}
	return nil
}

// Composite merges the layers back to front into a new buffer.
//
// Depths are visited from MaxDepth down to 0. At each pixel, a sentinel
// layer pixel is skipped, a layer pixel over a still-sentinel result is
// copied, and anything else is blended with Over using the nearer layer as
// the source. Pixels no layer painted stay the sentinel.
func Composite(idx DepthIndex, width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, width, height)
	}
	if err := idx.check(width, height); err != nil {
		return nil, err
	}

	final := NewPixelBuffer(width, height)
	compositeRegion(final, idx, 0, 0, width, height)
	return final, nil
}

// compositeRegion composites the w x h region at (x0, y0) of every layer
// into dst. Output pixels outside the region are neither read nor written,
// so disjoint regions may be composited concurrently.
func compositeRegion(dst *PixelBuffer, idx DepthIndex, x0, y0, w, h int) {
	stride := dst.Stride()
	for y := y0; y < y0+h; y++ {
		start, end := y*stride+x0*4, y*stride+(x0+w)*4
		out := dst.data[start:end]
		for d := len(idx) - 1; d >= 0; d-- {
			layer := idx[d]
			if layer == nil {
				continue
			}
			mergeRow(out, layer.data[start:end])
		}
	}
}

// mergeRow blends one row of a nearer layer over the accumulated row.
func mergeRow(out, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		sr, sg, sb, sa := src[i], src[i+1], src[i+2], src[i+3]
		if sr|sg|sb|sa == 0 {
			continue
		}
		px := out[i : i+4 : i+4]
		if px[0]|px[1]|px[2]|px[3] == 0 {
			px[0], px[1], px[2], px[3] = sr, sg, sb, sa
			continue
		}
		blend.OverSlice(px, sr, sg, sb, sa)
	}
}
