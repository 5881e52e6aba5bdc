package depthraster

import (
	"cmp"
	"fmt"
	"slices"
)

// PaintSequential renders shapes with the painter's algorithm: a stable
// sort from farthest to nearest depth, then every shape painted in turn
// onto one buffer with the same edge rule and Over operator that
// Rasterize uses.
//
// It is the single-threaded reference for the parallel pipeline. Where no
// two shapes of one depth overlap, both produce identical bytes; elsewhere
// they agree up to the rounding of intermediate colors.
func PaintSequential(shapes []Shape, maxDepth, width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, width, height)
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: maxDepth %d is negative", ErrInvalidDepth, maxDepth)
	}
	if err := validateShapes(shapes, maxDepth); err != nil {
		return nil, err
	}

	ordered := slices.Clone(shapes)
	slices.SortStableFunc(ordered, func(a, b Shape) int {
		return cmp.Compare(b.depth, a.depth)
	})

	buf := NewPixelBuffer(width, height)
	for _, s := range ordered {
		paintShape(buf, s)
	}
	return buf, nil
}
