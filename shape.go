package depthraster

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// coverTolerance is the fixed edge rule of the rasterizer: a pixel at
// integer position p is covered iff |p - center| - coverTolerance <= radius.
const coverTolerance = 0.5

// Shape is an immutable filled circle at an integer depth.
// Larger depth values are farther from the viewer.
//
// Create shapes with NewShape. The zero Shape is invalid and is rejected
// by Partition.
type Shape struct {
	center vec.Vec2
	radius float64
	fill   Pixel
	depth  int
}

// NewShape validates and returns a circle centered at (cx, cy).
//
// The radius must be positive and finite, the center finite, the fill
// alpha non-zero and the depth non-negative. The upper depth bound is
// checked by Partition, which knows maxDepth.
func NewShape(cx, cy, radius float64, fill Pixel, depth int) (Shape, error) {
	s := Shape{
		center: vec.Vec2{X: cx, Y: cy},
		radius: radius,
		fill:   fill,
		depth:  depth,
	}
	if err := s.validate(); err != nil {
		return Shape{}, err
	}
	return s, nil
}

// validate checks everything about s that does not depend on maxDepth.
func (s Shape) validate() error {
	switch {
	case math.IsNaN(s.center.X) || math.IsInf(s.center.X, 0) ||
		math.IsNaN(s.center.Y) || math.IsInf(s.center.Y, 0):
		return fmt.Errorf("%w: non-finite center (%v, %v)", ErrInvalidGeometry, s.center.X, s.center.Y)
	case !(s.radius > 0) || math.IsInf(s.radius, 0):
		return fmt.Errorf("%w: radius %v must be positive and finite", ErrInvalidGeometry, s.radius)
	case s.fill.A == 0:
		return fmt.Errorf("%w: fill alpha is zero", ErrInvalidGeometry)
	case s.depth < 0:
		return fmt.Errorf("%w: %d is negative", ErrInvalidDepth, s.depth)
	}
	return nil
}

// Center returns the circle center in canvas coordinates.
func (s Shape) Center() vec.Vec2 { return s.center }

// Radius returns the circle radius in pixels.
func (s Shape) Radius() float64 { return s.radius }

// Fill returns the fill color.
func (s Shape) Fill() Pixel { return s.fill }

// Depth returns the depth of the shape. Depth 0 is nearest to the viewer.
func (s Shape) Depth() int { return s.depth }

// Bounds returns the axis-aligned box holding every pixel position the
// shape can cover: the circle's bounding box grown by the edge tolerance.
func (s Shape) Bounds() rect.Rect {
	r := s.radius + coverTolerance
	return rect.Rect{
		LLx: s.center.X - r,
		LLy: s.center.Y - r,
		URx: s.center.X + r,
		URy: s.center.Y + r,
	}
}

// Covers reports whether the shape covers the pixel at (x, y).
func (s Shape) Covers(x, y int) bool {
	d := vec.Vec2{X: float64(x), Y: float64(y)}.Sub(s.center).Length()
	return d-coverTolerance <= s.radius
}

// String returns a human-readable description of the shape.
func (s Shape) String() string {
	return fmt.Sprintf("circle(%.1f, %.1f, r=%.1f, %v, depth=%d)",
		s.center.X, s.center.Y, s.radius, s.fill, s.depth)
}
