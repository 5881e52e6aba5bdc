package depthraster

import (
	"errors"
	"fmt"
)

// Errors reported by the depth rasterizer. All validation happens once, at
// shape construction and partitioning; rasterization and compositing never
// fail on validated input.
var (
	// ErrInvalidDepth is returned when a shape's depth lies outside
	// [0, maxDepth], or when maxDepth itself is negative.
	ErrInvalidDepth = errors.New("depthraster: invalid depth")

	// ErrInvalidGeometry is returned for a non-positive or non-finite
	// radius, a non-finite center, a color channel outside [0, 255] or a
	// zero alpha.
	ErrInvalidGeometry = errors.New("depthraster: invalid geometry")

	// ErrDimensionMismatch is returned when a pixel buffer does not have
	// the canvas dimensions. It indicates a programming error.
	ErrDimensionMismatch = errors.New("depthraster: dimension mismatch")

	// ErrInvalidCanvas is returned for a non-positive canvas width or height.
	ErrInvalidCanvas = errors.New("depthraster: canvas dimensions must be positive")

	// ErrRendererClosed is returned by a Renderer after Close.
	ErrRendererClosed = errors.New("depthraster: renderer closed")

	// ErrUnsupportedFormat is returned when an export format is not supported.
	ErrUnsupportedFormat = errors.New("depthraster: unsupported image format")
)

// ShapeError ties a validation failure to the offending input shape.
// It unwraps to one of the sentinel errors above.
type ShapeError struct {
	// Index is the position of the shape in the input sequence.
	Index int

	// Err describes the failure and wraps ErrInvalidDepth or
	// ErrInvalidGeometry.
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v (shape %d)", e.Err, e.Index)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
