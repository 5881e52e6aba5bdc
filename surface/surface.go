// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"
)

// Surface is a presentation target for finished frames.
//
// Every Surface satisfies depthraster.Surface, so a rendered buffer can be
// shown with buf.Present(s).
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Present shows one frame. The frame must match the surface size.
	// The surface does not retain img after Present returns.
	Present(img image.Image) error

	// Frames returns the number of frames presented so far.
	Frames() int

	// Close releases all resources associated with the surface.
	// Present fails with ErrClosed afterwards.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Options configures surface creation through the registry.
type Options struct {
	// Width is the surface width in pixels.
	Width int

	// Height is the surface height in pixels.
	Height int

	// Dir is the output directory of file-backed surfaces.
	Dir string

	// Pattern names the frames of file-backed surfaces. It must contain
	// one integer verb for the frame number.
	// Default: "frame-%04d.png"
	Pattern string
}

// Errors.
var (
	// ErrClosed is returned by Present after Close.
	ErrClosed = errors.New("surface: closed")

	// ErrSizeMismatch is returned when a frame does not match the surface.
	ErrSizeMismatch = errors.New("surface: frame size mismatch")

	// ErrInvalidSize is returned for non-positive surface dimensions.
	ErrInvalidSize = errors.New("surface: dimensions must be positive")

	// ErrInvalidPattern is returned for a frame pattern without exactly one
	// integer verb.
	ErrInvalidPattern = errors.New("surface: frame pattern needs one integer verb")
)

// checkFrame validates a frame against a width x height surface.
func checkFrame(img image.Image, width, height int) error {
	if img == nil {
		return fmt.Errorf("%w: nil frame", ErrSizeMismatch)
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return fmt.Errorf("%w: frame is %dx%d, surface is %dx%d",
			ErrSizeMismatch, b.Dx(), b.Dy(), width, height)
	}
	return nil
}
