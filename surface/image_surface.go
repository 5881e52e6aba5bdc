// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"image/draw"
)

// ImageSurface is an in-memory surface that keeps the last presented frame.
//
// It is the default backend and the natural choice for tests and for
// callers that post-process frames themselves.
//
// Example:
//
//	s, _ := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	_ = buf.Present(s)
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.NRGBA
	frames int

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates an in-memory surface with the given dimensions.
func NewImageSurface(width, height int) (*ImageSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewNRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Present copies img into the surface, replacing the previous frame.
func (s *ImageSurface) Present(img image.Image) error {
	if s.closed {
		return ErrClosed
	}
	if err := checkFrame(img, s.width, s.height); err != nil {
		return err
	}

	draw.Draw(s.img, s.img.Bounds(), img, img.Bounds().Min, draw.Src)
	s.frames++
	return nil
}

// Frames returns the number of frames presented so far.
func (s *ImageSurface) Frames() int {
	return s.frames
}

// Snapshot returns a copy of the last presented frame. Before the first
// Present the snapshot is fully transparent.
func (s *ImageSurface) Snapshot() *image.NRGBA {
	out := image.NewNRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Close marks the surface closed and drops the frame.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = image.NewNRGBA(image.Rectangle{})
	return nil
}
