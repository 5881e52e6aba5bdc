// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/depthraster"
)

// DefaultPattern names frames written by a FileSurface.
const DefaultPattern = "frame-%04d.png"

// FileSurface writes every presented frame to its own file.
//
// Frame files are named by formatting Pattern with the frame number,
// starting at 1, and encoded according to the pattern's extension
// (.png, .jpg, .bmp or .tiff).
type FileSurface struct {
	width   int
	height  int
	dir     string
	pattern string
	format  depthraster.Format
	frames  int
	last    string
	closed  bool
}

// NewFileSurface creates a surface writing into dir, which is created if
// it does not exist. An empty pattern means DefaultPattern. A pattern that
// does not format exactly one integer is rejected with ErrInvalidPattern.
func NewFileSurface(width, height int, dir, pattern string) (*FileSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	name := fmt.Sprintf(pattern, 1)
	if strings.Contains(name, "%!") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	format, err := depthraster.FormatFromPath(name)
	if err != nil {
		return nil, fmt.Errorf("surface: frame pattern %q: %w", pattern, err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("surface: create %s: %w", dir, err)
	}

	return &FileSurface{
		width:   width,
		height:  height,
		dir:     dir,
		pattern: pattern,
		format:  format,
	}, nil
}

// Width returns the surface width.
func (s *FileSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *FileSurface) Height() int {
	return s.height
}

// Present encodes img into the next frame file.
func (s *FileSurface) Present(img image.Image) (err error) {
	if s.closed {
		return ErrClosed
	}
	if err := checkFrame(img, s.width, s.height); err != nil {
		return err
	}

	path := filepath.Join(s.dir, fmt.Sprintf(s.pattern, s.frames+1))
	f, err := os.Create(path) //nolint:gosec // directory is caller-provided
	if err != nil {
		return fmt.Errorf("surface: create frame: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("surface: close frame: %w", cerr)
		}
	}()

	if err := depthraster.EncodeImage(f, img, s.format); err != nil {
		return fmt.Errorf("surface: encode %s: %w", path, err)
	}
	s.frames++
	s.last = path
	return nil
}

// Frames returns the number of frames written so far.
func (s *FileSurface) Frames() int {
	return s.frames
}

// LastPath returns the file written by the latest Present, or "" before
// the first frame.
func (s *FileSurface) LastPath() string {
	return s.last
}

// Close marks the surface closed. Written files are kept.
func (s *FileSurface) Close() error {
	s.closed = true
	return nil
}
