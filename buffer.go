package depthraster

import (
	"fmt"
	"image"
	"image/color"
)

// PixelBuffer is a width x height grid of non-premultiplied RGBA pixels,
// stored row-major with 4 bytes per pixel. A new buffer holds only the
// transparent sentinel.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8
}

// NewPixelBuffer creates a buffer with the given dimensions, filled with
// the transparent sentinel. Non-positive dimensions yield an empty buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	width, height = max(width, 0), max(height, 0)
	return &PixelBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the buffer.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Stride returns the row stride in bytes.
func (b *PixelBuffer) Stride() int {
	return b.width * 4
}

// Data returns the raw pixel data (non-premultiplied RGBA).
func (b *PixelBuffer) Data() []uint8 {
	return b.data
}

// Pixel returns the pixel at (x, y).
// Out-of-bounds coordinates return the sentinel.
func (b *PixelBuffer) Pixel(x, y int) Pixel {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Transparent
	}
	i := (y*b.width + x) * 4
	return Pixel{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (b *PixelBuffer) SetPixel(x, y int, p Pixel) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := (y*b.width + x) * 4
	b.data[i+0] = p.R
	b.data[i+1] = p.G
	b.data[i+2] = p.B
	b.data[i+3] = p.A
}

// Clear resets every pixel to the transparent sentinel.
func (b *PixelBuffer) Clear() {
	clear(b.data)
}

// SentinelCount returns the number of unpainted pixels.
func (b *PixelBuffer) SentinelCount() int {
	n := 0
	for i := 0; i < len(b.data); i += 4 {
		if b.data[i]|b.data[i+1]|b.data[i+2]|b.data[i+3] == 0 {
			n++
		}
	}
	return n
}

// Equal reports whether b and other have the same size and identical bytes.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.data {
		if b.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// checkSize returns ErrDimensionMismatch unless b is width x height.
func (b *PixelBuffer) checkSize(width, height int) error {
	if b.width != width || b.height != height {
		return fmt.Errorf("%w: buffer is %dx%d, canvas is %dx%d",
			ErrDimensionMismatch, b.width, b.height, width, height)
	}
	return nil
}

// At implements the image.Image interface.
func (b *PixelBuffer) At(x, y int) color.Color {
	return b.Pixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
