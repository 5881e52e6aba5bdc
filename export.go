package depthraster

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Format is an image file format supported by the exporter.
type Format int

const (
	// FormatPNG keeps the alpha channel; unpainted pixels are transparent.
	FormatPNG Format = iota
	// FormatJPEG has no alpha channel; the image is flattened first.
	FormatJPEG
	// FormatBMP is written as 32-bit BMP with alpha.
	FormatBMP
	// FormatTIFF is written deflate-compressed with alpha.
	FormatTIFF
)

// String returns the conventional file extension of the format.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ToImage copies the buffer into an image.NRGBA.
// Sentinel pixels become fully transparent pixels.
func (b *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.data)
	return img
}

// Flatten composites the buffer over an opaque background and returns the
// result. Sentinel pixels take the background color. A background with
// alpha below 255 is treated as opaque.
func (b *PixelBuffer) Flatten(bg Pixel) *image.NRGBA {
	bg.A = 255
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i := 0; i < len(b.data); i += 4 {
		src := Pixel{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
		out := bg
		if !src.IsSentinel() {
			out = Over(bg, src)
		}
		img.Pix[i+0] = out.R
		img.Pix[i+1] = out.G
		img.Pix[i+2] = out.B
		img.Pix[i+3] = out.A
	}
	return img
}

// Thumbnail returns a copy scaled so that its longer side is maxSide
// pixels, preserving the aspect ratio. Buffers already small enough are
// copied unscaled.
func (b *PixelBuffer) Thumbnail(maxSide int) *image.NRGBA {
	longest := max(b.width, b.height)
	if maxSide <= 0 || longest <= maxSide {
		return b.ToImage()
	}

	w := max(1, b.width*maxSide/longest)
	h := max(1, b.height*maxSide/longest)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), b.ToImage(), b.Bounds(), xdraw.Src, nil)
	return dst
}

// Encode writes the buffer to w in the given format. JPEG output is
// flattened onto white, the other formats keep transparency.
func (b *PixelBuffer) Encode(w io.Writer, f Format) error {
	if f == FormatJPEG {
		return EncodeImage(w, b.Flatten(White), f)
	}
	return EncodeImage(w, b.ToImage(), f)
}

// Save writes the buffer to path, choosing the format from the extension.
func (b *PixelBuffer) Save(path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return saveImage(path, f, func(w io.Writer) error {
		return b.Encode(w, f)
	})
}

// SaveFlattened writes the buffer flattened onto bg to path.
func (b *PixelBuffer) SaveFlattened(path string, bg Pixel) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return saveImage(path, f, func(w io.Writer) error {
		return EncodeImage(w, b.Flatten(bg), f)
	})
}

func saveImage(path string, f Format, encode func(io.Writer) error) (err error) {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("depthraster: create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("depthraster: close %s: %w", path, cerr)
		}
	}()

	if err := encode(file); err != nil {
		return fmt.Errorf("depthraster: encode %s as %v: %w", path, f, err)
	}
	return nil
}

// EncodeImage writes any image to w in format f. Unlike Encode it never
// flattens, so JPEG output drops the alpha channel as image/jpeg does.
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// Surface is the presentation boundary: something that can show a
// finished image, such as a window or a file-backed preview. Surfaces are
// supplied by the caller; the renderer never chooses where images go.
type Surface interface {
	Present(img image.Image) error
}

// Present hands a copy of the buffer to s.
func (b *PixelBuffer) Present(s Surface) error {
	return s.Present(b.ToImage())
}
