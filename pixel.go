package depthraster

import (
	"fmt"
	"image/color"

	"github.com/gogpu/depthraster/internal/blend"
)

// Pixel is a non-premultiplied RGBA color with byte channels.
//
// The zero Pixel is the transparent sentinel: it marks a buffer slot that
// no shape has painted. Shapes never carry a zero alpha, so a painted
// pixel can never be mistaken for the sentinel.
type Pixel struct {
	R, G, B, A uint8
}

// Transparent is the sentinel pixel.
var Transparent = Pixel{}

// Common colors
var (
	Black = Pixel{A: 255}
	White = Pixel{R: 255, G: 255, B: 255, A: 255}
	Red   = Pixel{R: 255, A: 255}
	Green = Pixel{G: 255, A: 255}
	Blue  = Pixel{B: 255, A: 255}
)

// NewColor creates a pixel from integer channels.
// Each channel must lie in [0, 255]; otherwise the error wraps
// ErrInvalidGeometry.
func NewColor(r, g, b, a int) (Pixel, error) {
	for _, c := range [...]int{r, g, b, a} {
		if c < 0 || c > 255 {
			return Pixel{}, fmt.Errorf("%w: color channel %d outside [0, 255]", ErrInvalidGeometry, c)
		}
	}
	return Pixel{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil //nolint:gosec // range checked above
}

// IsSentinel reports whether p is the unpainted transparent sentinel.
func (p Pixel) IsSentinel() bool {
	return p == Transparent
}

// NRGBA converts p to the standard non-premultiplied color type.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// RGBA implements the color.Color interface.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return p.NRGBA().RGBA()
}

// String returns the color in #RRGGBBAA notation.
func (p Pixel) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", p.R, p.G, p.B, p.A)
}

// FromColor converts a standard color.Color to a Pixel.
func FromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Over composites src on top of dst with the straight-alpha source-over
// operator. It is the single blend rule used for painting shapes into a
// layer and for merging layers.
func Over(dst, src Pixel) Pixel {
	r, g, b, a := blend.Over(dst.R, dst.G, dst.B, dst.A, src.R, src.G, src.B, src.A)
	return Pixel{R: r, G: g, B: b, A: a}
}

// Hex parses a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with an optional
// leading '#'. Missing alpha means opaque.
func Hex(hex string) (Pixel, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var v [4]uint32
	v[3] = 255

	switch len(s) {
	case 3, 4: // RGB, RGBA
		for i := range len(s) {
			d, ok := parseHexDigit(s[i])
			if !ok {
				return Pixel{}, fmt.Errorf("depthraster: invalid hex color %q", hex)
			}
			v[i] = d * 17
		}
	case 6, 8: // RRGGBB, RRGGBBAA
		for i := 0; i < len(s); i += 2 {
			hi, ok1 := parseHexDigit(s[i])
			lo, ok2 := parseHexDigit(s[i+1])
			if !ok1 || !ok2 {
				return Pixel{}, fmt.Errorf("depthraster: invalid hex color %q", hex)
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return Pixel{}, fmt.Errorf("depthraster: invalid hex color %q", hex)
	}

	return Pixel{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2]), A: uint8(v[3])}, nil //nolint:gosec // at most 255
}

// parseHexDigit is a helper for hex parsing
func parseHexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10), true
	default:
		return 0, false
	}
}
