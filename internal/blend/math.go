package blend

import "math"

// unit converts a byte channel to [0, 1].
func unit(c byte) float64 {
	return float64(c) / 255
}

// toByte scales a unit value to 0-255, rounding half up and clamping.
func toByte(x float64) byte {
	v := math.Floor(x*255 + 0.5)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

// ToStraight converts a byte RGBA color to unit range.
func ToStraight(r, g, b, a byte) Straight {
	return Straight{R: unit(r), G: unit(g), B: unit(b), A: unit(a)}
}

// Bytes rounds a unit-range color to bytes.
func (c Straight) Bytes() (r, g, b, a byte) {
	return toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A)
}
