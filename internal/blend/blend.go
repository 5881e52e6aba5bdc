// Package blend provides the straight-alpha source-over operator used by
// every blend site of the depth rasterizer.
//
// Colors are non-premultiplied. Channel values are bytes in 0-255 and are
// converted to unit floats for the blend, then rounded back. Using the same
// rule for intra-layer and inter-layer blending keeps layer composition
// associative up to rounding.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Straight is a non-premultiplied color with unit-range components.
type Straight struct {
	R, G, B, A float64
}

// SourceOver places src on top of dst.
//
//	aOut = a1 + a2*(1-a1)
//	cOut = (cs*a1 + cd*a2*(1-a1)) / aOut
//
// A result with zero alpha is the fully transparent zero color.
func SourceOver(dst, src Straight) Straight {
	srcA := src.A
	dstW := dst.A * (1 - srcA)

	outA := srcA + dstW
	if outA == 0 {
		return Straight{}
	}

	return Straight{
		R: (src.R*srcA + dst.R*dstW) / outA,
		G: (src.G*srcA + dst.G*dstW) / outA,
		B: (src.B*srcA + dst.B*dstW) / outA,
		A: outA,
	}
}

// Over blends the byte color (sr, sg, sb, sa) over (dr, dg, db, da) and
// returns the rounded result. See SourceOver for the formula.
func Over(dr, dg, db, da, sr, sg, sb, sa byte) (r, g, b, a byte) {
	out := SourceOver(ToStraight(dr, dg, db, da), ToStraight(sr, sg, sb, sa))
	if out.A == 0 {
		return 0, 0, 0, 0
	}
	return out.Bytes()
}

// OverSlice blends src over the 4-byte RGBA pixel stored at dst[0:4].
func OverSlice(dst []byte, sr, sg, sb, sa byte) {
	_ = dst[3]
	dst[0], dst[1], dst[2], dst[3] = Over(dst[0], dst[1], dst[2], dst[3], sr, sg, sb, sa)
}
