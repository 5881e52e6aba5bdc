package depthraster

import (
	"math/rand/v2"
	"testing"
)

// mustShape builds a shape or fails the test.
func mustShape(t testing.TB, cx, cy, r float64, fill Pixel, depth int) Shape {
	t.Helper()
	s, err := NewShape(cx, cy, r, fill, depth)
	if err != nil {
		t.Fatalf("NewShape(%v, %v, %v, %v, %d): %v", cx, cy, r, fill, depth, err)
	}
	return s
}

// randomShapes draws n shapes on a width x height canvas, with alphas in
// [minAlpha, 255] and depths in [0, maxDepth].
func randomShapes(t testing.TB, rng *rand.Rand, n, width, height, maxDepth int, minAlpha int) []Shape {
	t.Helper()
	shapes := make([]Shape, n)
	for i := range shapes {
		fill := Pixel{
			R: uint8(rng.IntN(256)),
			G: uint8(rng.IntN(256)),
			B: uint8(rng.IntN(256)),
			A: uint8(minAlpha + rng.IntN(256-minAlpha)),
		}
		shapes[i] = mustShape(t,
			rng.Float64()*float64(width),
			rng.Float64()*float64(height),
			1+rng.Float64()*float64(min(width, height))/4,
			fill,
			rng.IntN(maxDepth+1))
	}
	return shapes
}

func channelDiff(a, b Pixel) int {
	d := 0
	for _, pair := range [][2]uint8{{a.R, b.R}, {a.G, b.G}, {a.B, b.B}, {a.A, b.A}} {
		v := int(pair[0]) - int(pair[1])
		if v < 0 {
			v = -v
		}
		d = max(d, v)
	}
	return d
}
