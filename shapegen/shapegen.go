// Package shapegen draws random circle sets for the depth rasterizer.
//
// A Generator owns a single pseudo-random source, seeded once. Drawing many
// shapes from one Generator never reseeds, so successive shapes are not
// correlated and a seed reproduces a run exactly.
package shapegen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/gogpu/depthraster"
)

// ErrInvalidConfig is returned by New for an unusable configuration.
var ErrInvalidConfig = errors.New("shapegen: invalid config")

// Config describes the distribution shapes are drawn from.
// All ranges are inclusive.
type Config struct {
	// Width and Height are the canvas dimensions.
	Width, Height int

	// Margin keeps the top-left corner of each circle's box at least this
	// far from the right and bottom canvas edges.
	Margin int

	// MinRadius and MaxRadius bound the integer radius.
	MinRadius, MaxRadius int

	// Opacity is the alpha of every generated shape.
	Opacity uint8

	// MaxDepth bounds the depth, drawn from [0, MaxDepth].
	MaxDepth int
}

// DefaultConfig returns the standard benchmark distribution for a
// width x height canvas: radius 5..50, opacity 50, depth 0..50 and a 150
// pixel margin.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:     width,
		Height:    height,
		Margin:    150,
		MinRadius: 5,
		MaxRadius: 50,
		Opacity:   50,
		MaxDepth:  50,
	}
}

// Validate reports whether c can generate valid shapes.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Margin < 0:
		return fmt.Errorf("%w: negative margin %d", ErrInvalidConfig, c.Margin)
	case c.MinRadius <= 0 || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("%w: radius range [%d, %d]", ErrInvalidConfig, c.MinRadius, c.MaxRadius)
	case c.Opacity == 0:
		return fmt.Errorf("%w: zero opacity", ErrInvalidConfig)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: negative max depth %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// Generator draws shapes from a Config.
//
// Thread safety: a Generator is not safe for concurrent use.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New creates a generator seeded with seed.
func New(cfg Config, seed uint64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Shape draws one shape.
//
// The position is the top-left corner of the circle's bounding box, drawn
// uniformly from [0, Width-Margin] x [0, Height-Margin] (or the whole
// canvas when the margin does not fit); the center is that corner plus
// the radius.
func (g *Generator) Shape() (depthraster.Shape, error) {
	c := g.cfg

	x := g.between(0, max(c.Width-c.Margin, 0))
	y := g.between(0, max(c.Height-c.Margin, 0))
	z := g.between(0, c.MaxDepth)
	radius := float64(g.between(c.MinRadius, c.MaxRadius))

	fill := depthraster.Pixel{
		R: uint8(g.between(0, 255)), //nolint:gosec // in [0, 255]
		G: uint8(g.between(0, 255)), //nolint:gosec // in [0, 255]
		B: uint8(g.between(0, 255)), //nolint:gosec // in [0, 255]
		A: c.Opacity,
	}

	return depthraster.NewShape(float64(x)+radius, float64(y)+radius, radius, fill, z)
}

// Generate draws n shapes.
func (g *Generator) Generate(n int) ([]depthraster.Shape, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative shape count %d", ErrInvalidConfig, n)
	}
	shapes := make([]depthraster.Shape, n)
	for i := range shapes {
		s, err := g.Shape()
		if err != nil {
			return nil, fmt.Errorf("shapegen: shape %d: %w", i, err)
		}
		shapes[i] = s
	}
	return shapes, nil
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
