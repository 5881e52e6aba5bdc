// Package config holds the run configuration of the depthdemo driver.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/depthraster"
	"github.com/gogpu/depthraster/surface"
)

// Render modes.
const (
	ModeParallel   = "parallel"
	ModeSequential = "sequential"
	ModeBoth       = "both"
)

// ErrInvalid is returned for a configuration that cannot be run.
var ErrInvalid = errors.New("config: invalid")

// Config is one experiment run: a canvas, a shape distribution and the
// list of shape counts to sweep.
type Config struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	MaxDepth   int    `toml:"max_depth"`
	Counts     []int  `toml:"counts"`
	Seed       uint64 `toml:"seed"`
	Workers    int    `toml:"workers"`
	MinRadius  int    `toml:"min_radius"`
	MaxRadius  int    `toml:"max_radius"`
	Opacity    int    `toml:"opacity"`
	Margin     int    `toml:"margin"`
	Mode       string `toml:"mode"`
	Output     string `toml:"output"`
	Background string `toml:"background"`
	Surface    string `toml:"surface"` // empty picks the preferred backend
	PreviewDir string `toml:"preview_dir"`
}

// Default returns the standard benchmark sweep: a 720p canvas, 51 depths
// and six shape counts from 10 to 20000.
func Default() Config {
	return Config{
		Width:      1280,
		Height:     720,
		MaxDepth:   50,
		Counts:     []int{10, 100, 500, 1000, 10000, 20000},
		Seed:       1,
		Workers:    0,
		MinRadius:  5,
		MaxRadius:  50,
		Opacity:    50,
		Margin:     150,
		Mode:       ModeBoth,
		Output:     "screenshot.png",
		Background: "#ffffff",
		Surface:    "",
		PreviewDir: "preview",
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file
// keep their default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate reports the first problem that would make the run fail.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max_depth %d", ErrInvalid, c.MaxDepth)
	case len(c.Counts) == 0:
		return fmt.Errorf("%w: no shape counts", ErrInvalid)
	case c.MinRadius <= 0 || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("%w: radius range [%d, %d]", ErrInvalid, c.MinRadius, c.MaxRadius)
	case c.Opacity < 1 || c.Opacity > 255:
		return fmt.Errorf("%w: opacity %d outside [1, 255]", ErrInvalid, c.Opacity)
	case c.Margin < 0:
		return fmt.Errorf("%w: margin %d", ErrInvalid, c.Margin)
	}

	for _, n := range c.Counts {
		if n < 0 {
			return fmt.Errorf("%w: shape count %d", ErrInvalid, n)
		}
	}

	switch c.Mode {
	case ModeParallel, ModeSequential, ModeBoth:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Mode)
	}

	if c.Output != "" {
		if _, err := depthraster.FormatFromPath(c.Output); err != nil {
			return fmt.Errorf("%w: output: %w", ErrInvalid, err)
		}
	}
	if _, err := c.BackgroundColor(); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if c.Surface != "" && !slices.Contains(surface.List(), c.Surface) {
		return fmt.Errorf("%w: surface %q not in %v", ErrInvalid, c.Surface, surface.List())
	}
	return nil
}

// BackgroundColor parses Background. An empty string means no flattening
// and returns the transparent sentinel.
func (c Config) BackgroundColor() (depthraster.Pixel, error) {
	if c.Background == "" {
		return depthraster.Transparent, nil
	}
	return depthraster.Hex(c.Background)
}

// ParseCounts parses a comma-separated list of shape counts.
func ParseCounts(s string) ([]int, error) {
	var counts []int
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: shape count %q", ErrInvalid, field)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: no shape counts in %q", ErrInvalid, s)
	}
	return counts, nil
}
