// Command depthdemo compares the painter's algorithm with the parallel
// depth-bucket renderer on random translucent circles.
//
// It sweeps a list of shape counts, renders each shape set with the
// selected modes, prints a timing table and saves the final image.
//
// Usage:
//
//	depthdemo [-config run.toml] [-width 1280] [-height 720] [-counts 10,100,1000]
//	          [-depth 50] [-seed 1] [-workers 0] [-mode both] [-output screenshot.png]
//	          [-background #ffffff] [-surface file] [-preview preview] [-v]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/depthraster"
	"github.com/gogpu/depthraster/internal/config"
	"github.com/gogpu/depthraster/shapegen"
	"github.com/gogpu/depthraster/surface"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("depthdemo: %v", err)
	}
}

// run parses args, executes the sweep and writes the report to stdout.
func run(args []string, stdout, stderr io.Writer) error {
	cfg, verbose, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	depthraster.SetLogger(logger)
	defer depthraster.SetLogger(nil)

	timings := &depthraster.Timings{}
	r, err := depthraster.NewRenderer(cfg.Width, cfg.Height,
		depthraster.WithWorkers(cfg.Workers),
		depthraster.WithObserver(timings))
	if err != nil {
		return err
	}
	defer r.Close()

	bg, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}

	preview, err := openPreview(cfg)
	if err != nil {
		return err
	}
	defer preview.Close()

	logger.Info("starting sweep",
		"canvas", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"counts", cfg.Counts,
		"mode", cfg.Mode,
		"workers", r.Workers())

	rows := make([]result, 0, len(cfg.Counts))
	for _, n := range cfg.Counts {
		res, err := sweepOne(r, cfg, n, timings)
		if err != nil {
			return fmt.Errorf("%d shapes: %w", n, err)
		}
		if cfg.Output != "" {
			res.output = outputPath(cfg.Output, n, len(cfg.Counts) > 1)
			if err := save(res.image, res.output, bg); err != nil {
				return err
			}
			logger.Debug("saved image", "path", res.output)
		}
		if err := res.image.Present(preview); err != nil {
			return fmt.Errorf("%d shapes: present: %w", n, err)
		}
		rows = append(rows, res)
	}

	logger.Info("presented frames", "surface", fmt.Sprintf("%T", preview), "frames", preview.Frames())

	_, err = fmt.Fprintln(stdout, renderReport(cfg, r.Workers(), rows))
	return err
}

// openPreview creates the surface every result is presented on. An empty
// cfg.Surface picks the preferred registered backend.
func openPreview(cfg config.Config) (surface.Surface, error) {
	opts := surface.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Dir:    cfg.PreviewDir,
	}
	if cfg.Surface == "" {
		return surface.NewSurface(opts)
	}
	return surface.NewSurfaceByName(cfg.Surface, opts)
}

// parseFlags builds the run configuration: defaults, then the config file
// named by -config, then any flag given explicitly.
func parseFlags(args []string, stderr io.Writer) (config.Config, bool, error) {
	fs := flag.NewFlagSet("depthdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.Default()
	var (
		configPath = fs.String("config", "", "TOML run configuration")
		width      = fs.Int("width", def.Width, "canvas width")
		height     = fs.Int("height", def.Height, "canvas height")
		depth      = fs.Int("depth", def.MaxDepth, "maximum shape depth")
		counts     = fs.String("counts", joinInts(def.Counts), "comma-separated shape counts")
		seed       = fs.Uint64("seed", def.Seed, "random seed")
		workers    = fs.Int("workers", def.Workers, "worker goroutines (0 = GOMAXPROCS)")
		mode       = fs.String("mode", def.Mode, "parallel, sequential or both")
		output     = fs.String("output", def.Output, "output image (.png, .jpg, .bmp, .tiff); empty to skip")
		background = fs.String("background", def.Background, "flatten background color; empty keeps transparency")
		surfaceFlg = fs.String("surface", def.Surface, "present every result on this surface (image, file); empty picks the preferred one")
		previewDir = fs.String("preview", def.PreviewDir, "frame directory of the file surface")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, false, err
	}

	cfg := def
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, false, err
		}
		cfg = loaded
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "depth":
			cfg.MaxDepth = *depth
		case "counts":
			var c []int
			if c, err = config.ParseCounts(*counts); err == nil {
				cfg.Counts = c
			}
		case "seed":
			cfg.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "mode":
			cfg.Mode = *mode
		case "output":
			cfg.Output = *output
		case "background":
			cfg.Background = *background
		case "surface":
			cfg.Surface = *surfaceFlg
		case "preview":
			cfg.PreviewDir = *previewDir
		}
	})
	if err != nil {
		return config.Config{}, false, err
	}
	return cfg, *verbose, nil
}

// sweepOne generates n shapes and renders them with the configured modes.
func sweepOne(r *depthraster.Renderer, cfg config.Config, n int, timings *depthraster.Timings) (result, error) {
	gen, err := shapegen.New(shapegen.Config{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Margin:    cfg.Margin,
		MinRadius: cfg.MinRadius,
		MaxRadius: cfg.MaxRadius,
		Opacity:   uint8(cfg.Opacity), //nolint:gosec // validated to [1, 255]
		MaxDepth:  cfg.MaxDepth,
	}, cfg.Seed)
	if err != nil {
		return result{}, err
	}
	shapes, err := gen.Generate(n)
	if err != nil {
		return result{}, err
	}

	res := result{shapes: n, maxDiff: -1}
	timings.Reset()

	var seq *depthraster.PixelBuffer
	if cfg.Mode != config.ModeParallel {
		if seq, err = r.RenderSequential(shapes, cfg.MaxDepth); err != nil {
			return result{}, err
		}
		res.sequential = timings.Duration(depthraster.PhasePaint)
		res.image = seq
	}

	if cfg.Mode != config.ModeSequential {
		par, err := r.Render(shapes, cfg.MaxDepth)
		if err != nil {
			return result{}, err
		}
		res.partition = timings.Duration(depthraster.PhasePartition)
		res.rasterize = timings.Duration(depthraster.PhaseRasterize)
		res.composite = timings.Duration(depthraster.PhaseComposite)
		res.parallel = res.partition + res.rasterize + res.composite
		res.image = par
		if seq != nil {
			res.maxDiff = maxChannelDiff(seq, par)
		}
	}

	res.painted = cfg.Width*cfg.Height - res.image.SentinelCount()
	return res, nil
}

// save writes img to path, flattened onto bg unless bg is the sentinel.
func save(img *depthraster.PixelBuffer, path string, bg depthraster.Pixel) error {
	if bg.IsSentinel() {
		return img.Save(path)
	}
	return img.SaveFlattened(path, bg)
}

// outputPath inserts the shape count before the extension when a sweep
// writes more than one image: shots/out.png -> shots/out-100.png.
func outputPath(path string, count int, multi bool) string {
	if !multi {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + strconv.Itoa(count) + ext
}

// maxChannelDiff returns the largest per-channel difference of two
// equally sized buffers.
func maxChannelDiff(a, b *depthraster.PixelBuffer) int {
	da, db := a.Data(), b.Data()
	worst := 0
	for i := range da {
		d := int(da[i]) - int(db[i])
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}
