// Package depthraster renders translucent, depth-ordered circles into a
// single raster image on the CPU.
//
// # Overview
//
// Two renderers produce the same picture:
//
//   - PaintSequential is the painter's algorithm: sort shapes from far to
//     near and paint them one after another onto one buffer.
//   - Renderer.Render partitions shapes into depth buckets, rasterizes each
//     bucket into its own layer concurrently, then composites the layers
//     back to front with the canvas split into tiles.
//
// Both use one blend rule, Over, the straight-alpha source-over operator,
// and one edge rule: the pixel at integer position p is covered by a circle
// iff |p - center| - 0.5 <= radius.
//
// # Quick Start
//
//	r, err := depthraster.NewRenderer(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	s, _ := depthraster.NewShape(400, 300, 50, depthraster.Pixel{R: 255, A: 128}, 3)
//	img, err := r.Render([]depthraster.Shape{s}, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = img.SaveFlattened("out.png", depthraster.White)
//
// # Depth
//
// Depth is an integer in [0, maxDepth]. Depth 0 is nearest to the viewer;
// larger depths are farther away and are painted first. Shapes sharing a
// depth are blended in input order.
//
// # Sentinel Pixels
//
// The zero Pixel marks a slot no shape has painted. Unpainted pixels stay
// zero through compositing and are exported as fully transparent, or as
// the background color when flattening.
//
// # Presentation
//
// A PixelBuffer can be saved (PNG, JPEG, BMP, TIFF) or handed to any
// Surface with Present. Package surface provides in-memory and
// file-backed surfaces.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package depthraster
