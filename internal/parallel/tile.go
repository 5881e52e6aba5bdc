// Package parallel provides the work distribution used by the depth
// rasterizer's compositing phase.
//
// The canvas is divided into 64x64 pixel tiles. Tiles never overlap, so a
// worker that owns a tile may write that tile's output pixels without any
// locking: no two workers ever write the same pixel.
//
// Thread safety: TileGrid is immutable after construction. WorkerPool is
// safe for concurrent use.
package parallel

// Tile size constants optimized for cache efficiency and work distribution.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64

	// TilePixels is the total number of pixels in a full tile.
	TilePixels = TileWidth * TileHeight
)

// Tile is a rectangular, output-disjoint region of the canvas.
//
// Edge tiles may have smaller actual dimensions when the canvas is not
// evenly divisible by the tile size.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Width is the actual width in pixels (may be < TileWidth for edge tiles).
	Width int

	// Height is the actual height in pixels (may be < TileHeight for edge tiles).
	Height int
}

// Bounds returns the pixel bounds of this tile in canvas space.
// Returns (x, y, width, height) where x,y is the top-left corner.
func (t Tile) Bounds() (x, y, w, h int) {
	return t.X * TileWidth, t.Y * TileHeight, t.Width, t.Height
}

// Contains returns true if the canvas-space pixel (cx, cy) is within this tile.
func (t Tile) Contains(cx, cy int) bool {
	x, y, w, h := t.Bounds()
	return cx >= x && cx < x+w && cy >= y && cy < y+h
}

// PixelCount returns the number of canvas pixels covered by the tile.
func (t Tile) PixelCount() int {
	return t.Width * t.Height
}
