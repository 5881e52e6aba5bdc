package parallel

// TileGrid partitions a canvas into tiles.
//
// Tiles are stored in a flat slice in row-major order, accessed via
// index calculation: index = ty * tilesX + tx. Together the tiles cover
// every canvas pixel exactly once.
type TileGrid struct {
	// tiles is a flat slice of all tiles (row-major order).
	tiles []Tile

	// tilesX is the number of tiles horizontally.
	tilesX int

	// tilesY is the number of tiles vertically.
	tilesY int

	// width is the canvas width in pixels.
	width int

	// height is the canvas height in pixels.
	height int
}

// NewTileGrid creates a new tile grid for the given canvas dimensions.
// Edge tiles have reduced dimensions if the canvas is not evenly
// divisible by the tile size. A non-positive dimension yields an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	if width <= 0 || height <= 0 {
		return &TileGrid{}
	}

	tilesX := (width + TileWidth - 1) / TileWidth
	tilesY := (height + TileHeight - 1) / TileHeight

	g := &TileGrid{
		tiles:  make([]Tile, 0, tilesX*tilesY),
		tilesX: tilesX,
		tilesY: tilesY,
		width:  width,
		height: height,
	}

	for ty := range tilesY {
		for tx := range tilesX {
			tileW := TileWidth
			tileH := TileHeight

			// Right edge tile
			if (tx+1)*TileWidth > width {
				tileW = width - tx*TileWidth
			}
			// Bottom edge tile
			if (ty+1)*TileHeight > height {
				tileH = height - ty*TileHeight
			}

			g.tiles = append(g.tiles, Tile{X: tx, Y: ty, Width: tileW, Height: tileH})
		}
	}
	return g
}

// TileAt returns the tile at tile coordinates (tx, ty).
// The second result is false if coordinates are out of bounds.
func (g *TileGrid) TileAt(tx, ty int) (Tile, bool) {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return Tile{}, false
	}
	return g.tiles[ty*g.tilesX+tx], true
}

// TileAtPixel returns the tile containing the pixel at canvas coordinates (px, py).
// The second result is false if coordinates are out of bounds.
func (g *TileGrid) TileAtPixel(px, py int) (Tile, bool) {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return Tile{}, false
	}
	return g.TileAt(px/TileWidth, py/TileHeight)
}

// Tiles returns all tiles in the grid.
// The returned slice should not be modified.
func (g *TileGrid) Tiles() []Tile {
	return g.tiles
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// Width returns the canvas width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the canvas height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}
