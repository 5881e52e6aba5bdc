package parallel

// ForEachTile runs fn once per tile on the pool and waits for all calls
// to return. fn must only write pixels inside the tile it is given.
// A nil or closed pool runs the tiles on the calling goroutine.
func ForEachTile(p *WorkerPool, tiles []Tile, fn func(t Tile)) {
	if len(tiles) == 0 || fn == nil {
		return
	}

	if p == nil || !p.IsRunning() {
		for _, tile := range tiles {
			fn(tile)
		}
		return
	}

	work := make([]func(), len(tiles))
	for i, tile := range tiles {
		work[i] = func() {
			fn(tile)
		}
	}

	p.ExecuteAll(work)
}
