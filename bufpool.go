package depthraster

import "sync"

// BufferPool recycles per-depth layer buffers between renders.
//
// Layers are dropped as soon as compositing finishes, so a sweep of
// renders at one canvas size would otherwise allocate maxDepth+1 full
// buffers per run. Buffers handed out by Get hold only sentinels.
//
// Thread safety: BufferPool is safe for concurrent use.
type BufferPool struct {
	// pools holds a sync.Pool per buffer size.
	// Key format: (width << 32) | height
	pools sync.Map
}

// NewBufferPool creates an empty buffer pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{}
}

// Get returns a cleared buffer of the given size, reusing a pooled one when
// available. Returns nil for non-positive dimensions.
func (p *BufferPool) Get(width, height int) *PixelBuffer {
	if width <= 0 || height <= 0 {
		return nil
	}

	buf := p.pool(width, height).Get().(*PixelBuffer)
	buf.Clear()
	return buf
}

// Put returns a buffer to the pool. A nil buffer is ignored.
// The caller must not use buf afterwards.
func (p *BufferPool) Put(buf *PixelBuffer) {
	if buf == nil || buf.width <= 0 || buf.height <= 0 {
		return
	}
	p.pool(buf.width, buf.height).Put(buf)
}

// pool gets or creates the sync.Pool for one buffer size.
func (p *BufferPool) pool(width, height int) *sync.Pool {
	key := uint64(width)<<32 | uint64(uint32(height)) //nolint:gosec // dimensions are positive
	if sp, ok := p.pools.Load(key); ok {
		return sp.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			return NewPixelBuffer(width, height)
		},
	}

	// If another goroutine stored first, use theirs
	actual, _ := p.pools.LoadOrStore(key, newPool)
	return actual.(*sync.Pool)
}
