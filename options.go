package depthraster

// Option configures a Renderer during creation.
//
// Example:
//
//	timings := &depthraster.Timings{}
//	r, err := depthraster.NewRenderer(1280, 720,
//	    depthraster.WithWorkers(8),
//	    depthraster.WithObserver(timings))
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	workers  int
	observer PhaseObserver
	buffers  *BufferPool
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		workers:  0,   // GOMAXPROCS
		observer: nil, // no instrumentation
		buffers:  nil, // private pool created by NewRenderer
	}
}

// WithWorkers sets the number of goroutines used by both parallel phases.
// Zero or a negative value means GOMAXPROCS. The rendered bytes do not
// depend on the worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithObserver installs a phase observer, for example a *Timings.
func WithObserver(obs PhaseObserver) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithBufferPool shares a layer buffer pool between renderers of the same
// canvas size.
func WithBufferPool(p *BufferPool) Option {
	return func(o *options) {
		o.buffers = p
	}
}
