// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"slices"
	"sync"
)

// SurfaceFactory creates a new Surface with the given options.
// Implementations should validate options and return descriptive errors.
type SurfaceFactory func(opts Options) (Surface, error)

// backend is one named entry of a Registry.
type backend struct {
	name     string
	priority int
	factory  SurfaceFactory
}

// Registry maps backend names to surface factories.
//
// Built-in priorities:
//   - 10: image (in-memory)
//   - 5: file
type Registry struct {
	mu       sync.RWMutex
	backends map[string]backend
}

// defaultRegistry holds the built-in backends and anything added with
// Register.
var defaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]backend)}
}

// Register adds a backend to the default registry.
func Register(name string, priority int, factory SurfaceFactory) {
	defaultRegistry.Register(name, priority, factory)
}

// List returns the backend names of the default registry, preferred first.
func List() []string {
	return defaultRegistry.List()
}

// NewSurface creates a surface with the most preferred backend of the
// default registry that accepts opts.
func NewSurface(opts Options) (Surface, error) {
	return defaultRegistry.NewSurface(opts)
}

// NewSurfaceByName creates a surface with the named backend of the
// default registry.
func NewSurfaceByName(name string, opts Options) (Surface, error) {
	return defaultRegistry.NewSurfaceByName(name, opts)
}

// Register adds a backend. A name that already exists is replaced.
func (r *Registry) Register(name string, priority int, factory SurfaceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = backend{name: name, priority: priority, factory: factory}
}

// List returns backend names by descending priority, ties by name.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := make([]backend, 0, len(r.backends))
	for _, b := range r.backends {
		ordered = append(ordered, b)
	}
	slices.SortFunc(ordered, func(a, b backend) int {
		if c := cmp.Compare(b.priority, a.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	names := make([]string, len(ordered))
	for i, b := range ordered {
		names[i] = b.name
	}
	return names
}

// NewSurface walks the backends in List order and returns the first
// surface that is created without error. If every backend fails, the
// returned error joins all of their errors.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	names := r.List()
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}

	errs := make([]error, 0, len(names))
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// NewSurfaceByName creates a surface with the named backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	b, ok := r.backends[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	return b.factory(opts)
}

// ErrNoBackendAvailable is returned by NewSurface on an empty registry.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

func init() {
	Register("image", 10, func(opts Options) (Surface, error) {
		s, err := NewImageSurface(opts.Width, opts.Height)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	Register("file", 5, func(opts Options) (Surface, error) {
		s, err := NewFileSurface(opts.Width, opts.Height, opts.Dir, opts.Pattern)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
