package depthraster

import (
	"runtime"
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.workers != 0 || o.observer != nil || o.buffers != nil {
		t.Errorf("defaultOptions() = %+v, want zero values", o)
	}
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1},
		{6, 6},
		{0, runtime.GOMAXPROCS(0)},
		{-3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		r := newTestRenderer(t, 4, 4, WithWorkers(tt.n))
		if r.Workers() != tt.want {
			t.Errorf("WithWorkers(%d): Workers() = %d, want %d", tt.n, r.Workers(), tt.want)
		}
	}
}

func TestWithObserver(t *testing.T) {
	called := false
	obs := PhaseObserverFunc(func(Phase, time.Time, time.Time) { called = true })

	o := defaultOptions()
	WithObserver(obs)(&o)
	if o.observer == nil {
		t.Fatal("WithObserver() did not set the observer")
	}
	o.observer.ObservePhase(PhasePaint, time.Time{}, time.Time{})
	if !called {
		t.Error("installed observer was not the one passed in")
	}
}

func TestWithBufferPool(t *testing.T) {
	pool := NewBufferPool()
	r := newTestRenderer(t, 4, 4, WithBufferPool(pool))
	if r.buffers != pool {
		t.Error("renderer does not use the injected buffer pool")
	}

	if def := newTestRenderer(t, 4, 4); def.buffers == nil {
		t.Error("renderer without WithBufferPool has no pool")
	}
}
