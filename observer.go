package depthraster

import (
	"sync"
	"time"
)

// Phase identifies a stage of a render.
type Phase int

const (
	// PhasePartition covers shape validation and depth bucketing.
	PhasePartition Phase = iota
	// PhaseRasterize covers the parallel per-bucket rasterization.
	PhaseRasterize
	// PhaseComposite covers the parallel back-to-front merge.
	PhaseComposite
	// PhasePaint covers a whole sequential painter's-algorithm render.
	PhasePaint
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePartition:
		return "partition"
	case PhaseRasterize:
		return "rasterize"
	case PhaseComposite:
		return "composite"
	case PhasePaint:
		return "paint"
	default:
		return "unknown"
	}
}

// PhaseObserver receives the start and end time of every completed phase.
// Observers are informational: they cannot change the rendered result.
// ObservePhase is called from the goroutine that called Render.
type PhaseObserver interface {
	ObservePhase(p Phase, start, end time.Time)
}

// PhaseObserverFunc adapts a function to the PhaseObserver interface.
type PhaseObserverFunc func(p Phase, start, end time.Time)

// ObservePhase calls f(p, start, end).
func (f PhaseObserverFunc) ObservePhase(p Phase, start, end time.Time) {
	f(p, start, end)
}

// Timings accumulates phase durations.
//
// Thread safety: Timings is safe for concurrent use.
type Timings struct {
	mu        sync.Mutex
	durations map[Phase]time.Duration
}

// ObservePhase implements PhaseObserver.
func (t *Timings) ObservePhase(p Phase, start, end time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.durations == nil {
		t.durations = make(map[Phase]time.Duration)
	}
	t.durations[p] += end.Sub(start)
}

// Duration returns the accumulated time spent in phase p.
func (t *Timings) Duration(p Phase) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.durations[p]
}

// Total returns the accumulated time across all phases.
func (t *Timings) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, d := range t.durations {
		total += d
	}
	return total
}

// Reset discards all recorded durations.
func (t *Timings) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.durations)
}
