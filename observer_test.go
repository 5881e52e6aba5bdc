package depthraster

import (
	"testing"
	"time"
)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhasePartition, "partition"},
		{PhaseRasterize, "rasterize"},
		{PhaseComposite, "composite"},
		{PhasePaint, "paint"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}

func TestTimings(t *testing.T) {
	var tm Timings
	if tm.Total() != 0 || tm.Duration(PhasePaint) != 0 {
		t.Error("zero Timings should report no time")
	}

	base := time.Unix(1000, 0)
	tm.ObservePhase(PhaseRasterize, base, base.Add(30*time.Millisecond))
	tm.ObservePhase(PhaseRasterize, base, base.Add(20*time.Millisecond))
	tm.ObservePhase(PhaseComposite, base, base.Add(5*time.Millisecond))

	if got := tm.Duration(PhaseRasterize); got != 50*time.Millisecond {
		t.Errorf("Duration(rasterize) = %v, want 50ms", got)
	}
	if got := tm.Total(); got != 55*time.Millisecond {
		t.Errorf("Total() = %v, want 55ms", got)
	}

	tm.Reset()
	if tm.Total() != 0 {
		t.Errorf("Total() after Reset = %v, want 0", tm.Total())
	}
}

func TestTimings_WithRenderer(t *testing.T) {
	tm := &Timings{}
	r := newTestRenderer(t, 128, 128, WithObserver(tm))

	shapes := []Shape{mustShape(t, 64, 64, 40, Red, 3)}
	if _, err := r.Render(shapes, 3); err != nil {
		t.Fatal(err)
	}

	sum := tm.Duration(PhasePartition) + tm.Duration(PhaseRasterize) + tm.Duration(PhaseComposite)
	if sum != tm.Total() {
		t.Errorf("phase durations sum to %v, Total() = %v", sum, tm.Total())
	}
	if tm.Duration(PhasePaint) != 0 {
		t.Error("parallel render recorded paint time")
	}
}
