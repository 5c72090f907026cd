package progress

import (
	"testing"
	"time"
)

func newTestEstimator() *Estimator {
	return NewEstimator(5*time.Millisecond, 20*time.Millisecond, nil)
}

func TestEstimatorTicksStayBelowCeiling(t *testing.T) {
	e := newTestEstimator()
	e.Start("working")
	defer e.Reset()

	time.Sleep(60 * time.Millisecond)
	p := e.Percent()
	if p <= 0 {
		t.Fatalf("percent did not advance: %v", p)
	}
	if p >= 100 {
		t.Fatalf("ticks must never reach 100, got %v", p)
	}
}

func TestEstimatorMonotonicWhileRunning(t *testing.T) {
	e := newTestEstimator()
	e.Start("working")
	defer e.Reset()

	var last float64
	for i := 0; i < 10; i++ {
		time.Sleep(6 * time.Millisecond)
		p := e.Percent()
		if p < last {
			t.Fatalf("percent decreased: %v -> %v", last, p)
		}
		last = p
	}
}

func TestEstimatorAdvanceRaisesFloor(t *testing.T) {
	e := newTestEstimator()
	e.Start("batch")
	defer e.Reset()

	e.Advance(45, "item 1")
	if p := e.Percent(); p < 45 {
		t.Fatalf("percent = %v, want >= 45", p)
	}
	// Advance never moves backwards.
	e.Advance(10, "")
	if p := e.Percent(); p < 45 {
		t.Fatalf("percent dropped to %v after lower Advance", p)
	}
	// And never past the tick ceiling.
	e.Advance(1000, "")
	if p := e.Percent(); p > 95 {
		t.Fatalf("Advance exceeded ceiling: %v", p)
	}
}

func TestEstimatorCompleteThenResets(t *testing.T) {
	e := newTestEstimator()
	e.Start("working")
	e.Complete()

	if p := e.Percent(); p != 100 {
		t.Fatalf("percent after Complete = %v, want 100", p)
	}
	time.Sleep(50 * time.Millisecond)
	if p := e.Percent(); p != 0 {
		t.Fatalf("percent after display hold = %v, want 0", p)
	}
}

func TestEstimatorAbortSkips100(t *testing.T) {
	e := newTestEstimator()
	e.Start("working")
	e.Advance(60, "")
	e.Abort()

	if p := e.Percent(); p != 0 {
		t.Fatalf("percent after Abort = %v, want 0", p)
	}
	snap := e.Snapshot()
	if snap.Running {
		t.Fatalf("estimator still running after Abort")
	}
}

func TestEstimatorRestartCancelsPendingReset(t *testing.T) {
	e := newTestEstimator()
	e.Start("first")
	e.Complete()
	e.Start("second")
	e.Advance(30, "")

	time.Sleep(50 * time.Millisecond)
	// The reset scheduled by the first Complete must not clobber the
	// second run.
	if p := e.Percent(); p < 30 {
		t.Fatalf("pending reset clobbered restarted run: %v", p)
	}
	e.Reset()
}
