package probe

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingChecker struct {
	calls atomic.Int32
}

func (c *countingChecker) Probe(context.Context) Outcome {
	c.calls.Add(1)
	return Outcome{State: Healthy, CheckedAt: time.Now()}
}

type chanRecorder struct {
	mu     sync.Mutex
	begins int
	out    chan Outcome
}

func newChanRecorder() *chanRecorder {
	return &chanRecorder{out: make(chan Outcome, 64)}
}

func (r *chanRecorder) BeginProbe() {
	r.mu.Lock()
	r.begins++
	r.mu.Unlock()
}

func (r *chanRecorder) RecordProbe(o Outcome) {
	select {
	case r.out <- o:
	default:
	}
}

func (r *chanRecorder) wait(t *testing.T) Outcome {
	t.Helper()
	select {
	case o := <-r.out:
		return o
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for probe outcome")
		return Outcome{}
	}
}

func TestMonitor_ProbesImmediatelyAndOnInterval(t *testing.T) {
	checker := &countingChecker{}
	rec := newChanRecorder()

	m := StartMonitor(context.Background(), checker, 10*time.Millisecond, rec)
	defer m.Stop()

	for i := 0; i < 3; i++ {
		if o := rec.wait(t); !o.Healthy() {
			t.Fatalf("outcome %d = %v, want healthy", i, o.State)
		}
	}
	rec.mu.Lock()
	begins := rec.begins
	rec.mu.Unlock()
	if begins < 3 {
		t.Fatalf("BeginProbe called %d times, want >= 3", begins)
	}
}

func TestMonitor_StopHaltsProbing(t *testing.T) {
	checker := &countingChecker{}
	rec := newChanRecorder()

	m := StartMonitor(context.Background(), checker, 5*time.Millisecond, rec)
	rec.wait(t)
	m.Stop()
	m.Stop()

	select {
	case <-m.done:
	default:
		t.Fatalf("loop still running after Stop")
	}

	after := checker.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := checker.calls.Load(); got != after {
		t.Fatalf("probes after Stop = %d, want %d", got, after)
	}
}

func TestMonitor_ContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := StartMonitor(ctx, &countingChecker{}, time.Hour, newChanRecorder())

	cancel()
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("monitor did not exit after context cancel")
	}
}

func TestMonitor_Trigger(t *testing.T) {
	checker := &countingChecker{}
	rec := newChanRecorder()

	m := StartMonitor(context.Background(), checker, time.Hour, rec)
	defer m.Stop()

	rec.wait(t)
	m.Trigger()
	rec.wait(t)

	if got := checker.calls.Load(); got != 2 {
		t.Fatalf("probe calls = %d, want 2", got)
	}
}
