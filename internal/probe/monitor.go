package probe

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the passive health check cadence.
const DefaultInterval = 30 * time.Second

// Checker is anything that can run a probe. *Prober implements it.
type Checker interface {
	Probe(ctx context.Context) Outcome
}

// Recorder receives monitor progress.
type Recorder interface {
	// BeginProbe is called before each probe starts.
	BeginProbe()
	// RecordProbe is called with each completed outcome.
	RecordProbe(Outcome)
}

// Monitor runs a Checker on a fixed interval until stopped.
type Monitor struct {
	checker  Checker
	recorder Recorder
	interval time.Duration

	trigger  chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// StartMonitor probes immediately and then every interval until ctx is
// cancelled or Stop is called. It returns once the loop is running.
func StartMonitor(ctx context.Context, checker Checker, interval time.Duration, recorder Recorder) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	m := &Monitor{
		checker:  checker,
		recorder: recorder,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go m.run(ctx)
	return m
}

// Trigger requests an immediate probe. Requests made while one is already
// pending are merged.
func (m *Monitor) Trigger() {
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once.
func (m *Monitor) Stop() {
	m.stopOnce.Do(m.cancel)
	<-m.done
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.probeOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-m.trigger:
			ticker.Reset(m.interval)
		}
	}
}

func (m *Monitor) probeOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if m.recorder != nil {
		m.recorder.BeginProbe()
	}
	out := m.checker.Probe(ctx)
	// A probe cut short by shutdown says nothing about the server.
	if ctx.Err() != nil {
		return
	}
	if m.recorder != nil {
		m.recorder.RecordProbe(out)
	}
}
