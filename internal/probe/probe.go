package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/tubeclone/internal/backend"
)

// State is the availability of the remote source as last observed.
type State int

const (
	Unknown State = iota
	Probing
	Healthy
	Unreachable
)

func (s State) String() string {
	switch s {
	case Probing:
		return "probing"
	case Healthy:
		return "healthy"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Outcome is the result of one probe.
type Outcome struct {
	State     State
	Reason    string
	Kind      backend.Kind
	Version   string
	CheckedAt time.Time
	Latency   time.Duration
}

// Healthy reports whether the probe succeeded.
func (o Outcome) Healthy() bool { return o.State == Healthy }

// HealthChecker performs the health request. *backend.Client implements it.
type HealthChecker interface {
	Health(ctx context.Context) (backend.HealthResponse, error)
}

var _ HealthChecker = (*backend.Client)(nil)

// Prober classifies health responses.
type Prober struct {
	checker HealthChecker
	timeout time.Duration
	log     zerolog.Logger
}

// Option customises a Prober.
type Option func(*Prober)

// WithTimeout bounds each probe.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger used for probe results.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Prober) { p.log = l }
}

// New returns a Prober that checks health through checker.
func New(checker HealthChecker, opts ...Option) *Prober {
	p := &Prober{
		checker: checker,
		timeout: backend.DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe performs a single health check.
func (p *Prober) Probe(ctx context.Context) (out Outcome) {
	if p == nil || p.checker == nil {
		return Outcome{State: Unreachable, Reason: "no health checker configured", Kind: backend.KindUnknown, CheckedAt: time.Now()}
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{State: Unreachable, Reason: fmt.Sprintf("health check panicked: %v", r), Kind: backend.KindUnknown}
		}
		out.CheckedAt = start
		out.Latency = time.Since(start)
		p.logOutcome(out)
	}()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.checker.Health(ctx)
	if err != nil {
		return Outcome{State: Unreachable, Reason: err.Error(), Kind: backend.KindOf(err)}
	}
	if !resp.Healthy() {
		return Outcome{
			State:  Unreachable,
			Reason: fmt.Sprintf("health status %q, want %q", resp.Status, "healthy"),
			Kind:   backend.KindShapeMismatch,
		}
	}
	return Outcome{State: Healthy, Version: resp.Version}
}

func (p *Prober) logOutcome(out Outcome) {
	if out.Healthy() {
		p.log.Debug().Dur("latency", out.Latency).Str("version", out.Version).Msg("health probe ok")
		return
	}
	p.log.Warn().Str("kind", string(out.Kind)).Str("reason", out.Reason).Msg("health probe failed")
}
