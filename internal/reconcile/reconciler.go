package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/tubeclone/internal/backend"
	"github.com/five82/tubeclone/internal/catalog"
	"github.com/five82/tubeclone/internal/probe"
)

// DefaultErrorHold is how long a failed retry stays in Error before the view
// falls back to Local.
const DefaultErrorHold = 3 * time.Second

// Mode is the state of a Reconciler.
type Mode int

const (
	Local Mode = iota
	Probing
	Remote
	Error
)

func (m Mode) String() string {
	switch m {
	case Probing:
		return "probing"
	case Remote:
		return "remote"
	case Error:
		return "error"
	default:
		return "local"
	}
}

// Source is where the displayed collection came from.
type Source int

const (
	SourceLocal Source = iota
	SourceRemote
)

func (s Source) String() string {
	if s == SourceRemote {
		return "remote"
	}
	return "local"
}

// Prober checks the remote API. *probe.Prober implements it.
type Prober interface {
	Probe(ctx context.Context) probe.Outcome
}

// FetchFunc loads the full remote collection for a view.
type FetchFunc[R catalog.Record] func(ctx context.Context) ([]R, error)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d. f must run on another goroutine
// and never before AfterFunc returns.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options configure a Reconciler.
type Options struct {
	// Name identifies the view in logs.
	Name string
	// ErrorHold defaults to DefaultErrorHold.
	ErrorHold time.Duration
	// AfterFunc defaults to time.AfterFunc.
	AfterFunc AfterFunc
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// ProbeError is returned by Load when the health probe fails.
type ProbeError struct {
	Outcome probe.Outcome
}

func (e *ProbeError) Error() string {
	return "backend unreachable: " + e.Outcome.Reason
}

// Snapshot is a copy of a Reconciler's visible state.
type Snapshot[R catalog.Record] struct {
	Mode       Mode
	Source     Source
	Items      []R // projected through Query
	Total      int // size of the unfiltered collection
	Query      string
	Reason     string
	Kind       backend.Kind
	Generation uint64
}

// Label is the mode name shown to the user.
func (s Snapshot[R]) Label() string {
	if s.Source == SourceRemote {
		return "Backend Mode"
	}
	return "Demo Mode"
}

// Reconciler owns the collection of one view.
type Reconciler[R catalog.Record] struct {
	name      string
	seed      []R
	prober    Prober
	fetch     FetchFunc[R]
	hold      time.Duration
	afterFunc AfterFunc
	log       zerolog.Logger

	mu     sync.Mutex
	mode   Mode
	source Source // origin of items; kept while Probing
	items  []R
	query  string
	reason string
	kind   backend.Kind
	gen    uint64
	timer  Timer
	closed bool
}

// New returns a Reconciler in Local mode showing a copy of seed. prober may
// be nil, in which case a retry only fetches.
func New[R catalog.Record](seed []R, prober Prober, fetch FetchFunc[R], opts Options) *Reconciler[R] {
	r := &Reconciler[R]{
		name:      opts.Name,
		seed:      catalog.Clone(seed),
		prober:    prober,
		fetch:     fetch,
		hold:      opts.ErrorHold,
		afterFunc: opts.AfterFunc,
		log:       zerolog.Nop(),
	}
	if r.hold <= 0 {
		r.hold = DefaultErrorHold
	}
	if r.afterFunc == nil {
		r.afterFunc = realAfterFunc
	}
	if opts.Logger != nil {
		r.log = opts.Logger.With().Str("view", opts.Name).Logger()
	}
	r.items = catalog.Clone(r.seed)
	return r
}

// Snapshot returns the current state with the collection projected through
// the active query.
func (r *Reconciler[R]) Snapshot() Snapshot[R] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Reconciler[R]) snapshotLocked() Snapshot[R] {
	return Snapshot[R]{
		Mode:       r.mode,
		Source:     r.source,
		Items:      catalog.Project(r.items, r.query),
		Total:      len(r.items),
		Query:      r.query,
		Reason:     r.reason,
		Kind:       r.kind,
		Generation: r.gen,
	}
}

// Begin starts a retry: the view enters Probing and the returned token
// identifies this attempt. Any pending Error fallback is cancelled.
func (r *Reconciler[R]) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	if r.closed {
		return r.gen
	}
	r.stopTimerLocked()
	r.mode = Probing
	r.reason = ""
	r.kind = backend.KindNone
	r.log.Debug().Uint64("generation", r.gen).Msg("retry started")
	return r.gen
}

// Load probes the remote API and, when it is healthy, fetches the
// collection. It touches no state and may run on any goroutine.
func (r *Reconciler[R]) Load(ctx context.Context) ([]R, error) {
	if r.prober != nil {
		if out := r.prober.Probe(ctx); !out.Healthy() {
			return nil, &ProbeError{Outcome: out}
		}
	}
	if r.fetch == nil {
		return nil, errors.New("no fetch configured")
	}
	items, err := r.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch collection: %w", err)
	}
	return items, nil
}

// Complete applies the result of the attempt identified by token. It reports
// false, changing nothing, when a newer attempt or mode switch has happened
// since Begin or the Reconciler is closed.
func (r *Reconciler[R]) Complete(token uint64, items []R, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || token != r.gen {
		r.log.Debug().Uint64("token", token).Uint64("generation", r.gen).Msg("dropping stale result")
		return false
	}

	if err != nil {
		r.mode = Error
		r.source = SourceLocal
		r.items = catalog.Clone(r.seed)
		r.reason = err.Error()
		r.kind = kindOf(err)
		r.stopTimerLocked()
		r.timer = r.afterFunc(r.hold, func() { r.expire(token) })
		r.log.Warn().Err(err).Str("kind", string(r.kind)).Msg("backend unavailable, showing demo data")
		return true
	}

	r.mode = Remote
	r.source = SourceRemote
	r.items = catalog.Clone(items)
	r.reason = ""
	r.kind = backend.KindNone
	r.log.Info().Int("records", len(items)).Msg("switched to backend data")
	return true
}

func (r *Reconciler[R]) expire(token uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || token != r.gen || r.mode != Error {
		return
	}
	r.mode = Local
	r.reason = ""
	r.kind = backend.KindNone
	r.timer = nil
	r.log.Debug().Msg("error cleared")
}

// SwitchToDemo restores the seed. It only acts in Remote mode and reports
// whether anything changed.
func (r *Reconciler[R]) SwitchToDemo() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.mode != Remote {
		return false
	}
	r.gen++
	r.mode = Local
	r.source = SourceLocal
	r.items = catalog.Clone(r.seed)
	r.log.Info().Msg("switched to demo data")
	return true
}

// Search sets the query used by Snapshot. The collection and mode are left
// alone.
func (r *Reconciler[R]) Search(query string) Snapshot[R] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = query
	return r.snapshotLocked()
}

// Close stops the pending fallback timer. Later results are ignored.
func (r *Reconciler[R]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.stopTimerLocked()
}

func (r *Reconciler[R]) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func kindOf(err error) backend.Kind {
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe.Outcome.Kind
	}
	return backend.KindOf(err)
}
