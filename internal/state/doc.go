// Package state holds the passive backend health status shared between the
// health monitor and the UI.
//
// # Overview
//
// The monitor goroutine (see probe.Monitor) writes into a Store; the Bubble
// Tea model reads a Snapshot on every UI tick. The Store is the only place
// the two meet.
//
//	Monitor goroutine:           UI tick:
//	┌──────────────────┐        ┌──────────────────┐
//	│ BeginProbe()     │        │                  │
//	│ Probe(ctx)       │        │                  │
//	│ RecordProbe(out) │──────→ │ store.Snapshot() │
//	│ wait interval    │ (mutex)│ render banner    │
//	└──────────────────┘        └──────────────────┘
//
// # Update Semantics
//
// BeginProbe only flips State to Probing; the previous outcome stays visible
// so the banner does not flicker between checks. RecordProbe replaces the
// outcome, bumps Probes and either resets or increments
// ConsecutiveFailures. A single failure is reported as Unreachable, but
// IsOffline only turns true after two in a row.
//
// # Usage
//
//	store := &state.Store{}
//	monitor := probe.StartMonitor(ctx, prober, 30*time.Second, store)
//	defer monitor.Stop()
//
//	snap := store.Snapshot()
//	if snap.Connected() {
//		// "Backend server is running"
//	}
//
// The zero Store is ready to use and reports probe.Unknown until the first
// probe starts.
package state
