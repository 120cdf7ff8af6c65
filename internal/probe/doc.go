// Package probe checks whether the remote API is reachable and healthy.
//
// A Prober issues one GET /api/health per call and classifies the result as
// Healthy or Unreachable. It never returns an error: transport failures,
// unexpected statuses, non-JSON bodies and unhealthy payloads all become an
// Unreachable Outcome carrying a reason and a backend.Kind.
//
// A Monitor re-runs a Prober on a fixed interval and hands each outcome to a
// Recorder. It is owned by a context; Stop cancels it and waits for the loop
// to exit, so no ticker outlives its owner.
package probe
